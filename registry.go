package livellm

import "github.com/google/jsonschema-go/jsonschema"

// Component is the capability interface implemented independently per
// registered variant. There is no shared base type: a component is whatever
// can describe its props, stand in for itself while streaming, and render.
type Component interface {
	// Schema describes the component's props. May be nil, in which case
	// any JSON object is accepted as-is.
	Schema() *jsonschema.Schema

	// Skeleton returns placeholder markup shown while the component's
	// body is still streaming in.
	Skeleton(width int) string

	// Render instantiates the live widget from validated props.
	Render(props map[string]any) Node
}

// ActionHandler is an optional capability for components whose widgets
// emit user actions (e.g. an activated link). Handlers attached before a
// block finalizes are preserved by finalization.
type ActionHandler interface {
	OnAction(func(Action))
}

// Action is a user interaction emitted by a live widget.
type Action struct {
	Component string         // registered component type name
	Name      string         // action name within the component
	Payload   map[string]any // action-specific data
}

// Registry maps a component type name to its Component. Absence of a name
// is reported via the boolean, never an error: an unregistered type inside
// a stream degrades to a fallback block.
type Registry interface {
	Lookup(name string) (Component, bool)
}

// Markdown converts a plain-text run to styled output. The session treats
// the result as opaque markup.
type Markdown interface {
	Render(source string, width int) string
}

// MarkdownFunc adapts a function to the Markdown interface.
type MarkdownFunc func(source string, width int) string

// Render calls f(source, width).
func (f MarkdownFunc) Render(source string, width int) string { return f(source, width) }

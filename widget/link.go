package widget

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/fwojciec/livellm"
)

// Interface compliance checks.
var (
	_ livellm.Component     = (*Link)(nil)
	_ livellm.ActionHandler = (*Link)(nil)
)

// Link renders an activatable hyperlink. It is the one built-in with the
// ActionHandler capability: a handler attached before the block finalizes
// receives the open action when the host activates the widget.
// Props: text (required), url (required).
type Link struct {
	theme    livellm.Theme
	onAction func(livellm.Action)
}

// NewLink creates the link component.
func NewLink(theme livellm.Theme) *Link {
	return &Link{theme: theme}
}

// OnAction implements livellm.ActionHandler.
func (l *Link) OnAction(fn func(livellm.Action)) {
	l.onAction = fn
}

// Schema implements livellm.Component.
func (l *Link) Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"text", "url"},
		Properties: map[string]*jsonschema.Schema{
			"text": {Type: "string"},
			"url":  {Type: "string"},
		},
	}
}

// Skeleton implements livellm.Component.
func (l *Link) Skeleton(width int) string {
	style := lipgloss.NewStyle().Foreground(ansiColor(l.theme.Skeleton)).Faint(true).Underline(true)
	return style.Render("▒▒▒▒▒▒▒▒")
}

// Render implements livellm.Component.
func (l *Link) Render(props map[string]any) livellm.Node {
	return &LinkNode{
		text: stringProp(props, "text", ""),
		url:  stringProp(props, "url", ""),
		fire: func(a livellm.Action) {
			if l.onAction != nil {
				l.onAction(a)
			}
		},
		theme: l.theme,
	}
}

// LinkNode is the live widget produced by Link. Exported so hosts can
// activate it from their input handling.
type LinkNode struct {
	text  string
	url   string
	fire  func(livellm.Action)
	theme livellm.Theme
}

// URL returns the link destination.
func (n *LinkNode) URL() string { return n.url }

// Activate fires the open action through the handler attached to the
// component. Must not be called from inside the session's Push.
func (n *LinkNode) Activate() {
	n.fire(livellm.Action{
		Component: "link",
		Name:      "open",
		Payload:   map[string]any{"url": n.url},
	})
}

// Render implements livellm.Node.
func (n *LinkNode) Render(width int) string {
	link := lipgloss.NewStyle().Foreground(ansiColor(n.theme.Accent)).Underline(true)
	muted := lipgloss.NewStyle().Foreground(ansiColor(n.theme.Muted)).Faint(true)
	return link.Render(truncate(n.text, width, "…")) + " " + muted.Render("("+n.url+")")
}

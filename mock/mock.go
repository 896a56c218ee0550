// Package mock provides test doubles for the livellm collaborator
// interfaces. Set the function fields for the methods you need; fields
// whose absence would hide a missing setup panic when nil, the rest are
// nil-safe with useful defaults.
package mock

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/fwojciec/livellm"
)

// Interface compliance checks.
var (
	_ livellm.Registry  = (*Registry)(nil)
	_ livellm.Component = (*Component)(nil)
	_ livellm.Notifier  = (*Notifier)(nil)
	_ livellm.Markdown  = (*Markdown)(nil)
	_ livellm.Ticker    = (*Ticker)(nil)
	_ livellm.Node      = (*Node)(nil)
)

// Registry is a test double for livellm.Registry. LookupFn is nil-safe:
// every type is absent by default.
type Registry struct {
	LookupFn func(name string) (livellm.Component, bool)
}

// Lookup delegates to LookupFn. Reports absent when LookupFn is nil.
func (r *Registry) Lookup(name string) (livellm.Component, bool) {
	if r.LookupFn == nil {
		return nil, false
	}
	return r.LookupFn(name)
}

// Component is a test double for livellm.Component. SchemaFn and
// SkeletonFn are nil-safe (nil schema, empty skeleton); RenderFn panics
// when nil to catch missing setup.
type Component struct {
	SchemaFn   func() *jsonschema.Schema
	SkeletonFn func(width int) string
	RenderFn   func(props map[string]any) livellm.Node
}

// Schema delegates to SchemaFn. Returns nil when SchemaFn is nil.
func (c *Component) Schema() *jsonschema.Schema {
	if c.SchemaFn == nil {
		return nil
	}
	return c.SchemaFn()
}

// Skeleton delegates to SkeletonFn. Returns "" when SkeletonFn is nil.
func (c *Component) Skeleton(width int) string {
	if c.SkeletonFn == nil {
		return ""
	}
	return c.SkeletonFn(width)
}

// Render delegates to RenderFn.
func (c *Component) Render(props map[string]any) livellm.Node {
	return c.RenderFn(props)
}

// Notifier records every event it receives, in order. Safe for
// single-goroutine use, matching the session's concurrency contract.
type Notifier struct {
	Events []livellm.Event
}

// Notify implements livellm.Notifier.
func (n *Notifier) Notify(e livellm.Event) {
	n.Events = append(n.Events, e)
}

// Markdown is a test double for livellm.Markdown. Passes source through
// unchanged when RenderFn is nil.
type Markdown struct {
	RenderFn func(source string, width int) string
}

// Render delegates to RenderFn.
func (m *Markdown) Render(source string, width int) string {
	if m.RenderFn == nil {
		return source
	}
	return m.RenderFn(source, width)
}

// Ticker is a test double for livellm.Ticker. When RequestFn is nil it
// behaves like livellm.ImmediateTicker.
type Ticker struct {
	RequestFn func(fire func()) (cancel func())
}

// Request delegates to RequestFn.
func (t *Ticker) Request(fire func()) (cancel func()) {
	if t.RequestFn == nil {
		fire()
		return func() {}
	}
	return t.RequestFn(fire)
}

// Node renders a fixed string at any width, for asserting container
// contents.
type Node struct {
	Out string
}

// Render implements livellm.Node.
func (n *Node) Render(int) string { return n.Out }

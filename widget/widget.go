// Package widget provides the built-in component implementations and a
// map-backed registry. Each widget implements the livellm.Component
// capability interface independently; there is no shared base type.
package widget

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/livellm"
)

// Interface compliance check.
var _ livellm.Registry = (*Registry)(nil)

// Registry maps component type names to their implementations.
type Registry struct {
	components map[string]livellm.Component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]livellm.Component)}
}

// Register adds a component under name. Registering a duplicate name is a
// caller error.
func (r *Registry) Register(name string, c livellm.Component) error {
	if name == "" {
		return fmt.Errorf("widget: component name cannot be empty")
	}
	if _, exists := r.components[name]; exists {
		return fmt.Errorf("widget: component %q already registered", name)
	}
	r.components[name] = c
	return nil
}

// Lookup implements livellm.Registry.
func (r *Registry) Lookup(name string) (livellm.Component, bool) {
	c, ok := r.components[name]
	return c, ok
}

// Names returns the registered type names, unordered.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry returns a registry with every built-in widget.
func DefaultRegistry(theme livellm.Theme) *Registry {
	r := NewRegistry()
	// Registration of built-ins cannot collide.
	_ = r.Register("badge", NewBadge(theme))
	_ = r.Register("alert", NewAlert(theme))
	_ = r.Register("progress", NewProgress(theme))
	_ = r.Register("table", NewTable(theme))
	_ = r.Register("link", NewLink(theme))
	return r
}

// toneColor maps a tone name to a theme ANSI index.
func toneColor(theme livellm.Theme, tone string) int {
	switch tone {
	case "success":
		return theme.Success
	case "warning":
		return theme.Warning
	case "error":
		return theme.Error
	default:
		return theme.Accent
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

package widget

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/jsonschema-go/jsonschema"
	rw "github.com/mattn/go-runewidth"

	"github.com/fwojciec/livellm"
)

var _ livellm.Component = (*Progress)(nil)

// Progress renders a horizontal completion bar.
// Props: value (required), max (default 100), label.
type Progress struct {
	theme livellm.Theme
}

// NewProgress creates the progress component.
func NewProgress(theme livellm.Theme) *Progress {
	return &Progress{theme: theme}
}

// Schema implements livellm.Component.
func (p *Progress) Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"value"},
		Properties: map[string]*jsonschema.Schema{
			"value": {Type: "number"},
			"max":   {Type: "number", Default: json.RawMessage(`100`)},
			"label": {Type: "string", Default: json.RawMessage(`""`)},
		},
	}
}

// Skeleton implements livellm.Component.
func (p *Progress) Skeleton(width int) string {
	bar := width / 2
	if bar < 10 {
		bar = 10
	}
	style := lipgloss.NewStyle().Foreground(ansiColor(p.theme.Skeleton)).Faint(true)
	return style.Render("[" + strings.Repeat("░", bar) + "]")
}

// Render implements livellm.Component.
func (p *Progress) Render(props map[string]any) livellm.Node {
	return &progressNode{
		label: stringProp(props, "label", ""),
		value: floatProp(props, "value", 0),
		max:   floatProp(props, "max", 100),
		theme: p.theme,
	}
}

type progressNode struct {
	label string
	value float64
	max   float64
	theme livellm.Theme
}

func (n *progressNode) Render(width int) string {
	max := n.max
	if max <= 0 {
		max = 100
	}
	ratio := n.value / max
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	percent := fmt.Sprintf(" %3.0f%%", ratio*100)

	prefix := ""
	if n.label != "" {
		prefix = n.label + " "
	}

	barWidth := width - rw.StringWidth(prefix) - rw.StringWidth(percent) - 2
	if barWidth < 5 {
		barWidth = 5
	}
	filled := int(ratio*float64(barWidth) + 0.5)

	bar := lipgloss.NewStyle().Foreground(ansiColor(n.theme.Success)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(ansiColor(n.theme.Muted)).Faint(true).Render(strings.Repeat("░", barWidth-filled))
	return prefix + "[" + bar + "]" + percent
}

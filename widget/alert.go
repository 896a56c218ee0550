package widget

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/fwojciec/livellm"
)

var _ livellm.Component = (*Alert)(nil)

// Alert renders a bordered callout box.
// Props: body (required), title, level (info|success|warning|error).
type Alert struct {
	theme livellm.Theme
}

// NewAlert creates the alert component.
func NewAlert(theme livellm.Theme) *Alert {
	return &Alert{theme: theme}
}

// Schema implements livellm.Component.
func (a *Alert) Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"body"},
		Properties: map[string]*jsonschema.Schema{
			"body":  {Type: "string"},
			"title": {Type: "string", Default: json.RawMessage(`""`)},
			"level": {
				Type:    "string",
				Enum:    []any{"info", "success", "warning", "error"},
				Default: json.RawMessage(`"info"`),
			},
		},
	}
}

// Skeleton implements livellm.Component.
func (a *Alert) Skeleton(width int) string {
	inner := width - 4
	if inner < 8 {
		inner = 8
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ansiColor(a.theme.Skeleton)).
		Foreground(ansiColor(a.theme.Skeleton)).
		Faint(true).
		Padding(0, 1)
	return style.Render(strings.Repeat("▒", inner))
}

// Render implements livellm.Component.
func (a *Alert) Render(props map[string]any) livellm.Node {
	level := stringProp(props, "level", "info")
	if level == "info" {
		level = "neutral" // toneColor maps neutral to the accent color
	}
	return &alertNode{
		title: stringProp(props, "title", ""),
		body:  stringProp(props, "body", ""),
		tone:  level,
		theme: a.theme,
	}
}

type alertNode struct {
	title string
	body  string
	tone  string
	theme livellm.Theme
}

func (n *alertNode) Render(width int) string {
	inner := width - 4
	if inner < 8 {
		inner = 8
	}
	tone := ansiColor(toneColor(n.theme, n.tone))

	var content strings.Builder
	if n.title != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tone).Render(n.title))
		content.WriteString("\n")
	}
	content.WriteString(lipgloss.NewStyle().Width(inner).Render(n.body))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tone).
		Padding(0, 1)
	return box.Render(content.String())
}

package widget

import (
	"encoding/json"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/fwojciec/livellm"
)

var _ livellm.Component = (*Badge)(nil)

// Badge renders a short inline label as a colored pill.
// Props: text (required), tone (neutral|success|warning|error).
type Badge struct {
	theme livellm.Theme
}

// NewBadge creates the badge component.
func NewBadge(theme livellm.Theme) *Badge {
	return &Badge{theme: theme}
}

// Schema implements livellm.Component.
func (b *Badge) Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"text"},
		Properties: map[string]*jsonschema.Schema{
			"text": {Type: "string"},
			"tone": {
				Type:    "string",
				Enum:    []any{"neutral", "success", "warning", "error"},
				Default: json.RawMessage(`"neutral"`),
			},
		},
	}
}

// Skeleton implements livellm.Component.
func (b *Badge) Skeleton(width int) string {
	style := lipgloss.NewStyle().Foreground(ansiColor(b.theme.Skeleton)).Faint(true)
	return style.Render("▒▒▒▒▒▒")
}

// Render implements livellm.Component.
func (b *Badge) Render(props map[string]any) livellm.Node {
	return &badgeNode{
		text:  stringProp(props, "text", ""),
		tone:  stringProp(props, "tone", "neutral"),
		theme: b.theme,
	}
}

type badgeNode struct {
	text  string
	tone  string
	theme livellm.Theme
}

func (n *badgeNode) Render(width int) string {
	style := lipgloss.NewStyle().
		Foreground(ansiColor(n.theme.CodeBg)).
		Background(ansiColor(toneColor(n.theme, n.tone))).
		Bold(true).
		Padding(0, 1)
	return style.Render(truncate(n.text, width-2, "…"))
}

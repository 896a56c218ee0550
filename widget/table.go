package widget

import (
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/fwojciec/livellm"
)

var _ livellm.Component = (*Table)(nil)

// Table renders tabular data with a border.
// Props: columns (required, array of strings), rows (array of string arrays).
type Table struct {
	theme livellm.Theme
}

// NewTable creates the table component.
func NewTable(theme livellm.Theme) *Table {
	return &Table{theme: theme}
}

// Schema implements livellm.Component.
func (t *Table) Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"columns"},
		Properties: map[string]*jsonschema.Schema{
			"columns": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
			"rows": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type:  "array",
					Items: &jsonschema.Schema{Type: "string"},
				},
			},
		},
	}
}

// Skeleton implements livellm.Component.
func (t *Table) Skeleton(width int) string {
	style := lipgloss.NewStyle().Foreground(ansiColor(t.theme.Skeleton)).Faint(true)
	return style.Render("┌────────┬────────┐\n│ ▒▒▒▒▒▒ │ ▒▒▒▒▒▒ │\n└────────┴────────┘")
}

// Render implements livellm.Component.
func (t *Table) Render(props map[string]any) livellm.Node {
	node := &tableNode{
		columns: stringSliceProp(props, "columns"),
		theme:   t.theme,
	}
	if raw, ok := props["rows"].([]any); ok {
		for _, rowRaw := range raw {
			if cells, ok := rowRaw.([]any); ok {
				row := make([]string, 0, len(cells))
				for _, c := range cells {
					if s, ok := c.(string); ok {
						row = append(row, s)
					}
				}
				node.rows = append(node.rows, row)
			}
		}
	}
	return node
}

type tableNode struct {
	columns []string
	rows    [][]string
	theme   livellm.Theme
}

func (n *tableNode) Render(width int) string {
	border := lipgloss.NewStyle().Foreground(ansiColor(n.theme.Muted))
	header := lipgloss.NewStyle().Foreground(ansiColor(n.theme.Accent)).Bold(true)

	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return header
			}
			return lipgloss.NewStyle()
		}).
		Headers(n.columns...).
		Rows(n.rows...).
		Render()
}

// Package markdown renders plain-text runs to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling. It implements the
// livellm.Markdown collaborator interface.
package markdown

import "github.com/fwojciec/livellm"

// Interface compliance check.
var _ livellm.Markdown = (*Renderer)(nil)

// Renderer converts markdown source to styled terminal output. Paragraphs,
// headings and list items are word-wrapped to width; code blocks keep
// their lines intact.
type Renderer struct {
	styles styleSet
}

// New creates a Renderer styled from theme.
func New(theme livellm.Theme) *Renderer {
	return &Renderer{styles: newStyleSet(theme)}
}

// Render implements livellm.Markdown.
func (r *Renderer) Render(source string, width int) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = livellm.DefaultWidth
	}
	return r.renderDoc([]byte(source), width)
}

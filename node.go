package livellm

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Node is a renderable element in a Container. Render takes the target
// width so the owning surface controls layout and nodes are testable in
// isolation.
type Node interface {
	Render(width int) string
}

// TextNode renders an accumulating run of plain prose through the
// session's Markdown collaborator. The rendered result is memoized per
// (content, width) pair so repeated paints between appends are cheap.
type TextNode struct {
	md  Markdown
	raw strings.Builder

	lastLen   int
	lastWidth int
	lastOut   string
}

// NewTextNode creates an empty text node rendering through md.
func NewTextNode(md Markdown) *TextNode {
	return &TextNode{md: md}
}

// Append adds streamed prose to the node.
func (n *TextNode) Append(s string) {
	n.raw.WriteString(s)
}

// Text returns the raw accumulated prose.
func (n *TextNode) Text() string {
	return n.raw.String()
}

// Render implements Node.
func (n *TextNode) Render(width int) string {
	if n.raw.Len() == n.lastLen && width == n.lastWidth {
		return n.lastOut
	}
	out := n.md.Render(n.raw.String(), width)
	n.lastLen = n.raw.Len()
	n.lastWidth = width
	n.lastOut = out
	return out
}

// SkeletonNode is the placeholder shown while a component's body is still
// streaming. A registered component supplies its own skeleton markup; an
// unregistered type gets the generic default so the reader still sees
// where the block will land.
type SkeletonNode struct {
	typ   string
	comp  Component // nil when the type is unregistered
	theme Theme
}

// NewSkeletonNode creates a skeleton placeholder for the given type.
// comp may be nil.
func NewSkeletonNode(typ string, comp Component, theme Theme) *SkeletonNode {
	return &SkeletonNode{typ: typ, comp: comp, theme: theme}
}

// ComponentType returns the type name the skeleton stands in for.
func (n *SkeletonNode) ComponentType() string { return n.typ }

// Render implements Node.
func (n *SkeletonNode) Render(width int) string {
	if n.comp != nil {
		if s := n.comp.Skeleton(width); s != "" {
			return s
		}
	}
	fill := 24
	if width > 0 && width < fill+2 {
		fill = width - 2
	}
	if fill < 3 {
		fill = 3
	}
	style := lipgloss.NewStyle().Foreground(ansiColor(n.theme.Skeleton)).Faint(true)
	return style.Render(strings.Repeat("▒", fill) + " " + n.typ)
}

// FallbackNode renders a failed component block as inert text: the original
// fenced source, escape sequences neutralized, inside a degraded marker.
type FallbackNode struct {
	raw   string
	theme Theme
}

// NewFallbackNode creates a fallback block for the raw fenced text.
func NewFallbackNode(raw string, theme Theme) *FallbackNode {
	return &FallbackNode{raw: raw, theme: theme}
}

// Raw returns the original fenced text the fallback preserves.
func (n *FallbackNode) Raw() string { return n.raw }

// Render implements Node.
func (n *FallbackNode) Render(width int) string {
	mark := lipgloss.NewStyle().Foreground(ansiColor(n.theme.Error))
	gutter := mark.Render("!") + " "

	var b strings.Builder
	b.WriteString(mark.Faint(true).Render("component block could not be rendered"))
	b.WriteString("\n")
	for i, line := range strings.Split(neutralize(n.raw), "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(gutter + line)
	}
	return b.String()
}

// neutralize makes raw stream text inert by replacing escape bytes so a
// malformed block cannot inject terminal control sequences.
func neutralize(s string) string {
	return strings.ReplaceAll(s, "\x1b", "␛")
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

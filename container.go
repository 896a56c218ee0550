package livellm

import "strings"

// Container is the rendering surface a Session writes into: an ordered
// sequence of nodes assembled into one frame string per scheduler tick.
// A container is exclusively owned by one session at a time.
type Container struct {
	nodes []Node
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{}
}

// Append adds a node at the end of the container.
func (c *Container) Append(n Node) {
	c.nodes = append(c.nodes, n)
}

// Replace swaps old for repl in place, preserving position. It reports
// whether old was found.
func (c *Container) Replace(old, repl Node) bool {
	for i, n := range c.nodes {
		if n == old {
			c.nodes[i] = repl
			return true
		}
	}
	return false
}

// Remove deletes n from the container, reporting whether it was found.
func (c *Container) Remove(n Node) bool {
	for i, cur := range c.nodes {
		if cur == n {
			c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of nodes.
func (c *Container) Len() int {
	return len(c.nodes)
}

// Nodes returns a copy of the node sequence, in render order.
func (c *Container) Nodes() []Node {
	out := make([]Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Frame assembles the container into a single frame string at the given
// width. Empty node renders are skipped so a node that renders to nothing
// does not produce a blank gap.
func (c *Container) Frame(width int) string {
	var b strings.Builder
	for _, n := range c.nodes {
		r := n.Render(width)
		if strings.TrimSpace(r) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r)
	}
	return b.String()
}

package livellm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fwojciec/livellm"
	"github.com/fwojciec/livellm/mock"
)

func TestContainer(t *testing.T) {
	t.Parallel()

	t.Run("frame joins nodes in order", func(t *testing.T) {
		t.Parallel()
		c := livellm.NewContainer()
		c.Append(&mock.Node{Out: "first"})
		c.Append(&mock.Node{Out: "second"})
		assert.Equal(t, "first\nsecond", c.Frame(80))
	})

	t.Run("empty renders are skipped", func(t *testing.T) {
		t.Parallel()
		c := livellm.NewContainer()
		c.Append(&mock.Node{Out: "a"})
		c.Append(&mock.Node{Out: "   "})
		c.Append(&mock.Node{Out: "b"})
		assert.Equal(t, "a\nb", c.Frame(80))
	})

	t.Run("replace preserves position", func(t *testing.T) {
		t.Parallel()
		c := livellm.NewContainer()
		old := &mock.Node{Out: "old"}
		c.Append(&mock.Node{Out: "head"})
		c.Append(old)
		c.Append(&mock.Node{Out: "tail"})

		assert.True(t, c.Replace(old, &mock.Node{Out: "new"}))
		assert.Equal(t, "head\nnew\ntail", c.Frame(80))
	})

	t.Run("replace of unknown node reports false", func(t *testing.T) {
		t.Parallel()
		c := livellm.NewContainer()
		assert.False(t, c.Replace(&mock.Node{}, &mock.Node{}))
	})

	t.Run("remove deletes the node", func(t *testing.T) {
		t.Parallel()
		c := livellm.NewContainer()
		n := &mock.Node{Out: "x"}
		c.Append(n)
		assert.True(t, c.Remove(n))
		assert.Zero(t, c.Len())
		assert.False(t, c.Remove(n))
	})

	t.Run("nodes returns a copy", func(t *testing.T) {
		t.Parallel()
		c := livellm.NewContainer()
		c.Append(&mock.Node{Out: "x"})
		nodes := c.Nodes()
		nodes[0] = &mock.Node{Out: "mutated"}
		assert.Equal(t, "x", c.Frame(80))
	})
}

func TestTextNode(t *testing.T) {
	t.Parallel()

	t.Run("renders through the markdown collaborator", func(t *testing.T) {
		t.Parallel()
		md := &mock.Markdown{RenderFn: func(source string, width int) string {
			return "[" + source + "]"
		}}
		n := livellm.NewTextNode(md)
		n.Append("hi")
		assert.Equal(t, "[hi]", n.Render(80))
	})

	t.Run("memoizes per content and width", func(t *testing.T) {
		t.Parallel()
		calls := 0
		md := &mock.Markdown{RenderFn: func(source string, width int) string {
			calls++
			return source
		}}
		n := livellm.NewTextNode(md)
		n.Append("hi")
		n.Render(80)
		n.Render(80)
		assert.Equal(t, 1, calls)

		n.Render(40) // width change invalidates
		assert.Equal(t, 2, calls)

		n.Append("!")
		n.Render(40)
		assert.Equal(t, 3, calls)
	})
}

func TestFallbackNode(t *testing.T) {
	t.Parallel()

	t.Run("neutralizes escape sequences", func(t *testing.T) {
		t.Parallel()
		n := livellm.NewFallbackNode("evil \x1b[31mred\x1b[0m", livellm.DefaultTheme())
		out := n.Render(80)
		assert.NotContains(t, out, "\x1b[31m")
		assert.Contains(t, out, "red")
	})
}

func TestSkeletonNode(t *testing.T) {
	t.Parallel()

	t.Run("generic default names the component type", func(t *testing.T) {
		t.Parallel()
		n := livellm.NewSkeletonNode("chart", nil, livellm.DefaultTheme())
		assert.Contains(t, n.Render(80), "chart")
	})

	t.Run("component-declared skeleton wins", func(t *testing.T) {
		t.Parallel()
		comp := &mock.Component{SkeletonFn: func(width int) string { return "custom-skel" }}
		n := livellm.NewSkeletonNode("chart", comp, livellm.DefaultTheme())
		assert.Equal(t, "custom-skel", n.Render(80))
	})
}

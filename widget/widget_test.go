package widget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/livellm"
	"github.com/fwojciec/livellm/widget"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	theme := livellm.DefaultTheme()

	t.Run("lookup finds registered component", func(t *testing.T) {
		t.Parallel()
		r := widget.NewRegistry()
		require.NoError(t, r.Register("badge", widget.NewBadge(theme)))
		c, ok := r.Lookup("badge")
		assert.True(t, ok)
		assert.NotNil(t, c)
	})

	t.Run("lookup reports absence", func(t *testing.T) {
		t.Parallel()
		r := widget.NewRegistry()
		_, ok := r.Lookup("doesnotexist")
		assert.False(t, ok)
	})

	t.Run("duplicate registration is an error", func(t *testing.T) {
		t.Parallel()
		r := widget.NewRegistry()
		require.NoError(t, r.Register("badge", widget.NewBadge(theme)))
		assert.Error(t, r.Register("badge", widget.NewBadge(theme)))
	})

	t.Run("empty name is an error", func(t *testing.T) {
		t.Parallel()
		r := widget.NewRegistry()
		assert.Error(t, r.Register("", widget.NewBadge(theme)))
	})

	t.Run("default registry has all built-ins", func(t *testing.T) {
		t.Parallel()
		r := widget.DefaultRegistry(theme)
		for _, name := range []string{"badge", "alert", "progress", "table", "link"} {
			_, ok := r.Lookup(name)
			assert.True(t, ok, name)
		}
	})
}

func TestBadge(t *testing.T) {
	t.Parallel()

	theme := livellm.DefaultTheme()

	t.Run("renders text", func(t *testing.T) {
		t.Parallel()
		node := widget.NewBadge(theme).Render(map[string]any{"text": "Hi", "tone": "success"})
		assert.Contains(t, node.Render(80), "Hi")
	})

	t.Run("long text truncates to width", func(t *testing.T) {
		t.Parallel()
		node := widget.NewBadge(theme).Render(map[string]any{"text": "a very long badge label indeed"})
		out := node.Render(12)
		assert.Contains(t, out, "…")
	})

	t.Run("schema requires text", func(t *testing.T) {
		t.Parallel()
		schema := widget.NewBadge(theme).Schema()
		require.NotNil(t, schema)
		assert.Contains(t, schema.Required, "text")
	})

	t.Run("skeleton is non-empty", func(t *testing.T) {
		t.Parallel()
		assert.NotEmpty(t, widget.NewBadge(theme).Skeleton(80))
	})
}

func TestAlert(t *testing.T) {
	t.Parallel()

	theme := livellm.DefaultTheme()

	t.Run("renders title and body", func(t *testing.T) {
		t.Parallel()
		node := widget.NewAlert(theme).Render(map[string]any{
			"title": "Heads up",
			"body":  "something happened",
			"level": "warning",
		})
		out := node.Render(60)
		assert.Contains(t, out, "Heads up")
		assert.Contains(t, out, "something happened")
	})

	t.Run("body only", func(t *testing.T) {
		t.Parallel()
		node := widget.NewAlert(theme).Render(map[string]any{"body": "plain"})
		assert.Contains(t, node.Render(60), "plain")
	})
}

func TestProgress(t *testing.T) {
	t.Parallel()

	theme := livellm.DefaultTheme()

	t.Run("renders percent", func(t *testing.T) {
		t.Parallel()
		node := widget.NewProgress(theme).Render(map[string]any{"value": float64(50), "max": float64(100)})
		assert.Contains(t, node.Render(60), "50%")
	})

	t.Run("clamps above max", func(t *testing.T) {
		t.Parallel()
		node := widget.NewProgress(theme).Render(map[string]any{"value": float64(250), "max": float64(100)})
		assert.Contains(t, node.Render(60), "100%")
	})

	t.Run("label precedes bar", func(t *testing.T) {
		t.Parallel()
		node := widget.NewProgress(theme).Render(map[string]any{"value": float64(1), "label": "upload"})
		assert.Contains(t, node.Render(60), "upload")
	})
}

func TestTable(t *testing.T) {
	t.Parallel()

	theme := livellm.DefaultTheme()

	t.Run("renders headers and rows", func(t *testing.T) {
		t.Parallel()
		node := widget.NewTable(theme).Render(map[string]any{
			"columns": []any{"Name", "Qty"},
			"rows":    []any{[]any{"apples", "3"}, []any{"pears", "7"}},
		})
		out := node.Render(60)
		assert.Contains(t, out, "Name")
		assert.Contains(t, out, "apples")
		assert.Contains(t, out, "7")
	})

	t.Run("headers only", func(t *testing.T) {
		t.Parallel()
		node := widget.NewTable(theme).Render(map[string]any{"columns": []any{"A", "B"}})
		assert.Contains(t, node.Render(60), "A")
	})
}

func TestLink(t *testing.T) {
	t.Parallel()

	theme := livellm.DefaultTheme()

	t.Run("renders text and url", func(t *testing.T) {
		t.Parallel()
		node := widget.NewLink(theme).Render(map[string]any{"text": "docs", "url": "https://example.com"})
		out := node.Render(80)
		assert.Contains(t, out, "docs")
		assert.Contains(t, out, "https://example.com")
	})

	t.Run("activate fires attached handler", func(t *testing.T) {
		t.Parallel()
		link := widget.NewLink(theme)
		var got livellm.Action
		link.OnAction(func(a livellm.Action) { got = a })

		node := link.Render(map[string]any{"text": "docs", "url": "https://example.com"}).(*widget.LinkNode)
		node.Activate()

		assert.Equal(t, "link", got.Component)
		assert.Equal(t, "open", got.Name)
		assert.Equal(t, "https://example.com", got.Payload["url"])
	})

	t.Run("activate without handler is a no-op", func(t *testing.T) {
		t.Parallel()
		node := widget.NewLink(theme).Render(map[string]any{"text": "x", "url": "y"}).(*widget.LinkNode)
		assert.NotPanics(t, func() { node.Activate() })
	})
}

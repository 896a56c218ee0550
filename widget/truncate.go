package widget

import (
	"strings"

	rw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// truncate cuts s to at most width display cells, appending tail when
// anything was trimmed. Grapheme clusters are never split, so emoji and
// combining sequences survive intact.
func truncate(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if rw.StringWidth(s) <= width {
		return s
	}
	budget := width - rw.StringWidth(tail)
	if budget < 0 {
		budget = 0
	}

	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := rw.StringWidth(cluster)
		if used+w > budget {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return b.String() + tail
}

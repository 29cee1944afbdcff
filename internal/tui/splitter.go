// pattern: Functional Core

package tui

import (
	"strings"

	"splitpane/internal/split"
)

// SplitterContextInfo is what a splitter renderer knows about its splitter.
type SplitterContextInfo struct {
	Dragging   bool // The pointer is currently dragging this splitter
	Horizontal bool // The split stacks its children, so the splitter is a row
}

// SplitterGlyph returns the character drawn at (col, row) of a splitter.
func SplitterGlyph(t split.SplitterType, ctx SplitterContextInfo, col, row int) string {
	switch t {
	case split.SplitterSolid:
		if ctx.Dragging {
			return "▓"
		}
		return "█"
	case split.SplitterStriped:
		even := (col+row)%2 == 0
		switch {
		case ctx.Dragging && even:
			return "▓"
		case ctx.Dragging, even:
			return "▒"
		default:
			return "░"
		}
	default:
		switch {
		case ctx.Horizontal && ctx.Dragging:
			return "━"
		case ctx.Horizontal:
			return "─"
		case ctx.Dragging:
			return "┃"
		default:
			return "│"
		}
	}
}

// RenderSplitterCells fills a width x height block with splitter glyphs.
func RenderSplitterCells(t split.SplitterType, ctx SplitterContextInfo, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := make([]string, height)
	var sb strings.Builder
	for row := range height {
		sb.Reset()
		for col := range width {
			sb.WriteString(SplitterGlyph(t, ctx, col, row))
		}
		lines[row] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// pattern: Functional Core

package layout

import (
	"math"

	"splitpane/internal/registry"
	"splitpane/internal/size"
	"splitpane/internal/split"
)

// Rect is a rectangular area in cells (or pixels).
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Geometry is the computed placement of every pane in a snapshot.
type Geometry struct {
	Panes     map[registry.PaneID]Rect    // Every pane reachable from the root, splits included
	Splitters map[registry.PaneID]Rect    // Splitter of each split
	Extents   map[registry.PaneID]float64 // Main-axis extent shared by both children of each split
	Leaves    []registry.PaneID           // Leaf panes, primary first
}

// SplitterThickness resolves the splitter size of opts within main.
func SplitterThickness(opts split.Options, main int) int {
	sz, err := size.Parse(opts.SplitterSize)
	if err != nil {
		return 0
	}
	return min(max(sz.Cells(main), 0), max(main, 0))
}

// MainExtent returns the extent the percent of a split applies to: the
// split's main axis minus its splitter.
func MainExtent(opts split.Options, r Rect) float64 {
	main := r.Width
	if opts.Horizontal {
		main = r.Height
	}
	return float64(max(main-SplitterThickness(opts, main), 0))
}

// Compute places every pane reachable from the snapshot root inside a
// width x height area.
func Compute(snap registry.Snapshot, width, height int) Geometry {
	g := Geometry{
		Panes:     make(map[registry.PaneID]Rect),
		Splitters: make(map[registry.PaneID]Rect),
		Extents:   make(map[registry.PaneID]float64),
	}
	if snap.Root == "" {
		return g
	}

	visited := make(map[registry.PaneID]bool)
	var place func(id registry.PaneID, r Rect)
	place = func(id registry.PaneID, r Rect) {
		if visited[id] {
			return
		}
		visited[id] = true
		g.Panes[id] = r

		info, ok := snap.Splits[id]
		if !ok {
			g.Leaves = append(g.Leaves, id)
			return
		}
		opts := split.Defaults()
		if info.Options != nil {
			opts = *info.Options
		}

		main := r.Width
		if opts.Horizontal {
			main = r.Height
		}
		thickness := SplitterThickness(opts, main)
		avail := max(main-thickness, 0)
		primary := min(max(int(math.Round(float64(avail)*info.Percent/100)), 0), avail)
		secondary := avail - primary
		g.Extents[id] = float64(avail)

		var pr, sr, sec Rect
		if opts.Horizontal {
			pr = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: primary}
			sr = Rect{X: r.X, Y: r.Y + primary, Width: r.Width, Height: thickness}
			sec = Rect{X: r.X, Y: r.Y + primary + thickness, Width: r.Width, Height: secondary}
		} else {
			pr = Rect{X: r.X, Y: r.Y, Width: primary, Height: r.Height}
			sr = Rect{X: r.X + primary, Y: r.Y, Width: thickness, Height: r.Height}
			sec = Rect{X: r.X + primary + thickness, Y: r.Y, Width: secondary, Height: r.Height}
		}
		g.Splitters[id] = sr

		if info.PrimaryID != "" {
			place(info.PrimaryID, pr)
		}
		if info.SecondaryID != "" {
			place(info.SecondaryID, sec)
		}
	}
	place(snap.Root, Rect{Width: width, Height: height})
	return g
}

// SplitterAt returns the split whose splitter covers the point. Deeper
// splits win over their ancestors.
func (g Geometry) SplitterAt(x, y int) (registry.PaneID, bool) {
	var (
		found registry.PaneID
		area  = math.MaxInt
	)
	for id, r := range g.Splitters {
		if r.Contains(x, y) && r.Width*r.Height < area {
			found, area = id, r.Width*r.Height
		}
	}
	return found, found != ""
}

// LeafAt returns the leaf pane covering the point.
func (g Geometry) LeafAt(x, y int) (registry.PaneID, bool) {
	for _, id := range g.Leaves {
		if g.Panes[id].Contains(x, y) {
			return id, true
		}
	}
	return "", false
}

// ContainerSizes returns the main-axis extent of every split, ready for
// ApplyContainerResize.
func (g Geometry) ContainerSizes() map[registry.PaneID]float64 {
	out := make(map[registry.PaneID]float64, len(g.Extents))
	for id, e := range g.Extents {
		out[id] = e
	}
	return out
}

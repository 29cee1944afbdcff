package layout

import (
	"slices"
	"testing"

	"splitpane/internal/registry"
	"splitpane/internal/split"
)

func geometrySession(t *testing.T) *Session {
	t.Helper()
	defaults := split.Defaults()
	defaults.SplitterSize = "1"
	s := New(WithDefaults(defaults))
	// root: sidebar | main, main: editor over terminal
	if err := s.CreateSplit("root", "sidebar", "main", split.Overrides{InitialPrimarySize: ptr("25%")}, 80); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateSplit("main", "editor", "terminal", split.Overrides{Horizontal: ptr(true), InitialPrimarySize: ptr("75%")}, 20); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCompute_NestedSplits(t *testing.T) {
	s := geometrySession(t)
	g := Compute(s.Snapshot(), 81, 21)

	tests := []struct {
		id   registry.PaneID
		want Rect
	}{
		{"root", Rect{X: 0, Y: 0, Width: 81, Height: 21}},
		{"sidebar", Rect{X: 0, Y: 0, Width: 20, Height: 21}},
		{"main", Rect{X: 21, Y: 0, Width: 60, Height: 21}},
		{"editor", Rect{X: 21, Y: 0, Width: 60, Height: 15}},
		{"terminal", Rect{X: 21, Y: 16, Width: 60, Height: 5}},
	}
	for _, tt := range tests {
		if got := g.Panes[tt.id]; got != tt.want {
			t.Errorf("Panes[%s] = %+v, want %+v", tt.id, got, tt.want)
		}
	}

	if got := g.Splitters["root"]; got != (Rect{X: 20, Y: 0, Width: 1, Height: 21}) {
		t.Errorf("root splitter = %+v", got)
	}
	if got := g.Splitters["main"]; got != (Rect{X: 21, Y: 15, Width: 60, Height: 1}) {
		t.Errorf("main splitter = %+v", got)
	}
	if g.Extents["root"] != 80 || g.Extents["main"] != 20 {
		t.Errorf("Extents = %v, want root 80 main 20", g.Extents)
	}
	if !slices.Equal(g.Leaves, []registry.PaneID{"sidebar", "editor", "terminal"}) {
		t.Errorf("Leaves = %v", g.Leaves)
	}
}

func TestCompute_EmptySnapshot(t *testing.T) {
	g := Compute(registry.Snapshot{}, 80, 24)
	if len(g.Panes) != 0 || len(g.Leaves) != 0 {
		t.Errorf("empty snapshot produced %+v", g)
	}
}

func TestCompute_TinyArea(t *testing.T) {
	s := geometrySession(t)
	g := Compute(s.Snapshot(), 1, 1)
	for id, r := range g.Panes {
		if r.Width < 0 || r.Height < 0 {
			t.Errorf("Panes[%s] has negative size %+v", id, r)
		}
	}
}

func TestGeometry_HitTesting(t *testing.T) {
	s := geometrySession(t)
	g := Compute(s.Snapshot(), 81, 21)

	if id, ok := g.SplitterAt(20, 5); !ok || id != "root" {
		t.Errorf("SplitterAt(20,5) = %q, %v, want root", id, ok)
	}
	if id, ok := g.SplitterAt(40, 15); !ok || id != "main" {
		t.Errorf("SplitterAt(40,15) = %q, %v, want main", id, ok)
	}
	if _, ok := g.SplitterAt(5, 5); ok {
		t.Error("SplitterAt inside a pane should miss")
	}
	if id, ok := g.LeafAt(30, 18); !ok || id != "terminal" {
		t.Errorf("LeafAt(30,18) = %q, %v, want terminal", id, ok)
	}
}

func TestGeometry_DragTracksPointer(t *testing.T) {
	s := geometrySession(t)
	g := Compute(s.Snapshot(), 81, 21)

	// Moving the pointer 8 cells right moves the splitter 8 cells.
	if err := s.ApplyDrag("root", 8, g.Extents["root"]); err != nil {
		t.Fatal(err)
	}
	g = Compute(s.Snapshot(), 81, 21)
	if got := g.Splitters["root"].X; got != 28 {
		t.Errorf("splitter X = %d, want 28", got)
	}
}

func TestMainExtentAndThickness(t *testing.T) {
	opts := split.Defaults() // 7px splitter
	if got := SplitterThickness(opts, 5); got != 5 {
		t.Errorf("SplitterThickness capped = %d, want 5", got)
	}
	if got := MainExtent(opts, Rect{Width: 100, Height: 10}); got != 93 {
		t.Errorf("MainExtent vertical = %v, want 93", got)
	}
	opts.Horizontal = true
	if got := MainExtent(opts, Rect{Width: 100, Height: 10}); got != 3 {
		t.Errorf("MainExtent horizontal = %v, want 3", got)
	}
}

func TestGeometry_ContainerSizesFeedResize(t *testing.T) {
	s := geometrySession(t)
	sizes := Compute(s.Snapshot(), 81, 21).ContainerSizes()
	if err := s.ApplyContainerResize(sizes); err != nil {
		t.Fatalf("ApplyContainerResize() error = %v", err)
	}
}

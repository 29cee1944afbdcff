// pattern: Functional Core
package cli

import (
	"fmt"
	"io"

	"splitpane/internal/layout"
	"splitpane/internal/registry"
)

// RenderTree writes the split tree rooted at snap.Root, one pane per line,
// with each split's orientation, percent and state and each pane's size.
func RenderTree(w io.Writer, snap registry.Snapshot, g layout.Geometry) {
	if snap.Root == "" {
		fmt.Fprintln(w, "(empty layout)")
		return
	}

	visited := make(map[registry.PaneID]bool)
	var walk func(id registry.PaneID, prefix, branch string)
	walk = func(id registry.PaneID, prefix, branch string) {
		r := g.Panes[id]
		info, isSplit := snap.Get(id)
		if !isSplit || visited[id] {
			fmt.Fprintf(w, "%s%s%s %dx%d\n", prefix, branch, id, r.Width, r.Height)
			return
		}
		visited[id] = true

		orientation := "vertical"
		if info.Options != nil && info.Options.Horizontal {
			orientation = "horizontal"
		}
		fmt.Fprintf(w, "%s%s%s [%s %.2f%% %s] %dx%d\n", prefix, branch, id, orientation, info.Percent, info.State, r.Width, r.Height)

		childPrefix := prefix
		switch branch {
		case "├── ":
			childPrefix += "│   "
		case "└── ":
			childPrefix += "    "
		}
		walk(info.PrimaryID, childPrefix, "├── ")
		walk(info.SecondaryID, childPrefix, "└── ")
	}
	walk(snap.Root, "", "")
}

// pattern: Functional Core

package tui

import "splitpane/internal/layout"

// Layout holds the computed regions of the screen chrome.
type Layout struct {
	Content   layout.Rect // Split-pane tree
	Logs      layout.Rect // Log panel when open
	StatusBar layout.Rect // Status message and key help
}

const (
	minContentHeight = 3
	minLogsHeight    = 3
)

// ComputeLayout calculates regions based on terminal dimensions. The status
// bar is statusHeight lines tall; when logPanelOpen is true the log panel
// takes a third of the rest.
func ComputeLayout(width, height int, logPanelOpen bool, statusHeight int) Layout {
	statusHeight = max(statusHeight, 1)
	available := max(height-statusHeight, 0)

	var logsHeight int
	if logPanelOpen && available >= minContentHeight+minLogsHeight {
		logsHeight = max(available/3, minLogsHeight)
	}
	contentHeight := available - logsHeight

	y := 0
	content := layout.Rect{X: 0, Y: y, Width: width, Height: contentHeight}
	y += contentHeight

	logs := layout.Rect{X: 0, Y: y, Width: width, Height: logsHeight}
	y += logsHeight

	return Layout{
		Content:   content,
		Logs:      logs,
		StatusBar: layout.Rect{X: 0, Y: y, Width: width, Height: statusHeight},
	}
}

// pattern: Imperative Shell

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"splitpane/internal/layout"
	"splitpane/internal/logging"
	"splitpane/internal/registry"
	"splitpane/internal/resize"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	l := m.chrome()
	sections := []string{}
	if l.Content.Height > 0 {
		sections = append(sections, m.renderContent(l.Content))
	}
	if l.Logs.Height > 0 {
		sections = append(sections, m.renderLogPanel(l.Logs))
	}
	sections = append(sections, m.renderStatusBar(l.StatusBar.Width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderContent(content layout.Rect) string {
	if m.session == nil {
		msg := "Loading layout..."
		if m.statusLevel == StatusError {
			msg = m.styles.ErrorStyle().Render(m.statusMessage)
		}
		return lipgloss.Place(content.Width, content.Height, lipgloss.Center, lipgloss.Center, msg)
	}

	geom := m.geometry()
	root := m.cache.snap.Root
	if root == "" {
		root = m.focused
	}
	return m.renderNode(root, geom)
}

// renderNode renders a pane and, for splits, both children joined along the
// split's main axis. Zero-area parts are dropped so the joins stay exact.
func (m Model) renderNode(id registry.PaneID, geom layout.Geometry) string {
	rect := geom.Panes[id]
	info, isSplit := m.cache.snap.Get(id)
	if !isSplit {
		return m.renderPane(id, rect)
	}

	opts := resize.Effective(info, m.session.Resolver().Defaults())

	var blocks []string
	add := func(r layout.Rect, render func() string) {
		if r.Width > 0 && r.Height > 0 {
			blocks = append(blocks, render())
		}
	}
	add(geom.Panes[info.PrimaryID], func() string { return m.renderNode(info.PrimaryID, geom) })
	add(geom.Splitters[id], func() string {
		ctx := SplitterContextInfo{
			Dragging:   m.drag != nil && m.drag.id == id,
			Horizontal: opts.Horizontal,
		}
		sr := geom.Splitters[id]
		return m.styles.SplitterStyle(m.splitterHex(id)).Render(RenderSplitterCells(opts.SplitterType, ctx, sr.Width, sr.Height))
	})
	add(geom.Panes[info.SecondaryID], func() string { return m.renderNode(info.SecondaryID, geom) })

	if opts.Horizontal {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (m Model) splitterHex(id registry.PaneID) string {
	if id == m.highlightID {
		return m.highlight.Value(m.now())
	}
	return m.styles.SplitterHex()
}

// renderPane draws a leaf as a bordered box of exactly rect's size.
func (m Model) renderPane(id registry.PaneID, rect layout.Rect) string {
	w, h := rect.Width, rect.Height
	focused := id == m.focused
	label := m.styles.PaneLabelStyle(focused)

	if w < 3 || h < 3 {
		return lipgloss.NewStyle().Width(w).Height(h).MaxWidth(w).MaxHeight(h).
			Render(label.Render(ansi.Truncate(string(id), w, "")))
	}

	inner := w - 2
	lines := []string{label.Render(ansi.Truncate(string(id), inner, "…"))}
	if h-2 >= 2 {
		lines = append(lines, m.styles.DimStyle().Render(ansi.Truncate(fmt.Sprintf("%dx%d", w, h), inner, "…")))
	}

	return m.styles.PaneStyle(focused).
		Width(inner).
		Height(h - 2).
		MaxHeight(h).
		Render(strings.Join(lines, "\n"))
}

// renderStatusBar renders the status message on the left and key help on
// the right.
func (m Model) renderStatusBar(width int) string {
	messageStyle := m.styles.InfoStyle()
	icon := ""
	if m.statusLevel == StatusError {
		messageStyle = m.styles.ErrorStyle()
		icon = m.styles.ErrorStyle().Render("✗") + " "
	}

	statusText := ""
	if m.statusMessage != "" {
		statusText = icon + messageStyle.Render(m.statusMessage)
	}

	helpView := m.help.View(m.keys)

	statusWidth := lipgloss.Width(statusText)
	helpWidth := lipgloss.Width(helpView)
	spacerWidth := width - statusWidth - helpWidth
	if spacerWidth < 1 {
		spacerWidth = 1
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Bottom,
		statusText,
		strings.Repeat(" ", spacerWidth),
		helpView,
	)
	return lipgloss.NewStyle().MaxWidth(width).Render(bar)
}

// renderLogEntry formats a single log entry for display.
func (m Model) renderLogEntry(entry logging.LogEntry) string {
	ts := m.styles.LogTimestampStyle().Render(entry.Timestamp.Format("15:04:05"))
	level := m.styles.LogLevelStyle(entry.Level).Render(entry.Level)
	scope := m.styles.LogScopeStyle().Render("[" + entry.Scope + "]")
	return fmt.Sprintf("%s %s %s %s", ts, level, scope, entry.Message)
}

// renderLogPanel renders the newest entries that fit below a header line.
func (m Model) renderLogPanel(region layout.Rect) string {
	header := m.styles.PanelHeaderStyle().Width(region.Width).Render(ansi.Truncate(" Logs", region.Width, ""))

	rows := region.Height - 1
	entries := m.logEntries
	if len(entries) > rows {
		entries = entries[len(entries)-rows:]
	}

	lines := make([]string, 0, rows)
	for _, entry := range entries {
		lines = append(lines, ansi.Truncate(m.renderLogEntry(entry), region.Width, "…"))
	}
	if len(lines) == 0 {
		lines = append(lines, m.styles.DimStyle().Render("No log entries"))
	}

	body := lipgloss.NewStyle().
		Width(region.Width).
		Height(rows).
		MaxHeight(rows).
		Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

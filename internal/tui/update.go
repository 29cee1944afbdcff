// pattern: Imperative Shell

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"splitpane/internal/events"
	"splitpane/internal/layout"
	"splitpane/internal/logging"
	"splitpane/internal/registry"
	"splitpane/internal/resize"
	"splitpane/internal/split"
)

// animateMsg drives the splitter highlight tween.
type animateMsg struct {
	time time.Time
}

// logEntriesMsg delivers log entries from the logging channel.
type logEntriesMsg struct {
	entries []logging.LogEntry
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m.relayout()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case animateMsg:
		if !m.highlight.Done(m.now()) {
			return m, animate()
		}
		if m.drag == nil {
			m.highlightID = ""
		}
		return m, nil

	case logEntriesMsg:
		m.logEntries = append(m.logEntries, msg.entries...)
		if over := len(m.logEntries) - maxLogEntries; over > 0 {
			m.logEntries = m.logEntries[over:]
		}
		return m, consumeLogEntries(m.logs.Entries())

	case events.ThemeChangedMsg:
		if msg.Theme == m.themeName {
			return m, nil
		}
		m.themeName = msg.Theme
		m.styles = NewStyles(msg.Theme)
		m.logger.Info("theme changed", "theme", msg.Theme)
		target := m.styles.SplitterHex()
		if m.drag != nil {
			target = m.styles.SplitterActiveHex()
		}
		_ = m.highlight.Set(target, m.now())
		return m, animate()

	case events.ConfigErrorMsg:
		m.setError(fmt.Errorf("config reload: %w", msg.Err))
		return m, nil
	}

	return m, nil
}

// relayout builds the session on first use, otherwise re-clamps every split
// against the extent it has in the current content region.
func (m Model) relayout() (tea.Model, tea.Cmd) {
	content := m.chrome().Content
	if content.Width <= 0 || content.Height <= 0 {
		return m, nil
	}

	if m.session == nil {
		s, err := m.cfg.NewSession(m.logs.For("layout"), content.Width, content.Height)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.attach(s)
		return m, nil
	}

	extents := layout.Compute(m.session.Snapshot(), content.Width, content.Height).ContainerSizes()
	if err := m.session.ApplyContainerResize(extents); err != nil {
		m.setError(err)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleLogs):
		m.logPanelOpen = !m.logPanelOpen
		return m.relayout()
	case key.Matches(msg, m.keys.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m.relayout()
	}

	if m.session == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.SplitVertical):
		m.splitFocused(false)
	case key.Matches(msg, m.keys.SplitHorizontal):
		m.splitFocused(true)
	case key.Matches(msg, m.keys.Merge):
		m.mergeFocused()
	case key.Matches(msg, m.keys.Wrap):
		m.wrapRoot()
	case key.Matches(msg, m.keys.Reset):
		m.resetFocused()
	case key.Matches(msg, m.keys.Grow):
		m.nudgeFocused(1)
	case key.Matches(msg, m.keys.Shrink):
		m.nudgeFocused(-1)
	case key.Matches(msg, m.keys.NextPane):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevPane):
		m.cycleFocus(-1)
	}
	return m, nil
}

func (m *Model) splitFocused(horizontal bool) {
	rect, ok := m.geometry().Panes[m.focused]
	if !ok {
		return
	}

	overrides := split.Overrides{Horizontal: &horizontal}
	extent := layout.MainExtent(m.session.Resolver().Resolve(overrides), rect)
	id := m.focused
	primary, secondary := m.newPaneID(), m.newPaneID()

	if err := m.session.CreateSplit(id, primary, secondary, overrides, extent); err != nil {
		m.setError(err)
		return
	}
	m.focused = primary
	m.setStatus(fmt.Sprintf("split %s", id))
}

func (m *Model) mergeFocused() {
	parent, ok := m.session.Registry().Parent(m.focused)
	if !ok {
		m.setStatus("nothing to merge")
		return
	}
	if err := m.session.RemoveSplit(parent); err != nil {
		m.setError(err)
		return
	}
	m.focused = parent
	m.setStatus(fmt.Sprintf("merged %s", parent))
}

func (m *Model) wrapRoot() {
	if m.session.Registry().Root() == "" {
		m.splitFocused(false)
		return
	}

	vertical := false
	overrides := split.Overrides{Horizontal: &vertical}
	extent := layout.MainExtent(m.session.Resolver().Resolve(overrides), m.chrome().Content)
	id, other := m.newPaneID(), m.newPaneID()

	if err := m.session.WrapRoot(id, true, other, overrides, extent); err != nil {
		m.setError(err)
		return
	}
	m.focused = other
	m.setStatus(fmt.Sprintf("wrapped root in %s", id))
}

func (m *Model) resetFocused() {
	parent, ok := m.session.Registry().Parent(m.focused)
	if !ok {
		m.setStatus("nothing to reset")
		return
	}
	m.resetSplit(parent)
}

func (m *Model) resetSplit(id registry.PaneID) {
	info, ok := m.session.Registry().Get(id)
	if !ok {
		return
	}
	if info.Options != nil && !info.Options.ResetOnDoubleClick {
		m.setStatus(fmt.Sprintf("%s does not reset", id))
		return
	}
	if err := m.session.Reset(id, m.geometry().Extents[id]); err != nil {
		m.setError(err)
		return
	}
	m.showPercent(id)
}

// nudgeFocused moves the splitter next to the focused pane by one cell,
// growing the pane for positive d.
func (m *Model) nudgeFocused(d float64) {
	parent, ok := m.session.Registry().Parent(m.focused)
	if !ok {
		return
	}
	info, _ := m.session.Registry().Get(parent)
	if info.SecondaryID == m.focused {
		d = -d
	}
	if err := m.session.ApplyDrag(parent, d, m.geometry().Extents[parent]); err != nil {
		m.setError(err)
		return
	}
	m.showPercent(parent)
}

func (m *Model) cycleFocus(step int) {
	leaves := m.geometry().Leaves
	if len(leaves) == 0 {
		return
	}
	idx := 0
	for i, id := range leaves {
		if id == m.focused {
			idx = i
			break
		}
	}
	idx = (idx + step + len(leaves)) % len(leaves)
	m.focused = leaves[idx]
}

func (m *Model) showPercent(id registry.PaneID) {
	if info, ok := m.session.Registry().Get(id); ok {
		m.setStatus(fmt.Sprintf("%s %.1f%% (%s)", id, info.Percent, info.State))
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	now := m.now()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		geom := m.geometry()
		id, onSplitter := geom.SplitterAt(msg.X, msg.Y)
		if !onSplitter {
			if leaf, ok := geom.LeafAt(msg.X, msg.Y); ok {
				m.focused = leaf
			}
			return m, nil
		}

		if m.lastClick.id == id && now.Sub(m.lastClick.at) <= doubleClickWindow {
			m.lastClick = clickState{}
			m.resetSplit(id)
			return m, nil
		}
		m.lastClick = clickState{id: id, at: now}
		m.drag = &dragState{id: id, x: msg.X, y: msg.Y}
		m.highlightID = id
		_ = m.highlight.Set(m.styles.SplitterActiveHex(), now)
		m.logger.Debug("drag start", "id", id, "x", msg.X, "y", msg.Y)
		return m, animate()

	case tea.MouseActionMotion:
		if m.drag == nil {
			return m, nil
		}
		id := m.drag.id
		info, ok := m.session.Registry().Get(id)
		if !ok {
			m.drag = nil
			return m, nil
		}
		opts := resize.Effective(info, m.session.Resolver().Defaults())

		delta := resize.AxisDelta(opts, float64(msg.X-m.drag.x), float64(msg.Y-m.drag.y))
		m.drag = &dragState{id: id, x: msg.X, y: msg.Y}
		if delta == 0 {
			return m, nil
		}
		if err := m.session.ApplyDrag(id, delta, m.geometry().Extents[id]); err != nil {
			m.setError(err)
			return m, nil
		}
		m.showPercent(id)
		return m, nil

	case tea.MouseActionRelease:
		if m.drag == nil {
			return m, nil
		}
		m.logger.Debug("drag end", "id", m.drag.id)
		m.drag = nil
		_ = m.highlight.Set(m.styles.SplitterHex(), now)
		return m, animate()
	}

	return m, nil
}

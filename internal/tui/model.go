// pattern: Imperative Shell

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"splitpane/internal/config"
	"splitpane/internal/layout"
	"splitpane/internal/logging"
	"splitpane/internal/registry"
	"splitpane/internal/tween"
)

// doubleClickWindow is the maximum time between two presses on the same
// splitter to count as a double click.
const doubleClickWindow = 400 * time.Millisecond

// frameInterval paces the splitter highlight animation.
const frameInterval = 16 * time.Millisecond

const maxLogEntries = 200

// LogSource supplies scoped loggers and the entry stream for the log panel.
// Both logging.Manager and logging.TestLogManager implement it.
type LogSource interface {
	logging.LoggerProvider
	Entries() <-chan logging.LogEntry
}

// StatusLevel represents the severity of a status bar message.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusError
)

func (s StatusLevel) String() string {
	if s == StatusError {
		return "error"
	}
	return "info"
}

type dragState struct {
	id   registry.PaneID
	x, y int // Pointer position of the last applied event
}

type clickState struct {
	id registry.PaneID
	at time.Time
}

// geometryCache holds the latest committed snapshot and the geometry
// computed from it. The session observer marks it dirty on every commit.
type geometryCache struct {
	snap   registry.Snapshot
	geom   layout.Geometry
	width  int
	height int
	dirty  bool
}

// Model represents the TUI application state.
type Model struct {
	width     int
	height    int
	themeName string
	styles    *Styles
	keys      keyMap
	help      help.Model

	cfg    *config.Config
	logs   LogSource
	logger *logging.ScopedLogger

	session  *layout.Session
	cache    *geometryCache
	focused  registry.PaneID
	nextPane int

	drag        *dragState
	lastClick   clickState
	highlight   *tween.Color
	highlightID registry.PaneID

	logPanelOpen bool
	logEntries   []logging.LogEntry

	statusMessage string
	statusLevel   StatusLevel

	now func() time.Time
}

// NewModel creates a new TUI model. The layout session is built from cfg on
// the first window size message, once the real container size is known.
func NewModel(cfg *config.Config, logs LogSource) Model {
	styles := NewStyles(cfg.Theme)
	// Flavor colors are always valid hex.
	highlight, _ := tween.New(styles.SplitterHex())

	return Model{
		themeName: cfg.Theme,
		styles:    styles,
		keys:      defaultKeyMap(),
		help:      help.New(),
		cfg:       cfg,
		logs:      logs,
		logger:    logs.For("tui"),
		cache:     &geometryCache{dirty: true},
		highlight: highlight,
		now:       time.Now,
	}
}

// Init returns the initial command to run.
func (m Model) Init() tea.Cmd {
	return consumeLogEntries(m.logs.Entries())
}

// Session returns the layout session, nil until the first window size.
func (m Model) Session() *layout.Session {
	return m.session
}

// attach wires a freshly built session into the model.
func (m *Model) attach(s *layout.Session) {
	m.session = s
	m.cache.snap = s.Snapshot()
	m.cache.dirty = true

	cache := m.cache
	s.Subscribe(func(snap registry.Snapshot) {
		cache.snap = snap
		cache.dirty = true
	})

	if g := m.geometry(); len(g.Leaves) > 0 {
		m.focused = g.Leaves[0]
	} else {
		m.focused = "main"
		m.cache.dirty = true
	}
	m.logger.Info("layout ready", "root", s.Snapshot().Root, "splits", s.Registry().Len())
}

func (m Model) chrome() Layout {
	statusHeight := 1
	if m.help.ShowAll {
		statusHeight = max(lipgloss.Height(m.help.View(m.keys)), 1)
	}
	return ComputeLayout(m.width, m.height, m.logPanelOpen, statusHeight)
}

// geometry returns the placement of every pane in the content region.
// An empty tree shows the focused pane alone.
func (m Model) geometry() layout.Geometry {
	if m.session == nil {
		return layout.Geometry{}
	}
	content := m.chrome().Content
	c := m.cache
	if !c.dirty && c.width == content.Width && c.height == content.Height {
		return c.geom
	}

	c.geom = layout.Compute(c.snap, content.Width, content.Height)
	if c.snap.Root == "" && m.focused != "" {
		c.geom.Panes[m.focused] = content
		c.geom.Leaves = []registry.PaneID{m.focused}
	}
	c.width, c.height, c.dirty = content.Width, content.Height, false
	return c.geom
}

func (m *Model) newPaneID() registry.PaneID {
	for {
		m.nextPane++
		id := registry.PaneID(fmt.Sprintf("pane-%d", m.nextPane))
		if _, taken := m.geometry().Panes[id]; !taken {
			return id
		}
	}
}

func (m *Model) setStatus(msg string) {
	m.statusMessage = msg
	m.statusLevel = StatusInfo
}

func (m *Model) setError(err error) {
	m.statusMessage = err.Error()
	m.statusLevel = StatusError
	m.logger.Warn("layout operation failed", "error", err)
}

// animate returns a command for the next highlight frame.
func animate() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return animateMsg{time: t}
	})
}

func consumeLogEntries(entries <-chan logging.LogEntry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-entries
		if !ok {
			return nil
		}
		batch := []logging.LogEntry{entry}
		for len(batch) < 50 {
			select {
			case e, ok := <-entries:
				if !ok {
					return logEntriesMsg{entries: batch}
				}
				batch = append(batch, e)
			default:
				return logEntriesMsg{entries: batch}
			}
		}
		return logEntriesMsg{entries: batch}
	}
}

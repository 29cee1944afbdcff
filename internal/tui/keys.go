package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	SplitVertical   key.Binding
	SplitHorizontal key.Binding
	Merge           key.Binding
	Wrap            key.Binding
	Reset           key.Binding
	Grow            key.Binding
	Shrink          key.Binding
	NextPane        key.Binding
	PrevPane        key.Binding
	ToggleLogs      key.Binding
	ToggleHelp      key.Binding
	Quit            key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		SplitVertical: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "split side by side"),
		),
		SplitHorizontal: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "split stacked"),
		),
		Merge: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "merge parent"),
		),
		Wrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wrap root"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset parent"),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "grow"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "shrink"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous pane"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "logs"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SplitVertical, k.SplitHorizontal, k.Merge, k.NextPane, k.ToggleHelp, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SplitVertical, k.SplitHorizontal, k.Merge, k.Wrap},
		{k.Reset, k.Grow, k.Shrink},
		{k.NextPane, k.PrevPane, k.ToggleLogs, k.Quit},
	}
}

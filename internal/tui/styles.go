package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	flavor catppuccin.Flavor
}

func NewStyles(themeName string) *Styles {
	flavor := flavorFromName(themeName)
	return &Styles{flavor: flavor}
}

func flavorFromName(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	case "mocha":
		return catppuccin.Mocha
	default:
		return catppuccin.Mocha
	}
}

// SplitterHex is the resting splitter color.
func (s *Styles) SplitterHex() string {
	return s.flavor.Surface2().Hex
}

// SplitterActiveHex is the color a splitter fades to while dragged.
func (s *Styles) SplitterActiveHex() string {
	return s.flavor.Mauve().Hex
}

func (s *Styles) PaneStyle(focused bool) lipgloss.Style {
	border := s.flavor.Surface1().Hex
	if focused {
		border = s.flavor.Teal().Hex
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border))
}

func (s *Styles) PaneLabelStyle(focused bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Text().Hex))
	if focused {
		style = style.Bold(true).Foreground(lipgloss.Color(s.flavor.Teal().Hex))
	}
	return style
}

func (s *Styles) SplitterStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

func (s *Styles) DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Overlay0().Hex))
}

func (s *Styles) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Overlay0().Hex))
}

func (s *Styles) InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Text().Hex))
}

func (s *Styles) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Red().Hex)).
		Bold(true)
}

func (s *Styles) PanelHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(s.flavor.Base().Hex)).
		Background(lipgloss.Color(s.flavor.Mauve().Hex))
}

func (s *Styles) LogTimestampStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Overlay0().Hex))
}

func (s *Styles) LogLevelStyle(level string) lipgloss.Style {
	color := s.flavor.Blue().Hex
	switch level {
	case "DEBUG":
		color = s.flavor.Overlay1().Hex
	case "WARN":
		color = s.flavor.Yellow().Hex
	case "ERROR":
		color = s.flavor.Red().Hex
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

func (s *Styles) LogScopeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Lavender().Hex))
}

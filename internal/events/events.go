// package events contains message types shared between the config watcher and tui packages.
package events

// ThemeChangedMsg is sent by the config watcher when the theme in the config
// file changes.
type ThemeChangedMsg struct{ Theme string }

// ConfigErrorMsg is sent when a reload of the config file fails.
type ConfigErrorMsg struct{ Err error }

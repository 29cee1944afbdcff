// pattern: Functional Core
package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
)

// ErrUsage marks an error caused by bad arguments; the command's usage line
// is printed after it.
var ErrUsage = errors.New("usage error")

// Command represents a single CLI command with its metadata and handler.
type Command struct {
	Name    string
	Summary string
	Usage   string
	Run     func(args []string, stdout io.Writer) error
}

// Group represents a group of related commands.
type Group struct {
	Name     string
	Summary  string
	Commands map[string]*Command
}

// App represents the top-level CLI application with groups and ungrouped commands.
type App struct {
	groups   map[string]*Group
	commands map[string]*Command
	version  string
	stdout   io.Writer
	stderr   io.Writer
}

// NewApp creates a new CLI application writing to the given streams.
func NewApp(version string, stdout, stderr io.Writer) *App {
	return &App{
		groups:   make(map[string]*Group),
		commands: make(map[string]*Command),
		version:  version,
		stdout:   stdout,
		stderr:   stderr,
	}
}

// AddGroup creates and registers a new command group.
func (a *App) AddGroup(name, summary string) *Group {
	g := &Group{
		Name:     name,
		Summary:  summary,
		Commands: make(map[string]*Command),
	}
	a.groups[name] = g
	return g
}

// AddCommand registers an ungrouped (top-level) command.
func (a *App) AddCommand(cmd *Command) {
	a.commands[cmd.Name] = cmd
}

// AddCommand registers a command in the group.
func (g *Group) AddCommand(cmd *Command) {
	g.Commands[cmd.Name] = cmd
}

// Execute dispatches the CLI arguments to the appropriate command.
// It reports whether the TUI should be launched and the process exit code.
func (a *App) Execute(args []string) (launchTUI bool, code int) {
	if len(args) == 0 {
		return true, 0
	}

	cmdName := args[0]

	if cmd, ok := a.commands[cmdName]; ok {
		return false, a.run(cmd, args[1:])
	}

	if group, ok := a.groups[cmdName]; ok {
		if len(args) < 2 || isHelp(args[1]) || args[1] == "help" {
			group.PrintHelp(a.stderr)
			return false, 0
		}

		if cmd, ok := group.Commands[args[1]]; ok {
			return false, a.run(cmd, args[2:])
		}

		group.PrintHelp(a.stderr)
		return false, 1
	}

	a.PrintHelp(a.stderr)
	return false, 1
}

func (a *App) run(cmd *Command, args []string) int {
	for _, arg := range args {
		if isHelp(arg) {
			fmt.Fprintf(a.stderr, "%s\n", cmd.Usage)
			return 0
		}
	}

	if err := cmd.Run(args, a.stdout); err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(a.stderr, "%s\n", cmd.Usage)
		}
		return 1
	}
	return 0
}

func isHelp(arg string) bool {
	return arg == "--help" || arg == "-h"
}

// PrintHelp prints the top-level help text.
func (a *App) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: splitpane [options] [command]\n\n")
	fmt.Fprintf(w, "Commands:\n")

	for _, name := range slices.Sorted(maps.Keys(a.commands)) {
		cmd := a.commands[name]
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}

	fmt.Fprintf(w, "  %-10s %s\n", "(none)", "Launch interactive layout demo")

	if len(a.groups) > 0 {
		fmt.Fprintf(w, "\nCommand Groups:\n")
		for _, name := range slices.Sorted(maps.Keys(a.groups)) {
			group := a.groups[name]
			fmt.Fprintf(w, "  %-10s %s\n", group.Name, group.Summary)
		}
	}

	fmt.Fprintf(w, "\nUse \"splitpane <group> help\" for group details.\n\n")
	fmt.Fprintf(w, "Options:\n")
}

// PrintHelp prints help for a specific group.
func (g *Group) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: splitpane %s <command>\n\n", g.Name)
	fmt.Fprintf(w, "Commands:\n")
	names := slices.Sorted(maps.Keys(g.Commands))
	for _, name := range names {
		cmd := g.Commands[name]
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintf(w, "\nUse \"splitpane %s <command> --help\" for command details.\n", g.Name)
}

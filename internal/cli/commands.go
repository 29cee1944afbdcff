// pattern: Imperative Shell
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	flag "github.com/spf13/pflag"

	"splitpane/internal/config"
	"splitpane/internal/layout"
	"splitpane/internal/logging"
	"splitpane/internal/registry"
)

const (
	defaultWidth  = 120
	defaultHeight = 40
)

// ResolveDataDir returns the directory for the log file.
// If configDir is specified, uses that; otherwise uses ~/.config/splitpane.
func ResolveDataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "splitpane")
	}
	return filepath.Join(home, ".config", "splitpane")
}

// LoadConfig loads the configuration from configDir, or the default location
// when configDir is empty.
func LoadConfig(configDir string) (config.Config, error) {
	if configDir != "" {
		return config.LoadFromDir(configDir)
	}
	return config.Load()
}

// BuildApp creates and configures the CLI application with all commands and groups.
func BuildApp(version, configDir string, stdout, stderr io.Writer) *App {
	app := NewApp(version, stdout, stderr)

	app.AddCommand(&Command{
		Name:    "validate",
		Summary: "Check the layout config and exit",
		Usage:   "Usage: splitpane validate [config.yaml]",
		Run: func(args []string, out io.Writer) error {
			return runValidate(configDir, args, out)
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: splitpane version",
		Run: func(args []string, out io.Writer) error {
			fmt.Fprintln(out, version)
			return nil
		},
	})

	layoutGroup := app.AddGroup("layout", "Inspect and exercise the configured layout")
	registerLayoutCommands(layoutGroup, configDir)

	return app
}

func runValidate(configDir string, args []string, out io.Writer) error {
	var (
		cfg  config.Config
		err  error
		path string
	)
	switch len(args) {
	case 0:
		path = config.Path()
		if configDir != "" {
			path = filepath.Join(configDir, "config.yaml")
		}
		cfg, err = LoadConfig(configDir)
	case 1:
		path = args[0]
		cfg, err = config.LoadFrom(path)
	default:
		return fmt.Errorf("%w: expected at most one path", ErrUsage)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(out, "%s: ok (%d splits, root %q)\n", path, len(cfg.Splits), cfg.Root)
	return nil
}

func registerLayoutCommands(g *Group, configDir string) {
	g.AddCommand(&Command{
		Name:    "tree",
		Summary: "Print the initial layout tree",
		Usage:   "Usage: splitpane layout tree [--width N] [--height N]",
		Run: func(args []string, out io.Writer) error {
			fs, width, height := sizeFlags("tree")
			if err := fs.Parse(args); err != nil {
				return fmt.Errorf("%w: %v", ErrUsage, err)
			}
			s, err := buildSession(configDir, *width, *height)
			if err != nil {
				return err
			}
			RenderTree(out, s.Snapshot(), layout.Compute(s.Snapshot(), *width, *height))
			return nil
		},
	})

	g.AddCommand(&Command{
		Name:    "drag",
		Summary: "Drag a splitter by a delta and print the result",
		Usage:   "Usage: splitpane layout drag <split-id> <delta> [--container N] [--width N] [--height N]\n\nUse -- before a negative delta.",
		Run: func(args []string, out io.Writer) error {
			fs, width, height := sizeFlags("drag")
			container := fs.Float64("container", 0, "container extent the delta is measured against (default: computed)")
			if err := fs.Parse(args); err != nil {
				return fmt.Errorf("%w: %v", ErrUsage, err)
			}
			if fs.NArg() != 2 {
				return fmt.Errorf("%w: expected <split-id> <delta>", ErrUsage)
			}
			id := registry.PaneID(fs.Arg(0))
			delta, err := strconv.ParseFloat(fs.Arg(1), 64)
			if err != nil {
				return fmt.Errorf("%w: invalid delta %q", ErrUsage, fs.Arg(1))
			}
			return runDrag(configDir, id, delta, *container, *width, *height, out)
		},
	})

	g.AddCommand(&Command{
		Name:    "resize",
		Summary: "Resize the container and print the re-clamped layout",
		Usage:   "Usage: splitpane layout resize <new-width> <new-height> [--width N] [--height N]",
		Run: func(args []string, out io.Writer) error {
			fs, width, height := sizeFlags("resize")
			if err := fs.Parse(args); err != nil {
				return fmt.Errorf("%w: %v", ErrUsage, err)
			}
			if fs.NArg() != 2 {
				return fmt.Errorf("%w: expected <new-width> <new-height>", ErrUsage)
			}
			newWidth, errW := strconv.Atoi(fs.Arg(0))
			newHeight, errH := strconv.Atoi(fs.Arg(1))
			if errW != nil || errH != nil || newWidth <= 0 || newHeight <= 0 {
				return fmt.Errorf("%w: invalid size %sx%s", ErrUsage, fs.Arg(0), fs.Arg(1))
			}
			return runResize(configDir, *width, *height, newWidth, newHeight, out)
		},
	})
}

func sizeFlags(name string) (*flag.FlagSet, *int, *int) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	width := fs.Int("width", defaultWidth, "layout width in cells")
	height := fs.Int("height", defaultHeight, "layout height in cells")
	return fs, width, height
}

func buildSession(configDir string, width, height int) (*layout.Session, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width and height must be positive", ErrUsage)
	}
	cfg, err := LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg.NewSession(logging.NopLogger(), width, height)
}

func runDrag(configDir string, id registry.PaneID, delta, container float64, width, height int, out io.Writer) error {
	s, err := buildSession(configDir, width, height)
	if err != nil {
		return err
	}

	before, ok := s.Registry().Get(id)
	if !ok {
		return fmt.Errorf("split %q: %w", id, registry.ErrNotFound)
	}
	if container == 0 {
		container = layout.Compute(s.Snapshot(), width, height).Extents[id]
	}
	if err := s.ApplyDrag(id, delta, container); err != nil {
		return err
	}
	after, _ := s.Registry().Get(id)

	fmt.Fprintf(out, "%s: %.2f%% -> %.2f%% (%s)\n", id, before.Percent, after.Percent, after.State)
	RenderTree(out, s.Snapshot(), layout.Compute(s.Snapshot(), width, height))
	return nil
}

func runResize(configDir string, width, height, newWidth, newHeight int, out io.Writer) error {
	s, err := buildSession(configDir, width, height)
	if err != nil {
		return err
	}

	// Re-clamping needs the extents each split will have at the new size.
	extents := layout.Compute(s.Snapshot(), newWidth, newHeight).ContainerSizes()
	if err := s.ApplyContainerResize(extents); err != nil {
		return err
	}

	RenderTree(out, s.Snapshot(), layout.Compute(s.Snapshot(), newWidth, newHeight))
	return nil
}

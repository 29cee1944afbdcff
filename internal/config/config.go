package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"splitpane/internal/layout"
	"splitpane/internal/logging"
	"splitpane/internal/registry"
	"splitpane/internal/split"
)

// Config is the on-disk configuration: theme, log level, split defaults and
// the initial layout tree.
type Config struct {
	Theme    string          `yaml:"theme"`
	LogLevel string          `yaml:"log_level"`
	Defaults split.Overrides `yaml:"defaults"`
	Root     string          `yaml:"root"`
	Splits   []SplitConfig   `yaml:"splits"`
}

// SplitConfig describes one split of the initial layout.
type SplitConfig struct {
	ID        string          `yaml:"id"`
	Primary   string          `yaml:"primary"`
	Secondary string          `yaml:"secondary"`
	Options   split.Overrides `yaml:"options"`
}

func ptr[T any](v T) *T { return &v }

// DefaultConfig returns a three-pane layout: a sidebar beside an editor
// stacked over a terminal.
func DefaultConfig() Config {
	return Config{
		Theme:    "mocha",
		LogLevel: "info",
		Defaults: split.Overrides{
			SplitterSize: ptr("1"),
		},
		Root: "root",
		Splits: []SplitConfig{
			{
				ID: "root", Primary: "sidebar", Secondary: "main",
				Options: split.Overrides{
					InitialPrimarySize: ptr("25%"),
					MinPrimarySize:     ptr("10"),
					MinSecondarySize:   ptr("30%"),
				},
			},
			{
				ID: "main", Primary: "editor", Secondary: "terminal",
				Options: split.Overrides{
					Horizontal:         ptr(true),
					InitialPrimarySize: ptr("70%"),
					MinSecondarySize:   ptr("3"),
					SplitterType:       ptr(split.SplitterStriped),
				},
			},
		},
	}
}

// Load reads the config from the default location.
func Load() (Config, error) {
	return LoadFrom(getConfigPath())
}

// LoadFromDir loads config.yaml from dir.
func LoadFromDir(dir string) (Config, error) {
	return LoadFrom(filepath.Join(dir, "config.yaml"))
}

// LoadFrom overlays the file at configPath on DefaultConfig. A missing file
// yields the defaults.
func LoadFrom(configPath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	if cfg.Theme == "" {
		cfg.Theme = "mocha"
	}

	return cfg, nil
}

// SplitDefaults returns the library defaults with the configured defaults
// layered on top.
func (c *Config) SplitDefaults() split.Options {
	return c.Defaults.Apply(split.Defaults())
}

// Validate checks the layout before any session is built: unique ids, a
// root that names a split, every split reachable from the root, and valid
// options for every split.
func (c *Config) Validate() error {
	if err := split.Validate(c.SplitDefaults()); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if len(c.Splits) == 0 {
		return nil
	}

	resolver := split.NewResolver(c.SplitDefaults())
	byID := make(map[string]SplitConfig, len(c.Splits))
	for _, s := range c.Splits {
		if s.ID == "" {
			return fmt.Errorf("split with empty id")
		}
		if _, dup := byID[s.ID]; dup {
			return fmt.Errorf("split %q: duplicate id", s.ID)
		}
		if s.Primary == "" || s.Secondary == "" {
			return fmt.Errorf("split %q: both primary and secondary are required", s.ID)
		}
		if err := split.Validate(resolver.Resolve(s.Options)); err != nil {
			return fmt.Errorf("split %q: %w", s.ID, err)
		}
		byID[s.ID] = s
	}

	if _, ok := byID[c.Root]; !ok {
		return fmt.Errorf("root %q is not a configured split", c.Root)
	}

	seen := make(map[string]bool)
	queue := []string{c.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			return fmt.Errorf("pane %q appears more than once in the layout", id)
		}
		seen[id] = true
		if s, ok := byID[id]; ok {
			queue = append(queue, s.Primary, s.Secondary)
		}
	}
	for id := range byID {
		if !seen[id] {
			return fmt.Errorf("split %q is not reachable from root %q", id, c.Root)
		}
	}
	return nil
}

// NewSession validates the config and builds a layout session sized for a
// width x height area. Splits are created top-down so that absolute initial
// sizes resolve against their real container.
func (c *Config) NewSession(logger *logging.ScopedLogger, width, height int) (*layout.Session, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	s := layout.New(layout.WithDefaults(c.SplitDefaults()), layout.WithLogger(logger))
	if len(c.Splits) == 0 {
		return s, nil
	}

	byID := make(map[string]SplitConfig, len(c.Splits))
	for _, sc := range c.Splits {
		byID[sc.ID] = sc
	}

	err := s.Batch(func() error {
		queue := []string{c.Root}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			sc, ok := byID[id]
			if !ok {
				continue
			}

			rect := layout.Rect{Width: width, Height: height}
			if id != c.Root {
				rect = layout.Compute(s.Snapshot(), width, height).Panes[registry.PaneID(id)]
			}
			extent := layout.MainExtent(s.Resolver().Resolve(sc.Options), rect)

			if err := s.CreateSplit(registry.PaneID(sc.ID), registry.PaneID(sc.Primary), registry.PaneID(sc.Secondary), sc.Options, extent); err != nil {
				return err
			}
			queue = append(queue, sc.Primary, sc.Secondary)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the config file location used by Load.
func Path() string {
	return getConfigPath()
}

func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "splitpane", "config.yaml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "splitpane", "config.yaml")
	}

	return filepath.Join(home, ".config", "splitpane", "config.yaml")
}

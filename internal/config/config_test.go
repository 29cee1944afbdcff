package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splitpane/internal/layout"
	"splitpane/internal/logging"
	"splitpane/internal/registry"
	"splitpane/internal/size"
	"splitpane/internal/split"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Theme != "mocha" {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, "mocha")
	}
}

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if len(cfg.Splits) != len(DefaultConfig().Splits) {
		t.Errorf("Splits: got %d, want default layout", len(cfg.Splits))
	}
}

func TestLoadFrom_FullConfig(t *testing.T) {
	path := writeConfig(t, `
theme: latte
log_level: debug
defaults:
  splitter_size: "2"
  reset_on_double_click: false
root: outer
splits:
  - id: outer
    primary: left
    secondary: right
    options:
      horizontal: true
      min_primary_size: 10%
      some_future_option: 3
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Theme != "latte" {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, "latte")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Root != "outer" || len(cfg.Splits) != 1 {
		t.Fatalf("layout: root %q with %d splits, want outer with 1", cfg.Root, len(cfg.Splits))
	}

	defaults := cfg.SplitDefaults()
	if defaults.SplitterSize != "2" || defaults.ResetOnDoubleClick {
		t.Errorf("SplitDefaults() = %+v, want splitter 2 and no reset", defaults)
	}
	if defaults.InitialPrimarySize != "50%" {
		t.Errorf("unset default should fall back to library value, got %q", defaults.InitialPrimarySize)
	}

	opts := split.NewResolver(defaults).Resolve(cfg.Splits[0].Options)
	if !opts.Horizontal || opts.MinPrimarySize != "10%" {
		t.Errorf("resolved options = %+v", opts)
	}
}

func TestLoadFrom_EmptyThemeFallsBack(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, "theme: \"\"\n"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Theme != "mocha" {
		t.Errorf("Theme: got %q, want mocha", cfg.Theme)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	_, err := LoadFrom(writeConfig(t, "splits: ["))
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	_ = os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("theme: frappe\n"), 0644)
	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}
	if cfg.Theme != "frappe" {
		t.Errorf("Theme: got %q, want frappe", cfg.Theme)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing root", func(c *Config) { c.Root = "nope" }, "root"},
		{"duplicate id", func(c *Config) { c.Splits = append(c.Splits, c.Splits[0]) }, "duplicate"},
		{"empty id", func(c *Config) { c.Splits[1].ID = "" }, "empty id"},
		{"missing child", func(c *Config) { c.Splits[0].Secondary = "" }, "required"},
		{"unreachable split", func(c *Config) { c.Splits[0].Secondary = "elsewhere" }, "not reachable"},
		{"cycle", func(c *Config) { c.Splits[1].Secondary = "root" }, "more than once"},
		{"bad size", func(c *Config) { c.Splits[1].Options.MinSecondarySize = ptr("tall") }, "invalid size"},
		{"bad defaults", func(c *Config) { c.Defaults.InitialPrimarySize = ptr("x") }, "defaults"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ConstraintConflict(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Splits[0].Options.MinPrimarySize = ptr("80%")
	if err := cfg.Validate(); !errors.Is(err, split.ErrConstraintConflict) {
		t.Errorf("Validate() error = %v, want ErrConstraintConflict", err)
	}
}

func TestValidate_InvalidSizeIsWrapped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Splits[0].Options.InitialPrimarySize = ptr("wide")
	if err := cfg.Validate(); !errors.Is(err, size.ErrInvalidSizeFormat) {
		t.Errorf("Validate() error = %v, want ErrInvalidSizeFormat", err)
	}
}

func TestNewSession_BuildsLayoutTopDown(t *testing.T) {
	cfg := DefaultConfig()
	s, err := cfg.NewSession(logging.NopLogger(), 81, 21)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	snap := s.Snapshot()
	if snap.Root != "root" {
		t.Errorf("Root = %q, want root", snap.Root)
	}
	if len(snap.Splits) != 2 {
		t.Fatalf("splits = %d, want 2", len(snap.Splits))
	}
	root, _ := snap.Get("root")
	if root.Percent != 25 {
		t.Errorf("root percent = %v, want 25", root.Percent)
	}
	main, _ := snap.Get("main")
	if main.Percent != 70 || !main.Options.Horizontal {
		t.Errorf("main = %+v, want 70%% horizontal", main)
	}
	if s.Frozen() {
		t.Error("session should not be left frozen")
	}
}

func TestNewSession_AbsoluteInitialSizeUsesNestedContainer(t *testing.T) {
	cfg := Config{
		Theme: "mocha",
		Defaults: split.Overrides{
			SplitterSize: ptr("0"),
		},
		Root: "root",
		Splits: []SplitConfig{
			{ID: "root", Primary: "a", Secondary: "inner"},
			{ID: "inner", Primary: "b", Secondary: "c", Options: split.Overrides{InitialPrimarySize: ptr("10")}},
		},
	}

	s, err := cfg.NewSession(logging.NopLogger(), 80, 10)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	// inner gets half of 80 cells, so 10 cells is 25%.
	inner, _ := s.Registry().Get("inner")
	if inner.Percent != 25 {
		t.Errorf("inner percent = %v, want 25", inner.Percent)
	}
	g := layout.Compute(s.Snapshot(), 80, 10)
	if w := g.Panes[registry.PaneID("b")].Width; w != 10 {
		t.Errorf("pane b width = %d, want 10", w)
	}
}

func TestNewSession_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Root = ""
	if _, err := cfg.NewSession(logging.NopLogger(), 80, 24); err == nil {
		t.Error("NewSession should fail validation")
	}
}

func TestNewSession_EmptyLayout(t *testing.T) {
	cfg := Config{Theme: "mocha"}
	s, err := cfg.NewSession(logging.NopLogger(), 80, 24)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	if s.Registry().Len() != 0 {
		t.Error("empty config should build an empty session")
	}
}

func TestGetConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := Path(); got != filepath.Join("/tmp/xdg", "splitpane", "config.yaml") {
		t.Errorf("Path() = %q", got)
	}
}

// pattern: Imperative Shell
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"splitpane/internal/cli"
	"splitpane/internal/config"
	"splitpane/internal/events"
	"splitpane/internal/instance"
	"splitpane/internal/logging"
	"splitpane/internal/tui"
)

var version = "dev"

func main() {
	// Stop parsing flags after the first non-flag arg (the subcommand),
	// so that --help after a subcommand is handled by the subcommand.
	flag.CommandLine.SetInterspersed(false)

	configDir := flag.StringP("config-dir", "c", "", "config directory (default: ~/.config/splitpane)")
	logLevel := flag.String("log-level", "", "override the configured log level (debug, info, warn, error)")

	// Override flag.Usage before Parse so --help uses the CLI app's help
	flag.Usage = func() {
		app := cli.BuildApp(version, *configDir, os.Stdout, os.Stderr)
		app.PrintHelp(os.Stderr)
		flag.PrintDefaults()
	}

	flag.Parse()

	app := cli.BuildApp(version, *configDir, os.Stdout, os.Stderr)

	launch, code := app.Execute(flag.Args())
	if !launch {
		os.Exit(code)
	}
	runTUI(*configDir, *logLevel)
}

// runTUI launches the interactive layout demo.
func runTUI(configDir, logLevel string) {
	cfg, err := cli.LoadConfig(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid layout config: %v\n", err)
		os.Exit(1)
	}

	dataDir := cli.ResolveDataDir(configDir)
	logFile, err := instance.AcquireLog(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Release()

	logManager, err := newLogManager(logFile.Path, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("application starting", "version", version, "log", logFile.Path, "shared_log", logFile.Owner())

	model := tui.NewModel(&cfg, logManager)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startConfigWatcher(ctx, configPath(configDir), cfg.Theme, logManager.For("config"), func(msg any) { p.Send(msg) })

	if _, err := p.Run(); err != nil {
		appLogger.Error("application exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	appLogger.Info("application stopped")
}

func newLogManager(path, level string) (*logging.Manager, error) {
	return logging.NewManager(logging.Config{
		FilePath:       path,
		MaxSizeMB:      10,
		MaxBackups:     3,
		MaxAgeDays:     7,
		ChannelBufSize: 1000,
		Level:          level,
	})
}

func configPath(configDir string) string {
	if configDir != "" {
		return filepath.Join(configDir, "config.yaml")
	}
	return config.Path()
}

// startConfigWatcher forwards theme changes in the config file to send.
// Watching is best effort: a missing config directory only logs a warning.
func startConfigWatcher(ctx context.Context, path, theme string, logger *logging.ScopedLogger, send func(any)) {
	current := theme
	w, err := config.NewWatcher(path, logger, func(c config.Config) {
		if c.Theme != current {
			current = c.Theme
			send(events.ThemeChangedMsg{Theme: c.Theme})
		}
	}, func(err error) {
		send(events.ConfigErrorMsg{Err: err})
	})
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
		return
	}

	go func() {
		if err := w.Start(ctx); err != nil {
			logger.Warn("config watcher stopped", "path", path, "error", err)
		}
	}()
}

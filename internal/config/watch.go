// pattern: Imperative Shell

package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"splitpane/internal/logging"
)

// Watcher reloads the config file when it changes and reports the theme.
// Split defaults and the initial layout are read once at startup; only
// presentation settings are picked up live.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *logging.ScopedLogger
	onChange func(Config)
	onError  func(error)
}

// NewWatcher creates a watcher for the config file at path. onChange runs on
// the watcher goroutine after every successful reload and onError, if set,
// after every failed one.
func NewWatcher(path string, logger *logging.ScopedLogger, onChange func(Config), onError func(error)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	return &Watcher{path: path, watcher: w, logger: logger, onChange: onChange, onError: onError}, nil
}

// Start watches until ctx is cancelled. The parent directory is watched so
// editors that replace the file atomically are handled.
func (w *Watcher) Start(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			cfg, err := LoadFrom(w.path)
			if err != nil {
				w.logger.Warn("config reload failed", "path", w.path, "error", err)
				if w.onError != nil {
					w.onError(err)
				}
				continue
			}
			w.logger.Debug("config reloaded", "path", w.path, "theme", cfg.Theme)
			w.onChange(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"splitpane/internal/events"
	"splitpane/internal/logging"
)

func TestLogManagerInitialization(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	lm, err := newLogManager(logPath, "debug")
	if err != nil {
		t.Fatalf("failed to create LogManager: %v", err)
	}
	defer lm.Close()

	logger := lm.For("app")
	logger.Info("test message")
	_ = lm.Sync()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("log file was not created")
	}

	select {
	case entry := <-lm.Entries():
		if entry.Scope != "app" {
			t.Errorf("expected scope 'app', got %q", entry.Scope)
		}
		if entry.Message != "test message" {
			t.Errorf("expected message 'test message', got %q", entry.Message)
		}
	default:
		t.Error("no log entry received on channel")
	}
}

func TestConfigPath(t *testing.T) {
	if got := configPath("/tmp/cfg"); got != filepath.Join("/tmp/cfg", "config.yaml") {
		t.Errorf("configPath(dir) = %q", got)
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := configPath(""); got != filepath.Join("/tmp/xdg", "splitpane", "config.yaml") {
		t.Errorf("configPath(\"\") = %q", got)
	}
}

func TestStartConfigWatcher_SendsThemeChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("theme: mocha\n"), 0644); err != nil {
		t.Fatal(err)
	}

	msgs := make(chan any, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startConfigWatcher(ctx, path, "mocha", logging.NopLogger(), func(msg any) { msgs <- msg })

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("theme: frappe\n"), 0644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case msg := <-msgs:
			if tc, ok := msg.(events.ThemeChangedMsg); ok {
				if tc.Theme != "frappe" {
					t.Errorf("theme = %q, want frappe", tc.Theme)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for ThemeChangedMsg")
		}
	}
}

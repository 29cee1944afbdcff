// pattern: Imperative Shell

package logging

import "testing"

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	if logger == nil {
		t.Fatal("NopLogger() returned nil")
	}

	// Should not panic
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")
	logger.With("key", "value").Info("test with fields")
}

func TestNilScopedLogger(t *testing.T) {
	var logger *ScopedLogger
	logger.Info("ignored")
	if logger.With("k", "v") != nil {
		t.Error("With on nil logger should return nil")
	}
	if logger.Scope() != "" {
		t.Error("Scope on nil logger should be empty")
	}
}

func TestTestLogManager(t *testing.T) {
	lm := NewTestLogManager(10)
	defer func() { _ = lm.Close() }()

	logger := lm.For("layout.test")
	if lm.For("layout.test") != logger {
		t.Error("For() should cache loggers per scope")
	}

	logger.With("id", "root").Debug("split created")

	entries := lm.Drain()
	if len(entries) != 1 {
		t.Fatalf("Drain() returned %d entries, want 1", len(entries))
	}
	if entries[0].Scope != "layout.test" {
		t.Errorf("Scope = %q, want %q", entries[0].Scope, "layout.test")
	}
	if entries[0].Level != "DEBUG" {
		t.Errorf("Level = %q, want DEBUG", entries[0].Level)
	}
	if entries[0].Fields["id"] != "root" {
		t.Errorf("Fields[id] = %v, want root", entries[0].Fields["id"])
	}
}

package tween

import (
	"testing"
	"time"
)

func TestNew_RestsAtColor(t *testing.T) {
	c, err := New("#0f2c4a")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := c.Value(time.Now()); got != "#0f2c4a" {
		t.Errorf("Value() = %q, want %q", got, "#0f2c4a")
	}
}

func TestNew_InvalidColor(t *testing.T) {
	if _, err := New("#zzzzzz"); err == nil {
		t.Error("New() should reject non-hex colors")
	}
}

func TestSet_Interpolates(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c, _ := New("#000000")
	if err := c.Set("#ffffff", start); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	tests := []struct {
		offset time.Duration
		want   string
	}{
		{0, "#000000"},
		{DefaultDuration / 2, "#808080"},
		{DefaultDuration, "#ffffff"},
		{2 * DefaultDuration, "#ffffff"},
	}
	for _, tt := range tests {
		if got := c.Value(start.Add(tt.offset)); got != tt.want {
			t.Errorf("Value(+%v) = %q, want %q", tt.offset, got, tt.want)
		}
	}

	if c.Done(start.Add(DefaultDuration / 2)) {
		t.Error("Done() should be false mid-transition")
	}
	if !c.Done(start.Add(DefaultDuration)) {
		t.Error("Done() should be true at the end of the transition")
	}
}

func TestSet_PreservesPrefixStyle(t *testing.T) {
	c, _ := New("#112233")
	now := time.Now()
	_ = c.Set("445566", now)
	if got := c.Value(now.Add(DefaultDuration)); got != "445566" {
		t.Errorf("Value() = %q, want %q without prefix", got, "445566")
	}
}

func TestSet_RetargetMidTransition(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c, _ := New("#000000")
	_ = c.Set("#ffffff", start)

	mid := start.Add(DefaultDuration / 2)
	_ = c.Set("#000000", mid)

	if got := c.Value(mid); got != "#808080" {
		t.Errorf("Value() at retarget = %q, want %q (continues from shown color)", got, "#808080")
	}
}

func TestSet_InvalidColorKeepsState(t *testing.T) {
	c, _ := New("#123456")
	if err := c.Set("nope", time.Now()); err == nil {
		t.Error("Set() should reject invalid colors")
	}
	if got := c.Value(time.Now()); got != "#123456" {
		t.Errorf("Value() = %q, want unchanged %q", got, "#123456")
	}
}

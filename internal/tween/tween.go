// pattern: Functional Core

// Package tween interpolates hex colors over time for splitter highlight
// feedback.
package tween

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultDuration is the length of a highlight transition.
const DefaultDuration = 300 * time.Millisecond

// Color is a tweened hex color. The zero value is not usable; create one
// with New.
type Color struct {
	from     colorful.Color
	to       colorful.Color
	pound    bool
	start    time.Time
	duration time.Duration
}

func parseHex(hex string) (colorful.Color, bool, error) {
	pound := strings.HasPrefix(hex, "#")
	c, err := colorful.Hex("#" + strings.TrimPrefix(hex, "#"))
	if err != nil {
		return colorful.Color{}, pound, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return c, pound, nil
}

// New returns a color resting at hex, e.g. "#0f2c4a" or "0f2c4a".
func New(hex string) (*Color, error) {
	c, pound, err := parseHex(hex)
	if err != nil {
		return nil, err
	}
	return &Color{from: c, to: c, pound: pound, duration: DefaultDuration}, nil
}

// Set starts a transition from the color shown at now toward hex. The
// output keeps the "#" prefix style of hex.
func (c *Color) Set(hex string, now time.Time) error {
	to, pound, err := parseHex(hex)
	if err != nil {
		return err
	}
	c.from = c.at(now)
	c.to = to
	c.pound = pound
	c.start = now
	return nil
}

// Done reports whether the transition has finished at now.
func (c *Color) Done(now time.Time) bool {
	return c.start.IsZero() || now.Sub(c.start) >= c.duration
}

// Value returns the hex color at now.
func (c *Color) Value(now time.Time) string {
	hex := c.at(now).Clamped().Hex()
	if !c.pound {
		return strings.TrimPrefix(hex, "#")
	}
	return hex
}

func (c *Color) at(now time.Time) colorful.Color {
	if c.Done(now) {
		return c.to
	}
	t := float64(now.Sub(c.start)) / float64(c.duration)
	return c.from.BlendRgb(c.to, t)
}

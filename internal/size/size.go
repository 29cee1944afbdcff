// pattern: Functional Core

package size

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidSizeFormat is returned when a size string is neither a percentage
// nor a parseable absolute length.
var ErrInvalidSizeFormat = errors.New("invalid size format")

// Unit specifies how a Size is interpreted.
type Unit uint8

const (
	UnitAbsolute Unit = iota // Same unit as the container extent (cells or pixels)
	UnitPercent              // Percentage of the container extent
)

// Size is a parsed size string such as "50%", "7px" or "12".
type Size struct {
	Amount float64
	Unit   Unit
}

// Percent returns a percentage Size. The value is on a 0-100 scale.
func Percent(p float64) Size {
	return Size{Amount: p, Unit: UnitPercent}
}

// Absolute returns an absolute Size.
func Absolute(n float64) Size {
	return Size{Amount: n, Unit: UnitAbsolute}
}

// Parse converts a size string into a Size.
// A trailing "%" marks a percentage; otherwise the string is an absolute
// length with an optional "px" suffix.
func Parse(s string) (Size, error) {
	raw := strings.TrimSpace(s)
	unit := UnitAbsolute
	switch {
	case strings.HasSuffix(raw, "%"):
		unit = UnitPercent
		raw = strings.TrimSpace(strings.TrimSuffix(raw, "%"))
	case strings.HasSuffix(raw, "px"):
		raw = strings.TrimSpace(strings.TrimSuffix(raw, "px"))
	}

	if raw == "" {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSizeFormat, s)
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSizeFormat, s)
	}

	return Size{Amount: amount, Unit: unit}, nil
}

// MustParse is like Parse but panics on error. Use for constants.
func MustParse(s string) Size {
	sz, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return sz
}

// Percent resolves the size to a percentage of container.
// Absolute sizes against a non-positive container resolve to 0.
func (s Size) Percent(container float64) float64 {
	if s.Unit == UnitPercent {
		return s.Amount
	}
	if container <= 0 {
		return 0
	}
	return s.Amount / container * 100
}

// Cells resolves the size to a whole number of units within container.
func (s Size) Cells(container int) int {
	if s.Unit == UnitPercent {
		return int(float64(container) * s.Amount / 100.0)
	}
	return int(s.Amount)
}

// String formats the size back into its string form.
func (s Size) String() string {
	v := strconv.FormatFloat(s.Amount, 'f', -1, 64)
	if s.Unit == UnitPercent {
		return v + "%"
	}
	return v
}

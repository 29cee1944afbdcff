// pattern: Functional Core

package split

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"splitpane/internal/size"
)

// ErrConstraintConflict is returned when the primary and secondary minimums
// cannot both be satisfied.
var ErrConstraintConflict = errors.New("minimum sizes exceed 100%")

// SplitterType selects the visual variant of the splitter.
type SplitterType string

const (
	SplitterDefault SplitterType = "default"
	SplitterSolid   SplitterType = "solid"
	SplitterStriped SplitterType = "striped"
)

// Valid reports whether t is a known splitter type.
func (t SplitterType) Valid() bool {
	switch t {
	case SplitterDefault, SplitterSolid, SplitterStriped:
		return true
	}
	return false
}

// Options is the effective configuration of one split.
type Options struct {
	Horizontal         bool         `yaml:"horizontal"`
	InitialPrimarySize string       `yaml:"initial_primary_size"`
	MinPrimarySize     string       `yaml:"min_primary_size"`
	MinSecondarySize   string       `yaml:"min_secondary_size"`
	SplitterSize       string       `yaml:"splitter_size"`
	ResetOnDoubleClick bool         `yaml:"reset_on_double_click"`
	SplitterType       SplitterType `yaml:"splitter_type"`
}

// Defaults returns the library-wide default options.
func Defaults() Options {
	return Options{
		Horizontal:         false,
		InitialPrimarySize: "50%",
		MinPrimarySize:     "0",
		MinSecondarySize:   "0",
		SplitterSize:       "7px",
		ResetOnDoubleClick: true,
		SplitterType:       SplitterDefault,
	}
}

// Overrides holds per-split option overrides. A nil field means "use the default".
type Overrides struct {
	Horizontal         *bool         `yaml:"horizontal,omitempty"`
	InitialPrimarySize *string       `yaml:"initial_primary_size,omitempty"`
	MinPrimarySize     *string       `yaml:"min_primary_size,omitempty"`
	MinSecondarySize   *string       `yaml:"min_secondary_size,omitempty"`
	SplitterSize       *string       `yaml:"splitter_size,omitempty"`
	ResetOnDoubleClick *bool         `yaml:"reset_on_double_click,omitempty"`
	SplitterType       *SplitterType `yaml:"splitter_type,omitempty"`
}

// ParseOverrides decodes YAML overrides. Unrecognized keys are ignored.
func ParseOverrides(data []byte) (Overrides, error) {
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Overrides{}, fmt.Errorf("parse split overrides: %w", err)
	}
	return o, nil
}

// Apply layers the overrides on top of base. Each set field replaces exactly
// the matching field of base.
func (o Overrides) Apply(base Options) Options {
	out := base
	if o.Horizontal != nil {
		out.Horizontal = *o.Horizontal
	}
	if o.InitialPrimarySize != nil {
		out.InitialPrimarySize = *o.InitialPrimarySize
	}
	if o.MinPrimarySize != nil {
		out.MinPrimarySize = *o.MinPrimarySize
	}
	if o.MinSecondarySize != nil {
		out.MinSecondarySize = *o.MinSecondarySize
	}
	if o.SplitterSize != nil {
		out.SplitterSize = *o.SplitterSize
	}
	if o.ResetOnDoubleClick != nil {
		out.ResetOnDoubleClick = *o.ResetOnDoubleClick
	}
	if o.SplitterType != nil {
		out.SplitterType = *o.SplitterType
	}
	return out
}

// Resolver merges per-split overrides with a fixed set of defaults.
type Resolver struct {
	defaults Options
}

// NewResolver creates a resolver over the given defaults.
func NewResolver(defaults Options) Resolver {
	return Resolver{defaults: defaults}
}

// Defaults returns the resolver's defaults.
func (r Resolver) Defaults() Options {
	return r.defaults
}

// Resolve returns the effective options for one split.
func (r Resolver) Resolve(o Overrides) Options {
	return o.Apply(r.defaults)
}

// Validate checks that every size string parses and that percentage
// minimums leave room for both children. Absolute minimums can only conflict
// against a concrete container and are resolved at drag time.
func Validate(o Options) error {
	sizes := []struct {
		field string
		value string
	}{
		{"initial_primary_size", o.InitialPrimarySize},
		{"min_primary_size", o.MinPrimarySize},
		{"min_secondary_size", o.MinSecondarySize},
		{"splitter_size", o.SplitterSize},
	}
	parsed := make(map[string]size.Size, len(sizes))
	for _, s := range sizes {
		sz, err := size.Parse(s.value)
		if err != nil {
			return fmt.Errorf("%s: %w", s.field, err)
		}
		parsed[s.field] = sz
	}

	if !o.SplitterType.Valid() {
		return fmt.Errorf("splitter_type: unknown value %q", o.SplitterType)
	}

	minPrimary := parsed["min_primary_size"]
	minSecondary := parsed["min_secondary_size"]
	if minPrimary.Unit == size.UnitPercent && minSecondary.Unit == size.UnitPercent &&
		minPrimary.Amount+minSecondary.Amount > 100 {
		return fmt.Errorf("%w: %s + %s", ErrConstraintConflict, o.MinPrimarySize, o.MinSecondarySize)
	}

	return nil
}

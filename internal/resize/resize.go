// pattern: Functional Core

// Package resize turns splitter gestures into new split percentages.
// Every function here is pure and infallible: size strings are validated
// when a split is created, so unparseable values resolve to zero.
package resize

import (
	"splitpane/internal/registry"
	"splitpane/internal/size"
	"splitpane/internal/split"
)

// percentOf resolves a size string against container, treating
// unparseable values as zero.
func percentOf(s string, container float64) float64 {
	sz, err := size.Parse(s)
	if err != nil {
		return 0
	}
	return sz.Percent(container)
}

func clamp01(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Bounds returns the allowed percent range [lo, hi] for the primary child.
// When the minimums overlap, the primary minimum wins and the secondary
// child is allowed below its stated minimum.
func Bounds(opts split.Options, container float64) (lo, hi float64) {
	lo = clamp01(percentOf(opts.MinPrimarySize, container))
	hi = 100 - clamp01(percentOf(opts.MinSecondarySize, container))
	if lo > hi {
		hi = lo
	}
	return lo, hi
}

// Clamp constrains p to the bounds of opts within container.
func Clamp(p float64, opts split.Options, container float64) float64 {
	lo, hi := Bounds(opts, container)
	switch {
	case p < lo:
		return lo
	case p > hi:
		return hi
	}
	return p
}

// AxisDelta picks the pointer movement that drives the split: vertical
// movement for a horizontal splitter, horizontal movement otherwise.
func AxisDelta(opts split.Options, dx, dy float64) float64 {
	if opts.Horizontal {
		return dy
	}
	return dx
}

// Effective returns the options info resizes under: its own when set,
// otherwise defaults.
func Effective(info registry.Info, defaults split.Options) split.Options {
	if info.Options != nil {
		return *info.Options
	}
	return defaults
}

// ComputeDrag returns the new percent after moving the splitter by deltaPx
// within a container of containerPx along the split's main axis. Entries
// without options clamp under defaults.
// A non-positive container leaves the percent unchanged.
func ComputeDrag(info registry.Info, defaults split.Options, deltaPx, containerPx float64) float64 {
	if containerPx <= 0 {
		return info.Percent
	}
	candidate := info.Percent + deltaPx/containerPx*100
	return Clamp(candidate, Effective(info, defaults), containerPx)
}

// Initial returns the percent a split takes at creation.
func Initial(opts split.Options, containerPx float64) float64 {
	return Clamp(percentOf(opts.InitialPrimarySize, containerPx), opts, containerPx)
}

// ComputeReset returns the percent implied by the initial primary size.
// ok is false when reset on double click is disabled for the split.
func ComputeReset(opts split.Options, containerPx float64) (percent float64, ok bool) {
	if !opts.ResetOnDoubleClick {
		return 0, false
	}
	return Initial(opts, containerPx), true
}

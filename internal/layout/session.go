// pattern: Imperative Shell

// Package layout coordinates updates to one split-pane layout tree.
//
// A Session owns the registry and freeze state of a single tree. Hosts create
// one Session per layout and route every pointer and container event through
// it; nothing here is process-global.
package layout

import (
	"errors"
	"fmt"

	"splitpane/internal/logging"
	"splitpane/internal/registry"
	"splitpane/internal/resize"
	"splitpane/internal/split"
)

// ErrAlreadySplit is returned when creating a split for a pane that is
// already split.
var ErrAlreadySplit = errors.New("pane is already split")

// Session is the update coordinator for one layout tree.
// It is not safe for concurrent use; all calls come from the host's event loop.
type Session struct {
	reg      *registry.Registry
	resolver split.Resolver
	logger   *logging.ScopedLogger
	freeze   int
}

// Option configures a Session.
type Option func(*Session)

// WithDefaults sets the defaults merged under every split's overrides.
func WithDefaults(defaults split.Options) Option {
	return func(s *Session) {
		s.resolver = split.NewResolver(defaults)
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *logging.ScopedLogger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		reg:      registry.New(),
		resolver: split.NewResolver(split.Defaults()),
		logger:   logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry exposes the session's registry for reads and subscriptions.
func (s *Session) Registry() *registry.Registry {
	return s.reg
}

// Snapshot returns the committed state of the tree.
func (s *Session) Snapshot() registry.Snapshot {
	return s.reg.Snapshot()
}

// Subscribe registers fn for every committed change.
func (s *Session) Subscribe(fn func(registry.Snapshot)) registry.Unsubscribe {
	return s.reg.Subscribe(fn)
}

// Resolver returns the options resolver used for new splits.
func (s *Session) Resolver() split.Resolver {
	return s.resolver
}

// Frozen reports whether container-driven recomputation is suppressed.
func (s *Session) Frozen() bool {
	return s.freeze > 0
}

// BeginBatch freezes container-driven percent recomputation.
// Every BeginBatch must be paired with EndBatch; prefer Batch.
func (s *Session) BeginBatch() {
	s.freeze++
	s.logger.Debug("batch begin", "depth", s.freeze)
}

// EndBatch releases one level of freeze.
func (s *Session) EndBatch() {
	if s.freeze == 0 {
		s.logger.Warn("EndBatch without matching BeginBatch")
		return
	}
	s.freeze--
	s.logger.Debug("batch end", "depth", s.freeze)
}

// Batch runs fn with the layout frozen. The freeze is released even when fn
// returns an error or panics.
func (s *Session) Batch(fn func() error) error {
	s.BeginBatch()
	defer s.EndBatch()
	return fn()
}

// CreateSplit splits pane id into primary and secondary children.
// Options are resolved against the session defaults and validated before
// anything is written. The first split of an empty tree becomes the root.
func (s *Session) CreateSplit(id, primary, secondary registry.PaneID, overrides split.Overrides, containerPx float64) error {
	info, err := s.newSplit(id, primary, secondary, overrides, containerPx)
	if err != nil {
		return fmt.Errorf("create split %q: %w", id, err)
	}

	err = s.reg.Transaction(func(tx *registry.Tx) error {
		if err := tx.Set(id, info); err != nil {
			return err
		}
		if tx.Root() == "" {
			return tx.SetRoot(id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create split %q: %w", id, err)
	}

	s.logger.Debug("split created", "id", id, "primary", primary, "secondary", secondary, "percent", info.Percent)
	return nil
}

// WrapRoot introduces a new outermost split id whose children are the
// current root and other. When rootFirst is true the old root becomes the
// primary child. The root is reassigned to id in the same commit.
func (s *Session) WrapRoot(id registry.PaneID, rootFirst bool, other registry.PaneID, overrides split.Overrides, containerPx float64) error {
	oldRoot := s.reg.Root()
	if oldRoot == "" {
		return fmt.Errorf("wrap root %q: %w: layout has no root", id, registry.ErrNotFound)
	}

	primary, secondary := oldRoot, other
	if !rootFirst {
		primary, secondary = other, oldRoot
	}

	return s.Batch(func() error {
		info, err := s.newSplit(id, primary, secondary, overrides, containerPx)
		if err != nil {
			return fmt.Errorf("wrap root %q: %w", id, err)
		}
		err = s.reg.Transaction(func(tx *registry.Tx) error {
			if err := tx.Set(id, info); err != nil {
				return err
			}
			return tx.SetRoot(id)
		})
		if err != nil {
			return fmt.Errorf("wrap root %q: %w", id, err)
		}
		s.logger.Info("root wrapped", "root", id, "previous", oldRoot)
		return nil
	})
}

func (s *Session) newSplit(id, primary, secondary registry.PaneID, overrides split.Overrides, containerPx float64) (registry.Info, error) {
	if _, ok := s.reg.Get(id); ok {
		return registry.Info{}, ErrAlreadySplit
	}

	opts := s.resolver.Resolve(overrides)
	if err := split.Validate(opts); err != nil {
		return registry.Info{}, err
	}

	return registry.Info{
		Options:     &opts,
		PrimaryID:   primary,
		SecondaryID: secondary,
		Percent:     resize.Initial(opts, containerPx),
		State:       registry.StateInitial,
	}, nil
}

// RemoveSplit merges pane id back into a leaf, removing its entry and every
// nested split below it. A parent keeps pointing at id, now a leaf. Removing
// the root clears the root identifier.
func (s *Session) RemoveSplit(id registry.PaneID) error {
	if _, ok := s.reg.Get(id); !ok {
		return fmt.Errorf("remove split %q: %w", id, registry.ErrNotFound)
	}

	return s.Batch(func() error {
		var removed []registry.PaneID
		err := s.reg.Transaction(func(tx *registry.Tx) error {
			removed = tx.RemoveTree(id)
			if tx.Root() == id {
				return tx.SetRoot("")
			}
			return nil
		})
		if err != nil {
			return err
		}
		s.logger.Debug("split removed", "id", id, "removed", len(removed))
		return nil
	})
}

// ApplyDrag moves the splitter of id by deltaPx along its main axis in a
// container of containerPx. Drags are directly targeted; while frozen the
// call is a no-op.
func (s *Session) ApplyDrag(id registry.PaneID, deltaPx, containerPx float64) error {
	if _, ok := s.reg.Get(id); !ok {
		return fmt.Errorf("apply drag %q: %w", id, registry.ErrNotFound)
	}
	if s.Frozen() {
		s.logger.Debug("drag ignored while frozen", "id", id)
		return nil
	}

	return s.reg.Update(id, func(info registry.Info) registry.Info {
		info.Percent = resize.ComputeDrag(info, s.resolver.Defaults(), deltaPx, containerPx)
		info.State = registry.StateUserAdjusted
		return info
	})
}

// Reset restores the initial percent of id when the split resets on double
// click; otherwise the percent is left unchanged.
func (s *Session) Reset(id registry.PaneID, containerPx float64) error {
	info, ok := s.reg.Get(id)
	if !ok {
		return fmt.Errorf("reset %q: %w", id, registry.ErrNotFound)
	}

	percent, ok := resize.ComputeReset(resize.Effective(info, s.resolver.Defaults()), containerPx)
	if !ok {
		return nil
	}

	// State stays where it is: resets always target the original initial
	// value, and a reset split remains user-adjusted.
	return s.reg.Update(id, func(info registry.Info) registry.Info {
		info.Percent = percent
		return info
	})
}

// ApplyContainerResize re-clamps the percent of every id against its new
// container extent, in one commit. Unknown ids fail before anything is
// written. While frozen nothing is recomputed.
func (s *Session) ApplyContainerResize(containers map[registry.PaneID]float64) error {
	for id := range containers {
		if _, ok := s.reg.Get(id); !ok {
			return fmt.Errorf("container resize %q: %w", id, registry.ErrNotFound)
		}
	}
	if s.Frozen() {
		s.logger.Debug("container resize skipped while frozen", "count", len(containers))
		return nil
	}

	defaults := s.resolver.Defaults()
	return s.reg.Transaction(func(tx *registry.Tx) error {
		for id, containerPx := range containers {
			info, _ := tx.Get(id)
			if containerPx <= 0 {
				continue
			}
			next := resize.Clamp(info.Percent, resize.Effective(info, defaults), containerPx)
			if next == info.Percent {
				continue
			}
			if err := tx.Update(id, func(i registry.Info) registry.Info {
				i.Percent = next
				return i
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

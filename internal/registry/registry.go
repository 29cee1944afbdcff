// pattern: Imperative Shell

// Package registry holds the split configuration and current percent of
// every dynamic pane in one layout tree.
package registry

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"splitpane/internal/split"
)

var (
	// ErrNotFound is returned when an operation references an unregistered pane.
	ErrNotFound = errors.New("pane not found")
	// ErrCycle is returned when a write would make a pane its own descendant.
	ErrCycle = errors.New("pane tree cycle")
	// ErrHasParent is returned when a child already belongs to another split.
	ErrHasParent = errors.New("pane already has a parent")
)

// PaneID names one dynamic pane slot in the layout tree.
type PaneID string

// PercentState tracks whether a split's percent has been touched by the user.
type PercentState uint8

const (
	StateInitial      PercentState = iota // Set at creation from the initial size
	StateUserAdjusted                     // After any drag; resets stay here
)

func (s PercentState) String() string {
	if s == StateUserAdjusted {
		return "user-adjusted"
	}
	return "initial"
}

// Info is the split information for one dynamic pane.
// A child id that is itself a key in the registry is a nested split;
// otherwise it is a leaf content pane.
type Info struct {
	Options     *split.Options
	PrimaryID   PaneID
	SecondaryID PaneID
	Percent     float64
	State       PercentState
}

// Children returns the non-empty child ids in primary, secondary order.
func (i Info) Children() []PaneID {
	var out []PaneID
	if i.PrimaryID != "" {
		out = append(out, i.PrimaryID)
	}
	if i.SecondaryID != "" {
		out = append(out, i.SecondaryID)
	}
	return out
}

func (i Info) clone() Info {
	if i.Options != nil {
		opts := *i.Options
		i.Options = &opts
	}
	return i
}

// Snapshot is an immutable copy of the registry's committed state.
type Snapshot struct {
	Root   PaneID
	Splits map[PaneID]Info
}

// Get returns the split info for id in the snapshot.
func (s Snapshot) Get(id PaneID) (Info, bool) {
	info, ok := s.Splits[id]
	return info, ok
}

// IsSplit reports whether id is a split (as opposed to a leaf) in the snapshot.
func (s Snapshot) IsSplit(id PaneID) bool {
	_, ok := s.Splits[id]
	return ok
}

// Unsubscribe removes a previously registered observer.
type Unsubscribe func()

type observer struct {
	id     uint64
	fn     func(Snapshot)
	active bool
}

// Registry maps pane identifiers to split info. Lookups are by id only;
// the map is unordered. Observers are notified synchronously after every
// committed change, outside the lock.
type Registry struct {
	mu        sync.RWMutex
	splits    map[PaneID]Info
	root      PaneID
	observers []*observer
	nextObsID uint64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{splits: make(map[PaneID]Info)}
}

// Get returns the split info for id.
func (r *Registry) Get(id PaneID) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.splits[id]
	if !ok {
		return Info{}, false
	}
	return info.clone(), true
}

// Len returns the number of registered splits.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.splits)
}

// Root returns the identifier at the top of the active layout tree.
func (r *Registry) Root() PaneID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root
}

// SetRoot reassigns the root identifier. id must be a registered split, or
// empty to clear the root.
func (r *Registry) SetRoot(id PaneID) error {
	return r.Transaction(func(tx *Tx) error {
		return tx.SetRoot(id)
	})
}

// Set replaces the entry for id wholesale.
func (r *Registry) Set(id PaneID, info Info) error {
	return r.Transaction(func(tx *Tx) error {
		return tx.Set(id, info)
	})
}

// Update applies fn to the existing entry for id.
// Callers must create the entry before updating it.
func (r *Registry) Update(id PaneID, fn func(Info) Info) error {
	return r.Transaction(func(tx *Tx) error {
		return tx.Update(id, fn)
	})
}

// Remove deletes the entry for id. Removing an absent id is a no-op.
func (r *Registry) Remove(id PaneID) {
	_ = r.Transaction(func(tx *Tx) error {
		tx.Remove(id)
		return nil
	})
}

// RemoveTree removes id and every nested split below it in a single commit.
// It returns the removed ids in top-down order.
func (r *Registry) RemoveTree(id PaneID) []PaneID {
	var removed []PaneID
	_ = r.Transaction(func(tx *Tx) error {
		removed = tx.RemoveTree(id)
		return nil
	})
	return removed
}

// Descendants returns every split reachable below id, top-down.
// The id itself is not included.
func (r *Registry) Descendants(id PaneID) []PaneID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	walk := descendants(r.splits, id)
	return walk[1:]
}

// Parent returns the split whose child is id, if any.
func (r *Registry) Parent(id PaneID) (PaneID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return parentOf(r.splits, id)
}

// Snapshot returns a deep copy of the committed state.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Registry) snapshotLocked() Snapshot {
	splits := make(map[PaneID]Info, len(r.splits))
	for id, info := range r.splits {
		splits[id] = info.clone()
	}
	return Snapshot{Root: r.root, Splits: splits}
}

// Subscribe registers fn to receive the whole registry value after every
// committed change. Observers run in registration order.
func (r *Registry) Subscribe(fn func(Snapshot)) Unsubscribe {
	r.mu.Lock()
	r.nextObsID++
	obs := &observer{id: r.nextObsID, fn: fn, active: true}
	r.observers = append(r.observers, obs)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		obs.active = false
		kept := r.observers[:0]
		for _, o := range r.observers {
			if o.active {
				kept = append(kept, o)
			}
		}
		r.observers = kept
	}
}

// Transaction runs fn against a staged copy of the registry. If fn returns
// nil and changed anything, the staged state is committed and observers are
// notified exactly once. If fn fails, nothing is committed.
func (r *Registry) Transaction(fn func(tx *Tx) error) error {
	snap, observers, err := r.commit(fn)
	if err != nil {
		return err
	}
	for _, o := range observers {
		o.fn(snap)
	}
	return nil
}

// commit stages fn under the write lock and installs the result. It returns
// the committed snapshot and the observers to notify, or no observers when
// nothing changed. The lock is released even if fn panics.
func (r *Registry) commit(fn func(tx *Tx) error) (Snapshot, []*observer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &Tx{
		splits: maps.Clone(r.splits),
		root:   r.root,
	}
	if tx.splits == nil {
		tx.splits = make(map[PaneID]Info)
	}
	if err := fn(tx); err != nil {
		return Snapshot{}, nil, err
	}
	if !tx.dirty {
		return Snapshot{}, nil, nil
	}

	r.splits = tx.splits
	r.root = tx.root
	observers := make([]*observer, 0, len(r.observers))
	for _, o := range r.observers {
		if o.active {
			observers = append(observers, o)
		}
	}
	return r.snapshotLocked(), observers, nil
}

// Tx is a staged set of registry writes. It is only valid inside the
// Transaction callback that created it.
type Tx struct {
	splits map[PaneID]Info
	root   PaneID
	dirty  bool
}

// Get returns the staged entry for id.
func (tx *Tx) Get(id PaneID) (Info, bool) {
	info, ok := tx.splits[id]
	if !ok {
		return Info{}, false
	}
	return info.clone(), true
}

// Root returns the staged root identifier.
func (tx *Tx) Root() PaneID {
	return tx.root
}

// SetRoot stages a new root identifier. Empty clears the root; any other
// id must be a staged split.
func (tx *Tx) SetRoot(id PaneID) error {
	if id != "" {
		if _, ok := tx.splits[id]; !ok {
			return fmt.Errorf("set root %q: %w", id, ErrNotFound)
		}
	}
	if tx.root == id {
		return nil
	}
	tx.root = id
	tx.dirty = true
	return nil
}

// Set stages a wholesale replacement of the entry for id.
func (tx *Tx) Set(id PaneID, info Info) error {
	if id == "" {
		return fmt.Errorf("set: empty pane id")
	}
	if info.PrimaryID != "" && info.PrimaryID == info.SecondaryID {
		return fmt.Errorf("set %q: primary and secondary are both %q", id, info.PrimaryID)
	}
	for _, child := range info.Children() {
		if child == id {
			return fmt.Errorf("set %q: %w: pane is its own child", id, ErrCycle)
		}
		if reachable(tx.splits, child)[id] {
			return fmt.Errorf("set %q: %w: %q is an ancestor", id, ErrCycle, child)
		}
		if owner, ok := ownerOf(tx.splits, child, id); ok {
			return fmt.Errorf("set %q: %w: %q is a child of %q", id, ErrHasParent, child, owner)
		}
	}
	tx.splits[id] = info.clone()
	tx.dirty = true
	return nil
}

// Update stages fn applied to the existing entry for id.
func (tx *Tx) Update(id PaneID, fn func(Info) Info) error {
	info, ok := tx.splits[id]
	if !ok {
		return fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	return tx.Set(id, fn(info.clone()))
}

// Remove stages deletion of id. Absent ids are ignored.
func (tx *Tx) Remove(id PaneID) {
	if _, ok := tx.splits[id]; !ok {
		return
	}
	delete(tx.splits, id)
	tx.dirty = true
}

// RemoveTree stages deletion of id and all nested splits below it.
func (tx *Tx) RemoveTree(id PaneID) []PaneID {
	if _, ok := tx.splits[id]; !ok {
		return nil
	}
	removed := descendants(tx.splits, id)
	for _, d := range removed {
		delete(tx.splits, d)
	}
	tx.dirty = true
	return removed
}

// descendants returns id followed by every split reachable below it,
// top-down. Leaves are not included; id is included only if it is a split.
func descendants(splits map[PaneID]Info, id PaneID) []PaneID {
	info, ok := splits[id]
	if !ok {
		return []PaneID{id}
	}

	out := []PaneID{id}
	visited := map[PaneID]bool{id: true}
	queue := info.Children()
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if visited[next] {
			continue
		}
		visited[next] = true
		child, ok := splits[next]
		if !ok {
			continue
		}
		out = append(out, next)
		queue = append(queue, child.Children()...)
	}
	return out
}

// reachable returns every id, leaf or split, reachable from id including id.
func reachable(splits map[PaneID]Info, id PaneID) map[PaneID]bool {
	seen := map[PaneID]bool{}
	stack := []PaneID{id}
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[next] {
			continue
		}
		seen[next] = true
		if info, ok := splits[next]; ok {
			stack = append(stack, info.Children()...)
		}
	}
	return seen
}

// ownerOf returns the split other than except whose child is id.
func ownerOf(splits map[PaneID]Info, id, except PaneID) (PaneID, bool) {
	for pid, info := range splits {
		if pid != except && (info.PrimaryID == id || info.SecondaryID == id) {
			return pid, true
		}
	}
	return "", false
}

func parentOf(splits map[PaneID]Info, id PaneID) (PaneID, bool) {
	for pid, info := range splits {
		if info.PrimaryID == id || info.SecondaryID == id {
			return pid, true
		}
	}
	return "", false
}

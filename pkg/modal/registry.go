package modal

import (
	"log/slog"
	"sort"
	"sync"
)

// Record is one modal instance held by a Registry.
type Record struct {
	ID        string    `json:"id"`
	Component Component `json:"-"`
	Props     Props     `json:"-"`
	Options   Options   `json:"options"`
}

// IsOpen reports whether the record is currently open.
func (r Record) IsOpen() bool {
	return r.Props.IsOpen()
}

// RootID returns the root segment of the record's id.
func (r Record) RootID() string {
	root, _, _ := SplitID(r.ID)
	return root
}

// State is a snapshot of a registry: composed id to record.
type State map[string]Record

// IDs returns the ids in the snapshot in lexical order.
func (s State) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone copies the snapshot and every record's props.
func (s State) Clone() State {
	out := make(State, len(s))
	for id, rec := range s {
		rec.Props = rec.Props.Clone()
		out[id] = rec
	}
	return out
}

// Registry is the authoritative store of modal records.
//
// Every mutation replaces the internal map with a new one before any
// subscriber is called, so subscribers always observe a fully applied
// transition. Subscribers run synchronously on the mutating goroutine.
type Registry struct {
	mu    sync.RWMutex
	state State

	subMu  sync.RWMutex
	subs   []subscriber
	nextID uint64

	logger  *slog.Logger
	metrics *Metrics
}

type subscriber struct {
	id uint64
	fn func(State)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus metrics to the registry.
func WithMetrics(m *Metrics) RegistryOption {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		state:  make(State),
		logger: slog.Default().With("component", "modal"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Logger returns the registry's logger.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}

// Add inserts a record with isOpen=true. An existing record with the same
// id is replaced.
func (r *Registry) Add(id string, c Component, props Props, opts Options) {
	if id == "" {
		r.reportMissingID("add")
		return
	}

	p := props.Clone()
	p[PropIsOpen] = true

	r.commit(func(next State) bool {
		next[id] = Record{ID: id, Component: c, Props: p, Options: opts}
		return true
	})
	r.metrics.shown()
}

// UpdateProps shallow-merges partial into the record's props. isOpen is
// only touched when partial names it. Unknown ids are ignored.
func (r *Registry) UpdateProps(id string, partial Props) {
	if id == "" {
		r.reportMissingID("update")
		return
	}

	r.commit(func(next State) bool {
		rec, ok := next[id]
		if !ok {
			return false
		}
		rec.Props = rec.Props.merged(partial)
		next[id] = rec
		return true
	})
}

// SetClosed sets isOpen=false on the record. Closing a closed or unknown
// record changes nothing and notifies no one.
func (r *Registry) SetClosed(id string) {
	if id == "" {
		r.reportMissingID("hide")
		return
	}

	changed := r.commit(func(next State) bool {
		rec, ok := next[id]
		if !ok || !rec.IsOpen() {
			return false
		}
		rec.Props = rec.Props.merged(Props{PropIsOpen: false})
		next[id] = rec
		return true
	})
	if changed {
		r.metrics.hidden()
	}
}

// Remove deletes the record. Removing an absent id is a silent no-op.
func (r *Registry) Remove(id string) {
	if id == "" {
		r.reportMissingID("destroy")
		return
	}

	changed := r.commit(func(next State) bool {
		if _, ok := next[id]; !ok {
			return false
		}
		delete(next, id)
		return true
	})
	if changed {
		r.metrics.destroyed(1)
	}
}

// RemoveByRoot deletes every record whose id is rootID + Delimiter + local.
func (r *Registry) RemoveByRoot(rootID string) {
	if rootID == "" {
		r.reportMissingID("destroy_root")
		return
	}

	var removed int
	r.commit(func(next State) bool {
		for id := range next {
			if HasRoot(id, rootID) {
				delete(next, id)
				removed++
			}
		}
		return removed > 0
	})
	if removed > 0 {
		r.metrics.destroyed(removed)
	}
}

// Get returns a copy of the record for id.
func (r *Registry) Get(id string) (Record, bool) {
	r.mu.RLock()
	rec, ok := r.state[id]
	r.mu.RUnlock()
	if ok {
		rec.Props = rec.Props.Clone()
	}
	return rec, ok
}

// State returns a copy of the current snapshot.
func (r *Registry) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Clone()
}

// Len returns the number of records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.state)
}

// Subscribe registers fn to be called with a snapshot after every change.
// The returned function removes the subscription.
func (r *Registry) Subscribe(fn func(State)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	r.subMu.Lock()
	r.nextID++
	id := r.nextID
	r.subs = append(r.subs, subscriber{id: id, fn: fn})
	r.subMu.Unlock()

	return func() {
		r.subMu.Lock()
		defer r.subMu.Unlock()
		for i, s := range r.subs {
			if s.id == id {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

// commit applies mutate to a copy of the state and swaps it in when mutate
// reports a change. Subscribers are notified after the lock is released.
func (r *Registry) commit(mutate func(next State) bool) bool {
	r.mu.Lock()
	next := make(State, len(r.state)+1)
	for id, rec := range r.state {
		next[id] = rec
	}
	if !mutate(next) {
		r.mu.Unlock()
		return false
	}
	prev := r.state
	r.state = next
	r.metrics.track(prev, next)
	r.mu.Unlock()

	r.notify()
	return true
}

// notify calls every subscriber with its own snapshot copy.
func (r *Registry) notify() {
	r.subMu.RLock()
	subs := make([]subscriber, len(r.subs))
	copy(subs, r.subs)
	r.subMu.RUnlock()

	if len(subs) == 0 {
		return
	}
	for _, s := range subs {
		s.fn(r.State())
	}
}

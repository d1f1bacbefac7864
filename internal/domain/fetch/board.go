package fetch

import (
	"sort"
	"sync"
)

// Board keeps one Tracker per resource key. Different resources never
// contend; events for the same resource go through that resource's tracker.
type Board struct {
	mu       sync.Mutex
	trackers map[string]*Tracker
	onChange func(Transition)
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{trackers: make(map[string]*Tracker)}
}

// OnChange sets a callback attached to every tracker the board creates.
func (b *Board) OnChange(fn func(Transition)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
	for _, t := range b.trackers {
		t.OnChange(fn)
	}
}

// Tracker returns the tracker for resource, creating it if needed.
func (b *Board) Tracker(resource string) (*Tracker, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.trackers[resource]; ok {
		return t, nil
	}

	t, err := NewTracker(resource)
	if err != nil {
		return nil, err
	}
	if b.onChange != nil {
		t.OnChange(b.onChange)
	}
	b.trackers[resource] = t
	return t, nil
}

// Fire applies event to resource's tracker.
func (b *Board) Fire(resource string, event Event) (Transition, error) {
	t, err := b.Tracker(resource)
	if err != nil {
		return Transition{}, err
	}
	return t.Fire(event)
}

// Status returns the status of resource, or StatusUnknown if it was never tracked.
func (b *Board) Status(resource string) Status {
	b.mu.Lock()
	t, ok := b.trackers[resource]
	b.mu.Unlock()
	if !ok {
		return StatusUnknown
	}
	return t.Status()
}

// Snapshot returns the status of every tracked resource.
func (b *Board) Snapshot() map[string]Status {
	b.mu.Lock()
	trackers := make([]*Tracker, 0, len(b.trackers))
	for _, t := range b.trackers {
		trackers = append(trackers, t)
	}
	b.mu.Unlock()

	out := make(map[string]Status, len(trackers))
	for _, t := range trackers {
		out[t.Resource()] = t.Status()
	}
	return out
}

// Resources returns the tracked resource keys in sorted order.
func (b *Board) Resources() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.trackers))
	for k := range b.trackers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Forget stops and removes the tracker for resource.
func (b *Board) Forget(resource string) {
	b.mu.Lock()
	t, ok := b.trackers[resource]
	delete(b.trackers, resource)
	b.mu.Unlock()
	if ok {
		t.Stop()
	}
}

// Close stops every tracker.
func (b *Board) Close() {
	b.mu.Lock()
	trackers := b.trackers
	b.trackers = make(map[string]*Tracker)
	b.mu.Unlock()
	for _, t := range trackers {
		t.Stop()
	}
}

package fetch

import (
	"fmt"
	"sync"

	"github.com/felixgeelhaar/statekit"
)

// Context is the statekit context carried by a tracker's machine.
type Context struct {
	Resource string
}

// Transition records one applied event.
type Transition struct {
	Resource string
	From     Status
	Event    Event
	To       Status
}

// Tracker holds the fetch status of one resource.
// Fire calls are serialized, so a tracker may be shared by the goroutines
// that own the resource's fetch lifecycle.
type Tracker struct {
	mu       sync.Mutex
	resource string
	interp   *statekit.Interpreter[Context]
	stopped  bool
	onChange func(Transition)
}

// NewTracker creates a started tracker in StatusUnknown.
func NewTracker(resource string) (*Tracker, error) {
	interp, err := buildFetchMachine(resource)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch machine: %w", err)
	}
	interp.Start()

	return &Tracker{resource: resource, interp: interp}, nil
}

// buildFetchMachine builds the statechart from the transitions table.
// Settled statuses are final states.
func buildFetchMachine(resource string) (*statekit.Interpreter[Context], error) {
	mb := statekit.NewMachine[Context]("fetch-status").
		WithInitial(statekit.StateID(StatusUnknown)).
		WithContext(Context{Resource: resource})

	for _, s := range Statuses() {
		sb := mb.State(statekit.StateID(s))
		if s.Settled() {
			sb.Final()
		}
		for _, ev := range Events() {
			if to, ok := transitions[edge{s, ev}]; ok {
				sb.On(statekit.EventType(ev)).Target(statekit.StateID(to))
			}
		}
	}

	machine, err := mb.Build()
	if err != nil {
		return nil, err
	}

	return statekit.NewInterpreter(machine), nil
}

// OnChange sets a callback invoked after every applied transition.
func (t *Tracker) OnChange(fn func(Transition)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// Resource returns the tracked resource key.
func (t *Tracker) Resource() string {
	return t.resource
}

// Status returns the status held by the interpreter.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status(t.interp.State().Value)
}

// Settled reports whether the interpreter has reached a final state.
func (t *Tracker) Settled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interp.Done()
}

// Fire applies event. An event that does not apply leaves the status
// unchanged and returns *InvalidTransitionError. A stopped tracker
// rejects every event with ErrTrackerStopped.
func (t *Tracker) Fire(event Event) (Transition, error) {
	t.mu.Lock()

	if t.stopped {
		t.mu.Unlock()
		return Transition{}, fmt.Errorf("%w: %s", ErrTrackerStopped, t.resource)
	}

	from := Status(t.interp.State().Value)
	next, err := Advance(from, event)
	if err != nil {
		t.mu.Unlock()
		return Transition{}, err
	}

	t.interp.Send(statekit.Event{Type: statekit.EventType(event)})
	to := Status(t.interp.State().Value)
	if to != next {
		t.mu.Unlock()
		return Transition{}, fmt.Errorf("fetch machine moved %s to %s on %s, want %s", from, to, event, next)
	}

	tr := Transition{
		Resource: t.resource,
		From:     from,
		Event:    event,
		To:       to,
	}
	cb := t.onChange
	t.mu.Unlock()

	if cb != nil {
		cb(tr)
	}
	return tr, nil
}

// Stop halts the interpreter. Status remains readable.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	t.interp.Stop()
}

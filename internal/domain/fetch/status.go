// Package fetch models the loading status of a single fetched resource.
//
// The machine is strict: any event that does not apply to the current status
// is an error. The briefly_loaded status exists so a fast response does not
// flash content; the caller's display timer moves it on to ready.
package fetch

// Status is the loading status of one resource.
type Status string

const (
	StatusUnknown       Status = "unknown"
	StatusPending       Status = "pending"
	StatusBrieflyLoaded Status = "briefly_loaded"
	StatusReady         Status = "ready"
	StatusNotFound      Status = "not_found"
	StatusNoPermission  Status = "no_permission"
)

// Event drives a status change.
type Event string

const (
	EventFetchStarted     Event = "fetch_started"
	EventDataArrived      Event = "data_arrived"
	EventDisplayTimeout   Event = "display_timeout"
	EventNotFoundResponse Event = "not_found_response"
	EventPermissionDenied Event = "permission_denied"
)

// Statuses returns every status in lifecycle order.
func Statuses() []Status {
	return []Status{
		StatusUnknown,
		StatusPending,
		StatusBrieflyLoaded,
		StatusReady,
		StatusNotFound,
		StatusNoPermission,
	}
}

// Events returns every event.
func Events() []Event {
	return []Event{
		EventFetchStarted,
		EventDataArrived,
		EventDisplayTimeout,
		EventNotFoundResponse,
		EventPermissionDenied,
	}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUnknown, StatusPending, StatusBrieflyLoaded,
		StatusReady, StatusNotFound, StatusNoPermission:
		return true
	default:
		return false
	}
}

// Settled reports whether no further event can change s.
func (s Status) Settled() bool {
	switch s {
	case StatusReady, StatusNotFound, StatusNoPermission:
		return true
	default:
		return false
	}
}

// Valid reports whether e is a known event.
func (e Event) Valid() bool {
	switch e {
	case EventFetchStarted, EventDataArrived, EventDisplayTimeout,
		EventNotFoundResponse, EventPermissionDenied:
		return true
	default:
		return false
	}
}

// ParseStatus converts a backend value into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", &UnknownStatusError{Value: s}
	}
	return st, nil
}

// ParseEvent converts a name into an Event.
func ParseEvent(s string) (Event, error) {
	ev := Event(s)
	if !ev.Valid() {
		return "", &UnknownEventError{Value: s}
	}
	return ev, nil
}

type edge struct {
	from  Status
	event Event
}

var transitions = map[edge]Status{
	{StatusUnknown, EventFetchStarted}:         StatusPending,
	{StatusPending, EventDataArrived}:          StatusBrieflyLoaded,
	{StatusBrieflyLoaded, EventDisplayTimeout}: StatusReady,
	{StatusPending, EventNotFoundResponse}:     StatusNotFound,
	{StatusPending, EventPermissionDenied}:     StatusNoPermission,
}

// Advance returns the status that follows current on event.
// Any pair without a defined transition fails with *InvalidTransitionError.
func Advance(current Status, event Event) (Status, error) {
	next, ok := transitions[edge{current, event}]
	if !ok {
		return current, &InvalidTransitionError{From: current, Event: event}
	}
	return next, nil
}

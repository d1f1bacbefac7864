package fetch

import (
	"errors"
	"fmt"
)

// Sentinel categories for errors.Is.
var (
	ErrInvalidTransition = errors.New("invalid fetch status transition")
	ErrUnknownStatus     = errors.New("unknown fetch status")
	ErrUnknownEvent      = errors.New("unknown fetch event")
	ErrTrackerStopped    = errors.New("fetch tracker stopped")
)

// InvalidTransitionError reports an event that does not apply to a status.
type InvalidTransitionError struct {
	From  Status
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("no transition from %q on %q", e.From, e.Event)
}

// Is matches ErrInvalidTransition.
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// UnknownStatusError reports a status value outside the vocabulary.
type UnknownStatusError struct {
	Value string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown fetch status %q", e.Value)
}

// Is matches ErrUnknownStatus.
func (e *UnknownStatusError) Is(target error) bool {
	return target == ErrUnknownStatus
}

// UnknownEventError reports an event name outside the vocabulary.
type UnknownEventError struct {
	Value string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("unknown fetch event %q", e.Value)
}

// Is matches ErrUnknownEvent.
func (e *UnknownEventError) Is(target error) bool {
	return target == ErrUnknownEvent
}

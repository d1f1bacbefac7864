package bundle

import (
	"errors"
	"fmt"
)

// ErrUnknownState is matched by every *UnknownStateError via errors.Is.
var ErrUnknownState = errors.New("unknown bundle state")

// UnknownStateError reports a state value outside the known vocabulary.
// It means client and backend disagree about the state list.
type UnknownStateError struct {
	Value string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown bundle state %q", e.Value)
}

// Is matches ErrUnknownState.
func (e *UnknownStateError) Is(target error) bool {
	return target == ErrUnknownState
}

// Package bundle provides the bundle lifecycle vocabulary mirrored from the backend.
//
// States are classified, not sequenced: the backend owns transition legality,
// so this package answers questions such as "is this state terminal?" or
// "which production mechanisms can reach it?" and nothing more.
package bundle

// State is a bundle lifecycle state as reported by the backend.
type State string

const (
	// StateUploading indicates the bundle contents are being uploaded.
	StateUploading State = "uploading"
	// StateCreated indicates the bundle record exists but has not started.
	StateCreated State = "created"
	// StateStaged indicates a run bundle is waiting for a worker.
	StateStaged State = "staged"
	// StateMaking indicates a make bundle is being assembled from its dependencies.
	StateMaking State = "making"
	// StateStarting indicates a worker accepted the run.
	StateStarting State = "starting"
	// StatePreparing indicates the worker is downloading dependencies and images.
	StatePreparing State = "preparing"
	// StateRunning indicates the run command is executing.
	StateRunning State = "running"
	// StateFinalizing indicates the worker is uploading results.
	StateFinalizing State = "finalizing"
	// StateReady indicates the bundle finished successfully.
	StateReady State = "ready"
	// StateFailed indicates the bundle finished with an error.
	StateFailed State = "failed"
	// StateKilled indicates the bundle was stopped on request.
	StateKilled State = "killed"
	// StateWorkerOffline indicates the worker executing the bundle is unreachable.
	StateWorkerOffline State = "worker_offline"
)

// allStates is ordered the way the backend enumerates them.
var allStates = []State{
	StateUploading,
	StateCreated,
	StateStaged,
	StateMaking,
	StateStarting,
	StatePreparing,
	StateRunning,
	StateFinalizing,
	StateReady,
	StateFailed,
	StateKilled,
	StateWorkerOffline,
}

// AllStates returns every known state in backend order.
func AllStates() []State {
	out := make([]State, len(allStates))
	copy(out, allStates)
	return out
}

// String returns the wire representation of the state.
func (s State) String() string {
	return string(s)
}

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	switch s {
	case StateUploading, StateCreated, StateStaged, StateMaking,
		StateStarting, StatePreparing, StateRunning, StateFinalizing,
		StateReady, StateFailed, StateKilled, StateWorkerOffline:
		return true
	default:
		return false
	}
}

// IsValidState reports whether s names a known state.
func IsValidState(s string) bool {
	return State(s).Valid()
}

// ParseState converts a backend value into a State.
// Unknown values fail with *UnknownStateError.
func ParseState(s string) (State, error) {
	st := State(s)
	if !st.Valid() {
		return "", &UnknownStateError{Value: s}
	}
	return st, nil
}

// IsFinal reports whether s is terminal.
func IsFinal(s State) bool {
	switch s {
	case StateReady, StateFailed, StateKilled:
		return true
	default:
		return false
	}
}

// IsOffline reports whether s is the worker-offline sentinel.
func IsOffline(s State) bool {
	return s == StateWorkerOffline
}

// FinalStates returns the terminal states.
func FinalStates() []State {
	return []State{StateReady, StateFailed, StateKilled}
}

// CanKill reports whether a kill request makes sense for a bundle in state s.
// Non-final run states qualify, as does worker_offline since the bundle may
// still be holding resources on the lost worker.
func CanKill(s State) bool {
	if IsFinal(s) {
		return false
	}
	if IsOffline(s) {
		return true
	}
	return RunLineage.Contains(s)
}

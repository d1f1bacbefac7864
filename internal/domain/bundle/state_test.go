package bundle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidState(t *testing.T) {
	t.Run("accepts every known state", func(t *testing.T) {
		for _, s := range AllStates() {
			assert.True(t, IsValidState(string(s)), s)
		}
	})

	t.Run("rejects other strings", func(t *testing.T) {
		for _, s := range []string{"", "READY", "Ready", "done", "queued", " ready", "worker-offline"} {
			assert.False(t, IsValidState(s), s)
		}
	})
}

func TestAllStates_Order(t *testing.T) {
	want := []State{
		"uploading", "created", "staged", "making", "starting", "preparing",
		"running", "finalizing", "ready", "failed", "killed", "worker_offline",
	}
	assert.Equal(t, want, AllStates())

	// Callers must not be able to mutate the vocabulary.
	states := AllStates()
	states[0] = "bogus"
	assert.Equal(t, StateUploading, AllStates()[0])
}

func TestParseState(t *testing.T) {
	s, err := ParseState("running")
	require.NoError(t, err)
	assert.Equal(t, StateRunning, s)

	_, err = ParseState("exploded")
	require.Error(t, err)

	var unknown *UnknownStateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "exploded", unknown.Value)
	assert.True(t, errors.Is(err, ErrUnknownState))
	assert.Contains(t, err.Error(), `"exploded"`)
}

func TestIsFinal(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateReady, true},
		{StateFailed, true},
		{StateKilled, true},
		{StateRunning, false},
		{StatePreparing, false},
		{StateStarting, false},
		{StateMaking, false},
		{StateUploading, false},
		{StateFinalizing, false},
		{StateWorkerOffline, false},
		{StateCreated, false},
		{StateStaged, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.want, IsFinal(tt.state))
		})
	}
}

func TestFinalStates_DisjointFromActive(t *testing.T) {
	active := NewStateSet(StateRunning, StatePreparing, StateStarting, StateMaking, StateUploading, StateWorkerOffline)
	assert.Equal(t, 0, Final.Intersect(active).Len())
}

func TestIsOffline(t *testing.T) {
	assert.True(t, IsOffline(StateWorkerOffline))
	for _, s := range AllStates() {
		if s != StateWorkerOffline {
			assert.False(t, IsOffline(s), s)
		}
	}
	assert.False(t, IsFinal(StateWorkerOffline))
}

func TestCanKill(t *testing.T) {
	assert.True(t, CanKill(StateRunning))
	assert.True(t, CanKill(StateStaged))
	assert.True(t, CanKill(StateWorkerOffline))
	assert.False(t, CanKill(StateReady))
	assert.False(t, CanKill(StateKilled))
	assert.False(t, CanKill(StateUploading))
	assert.False(t, CanKill(StateMaking))
}

func TestState_Label(t *testing.T) {
	assert.Equal(t, "Worker Offline", StateWorkerOffline.Label())
	assert.Equal(t, "Ready", StateReady.Label())
	assert.Equal(t, "Upload", LineageUpload.Label())
}

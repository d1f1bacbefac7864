package fetch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_DefinedTransitions(t *testing.T) {
	tests := []struct {
		from  Status
		event Event
		want  Status
	}{
		{StatusUnknown, EventFetchStarted, StatusPending},
		{StatusPending, EventDataArrived, StatusBrieflyLoaded},
		{StatusBrieflyLoaded, EventDisplayTimeout, StatusReady},
		{StatusPending, EventNotFoundResponse, StatusNotFound},
		{StatusPending, EventPermissionDenied, StatusNoPermission},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.event), func(t *testing.T) {
			got, err := Advance(tt.from, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdvance_RejectsEverythingElse(t *testing.T) {
	defined := map[edge]bool{}
	for e := range transitions {
		defined[e] = true
	}

	for _, s := range Statuses() {
		for _, ev := range Events() {
			if defined[edge{s, ev}] {
				continue
			}
			got, err := Advance(s, ev)
			require.Error(t, err, "%s on %s", s, ev)
			assert.Equal(t, s, got, "status must not change on a rejected event")

			var invalid *InvalidTransitionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, s, invalid.From)
			assert.Equal(t, ev, invalid.Event)
			assert.True(t, errors.Is(err, ErrInvalidTransition))
		}
	}
}

func TestAdvance_ReadyRejectsDataArrived(t *testing.T) {
	_, err := Advance(StatusReady, EventDataArrived)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStatus("loading")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestParseEvent(t *testing.T) {
	got, err := ParseEvent("data_arrived")
	require.NoError(t, err)
	assert.Equal(t, EventDataArrived, got)

	_, err = ParseEvent("DATA_ARRIVED")
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestStatus_Settled(t *testing.T) {
	assert.True(t, StatusReady.Settled())
	assert.True(t, StatusNotFound.Settled())
	assert.True(t, StatusNoPermission.Settled())
	assert.False(t, StatusPending.Settled())
	assert.False(t, StatusBrieflyLoaded.Settled())
	assert.False(t, StatusUnknown.Settled())
}

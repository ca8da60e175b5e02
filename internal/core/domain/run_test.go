package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunState_String(t *testing.T) {
	assert.Equal(t, "idle", RunIdle.String())
	assert.Equal(t, "running", RunRunning.String())
	assert.Equal(t, "cooldown", RunCooldown.String())
	assert.Equal(t, "unknown", RunState(42).String())
}

func TestOutcome_Advances(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    bool
	}{
		{OutcomeIndexed, true},
		{OutcomeEmpty, true},
		{OutcomeUnsupported, true},
		{OutcomeRemoved, false},
		{OutcomeVanished, false},
		{OutcomeFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.outcome), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.Advances())
		})
	}
}

func TestPassSummary_Record(t *testing.T) {
	var s PassSummary
	s.Record(OutcomeIndexed)
	s.Record(OutcomeIndexed)
	s.Record(OutcomeEmpty)
	s.Record(OutcomeUnsupported)
	s.Record(OutcomeVanished)
	s.Record(OutcomeRemoved)
	s.Record(OutcomeFailed)

	assert.Equal(t, 2, s.Indexed)
	assert.Equal(t, 1, s.Empty)
	assert.Equal(t, 1, s.Unsupported)
	assert.Equal(t, 1, s.Vanished)
	assert.Equal(t, 1, s.Removed)
	assert.Equal(t, 1, s.Failed)
}

func TestRunState_MarshalText(t *testing.T) {
	text, err := RunCooldown.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "cooldown", string(text))
}

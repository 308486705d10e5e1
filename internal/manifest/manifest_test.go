package manifest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManifestStartsPending(t *testing.T) {
	m := New("42", "ops@example.com", "reset_password", "before", "after", true)

	assert.Equal(t, OutcomePending, m.Outcome)
	assert.True(t, m.DryRun)
	assert.NotEmpty(t, m.ID)
}

func TestFilenameCollisionResistance(t *testing.T) {
	a := New("42", "ops@example.com", "reset_password", nil, nil, false)
	b := New("42", "ops@example.com", "reset_password", nil, nil, false)

	assert.True(t, strings.HasPrefix(a.Filename(), "42_"))
	assert.True(t, strings.HasSuffix(a.Filename(), ".json"))
	// Same subject, same second: names still differ.
	assert.NotEqual(t, a.Filename(), b.Filename())
}

func TestOutcomeTransitions(t *testing.T) {
	ctx := context.Background()

	m := New("1", "x", "op", nil, nil, false)
	fsm := NewManifestFSM(m)
	require.NoError(t, fsm.Apply(ctx))
	assert.Equal(t, OutcomeApplied, m.Outcome)

	// Outcomes never move backwards.
	assert.Error(t, fsm.RollBack(ctx))
	assert.Error(t, fsm.Apply(ctx))
	assert.Equal(t, OutcomeApplied, m.Outcome)
}

func TestOutcomeRollBack(t *testing.T) {
	ctx := context.Background()

	m := New("1", "x", "op", nil, nil, true)
	fsm := NewManifestFSM(m)
	require.NoError(t, fsm.RollBack(ctx))
	assert.Equal(t, OutcomeRolledBack, m.Outcome)
	assert.Error(t, fsm.Apply(ctx))
}

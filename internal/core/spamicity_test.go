package core

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeTokenAbsentFromHam(t *testing.T) {
	spam := NewLedger(ReplaceMode)
	spam.Ingest(NewTokenSet("buy"))
	ham := NewLedger(ReplaceMode)
	ham.Ingest(NewTokenSet())

	table := Recompute(spam, ham)
	require.Contains(t, table, "buy")
	// value is 0.5, so the distance from neutral is 0
	assert.Equal(t, 0.0, table["buy"])
}

func TestRecomputeEqualFrequencies(t *testing.T) {
	spam := NewLedger(ReplaceMode)
	spam.Ingest(NewTokenSet("shared", "spammy"))
	ham := NewLedger(ReplaceMode)
	ham.Ingest(NewTokenSet("shared", "hammy"))

	table := Recompute(spam, ham)
	assert.Equal(t, 0.0, table["shared"])
	assert.Len(t, table, 2)
	assert.NotContains(t, table, "hammy")
}

func TestRecomputeUsesRealDivision(t *testing.T) {
	spam := NewLedger(AccumulateMode)
	spam.Ingest(NewTokenSet("x"))
	spam.Ingest(NewTokenSet("x"))
	ham := NewLedger(AccumulateMode)
	ham.Ingest(NewTokenSet("x"))
	ham.Ingest(NewTokenSet("y"))

	// s = 2/2, h = 1/2, value = 1/1.5
	table := Recompute(spam, ham)
	assert.InDelta(t, math.Abs(0.5-1/1.5), table["x"], 1e-12)
}

func TestRecomputeZeroDenominatorIsNeutral(t *testing.T) {
	spam := &Ledger{counts: map[Token]int{"t": 1}}
	ham := &Ledger{counts: map[Token]int{"t": 1}}

	table := Recompute(spam, ham)
	assert.Equal(t, 0.0, table["t"])
	assert.False(t, math.IsNaN(table["t"]))
}

func TestRecomputeReplacesWholeTable(t *testing.T) {
	spam := NewLedger(ReplaceMode)
	ham := NewLedger(ReplaceMode)
	spam.Ingest(NewTokenSet("old"))
	first := Recompute(spam, ham)
	require.Contains(t, first, "old")

	spam.Ingest(NewTokenSet("new"))
	second := Recompute(spam, ham)
	assert.NotContains(t, second, "old")
	assert.Contains(t, second, "new")
}

func TestSpamicityTableLookup(t *testing.T) {
	table := SpamicityTable{"known": 0.25}

	s, err := table.Lookup("known")
	require.NoError(t, err)
	assert.Equal(t, 0.25, s)

	_, err = table.Lookup("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownToken))

	var unknown *UnknownTokenError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "missing", unknown.Token)
}

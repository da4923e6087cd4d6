package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssign_UnknownStrategy(t *testing.T) {
	_, _, err := Assign(AssignInput{Strategy: "lottery", Totals: Totals{}})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestAssign_SortsDeferredAndMergesExclusive(t *testing.T) {
	roster := abc()[:2]
	deferred := []Slice{
		{Start: 20, Length: 10, Window: "W"},
		{Start: 0, Length: 10, Window: "W"},
		{Start: 10, Length: 10, Window: "W"},
	}
	exclusive := []Assignment{newAssignment(Slice{Start: 30, Length: 10, Window: "W"}, "A", true)}
	totals := Totals{"A": 10, "B": 0}

	assignments, gaps, err := Assign(AssignInput{
		Deferred:  deferred,
		Exclusive: exclusive,
		Roster:    roster,
		Order:     roster,
		Strategy:  StrategyRound,
		Totals:    totals,
		Targets:   Targets{"A": 20, "B": 20},
	})
	require.NoError(t, err)
	assert.Empty(t, gaps)

	require.Len(t, assignments, 4)
	for i, assignment := range assignments {
		assert.Equal(t, i*10, assignment.Start)
	}
	assert.Equal(t, []string{"A", "B", "A", "A"}, []string{
		assignments[0].Worker, assignments[1].Worker, assignments[2].Worker, assignments[3].Worker,
	})
	assert.True(t, assignments[3].Exclusive)
	assert.Equal(t, Totals{"A": 30, "B": 10}, totals)
}

func TestAssign_UncoverableSlicesBecomeMergedGaps(t *testing.T) {
	roster := []Worker{{Name: "A", Start: hm(9, 0), End: hm(10, 0)}}
	deferred := []Slice{
		{Start: hm(9, 50), Length: 10, Window: "Core"},
		{Start: hm(10, 0), Length: 10, Window: "Core"},
		{Start: hm(10, 10), Length: 10, Window: "Core"},
		{Start: hm(10, 20), Length: 10, Window: "Late"},
	}

	assignments, gaps, err := Assign(AssignInput{
		Deferred: deferred,
		Roster:   roster,
		Order:    roster,
		Strategy: StrategyFair,
		Totals:   Totals{"A": 0},
		Targets:  Targets{"A": 10},
	})
	require.NoError(t, err)

	require.Len(t, assignments, 1)
	assert.Equal(t, "A", assignments[0].Worker)

	assert.Equal(t, []Gap{
		{Start: hm(10, 0), End: hm(10, 20), Window: "Core"},
		{Start: hm(10, 20), End: hm(10, 30), Window: "Late"},
	}, gaps)
}

package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSlices_ExactMultiple(t *testing.T) {
	plan := []PlanEntry{
		{Window: Window{Label: "Core", Start: hm(9, 0), End: hm(16, 30)}, People: 2, IdealLength: intPtr(5)},
	}

	slices := BuildSlices(plan)

	require.Len(t, slices, 90)
	for i, slice := range slices {
		assert.Equal(t, hm(9, 0)+i*5, slice.Start)
		assert.Equal(t, 5, slice.Length)
		assert.Equal(t, "Core", slice.Window)
	}
}

func TestBuildSlices_ShortFinalSlice(t *testing.T) {
	plan := []PlanEntry{
		{Window: Window{Label: "Odd", Start: 0, End: 100}, People: 3, IdealLength: intPtr(7)},
	}

	slices := BuildSlices(plan)

	require.Len(t, slices, 15)
	assert.Equal(t, 2, slices[14].Length, "Final slice carries the remainder")
	assert.Equal(t, 98, slices[14].Start)
	assert.Equal(t, 100, sumLengths(slices, "Odd"))
	for _, slice := range slices {
		assert.LessOrEqual(t, slice.Length, 7)
	}
}

func TestBuildSlices_WindowShorterThanLength(t *testing.T) {
	plan := []PlanEntry{
		{Window: Window{Label: "Handover", Start: hm(12, 0), End: hm(12, 3)}, People: 1, IdealLength: intPtr(5)},
	}

	slices := BuildSlices(plan)

	require.Len(t, slices, 1)
	assert.Equal(t, 3, slices[0].Length)
}

func TestBuildSlices_SkipsUnplannedWindows(t *testing.T) {
	plan := []PlanEntry{
		{Window: Window{Label: "Early", Start: hm(7, 0), End: hm(8, 0)}, People: 0, IdealLength: nil},
		{Window: Window{Label: "Core", Start: hm(8, 0), End: hm(9, 0)}, People: 2, IdealLength: intPtr(10)},
	}

	slices := BuildSlices(plan)

	require.Len(t, slices, 6)
	assert.Equal(t, 0, sumLengths(slices, "Early"))
	assert.Equal(t, 60, sumLengths(slices, "Core"))
}

func TestBuildSlices_WindowOrderThenStart(t *testing.T) {
	plan := PlanWindows(deskRoster(), deskWindows(), defaultPolicy())

	slices := BuildSlices(plan)

	require.NotEmpty(t, slices)
	for i := 1; i < len(slices); i++ {
		assert.Equal(t, slices[i-1].End(), slices[i].Start, "Desk windows are contiguous so slices should be too")
	}
	for _, entry := range plan {
		if entry.IdealLength != nil {
			assert.Equal(t, entry.Duration(), sumLengths(slices, entry.Label), "window %s", entry.Label)
		}
	}
}

func TestBuildSlices_LengthBounds(t *testing.T) {
	policy := defaultPolicy()
	plan := PlanWindows(deskRoster(), deskWindows(), policy)

	slices := BuildSlices(plan)

	for _, slice := range slices {
		assert.LessOrEqual(t, slice.Length, policy.HardCap)
		assert.GreaterOrEqual(t, slice.Length, policy.IdealMin)
	}
}

func TestBuildSlices_IsPure(t *testing.T) {
	plan := PlanWindows(deskRoster(), deskWindows(), defaultPolicy())

	assert.Equal(t, BuildSlices(plan), BuildSlices(plan))
}

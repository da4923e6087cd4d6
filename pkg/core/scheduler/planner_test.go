package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanWindows_NobodyOverlaps(t *testing.T) {
	roster := []Worker{{Name: "Alice", Start: hm(9, 0), End: hm(17, 0)}}
	windows := []Window{{Label: "Night", Start: hm(20, 0), End: hm(23, 0)}}

	plan := PlanWindows(roster, windows, defaultPolicy())

	require.Len(t, plan, 1)
	assert.Equal(t, 0, plan[0].People)
	assert.Nil(t, plan[0].IdealLength, "Window with nobody should have no length")
}

func TestPlanWindows_TouchingIntervalDoesNotOverlap(t *testing.T) {
	roster := []Worker{{Name: "Alice", Start: hm(9, 0), End: hm(17, 0)}}
	windows := []Window{{Label: "Evening", Start: hm(17, 0), End: hm(20, 0)}}

	plan := PlanWindows(roster, windows, defaultPolicy())

	assert.Equal(t, 0, plan[0].People)
	assert.Nil(t, plan[0].IdealLength)
}

func TestPlanWindows_SinglePersonClampedToIdealMax(t *testing.T) {
	roster := []Worker{{Name: "Tapaswini", Start: hm(13, 0), End: hm(21, 0)}}
	windows := []Window{{Label: "Evening", Start: hm(18, 0), End: hm(21, 0)}}

	plan := PlanWindows(roster, windows, defaultPolicy())

	require.NotNil(t, plan[0].IdealLength)
	assert.Equal(t, 1, plan[0].People)
	assert.Equal(t, 10, *plan[0].IdealLength)
}

func TestPlanWindows_SinglePersonShortWindowClampedToIdealMin(t *testing.T) {
	roster := []Worker{{Name: "Alice", Start: hm(9, 0), End: hm(17, 0)}}
	windows := []Window{{Label: "Handover", Start: hm(12, 0), End: hm(12, 3)}}

	plan := PlanWindows(roster, windows, defaultPolicy())

	require.NotNil(t, plan[0].IdealLength)
	assert.Equal(t, 5, *plan[0].IdealLength)
}

func TestPlanWindows_TwoPeopleSmallestLengthWithinTolerance(t *testing.T) {
	roster := []Worker{
		{Name: "Alice", Start: hm(7, 30), End: hm(16, 30)},
		{Name: "Bob", Start: hm(7, 30), End: hm(16, 30)},
	}
	windows := []Window{{Label: "Core", Start: hm(9, 0), End: hm(16, 30)}}

	plan := PlanWindows(roster, windows, Policy{IdealMin: 5, IdealMax: 10, HardCap: 30, Tolerance: 0.10})

	require.NotNil(t, plan[0].IdealLength)
	assert.Equal(t, 2, plan[0].People)
	assert.Equal(t, 5, *plan[0].IdealLength, "5/225 is within tolerance")
}

func TestPlanWindows_LargerIdealMinStillWithinTolerance(t *testing.T) {
	roster := []Worker{
		{Name: "Alice", Start: hm(8, 0), End: hm(18, 0)},
		{Name: "Bob", Start: hm(8, 0), End: hm(18, 0)},
	}
	// target = 240 / 2 = 120, 12/120 = 0.1
	windows := []Window{{Label: "Core", Start: hm(9, 0), End: hm(13, 0)}}

	plan := PlanWindows(roster, windows, Policy{IdealMin: 12, IdealMax: 20, HardCap: 30, Tolerance: 0.10})

	require.NotNil(t, plan[0].IdealLength)
	assert.Equal(t, 12, *plan[0].IdealLength)
}

func TestPlanWindows_ToleranceUnreachableFallsBackToLowestRatio(t *testing.T) {
	roster := make([]Worker, 0, 10)
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"} {
		roster = append(roster, Worker{Name: name, Start: hm(8, 0), End: hm(18, 0)})
	}
	// target = 60 / 10 = 6, even 5/6 is far above the tolerance
	windows := []Window{{Label: "Rush", Start: hm(12, 0), End: hm(13, 0)}}

	plan := PlanWindows(roster, windows, Policy{IdealMin: 5, IdealMax: 10, HardCap: 30, Tolerance: 0.10})

	require.NotNil(t, plan[0].IdealLength)
	assert.Equal(t, 5, *plan[0].IdealLength)
}

func TestPlanWindows_FallbackNeverExceedsHardCap(t *testing.T) {
	roster := []Worker{
		{Name: "A", Start: hm(8, 0), End: hm(18, 0)},
		{Name: "B", Start: hm(8, 0), End: hm(18, 0)},
	}
	windows := []Window{{Label: "Short", Start: hm(12, 0), End: hm(12, 20)}}

	plan := PlanWindows(roster, windows, Policy{IdealMin: 15, IdealMax: 15, HardCap: 15, Tolerance: 0.10})

	require.NotNil(t, plan[0].IdealLength)
	assert.LessOrEqual(t, *plan[0].IdealLength, 15)
}

func TestPlanWindows_PreservesWindowOrder(t *testing.T) {
	windows := deskWindows()

	plan := PlanWindows(deskRoster(), windows, defaultPolicy())

	require.Len(t, plan, len(windows))
	for i, entry := range plan {
		assert.Equal(t, windows[i].Label, entry.Label)
		assert.Equal(t, windows[i].Start, entry.Start)
		assert.Equal(t, windows[i].End, entry.End)
	}
}

func TestPlanWindows_IsPure(t *testing.T) {
	roster := deskRoster()
	windows := deskWindows()

	first := PlanWindows(roster, windows, defaultPolicy())
	second := PlanWindows(roster, windows, defaultPolicy())

	assert.Equal(t, first, second)
	assert.Equal(t, deskRoster(), roster, "Roster must not be modified")
	assert.Equal(t, deskWindows(), windows, "Windows must not be modified")
}

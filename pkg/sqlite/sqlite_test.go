package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/db"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "deskrota_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func sampleSchedule(id, date string, next int) *db.Schedule {
	return &db.Schedule{
		ID:           id,
		Date:         date,
		Strategy:     "fair",
		Ordering:     "rotate",
		Rotation:     next - 1,
		NextRotation: next,
		GeneratedAt:  time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC),
		Assignments: []db.Assignment{
			{Start: 545, End: 550, Worker: "Bob", Window: "Core"},
			{Start: 540, End: 545, Worker: "Alice", Window: "Core"},
			{Start: 1080, End: 1090, Worker: "Tapaswini", Window: "Evening", Exclusive: true},
		},
		Gaps:    []db.Gap{{Start: 1200, End: 1260, Window: "Evening"}},
		Targets: map[string]float64{"Alice": 5, "Bob": 5, "Tapaswini": 10},
	}
}

func TestDB_RotationStateDefaultsToZero(t *testing.T) {
	store := openTestDB(t)

	state, err := store.GetRotationState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, scheduler.RotationState(0), state)

	require.NoError(t, store.SaveRotationState(context.Background(), 4))
	require.NoError(t, store.SaveRotationState(context.Background(), 5))

	state, err = store.GetRotationState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, scheduler.RotationState(5), state)
}

func TestDB_SaveAndGetSchedule(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	require.NoError(t, store.SaveSchedule(ctx, sampleSchedule("a", "2026-10-15", 3)))

	got, err := store.GetScheduleByDate(ctx, "2026-10-15")
	require.NoError(t, err)

	assert.Equal(t, "a", got.ID)
	assert.Equal(t, "fair", got.Strategy)
	assert.Equal(t, 2, got.Rotation)
	assert.True(t, got.GeneratedAt.Equal(time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)))

	require.Len(t, got.Assignments, 3)
	assert.Equal(t, "Alice", got.Assignments[0].Worker, "assignments come back ordered by start")
	assert.True(t, got.Assignments[2].Exclusive)
	assert.Equal(t, []db.Gap{{Start: 1200, End: 1260, Window: "Evening"}}, got.Gaps)
	assert.Equal(t, map[string]float64{"Alice": 5, "Bob": 5, "Tapaswini": 10}, got.Targets)

	state, err := store.GetRotationState(ctx)
	require.NoError(t, err)
	assert.Equal(t, scheduler.RotationState(3), state)
}

func TestDB_SaveScheduleReplacesSameDate(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	require.NoError(t, store.SaveSchedule(ctx, sampleSchedule("a", "2026-10-15", 1)))

	replacement := sampleSchedule("b", "2026-10-15", 2)
	replacement.Assignments = replacement.Assignments[:1]
	require.NoError(t, store.SaveSchedule(ctx, replacement))

	got, err := store.GetScheduleByDate(ctx, "2026-10-15")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
	assert.Len(t, got.Assignments, 1)

	list, err := store.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDB_GetScheduleNotFound(t *testing.T) {
	_, err := openTestDB(t).GetScheduleByDate(context.Background(), "2026-01-01")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestDB_ListSchedulesNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	require.NoError(t, store.SaveSchedule(ctx, sampleSchedule("a", "2026-10-14", 1)))
	require.NoError(t, store.SaveSchedule(ctx, sampleSchedule("b", "2026-10-16", 2)))
	require.NoError(t, store.SaveSchedule(ctx, sampleSchedule("c", "2026-10-15", 3)))

	list, err := store.ListSchedules(ctx)
	require.NoError(t, err)

	require.Len(t, list, 3)
	assert.Equal(t, []string{"2026-10-16", "2026-10-15", "2026-10-14"}, []string{list[0].Date, list[1].Date, list[2].Date})
	assert.Empty(t, list[0].Assignments)
}

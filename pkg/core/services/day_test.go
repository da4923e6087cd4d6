package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/core/scheduler"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := ParseDate(value)
	require.NoError(t, err)
	return date
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-10-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), date)

	today, err := ParseDate("")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(config.DateLayout), today.Format(config.DateLayout))

	_, err = ParseDate("15-10-2026")
	assert.Error(t, err)
}

func TestBuildDay_NoOverrideOnWeekday(t *testing.T) {
	day, err := BuildDay(testConfig(), mustDate(t, "2026-10-16"))
	require.NoError(t, err)

	assert.Len(t, day.Roster, 2)
	assert.Empty(t, day.Absent)
	assert.Zero(t, day.Overrides)
	assert.Equal(t, scheduler.StrategyRound, day.Strategy)
	assert.Equal(t, "2026-10-16", day.DateKey())
}

func TestBuildDay_RemovesAbsentWorkers(t *testing.T) {
	day, err := BuildDay(testConfig(), mustDate(t, "2026-10-17"))
	require.NoError(t, err)

	require.Len(t, day.Roster, 1)
	assert.Equal(t, "Alice", day.Roster[0].Name)
	assert.Equal(t, []string{"Bob"}, day.Absent)
	assert.Equal(t, 1, day.Overrides)
}

func TestBuildDay_ReplacesWindowsAndStrategy(t *testing.T) {
	cfg := testConfig()
	cfg.Overrides = append(cfg.Overrides, config.DayOverride{
		RRule:    "FREQ=MONTHLY;BYMONTHDAY=1",
		Windows:  []config.WindowConfig{{Label: "Half day", Start: "09:00", End: "12:00"}},
		Strategy: "fair",
	})

	day, err := BuildDay(cfg, mustDate(t, "2026-11-01"))
	require.NoError(t, err)

	assert.Equal(t, []scheduler.Window{{Label: "Half day", Start: 540, End: 720}}, day.Windows)
	assert.Equal(t, scheduler.StrategyFair, day.Strategy)
	assert.Len(t, day.Roster, 2, "1 Nov 2026 is a Sunday")
}

func TestPlanDay(t *testing.T) {
	day, plan, err := PlanDay(testConfig(), mustDate(t, "2026-10-15"), zap.NewNop())
	require.NoError(t, err)

	assert.Len(t, day.Roster, 2)
	require.Len(t, plan, 1)
	assert.Equal(t, 2, plan[0].People)
	require.NotNil(t, plan[0].IdealLength)
	assert.Equal(t, 5, *plan[0].IdealLength)
}

func TestPlanDay_RejectsOverlappingOverrideWindows(t *testing.T) {
	cfg := testConfig()
	cfg.Overrides = []config.DayOverride{{
		RRule: "FREQ=DAILY",
		Windows: []config.WindowConfig{
			{Label: "A", Start: "09:00", End: "11:00"},
			{Label: "B", Start: "10:00", End: "12:00"},
		},
	}}

	_, _, err := PlanDay(cfg, mustDate(t, "2026-10-15"), zap.NewNop())
	assert.ErrorIs(t, err, scheduler.ErrOverlappingWindows)
}

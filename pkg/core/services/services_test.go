package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/clients/sheetsclient"
	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/db"
)

// mockStore implements db.Store in memory
type mockStore struct {
	rotation  scheduler.RotationState
	schedules map[string]*db.Schedule
	saved     []*db.Schedule

	getRotationErr error
	saveErr        error
}

func newMockStore() *mockStore {
	return &mockStore{schedules: make(map[string]*db.Schedule)}
}

func (m *mockStore) GetRotationState(ctx context.Context) (scheduler.RotationState, error) {
	if m.getRotationErr != nil {
		return 0, m.getRotationErr
	}
	return m.rotation, nil
}

func (m *mockStore) SaveRotationState(ctx context.Context, state scheduler.RotationState) error {
	m.rotation = state
	return nil
}

func (m *mockStore) SaveSchedule(ctx context.Context, schedule *db.Schedule) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.schedules[schedule.Date] = schedule
	m.saved = append(m.saved, schedule)
	m.rotation = scheduler.RotationState(schedule.NextRotation)
	return nil
}

func (m *mockStore) GetScheduleByDate(ctx context.Context, date string) (*db.Schedule, error) {
	schedule, ok := m.schedules[date]
	if !ok {
		return nil, fmt.Errorf("schedule for %s: %w", date, db.ErrNotFound)
	}
	return schedule, nil
}

func (m *mockStore) ListSchedules(ctx context.Context) ([]db.Schedule, error) {
	var list []db.Schedule
	for _, schedule := range m.schedules {
		list = append(list, *schedule)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date > list[j].Date })
	return list, nil
}

func (m *mockStore) Close() error {
	return nil
}

// mockPublisher records what would have been written to Sheets
type mockPublisher struct {
	spreadsheetID string
	published     *sheetsclient.PublishedSchedule
	err           error
}

func (m *mockPublisher) PublishSchedule(spreadsheetID string, published *sheetsclient.PublishedSchedule) error {
	if m.err != nil {
		return m.err
	}
	m.spreadsheetID = spreadsheetID
	m.published = published
	return nil
}

var errBoom = errors.New("boom")

// testConfig has two workers on a single core window; Bob is off on Saturdays
func testConfig() *config.Config {
	return &config.Config{
		Roster: []config.WorkerConfig{
			{Name: "Alice", Start: "07:30", End: "16:30"},
			{Name: "Bob", Start: "07:30", End: "16:30"},
		},
		Windows: []config.WindowConfig{
			{Label: "Core", Start: "09:00", End: "16:30"},
		},
		Policy:   config.DefaultPolicy(),
		Strategy: "round",
		Ordering: "rotate",
		Overrides: []config.DayOverride{
			{RRule: "FREQ=WEEKLY;BYDAY=SA", Absent: []string{"Bob"}},
		},
		Storage: config.StorageConfig{Driver: config.DriverSQLite, DSN: ":memory:"},
		Publish: config.PublishConfig{SpreadsheetID: "sheet-123"},
		Server:  config.ServerConfig{Port: 8080},
	}
}

package services

import (
	"context"
	"fmt"

	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/db"
)

// ScheduleView is a stored schedule with its summary
type ScheduleView struct {
	Schedule *db.Schedule
	Summary  scheduler.Summary
}

// GetSchedule loads the schedule saved for a YYYY-MM-DD date and summarizes it
// against the day's roster. db.ErrNotFound is passed through.
func GetSchedule(ctx context.Context, store db.Store, cfg *config.Config, date string) (*ScheduleView, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	schedule, err := store.GetScheduleByDate(ctx, day.Format(config.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	roster, err := summaryRoster(cfg, day, schedule)
	if err != nil {
		return nil, err
	}

	return &ScheduleView{
		Schedule: schedule,
		Summary:  scheduler.Summarize(schedule.Result(), roster),
	}, nil
}

// ListSchedules returns stored schedule headers, newest first
func ListSchedules(ctx context.Context, store db.Store) ([]db.Schedule, error) {
	schedules, err := store.ListSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

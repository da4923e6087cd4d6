package db

import (
	"context"
	"errors"

	"github.com/jakechorley/deskrota/pkg/core/scheduler"
)

// ErrNotFound is returned when no schedule exists for a date
var ErrNotFound = errors.New("not found")

// RotationStore persists the rotation cursor between runs
type RotationStore interface {
	GetRotationState(ctx context.Context) (scheduler.RotationState, error)
	SaveRotationState(ctx context.Context, state scheduler.RotationState) error
}

// Store defines all persistence operations.
// Both the gorm-backed sqlite.DB and the pgx-backed postgres.DB implement it.
type Store interface {
	RotationStore

	// SaveSchedule replaces any schedule stored for the same date and moves
	// the rotation cursor to schedule.NextRotation in the same transaction
	SaveSchedule(ctx context.Context, schedule *Schedule) error

	// GetScheduleByDate returns ErrNotFound when nothing is stored for date
	GetScheduleByDate(ctx context.Context, date string) (*Schedule, error)

	// ListSchedules returns schedule headers (no assignments) newest date first
	ListSchedules(ctx context.Context) ([]Schedule, error)

	Close() error
}

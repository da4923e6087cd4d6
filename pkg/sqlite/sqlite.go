package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/db"
)

const rotationStateID = 1

type rotationStateRow struct {
	ID        uint `gorm:"primaryKey"`
	Cursor    int  `gorm:"not null"`
	UpdatedAt time.Time
}

func (rotationStateRow) TableName() string { return "rotation_state" }

type scheduleRow struct {
	ID           string `gorm:"primaryKey"`
	Date         string `gorm:"uniqueIndex;not null"`
	Strategy     string `gorm:"not null"`
	Ordering     string `gorm:"not null"`
	Rotation     int
	NextRotation int
	GeneratedAt  time.Time

	Assignments []assignmentRow `gorm:"foreignKey:ScheduleID"`
	Gaps        []gapRow        `gorm:"foreignKey:ScheduleID"`
	Targets     []targetRow     `gorm:"foreignKey:ScheduleID"`
}

func (scheduleRow) TableName() string { return "schedule" }

type assignmentRow struct {
	ID          uint   `gorm:"primaryKey"`
	ScheduleID  string `gorm:"index;not null"`
	StartMinute int    `gorm:"not null"`
	EndMinute   int    `gorm:"not null"`
	Worker      string `gorm:"not null"`
	WindowLabel string `gorm:"not null"`
	Exclusive   bool
}

func (assignmentRow) TableName() string { return "assignment" }

type gapRow struct {
	ID          uint   `gorm:"primaryKey"`
	ScheduleID  string `gorm:"index;not null"`
	StartMinute int    `gorm:"not null"`
	EndMinute   int    `gorm:"not null"`
	WindowLabel string `gorm:"not null"`
}

func (gapRow) TableName() string { return "gap" }

type targetRow struct {
	ID         uint   `gorm:"primaryKey"`
	ScheduleID string `gorm:"index;not null"`
	Worker     string `gorm:"not null"`
	Minutes    float64
}

func (targetRow) TableName() string { return "target" }

// DB stores schedules in a local SQLite file through gorm
type DB struct {
	conn *gorm.DB
}

// Open opens (creating if needed) the SQLite database at dsn and migrates the schema
func Open(dsn string) (*DB, error) {
	g, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := g.AutoMigrate(&rotationStateRow{}, &scheduleRow{}, &assignmentRow{}, &gapRow{}, &targetRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
	}

	return &DB{conn: g}, nil
}

// Close closes the underlying connection
func (d *DB) Close() error {
	sqlDB, err := d.conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}
	return sqlDB.Close()
}

// GetRotationState returns the stored cursor, 0 before the first run
func (d *DB) GetRotationState(ctx context.Context) (scheduler.RotationState, error) {
	var row rotationStateRow
	err := d.conn.WithContext(ctx).First(&row, rotationStateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get rotation state: %w", err)
	}
	return scheduler.RotationState(row.Cursor), nil
}

// SaveRotationState overwrites the stored cursor
func (d *DB) SaveRotationState(ctx context.Context, state scheduler.RotationState) error {
	if err := saveRotationState(d.conn.WithContext(ctx), state); err != nil {
		return fmt.Errorf("failed to save rotation state: %w", err)
	}
	return nil
}

func saveRotationState(tx *gorm.DB, state scheduler.RotationState) error {
	return tx.Save(&rotationStateRow{ID: rotationStateID, Cursor: int(state)}).Error
}

// SaveSchedule replaces the schedule stored for schedule.Date and stores the
// next rotation cursor in one transaction
func (d *DB) SaveSchedule(ctx context.Context, schedule *db.Schedule) error {
	row := toScheduleRow(schedule)

	err := d.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []scheduleRow
		if err := tx.Where("date = ?", schedule.Date).Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to look up existing schedule: %w", err)
		}
		for _, old := range existing {
			if err := deleteSchedule(tx, old.ID); err != nil {
				return err
			}
		}

		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert schedule: %w", err)
		}

		if err := saveRotationState(tx, scheduler.RotationState(schedule.NextRotation)); err != nil {
			return fmt.Errorf("failed to save rotation state: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save schedule for %s: %w", schedule.Date, err)
	}
	return nil
}

func deleteSchedule(tx *gorm.DB, id string) error {
	for _, child := range []any{&assignmentRow{}, &gapRow{}, &targetRow{}} {
		if err := tx.Where("schedule_id = ?", id).Delete(child).Error; err != nil {
			return fmt.Errorf("failed to delete schedule %s children: %w", id, err)
		}
	}
	if err := tx.Delete(&scheduleRow{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete schedule %s: %w", id, err)
	}
	return nil
}

// GetScheduleByDate loads a full schedule, or db.ErrNotFound
func (d *DB) GetScheduleByDate(ctx context.Context, date string) (*db.Schedule, error) {
	var row scheduleRow
	err := d.conn.WithContext(ctx).
		Preload("Assignments", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_minute") }).
		Preload("Gaps", func(tx *gorm.DB) *gorm.DB { return tx.Order("start_minute") }).
		Preload("Targets").
		Where("date = ?", date).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("schedule for %s: %w", date, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule for %s: %w", date, err)
	}

	return fromScheduleRow(row), nil
}

// ListSchedules returns schedule headers, newest date first
func (d *DB) ListSchedules(ctx context.Context) ([]db.Schedule, error) {
	var rows []scheduleRow
	if err := d.conn.WithContext(ctx).Order("date desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	schedules := make([]db.Schedule, 0, len(rows))
	for _, row := range rows {
		schedules = append(schedules, *fromScheduleRow(row))
	}
	return schedules, nil
}

func toScheduleRow(s *db.Schedule) scheduleRow {
	row := scheduleRow{
		ID:           s.ID,
		Date:         s.Date,
		Strategy:     s.Strategy,
		Ordering:     s.Ordering,
		Rotation:     s.Rotation,
		NextRotation: s.NextRotation,
		GeneratedAt:  s.GeneratedAt,
	}

	for _, a := range s.Assignments {
		row.Assignments = append(row.Assignments, assignmentRow{
			ScheduleID:  s.ID,
			StartMinute: a.Start,
			EndMinute:   a.End,
			Worker:      a.Worker,
			WindowLabel: a.Window,
			Exclusive:   a.Exclusive,
		})
	}
	for _, g := range s.Gaps {
		row.Gaps = append(row.Gaps, gapRow{
			ScheduleID:  s.ID,
			StartMinute: g.Start,
			EndMinute:   g.End,
			WindowLabel: g.Window,
		})
	}

	// Sorted so inserts are deterministic
	names := make([]string, 0, len(s.Targets))
	for name := range s.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		row.Targets = append(row.Targets, targetRow{ScheduleID: s.ID, Worker: name, Minutes: s.Targets[name]})
	}

	return row
}

func fromScheduleRow(row scheduleRow) *db.Schedule {
	s := &db.Schedule{
		ID:           row.ID,
		Date:         row.Date,
		Strategy:     row.Strategy,
		Ordering:     row.Ordering,
		Rotation:     row.Rotation,
		NextRotation: row.NextRotation,
		GeneratedAt:  row.GeneratedAt.UTC(),
	}

	for _, a := range row.Assignments {
		s.Assignments = append(s.Assignments, db.Assignment{
			Start:     a.StartMinute,
			End:       a.EndMinute,
			Worker:    a.Worker,
			Window:    a.WindowLabel,
			Exclusive: a.Exclusive,
		})
	}
	for _, g := range row.Gaps {
		s.Gaps = append(s.Gaps, db.Gap{Start: g.StartMinute, End: g.EndMinute, Window: g.WindowLabel})
	}
	if len(row.Targets) > 0 {
		s.Targets = make(map[string]float64, len(row.Targets))
		for _, target := range row.Targets {
			s.Targets[target.Worker] = target.Minutes
		}
	}

	return s
}

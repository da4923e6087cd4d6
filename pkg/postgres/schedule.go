package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/deskrota/pkg/db"
)

const dateLayout = "2006-01-02"

// SaveSchedule replaces the schedule stored for schedule.Date and stores the
// next rotation cursor in one transaction
func (d *DB) SaveSchedule(ctx context.Context, schedule *db.Schedule) error {
	err := pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		// Children go with the parent through ON DELETE CASCADE
		if _, err := tx.Exec(ctx, `DELETE FROM schedule WHERE date = $1`, schedule.Date); err != nil {
			return fmt.Errorf("failed to delete existing schedule: %w", err)
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO schedule (id, date, strategy, ordering, rotation, next_rotation, generated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, schedule.ID, schedule.Date, schedule.Strategy, schedule.Ordering,
			schedule.Rotation, schedule.NextRotation, schedule.GeneratedAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert schedule: %w", err)
		}

		batch := &pgx.Batch{}
		for _, a := range schedule.Assignments {
			batch.Queue(`
				INSERT INTO assignment (schedule_id, start_minute, end_minute, worker, window_label, exclusive)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, schedule.ID, a.Start, a.End, a.Worker, a.Window, a.Exclusive)
		}
		for _, g := range schedule.Gaps {
			batch.Queue(`
				INSERT INTO gap (schedule_id, start_minute, end_minute, window_label)
				VALUES ($1, $2, $3, $4)
			`, schedule.ID, g.Start, g.End, g.Window)
		}
		for worker, minutes := range schedule.Targets {
			batch.Queue(`
				INSERT INTO target (schedule_id, worker, minutes) VALUES ($1, $2, $3)
			`, schedule.ID, worker, minutes)
		}
		batch.Queue(upsertRotationStateSQL, schedule.NextRotation)

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert schedule rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save schedule for %s: %w", schedule.Date, err)
	}
	return nil
}

// GetScheduleByDate loads a full schedule, or db.ErrNotFound
func (d *DB) GetScheduleByDate(ctx context.Context, date string) (*db.Schedule, error) {
	schedule, err := scanSchedule(d.pool.QueryRow(ctx, `
		SELECT id, date, strategy, ordering, rotation, next_rotation, generated_at
		FROM schedule WHERE date = $1
	`, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("schedule for %s: %w", date, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule for %s: %w", date, err)
	}

	rows, err := d.pool.Query(ctx, `
		SELECT start_minute, end_minute, worker, window_label, exclusive
		FROM assignment WHERE schedule_id = $1 ORDER BY start_minute
	`, schedule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	schedule.Assignments, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Assignment, error) {
		var a db.Assignment
		err := row.Scan(&a.Start, &a.End, &a.Worker, &a.Window, &a.Exclusive)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan assignments: %w", err)
	}

	rows, err = d.pool.Query(ctx, `
		SELECT start_minute, end_minute, window_label
		FROM gap WHERE schedule_id = $1 ORDER BY start_minute
	`, schedule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query gaps: %w", err)
	}
	schedule.Gaps, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (db.Gap, error) {
		var g db.Gap
		err := row.Scan(&g.Start, &g.End, &g.Window)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan gaps: %w", err)
	}

	rows, err = d.pool.Query(ctx, `SELECT worker, minutes FROM target WHERE schedule_id = $1`, schedule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query targets: %w", err)
	}
	defer rows.Close()
	schedule.Targets = make(map[string]float64)
	for rows.Next() {
		var worker string
		var minutes float64
		if err := rows.Scan(&worker, &minutes); err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		schedule.Targets[worker] = minutes
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating targets: %w", err)
	}

	return schedule, nil
}

// ListSchedules returns schedule headers, newest date first
func (d *DB) ListSchedules(ctx context.Context) ([]db.Schedule, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, date, strategy, ordering, rotation, next_rotation, generated_at
		FROM schedule ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var schedules []db.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, *schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}

	return schedules, nil
}

func scanSchedule(row pgx.Row) (*db.Schedule, error) {
	var s db.Schedule
	var date, generatedAt time.Time
	if err := row.Scan(&s.ID, &date, &s.Strategy, &s.Ordering, &s.Rotation, &s.NextRotation, &generatedAt); err != nil {
		return nil, err
	}
	s.Date = date.Format(dateLayout)
	s.GeneratedAt = generatedAt.UTC()
	return &s, nil
}

package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/db"
)

// GenerateOptions tweaks a single generate run
type GenerateOptions struct {
	Date time.Time

	// Strategy and Ordering replace the day's values when set
	Strategy scheduler.Strategy
	Ordering scheduler.Ordering

	// Seed drives random ordering; a time-based seed is used when nil
	Seed *uint64

	// DryRun skips saving the schedule and the rotation cursor
	DryRun bool
}

// GenerateResult is the outcome of GenerateSchedule
type GenerateResult struct {
	Day      *Day
	Result   *scheduler.Result
	Summary  scheduler.Summary
	Schedule *db.Schedule

	// Rotation is the cursor the run started from
	Rotation scheduler.RotationState

	// Seed is set when random ordering was used
	Seed *uint64

	Saved bool
}

// now is replaced in tests
var now = time.Now

// GenerateSchedule schedules a date: it loads the rotation cursor, runs the
// scheduler and, unless DryRun is set, stores the schedule (replacing any
// earlier one for that date) together with the advanced cursor
func GenerateSchedule(ctx context.Context, store db.Store, cfg *config.Config, logger *zap.Logger, opts GenerateOptions) (*GenerateResult, error) {
	day, err := BuildDay(cfg, opts.Date)
	if err != nil {
		return nil, err
	}
	if opts.Strategy != "" {
		day.Strategy = opts.Strategy
	}
	if opts.Ordering != "" {
		day.Ordering = opts.Ordering
	}

	logger.Info("Generating schedule",
		zap.String("date", day.DateKey()),
		zap.String("strategy", string(day.Strategy)),
		zap.String("ordering", string(day.Ordering)),
		zap.Int("workers", len(day.Roster)),
		zap.Strings("absent", day.Absent),
		zap.Bool("dry_run", opts.DryRun))

	rotation, err := store.GetRotationState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rotation state: %w", err)
	}
	logger.Debug("Loaded rotation state", zap.Int("rotation", int(rotation)))

	input := scheduler.Input{
		Roster:   day.Roster,
		Windows:  day.Windows,
		Policy:   day.Policy,
		Strategy: day.Strategy,
		Ordering: day.Ordering,
		Rotation: rotation,
		Throttle: day.Throttle,
	}

	var seed *uint64
	if day.Ordering == scheduler.OrderingRandom {
		value := uint64(now().UnixNano())
		if opts.Seed != nil {
			value = *opts.Seed
		}
		seed = &value
		input.Shuffler = NewShuffler(value)
		logger.Debug("Using random ordering", zap.Uint64("seed", value))
	}

	result, err := scheduler.Schedule(input)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule %s: %w", day.DateKey(), err)
	}

	summary := scheduler.Summarize(result, day.Roster)
	logger.Info("Schedule generated",
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("gaps", len(result.Gaps)),
		zap.Int("uncovered_minutes", summary.UncoveredMinutes),
		zap.Float64("fairness_score", summary.FairnessScore),
		zap.Int("next_rotation", int(result.NextRotation)))

	for _, gap := range result.Gaps {
		logger.Warn("Uncovered interval",
			zap.String("window", gap.Window),
			zap.Int("start", gap.Start),
			zap.Int("end", gap.End))
	}

	schedule := db.NewSchedule(uuid.NewString(), day.DateKey(), day.Strategy, day.Ordering, rotation, result, now())

	generated := &GenerateResult{
		Day:      day,
		Result:   result,
		Summary:  summary,
		Schedule: schedule,
		Rotation: rotation,
		Seed:     seed,
	}

	if opts.DryRun {
		logger.Info("Dry run, schedule not saved")
		return generated, nil
	}

	if err := store.SaveSchedule(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}
	generated.Saved = true
	logger.Info("Schedule saved", zap.String("id", schedule.ID), zap.String("date", schedule.Date))

	return generated, nil
}

// NewShuffler returns the seeded source used for random ordering
func NewShuffler(seed uint64) scheduler.Shuffler {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

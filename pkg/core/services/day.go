package services

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/core/scheduler"
)

// Day is the resolved setup for one date after overrides
type Day struct {
	Date     time.Time
	Roster   []scheduler.Worker
	Windows  []scheduler.Window
	Policy   scheduler.Policy
	Strategy scheduler.Strategy
	Ordering scheduler.Ordering
	Throttle scheduler.Throttle

	// Absent lists roster members removed by overrides
	Absent []string

	// Overrides is how many overrides matched the date
	Overrides int
}

// DateKey returns the YYYY-MM-DD key schedules are stored under
func (d *Day) DateKey() string {
	return d.Date.Format(config.DateLayout)
}

// ParseDate parses a YYYY-MM-DD date, defaulting to today when empty
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	date, err := time.Parse(config.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return date, nil
}

// BuildDay resolves roster, windows and strategy for a date, applying every
// matching override in config order. Later overrides win for windows and strategy.
func BuildDay(cfg *config.Config, date time.Time) (*Day, error) {
	roster, err := config.ToWorkers(cfg.Roster)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	windows, err := config.ToWindows(cfg.Windows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse windows: %w", err)
	}

	day := &Day{
		Date:     date,
		Roster:   roster,
		Windows:  windows,
		Policy:   cfg.SchedulerPolicy(),
		Strategy: scheduler.Strategy(cfg.Strategy),
		Ordering: scheduler.Ordering(cfg.Ordering),
		Throttle: cfg.Throttle.ToThrottle(),
	}

	overrides, err := cfg.OverridesFor(date)
	if err != nil {
		return nil, fmt.Errorf("failed to match overrides: %w", err)
	}
	day.Overrides = len(overrides)

	for _, override := range overrides {
		if len(override.Absent) > 0 {
			day.Roster = slices.DeleteFunc(day.Roster, func(w scheduler.Worker) bool {
				if slices.Contains(override.Absent, w.Name) {
					day.Absent = append(day.Absent, w.Name)
					return true
				}
				return false
			})
		}

		if len(override.Windows) > 0 {
			day.Windows, err = config.ToWindows(override.Windows)
			if err != nil {
				return nil, fmt.Errorf("failed to parse override windows: %w", err)
			}
		}

		if override.Strategy != "" {
			day.Strategy = scheduler.Strategy(override.Strategy)
		}
	}

	return day, nil
}

// PlanDay returns the slice plan for a date without assigning anyone
func PlanDay(cfg *config.Config, date time.Time, logger *zap.Logger) (*Day, []scheduler.PlanEntry, error) {
	day, err := BuildDay(cfg, date)
	if err != nil {
		return nil, nil, err
	}

	if err := scheduler.ValidateWindows(day.Windows); err != nil {
		return nil, nil, fmt.Errorf("invalid windows for %s: %w", day.DateKey(), err)
	}
	if err := scheduler.ValidatePolicy(day.Policy); err != nil {
		return nil, nil, err
	}

	plan := scheduler.PlanWindows(day.Roster, day.Windows, day.Policy)

	logger.Debug("Planned day",
		zap.String("date", day.DateKey()),
		zap.Int("workers", len(day.Roster)),
		zap.Int("windows", len(plan)),
		zap.Int("overrides", day.Overrides))

	return day, plan, nil
}

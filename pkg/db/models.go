package db

import (
	"time"

	"github.com/jakechorley/deskrota/pkg/core/scheduler"
)

// Schedule is a generated day of desk coverage
type Schedule struct {
	ID           string
	Date         string // YYYY-MM-DD
	Strategy     string
	Ordering     string
	Rotation     int // cursor the run started from
	NextRotation int
	GeneratedAt  time.Time

	Assignments []Assignment
	Gaps        []Gap
	Targets     map[string]float64
}

// Assignment is one stored slice of a schedule
type Assignment struct {
	Start     int
	End       int
	Worker    string
	Window    string
	Exclusive bool
}

// Gap is a stored uncovered interval
type Gap struct {
	Start  int
	End    int
	Window string
}

// NewSchedule converts a scheduler result into its stored form
func NewSchedule(id, date string, strategy scheduler.Strategy, ordering scheduler.Ordering, rotation scheduler.RotationState, result *scheduler.Result, generatedAt time.Time) *Schedule {
	schedule := &Schedule{
		ID:           id,
		Date:         date,
		Strategy:     string(strategy),
		Ordering:     string(ordering),
		Rotation:     int(rotation),
		NextRotation: int(result.NextRotation),
		GeneratedAt:  generatedAt.UTC(),
		Assignments:  make([]Assignment, 0, len(result.Assignments)),
		Gaps:         make([]Gap, 0, len(result.Gaps)),
		Targets:      make(map[string]float64, len(result.Targets)),
	}

	for _, a := range result.Assignments {
		schedule.Assignments = append(schedule.Assignments, Assignment{
			Start:     a.Start,
			End:       a.End,
			Worker:    a.Worker,
			Window:    a.Window,
			Exclusive: a.Exclusive,
		})
	}
	for _, g := range result.Gaps {
		schedule.Gaps = append(schedule.Gaps, Gap(g))
	}
	for name, target := range result.Targets {
		schedule.Targets[name] = target
	}

	return schedule
}

// Result rebuilds the scheduler view of a stored schedule so it can be summarized
func (s *Schedule) Result() *scheduler.Result {
	result := &scheduler.Result{
		NextRotation: scheduler.RotationState(s.NextRotation),
		Totals:       make(scheduler.Totals),
		Targets:      make(scheduler.Targets, len(s.Targets)),
	}

	for _, a := range s.Assignments {
		slice := scheduler.Slice{Start: a.Start, Length: a.End - a.Start, Window: a.Window}
		result.Assignments = append(result.Assignments, scheduler.Assignment{
			Slice:     slice,
			Worker:    a.Worker,
			End:       a.End,
			Duration:  slice.Length,
			Exclusive: a.Exclusive,
		})
		result.Totals[a.Worker] += slice.Length
	}
	for _, g := range s.Gaps {
		result.Gaps = append(result.Gaps, scheduler.Gap(g))
	}
	for name, target := range s.Targets {
		result.Targets[name] = target
	}

	return result
}

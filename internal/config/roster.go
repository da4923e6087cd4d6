package config

import (
	"fmt"

	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/utils/clock"
)

// DefaultRoster is the desk team used when the config file lists nobody
func DefaultRoster() []WorkerConfig {
	return []WorkerConfig{
		{Name: "Anish", Start: "09:00", End: "18:00"},
		{Name: "Ashish", Start: "07:30", End: "16:30"},
		{Name: "Chetan", Start: "09:00", End: "18:00"},
		{Name: "Dany", Start: "07:30", End: "16:30"},
		{Name: "Franky", Start: "07:30", End: "16:30"},
		{Name: "Kartik", Start: "07:30", End: "16:30"},
		{Name: "Priya", Start: "07:30", End: "16:30"},
		{Name: "Rajni", Start: "09:00", End: "18:00"},
		{Name: "Sarthak", Start: "07:30", End: "16:30"},
		{Name: "Shalini", Start: "07:30", End: "16:30"},
		{Name: "Tapaswini", Start: "13:00", End: "21:00"},
	}
}

// DefaultPolicy is used when the config file has no policy section
func DefaultPolicy() PolicyConfig {
	return PolicyConfig{
		IdealMin:  5,
		IdealMax:  10,
		HardCap:   30,
		Tolerance: 0.10,
		EndBuffer: 30,
	}
}

// ToWorkers parses roster entries into scheduler workers, keeping their order
func ToWorkers(entries []WorkerConfig) ([]scheduler.Worker, error) {
	workers := make([]scheduler.Worker, 0, len(entries))
	for _, entry := range entries {
		start, end, err := parseInterval(entry.Start, entry.End)
		if err != nil {
			return nil, fmt.Errorf("worker %q: %w", entry.Name, err)
		}
		workers = append(workers, scheduler.Worker{Name: entry.Name, Start: start, End: end})
	}
	return workers, nil
}

// ToWindows parses window entries into scheduler windows, keeping their order
func ToWindows(entries []WindowConfig) ([]scheduler.Window, error) {
	windows := make([]scheduler.Window, 0, len(entries))
	for _, entry := range entries {
		start, end, err := parseInterval(entry.Start, entry.End)
		if err != nil {
			return nil, fmt.Errorf("window %q: %w", entry.Label, err)
		}
		windows = append(windows, scheduler.Window{Label: entry.Label, Start: start, End: end})
	}
	return windows, nil
}

// FromWorkers renders scheduler workers back into roster entries
func FromWorkers(workers []scheduler.Worker) []WorkerConfig {
	entries := make([]WorkerConfig, 0, len(workers))
	for _, worker := range workers {
		entries = append(entries, WorkerConfig{
			Name:  worker.Name,
			Start: clock.Format(worker.Start),
			End:   clock.Format(worker.End),
		})
	}
	return entries
}

// ToPolicy converts the policy section into scheduler form
func (p PolicyConfig) ToPolicy() scheduler.Policy {
	return scheduler.Policy{
		IdealMin:  p.IdealMin,
		IdealMax:  p.IdealMax,
		HardCap:   p.HardCap,
		Tolerance: p.Tolerance,
		EndBuffer: p.EndBuffer,
	}
}

// SchedulerPolicy returns the configured policy in scheduler form
func (c *Config) SchedulerPolicy() scheduler.Policy {
	return c.Policy.ToPolicy()
}

// ToThrottle converts the throttle section into scheduler form
func (t ThrottleConfig) ToThrottle() scheduler.Throttle {
	return scheduler.Throttle{
		ExclusiveWindow:  t.ExclusiveWindow,
		ThrottledWindows: t.ThrottledWindows,
	}
}

func parseInterval(start, end string) (int, int, error) {
	s, err := clock.Parse(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := clock.Parse(end)
	if err != nil {
		return 0, 0, err
	}
	return s, e, nil
}

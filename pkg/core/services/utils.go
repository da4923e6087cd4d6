package services

import (
	"sort"
	"time"

	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/db"
)

// summaryRoster is the day's roster as currently configured, plus anyone the
// stored schedule mentions who is no longer on it (sorted by name)
func summaryRoster(cfg *config.Config, date time.Time, schedule *db.Schedule) ([]scheduler.Worker, error) {
	day, err := BuildDay(cfg, date)
	if err != nil {
		return nil, err
	}

	roster := day.Roster
	known := make(map[string]bool, len(roster))
	for _, worker := range roster {
		known[worker.Name] = true
	}

	var extra []string
	note := func(name string) {
		if !known[name] {
			known[name] = true
			extra = append(extra, name)
		}
	}
	for _, assignment := range schedule.Assignments {
		note(assignment.Worker)
	}
	for name := range schedule.Targets {
		note(name)
	}

	sort.Strings(extra)
	for _, name := range extra {
		roster = append(roster, scheduler.Worker{Name: name})
	}
	return roster, nil
}

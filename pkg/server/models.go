package server

import (
	"time"

	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/db"
	"github.com/jakechorley/deskrota/pkg/utils/clock"
)

// PlanRequest is the body of POST /api/plan. Policy falls back to the
// server's configured policy when omitted.
type PlanRequest struct {
	Roster  []config.WorkerConfig `json:"roster" validate:"dive"`
	Windows []config.WindowConfig `json:"windows" validate:"dive"`
	Policy  *config.PolicyConfig  `json:"policy,omitempty" validate:"omitempty"`
}

// ScheduleRequest is the body of POST /api/schedule. The caller owns the
// rotation cursor and passes back nextRotation from the previous response.
type ScheduleRequest struct {
	PlanRequest

	Strategy string                `json:"strategy,omitempty" validate:"omitempty,oneof=round fair"`
	Ordering string                `json:"ordering,omitempty" validate:"omitempty,oneof=rotate random"`
	Rotation int                   `json:"rotation" validate:"min=0"`
	Seed     *uint64               `json:"seed,omitempty"`
	Throttle config.ThrottleConfig `json:"throttle"`
}

// GenerateRequest is the optional body of POST /api/days/:date/generate
type GenerateRequest struct {
	Strategy string  `json:"strategy,omitempty" validate:"omitempty,oneof=round fair"`
	Ordering string  `json:"ordering,omitempty" validate:"omitempty,oneof=rotate random"`
	Seed     *uint64 `json:"seed,omitempty"`
	DryRun   bool    `json:"dryRun"`
}

type PlanEntryResponse struct {
	Label       string `json:"label"`
	Start       string `json:"start"`
	End         string `json:"end"`
	People      int    `json:"people"`
	IdealLength *int   `json:"idealLength"`
}

type AssignmentResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Minutes   int    `json:"minutes"`
	Worker    string `json:"worker"`
	Window    string `json:"window"`
	Exclusive bool   `json:"exclusive,omitempty"`
}

type GapResponse struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Window string `json:"window"`
}

type WorkerSummaryResponse struct {
	Name     string  `json:"name"`
	Assigned int     `json:"assigned"`
	Target   float64 `json:"target"`
	Slices   int     `json:"slices"`
}

type SummaryResponse struct {
	Workers          []WorkerSummaryResponse `json:"workers"`
	CoveredMinutes   int                     `json:"coveredMinutes"`
	UncoveredMinutes int                     `json:"uncoveredMinutes"`
	FairnessScore    float64                 `json:"fairnessScore"`
}

// ScheduleResponse is returned by every endpoint that produces or reads a schedule
type ScheduleResponse struct {
	ID           string               `json:"id,omitempty"`
	Date         string               `json:"date,omitempty"`
	Strategy     string               `json:"strategy"`
	Ordering     string               `json:"ordering"`
	Rotation     int                  `json:"rotation"`
	NextRotation int                  `json:"nextRotation"`
	Seed         *uint64              `json:"seed,omitempty"`
	Saved        bool                 `json:"saved"`
	Plan         []PlanEntryResponse  `json:"plan,omitempty"`
	Assignments  []AssignmentResponse `json:"assignments"`
	Gaps         []GapResponse        `json:"gaps"`
	Summary      SummaryResponse      `json:"summary"`
}

// DayResponse lists a stored schedule without its slices
type DayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Strategy    string `json:"strategy"`
	Ordering    string `json:"ordering"`
	GeneratedAt string `json:"generatedAt"`
}

func toPlanResponse(plan []scheduler.PlanEntry) []PlanEntryResponse {
	entries := make([]PlanEntryResponse, 0, len(plan))
	for _, entry := range plan {
		entries = append(entries, PlanEntryResponse{
			Label:       entry.Label,
			Start:       clock.Format(entry.Start),
			End:         clock.Format(entry.End),
			People:      entry.People,
			IdealLength: entry.IdealLength,
		})
	}
	return entries
}

func toSummaryResponse(summary scheduler.Summary) SummaryResponse {
	response := SummaryResponse{
		Workers:          make([]WorkerSummaryResponse, 0, len(summary.Workers)),
		CoveredMinutes:   summary.CoveredMinutes,
		UncoveredMinutes: summary.UncoveredMinutes,
		FairnessScore:    summary.FairnessScore,
	}
	for _, worker := range summary.Workers {
		response.Workers = append(response.Workers, WorkerSummaryResponse(worker))
	}
	return response
}

func toResultResponse(result *scheduler.Result, summary scheduler.Summary) ScheduleResponse {
	response := ScheduleResponse{
		NextRotation: int(result.NextRotation),
		Plan:         toPlanResponse(result.Plan),
		Assignments:  make([]AssignmentResponse, 0, len(result.Assignments)),
		Gaps:         make([]GapResponse, 0, len(result.Gaps)),
		Summary:      toSummaryResponse(summary),
	}
	for _, a := range result.Assignments {
		response.Assignments = append(response.Assignments, AssignmentResponse{
			Start:     clock.Format(a.Start),
			End:       clock.Format(a.End),
			Minutes:   a.Duration,
			Worker:    a.Worker,
			Window:    a.Window,
			Exclusive: a.Exclusive,
		})
	}
	for _, g := range result.Gaps {
		response.Gaps = append(response.Gaps, GapResponse{
			Start:  clock.Format(g.Start),
			End:    clock.Format(g.End),
			Window: g.Window,
		})
	}
	return response
}

func toStoredResponse(schedule *db.Schedule, summary scheduler.Summary) ScheduleResponse {
	response := toResultResponse(schedule.Result(), summary)
	response.ID = schedule.ID
	response.Date = schedule.Date
	response.Strategy = schedule.Strategy
	response.Ordering = schedule.Ordering
	response.Rotation = schedule.Rotation
	response.Saved = true
	return response
}

func toDayResponse(schedule db.Schedule) DayResponse {
	return DayResponse{
		ID:          schedule.ID,
		Date:        schedule.Date,
		Strategy:    schedule.Strategy,
		Ordering:    schedule.Ordering,
		GeneratedAt: schedule.GeneratedAt.Format(time.RFC3339),
	}
}

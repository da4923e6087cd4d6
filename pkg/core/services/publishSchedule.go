package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/clients/sheetsclient"
	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/db"
	"github.com/jakechorley/deskrota/pkg/utils/clock"
)

// ErrPublishNotConfigured is returned when publish.spreadsheetID is empty
var ErrPublishNotConfigured = errors.New("publish.spreadsheetID is not configured")

// SchedulePublisher writes a schedule somewhere people can read it
type SchedulePublisher interface {
	PublishSchedule(spreadsheetID string, published *sheetsclient.PublishedSchedule) error
}

// PublishSchedule sends the schedule saved for date to the configured spreadsheet
func PublishSchedule(
	ctx context.Context,
	store db.Store,
	publisher SchedulePublisher,
	cfg *config.Config,
	logger *zap.Logger,
	date string,
) (*sheetsclient.PublishedSchedule, error) {
	if cfg.Publish.SpreadsheetID == "" {
		return nil, ErrPublishNotConfigured
	}

	view, err := GetSchedule(ctx, store, cfg, date)
	if err != nil {
		return nil, err
	}

	published := BuildPublishedSchedule(view)

	logger.Info("Publishing schedule",
		zap.String("date", published.Date),
		zap.String("spreadsheet_id", cfg.Publish.SpreadsheetID),
		zap.Int("rows", len(published.Slices)))

	if err := publisher.PublishSchedule(cfg.Publish.SpreadsheetID, published); err != nil {
		return nil, fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published", zap.String("date", published.Date))
	return published, nil
}

// BuildPublishedSchedule lays out a stored schedule as a timeline of
// assignments and gaps followed by the per-worker summary
func BuildPublishedSchedule(view *ScheduleView) *sheetsclient.PublishedSchedule {
	schedule := view.Schedule
	published := &sheetsclient.PublishedSchedule{
		Date:          schedule.Date,
		Strategy:      schedule.Strategy,
		FairnessScore: view.Summary.FairnessScore,
	}

	type row struct {
		start int
		slice sheetsclient.PublishedSlice
	}
	rows := make([]row, 0, len(schedule.Assignments)+len(schedule.Gaps))
	for _, a := range schedule.Assignments {
		rows = append(rows, row{start: a.Start, slice: sheetsclient.PublishedSlice{
			Time:      clock.FormatRange(a.Start, a.End),
			Worker:    a.Worker,
			Minutes:   a.End - a.Start,
			Window:    a.Window,
			Exclusive: a.Exclusive,
		}})
	}
	for _, g := range schedule.Gaps {
		rows = append(rows, row{start: g.Start, slice: sheetsclient.PublishedSlice{
			Time:    clock.FormatRange(g.Start, g.End),
			Minutes: g.End - g.Start,
			Window:  g.Window,
		}})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].start < rows[j].start })

	for _, r := range rows {
		published.Slices = append(published.Slices, r.slice)
	}

	for _, worker := range view.Summary.Workers {
		published.Workers = append(published.Workers, toPublishedWorker(worker))
	}

	return published
}

func toPublishedWorker(worker scheduler.WorkerSummary) sheetsclient.PublishedWorker {
	return sheetsclient.PublishedWorker{
		Name:     worker.Name,
		Assigned: worker.Assigned,
		Target:   worker.Target,
		Slices:   worker.Slices,
	}
}

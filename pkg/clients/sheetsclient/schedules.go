package sheetsclient

import (
	"fmt"
	"strconv"
	"time"
)

// PublishedSlice is one row of the published timeline
type PublishedSlice struct {
	Time      string // "09:00-09:05"
	Worker    string // empty for an uncovered gap
	Minutes   int
	Window    string
	Exclusive bool
}

// PublishedWorker is one row of the published summary
type PublishedWorker struct {
	Name     string
	Assigned int
	Target   float64
	Slices   int
}

// PublishedSchedule is everything written to a day's tab
type PublishedSchedule struct {
	Date          string // YYYY-MM-DD
	Strategy      string
	Slices        []PublishedSlice
	Workers       []PublishedWorker
	FairnessScore float64
}

// PublishSchedule writes a day's schedule to its own tab, titled like
// "Thu Oct 15 2026". An existing tab for the same day is overwritten.
func (c *Client) PublishSchedule(spreadsheetID string, published *PublishedSchedule) error {
	title, err := tabTitle(published.Date)
	if err != nil {
		return fmt.Errorf("failed to generate tab title: %w", err)
	}

	existing, err := c.findSheet(spreadsheetID, title)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := c.createSheet(spreadsheetID, title); err != nil {
			return err
		}
	}

	return c.writeValues(spreadsheetID, title, buildRows(published))
}

// tabTitle formats a YYYY-MM-DD date as "Mon Jan 02 2006"
func tabTitle(date string) (string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date: %w", err)
	}
	return day.Format("Mon Jan 02 2006"), nil
}

// buildRows lays out the timeline, then a blank row, then the per-worker summary
func buildRows(published *PublishedSchedule) [][]interface{} {
	rows := [][]interface{}{
		{"Date", published.Date, "Strategy", published.Strategy},
		{},
		{"Time", "Worker", "Minutes", "Window", "Sole cover"},
	}

	for _, slice := range published.Slices {
		worker := slice.Worker
		if worker == "" {
			worker = "UNCOVERED"
		}
		sole := ""
		if slice.Exclusive {
			sole = "yes"
		}
		rows = append(rows, []interface{}{slice.Time, worker, slice.Minutes, slice.Window, sole})
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Worker", "Assigned minutes", "Target minutes", "Slices"},
	)
	for _, worker := range published.Workers {
		rows = append(rows, []interface{}{
			worker.Name,
			worker.Assigned,
			strconv.FormatFloat(worker.Target, 'f', 1, 64),
			worker.Slices,
		})
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Fairness score", strconv.FormatFloat(published.FairnessScore, 'f', 1, 64)},
	)

	return rows
}

package commands

import (
	"fmt"
	"io"

	"github.com/jakechorley/deskrota/pkg/clients/sheetsclient"
	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/utils/clock"
)

func printRoster(w io.Writer, roster []scheduler.Worker) {
	fmt.Fprintf(w, "%-20s  %s\n", "Name", "Hours")
	fmt.Fprintln(w, "--------------------  -----------")
	for _, worker := range roster {
		fmt.Fprintf(w, "%-20s  %s\n", worker.Name, clock.FormatRange(worker.Start, worker.End))
	}
}

func printPlan(w io.Writer, plan []scheduler.PlanEntry) {
	fmt.Fprintf(w, "%-12s  %-11s  %6s  %s\n", "Window", "Time", "People", "Slice")
	fmt.Fprintln(w, "------------  -----------  ------  -------")
	for _, entry := range plan {
		slice := "skipped"
		if entry.IdealLength != nil {
			slice = fmt.Sprintf("%d min", *entry.IdealLength)
		}
		fmt.Fprintf(w, "%-12s  %-11s  %6d  %s\n",
			entry.Label, clock.FormatRange(entry.Start, entry.End), entry.People, slice)
	}
}

// printSchedule prints the timeline followed by the per-worker summary.
// Sole cover is marked with an asterisk.
func printSchedule(w io.Writer, published *sheetsclient.PublishedSchedule) {
	fmt.Fprintf(w, "%-11s  %-20s  %-12s  %s\n", "Time", "Worker", "Window", "Minutes")
	fmt.Fprintln(w, "-----------  --------------------  ------------  -------")

	uncovered := 0
	for _, slice := range published.Slices {
		worker := slice.Worker
		switch {
		case worker == "":
			worker = "UNCOVERED"
			uncovered++
		case slice.Exclusive:
			worker += " *"
		}
		fmt.Fprintf(w, "%-11s  %-20s  %-12s  %7d\n", slice.Time, worker, slice.Window, slice.Minutes)
	}

	fmt.Fprintf(w, "\n%-20s  %8s  %8s  %6s\n", "Worker", "Assigned", "Target", "Slices")
	fmt.Fprintln(w, "--------------------  --------  --------  ------")
	for _, worker := range published.Workers {
		fmt.Fprintf(w, "%-20s  %8d  %8.1f  %6d\n", worker.Name, worker.Assigned, worker.Target, worker.Slices)
	}

	fmt.Fprintf(w, "\nFairness score: %.1f\n", published.FairnessScore)
	if uncovered > 0 {
		fmt.Fprintf(w, "⚠️  %d uncovered interval(s)\n", uncovered)
	}
}

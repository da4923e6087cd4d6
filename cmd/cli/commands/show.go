package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/deskrota/pkg/core/services"
)

// ShowCmd creates the show command
func ShowCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <date>",
		Short: "Show the saved schedule for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := services.GetSchedule(app.Ctx, app.Store, app.Cfg, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n📅 Schedule for %s (%s, %s), generated %s\n\n",
				view.Schedule.Date,
				view.Schedule.Strategy,
				view.Schedule.Ordering,
				view.Schedule.GeneratedAt.Format("2006-01-02 15:04"))
			printSchedule(out, services.BuildPublishedSchedule(view))
			fmt.Fprintln(out)
			return nil
		},
	}
}

// ListCmd creates the list command
func ListCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved schedules, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, err := services.ListSchedules(app.Ctx, app.Store)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(schedules) == 0 {
				fmt.Fprintln(out, "No schedules saved yet.")
				return nil
			}

			fmt.Fprintf(out, "\nFound %d schedules:\n\n", len(schedules))
			for _, schedule := range schedules {
				fmt.Fprintf(out, "- %s  %-5s  %-6s  %s\n",
					schedule.Date, schedule.Strategy, schedule.Ordering, schedule.ID)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

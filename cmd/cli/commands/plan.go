package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/deskrota/pkg/core/services"
)

// PlanCmd creates the plan command
func PlanCmd(app *AppContext) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the slice length chosen for each window without assigning anyone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := services.ParseDate(date)
			if err != nil {
				return err
			}

			resolved, plan, err := services.PlanDay(app.Cfg, day, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n📐 Plan for %s (%d workers)\n\n", resolved.DateKey(), len(resolved.Roster))
			printPlan(out, plan)
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to plan (YYYY-MM-DD, defaults to today)")
	return cmd
}

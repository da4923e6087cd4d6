package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/deskrota/pkg/core/services"
)

// RosterCmd creates the roster command
func RosterCmd(app *AppContext) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List who is working on a date after overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := services.ParseDate(date)
			if err != nil {
				return err
			}

			resolved, err := services.BuildDay(app.Cfg, day)
			if err != nil {
				return err
			}
			app.Logger.Debug("roster command", zap.String("date", resolved.DateKey()), zap.Int("overrides", resolved.Overrides))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n👥 Roster for %s\n\n", resolved.DateKey())
			printRoster(out, resolved.Roster)
			if len(resolved.Absent) > 0 {
				fmt.Fprintf(out, "\nAbsent: %s\n", strings.Join(resolved.Absent, ", "))
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to resolve (YYYY-MM-DD, defaults to today)")
	return cmd
}

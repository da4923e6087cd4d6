package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/deskrota/pkg/core/services"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <date>",
		Short: "Publish the saved schedule for a date to Google Sheets",
		Long:  "Publish the saved schedule for a date to a tab of the configured spreadsheet, replacing the tab's contents.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("publish command", zap.String("date", args[0]))

			publisher, err := app.Publisher()
			if err != nil {
				return err
			}

			published, err := services.PublishSchedule(app.Ctx, app.Store, publisher, app.Cfg, app.Logger, args[0])
			if err != nil {
				return fmt.Errorf("failed to publish schedule: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✅ Schedule Published Successfully\n\n")
			fmt.Fprintf(out, "Date:     %s\n", published.Date)
			fmt.Fprintf(out, "Rows:     %d\n", len(published.Slices))
			fmt.Fprintf(out, "Sheet ID: %s\n\n", app.Cfg.Publish.SpreadsheetID)
			return nil
		},
	}
}

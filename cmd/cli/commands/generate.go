package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/deskrota/pkg/core/scheduler"
	"github.com/jakechorley/deskrota/pkg/core/services"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	var (
		date     string
		strategy string
		ordering string
		seed     uint64
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and save the desk schedule for a date",
		Long: `Generate the desk schedule for a date using the configured roster, windows and overrides.
The schedule replaces any earlier one for the same date and the rotation cursor moves on.
With --dry-run nothing is saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := services.ParseDate(date)
			if err != nil {
				return err
			}

			if strategy != "" && !scheduler.Strategy(strategy).IsValid() {
				return fmt.Errorf("strategy must be round or fair, got %q", strategy)
			}
			if ordering != "" && !scheduler.Ordering(ordering).IsValid() {
				return fmt.Errorf("ordering must be rotate or random, got %q", ordering)
			}

			opts := services.GenerateOptions{
				Date:     day,
				Strategy: scheduler.Strategy(strategy),
				Ordering: scheduler.Ordering(ordering),
				DryRun:   dryRun,
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}

			app.Logger.Debug("generate command",
				zap.String("date", date),
				zap.String("strategy", strategy),
				zap.String("ordering", ordering),
				zap.Bool("dry_run", dryRun))

			generated, err := services.GenerateSchedule(app.Ctx, app.Store, app.Cfg, app.Logger, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✅ Schedule for %s (%s, %s)\n\n",
				generated.Schedule.Date, generated.Schedule.Strategy, generated.Schedule.Ordering)

			published := services.BuildPublishedSchedule(&services.ScheduleView{
				Schedule: generated.Schedule,
				Summary:  generated.Summary,
			})
			printSchedule(out, published)

			if generated.Seed != nil {
				fmt.Fprintf(out, "Seed: %d\n", *generated.Seed)
			}
			if generated.Saved {
				fmt.Fprintf(out, "Saved. Next rotation: %d\n\n", generated.Schedule.NextRotation)
			} else {
				fmt.Fprintf(out, "Dry run, nothing saved.\n\n")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to schedule (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Selection strategy: round or fair (defaults to config)")
	cmd.Flags().StringVar(&ordering, "ordering", "", "Rotation ordering: rotate or random (defaults to config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for random ordering")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run without saving to the store")

	return cmd
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/deskrota/cmd/cli/commands"
	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/db"
	"github.com/jakechorley/deskrota/pkg/postgres"
	"github.com/jakechorley/deskrota/pkg/sqlite"
	"github.com/jakechorley/deskrota/pkg/utils/logging"
)

var (
	env        string
	configPath string
	verbose    bool
)

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:          "deskrota",
		Short:        "deskrota - fair desk coverage scheduling",
		Long:         `A CLI tool for slicing a day of desk coverage into fair time slices across a roster.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Store != nil {
				if err := app.Store.Close(); err != nil && app.Logger != nil {
					app.Logger.Warn("Failed to close store", zap.Error(err))
				}
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (defaults to deskrota_config.<env>.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.RosterCmd(app))
	rootCmd.AddCommand(commands.PlanCmd(app))
	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.ShowCmd(app))
	rootCmd.AddCommand(commands.ListCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDotEnv loads the first .env found so DESKROTA_DSN can live outside the config file
func loadDotEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// initApp sets up logger, config and store
func initApp(app *commands.AppContext) error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	loadDotEnv()

	app.Logger, err = logging.InitLogger(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.LoadWithEnv(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.Int("workers", len(app.Cfg.Roster)),
		zap.Int("windows", len(app.Cfg.Windows)),
		zap.Int("overrides", len(app.Cfg.Overrides)))

	app.Store, err = openStore(app.Ctx, app.Cfg.Storage, app.Logger)
	if err != nil {
		return err
	}
	app.Logger.Info("Store initialized successfully", zap.String("driver", app.Cfg.Storage.Driver))

	return nil
}

func openStore(ctx context.Context, storage config.StorageConfig, logger *zap.Logger) (db.Store, error) {
	switch storage.Driver {
	case config.DriverPostgres:
		logger.Info("Connecting to postgres")
		store, err := postgres.NewDB(ctx, storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}

		logger.Info("Running migrations")
		if err := store.RunMigrations(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil

	default:
		logger.Info("Opening sqlite store", zap.String("path", storage.DSN))
		store, err := sqlite.Open(storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, nil
	}
}

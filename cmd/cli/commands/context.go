package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/clients/sheetsclient"
	"github.com/jakechorley/deskrota/pkg/core/services"
	"github.com/jakechorley/deskrota/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env    string
	Cfg    *config.Config
	Store  db.Store
	Logger *zap.Logger
	Ctx    context.Context

	// NewPublisher is called the first time a command needs to publish; it
	// defaults to a Google Sheets client so other commands never authenticate
	NewPublisher func() (services.SchedulePublisher, error)

	publisher services.SchedulePublisher
}

// Publisher returns the schedule publisher, creating it on first use
func (app *AppContext) Publisher() (services.SchedulePublisher, error) {
	if app.publisher != nil {
		return app.publisher, nil
	}

	newPublisher := app.NewPublisher
	if newPublisher == nil {
		newPublisher = app.sheetsPublisher
	}

	publisher, err := newPublisher()
	if err != nil {
		return nil, err
	}
	app.publisher = publisher
	return publisher, nil
}

func (app *AppContext) sheetsPublisher() (services.SchedulePublisher, error) {
	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	return client, nil
}

package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jakechorley/deskrota/pkg/server"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				app.Cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(app.Ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx, server.NewHandler(app.Store, app.Cfg, app.Logger))
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (defaults to server.port)")
	return cmd
}

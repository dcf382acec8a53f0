package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bikepulse/internal/app"
	"bikepulse/internal/infrastructure"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Loads the dataset and serves the HTML dashboard, the JSON API and the
Prometheus metrics endpoint until interrupted. A dataset that cannot be loaded
aborts startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				if port <= 0 || port > 65535 {
					return fmt.Errorf("invalid port: %d", port)
				}
				cfg.Server.Port = port
			}

			logger, err := infrastructure.InitializeLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer infrastructure.CloseLogFile()

			application, err := app.NewApplication(cfg, logger)
			if err != nil {
				logger.Error("Failed to initialize application", "error", err)
				return err
			}

			if err := application.Run(); err != nil {
				logger.Error("Application error", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port, overrides server.port")

	return cmd
}

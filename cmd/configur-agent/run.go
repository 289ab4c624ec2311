package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-configur/internal/client"
	"github.com/MKhiriev/go-configur/internal/config"
	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/models"
)

func newRunCmd(buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "run [flags]",
		Short: "Run the agent until SIGINT or SIGTERM",
		Long: `Run loads the configuration from defaults, the JSON file given by -c,
CONFIGUR_* environment variables and flags (in increasing priority), loads
the settings once and keeps refreshing them until interrupted.

Flags:
  -connection-string   AppId=..;AppSecret=..;AppPassword=..
  -app-id, -app-secret, -app-password
  -api-host, -authority, -dev, -api-version, -request-timeout
  -cache, -cache-driver, -cache-dir, -cache-dsn
  -refresh-interval, -no-push
  -a                   admin API address host:port
  -log-level, -log-file
  -c, -config          JSON configuration file`,
		// flags belong to the config package so env and JSON share one parser
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetStructuredConfig(args)
			if errors.Is(err, flag.ErrHelp) {
				return cmd.Help()
			}
			if err != nil {
				return err
			}

			log, err := logger.NewAgentLogger("configur-agent", cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(
				context.Background(),
				syscall.SIGTERM,
				syscall.SIGINT,
				syscall.SIGQUIT,
			)
			defer stop()

			app, err := client.NewApp(ctx, cfg, buildInfo, log)
			if err != nil {
				log.Error().Err(err).Msg("init agent error")
				return err
			}

			return app.Run(ctx)
		},
	}
}

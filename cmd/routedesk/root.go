package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alwitt/routedesk"
	"github.com/alwitt/routedesk/config"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/json"
	"github.com/spf13/cobra"
)

func newRootCmd(version, buildDate string) *cobra.Command {
	var configFile string
	root := &cobra.Command{
		Use:           "routedesk",
		Short:         "JTP Logistics route and user dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")

	root.AddCommand(newVersionCmd(version, buildDate))
	root.AddCommand(newServeCmd(&configFile))
	root.AddCommand(newMigrateCmd(&configFile))
	root.AddCommand(newBootstrapCmd(&configFile))
	root.AddCommand(newAuditCmd(&configFile))
	return root
}

// loadConfig read the config and set up logging from it
func loadConfig(configFile string) (config.Config, error) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return config.Config{}, err
	}

	if cfg.Logging.JSON {
		log.SetHandler(json.New(os.Stderr))
	} else {
		log.SetHandler(cli.New(os.Stderr))
	}
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to set log level [%w]", err)
	}
	log.SetLevel(level)
	return cfg, nil
}

// withDashboard run a command body against an assembled dashboard
func withDashboard(
	ctx context.Context,
	configFile string,
	body func(ctx context.Context, dashboard *routedesk.Dashboard) error,
) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	dashboard, err := routedesk.NewDashboard(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := dashboard.Close(); err != nil {
			log.WithError(err).Error("Failed to close dashboard")
		}
	}()
	return body(ctx, dashboard)
}

func newVersionCmd(version, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "routedesk %s (%s)\n", version, buildDate)
		},
	}
}

func newServeCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDashboard(
				cmd.Context(), *configFile,
				func(ctx context.Context, dashboard *routedesk.Dashboard) error {
					if err := dashboard.Migrate(ctx); err != nil {
						return err
					}
					return dashboard.Run(ctx)
				},
			)
		},
	}
}

func newMigrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the dashboard tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDashboard(
				cmd.Context(), *configFile,
				func(ctx context.Context, dashboard *routedesk.Dashboard) error {
					return dashboard.Migrate(ctx)
				},
			)
		},
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/alwitt/routedesk"
	"github.com/alwitt/routedesk/models"
	"github.com/spf13/cobra"
)

func newBootstrapCmd(configFile *string) *cobra.Command {
	var admin models.User
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the first administrator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDashboard(
				cmd.Context(), *configFile,
				func(ctx context.Context, dashboard *routedesk.Dashboard) error {
					if err := dashboard.Migrate(ctx); err != nil {
						return err
					}
					created, err := dashboard.Bootstrap(ctx, admin)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "administrator %s created (%s)\n", created.Email, created.ID)
					return nil
				},
			)
		},
	}
	cmd.Flags().StringVar(&admin.Email, "email", "", "administrator email")
	cmd.Flags().StringVar(&admin.Name, "name", "", "administrator first name(s)")
	cmd.Flags().StringVar(&admin.LastName, "last-name", "", "administrator last name(s)")
	cmd.Flags().StringVar(&admin.Password, "password", "", "administrator password")
	for _, flag := range []string{"email", "name", "last-name", "password"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

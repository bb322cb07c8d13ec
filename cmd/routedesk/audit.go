package main

import (
	"context"
	"encoding/json"

	"github.com/alwitt/routedesk"
	"github.com/alwitt/routedesk/db"
	"github.com/alwitt/routedesk/models"
	"github.com/spf13/cobra"
)

func newAuditCmd(configFile *string) *cobra.Command {
	audit := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail",
	}
	audit.AddCommand(newAuditListCmd(configFile))
	return audit
}

func newAuditListCmd(configFile *string) *cobra.Command {
	var eventTypes []string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit events, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters := db.AuditEventQueryFilter{}
			for _, eventType := range eventTypes {
				filters.EventTypes = append(filters.EventTypes, models.AuditEventTypeENUMType(eventType))
			}
			if limit > 0 {
				filters.Limit = &limit
			}

			return withDashboard(
				cmd.Context(), *configFile,
				func(ctx context.Context, dashboard *routedesk.Dashboard) error {
					return dashboard.Persistence.UseDatabase(
						ctx, func(ctx context.Context, dbClient db.Database) error {
							events, err := dbClient.ListAuditEvents(ctx, filters)
							if err != nil {
								return err
							}
							encoder := json.NewEncoder(cmd.OutOrStdout())
							for _, event := range events {
								if err := encoder.Encode(event); err != nil {
									return err
								}
							}
							return nil
						},
					)
				},
			)
		},
	}
	cmd.Flags().StringSliceVar(&eventTypes, "type", nil, "only these event types")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum events to list")
	return cmd
}

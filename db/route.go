package db

import (
	"context"
	"fmt"
	"time"

	"github.com/alwitt/routedesk/models"
	"github.com/apex/log"
	"github.com/google/uuid"
)

/*
DefineNewRoute insert a new route. The route ID is assigned here; any ID on the
parameter is ignored.

	@param ctx context.Context - execution context
	@param route models.Route - the route fields
	@returns the stored route
*/
func (d *databaseImpl) DefineNewRoute(ctx context.Context, route models.Route) (models.Route, error) {
	logtags := d.LogTags

	route.ID = uuid.NewString()
	newEntry := RouteDBEntry{Route: route}

	if err := d.validator.Struct(&newEntry); err != nil {
		return models.Route{}, fmt.Errorf("new route entry is not valid [%w]", err)
	}

	if tmp := d.db.Create(&newEntry); tmp.Error != nil {
		return models.Route{}, fmt.Errorf("new route insert failed [%w]", translateError(tmp.Error))
	}

	if err := d.recordChangeEvent(
		models.AuditEventTypeRouteCreated, auditCollectionRoutes, newEntry.ID,
	); err != nil {
		return models.Route{}, fmt.Errorf("failed to log route creation audit event [%w]", err)
	}

	log.WithFields(logtags).WithField("route-id", newEntry.ID).Debug("Defined new route")

	return newEntry.Route, nil
}

/*
GetRoute fetch a route by ID

	@param ctx context.Context - execution context
	@param routeID string - route ID
	@returns the route
*/
func (d *databaseImpl) GetRoute(_ context.Context, routeID string) (models.Route, error) {
	var entry RouteDBEntry
	if tmp := d.db.Where("id = ?", routeID).First(&entry); tmp.Error != nil {
		return models.Route{}, fmt.Errorf(
			"failed to read route '%s' [%w]", routeID, translateError(tmp.Error),
		)
	}
	return entry.Route, nil
}

/*
ListRoutes list every route

	@param ctx context.Context - execution context
	@returns all routes
*/
func (d *databaseImpl) ListRoutes(_ context.Context) ([]models.Route, error) {
	var entries []RouteDBEntry
	if tmp := d.db.Order("created_at").Order("id").Find(&entries); tmp.Error != nil {
		return nil, fmt.Errorf("failed to list routes [%w]", tmp.Error)
	}

	result := []models.Route{}
	for _, entry := range entries {
		result = append(result, entry.Route)
	}
	return result, nil
}

/*
UpdateRoute overwrite all fields of a route

	@param ctx context.Context - execution context
	@param routeID string - route ID
	@param route models.Route - the new route fields
*/
func (d *databaseImpl) UpdateRoute(ctx context.Context, routeID string, route models.Route) error {
	logtags := d.LogTags

	route.ID = routeID
	route.UpdatedAt = time.Now().UTC()
	entry := RouteDBEntry{Route: route}

	if err := d.validator.Struct(&entry); err != nil {
		return fmt.Errorf("route '%s' update is not valid [%w]", routeID, err)
	}

	tmp := d.db.
		Model(&RouteDBEntry{}).
		Where("id = ?", routeID).
		Select(append(append([]string{}, models.RouteColumns...), "updated_at")).
		Updates(&entry)
	if tmp.Error != nil {
		return fmt.Errorf("route '%s' update failed [%w]", routeID, translateError(tmp.Error))
	}
	if tmp.RowsAffected == 0 {
		return fmt.Errorf("route '%s' update failed [%w]", routeID, ErrNotFound)
	}

	if err := d.recordChangeEvent(
		models.AuditEventTypeRouteUpdated, auditCollectionRoutes, routeID,
	); err != nil {
		return fmt.Errorf("failed to log route update audit event [%w]", err)
	}

	log.WithFields(logtags).WithField("route-id", routeID).Debug("Updated route")

	return nil
}

/*
DeleteRoute delete a route

	@param ctx context.Context - execution context
	@param routeID string - route ID
*/
func (d *databaseImpl) DeleteRoute(ctx context.Context, routeID string) error {
	logtags := d.LogTags

	tmp := d.db.Where("id = ?", routeID).Delete(&RouteDBEntry{})
	if tmp.Error != nil {
		return fmt.Errorf("route '%s' delete failed [%w]", routeID, tmp.Error)
	}
	if tmp.RowsAffected == 0 {
		return fmt.Errorf("route '%s' delete failed [%w]", routeID, ErrNotFound)
	}

	if err := d.recordChangeEvent(
		models.AuditEventTypeRouteDeleted, auditCollectionRoutes, routeID,
	); err != nil {
		return fmt.Errorf("failed to log route delete audit event [%w]", err)
	}

	log.WithFields(logtags).WithField("route-id", routeID).Debug("Deleted route")

	return nil
}

package records

import (
	"context"

	"github.com/alwitt/goutils"
	"github.com/alwitt/routedesk/db"
	"github.com/alwitt/routedesk/models"
	"github.com/apex/log"
)

// routeClient implements Client for routes
type routeClient struct {
	goutils.Component
	persistence db.Client
}

/*
NewRouteClient define the route record client

	@param persistence db.Client - persistence layer client
	@returns the client
*/
func NewRouteClient(persistence db.Client) Client[models.Route] {
	return &routeClient{
		Component: goutils.Component{
			LogTags: log.Fields{
				"package": "routedesk", "module": "records", "component": "record-client",
				"collection": CollectionRoutes,
			},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		persistence: persistence,
	}
}

func (c *routeClient) Collection() Collection {
	return CollectionRoutes
}

func (c *routeClient) List(ctx context.Context) ([]models.Route, error) {
	var routes []models.Route
	err := c.persistence.UseDatabase(ctx, func(ctx context.Context, dbClient db.Database) error {
		var err error
		routes, err = dbClient.ListRoutes(ctx)
		return err
	})
	if err != nil {
		return nil, classifyError(CollectionRoutes, OperationList, "", err)
	}
	return routes, nil
}

func (c *routeClient) Get(ctx context.Context, id string) (models.Route, error) {
	var route models.Route
	err := c.persistence.UseDatabase(ctx, func(ctx context.Context, dbClient db.Database) error {
		var err error
		route, err = dbClient.GetRoute(ctx, id)
		return err
	})
	if err != nil {
		return models.Route{}, classifyError(CollectionRoutes, OperationGet, id, err)
	}
	return route, nil
}

func (c *routeClient) Create(ctx context.Context, fields models.Route) (models.Route, error) {
	var route models.Route
	err := c.persistence.UseDatabaseInTransaction(
		ctx, func(ctx context.Context, dbClient db.Database) error {
			var err error
			route, err = dbClient.DefineNewRoute(ctx, fields)
			return err
		},
	)
	if err != nil {
		log.WithError(err).WithFields(c.LogTags).Error("Route create failed")
		return models.Route{}, classifyError(CollectionRoutes, OperationCreate, "", err)
	}
	return route, nil
}

func (c *routeClient) Update(ctx context.Context, id string, fields models.Route) error {
	err := c.persistence.UseDatabaseInTransaction(
		ctx, func(ctx context.Context, dbClient db.Database) error {
			return dbClient.UpdateRoute(ctx, id, fields)
		},
	)
	if err != nil {
		log.WithError(err).WithFields(c.LogTags).WithField("record-id", id).Error("Route update failed")
	}
	return classifyError(CollectionRoutes, OperationUpdate, id, err)
}

func (c *routeClient) Delete(ctx context.Context, id string) error {
	err := c.persistence.UseDatabaseInTransaction(
		ctx, func(ctx context.Context, dbClient db.Database) error {
			return dbClient.DeleteRoute(ctx, id)
		},
	)
	if err != nil {
		log.WithError(err).WithFields(c.LogTags).WithField("record-id", id).Error("Route delete failed")
	}
	return classifyError(CollectionRoutes, OperationDelete, id, err)
}

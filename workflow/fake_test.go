package workflow_test

import (
	"context"
	"fmt"
	"time"

	"github.com/alwitt/routedesk/models"
	"github.com/alwitt/routedesk/records"
	"gorm.io/datatypes"
)

// fakeRouteClient in memory route record client which counts calls
type fakeRouteClient struct {
	routes    map[string]models.Route
	order     []string
	updates   []models.Route
	creates   []models.Route
	deletes   []string
	failWrite error
	failGet   error
}

func newFakeRouteClient(routes ...models.Route) *fakeRouteClient {
	c := &fakeRouteClient{routes: map[string]models.Route{}}
	for _, r := range routes {
		c.routes[r.ID] = r
		c.order = append(c.order, r.ID)
	}
	return c
}

func (c *fakeRouteClient) Collection() records.Collection {
	return records.CollectionRoutes
}

func (c *fakeRouteClient) List(_ context.Context) ([]models.Route, error) {
	result := []models.Route{}
	for _, id := range c.order {
		if r, ok := c.routes[id]; ok {
			result = append(result, r)
		}
	}
	return result, nil
}

func (c *fakeRouteClient) Get(_ context.Context, id string) (models.Route, error) {
	if c.failGet != nil {
		return models.Route{}, c.failGet
	}
	r, ok := c.routes[id]
	if !ok {
		return models.Route{}, fmt.Errorf("routes record '%s' [%w]", id, records.ErrNotFound)
	}
	return r, nil
}

func (c *fakeRouteClient) Create(_ context.Context, fields models.Route) (models.Route, error) {
	c.creates = append(c.creates, fields)
	if c.failWrite != nil {
		return models.Route{}, c.failWrite
	}
	fields.ID = fmt.Sprintf("r%d", len(c.order)+1)
	c.routes[fields.ID] = fields
	c.order = append(c.order, fields.ID)
	return fields, nil
}

func (c *fakeRouteClient) Update(_ context.Context, id string, fields models.Route) error {
	c.updates = append(c.updates, fields)
	if c.failWrite != nil {
		return c.failWrite
	}
	if _, ok := c.routes[id]; !ok {
		return records.ErrNotFound
	}
	c.routes[id] = fields
	return nil
}

func (c *fakeRouteClient) Delete(_ context.Context, id string) error {
	c.deletes = append(c.deletes, id)
	if c.failWrite != nil {
		return c.failWrite
	}
	if _, ok := c.routes[id]; !ok {
		return records.ErrNotFound
	}
	delete(c.routes, id)
	return nil
}

// pathRecorder records every navigation
type pathRecorder struct {
	paths []string
}

func (p *pathRecorder) Navigate(_ context.Context, path string) {
	p.paths = append(p.paths, path)
}

func testRoute(id string, status string) models.Route {
	uploaded, _ := time.Parse("2006-01-02", "2024-05-01")
	delivery, _ := time.Parse("2006-01-02", "2024-05-03")
	return models.Route{
		ID:                     id,
		UploadDate:             datatypes.Date(uploaded),
		Client:                 "ACME",
		Origin:                 "Monterrey",
		Destination:            "Saltillo",
		FinalClientDestination: "Ramos Arizpe",
		DeliveryDate:           datatypes.Date(delivery),
		DeliveryTime:           datatypes.NewTime(14, 30, 0, 0),
		Reference:              "REF-001",
		Operator:               "Juan Perez",
		Status:                 status,
	}
}

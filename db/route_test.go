package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/alwitt/routedesk/db"
	"github.com/alwitt/routedesk/models"
	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestDBRouteCRUD(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	uut := prepareTestDB(t)

	// Case 0: empty table
	assert.Nil(uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		routes, err := dbClient.ListRoutes(ctx)
		assert.Nil(err)
		assert.Len(routes, 0)
		return err
	}))

	// Case 1: create
	var route0 models.Route
	assert.Nil(uut.UseDatabaseInTransaction(
		utCtx, func(ctx context.Context, dbClient db.Database) error {
			var err error
			input := sampleRoute(t, "pending")
			input.ID = "not-used"
			route0, err = dbClient.DefineNewRoute(ctx, input)
			return err
		},
	))
	assert.NotEqual("not-used", route0.ID)
	_, err := uuid.Parse(route0.ID)
	assert.Nil(err)

	// Case 2: read back
	assert.Nil(uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		route, err := dbClient.GetRoute(ctx, route0.ID)
		assert.Nil(err)
		assert.Equal("ACME", route.Client)
		assert.Equal("pending", route.Status)
		assert.Equal("2024-05-01", time.Time(route.UploadDate).Format("2006-01-02"))
		assert.Equal("2024-05-03", time.Time(route.DeliveryDate).Format("2006-01-02"))
		assert.Equal("14:30:00", route.DeliveryTime.String())
		return err
	}))

	// Case 3: invalid entry is rejected
	assert.NotNil(uut.UseDatabaseInTransaction(
		utCtx, func(ctx context.Context, dbClient db.Database) error {
			input := sampleRoute(t, "x")
			_, err := dbClient.DefineNewRoute(ctx, input)
			return err
		},
	))

	// Case 4: overwrite
	assert.Nil(uut.UseDatabaseInTransaction(
		utCtx, func(ctx context.Context, dbClient db.Database) error {
			update := sampleRoute(t, "delivered")
			update.Operator = "Ana Lopez"
			update.DeliveryTime = datatypes.NewTime(9, 15, 0, 0)
			return dbClient.UpdateRoute(ctx, route0.ID, update)
		},
	))
	assert.Nil(uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		route, err := dbClient.GetRoute(ctx, route0.ID)
		assert.Nil(err)
		assert.Equal(route0.ID, route.ID)
		assert.Equal("delivered", route.Status)
		assert.Equal("Ana Lopez", route.Operator)
		assert.Equal("09:15:00", route.DeliveryTime.String())
		assert.Equal(route0.CreatedAt.Unix(), route.CreatedAt.Unix())
		return err
	}))

	// Case 5: overwrite unknown route
	err = uut.UseDatabaseInTransaction(
		utCtx, func(ctx context.Context, dbClient db.Database) error {
			return dbClient.UpdateRoute(ctx, uuid.NewString(), sampleRoute(t, "delivered"))
		},
	)
	assert.ErrorIs(err, db.ErrNotFound)

	// Case 6: add another, list in creation order
	var route1 models.Route
	assert.Nil(uut.UseDatabaseInTransaction(
		utCtx, func(ctx context.Context, dbClient db.Database) error {
			var err error
			route1, err = dbClient.DefineNewRoute(ctx, sampleRoute(t, "in transit"))
			return err
		},
	))
	assert.Nil(uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		routes, err := dbClient.ListRoutes(ctx)
		assert.Nil(err)
		assert.Len(routes, 2)
		ids := map[string]bool{}
		for _, r := range routes {
			ids[r.ID] = true
		}
		assert.True(ids[route0.ID])
		assert.True(ids[route1.ID])
		return err
	}))

	// Case 7: delete
	assert.Nil(uut.UseDatabaseInTransaction(
		utCtx, func(ctx context.Context, dbClient db.Database) error {
			return dbClient.DeleteRoute(ctx, route0.ID)
		},
	))
	err = uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		_, err := dbClient.GetRoute(ctx, route0.ID)
		return err
	})
	assert.ErrorIs(err, db.ErrNotFound)
	err = uut.UseDatabaseInTransaction(
		utCtx, func(ctx context.Context, dbClient db.Database) error {
			return dbClient.DeleteRoute(ctx, route0.ID)
		},
	)
	assert.ErrorIs(err, db.ErrNotFound)

	// Case 8: audit trail
	assert.Nil(uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		events, err := dbClient.ListAuditEvents(ctx, db.AuditEventQueryFilter{
			EventTypes: []models.AuditEventTypeENUMType{
				models.AuditEventTypeRouteCreated,
				models.AuditEventTypeRouteUpdated,
				models.AuditEventTypeRouteDeleted,
			},
		})
		assert.Nil(err)
		assert.Len(events, 4)
		v := validatorForTest(t)
		for _, event := range events {
			parsed, err := event.ParseMetadata(v)
			assert.Nil(err)
			related, ok := parsed.(models.AuditRecordRelated)
			assert.True(ok)
			assert.Equal("routes", related.Collection)
		}
		return err
	}))
}

func TestDBRouteTransactionRollback(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	uut := prepareTestDB(t)

	// A failure inside the transaction drops the insert and its audit event
	err := uut.UseDatabaseInTransaction(
		utCtx, func(ctx context.Context, dbClient db.Database) error {
			if _, err := dbClient.DefineNewRoute(ctx, sampleRoute(t, "pending")); err != nil {
				return err
			}
			return dbClient.DeleteRoute(ctx, uuid.NewString())
		},
	)
	assert.ErrorIs(err, db.ErrNotFound)

	assert.Nil(uut.UseDatabase(utCtx, func(ctx context.Context, dbClient db.Database) error {
		routes, err := dbClient.ListRoutes(ctx)
		assert.Nil(err)
		assert.Len(routes, 0)
		events, err := dbClient.ListAuditEvents(ctx, db.AuditEventQueryFilter{})
		assert.Nil(err)
		assert.Len(events, 0)
		return err
	}))
}

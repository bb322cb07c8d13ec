package db_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alwitt/routedesk/db"
	"github.com/alwitt/routedesk/models"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm/logger"
)

// prepareTestDB define a fresh sqlite database with the dashboard tables
func prepareTestDB(t *testing.T) db.Client {
	testDB := fmt.Sprintf("/tmp/routedesk_ut_%s.db", ulid.Make().String())
	log.WithField("db", testDB).Debug("Test database")

	uut, err := db.NewConnection(db.GetSqliteDialector(testDB), logger.Error)
	assert.Nil(t, err)
	assert.Nil(t, uut.RunSQLInTransaction(context.Background(), db.DefineTables))
	t.Cleanup(func() { _ = uut.Close() })
	return uut
}

func mustDate(t *testing.T, value string) datatypes.Date {
	parsed, err := time.Parse("2006-01-02", value)
	assert.Nil(t, err)
	return datatypes.Date(parsed)
}

func sampleRoute(t *testing.T, status string) models.Route {
	return models.Route{
		UploadDate:             mustDate(t, "2024-05-01"),
		Client:                 "ACME",
		Origin:                 "Monterrey",
		Destination:            "Saltillo",
		FinalClientDestination: "Ramos Arizpe",
		DeliveryDate:           mustDate(t, "2024-05-03"),
		DeliveryTime:           datatypes.NewTime(14, 30, 0, 0),
		Reference:              "REF-001",
		Operator:               "Juan Perez",
		Status:                 status,
	}
}

func validatorForTest(t *testing.T) *validator.Validate {
	v := validator.New()
	assert.Nil(t, models.RegisterWithValidator(v))
	return v
}

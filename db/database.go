package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/routedesk/models"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	// ErrNotFound the requested entry does not exist
	ErrNotFound = errors.New("entry not found")
	// ErrDuplicate the entry collides with an existing unique value
	ErrDuplicate = errors.New("entry already exists")
)

// translateError map GORM errors to the persistence layer sentinels
func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", ErrDuplicate, err.Error())
	}
	return err
}

// CommonListEntryQueryFilter common query filter when listing data entries
type CommonListEntryQueryFilter struct {
	Limit  *int
	Offset *int
}

// AuditEventQueryFilter audit event query filter conditions
type AuditEventQueryFilter struct {
	CommonListEntryQueryFilter
	// EventTypes the specific event types to query for
	EventTypes []models.AuditEventTypeENUMType
	// EventsAfter filter for events after this timestamp
	EventsAfter *time.Time
	// EventsBefore filter for events before this timestamp
	EventsBefore *time.Time
}

// Database the database handle to interacting with the data base
type Database interface {
	// ------------------------------------------------------------------------------------
	// Audit events

	/*
		ListAuditEvents list captured audit events

			@param ctx context.Context - execution context
			@param filters AuditEventQueryFilter - entry listing filter
			@return list of audit events
	*/
	ListAuditEvents(
		ctx context.Context, filters AuditEventQueryFilter,
	) ([]models.AuditEvent, error)

	// ------------------------------------------------------------------------------------
	// System parameters

	/*
		GetSystemParamEntry fetch the global singleton system parameter entry

			@param ctx context.Context - execution context
			@returns the entry
	*/
	GetSystemParamEntry(ctx context.Context) (models.SystemParams, error)

	/*
		MarkSystemInitializing record that the first administrator is being created

			@param ctx context.Context - execution context
	*/
	MarkSystemInitializing(ctx context.Context) error

	/*
		MarkSystemInitialized complete the bootstrap. The administrator must be an existing
		user with the admin role.

			@param ctx context.Context - execution context
			@param administratorID string - the user created by the bootstrap
	*/
	MarkSystemInitialized(ctx context.Context, administratorID string) error

	// ------------------------------------------------------------------------------------
	// Routes

	/*
		DefineNewRoute insert a new route. The route ID is assigned here; any ID on the
		parameter is ignored.

			@param ctx context.Context - execution context
			@param route models.Route - the route fields
			@returns the stored route
	*/
	DefineNewRoute(ctx context.Context, route models.Route) (models.Route, error)

	/*
		GetRoute fetch a route by ID

			@param ctx context.Context - execution context
			@param routeID string - route ID
			@returns the route
	*/
	GetRoute(ctx context.Context, routeID string) (models.Route, error)

	/*
		ListRoutes list every route

			@param ctx context.Context - execution context
			@returns all routes
	*/
	ListRoutes(ctx context.Context) ([]models.Route, error)

	/*
		UpdateRoute overwrite all fields of a route

			@param ctx context.Context - execution context
			@param routeID string - route ID
			@param route models.Route - the new route fields
	*/
	UpdateRoute(ctx context.Context, routeID string, route models.Route) error

	/*
		DeleteRoute delete a route

			@param ctx context.Context - execution context
			@param routeID string - route ID
	*/
	DeleteRoute(ctx context.Context, routeID string) error

	// ------------------------------------------------------------------------------------
	// Users

	/*
		DefineNewUser insert a new user. The user ID must be the ID of its login identity.

			@param ctx context.Context - execution context
			@param user models.User - the user fields
			@returns the stored user
	*/
	DefineNewUser(ctx context.Context, user models.User) (models.User, error)

	/*
		GetUser fetch a user by ID

			@param ctx context.Context - execution context
			@param userID string - user ID
			@returns the user
	*/
	GetUser(ctx context.Context, userID string) (models.User, error)

	/*
		ListUsers list every user

			@param ctx context.Context - execution context
			@returns all users
	*/
	ListUsers(ctx context.Context) ([]models.User, error)

	/*
		UpdateUser overwrite all fields of a user

			@param ctx context.Context - execution context
			@param userID string - user ID
			@param user models.User - the new user fields
	*/
	UpdateUser(ctx context.Context, userID string, user models.User) error

	/*
		DeleteUser delete a user

			@param ctx context.Context - execution context
			@param userID string - user ID
	*/
	DeleteUser(ctx context.Context, userID string) error

	// ------------------------------------------------------------------------------------
	// Login identities

	/*
		DefineNewIdentity record a new login identity

			@param ctx context.Context - execution context
			@param email string - login email
			@param passwordHash string - hashed credential
			@returns the identity
	*/
	DefineNewIdentity(ctx context.Context, email string, passwordHash string) (models.Identity, error)

	/*
		GetIdentity fetch a login identity by ID

			@param ctx context.Context - execution context
			@param identityID string - identity ID
			@returns the identity
	*/
	GetIdentity(ctx context.Context, identityID string) (models.Identity, error)

	/*
		GetIdentityByEmail fetch a login identity by email

			@param ctx context.Context - execution context
			@param email string - login email
			@returns the identity
	*/
	GetIdentityByEmail(ctx context.Context, email string) (models.Identity, error)

	/*
		UpdateIdentityEmail change the login email of an identity

			@param ctx context.Context - execution context
			@param identityID string - identity ID
			@param email string - new login email
	*/
	UpdateIdentityEmail(ctx context.Context, identityID string, email string) error

	/*
		UpdateIdentityPassword replace the credential of an identity

			@param ctx context.Context - execution context
			@param identityID string - identity ID
			@param passwordHash string - new hashed credential
	*/
	UpdateIdentityPassword(ctx context.Context, identityID string, passwordHash string) error

	/*
		DeleteIdentity delete a login identity

			@param ctx context.Context - execution context
			@param identityID string - identity ID
	*/
	DeleteIdentity(ctx context.Context, identityID string) error

	/*
		RecordSessionStart record that an identity signed in

			@param ctx context.Context - execution context
			@param identityID string - identity ID
			@param sessionID string - issued session ID
	*/
	RecordSessionStart(ctx context.Context, identityID string, sessionID string) error
}

// databaseImpl implements Database
type databaseImpl struct {
	goutils.Component
	db        *gorm.DB
	validator *validator.Validate
}

// newDatabase define a new database client
func newDatabase(_ context.Context, sqlClient *gorm.DB) (Database, error) {
	logTags := log.Fields{"package": "routedesk", "module": "db", "component": "db-client"}

	instance := &databaseImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:        sqlClient,
		validator: validator.New(),
	}

	if err := models.RegisterWithValidator(instance.validator); err != nil {
		return nil, fmt.Errorf("failed to install custom validation macros [%w]", err)
	}

	return instance, nil
}

package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/alwitt/goutils"
	"github.com/alwitt/routedesk/auth"
	"github.com/alwitt/routedesk/db"
	"github.com/alwitt/routedesk/models"
	"github.com/apex/log"
)

// ErrLastAdministrator the change would leave the dashboard without an administrator
var ErrLastAdministrator = errors.New("the last administrator can't be removed")

// userClient implements Client for users
//
// Each user is paired with the login identity sharing its ID. The pair is created,
// updated and deleted in one transaction.
type userClient struct {
	goutils.Component
	persistence db.Client
	auth        auth.Service
}

/*
NewUserClient define the user record client

	@param persistence db.Client - persistence layer client
	@param authService auth.Service - auth service holding the login identities
	@returns the client
*/
func NewUserClient(persistence db.Client, authService auth.Service) Client[models.User] {
	return &userClient{
		Component: goutils.Component{
			LogTags: log.Fields{
				"package": "routedesk", "module": "records", "component": "record-client",
				"collection": CollectionUsers,
			},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		persistence: persistence,
		auth:        authService,
	}
}

func (c *userClient) Collection() Collection {
	return CollectionUsers
}

func (c *userClient) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.persistence.UseDatabase(ctx, func(ctx context.Context, dbClient db.Database) error {
		var err error
		users, err = dbClient.ListUsers(ctx)
		return err
	})
	if err != nil {
		return nil, classifyError(CollectionUsers, OperationList, "", err)
	}
	return users, nil
}

func (c *userClient) Get(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := c.persistence.UseDatabase(ctx, func(ctx context.Context, dbClient db.Database) error {
		var err error
		user, err = dbClient.GetUser(ctx, id)
		return err
	})
	if err != nil {
		return models.User{}, classifyError(CollectionUsers, OperationGet, id, err)
	}
	return user, nil
}

func (c *userClient) Create(ctx context.Context, fields models.User) (models.User, error) {
	var user models.User
	err := c.persistence.UseDatabaseInTransaction(
		ctx, func(ctx context.Context, dbClient db.Database) error {
			identity, err := c.auth.Register(ctx, fields.Email, fields.Password, dbClient)
			if err != nil {
				return err
			}
			fields.ID = identity.ID
			user, err = dbClient.DefineNewUser(ctx, fields)
			return err
		},
	)
	if err != nil {
		log.WithError(err).WithFields(c.LogTags).Error("User create failed")
		return models.User{}, classifyError(CollectionUsers, OperationCreate, "", err)
	}
	return user, nil
}

func (c *userClient) Update(ctx context.Context, id string, fields models.User) error {
	err := c.persistence.UseDatabaseInTransaction(
		ctx, func(ctx context.Context, dbClient db.Database) error {
			if fields.Role != models.UserRoleAdmin {
				if err := keepAnAdministrator(ctx, dbClient, id); err != nil {
					return err
				}
			}
			if err := dbClient.UpdateUser(ctx, id, fields); err != nil {
				return err
			}
			if err := c.auth.SetEmail(ctx, id, fields.Email, dbClient); err != nil {
				return err
			}
			if fields.Password != "" {
				return c.auth.SetPassword(ctx, id, fields.Password, dbClient)
			}
			return nil
		},
	)
	if err != nil {
		log.WithError(err).WithFields(c.LogTags).WithField("record-id", id).Error("User update failed")
	}
	return classifyError(CollectionUsers, OperationUpdate, id, err)
}

func (c *userClient) Delete(ctx context.Context, id string) error {
	err := c.persistence.UseDatabaseInTransaction(
		ctx, func(ctx context.Context, dbClient db.Database) error {
			if err := keepAnAdministrator(ctx, dbClient, id); err != nil {
				return err
			}
			if err := dbClient.DeleteUser(ctx, id); err != nil {
				return err
			}
			return c.auth.Remove(ctx, id, dbClient)
		},
	)
	if err != nil {
		log.WithError(err).WithFields(c.LogTags).WithField("record-id", id).Error("User delete failed")
	}
	return classifyError(CollectionUsers, OperationDelete, id, err)
}

// keepAnAdministrator fail with ErrLastAdministrator when the user is the only admin left
func keepAnAdministrator(ctx context.Context, dbClient db.Database, userID string) error {
	users, err := dbClient.ListUsers(ctx)
	if err != nil {
		return err
	}
	target, others := false, 0
	for _, user := range users {
		if user.Role != models.UserRoleAdmin {
			continue
		}
		if user.ID == userID {
			target = true
		} else {
			others++
		}
	}
	if target && others == 0 {
		return fmt.Errorf("%w: user '%s'", ErrLastAdministrator, userID)
	}
	return nil
}

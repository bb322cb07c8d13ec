package db

import (
	"context"
	"fmt"
	"time"

	"github.com/alwitt/routedesk/models"
	"github.com/apex/log"
)

/*
DefineNewUser insert a new user. The user ID must be the ID of its login identity.

	@param ctx context.Context - execution context
	@param user models.User - the user fields
	@returns the stored user
*/
func (d *databaseImpl) DefineNewUser(_ context.Context, user models.User) (models.User, error) {
	user.Password = ""
	newEntry := UserDBEntry{User: user}

	if err := d.validator.Struct(&newEntry); err != nil {
		return models.User{}, fmt.Errorf("new user entry is not valid [%w]", err)
	}

	if tmp := d.db.Create(&newEntry); tmp.Error != nil {
		return models.User{}, fmt.Errorf("new user insert failed [%w]", translateError(tmp.Error))
	}

	if err := d.recordChangeEvent(
		models.AuditEventTypeUserCreated, auditCollectionUsers, newEntry.ID,
	); err != nil {
		return models.User{}, fmt.Errorf("failed to log user creation audit event [%w]", err)
	}

	log.WithFields(d.LogTags).WithField("user-id", newEntry.ID).Debug("Defined new user")

	return newEntry.User, nil
}

/*
GetUser fetch a user by ID

	@param ctx context.Context - execution context
	@param userID string - user ID
	@returns the user
*/
func (d *databaseImpl) GetUser(_ context.Context, userID string) (models.User, error) {
	var entry UserDBEntry
	if tmp := d.db.Where("id = ?", userID).First(&entry); tmp.Error != nil {
		return models.User{}, fmt.Errorf(
			"failed to read user '%s' [%w]", userID, translateError(tmp.Error),
		)
	}
	return entry.User, nil
}

/*
ListUsers list every user

	@param ctx context.Context - execution context
	@returns all users
*/
func (d *databaseImpl) ListUsers(_ context.Context) ([]models.User, error) {
	var entries []UserDBEntry
	if tmp := d.db.Order("created_at").Order("id").Find(&entries); tmp.Error != nil {
		return nil, fmt.Errorf("failed to list users [%w]", tmp.Error)
	}

	result := []models.User{}
	for _, entry := range entries {
		result = append(result, entry.User)
	}
	return result, nil
}

/*
UpdateUser overwrite all fields of a user

	@param ctx context.Context - execution context
	@param userID string - user ID
	@param user models.User - the new user fields
*/
func (d *databaseImpl) UpdateUser(_ context.Context, userID string, user models.User) error {
	user.ID = userID
	user.Password = ""
	user.UpdatedAt = time.Now().UTC()
	entry := UserDBEntry{User: user}

	if err := d.validator.Struct(&entry); err != nil {
		return fmt.Errorf("user '%s' update is not valid [%w]", userID, err)
	}

	tmp := d.db.
		Model(&UserDBEntry{}).
		Where("id = ?", userID).
		Select(append(append([]string{}, models.UserColumns...), "updated_at")).
		Updates(&entry)
	if tmp.Error != nil {
		return fmt.Errorf("user '%s' update failed [%w]", userID, translateError(tmp.Error))
	}
	if tmp.RowsAffected == 0 {
		return fmt.Errorf("user '%s' update failed [%w]", userID, ErrNotFound)
	}

	if err := d.recordChangeEvent(
		models.AuditEventTypeUserUpdated, auditCollectionUsers, userID,
	); err != nil {
		return fmt.Errorf("failed to log user update audit event [%w]", err)
	}

	log.WithFields(d.LogTags).WithField("user-id", userID).Debug("Updated user")

	return nil
}

/*
DeleteUser delete a user

	@param ctx context.Context - execution context
	@param userID string - user ID
*/
func (d *databaseImpl) DeleteUser(_ context.Context, userID string) error {
	tmp := d.db.Where("id = ?", userID).Delete(&UserDBEntry{})
	if tmp.Error != nil {
		return fmt.Errorf("user '%s' delete failed [%w]", userID, tmp.Error)
	}
	if tmp.RowsAffected == 0 {
		return fmt.Errorf("user '%s' delete failed [%w]", userID, ErrNotFound)
	}

	if err := d.recordChangeEvent(
		models.AuditEventTypeUserDeleted, auditCollectionUsers, userID,
	); err != nil {
		return fmt.Errorf("failed to log user delete audit event [%w]", err)
	}

	log.WithFields(d.LogTags).WithField("user-id", userID).Debug("Deleted user")

	return nil
}

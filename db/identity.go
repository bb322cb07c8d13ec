package db

import (
	"context"
	"fmt"

	"github.com/alwitt/routedesk/models"
	"github.com/google/uuid"
)

/*
DefineNewIdentity record a new login identity

	@param ctx context.Context - execution context
	@param email string - login email
	@param passwordHash string - hashed credential
	@returns the identity
*/
func (d *databaseImpl) DefineNewIdentity(
	_ context.Context, email string, passwordHash string,
) (models.Identity, error) {
	newEntry := IdentityDBEntry{
		Identity: models.Identity{
			ID: uuid.NewString(), Email: email, PasswordHash: passwordHash,
		},
	}

	if err := d.validator.Struct(&newEntry); err != nil {
		return models.Identity{}, fmt.Errorf("new identity entry is not valid [%w]", err)
	}

	if tmp := d.db.Create(&newEntry); tmp.Error != nil {
		return models.Identity{}, fmt.Errorf(
			"new identity insert failed [%w]", translateError(tmp.Error),
		)
	}

	return newEntry.Identity, nil
}

/*
GetIdentity fetch a login identity by ID

	@param ctx context.Context - execution context
	@param identityID string - identity ID
	@returns the identity
*/
func (d *databaseImpl) GetIdentity(_ context.Context, identityID string) (models.Identity, error) {
	var entry IdentityDBEntry
	if tmp := d.db.Where("id = ?", identityID).First(&entry); tmp.Error != nil {
		return models.Identity{}, fmt.Errorf(
			"failed to read identity '%s' [%w]", identityID, translateError(tmp.Error),
		)
	}
	return entry.Identity, nil
}

/*
GetIdentityByEmail fetch a login identity by email

	@param ctx context.Context - execution context
	@param email string - login email
	@returns the identity
*/
func (d *databaseImpl) GetIdentityByEmail(_ context.Context, email string) (models.Identity, error) {
	var entry IdentityDBEntry
	if tmp := d.db.Where("email = ?", email).First(&entry); tmp.Error != nil {
		return models.Identity{}, fmt.Errorf(
			"failed to read identity of '%s' [%w]", email, translateError(tmp.Error),
		)
	}
	return entry.Identity, nil
}

// updateIdentityColumn set one column of an identity
func (d *databaseImpl) updateIdentityColumn(identityID string, column string, value string) error {
	tmp := d.db.
		Model(&IdentityDBEntry{}).
		Where("id = ?", identityID).
		Update(column, value)
	if tmp.Error != nil {
		return translateError(tmp.Error)
	}
	if tmp.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

/*
UpdateIdentityEmail change the login email of an identity

	@param ctx context.Context - execution context
	@param identityID string - identity ID
	@param email string - new login email
*/
func (d *databaseImpl) UpdateIdentityEmail(_ context.Context, identityID string, email string) error {
	if err := d.validator.Var(email, "required,email"); err != nil {
		return fmt.Errorf("identity '%s' email is not valid [%w]", identityID, err)
	}
	if err := d.updateIdentityColumn(identityID, "email", email); err != nil {
		return fmt.Errorf("identity '%s' email update failed [%w]", identityID, err)
	}
	return nil
}

/*
UpdateIdentityPassword replace the credential of an identity

	@param ctx context.Context - execution context
	@param identityID string - identity ID
	@param passwordHash string - new hashed credential
*/
func (d *databaseImpl) UpdateIdentityPassword(
	_ context.Context, identityID string, passwordHash string,
) error {
	if passwordHash == "" {
		return fmt.Errorf("identity '%s' password hash is empty", identityID)
	}
	if err := d.updateIdentityColumn(identityID, "password_hash", passwordHash); err != nil {
		return fmt.Errorf("identity '%s' password update failed [%w]", identityID, err)
	}
	return nil
}

/*
DeleteIdentity delete a login identity

	@param ctx context.Context - execution context
	@param identityID string - identity ID
*/
func (d *databaseImpl) DeleteIdentity(_ context.Context, identityID string) error {
	tmp := d.db.Where("id = ?", identityID).Delete(&IdentityDBEntry{})
	if tmp.Error != nil {
		return fmt.Errorf("identity '%s' delete failed [%w]", identityID, tmp.Error)
	}
	if tmp.RowsAffected == 0 {
		return fmt.Errorf("identity '%s' delete failed [%w]", identityID, ErrNotFound)
	}
	return nil
}

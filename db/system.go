package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/alwitt/routedesk/models"
)

// GlobalSystemParamEntryID ID of the singleton system parameter entry
const GlobalSystemParamEntryID = "system-parameters"

// ErrInvalidBootstrap the bootstrap step is not allowed in the current state
var ErrInvalidBootstrap = errors.New("invalid bootstrap step")

// getSystemParamEntry fetch the system param entry, creating it in PRE_INITIALIZATION
// when the table is empty.
func (d *databaseImpl) getSystemParamEntry() (SystemParamsDBEntry, error) {
	entry := SystemParamsDBEntry{
		SystemParams: models.SystemParams{
			ID:    GlobalSystemParamEntryID,
			State: models.SystemStatePreInit,
		},
	}
	if tmp := d.db.
		Where("id = ?", GlobalSystemParamEntryID).
		FirstOrCreate(&entry); tmp.Error != nil {
		return SystemParamsDBEntry{}, fmt.Errorf("failed to read system params table [%w]", tmp.Error)
	}
	return entry, nil
}

/*
GetSystemParamEntry fetch the global singleton system parameter entry

	@param ctx context.Context - execution context
	@returns the entry
*/
func (d *databaseImpl) GetSystemParamEntry(_ context.Context) (models.SystemParams, error) {
	entry, err := d.getSystemParamEntry()
	if err != nil {
		return entry.SystemParams, fmt.Errorf("unable to fetch system parameter entry [%w]", err)
	}
	return entry.SystemParams, nil
}

/*
MarkSystemInitializing record that the first administrator is being created. Only allowed
before the bootstrap has begun; repeating it while INITIALIZING is a no-op.

	@param ctx context.Context - execution context
*/
func (d *databaseImpl) MarkSystemInitializing(_ context.Context) error {
	entry, err := d.getSystemParamEntry()
	if err != nil {
		return fmt.Errorf("unable to fetch system parameter entry [%w]", err)
	}
	if entry.State == models.SystemStateInit {
		return nil
	}
	if entry.State != models.SystemStatePreInit {
		return fmt.Errorf("%w: bootstrap already in state '%s'", ErrInvalidBootstrap, entry.State)
	}
	if err := entry.ValidateNextState(models.SystemStateInit); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBootstrap, err.Error())
	}

	if tmp := d.db.Model(&entry).Update("state", models.SystemStateInit); tmp.Error != nil {
		return fmt.Errorf("bootstrap state update failed [%w]", tmp.Error)
	}
	if _, err := d.defineNewAuditEvent(models.AuditEventTypeSystemInitializing, nil); err != nil {
		return fmt.Errorf("failed to log bootstrap audit event [%w]", err)
	}
	return nil
}

/*
MarkSystemInitialized complete the bootstrap, recording who the first administrator is.

The user must exist and hold the admin role. Repeating the call with the same
administrator is a no-op, while naming a different one is rejected.

	@param ctx context.Context - execution context
	@param administratorID string - the user created by the bootstrap
*/
func (d *databaseImpl) MarkSystemInitialized(ctx context.Context, administratorID string) error {
	entry, err := d.getSystemParamEntry()
	if err != nil {
		return fmt.Errorf("unable to fetch system parameter entry [%w]", err)
	}

	if entry.State == models.SystemStateRunning {
		if entry.AdministratorID != nil && *entry.AdministratorID == administratorID {
			return nil
		}
		return fmt.Errorf("%w: dashboard already bootstrapped", ErrInvalidBootstrap)
	}
	if err := entry.ValidateNextState(models.SystemStateRunning); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBootstrap, err.Error())
	}

	admin, err := d.GetUser(ctx, administratorID)
	if err != nil {
		return fmt.Errorf("failed to read bootstrap administrator [%w]", err)
	}
	if admin.Role != models.UserRoleAdmin {
		return fmt.Errorf(
			"%w: user '%s' has role '%s', not admin", ErrInvalidBootstrap, admin.ID, admin.Role,
		)
	}

	if tmp := d.db.Model(&entry).Updates(map[string]interface{}{
		"state":            models.SystemStateRunning,
		"administrator_id": admin.ID,
	}); tmp.Error != nil {
		return fmt.Errorf("bootstrap state update failed [%w]", tmp.Error)
	}
	if _, err := d.defineNewAuditEvent(
		models.AuditEventTypeSystemInitialized,
		models.AuditBootstrapRelated{AdministratorID: admin.ID},
	); err != nil {
		return fmt.Errorf("failed to log bootstrap audit event [%w]", err)
	}
	return nil
}

// Package db - persistence layer
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alwitt/routedesk/models"
	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"
)

// Audit collection names
const (
	auditCollectionRoutes = "routes"
	auditCollectionUsers  = "users"
)

// defineNewAuditEvent record a new audit event
func (d *databaseImpl) defineNewAuditEvent(
	eventType models.AuditEventTypeENUMType, metadata interface{},
) (models.AuditEvent, error) {
	newEntry := AuditEventDBEntry{
		AuditEvent: models.AuditEvent{ID: ulid.Make().String(), EventType: eventType},
	}

	if metadata != nil {
		if err := d.validator.Struct(metadata); err != nil {
			return models.AuditEvent{}, fmt.Errorf(
				"new audit event '%s' metadata entry is not valid [%w]", eventType, err,
			)
		}

		metadataStr, err := json.Marshal(metadata)
		if err != nil {
			return models.AuditEvent{}, fmt.Errorf(
				"new audit event '%s' metadata serialization failed [%w]", eventType, err,
			)
		}
		newEntry.Metadata = datatypes.JSON(metadataStr)
	}

	if err := d.validator.Struct(&newEntry); err != nil {
		return models.AuditEvent{}, fmt.Errorf(
			"new audit event '%s' entry is not valid [%w]", eventType, err,
		)
	}

	if tmp := d.db.Create(&newEntry); tmp.Error != nil {
		return models.AuditEvent{}, fmt.Errorf(
			"new audit event '%s' insert failed [%w]", eventType, tmp.Error,
		)
	}

	return newEntry.AuditEvent, nil
}

// recordChangeEvent record an audit event against a route or user record
func (d *databaseImpl) recordChangeEvent(
	eventType models.AuditEventTypeENUMType, collection string, recordID string,
) error {
	_, err := d.defineNewAuditEvent(
		eventType, &models.AuditRecordRelated{Collection: collection, RecordID: recordID},
	)
	return err
}

/*
ListAuditEvents list captured audit events

	@param ctx context.Context - execution context
	@param filters AuditEventQueryFilter - entry listing filter
	@return list of audit events
*/
func (d *databaseImpl) ListAuditEvents(
	_ context.Context, filters AuditEventQueryFilter,
) ([]models.AuditEvent, error) {
	query := d.db.Model(&AuditEventDBEntry{})

	if len(filters.EventTypes) > 0 {
		query = query.Where("type in ?", filters.EventTypes)
	}

	if filters.EventsAfter != nil {
		query = query.Where("created_at >= ?", *filters.EventsAfter)
	}
	if filters.EventsBefore != nil {
		query = query.Where("created_at <= ?", *filters.EventsBefore)
	}

	if filters.Limit != nil {
		query = query.Limit(*filters.Limit)
	}
	if filters.Offset != nil {
		query = query.Offset(*filters.Offset)
	}

	query = query.Order("created_at").Order("id")

	var entries []AuditEventDBEntry
	if tmp := query.Find(&entries); tmp.Error != nil {
		return nil, fmt.Errorf("failed to list captured audit events [%w]", tmp.Error)
	}

	result := []models.AuditEvent{}
	for _, entry := range entries {
		result = append(result, entry.AuditEvent)
	}

	return result, nil
}

/*
RecordSessionStart record that an identity signed in

	@param ctx context.Context - execution context
	@param identityID string - identity ID
	@param sessionID string - issued session ID
*/
func (d *databaseImpl) RecordSessionStart(
	_ context.Context, identityID string, sessionID string,
) error {
	_, err := d.defineNewAuditEvent(
		models.AuditEventTypeSessionStarted,
		&models.AuditSessionRelated{IdentityID: identityID, SessionID: sessionID},
	)
	if err != nil {
		return fmt.Errorf("failed to log session start audit event [%w]", err)
	}
	return nil
}

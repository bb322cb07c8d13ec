package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// AuditEventTypeENUMType audit event type ENUM value type
type AuditEventTypeENUMType string

const (
	// AuditEventTypeSystemInitializing first administrator is being bootstrapped
	AuditEventTypeSystemInitializing AuditEventTypeENUMType = "SYSTEM_INITIALIZING"

	// AuditEventTypeSystemInitialized first administrator is bootstrapped
	AuditEventTypeSystemInitialized AuditEventTypeENUMType = "SYSTEM_INITIALIZED"

	// AuditEventTypeRouteCreated route was created
	AuditEventTypeRouteCreated AuditEventTypeENUMType = "ROUTE_CREATED"

	// AuditEventTypeRouteUpdated route was overwritten
	AuditEventTypeRouteUpdated AuditEventTypeENUMType = "ROUTE_UPDATED"

	// AuditEventTypeRouteDeleted route was deleted
	AuditEventTypeRouteDeleted AuditEventTypeENUMType = "ROUTE_DELETED"

	// AuditEventTypeUserCreated user was created
	AuditEventTypeUserCreated AuditEventTypeENUMType = "USER_CREATED"

	// AuditEventTypeUserUpdated user was overwritten
	AuditEventTypeUserUpdated AuditEventTypeENUMType = "USER_UPDATED"

	// AuditEventTypeUserDeleted user was deleted
	AuditEventTypeUserDeleted AuditEventTypeENUMType = "USER_DELETED"

	// AuditEventTypeSessionStarted an identity signed in
	AuditEventTypeSessionStarted AuditEventTypeENUMType = "SESSION_STARTED"
)

// AuditEvent recording of a change made through the dashboard
type AuditEvent struct {
	// ID audit entry ID
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required"`
	// EventType audit event type
	EventType AuditEventTypeENUMType `json:"type" gorm:"column:type;not null" validate:"required,audit_event_type"`
	// Metadata a metadata relating to the event
	Metadata datatypes.JSON `json:"metadata,omitempty" gorm:"column:metadata;default:null"`
	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

// ParseMetadata parse the metadata based on the event type
func (a AuditEvent) ParseMetadata(validator *validator.Validate) (interface{}, error) {
	switch a.EventType {
	case AuditEventTypeRouteCreated:
		fallthrough
	case AuditEventTypeRouteUpdated:
		fallthrough
	case AuditEventTypeRouteDeleted:
		fallthrough
	case AuditEventTypeUserCreated:
		fallthrough
	case AuditEventTypeUserUpdated:
		fallthrough
	case AuditEventTypeUserDeleted:
		var parsed AuditRecordRelated
		if err := json.Unmarshal(a.Metadata, &parsed); err != nil {
			return nil, fmt.Errorf("audit event '%s' metadata parse failed [%w]", a.EventType, err)
		}
		return parsed, validator.Struct(&parsed)

	case AuditEventTypeSystemInitialized:
		var parsed AuditBootstrapRelated
		if err := json.Unmarshal(a.Metadata, &parsed); err != nil {
			return nil, fmt.Errorf("audit event '%s' metadata parse failed [%w]", a.EventType, err)
		}
		return parsed, validator.Struct(&parsed)

	case AuditEventTypeSessionStarted:
		var parsed AuditSessionRelated
		if err := json.Unmarshal(a.Metadata, &parsed); err != nil {
			return nil, fmt.Errorf("audit event '%s' metadata parse failed [%w]", a.EventType, err)
		}
		return parsed, validator.Struct(&parsed)
	}
	return nil, nil
}

// AuditRecordRelated audit event metadata related to a route or user record
type AuditRecordRelated struct {
	// Collection the collection holding the record
	Collection string `json:"collection" validate:"required,oneof=routes users"`
	// RecordID the record ID
	RecordID string `json:"record_id" validate:"required,uuid_rfc4122"`
}

// AuditSessionRelated audit event metadata related to a sign in
type AuditSessionRelated struct {
	// IdentityID the identity which signed in
	IdentityID string `json:"identity_id" validate:"required,uuid_rfc4122"`
	// SessionID the session issued
	SessionID string `json:"session_id" validate:"required"`
}

// AuditBootstrapRelated audit event metadata of a completed bootstrap
type AuditBootstrapRelated struct {
	// AdministratorID the first administrator
	AdministratorID string `json:"administrator_id" validate:"required,uuid_rfc4122"`
}

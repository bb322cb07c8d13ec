package db

import (
	"context"

	"github.com/alwitt/routedesk/models"
	"gorm.io/gorm"
)

// --------------------------------------------------------------------------------------
// Audit events

// AuditEventDBEntry audit event DB entry
type AuditEventDBEntry struct {
	models.AuditEvent
}

// TableName hard code table name
func (AuditEventDBEntry) TableName() string {
	return "audit_events"
}

// --------------------------------------------------------------------------------------
// System parameters

// SystemParamsDBEntry system parameter DB entry
type SystemParamsDBEntry struct {
	models.SystemParams
}

// TableName hard code table name
func (SystemParamsDBEntry) TableName() string {
	return "system_params"
}

// --------------------------------------------------------------------------------------
// Routes

// RouteDBEntry route DB entry
type RouteDBEntry struct {
	models.Route
}

// TableName hard code table name
func (RouteDBEntry) TableName() string {
	return "routes"
}

// --------------------------------------------------------------------------------------
// Users

// IdentityDBEntry login identity DB entry
type IdentityDBEntry struct {
	models.Identity
}

// TableName hard code table name
func (IdentityDBEntry) TableName() string {
	return "identities"
}

// UserDBEntry user DB entry
type UserDBEntry struct {
	models.User
}

// TableName hard code table name
func (UserDBEntry) TableName() string {
	return "users"
}

// TableEntries every table entry type, in creation order
func TableEntries() []interface{} {
	return []interface{}{
		&AuditEventDBEntry{},
		&SystemParamsDBEntry{},
		&RouteDBEntry{},
		&IdentityDBEntry{},
		&UserDBEntry{},
	}
}

// DefineTables prepare a database with the dashboard tables
func DefineTables(_ context.Context, db *gorm.DB) error {
	return db.AutoMigrate(TableEntries()...)
}

// Package models - dashboard data models
package models

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

/*
RegisterWithValidator register with the validator this custom validation support

	@param v *validator.Validate - the validator to register against
	@return whether successful
*/
func RegisterWithValidator(v *validator.Validate) error {
	if err := v.RegisterValidation(
		"user_role", validateUserRoleType,
	); err != nil {
		return err
	}

	if err := v.RegisterValidation(
		"system_state", validateSystemStateType,
	); err != nil {
		return err
	}

	if err := v.RegisterValidation(
		"audit_event_type", validateAuditEventType,
	); err != nil {
		return err
	}

	return nil
}

func validateUserRoleType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch UserRoleENUMType(fl.Field().String()) {
	case UserRoleAdmin:
		fallthrough
	case UserRoleCollaborator:
		return true
	}
	return false
}

func validateSystemStateType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch SystemStateENUMType(fl.Field().String()) {
	case SystemStatePreInit:
		fallthrough
	case SystemStateInit:
		fallthrough
	case SystemStateRunning:
		return true
	}
	return false
}

func validateAuditEventType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch AuditEventTypeENUMType(fl.Field().String()) {
	case AuditEventTypeSystemInitializing:
		fallthrough
	case AuditEventTypeSystemInitialized:
		fallthrough
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
		fallthrough
	case AuditEventTypeSessionStarted:
		return true
	}
	return false
}

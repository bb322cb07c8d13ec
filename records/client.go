// Package records - record clients for the dashboard collections
package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/alwitt/routedesk/auth"
	"github.com/alwitt/routedesk/db"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// Collection a named set of records
type Collection string

const (
	// CollectionRoutes the route records
	CollectionRoutes Collection = "routes"
	// CollectionUsers the user records
	CollectionUsers Collection = "users"
)

// Operation a record client operation
type Operation string

// Record client operations
const (
	OperationList   Operation = "list"
	OperationGet    Operation = "get"
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Record an entry of a collection
type Record interface {
	// GetID the store assigned record ID
	GetID() string
}

// ErrNotFound the record does not exist in the collection
var ErrNotFound = errors.New("record not found")

// ValidationError the store refused the record fields
type ValidationError struct {
	Collection Collection
	Err        error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s record [%s]", e.Collection, e.Err.Error())
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StoreError the store failed the operation
type StoreError struct {
	Collection Collection
	Operation  Operation
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s failed [%s]", e.Collection, e.Operation, e.Err.Error())
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Client record client of one collection
type Client[R Record] interface {
	// Collection the collection this client serves
	Collection() Collection

	/*
		List fetch every record of the collection

			@param ctx context.Context - execution context
			@returns the records
	*/
	List(ctx context.Context) ([]R, error)

	/*
		Get fetch one record

			@param ctx context.Context - execution context
			@param id string - record ID
			@returns the record, or ErrNotFound
	*/
	Get(ctx context.Context, id string) (R, error)

	/*
		Create insert a new record. The record ID is assigned by the store.

			@param ctx context.Context - execution context
			@param fields R - the record fields
			@returns the stored record, or a ValidationError
	*/
	Create(ctx context.Context, fields R) (R, error)

	/*
		Update overwrite every field of a record

			@param ctx context.Context - execution context
			@param id string - record ID
			@param fields R - the new record fields
	*/
	Update(ctx context.Context, id string, fields R) error

	/*
		Delete remove a record

			@param ctx context.Context - execution context
			@param id string - record ID
	*/
	Delete(ctx context.Context, id string) error
}

// classifyError convert a persistence failure into the record client error kinds
func classifyError(collection Collection, op Operation, id string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%s record '%s' [%w]", collection, id, ErrNotFound)
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) ||
		errors.Is(err, auth.ErrEmptyPassword) ||
		errors.Is(err, ErrLastAdministrator) ||
		errors.Is(err, auth.ErrPasswordTooLong) ||
		errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return &ValidationError{Collection: collection, Err: err}
	}

	return &StoreError{Collection: collection, Operation: op, Err: err}
}

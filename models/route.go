package models

import (
	"time"

	"gorm.io/datatypes"
)

// Route a delivery route handled by an operator
type Route struct {
	// ID route ID
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required,uuid_rfc4122"`

	// UploadDate date the route was loaded into the system
	UploadDate datatypes.Date `json:"upload_date" gorm:"column:upload_date;not null"`

	// Client the client the route is serving
	Client string `json:"client" gorm:"column:client;not null" validate:"required,min=2,max=50"`

	// Origin where the route starts
	Origin string `json:"origin" gorm:"column:origin;not null" validate:"required,min=2,max=50"`

	// Destination where the route ends
	Destination string `json:"destination" gorm:"column:destination;not null" validate:"required,min=2,max=50"`

	// FinalClientDestination the client's final destination for the load
	FinalClientDestination string `json:"final_client_destination" gorm:"column:final_client_destination;not null" validate:"required,min=2,max=50"`

	// DeliveryDate expected delivery date
	DeliveryDate datatypes.Date `json:"delivery_date" gorm:"column:delivery_date;not null"`

	// DeliveryTime expected delivery time of day
	DeliveryTime datatypes.Time `json:"delivery_time" gorm:"column:delivery_time;not null"`

	// Reference client reference
	Reference string `json:"reference" gorm:"column:reference;not null" validate:"required,min=2,max=50"`

	// Operator the operator driving the route
	Operator string `json:"operator" gorm:"column:operator;not null" validate:"required,min=2,max=50"`

	// Status free text route status
	Status string `json:"status" gorm:"column:status;not null" validate:"required,min=2,max=50"`

	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID return the route ID
func (r Route) GetID() string {
	return r.ID
}

// RouteColumns the route columns which are written on every update
var RouteColumns = []string{
	"upload_date",
	"client",
	"origin",
	"destination",
	"final_client_destination",
	"delivery_date",
	"delivery_time",
	"reference",
	"operator",
	"status",
}

package models

import "time"

// UserRoleENUMType dashboard user role ENUM
type UserRoleENUMType string

const (
	// UserRoleAdmin administrator
	UserRoleAdmin UserRoleENUMType = "admin"
	// UserRoleCollaborator collaborator
	UserRoleCollaborator UserRoleENUMType = "collaborator"
)

// UserRoles the selectable user roles, in display order
func UserRoles() []UserRoleENUMType {
	return []UserRoleENUMType{UserRoleAdmin, UserRoleCollaborator}
}

// Label the display label of the role
func (r UserRoleENUMType) Label() string {
	switch r {
	case UserRoleAdmin:
		return "Administrador"
	case UserRoleCollaborator:
		return "Colaborador"
	}
	return string(r)
}

// User a dashboard user
//
// The user ID is the ID of the login identity the user signs in with.
type User struct {
	// ID user ID
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required,uuid_rfc4122"`

	// Name first name(s)
	Name string `json:"name" gorm:"column:name;not null" validate:"required,min=2,max=50"`

	// LastName last name(s)
	LastName string `json:"last_name" gorm:"column:last_name;not null" validate:"required,min=2,max=50"`

	// Email login email
	Email string `json:"email" gorm:"column:email;not null;unique" validate:"required,email,max=50"`

	// Role user role
	Role UserRoleENUMType `json:"role" gorm:"column:role;not null" validate:"required,user_role"`

	// Password new plain text password. Write only, it is never persisted with the user
	// and it is never returned when reading a user.
	Password string `json:"-" gorm:"-" validate:"-"`

	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID return the user ID
func (u User) GetID() string {
	return u.ID
}

// FullName first and last name
func (u User) FullName() string {
	return u.Name + " " + u.LastName
}

// UserColumns the user columns which are written on every update
var UserColumns = []string{"name", "last_name", "email", "role"}

// Identity a login identity
type Identity struct {
	// ID identity ID
	ID string `json:"id" gorm:"column:id;primaryKey;unique" validate:"required,uuid_rfc4122"`

	// Email login email
	Email string `json:"email" gorm:"column:email;not null;unique" validate:"required,email"`

	// PasswordHash hashed credential
	PasswordHash string `json:"-" gorm:"column:password_hash;not null" validate:"required"`

	// CreatedAt entry creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

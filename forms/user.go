package forms

import "github.com/alwitt/routedesk/models"

// UserCreateForm the new user form values
type UserCreateForm struct {
	Name            string `form:"name" label:"Nombre(s)" validate:"required,min=2,max=50"`
	LastName        string `form:"last_name" label:"Apellido(s)" validate:"required,min=2,max=50"`
	Email           string `form:"email" label:"Correo electrónico" validate:"required,email,min=2,max=50"`
	Role            string `form:"role" label:"Role" validate:"required,oneof=admin collaborator"`
	Password        string `form:"password" label:"Contraseña" validate:"required,min=2,max=50,max_bytes=72"`
	ConfirmPassword string `form:"confirmPassword" label:"Confirmar contraseña" validate:"required,min=2,max=50,max_bytes=72"`
}

// UserUpdateForm the user update form values. The password pair is optional.
type UserUpdateForm struct {
	Name            string `form:"name" label:"Nombre(s)" validate:"required,min=2,max=50"`
	LastName        string `form:"last_name" label:"Apellido(s)" validate:"required,min=2,max=50"`
	Email           string `form:"email" label:"Correo electrónico" validate:"required,email,min=2,max=50"`
	Role            string `form:"role" label:"Role" validate:"required,oneof=admin collaborator"`
	Password        string `form:"password" label:"Contraseña (opcional)" validate:"omitempty,min=2,max=50,max_bytes=72"`
	ConfirmPassword string `form:"confirmPassword" label:"Confirmar contraseña (opcional)" validate:"omitempty,min=2,max=50,max_bytes=72"`
}

// UserCreateModel maps between a user record and the new user form
type UserCreateModel struct {
	Validator *Validator
}

// Blank the form of a new user
func (m UserCreateModel) Blank() UserCreateForm {
	return UserCreateForm{Role: string(models.UserRoleCollaborator)}
}

// FromRecord populate the form from a user; passwords always start empty
func (m UserCreateModel) FromRecord(user models.User) UserCreateForm {
	return UserCreateForm{
		Name: user.Name, LastName: user.LastName, Email: user.Email, Role: string(user.Role),
	}
}

// ToRecord map the form to the user field set
func (m UserCreateModel) ToRecord(id string, form UserCreateForm) (models.User, error) {
	return models.User{
		ID:       id,
		Name:     form.Name,
		LastName: form.LastName,
		Email:    form.Email,
		Role:     models.UserRoleENUMType(form.Role),
		Password: form.Password,
	}, nil
}

// Validate run the new user form constraints
func (m UserCreateModel) Validate(form UserCreateForm) FieldErrors {
	return m.Validator.Validate(form)
}

// UserUpdateModel maps between a user record and the user update form
type UserUpdateModel struct {
	Validator *Validator
}

// Blank an empty update form
func (m UserUpdateModel) Blank() UserUpdateForm {
	return UserUpdateForm{}
}

// FromRecord populate the form from a stored user; passwords always start empty
func (m UserUpdateModel) FromRecord(user models.User) UserUpdateForm {
	return UserUpdateForm{
		Name: user.Name, LastName: user.LastName, Email: user.Email, Role: string(user.Role),
	}
}

// ToRecord map the form to the full user field set. An empty password keeps the
// current credential.
func (m UserUpdateModel) ToRecord(id string, form UserUpdateForm) (models.User, error) {
	return models.User{
		ID:       id,
		Name:     form.Name,
		LastName: form.LastName,
		Email:    form.Email,
		Role:     models.UserRoleENUMType(form.Role),
		Password: form.Password,
	}, nil
}

// Validate run the user update form constraints
func (m UserUpdateModel) Validate(form UserUpdateForm) FieldErrors {
	return m.Validator.Validate(form)
}

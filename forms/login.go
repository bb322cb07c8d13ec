package forms

// LoginForm the sign in form values
type LoginForm struct {
	Email    string `form:"email" label:"Correo electrónico" validate:"required,email,min=2,max=50"`
	Password string `form:"password" label:"Contraseña" validate:"required,min=2,max=50,max_bytes=72"`
}

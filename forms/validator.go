// Package forms - dashboard form models and their validation
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	estranslations "github.com/go-playground/validator/v10/translations/es"
)

// Custom validation tags
const (
	tagPasswordMatch = "password_match"
	tagDatetime      = "datetime"
	tagMaxBytes      = "max_bytes"
)

// Date and time of day layouts used by the forms
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// FieldErrors validation messages keyed by form field
type FieldErrors map[string]string

// Has whether the field has an error
func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Error join every field error
func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, f[key]))
	}
	return strings.Join(parts, "; ")
}

// ValidationError form values failed validation
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("form is not valid [%s]", e.Fields.Error())
}

// Validator form validator with Spanish messages
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

/*
NewValidator define a new form validator

	@returns the validator
*/
func NewValidator() (*Validator, error) {
	locale := es.New()
	uni := ut.New(locale, locale)
	trans, ok := uni.GetTranslator("es")
	if !ok {
		return nil, fmt.Errorf("spanish translator is not available")
	}

	validate := validator.New()

	if err := estranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to install spanish validation messages [%w]", err)
	}

	// Field names in messages come from the Spanish label
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})

	if err := validate.RegisterTranslation(
		tagPasswordMatch,
		trans,
		func(t ut.Translator) error {
			return t.Add(tagPasswordMatch, "Las contraseñas no coinciden.", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tagPasswordMatch)
			return msg
		},
	); err != nil {
		return nil, fmt.Errorf("failed to install password match message [%w]", err)
	}

	if err := validate.RegisterTranslation(
		tagDatetime,
		trans,
		func(t ut.Translator) error {
			if err := t.Add("datetime-date", "{0} debe ser una fecha válida (AAAA-MM-DD)", true); err != nil {
				return err
			}
			return t.Add("datetime-time", "{0} debe ser una hora válida (HH:MM)", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			key := "datetime-date"
			if fe.Param() == TimeLayout {
				key = "datetime-time"
			}
			msg, _ := t.T(key, fe.Field())
			return msg
		},
	); err != nil {
		return nil, fmt.Errorf("failed to install datetime message [%w]", err)
	}

	if err := validate.RegisterValidation(tagMaxBytes, validateMaxBytes); err != nil {
		return nil, fmt.Errorf("failed to install byte length macro [%w]", err)
	}
	if err := validate.RegisterTranslation(
		tagMaxBytes,
		trans,
		func(t ut.Translator) error {
			return t.Add(tagMaxBytes, "{0} es demasiado larga; el máximo es de {1} bytes", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tagMaxBytes, fe.Field(), fe.Param())
			return msg
		},
	); err != nil {
		return nil, fmt.Errorf("failed to install byte length message [%w]", err)
	}

	validate.RegisterStructValidation(validateCreatePasswords, UserCreateForm{})
	validate.RegisterStructValidation(validateUpdatePasswords, UserUpdateForm{})

	return &Validator{validate: validate, trans: trans}, nil
}

/*
Validate run every constraint of a form

	@param form interface{} - the form struct
	@returns the field errors, nil when the form is valid
*/
func (v *Validator) Validate(form interface{}) FieldErrors {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return FieldErrors{"": err.Error()}
	}

	formType := reflect.TypeOf(form)
	for formType.Kind() == reflect.Pointer {
		formType = formType.Elem()
	}

	result := FieldErrors{}
	for _, fe := range vErrs {
		key := formKey(formType, fe.StructField())
		// First failing constraint per field wins
		if _, ok := result[key]; ok {
			continue
		}
		result[key] = fe.Translate(v.trans)
	}
	return result
}

// formKey the form key of a struct field
func formKey(formType reflect.Type, structField string) string {
	if field, ok := formType.FieldByName(structField); ok {
		if key := field.Tag.Get("form"); key != "" {
			return key
		}
	}
	return structField
}

// validateMaxBytes the UTF-8 encoding of a string fits within the byte limit
func validateMaxBytes(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// validateCreatePasswords both passwords are required and must be equal
func validateCreatePasswords(sl validator.StructLevel) {
	form := sl.Current().Interface().(UserCreateForm)
	if form.Password != "" && form.ConfirmPassword != "" && form.Password != form.ConfirmPassword {
		sl.ReportError(
			form.ConfirmPassword, "Confirmar contraseña", "ConfirmPassword", tagPasswordMatch, "",
		)
	}
}

// validateUpdatePasswords both passwords are optional; if either is set both must be
// set and equal
func validateUpdatePasswords(sl validator.StructLevel) {
	form := sl.Current().Interface().(UserUpdateForm)
	switch {
	case form.Password == "" && form.ConfirmPassword == "":
		return
	case form.Password == "":
		sl.ReportError(form.Password, "Contraseña", "Password", tagPasswordMatch, "")
	case form.Password != form.ConfirmPassword:
		sl.ReportError(
			form.ConfirmPassword, "Confirmar contraseña", "ConfirmPassword", tagPasswordMatch, "",
		)
	}
}

package forms_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alwitt/routedesk/forms"
	"github.com/alwitt/routedesk/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func validRouteForm() forms.RouteForm {
	return forms.RouteForm{
		UploadDate:             "2024-05-01",
		Client:                 "ACME",
		Origin:                 "Monterrey",
		Destination:            "Saltillo",
		FinalClientDestination: "Ramos Arizpe",
		DeliveryDate:           "2024-05-03",
		DeliveryTime:           "14:30",
		Reference:              "REF-001",
		Operator:               "Juan Perez",
		Status:                 "pending",
	}
}

func TestRouteFormValidation(t *testing.T) {
	assert := assert.New(t)

	v, err := forms.NewValidator()
	assert.Nil(err)
	uut := forms.RouteModel{Validator: v}

	assert.Nil(uut.Validate(validRouteForm()))

	// Bounds are inclusive
	edge := validRouteForm()
	edge.Client = "AB"
	edge.Status = strings.Repeat("s", 50)
	assert.Nil(uut.Validate(edge))

	type testCase struct {
		field  string
		mutate func(f *forms.RouteForm)
	}
	for _, tc := range []testCase{
		{field: "client", mutate: func(f *forms.RouteForm) { f.Client = "A" }},
		{field: "origin", mutate: func(f *forms.RouteForm) { f.Origin = "" }},
		{field: "destination", mutate: func(f *forms.RouteForm) { f.Destination = strings.Repeat("d", 51) }},
		{field: "final_client_destination", mutate: func(f *forms.RouteForm) { f.FinalClientDestination = "x" }},
		{field: "reference", mutate: func(f *forms.RouteForm) { f.Reference = "" }},
		{field: "operator", mutate: func(f *forms.RouteForm) { f.Operator = "J" }},
		{field: "status", mutate: func(f *forms.RouteForm) { f.Status = strings.Repeat("s", 51) }},
		{field: "upload_date", mutate: func(f *forms.RouteForm) { f.UploadDate = "01/05/2024" }},
		{field: "delivery_date", mutate: func(f *forms.RouteForm) { f.DeliveryDate = "" }},
		{field: "delivery_time", mutate: func(f *forms.RouteForm) { f.DeliveryTime = "2:30 pm" }},
	} {
		form := validRouteForm()
		tc.mutate(&form)
		errs := uut.Validate(form)
		assert.Len(errs, 1, tc.field)
		assert.True(errs.Has(tc.field), tc.field)
		assert.NotEmpty(errs[tc.field], tc.field)
	}
}

func TestRouteFormMapping(t *testing.T) {
	assert := assert.New(t)

	v, err := forms.NewValidator()
	assert.Nil(err)
	uut := forms.RouteModel{
		Validator: v,
		Now:       func() time.Time { return time.Date(2024, 6, 9, 18, 0, 0, 0, time.UTC) },
	}

	blank := uut.Blank()
	assert.Equal("2024-06-09", blank.UploadDate)
	assert.Empty(blank.Client)

	record, err := uut.ToRecord("r1", validRouteForm())
	assert.Nil(err)
	assert.Equal("r1", record.ID)
	assert.Equal("2024-05-01", time.Time(record.UploadDate).Format("2006-01-02"))
	assert.Equal(datatypes.NewTime(14, 30, 0, 0), record.DeliveryTime)
	assert.Equal("pending", record.Status)

	assert.Equal(validRouteForm(), uut.FromRecord(record))
}

func TestUserCreatePasswordPairing(t *testing.T) {
	assert := assert.New(t)

	v, err := forms.NewValidator()
	assert.Nil(err)
	uut := forms.UserCreateModel{Validator: v}

	form := forms.UserCreateForm{
		Name: "Ana", LastName: "Lopez", Email: "ana@example.com", Role: "admin",
		Password: "a1", ConfirmPassword: "a1",
	}
	assert.Nil(uut.Validate(form))

	form.ConfirmPassword = "b2"
	errs := uut.Validate(form)
	assert.Len(errs, 1)
	assert.Equal("Las contraseñas no coinciden.", errs["confirmPassword"])

	form.Password, form.ConfirmPassword = "", ""
	errs = uut.Validate(form)
	assert.True(errs.Has("password"))
	assert.True(errs.Has("confirmPassword"))

	form.Password, form.ConfirmPassword = "a1", "a1"
	form.Role = "owner"
	form.Email = "not-an-email"
	errs = uut.Validate(form)
	assert.Len(errs, 2)
	assert.True(errs.Has("role"))
	assert.True(errs.Has("email"))

	record, err := uut.ToRecord("", forms.UserCreateForm{
		Name: "Ana", LastName: "Lopez", Email: "ana@example.com", Role: "collaborator",
		Password: "a1", ConfirmPassword: "a1",
	})
	assert.Nil(err)
	assert.Equal(models.UserRoleCollaborator, record.Role)
	assert.Equal("a1", record.Password)
}

func TestPasswordByteLimit(t *testing.T) {
	assert := assert.New(t)

	v, err := forms.NewValidator()
	assert.Nil(err)

	// 36 two byte characters is exactly the bcrypt limit
	fits := strings.Repeat("ñ", 36)
	tooLong := strings.Repeat("ñ", 40)

	create := forms.UserCreateModel{Validator: v}
	form := forms.UserCreateForm{
		Name: "Ana", LastName: "Lopez", Email: "ana@example.com", Role: "admin",
		Password: fits, ConfirmPassword: fits,
	}
	assert.Nil(create.Validate(form))

	// Within 50 characters, but over 72 bytes
	form.Password, form.ConfirmPassword = tooLong, tooLong
	errs := create.Validate(form)
	assert.Len(errs, 2)
	assert.Equal("Contraseña es demasiado larga; el máximo es de 72 bytes", errs["password"])
	assert.True(errs.Has("confirmPassword"))

	update := forms.UserUpdateModel{Validator: v}
	errs = update.Validate(forms.UserUpdateForm{
		Name: "Ana", LastName: "Lopez", Email: "ana@example.com", Role: "admin",
		Password: tooLong, ConfirmPassword: tooLong,
	})
	assert.True(errs.Has("password"))
	assert.True(errs.Has("confirmPassword"))

	errs = v.Validate(forms.LoginForm{Email: "ana@example.com", Password: tooLong})
	assert.Len(errs, 1)
	assert.True(errs.Has("password"))
}

func TestUserUpdatePasswordPairing(t *testing.T) {
	assert := assert.New(t)

	v, err := forms.NewValidator()
	assert.Nil(err)
	uut := forms.UserUpdateModel{Validator: v}

	base := forms.UserUpdateForm{
		Name: "Ana", LastName: "Lopez", Email: "ana@example.com", Role: "collaborator",
	}

	type testCase struct {
		password string
		confirm  string
		errOn    string
	}
	for _, tc := range []testCase{
		{password: "", confirm: "", errOn: ""},
		{password: "a1", confirm: "a1", errOn: ""},
		{password: "a1", confirm: "b2", errOn: "confirmPassword"},
		{password: "a1", confirm: "", errOn: "confirmPassword"},
		{password: "", confirm: "b2", errOn: "password"},
	} {
		form := base
		form.Password, form.ConfirmPassword = tc.password, tc.confirm
		errs := uut.Validate(form)
		if tc.errOn == "" {
			assert.Nil(errs, "%q %q", tc.password, tc.confirm)
			continue
		}
		assert.Len(errs, 1, "%q %q", tc.password, tc.confirm)
		assert.Equal("Las contraseñas no coinciden.", errs[tc.errOn], "%q %q", tc.password, tc.confirm)
	}

	// Record mapping keeps an empty password empty
	record, err := uut.ToRecord("u1", base)
	assert.Nil(err)
	assert.Equal("u1", record.ID)
	assert.Empty(record.Password)

	form := uut.FromRecord(models.User{
		ID: "u1", Name: "Ana", LastName: "Lopez", Email: "ana@example.com", Role: models.UserRoleAdmin,
	})
	assert.Equal("admin", form.Role)
	assert.Empty(form.Password)
	assert.Empty(form.ConfirmPassword)
}

func TestLoginFormAndDecode(t *testing.T) {
	assert := assert.New(t)

	v, err := forms.NewValidator()
	assert.Nil(err)

	var login forms.LoginForm
	assert.Nil(forms.Decode(url.Values{
		"email":    {"ana@example.com"},
		"password": {"secret-1"},
	}, &login))
	assert.Equal("ana@example.com", login.Email)
	assert.Nil(v.Validate(login))

	login.Email = "ana"
	errs := v.Validate(&login)
	assert.True(errs.Has("email"))
	assert.Contains(errs.Error(), "email: ")

	var user forms.UserUpdateForm
	assert.Nil(forms.Decode(url.Values{
		"name":            {"Ana"},
		"last_name":       {"Lopez"},
		"confirmPassword": {"a1"},
	}, &user))
	assert.Equal("Lopez", user.LastName)
	assert.Equal("a1", user.ConfirmPassword)
}

package web

import (
	"context"
	"net/http"

	"github.com/alwitt/routedesk/forms"
	"github.com/alwitt/routedesk/models"
	"github.com/alwitt/routedesk/records"
	"github.com/alwitt/routedesk/workflow"
	"github.com/apex/log"
)

// Form intents
const (
	intentSubmit  = "submit"
	intentCancel  = "cancel"
	intentConfirm = "confirm"
	intentRequest = "request"
)

// redirectNavigator records the navigation target of one request
type redirectNavigator struct {
	target string
}

func (n *redirectNavigator) Navigate(_ context.Context, path string) {
	n.target = path
}

// option select input option
type option struct {
	Value    string
	Label    string
	Selected bool
}

// fieldView one input of a form page
type fieldView struct {
	Key     string
	Label   string
	Type    string
	Value   string
	Error   string
	Options []option
	// Autocomplete browser autocomplete hint
	Autocomplete string
}

// formView form page values
type formView struct {
	Heading      string
	Description  string
	Action       string
	CancelPath   string
	Fields       []fieldView
	Confirming   bool
	ConfirmTitle string
	ConfirmText  string
}

func routeFields(form forms.RouteForm, errs forms.FieldErrors) []fieldView {
	return []fieldView{
		{Key: "upload_date", Label: "Fecha de carga", Type: "date", Value: form.UploadDate, Error: errs["upload_date"]},
		{Key: "client", Label: "Nombre del cliente", Type: "text", Value: form.Client, Error: errs["client"]},
		{Key: "origin", Label: "Origen", Type: "text", Value: form.Origin, Error: errs["origin"]},
		{Key: "destination", Label: "Destino", Type: "text", Value: form.Destination, Error: errs["destination"]},
		{Key: "final_client_destination", Label: "Destino final del cliente", Type: "text", Value: form.FinalClientDestination, Error: errs["final_client_destination"]},
		{Key: "delivery_date", Label: "Fecha de entrega", Type: "date", Value: form.DeliveryDate, Error: errs["delivery_date"]},
		{Key: "delivery_time", Label: "Hora de entrega", Type: "time", Value: form.DeliveryTime, Error: errs["delivery_time"]},
		{Key: "reference", Label: "Referencia", Type: "text", Value: form.Reference, Error: errs["reference"]},
		{Key: "operator", Label: "Operador", Type: "text", Value: form.Operator, Error: errs["operator"]},
		{Key: "status", Label: "Estatus", Type: "text", Value: form.Status, Error: errs["status"]},
	}
}

// userValues the fields shared by both user forms
type userValues struct {
	Name, LastName, Email, Role, Password, ConfirmPassword string
}

// userFields build the user form inputs. Passwords are only written back into the page
// when echoPasswords is set, which the confirm dialog needs to re-post them.
func userFields(
	values userValues, errs forms.FieldErrors, optionalPassword bool, echoPasswords bool,
) []fieldView {
	if !echoPasswords {
		values.Password, values.ConfirmPassword = "", ""
	}
	roles := []option{}
	for _, role := range models.UserRoles() {
		roles = append(roles, option{
			Value: string(role), Label: role.Label(), Selected: string(role) == values.Role,
		})
	}
	passwordLabel, confirmLabel := "Contraseña", "Confirmar contraseña"
	if optionalPassword {
		passwordLabel, confirmLabel = "Contraseña (opcional)", "Confirmar contraseña (opcional)"
	}
	return []fieldView{
		{Key: "name", Label: "Nombre(s)", Type: "text", Value: values.Name, Error: errs["name"]},
		{Key: "last_name", Label: "Apellido(s)", Type: "text", Value: values.LastName, Error: errs["last_name"]},
		{Key: "role", Label: "Role", Type: "select", Value: values.Role, Error: errs["role"], Options: roles},
		{Key: "email", Label: "Correo electrónico", Type: "email", Value: values.Email, Error: errs["email"]},
		{Key: "password", Label: passwordLabel, Type: "password", Value: values.Password, Error: errs["password"], Autocomplete: "new-password"},
		{Key: "confirmPassword", Label: confirmLabel, Type: "password", Value: values.ConfirmPassword, Error: errs["confirmPassword"], Autocomplete: "new-password"},
	}
}

/*
driveForm apply a posted form to a fresh workflow in READY

Returns the HTTP status the form page should be rendered with, or zero when the
workflow navigated away and a redirect was written.
*/
func driveForm[F any, R records.Record](
	w http.ResponseWriter,
	r *http.Request,
	wf *workflow.Workflow[F, R],
	nav *redirectNavigator,
	logTags log.Fields,
) int {
	if err := r.ParseForm(); err != nil {
		return http.StatusBadRequest
	}
	var posted F
	if err := forms.Decode(r.PostForm, &posted); err != nil {
		return http.StatusBadRequest
	}
	if err := wf.Edit(posted); err != nil {
		return http.StatusConflict
	}

	// Steps the workflow refuses leave it where it was, and the page renders that state
	logStep := func(step string, err error) {
		if err != nil {
			log.WithError(err).WithFields(logTags).WithField("step", step).Debug("Form step not applied")
		}
	}
	switch r.PostForm.Get("intent") {
	case intentSubmit:
		logStep(intentSubmit, wf.Submit())
	case intentCancel:
		logStep(intentSubmit, wf.Submit())
		logStep(intentCancel, wf.Cancel())
	case intentConfirm:
		logStep(intentSubmit, wf.Submit())
		logStep(intentConfirm, wf.Confirm(r.Context()))
	default:
		return http.StatusBadRequest
	}

	if nav.target != "" {
		http.Redirect(w, r, nav.target, http.StatusSeeOther)
		return 0
	}
	if len(wf.Errors()) > 0 {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

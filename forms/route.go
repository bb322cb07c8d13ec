package forms

import (
	"fmt"
	"time"

	"github.com/alwitt/routedesk/models"
	"gorm.io/datatypes"
)

// RouteForm the route form values
type RouteForm struct {
	UploadDate             string `form:"upload_date" label:"Fecha de carga" validate:"required,datetime=2006-01-02"`
	Client                 string `form:"client" label:"Nombre del cliente" validate:"required,min=2,max=50"`
	Origin                 string `form:"origin" label:"Origen" validate:"required,min=2,max=50"`
	Destination            string `form:"destination" label:"Destino" validate:"required,min=2,max=50"`
	FinalClientDestination string `form:"final_client_destination" label:"Destino final del cliente" validate:"required,min=2,max=50"`
	DeliveryDate           string `form:"delivery_date" label:"Fecha de entrega" validate:"required,datetime=2006-01-02"`
	DeliveryTime           string `form:"delivery_time" label:"Hora de entrega" validate:"required,datetime=15:04"`
	Reference              string `form:"reference" label:"Referencia" validate:"required,min=2,max=50"`
	Operator               string `form:"operator" label:"Operador" validate:"required,min=2,max=50"`
	Status                 string `form:"status" label:"Estatus" validate:"required,min=2,max=50"`
}

// RouteModel maps between a route record and its form
type RouteModel struct {
	Validator *Validator
	// Now clock used for the blank form defaults
	Now func() time.Time
}

// Blank the form of a new route; the upload date defaults to today
func (m RouteModel) Blank() RouteForm {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return RouteForm{UploadDate: now().Format(DateLayout)}
}

// FromRecord populate the form from a stored route
func (m RouteModel) FromRecord(route models.Route) RouteForm {
	return RouteForm{
		UploadDate:             FormatDate(route.UploadDate),
		Client:                 route.Client,
		Origin:                 route.Origin,
		Destination:            route.Destination,
		FinalClientDestination: route.FinalClientDestination,
		DeliveryDate:           FormatDate(route.DeliveryDate),
		DeliveryTime:           FormatTime(route.DeliveryTime),
		Reference:              route.Reference,
		Operator:               route.Operator,
		Status:                 route.Status,
	}
}

// ToRecord map the form to the full route field set
func (m RouteModel) ToRecord(id string, form RouteForm) (models.Route, error) {
	uploadDate, err := time.Parse(DateLayout, form.UploadDate)
	if err != nil {
		return models.Route{}, fmt.Errorf("failed to parse upload date [%w]", err)
	}
	deliveryDate, err := time.Parse(DateLayout, form.DeliveryDate)
	if err != nil {
		return models.Route{}, fmt.Errorf("failed to parse delivery date [%w]", err)
	}
	deliveryTime, err := time.Parse(TimeLayout, form.DeliveryTime)
	if err != nil {
		return models.Route{}, fmt.Errorf("failed to parse delivery time [%w]", err)
	}

	return models.Route{
		ID:                     id,
		UploadDate:             datatypes.Date(uploadDate),
		Client:                 form.Client,
		Origin:                 form.Origin,
		Destination:            form.Destination,
		FinalClientDestination: form.FinalClientDestination,
		DeliveryDate:           datatypes.Date(deliveryDate),
		DeliveryTime:           datatypes.NewTime(deliveryTime.Hour(), deliveryTime.Minute(), 0, 0),
		Reference:              form.Reference,
		Operator:               form.Operator,
		Status:                 form.Status,
	}, nil
}

// Validate run the route form constraints
func (m RouteModel) Validate(form RouteForm) FieldErrors {
	return m.Validator.Validate(form)
}

// FormatDate render a calendar date the way the forms expect it
func FormatDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatTime render a time of day the way the forms expect it
func FormatTime(t datatypes.Time) string {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

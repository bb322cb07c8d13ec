package workflow

import (
	"context"
	"fmt"

	"github.com/alwitt/goutils"
	"github.com/alwitt/routedesk/forms"
	"github.com/alwitt/routedesk/notify"
	"github.com/alwitt/routedesk/records"
	"github.com/apex/log"
)

// FormModel maps between a record and the form editing it
type FormModel[F any, R records.Record] interface {
	// Blank the form of a new record
	Blank() F
	// FromRecord populate the form from a record
	FromRecord(record R) F
	// ToRecord map the form to the full record field set
	ToRecord(id string, form F) (R, error)
	// Validate run every form constraint; nil when valid
	Validate(form F) forms.FieldErrors
}

// Params edit workflow dependencies
type Params[F any, R records.Record] struct {
	Entity    Entity
	Client    records.Client[R]
	Model     FormModel[F, R]
	Sink      notify.Sink
	Navigator Navigator
}

// Workflow edit or create workflow of one record
//
// A workflow is driven by one caller at a time.
type Workflow[F any, R records.Record] struct {
	goutils.Component
	Params[F, R]

	creating   bool
	id         string
	state      State
	form       F
	errors     forms.FieldErrors
	loadErr    error
	persistErr error
}

/*
NewEdit define a workflow editing an existing record. It starts in LOADING.

	@param params Params[F, R] - workflow dependencies
	@param id string - the record ID
	@returns the workflow
*/
func NewEdit[F any, R records.Record](params Params[F, R], id string) *Workflow[F, R] {
	return newWorkflow(params, id, false, StateLoading)
}

/*
NewCreate define a workflow creating a new record. It starts in READY with the blank
form.

	@param params Params[F, R] - workflow dependencies
	@returns the workflow
*/
func NewCreate[F any, R records.Record](params Params[F, R]) *Workflow[F, R] {
	instance := newWorkflow(params, "", true, StateReady)
	instance.form = params.Model.Blank()
	return instance
}

func newWorkflow[F any, R records.Record](
	params Params[F, R], id string, creating bool, initial State,
) *Workflow[F, R] {
	mode := "edit"
	if creating {
		mode = "create"
	}
	return &Workflow[F, R]{
		Component: goutils.Component{
			LogTags: log.Fields{
				"package":    "routedesk",
				"module":     "workflow",
				"component":  "edit-workflow",
				"collection": params.Entity.Collection,
				"mode":       mode,
				"record-id":  id,
			},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		Params:   params,
		creating: creating,
		id:       id,
		state:    initial,
	}
}

// State current state
func (w *Workflow[F, R]) State() State {
	return w.state
}

// ID the record ID; empty until a created record is persisted
func (w *Workflow[F, R]) ID() string {
	return w.id
}

// Creating whether the workflow creates a new record
func (w *Workflow[F, R]) Creating() bool {
	return w.creating
}

// Form current form values
func (w *Workflow[F, R]) Form() F {
	return w.form
}

// Errors current field errors
func (w *Workflow[F, R]) Errors() forms.FieldErrors {
	return w.errors
}

// LoadError why the record could not be loaded
func (w *Workflow[F, R]) LoadError() error {
	return w.loadErr
}

// PersistError why the last persist attempt failed
func (w *Workflow[F, R]) PersistError() error {
	return w.persistErr
}

func (w *Workflow[F, R]) transition(next State) error {
	if err := ValidateNextState(w.state, next); err != nil {
		return err
	}
	if w.state != next {
		log.WithFields(w.LogTags).
			WithField("from", w.state).
			WithField("to", next).
			Debug("Workflow transition")
	}
	w.state = next
	return nil
}

/*
Load fetch the record and populate the form

	@param ctx context.Context - execution context
*/
func (w *Workflow[F, R]) Load(ctx context.Context) error {
	if w.state != StateLoading {
		return fmt.Errorf("%w: load from '%s'", ErrInvalidTransition, w.state)
	}

	record, err := w.Client.Get(ctx, w.id)
	if err != nil {
		log.WithError(err).WithFields(w.LogTags).Error("Failed to load record")
		w.loadErr = err
		if tErr := w.transition(StateLoadFailed); tErr != nil {
			return tErr
		}
		w.Sink.Notify(ctx, notify.Failure(w.Entity.Titles.LoadFailure))
		return err
	}

	w.form = w.Model.FromRecord(record)
	return w.transition(StateReady)
}

/*
Edit replace the form values. Errors already shown are re-checked against the new values.

	@param form F - the new form values
*/
func (w *Workflow[F, R]) Edit(form F) error {
	if w.state != StateReady {
		return fmt.Errorf("%w: edit from '%s'", ErrInvalidTransition, w.state)
	}
	w.form = form
	if len(w.errors) > 0 {
		w.errors = w.Model.Validate(form)
	}
	return nil
}

// Submit ask for confirmation. Nothing is validated or persisted yet.
func (w *Workflow[F, R]) Submit() error {
	if w.state != StateReady {
		return fmt.Errorf("%w: submit from '%s'", ErrInvalidTransition, w.state)
	}
	return w.transition(StateAwaitingConfirm)
}

// Cancel dismiss the confirmation and return to the form untouched
func (w *Workflow[F, R]) Cancel() error {
	if w.state != StateAwaitingConfirm {
		return fmt.Errorf("%w: cancel from '%s'", ErrInvalidTransition, w.state)
	}
	return w.transition(StateReady)
}

/*
Confirm validate and persist the form.

Invalid values return the workflow to READY with field errors and a
*forms.ValidationError. A store failure returns it to READY with the values kept.
Success navigates to the list view and ends the workflow.

	@param ctx context.Context - execution context
*/
func (w *Workflow[F, R]) Confirm(ctx context.Context) error {
	if w.state != StateAwaitingConfirm {
		return fmt.Errorf("%w: confirm from '%s'", ErrInvalidTransition, w.state)
	}

	if errs := w.Model.Validate(w.form); len(errs) > 0 {
		w.errors = errs
		if err := w.transition(StateReady); err != nil {
			return err
		}
		return &forms.ValidationError{Fields: errs}
	}
	w.errors = nil

	if err := w.transition(StatePersisting); err != nil {
		return err
	}

	if err := w.persist(ctx); err != nil {
		log.WithError(err).WithFields(w.LogTags).Error("Failed to persist record")
		w.persistErr = err
		title := w.Entity.Titles.UpdateFailure
		if w.creating {
			title = w.Entity.Titles.CreateFailure
		}
		w.Sink.Notify(ctx, notify.Failure(title))
		if tErr := w.transition(StateReady); tErr != nil {
			return tErr
		}
		return err
	}
	w.persistErr = nil

	title := w.Entity.Titles.UpdateSuccess
	if w.creating {
		title = w.Entity.Titles.CreateSuccess
	}
	w.Sink.Notify(ctx, notify.Success(title))
	w.Navigator.Navigate(ctx, w.Entity.ListPath)
	return w.transition(StateDone)
}

func (w *Workflow[F, R]) persist(ctx context.Context) error {
	record, err := w.Model.ToRecord(w.id, w.form)
	if err != nil {
		return fmt.Errorf("failed to map form to record [%w]", err)
	}

	if !w.creating {
		return w.Client.Update(ctx, w.id, record)
	}

	created, err := w.Client.Create(ctx, record)
	if err != nil {
		return err
	}
	w.id = created.GetID()
	return nil
}

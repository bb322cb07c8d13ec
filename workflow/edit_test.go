package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alwitt/routedesk/forms"
	"github.com/alwitt/routedesk/models"
	"github.com/alwitt/routedesk/notify"
	"github.com/alwitt/routedesk/records"
	"github.com/alwitt/routedesk/workflow"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

type routeHarness struct {
	client   *fakeRouteClient
	recorder *notify.Recorder
	nav      *pathRecorder
	params   workflow.Params[forms.RouteForm, models.Route]
}

func newRouteHarness(t *testing.T, routes ...models.Route) routeHarness {
	v, err := forms.NewValidator()
	assert.Nil(t, err)
	h := routeHarness{
		client:   newFakeRouteClient(routes...),
		recorder: &notify.Recorder{},
		nav:      &pathRecorder{},
	}
	h.params = workflow.Params[forms.RouteForm, models.Route]{
		Entity:    workflow.RouteEntity,
		Client:    h.client,
		Model:     forms.RouteModel{Validator: v},
		Sink:      h.recorder,
		Navigator: h.nav,
	}
	return h
}

func TestStateTransitionTable(t *testing.T) {
	assert := assert.New(t)

	allowed := map[workflow.State][]workflow.State{
		workflow.StateLoading:         {workflow.StateReady, workflow.StateLoadFailed},
		workflow.StateReady:           {workflow.StateReady, workflow.StateAwaitingConfirm},
		workflow.StateAwaitingConfirm: {workflow.StateReady, workflow.StatePersisting},
		workflow.StatePersisting:      {workflow.StateReady, workflow.StateDone},
		workflow.StateLoadFailed:      {},
		workflow.StateDone:            {},
	}
	all := []workflow.State{
		workflow.StateLoading, workflow.StateLoadFailed, workflow.StateReady,
		workflow.StateAwaitingConfirm, workflow.StatePersisting, workflow.StateDone,
	}
	for from, targets := range allowed {
		ok := map[workflow.State]bool{}
		for _, to := range targets {
			ok[to] = true
		}
		for _, to := range all {
			err := workflow.ValidateNextState(from, to)
			if ok[to] {
				assert.Nil(err, "%s -> %s", from, to)
			} else {
				assert.ErrorIs(err, workflow.ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}
	assert.True(workflow.StateDone.Terminal())
	assert.True(workflow.StateLoadFailed.Terminal())
	assert.False(workflow.StateReady.Terminal())
}

func TestEditRouteStatusScenario(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	h := newRouteHarness(t, testRoute("r1", "pending"))

	uut := workflow.NewEdit(h.params, "r1")
	assert.Equal(workflow.StateLoading, uut.State())

	assert.Nil(uut.Load(utCtx))
	assert.Equal(workflow.StateReady, uut.State())
	assert.Equal("pending", uut.Form().Status)

	form := uut.Form()
	form.Status = "delivered"
	assert.Nil(uut.Edit(form))

	// Submitting never persists
	assert.Nil(uut.Submit())
	assert.Equal(workflow.StateAwaitingConfirm, uut.State())
	assert.Len(h.client.updates, 0)

	assert.Nil(uut.Confirm(utCtx))
	assert.Equal(workflow.StateDone, uut.State())

	assert.Len(h.client.updates, 1)
	expected := testRoute("r1", "delivered")
	assert.Equal(expected, h.client.updates[0])

	assert.Equal([]string{"/view-routes"}, h.nav.paths)
	assert.Equal(1, h.recorder.Count(notify.VariantSuccess))
	assert.Equal(0, h.recorder.Count(notify.VariantFailure))
	assert.Equal("Ruta actualizada con éxito", h.recorder.All()[0].Title)

	// Nothing is allowed after the workflow is done
	assert.ErrorIs(uut.Submit(), workflow.ErrInvalidTransition)
	assert.ErrorIs(uut.Edit(form), workflow.ErrInvalidTransition)
}

func TestEditCancelLeavesStoreUntouched(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	h := newRouteHarness(t, testRoute("r1", "pending"))

	uut := workflow.NewEdit(h.params, "r1")
	assert.Nil(uut.Load(utCtx))

	form := uut.Form()
	form.Operator = "Ana Lopez"
	assert.Nil(uut.Edit(form))
	assert.Nil(uut.Submit())
	assert.Nil(uut.Cancel())

	assert.Equal(workflow.StateReady, uut.State())
	assert.Equal(form, uut.Form())
	assert.Len(h.client.updates, 0)
	assert.Len(h.recorder.All(), 0)
	assert.Len(h.nav.paths, 0)
	assert.Equal("Juan Perez", h.client.routes["r1"].Operator)

	// Cancel is only meaningful while confirming
	assert.ErrorIs(uut.Cancel(), workflow.ErrInvalidTransition)
	assert.ErrorIs(uut.Confirm(utCtx), workflow.ErrInvalidTransition)
}

func TestEditConfirmValidationFailure(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	h := newRouteHarness(t, testRoute("r1", "pending"))

	uut := workflow.NewEdit(h.params, "r1")
	assert.Nil(uut.Load(utCtx))

	form := uut.Form()
	form.Client = "A"
	assert.Nil(uut.Edit(form))
	assert.Nil(uut.Submit())

	err := uut.Confirm(utCtx)
	var vErr *forms.ValidationError
	assert.True(errors.As(err, &vErr))
	assert.True(vErr.Fields.Has("client"))

	assert.Equal(workflow.StateReady, uut.State())
	assert.True(uut.Errors().Has("client"))
	assert.Equal(form, uut.Form())
	assert.Len(h.client.updates, 0)
	assert.Len(h.recorder.All(), 0)

	// Fixing the value clears the shown error while editing
	form.Client = "ACME Norte"
	assert.Nil(uut.Edit(form))
	assert.Len(uut.Errors(), 0)
}

func TestEditPersistFailure(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	h := newRouteHarness(t, testRoute("r1", "pending"))
	storeErr := &records.StoreError{
		Collection: records.CollectionRoutes,
		Operation:  records.OperationUpdate,
		Err:        errors.New("permission denied"),
	}

	uut := workflow.NewEdit(h.params, "r1")
	assert.Nil(uut.Load(utCtx))
	h.client.failWrite = storeErr

	form := uut.Form()
	form.Status = "delivered"
	assert.Nil(uut.Edit(form))
	assert.Nil(uut.Submit())

	err := uut.Confirm(utCtx)
	assert.ErrorIs(err, storeErr)
	assert.ErrorIs(uut.PersistError(), storeErr)

	assert.Equal(workflow.StateReady, uut.State())
	assert.Equal("delivered", uut.Form().Status)
	assert.Len(h.client.updates, 1)
	assert.Len(h.nav.paths, 0)
	assert.Equal(1, h.recorder.Count(notify.VariantFailure))
	assert.Equal(0, h.recorder.Count(notify.VariantSuccess))
	assert.Equal("Error al actualizar la ruta", h.recorder.All()[0].Title)

	// The user may try again without a retry from the workflow
	h.client.failWrite = nil
	assert.Nil(uut.Submit())
	assert.Nil(uut.Confirm(utCtx))
	assert.Equal(workflow.StateDone, uut.State())
	assert.Len(h.client.updates, 2)
}

func TestEditLoadFailure(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	h := newRouteHarness(t)

	uut := workflow.NewEdit(h.params, "missing")
	err := uut.Load(utCtx)
	assert.ErrorIs(err, records.ErrNotFound)
	assert.Equal(workflow.StateLoadFailed, uut.State())
	assert.ErrorIs(uut.LoadError(), records.ErrNotFound)
	assert.Equal(1, h.recorder.Count(notify.VariantFailure))
	assert.Equal("Error al cargar la ruta", h.recorder.All()[0].Title)

	// Terminal
	assert.ErrorIs(uut.Load(utCtx), workflow.ErrInvalidTransition)
	assert.ErrorIs(uut.Submit(), workflow.ErrInvalidTransition)
	assert.Len(h.client.updates, 0)
}

func TestCreateRoute(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	h := newRouteHarness(t)

	uut := workflow.NewCreate(h.params)
	assert.Equal(workflow.StateReady, uut.State())
	assert.True(uut.Creating())
	assert.Empty(uut.ID())

	form := uut.Form()
	assert.NotEmpty(form.UploadDate)
	form = forms.RouteModel{}.FromRecord(testRoute("", "pending"))
	assert.Nil(uut.Edit(form))
	assert.Nil(uut.Submit())
	assert.Nil(uut.Confirm(utCtx))

	assert.Equal(workflow.StateDone, uut.State())
	assert.Equal("r1", uut.ID())
	assert.Len(h.client.creates, 1)
	assert.Len(h.client.updates, 0)
	assert.Equal([]string{"/view-routes"}, h.nav.paths)
	assert.Equal("Ruta agregada con éxito", h.recorder.All()[0].Title)
}

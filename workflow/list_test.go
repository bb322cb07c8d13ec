package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alwitt/routedesk/models"
	"github.com/alwitt/routedesk/notify"
	"github.com/alwitt/routedesk/workflow"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestListViewDelete(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	client := newFakeRouteClient(testRoute("r1", "pending"), testRoute("r2", "delivered"))
	recorder := &notify.Recorder{}
	nav := &pathRecorder{}

	uut := workflow.NewListView(workflow.ListParams[models.Route]{
		Entity: workflow.RouteEntity, Client: client, Sink: recorder, Navigator: nav,
	})
	assert.Nil(uut.Refresh(utCtx))
	assert.Len(uut.Rows(), 2)

	// Edit navigates without confirmation
	assert.Nil(uut.Edit(utCtx, "r2"))
	assert.Equal([]string{"/update-route/r2"}, nav.paths)
	assert.ErrorIs(uut.Edit(utCtx, "r9"), workflow.ErrUnknownRow)

	// Delete needs a confirmation
	assert.ErrorIs(uut.ConfirmDelete(utCtx), workflow.ErrNoPendingDelete)
	assert.ErrorIs(uut.RequestDelete("r9"), workflow.ErrUnknownRow)

	assert.Nil(uut.RequestDelete("r1"))
	pending, ok := uut.PendingDelete()
	assert.True(ok)
	assert.Equal("r1", pending.ID)

	uut.CancelDelete()
	_, ok = uut.PendingDelete()
	assert.False(ok)
	assert.Len(client.deletes, 0)

	assert.Nil(uut.RequestDelete("r1"))
	assert.Nil(uut.ConfirmDelete(utCtx))
	assert.Equal([]string{"r1"}, client.deletes)
	assert.Len(uut.Rows(), 1)
	assert.Equal("r2", uut.Rows()[0].ID)
	assert.Equal(1, recorder.Count(notify.VariantSuccess))
	assert.Equal("Ruta eliminada con éxito", recorder.All()[0].Title)

	// A subsequent list no longer has the row
	listed, err := client.List(utCtx)
	assert.Nil(err)
	assert.Len(listed, 1)
}

func TestListViewDeleteFailure(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()
	client := newFakeRouteClient(testRoute("r1", "pending"))
	client.failWrite = errors.New("network down")
	recorder := &notify.Recorder{}

	uut := workflow.NewListView(workflow.ListParams[models.Route]{
		Entity: workflow.RouteEntity, Client: client, Sink: recorder, Navigator: &pathRecorder{},
	})
	assert.Nil(uut.Refresh(utCtx))
	assert.Nil(uut.RequestDelete("r1"))
	assert.NotNil(uut.ConfirmDelete(utCtx))

	assert.Len(uut.Rows(), 1)
	assert.Equal(1, recorder.Count(notify.VariantFailure))
	assert.Equal("Error al eliminar la ruta", recorder.All()[0].Title)
	_, ok := uut.PendingDelete()
	assert.False(ok)
}

func TestEntityEditPath(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("/update-user/u1", workflow.UserEntity.EditPathOf("u1"))
	assert.Equal("/view-users", workflow.UserEntity.ListPath)
	assert.Equal("Usuario actualizado con éxito", workflow.UserEntity.Titles.UpdateSuccess)
}

package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/alwitt/goutils"
	"github.com/alwitt/routedesk/notify"
	"github.com/alwitt/routedesk/records"
	"github.com/apex/log"
)

var (
	// ErrUnknownRow the record is not one of the listed rows
	ErrUnknownRow = errors.New("record is not listed")
	// ErrNoPendingDelete no delete is waiting for confirmation
	ErrNoPendingDelete = errors.New("no delete pending confirmation")
)

// ListParams list view dependencies
type ListParams[R records.Record] struct {
	Entity    Entity
	Client    records.Client[R]
	Sink      notify.Sink
	Navigator Navigator
}

// ListView a collection shown as rows with per-row edit and delete actions
type ListView[R records.Record] struct {
	goutils.Component
	ListParams[R]

	rows    []R
	pending string
}

/*
NewListView define a list view

	@param params ListParams[R] - list view dependencies
	@returns the list view
*/
func NewListView[R records.Record](params ListParams[R]) *ListView[R] {
	return &ListView[R]{
		Component: goutils.Component{
			LogTags: log.Fields{
				"package":    "routedesk",
				"module":     "workflow",
				"component":  "list-view",
				"collection": params.Entity.Collection,
			},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		ListParams: params,
	}
}

/*
Refresh re-fetch every row

	@param ctx context.Context - execution context
*/
func (v *ListView[R]) Refresh(ctx context.Context) error {
	rows, err := v.Client.List(ctx)
	if err != nil {
		log.WithError(err).WithFields(v.LogTags).Error("Failed to list records")
		return err
	}
	v.rows = rows
	return nil
}

// Rows the rows of the last refresh
func (v *ListView[R]) Rows() []R {
	return v.rows
}

func (v *ListView[R]) find(id string) (R, bool) {
	for _, row := range v.rows {
		if row.GetID() == id {
			return row, true
		}
	}
	var empty R
	return empty, false
}

/*
Edit navigate to the edit form of a row

	@param ctx context.Context - execution context
	@param id string - row record ID
*/
func (v *ListView[R]) Edit(ctx context.Context, id string) error {
	if _, ok := v.find(id); !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownRow, id)
	}
	v.Navigator.Navigate(ctx, v.Entity.EditPathOf(id))
	return nil
}

/*
RequestDelete ask for confirmation before deleting a row

	@param id string - row record ID
*/
func (v *ListView[R]) RequestDelete(id string) error {
	if _, ok := v.find(id); !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownRow, id)
	}
	v.pending = id
	return nil
}

// PendingDelete the row waiting for delete confirmation
func (v *ListView[R]) PendingDelete() (R, bool) {
	if v.pending == "" {
		var empty R
		return empty, false
	}
	return v.find(v.pending)
}

// CancelDelete dismiss the delete confirmation
func (v *ListView[R]) CancelDelete() {
	v.pending = ""
}

/*
ConfirmDelete delete the pending row, then re-fetch the rows

	@param ctx context.Context - execution context
*/
func (v *ListView[R]) ConfirmDelete(ctx context.Context) error {
	if v.pending == "" {
		return ErrNoPendingDelete
	}
	id := v.pending
	v.pending = ""

	if err := v.Client.Delete(ctx, id); err != nil {
		log.WithError(err).WithFields(v.LogTags).WithField("record-id", id).Error("Failed to delete record")
		v.Sink.Notify(ctx, notify.Failure(v.Entity.Titles.DeleteFailure))
		return err
	}

	v.Sink.Notify(ctx, notify.Success(v.Entity.Titles.DeleteSuccess))
	return v.Refresh(ctx)
}

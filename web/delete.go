package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/alwitt/routedesk/workflow"
)

// deleteActions the list view operations a delete request drives
type deleteActions struct {
	request func(id string) error
	confirm func(ctx context.Context) error
	render  func()
}

// driveDelete apply a delete intent to a freshly listed view
func (s *Server) driveDelete(
	w http.ResponseWriter, r *http.Request, id string, listPath string, actions deleteActions,
) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	intent := r.PostForm.Get("intent")
	if intent == intentCancel {
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}

	if err := actions.request(id); err != nil {
		if errors.Is(err, workflow.ErrUnknownRow) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	switch intent {
	case intentRequest:
		actions.render()
	case intentConfirm:
		// The outcome is reported through the notification board
		_ = actions.confirm(r.Context())
		http.Redirect(w, r, listPath, http.StatusSeeOther)
	default:
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
	}
}

// finishForm complete a form post driven by driveForm
func (s *Server) finishForm(w http.ResponseWriter, status int, render func(int)) {
	switch status {
	case 0:
		return
	case http.StatusBadRequest, http.StatusConflict:
		http.Error(w, http.StatusText(status), status)
	default:
		render(status)
	}
}

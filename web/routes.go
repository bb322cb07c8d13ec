package web

import (
	"net/http"

	"github.com/alwitt/routedesk/forms"
	"github.com/alwitt/routedesk/models"
	"github.com/alwitt/routedesk/notify"
	"github.com/alwitt/routedesk/workflow"
	"github.com/go-chi/chi/v5"
)

func (s *Server) sinkFor(r *http.Request) notify.Sink {
	return s.Board.Sink(currentSession(r).SessionID)
}

func (s *Server) routeParams(
	r *http.Request, nav workflow.Navigator,
) workflow.Params[forms.RouteForm, models.Route] {
	return workflow.Params[forms.RouteForm, models.Route]{
		Entity:    workflow.RouteEntity,
		Client:    s.Routes,
		Model:     forms.RouteModel{Validator: s.Validator},
		Sink:      s.sinkFor(r),
		Navigator: nav,
	}
}

func (s *Server) routeListView(r *http.Request, nav workflow.Navigator) *workflow.ListView[models.Route] {
	return workflow.NewListView(workflow.ListParams[models.Route]{
		Entity:    workflow.RouteEntity,
		Client:    s.Routes,
		Sink:      s.sinkFor(r),
		Navigator: nav,
	})
}

// routeListPage route list page values
type routeListPage struct {
	Rows    []models.Route
	Pending *models.Route
}

func (s *Server) renderRouteForm(
	w http.ResponseWriter, r *http.Request, status int, wf *workflow.Workflow[forms.RouteForm, models.Route],
) {
	view := formView{
		Fields:       routeFields(wf.Form(), wf.Errors()),
		CancelPath:   workflow.RouteEntity.ListPath,
		Confirming:   wf.State() == workflow.StateAwaitingConfirm,
		ConfirmTitle: "¿Estás seguro de que deseas actualizar la información de esta ruta?",
		ConfirmText:  "Una vez actualizado, no podrás deshacer esta acción.",
	}
	if wf.Creating() {
		view.Heading = "Agregar ruta"
		view.Description = "Llena los campos correctamente para agregar una nueva ruta."
		view.Action = workflow.RouteEntity.CreatePath
		view.ConfirmTitle = "¿Estás seguro de que deseas agregar esta ruta?"
	} else {
		view.Heading = "Actualizar ruta"
		view.Description = "Llena los campos correctamente para actualizar la información de la ruta."
		view.Action = workflow.RouteEntity.EditPathOf(wf.ID())
	}
	s.render(w, r, status, pageForm, view.Heading, view)
}

func (s *Server) handleListRoutes(w http.ResponseWriter, r *http.Request) {
	view := s.routeListView(r, &redirectNavigator{})
	if err := view.Refresh(r.Context()); err != nil {
		s.renderLoadError(w, r, err, "/")
		return
	}
	s.render(w, r, http.StatusOK, pageRoutes, "Lista de rutas", routeListPage{Rows: view.Rows()})
}

func (s *Server) handleAddRoutePage(w http.ResponseWriter, r *http.Request) {
	wf := workflow.NewCreate(s.routeParams(r, &redirectNavigator{}))
	s.renderRouteForm(w, r, http.StatusOK, wf)
}

func (s *Server) handleAddRoute(w http.ResponseWriter, r *http.Request) {
	nav := &redirectNavigator{}
	wf := workflow.NewCreate(s.routeParams(r, nav))
	s.finishForm(w, driveForm(w, r, wf, nav, s.LogTags), func(status int) {
		s.renderRouteForm(w, r, status, wf)
	})
}

func (s *Server) handleUpdateRoutePage(w http.ResponseWriter, r *http.Request) {
	wf := workflow.NewEdit(s.routeParams(r, &redirectNavigator{}), chi.URLParam(r, "id"))
	if err := wf.Load(r.Context()); err != nil {
		s.renderLoadError(w, r, err, workflow.RouteEntity.ListPath)
		return
	}
	s.renderRouteForm(w, r, http.StatusOK, wf)
}

func (s *Server) handleUpdateRoute(w http.ResponseWriter, r *http.Request) {
	nav := &redirectNavigator{}
	wf := workflow.NewEdit(s.routeParams(r, nav), chi.URLParam(r, "id"))
	if err := wf.Load(r.Context()); err != nil {
		s.renderLoadError(w, r, err, workflow.RouteEntity.ListPath)
		return
	}
	s.finishForm(w, driveForm(w, r, wf, nav, s.LogTags), func(status int) {
		s.renderRouteForm(w, r, status, wf)
	})
}

func (s *Server) handleDeleteRoute(w http.ResponseWriter, r *http.Request) {
	view := s.routeListView(r, &redirectNavigator{})
	if err := view.Refresh(r.Context()); err != nil {
		s.renderLoadError(w, r, err, "/")
		return
	}
	s.driveDelete(w, r, chi.URLParam(r, "id"), workflow.RouteEntity.ListPath, deleteActions{
		request: view.RequestDelete,
		confirm: view.ConfirmDelete,
		render: func() {
			page := routeListPage{Rows: view.Rows()}
			if pending, ok := view.PendingDelete(); ok {
				page.Pending = &pending
			}
			s.render(w, r, http.StatusOK, pageRoutes, "Lista de rutas", page)
		},
	})
}

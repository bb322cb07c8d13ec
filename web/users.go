package web

import (
	"net/http"

	"github.com/alwitt/routedesk/forms"
	"github.com/alwitt/routedesk/models"
	"github.com/alwitt/routedesk/notify"
	"github.com/alwitt/routedesk/workflow"
	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
)

func (s *Server) userCreateParams(
	r *http.Request, nav workflow.Navigator,
) workflow.Params[forms.UserCreateForm, models.User] {
	return workflow.Params[forms.UserCreateForm, models.User]{
		Entity:    workflow.UserEntity,
		Client:    s.Users,
		Model:     forms.UserCreateModel{Validator: s.Validator},
		Sink:      s.sinkFor(r),
		Navigator: nav,
	}
}

func (s *Server) userUpdateParams(
	r *http.Request, nav workflow.Navigator,
) workflow.Params[forms.UserUpdateForm, models.User] {
	return workflow.Params[forms.UserUpdateForm, models.User]{
		Entity:    workflow.UserEntity,
		Client:    s.Users,
		Model:     forms.UserUpdateModel{Validator: s.Validator},
		Sink:      s.sinkFor(r),
		Navigator: nav,
	}
}

// userListPage user list page values
type userListPage struct {
	Rows    []models.User
	Pending *models.User
}

func (s *Server) renderUserCreateForm(
	w http.ResponseWriter, r *http.Request, status int,
	wf *workflow.Workflow[forms.UserCreateForm, models.User],
) {
	form := wf.Form()
	view := formView{
		Heading:     "Agregar usuario",
		Description: "Llena los campos correctamente para agregar un nuevo usuario.",
		Action:      workflow.UserEntity.CreatePath,
		CancelPath:  workflow.UserEntity.ListPath,
		Fields: userFields(userValues{
			Name: form.Name, LastName: form.LastName, Email: form.Email, Role: form.Role,
			Password: form.Password, ConfirmPassword: form.ConfirmPassword,
		}, wf.Errors(), false, wf.State() == workflow.StateAwaitingConfirm),
		Confirming:   wf.State() == workflow.StateAwaitingConfirm,
		ConfirmTitle: "¿Estás seguro de que deseas agregar este usuario?",
		ConfirmText:  "El usuario podrá iniciar sesión con este correo electrónico.",
	}
	s.render(w, r, status, pageForm, view.Heading, view)
}

func (s *Server) renderUserUpdateForm(
	w http.ResponseWriter, r *http.Request, status int,
	wf *workflow.Workflow[forms.UserUpdateForm, models.User],
) {
	form := wf.Form()
	view := formView{
		Heading:     "Actualizar usuario",
		Description: "Llena los campos correctamente para actualizar la información del usuario.",
		Action:      workflow.UserEntity.EditPathOf(wf.ID()),
		CancelPath:  workflow.UserEntity.ListPath,
		Fields: userFields(userValues{
			Name: form.Name, LastName: form.LastName, Email: form.Email, Role: form.Role,
			Password: form.Password, ConfirmPassword: form.ConfirmPassword,
		}, wf.Errors(), true, wf.State() == workflow.StateAwaitingConfirm),
		Confirming:   wf.State() == workflow.StateAwaitingConfirm,
		ConfirmTitle: "¿Estás seguro de que deseas actualizar la información de este usuario?",
		ConfirmText:  "Una vez actualizado, no podrás deshacer esta acción.",
	}
	s.render(w, r, status, pageForm, view.Heading, view)
}

func (s *Server) userListView(r *http.Request, nav workflow.Navigator) *workflow.ListView[models.User] {
	return workflow.NewListView(workflow.ListParams[models.User]{
		Entity:    workflow.UserEntity,
		Client:    s.Users,
		Sink:      s.sinkFor(r),
		Navigator: nav,
	})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	view := s.userListView(r, &redirectNavigator{})
	if err := view.Refresh(r.Context()); err != nil {
		s.renderLoadError(w, r, err, "/")
		return
	}
	s.render(w, r, http.StatusOK, pageUsers, "Lista de usuarios", userListPage{Rows: view.Rows()})
}

func (s *Server) handleAddUserPage(w http.ResponseWriter, r *http.Request) {
	wf := workflow.NewCreate(s.userCreateParams(r, &redirectNavigator{}))
	s.renderUserCreateForm(w, r, http.StatusOK, wf)
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	nav := &redirectNavigator{}
	wf := workflow.NewCreate(s.userCreateParams(r, nav))
	s.finishForm(w, driveForm(w, r, wf, nav, s.LogTags), func(status int) {
		s.renderUserCreateForm(w, r, status, wf)
	})
}

func (s *Server) handleUpdateUserPage(w http.ResponseWriter, r *http.Request) {
	wf := workflow.NewEdit(s.userUpdateParams(r, &redirectNavigator{}), chi.URLParam(r, "id"))
	if err := wf.Load(r.Context()); err != nil {
		s.renderLoadError(w, r, err, workflow.UserEntity.ListPath)
		return
	}
	s.renderUserUpdateForm(w, r, http.StatusOK, wf)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	nav := &redirectNavigator{}
	wf := workflow.NewEdit(s.userUpdateParams(r, nav), chi.URLParam(r, "id"))
	if err := wf.Load(r.Context()); err != nil {
		s.renderLoadError(w, r, err, workflow.UserEntity.ListPath)
		return
	}
	s.finishForm(w, driveForm(w, r, wf, nav, s.LogTags), func(status int) {
		s.renderUserUpdateForm(w, r, status, wf)
	})
}

// selfDeleteRefused notification sent when a user tries to delete their own account
const selfDeleteRefused = "No puedes eliminar tu propio usuario"

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if session := currentSession(r); id == session.IdentityID {
		if r.PostFormValue("intent") != intentCancel {
			log.WithFields(s.LogTags).WithField("user-id", id).Info("Refused self delete")
			s.sinkFor(r).Notify(r.Context(), notify.Failure(selfDeleteRefused))
		}
		http.Redirect(w, r, workflow.UserEntity.ListPath, http.StatusSeeOther)
		return
	}

	view := s.userListView(r, &redirectNavigator{})
	if err := view.Refresh(r.Context()); err != nil {
		s.renderLoadError(w, r, err, "/")
		return
	}
	s.driveDelete(w, r, id, workflow.UserEntity.ListPath, deleteActions{
		request: view.RequestDelete,
		confirm: view.ConfirmDelete,
		render: func() {
			page := userListPage{Rows: view.Rows()}
			if pending, ok := view.PendingDelete(); ok {
				page.Pending = &pending
			}
			s.render(w, r, http.StatusOK, pageUsers, "Lista de usuarios", page)
		},
	})
}

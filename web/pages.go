package web

import (
	"errors"
	"net/http"

	"github.com/alwitt/routedesk/auth"
	"github.com/alwitt/routedesk/forms"
	"github.com/apex/log"
)

// loginView sign in page values
type loginView struct {
	Email  string
	Error  string
	Fields forms.FieldErrors
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageLogin, "Inicia sesión", loginView{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	var login forms.LoginForm
	if err := forms.Decode(r.PostForm, &login); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if errs := s.Validator.Validate(login); len(errs) > 0 {
		s.render(w, r, http.StatusUnprocessableEntity, pageLogin, "Inicia sesión", loginView{
			Email: login.Email, Fields: errs,
		})
		return
	}

	session, err := s.Auth.Authenticate(r.Context(), login.Email, login.Password)
	if err != nil {
		status := http.StatusBadGateway
		message := "No fue posible iniciar sesión. Intenta de nuevo más tarde."
		if errors.Is(err, auth.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
			message = "Correo electrónico o contraseña incorrectos."
		}
		s.render(w, r, status, pageLogin, "Inicia sesión", loginView{Email: login.Email, Error: message})
		return
	}

	s.setSessionCookie(w, session)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageHome, "JTP Logistics", nil)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r)
	user, err := s.Users.Get(r.Context(), session.IdentityID)
	if err != nil {
		log.WithError(err).WithFields(s.LogTags).
			WithField("identity-id", session.IdentityID).
			Error("Failed to load profile")
		s.renderLoadError(w, r, err, "/")
		return
	}
	s.render(w, r, http.StatusOK, pageProfile, "Perfil", user)
}

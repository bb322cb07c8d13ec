// Package web - server rendered dashboard
package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/routedesk/auth"
	"github.com/alwitt/routedesk/forms"
	"github.com/alwitt/routedesk/models"
	"github.com/alwitt/routedesk/notify"
	"github.com/alwitt/routedesk/records"
	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Params dashboard handler dependencies
type Params struct {
	Auth      auth.Service
	Routes    records.Client[models.Route]
	Users     records.Client[models.User]
	Validator *forms.Validator
	Board     *notify.Board
	// SecureCookie mark the session cookie HTTPS only
	SecureCookie bool
}

// Server dashboard HTTP handlers
type Server struct {
	goutils.Component
	Params
	pages map[string]*template.Template
}

/*
NewHandler define the dashboard HTTP handler

	@param params Params - handler dependencies
	@returns the handler
*/
func NewHandler(params Params) (http.Handler, error) {
	if params.Auth == nil || params.Routes == nil || params.Users == nil {
		return nil, fmt.Errorf("dashboard handler requires auth and record clients")
	}
	if params.Validator == nil {
		validator, err := forms.NewValidator()
		if err != nil {
			return nil, fmt.Errorf("failed to define form validator [%w]", err)
		}
		params.Validator = validator
	}
	if params.Board == nil {
		params.Board = notify.NewBoard(5 * time.Second)
	}

	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates [%w]", err)
	}

	s := &Server{
		Component: goutils.Component{
			LogTags: log.Fields{"package": "routedesk", "module": "web", "component": "dashboard"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		Params: params,
		pages:  pages,
	}

	return s.router(), nil
}

func (s *Server) router() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(s.logRequests)
	mux.Use(middleware.Recoverer)

	mux.Get("/health", s.handleHealth)
	mux.Get("/login", s.handleLoginPage)
	mux.Post("/login", s.handleLogin)
	mux.Post("/logout", s.handleLogout)

	mux.Group(func(pr chi.Router) {
		pr.Use(s.requireSession)

		pr.Get("/", s.handleHome)
		pr.Get("/profile", s.handleProfile)

		pr.Get("/view-routes", s.handleListRoutes)
		pr.Get("/add-route", s.handleAddRoutePage)
		pr.Post("/add-route", s.handleAddRoute)
		pr.Get("/update-route/{id}", s.handleUpdateRoutePage)
		pr.Post("/update-route/{id}", s.handleUpdateRoute)
		pr.Post("/delete-route/{id}", s.handleDeleteRoute)

		pr.Get("/view-users", s.handleListUsers)
		pr.Get("/add-user", s.handleAddUserPage)
		pr.Post("/add-user", s.handleAddUser)
		pr.Get("/update-user/{id}", s.handleUpdateUserPage)
		pr.Post("/update-user/{id}", s.handleUpdateUser)
		pr.Post("/delete-user/{id}", s.handleDeleteUser)
	})

	return mux
}

// logRequests log every handled request
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.WithFields(s.LogTags).WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"request-id": middleware.GetReqID(r.Context()),
			"elapsed":    time.Since(start).String(),
		}).Debug("Handled request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

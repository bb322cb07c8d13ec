package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/alwitt/routedesk/forms"
	"github.com/alwitt/routedesk/models"
	"github.com/alwitt/routedesk/notify"
	"github.com/alwitt/routedesk/records"
	"github.com/apex/log"
)

//go:embed templates/*.html
var templateFS embed.FS

// page names
const (
	pageHome    = "home.html"
	pageLogin   = "login.html"
	pageForm    = "form.html"
	pageRoutes  = "routes.html"
	pageUsers   = "users.html"
	pageProfile = "profile.html"
	pageError   = "error.html"
)

var templateFuncs = template.FuncMap{
	"roleLabel":  func(role models.UserRoleENUMType) string { return role.Label() },
	"formatDate": forms.FormatDate,
	"formatTime": forms.FormatTime,
}

func parsePages() (map[string]*template.Template, error) {
	pages := map[string]*template.Template{}
	for _, name := range []string{
		pageHome, pageLogin, pageForm, pageRoutes, pageUsers, pageProfile, pageError,
	} {
		parsed, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse '%s' [%w]", name, err)
		}
		pages[name] = parsed
	}
	return pages, nil
}

// pageData common page values
type pageData struct {
	Title         string
	Authenticated bool
	Notification  *notify.Notification
	Content       interface{}
}

func (s *Server) render(
	w http.ResponseWriter, r *http.Request, status int, name string, title string, content interface{},
) {
	data := pageData{Title: title, Content: content}
	if session, ok := sessionFromContext(r.Context()); ok {
		data.Authenticated = true
		if n, ok := s.Board.Take(session.SessionID); ok {
			data.Notification = &n
		}
	}

	var buf bytes.Buffer
	if err := s.pages[name].Execute(&buf, data); err != nil {
		log.WithError(err).WithFields(s.LogTags).WithField("page", name).Error("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if name == pageForm || name == pageLogin {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// errorView error page values
type errorView struct {
	Message  string
	BackPath string
}

// renderLoadError render the page of a record which could not be loaded
func (s *Server) renderLoadError(w http.ResponseWriter, r *http.Request, err error, backPath string) {
	if errors.Is(err, records.ErrNotFound) {
		s.render(w, r, http.StatusNotFound, pageError, "No encontrado", errorView{
			Message: "El registro solicitado no existe.", BackPath: backPath,
		})
		return
	}
	s.render(w, r, http.StatusBadGateway, pageError, "Error", errorView{
		Message: "No fue posible consultar la información. Intenta de nuevo más tarde.",
		BackPath: backPath,
	})
}

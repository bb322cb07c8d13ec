package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/alwitt/routedesk/auth"
	"github.com/apex/log"
)

// SessionCookie name of the session cookie
const SessionCookie = "routedesk_session"

type sessionContextKey struct{}

// sessionFromContext the session resolved by requireSession
func sessionFromContext(ctx context.Context) (auth.Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(auth.Session)
	return session, ok
}

// currentSession the session of an authenticated request
func currentSession(r *http.Request) auth.Session {
	session, _ := sessionFromContext(r.Context())
	return session
}

// requireSession redirect to the sign in page unless the request has a valid session
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		session, err := s.Auth.ResolveSession(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidSession) {
				log.WithError(err).WithFields(s.LogTags).Error("Failed to verify session")
				http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
				return
			}
			log.WithError(err).WithFields(s.LogTags).Debug("Rejected session")
			s.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionContextKey{}, session)))
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, session auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   s.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

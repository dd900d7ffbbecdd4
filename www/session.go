package www

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName       = "pv-revenue"
	sessionProjectKey = "project"
)

func newSessionStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// selectedProject reads the project name kept in the session cookie. Empty
// when no selection was made yet.
func (s *Server) selectedProject(r *http.Request) string {
	session, err := s.sessions.Get(r, sessionName)
	if err != nil {
		return ""
	}
	if name, ok := session.Values[sessionProjectKey].(string); ok {
		return name
	}
	return ""
}

func (s *Server) saveSelectedProject(w http.ResponseWriter, r *http.Request, name string) {
	session, _ := s.sessions.Get(r, sessionName)
	session.Values[sessionProjectKey] = name
	if err := session.Save(r, w); err != nil {
		s.logger.Warn("saving session failed", "error", err)
	}
}

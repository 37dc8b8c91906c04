package web

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const sessionCookie = "tourscout_session"

// Session holds one browser's current state/site selection. Selections live
// per session token, never in process-wide fields, so concurrent users
// cannot clobber each other.
type Session struct {
	State    string
	SiteName string
}

type sessionStore struct {
	mu   sync.Mutex
	byID map[string]*Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{byID: make(map[string]*Session)}
}

// session returns the request's session, issuing a new uuid cookie when the
// browser has none (or presents an unknown token).
func (s *sessionStore) session(c echo.Context) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cookie, err := c.Cookie(sessionCookie); err == nil {
		if sess, ok := s.byID[cookie.Value]; ok {
			return sess
		}
	}

	id := uuid.NewString()
	sess := &Session{}
	s.byID[id] = sess

	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return sess
}

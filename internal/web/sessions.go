package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter"
)

// SessionCookie names the cookie holding the browser session id.
const SessionCookie = "sheetfilter_session"

type sessionEntry struct {
	session  *sheetfilter.Session
	lastSeen time.Time
}

// sessionStore keeps one Session per browser and drops idle ones.
type sessionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uuid.UUID]*sessionEntry
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uuid.UUID]*sessionEntry),
	}
}

// get returns the live session for id and refreshes its last use.
func (s *sessionStore) get(id uuid.UUID) (*sheetfilter.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.entries, id)
		return nil, false
	}
	e.lastSeen = now
	return e.session, true
}

// create registers a new empty session.
func (s *sessionStore) create() (uuid.UUID, *sheetfilter.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	id := uuid.New()
	sess := sheetfilter.NewSession()
	s.entries[id] = &sessionEntry{session: sess, lastSeen: s.now()}
	return id, sess
}

// len returns the number of stored sessions.
func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *sessionStore) sweepLocked() {
	now := s.now()
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
		}
	}
}

// fromRequest returns the session named by the request cookie, creating one
// and setting the cookie when there is none.
func (s *sessionStore) fromRequest(w http.ResponseWriter, r *http.Request) *sheetfilter.Session {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if sess, ok := s.get(id); ok {
				return sess
			}
		}
	}

	id, sess := s.create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// the sessions package keeps one output log per browser session.
// Logs live in memory only and are dropped after the session has been idle for the configured TTL.
package sessions

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/AidosNurbergen/Dos/internal/console"
)

type Store struct {
	logs       *cache.Cache
	ttl        time.Duration
	cookieName string
	secure     bool
}

// NewStore returns a store that expires logs ttl after their last use.
// secure marks the session cookie as https-only.
func NewStore(cookieName string, ttl time.Duration, secure bool) *Store {
	return &Store{
		logs:       cache.New(ttl, ttl/2),
		ttl:        ttl,
		cookieName: cookieName,
		secure:     secure,
	}
}

// Get returns the log for id, creating it if needed. Each call extends the session.
func (s *Store) Get(id string) *console.Log {
	if v, ok := s.logs.Get(id); ok {
		l := v.(*console.Log)
		s.logs.Set(id, l, cache.DefaultExpiration)
		return l
	}

	// Add fails if a concurrent request created the log first
	l := console.NewLog()
	if err := s.logs.Add(id, l, cache.DefaultExpiration); err != nil {
		if v, ok := s.logs.Get(id); ok {
			return v.(*console.Log)
		}
		s.logs.Set(id, l, cache.DefaultExpiration)
	}
	return l
}

// Lookup returns the log for id without creating one
func (s *Store) Lookup(id string) (*console.Log, bool) {
	v, ok := s.logs.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*console.Log), true
}

func (s *Store) Count() int {
	return s.logs.ItemCount()
}

// ForRequest returns the log of the session identified by the request cookie.
// A new session is started, and its cookie set on w, when the request has no valid session id.
func (s *Store) ForRequest(w http.ResponseWriter, r *http.Request) (string, *console.Log) {
	if cookie, err := r.Cookie(s.cookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			s.setCookie(w, cookie.Value)
			return cookie.Value, s.Get(cookie.Value)
		}
	}

	id := uuid.NewString()
	s.setCookie(w, id)
	return id, s.Get(id)
}

func (s *Store) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

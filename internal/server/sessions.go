package server

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// Session is one browser's form. Its controller is only touched with mu held,
// so events from the same browser are applied one at a time.
type Session struct {
	mu   sync.Mutex
	ctrl *engine.Controller

	// calendar uses atomic.Pointer so downloads never wait on a form event.
	calendar atomic.Pointer[cacheItem]

	lastSeen time.Time // guarded by SessionStore.mu
}

// SessionStore is an in-memory session store keyed by an opaque token.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	clock    engine.Clock
	ttl      time.Duration
	onChange func(count int)
}

// NewSessionStore creates an empty store. onChange, if set, receives the session count
// after every creation or purge.
func NewSessionStore(clock engine.Clock, ttl time.Duration, onChange func(count int)) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		clock:    clock,
		ttl:      ttl,
		onChange: onChange,
	}
}

// Create stores a new session with a fresh controller and returns its token.
// Expired sessions are purged first.
func (ss *SessionStore) Create() (string, *Session) {
	token := uuid.NewString()
	now := ss.clock.Now()
	sess := &Session{
		ctrl:     engine.NewController(ss.clock),
		lastSeen: now,
	}

	ss.mu.Lock()
	ss.purgeLocked(now)
	ss.sessions[token] = sess
	count := len(ss.sessions)
	ss.mu.Unlock()

	slog.Debug(config.MsgSessionNew,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySession, token)
	ss.notify(count)
	return token, sess
}

// Get returns the session for token and refreshes its idle timer.
func (ss *SessionStore) Get(token string) (*Session, bool) {
	now := ss.clock.Now()

	ss.mu.Lock()
	sess, ok := ss.sessions[token]
	if !ok {
		ss.mu.Unlock()
		return nil, false
	}
	if now.Sub(sess.lastSeen) > ss.ttl {
		delete(ss.sessions, token)
		count := len(ss.sessions)
		ss.mu.Unlock()

		ss.notify(count)
		return nil, false
	}
	sess.lastSeen = now
	ss.mu.Unlock()
	return sess, true
}

// Len returns the number of stored sessions, expired or not.
func (ss *SessionStore) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.sessions)
}

func (ss *SessionStore) purgeLocked(now time.Time) {
	removed := 0
	for token, sess := range ss.sessions {
		if now.Sub(sess.lastSeen) > ss.ttl {
			delete(ss.sessions, token)
			removed++
		}
	}
	if removed > 0 {
		slog.Info(config.MsgSessionPurged,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyCount, removed)
	}
}

func (ss *SessionStore) notify(count int) {
	if ss.onChange != nil {
		ss.onChange(count)
	}
}

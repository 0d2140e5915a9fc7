package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/honorarios/src/logger"
	"github.com/username/honorarios/src/processors"
)

const (
	ckSession = "session_user_%s"

	DefaultSessionExpiration = 30 * time.Minute
	SessionCleanupInterval   = 10 * time.Minute
)

type sessionEntry struct {
	mu      sync.Mutex
	session *CalculationSession
}

// SessionRegistry keeps one CalculationSession per user and serializes access
// to it. Idle sessions expire from the underlying cache.
type SessionRegistry struct {
	sessions *cache.Cache
	create   sync.Mutex
	clock    processors.Clock
	years    EffectiveYearResolver
}

func NewSessionRegistry(clock processors.Clock, years EffectiveYearResolver, ttl time.Duration) *SessionRegistry {
	if ttl <= 0 {
		ttl = DefaultSessionExpiration
	}
	return &SessionRegistry{
		sessions: cache.New(ttl, SessionCleanupInterval),
		clock:    clock,
		years:    years,
	}
}

func (r *SessionRegistry) entry(userID string) *sessionEntry {
	key := fmt.Sprintf(ckSession, userID)
	if e, found := r.sessions.Get(key); found {
		return e.(*sessionEntry)
	}

	r.create.Lock()
	defer r.create.Unlock()
	if e, found := r.sessions.Get(key); found {
		return e.(*sessionEntry)
	}
	e := &sessionEntry{session: NewCalculationSession(r.clock, r.years)}
	r.sessions.SetDefault(key, e)
	logger.L.Debug("Created calculation session", "userID", userID)
	return e
}

// WithSession runs fn while holding the user's session lock.
func (r *SessionRegistry) WithSession(userID string, fn func(*CalculationSession) error) error {
	if userID == "" {
		return ErrMissingUserID
	}
	e := r.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Drop resets and forgets the user's session.
func (r *SessionRegistry) Drop(userID string) {
	key := fmt.Sprintf(ckSession, userID)
	if e, found := r.sessions.Get(key); found {
		entry := e.(*sessionEntry)
		entry.mu.Lock()
		entry.session.Reset()
		entry.mu.Unlock()
	}
	r.sessions.Delete(key)
}

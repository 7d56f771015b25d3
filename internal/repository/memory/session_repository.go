package memory

import (
	"sync"
	"time"

	"policy-compass-be/pkg/llm"
	"policy-compass-be/pkg/tracker"

	"github.com/patrickmn/go-cache"
)

// Session is the in-memory state for one anonymous user session: the
// activity log, the content store, the running chat history and any
// per-session API key overrides.
type Session struct {
	ID          string
	Activities  []tracker.ActivityRecord
	Content     map[string]tracker.ContentEntry
	ChatHistory []llm.Message
	APIKeys     map[string]string // "openai", "anthropic", "propublica", "tts"
	CreatedAt   time.Time

	mu sync.Mutex
}

func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Content:   make(map[string]tracker.ContentEntry),
		APIKeys:   make(map[string]string),
		CreatedAt: time.Now(),
	}
}

// Lock guards all mutations; overlapping HTTP requests may touch the
// same session.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *SessionRepository) Save(session *Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*Session), true
	}
	return nil, false
}

// GetOrCreate returns the existing session or registers a fresh one.
// Touching the cache also resets the TTL so active sessions stay alive.
func (r *SessionRepository) GetOrCreate(sessionID string) *Session {
	if s, found := r.Get(sessionID); found {
		r.cache.Set(sessionID, s, cache.DefaultExpiration)
		return s
	}
	s := NewSession(sessionID)
	r.Save(s)
	return s
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

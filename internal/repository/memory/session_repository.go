package memory

import (
	"hash/fnv"
	"sync"
	"time"

	"breathcoach-be/pkg/coach"
	"breathcoach-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

const lockStripes = 64

// SessionRepository is the in-memory session state store. Sessions
// expire after the idle timeout; the go-cache janitor purges them.
// Striped mutexes give single-writer-per-session discipline: the
// coaching service holds the session's stripe for the whole read,
// decide, write cycle.
type SessionRepository struct {
	cache *cache.Cache
	locks [lockStripes]sync.Mutex
}

func NewSessionRepository(idleTimeout time.Duration) *SessionRepository {
	if idleTimeout <= 0 {
		idleTimeout = 30 * time.Minute
	}
	c := cache.New(idleTimeout, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// Lock acquires the stripe for a session id and returns the unlock.
func (r *SessionRepository) Lock(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	m := &r.locks[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}

// GetOrCreate returns the session for an id, creating the first-breath
// state (prep phase, nothing spoken) on first sight. created reports
// whether this check-in is the first for the id.
func (r *SessionRepository) GetOrCreate(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), false
	}
	session := NewSession(sessionID)
	r.cache.Set(sessionID, session, cache.DefaultExpiration)
	return session, true
}

// NewSession builds the initial state for a session id.
func NewSession(sessionID string) *store.Session {
	return &store.Session{
		ID:        sessionID,
		Phase:     string(coach.PhasePrep),
		CreatedAt: time.Now(),
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

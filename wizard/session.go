package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"assettco/asset"
)

// sessions idle longer than this are dropped.
const sessionTTL = 30 * time.Minute

var (
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrWrongStep       = errors.New("step out of order")
	ErrNotComplete     = errors.New("wizard not complete")
)

// Session is one in-progress intake. Steps must be submitted in order;
// resubmitting an earlier step rewinds the wizard to it.
type Session struct {
	ID        string       `json:"session_id"`
	CreatedAt time.Time    `json:"created_at"`
	Step      int          `json:"step"`
	Record    asset.Record `json:"record"`

	mu sync.Mutex
}

const totalSteps = 4

// Store keeps active sessions with idle expiry.
type Store struct {
	cache *expirable.LRU[string, *Session]
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		cache: expirable.NewLRU[string, *Session](256, nil, sessionTTL),
		now:   time.Now,
	}
}

// Start opens a fresh session at step 1.
func (s *Store) Start() *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Step:      1,
	}
	sess.Record.ID = uuid.NewString()
	s.cache.Add(sess.ID, sess)
	return sess
}

// Get returns an active session.
func (s *Store) Get(id string) (*Session, error) {
	sess, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Drop removes a session, used after completion or cancel.
func (s *Store) Drop(id string) {
	s.cache.Remove(id)
}

// Active reports how many sessions are currently live.
func (s *Store) Active() int {
	return s.cache.Len()
}

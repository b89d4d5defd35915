package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PeterLuschny/FigurativePartitions/internal/puzzle"
)

// DefaultMaxSessions bounds the number of live puzzles when no limit is configured.
const DefaultMaxSessions = 1024

var (
	// ErrSessionNotFound indicates no session exists for the given id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionLimit indicates the store is full.
	ErrSessionLimit = errors.New("session limit reached")
	// ErrInvalidTarget indicates a session was requested with a non-positive target.
	ErrInvalidTarget = errors.New("target must be a positive integer")
)

// Session describes a stored puzzle.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store provides access to independent puzzle sessions. Callbacks passed to
// View and Update run while the session is locked and must not retain the
// collection.
type Store interface {
	Create(target int) (Session, error)
	Get(id string) (Session, error)
	View(id string, fn func(*puzzle.Collection)) error
	Update(id string, fn func(*puzzle.Collection)) error
	Delete(id string) error
	Len() int
}

type entry struct {
	mu         sync.Mutex
	session    Session
	collection *puzzle.Collection
}

// MemoryStore keeps sessions in-memory. The map is guarded by a RWMutex and
// each session carries its own mutex, so a collection is only ever touched by
// one goroutine at a time.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*entry
	maxSessions int
	clock       func() time.Time
}

// Option configures MemoryStore behaviour.
type Option func(*MemoryStore)

// WithMaxSessions caps the number of live sessions. Non-positive values keep the default.
func WithMaxSessions(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *MemoryStore) {
		s.clock = clock
	}
}

// NewMemoryStore initialises an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions:    make(map[string]*entry),
		maxSessions: DefaultMaxSessions,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new puzzle with the given target.
func (s *MemoryStore) Create(target int) (Session, error) {
	if target <= 0 {
		return Session{}, ErrInvalidTarget
	}

	e := &entry{
		session: Session{
			ID:        uuid.NewString(),
			CreatedAt: s.clock(),
		},
		collection: puzzle.New(target),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.maxSessions {
		return Session{}, ErrSessionLimit
	}
	s.sessions[e.session.ID] = e
	return e.session, nil
}

// Get returns the session metadata for id.
func (s *MemoryStore) Get(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return e.session, nil
}

// View runs fn with the session's collection. fn must not mutate it.
func (s *MemoryStore) View(id string, fn func(*puzzle.Collection)) error {
	return s.with(id, fn)
}

// Update runs fn with exclusive access to the session's collection.
func (s *MemoryStore) Update(id string, fn func(*puzzle.Collection)) error {
	return s.with(id, fn)
}

// Delete drops a session.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

func (s *MemoryStore) with(id string, fn func(*puzzle.Collection)) error {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.collection)
	return nil
}

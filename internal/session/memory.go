package session

import (
	"context"
	"sync"
	"time"

	"community_cards/internal/domain"

	"github.com/google/uuid"
)

type memoryEntry struct {
	session   *domain.Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Expired sessions are
// swept by a background goroutine until Close is called.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewMemoryStore creates an in-memory store that sweeps expired sessions
// every sweepEvery (no sweeping if sweepEvery <= 0).
func NewMemoryStore(ttl, sweepEvery time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if sweepEvery > 0 {
		s.wg.Add(1)
		go s.sweepLoop(sweepEvery)
	}
	return s
}

func (s *MemoryStore) sweepLoop(every time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep removes expired sessions and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Close stops the sweeper.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
	return nil
}

// Len returns the number of stored sessions, including expired ones not yet swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemoryStore) Create(ctx context.Context) (*domain.Session, error) {
	now := s.now()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &memoryEntry{session: sess, expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()

	return clone(sess), nil
}

// lookup returns the live entry for id. Callers hold s.mu.
func (s *MemoryStore) lookup(id string) (*memoryEntry, bool) {
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.sessions, id)
		return nil, false
	}
	return e, true
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return clone(e.session), nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	working := clone(e.session)
	if err := fn(working); err != nil {
		return nil, err
	}
	now := s.now()
	working.ID = id
	working.UpdatedAt = now
	e.session = working
	e.expiresAt = now.Add(s.ttl)

	return clone(working), nil
}

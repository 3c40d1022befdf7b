package cart

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for an unknown or expired session id.
var ErrSessionNotFound = errors.New("cart session not found")

// session pairs a cart with its expiry deadline.
type session struct {
	cart      *Cart
	expiresAt time.Time
}

// Store keeps one cart per session id in memory. Sessions expire after a
// sliding TTL; any access extends the deadline. Carts are never persisted.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewStore creates a Store with the given session TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// NewStoreWithCleanup is like NewStore but additionally starts a background
// goroutine that evicts expired sessions every TTL. The goroutine stops when
// ctx is cancelled.
func NewStoreWithCleanup(ctx context.Context, ttl time.Duration) *Store {
	s := NewStore(ttl)
	s.startCleanup(ctx)
	return s
}

// Create registers a new empty cart and returns its session id.
func (s *Store) Create() string {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{
		cart:      New(),
		expiresAt: s.now().Add(s.ttl),
	}
	return id
}

// With runs fn against the cart for the given session id, holding the store
// lock for the duration of fn. Both reads and mutations go through With so
// that concurrent requests against the same session are serialized.
func (s *Store) With(id string, fn func(c *Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.now().After(sess.expiresAt) {
		delete(s.sessions, id)
		return ErrSessionNotFound
	}
	sess.expiresAt = s.now().Add(s.ttl)
	return fn(sess.cart)
}

// cleanup removes sessions whose deadline has passed.
func (s *Store) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *Store) startCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.ttl)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.cleanup(now)
			}
		}
	}()
}

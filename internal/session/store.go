// Package session keeps one mounted form per visitor.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formplay/pkg/form"
)

var (
	// ErrNotFound is returned for unknown or expired session ids.
	ErrNotFound = errors.New("session: not found")
	// ErrCapacity is returned by Create when the store is full even after
	// expired sessions are swept.
	ErrCapacity = errors.New("session: store is full")
)

// Factory mounts a fresh form for a new session.
type Factory func() (*form.Form, error)

// Session is one visitor's form. Events must go through Do.
type Session struct {
	ID      string
	Created time.Time

	mu       sync.Mutex
	form     *form.Form
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session's form.
func (s *Session) Do(fn func(*form.Form) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.form)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Store holds sessions in memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	factory  Factory
	ttl      time.Duration
	max      int
	now      func() time.Time
	onClose  func(id string)
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxSessions caps the number of live sessions. Zero means no cap.
func WithMaxSessions(n int) Option {
	return func(s *Store) {
		if n >= 0 {
			s.max = n
		}
	}
}

// WithOnClose registers a callback run after a session is deleted or swept.
func WithOnClose(fn func(id string)) Option {
	return func(s *Store) {
		s.onClose = fn
	}
}

// NewStore creates a store. Sessions idle for longer than ttl are removed by
// Sweep; a non-positive ttl disables expiry.
func NewStore(factory Factory, ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create mounts a new form and stores it under a random id. A full store is
// swept first; Create fails with ErrCapacity when that frees nothing.
func (s *Store) Create() (*Session, error) {
	if s.factory == nil {
		return nil, errors.New("session: form factory is nil")
	}
	if s.full() {
		s.Sweep(s.now())
		if s.full() {
			return nil, ErrCapacity
		}
	}
	f, err := s.factory()
	if err != nil {
		return nil, fmt.Errorf("session: mount form: %w", err)
	}
	now := s.now()
	sess := &Session{
		ID:       uuid.NewString(),
		Created:  now,
		form:     f,
		lastSeen: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.max > 0 && len(s.sessions) >= s.max {
		return nil, ErrCapacity
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *Store) full() bool {
	if s.max <= 0 {
		return false
	}
	return s.Len() >= s.max
}

// Get returns the session and marks it as used.
func (s *Store) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	sess.touch(s.now())
	return sess, nil
}

// Delete unmounts a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	s.closed(id)
	return nil
}

// Sweep removes sessions idle for longer than the ttl and returns how many it
// removed.
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	var expired []string
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.ttl {
			delete(s.sessions, id)
			expired = append(expired, id)
		}
	}
	s.mu.Unlock()
	for _, id := range expired {
		s.closed(id)
	}
	return len(expired)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) closed(id string) {
	if s.onClose != nil {
		s.onClose(id)
	}
}

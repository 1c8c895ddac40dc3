// Package app holds the stateful diary stores and the repository facade that
// coordinates them.
package app

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"nappu/internal/log"
)

type settings struct {
	now    func() time.Time
	newID  func() string
	logger *log.Logger
}

// Option configures a store.
type Option func(*settings)

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithIDGenerator overrides the id source for new entities.
func WithIDGenerator(newID func() string) Option {
	return func(s *settings) { s.newID = newID }
}

// WithLogger sets the logger stores report through.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) { s.logger = l }
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now, newID: uuid.NewString, logger: log.Discard()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// subscribers fans a change signal out to registered listeners.
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

func (s *subscribers) subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = make(map[int]func())
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}
}

// notify calls every listener. Callers must not hold a store lock.
func (s *subscribers) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

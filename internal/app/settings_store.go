package app

import (
	"context"
	"sync"

	"nappu/internal/domain"
	"nappu/internal/storage"
)

// SettingsStore holds the user preferences document.
type SettingsStore struct {
	store *storage.Store
	subs  subscribers

	mu       sync.Mutex
	settings domain.Settings
	lastErr  error
}

// NewSettingsStore creates a store holding the default settings.
func NewSettingsStore(st *storage.Store) *SettingsStore {
	return &SettingsStore{store: st, settings: domain.DefaultSettings()}
}

// Load reads the persisted settings, falling back to the defaults.
func (s *SettingsStore) Load(ctx context.Context) {
	loaded := domain.DefaultSettings()
	found, err := s.store.Get(ctx, storage.KeySettings, &loaded)
	if err != nil || !found {
		loaded = domain.DefaultSettings()
	}

	s.mu.Lock()
	s.settings = loaded
	s.lastErr = err
	s.mu.Unlock()
	s.subs.notify()
}

// Get returns the current settings.
func (s *SettingsStore) Get() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Save validates and persists next.
func (s *SettingsStore) Save(ctx context.Context, next domain.Settings) error {
	if err := next.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.store.Set(ctx, storage.KeySettings, next); err != nil {
		s.lastErr = err
		s.mu.Unlock()
		return err
	}
	s.settings = next
	s.lastErr = nil
	s.mu.Unlock()

	s.subs.notify()
	return nil
}

// Subscribe registers fn to run after every change.
func (s *SettingsStore) Subscribe(fn func()) func() {
	return s.subs.subscribe(fn)
}

// LastErr returns the error of the most recent failed operation.
func (s *SettingsStore) LastErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

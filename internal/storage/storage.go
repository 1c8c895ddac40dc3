// Package storage is the JSON document layer over a raw key-value backend.
// Reads never fail the caller: missing or unreadable documents come back as
// "not found" plus a ReadError for the caller to record. Writes surface a
// WriteError that callers must treat as fatal to the triggering operation.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"nappu/internal/domain"
	"nappu/internal/log"
)

// Persisted document keys.
const (
	KeyBabies         = "babies"
	KeyFeedingRecords = "feeding_records"
	KeyDiaperRecords  = "diaper_records"
	KeyCurrentBabyID  = "current_baby_id"
	KeySettings       = "settings"
)

var (
	// ErrReadFailed matches every ReadError.
	ErrReadFailed = errors.New("storage read failed")
	// ErrWriteFailed matches every WriteError.
	ErrWriteFailed = errors.New("storage write failed")
)

// ReadError reports a document that could not be read or decoded.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrReadFailed) succeed.
func (e *ReadError) Is(target error) bool { return target == ErrReadFailed }

// WriteError reports a failed set or remove of Key.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrWriteFailed) succeed.
func (e *WriteError) Is(target error) bool { return target == ErrWriteFailed }

// Store reads and writes JSON documents under an optional key namespace.
type Store struct {
	backend   domain.KVBackend
	namespace string
	logger    *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithNamespace prefixes every key with ns and a colon.
func WithNamespace(ns string) Option {
	return func(s *Store) { s.namespace = ns }
}

// WithLogger sets the logger used for swallowed read failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l.WithComponent(log.ComponentStorage) }
}

// New creates a Store over backend.
func New(backend domain.KVBackend, opts ...Option) *Store {
	s := &Store{backend: backend, logger: log.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(k string) string {
	if s.namespace == "" {
		return k
	}
	return s.namespace + ":" + k
}

// Get decodes the document at key into dst. It returns found=false with a
// nil error for a missing key, and found=false with a *ReadError when the
// backend fails or the document is not valid JSON for dst.
func (s *Store) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.backend.Read(ctx, s.key(key))
	if err != nil {
		s.logger.WarnContext(ctx, "read failed", log.FieldKey, key, log.FieldError, err)
		return false, &ReadError{Key: key, Err: err}
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.WarnContext(ctx, "decode failed", log.FieldKey, key, log.FieldError, err)
		return false, &ReadError{Key: key, Err: err}
	}
	return true, nil
}

// Set encodes value as JSON and writes it at key.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	if err := s.backend.Write(ctx, s.key(key), raw); err != nil {
		s.logger.ErrorContext(ctx, "write failed", log.FieldKey, key, log.FieldError, err)
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, s.key(key)); err != nil {
		s.logger.ErrorContext(ctx, "remove failed", log.FieldKey, key, log.FieldError, err)
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

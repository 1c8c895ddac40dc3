package app

import (
	"context"
	"sync"

	"nappu/internal/domain"
	"nappu/internal/log"
	"nappu/internal/storage"
)

// recordStore is the shared CRUD core of the feeding and diaper stores. The
// in-memory list only changes after the persisted write succeeds.
type recordStore[T domain.Record] struct {
	store  *storage.Store
	key    string
	kind   string
	clone  func(T) T
	logger *log.Logger
	subs   subscribers

	mu      sync.Mutex
	records []T
	lastErr error
}

// clone deep-copies a record so callers never share pointer fields with
// the stored list.
func newRecordStore[T domain.Record](st *storage.Store, key, kind string, clone func(T) T, logger *log.Logger) *recordStore[T] {
	return &recordStore[T]{
		store:  st,
		key:    key,
		kind:   kind,
		clone:  clone,
		logger: logger,
	}
}

func (s *recordStore[T]) load(ctx context.Context) {
	var stored []T
	_, err := s.store.Get(ctx, s.key, &stored)

	s.mu.Lock()
	if err != nil {
		stored = nil
		s.logger.WarnContext(ctx, "load failed, starting empty", log.FieldOperation, log.OpLoad, log.FieldError, err)
	}
	if stored == nil {
		stored = []T{}
	}
	s.records = stored
	s.lastErr = err
	s.mu.Unlock()

	s.subs.notify()
}

func (s *recordStore[T]) add(ctx context.Context, rec T) (T, error) {
	rec = s.clone(rec)

	s.mu.Lock()
	next := make([]T, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = append(next, rec)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		var zero T
		return zero, err
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "record added", log.FieldOperation, log.OpCreate,
		log.FieldRecordID, rec.RecordID(), log.FieldBabyID, rec.Owner())
	s.subs.notify()
	return s.clone(rec), nil
}

func (s *recordStore[T]) update(ctx context.Context, id string, apply func(T) T) (T, error) {
	var zero T

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		err := domain.NotFound(s.kind, id)
		s.lastErr = err
		s.mu.Unlock()
		return zero, err
	}
	next := make([]T, len(s.records))
	copy(next, s.records)
	next[idx] = apply(next[idx])
	updated := s.clone(next[idx])
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return zero, err
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "record updated", log.FieldOperation, log.OpUpdate, log.FieldRecordID, id)
	s.subs.notify()
	return updated, nil
}

// remove drops the record with id. An absent id still rewrites the list.
func (s *recordStore[T]) remove(ctx context.Context, id string) error {
	_, err := s.removeWhere(ctx, func(r T) bool { return r.RecordID() == id })
	if err == nil {
		s.logger.InfoContext(ctx, "record deleted", log.FieldOperation, log.OpDelete, log.FieldRecordID, id)
	}
	return err
}

// removeOwnedBy drops every record of babyID and reports how many went.
func (s *recordStore[T]) removeOwnedBy(ctx context.Context, babyID string) (int, error) {
	return s.removeWhere(ctx, func(r T) bool { return r.Owner() == babyID })
}

func (s *recordStore[T]) removeWhere(ctx context.Context, drop func(T) bool) (int, error) {
	s.mu.Lock()
	next := make([]T, 0, len(s.records))
	for _, r := range s.records {
		if !drop(r) {
			next = append(next, r)
		}
	}
	removed := len(s.records) - len(next)
	if err := s.commit(ctx, next); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	s.mu.Unlock()

	s.subs.notify()
	return removed, nil
}

// commit persists next and, on success, installs it. Caller holds mu.
func (s *recordStore[T]) commit(ctx context.Context, next []T) error {
	if err := s.store.Set(ctx, s.key, next); err != nil {
		s.lastErr = err
		return err
	}
	s.records = next
	s.lastErr = nil
	return nil
}

func (s *recordStore[T]) indexOf(id string) int {
	for i, r := range s.records {
		if r.RecordID() == id {
			return i
		}
	}
	return -1
}

func (s *recordStore[T]) get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.clone(s.records[idx]), true
	}
	var zero T
	return zero, false
}

func (s *recordStore[T]) list() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.records))
	for i, r := range s.records {
		out[i] = s.clone(r)
	}
	return out
}

func (s *recordStore[T]) lastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *recordStore[T]) clearError() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

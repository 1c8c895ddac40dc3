package app

import (
	"context"
	"time"

	"nappu/internal/domain"
	"nappu/internal/log"
	"nappu/internal/storage"
)

// DiaperStore owns the diaper record collection and its persisted key.
type DiaperStore struct {
	rs    *recordStore[domain.DiaperRecord]
	now   func() time.Time
	newID func() string
}

// NewDiaperStore creates an empty DiaperStore; call Load to populate it.
func NewDiaperStore(st *storage.Store, opts ...Option) *DiaperStore {
	cfg := newSettings(opts)
	return &DiaperStore{
		rs: newRecordStore[domain.DiaperRecord](st, storage.KeyDiaperRecords, "diaper record", domain.DiaperRecord.Clone,
			cfg.logger.WithComponent(log.ComponentDiapers)),
		now:   cfg.now,
		newID: cfg.newID,
	}
}

// Load replaces the in-memory list with the persisted one. Unreadable data
// yields an empty list and sets LastErr.
func (s *DiaperStore) Load(ctx context.Context) {
	s.rs.load(ctx)
}

// Add stores a new diaper change with a fresh id and createdAt.
func (s *DiaperStore) Add(ctx context.Context, in domain.CreateDiaperInput) (domain.DiaperRecord, error) {
	return s.rs.add(ctx, domain.DiaperRecord{
		ID:              s.newID(),
		BabyID:          in.BabyID,
		Type:            in.Type,
		PoopConsistency: in.PoopConsistency,
		Time:            in.Time,
		Note:            in.Note,
		CreatedAt:       s.now(),
	})
}

// Update merges the non-nil fields of in into the record with id.
func (s *DiaperStore) Update(ctx context.Context, id string, in domain.UpdateDiaperInput) (domain.DiaperRecord, error) {
	return s.rs.update(ctx, id, in.Apply)
}

// Delete removes the record with id.
func (s *DiaperStore) Delete(ctx context.Context, id string) error {
	return s.rs.remove(ctx, id)
}

// List returns a copy of every record in storage order.
func (s *DiaperStore) List() []domain.DiaperRecord {
	return s.rs.list()
}

// Get returns the record with id.
func (s *DiaperStore) Get(id string) (domain.DiaperRecord, bool) {
	return s.rs.get(id)
}

// ForBaby returns the diaper changes of babyID, newest first.
func (s *DiaperStore) ForBaby(babyID string) []domain.DiaperRecord {
	return domain.ForBaby(s.rs.list(), babyID)
}

// OnDay returns the diaper changes of babyID on the local date of day.
func (s *DiaperStore) OnDay(babyID string, day time.Time) []domain.DiaperRecord {
	return domain.OnDay(s.rs.list(), babyID, day)
}

// Today returns today's diaper changes of babyID.
func (s *DiaperStore) Today(babyID string) []domain.DiaperRecord {
	return domain.Today(s.rs.list(), babyID, s.now())
}

// Last returns the most recent diaper change of babyID.
func (s *DiaperStore) Last(babyID string) (domain.DiaperRecord, bool) {
	return domain.Latest(s.rs.list(), babyID)
}

// Subscribe registers fn to run after every change. The returned func
// removes it.
func (s *DiaperStore) Subscribe(fn func()) func() {
	return s.rs.subs.subscribe(fn)
}

// LastErr returns the error of the most recent failed operation, or nil
// once an operation succeeds.
func (s *DiaperStore) LastErr() error { return s.rs.lastError() }

// ClearError resets LastErr.
func (s *DiaperStore) ClearError() { s.rs.clearError() }

package app

import (
	"context"
	"time"

	"nappu/internal/domain"
	"nappu/internal/log"
	"nappu/internal/storage"
)

// FeedingStore owns the feeding record collection and its persisted key.
type FeedingStore struct {
	rs    *recordStore[domain.FeedingRecord]
	now   func() time.Time
	newID func() string
}

// NewFeedingStore creates an empty FeedingStore; call Load to populate it.
func NewFeedingStore(st *storage.Store, opts ...Option) *FeedingStore {
	cfg := newSettings(opts)
	return &FeedingStore{
		rs: newRecordStore[domain.FeedingRecord](st, storage.KeyFeedingRecords, "feeding record", domain.FeedingRecord.Clone,
			cfg.logger.WithComponent(log.ComponentFeedings)),
		now:   cfg.now,
		newID: cfg.newID,
	}
}

// Load replaces the in-memory list with the persisted one. Unreadable data
// yields an empty list and sets LastErr.
func (s *FeedingStore) Load(ctx context.Context) {
	s.rs.load(ctx)
}

// Add stores a new feeding with a fresh id and createdAt.
func (s *FeedingStore) Add(ctx context.Context, in domain.CreateFeedingInput) (domain.FeedingRecord, error) {
	return s.rs.add(ctx, domain.FeedingRecord{
		ID:         s.newID(),
		BabyID:     in.BabyID,
		Type:       in.Type,
		Amount:     in.Amount,
		Duration:   in.Duration,
		BreastSide: in.BreastSide,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Note:       in.Note,
		CreatedAt:  s.now(),
	})
}

// Update merges the non-nil fields of in into the record with id.
func (s *FeedingStore) Update(ctx context.Context, id string, in domain.UpdateFeedingInput) (domain.FeedingRecord, error) {
	return s.rs.update(ctx, id, in.Apply)
}

// Delete removes the record with id.
func (s *FeedingStore) Delete(ctx context.Context, id string) error {
	return s.rs.remove(ctx, id)
}

// List returns a copy of every record in storage order.
func (s *FeedingStore) List() []domain.FeedingRecord {
	return s.rs.list()
}

// Get returns the record with id.
func (s *FeedingStore) Get(id string) (domain.FeedingRecord, bool) {
	return s.rs.get(id)
}

// ForBaby returns the feedings of babyID, newest first.
func (s *FeedingStore) ForBaby(babyID string) []domain.FeedingRecord {
	return domain.ForBaby(s.rs.list(), babyID)
}

// OnDay returns the feedings of babyID on the local date of day.
func (s *FeedingStore) OnDay(babyID string, day time.Time) []domain.FeedingRecord {
	return domain.OnDay(s.rs.list(), babyID, day)
}

// Today returns today's feedings of babyID.
func (s *FeedingStore) Today(babyID string) []domain.FeedingRecord {
	return domain.Today(s.rs.list(), babyID, s.now())
}

// Last returns the most recent feeding of babyID.
func (s *FeedingStore) Last(babyID string) (domain.FeedingRecord, bool) {
	return domain.Latest(s.rs.list(), babyID)
}

// Subscribe registers fn to run after every change. The returned func
// removes it.
func (s *FeedingStore) Subscribe(fn func()) func() {
	return s.rs.subs.subscribe(fn)
}

// LastErr returns the error of the most recent failed operation, or nil
// once an operation succeeds.
func (s *FeedingStore) LastErr() error { return s.rs.lastError() }

// ClearError resets LastErr.
func (s *FeedingStore) ClearError() { s.rs.clearError() }

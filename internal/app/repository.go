package app

import (
	"context"
	"fmt"

	"nappu/internal/domain"
	"nappu/internal/log"
	"nappu/internal/storage"
)

// Repository groups the diary stores and performs the one operation that
// spans them: deleting a baby together with its records.
type Repository struct {
	Babies   *BabyRegistry
	Feedings *FeedingStore
	Diapers  *DiaperStore
	Settings *SettingsStore

	logger *log.Logger
}

// NewRepository builds all stores over st.
func NewRepository(st *storage.Store, opts ...Option) *Repository {
	cfg := newSettings(opts)
	return &Repository{
		Babies:   NewBabyRegistry(st, opts...),
		Feedings: NewFeedingStore(st, opts...),
		Diapers:  NewDiaperStore(st, opts...),
		Settings: NewSettingsStore(st),
		logger:   cfg.logger.WithComponent(log.ComponentApp),
	}
}

// Load populates every store from storage.
func (r *Repository) Load(ctx context.Context) {
	r.Babies.Load(ctx)
	r.Feedings.Load(ctx)
	r.Diapers.Load(ctx)
	r.Settings.Load(ctx)
}

// DeleteBaby removes the baby with id and every feeding and diaper record it
// owns. The writes run in order (feedings, diapers, babies, current id) with
// no rollback: a failure stops the sequence, leaving the earlier keys
// updated. Each store's memory always matches what it last persisted.
func (r *Repository) DeleteBaby(ctx context.Context, id string) error {
	feedings, err := r.Feedings.rs.removeOwnedBy(ctx, id)
	if err != nil {
		return r.cascadeFailed(ctx, id, "feedings", err)
	}
	diapers, err := r.Diapers.rs.removeOwnedBy(ctx, id)
	if err != nil {
		return r.cascadeFailed(ctx, id, "diapers", err)
	}
	if err := r.Babies.remove(ctx, id); err != nil {
		return r.cascadeFailed(ctx, id, "babies", err)
	}

	r.logger.InfoContext(ctx, "baby deleted", log.FieldOperation, log.OpCascade,
		log.FieldBabyID, id, "feedings_removed", feedings, "diapers_removed", diapers)
	return nil
}

func (r *Repository) cascadeFailed(ctx context.Context, id, step string, err error) error {
	r.logger.ErrorContext(ctx, "baby delete interrupted", log.FieldOperation, log.OpCascade,
		log.FieldBabyID, id, "step", step, log.FieldError, err)
	return fmt.Errorf("delete baby %s: %s: %w", id, step, err)
}

// Snapshot is a read-only copy of every collection.
type Snapshot struct {
	Babies   []domain.Baby
	Feedings []domain.FeedingRecord
	Diapers  []domain.DiaperRecord
}

// Snapshot copies the three collections, e.g. for export.
func (r *Repository) Snapshot() Snapshot {
	return Snapshot{
		Babies:   r.Babies.List(),
		Feedings: r.Feedings.List(),
		Diapers:  r.Diapers.List(),
	}
}

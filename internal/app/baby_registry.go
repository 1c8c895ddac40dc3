package app

import (
	"context"
	"sync"
	"time"

	"nappu/internal/domain"
	"nappu/internal/log"
	"nappu/internal/storage"
)

// BabyRegistry owns the baby list and the current-baby pointer.
type BabyRegistry struct {
	store  *storage.Store
	now    func() time.Time
	newID  func() string
	logger *log.Logger
	subs   subscribers

	mu        sync.Mutex
	babies    []domain.Baby
	currentID string
	lastErr   error
}

// NewBabyRegistry creates an empty registry; call Load to populate it.
func NewBabyRegistry(st *storage.Store, opts ...Option) *BabyRegistry {
	cfg := newSettings(opts)
	return &BabyRegistry{
		store:  st,
		now:    cfg.now,
		newID:  cfg.newID,
		logger: cfg.logger.WithComponent(log.ComponentBabies),
		babies: []domain.Baby{},
	}
}

// Load reads the persisted babies and current id. Without a stored current
// id the first baby becomes current. Unreadable data yields empty state and
// sets LastErr.
func (r *BabyRegistry) Load(ctx context.Context) {
	var babies []domain.Baby
	_, babiesErr := r.store.Get(ctx, storage.KeyBabies, &babies)
	if babiesErr != nil || babies == nil {
		babies = []domain.Baby{}
	}

	var currentID string
	_, currentErr := r.store.Get(ctx, storage.KeyCurrentBabyID, &currentID)
	if currentErr != nil {
		currentID = ""
	}
	if currentID == "" && len(babies) > 0 {
		currentID = babies[0].ID
	}

	err := babiesErr
	if err == nil {
		err = currentErr
	}
	if err != nil {
		r.logger.WarnContext(ctx, "load failed", log.FieldOperation, log.OpLoad, log.FieldError, err)
	}

	r.mu.Lock()
	r.babies = babies
	r.currentID = currentID
	r.lastErr = err
	r.mu.Unlock()

	r.subs.notify()
}

// Add creates a baby. The first baby added while none is current becomes
// current.
func (r *BabyRegistry) Add(ctx context.Context, in domain.CreateBabyInput) (domain.Baby, error) {
	baby := domain.Baby{
		ID:        r.newID(),
		Name:      in.Name,
		BirthDate: in.BirthDate,
		Gender:    in.Gender,
		Avatar:    in.Avatar,
		CreatedAt: r.now(),
	}

	r.mu.Lock()
	next := make([]domain.Baby, len(r.babies), len(r.babies)+1)
	copy(next, r.babies)
	next = append(next, baby)
	if err := r.persist(ctx, storage.KeyBabies, next); err != nil {
		r.mu.Unlock()
		return domain.Baby{}, err
	}
	r.babies = next

	if r.currentID == "" {
		if err := r.persist(ctx, storage.KeyCurrentBabyID, baby.ID); err != nil {
			r.mu.Unlock()
			return domain.Baby{}, err
		}
		r.currentID = baby.ID
	}
	r.lastErr = nil
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "baby added", log.FieldOperation, log.OpCreate, log.FieldBabyID, baby.ID)
	r.subs.notify()
	return baby, nil
}

// Update merges the non-nil fields of in into the baby with id.
func (r *BabyRegistry) Update(ctx context.Context, id string, in domain.UpdateBabyInput) (domain.Baby, error) {
	r.mu.Lock()
	idx := r.indexOf(id)
	if idx < 0 {
		err := domain.NotFound("baby", id)
		r.lastErr = err
		r.mu.Unlock()
		return domain.Baby{}, err
	}
	next := make([]domain.Baby, len(r.babies))
	copy(next, r.babies)
	next[idx] = in.Apply(next[idx])
	updated := next[idx]
	if err := r.persist(ctx, storage.KeyBabies, next); err != nil {
		r.mu.Unlock()
		return domain.Baby{}, err
	}
	r.babies = next
	r.lastErr = nil
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "baby updated", log.FieldOperation, log.OpUpdate, log.FieldBabyID, id)
	r.subs.notify()
	return updated, nil
}

// SetCurrent selects the baby with id. An unknown id leaves the current
// baby unchanged.
func (r *BabyRegistry) SetCurrent(ctx context.Context, id string) error {
	r.mu.Lock()
	if r.indexOf(id) < 0 {
		err := domain.NotFound("baby", id)
		r.lastErr = err
		r.mu.Unlock()
		return err
	}
	if err := r.persist(ctx, storage.KeyCurrentBabyID, id); err != nil {
		r.mu.Unlock()
		return err
	}
	r.currentID = id
	r.lastErr = nil
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "current baby set", log.FieldOperation, log.OpSetCurrent, log.FieldBabyID, id)
	r.subs.notify()
	return nil
}

// remove drops the baby with id. If it was current, the first remaining
// baby becomes current, or the current key is removed when none remain.
func (r *BabyRegistry) remove(ctx context.Context, id string) error {
	r.mu.Lock()
	next := make([]domain.Baby, 0, len(r.babies))
	for _, b := range r.babies {
		if b.ID != id {
			next = append(next, b)
		}
	}
	if err := r.persist(ctx, storage.KeyBabies, next); err != nil {
		r.mu.Unlock()
		return err
	}
	r.babies = next

	if r.currentID == id {
		if len(next) > 0 {
			if err := r.persist(ctx, storage.KeyCurrentBabyID, next[0].ID); err != nil {
				r.mu.Unlock()
				return err
			}
			r.currentID = next[0].ID
		} else {
			if err := r.store.Remove(ctx, storage.KeyCurrentBabyID); err != nil {
				r.lastErr = err
				r.mu.Unlock()
				return err
			}
			r.currentID = ""
		}
	}
	r.lastErr = nil
	r.mu.Unlock()

	r.subs.notify()
	return nil
}

// persist writes value at key and records a failure in lastErr. Caller
// holds mu.
func (r *BabyRegistry) persist(ctx context.Context, key string, value any) error {
	if err := r.store.Set(ctx, key, value); err != nil {
		r.lastErr = err
		return err
	}
	return nil
}

func (r *BabyRegistry) indexOf(id string) int {
	for i, b := range r.babies {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// List returns a copy of the babies in insertion order.
func (r *BabyRegistry) List() []domain.Baby {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Baby, len(r.babies))
	copy(out, r.babies)
	return out
}

// Get returns the baby with id.
func (r *BabyRegistry) Get(id string) (domain.Baby, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx := r.indexOf(id); idx >= 0 {
		return r.babies[idx], true
	}
	return domain.Baby{}, false
}

// CurrentID returns the current baby id, or "" when none is selected.
func (r *BabyRegistry) CurrentID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentID
}

// Current returns the current baby, if one is selected and still present.
func (r *BabyRegistry) Current() (domain.Baby, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.currentID == "" {
		return domain.Baby{}, false
	}
	if idx := r.indexOf(r.currentID); idx >= 0 {
		return r.babies[idx], true
	}
	return domain.Baby{}, false
}

// Subscribe registers fn to run after every change.
func (r *BabyRegistry) Subscribe(fn func()) func() {
	return r.subs.subscribe(fn)
}

// LastErr returns the error of the most recent failed operation.
func (r *BabyRegistry) LastErr() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// ClearError resets LastErr.
func (r *BabyRegistry) ClearError() {
	r.mu.Lock()
	r.lastErr = nil
	r.mu.Unlock()
}

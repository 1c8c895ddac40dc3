package reminder

import (
	"context"
	"sync"
	"time"

	"nappu/internal/app"
	"nappu/internal/log"
)

// Scheduler keeps at most one pending reminder timer, re-armed whenever the
// feedings, settings or current baby change. It never mutates the diary.
type Scheduler struct {
	repo     *app.Repository
	notifier Notifier
	now      func() time.Time
	logger   *log.Logger

	mu      sync.Mutex
	ctx     context.Context
	timer   *time.Timer
	gen     uint64
	pending *Reminder
	unsubs  []func()
}

// NewScheduler creates a stopped scheduler. A nil now uses time.Now.
func NewScheduler(repo *app.Repository, notifier Notifier, now func() time.Time, logger *log.Logger) *Scheduler {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Scheduler{
		repo:     repo,
		notifier: notifier,
		now:      now,
		logger:   logger.WithComponent(log.ComponentReminder),
	}
}

// Start subscribes to store changes and arms the first timer. Notifications
// run with ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	unsubs := []func(){
		s.repo.Feedings.Subscribe(s.Reschedule),
		s.repo.Settings.Subscribe(s.Reschedule),
		s.repo.Babies.Subscribe(s.Reschedule),
	}

	s.mu.Lock()
	s.unsubs = unsubs
	s.mu.Unlock()
	s.Reschedule()
}

// Stop cancels the pending timer and drops the subscriptions.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.cancelLocked()
	s.mu.Unlock()

	for _, fn := range unsubs {
		fn()
	}
}

// Pending returns the reminder currently armed, if any.
func (s *Scheduler) Pending() (Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Reminder{}, false
	}
	return *s.pending, true
}

// Reschedule cancels any pending reminder and arms a new one from the
// current state.
func (s *Scheduler) Reschedule() {
	settings := s.repo.Settings.Get()
	baby, ok := s.repo.Babies.Current()

	var next *Reminder
	if ok {
		if last, found := s.repo.Feedings.Last(baby.ID); found {
			if at, due := NextTrigger(settings, last.StartTime, s.now()); due {
				next = &Reminder{
					BabyID:          baby.ID,
					BabyName:        baby.Name,
					LastFeed:        last.StartTime,
					DueAt:           at,
					IntervalMinutes: settings.FeedingIntervalMinutes,
				}
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	if next == nil || s.ctx == nil {
		return
	}
	s.pending = next
	r := *next
	gen := s.gen
	s.timer = time.AfterFunc(r.DueAt.Sub(s.now()), func() { s.fire(gen, r) })
	s.logger.DebugContext(s.ctx, "reminder armed", log.FieldBabyID, r.BabyID, "due_at", r.DueAt)
}

func (s *Scheduler) fire(gen uint64, r Reminder) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.pending = nil
	ctx := s.ctx
	s.mu.Unlock()

	if err := s.notifier.Notify(ctx, r); err != nil {
		s.logger.ErrorContext(ctx, "reminder delivery failed", log.FieldBabyID, r.BabyID, log.FieldError, err)
	}
}

// cancelLocked stops the armed timer. Bumping gen turns a callback that
// already started into a no-op.
func (s *Scheduler) cancelLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

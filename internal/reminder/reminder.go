// Package reminder schedules the "time to feed again" notification from the
// reminder settings and the current baby's last feeding.
package reminder

import (
	"context"
	"fmt"
	"time"

	"nappu/internal/domain"
	"nappu/internal/log"
)

// Reminder is one due feeding notification.
type Reminder struct {
	BabyID          string    `json:"babyId"`
	BabyName        string    `json:"babyName"`
	LastFeed        time.Time `json:"lastFeed"`
	DueAt           time.Time `json:"dueAt"`
	IntervalMinutes int       `json:"intervalMinutes"`
}

// Title is the notification headline.
func (r Reminder) Title() string { return "Feeding reminder" }

// Body is the notification text.
func (r Reminder) Body() string {
	return fmt.Sprintf("It has been %d minutes since %s's last feeding.", r.IntervalMinutes, r.BabyName)
}

// Notifier delivers a due reminder.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// NextTrigger returns when the next reminder is due: lastFeed plus the
// configured interval. It reports false when reminders are disabled, there
// is no last feeding, or the trigger is not after now.
func NextTrigger(s domain.Settings, lastFeed, now time.Time) (time.Time, bool) {
	if !s.FeedingIntervalEnabled || s.FeedingIntervalMinutes <= 0 || lastFeed.IsZero() {
		return time.Time{}, false
	}
	at := lastFeed.Add(time.Duration(s.FeedingIntervalMinutes) * time.Minute)
	if !at.After(now) {
		return time.Time{}, false
	}
	return at, true
}

// LogNotifier writes reminders to the log.
type LogNotifier struct {
	Logger *log.Logger
}

// Notify logs r at info level.
func (n LogNotifier) Notify(ctx context.Context, r Reminder) error {
	n.Logger.InfoContext(ctx, r.Title(), "body", r.Body(), log.FieldBabyID, r.BabyID, "due_at", r.DueAt)
	return nil
}

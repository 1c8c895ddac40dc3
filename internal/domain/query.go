package domain

import (
	"sort"
	"time"
)

// Record is implemented by every baby-scoped, time-stamped diary entry.
type Record interface {
	FeedingRecord | DiaperRecord
	RecordID() string
	Owner() string
	At() time.Time
}

// LocalDay is the "YYYY-MM-DD" calendar date of t in loc.
func LocalDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// SortNewestFirst sorts records in place by time descending. Ties keep
// their list order.
func SortNewestFirst[T Record](records []T) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].At().After(records[j].At())
	})
}

// ForBaby returns the records owned by babyID, newest first.
func ForBaby[T Record](records []T, babyID string) []T {
	return filterSorted(records, func(r T) bool { return r.Owner() == babyID })
}

// OnDay returns the records of babyID whose time falls on the local calendar
// date of day, newest first. The date is taken in day's location.
func OnDay[T Record](records []T, babyID string, day time.Time) []T {
	loc := day.Location()
	target := LocalDay(day, loc)
	return filterSorted(records, func(r T) bool {
		return r.Owner() == babyID && LocalDay(r.At(), loc) == target
	})
}

// Today is OnDay for the calendar date of now.
func Today[T Record](records []T, babyID string, now time.Time) []T {
	return OnDay(records, babyID, now)
}

// Latest returns the most recent record of babyID.
func Latest[T Record](records []T, babyID string) (T, bool) {
	owned := ForBaby(records, babyID)
	if len(owned) == 0 {
		var zero T
		return zero, false
	}
	return owned[0], true
}

func filterSorted[T Record](records []T, keep func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	SortNewestFirst(out)
	return out
}

// Between returns the records whose time lies in [from, to), newest first.
func Between[T Record](records []T, from, to time.Time) []T {
	return filterSorted(records, func(r T) bool {
		at := r.At()
		return !at.Before(from) && at.Before(to)
	})
}

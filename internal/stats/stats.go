// Package stats derives summaries and chart series from diary records. All
// functions are pure; callers filter the records to one baby first.
package stats

import (
	"sort"
	"time"

	"nappu/internal/domain"
)

// FeedingStats summarizes a set of feedings.
type FeedingStats struct {
	TotalFeeds    int     `json:"totalFeeds"`
	TotalAmount   float64 `json:"totalAmount"`
	TotalDuration float64 `json:"totalDuration"`
	// AverageInterval is the mean gap in minutes between consecutive feeds.
	AverageInterval float64    `json:"averageInterval"`
	LastFeedTime    *time.Time `json:"lastFeedTime"`
}

// DiaperStats summarizes a set of diaper changes. A "both" change counts
// once towards each of PeeCount and PoopCount.
type DiaperStats struct {
	TotalChanges   int        `json:"totalChanges"`
	PeeCount       int        `json:"peeCount"`
	PoopCount      int        `json:"poopCount"`
	LastChangeTime *time.Time `json:"lastChangeTime"`
}

// DailyStats is one calendar day of activity.
type DailyStats struct {
	Date          string  `json:"date"`
	FeedingCount  int     `json:"feedingCount"`
	TotalAmount   float64 `json:"totalAmount"`
	TotalDuration float64 `json:"totalDuration"`
	DiaperCount   int     `json:"diaperCount"`
	PeeCount      int     `json:"peeCount"`
	PoopCount     int     `json:"poopCount"`
}

// Feeding computes the feeding summary. Missing amounts and durations
// count as zero.
func Feeding(records []domain.FeedingRecord) FeedingStats {
	if len(records) == 0 {
		return FeedingStats{}
	}

	sorted := make([]domain.FeedingRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	st := FeedingStats{TotalFeeds: len(records)}
	for _, r := range records {
		st.TotalAmount += deref(r.Amount)
		st.TotalDuration += deref(r.Duration)
	}

	var total time.Duration
	for i := 1; i < len(sorted); i++ {
		total += sorted[i].StartTime.Sub(sorted[i-1].StartTime)
	}
	if n := len(sorted) - 1; n > 0 {
		st.AverageInterval = total.Minutes() / float64(n)
	}

	last := sorted[len(sorted)-1].StartTime
	st.LastFeedTime = &last
	return st
}

// Diaper computes the diaper summary.
func Diaper(records []domain.DiaperRecord) DiaperStats {
	st := DiaperStats{TotalChanges: len(records)}
	var last time.Time
	for _, r := range records {
		if r.Type.HasPee() {
			st.PeeCount++
		}
		if r.Type.HasPoop() {
			st.PoopCount++
		}
		if st.LastChangeTime == nil || r.Time.After(last) {
			last = r.Time
			st.LastChangeTime = &last
		}
	}
	return st
}

// DailyFeeding buckets feedings by local date in loc, newest date first.
func DailyFeeding(records []domain.FeedingRecord, loc *time.Location) []DailyStats {
	days := newDayBuckets()
	for _, r := range records {
		d := days.get(domain.LocalDay(r.StartTime, loc))
		d.FeedingCount++
		d.TotalAmount += deref(r.Amount)
		d.TotalDuration += deref(r.Duration)
	}
	return days.sorted()
}

// DailyDiaper buckets diaper changes by local date in loc, newest date first.
func DailyDiaper(records []domain.DiaperRecord, loc *time.Location) []DailyStats {
	days := newDayBuckets()
	for _, r := range records {
		addDiaper(days.get(domain.LocalDay(r.Time, loc)), r)
	}
	return days.sorted()
}

// Combined merges the daily feeding and diaper breakdowns into one bucket
// per date.
func Combined(feedings []domain.FeedingRecord, diapers []domain.DiaperRecord, loc *time.Location) []DailyStats {
	days := newDayBuckets()
	for _, f := range DailyFeeding(feedings, loc) {
		d := days.get(f.Date)
		d.FeedingCount = f.FeedingCount
		d.TotalAmount = f.TotalAmount
		d.TotalDuration = f.TotalDuration
	}
	for _, r := range diapers {
		addDiaper(days.get(domain.LocalDay(r.Time, loc)), r)
	}
	return days.sorted()
}

func addDiaper(d *DailyStats, r domain.DiaperRecord) {
	d.DiaperCount++
	if r.Type.HasPee() {
		d.PeeCount++
	}
	if r.Type.HasPoop() {
		d.PoopCount++
	}
}

type dayBuckets map[string]*DailyStats

func newDayBuckets() dayBuckets { return dayBuckets{} }

func (b dayBuckets) get(date string) *DailyStats {
	d, ok := b[date]
	if !ok {
		d = &DailyStats{Date: date}
		b[date] = d
	}
	return d
}

// sorted returns the buckets by date descending. ISO dates sort
// lexically.
func (b dayBuckets) sorted() []DailyStats {
	out := make([]DailyStats, 0, len(b))
	for _, d := range b {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

package stats

import (
	"testing"
	"time"

	"nappu/internal/domain"
)

func f64(v float64) *float64 { return &v }

func TestFeeding_Empty(t *testing.T) {
	got := Feeding(nil)
	if got.TotalFeeds != 0 || got.TotalAmount != 0 || got.TotalDuration != 0 ||
		got.AverageInterval != 0 || got.LastFeedTime != nil {
		t.Fatalf("expected zero summary, got %+v", got)
	}
}

func TestFeeding_Summary(t *testing.T) {
	base := time.Date(2026, 2, 8, 6, 0, 0, 0, time.UTC)
	// Deliberately unsorted; the middle record has no amount.
	records := []domain.FeedingRecord{
		{ID: "c", StartTime: base.Add(90 * time.Minute), Amount: f64(100)},
		{ID: "a", StartTime: base, Amount: f64(60), Duration: f64(15)},
		{ID: "b", StartTime: base.Add(30 * time.Minute), Duration: f64(10)},
	}

	got := Feeding(records)
	if got.TotalFeeds != 3 {
		t.Errorf("TotalFeeds = %d, want 3", got.TotalFeeds)
	}
	if got.TotalAmount != 160 {
		t.Errorf("TotalAmount = %v, want 160", got.TotalAmount)
	}
	if got.TotalDuration != 25 {
		t.Errorf("TotalDuration = %v, want 25", got.TotalDuration)
	}
	if got.AverageInterval != 45 {
		t.Errorf("AverageInterval = %v, want 45", got.AverageInterval)
	}
	if got.LastFeedTime == nil || !got.LastFeedTime.Equal(base.Add(90*time.Minute)) {
		t.Errorf("LastFeedTime = %v", got.LastFeedTime)
	}
}

func TestFeeding_SingleRecordHasNoInterval(t *testing.T) {
	got := Feeding([]domain.FeedingRecord{{StartTime: time.Now()}})
	if got.TotalFeeds != 1 || got.AverageInterval != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestDiaper(t *testing.T) {
	base := time.Date(2026, 2, 8, 6, 0, 0, 0, time.UTC)
	got := Diaper([]domain.DiaperRecord{
		{Type: domain.DiaperPee, Time: base},
		{Type: domain.DiaperPoop, Time: base.Add(2 * time.Hour)},
		{Type: domain.DiaperBoth, Time: base.Add(time.Hour)},
	})
	if got.TotalChanges != 3 || got.PeeCount != 2 || got.PoopCount != 2 {
		t.Fatalf("got %+v, want 3 changes, 2 pee, 2 poop", got)
	}
	if got.LastChangeTime == nil || !got.LastChangeTime.Equal(base.Add(2*time.Hour)) {
		t.Fatalf("LastChangeTime = %v", got.LastChangeTime)
	}

	if empty := Diaper(nil); empty != (DiaperStats{}) {
		t.Fatalf("expected zero summary, got %+v", empty)
	}
}

func TestDailyFeeding_MidnightSplit(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	records := []domain.FeedingRecord{
		{StartTime: time.Date(2026, 2, 7, 23, 59, 0, 0, loc), Amount: f64(80)},
		{StartTime: time.Date(2026, 2, 8, 0, 1, 0, 0, loc), Amount: f64(90)},
		{StartTime: time.Date(2026, 2, 8, 3, 0, 0, 0, loc)},
	}

	got := DailyFeeding(records, loc)
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %+v", got)
	}
	if got[0].Date != "2026-02-08" || got[0].FeedingCount != 2 || got[0].TotalAmount != 90 {
		t.Errorf("newest bucket = %+v", got[0])
	}
	if got[1].Date != "2026-02-07" || got[1].FeedingCount != 1 || got[1].TotalAmount != 80 {
		t.Errorf("older bucket = %+v", got[1])
	}
}

func TestDailyDiaperAndCombined(t *testing.T) {
	loc := time.UTC
	day := func(d, h int) time.Time { return time.Date(2026, 2, d, h, 0, 0, 0, loc) }
	diapers := []domain.DiaperRecord{
		{Type: domain.DiaperBoth, Time: day(1, 8)},
		{Type: domain.DiaperPee, Time: day(1, 9)},
		{Type: domain.DiaperPoop, Time: day(3, 9)},
	}
	feedings := []domain.FeedingRecord{
		{StartTime: day(1, 7), Duration: f64(12)},
		{StartTime: day(2, 7), Amount: f64(50)},
	}

	daily := DailyDiaper(diapers, loc)
	if len(daily) != 2 || daily[0].Date != "2026-02-03" || daily[1].PeeCount != 2 || daily[1].PoopCount != 1 {
		t.Fatalf("DailyDiaper = %+v", daily)
	}

	got := Combined(feedings, diapers, loc)
	want := []DailyStats{
		{Date: "2026-02-03", DiaperCount: 1, PoopCount: 1},
		{Date: "2026-02-02", FeedingCount: 1, TotalAmount: 50},
		{Date: "2026-02-01", FeedingCount: 1, TotalDuration: 12, DiaperCount: 2, PeeCount: 2, PoopCount: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("Combined = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

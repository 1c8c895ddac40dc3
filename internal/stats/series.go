package stats

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	"nappu/internal/domain"
)

// DayCount is one bar of a chart series.
type DayCount struct {
	Label string `json:"label"`
	Date  string `json:"date"`
	Count int    `json:"count"`
}

var (
	weekdayMatcher = language.NewMatcher([]language.Tag{
		language.SimplifiedChinese,
		language.English,
	})
	// weekdayLabels is indexed by matcher result, then Monday-first.
	weekdayLabels = [][7]string{
		{"周一", "周二", "周三", "周四", "周五", "周六", "周日"},
		{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	}
)

// WeekdayLabels returns the Monday-first weekday names for lang. Unsupported
// languages get Simplified Chinese.
func WeekdayLabels(lang language.Tag) [7]string {
	_, idx, conf := weekdayMatcher.Match(lang)
	if conf == language.No {
		idx = 0
	}
	return weekdayLabels[idx]
}

// WeeklyFeeding counts feedings for each day of the Monday-start week
// containing now. It always returns seven entries.
func WeeklyFeeding(records []domain.FeedingRecord, now time.Time, lang language.Tag) []DayCount {
	return weekly(countByDay(records, now.Location()), now, lang)
}

// WeeklyDiaper counts diaper changes for each day of the week containing now.
func WeeklyDiaper(records []domain.DiaperRecord, now time.Time, lang language.Tag) []DayCount {
	return weekly(countByDay(records, now.Location()), now, lang)
}

// MonthlyFeeding counts feedings for each day of the calendar month
// containing now, labelled "M/D".
func MonthlyFeeding(records []domain.FeedingRecord, now time.Time) []DayCount {
	return monthly(countByDay(records, now.Location()), now)
}

// MonthlyDiaper counts diaper changes for each day of the month containing now.
func MonthlyDiaper(records []domain.DiaperRecord, now time.Time) []DayCount {
	return monthly(countByDay(records, now.Location()), now)
}

// WeekStart is local midnight of the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

func weekly(counts map[string]int, now time.Time, lang language.Tag) []DayCount {
	labels := WeekdayLabels(lang)
	start := WeekStart(now)
	out := make([]DayCount, 7)
	for i := range out {
		day := start.AddDate(0, 0, i)
		date := day.Format("2006-01-02")
		out[i] = DayCount{Label: labels[i], Date: date, Count: counts[date]}
	}
	return out
}

func monthly(counts map[string]int, now time.Time) []DayCount {
	y, m, _ := now.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	n := first.AddDate(0, 1, -1).Day()
	out := make([]DayCount, n)
	for i := range out {
		day := first.AddDate(0, 0, i)
		date := day.Format("2006-01-02")
		out[i] = DayCount{
			Label: fmt.Sprintf("%d/%d", int(day.Month()), day.Day()),
			Date:  date,
			Count: counts[date],
		}
	}
	return out
}

func countByDay[T domain.Record](records []T, loc *time.Location) map[string]int {
	counts := make(map[string]int, len(records))
	for _, r := range records {
		counts[domain.LocalDay(r.At(), loc)]++
	}
	return counts
}

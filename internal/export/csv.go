package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

var (
	babyColumns    = []string{"ID", "Name", "Birth date", "Gender", "Created at"}
	feedingColumns = []string{"ID", "Baby ID", "Type", "Amount (ml)", "Duration (min)", "Breast side", "Start time", "End time", "Note", "Created at"}
	diaperColumns  = []string{"ID", "Baby ID", "Type", "Poop consistency", "Time", "Note", "Created at"}
)

// ToCSV renders d as a sectioned sheet: a title block, then babies,
// feedings and diaper changes, each under its own header row. Optional
// fields are left blank.
func ToCSV(d Data) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Nappu Diary export"},
		{"Exported at: " + d.ExportedAt.Format("2006-01-02 15:04")},
		{},
		{"=== Babies ==="},
		babyColumns,
	}
	for _, b := range d.Babies {
		rows = append(rows, []string{b.ID, b.Name, b.BirthDate, string(b.Gender), stamp(b.CreatedAt)})
	}

	rows = append(rows, []string{}, []string{"=== Feedings ==="}, feedingColumns)
	for _, r := range d.FeedingRecords {
		end := ""
		if r.EndTime != nil {
			end = stamp(*r.EndTime)
		}
		rows = append(rows, []string{
			r.ID, r.BabyID, string(r.Type), number(r.Amount), number(r.Duration),
			string(r.BreastSide), stamp(r.StartTime), end, r.Note, stamp(r.CreatedAt),
		})
	}

	rows = append(rows, []string{}, []string{"=== Diaper changes ==="}, diaperColumns)
	for _, r := range d.DiaperRecords {
		rows = append(rows, []string{
			r.ID, r.BabyID, string(r.Type), string(r.PoopConsistency),
			stamp(r.Time), r.Note, stamp(r.CreatedAt),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("encode csv export: %w", err)
	}
	return buf.Bytes(), nil
}

func stamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

func number(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

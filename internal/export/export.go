// Package export serializes the diary for download or upload.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"nappu/internal/domain"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a query value to a Format. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, s)
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json"
}

// Data is the complete exported diary.
type Data struct {
	Babies         []domain.Baby          `json:"babies"`
	FeedingRecords []domain.FeedingRecord `json:"feedingRecords"`
	DiaperRecords  []domain.DiaperRecord  `json:"diaperRecords"`
	ExportedAt     time.Time              `json:"exportedAt"`
}

// Prepare bundles the collections stamped with now. Nil lists become empty
// so the JSON always carries arrays.
func Prepare(babies []domain.Baby, feedings []domain.FeedingRecord, diapers []domain.DiaperRecord, now time.Time) Data {
	if babies == nil {
		babies = []domain.Baby{}
	}
	if feedings == nil {
		feedings = []domain.FeedingRecord{}
	}
	if diapers == nil {
		diapers = []domain.DiaperRecord{}
	}
	return Data{Babies: babies, FeedingRecords: feedings, DiaperRecords: diapers, ExportedAt: now}
}

// ToJSON encodes d with two-space indentation.
func ToJSON(d Data) ([]byte, error) {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return b, nil
}

// FromJSON decodes an export produced by ToJSON.
func FromJSON(b []byte) (Data, error) {
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return Data{}, fmt.Errorf("decode export: %w", err)
	}
	return d, nil
}

// Encode renders d in format f.
func Encode(d Data, f Format) ([]byte, error) {
	if f == FormatCSV {
		return ToCSV(d)
	}
	return ToJSON(d)
}

var fileStamp = strings.NewReplacer(":", "-", ".", "-")

// FileName is the download name for an export taken at now, e.g.
// nappu-diary-export-2026-02-08T09-30-00-000Z.json.
func FileName(f Format, now time.Time) string {
	ts := fileStamp.Replace(now.UTC().Format("2006-01-02T15:04:05.000Z"))
	return fmt.Sprintf("nappu-diary-export-%s.%s", ts, f)
}

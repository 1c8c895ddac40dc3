package domain

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	start := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	before := start.Add(-time.Minute)
	neg := -1.0
	badGender := Gender("other")
	empty := ""

	tests := []struct {
		name    string
		v       interface{ Validate() error }
		wantErr bool
	}{
		{"baby ok", CreateBabyInput{Name: "Mei", BirthDate: "2025-12-01"}, false},
		{"baby missing name", CreateBabyInput{Name: "  ", BirthDate: "2025-12-01"}, true},
		{"baby bad date", CreateBabyInput{Name: "Mei", BirthDate: "12/01/2025"}, true},
		{"baby bad gender", CreateBabyInput{Name: "Mei", BirthDate: "2025-12-01", Gender: badGender}, true},
		{"baby update empty name", UpdateBabyInput{Name: &empty}, true},
		{"baby update nothing", UpdateBabyInput{}, false},
		{"feeding ok", CreateFeedingInput{BabyID: "b", Type: FeedingFormula, StartTime: start}, false},
		{"feeding missing baby", CreateFeedingInput{Type: FeedingFormula, StartTime: start}, true},
		{"feeding bad type", CreateFeedingInput{BabyID: "b", Type: "juice", StartTime: start}, true},
		{"feeding no start", CreateFeedingInput{BabyID: "b", Type: FeedingFormula}, true},
		{"feeding negative amount", CreateFeedingInput{BabyID: "b", Type: FeedingFormula, StartTime: start, Amount: &neg}, true},
		{"feeding end before start", CreateFeedingInput{BabyID: "b", Type: FeedingFormula, StartTime: start, EndTime: &before}, true},
		{"feeding update negative duration", UpdateFeedingInput{Duration: &neg}, true},
		{"diaper ok", CreateDiaperInput{BabyID: "b", Type: DiaperPoop, PoopConsistency: PoopHard, Time: start}, false},
		{"diaper bad consistency", CreateDiaperInput{BabyID: "b", Type: DiaperPoop, PoopConsistency: "green", Time: start}, true},
		{"diaper no time", CreateDiaperInput{BabyID: "b", Type: DiaperPee}, true},
		{"settings ok", Settings{FeedingIntervalMinutes: 90}, false},
		{"settings zero interval", Settings{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNotFoundError(t *testing.T) {
	err := NotFound("baby", "b1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected errors.Is ErrNotFound")
	}
	if err.Error() != `baby "b1" not found` {
		t.Fatalf("message = %q", err.Error())
	}
}

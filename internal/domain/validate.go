package domain

import (
	"fmt"
	"strings"
	"time"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Validate checks a new baby profile.
func (in CreateBabyInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name is required")
	}
	if _, err := time.Parse("2006-01-02", in.BirthDate); err != nil {
		return invalid("birthDate must be YYYY-MM-DD")
	}
	if !in.Gender.Valid() {
		return invalid("unknown gender %q", in.Gender)
	}
	return nil
}

// Validate checks the fields present in a baby update.
func (in UpdateBabyInput) Validate() error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return invalid("name must not be empty")
	}
	if in.BirthDate != nil {
		if _, err := time.Parse("2006-01-02", *in.BirthDate); err != nil {
			return invalid("birthDate must be YYYY-MM-DD")
		}
	}
	if in.Gender != nil && !in.Gender.Valid() {
		return invalid("unknown gender %q", *in.Gender)
	}
	return nil
}

// Validate checks a new feeding. Amount and duration must not be negative.
func (in CreateFeedingInput) Validate() error {
	if strings.TrimSpace(in.BabyID) == "" {
		return invalid("babyId is required")
	}
	if !in.Type.Valid() {
		return invalid("unknown feeding type %q", in.Type)
	}
	if in.StartTime.IsZero() {
		return invalid("startTime is required")
	}
	return validateFeedingFields(in.Amount, in.Duration, in.BreastSide, in.StartTime, in.EndTime)
}

// Validate checks the fields present in a feeding update.
func (in UpdateFeedingInput) Validate() error {
	if in.Type != nil && !in.Type.Valid() {
		return invalid("unknown feeding type %q", *in.Type)
	}
	var side BreastSide
	if in.BreastSide != nil {
		side = *in.BreastSide
	}
	var start time.Time
	if in.StartTime != nil {
		start = *in.StartTime
	}
	return validateFeedingFields(in.Amount, in.Duration, side, start, in.EndTime)
}

func validateFeedingFields(amount, duration *float64, side BreastSide, start time.Time, end *time.Time) error {
	if amount != nil && *amount < 0 {
		return invalid("amount must not be negative")
	}
	if duration != nil && *duration < 0 {
		return invalid("duration must not be negative")
	}
	if !side.Valid() {
		return invalid("unknown breast side %q", side)
	}
	if end != nil && !start.IsZero() && end.Before(start) {
		return invalid("endTime must not be before startTime")
	}
	return nil
}

// Validate checks a new diaper change.
func (in CreateDiaperInput) Validate() error {
	if strings.TrimSpace(in.BabyID) == "" {
		return invalid("babyId is required")
	}
	if !in.Type.Valid() {
		return invalid("unknown diaper type %q", in.Type)
	}
	if !in.PoopConsistency.Valid() {
		return invalid("unknown poop consistency %q", in.PoopConsistency)
	}
	if in.Time.IsZero() {
		return invalid("time is required")
	}
	return nil
}

// Validate checks the fields present in a diaper update.
func (in UpdateDiaperInput) Validate() error {
	if in.Type != nil && !in.Type.Valid() {
		return invalid("unknown diaper type %q", *in.Type)
	}
	if in.PoopConsistency != nil && !in.PoopConsistency.Valid() {
		return invalid("unknown poop consistency %q", *in.PoopConsistency)
	}
	return nil
}

// Validate checks reminder settings.
func (s Settings) Validate() error {
	if s.FeedingIntervalMinutes <= 0 {
		return invalid("feedingIntervalMinutes must be positive")
	}
	return nil
}

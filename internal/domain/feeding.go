package domain

import "time"

// FeedingType distinguishes how a feeding was given.
type FeedingType string

const (
	FeedingBreastDirect FeedingType = "breast_direct"
	FeedingBreastBottle FeedingType = "breast_bottle"
	FeedingFormula      FeedingType = "formula"
)

// Valid reports whether t is a known feeding type.
func (t FeedingType) Valid() bool {
	switch t {
	case FeedingBreastDirect, FeedingBreastBottle, FeedingFormula:
		return true
	}
	return false
}

// BreastSide records which side a direct breastfeed used.
type BreastSide string

const (
	BreastLeft  BreastSide = "left"
	BreastRight BreastSide = "right"
	BreastBoth  BreastSide = "both"
)

// Valid reports whether s is empty or a known side.
func (s BreastSide) Valid() bool {
	switch s {
	case "", BreastLeft, BreastRight, BreastBoth:
		return true
	}
	return false
}

// FeedingRecord is one logged feeding event. Direct breastfeeds carry
// Duration and BreastSide; the other types carry Amount.
type FeedingRecord struct {
	ID         string      `json:"id"`
	BabyID     string      `json:"babyId"`
	Type       FeedingType `json:"type"`
	Amount     *float64    `json:"amount,omitempty"`
	Duration   *float64    `json:"duration,omitempty"`
	BreastSide BreastSide  `json:"breastSide,omitempty"`
	StartTime  time.Time   `json:"startTime"`
	EndTime    *time.Time  `json:"endTime,omitempty"`
	Note       string      `json:"note,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Clone returns a copy of r that shares no pointers with it.
func (r FeedingRecord) Clone() FeedingRecord {
	r.Amount = clonePtr(r.Amount)
	r.Duration = clonePtr(r.Duration)
	r.EndTime = clonePtr(r.EndTime)
	return r
}

func clonePtr[V any](p *V) *V {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// RecordID implements Record.
func (r FeedingRecord) RecordID() string { return r.ID }

// Owner implements Record.
func (r FeedingRecord) Owner() string { return r.BabyID }

// At implements Record; feedings are ordered by StartTime.
func (r FeedingRecord) At() time.Time { return r.StartTime }

// CreateFeedingInput holds the caller-supplied fields of a new feeding.
type CreateFeedingInput struct {
	BabyID     string      `json:"babyId"`
	Type       FeedingType `json:"type"`
	Amount     *float64    `json:"amount,omitempty"`
	Duration   *float64    `json:"duration,omitempty"`
	BreastSide BreastSide  `json:"breastSide,omitempty"`
	StartTime  time.Time   `json:"startTime"`
	EndTime    *time.Time  `json:"endTime,omitempty"`
	Note       string      `json:"note,omitempty"`
}

// UpdateFeedingInput is a partial update; nil fields are left untouched.
type UpdateFeedingInput struct {
	Type       *FeedingType `json:"type,omitempty"`
	Amount     *float64     `json:"amount,omitempty"`
	Duration   *float64     `json:"duration,omitempty"`
	BreastSide *BreastSide  `json:"breastSide,omitempty"`
	StartTime  *time.Time   `json:"startTime,omitempty"`
	EndTime    *time.Time   `json:"endTime,omitempty"`
	Note       *string      `json:"note,omitempty"`
}

// Apply returns r with the non-nil fields of in merged over it.
func (in UpdateFeedingInput) Apply(r FeedingRecord) FeedingRecord {
	if in.Type != nil {
		r.Type = *in.Type
	}
	if in.Amount != nil {
		v := *in.Amount
		r.Amount = &v
	}
	if in.Duration != nil {
		v := *in.Duration
		r.Duration = &v
	}
	if in.BreastSide != nil {
		r.BreastSide = *in.BreastSide
	}
	if in.StartTime != nil {
		r.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		v := *in.EndTime
		r.EndTime = &v
	}
	if in.Note != nil {
		r.Note = *in.Note
	}
	return r
}

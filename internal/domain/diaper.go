package domain

import "time"

// DiaperType describes the contents of a changed diaper.
type DiaperType string

const (
	DiaperPee  DiaperType = "pee"
	DiaperPoop DiaperType = "poop"
	DiaperBoth DiaperType = "both"
)

// Valid reports whether t is a known diaper type.
func (t DiaperType) Valid() bool {
	return t == DiaperPee || t == DiaperPoop || t == DiaperBoth
}

// HasPee reports whether the change included pee.
func (t DiaperType) HasPee() bool { return t == DiaperPee || t == DiaperBoth }

// HasPoop reports whether the change included poop.
func (t DiaperType) HasPoop() bool { return t == DiaperPoop || t == DiaperBoth }

// PoopConsistency is only meaningful when the type includes poop.
type PoopConsistency string

const (
	PoopNormal PoopConsistency = "normal"
	PoopLoose  PoopConsistency = "loose"
	PoopHard   PoopConsistency = "hard"
	PoopMucus  PoopConsistency = "mucus"
	PoopBloody PoopConsistency = "bloody"
)

// Valid reports whether c is empty or a known consistency.
func (c PoopConsistency) Valid() bool {
	switch c {
	case "", PoopNormal, PoopLoose, PoopHard, PoopMucus, PoopBloody:
		return true
	}
	return false
}

// DiaperRecord is one logged diaper change.
type DiaperRecord struct {
	ID              string          `json:"id"`
	BabyID          string          `json:"babyId"`
	Type            DiaperType      `json:"type"`
	PoopConsistency PoopConsistency `json:"poopConsistency,omitempty"`
	Time            time.Time       `json:"time"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Clone returns a copy of r. DiaperRecord holds no pointers, so a value
// copy suffices.
func (r DiaperRecord) Clone() DiaperRecord { return r }

// RecordID implements Record.
func (r DiaperRecord) RecordID() string { return r.ID }

// Owner implements Record.
func (r DiaperRecord) Owner() string { return r.BabyID }

// At implements Record.
func (r DiaperRecord) At() time.Time { return r.Time }

// CreateDiaperInput holds the caller-supplied fields of a new diaper change.
type CreateDiaperInput struct {
	BabyID          string          `json:"babyId"`
	Type            DiaperType      `json:"type"`
	PoopConsistency PoopConsistency `json:"poopConsistency,omitempty"`
	Time            time.Time       `json:"time"`
	Note            string          `json:"note,omitempty"`
}

// UpdateDiaperInput is a partial update; nil fields are left untouched.
type UpdateDiaperInput struct {
	Type            *DiaperType      `json:"type,omitempty"`
	PoopConsistency *PoopConsistency `json:"poopConsistency,omitempty"`
	Time            *time.Time       `json:"time,omitempty"`
	Note            *string          `json:"note,omitempty"`
}

// Apply returns r with the non-nil fields of in merged over it.
func (in UpdateDiaperInput) Apply(r DiaperRecord) DiaperRecord {
	if in.Type != nil {
		r.Type = *in.Type
	}
	if in.PoopConsistency != nil {
		r.PoopConsistency = *in.PoopConsistency
	}
	if in.Time != nil {
		r.Time = *in.Time
	}
	if in.Note != nil {
		r.Note = *in.Note
	}
	return r
}

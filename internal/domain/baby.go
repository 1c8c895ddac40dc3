// Package domain contains the core diary entities, ports and pure queries.
package domain

import "time"

// Gender of a tracked baby. The zero value means "not given".
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is empty or one of the known genders.
func (g Gender) Valid() bool {
	return g == "" || g == GenderMale || g == GenderFemale
}

// Baby is a tracked child profile and the scope of every record.
type Baby struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birthDate"`
	Gender    Gender    `json:"gender,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateBabyInput holds the caller-supplied fields of a new Baby.
type CreateBabyInput struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	Gender    Gender `json:"gender,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// UpdateBabyInput is a partial update; nil fields are left untouched.
type UpdateBabyInput struct {
	Name      *string `json:"name,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
	Gender    *Gender `json:"gender,omitempty"`
	Avatar    *string `json:"avatar,omitempty"`
}

// Apply returns b with the non-nil fields of in merged over it.
func (in UpdateBabyInput) Apply(b Baby) Baby {
	if in.Name != nil {
		b.Name = *in.Name
	}
	if in.BirthDate != nil {
		b.BirthDate = *in.BirthDate
	}
	if in.Gender != nil {
		b.Gender = *in.Gender
	}
	if in.Avatar != nil {
		b.Avatar = *in.Avatar
	}
	return b
}

package profile

import "time"

// User is the engine's profile record, keyed by normalized email. The email
// never changes; it is the identity every other module scopes data by.
type User struct {
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Occupation       string     `json:"occupation,omitempty"`
	Age              int        `json:"age,omitempty"`
	BirthDate        *time.Time `json:"birth_date,omitempty"`
	LastNameChangeAt *time.Time `json:"last_name_change_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// RegisterInput carries the fields needed to register a profile.
type RegisterInput struct {
	Email      string
	Name       string
	Occupation string
	Age        int
	BirthDate  *time.Time
}

// UpdateInput is a partial profile update. Nil fields stay untouched. Only a
// Name that differs from the stored one is subject to the rename cooldown.
type UpdateInput struct {
	Name       *string
	Occupation *string
	Age        *int
	BirthDate  *time.Time
}

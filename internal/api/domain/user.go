package domain

import "time"

// User is the identity record. ID is assigned at creation and immutable.
type User struct {
	ID           string
	Email        string // unique, used as the login key
	Firstname    string
	Lastname     string
	PasswordHash string // bcrypt encoded, never the raw password
	Roles        []Role // non-empty
	Reset        *ResetChallenge
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ResetChallenge is a pending password-reset challenge. Hash and expiry
// always travel together: a user either has a complete challenge or none,
// which is why they live in one optional struct rather than two loose
// nullable fields.
type ResetChallenge struct {
	CodeHash  string // hex sha256 of the one-time code
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its validity window.
func (c *ResetChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Profile is the public projection of a user. It is what handlers return;
// the password hash never leaves the service layer.
type Profile struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Firstname string   `json:"firstname,omitempty"`
	Lastname  string   `json:"lastname,omitempty"`
	Roles     []string `json:"roles"`
}

// PublicProfile builds the public projection.
func (u User) PublicProfile() Profile {
	return Profile{
		ID:        u.ID,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Roles:     RolesToStrings(u.Roles),
	}
}

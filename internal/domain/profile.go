package domain

import "time"

// User represents an account in the identity system. Users are managed by the
// authentication service; this core only reads them to reach the profile.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the author-facing identity linked one-to-one with a User.
// The article ownership check compares profile IDs.
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Bio       *string   `json:"bio,omitempty"`
	Image     *string   `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

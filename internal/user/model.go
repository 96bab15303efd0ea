package user

import "time"

// User as returned by the API. Read-only on the client side.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          *string   `json:"name,omitempty"`
	PasswordHash  string    `json:"-"` // Never expose password hash in JSON
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"-"`
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Name          *string `json:"name,omitempty"`
	EmailVerified bool    `json:"email_verified"`
}

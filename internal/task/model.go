package task

import "time"

// Task is a user-owned to-do item. The server assigns ID, UserID and timestamps.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DescriptionText returns the description or "" when unset
func (t Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// CreateRequest is the body of a create call
type CreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
}

// Update holds the fields to change. Nil fields are left out of the request
// and keep their current value on the server.
type Update struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether no field is set
func (u Update) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}

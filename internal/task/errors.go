package task

import "errors"

// Validation errors carry the user-facing message
var (
	ErrTitleRequired      = errors.New("Task title is required")
	ErrTitleTooLong       = errors.New("Task title must be at most 255 characters")
	ErrDescriptionTooLong = errors.New("Task description must be at most 1000 characters")
	ErrNoFieldsToUpdate   = errors.New("provide at least one field: title, description or completed")
	ErrNotFound           = errors.New("task not found")
)

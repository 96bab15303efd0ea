package task

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
)

// ValidateTitle trims the title and checks it is present and not too long
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrTitleRequired
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return trimmed, nil
}

// ValidateDescription trims the description and checks its length
func ValidateDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if utf8.RuneCountInString(trimmed) > MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	return trimmed, nil
}

// NormalizeUpdate validates the set fields of u and returns a trimmed copy
func NormalizeUpdate(u Update) (Update, error) {
	if u.IsEmpty() {
		return u, ErrNoFieldsToUpdate
	}
	out := u
	if u.Title != nil {
		title, err := ValidateTitle(*u.Title)
		if err != nil {
			return u, err
		}
		out.Title = &title
	}
	if u.Description != nil {
		desc, err := ValidateDescription(*u.Description)
		if err != nil {
			return u, err
		}
		out.Description = &desc
	}
	return out, nil
}

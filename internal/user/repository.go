package user

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository is an in-memory user store keyed by id, with a unique email index
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
}

func NewRepository() *Repository {
	return &Repository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

// Create stores a new user. Emails are compared case-insensitively.
func (r *Repository) Create(_ context.Context, email, passwordHash string, name *string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(email)
	if _, exists := r.byEmail[key]; exists {
		return nil, ErrDuplicateEmail
	}

	now := time.Now().UTC()
	u := &User{
		ID:            uuid.NewString(),
		Email:         email,
		Name:          name,
		PasswordHash:  passwordHash,
		EmailVerified: false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.byID[u.ID] = u
	r.byEmail[key] = u.ID

	copied := *u
	return &copied, nil
}

// GetByEmail retrieves a user by email
func (r *Repository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r.byID[id]
	return &copied, nil
}

// GetByID retrieves a user by id
func (r *Repository) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

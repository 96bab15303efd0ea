// Package session owns the lifecycle of the bearer token: saved after a
// successful register or login, read before every authenticated request,
// cleared on logout.
package session

import (
	"context"
	"errors"
)

// TokenKey is the fixed store key holding the bearer token
const TokenKey = "access_token"

// Session holds at most one bearer token in a Store
type Session struct {
	store Store
}

func New(store Store) *Session {
	return &Session{store: store}
}

// Token returns the current token, or "" when not authenticated
func (s *Session) Token(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

// Save replaces the stored token
func (s *Session) Save(ctx context.Context, token string) error {
	return s.store.Set(ctx, TokenKey, token)
}

// Clear removes the stored token
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, TokenKey)
}

// Authenticated reports whether a token is stored
func (s *Session) Authenticated(ctx context.Context) (bool, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

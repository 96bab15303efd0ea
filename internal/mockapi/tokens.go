package mockapi

import (
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// TokenClaims represents the claims stored in a PASETO token
type TokenClaims struct {
	UserID    string    `json:"sub"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"exp"`
}

// TokenService issues and verifies PASETO v4.local access tokens
// (symmetric encryption with XChaCha20-Poly1305)
type TokenService struct {
	symmetricKey paseto.V4SymmetricKey
}

// NewTokenService uses key when given, otherwise a random key
func NewTokenService(key []byte) (*TokenService, error) {
	if len(key) == 0 {
		return &TokenService{symmetricKey: paseto.NewV4SymmetricKey()}, nil
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(key))
	}

	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}
	return &TokenService{symmetricKey: symmetricKey}, nil
}

// CreateToken generates a token for the user valid for duration
func (s *TokenService) CreateToken(userID, email string, duration time.Duration) string {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(duration))
	token.SetSubject(userID)
	token.SetString("email", email)

	return token.V4Encrypt(s.symmetricKey, nil)
}

// VerifyToken validates a token, including its expiry, and returns the claims
func (s *TokenService) VerifyToken(tokenStr string) (*TokenClaims, error) {
	parser := paseto.NewParser()

	token, err := parser.ParseV4Local(s.symmetricKey, tokenStr, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := token.GetSubject()
	if err != nil {
		return nil, ErrInvalidToken
	}
	email, err := token.GetString("email")
	if err != nil {
		return nil, ErrInvalidToken
	}
	expiresAt, err := token.GetExpiration()
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{UserID: userID, Email: email, ExpiresAt: expiresAt}, nil
}

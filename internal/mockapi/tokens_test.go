package mockapi

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService(bytes.Repeat([]byte{7}, 32))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	token := svc.CreateToken("user-1", "a@example.com", time.Minute)
	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenExpired(t *testing.T) {
	svc, err := NewTokenService(nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	token := svc.CreateToken("user-1", "a@example.com", -time.Minute)
	if _, err := svc.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenFromOtherKeyRejected(t *testing.T) {
	a, _ := NewTokenService(nil)
	b, _ := NewTokenService(nil)

	if _, err := b.VerifyToken(a.CreateToken("user-1", "a@example.com", time.Minute)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewTokenServiceKeyLength(t *testing.T) {
	if _, err := NewTokenService([]byte("short")); err == nil {
		t.Fatalf("expected error for short key")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := hashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !verifyPassword(hash, "secret") {
		t.Fatalf("expected password to verify")
	}
	if verifyPassword(hash, "wrong") {
		t.Fatalf("expected wrong password to fail")
	}
	if verifyPassword("not-a-hash", "secret") {
		t.Fatalf("expected malformed hash to fail")
	}
}

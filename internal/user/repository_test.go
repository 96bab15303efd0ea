package user

import (
	"context"
	"errors"
	"testing"
)

func TestRepositoryCreateAndLookup(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	name := "Ada"

	created, err := repo.Create(ctx, "Ada@Example.com ", "hash", &name)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.EmailVerified {
		t.Fatalf("unexpected user %+v", created)
	}

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Fatalf("expected same user, got %s", byEmail.ID)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.PasswordHash != "hash" || byID.Name == nil || *byID.Name != "Ada" {
		t.Fatalf("unexpected user %+v", byID)
	}
}

func TestRepositoryDuplicateEmail(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, "a@example.com", "hash", nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, "A@EXAMPLE.COM", "hash", nil); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRepositoryNotFound(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

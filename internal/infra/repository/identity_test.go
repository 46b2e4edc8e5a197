package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/totegamma/twitton/internal/domain"
)

func TestIdentityRepository(t *testing.T) {
	admin := domain.NewIdentity("web.example.com", "example.com", "admin", "PEM", nil)
	other := domain.NewIdentity("web.example.com", "example.com", "bot", "PEM2", nil)
	repo := NewIdentityRepository(admin, other)
	ctx := context.Background()

	got, err := repo.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("get by username failed: %v", err)
	}
	if got.Handle != "admin@example.com" {
		t.Fatalf("unexpected identity %+v", got)
	}

	got, err = repo.GetByResource(ctx, "acct:bot@example.com")
	if err != nil {
		t.Fatalf("get by resource failed: %v", err)
	}
	if got.Username != "bot" {
		t.Fatalf("unexpected identity %+v", got)
	}

	if _, err := repo.GetByUsername(ctx, "ADMIN"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.GetByResource(ctx, "acct:admin@web.example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestIdentityRepositoryEmpty(t *testing.T) {
	repo := NewIdentityRepository()
	if _, err := repo.GetByUsername(context.Background(), "admin"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

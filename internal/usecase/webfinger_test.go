package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/totegamma/twitton"
	"github.com/totegamma/twitton/internal/domain"
)

func TestWebfingerUsecaseResolve(t *testing.T) {
	repo := &mockIdentityRepo{identity: testIdentity(nil)}
	uc := NewWebfingerUsecase(repo, nil)

	doc, err := uc.Resolve(context.Background(), "acct:admin@example.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	profile := "https://web.example.com/user/admin"
	if doc.Subject != "acct:admin@example.com" {
		t.Fatalf("unexpected subject %s", doc.Subject)
	}
	if len(doc.Aliases) != 1 || doc.Aliases[0] != profile {
		t.Fatalf("unexpected aliases %v", doc.Aliases)
	}
	if len(doc.Links) != 3 {
		t.Fatalf("expected 3 links got %d", len(doc.Links))
	}

	wantRels := []string{twitton.RelProfilePage, twitton.RelSelf, twitton.RelSubscribe}
	for i, rel := range wantRels {
		if doc.Links[i].Rel != rel {
			t.Fatalf("link %d: expected rel %s got %s", i, rel, doc.Links[i].Rel)
		}
	}
	if *doc.Links[0].Type != "text/html" || *doc.Links[0].Href != profile {
		t.Fatalf("unexpected profile link %+v", doc.Links[0])
	}
	if *doc.Links[1].Type != "application/activity+json" || *doc.Links[1].Href != profile {
		t.Fatalf("unexpected self link %+v", doc.Links[1])
	}
	if doc.Links[2].Type != nil || doc.Links[2].Href != nil {
		t.Fatalf("subscribe link should carry only a template %+v", doc.Links[2])
	}
	if *doc.Links[2].Template != "https://web.example.com/authorize_interaction?uri={uri}" {
		t.Fatalf("unexpected template %s", *doc.Links[2].Template)
	}
}

func TestWebfingerUsecaseResolveMismatch(t *testing.T) {
	repo := &mockIdentityRepo{identity: testIdentity(nil)}
	uc := NewWebfingerUsecase(repo, nil)

	for _, resource := range []string{
		"",
		"acct:ADMIN@example.com",
		"acct:admin@web.example.com",
		"admin@example.com",
		"acct:admin@example.com ",
		"https://web.example.com/user/admin",
	} {
		_, err := uc.Resolve(context.Background(), resource)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("resource %q: expected not found, got %v", resource, err)
		}
	}
}

func TestWebfingerUsecaseUsesCache(t *testing.T) {
	repo := &mockIdentityRepo{identity: testIdentity(nil)}
	cache := newMockCache()
	uc := NewWebfingerUsecase(repo, cache)

	first, err := uc.Resolve(context.Background(), "acct:admin@example.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if _, ok := cache.entries[repo.identity.CacheKey("webfinger", "acct:admin@example.com")]; !ok {
		t.Fatalf("expected document to be cached")
	}

	second, err := uc.Resolve(context.Background(), "acct:admin@example.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected one cache hit got %d", cache.hits)
	}
	if second.Subject != first.Subject || len(second.Links) != len(first.Links) {
		t.Fatalf("cached document differs: %+v vs %+v", second, first)
	}
}

func TestWebfingerUsecaseIgnoresCorruptCache(t *testing.T) {
	repo := &mockIdentityRepo{identity: testIdentity(nil)}
	cache := newMockCache()
	cache.entries[repo.identity.CacheKey("webfinger", "acct:admin@example.com")] = []byte("{not json")
	uc := NewWebfingerUsecase(repo, cache)

	doc, err := uc.Resolve(context.Background(), "acct:admin@example.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if doc.Subject != "acct:admin@example.com" {
		t.Fatalf("unexpected subject %s", doc.Subject)
	}
}

func TestWebfingerUsecaseCacheScopedToIdentity(t *testing.T) {
	cache := newMockCache()

	before := NewWebfingerUsecase(&mockIdentityRepo{identity: testIdentity(nil)}, cache)
	if _, err := before.Resolve(context.Background(), "acct:admin@example.com"); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	moved := domain.NewIdentity("new.example.com", "example.com", "admin", "PEM", nil)
	after := NewWebfingerUsecase(&mockIdentityRepo{identity: moved}, cache)
	doc, err := after.Resolve(context.Background(), "acct:admin@example.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if doc.Aliases[0] != "https://new.example.com/user/admin" {
		t.Fatalf("served stale document %+v", doc)
	}
}

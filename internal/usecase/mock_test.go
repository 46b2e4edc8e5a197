package usecase

import (
	"context"

	"github.com/totegamma/twitton/internal/domain"
)

type mockIdentityRepo struct {
	identity domain.Identity
	calls    int
}

func (m *mockIdentityRepo) GetByUsername(ctx context.Context, username string) (domain.Identity, error) {
	m.calls++
	if username != m.identity.Username {
		return domain.Identity{}, domain.NotFoundError{Resource: "user"}
	}
	return m.identity, nil
}

func (m *mockIdentityRepo) GetByResource(ctx context.Context, resource string) (domain.Identity, error) {
	m.calls++
	if resource != m.identity.Resource() {
		return domain.Identity{}, domain.NotFoundError{Resource: "resource"}
	}
	return m.identity, nil
}

type mockCache struct {
	entries map[string][]byte
	hits    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string][]byte{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := m.entries[key]
	if ok {
		m.hits++
	}
	return v, ok
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte) {
	m.entries[key] = value
}

func testIdentity(icon *string) domain.Identity {
	return domain.NewIdentity("web.example.com", "example.com", "admin", "PEM", icon)
}

package usecase

import (
	"context"

	"github.com/totegamma/twitton/internal/domain"
)

// IdentityRepository resolves local identities.
// Both lookups return domain.ErrNotFound on mismatch.
type IdentityRepository interface {
	GetByUsername(ctx context.Context, username string) (domain.Identity, error)
	GetByResource(ctx context.Context, resource string) (domain.Identity, error)
}

// DocumentCache memoizes serialized documents.
type DocumentCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

package repository

import (
	"context"

	"github.com/totegamma/twitton/internal/domain"
)

// IdentityRepository is an in-memory, read-only index of local identities.
// It is populated once at startup and safe for concurrent reads.
type IdentityRepository struct {
	byUsername map[string]domain.Identity
	byResource map[string]domain.Identity
}

func NewIdentityRepository(identities ...domain.Identity) *IdentityRepository {
	r := &IdentityRepository{
		byUsername: make(map[string]domain.Identity, len(identities)),
		byResource: make(map[string]domain.Identity, len(identities)),
	}
	for _, identity := range identities {
		r.byUsername[identity.Username] = identity
		r.byResource[identity.Resource()] = identity
	}
	return r
}

func (r *IdentityRepository) GetByUsername(ctx context.Context, username string) (domain.Identity, error) {
	identity, ok := r.byUsername[username]
	if !ok {
		return domain.Identity{}, domain.NotFoundError{Resource: "user"}
	}
	return identity, nil
}

func (r *IdentityRepository) GetByResource(ctx context.Context, resource string) (domain.Identity, error) {
	identity, ok := r.byResource[resource]
	if !ok {
		return domain.Identity{}, domain.NotFoundError{Resource: "resource"}
	}
	return identity, nil
}

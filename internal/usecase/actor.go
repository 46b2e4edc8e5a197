package usecase

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/twitton"
	"github.com/totegamma/twitton/internal/domain"
)

type ActorUsecase struct {
	repo  IdentityRepository
	cache DocumentCache
}

func NewActorUsecase(repo IdentityRepository, cache DocumentCache) *ActorUsecase {
	return &ActorUsecase{repo: repo, cache: orNoop(cache)}
}

// Get returns the actor document for username (exact, case-sensitive match).
func (uc *ActorUsecase) Get(ctx context.Context, username string) (*twitton.Actor, error) {
	ctx, span := tracer.Start(ctx, "Actor.Usecase.Get")
	defer span.End()
	span.SetAttributes(attribute.String("username", username))

	identity, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "actor")
	}

	key := identity.CacheKey("actor", identity.Username)

	var actor twitton.Actor
	if loadCached(ctx, uc.cache, key, &actor) {
		return &actor, nil
	}

	actor = buildActor(identity)
	storeCached(ctx, uc.cache, key, actor)

	return &actor, nil
}

func buildActor(identity domain.Identity) twitton.Actor {
	actor := twitton.Actor{
		Context: []string{
			twitton.ContextActivityStreams,
			twitton.ContextSecurity,
		},
		ID:                identity.ProfileURL,
		Type:              twitton.ActorTypePerson,
		PreferredUsername: identity.Username,
		Inbox:             identity.InboxURL,
		PublicKey: twitton.PublicKey{
			ID:           identity.KeyID(),
			Owner:        identity.ProfileURL,
			PublicKeyPem: identity.PublicKeyPEM,
		},
		Endpoints: &twitton.ActorEndpoints{
			SharedInbox: identity.SharedInboxURL,
		},
	}

	if identity.IconURL != nil {
		actor.Icon = &twitton.Image{
			Type:      twitton.ObjectTypeImage,
			MediaType: twitton.MediaTypePNG,
			URL:       *identity.IconURL,
		}
	}

	return actor
}

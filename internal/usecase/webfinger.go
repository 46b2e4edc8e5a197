package usecase

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/twitton"
	"github.com/totegamma/twitton/internal/domain"
)

var tracer = otel.Tracer("usecase")

type WebfingerUsecase struct {
	repo  IdentityRepository
	cache DocumentCache
}

func NewWebfingerUsecase(repo IdentityRepository, cache DocumentCache) *WebfingerUsecase {
	return &WebfingerUsecase{repo: repo, cache: orNoop(cache)}
}

// Resolve returns the discovery document for resource, which must equal an
// identity's canonical acct: resource exactly.
func (uc *WebfingerUsecase) Resolve(ctx context.Context, resource string) (*twitton.WebfingerDocument, error) {
	ctx, span := tracer.Start(ctx, "Webfinger.Usecase.Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("resource", resource))

	identity, err := uc.repo.GetByResource(ctx, resource)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "webfinger")
	}

	key := identity.CacheKey("webfinger", identity.Resource())

	var doc twitton.WebfingerDocument
	if loadCached(ctx, uc.cache, key, &doc) {
		return &doc, nil
	}

	doc = buildWebfinger(identity)
	storeCached(ctx, uc.cache, key, doc)

	return &doc, nil
}

func buildWebfinger(identity domain.Identity) twitton.WebfingerDocument {
	profile := identity.ProfileURL
	subscribe := identity.SubscribeURL
	html := twitton.MediaTypeHTML
	activity := twitton.MediaTypeActivityJSON

	return twitton.WebfingerDocument{
		Subject: identity.Resource(),
		Aliases: []string{profile},
		Links: []twitton.WebfingerLink{
			{
				Rel:  twitton.RelProfilePage,
				Type: &html,
				Href: &profile,
			},
			{
				Rel:  twitton.RelSelf,
				Type: &activity,
				Href: &profile,
			},
			{
				Rel:      twitton.RelSubscribe,
				Template: &subscribe,
			},
		},
	}
}

package providers

import (
	"log/slog"
	"time"

	"github.com/totegamma/twitton/client"
	"github.com/totegamma/twitton/internal/config"
	"github.com/totegamma/twitton/internal/domain"
	"github.com/totegamma/twitton/internal/infra/cache"
	"github.com/totegamma/twitton/internal/infra/database"
	"github.com/totegamma/twitton/internal/infra/repository"
	"github.com/totegamma/twitton/internal/usecase"
)

const memcachedTimeout = 500 * time.Millisecond

// NewDocumentCache prefers memcached when configured and reachable,
// falling back to an in-process cache.
func NewDocumentCache(conf config.Server) usecase.DocumentCache {
	ttl := conf.CacheTTLDuration()

	if conf.MemcachedAddr != "" {
		mc, err := database.NewMemcached(conf.MemcachedAddr, memcachedTimeout)
		if err == nil {
			slog.Info("using memcached document cache",
				slog.String("addr", conf.MemcachedAddr),
				slog.String("module", "providers"),
			)
			return cache.NewMemcachedCache(mc, ttl)
		}
		slog.Warn("memcached unavailable, falling back to memory cache",
			slog.String("error", err.Error()),
			slog.String("module", "providers"),
		)
	}

	return cache.NewMemoryCache(ttl)
}

// NewIdentityRepository indexes the configured identities.
func NewIdentityRepository(identities ...domain.Identity) *repository.IdentityRepository {
	return repository.NewIdentityRepository(identities...)
}

// NewClient constructs the HTTP client used to look up other nodes.
func NewClient(opts client.Options) *client.Client {
	return client.New(opts)
}

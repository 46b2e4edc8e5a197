package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
)

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string) ([]byte, bool) {
	return nil, false
}

func (noopCache) Set(ctx context.Context, key string, value []byte) {}

func orNoop(cache DocumentCache) DocumentCache {
	if cache == nil {
		return noopCache{}
	}
	return cache
}

func loadCached(ctx context.Context, cache DocumentCache, key string, dst any) bool {
	raw, ok := cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.WarnContext(ctx, "discarding corrupt cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()),
			slog.String("module", "usecase"),
		)
		return false
	}
	return true
}

func storeCached(ctx context.Context, cache DocumentCache, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	cache.Set(ctx, key, raw)
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/folio/portfolio-api/internal/core/ports"
)

const (
	projectsNamespace = "projects"
	postsNamespace    = "posts"
)

// noGeneration marks a lookup whose generation is unknown; nothing fetched
// after it may be written back.
const noGeneration int64 = -1

// Cache failures never fail a request: reads fall through to the store and
// writes are logged and dropped.

// readCachedList returns the cached list for key and the generation it was
// looked up under. The generation must be handed to writeCachedList.
func readCachedList[T any](ctx context.Context, cache ports.ListCache, log zerolog.Logger, namespace, key string) ([]T, int64, bool) {
	raw, gen, ok, err := cache.Get(ctx, namespace, key)
	if err != nil {
		log.Warn().Err(err).Str("namespace", namespace).Msg("list cache read failed")
		return nil, noGeneration, false
	}
	if !ok {
		return nil, gen, false
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Err(err).Str("namespace", namespace).Msg("list cache entry unreadable")
		return nil, gen, false
	}
	return items, gen, true
}

func writeCachedList[T any](ctx context.Context, cache ports.ListCache, ttl time.Duration, log zerolog.Logger, namespace string, gen int64, key string, items []T) {
	if gen == noGeneration {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		log.Warn().Err(err).Str("namespace", namespace).Msg("list cache encode failed")
		return
	}
	if err := cache.Set(ctx, namespace, gen, key, raw, ttl); err != nil {
		log.Warn().Err(err).Str("namespace", namespace).Msg("list cache write failed")
	}
}

func invalidateList(ctx context.Context, cache ports.ListCache, log zerolog.Logger, namespace string) {
	if err := cache.Invalidate(ctx, namespace); err != nil {
		log.Warn().Err(err).Str("namespace", namespace).Msg("list cache invalidation failed")
	}
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

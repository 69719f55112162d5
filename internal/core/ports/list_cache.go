package ports

import (
	"context"
	"time"
)

// ListCache stores serialized public list responses per namespace.
// Invalidate drops every entry of a namespace at once.
//
// Get reports the namespace generation it looked under, and Set stores only
// under the generation it is given. A list fetched after a Get is written back
// with that generation, so an Invalidate that lands in between makes the
// write unreachable instead of caching a pre-write snapshot.
type ListCache interface {
	Get(ctx context.Context, namespace, key string) (value []byte, generation int64, hit bool, err error)
	Set(ctx context.Context, namespace string, generation int64, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, namespace string) error
}

// NopListCache never hits; used when no cache backend is configured.
type NopListCache struct{}

func (NopListCache) Get(context.Context, string, string) ([]byte, int64, bool, error) {
	return nil, 0, false, nil
}

func (NopListCache) Set(context.Context, string, int64, string, []byte, time.Duration) error {
	return nil
}

func (NopListCache) Invalidate(context.Context, string) error { return nil }

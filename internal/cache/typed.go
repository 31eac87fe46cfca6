package cache

import (
	"context"
	"fmt"
)

// FetchAs is the typed front of Store.Fetch: it wraps a typed fetcher and
// asserts the cached value back to T on the way out.
func FetchAs[T any](ctx context.Context, s *Store, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := s.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %s holds %T, not %T", key, v, zero)
	}
	return t, nil
}

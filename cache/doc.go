// Package cache provides the bounded, content-addressed memoization store.
//
// # Overview
//
// The package exports two stores:
//
//   - BoundedCache: a capacity-bounded map from content digests to computed
//     values with least-recently-used eviction
//   - CropStore: a TTL'd store for materialized crop buffers, keyed by
//     (source digest, crop box)
//
// Both are designed around the hashable wrapper types: a caller wraps a
// payload, the wrapper produces its content digest, and the digest keys the
// cache. Identity never enters the picture, so pixel-identical payloads in
// different allocations share one entry.
//
// # Basic usage
//
//	c, err := cache.New[*pixel.Image](cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	digest, err := wrapped.Digest()
//	if err != nil {
//		return err
//	}
//	resized, err := c.GetOrCompute(ctx, digest, func(ctx context.Context) (*pixel.Image, error) {
//		return expensiveResize(wrapped.Image())
//	})
//
// On a hit the compute function is never invoked and the entry is marked
// most recently used. On a miss the function runs, its result is inserted,
// and if the entry count now exceeds the configured capacity the single
// least-recently-used entry is evicted.
//
// # Concurrency
//
// One mutex guards the combined lookup + insert + evict sequence, keeping
// the at-most-one-stored-value-per-digest invariant. Concurrent misses for
// the same digest are additionally serialized through a per-digest in-flight
// slot, so the compute function runs at most once per digest even under
// races. A failed computation propagates to every waiting caller and is
// never cached.
//
// # Error handling
//
// Construction fails with *ConfigError when the capacity is not a positive
// integer. Compute errors pass through unchanged; the cache is left exactly
// as it was before the failed call.
//
// # Observability
//
// Hit, miss and eviction events go to the injected slog logger at debug
// level; when no logger is configured the events are discarded. Stats
// returns counters and a human-readable summary. Neither affects cache
// behavior.
package cache

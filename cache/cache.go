package cache

import (
	"container/list"
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-pixel-cache/hash"
)

// ComputeFn produces the value for a digest on a cache miss.
type ComputeFn[V any] func(ctx context.Context) (V, error)

// Store is the read-through contract the bounded cache satisfies. It is
// exported so call sites can take the interface and tests can substitute a
// fake.
type Store[V any] interface {
	GetOrCompute(ctx context.Context, digest hash.Digest, compute ComputeFn[V]) (V, error)
	Get(digest hash.Digest) (V, bool)
	Delete(digest hash.Digest) bool
	Len() int
}

// Option configures a BoundedCache at construction.
type Option[V any] func(*BoundedCache[V])

// WithOnEvict registers a callback invoked after an entry is evicted. The
// callback runs outside the cache lock and may re-enter the cache.
func WithOnEvict[V any](fn func(hash.Digest, V)) Option[V] {
	return func(c *BoundedCache[V]) {
		c.onEvict = fn
	}
}

type entry[V any] struct {
	digest hash.Digest
	value  V
}

// call is the in-flight slot concurrent callers wait on while one of them
// computes a missing digest.
type call[V any] struct {
	wg  sync.WaitGroup
	val V
	err error
}

// BoundedCache maps content digests to computed values, holding at most
// MaxEntries entries and evicting the least-recently-used one past capacity.
// All methods are safe for concurrent use.
type BoundedCache[V any] struct {
	mu      sync.Mutex
	entries map[hash.Digest]*list.Element
	order   *list.List // front is most recently used

	maxEntries int
	inflight   *xsync.MapOf[hash.Digest, *call[V]]

	hits      *xsync.Counter
	misses    *xsync.Counter
	evictions *xsync.Counter

	onEvict func(hash.Digest, V)
	log     *slog.Logger
	id      string
}

var _ Store[any] = (*BoundedCache[any])(nil)

// New constructs a bounded cache from the configuration. A non-positive
// capacity fails with *ConfigError.
func New[V any](cfg Config, opts ...Option[V]) (*BoundedCache[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &BoundedCache[V]{
		entries:    make(map[hash.Digest]*list.Element),
		order:      list.New(),
		maxEntries: cfg.MaxEntries,
		inflight:   xsync.NewMapOf[hash.Digest, *call[V]](),
		hits:       xsync.NewCounter(),
		misses:     xsync.NewCounter(),
		evictions:  xsync.NewCounter(),
		log:        cfg.logger(),
		id:         uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetOrCompute returns the cached value for digest, computing and inserting
// it on a miss. The compute function runs at most once per digest even under
// concurrent misses; its error propagates unchanged and is never cached.
func (c *BoundedCache[V]) GetOrCompute(ctx context.Context, digest hash.Digest, compute ComputeFn[V]) (V, error) {
	if v, ok := c.lookup(digest); ok {
		c.hits.Inc()
		c.log.Debug("cache hit", "cache", c.id, "digest", digest.Short())
		return v, nil
	}
	c.misses.Inc()
	c.log.Debug("cache miss", "cache", c.id, "digest", digest.Short())

	cl := &call[V]{}
	cl.wg.Add(1)
	winner, loaded := c.inflight.LoadOrStore(digest, cl)
	if loaded {
		winner.wg.Wait()
		if winner.err != nil {
			var zero V
			return zero, winner.err
		}
		// prefer the stored entry so this caller also touches it
		if v, ok := c.lookup(digest); ok {
			return v, nil
		}
		return winner.val, nil
	}

	defer func() {
		cl.wg.Done()
		c.inflight.Delete(digest)
	}()

	// an entry may have landed between the miss and winning the slot
	if v, ok := c.lookup(digest); ok {
		cl.val = v
		return v, nil
	}

	v, err := compute(ctx)
	if err != nil {
		cl.err = err
		var zero V
		return zero, err
	}
	c.insert(digest, v)
	cl.val = v
	return v, nil
}

// Get returns the cached value and marks it most recently used.
func (c *BoundedCache[V]) Get(digest hash.Digest) (V, bool) {
	v, ok := c.lookup(digest)
	if ok {
		c.hits.Inc()
	} else {
		c.misses.Inc()
	}
	return v, ok
}

// Peek returns the cached value without updating recency or counters.
func (c *BoundedCache[V]) Peek(digest hash.Digest) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[digest]; ok {
		return el.Value.(*entry[V]).value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether digest is cached, without updating recency.
func (c *BoundedCache[V]) Contains(digest hash.Digest) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[digest]
	return ok
}

// Delete removes the entry for digest and reports whether it was present.
func (c *BoundedCache[V]) Delete(digest hash.Digest) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[digest]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.entries, digest)
	return true
}

// Purge removes all entries. Counters are kept.
func (c *BoundedCache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[hash.Digest]*list.Element)
	c.order.Init()
}

// Len returns the current entry count.
func (c *BoundedCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the configured maximum entry count.
func (c *BoundedCache[V]) Capacity() int {
	return c.maxEntries
}

// ID returns the cache instance identifier used in log events.
func (c *BoundedCache[V]) ID() string {
	return c.id
}

// Keys returns the cached digests from most to least recently used.
func (c *BoundedCache[V]) Keys() []hash.Digest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]hash.Digest, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*entry[V]).digest)
	}
	return out
}

// Stats returns a snapshot of the cache counters.
func (c *BoundedCache[V]) Stats() Stats {
	c.mu.Lock()
	n := c.order.Len()
	c.mu.Unlock()
	return Stats{
		ID:        c.id,
		Entries:   n,
		Capacity:  c.maxEntries,
		Hits:      c.hits.Value(),
		Misses:    c.misses.Value(),
		Evictions: c.evictions.Value(),
	}
}

// lookup touches the entry without counting a hit or miss; callers decide
// how the access is accounted.
func (c *BoundedCache[V]) lookup(digest hash.Digest) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[digest]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry[V]).value, true
	}
	var zero V
	return zero, false
}

// insert stores the value as most recently used and evicts the single
// least-recently-used entry while over capacity. At most one value is ever
// stored per digest.
func (c *BoundedCache[V]) insert(digest hash.Digest, v V) {
	var evicted *entry[V]

	c.mu.Lock()
	if el, ok := c.entries[digest]; ok {
		el.Value.(*entry[V]).value = v
		c.order.MoveToFront(el)
		c.mu.Unlock()
		return
	}
	c.entries[digest] = c.order.PushFront(&entry[V]{digest: digest, value: v})
	if c.order.Len() > c.maxEntries {
		back := c.order.Back()
		c.order.Remove(back)
		ev := back.Value.(*entry[V])
		delete(c.entries, ev.digest)
		evicted = ev
	}
	c.mu.Unlock()

	if evicted != nil {
		c.evictions.Inc()
		c.log.Debug("cache evict", "cache", c.id, "digest", evicted.digest.Short())
		if c.onEvict != nil {
			c.onEvict(evicted.digest, evicted.value)
		}
	}
}

package ttlcache

import (
	"context"
	"sync"

	"ttlcache/internal/health"
	"ttlcache/internal/logs"
	"ttlcache/internal/metrics"
	"ttlcache/internal/schedule"
	"ttlcache/internal/store"

	"golang.org/x/sync/singleflight"
)

// TTLNever is the SetWithTTL sentinel for entries that never expire.
const TTLNever int64 = -1

// Cache is an in-process key–value cache with per-entry TTL expiration.
//
// Ownership model:
// mu is the single serialization point. Every mutation and every timer
// wake-up holds it while changing the table or the schedule and while
// running reconciliation, so no two mutations and no mutation and
// reconciliation pass ever interleave. Get bypasses mu entirely and
// reads the table under its own read lock, which is why a just-expired
// entry can remain visible until the next reconciliation pass.
//
// Cache owns its timer goroutine. Call Close to stop it.
type Cache struct {
	mu    sync.Mutex
	table *store.Store
	queue *schedule.Heap

	// nextWake is the unix second of the next scheduled reconciliation,
	// 0 when nothing is pending. Written only under mu.
	nextWake int64

	// rearm tells the timer goroutine that nextWake changed.
	rearm chan struct{}

	clock     Clock
	logger    *logs.Logger
	metrics   *metrics.Registry
	loader    LoaderFunc
	loaderTTL int64
	sf        singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

// New creates an empty cache and starts its timer goroutine.
func New(opts ...Option) *Cache {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Cache{
		table:     store.NewStore(cfg.metrics),
		queue:     schedule.NewHeap(),
		rearm:     make(chan struct{}, 1),
		clock:     cfg.clock,
		logger:    cfg.logger,
		metrics:   cfg.metrics,
		loader:    cfg.loader,
		loaderTTL: cfg.loaderTTL,
		ctx:       ctx,
		cancel:    cancel,
	}

	c.wg.Add(1)
	go c.expiryLoop()

	return c
}

// Set inserts or overwrites a key with no expiration.
func (c *Cache) Set(key string, value any) {
	c.mutate(func(now int64) {
		c.table.Put(key, store.Entry{Value: value, ExpiresAt: store.NoExpiry})
	})
}

// SetWithTTL inserts or overwrites a key that expires ttlSeconds from now.
//
// ttlSeconds semantics:
//   - > 0: expires at now + ttlSeconds
//   - 0: behaves exactly as Delete (immediate removal, nothing scheduled)
//   - TTLNever: behaves exactly as Set
//   - any other value is invalid; the write is ignored and counted
//
// Overwriting leaves the old schedule point in the heap; it is discarded,
// not acted on, when reconciliation reaches it.
func (c *Cache) SetWithTTL(key string, value any, ttlSeconds int64) {
	switch {
	case ttlSeconds == TTLNever:
		c.Set(key, value)

	case ttlSeconds == 0:
		c.Delete(key)

	case ttlSeconds < 0:
		c.mutate(func(now int64) {
			c.metrics.Inc(metrics.InvalidTTLTotal)
			c.logger.Warn("ignoring set of key %q: invalid ttl %d", key, ttlSeconds)
		})

	default:
		c.mutate(func(now int64) {
			expiresAt := now + ttlSeconds
			c.table.Put(key, store.Entry{Value: value, ExpiresAt: expiresAt})
			c.queue.Insert(schedule.Point{Key: key, At: expiresAt})
			c.metrics.Inc(metrics.SchedulePointsTotal)
		})
	}
}

// Delete removes a key. Deleting an absent key is a no-op. The key's
// schedule point, if any, stays in the heap and is cleaned up lazily.
func (c *Cache) Delete(key string) {
	c.mutate(func(now int64) {
		c.table.Delete(key)
	})
}

// Get retrieves a value. It reads the entry table only, never the
// expiration schedule, and never blocks on a reconciliation pass. Inside
// the window between an entry coming due and the next reconciliation it
// may return an already-due value.
func (c *Cache) Get(key string) (any, bool) {
	entry, ok := c.table.Get(key)
	if !ok {
		return nil, false
	}
	return entry.Value, true
}

// GetOr retrieves a value, returning def when the key is missing.
func (c *Cache) GetOr(key string, def any) any {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// GetOrLoad retrieves a value, fetching it through the configured loader
// on miss. Concurrent loads of the same key are collapsed into one call;
// the loaded value is stored with the configured loader TTL.
// Without a loader it behaves as Get with a nil miss value.
func (c *Cache) GetOrLoad(ctx context.Context, key string) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	if c.loader == nil {
		return nil, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// another flight may have populated the key already
		if v, ok := c.Get(key); ok {
			return v, nil
		}

		c.metrics.Inc(metrics.LoadsTotal)
		v, err := c.loader(ctx, key)
		if err != nil {
			c.metrics.Inc(metrics.LoadErrorsTotal)
			c.logger.Warn("load of key %q failed: %v", key, err)
			return nil, err
		}

		c.SetWithTTL(key, v, c.loaderTTL)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Len returns the number of entries in the table, including due entries
// that reconciliation has not removed yet.
func (c *Cache) Len() int {
	return c.table.Len()
}

// Entries returns a snapshot of all entries that are not yet due.
func (c *Cache) Entries() map[string]store.Entry {
	return c.table.List(c.clock.Now().Unix())
}

// Metrics returns the cache's metrics registry.
func (c *Cache) Metrics() *metrics.Registry {
	return c.metrics
}

// Health evaluates the cache's metrics and logs into a health report.
func (c *Cache) Health() health.Report {
	return health.NewAnalyzer(c.metrics, c.logger).Analyze()
}

// Close stops the timer goroutine. Mutations after Close are no-ops;
// reads keep working against the frozen table.
//
// Close is safe to call multiple times.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	cancel := c.cancel
	c.mu.Unlock()

	// Cancel outside the lock so shutdown doesn't block readers.
	cancel()
	c.wg.Wait()
}

// mutate funnels one mutation through the serialization point: apply the
// change, run reconciliation, then nudge the timer goroutine to re-arm.
// A nil-effect apply still reconciles, so a malformed request never
// stalls the cache's self-clocking.
func (c *Cache) mutate(apply func(now int64)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	now := c.clock.Now().Unix()
	apply(now)
	c.reconcileLocked(now)
	c.mu.Unlock()

	c.signalRearm()
}

// signalRearm is a non-blocking wake-up for the timer goroutine; a
// pending signal already covers any newer state.
func (c *Cache) signalRearm() {
	select {
	case c.rearm <- struct{}{}:
	default:
	}
}

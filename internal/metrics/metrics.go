package metrics

import (
	"sync"
	"sync/atomic"
)

// MetricKey is a strongly typed metric identifier.
type MetricKey string

// Metric keys (centralized)
const (
	// Entry table
	CacheKeysTotal    MetricKey = "cache_keys_total"
	CacheSetsTotal    MetricKey = "cache_sets_total"
	CacheGetsTotal    MetricKey = "cache_gets_total"
	CacheMissesTotal  MetricKey = "cache_misses_total"
	CacheDeletesTotal MetricKey = "cache_deletes_total"

	// Expiration schedule
	SchedulePointsTotal MetricKey = "schedule_points_total"
	StalePointsTotal    MetricKey = "stale_points_total"
	ExpiredKeysTotal    MetricKey = "expired_keys_total"

	// Manager
	ReconcileRunsTotal MetricKey = "reconcile_runs_total"
	TimerWakesTotal    MetricKey = "timer_wakes_total"
	InvalidTTLTotal    MetricKey = "invalid_ttl_total"

	// Loader
	LoadsTotal      MetricKey = "loads_total"
	LoadErrorsTotal MetricKey = "load_errors_total"
)

// Registry stores all metrics.
type Registry struct {
	mu       sync.RWMutex
	counters map[MetricKey]*int64
}

// NewRegistry creates a metrics registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[MetricKey]*int64),
	}
}

// Inc increments a metric by 1.
func (r *Registry) Inc(key MetricKey) {
	r.Add(key, 1)
}

// Add increments a metric by delta.
func (r *Registry) Add(key MetricKey, delta int64) {
	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()

	if ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	// Slow path: metric not yet initialized
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok = r.counters[key]; ok {
		atomic.AddInt64(ptr, delta)
		return
	}

	var val int64
	r.counters[key] = &val
	atomic.AddInt64(&val, delta)
}

// Snapshot returns a deep copy of all metrics.
// Safe for concurrent use and immune to external mutation.
func (r *Registry) Snapshot() map[string]int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64, len(r.counters))
	for key, ptr := range r.counters {
		out[string(key)] = atomic.LoadInt64(ptr)
	}
	return out
}

// Get returns the current value of a single metric.
func (r *Registry) Get(key MetricKey) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ptr, ok := r.counters[key]; ok {
		return atomic.LoadInt64(ptr)
	}
	return 0
}

package health

import "ttlcache/internal/metrics"

// RuleResult represents the outcome of a single rule.
type RuleResult struct {
	Triggered      bool
	Signal         string
	Recommendation string
	Severity       Status
}

// Rule evaluates a metrics snapshot.
type Rule func(snapshot map[string]int64) RuleResult

// ---------- RULES ----------

// A high miss ratio usually means TTLs are shorter than the access pattern.
func MissRatioRule(snapshot map[string]int64) RuleResult {
	gets := snapshot[string(metrics.CacheGetsTotal)]
	misses := snapshot[string(metrics.CacheMissesTotal)]

	if gets >= 100 && misses*2 > gets {
		return RuleResult{
			Triggered:      true,
			Signal:         "Cache miss ratio above 50%",
			Recommendation: "Review TTLs against the access pattern or pre-warm hot keys",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}

// Invalid TTLs mean a caller is passing bad arguments; the cache ignores
// them, so the caller's writes are silently lost.
func InvalidTTLRule(snapshot map[string]int64) RuleResult {
	invalid := snapshot[string(metrics.InvalidTTLTotal)]

	if invalid > 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Writes rejected for invalid TTL values",
			Recommendation: "Audit SetWithTTL call sites for negative TTLs",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}

// Mostly-stale schedule points mean keys are rewritten far faster than
// they expire, and the heap is carrying dead weight.
func StalePointRule(snapshot map[string]int64) RuleResult {
	points := snapshot[string(metrics.SchedulePointsTotal)]
	stale := snapshot[string(metrics.StalePointsTotal)]

	if points >= 100 && stale*10 > points*9 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Over 90% of expiration schedule points were stale",
			Recommendation: "Hot keys are re-set much faster than their TTL; consider longer TTLs",
			Severity:       StatusDegraded,
		}
	}
	return RuleResult{}
}

// Loader errors indicate the backing source is failing on cache misses.
func LoadErrorRule(snapshot map[string]int64) RuleResult {
	errors := snapshot[string(metrics.LoadErrorsTotal)]

	if errors > 0 {
		return RuleResult{
			Triggered:      true,
			Signal:         "Loader failures on cache misses",
			Recommendation: "Check the backing source wired via WithLoader",
			Severity:       StatusCritical,
		}
	}
	return RuleResult{}
}

package ttlcache

import (
	"time"

	"ttlcache/internal/metrics"
)

// reconcileLocked drains due schedule points and computes the next wake.
// Callers must hold c.mu.
//
// For each point at the top of the heap:
//   - still in the future: done, wake then
//   - due, and the table entry is due too (or the key is gone): the point
//     is accurate; remove the entry and pop
//   - due, but the table records a later expiry or no expiry: the point
//     was superseded by a later set; pop it and leave the entry alone —
//     the newer point pushed by that set owns the key's cleanup
//
// Every iteration pops or returns, so the loop terminates. The heap only
// ever shrinks here; cost tracks points actually due, not the live set.
func (c *Cache) reconcileLocked(now int64) {
	c.metrics.Inc(metrics.ReconcileRunsTotal)

	for {
		point, ok := c.queue.Min()
		if !ok {
			c.nextWake = 0
			return
		}

		if point.At > now {
			c.nextWake = point.At
			return
		}

		entry, exists := c.table.Peek(point.Key)
		switch {
		case exists && !entry.Due(now):
			c.metrics.Inc(metrics.StalePointsTotal)

		case exists:
			c.table.Delete(point.Key)
			c.metrics.Inc(metrics.ExpiredKeysTotal)
			c.logger.Debug("expired key %q", point.Key)

		default:
			// deleted before its point surfaced
			c.metrics.Inc(metrics.StalePointsTotal)
		}

		c.queue.DeleteMin()
	}
}

// expiryLoop owns the wake timer. It sleeps until the earliest pending
// expiry (or indefinitely when nothing is scheduled), runs reconciliation
// on wake, and re-arms from whatever nextWake that pass computed. Rearm
// signals from mutations interrupt the sleep so the timer always tracks
// the newest schedule.
func (c *Cache) expiryLoop() {
	defer c.wg.Done()

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		// The timer is always stopped and drained here; arm it fresh.
		c.mu.Lock()
		wake := c.nextWake
		c.mu.Unlock()

		if wake != 0 {
			d := time.Duration(wake-c.clock.Now().Unix()) * time.Second
			if d < 0 {
				d = 0
			}
			timer.Reset(d)
		}

		select {
		case <-c.ctx.Done():
			if wake != 0 && !timer.Stop() {
				<-timer.C
			}
			c.logger.Debug("expiry loop stopped")
			return

		case <-c.rearm:
			if wake != 0 && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}

		case <-timer.C:
			c.metrics.Inc(metrics.TimerWakesTotal)

			c.mu.Lock()
			c.reconcileLocked(c.clock.Now().Unix())
			c.mu.Unlock()
		}
	}
}

// Package ttlcache implements an in-process key–value cache with
// per-entry TTL expiration at whole-second granularity.
//
// Two structures collaborate under one serialization point:
//
//   - the entry table (internal/store), authoritative for what exists
//     and when it truly expires, readable concurrently without blocking
//   - the expiration schedule (internal/schedule), a pairing heap of
//     (key, expiresAt) hints ordered by expiry time
//
// Every mutation and every timer wake-up runs a reconciliation pass that
// pops due schedule points, validates each against the table, removes
// entries whose expiry really has passed, and re-arms the wake timer to
// the next pending expiry. The cache therefore clocks itself: it sleeps
// exactly until the next entry could need removal, and sleeps forever
// when nothing is scheduled to expire.
//
// Overwriting a key does not dig the old schedule point out of the heap;
// the point goes stale in place and is discarded when it surfaces at the
// minimum. Reconciliation cost is proportional to points actually
// expiring, not to the size of the live set.
package ttlcache

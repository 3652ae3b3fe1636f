package store

// NoExpiry marks an entry that never expires.
const NoExpiry int64 = 0

// Entry represents a single value stored in the cache.
//
// Design choices:
// - ExpiresAt is an absolute unix timestamp in whole seconds.
// - ExpiresAt == NoExpiry means "no expiration".
// - The table is authoritative for when a key truly expires; the
//   expiration schedule only holds hints that are validated against it.
type Entry struct {
	Value     any
	ExpiresAt int64
}

// Due reports whether the entry's expiration has passed at the given
// unix time. An entry due exactly "now" counts as expired.
func (e Entry) Due(now int64) bool {
	if e.ExpiresAt == NoExpiry {
		return false
	}
	return e.ExpiresAt <= now
}

package ttlcache

import (
	"strconv"
	"testing"
)

func BenchmarkCache_Get(b *testing.B) {
	cache := New()
	defer cache.Close()

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
		cache.Set(keys[i], i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(keys[i%100])
	}
}

func BenchmarkCache_Set(b *testing.B) {
	cache := New()
	defer cache.Close()

	keys := make([]string, b.N)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(keys[i], i)
	}
}

func BenchmarkCache_SetWithTTL(b *testing.B) {
	cache := New()
	defer cache.Close()

	keys := make([]string, b.N)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.SetWithTTL(keys[i], i, 3600)
	}
}

// Overwriting a hot key is the path the lazy stale-point policy keeps at
// O(1): no heap surgery, just an append.
func BenchmarkCache_OverwriteHotKey(b *testing.B) {
	cache := New()
	defer cache.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.SetWithTTL("hot", i, 3600)
	}
}

func BenchmarkCache_GetParallel(b *testing.B) {
	cache := New()
	defer cache.Close()

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
		cache.Set(keys[i], i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			cache.Get(keys[i%100])
			i++
		}
	})
}

package schedule

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapEmpty(t *testing.T) {
	h := NewHeap()

	_, ok := h.Min()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())

	// DeleteMin on an empty heap must not panic
	h.DeleteMin()
	assert.Equal(t, 0, h.Len())
}

func TestHeapMinOrder(t *testing.T) {
	h := NewHeap()

	h.Insert(Point{Key: "c", At: 30})
	h.Insert(Point{Key: "a", At: 10})
	h.Insert(Point{Key: "b", At: 20})

	min, ok := h.Min()
	require.True(t, ok)
	assert.Equal(t, "a", min.Key)
	assert.Equal(t, int64(10), min.At)

	// Min does not remove
	assert.Equal(t, 3, h.Len())

	h.DeleteMin()
	min, _ = h.Min()
	assert.Equal(t, "b", min.Key)

	h.DeleteMin()
	min, _ = h.Min()
	assert.Equal(t, "c", min.Key)

	h.DeleteMin()
	_, ok = h.Min()
	assert.False(t, ok)
}

func TestHeapDuplicateKeys(t *testing.T) {
	// The same key may be scheduled more than once; the heap keeps both.
	h := NewHeap()

	h.Insert(Point{Key: "k", At: 5})
	h.Insert(Point{Key: "k", At: 500})

	assert.Equal(t, 2, h.Len())

	min, _ := h.Min()
	assert.Equal(t, int64(5), min.At)

	h.DeleteMin()
	min, _ = h.Min()
	assert.Equal(t, int64(500), min.At)
}

func TestHeapEqualTimestamps(t *testing.T) {
	h := NewHeap()

	h.Insert(Point{Key: "x", At: 7})
	h.Insert(Point{Key: "y", At: 7})
	h.Insert(Point{Key: "z", At: 7})

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		min, ok := h.Min()
		require.True(t, ok)
		assert.Equal(t, int64(7), min.At)
		seen[min.Key] = true
		h.DeleteMin()
	}

	// no ordering guarantee among ties, but all must surface exactly once
	assert.Len(t, seen, 3)
}

func TestHeapDrainIsSorted(t *testing.T) {
	const n = 500

	h := NewHeap()
	want := make([]int64, 0, n)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < n; i++ {
		at := rng.Int63n(1000)
		want = append(want, at)
		h.Insert(Point{Key: "k", At: at})
	}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	got := make([]int64, 0, n)
	for {
		min, ok := h.Min()
		if !ok {
			break
		}
		got = append(got, min.At)
		h.DeleteMin()
	}

	assert.Equal(t, want, got)
	assert.Equal(t, 0, h.Len())
}

func TestHeapInterleavedInsertDelete(t *testing.T) {
	h := NewHeap()

	h.Insert(Point{Key: "a", At: 10})
	h.Insert(Point{Key: "b", At: 20})
	h.DeleteMin()
	h.Insert(Point{Key: "c", At: 5})
	h.Insert(Point{Key: "d", At: 15})

	min, _ := h.Min()
	assert.Equal(t, "c", min.Key)

	h.DeleteMin()
	min, _ = h.Min()
	assert.Equal(t, "d", min.Key)

	h.DeleteMin()
	min, _ = h.Min()
	assert.Equal(t, "b", min.Key)
}

package schedule

// Point is one scheduled expiration: "key may need removal at At".
//
// The heap is an append-mostly hint log, not a source of truth. A key that
// is overwritten or deleted keeps its old Point in the heap; the manager
// validates each Point against the entry table when it surfaces at the
// minimum and discards it if it has been superseded. That keeps overwrite
// at O(1) instead of paying O(log n) to dig the old Point out of the heap.
type Point struct {
	Key string
	At  int64 // unix seconds
}

// Heap is a pairing heap of Points ordered by At ascending.
// Ties are broken arbitrarily.
//
// insert and findMin are O(1); deleteMin is O(log n) amortized.
// Not safe for concurrent use; the cache manager is its only owner.
type Heap struct {
	root *node
	size int
}

// node uses the leftmost-child / right-sibling representation.
type node struct {
	point Point
	child *node
	next  *node
}

// NewHeap returns an empty heap.
func NewHeap() *Heap {
	return &Heap{}
}

// Insert adds a schedule point.
func (h *Heap) Insert(p Point) {
	h.root = meld(h.root, &node{point: p})
	h.size++
}

// Min returns the point with the smallest At without removing it.
func (h *Heap) Min() (Point, bool) {
	if h.root == nil {
		return Point{}, false
	}
	return h.root.point, true
}

// DeleteMin removes the minimum point. No-op on an empty heap.
func (h *Heap) DeleteMin() {
	if h.root == nil {
		return
	}
	h.root = mergePairs(h.root.child)
	h.size--
}

// Len returns the number of points in the heap, stale ones included.
func (h *Heap) Len() int {
	return h.size
}

// meld links two heaps, making the larger root a child of the smaller.
func meld(a, b *node) *node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.point.At < a.point.At {
		a, b = b, a
	}
	b.next = a.child
	a.child = b
	return a
}

// mergePairs performs the two-pass pairing combine over a sibling list:
// meld siblings left to right in pairs, then meld the pairs right to left.
func mergePairs(n *node) *node {
	if n == nil || n.next == nil {
		return n
	}

	a, b, rest := n, n.next, n.next.next
	a.next, b.next = nil, nil

	return meld(meld(a, b), mergePairs(rest))
}

// Package segtree implements the iterative, bottom-up segment tree used to
// index one symbol's sample log. A Tree is a flat array of 2*capacity
// aggregate.Node values: leaf i lives at physical index i+capacity, and
// internal node p is the merge of 2p and 2p+1.
//
// Tree is not safe for concurrent use by itself — the caller (pkg/symbolstore)
// holds a single lock across both the sample log and the tree, since the two
// must never be observed out of sync with one another.
package segtree

import "github.com/melatron/hft-service/pkg/aggregate"

// Tree is a flat, capacity-fixed segment tree over aggregate.Node leaves.
type Tree struct {
	nodes    []aggregate.Node
	capacity int
}

// New allocates a tree with room for capacity leaves, all set to the
// identity node.
func New(capacity int) *Tree {
	nodes := make([]aggregate.Node, 2*capacity)
	for i := range nodes {
		nodes[i] = aggregate.Identity()
	}
	return &Tree{nodes: nodes, capacity: capacity}
}

// Capacity returns the number of leaves the tree currently has room for.
func (t *Tree) Capacity() int {
	return t.capacity
}

// Update writes the singleton node for v at leaf index i and repairs every
// ancestor on the path to the root. The caller must ensure 0 <= i < Capacity().
func (t *Tree) Update(i int, v float64) {
	pos := i + t.capacity
	t.nodes[pos] = aggregate.Leaf(v)

	for pos > 1 {
		pos /= 2
		t.nodes[pos] = aggregate.Merge(t.nodes[2*pos], t.nodes[2*pos+1])
	}
}

// Query returns the merge of leaves [l, r] (inclusive). If l > r it returns
// the identity node without touching the tree. The caller must ensure
// 0 <= l and r < Capacity().
//
// The left accumulator folds leftward contributions in left-to-right order
// and the right accumulator folds rightward contributions right-to-left;
// merging them at the end reproduces the serial left-to-right fold over
// [l, r], which is what gives the Welford moments their numerical stability.
func (t *Tree) Query(l, r int) aggregate.Node {
	if l > r {
		return aggregate.Identity()
	}

	left := aggregate.Identity()
	right := aggregate.Identity()

	lo := l + t.capacity
	hi := r + t.capacity

	for lo <= hi {
		if lo%2 == 1 {
			left = aggregate.Merge(left, t.nodes[lo])
			lo++
		}
		if hi%2 == 0 {
			right = aggregate.Merge(t.nodes[hi], right)
			hi--
		}
		lo /= 2
		hi /= 2
	}

	return aggregate.Merge(left, right)
}

// Rebuild allocates a new tree of the given capacity and replays values into
// it in order. It is used when a symbol's sample log outgrows the current
// tree: the caller allocates the larger tree, rebuilds it from the full log,
// and only then continues appending — so the newest sample is never lost to
// a growth that raced ahead of the replay.
func Rebuild(capacity int, values []float64) *Tree {
	t := New(capacity)
	for i, v := range values {
		t.Update(i, v)
	}
	return t
}

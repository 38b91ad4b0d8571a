package rbtree

import (
	"cmp"
	"fmt"

	"github.com/joshuapare/memkit/internal/invariant"
	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/pkg/logger"
)

// Tree is an order-statistics left-leaning red-black tree. The zero value is
// not usable; construct with New or NewOrdered.
type Tree[K, V any] struct {
	root     *node[K, V]
	cmp      func(a, b K) int
	a        alloc.Allocator
	nodeSize int
}

// New returns an empty tree ordered by cmp, which must define a strict
// total order, with node storage drawn from a.
func New[K, V any](cmp func(a, b K) int, a alloc.Allocator) *Tree[K, V] {
	return &Tree[K, V]{
		cmp:      cmp,
		a:        a,
		nodeSize: NodeSize[K, V](),
	}
}

// NewOrdered returns an empty tree over an ordered key type, backed by an
// unbounded alloc.Heap.
func NewOrdered[K cmp.Ordered, V any]() *Tree[K, V] {
	return New[K, V](cmp.Compare[K], &alloc.Heap{})
}

// Len returns the number of keys.
func (t *Tree[K, V]) Len() int { return size(t.root) }

// Insert adds k with value v. Node storage is reserved from the allocation
// capability first; if that fails ErrOutOfMemory is returned and the tree
// is unchanged. If k is already present the existing value is kept and the
// storage is handed back.
func (t *Tree[K, V]) Insert(k K, v V) error {
	ref, _, err := t.a.Alloc(t.nodeSize)
	if err != nil {
		logger.Debug("rbtree: node allocation failed", "size", t.nodeSize, "err", err)
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}

	n := &node[K, V]{key: k, val: v, red: true, size: 1, ref: ref}
	root, added := t.insert(t.root, n)
	if !added {
		t.release(n)
		return nil
	}
	t.root = root
	t.root.red = false
	return nil
}

func (t *Tree[K, V]) insert(h, n *node[K, V]) (*node[K, V], bool) {
	if h == nil {
		return n, true
	}
	var added bool
	switch c := t.cmp(n.key, h.key); {
	case c < 0:
		h.left, added = t.insert(h.left, n)
	case c > 0:
		h.right, added = t.insert(h.right, n)
	default:
		return h, false
	}
	if !added {
		return h, false
	}
	return balance(h), true
}

// Remove deletes k and returns its node storage to the capability. An
// absent key yields ErrNotFound and leaves the tree untouched.
func (t *Tree[K, V]) Remove(k K) error {
	if t.find(k) == nil {
		return fmt.Errorf("%w: %v", ErrNotFound, k)
	}

	if !isRed(t.root.left) && !isRed(t.root.right) {
		t.root.red = true
	}
	var removed *node[K, V]
	t.root, removed = t.delete(t.root, k)
	if t.root != nil {
		t.root.red = false
	}
	invariant.Check(removed != nil && t.cmp(removed.key, k) == 0,
		"rbtree: delete(%v) detached the wrong node", k)
	t.release(removed)
	return nil
}

// delete removes k, which must be present in the subtree at h. It returns
// the new subtree root and the detached node.
func (t *Tree[K, V]) delete(h *node[K, V], k K) (*node[K, V], *node[K, V]) {
	var removed *node[K, V]
	if t.cmp(k, h.key) < 0 {
		if !isRed(h.left) && !isRed(h.left.left) {
			h = moveRedLeft(h)
		}
		h.left, removed = t.delete(h.left, k)
		return balance(h), removed
	}

	if isRed(h.left) {
		h = rotateRight(h)
	}
	if t.cmp(k, h.key) == 0 && h.right == nil {
		return nil, h
	}
	if !isRed(h.right) && !isRed(h.right.left) {
		h = moveRedRight(h)
	}
	if t.cmp(k, h.key) == 0 {
		// Put the successor in h's place and detach h.
		var succ *node[K, V]
		h.right, succ = deleteMin(h.right)
		succ.left, succ.right, succ.red = h.left, h.right, h.red
		h.left, h.right = nil, nil
		removed, h = h, succ
	} else {
		h.right, removed = t.delete(h.right, k)
	}
	return balance(h), removed
}

// Clear removes every key, returning all node storage to the capability.
func (t *Tree[K, V]) Clear() {
	var walk func(h *node[K, V])
	walk = func(h *node[K, V]) {
		if h == nil {
			return
		}
		walk(h.left)
		walk(h.right)
		t.release(h)
	}
	walk(t.root)
	t.root = nil
}

// release hands n's storage back. The capability issued the ref, so a
// refusal means its bookkeeping is corrupt.
func (t *Tree[K, V]) release(n *node[K, V]) {
	if err := t.a.Free(n.ref); err != nil {
		invariant.Fail("rbtree: capability refused node storage %d: %v", n.ref, err)
	}
	n.left, n.right = nil, nil
}

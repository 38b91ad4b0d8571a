package rbtree

import (
	"unsafe"

	"github.com/joshuapare/memkit/mem/alloc"
)

type node[K, V any] struct {
	key   K
	val   V
	left  *node[K, V]
	right *node[K, V]
	red   bool
	size  int       // nodes in this subtree, itself included
	ref   alloc.Ref // storage reserved from the tree's capability
}

// NodeSize returns the number of bytes a Tree[K, V] reserves from its
// allocation capability for each node.
func NodeSize[K, V any]() int {
	return int(unsafe.Sizeof(node[K, V]{}))
}

func isRed[K, V any](h *node[K, V]) bool { return h != nil && h.red }

func size[K, V any](h *node[K, V]) int {
	if h == nil {
		return 0
	}
	return h.size
}

func (h *node[K, V]) resize() { h.size = 1 + size(h.left) + size(h.right) }

// rotateLeft turns a right-leaning red link into a left-leaning one.
func rotateLeft[K, V any](h *node[K, V]) *node[K, V] {
	x := h.right
	h.right = x.left
	x.left = h
	x.red = h.red
	h.red = true
	x.size = h.size
	h.resize()
	return x
}

func rotateRight[K, V any](h *node[K, V]) *node[K, V] {
	x := h.left
	h.left = x.right
	x.right = h
	x.red = h.red
	h.red = true
	x.size = h.size
	h.resize()
	return x
}

// flipColors toggles h and both children. Splits a temporary 4-node on the
// way up, joins siblings on the way down.
func flipColors[K, V any](h *node[K, V]) {
	h.red = !h.red
	h.left.red = !h.left.red
	h.right.red = !h.right.red
}

// moveRedLeft makes h.left or one of its children red, given h is red and
// both h.left and h.left.left are black.
func moveRedLeft[K, V any](h *node[K, V]) *node[K, V] {
	flipColors(h)
	if isRed(h.right.left) {
		h.right = rotateRight(h.right)
		h = rotateLeft(h)
		flipColors(h)
	}
	return h
}

// moveRedRight makes h.right or one of its children red, given h is red and
// both h.right and h.right.left are black.
func moveRedRight[K, V any](h *node[K, V]) *node[K, V] {
	flipColors(h)
	if isRed(h.left.left) {
		h = rotateRight(h)
		flipColors(h)
	}
	return h
}

// balance restores the left-leaning invariants at h and refreshes its size.
func balance[K, V any](h *node[K, V]) *node[K, V] {
	if isRed(h.right) && !isRed(h.left) {
		h = rotateLeft(h)
	}
	if isRed(h.left) && isRed(h.left.left) {
		h = rotateRight(h)
	}
	if isRed(h.left) && isRed(h.right) {
		flipColors(h)
	}
	h.resize()
	return h
}

// deleteMin detaches the minimum of the subtree at h. It returns the new
// subtree root and the detached node, which the caller now owns.
func deleteMin[K, V any](h *node[K, V]) (*node[K, V], *node[K, V]) {
	if h.left == nil {
		return nil, h
	}
	if !isRed(h.left) && !isRed(h.left.left) {
		h = moveRedLeft(h)
	}
	var m *node[K, V]
	h.left, m = deleteMin(h.left)
	return balance(h), m
}

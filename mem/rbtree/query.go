package rbtree

import (
	"fmt"
	"iter"
)

func (t *Tree[K, V]) find(k K) *node[K, V] {
	x := t.root
	for x != nil {
		c := t.cmp(k, x.key)
		switch {
		case c < 0:
			x = x.left
		case c > 0:
			x = x.right
		default:
			return x
		}
	}
	return nil
}

// Get returns the value stored under k.
func (t *Tree[K, V]) Get(k K) (V, bool) {
	if x := t.find(k); x != nil {
		return x.val, true
	}
	var zero V
	return zero, false
}

// Contains reports whether k is present.
func (t *Tree[K, V]) Contains(k K) bool { return t.find(k) != nil }

// Floor returns the greatest key <= k.
func (t *Tree[K, V]) Floor(k K) (K, V, bool) {
	var best *node[K, V]
	x := t.root
	for x != nil {
		c := t.cmp(k, x.key)
		if c == 0 {
			return x.key, x.val, true
		}
		if c < 0 {
			x = x.left
		} else {
			best = x
			x = x.right
		}
	}
	return entry(best)
}

// Ceiling returns the least key >= k.
func (t *Tree[K, V]) Ceiling(k K) (K, V, bool) {
	var best *node[K, V]
	x := t.root
	for x != nil {
		c := t.cmp(k, x.key)
		if c == 0 {
			return x.key, x.val, true
		}
		if c > 0 {
			x = x.right
		} else {
			best = x
			x = x.left
		}
	}
	return entry(best)
}

// ByRank returns the entry at 1-indexed position r in key order.
func (t *Tree[K, V]) ByRank(r int) (K, V, bool) {
	if r < 1 || r > t.Len() {
		return entry[K, V](nil)
	}
	x := t.root
	for {
		ls := size(x.left)
		switch {
		case r <= ls:
			x = x.left
		case r == ls+1:
			return x.key, x.val, true
		default:
			r -= ls + 1
			x = x.right
		}
	}
}

// Rank returns the 1-indexed position of k in key order.
func (t *Tree[K, V]) Rank(k K) (int, error) {
	r := 0
	x := t.root
	for x != nil {
		c := t.cmp(k, x.key)
		switch {
		case c < 0:
			x = x.left
		case c > 0:
			r += size(x.left) + 1
			x = x.right
		default:
			return r + size(x.left) + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrNotFound, k)
}

// Min returns the smallest key.
func (t *Tree[K, V]) Min() (K, bool) {
	if t.root == nil {
		var zero K
		return zero, false
	}
	x := t.root
	for x.left != nil {
		x = x.left
	}
	return x.key, true
}

// Max returns the largest key.
func (t *Tree[K, V]) Max() (K, bool) {
	if t.root == nil {
		var zero K
		return zero, false
	}
	x := t.root
	for x.right != nil {
		x = x.right
	}
	return x.key, true
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[K, V]) Height() int {
	var height func(h *node[K, V]) int
	height = func(h *node[K, V]) int {
		if h == nil {
			return 0
		}
		return 1 + max(height(h.left), height(h.right))
	}
	return height(t.root)
}

// All yields every entry in ascending key order. The tree must not be
// modified during iteration.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var stack []*node[K, V]
		x := t.root
		for x != nil || len(stack) > 0 {
			for x != nil {
				stack = append(stack, x)
				x = x.left
			}
			x = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(x.key, x.val) {
				return
			}
			x = x.right
		}
	}
}

func entry[K, V any](n *node[K, V]) (K, V, bool) {
	if n == nil {
		var k K
		var v V
		return k, v, false
	}
	return n.key, n.val, true
}

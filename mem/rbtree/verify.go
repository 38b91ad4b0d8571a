package rbtree

import "fmt"

// CheckInvariants verifies key order, the left-leaning red-black shape,
// perfect black balance, and every subtree size. It walks the whole tree.
func (t *Tree[K, V]) CheckInvariants() error {
	if isRed(t.root) {
		return fmt.Errorf("root is red")
	}
	_, err := t.check(t.root, nil, nil)
	return err
}

// check returns the black height of h. lo and hi bound the keys allowed in
// the subtree (nil: unbounded).
func (t *Tree[K, V]) check(h *node[K, V], lo, hi *K) (int, error) {
	if h == nil {
		return 0, nil
	}
	if lo != nil && t.cmp(h.key, *lo) <= 0 {
		return 0, fmt.Errorf("key %v not above %v", h.key, *lo)
	}
	if hi != nil && t.cmp(h.key, *hi) >= 0 {
		return 0, fmt.Errorf("key %v not below %v", h.key, *hi)
	}
	if isRed(h.right) {
		return 0, fmt.Errorf("key %v: right-leaning red link", h.key)
	}
	if h.red && isRed(h.left) {
		return 0, fmt.Errorf("key %v: two red links in a row", h.key)
	}
	if want := 1 + size(h.left) + size(h.right); h.size != want {
		return 0, fmt.Errorf("key %v: size %d, want %d", h.key, h.size, want)
	}

	lb, err := t.check(h.left, lo, &h.key)
	if err != nil {
		return 0, err
	}
	rb, err := t.check(h.right, &h.key, hi)
	if err != nil {
		return 0, err
	}
	if lb != rb {
		return 0, fmt.Errorf("key %v: black height %d left, %d right", h.key, lb, rb)
	}
	if !h.red {
		lb++
	}
	return lb, nil
}

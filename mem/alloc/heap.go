package alloc

import "fmt"

// Heap is an Allocator backed by the Go heap. The zero value is ready to use
// and unbounded; a positive Limit caps the number of live blocks, after
// which Alloc fails with ErrNoSpace.
type Heap struct {
	Limit int

	live map[Ref][]byte
	next Ref
}

// Alloc returns a fresh zeroed slice of length size.
func (h *Heap) Alloc(size int) (Ref, []byte, error) {
	if size < 0 {
		return 0, nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	if h.Limit > 0 && len(h.live) >= h.Limit {
		return 0, nil, fmt.Errorf("%w: heap limit of %d blocks reached", ErrNoSpace, h.Limit)
	}
	if h.live == nil {
		h.live = make(map[Ref][]byte)
	}
	h.next++
	b := make([]byte, size)
	h.live[h.next] = b
	return h.next, b, nil
}

// Free forgets ref. Unknown or already freed refs are rejected.
func (h *Heap) Free(ref Ref) error {
	if ref == 0 {
		return nil
	}
	if _, ok := h.live[ref]; !ok {
		return fmt.Errorf("%w: ref %d is not live", ErrBadRef, ref)
	}
	delete(h.live, ref)
	return nil
}

// Live returns the number of outstanding blocks.
func (h *Heap) Live() int { return len(h.live) }

package alloc

// Ref is the address of a block's payload inside an allocator's backing
// region. The zero Ref is never a valid payload address.
type Ref uint64

const (
	// HeaderSize is the number of bytes in front of every payload.
	HeaderSize = 8

	// Guard marks a live block header.
	Guard uint32 = 0x343
)

// Allocator is the allocation capability: reserve storage of at least size
// bytes, and hand it back.
//
// Implementations:
//   - Segregated: fixed pools over one backing region
//   - Heap: Go-heap backed, optionally limited
type Allocator interface {
	// Alloc reserves a block with at least size usable bytes.
	// Returns the block reference, a slice of length size over its payload,
	// and any error.
	Alloc(size int) (Ref, []byte, error)

	// Free returns a block obtained from Alloc.
	Free(ref Ref) error
}

var (
	_ Allocator = (*Segregated)(nil)
	_ Allocator = (*Heap)(nil)
)

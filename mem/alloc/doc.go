// Package alloc provides a segregated-size block allocator built on
// mem/arena, and the Allocator capability consumed by mem/rbtree.
//
// # Overview
//
// A Segregated allocator owns a fixed set of pools, one per configured block
// size. Each pool is an arena.Arena with two lists (free and used), so taking
// a block and giving it back are O(1) list moves. Pools never grow.
//
// # Allocator Interface
//
// The capability every consumer depends on is two operations:
//
//   - Alloc(size): reserve a block with at least size usable bytes
//   - Free(ref): return a block obtained from Alloc
//
// # Implementations
//
// Segregated: production allocator over a single backing region
//
//   - pools sorted ascending by block size
//   - best fit, then escalate to larger pools under pressure
//   - 8-byte guarded header in front of every payload
//
// Heap: Go-heap backed capability with an optional live-allocation limit
//
// # Usage Example
//
//	sa, err := alloc.New([]alloc.PoolSpec{
//	    {BlockSize: 16, Capacity: 4},
//	    {BlockSize: 64, Capacity: 2},
//	})
//	if err != nil {
//	    return err
//	}
//	defer sa.Close()
//
//	ref, buf, err := sa.Alloc(10) // served by the 16-byte pool
//	if err != nil {
//	    return err
//	}
//	copy(buf, "hello")
//
//	ref, buf, err = sa.Realloc(40, ref) // moves to the 64-byte pool
//	err = sa.Free(ref)
//
// # Block Layout
//
// Every block is a header followed by the payload:
//
//	+0  guard      uint32  Guard (0x343) while live, 0 once freed
//	+4  block size uint32  serving pool's block size, header included
//	+8  payload    BlockSize bytes
//
// A Ref is the region offset of the payload, so the header is always the
// HeaderSize bytes immediately preceding it. Free and Realloc reject any
// ref whose header does not carry the guard.
//
// # Pool Selection
//
// Alloc computes need = size + HeaderSize, binary-searches the smallest pool
// whose block size is >= need, and takes the first pool from there upward
// with a free block. It fails with ErrNoSpace only when need exceeds the
// largest pool or every candidate pool is exhausted.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally.
//
// # Related Packages
//
//   - github.com/joshuapare/memkit/mem/arena: the slot lists behind each pool
//   - github.com/joshuapare/memkit/mem/rbtree: accounts node storage through an Allocator
//   - github.com/joshuapare/memkit/mem/allocmetrics: Prometheus collector for pool occupancy
package alloc

package alloc

import (
	"fmt"
	"io"
)

// Stats holds allocator counters.
type Stats struct {
	Allocs         uint64 // Alloc calls, including those made by Realloc
	Frees          uint64 // Successful Free calls
	Reallocs       uint64 // Realloc calls on a valid ref
	ReallocInPlace uint64 // Reallocs that kept the same block
	Escalations    uint64 // Allocations served above the ceiling pool
	OutOfMemory    uint64 // Allocations that failed with ErrNoSpace
	InvalidFrees   uint64 // Free calls rejected with ErrBadRef
}

// PoolStats describes one pool's occupancy.
type PoolStats struct {
	BlockSize int // Usable bytes per block
	Capacity  int // Total blocks
	Used      int // Blocks in use
	Free      int // Blocks available
}

// Stats returns a copy of the allocator counters.
func (sa *Segregated) Stats() Stats { return sa.stats }

// Pools returns per-pool occupancy, ascending by block size.
func (sa *Segregated) Pools() []PoolStats {
	out := make([]PoolStats, len(sa.pools))
	for i, p := range sa.pools {
		out[i] = PoolStats{
			BlockSize: p.bsize - HeaderSize,
			Capacity:  p.capacity,
			Used:      p.used(),
			Free:      p.free(),
		}
	}
	return out
}

// Capacity returns the total usable bytes across all pools.
func (sa *Segregated) Capacity() int64 {
	var total int64
	for _, p := range sa.pools {
		total += int64(p.capacity) * int64(p.bsize-HeaderSize)
	}
	return total
}

// InUse returns the usable bytes of every block currently handed out.
func (sa *Segregated) InUse() int64 {
	var total int64
	for _, p := range sa.pools {
		total += int64(p.used()) * int64(p.bsize-HeaderSize)
	}
	return total
}

// PrintStats writes a human-readable pool table and the counters to w.
func (sa *Segregated) PrintStats(w io.Writer) {
	fmt.Fprintf(w, "%10s %10s %10s %10s\n", "BLOCK", "CAPACITY", "USED", "FREE")
	for _, ps := range sa.Pools() {
		fmt.Fprintf(w, "%10d %10d %10d %10d\n", ps.BlockSize, ps.Capacity, ps.Used, ps.Free)
	}
	s := sa.stats
	fmt.Fprintf(w, "allocs=%d frees=%d reallocs=%d (in place %d) escalations=%d oom=%d invalid_frees=%d\n",
		s.Allocs, s.Frees, s.Reallocs, s.ReallocInPlace, s.Escalations, s.OutOfMemory, s.InvalidFrees)
}

package alloc

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/invariant"
	"github.com/joshuapare/memkit/internal/region"
	"github.com/joshuapare/memkit/pkg/logger"
)

// Segregated is a segregated-size block allocator: a fixed set of pools
// sorted by block size, carved out of one backing region.
type Segregated struct {
	pools     []*pool // ascending by block size
	sizeTable *sizeClassTable

	data    []byte // backing region shared by all pools
	release func() error

	log   *slog.Logger // nil: use logger.L at call time
	stats Stats
}

// Option configures a Segregated allocator.
type Option func(*options)

type options struct {
	log  *slog.Logger
	heap bool
}

// WithLogger routes the allocator's diagnostics to l instead of logger.L.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithHeapBacking places the pools' storage on the Go heap instead of an
// anonymous memory mapping.
func WithHeapBacking() Option {
	return func(o *options) { o.heap = true }
}

// New creates a segregated allocator with one pool per spec. specs is not
// modified; pools are ordered ascending by block size (stable for equal
// sizes).
func New(specs []PoolSpec, opts ...Option) (*Segregated, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if len(specs) == 0 {
		return nil, ErrNoPools
	}

	sorted := slices.Clone(specs)
	slices.SortStableFunc(sorted, func(a, b PoolSpec) int {
		return cmp.Compare(a.BlockSize, b.BlockSize)
	})

	// Lay the pools out back to back and validate the total before
	// reserving any storage.
	total := 0
	for _, s := range sorted {
		if s.BlockSize <= 0 || s.Capacity <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrBadSpec, s)
		}
		bsize, ok := buf.AddOverflowSafe(s.BlockSize, HeaderSize)
		if !ok || uint64(bsize) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: block size %d not addressable", ErrBadSpec, s.BlockSize)
		}
		span, ok := buf.MulOverflowSafe(bsize, s.Capacity)
		if !ok {
			return nil, fmt.Errorf("%w: %s overflows", ErrBadSpec, s)
		}
		if total, ok = buf.AddOverflowSafe(total, span); !ok {
			return nil, fmt.Errorf("%w: total pool storage overflows", ErrBadSpec)
		}
	}

	sa := &Segregated{
		pools: make([]*pool, 0, len(sorted)),
		log:   o.log,
	}
	base := 0
	sizes := make([]int, 0, len(sorted))
	for _, s := range sorted {
		p, err := newPool(base, s.BlockSize+HeaderSize, s.Capacity)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadSpec, s, err)
		}
		sa.pools = append(sa.pools, p)
		sizes = append(sizes, p.bsize)
		base += p.size()
	}
	sa.sizeTable = newSizeClassTable(sizes)

	var err error
	if o.heap {
		sa.data, sa.release = make([]byte, total), func() error { return nil }
	} else if sa.data, sa.release, err = region.Map(total); err != nil {
		return nil, err
	}

	sa.logger().Debug("alloc: pools configured",
		"pools", len(sa.pools), "bytes", total, "heap", o.heap)
	return sa, nil
}

func (sa *Segregated) logger() *slog.Logger {
	if sa.log != nil {
		return sa.log
	}
	return logger.L
}

// Alloc reserves a block with at least size usable bytes from the tightest
// pool that fits, escalating to larger pools when it is exhausted. The
// returned slice has length size and capacity equal to the block's usable
// size.
func (sa *Segregated) Alloc(size int) (Ref, []byte, error) {
	if sa.data == nil {
		return 0, nil, ErrClosed
	}
	if size < 0 {
		return 0, nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	sa.stats.Allocs++

	need, ok := buf.AddOverflowSafe(size, HeaderSize)
	first := -1
	if ok {
		first = sa.sizeTable.ceiling(need)
	}
	if first < 0 {
		sa.stats.OutOfMemory++
		sa.logger().Debug("alloc: request exceeds largest pool",
			"size", size, "largest", sa.pools[len(sa.pools)-1].bsize-HeaderSize)
		return 0, nil, fmt.Errorf("%w: %d bytes exceeds the largest pool", ErrNoSpace, size)
	}

	for i := first; i < len(sa.pools); i++ {
		p := sa.pools[i]
		off, ok := p.take()
		if !ok {
			continue
		}
		if i != first {
			sa.stats.Escalations++
			sa.logger().Debug("alloc: escalated to larger pool",
				"size", size, "ceiling", sa.pools[first].bsize, "served", p.bsize)
		}
		sa.stampHeader(off, p.bsize)
		ref := Ref(off + HeaderSize)
		return ref, sa.data[off+HeaderSize : off+HeaderSize+size : off+p.bsize], nil
	}

	sa.stats.OutOfMemory++
	sa.logger().Debug("alloc: fitting pools exhausted",
		"size", size, "ceiling", sa.pools[first].bsize)
	return 0, nil, fmt.Errorf("%w: every pool >= %d bytes is full", ErrNoSpace, sa.pools[first].bsize)
}

// Free returns a block obtained from Alloc or Realloc. The zero Ref is
// ignored. A ref whose header lacks the guard (foreign, already freed, or
// corrupted) is rejected with ErrBadRef and nothing changes.
func (sa *Segregated) Free(ref Ref) error {
	if sa.data == nil {
		return ErrClosed
	}
	if ref == 0 {
		return nil
	}
	off, bsize, err := sa.header(ref)
	if err != nil {
		sa.stats.InvalidFrees++
		sa.logger().Debug("alloc: rejected free", "ref", uint64(ref), "err", err)
		return err
	}
	p := sa.poolFor(bsize, off)
	if p == nil {
		sa.stats.InvalidFrees++
		return fmt.Errorf("%w: no %d-byte pool owns ref %d", ErrBadRef, bsize, ref)
	}
	if err := p.give(off); err != nil {
		sa.stats.InvalidFrees++
		return err
	}
	sa.clearHeader(off)
	sa.stats.Frees++
	return nil
}

// Realloc grows the block at ref to at least size usable bytes. When the
// block already fits, ref is returned unchanged; blocks never shrink in
// place. Otherwise the payload moves to a new block and the old one is
// freed. If no new block is available the error is returned and ref stays
// valid and owned by the caller.
func (sa *Segregated) Realloc(size int, ref Ref) (Ref, []byte, error) {
	if sa.data == nil {
		return 0, nil, ErrClosed
	}
	if size < 0 {
		return 0, nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	off, bsize, err := sa.header(ref)
	if err != nil {
		return 0, nil, err
	}
	sa.stats.Reallocs++

	usable := bsize - HeaderSize
	if usable >= size {
		sa.stats.ReallocInPlace++
		return ref, sa.data[int(ref) : int(ref)+size : off+bsize], nil
	}

	nref, nbuf, err := sa.Alloc(size)
	if err != nil {
		return 0, nil, err
	}
	copy(nbuf, sa.data[int(ref):int(ref)+usable])
	if err := sa.Free(ref); err != nil {
		invariant.Fail("realloc: free of validated ref %d: %v", ref, err)
	}
	return nref, nbuf, nil
}

// Bytes returns the full usable payload of the live block at ref.
func (sa *Segregated) Bytes(ref Ref) ([]byte, error) {
	if sa.data == nil {
		return nil, ErrClosed
	}
	off, bsize, err := sa.header(ref)
	if err != nil {
		return nil, err
	}
	return sa.data[int(ref) : off+bsize : off+bsize], nil
}

// UsableSize returns the payload capacity of the live block at ref.
func (sa *Segregated) UsableSize(ref Ref) (int, error) {
	if sa.data == nil {
		return 0, ErrClosed
	}
	_, bsize, err := sa.header(ref)
	if err != nil {
		return 0, err
	}
	return bsize - HeaderSize, nil
}

// Close releases the backing region. Every outstanding ref and payload
// slice becomes invalid; using a payload slice after Close is undefined.
func (sa *Segregated) Close() error {
	if sa.data == nil {
		return nil
	}
	sa.data = nil
	err := sa.release()
	sa.release = nil
	return err
}

// header validates the header in front of ref and returns the block's
// header offset and recorded block size.
func (sa *Segregated) header(ref Ref) (int, int, error) {
	if ref < HeaderSize || ref > Ref(len(sa.data)) {
		return 0, 0, fmt.Errorf("%w: ref %d outside the region", ErrBadRef, ref)
	}
	off := int(ref) - HeaderSize
	hdr, _ := buf.Slice(sa.data, off, HeaderSize)
	if buf.U32LE(hdr) != Guard {
		return 0, 0, fmt.Errorf("%w: ref %d has no guard", ErrBadRef, ref)
	}
	bsize := int(buf.U32LE(hdr[4:]))
	if bsize <= HeaderSize || off+bsize > len(sa.data) {
		return 0, 0, fmt.Errorf("%w: ref %d records block size %d", ErrBadRef, ref, bsize)
	}
	return off, bsize, nil
}

func (sa *Segregated) stampHeader(off, bsize int) {
	buf.PutU32LE(sa.data[off:], Guard)
	buf.PutU32LE(sa.data[off+4:], uint32(bsize))
}

func (sa *Segregated) clearHeader(off int) {
	buf.PutU32LE(sa.data[off:], 0)
}

// poolFor finds the pool with block size bsize that owns the block at off.
// Pools of equal size are adjacent after sorting.
func (sa *Segregated) poolFor(bsize, off int) *pool {
	i := sa.sizeTable.exact(bsize)
	if i < 0 {
		return nil
	}
	for ; i < len(sa.pools) && sa.pools[i].bsize == bsize; i++ {
		if sa.pools[i].contains(off) {
			return sa.pools[i]
		}
	}
	return nil
}

package alloc

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/invariant"
	"github.com/joshuapare/memkit/mem/arena"
)

const (
	listFree = arena.Pool
	listUsed = 1
)

// block is one pool slot's bookkeeping. The bytes themselves live in the
// allocator's region at off.
type block struct {
	off  int // region offset of the block header
	used bool
}

// pool is one fixed-block-size size class.
type pool struct {
	bsize    int // bytes per block, header included
	capacity int
	base     int // region offset of the first block
	blocks   *arena.Arena[block]
}

func newPool(base, bsize, capacity int) (*pool, error) {
	blocks, err := arena.New[block](capacity, 1)
	if err != nil {
		return nil, err
	}
	for id, b := range blocks.All(listFree) {
		b.off = base + id*bsize
	}
	return &pool{
		bsize:    bsize,
		capacity: capacity,
		base:     base,
		blocks:   blocks,
	}, nil
}

// size returns the number of region bytes the pool spans.
func (p *pool) size() int { return p.capacity * p.bsize }

func (p *pool) contains(off int) bool {
	return off >= p.base && off < p.base+p.size()
}

func (p *pool) used() int { return p.blocks.Count(listUsed) }

func (p *pool) free() int { return p.blocks.Count(listFree) }

// take moves one block from free to used and returns its header offset.
func (p *pool) take() (int, bool) {
	id, err := p.blocks.Append(listUsed)
	if err != nil {
		return 0, false
	}
	b, _ := p.blocks.Get(id)
	b.used = true
	return b.off, true
}

// give returns the used block whose header is at off to the free list.
func (p *pool) give(off int) error {
	if !p.contains(off) || (off-p.base)%p.bsize != 0 {
		return fmt.Errorf("%w: offset %d is not a block of the %d-byte pool", ErrBadRef, off, p.bsize)
	}
	id := (off - p.base) / p.bsize
	b, _ := p.blocks.Get(id)
	if !b.used || b.off != off {
		return fmt.Errorf("%w: block at offset %d is not in use", ErrBadRef, off)
	}

	// The block is validated: the arena must be able to retire it.
	if err := p.blocks.Swap(id, p.blocks.Head(listUsed)); err != nil {
		invariant.Fail("pool %d: swap used block %d to head: %v", p.bsize, id, err)
	}
	if _, err := p.blocks.Remove(listUsed); err != nil {
		invariant.Fail("pool %d: remove used block %d: %v", p.bsize, id, err)
	}
	b.used = false
	return nil
}

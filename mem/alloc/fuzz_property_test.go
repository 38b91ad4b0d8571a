package alloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Fuzz_RandomOps drives a random mix of alloc/free/realloc against an
// allocator and checks that payloads survive, counts add up, and every
// pool's arena stays consistent.
func Test_Fuzz_RandomOps(t *testing.T) {
	sa := newTestAllocator(t, PoolSpec{16, 8}, PoolSpec{48, 6}, PoolSpec{128, 4})
	rng := rand.New(rand.NewSource(7))

	type live struct {
		ref  Ref
		size int
		fill byte
	}
	var blocks []live

	check := func(b live) {
		data, err := sa.Bytes(b.ref)
		require.NoError(t, err)
		for i := range b.size {
			require.Equal(t, b.fill, data[i], "ref %d byte %d", b.ref, i)
		}
	}

	for step := range 2000 {
		switch op := rng.Intn(3); {
		case op == 0 || len(blocks) == 0:
			size := rng.Intn(129)
			ref, data, err := sa.Alloc(size)
			if err != nil {
				require.ErrorIs(t, err, ErrNoSpace, "step %d", step)
				continue
			}
			fill := byte(step)
			for i := range data {
				data[i] = fill
			}
			blocks = append(blocks, live{ref, size, fill})
		case op == 1:
			i := rng.Intn(len(blocks))
			check(blocks[i])
			require.NoError(t, sa.Free(blocks[i].ref), "step %d", step)
			blocks = append(blocks[:i], blocks[i+1:]...)
		default:
			i := rng.Intn(len(blocks))
			b := blocks[i]
			size := rng.Intn(129)
			ref, data, err := sa.Realloc(size, b.ref)
			if err != nil {
				require.ErrorIs(t, err, ErrNoSpace, "step %d", step)
				check(b)
				continue
			}
			kept := min(b.size, size)
			for j := range kept {
				require.Equal(t, b.fill, data[j], "step %d: realloc lost byte %d", step, j)
			}
			for j := kept; j < size; j++ {
				data[j] = b.fill
			}
			blocks[i] = live{ref, max(size, kept), b.fill}
			if ref == b.ref {
				blocks[i].size = max(size, b.size)
			}
		}

		used := 0
		for _, ps := range sa.Pools() {
			used += ps.Used
		}
		require.Equal(t, len(blocks), used, "step %d", step)
	}

	assertInvariants(t, sa)
	for _, b := range blocks {
		check(b)
		require.NoError(t, sa.Free(b.ref))
	}
	assertInvariants(t, sa)
}

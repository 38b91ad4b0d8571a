package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/pkg/logger"
)

// newTestAllocator builds an allocator over specs with a quiet logger and
// closes it when the test ends.
func newTestAllocator(t *testing.T, specs ...PoolSpec) *Segregated {
	t.Helper()
	sa, err := New(specs, WithLogger(logger.Discard()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sa.Close() })
	return sa
}

// poolIndexOf returns the index of the pool whose blocks contain ref.
func poolIndexOf(t *testing.T, sa *Segregated, ref Ref) int {
	t.Helper()
	off := int(ref) - HeaderSize
	for i, p := range sa.pools {
		if p.contains(off) {
			return i
		}
	}
	t.Fatalf("ref %d is not inside any pool", ref)
	return -1
}

// assertInvariants checks every pool's arena, its counts, and that headers
// are stamped exactly on the used blocks.
func assertInvariants(t *testing.T, sa *Segregated) {
	t.Helper()
	for i, p := range sa.pools {
		require.NoError(t, p.blocks.CheckInvariants(), "pool %d arena", i)
		require.Equal(t, p.capacity, p.used()+p.free(), "pool %d counts", i)
		for _, b := range p.blocks.All(listUsed) {
			require.True(t, b.used, "pool %d: used list holds free block at %d", i, b.off)
			require.Equal(t, Guard, buf.U32LE(sa.data[b.off:]), "pool %d: guard at %d", i, b.off)
			require.Equal(t, uint32(p.bsize), buf.U32LE(sa.data[b.off+4:]), "pool %d: size at %d", i, b.off)
		}
		for _, b := range p.blocks.All(listFree) {
			require.False(t, b.used, "pool %d: free list holds used block at %d", i, b.off)
			require.NotEqual(t, Guard, buf.U32LE(sa.data[b.off:]), "pool %d: stale guard at %d", i, b.off)
		}
	}
}

package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeap_ZeroValueUsable(t *testing.T) {
	var h Heap

	ref, b, err := h.Alloc(12)
	require.NoError(t, err)
	assert.NotZero(t, ref)
	assert.Len(t, b, 12)
	assert.Equal(t, 1, h.Live())

	require.NoError(t, h.Free(ref))
	assert.Zero(t, h.Live())
	require.ErrorIs(t, h.Free(ref), ErrBadRef)
	require.NoError(t, h.Free(0))
}

func TestHeap_Limit(t *testing.T) {
	h := Heap{Limit: 2}

	a, _, err := h.Alloc(1)
	require.NoError(t, err)
	_, _, err = h.Alloc(1)
	require.NoError(t, err)

	_, _, err = h.Alloc(1)
	require.ErrorIs(t, err, ErrNoSpace)
	assert.Equal(t, 2, h.Live())

	require.NoError(t, h.Free(a))
	_, _, err = h.Alloc(1)
	require.NoError(t, err)
}

func TestHeap_RefsAreUnique(t *testing.T) {
	var h Heap
	seen := map[Ref]bool{}
	for range 16 {
		ref, _, err := h.Alloc(0)
		require.NoError(t, err)
		require.False(t, seen[ref])
		seen[ref] = true
		require.NoError(t, h.Free(ref))
	}
}

func TestHeap_NegativeSize(t *testing.T) {
	var h Heap
	_, _, err := h.Alloc(-3)
	require.ErrorIs(t, err, ErrBadSize)
}

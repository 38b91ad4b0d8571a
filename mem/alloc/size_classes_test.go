package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoolSpecs(t *testing.T) {
	specs, err := ParsePoolSpecs(" 16:4, 64:2 ")
	require.NoError(t, err)
	assert.Equal(t, []PoolSpec{{16, 4}, {64, 2}}, specs)
	assert.Equal(t, "16:4", specs[0].String())

	for _, bad := range []string{"", "16", "x:4", "16:y", "16:4,,"} {
		_, err := ParsePoolSpecs(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestSizeClassConfig_Specs(t *testing.T) {
	specs := TreeNodes.Specs()
	sizes := make([]int, len(specs))
	for i, s := range specs {
		sizes[i] = s.BlockSize
		assert.Equal(t, TreeNodes.Capacity, s.Capacity)
	}
	assert.Equal(t, []int{32, 64, 96, 128, 256}, sizes)

	balanced := ConfigBalanced.Specs()
	assert.Len(t, balanced, 37)
	assert.Equal(t, 16, balanced[0].BlockSize)
	assert.Equal(t, 16384, balanced[len(balanced)-1].BlockSize)
}

func TestSizeClassConfig_SpecsBuildAllocator(t *testing.T) {
	sa := newTestAllocator(t, ConfigFineGrained.Specs()...)
	ref, _, err := sa.Alloc(100)
	require.NoError(t, err)
	usable, err := sa.UsableSize(ref)
	require.NoError(t, err)
	assert.Equal(t, 104, usable)
}

func TestSizeClassTable_Ceiling(t *testing.T) {
	tbl := newSizeClassTable([]int{24, 40, 40, 72})

	tests := []struct {
		need int
		want int
	}{
		{1, 0},
		{24, 0},
		{25, 1},
		{40, 1},
		{41, 3},
		{72, 3},
		{73, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tbl.ceiling(tt.need), "need %d", tt.need)
	}
	assert.Equal(t, 1, tbl.exact(40))
	assert.Equal(t, -1, tbl.exact(41))
	assert.Equal(t, 4, tbl.NumClasses())
}

package alloc

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// PoolSpec configures one pool: BlockSize usable bytes per block (the
// header is added on top) and Capacity blocks.
type PoolSpec struct {
	BlockSize int `yaml:"block_size" json:"block_size"`
	Capacity  int `yaml:"capacity"   json:"capacity"`
}

// String renders s as "blockSize:capacity", the form ParsePoolSpecs reads.
func (s PoolSpec) String() string {
	return strconv.Itoa(s.BlockSize) + ":" + strconv.Itoa(s.Capacity)
}

// ParsePoolSpecs parses a comma-separated list of "blockSize:capacity" pairs,
// e.g. "16:4,64:2".
func ParsePoolSpecs(s string) ([]PoolSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrNoPools
	}
	var specs []PoolSpec
	for field := range strings.SplitSeq(s, ",") {
		bs, capStr, ok := strings.Cut(strings.TrimSpace(field), ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not blockSize:capacity", ErrBadSpec, field)
		}
		blockSize, err := strconv.Atoi(strings.TrimSpace(bs))
		if err != nil {
			return nil, fmt.Errorf("%w: block size %q: %v", ErrBadSpec, bs, err)
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(capStr))
		if err != nil {
			return nil, fmt.Errorf("%w: capacity %q: %v", ErrBadSpec, capStr, err)
		}
		specs = append(specs, PoolSpec{BlockSize: blockSize, Capacity: capacity})
	}
	return specs, nil
}

// SizeClassConfig describes a family of pool sizes: linear increments for
// small blocks, then geometric growth up to MediumMax. Every pool gets the
// same Capacity.
type SizeClassConfig struct {
	// Name for this configuration (for reports)
	Name string

	// Small block settings (linear increments)
	SmallMin       int // Smallest block size
	SmallMax       int // Max for linear increments
	SmallIncrement int // Step between small block sizes

	// Medium block settings (geometric growth)
	MediumMax    int     // Largest block size
	GrowthFactor float64 // Growth factor between medium sizes (> 1)

	Capacity int // Blocks per pool
}

// Predefined configurations.
var (
	// ConfigFineGrained: many small buckets, low internal fragmentation.
	// 8-256 step 8 (31 pools) + 256-16K growth 1.5 (~11 pools).
	ConfigFineGrained = SizeClassConfig{
		Name:           "FineGrained",
		SmallMin:       8,
		SmallMax:       256,
		SmallIncrement: 8,
		MediumMax:      16384,
		GrowthFactor:   1.5,
		Capacity:       256,
	}

	// Balanced: good balance between pool count and granularity.
	// 16-512 step 16 (31 pools) + 512-16K growth 2.0 (6 pools).
	ConfigBalanced = SizeClassConfig{
		Name:           "Balanced",
		SmallMin:       16,
		SmallMax:       512,
		SmallIncrement: 16,
		MediumMax:      16384,
		GrowthFactor:   2.0,
		Capacity:       128,
	}

	// TreeNodes: a handful of small pools sized for rbtree nodes.
	TreeNodes = SizeClassConfig{
		Name:           "TreeNodes",
		SmallMin:       32,
		SmallMax:       128,
		SmallIncrement: 32,
		MediumMax:      256,
		GrowthFactor:   2.0,
		Capacity:       4096,
	}

	// DefaultConfig is used when no configuration is specified.
	DefaultConfig = ConfigBalanced
)

// Specs expands the configuration into pool specs, ascending by block size.
func (c SizeClassConfig) Specs() []PoolSpec {
	specs := make([]PoolSpec, 0, 64)

	// Phase 1: linear increments
	size := c.SmallMin
	if c.SmallIncrement > 0 {
		for ; size < c.SmallMax; size += c.SmallIncrement {
			specs = append(specs, PoolSpec{BlockSize: size, Capacity: c.Capacity})
		}
	}

	// Phase 2: geometric growth
	for size <= c.MediumMax && size > 0 {
		specs = append(specs, PoolSpec{BlockSize: size, Capacity: c.Capacity})
		next := int(math.Ceil(float64(size) * c.GrowthFactor))
		if next <= size {
			next = size + 1 // Ensure progress
		}
		size = next
	}
	return specs
}

// sizeClassTable holds the block sizes of the sorted pools.
type sizeClassTable struct {
	boundaries []int // pool block sizes (header included), ascending
}

func newSizeClassTable(blockSizes []int) *sizeClassTable {
	return &sizeClassTable{boundaries: blockSizes}
}

// ceiling returns the index of the smallest block size >= need, or -1 when
// need exceeds every pool.
func (t *sizeClassTable) ceiling(need int) int {
	lo, hi := 0, len(t.boundaries)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if need <= t.boundaries[mid] {
			// Check if this is the smallest boundary that fits
			if mid == 0 || need > t.boundaries[mid-1] {
				return mid
			}
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return -1
}

// exact returns the index of the first pool with exactly blockSize, or -1.
func (t *sizeClassTable) exact(blockSize int) int {
	i, found := slices.BinarySearch(t.boundaries, blockSize)
	if !found {
		return -1
	}
	return i
}

// NumClasses returns the number of pools.
func (t *sizeClassTable) NumClasses() int {
	return len(t.boundaries)
}

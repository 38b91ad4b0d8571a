package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/memkit/mem/alloc"
)

// poolReport is the JSON form of one pool's occupancy.
type poolReport struct {
	BlockSize int    `json:"block_size"`
	Capacity  int    `json:"capacity"`
	Used      int    `json:"used"`
	Free      int    `json:"free"`
	Bytes     string `json:"bytes"`
}

func poolReports(sa *alloc.Segregated) []poolReport {
	pools := sa.Pools()
	out := make([]poolReport, len(pools))
	for i, ps := range pools {
		out[i] = poolReport{
			BlockSize: ps.BlockSize,
			Capacity:  ps.Capacity,
			Used:      ps.Used,
			Free:      ps.Free,
			Bytes:     humanize.IBytes(uint64(ps.BlockSize * ps.Capacity)),
		}
	}
	return out
}

// printPools writes the pool table and allocator counters.
func printPools(sa *alloc.Segregated) {
	if quiet {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "BLOCK\tCAPACITY\tUSED\tFREE\tBYTES\t")
	for _, r := range poolReports(sa) {
		fmt.Fprintln(w, numbers.Sprintf("%d\t%d\t%d\t%d\t%s\t", r.BlockSize, r.Capacity, r.Used, r.Free, r.Bytes))
	}
	w.Flush()

	st := sa.Stats()
	printInfo("\n%s\n", styled(headerStyle, fmt.Sprintf("%s of %s in use",
		humanize.IBytes(uint64(sa.InUse())), humanize.IBytes(uint64(sa.Capacity())))))
	printInfo("%s\n", styled(mutedStyle, numbers.Sprintf("allocs=%d frees=%d reallocs=%d escalations=%d oom=%d invalid_frees=%d",
		st.Allocs, st.Frees, st.Reallocs, st.Escalations, st.OutOfMemory, st.InvalidFrees)))
}

// newAllocator builds the allocator for a pools flag value.
func newAllocator(pools string, heap bool) (*alloc.Segregated, error) {
	specs, err := alloc.ParsePoolSpecs(pools)
	if err != nil {
		return nil, err
	}
	return buildAllocator(specs, heap)
}

func buildAllocator(specs []alloc.PoolSpec, heap bool) (*alloc.Segregated, error) {
	var opts []alloc.Option
	if heap {
		opts = append(opts, alloc.WithHeapBacking())
	}
	sa, err := alloc.New(specs, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to configure pools: %w", err)
	}
	printVerbose("Configured %d pools\n", len(specs))
	return sa, nil
}

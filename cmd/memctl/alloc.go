package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/mem/alloc"
)

var (
	allocPools string
	allocHeap  bool
)

func init() {
	cmd := newAllocCmd()
	cmd.Flags().StringVar(&allocPools, "pools", "16:4,64:2", "Pool layout as blockSize:capacity pairs")
	cmd.Flags().BoolVar(&allocHeap, "heap", false, "Back the pools with the Go heap instead of mmap")
	rootCmd.AddCommand(cmd)
}

func newAllocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alloc <size>...",
		Short: "Allocate blocks and show which pool served each",
		Long: `The alloc command configures a segregated allocator and allocates one
block per size argument, in order, reporting the block that served each
request and the final pool occupancy.

Example:
  memctl alloc 10 10 10 10 10
  memctl alloc --pools 32:8,128:4 20 100 200
  memctl alloc --json 10 50`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlloc(args)
		},
	}
	return cmd
}

// allocResult is one request's outcome.
type allocResult struct {
	Size   int    `json:"size"`
	Ref    uint64 `json:"ref,omitempty"`
	Block  int    `json:"block,omitempty"`
	Error  string `json:"error,omitempty"`
	Failed bool   `json:"failed"`
}

func runAlloc(args []string) error {
	sizes := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid size %q", a)
		}
		sizes[i] = n
	}

	sa, err := newAllocator(allocPools, allocHeap)
	if err != nil {
		return err
	}
	defer sa.Close()

	results := make([]allocResult, 0, len(sizes))
	for _, size := range sizes {
		results = append(results, allocOne(sa, size))
	}

	if jsonOut {
		return printJSON(struct {
			Results []allocResult `json:"results"`
			Pools   []poolReport  `json:"pools"`
		}{results, poolReports(sa)})
	}

	for _, r := range results {
		if r.Failed {
			printInfo("alloc(%d) -> %s\n", r.Size, styled(errorStyle, r.Error))
			continue
		}
		printInfo("alloc(%d) -> ref=%d block=%d\n", r.Size, r.Ref, r.Block)
	}
	printInfo("\n")
	printPools(sa)
	return nil
}

func allocOne(sa *alloc.Segregated, size int) allocResult {
	ref, _, err := sa.Alloc(size)
	if err != nil {
		return allocResult{Size: size, Error: outcome(err), Failed: true}
	}
	usable, err := sa.UsableSize(ref)
	if err != nil {
		return allocResult{Size: size, Error: outcome(err), Failed: true}
	}
	return allocResult{Size: size, Ref: uint64(ref), Block: usable}
}

// outcome names an allocator error the way scenario files spell it.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, alloc.ErrNoSpace):
		return "out_of_memory"
	case errors.Is(err, alloc.ErrBadRef):
		return "bad_ref"
	case errors.Is(err, alloc.ErrBadSize):
		return "bad_size"
	default:
		return err.Error()
	}
}

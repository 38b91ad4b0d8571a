package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/memkit/mem/alloc"
)

var runHeap bool

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVar(&runHeap, "heap", false, "Back the pools with the Go heap instead of mmap")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Replay an allocation scenario",
		Long: `The run command reads a YAML scenario declaring a pool layout and a
list of operations, replays them against a fresh allocator, and reports
each outcome followed by the final pool occupancy.

Blocks are named by label. An operation may state the outcome it expects
(ok, out_of_memory, bad_ref); the command fails if any outcome differs.

Example scenario:
  pools:
    - {block_size: 16, capacity: 4}
    - {block_size: 64, capacity: 2}
  ops:
    - {op: alloc, label: a, size: 10}
    - {op: realloc, label: a, size: 40}
    - {op: free, label: a}
    - {op: free, label: a, expect: bad_ref}

Example:
  memctl run scenario.yaml
  memctl run scenario.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(args[0])
		},
	}
	return cmd
}

// Scenario is the YAML document read by the run command.
type Scenario struct {
	Pools []alloc.PoolSpec `yaml:"pools"`
	Ops   []Op             `yaml:"ops"`
}

// Op is one scenario step.
type Op struct {
	Op     string `yaml:"op"` // alloc, free, realloc
	Label  string `yaml:"label"`
	Size   int    `yaml:"size"`
	Expect string `yaml:"expect"` // default ok
}

type opResult struct {
	Step    int    `json:"step"`
	Op      string `json:"op"`
	Label   string `json:"label"`
	Size    int    `json:"size,omitempty"`
	Ref     uint64 `json:"ref,omitempty"`
	Outcome string `json:"outcome"`
	Match   bool   `json:"match"`
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	for i, op := range sc.Ops {
		switch op.Op {
		case "alloc", "free", "realloc":
		default:
			return nil, fmt.Errorf("op %d: unknown operation %q", i+1, op.Op)
		}
		if op.Label == "" {
			return nil, fmt.Errorf("op %d: missing label", i+1)
		}
	}
	return &sc, nil
}

func runScenario(path string) error {
	printVerbose("Loading scenario: %s\n", path)
	sc, err := loadScenario(path)
	if err != nil {
		return err
	}

	sa, err := buildAllocator(sc.Pools, runHeap)
	if err != nil {
		return err
	}
	defer sa.Close()

	results := replay(sa, sc.Ops)

	mismatches := 0
	for _, r := range results {
		if !r.Match {
			mismatches++
		}
	}

	if jsonOut {
		if err := printJSON(struct {
			Results []opResult   `json:"results"`
			Pools   []poolReport `json:"pools"`
		}{results, poolReports(sa)}); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			mark := ""
			if !r.Match {
				mark = "  " + styled(errorStyle, "(unexpected)")
			}
			switch r.Op {
			case "free":
				printInfo("%3d  free(%s) -> %s%s\n", r.Step, r.Label, r.Outcome, mark)
			default:
				printInfo("%3d  %s(%s, %d) -> %s ref=%d%s\n", r.Step, r.Op, r.Label, r.Size, r.Outcome, r.Ref, mark)
			}
		}
		printInfo("\n")
		printPools(sa)
	}

	if mismatches > 0 {
		return fmt.Errorf("%d of %d operations had unexpected outcomes", mismatches, len(results))
	}
	return nil
}

// replay applies ops in order. Labels map to the last ref an operation
// produced for them; a label that was never allocated resolves to a ref
// the allocator rejects.
func replay(sa *alloc.Segregated, ops []Op) []opResult {
	refs := make(map[string]alloc.Ref)
	results := make([]opResult, 0, len(ops))

	for i, op := range ops {
		r := opResult{Step: i + 1, Op: op.Op, Label: op.Label, Size: op.Size}
		var err error
		switch op.Op {
		case "alloc":
			var ref alloc.Ref
			if ref, _, err = sa.Alloc(op.Size); err == nil {
				refs[op.Label] = ref
				r.Ref = uint64(ref)
			}
		case "realloc":
			var ref alloc.Ref
			if ref, _, err = sa.Realloc(op.Size, refs[op.Label]); err == nil {
				refs[op.Label] = ref
				r.Ref = uint64(ref)
			}
		case "free":
			ref, ok := refs[op.Label]
			if !ok {
				// Unknown labels must not turn into the ignored zero ref.
				ref = alloc.Ref(^uint64(0))
			}
			err = sa.Free(ref)
		}

		r.Outcome = outcome(err)
		want := op.Expect
		if want == "" {
			want = "ok"
		}
		r.Match = r.Outcome == want
		results = append(results, r)
	}
	return results
}

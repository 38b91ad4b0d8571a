package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const escalationScenario = `
pools:
  - {block_size: 16, capacity: 4}
  - {block_size: 64, capacity: 2}
ops:
  - {op: alloc, label: a, size: 10}
  - {op: alloc, label: b, size: 10}
  - {op: alloc, label: c, size: 10}
  - {op: alloc, label: d, size: 10}
  - {op: alloc, label: e, size: 10}
  - {op: realloc, label: a, size: 40}
  - {op: alloc, label: f, size: 60, expect: out_of_memory}
  - {op: free, label: b}
  - {op: free, label: b, expect: bad_ref}
  - {op: free, label: nobody, expect: bad_ref}
`

func TestRunCommand(t *testing.T) {
	resetFlags()
	path := writeScenario(t, escalationScenario)

	output, err := captureOutput(t, func() error { return runScenario(path) })
	require.NoError(t, err)

	assert.Contains(t, output, "realloc(a, 40) -> ok")
	assert.Contains(t, output, "alloc(f, 60) -> out_of_memory")
	assert.Contains(t, output, "free(b) -> bad_ref")
	assert.NotContains(t, output, "unexpected")
	assert.Contains(t, output, "invalid_frees=2")
}

func TestRunCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	path := writeScenario(t, escalationScenario)

	output, err := captureOutput(t, func() error { return runScenario(path) })
	require.NoError(t, err)

	var got struct {
		Results []opResult   `json:"results"`
		Pools   []poolReport `json:"pools"`
	}
	decodeJSON(t, output, &got)
	require.Len(t, got.Results, 10)
	for _, r := range got.Results {
		assert.True(t, r.Match, "step %d", r.Step)
	}
	// a moved to the 64-byte pool, b was freed: c, d left in the small pool.
	assert.Equal(t, 2, got.Pools[0].Used)
	assert.Equal(t, 2, got.Pools[1].Used)
}

func TestRunCommand_UnexpectedOutcome(t *testing.T) {
	resetFlags()
	path := writeScenario(t, `
pools:
  - {block_size: 16, capacity: 1}
ops:
  - {op: alloc, label: a, size: 8}
  - {op: alloc, label: b, size: 8}
`)

	output, err := captureOutput(t, func() error { return runScenario(path) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 operations")
	assert.Contains(t, output, "(unexpected)")
}

func TestRunCommand_BadScenario(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not yaml", "pools: [\n"},
		{"unknown op", "pools: [{block_size: 16, capacity: 1}]\nops: [{op: grow, label: a}]\n"},
		{"missing label", "pools: [{block_size: 16, capacity: 1}]\nops: [{op: alloc, size: 1}]\n"},
		{"no pools", "ops: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			path := writeScenario(t, tt.body)
			_, err := captureOutput(t, func() error { return runScenario(path) })
			require.Error(t, err)
		})
	}

	resetFlags()
	_, err := captureOutput(t, func() error { return runScenario("does-not-exist.yaml") })
	require.Error(t, err)
}

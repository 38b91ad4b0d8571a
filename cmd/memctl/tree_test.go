package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		remove      []string
		nodes       int
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "ranks in key order",
			args:        []string{"5", "3", "8", "1", "4", "7", "9"},
			wantContain: []string{"   1  1\n", "   7  9\n", "len=7", "nodes_in_use=7"},
		},
		{
			name:        "remove",
			args:        []string{"5", "3", "8", "1", "4", "7", "9"},
			remove:      []string{"3"},
			wantContain: []string{"   5  8\n", "len=6", "nodes_in_use=6"},
		},
		{
			name:    "remove absent",
			args:    []string{"1", "2"},
			remove:  []string{"3"},
			wantErr: true,
		},
		{
			name:    "node pool too small",
			args:    []string{"1", "2", "3"},
			nodes:   2,
			wantErr: true,
		},
		{
			name:    "bad key",
			args:    []string{"x"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			treeRemove = tt.remove
			if tt.nodes > 0 {
				treeNodes = tt.nodes
			}

			output, err := captureOutput(t, func() error { return runTree(tt.args) })
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContain {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestTreeCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true

	output, err := captureOutput(t, func() error { return runTree([]string{"30", "10", "20", "10"}) })
	require.NoError(t, err)

	var got struct {
		Entries []treeEntry `json:"entries"`
		Len     int         `json:"len"`
		Height  int         `json:"height"`
		Nodes   int         `json:"nodes_in_use"`
	}
	decodeJSON(t, output, &got)
	assert.Equal(t, []treeEntry{{1, 10}, {2, 20}, {3, 30}}, got.Entries)
	assert.Equal(t, 3, got.Len)
	assert.Equal(t, 3, got.Nodes, "duplicate insert must hand its node back")
	assert.LessOrEqual(t, got.Height, 4)
}

package rbtree

import "github.com/joshuapare/memkit/pkg/types"

var (
	// ErrNotFound indicates the key is not in the tree.
	ErrNotFound = types.New(types.ErrNotFound, "rbtree: key not found")

	// ErrOutOfMemory indicates the allocation capability refused node storage.
	ErrOutOfMemory = types.New(types.ErrOutOfMemory, "rbtree: no storage for node")
)

package alloc

import "github.com/joshuapare/memkit/pkg/types"

var (
	// ErrNoPools indicates New was given a nil or empty spec list.
	ErrNoPools = types.New(types.ErrInvalidArgument, "alloc: no pool specs")

	// ErrBadSpec indicates a pool spec with a non-positive block size or capacity,
	// or one whose storage cannot be addressed.
	ErrBadSpec = types.New(types.ErrInvalidArgument, "alloc: invalid pool spec")

	// ErrBadSize indicates a negative allocation size.
	ErrBadSize = types.New(types.ErrInvalidArgument, "alloc: negative size")

	// ErrNoSpace indicates that no pool large enough has a free block.
	ErrNoSpace = types.New(types.ErrOutOfMemory, "alloc: no free block large enough")

	// ErrBadRef indicates a ref without a valid guard: foreign, freed, or corrupted.
	ErrBadRef = types.New(types.ErrInvalidPointer, "alloc: bad block reference")

	// ErrClosed indicates use of an allocator after Close.
	ErrClosed = types.New(types.ErrInvalidArgument, "alloc: allocator is closed")
)

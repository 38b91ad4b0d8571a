package arena

import "github.com/joshuapare/memkit/pkg/types"

var (
	// ErrInvalidArgument indicates a non-positive capacity or negative list count.
	ErrInvalidArgument = types.New(types.ErrInvalidArgument, "arena: capacity must be > 0 and lists >= 0")

	// ErrBadList indicates a list id outside [0, lists].
	ErrBadList = types.New(types.ErrNotFound, "arena: list id out of range")

	// ErrBadSlot indicates a slot id outside [0, capacity).
	ErrBadSlot = types.New(types.ErrNotFound, "arena: slot id out of range")

	// ErrEmpty indicates a Move from a list with no members.
	ErrEmpty = types.New(types.ErrNotFound, "arena: source list is empty")

	// ErrListMismatch indicates a same-list operation on slots of different lists.
	ErrListMismatch = types.New(types.ErrInvalidArgument, "arena: slots belong to different lists")
)

package types

import "errors"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindInvalidArgument ErrKind = iota // malformed construction parameters (capacity, block size, specs)
	ErrKindOutOfMemory                    // no pool or capability could satisfy the request
	ErrKindInvalidPointer                 // ref without a valid guard: foreign, already freed, or corrupted
	ErrKindNotFound                       // missing key, slot, or list
	ErrKindInvariant                      // internal structure found in an impossible state (fatal)
)

// String returns the kind name used in log output.
func (k ErrKind) String() string {
	switch k {
	case ErrKindInvalidArgument:
		return "invalid_argument"
	case ErrKindOutOfMemory:
		return "out_of_memory"
	case ErrKindInvalidPointer:
		return "invalid_pointer"
	case ErrKindNotFound:
		return "not_found"
	case ErrKindInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations. Package-level errors wrap
// one of these so errors.Is(err, types.ErrOutOfMemory) holds across packages.
var (
	// ErrInvalidArgument indicates malformed initialization parameters.
	ErrInvalidArgument = &Error{Kind: ErrKindInvalidArgument, Msg: "invalid argument"}
	// ErrOutOfMemory indicates no configured storage can satisfy a request.
	ErrOutOfMemory = &Error{Kind: ErrKindOutOfMemory, Msg: "out of memory"}
	// ErrInvalidPointer indicates a ref that was not produced by the allocator or is no longer live.
	ErrInvalidPointer = &Error{Kind: ErrKindInvalidPointer, Msg: "invalid pointer"}
	// ErrNotFound indicates a missing key, slot, or list.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrInvariant indicates an impossible internal state. It is never
	// returned; it only travels inside a panic.
	ErrInvariant = &Error{Kind: ErrKindInvariant, Msg: "internal invariant violated"}
)

// New returns a package-specific error of the sentinel's kind that still
// matches the sentinel under errors.Is.
func New(sentinel *Error, msg string) *Error {
	return &Error{Kind: sentinel.Kind, Msg: msg, Err: sentinel}
}

// KindOf reports the category of err, if any *Error is in its chain.
func KindOf(err error) (ErrKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Package types defines the error taxonomy shared by every memkit package.
//
// Every recoverable failure is returned as an error whose chain contains one
// of the sentinels below, so callers branch with errors.Is or KindOf:
//
//	ref, _, err := a.Alloc(128)
//	if errors.Is(err, types.ErrOutOfMemory) {
//	    // back off or escalate
//	}
//
// Invariant violations are not returned at all: they panic through
// internal/invariant and are never recovered inside the module.
//
// This package has no dependencies beyond the standard library.
package types

// Package invariant is the single unrecoverable-fault path of the module.
//
// A structure that already validated its preconditions and still finds
// itself in an impossible state cannot be trusted to continue: Fail records
// the fault at logger.LevelFatal and panics. Nothing in memkit recovers the
// panic.
package invariant

import (
	"fmt"

	"github.com/joshuapare/memkit/pkg/logger"
	"github.com/joshuapare/memkit/pkg/types"
)

// Violation is the panic value raised by Fail.
type Violation struct {
	Msg string
}

func (v *Violation) Error() string { return "invariant violated: " + v.Msg }

// Unwrap lets a recovered Violation match types.ErrInvariant.
func (v *Violation) Unwrap() error { return types.ErrInvariant }

// Fail logs a fatal record attributed to its caller and panics.
func Fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Log(logger.L, logger.LevelFatal, 1, msg)
	panic(&Violation{Msg: msg})
}

// Check calls Fail when cond is false.
func Check(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	logger.Log(logger.L, logger.LevelFatal, 1, msg)
	panic(&Violation{Msg: msg})
}

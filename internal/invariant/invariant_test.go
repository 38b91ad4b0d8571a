package invariant

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/pkg/logger"
	"github.com/joshuapare/memkit/pkg/types"
)

func TestFail_PanicsWithViolation(t *testing.T) {
	var out bytes.Buffer
	orig := logger.L
	logger.Set(logger.New(logger.Options{Writer: &out}))
	t.Cleanup(func() { logger.Set(orig) })

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		Fail("pool %d lost slot %d", 16, 3)
	}()

	v, ok := recovered.(*Violation)
	require.True(t, ok, "panic value should be *Violation, got %T", recovered)
	require.Equal(t, "pool 16 lost slot 3", v.Msg)
	require.True(t, errors.Is(v, types.ErrInvariant))
	require.Contains(t, out.String(), "level=FATAL")
	require.Contains(t, out.String(), "invariant_test.go:")
}

func TestCheck(t *testing.T) {
	logger.Set(logger.Discard())
	t.Cleanup(func() { logger.Init(logger.Options{}) })

	require.NotPanics(t, func() { Check(true, "fine") })
	require.Panics(t, func() { Check(false, "broken %s", "link") })
}

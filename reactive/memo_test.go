package reactive_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhostKellz/ripple/reactive"
)

// should expose the computed value immediately and after source writes
func TestMemoSquares(t *testing.T) {
	rt := reactive.New()
	src := reactive.Signal(rt, 10)

	m, err := reactive.Memo(rt, func() (int, error) {
		v := src.Value()
		return v * v, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 100, m.Value())
	require.NoError(t, src.SetValue(5))
	assert.Equal(t, 25, m.Value())
}

// should track memo reads like any other signal read
func TestMemoReadTracks(t *testing.T) {
	rt := reactive.New()
	src := reactive.Signal(rt, 1)
	m, err := reactive.Memo(rt, func() (int, error) {
		return src.Value() * 2, nil
	})
	require.NoError(t, err)

	var seen []int
	_, err = reactive.Effect(rt, func() error {
		seen = append(seen, m.Value())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, src.SetValue(3))
	assert.Equal(t, []int{2, 6}, seen)
}

// should chain memos and recompute the whole chain per write
func TestMemoChain(t *testing.T) {
	rt := reactive.New()
	src := reactive.Signal(rt, 1)
	double, err := reactive.Memo(rt, func() (int, error) {
		return src.Value() * 2, nil
	})
	require.NoError(t, err)
	quad, err := reactive.Memo(rt, func() (int, error) {
		return double.Value() * 2, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 4, quad.Value())
	require.NoError(t, src.SetValue(3))
	assert.Equal(t, 12, quad.Value())
}

// should surface an initial compute failure from the constructor
func TestMemoInitialComputeFailure(t *testing.T) {
	rt := reactive.New()
	boom := errors.New("boom")

	_, err := reactive.Memo(rt, func() (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

// should route recompute failures to the error boundary
func TestMemoRecomputeFailureHitsBoundary(t *testing.T) {
	rt := reactive.New()
	src := reactive.Signal(rt, 1)
	boom := errors.New("boom")

	var caught error
	b := reactive.PushErrorBoundary(rt, func(err error) { caught = err })
	defer b.Pop()

	m, err := reactive.Memo(rt, func() (int, error) {
		if src.Value() < 0 {
			return 0, boom
		}
		return src.Value(), nil
	})
	require.NoError(t, err)

	require.NoError(t, src.SetValue(-1))
	assert.ErrorIs(t, caught, boom)
	// the memo keeps its last good value
	assert.Equal(t, 1, m.Peek())
}

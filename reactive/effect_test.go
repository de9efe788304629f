package reactive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhostKellz/ripple/reactive"
)

// should converge with exactly one extra run when an effect writes a
// signal it reads
func TestEffectSelfWriteRerunsOnce(t *testing.T) {
	rt := reactive.New()
	s := reactive.Signal(rt, 0)

	runs := 0
	_, err := reactive.Effect(rt, func() error {
		runs++
		if s.Value() == 0 {
			return s.SetValue(1)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, runs)
	assert.Equal(t, 1, s.Peek())
}

// should not run a queued effect that was disposed before the flush
func TestEffectDisposedWhileQueuedSkipsRun(t *testing.T) {
	rt := reactive.New()
	s := reactive.Signal(rt, 0)

	runs := 0
	e, err := reactive.Effect(rt, func() error {
		runs++
		s.Value()
		return nil
	})
	require.NoError(t, err)

	rt.StartBatch()
	require.NoError(t, s.SetValue(1))
	e.Dispose()
	require.NoError(t, rt.EndBatch())

	assert.Equal(t, 1, runs)
}

// should never run a disposed effect again
func TestEffectDisposeStopsReruns(t *testing.T) {
	rt := reactive.New()
	s := reactive.Signal(rt, 0)

	runs := 0
	e, err := reactive.Effect(rt, func() error {
		runs++
		s.Value()
		return nil
	})
	require.NoError(t, err)

	e.Dispose()
	require.NoError(t, s.SetValue(1))
	assert.Equal(t, 1, runs)
}

// should run each effect at most once per flush even when several of its
// dependencies were written
func TestEffectDedupWithinFlush(t *testing.T) {
	rt := reactive.New()
	a := reactive.Signal(rt, 0)
	b := reactive.Signal(rt, 0)

	runs := 0
	_, err := reactive.Effect(rt, func() error {
		runs++
		a.Value()
		b.Value()
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, rt.Batch(func() {
		_ = a.SetValue(1)
		_ = b.SetValue(2)
		_ = a.SetValue(3)
	}))
	assert.Equal(t, 2, runs)
}

// should drain effects enqueued by other effects in the same flush
func TestEffectWritesDuringFlushExtendFlush(t *testing.T) {
	rt := reactive.New()
	first := reactive.Signal(rt, 0)
	second := reactive.Signal(rt, 0)

	var order []string
	_, err := reactive.Effect(rt, func() error {
		order = append(order, "a")
		return second.SetValue(first.Value())
	})
	require.NoError(t, err)
	_, err = reactive.Effect(rt, func() error {
		order = append(order, "b")
		second.Value()
		return nil
	})
	require.NoError(t, err)

	order = order[:0]
	require.NoError(t, first.SetValue(1))
	assert.Equal(t, []string{"a", "b"}, order)
}

// should report a reentrant Flush instead of nesting
func TestFlushReentrantFails(t *testing.T) {
	rt := reactive.New()
	s := reactive.Signal(rt, 0)

	var inner error
	ran := false
	_, err := reactive.Effect(rt, func() error {
		s.Value()
		if !ran {
			ran = true
			return nil
		}
		inner = rt.Flush()
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, s.SetValue(1))
	assert.ErrorIs(t, inner, reactive.ErrReentrant)
}

package reactive

// ReadonlySignal is the read side of a memo: an inner signal kept current
// by an owned effect. The initial compute completes inside Memo, so the
// value is never observable in an uninitialized state.
type ReadonlySignal[T any] struct {
	inner  *WriteableSignal[T]
	runner *EffectRunner
}

// Memo derives a signal from a computation. The computation runs once
// immediately and again whenever one of its dependencies changes; its
// result lands in the inner signal, which reads (and tracks) like any
// other signal. Compute failures follow error boundary dispatch.
func Memo[T any](rt *Runtime, compute func() (T, error)) (*ReadonlySignal[T], error) {
	var zero T
	m := &ReadonlySignal[T]{inner: Signal(rt, zero)}

	runner, err := Effect(rt, func() error {
		v, err := compute()
		if err != nil {
			return err
		}
		return m.inner.SetValue(v)
	})
	m.runner = runner
	if err != nil {
		m.Dispose()
		return nil, err
	}
	return m, nil
}

func (m *ReadonlySignal[T]) Value() T {
	return m.inner.Value()
}

func (m *ReadonlySignal[T]) Peek() T {
	return m.inner.Peek()
}

func (m *ReadonlySignal[T]) Dispose() {
	m.runner.Dispose()
	m.inner.Dispose()
}

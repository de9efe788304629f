package reactive

// ResourceStatus enumerates the async state machine a resource drives.
type ResourceStatus uint8

const (
	ResourceIdle ResourceStatus = iota
	ResourcePending
	ResourceReady
	ResourceFailed
)

// ResourceState is the tagged value held by a resource's state signal.
// Value is meaningful only for ResourceReady, Err only for ResourceFailed.
type ResourceState[T any] struct {
	Status ResourceStatus
	Value  T
	Err    string
}

// ResourceHandle owns the state signal and the driving effect of one
// resource.
type ResourceHandle[T any] struct {
	state  *WriteableSignal[ResourceState[T]]
	runner *EffectRunner

	suspense   *SuspenseContext
	registered bool
}

// Resource wires a source signal to a synchronous fetcher. Every change of
// the source re-runs the fetch: the state signal sees pending, then
// ready(value) or failed(message). Fetcher failures become the failed
// state and never reach error boundaries. If a suspense context is in
// scope at creation time the boundary's pending counter brackets every
// fetch.
func Resource[S, T any](rt *Runtime, source Readable[S], fetcher func(S) (T, error)) (*ResourceHandle[T], error) {
	r := &ResourceHandle[T]{
		state: Signal(rt, ResourceState[T]{Status: ResourceIdle}),
	}
	if sc, ok := UseContext[SuspenseContext](rt); ok {
		r.suspense = sc
	}

	runner, err := Effect(rt, func() error {
		src := source.Value()

		if r.suspense != nil && !r.registered {
			r.registered = true
			if err := r.suspense.add(1); err != nil {
				return err
			}
		}

		if err := r.state.SetValue(ResourceState[T]{Status: ResourcePending}); err != nil {
			return err
		}

		var next ResourceState[T]
		if v, err := fetcher(src); err != nil {
			next = ResourceState[T]{Status: ResourceFailed, Err: err.Error()}
		} else {
			next = ResourceState[T]{Status: ResourceReady, Value: v}
		}
		setErr := r.state.SetValue(next)

		if r.registered {
			r.registered = false
			if err := r.suspense.add(-1); err != nil {
				return err
			}
		}
		return setErr
	})
	r.runner = runner
	if err != nil {
		r.Dispose()
		return nil, err
	}
	return r, nil
}

// State reads (and tracks) the resource state.
func (r *ResourceHandle[T]) State() ResourceState[T] {
	return r.state.Value()
}

func (r *ResourceHandle[T]) PeekState() ResourceState[T] {
	return r.state.Peek()
}

// Dispose cancels an in-flight suspense registration and tears down the
// effect and the state signal.
func (r *ResourceHandle[T]) Dispose() {
	if r.registered {
		r.registered = false
		_ = r.suspense.add(-1)
	}
	r.runner.Dispose()
	r.state.Dispose()
}

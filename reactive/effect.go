package reactive

// ErrFn is the callback shape for effects.
type ErrFn func() error

// EffectRunner is a reactive computation. Its callback runs once on
// creation, capturing dependencies from the signals it reads, and re-runs
// whenever one of them is written. Failures returned by the callback are
// delivered to the topmost error boundary.
type EffectRunner struct {
	rt *Runtime
	fn ErrFn

	subscriptions []dependency

	running    bool
	needsRerun bool
	disposed   bool
}

// Effect creates an effect and runs it immediately. A non-nil error is the
// initial run's failure when no error boundary absorbed it.
func Effect(rt *Runtime, fn ErrFn) (*EffectRunner, error) {
	e := &EffectRunner{rt: rt, fn: fn}
	e.trigger()
	if !rt.flushing {
		return e, rt.takeUncaught()
	}
	return e, nil
}

// trigger re-runs the callback. A trigger that lands while the effect is
// already running only marks needsRerun; the run loop picks it up, so a
// self-write converges with exactly one extra run.
func (e *EffectRunner) trigger() {
	if e.disposed {
		return
	}
	if e.running {
		e.needsRerun = true
		return
	}
	e.running = true
	for {
		e.needsRerun = false
		e.runOnce()
		if !e.needsRerun || e.disposed {
			break
		}
	}
	e.running = false
}

// runOnce drops every previous subscription so dependencies not read this
// time stop notifying, then runs the callback with this effect installed
// as the runtime's tracking target.
func (e *EffectRunner) runOnce() {
	e.clearSubscriptions()

	prev := e.rt.activeEffect
	e.rt.activeEffect = e
	err := e.fn()
	e.rt.activeEffect = prev

	if err != nil {
		e.rt.dispatchError(err)
	}
}

// Dispose unsubscribes from every signal, purges the effect from the
// scheduler queue and prevents any further run.
func (e *EffectRunner) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.clearSubscriptions()
	e.rt.dequeue(e)
}

func (e *EffectRunner) clearSubscriptions() {
	subs := e.subscriptions
	e.subscriptions = nil
	for _, dep := range subs {
		dep.removeSubscriber(e)
	}
}

func (e *EffectRunner) addSubscription(dep dependency) {
	e.subscriptions = append(e.subscriptions, dep)
}

// dropSubscription forgets dep without calling back into it; used when the
// signal side is the one being disposed.
func (e *EffectRunner) dropSubscription(dep dependency) {
	for i, d := range e.subscriptions {
		if d == dep {
			e.subscriptions = append(e.subscriptions[:i], e.subscriptions[i+1:]...)
			return
		}
	}
}

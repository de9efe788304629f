package reactive

import (
	"errors"

	mapset "github.com/deckarep/golang-set/v2"
)

// ErrReentrant is returned by Flush when it is called while a flush is
// already draining the queue.
var ErrReentrant = errors.New("reactive: reentrant flush")

// Runtime owns all reactive state for a single cooperative thread of
// execution: the effect queue, batch depth, the currently tracking effect,
// the context stack and the error boundary stack. Every signal, effect,
// memo and resource is bound to exactly one Runtime. Runtimes must not be
// shared across goroutines.
type Runtime struct {
	queue      []*EffectRunner
	queued     mapset.Set[*EffectRunner]
	batchDepth int
	flushing   bool

	activeEffect *EffectRunner

	contexts   []contextEntry
	boundaries []*ErrorBoundary

	// first uncaught effect error since the last flush boundary
	uncaught error
}

func New() *Runtime {
	return &Runtime{
		queued: mapset.NewThreadUnsafeSet[*EffectRunner](),
	}
}

// StartBatch opens a batch region. Writes made while a batch is open only
// enqueue their subscribers; nothing runs until the outermost EndBatch.
func (rt *Runtime) StartBatch() {
	rt.batchDepth++
}

// EndBatch closes the innermost batch region and, when it was the
// outermost one, drains the queue. The returned error is the first
// uncaught effect failure from the drain.
func (rt *Runtime) EndBatch() error {
	if rt.batchDepth == 0 {
		panic("reactive: EndBatch without matching StartBatch")
	}
	rt.batchDepth--
	if rt.batchDepth == 0 {
		return rt.flush()
	}
	return nil
}

func (rt *Runtime) Batch(fn func()) error {
	rt.StartBatch()
	fn()
	return rt.EndBatch()
}

// Flush drains the effect queue in FIFO order. Effects enqueued while the
// drain is running extend the same drain; an effect already in the queue
// is not appended again, so each effect runs at most once per flush.
func (rt *Runtime) Flush() error {
	if rt.flushing {
		return ErrReentrant
	}
	return rt.flush()
}

func (rt *Runtime) flush() error {
	if rt.flushing {
		return nil
	}
	rt.flushing = true
	for i := 0; i < len(rt.queue); i++ {
		e := rt.queue[i]
		if e.disposed {
			continue
		}
		e.trigger()
	}
	rt.queue = rt.queue[:0]
	rt.queued.Clear()
	rt.flushing = false

	err := rt.uncaught
	rt.uncaught = nil
	return err
}

func (rt *Runtime) flushIfIdle() error {
	if rt.batchDepth > 0 || rt.flushing {
		return nil
	}
	return rt.flush()
}

func (rt *Runtime) enqueue(e *EffectRunner) {
	if e.disposed || rt.queued.Contains(e) {
		return
	}
	rt.queued.Add(e)
	rt.queue = append(rt.queue, e)
}

func (rt *Runtime) dequeue(e *EffectRunner) {
	if !rt.queued.Contains(e) {
		return
	}
	rt.queued.Remove(e)
	for i, queued := range rt.queue {
		if queued == e {
			rt.queue = append(rt.queue[:i], rt.queue[i+1:]...)
			return
		}
	}
}

// dispatchError routes an effect failure to the topmost error boundary.
// With no boundary installed the error is held until the enclosing flush
// (or the effect constructor) returns it.
func (rt *Runtime) dispatchError(err error) {
	if n := len(rt.boundaries); n > 0 {
		rt.boundaries[n-1].handler(err)
		return
	}
	if rt.uncaught == nil {
		rt.uncaught = err
	}
}

// takeUncaught hands the held error to a non-flush caller, such as an
// effect constructor whose initial run failed outside any flush.
func (rt *Runtime) takeUncaught() error {
	err := rt.uncaught
	rt.uncaught = nil
	return err
}

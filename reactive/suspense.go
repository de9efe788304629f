package reactive

// SuspenseContext is the write handle resources find on the context stack.
// The counter it feeds equals, at any quiet point, the number of fetches
// currently in flight under its boundary.
type SuspenseContext struct {
	pending *WriteableSignal[int]
}

func (sc *SuspenseContext) add(delta int) error {
	return sc.pending.SetValue(sc.pending.Peek() + delta)
}

// SuspenseBoundary exposes a pending-fetch counter for a lexical region.
// Resources created while the boundary is entered register against it.
type SuspenseBoundary struct {
	rt      *Runtime
	pending *WriteableSignal[int]
	ctx     SuspenseContext
}

func Suspense(rt *Runtime) *SuspenseBoundary {
	b := &SuspenseBoundary{
		rt:      rt,
		pending: Signal(rt, 0),
	}
	b.ctx = SuspenseContext{pending: b.pending}
	return b
}

// Enter pushes this boundary's context; resources created before the
// returned guard is released attach to it.
func (b *SuspenseBoundary) Enter() ContextGuard {
	return PushContext(b.rt, &b.ctx)
}

// Pending is the read side of the in-flight counter.
func (b *SuspenseBoundary) Pending() Readable[int] {
	return b.pending
}

func (b *SuspenseBoundary) Dispose() {
	b.pending.Dispose()
}

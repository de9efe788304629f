package reactive

import (
	"reflect"

	"github.com/cespare/xxhash/v2"
)

type contextEntry struct {
	key uint64
	ptr any
}

// ContextGuard undoes one context push. Release must be called in strict
// LIFO order with respect to other guards on the same runtime.
type ContextGuard struct {
	rt    *Runtime
	index int
	cell  any
}

func (g ContextGuard) Release() {
	if len(g.rt.contexts) != g.index+1 {
		panic("reactive: context guard released out of order")
	}
	g.rt.contexts = g.rt.contexts[:g.index]
}

// typeKey is the stable per-process identity of a context type: the xxhash
// of the type's reflected name.
func typeKey[T any]() uint64 {
	return xxhash.Sum64String(reflect.TypeOf((*T)(nil)).Elem().String())
}

// PushContext makes ptr visible to UseContext[T] until the guard is
// released. Entries shadow older entries of the same type.
func PushContext[T any](rt *Runtime, ptr *T) ContextGuard {
	rt.contexts = append(rt.contexts, contextEntry{key: typeKey[T](), ptr: ptr})
	return ContextGuard{rt: rt, index: len(rt.contexts) - 1}
}

// WithContext copies value into a fresh cell and pushes it.
func WithContext[T any](rt *Runtime, value T) ContextGuard {
	cell := new(T)
	*cell = value
	g := PushContext(rt, cell)
	g.cell = cell
	return g
}

// UseContext scans the stack top to bottom and returns the first entry of
// type T, or false when none is in scope.
func UseContext[T any](rt *Runtime) (*T, bool) {
	key := typeKey[T]()
	for i := len(rt.contexts) - 1; i >= 0; i-- {
		if rt.contexts[i].key == key {
			return rt.contexts[i].ptr.(*T), true
		}
	}
	return nil, false
}

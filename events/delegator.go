// Package events implements delegated event handling over host node ids.
// The delegator registers each event name with the host once; the embedder
// routes every occurrence back through Dispatch with the node path, and the
// delegator fans it out to listeners in registration order.
package events

import (
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/GhostKellz/ripple/host"
)

// Handler pairs a callback with an opaque context. The context takes part
// in listener identity, so the same function can be attached to one node
// several times with different contexts.
type Handler struct {
	Callback func(ev *SyntheticEvent)
	Context  any
}

// Options controls one listener registration.
type Options struct {
	// Once removes the listener after its first invocation.
	Once bool
}

// DispatchOptions describes one event occurrence.
type DispatchOptions struct {
	// Path is the node sequence starting at the target and walking up its
	// ancestors. The caller owns the order.
	Path []host.NodeID
	// Bubbles limits the walk to the first path entry when false.
	Bubbles bool
	// Detail and DetailData ride on the synthetic event unchanged.
	Detail     string
	DetailData any
}

type listener struct {
	node  host.NodeID
	fnPtr uintptr
	ctx   any
	cb    func(ev *SyntheticEvent)
	once  bool
}

type registry struct {
	listeners []listener
}

// Delegator owns the per-event-name listener registries for one host
// table.
type Delegator struct {
	b          *host.Bindings
	events     map[string]*registry
	registered mapset.Set[string]
}

func NewDelegator(b *host.Bindings) *Delegator {
	return &Delegator{
		b:          b,
		events:     map[string]*registry{},
		registered: mapset.NewThreadUnsafeSet[string](),
	}
}

// AddListener attaches handler to node for the named event. A listener is
// identified by (node, callback, context): re-adding the same tuple only
// updates its once flag. The first listener for a name registers that name
// with the host.
func (d *Delegator) AddListener(node host.NodeID, event string, handler Handler, opts Options) {
	reg := d.events[event]
	if reg == nil {
		reg = &registry{}
		d.events[event] = reg
	}
	if !d.registered.Contains(event) {
		d.registered.Add(event)
		d.b.RegisterEvent(d.b.Ctx, event)
	}

	ptr := reflect.ValueOf(handler.Callback).Pointer()
	for i := range reg.listeners {
		l := &reg.listeners[i]
		if l.node == node && l.fnPtr == ptr && l.ctx == handler.Context {
			l.once = opts.Once
			return
		}
	}
	reg.listeners = append(reg.listeners, listener{
		node:  node,
		fnPtr: ptr,
		ctx:   handler.Context,
		cb:    handler.Callback,
		once:  opts.Once,
	})
}

// RemoveListener detaches by the same (node, callback, context) tuple.
func (d *Delegator) RemoveListener(node host.NodeID, event string, handler Handler) {
	reg := d.events[event]
	if reg == nil {
		return
	}
	ptr := reflect.ValueOf(handler.Callback).Pointer()
	for i := range reg.listeners {
		l := reg.listeners[i]
		if l.node == node && l.fnPtr == ptr && l.ctx == handler.Context {
			reg.listeners = append(reg.listeners[:i], reg.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch walks the path, firing matching listeners per node in
// registration order. Once-listeners are removed after they fire;
// StopPropagation ends the dispatch right after the handler that called
// it, so later listeners on the same node and on the rest of the path do
// not fire. The return value is whether any handler called PreventDefault.
func (d *Delegator) Dispatch(event string, target host.NodeID, opts DispatchOptions) bool {
	ev := &SyntheticEvent{
		Type:       event,
		Target:     target,
		Bubbles:    opts.Bubbles,
		Detail:     opts.Detail,
		DetailData: opts.DetailData,
	}
	reg := d.events[event]
	if reg == nil {
		return false
	}

	path := opts.Path
	if !opts.Bubbles && len(path) > 1 {
		path = path[:1]
	}

	for _, node := range path {
		ev.CurrentTarget = node

		// Snapshot so handler-driven mutation cannot skip entries.
		snapshot := make([]listener, len(reg.listeners))
		copy(snapshot, reg.listeners)
		for _, l := range snapshot {
			if l.node != node {
				continue
			}
			l.cb(ev)
			if l.once {
				d.removeExact(reg, l)
			}
			if ev.propagationStopped {
				return ev.defaultPrevented
			}
		}
	}
	return ev.defaultPrevented
}

func (d *Delegator) removeExact(reg *registry, target listener) {
	for i := range reg.listeners {
		l := reg.listeners[i]
		if l.node == target.node && l.fnPtr == target.fnPtr && l.ctx == target.ctx {
			reg.listeners = append(reg.listeners[:i], reg.listeners[i+1:]...)
			return
		}
	}
}

// Reset drops every listener and every host registration record.
func (d *Delegator) Reset() {
	d.events = map[string]*registry{}
	d.registered.Clear()
}

package render

import (
	"fmt"
	"strconv"

	"github.com/GhostKellz/ripple/host"
)

// Hydrate attaches a program to a tree the server already rendered under
// parent, walking the children through the active hydration bindings and
// asserting that every op matches what the server emitted. The result has
// the same shape Mount produces, with the node ids of the existing tree.
func Hydrate(prog *Program, parent host.NodeID) (*MountResult, error) {
	return HydrateWith(host.ActiveHydration(), host.Active(), prog, parent)
}

// HydrateWith is Hydrate against explicit tables. The mount table supplies
// portal resolution; everything else reads through hb.
func HydrateWith(hb *host.HydrationBindings, mb *host.Bindings, prog *Program, parent host.NodeID) (*MountResult, error) {
	h := &hydrator{
		hb: hb,
		mb: mb,
		res: &MountResult{
			HydrationNodes: make([]host.NodeID, prog.MaxHydrationID+1),
		},
	}
	h.pushFrame(parent, "", false)
	for _, op := range prog.Ops {
		if err := h.exec(op); err != nil {
			return nil, err
		}
	}
	if len(h.frames) != 1 {
		return nil, fmt.Errorf("%w: %d frames left open", ErrInvalidMarkup, len(h.frames)-1)
	}
	if len(h.islands) != 0 || len(h.portals) != 0 || len(h.suspense) != 0 {
		return nil, fmt.Errorf("%w: unclosed island, portal or suspense region", ErrInvalidMarkup)
	}
	return h.res, nil
}

// hframe is one level of the walk: a parent node and the cursor over its
// remaining children.
type hframe struct {
	node     host.NodeID
	next     host.NodeID
	hasNext  bool
	tag      string
	isPortal bool
}

type hydrator struct {
	hb *host.HydrationBindings
	mb *host.Bindings

	frames []hframe
	res    *MountResult

	islands  []islandFrame
	portals  []portalFrame
	suspense []suspenseFrame
}

func (h *hydrator) pushFrame(node host.NodeID, tag string, portal bool) {
	f := hframe{node: node, tag: tag, isPortal: portal}
	f.next, f.hasNext = h.hb.FirstChild(h.hb.Ctx, node)
	h.frames = append(h.frames, f)
}

func (h *hydrator) top() *hframe {
	return &h.frames[len(h.frames)-1]
}

// take consumes the node at the cursor, advancing to its sibling.
func (h *hydrator) take() (host.NodeID, error) {
	f := h.top()
	if !f.hasNext {
		return 0, fmt.Errorf("%w: ran out of children under %d", ErrMissingNode, f.node)
	}
	n := f.next
	f.next, f.hasNext = h.hb.NextSibling(h.hb.Ctx, n)
	return n, nil
}

// takeStructural consumes the next non-comment child.
func (h *hydrator) takeStructural() (host.NodeID, error) {
	for {
		n, err := h.take()
		if err != nil {
			return 0, err
		}
		if h.hb.NodeType(h.hb.Ctx, n) != host.NodeComment {
			return n, nil
		}
	}
}

// takeMarker consumes comments until one parses as a marker, which must
// match the expected op. Plain comments in between are skipped the same
// way the builder ignores them.
func (h *hydrator) takeMarker(expected Op) error {
	for {
		n, err := h.take()
		if err != nil {
			return err
		}
		if h.hb.NodeType(h.hb.Ctx, n) != host.NodeComment {
			return fmt.Errorf("%w: wanted marker comment %q", ErrUnexpectedNode, markerComment(expected))
		}
		got, ok := parseMarker(h.hb.CommentText(h.hb.Ctx, n))
		if !ok {
			continue
		}
		if got.Kind != expected.Kind || got.Name != expected.Name {
			return fmt.Errorf("%w: marker %q, wanted %q",
				ErrHydrationMismatch, markerComment(got), markerComment(expected))
		}
		return nil
	}
}

func (h *hydrator) exec(op Op) error {
	switch op.Kind {
	case OpOpenElement, OpSelfElement:
		n, err := h.takeStructural()
		if err != nil {
			return err
		}
		if h.hb.NodeType(h.hb.Ctx, n) != host.NodeElement {
			return fmt.Errorf("%w: wanted element <%s>", ErrUnexpectedNode, op.Tag)
		}
		if tag := h.hb.TagName(h.hb.Ctx, n); tag != op.Tag {
			return fmt.Errorf("%w: tag <%s>, wanted <%s>", ErrHydrationMismatch, tag, op.Tag)
		}
		want := strconv.FormatUint(uint64(op.HID), 10)
		if hid, ok := h.hb.GetAttribute(h.hb.Ctx, n, "data-hid"); !ok || hid != want {
			return fmt.Errorf("%w: data-hid %q, wanted %q on <%s>", ErrHydrationMismatch, hid, want, op.Tag)
		}
		h.res.HydrationNodes[op.HID] = n
		if op.Kind == OpOpenElement {
			h.pushFrame(n, op.Tag, false)
		}

	case OpCloseElement:
		if len(h.frames) <= 1 {
			return fmt.Errorf("%w: </%s>", ErrStackUnderflow, op.Tag)
		}
		f := h.top()
		if f.isPortal || f.tag != op.Tag {
			return fmt.Errorf("%w: close </%s> inside <%s>", ErrHydrationMismatch, op.Tag, f.tag)
		}
		h.frames = h.frames[:len(h.frames)-1]

	case OpText:
		if op.Text == "" {
			return nil
		}
		n, err := h.takeStructural()
		if err != nil {
			return err
		}
		if h.hb.NodeType(h.hb.Ctx, n) != host.NodeText {
			return fmt.Errorf("%w: wanted text node", ErrUnexpectedNode)
		}
		if got := h.hb.TextContent(h.hb.Ctx, n); got != op.Text {
			return fmt.Errorf("%w: text %q, wanted %q", ErrHydrationMismatch, got, op.Text)
		}

	case OpDynamicText:
		// The server rendered the slot's value; content is not compared.
		n, err := h.takeStructural()
		if err != nil {
			return err
		}
		if h.hb.NodeType(h.hb.Ctx, n) != host.NodeText {
			return fmt.Errorf("%w: wanted dynamic text node", ErrUnexpectedNode)
		}
		h.res.DynamicNodes = append(h.res.DynamicNodes, n)

	case OpIslandStart:
		if err := h.takeMarker(op); err != nil {
			return err
		}
		h.islands = append(h.islands, islandFrame{
			name:   op.Name,
			parent: h.top().node,
			start:  len(h.res.DynamicNodes),
		})

	case OpIslandEnd:
		if err := h.takeMarker(op); err != nil {
			return err
		}
		if len(h.islands) == 0 {
			return fmt.Errorf("%w: island end without start", ErrInvalidMarkup)
		}
		f := h.islands[len(h.islands)-1]
		h.islands = h.islands[:len(h.islands)-1]
		h.res.Islands = append(h.res.Islands, Island{
			Name:      f.name,
			Parent:    f.parent,
			StartSlot: f.start,
			EndSlot:   len(h.res.DynamicNodes),
		})

	case OpPortalStart:
		if err := h.takeMarker(op); err != nil {
			return err
		}
		p := h.mb.ResolvePortal(h.mb.Ctx, op.Name)
		if p == 0 {
			return fmt.Errorf("%w: portal target %q", ErrMissingNode, op.Name)
		}
		h.portals = append(h.portals, portalFrame{
			target: op.Name,
			node:   p,
			start:  len(h.res.DynamicNodes),
		})
		h.pushFrame(p, "", true)

	case OpPortalEnd:
		if len(h.frames) <= 1 || !h.top().isPortal {
			return fmt.Errorf("%w: portal end outside portal", ErrHydrationMismatch)
		}
		h.frames = h.frames[:len(h.frames)-1]
		// The closing marker lives on the outer frame, where the portal
		// was opened.
		if err := h.takeMarker(op); err != nil {
			return err
		}
		if len(h.portals) == 0 {
			return fmt.Errorf("%w: portal end without start", ErrInvalidMarkup)
		}
		f := h.portals[len(h.portals)-1]
		h.portals = h.portals[:len(h.portals)-1]
		h.res.Portals = append(h.res.Portals, Portal{
			Target:    f.target,
			Node:      f.node,
			StartSlot: f.start,
			EndSlot:   len(h.res.DynamicNodes),
		})

	case OpSuspenseStart:
		if err := h.takeMarker(op); err != nil {
			return err
		}
		h.suspense = append(h.suspense, suspenseFrame{
			name:      op.Name,
			mainStart: len(h.res.DynamicNodes),
		})

	case OpSuspenseFallback:
		if err := h.takeMarker(op); err != nil {
			return err
		}
		if len(h.suspense) == 0 {
			return fmt.Errorf("%w: suspense fallback without start", ErrInvalidMarkup)
		}
		f := &h.suspense[len(h.suspense)-1]
		f.mainEnd = len(h.res.DynamicNodes)
		f.fbStart = len(h.res.DynamicNodes)
		f.hasFallback = true

	case OpSuspenseEnd:
		if err := h.takeMarker(op); err != nil {
			return err
		}
		if len(h.suspense) == 0 {
			return fmt.Errorf("%w: suspense end without start", ErrInvalidMarkup)
		}
		f := h.suspense[len(h.suspense)-1]
		h.suspense = h.suspense[:len(h.suspense)-1]
		end := len(h.res.DynamicNodes)
		rec := Suspense{Name: f.name, MainStartSlot: f.mainStart}
		if f.hasFallback {
			rec.MainEndSlot = f.mainEnd
			rec.FallbackStartSlot = f.fbStart
			rec.FallbackEndSlot = end
		} else {
			rec.MainEndSlot = end
			rec.FallbackStartSlot = end
			rec.FallbackEndSlot = end
		}
		h.res.Suspense = append(h.res.Suspense, rec)
	}
	return nil
}

package render

import (
	"fmt"
	"strconv"

	"github.com/GhostKellz/ripple/host"
)

// Mount executes a program under parent through the active mount bindings,
// creating host nodes for every op. values supplies the dynamic text
// slots, one per dynamic_text op, in slot order.
func Mount(prog *Program, parent host.NodeID, values []string) (*MountResult, error) {
	return MountWith(host.Active(), prog, parent, values)
}

// MountWith is Mount against an explicit bindings table.
func MountWith(b *host.Bindings, prog *Program, parent host.NodeID, values []string) (*MountResult, error) {
	if want := prog.DynamicSlots(); len(values) != want {
		return nil, fmt.Errorf("%w: program wants %d values, got %d",
			ErrMismatchedValues, want, len(values))
	}

	m := &mounter{
		b:       b,
		values:  values,
		parents: []host.NodeID{parent},
		res: &MountResult{
			HydrationNodes: make([]host.NodeID, prog.MaxHydrationID+1),
		},
	}
	for _, op := range prog.Ops {
		if err := m.exec(op); err != nil {
			return nil, err
		}
	}
	if len(m.parents) != 1 {
		return nil, fmt.Errorf("%w: %d elements left open", ErrInvalidMarkup, len(m.parents)-1)
	}
	if len(m.islands) != 0 || len(m.portals) != 0 || len(m.suspense) != 0 {
		return nil, fmt.Errorf("%w: unclosed island, portal or suspense region", ErrInvalidMarkup)
	}
	return m.res, nil
}

type islandFrame struct {
	name   string
	parent host.NodeID
	start  int
}

type portalFrame struct {
	target string
	node   host.NodeID
	prev   host.NodeID
	start  int
}

type suspenseFrame struct {
	name        string
	mainStart   int
	mainEnd     int
	fbStart     int
	hasFallback bool
}

type mounter struct {
	b       *host.Bindings
	values  []string
	parents []host.NodeID
	res     *MountResult

	islands  []islandFrame
	portals  []portalFrame
	suspense []suspenseFrame
}

func (m *mounter) parent() host.NodeID {
	return m.parents[len(m.parents)-1]
}

func (m *mounter) exec(op Op) error {
	switch op.Kind {
	case OpOpenElement, OpSelfElement:
		n := m.b.CreateElement(m.b.Ctx, op.Tag)
		m.b.AppendChild(m.b.Ctx, m.parent(), n)
		m.b.SetAttribute(m.b.Ctx, n, "data-hid", strconv.FormatUint(uint64(op.HID), 10))
		m.res.HydrationNodes[op.HID] = n
		if op.Kind == OpOpenElement {
			m.parents = append(m.parents, n)
		}

	case OpCloseElement:
		if len(m.parents) <= 1 {
			return fmt.Errorf("%w: </%s>", ErrStackUnderflow, op.Tag)
		}
		m.parents = m.parents[:len(m.parents)-1]

	case OpText:
		if op.Text == "" {
			return nil
		}
		n := m.b.CreateText(m.b.Ctx, op.Text)
		m.b.AppendChild(m.b.Ctx, m.parent(), n)

	case OpDynamicText:
		n := m.b.CreateText(m.b.Ctx, m.values[op.Slot])
		m.b.AppendChild(m.b.Ctx, m.parent(), n)
		m.res.DynamicNodes = append(m.res.DynamicNodes, n)

	case OpIslandStart:
		m.islands = append(m.islands, islandFrame{
			name:   op.Name,
			parent: m.parent(),
			start:  len(m.res.DynamicNodes),
		})

	case OpIslandEnd:
		if len(m.islands) == 0 {
			return fmt.Errorf("%w: island end without start", ErrInvalidMarkup)
		}
		f := m.islands[len(m.islands)-1]
		m.islands = m.islands[:len(m.islands)-1]
		m.res.Islands = append(m.res.Islands, Island{
			Name:      f.name,
			Parent:    f.parent,
			StartSlot: f.start,
			EndSlot:   len(m.res.DynamicNodes),
		})

	case OpPortalStart:
		p := m.b.ResolvePortal(m.b.Ctx, op.Name)
		if p == 0 {
			return fmt.Errorf("%w: portal target %q", ErrMissingNode, op.Name)
		}
		m.portals = append(m.portals, portalFrame{
			target: op.Name,
			node:   p,
			prev:   m.parent(),
			start:  len(m.res.DynamicNodes),
		})
		m.parents = append(m.parents, p)

	case OpPortalEnd:
		if len(m.portals) == 0 {
			return fmt.Errorf("%w: portal end without start", ErrInvalidMarkup)
		}
		f := m.portals[len(m.portals)-1]
		m.portals = m.portals[:len(m.portals)-1]
		m.parents = m.parents[:len(m.parents)-1]
		m.res.Portals = append(m.res.Portals, Portal{
			Target:    f.target,
			Node:      f.node,
			StartSlot: f.start,
			EndSlot:   len(m.res.DynamicNodes),
		})

	case OpSuspenseStart:
		m.suspense = append(m.suspense, suspenseFrame{
			name:      op.Name,
			mainStart: len(m.res.DynamicNodes),
		})

	case OpSuspenseFallback:
		if len(m.suspense) == 0 {
			return fmt.Errorf("%w: suspense fallback without start", ErrInvalidMarkup)
		}
		f := &m.suspense[len(m.suspense)-1]
		f.mainEnd = len(m.res.DynamicNodes)
		f.fbStart = len(m.res.DynamicNodes)
		f.hasFallback = true

	case OpSuspenseEnd:
		if len(m.suspense) == 0 {
			return fmt.Errorf("%w: suspense end without start", ErrInvalidMarkup)
		}
		f := m.suspense[len(m.suspense)-1]
		m.suspense = m.suspense[:len(m.suspense)-1]
		end := len(m.res.DynamicNodes)
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
		m.res.Suspense = append(m.res.Suspense, rec)
	}
	return nil
}

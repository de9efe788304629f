package render

import "github.com/GhostKellz/ripple/host"

// Island is one island region: its name, the parent the island's nodes
// were appended under, and the half-open range of dynamic slots it spans.
type Island struct {
	Name      string
	Parent    host.NodeID
	StartSlot int
	EndSlot   int
}

// Portal is one portal region: the target it resolved to and the dynamic
// slots rendered into it.
type Portal struct {
	Target    string
	Node      host.NodeID
	StartSlot int
	EndSlot   int
}

// Suspense is one suspense region, split into main and fallback slot
// ranges. A boundary without a fallback marker has all three trailing
// bounds equal to the region's end.
type Suspense struct {
	Name              string
	MainStartSlot     int
	MainEndSlot       int
	FallbackStartSlot int
	FallbackEndSlot   int
}

// MountResult is what both interpreters hand back: the realized (or
// attached) nodes of one program execution.
type MountResult struct {
	// DynamicNodes is indexed by dynamic slot.
	DynamicNodes []host.NodeID
	// HydrationNodes is indexed by hydration id; index 0 is unused.
	HydrationNodes []host.NodeID

	Islands  []Island
	Portals  []Portal
	Suspense []Suspense
}

// NodeForHydrationID resolves a 1-based hydration id, reporting false when
// the id is out of range or unassigned.
func (m *MountResult) NodeForHydrationID(hid uint32) (host.NodeID, bool) {
	if hid == 0 || int(hid) >= len(m.HydrationNodes) {
		return 0, false
	}
	n := m.HydrationNodes[hid]
	return n, n != 0
}

// Dispose releases the result's record storage. The host nodes themselves
// belong to the embedder.
func (m *MountResult) Dispose() {
	m.DynamicNodes = nil
	m.HydrationNodes = nil
	m.Islands = nil
	m.Portals = nil
	m.Suspense = nil
}

package render_test

import (
	"fmt"

	"github.com/GhostKellz/ripple/host"
	"github.com/GhostKellz/ripple/render"
)

// memTree is an in-memory host tree good enough for both table sides:
// mount builds into it, hydration reads back out of it. Node 1 is the
// root; created nodes get ids from 100 up so call logs are easy to assert.
type memNode struct {
	id       host.NodeID
	kind     host.NodeType
	tag      string
	text     string
	attrs    map[string]string
	parent   host.NodeID
	children []host.NodeID
}

type memTree struct {
	nodes      map[host.NodeID]*memNode
	nextID     host.NodeID
	portals    map[string]host.NodeID
	calls      []string
	registered []string
}

func newMemTree() *memTree {
	t := &memTree{
		nodes:   map[host.NodeID]*memNode{},
		nextID:  100,
		portals: map[string]host.NodeID{},
	}
	t.nodes[1] = &memNode{id: 1, kind: host.NodeElement, tag: "body", attrs: map[string]string{}}
	return t
}

func (t *memTree) alloc(kind host.NodeType) *memNode {
	n := &memNode{id: t.nextID, kind: kind, attrs: map[string]string{}}
	t.nextID++
	t.nodes[n.id] = n
	return n
}

func (t *memTree) addPortal(target string) host.NodeID {
	n := t.alloc(host.NodeElement)
	n.tag = "div"
	t.portals[target] = n.id
	return n.id
}

func (t *memTree) log(format string, args ...any) {
	t.calls = append(t.calls, fmt.Sprintf(format, args...))
}

func (t *memTree) bindings() *host.Bindings {
	return &host.Bindings{
		Ctx: t,
		CreateElement: func(ctx any, tag string) host.NodeID {
			n := t.alloc(host.NodeElement)
			n.tag = tag
			t.log("create_element %s -> %d", tag, n.id)
			return n.id
		},
		CreateText: func(ctx any, text string) host.NodeID {
			n := t.alloc(host.NodeText)
			n.text = text
			t.log("create_text %q -> %d", text, n.id)
			return n.id
		},
		AppendChild: func(ctx any, parent, child host.NodeID) {
			t.nodes[child].parent = parent
			t.nodes[parent].children = append(t.nodes[parent].children, child)
			t.log("append_child %d %d", parent, child)
		},
		SetAttribute: func(ctx any, node host.NodeID, name, value string) {
			t.nodes[node].attrs[name] = value
			t.log("set_attribute %d %s=%s", node, name, value)
		},
		SetText: func(ctx any, node host.NodeID, text string) {
			t.nodes[node].text = text
			t.log("set_text %d %q", node, text)
		},
		RegisterEvent: func(ctx any, name string) {
			t.registered = append(t.registered, name)
		},
		ResolvePortal: func(ctx any, target string) host.NodeID {
			return t.portals[target]
		},
	}
}

func (t *memTree) hydrationBindings() *host.HydrationBindings {
	return &host.HydrationBindings{
		Ctx: t,
		FirstChild: func(ctx any, node host.NodeID) (host.NodeID, bool) {
			kids := t.nodes[node].children
			if len(kids) == 0 {
				return 0, false
			}
			return kids[0], true
		},
		NextSibling: func(ctx any, node host.NodeID) (host.NodeID, bool) {
			n := t.nodes[node]
			kids := t.nodes[n.parent].children
			for i, id := range kids {
				if id == node && i+1 < len(kids) {
					return kids[i+1], true
				}
			}
			return 0, false
		},
		NodeType: func(ctx any, node host.NodeID) host.NodeType {
			return t.nodes[node].kind
		},
		TagName: func(ctx any, node host.NodeID) string {
			return t.nodes[node].tag
		},
		TextContent: func(ctx any, node host.NodeID) string {
			return t.nodes[node].text
		},
		GetAttribute: func(ctx any, node host.NodeID, name string) (string, bool) {
			v, ok := t.nodes[node].attrs[name]
			return v, ok
		},
		CommentText: func(ctx any, node host.NodeID) string {
			return t.nodes[node].text
		},
	}
}

// appendNode hand-places a node the way a server renderer would.
func (t *memTree) appendNode(parent host.NodeID, n *memNode) host.NodeID {
	n.parent = parent
	t.nodes[parent].children = append(t.nodes[parent].children, n.id)
	return n.id
}

func (t *memTree) appendElement(parent host.NodeID, tag string, hid uint32) host.NodeID {
	n := t.alloc(host.NodeElement)
	n.tag = tag
	n.attrs["data-hid"] = fmt.Sprintf("%d", hid)
	return t.appendNode(parent, n)
}

func (t *memTree) appendText(parent host.NodeID, text string) host.NodeID {
	n := t.alloc(host.NodeText)
	n.text = text
	return t.appendNode(parent, n)
}

func (t *memTree) appendComment(parent host.NodeID, text string) host.NodeID {
	n := t.alloc(host.NodeComment)
	n.text = text
	return t.appendNode(parent, n)
}

// ssrRender lays out under parent exactly what a server renderer emits for
// prog: data-hid attributes on elements, values in the dynamic slots, and
// marker comments for island/portal/suspense boundaries.
func (t *memTree) ssrRender(prog *render.Program, parent host.NodeID, values []string) {
	parents := []host.NodeID{parent}
	cur := func() host.NodeID { return parents[len(parents)-1] }
	slot := 0

	for _, op := range prog.Ops {
		switch op.Kind {
		case render.OpOpenElement:
			n := t.appendElement(cur(), op.Tag, op.HID)
			parents = append(parents, n)
		case render.OpSelfElement:
			t.appendElement(cur(), op.Tag, op.HID)
		case render.OpCloseElement:
			parents = parents[:len(parents)-1]
		case render.OpText:
			if op.Text != "" {
				t.appendText(cur(), op.Text)
			}
		case render.OpDynamicText:
			t.appendText(cur(), values[slot])
			slot++
		case render.OpIslandStart:
			t.appendComment(cur(), "island:"+op.Name)
		case render.OpIslandEnd:
			t.appendComment(cur(), "/island")
		case render.OpPortalStart:
			t.appendComment(cur(), "portal:"+op.Name)
			parents = append(parents, t.portals[op.Name])
		case render.OpPortalEnd:
			parents = parents[:len(parents)-1]
			t.appendComment(cur(), "/portal")
		case render.OpSuspenseStart:
			t.appendComment(cur(), "suspense:start "+op.Name)
		case render.OpSuspenseFallback:
			t.appendComment(cur(), "suspense:fallback")
		case render.OpSuspenseEnd:
			t.appendComment(cur(), "/suspense")
		}
	}
}

//go:build !(js && wasm)

package host

import (
	"log"
	"os"
)

// Off-WASM there is no real host tree. The default mount table narrates
// every call to stderr and hands out sequential ids, which is enough to
// eyeball a render program from a terminal. The default hydration table
// panics: there is no pre-rendered tree to attach to.

type stderrHost struct {
	logger *log.Logger
	nextID NodeID
}

func defaultBindings() Bindings {
	h := &stderrHost{
		logger: log.New(os.Stderr, "ripple/host: ", 0),
		nextID: 1,
	}
	return Bindings{
		Ctx: h,
		CreateElement: func(ctx any, tag string) NodeID {
			s := ctx.(*stderrHost)
			id := s.alloc()
			s.logger.Printf("create_element %q -> %d", tag, id)
			return id
		},
		CreateText: func(ctx any, text string) NodeID {
			s := ctx.(*stderrHost)
			id := s.alloc()
			s.logger.Printf("create_text %q -> %d", text, id)
			return id
		},
		AppendChild: func(ctx any, parent, child NodeID) {
			ctx.(*stderrHost).logger.Printf("append_child %d <- %d", parent, child)
		},
		SetAttribute: func(ctx any, node NodeID, name, value string) {
			ctx.(*stderrHost).logger.Printf("set_attribute %d %s=%q", node, name, value)
		},
		SetText: func(ctx any, node NodeID, text string) {
			ctx.(*stderrHost).logger.Printf("set_text %d %q", node, text)
		},
		RegisterEvent: func(ctx any, name string) {
			ctx.(*stderrHost).logger.Printf("register_event %q", name)
		},
		ResolvePortal: func(ctx any, target string) NodeID {
			ctx.(*stderrHost).logger.Printf("resolve_portal %q -> 0", target)
			return 0
		},
	}
}

func (s *stderrHost) alloc() NodeID {
	id := s.nextID
	s.nextID++
	return id
}

func defaultHydrationBindings() HydrationBindings {
	die := func() { panic("ripple/host: hydration bindings not installed") }
	return HydrationBindings{
		FirstChild:   func(any, NodeID) (NodeID, bool) { die(); return 0, false },
		NextSibling:  func(any, NodeID) (NodeID, bool) { die(); return 0, false },
		NodeType:     func(any, NodeID) NodeType { die(); return NodeOther },
		TagName:      func(any, NodeID) string { die(); return "" },
		TextContent:  func(any, NodeID) string { die(); return "" },
		GetAttribute: func(any, NodeID, string) (string, bool) { die(); return "", false },
		CommentText:  func(any, NodeID) string { die(); return "" },
	}
}

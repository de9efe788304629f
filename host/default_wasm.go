//go:build js && wasm

package host

import "syscall/js"

// On WASM the embedder exposes the host tree as globals with the
// ripple_dom_ prefix. Node ids stay numeric across the boundary; strings
// cross as JS strings via syscall/js.

func defaultBindings() Bindings {
	g := js.Global()
	return Bindings{
		Ctx: g,
		CreateElement: func(ctx any, tag string) NodeID {
			return NodeID(ctx.(js.Value).Call("ripple_dom_create_element", tag).Int())
		},
		CreateText: func(ctx any, text string) NodeID {
			return NodeID(ctx.(js.Value).Call("ripple_dom_create_text", text).Int())
		},
		AppendChild: func(ctx any, parent, child NodeID) {
			ctx.(js.Value).Call("ripple_dom_append_child", int(parent), int(child))
		},
		SetAttribute: func(ctx any, node NodeID, name, value string) {
			ctx.(js.Value).Call("ripple_dom_set_attribute", int(node), name, value)
		},
		SetText: func(ctx any, node NodeID, text string) {
			ctx.(js.Value).Call("ripple_dom_set_text", int(node), text)
		},
		RegisterEvent: func(ctx any, name string) {
			ctx.(js.Value).Call("ripple_dom_register_event", name)
		},
		ResolvePortal: func(ctx any, target string) NodeID {
			return NodeID(ctx.(js.Value).Call("ripple_dom_resolve_portal", target).Int())
		},
	}
}

func defaultHydrationBindings() HydrationBindings {
	g := js.Global()
	optional := func(v js.Value) (NodeID, bool) {
		id := NodeID(v.Int())
		return id, id != 0
	}
	return HydrationBindings{
		Ctx: g,
		FirstChild: func(ctx any, node NodeID) (NodeID, bool) {
			return optional(ctx.(js.Value).Call("ripple_dom_first_child", int(node)))
		},
		NextSibling: func(ctx any, node NodeID) (NodeID, bool) {
			return optional(ctx.(js.Value).Call("ripple_dom_next_sibling", int(node)))
		},
		NodeType: func(ctx any, node NodeID) NodeType {
			return NodeType(ctx.(js.Value).Call("ripple_dom_node_type", int(node)).Int())
		},
		TagName: func(ctx any, node NodeID) string {
			return ctx.(js.Value).Call("ripple_dom_tag_name", int(node)).String()
		},
		TextContent: func(ctx any, node NodeID) string {
			return ctx.(js.Value).Call("ripple_dom_text_content", int(node)).String()
		},
		GetAttribute: func(ctx any, node NodeID, name string) (string, bool) {
			v := ctx.(js.Value).Call("ripple_dom_get_attribute", int(node), name)
			if v.IsNull() || v.IsUndefined() {
				return "", false
			}
			return v.String(), true
		},
		CommentText: func(ctx any, node NodeID) string {
			return ctx.(js.Value).Call("ripple_dom_comment_text", int(node)).String()
		},
	}
}

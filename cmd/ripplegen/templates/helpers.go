package templates

import "github.com/GhostKellz/ripple/render"

func opKindName(k render.OpKind) string {
	switch k {
	case render.OpOpenElement:
		return "render.OpOpenElement"
	case render.OpCloseElement:
		return "render.OpCloseElement"
	case render.OpSelfElement:
		return "render.OpSelfElement"
	case render.OpText:
		return "render.OpText"
	case render.OpDynamicText:
		return "render.OpDynamicText"
	case render.OpIslandStart:
		return "render.OpIslandStart"
	case render.OpIslandEnd:
		return "render.OpIslandEnd"
	case render.OpPortalStart:
		return "render.OpPortalStart"
	case render.OpPortalEnd:
		return "render.OpPortalEnd"
	case render.OpSuspenseStart:
		return "render.OpSuspenseStart"
	case render.OpSuspenseFallback:
		return "render.OpSuspenseFallback"
	case render.OpSuspenseEnd:
		return "render.OpSuspenseEnd"
	}
	return "render.OpKind(0)"
}

package reactive

import (
	"sync"

	"github.com/petermattis/goid"
)

// Runtimes are single-goroutine by design, but embedders that do not want
// to thread the handle everywhere can lease a per-goroutine default. The
// registry is the only cross-goroutine structure in the package.
var defaultRuntimes sync.Map

// Default returns this goroutine's runtime, creating it on first use.
func Default() *Runtime {
	gid := goid.Get()
	if rt, ok := defaultRuntimes.Load(gid); ok {
		return rt.(*Runtime)
	}
	rt := New()
	defaultRuntimes.Store(gid, rt)
	return rt
}

// ReleaseDefault drops this goroutine's default runtime. Call it before a
// worker goroutine exits so the registry does not pin dead runtimes.
func ReleaseDefault() {
	defaultRuntimes.Delete(goid.Get())
}

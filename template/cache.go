package template

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Go has no comptime, so repeated template literals pay one parse per
// process: the cache keys compiled plans by the xxhash of their source.
var cache sync.Map // uint64 -> *Plan

// MustCompile compiles src, caching the plan by content identity. It
// panics on invalid markup and is meant for literal templates known good
// at build time; the ripplegen generator is the ahead-of-time alternative.
func MustCompile(src string) *Plan {
	key := xxhash.Sum64String(src)
	if p, ok := cache.Load(key); ok {
		return p.(*Plan)
	}
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	actual, _ := cache.LoadOrStore(key, p)
	return actual.(*Plan)
}

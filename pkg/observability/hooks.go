// Package observability provides hooks for instrumenting engine operations.
// Hooks are optional; all default to no-ops so callers only pay for what
// they register.
package observability

import (
	"sync"
	"time"
)

// EngineHooks receives callbacks around layout and render stages.
type EngineHooks struct {
	// OnLayoutStart fires before subtree measurement and placement.
	OnLayoutStart func(nodeCount int)

	// OnLayoutComplete fires after placement with the elapsed duration.
	OnLayoutComplete func(nodeCount int, duration time.Duration)

	// OnRenderStart fires before a frame is drawn.
	OnRenderStart func(format string)

	// OnRenderComplete fires after a frame is drawn.
	OnRenderComplete func(format string, bytes int, duration time.Duration)
}

// CacheHooks receives callbacks on cache activity.
type CacheHooks struct {
	// OnHit fires when a key is found.
	OnHit func(key string)

	// OnMiss fires when a key is absent or expired.
	OnMiss func(key string)
}

var (
	mu          sync.RWMutex
	engineHooks EngineHooks
	cacheHooks  CacheHooks
)

// SetEngineHooks installs engine hooks. Nil fields are ignored at call sites.
func SetEngineHooks(h EngineHooks) {
	mu.Lock()
	defer mu.Unlock()
	engineHooks = h
}

// SetCacheHooks installs cache hooks.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	cacheHooks = h
}

// LayoutStart invokes the layout-start hook if registered.
func LayoutStart(nodeCount int) {
	mu.RLock()
	fn := engineHooks.OnLayoutStart
	mu.RUnlock()
	if fn != nil {
		fn(nodeCount)
	}
}

// LayoutComplete invokes the layout-complete hook if registered.
func LayoutComplete(nodeCount int, duration time.Duration) {
	mu.RLock()
	fn := engineHooks.OnLayoutComplete
	mu.RUnlock()
	if fn != nil {
		fn(nodeCount, duration)
	}
}

// RenderStart invokes the render-start hook if registered.
func RenderStart(format string) {
	mu.RLock()
	fn := engineHooks.OnRenderStart
	mu.RUnlock()
	if fn != nil {
		fn(format)
	}
}

// RenderComplete invokes the render-complete hook if registered.
func RenderComplete(format string, bytes int, duration time.Duration) {
	mu.RLock()
	fn := engineHooks.OnRenderComplete
	mu.RUnlock()
	if fn != nil {
		fn(format, bytes, duration)
	}
}

// CacheHit invokes the cache-hit hook if registered.
func CacheHit(key string) {
	mu.RLock()
	fn := cacheHooks.OnHit
	mu.RUnlock()
	if fn != nil {
		fn(key)
	}
}

// CacheMiss invokes the cache-miss hook if registered.
func CacheMiss(key string) {
	mu.RLock()
	fn := cacheHooks.OnMiss
	mu.RUnlock()
	if fn != nil {
		fn(key)
	}
}

// Reset clears all registered hooks. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	engineHooks = EngineHooks{}
	cacheHooks = CacheHooks{}
}

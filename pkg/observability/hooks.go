// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about overlay rendering, settings storage and message delivery.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, which keeps the grid
// packages free of observability frameworks and import cycles.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetStorageHooks(&myStorageHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	// ... compute placement and apply style ...
//	observability.Render().OnRender(ctx, width, height, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the overlay controller.
type RenderHooks interface {
	// OnMount records the overlay element being created.
	OnMount(ctx context.Context)

	// OnUnmount records the overlay element being removed.
	OnUnmount(ctx context.Context)

	// OnRender records one placement computation applied to the element.
	OnRender(ctx context.Context, viewportWidth, viewportHeight int, duration time.Duration, err error)
}

// =============================================================================
// Storage Hooks
// =============================================================================

// StorageHooks receives events from the settings repository.
type StorageHooks interface {
	// OnLoad records a settings read. found is false when defaults were used.
	OnLoad(ctx context.Context, key string, found bool, duration time.Duration, err error)

	// OnSave records a settings write.
	OnSave(ctx context.Context, key string, size int, duration time.Duration, err error)
}

// =============================================================================
// Channel Hooks
// =============================================================================

// ChannelHooks receives events from settings message delivery.
type ChannelHooks interface {
	// OnSend records a message handed to a channel.
	OnSend(ctx context.Context, transport, messageID string)

	// OnDeliver records a message processed by the receiving side.
	OnDeliver(ctx context.Context, transport, messageID string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnMount(context.Context)                                  {}
func (NoopRenderHooks) OnUnmount(context.Context)                                {}
func (NoopRenderHooks) OnRender(context.Context, int, int, time.Duration, error) {}

// NoopStorageHooks is a no-op implementation of StorageHooks.
type NoopStorageHooks struct{}

func (NoopStorageHooks) OnLoad(context.Context, string, bool, time.Duration, error) {}
func (NoopStorageHooks) OnSave(context.Context, string, int, time.Duration, error)  {}

// NoopChannelHooks is a no-op implementation of ChannelHooks.
type NoopChannelHooks struct{}

func (NoopChannelHooks) OnSend(context.Context, string, string)                           {}
func (NoopChannelHooks) OnDeliver(context.Context, string, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks  RenderHooks  = NoopRenderHooks{}
	storageHooks StorageHooks = NoopStorageHooks{}
	channelHooks ChannelHooks = NoopChannelHooks{}
	hooksMu      sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetStorageHooks registers custom storage hooks.
// This should be called once at application startup.
func SetStorageHooks(h StorageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storageHooks = h
	}
}

// SetChannelHooks registers custom channel hooks.
// This should be called once at application startup.
func SetChannelHooks(h ChannelHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		channelHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Storage returns the registered storage hooks.
func Storage() StorageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storageHooks
}

// Channel returns the registered channel hooks.
func Channel() ChannelHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return channelHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	storageHooks = NoopStorageHooks{}
	channelHooks = NoopChannelHooks{}
}

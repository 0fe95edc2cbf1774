package overlay

import (
	"context"
	"errors"
	"sync"

	"github.com/matzehuels/pixelgrid/pkg/placement"
)

// ErrNotMounted is returned when an element is used after it was removed.
var ErrNotMounted = errors.New("overlay element not mounted")

// MemoryHost is a Host without a page. It records what would be drawn,
// which is what `pixelgrid serve` reports when no browser is attached.
type MemoryHost struct {
	mu       sync.Mutex
	viewport placement.Viewport
	current  *MemoryElement
	mounts   int
}

// NewMemoryHost creates a host with the given viewport.
func NewMemoryHost(vp placement.Viewport) *MemoryHost {
	return &MemoryHost{viewport: vp}
}

// SetViewport changes the size reported by Viewport.
func (h *MemoryHost) SetViewport(vp placement.Viewport) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewport = vp
}

func (h *MemoryHost) Viewport(ctx context.Context) (placement.Viewport, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewport, nil
}

func (h *MemoryHost) Mount(ctx context.Context) (Element, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mounts++
	h.current = &MemoryElement{}
	return h.current, nil
}

func (h *MemoryHost) Unmount(ctx context.Context, el Element) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil || el != Element(h.current) {
		return ErrNotMounted
	}
	h.current.removed = true
	h.current = nil
	return nil
}

// Element returns the mounted element, or nil.
func (h *MemoryHost) Element() *MemoryElement {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Mounts counts how many elements were created.
func (h *MemoryHost) Mounts() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mounts
}

// MemoryElement records the style and attributes applied to it.
type MemoryElement struct {
	mu      sync.Mutex
	style   placement.Style
	attrs   []placement.Property
	applied int
	removed bool
}

func (e *MemoryElement) Apply(ctx context.Context, style placement.Style) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return ErrNotMounted
	}
	e.style = append(placement.Style(nil), style...)
	e.applied++
	return nil
}

func (e *MemoryElement) Annotate(ctx context.Context, attrs []placement.Property) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return ErrNotMounted
	}
	e.attrs = append([]placement.Property(nil), attrs...)
	return nil
}

// Style returns the last applied style.
func (e *MemoryElement) Style() placement.Style {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.style
}

// Attributes returns the last set attributes.
func (e *MemoryElement) Attributes() []placement.Property {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attrs
}

// Applied counts Apply calls.
func (e *MemoryElement) Applied() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applied
}

var (
	_ Host    = (*MemoryHost)(nil)
	_ Element = (*MemoryElement)(nil)
)

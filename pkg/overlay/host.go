package overlay

import (
	"context"

	"github.com/matzehuels/pixelgrid/pkg/placement"
)

// Host is the page the overlay is drawn on.
type Host interface {
	// Viewport measures the drawable area, scrollbars excluded.
	Viewport(ctx context.Context) (placement.Viewport, error)
	// Mount creates the overlay element. The controller mounts at most one
	// element at a time.
	Mount(ctx context.Context) (Element, error)
	// Unmount removes an element created by Mount.
	Unmount(ctx context.Context, el Element) error
}

// Element is a mounted overlay element.
type Element interface {
	// Apply replaces the element's inline style with style.
	Apply(ctx context.Context, style placement.Style) error
	// Annotate sets DOM attributes describing the settings.
	Annotate(ctx context.Context, attrs []placement.Property) error
}

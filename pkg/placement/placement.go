package placement

import (
	"github.com/matzehuels/pixelgrid/pkg/background"
	"github.com/matzehuels/pixelgrid/pkg/geometry"
	"github.com/matzehuels/pixelgrid/pkg/settings"
)

// Viewport is the drawable page area in CSS pixels, scrollbars excluded.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Span is the horizontal part of the grid that lies inside the viewport.
type Span struct {
	Left  int `json:"left"`
	Right int `json:"right"`
	// Width is Right-Left. When nothing is visible it is the full grid width
	// and Right is moved to match.
	Width int `json:"width"`
	// Fallback is set when the grid lies fully outside the viewport and Width
	// was replaced by the grid width.
	Fallback bool `json:"fallback"`
}

// ClipSpan clips a grid of gridWidth pixels starting at offsetX to
// [0, viewportWidth]. A span of zero width is never returned for a non-empty
// grid: it falls back to the full grid width.
func ClipSpan(viewportWidth, offsetX, gridWidth int) Span {
	left := max(0, offsetX)
	right := min(viewportWidth, offsetX+gridWidth)
	width := max(0, right-left)

	s := Span{Left: left, Right: right, Width: width}
	if width == 0 {
		s.Width = gridWidth
		s.Right = left + gridWidth
		s.Fallback = true
	}
	return s
}

// Placement is where and how large the overlay element is drawn.
type Placement struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`

	// GridWidth is the unclipped grid width; the background is sized to it.
	GridWidth int `json:"gridWidth"`
	// BackgroundOffsetX shifts the background so the pattern stays anchored
	// at offsetX while the element is clipped.
	BackgroundOffsetX int `json:"backgroundOffsetX"`

	ZIndex   int      `json:"zIndex"`
	Viewport Viewport `json:"viewport"`
	Clipped  Span     `json:"span"`
}

// Resolve computes the overlay placement. ok is false when the grid is hidden,
// in which case the overlay must be removed.
//
// There is no vertical clipping: Top is offsetY and the height always spans
// the viewport.
func Resolve(vp Viewport, s settings.GridSettings) (p Placement, ok bool) {
	if !s.Visible {
		return Placement{}, false
	}

	gridWidth := geometry.GridWidth(float64(vp.Width), s.BaseLine, s.InnerColumnWidth)
	span := ClipSpan(vp.Width, s.OffsetX, gridWidth)

	return Placement{
		Left:              span.Left,
		Top:               s.OffsetY,
		Width:             span.Width,
		Height:            vp.Height,
		GridWidth:         gridWidth,
		BackgroundOffsetX: s.OffsetX - span.Left,
		ZIndex:            s.ZIndex,
		Viewport:          vp,
		Clipped:           span,
	}, true
}

// Compute resolves the placement and builds the full style for the overlay.
func Compute(vp Viewport, s settings.GridSettings) (Style, bool) {
	p, ok := Resolve(vp, s)
	if !ok {
		return nil, false
	}
	return NewStyle(p, background.Generate(s)), true
}

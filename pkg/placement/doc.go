// Package placement maps the grid onto a live viewport.
//
// [Resolve] clips the grid horizontally to the viewport and shifts the
// background by the clipped amount, so the pattern stays anchored at offsetX
// while the element itself never overflows. A grid pushed fully off screen
// keeps its full width instead of collapsing to a zero-width element.
//
// [NewStyle] turns a placement into the ordered declarations the overlay
// element receives; [Compute] does both steps plus background generation.
// Everything here is pure. Applying the style to a page is the job of
// package overlay.
package placement

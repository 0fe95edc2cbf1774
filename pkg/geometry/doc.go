// Package geometry derives grid dimensions from a viewport width and the
// user's length settings.
//
// The overlay width is always an exact multiple of the inner column pitch, so
// the repeating background ends on a whole column at the right edge. A partial
// column there is what makes the grid flicker while a window is resized.
package geometry

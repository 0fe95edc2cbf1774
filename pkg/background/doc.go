// Package background builds the tiling CSS background that draws the grid.
//
// The background is four repeating-linear-gradient layers, one 1px line per
// tile: inner columns, outer columns, inner baselines and outer baselines.
// Outer layers repeat every inner² pixels and are drawn at a higher opacity
// (alpha/100 * 0.5 + 0.3) than the inner ones (alpha/100).
//
// Nothing here draws. The output is a string handed to a rendering engine.
package background

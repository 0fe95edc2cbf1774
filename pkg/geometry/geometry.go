package geometry

import (
	"fmt"
	"math"

	"github.com/matzehuels/pixelgrid/pkg/units"
)

// CalculateColumns returns how many baseline-sized columns fit into
// viewportWidth. A baseline that parses to 0 yields 0 columns.
func CalculateColumns(viewportWidth float64, baseLine string) int {
	baseLineValue := units.ParseValue(baseLine)
	if baseLineValue == 0 {
		return 0
	}
	return saturate(math.Floor(viewportWidth / baseLineValue))
}

// GridWidth returns the overlay width in whole pixels: the column count times
// the inner column pitch, floored.
func GridWidth(viewportWidth float64, baseLine, innerColumnWidth string) int {
	columns := CalculateColumns(viewportWidth, baseLine)
	innerColumnValue := units.ParseValue(innerColumnWidth)
	return saturate(math.Floor(float64(columns) * innerColumnValue))
}

// MaxPixels bounds column counts and widths. Lengths small or large enough to
// push a count past it saturate instead of wrapping.
const MaxPixels = math.MaxInt32

func saturate(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > MaxPixels:
		return MaxPixels
	case v < -MaxPixels:
		return -MaxPixels
	}
	return int(v)
}

// CalculateGridWidth is GridWidth formatted as a CSS pixel length ("1024px").
func CalculateGridWidth(viewportWidth float64, baseLine, innerColumnWidth string) string {
	return fmt.Sprintf("%dpx", GridWidth(viewportWidth, baseLine, innerColumnWidth))
}

// CalculateRepeatingWidth returns a calc() expression that splits 100% evenly
// into columns.
func CalculateRepeatingWidth(columns int) string {
	return fmt.Sprintf("calc(100%% / %d)", columns)
}

// OuterColumn returns the coarse column pitch in pixels, the square of the
// inner column value. The stored outer column width is not consulted.
func OuterColumn(innerColumnWidth string) float64 {
	v := units.ParseValue(innerColumnWidth)
	return v * v
}

package background

import (
	"fmt"
	"strconv"
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// String formats the color the way settings store it: "rgb(52,152,219)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// BaseColors are the swatches offered by the settings panel.
var BaseColors = []RGB{
	{46, 204, 113},
	{52, 152, 219},
	{155, 89, 182},
	{52, 73, 94},
	{241, 196, 15},
	{230, 126, 34},
	{231, 76, 60},
}

// FallbackHex is returned by RGBToHex for input it cannot read.
const FallbackHex = "#3498db"

// RGBToHex converts an rgb(r,g,b) string to "#rrggbb".
func RGBToHex(color string) string {
	m := rgbRe.FindStringSubmatch(color)
	if m == nil {
		return FallbackHex
	}
	var c RGB
	for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
		n, err := strconv.Atoi(m[i+1])
		if err != nil || n > 255 {
			return FallbackHex
		}
		*dst = uint8(n)
	}
	return c.Hex()
}

// HexToRGB converts "#rrggbb" or "#rgb" to an rgb(r,g,b) string. ok is false
// when hex is not a hex color.
func HexToRGB(hex string) (string, bool) {
	m := hexRe.FindStringSubmatch(hex)
	if m == nil || len(m[0]) != len(hex) {
		return "", false
	}
	r, g, b, ok := parseHex(m[1])
	if !ok {
		return "", false
	}
	return RGB{uint8(r), uint8(g), uint8(b)}.String(), true
}

// IsBaseColor reports whether color is one of the panel swatches.
func IsBaseColor(color string) bool {
	for _, c := range BaseColors {
		if c.String() == color {
			return true
		}
	}
	return false
}

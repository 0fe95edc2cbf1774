package background

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/matzehuels/pixelgrid/pkg/units"
)

var (
	rgbRe = regexp.MustCompile(`rgb\((\d+),\s*(\d+),\s*(\d+)\)`)
	// Six digits are tried first so "#3498db" is not read as "#349".
	hexRe = regexp.MustCompile(`(?i)#([0-9a-f]{6}|[0-9a-f]{3})`)
)

// ColorToRGBA converts an rgb(r,g,b) triple or a 3/6-digit hex color into an
// rgba() string at the given alpha (0-1). Other formats are returned unchanged.
func ColorToRGBA(color string, alpha float64) string {
	a := units.FormatNumber(alpha)

	if m := rgbRe.FindStringSubmatch(color); m != nil {
		return fmt.Sprintf("rgba(%s, %s, %s, %s)", m[1], m[2], m[3], a)
	}

	if m := hexRe.FindStringSubmatch(color); m != nil {
		r, g, b, ok := parseHex(m[1])
		if ok {
			return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, a)
		}
	}

	return color
}

// parseHex decodes "rgb" or "rrggbb" digits. Shorthand digits are doubled.
func parseHex(hex string) (r, g, b int, ok bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

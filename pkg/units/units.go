package units

import (
	"regexp"
	"strconv"
)

// Unit names accepted by the parser and validator.
const (
	Pixel      = "px"
	Em         = "em"
	Ex         = "ex"
	Percent    = "%"
	Inch       = "in"
	Centimeter = "cm"
	Millimeter = "mm"
	Point      = "pt"
	Pica       = "pc"
)

// All lists every recognized unit.
var All = []string{Pixel, Em, Ex, Percent, Inch, Centimeter, Millimeter, Point, Pica}

const unitPattern = `(px|em|ex|%|in|cm|mm|pt|pc)`

var (
	// valueRe allows a trailing point without fraction digits ("1.px").
	valueRe = regexp.MustCompile(`^([+-]?[0-9]+\.?[0-9]*)` + unitPattern + `$`)

	// validRe requires at least one digit after a decimal point.
	validRe = regexp.MustCompile(`^(auto|0)$|^[+-]?[0-9]+(\.[0-9]+)?` + unitPattern + `$`)
)

// Length is a parsed CSS length.
type Length struct {
	Value float64
	Unit  string
}

// String formats the length back into CSS ("16px", "1.5em").
func (l Length) String() string {
	return FormatNumber(l.Value) + l.Unit
}

// Parse splits s into its numeric value and unit.
// ok is false when s does not match <number><unit>.
func Parse(s string) (l Length, ok bool) {
	m := valueRe.FindStringSubmatch(s)
	if m == nil {
		return Length{}, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: v, Unit: m[2]}, true
}

// ParseValue returns the numeric magnitude of a CSS length such as "16px" or
// "1.5em". It returns 0 when s is not a signed decimal followed by one of the
// recognized units.
func ParseValue(s string) float64 {
	l, ok := Parse(s)
	if !ok {
		return 0
	}
	return l.Value
}

// IsValidUnit reports whether s is an acceptable length for grid settings.
// The literals "auto" and "0" are always accepted.
func IsValidUnit(s string) bool {
	return validRe.MatchString(s)
}

// IsCommittable reports whether a form input may be stored. The empty string
// counts as "still editing" and passes the gate, though it is never persisted
// as a length.
func IsCommittable(s string) bool {
	return s == "" || IsValidUnit(s)
}

// FormatNumber renders f in its shortest decimal form, the way CSS values are
// written by hand: 16, 1.5, 0.35.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Px formats a pixel count as a CSS length.
func Px(f float64) string {
	return FormatNumber(f) + Pixel
}

package background

import (
	"strings"

	"github.com/matzehuels/pixelgrid/pkg/geometry"
	"github.com/matzehuels/pixelgrid/pkg/settings"
	"github.com/matzehuels/pixelgrid/pkg/units"
)

// Orientation says which way a layer's lines run.
type Orientation int

const (
	// Vertical lines repeat left to right (column layers).
	Vertical Orientation = iota
	// Horizontal lines repeat top to bottom (baseline layers).
	Horizontal
)

// Layer is one repeating-linear-gradient of the overlay background.
type Layer struct {
	Name        string
	Orientation Orientation
	Color       string // rgba() or the unconverted input
	Pitch       string // tile length
	// Stop is where the closing line starts on column layers ("calc(7px)").
	// Baseline layers have none.
	Stop string
}

// String renders the layer as a CSS gradient. Column layers repeat the
// closing color stop at Stop and Pitch so the engine cannot blend the line
// into its neighbours.
func (l Layer) String() string {
	c := l.Color
	var b strings.Builder
	b.WriteString("repeating-linear-gradient(")
	if l.Orientation == Vertical {
		b.WriteString("to right, ")
	}
	b.WriteString(c + ", " + c + " 1px, transparent 1px, transparent ")
	if l.Stop == "" {
		b.WriteString(l.Pitch + ")")
		return b.String()
	}
	b.WriteString(l.Stop + ", " + c + " " + l.Stop + ", " + c + " " + l.Pitch +
		", transparent " + l.Pitch + ", transparent " + l.Pitch + ")")
	return b.String()
}

// Layer names, in compositing order.
const (
	InnerColumn   = "inner-column"
	OuterColumn   = "outer-column"
	InnerBaseline = "inner-baseline"
	OuterBaseline = "outer-baseline"
)

// InnerAlpha is the opacity of the fine layers for an alpha percentage.
func InnerAlpha(alpha int) float64 {
	return float64(alpha) / 100
}

// OuterAlpha is the opacity of the coarse layers. It never drops below 0.3.
func OuterAlpha(alpha int) float64 {
	// The conversion rounds the product so no platform fuses it into an FMA;
	// the printed value must stay 0.35 for alpha 10.
	return float64(float64(alpha)/100*0.5) + 0.3
}

// Layers returns the four background layers for s in compositing order:
// inner column, outer column, inner baseline, outer baseline.
//
// The outer pitch is the square of the inner column value; s.OuterColumnWidth
// is not consulted.
func Layers(s settings.GridSettings) []Layer {
	inner := units.ParseValue(s.InnerColumnWidth)
	outer := geometry.OuterColumn(s.InnerColumnWidth)
	outerPx := units.Px(outer)

	innerColor := ColorToRGBA(s.Color, InnerAlpha(s.Alpha))
	outerColor := ColorToRGBA(s.Color, OuterAlpha(s.Alpha))

	return []Layer{
		{
			Name:        InnerColumn,
			Orientation: Vertical,
			Color:       innerColor,
			Pitch:       s.InnerColumnWidth,
			Stop:        "calc(" + units.Px(inner-1) + ")",
		},
		{
			Name:        OuterColumn,
			Orientation: Vertical,
			Color:       outerColor,
			Pitch:       outerPx,
			Stop:        "calc(" + units.Px(outer-1) + ")",
		},
		{
			Name:        InnerBaseline,
			Orientation: Horizontal,
			Color:       innerColor,
			Pitch:       s.BaseLine,
		},
		{
			Name:        OuterBaseline,
			Orientation: Horizontal,
			Color:       outerColor,
			Pitch:       outerPx,
		},
	}
}

// Generate returns the complete background-image value for s.
func Generate(s settings.GridSettings) string {
	layers := Layers(s)
	parts := make([]string, len(layers))
	for i, l := range layers {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}

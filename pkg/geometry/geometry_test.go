package geometry

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/pixelgrid/pkg/units"
)

func TestCalculateColumns(t *testing.T) {
	tests := []struct {
		name     string
		viewport float64
		baseLine string
		want     int
	}{
		{"16px in 100", 100, "16px", 6},
		{"16px in 200", 200, "16px", 12},
		{"8px in 100", 100, "8px", 12},
		{"zero baseline", 100, "0px", 0},
		{"unparseable baseline", 100, "16", 0},
		{"fractional baseline", 10, "1.5em", 6},
		{"zero viewport", 0, "8px", 0},
		{"tiny baseline saturates", 1024, "0.0000000000000000001px", MaxPixels},
		{"negative tiny baseline saturates", 1024, "-0.0000000000000000001px", -MaxPixels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateColumns(tt.viewport, tt.baseLine); got != tt.want {
				t.Errorf("CalculateColumns(%v, %q) = %d, want %d", tt.viewport, tt.baseLine, got, tt.want)
			}
		})
	}
}

func TestCalculateRepeatingWidth(t *testing.T) {
	tests := []struct {
		columns int
		want    string
	}{
		{4, "calc(100% / 4)"},
		{12, "calc(100% / 12)"},
	}

	for _, tt := range tests {
		if got := CalculateRepeatingWidth(tt.columns); got != tt.want {
			t.Errorf("CalculateRepeatingWidth(%d) = %q, want %q", tt.columns, got, tt.want)
		}
	}
}

func TestCalculateGridWidth(t *testing.T) {
	tests := []struct {
		name     string
		viewport float64
		baseLine string
		inner    string
		want     string
	}{
		{"defaults at 1024", 1024, "8px", "8px", "1024px"},
		{"defaults at 1023", 1023, "8px", "8px", "1016px"},
		{"baseline differs from inner", 100, "16px", "8px", "48px"},
		{"fractional inner", 100, "10px", "1.5px", "15px"},
		{"zero baseline", 1024, "0px", "8px", "0px"},
		{"invalid inner", 1024, "8px", "auto", "0px"},
		{"tiny baseline saturates", 1024, "0.0000000000000000001px", "8px", "2147483647px"},
		{"huge inner saturates", 1024, "8px", "99999999999999999999px", "2147483647px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGridWidth(tt.viewport, tt.baseLine, tt.inner)
			if got != tt.want {
				t.Errorf("CalculateGridWidth(%v, %q, %q) = %q, want %q", tt.viewport, tt.baseLine, tt.inner, got, tt.want)
			}
		})
	}
}

func TestGridWidthIsMultipleOfInnerColumn(t *testing.T) {
	baseLines := []string{"4px", "8px", "12px", "16px", "24px"}
	inners := []string{"4px", "8px", "10px", "16px"}

	for _, bl := range baseLines {
		for _, ic := range inners {
			for vw := 1.0; vw <= 2560; vw += 37 {
				w := units.ParseValue(CalculateGridWidth(vw, bl, ic))
				pitch := units.ParseValue(ic)
				if math.Mod(w, pitch) != 0 {
					t.Fatalf("width %v for viewport %v (%s, %s) is not a multiple of %v", w, vw, bl, ic, pitch)
				}
			}
		}
	}
}

func TestOuterColumn(t *testing.T) {
	tests := []struct {
		inner string
		want  float64
	}{
		{"8px", 64},
		{"10px", 100},
		{"1.5px", 2.25},
		{"bad", 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.inner), func(t *testing.T) {
			if got := OuterColumn(tt.inner); got != tt.want {
				t.Errorf("OuterColumn(%q) = %v, want %v", tt.inner, got, tt.want)
			}
		})
	}
}

package background

import "testing"

func TestColorToRGBA(t *testing.T) {
	tests := []struct {
		name  string
		color string
		alpha float64
		want  string
	}{
		{"rgb", "rgb(52,152,219)", 0.1, "rgba(52, 152, 219, 0.1)"},
		{"rgb with spaces", "rgb(52, 152, 219)", 0.5, "rgba(52, 152, 219, 0.5)"},
		{"rgb inside text", "color: rgb(1,2,3);", 1, "rgba(1, 2, 3, 1)"},
		{"hex6", "#3498db", 0.1, "rgba(52, 152, 219, 0.1)"},
		{"hex6 upper", "#3498DB", 0.1, "rgba(52, 152, 219, 0.1)"},
		{"hex3", "#39f", 0.35, "rgba(51, 153, 255, 0.35)"},
		{"zero alpha", "#000", 0, "rgba(0, 0, 0, 0)"},
		{"named", "red", 0.1, "red"},
		{"hsl", "hsl(0, 100%, 50%)", 0.1, "hsl(0, 100%, 50%)"},
		{"empty", "", 0.1, ""},
		{"rgba input", "rgba(1,2,3,0.5)", 0.1, "rgba(1,2,3,0.5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorToRGBA(tt.color, tt.alpha); got != tt.want {
				t.Errorf("ColorToRGBA(%q, %v) = %q, want %q", tt.color, tt.alpha, got, tt.want)
			}
		})
	}
}

func TestColorToRGBAShorthandMatchesLongForm(t *testing.T) {
	if a, b := ColorToRGBA("#39f", 0.1), ColorToRGBA("#3399ff", 0.1); a != b {
		t.Errorf("#39f = %q, #3399ff = %q", a, b)
	}
}

func TestRGBToHex(t *testing.T) {
	tests := []struct{ in, want string }{
		{"rgb(52,152,219)", "#3498db"},
		{"rgb(0, 0, 0)", "#000000"},
		{"rgb(255,255,255)", "#ffffff"},
		{"rgb(300,0,0)", FallbackHex},
		{"#ff0000", FallbackHex},
		{"", FallbackHex},
	}
	for _, tt := range tests {
		if got := RGBToHex(tt.in); got != tt.want {
			t.Errorf("RGBToHex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#3498db", "rgb(52,152,219)", true},
		{"#39F", "rgb(51,153,255)", true},
		{"3498db", "", false},
		{"#3498db00", "", false},
		{"#zzz", "", false},
	}
	for _, tt := range tests {
		got, ok := HexToRGB(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("HexToRGB(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBaseColors(t *testing.T) {
	if len(BaseColors) != 7 {
		t.Fatalf("got %d base colors, want 7", len(BaseColors))
	}
	if !IsBaseColor("rgb(52,152,219)") {
		t.Error("default color should be a base color")
	}
	if IsBaseColor("rgb(52, 152, 219)") {
		t.Error("base colors are matched exactly as stored")
	}
	for _, c := range BaseColors {
		back, ok := HexToRGB(c.Hex())
		if !ok || back != c.String() {
			t.Errorf("%v: hex round trip gave %q", c, back)
		}
	}
}

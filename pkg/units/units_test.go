package units

import "testing"

func TestParseValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"px integer", "16px", 16},
		{"px decimal", "1.5px", 1.5},
		{"zero px", "0px", 0},
		{"em decimal", "1.2em", 1.2},
		{"em integer", "2em", 2},
		{"percent", "100%", 100},
		{"negative", "-4px", -4},
		{"explicit plus", "+3pt", 3},
		{"trailing point", "5.px", 5},
		{"inches", "2in", 2},

		{"garbage", "invalid", 0},
		{"bare number", "16", 0},
		{"unit only", "px", 0},
		{"trailing garbage", "16px;", 0},
		{"leading space", " 16px", 0},
		{"rem unsupported", "1rem", 0},
		{"auto", "auto", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseValue(tt.input); got != tt.want {
				t.Errorf("ParseValue(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	l, ok := Parse("1.5em")
	if !ok {
		t.Fatal("Parse(1.5em) should succeed")
	}
	if l.Value != 1.5 || l.Unit != Em {
		t.Errorf("Parse(1.5em) = %+v", l)
	}
	if l.String() != "1.5em" {
		t.Errorf("String() = %q, want 1.5em", l.String())
	}

	if _, ok := Parse("16"); ok {
		t.Error("Parse(16) should fail without a unit")
	}
}

func TestIsValidUnit(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"16px", true},
		{"1.5em", true},
		{"2em", true},
		{"100%", true},
		{"auto", true},
		{"0", true},
		{"-8px", true},
		{"+8px", true},
		{"12pt", true},
		{"3pc", true},
		{"1cm", true},
		{"10mm", true},
		{"2ex", true},

		{"invalid", false},
		{"16", false},
		{"px", false},
		{"1.px", false},
		{"1.5", false},
		{"auto ", false},
		{"00", false},
		{"16px16px", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidUnit(tt.input); got != tt.want {
				t.Errorf("IsValidUnit(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsCommittable(t *testing.T) {
	if !IsCommittable("") {
		t.Error("empty input should pass the form gate")
	}
	if !IsCommittable("8px") {
		t.Error("8px should pass the form gate")
	}
	if IsCommittable("8") {
		t.Error("8 should not pass the form gate")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{16, "16"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{0.1*0.5 + 0.3, "0.35"},
		{-1, "-1"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPx(t *testing.T) {
	if got := Px(64); got != "64px" {
		t.Errorf("Px(64) = %q", got)
	}
}

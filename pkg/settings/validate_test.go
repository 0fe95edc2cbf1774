package settings

import (
	"strings"
	"testing"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		settings  GridSettings
		wantField string
	}{
		{"defaults", Default(), ""},
		{"auto outer", Default().WithOuterColumnWidth("auto"), ""},
		{"zero baseline literal", Default().WithBaseLine("0"), ""},
		{"negative offsets", Default().WithOffset(-999, -1), ""},

		{"bare number baseline", Default().WithBaseLine("8"), "baseLine"},
		{"empty inner", Default().WithInnerColumnWidth(""), "innerColumnWidth"},
		{"garbage outer", Default().WithOuterColumnWidth("wide"), "outerColumnWidth"},
		{"empty color", Default().WithColor(""), "color"},
		{"alpha too high", GridSettings{
			BaseLine: "8px", InnerColumnWidth: "8px", OuterColumnWidth: "64px",
			Color: DefaultColor, Alpha: 101,
		}, "alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.settings)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !pgerrors.Is(err, pgerrors.ErrCodeInvalidSettings) {
				t.Fatalf("Validate() error = %v, want INVALID_SETTINGS", err)
			}
			if msg := pgerrors.UserMessage(err); !strings.HasPrefix(msg, tt.wantField) {
				t.Errorf("message %q should name field %q", msg, tt.wantField)
			}
		})
	}
}

func TestValidateLength(t *testing.T) {
	if err := ValidateLength("baseLine", "8px"); err != nil {
		t.Errorf("8px: %v", err)
	}
	err := ValidateLength("baseLine", "8")
	if !pgerrors.Is(err, pgerrors.ErrCodeInvalidUnit) {
		t.Errorf("8: error = %v, want INVALID_UNIT", err)
	}
}

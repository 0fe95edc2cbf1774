package settings

import (
	"strconv"
	"strings"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
)

// StorageKey is the key under which settings are persisted.
const StorageKey = "plugin.pixelGrid"

// Default values for a fresh installation.
const (
	DefaultBaseLine         = "8px"
	DefaultInnerColumnWidth = "8px"
	DefaultOuterColumnWidth = "64px"
	DefaultColor            = "rgb(52,152,219)"
	DefaultAlpha            = 10
)

// Stacking orders offered by the panel. Any integer is a valid ZIndex.
const (
	ZIndexForeground = 100000
	ZIndexBackground = -1
)

// GridSettings holds every user-tunable grid parameter.
type GridSettings struct {
	BaseLine         string `json:"baseLine" toml:"baseLine" yaml:"baseLine" validate:"cssunit"`
	InnerColumnWidth string `json:"innerColumnWidth" toml:"innerColumnWidth" yaml:"innerColumnWidth" validate:"cssunit"`
	// OuterColumnWidth is stored and shown but not used for rendering; the
	// background derives the outer pitch from InnerColumnWidth.
	OuterColumnWidth string `json:"outerColumnWidth" toml:"outerColumnWidth" yaml:"outerColumnWidth" validate:"cssunit"`
	Color            string `json:"color" toml:"color" yaml:"color" validate:"required"`
	Alpha            int    `json:"alpha" toml:"alpha" yaml:"alpha" validate:"min=0,max=100"`
	OffsetX          int    `json:"offsetX" toml:"offsetX" yaml:"offsetX"`
	OffsetY          int    `json:"offsetY" toml:"offsetY" yaml:"offsetY"`
	ZIndex           int    `json:"zIndex" toml:"zIndex" yaml:"zIndex"`
	Visible          bool   `json:"visible" toml:"visible" yaml:"visible"`
}

// Default returns the settings of a fresh installation. The overlay starts
// hidden.
func Default() GridSettings {
	return GridSettings{
		BaseLine:         DefaultBaseLine,
		InnerColumnWidth: DefaultInnerColumnWidth,
		OuterColumnWidth: DefaultOuterColumnWidth,
		Color:            DefaultColor,
		Alpha:            DefaultAlpha,
		ZIndex:           ZIndexForeground,
	}
}

// Reset returns the defaults with the overlay shown, which is what the panel's
// reset button stores.
func Reset() GridSettings {
	return Default().WithVisible(true)
}

func (s GridSettings) WithBaseLine(v string) GridSettings {
	s.BaseLine = v
	return s
}

func (s GridSettings) WithInnerColumnWidth(v string) GridSettings {
	s.InnerColumnWidth = v
	return s
}

func (s GridSettings) WithOuterColumnWidth(v string) GridSettings {
	s.OuterColumnWidth = v
	return s
}

func (s GridSettings) WithColor(v string) GridSettings {
	s.Color = v
	return s
}

// WithAlpha sets the opacity percentage, clamped to [0, 100].
func (s GridSettings) WithAlpha(v int) GridSettings {
	s.Alpha = ClampAlpha(v)
	return s
}

func (s GridSettings) WithOffset(x, y int) GridSettings {
	s.OffsetX, s.OffsetY = x, y
	return s
}

func (s GridSettings) WithZIndex(v int) GridSettings {
	s.ZIndex = v
	return s
}

func (s GridSettings) WithVisible(v bool) GridSettings {
	s.Visible = v
	return s
}

// InForeground reports whether the grid is stacked above page content.
func (s GridSettings) InForeground() bool {
	return s.ZIndex != ZIndexBackground
}

// ClampAlpha bounds an opacity percentage to [0, 100].
func ClampAlpha(v int) int {
	return max(0, min(100, v))
}

// Fields lists the settings keys in display order.
var Fields = []string{
	"baseLine", "innerColumnWidth", "outerColumnWidth", "color", "alpha",
	"offsetX", "offsetY", "zIndex", "visible",
}

// Set returns a copy of s with the named field parsed from value. Field names
// are the JSON keys. Length fields go through the unit validator; an empty
// length is rejected because it would only be a half-typed input.
func (s GridSettings) Set(field, value string) (GridSettings, error) {
	switch field {
	case "baseLine", "innerColumnWidth", "outerColumnWidth":
		if err := ValidateLength(field, value); err != nil {
			return s, err
		}
		switch field {
		case "baseLine":
			return s.WithBaseLine(value), nil
		case "innerColumnWidth":
			return s.WithInnerColumnWidth(value), nil
		default:
			return s.WithOuterColumnWidth(value), nil
		}
	case "color":
		if strings.TrimSpace(value) == "" {
			return s, pgerrors.New(pgerrors.ErrCodeInvalidSettings, "color cannot be empty")
		}
		return s.WithColor(value), nil
	case "alpha", "offsetX", "offsetY", "zIndex":
		n, err := strconv.Atoi(value)
		if err != nil {
			return s, pgerrors.Wrap(pgerrors.ErrCodeInvalidSettings, err, "%s must be an integer", field)
		}
		switch field {
		case "alpha":
			return s.WithAlpha(n), nil
		case "offsetX":
			return s.WithOffset(n, s.OffsetY), nil
		case "offsetY":
			return s.WithOffset(s.OffsetX, n), nil
		default:
			return s.WithZIndex(n), nil
		}
	case "visible":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, pgerrors.Wrap(pgerrors.ErrCodeInvalidSettings, err, "visible must be true or false")
		}
		return s.WithVisible(b), nil
	}
	return s, pgerrors.New(pgerrors.ErrCodeInvalidInput, "unknown settings field %q", field)
}

// Get returns the named field formatted as text.
func (s GridSettings) Get(field string) (string, bool) {
	switch field {
	case "baseLine":
		return s.BaseLine, true
	case "innerColumnWidth":
		return s.InnerColumnWidth, true
	case "outerColumnWidth":
		return s.OuterColumnWidth, true
	case "color":
		return s.Color, true
	case "alpha":
		return strconv.Itoa(s.Alpha), true
	case "offsetX":
		return strconv.Itoa(s.OffsetX), true
	case "offsetY":
		return strconv.Itoa(s.OffsetY), true
	case "zIndex":
		return strconv.Itoa(s.ZIndex), true
	case "visible":
		return strconv.FormatBool(s.Visible), true
	}
	return "", false
}

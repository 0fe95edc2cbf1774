package placement

import (
	"strconv"
	"strings"

	"github.com/matzehuels/pixelgrid/pkg/settings"
)

// ElementID is the id (and tag name) of the overlay element.
const ElementID = "nx-grid-overlay"

// StylesheetID is the id of the <style> element holding BaseStylesheet.
const StylesheetID = "nx-grid-overlay-styles"

// BaseStylesheet is injected once per page. Inline styles from Style
// override most of it.
const BaseStylesheet = `nx-grid-overlay {
  display: block;
  position: fixed;
  top: 0;
  left: 0;
  margin: 0;
  padding: 0;
  content: '';
  background-size: 100% 100%;
  z-index: 1000;
  pointer-events: none;
  box-sizing: border-box;
}`

// Property is one CSS declaration.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Style is an ordered list of declarations applied to the overlay element.
type Style []Property

func px(n int) string { return strconv.Itoa(n) + "px" }

// NewStyle builds the overlay style for a placement and a background-image
// value.
func NewStyle(p Placement, backgroundImage string) Style {
	return Style{
		{"background-image", backgroundImage},
		{"width", px(p.Width)},
		{"height", px(p.Height)},
		{"position", "fixed"},
		{"left", px(p.Left)},
		{"top", px(p.Top)},
		{"z-index", strconv.Itoa(p.ZIndex)},
		{"transform", "translate3d(0px, 0px, 0px)"},
		{"display", "block"},
		{"background-position", px(p.BackgroundOffsetX) + " 0"},
		{"background-repeat", "no-repeat"},
		{"background-size", px(p.GridWidth) + " " + px(p.Height)},
		{"max-width", px(p.Viewport.Width)},
		{"max-height", px(p.Viewport.Height)},
		{"overflow", "hidden"},
		{"box-sizing", "border-box"},
		{"pointer-events", "none"},
	}
}

// Get returns the value of the named property.
func (s Style) Get(name string) (string, bool) {
	for _, p := range s {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Declarations renders the style as a declaration block body
// ("width: 1024px; height: 768px; ...").
func (s Style) Declarations() string {
	var b strings.Builder
	for i, p := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Value)
		b.WriteByte(';')
	}
	return b.String()
}

// Rule renders the style as a complete CSS rule for selector.
func (s Style) Rule(selector string) string {
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, p := range s {
		b.WriteString("  ")
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(p.Value)
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// Attributes mirrors the settings onto the overlay element so they can be
// inspected in the page's DOM.
func Attributes(s settings.GridSettings) []Property {
	return []Property{
		{"base-line", s.BaseLine},
		{"inner-column-width", s.InnerColumnWidth},
		{"outer-column-width", s.OuterColumnWidth},
		{"color", s.Color},
		{"alpha", strconv.FormatFloat(float64(s.Alpha)/100, 'f', -1, 64)},
		{"offset-x", px(s.OffsetX)},
		{"offset-y", px(s.OffsetY)},
		{"z-index", strconv.Itoa(s.ZIndex)},
		{"visible", strconv.FormatBool(s.Visible)},
	}
}

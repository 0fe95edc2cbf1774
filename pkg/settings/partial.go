package settings

// Partial is a settings update in which only non-nil fields are applied.
// It is the shape of panel edits and of incomplete payloads.
type Partial struct {
	BaseLine         *string `json:"baseLine,omitempty"`
	InnerColumnWidth *string `json:"innerColumnWidth,omitempty"`
	OuterColumnWidth *string `json:"outerColumnWidth,omitempty"`
	Color            *string `json:"color,omitempty"`
	Alpha            *int    `json:"alpha,omitempty"`
	OffsetX          *int    `json:"offsetX,omitempty"`
	OffsetY          *int    `json:"offsetY,omitempty"`
	ZIndex           *int    `json:"zIndex,omitempty"`
	Visible          *bool   `json:"visible,omitempty"`
}

// Apply returns s with every field present in p replaced.
func (s GridSettings) Apply(p Partial) GridSettings {
	if p.BaseLine != nil {
		s = s.WithBaseLine(*p.BaseLine)
	}
	if p.InnerColumnWidth != nil {
		s = s.WithInnerColumnWidth(*p.InnerColumnWidth)
	}
	if p.OuterColumnWidth != nil {
		s = s.WithOuterColumnWidth(*p.OuterColumnWidth)
	}
	if p.Color != nil {
		s = s.WithColor(*p.Color)
	}
	if p.Alpha != nil {
		s = s.WithAlpha(*p.Alpha)
	}
	if p.OffsetX != nil {
		s = s.WithOffset(*p.OffsetX, s.OffsetY)
	}
	if p.OffsetY != nil {
		s = s.WithOffset(s.OffsetX, *p.OffsetY)
	}
	if p.ZIndex != nil {
		s = s.WithZIndex(*p.ZIndex)
	}
	if p.Visible != nil {
		s = s.WithVisible(*p.Visible)
	}
	return s
}

// Merge lays p over the defaults.
func Merge(p Partial) GridSettings {
	return Default().Apply(p)
}

// Empty reports whether p carries no fields.
func (p Partial) Empty() bool {
	return p == Partial{}
}

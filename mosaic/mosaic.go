// Package mosaic styles one or more prototypes for display. It is the
// last stage of the pipeline and only holds references: the geometry is
// owned by the prototypes.
package mosaic

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/prototype"
)

// StyleKind selects how a style draws its prototype's map.
type StyleKind int

const (
	// StylePlain draws hairlines.
	StylePlain StyleKind = iota
	// StyleThick draws lines Width wide.
	StyleThick
	// StyleOutline draws thick lines with a light core.
	StyleOutline
)

var styleNames = [...]string{"plain", "thick", "outline"}

// String returns the style name.
func (k StyleKind) String() string {
	if k >= 0 && int(k) < len(styleNames) {
		return styleNames[k]
	}
	return fmt.Sprintf("StyleKind(%d)", int(k))
}

// Style draws one prototype.
type Style struct {
	Kind      StyleKind
	Prototype *prototype.Prototype
	Color     color.RGBA
	// Width is the line width in thumbnail pixels.
	Width   float64
	Visible bool
}

// NewStyle returns a visible style of the given kind in a default color.
func NewStyle(kind StyleKind, p *prototype.Prototype) *Style {
	return &Style{
		Kind:      kind,
		Prototype: p,
		Color:     color.RGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xff},
		Width:     3,
		Visible:   true,
	}
}

// State summarises how many prototypes a mosaic draws.
type State int

const (
	StateEmpty State = iota
	StateSingle
	StateMulti
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateSingle:
		return "SINGLE"
	case StateMulti:
		return "MULTI"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Mosaic is an ordered list of styles, optionally cropped to a border.
type Mosaic struct {
	Name   string
	styles []*Style
	crop   planar.Region
}

// New returns an empty mosaic.
func New(name string) *Mosaic {
	return &Mosaic{Name: name}
}

// AddStyle appends s; later styles draw on top.
func (m *Mosaic) AddStyle(s *Style) {
	m.styles = append(m.styles, s)
}

// Styles returns the styles in drawing order.
func (m *Mosaic) Styles() []*Style {
	return slices.Clone(m.styles)
}

// Prototypes returns the distinct prototypes referenced by the styles in
// first-seen order.
func (m *Mosaic) Prototypes() []*prototype.Prototype {
	var out []*prototype.Prototype
	for _, s := range m.styles {
		if s.Prototype != nil && !slices.Contains(out, s.Prototype) {
			out = append(out, s.Prototype)
		}
	}
	return out
}

// ReplacePrototype points every style drawing old at replacement and
// returns how many styles changed.
func (m *Mosaic) ReplacePrototype(old, replacement *prototype.Prototype) int {
	n := 0
	for _, s := range m.styles {
		if s.Prototype == old {
			s.Prototype = replacement
			n++
		}
	}
	return n
}

// RemovePrototype drops every style drawing p and returns how many were
// removed.
func (m *Mosaic) RemovePrototype(p *prototype.Prototype) int {
	before := len(m.styles)
	m.styles = slices.DeleteFunc(m.styles, func(s *Style) bool { return s.Prototype == p })
	return before - len(m.styles)
}

// State reports how many prototypes the mosaic draws.
func (m *Mosaic) State() State {
	switch len(m.Prototypes()) {
	case 0:
		return StateEmpty
	case 1:
		return StateSingle
	}
	return StateMulti
}

// SetCrop sets the border every style is cropped to. The border itself
// is drawn as part of each style. nil removes the crop.
func (m *Mosaic) SetCrop(r planar.Region) {
	m.crop = r
}

// Crop returns the border, or nil.
func (m *Mosaic) Crop() planar.Region {
	return m.crop
}

// StyleMap returns the map s draws: its prototype's map, cropped to the
// border if one is set. Without a border the prototype's own map is
// returned and must not be modified.
func (m *Mosaic) StyleMap(s *Style) *planar.Map {
	if s.Prototype == nil {
		return planar.New()
	}
	pm := s.Prototype.ProtoMap()
	if m.crop == nil {
		return pm
	}
	c := pm.Clone()
	c.EmbedCrop(m.crop)
	return c
}

// Bounds returns the bounds of every visible style's map.
func (m *Mosaic) Bounds() geom.Rect {
	if m.crop != nil && len(m.Prototypes()) > 0 {
		return m.crop.Bounds()
	}
	r := geom.EmptyRect()
	for _, s := range m.styles {
		if s.Visible && s.Prototype != nil {
			r = r.Union(s.Prototype.ProtoMap().Bounds())
		}
	}
	return r
}

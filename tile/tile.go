// Package tile defines tile shapes, the arena that owns them, and the
// placements that reference them by index.
//
// A Tile may be shared by many placements. Changing the shape of one
// placement's tile without affecting the others requires
// [Arena.Clone] first; the arena never clones implicitly.
package tile

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/girih/geom"
)

// ErrEdgeIndex is returned when an edge index is out of range.
var ErrEdgeIndex = errors.New("tile: edge index out of range")

// keyPrecision is the rounding applied to lengths and angles in shape
// signatures.
const keyPrecision = 1e-5

// Tile is a polygon, regular or explicit, with a rotation and scale
// applied about the origin.
type Tile struct {
	regular  bool
	base     geom.EdgePoly
	rotation float64 // degrees
	scale    float64
}

// NewRegular returns the regular n-gon with unit sides.
func NewRegular(n int) *Tile {
	return &Tile{
		regular: true,
		base:    geom.EdgePolyFromPolygon(geom.Regular(n)),
		scale:   1,
	}
}

// NewExplicit returns a tile with the given corners. Clockwise input is
// reversed so every tile runs counter-clockwise.
func NewExplicit(poly geom.Polygon) *Tile {
	if !poly.IsCCW() {
		poly = poly.Reversed()
	}
	return &Tile{base: geom.EdgePolyFromPolygon(poly), scale: 1}
}

// NewFromEdges returns a tile whose edges may include arcs.
func NewFromEdges(ep geom.EdgePoly) *Tile {
	return &Tile{base: append(geom.EdgePoly(nil), ep...), scale: 1}
}

// Sides returns the number of edges.
func (t *Tile) Sides() int {
	return len(t.base)
}

// IsRegular reports whether the tile was built as a regular polygon.
func (t *Tile) IsRegular() bool {
	return t.regular
}

// Rotation returns the rotation in degrees.
func (t *Tile) Rotation() float64 {
	return t.rotation
}

// SetRotation sets the rotation in degrees.
func (t *Tile) SetRotation(deg float64) {
	t.rotation = deg
}

// Scale returns the scale factor.
func (t *Tile) Scale() float64 {
	return t.scale
}

// SetScale sets the scale factor. Non-positive values are ignored.
func (t *Tile) SetScale(s float64) {
	if s > 0 {
		t.scale = s
	}
}

// Transform returns the rotation and scale applied to the base shape.
func (t *Tile) Transform() geom.Matrix {
	return geom.Rotate(geom.Radians(t.rotation)).Multiply(geom.Scale(t.scale, t.scale))
}

// BaseEdges returns the edges before rotation and scale.
func (t *Tile) BaseEdges() geom.EdgePoly {
	return append(geom.EdgePoly(nil), t.base...)
}

// EdgePoly returns the edges in tile space.
func (t *Tile) EdgePoly() geom.EdgePoly {
	return t.base.Transform(t.Transform())
}

// Polygon returns the corners in tile space.
func (t *Tile) Polygon() geom.Polygon {
	return t.EdgePoly().Polygon()
}

// Outline returns the outline in tile space with arcs sampled, suitable
// for area and overlap tests.
func (t *Tile) Outline() geom.Polygon {
	ep := t.EdgePoly()
	if !ep.HasCurves() {
		return ep.Polygon()
	}
	return ep.Points(8)
}

// Center returns the centroid in tile space.
func (t *Tile) Center() geom.Point {
	return t.Polygon().Centroid()
}

// CurveEdge turns edge i into an arc. bulge in (0,1] is the arc height
// as a fraction of half the chord; 1 gives a semicircle. Convex arcs
// bulge outward.
func (t *Tile) CurveEdge(i int, convex bool, bulge float64) error {
	if i < 0 || i >= len(t.base) {
		return fmt.Errorf("%w: %d of %d", ErrEdgeIndex, i, len(t.base))
	}
	bulge = math.Max(math.Min(bulge, 1), 1e-3)
	e := t.base[i]
	half := e.P0.Distance(e.P1) / 2
	h := bulge * half
	r := (h*h + half*half) / (2 * h)
	mid := e.P0.Lerp(e.P1, 0.5)
	outward := e.P1.Sub(e.P0).Perp().Neg().Normalize()
	center := mid.Sub(outward.Mul(r - h))
	if !convex {
		center = mid.Add(outward.Mul(r - h))
	}
	t.base[i] = geom.ArcSeg(e.P0, e.P1, center, convex)
	return nil
}

// StraightenEdge turns edge i back into a line.
func (t *Tile) StraightenEdge(i int) error {
	if i < 0 || i >= len(t.base) {
		return fmt.Errorf("%w: %d of %d", ErrEdgeIndex, i, len(t.base))
	}
	t.base[i] = geom.LineSeg(t.base[i].P0, t.base[i].P1)
	return nil
}

// Clone returns an independent copy.
func (t *Tile) Clone() *Tile {
	c := *t
	c.base = append(geom.EdgePoly(nil), t.base...)
	return &c
}

// Key returns a signature that is equal for congruent tiles: tiles that
// map onto each other by rotation and translation.
func (t *Tile) Key() string {
	ep := t.EdgePoly()
	n := len(ep)
	if n == 0 {
		return "empty"
	}
	tokens := make([]string, n)
	for i, e := range ep {
		next := ep[(i+1)%n]
		turn := geom.NormalizeAngle(next.TangentAt(next.P0).Angle() - e.TangentAt(e.P1).Neg().Angle())
		tok := fmt.Sprintf("%s:%s:%s", e.Kind, round(e.P0.Distance(e.P1)), round(turn))
		if e.Kind != geom.KindLine {
			tok += fmt.Sprintf(":%s:%t", round(e.Radius()), e.Convex)
		}
		tokens[i] = tok
	}
	// Minimal rotation of the cyclic token sequence.
	best := ""
	for s := range n {
		var b strings.Builder
		for k := range n {
			b.WriteString(tokens[(s+k)%n])
			b.WriteByte('|')
		}
		if cand := b.String(); best == "" || cand < best {
			best = cand
		}
	}
	return best
}

// Congruent reports whether the two tiles have the same shape.
func (t *Tile) Congruent(o *Tile) bool {
	if t == o {
		return true
	}
	if o == nil || t.Sides() != o.Sides() {
		return false
	}
	return t.Key() == o.Key()
}

// Fingerprint identifies the exact tile-space geometry, orientation
// included. Coordinates are written at full precision, so tiles with
// equal fingerprints produce identical motif maps.
func (t *Tile) Fingerprint() string {
	var b strings.Builder
	for _, e := range t.EdgePoly() {
		fmt.Fprintf(&b, "%s(%g,%g)", e.Kind, e.P0.X, e.P0.Y)
		if e.Kind != geom.KindLine {
			fmt.Fprintf(&b, "@(%g,%g,%t)", e.Center.X, e.Center.Y, e.Convex)
		}
	}
	return b.String()
}

// String describes the tile for logs.
func (t *Tile) String() string {
	if t.regular {
		return fmt.Sprintf("regular{n=%d rot=%g scale=%g}", t.Sides(), t.rotation, t.scale)
	}
	return fmt.Sprintf("explicit{n=%d rot=%g scale=%g}", t.Sides(), t.rotation, t.scale)
}

func round(v float64) string {
	r := math.Round(v/keyPrecision) * keyPrecision
	if r == 0 {
		r = 0 // drop negative zero
	}
	return fmt.Sprintf("%.5f", r)
}

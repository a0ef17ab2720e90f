package motif

import (
	"math"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/tile"
)

// girihAngle is the angle between a girih strap and the edge normal.
const girihAngle = math.Pi / 5

// Irregular fits any polygon. Two rays leave the midpoint of every edge,
// leaning either way from the inward normal by an angle set by the
// construction, and run until they cross other rays.
type Irregular struct {
	Construction Construction
	// D is the star step used by ConstructStar.
	D float64
	// Q opens ConstructRosette and sets the angle of ConstructIntersect.
	Q float64
	// S is the number of crossings kept per ray. ConstructIntersect
	// always keeps one.
	S        int
	Scale    float64
	Rotation float64
}

// Kind implements Motif.
func (ir *Irregular) Kind() Kind { return KindIrregular }

// BuildMap implements Motif.
func (ir *Irregular) BuildMap(t *tile.Tile) *planar.Map {
	return buildSafely(KindIrregular, t, func() (*planar.Map, error) {
		edges := t.EdgePoly()
		theta := ir.contactAngle(len(edges))
		xf := aboutCenter(t.Center(), ir.Scale, ir.Rotation)
		contacts := make([]Contact, 0, 2*len(edges))
		for _, e := range edges {
			in := e.P1.Sub(e.P0).Normalize().Perp()
			mid := xf.TransformPoint(e.Midpoint())
			contacts = append(contacts,
				Contact{Position: mid, Direction: xf.TransformVector(in.Rotate(-theta))},
				Contact{Position: mid, Direction: xf.TransformVector(in.Rotate(theta))})
		}
		keep := max(ir.S, 1)
		return rayMap(contacts, t.Outline(), keep, ir.Construction == ConstructIntersect), nil
	})
}

// Record implements Motif.
func (ir *Irregular) Record() Record {
	return Record{
		Kind:         KindIrregular,
		D:            ir.D,
		Q:            ir.Q,
		S:            ir.S,
		Scale:        ir.Scale,
		Rotation:     ir.Rotation,
		Construction: ir.Construction,
	}
}

// Clone implements Motif.
func (ir *Irregular) Clone() Motif {
	c := *ir
	return &c
}

// contactAngle returns the lean of each ray from the edge normal.
func (ir *Irregular) contactAngle(n int) float64 {
	switch ir.Construction {
	case ConstructStar:
		d := math.Min(math.Max(ir.D, 1), math.Max(1, float64(n)/2-0.01))
		return math.Pi/2 - d*math.Pi/float64(n)
	case ConstructRosette:
		q := math.Min(math.Max(ir.Q, 0), 0.99)
		return (math.Pi/2 - math.Pi/float64(n)) * (1 - q)
	case ConstructIntersect:
		if ir.Q <= 0 {
			return math.Pi / 4
		}
		return math.Min(ir.Q, 0.99) * math.Pi / 2
	}
	return girihAngle
}

// aboutCenter scales and rotates (degrees) about c.
func aboutCenter(c geom.Point, scale, rotation float64) geom.Matrix {
	if scale <= 0 {
		scale = 1
	}
	return geom.TranslateBy(c).
		Multiply(geom.Rotate(geom.Radians(rotation))).
		Multiply(geom.Scale(scale, scale)).
		Multiply(geom.TranslateBy(c.Neg()))
}

// rayMap shoots a ray from every contact and keeps each ray up to its
// keep-th crossing with another ray inside the outline. Rays that cross
// nothing run to the outline. With first set each ray stops at its
// nearest crossing.
func rayMap(contacts []Contact, outline geom.Polygon, keep int, first bool) *planar.Map {
	b := outline.Bounds()
	reach := 2 * math.Hypot(b.Width(), b.Height())
	rays := make([][2]geom.Point, len(contacts))
	for i, c := range contacts {
		rays[i] = [2]geom.Point{c.Position, c.Position.Add(c.Direction.Normalize().Mul(reach))}
	}
	if first {
		keep = 1
	}

	m := planar.New()
	for i, r := range rays {
		others := make([][2]geom.Point, 0, len(rays)-1)
		for j, o := range rays {
			if j != i && !o[0].Near(r[0], geom.Tolerance) {
				others = append(others, o)
			}
		}
		prev := r[0]
		n := 0
		for _, t := range rayHits(r[0], r[1], others, 1e-9, 1) {
			p := r[0].Lerp(r[1], t)
			if !outline.Contains(p) {
				break
			}
			m.InsertLine(prev, p)
			prev = p
			if n++; n == keep {
				break
			}
		}
		if n == 0 {
			if end, ok := hitBoundary(outline, r[0], r[1].Sub(r[0])); ok {
				m.InsertLine(r[0], end)
			}
		}
	}
	m.Crop(planar.PolygonRegion{Polygon: outline})
	return m
}

package prototype

import (
	"errors"
	"fmt"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/motif"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/tile"
)

var (
	// ErrNoPlacement is returned when a tile is not placed in the tiling.
	ErrNoPlacement = errors.New("prototype: tile not placed")

	// ErrNoAdjacency is returned when no neighbour shares an edge with
	// the tile.
	ErrNoAdjacency = errors.New("prototype: tile has no neighbours")
)

// contactTolerance is how close a neighbour motif vertex must be to a
// shared edge to count as a contact.
const contactTolerance = 1e-6

// Contacts implements motif.ContactSource. It finds where the motifs of
// neighbouring placements meet the edges of the first placement of t and
// returns those points with the direction their lines continue into t,
// in t's tile space. Neighbours with inferred motifs are skipped.
func (p *Prototype) Contacts(t *tile.Tile) ([]motif.Contact, error) {
	arena := p.tiling.Arena()
	var target *tile.PlacedTile
	for _, pt := range p.tiling.InTiling() {
		if tl := arena.Get(pt.Tile); tl == t || (target == nil && tl != nil && tl.Congruent(t)) {
			target = pt
			if tl == t {
				break
			}
		}
	}
	if target == nil {
		return nil, ErrNoPlacement
	}
	poly := target.WorldPolygon(arena)
	back := target.Transform.Invert()

	var out []motif.Contact
	adjacent := false
	for _, tr := range p.neighbourTranslations() {
		for _, q := range p.tiling.InTiling() {
			if q == target && tr.IsIdentity() {
				continue
			}
			qt := arena.Get(q.Tile)
			e := p.ElementFor(qt)
			if e == nil || e.Motif == nil || e.Motif.Kind() == motif.KindInferred {
				continue
			}
			world := tr.Multiply(q.Transform)
			if !geom.SharesEdge(poly, qt.Polygon().Transform(world), contactTolerance) {
				continue
			}
			adjacent = true
			out = append(out, p.edgeContacts(poly, p.motifMap(q), world, back)...)
		}
	}
	if !adjacent {
		return nil, fmt.Errorf("%w: placement %d", ErrNoAdjacency, target.ID)
	}
	return dedupe(out), nil
}

// edgeContacts collects the vertices of a neighbour's motif map lying on
// the boundary of poly, away from its corners. world places the map in
// tiling space and back maps tiling space into the target's tile space.
func (p *Prototype) edgeContacts(poly geom.Polygon, m *planar.Map, world, back geom.Matrix) []motif.Contact {
	var out []motif.Contact
	probe := 1e-3 * poly.Perimeter() / float64(len(poly))
	for _, v := range m.Vertices() {
		at := world.TransformPoint(v.Pt)
		if !poly.OnBoundary(at, contactTolerance) || isCorner(poly, at) {
			continue
		}
		for _, w := range v.Neighbours() {
			dir := at.Sub(world.TransformPoint(w.Pt)).Normalize()
			if !poly.ContainsStrict(at.Add(dir.Mul(probe)), 0) {
				continue
			}
			out = append(out, motif.Contact{
				Position:  back.TransformPoint(at),
				Direction: back.TransformVector(dir),
			})
		}
	}
	return out
}

func isCorner(poly geom.Polygon, p geom.Point) bool {
	for _, c := range poly {
		if c.Near(p, contactTolerance) {
			return true
		}
	}
	return false
}

// neighbourTranslations returns the translations reaching the cells
// adjacent to the origin cell.
func (p *Prototype) neighbourTranslations() []geom.Matrix {
	if p.tiling.FillWindow().Singleton {
		return []geom.Matrix{geom.Identity()}
	}
	t1, t2 := p.tiling.Vectors()
	out := make([]geom.Matrix, 0, 9)
	for y := -1; y <= 1; y++ {
		for x := -1; x <= 1; x++ {
			out = append(out, geom.TranslateBy(t1.Mul(float64(x)).Add(t2.Mul(float64(y)))))
		}
	}
	return out
}

func dedupe(cs []motif.Contact) []motif.Contact {
	var out []motif.Contact
next:
	for _, c := range cs {
		for _, o := range out {
			if o.Position.Near(c.Position, contactTolerance) && o.Direction.Near(c.Direction, contactTolerance) {
				continue next
			}
		}
		out = append(out, c)
	}
	return out
}

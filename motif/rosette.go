package motif

import (
	"math"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/tile"
)

// rayLength is the unit-space length of rosette rays: long enough to
// cross the whole motif.
const rayLength = 2.0

// Rosette shoots two rays from every tip, symmetric about the tip's
// radius. Q in [0,1) opens the petals: 0 aims each ray at the
// neighbouring tip and values toward 1 aim it at the center. S is the
// number of ray crossings kept.
type Rosette struct {
	Radial
	Q float64
	S int
}

// Kind implements Motif.
func (r *Rosette) Kind() Kind { return KindRosette }

// BuildMap implements Motif.
func (r *Rosette) BuildMap(t *tile.Tile) *planar.Map {
	return buildSafely(KindRosette, t, func() (*planar.Map, error) {
		return r.buildRadial(t, r.unit, nil)
	})
}

// Record implements Motif.
func (r *Rosette) Record() Record {
	return Record{Kind: KindRosette, N: r.N, Q: r.Q, S: r.S, Scale: r.Scale, Rotation: r.Rotation}
}

// Clone implements Motif.
func (r *Rosette) Clone() Motif {
	c := *r
	return &c
}

func (r *Rosette) unit(n int) ([][]geom.Point, error) {
	q := math.Min(math.Max(r.Q, 0), 0.99)
	beta := (math.Pi/2 - math.Pi/float64(n)) * (1 - q)
	up := geom.Pt(-math.Cos(beta), math.Sin(beta))
	down := geom.Pt(up.X, -up.Y)

	rays := make([][2]geom.Point, 0, 2*n)
	for j := range n {
		rot := 2 * math.Pi * float64(j) / float64(n)
		tip := arc(float64(j) / float64(n))
		rays = append(rays,
			[2]geom.Point{tip, tip.Add(up.Rotate(rot).Mul(rayLength))},
			[2]geom.Point{tip, tip.Add(down.Rotate(rot).Mul(rayLength))})
	}
	a := geom.Pt(1, 0)
	b := a.Add(up.Mul(rayLength))
	ts := rayHits(a, b, rays, 1e-9, 1)

	keep := max(r.S, 1)
	pts := []geom.Point{a}
	for i := 0; i < keep && i < len(ts); i++ {
		pts = append(pts, a.Lerp(b, ts[i]))
	}
	return [][]geom.Point{pts}, nil
}

// ExtendedRosette is a Rosette with boundary extensions.
type ExtendedRosette struct {
	Rosette
	Flags Flags
}

// Kind implements Motif.
func (r *ExtendedRosette) Kind() Kind { return KindExtendedRosette }

// BuildMap implements Motif.
func (r *ExtendedRosette) BuildMap(t *tile.Tile) *planar.Map {
	return buildSafely(KindExtendedRosette, t, func() (*planar.Map, error) {
		return r.buildRadial(t, r.unit, r.Flags.extend)
	})
}

// Record implements Motif.
func (r *ExtendedRosette) Record() Record {
	rec := r.Rosette.Record()
	rec.Kind = KindExtendedRosette
	rec.Flags = r.Flags
	return rec
}

// Clone implements Motif.
func (r *ExtendedRosette) Clone() Motif {
	c := *r
	return &c
}

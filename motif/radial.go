package motif

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/tile"
)

// Radial holds the parameters shared by motifs with n-fold rotational
// symmetry. The motif is built in unit space, where the tile's edge
// midpoints lie on the unit circle and the first ray tip is (1,0).
type Radial struct {
	// N is the symmetry order. Zero means the tile's side count.
	N int
	// Scale multiplies the motif radius; 1 puts the tips on the edges.
	Scale float64
	// Rotation in degrees, applied about the tile center.
	Rotation float64
}

func (r Radial) order(t *tile.Tile) int {
	if r.N >= 3 {
		return r.N
	}
	return t.Sides()
}

func (r Radial) scale() float64 {
	if r.Scale <= 0 {
		return 1
	}
	return r.Scale
}

// arc returns the point on the unit circle a fraction f of a full turn
// round from (1,0).
func arc(f float64) geom.Point {
	return geom.Polar(1, 2*math.Pi*f)
}

// unitFrame maps unit space onto the tile's base geometry, before the
// tile's own rotation and scale.
func (r Radial) unitFrame(t *tile.Tile) geom.Matrix {
	base := t.BaseEdges().Polygon()
	c := base.Centroid()
	apothem := math.Inf(1)
	for _, e := range base.Edges() {
		apothem = math.Min(apothem, geom.DistanceToSegment(c, e.P0, e.P1))
	}
	if t.IsRegular() {
		apothem = geom.RegularApothem(t.Sides())
	}
	s := apothem * r.scale()
	return geom.TranslateBy(c).Multiply(geom.Rotate(geom.Radians(r.Rotation))).Multiply(geom.Scale(s, s))
}

// unitTile returns the tile outline in unit space.
func (r Radial) unitTile(t *tile.Tile) geom.Polygon {
	return t.BaseEdges().Polygon().Transform(r.unitFrame(t).Invert())
}

// toTile returns the transform from unit space to tile space.
func (r Radial) toTile(t *tile.Tile) geom.Matrix {
	return t.Transform().Multiply(r.unitFrame(t))
}

// polylineMap inserts each polyline and its mirror in the X axis.
func polylineMap(lines [][]geom.Point) *planar.Map {
	m := planar.New()
	mirror := geom.Scale(1, -1)
	for _, pl := range lines {
		for i := 1; i < len(pl); i++ {
			m.InsertLine(pl[i-1], pl[i])
			m.InsertLine(mirror.TransformPoint(pl[i-1]), mirror.TransformPoint(pl[i]))
		}
	}
	return m
}

// replicate merges n rotated copies of unit, rotating by 2π/n each time.
// The copies must close: unit has a ray tip at (1,0), and every vertex of
// the last copy, carried one more step, lands on a vertex of the first.
func replicate(unit *planar.Map, n int) (*planar.Map, error) {
	tip := geom.Pt(1, 0)
	if _, ok := unit.FindVertex(tip); !ok {
		return nil, fmt.Errorf("%w: n=%d no ray tip at %v", ErrNotClosed, n, tip)
	}
	step := geom.Rotate(2 * math.Pi / float64(n))
	out := planar.New()
	cur := geom.Identity()
	for range n {
		out.MergeTransformed(unit, cur)
		cur = step.Multiply(cur)
	}
	for _, v := range unit.Vertices() {
		got := cur.TransformPoint(v.Pt)
		if _, ok := unit.FindVertex(got); !ok {
			return nil, fmt.Errorf("%w: n=%d vertex %v lands on %v", ErrNotClosed, n, v.Pt, got)
		}
	}
	return out, nil
}

// buildRadial builds the unit polylines, replicates them, applies the
// unit-space post-process if any, and fits the result to the tile.
func (r Radial) buildRadial(t *tile.Tile, unit func(n int) ([][]geom.Point, error),
	post func(m *planar.Map, n int, outline geom.Polygon) error) (*planar.Map, error) {
	n := r.order(t)
	if n < 3 {
		return nil, fmt.Errorf("%w: order %d", ErrBadParameters, n)
	}
	lines, err := unit(n)
	if err != nil {
		return nil, err
	}
	m, err := replicate(polylineMap(lines), n)
	if err != nil {
		return nil, err
	}
	if post != nil {
		if err := post(m, n, r.unitTile(t)); err != nil {
			return nil, err
		}
	}
	m.Transform(r.toTile(t))
	return m, nil
}

// rayHits returns the sorted distinct parameters in (lo, hi) at which the
// segment a→b meets any of the others.
func rayHits(a, b geom.Point, others [][2]geom.Point, lo, hi float64) []float64 {
	var ts []float64
	for _, o := range others {
		_, t, u, ok := geom.SegmentIntersection(a, b, o[0], o[1])
		if !ok || t <= lo || t >= hi || u < -geom.Tolerance || u > 1+geom.Tolerance {
			continue
		}
		ts = append(ts, t)
	}
	return uniqueSorted(ts)
}

func uniqueSorted(ts []float64) []float64 {
	if len(ts) < 2 {
		return ts
	}
	slices.Sort(ts)
	out := ts[:1]
	for _, t := range ts[1:] {
		if t-out[len(out)-1] > 1e-9 {
			out = append(out, t)
		}
	}
	return out
}

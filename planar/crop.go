package planar

import (
	"math"
	"sort"

	"github.com/gogpu/girih/geom"
)

// Region is a closed area that a map can be cropped to.
type Region interface {
	// Contains reports whether p is inside or on the boundary.
	Contains(p geom.Point) bool

	// Crossings returns the parameters along s where it meets the
	// boundary.
	Crossings(s geom.Segment) []float64

	// Outline returns the boundary as edge geometry.
	Outline() []geom.Segment

	// Bounds returns the bounding rectangle of the region.
	Bounds() geom.Rect
}

// RectRegion is an axis-aligned rectangular region.
type RectRegion struct {
	Rect geom.Rect
}

// Outcode constants for the Cohen-Sutherland trivial accept/reject test.
const (
	outcodeInside = 0
	outcodeLeft   = 1
	outcodeRight  = 2
	outcodeBottom = 4
	outcodeTop    = 8
)

func (r RectRegion) outcode(p geom.Point) int {
	code := outcodeInside
	if p.X < r.Rect.Min.X-geom.Tolerance {
		code |= outcodeLeft
	} else if p.X > r.Rect.Max.X+geom.Tolerance {
		code |= outcodeRight
	}
	if p.Y < r.Rect.Min.Y-geom.Tolerance {
		code |= outcodeBottom
	} else if p.Y > r.Rect.Max.Y+geom.Tolerance {
		code |= outcodeTop
	}
	return code
}

// Contains implements Region.
func (r RectRegion) Contains(p geom.Point) bool {
	return r.outcode(p) == outcodeInside
}

// Crossings implements Region.
func (r RectRegion) Crossings(s geom.Segment) []float64 {
	if !s.IsArc() {
		c0, c1 := r.outcode(s.P0), r.outcode(s.P1)
		if c0|c1 == outcodeInside || c0&c1 != 0 {
			return nil
		}
	} else if !s.Bounds().Intersects(r.Rect) {
		return nil
	}
	return polygonCrossings(r.Rect.Corners(), s)
}

// Outline implements Region.
func (r RectRegion) Outline() []geom.Segment {
	return r.Rect.Corners().Edges()
}

// Bounds implements Region.
func (r RectRegion) Bounds() geom.Rect {
	return r.Rect
}

// PolygonRegion is an arbitrary simple polygon.
type PolygonRegion struct {
	Polygon geom.Polygon
}

// Contains implements Region.
func (r PolygonRegion) Contains(p geom.Point) bool {
	return r.Polygon.Contains(p)
}

// Crossings implements Region.
func (r PolygonRegion) Crossings(s geom.Segment) []float64 {
	if !s.Bounds().Intersects(r.Polygon.Bounds()) {
		return nil
	}
	return polygonCrossings(r.Polygon, s)
}

// Outline implements Region.
func (r PolygonRegion) Outline() []geom.Segment {
	return r.Polygon.Edges()
}

// Bounds implements Region.
func (r PolygonRegion) Bounds() geom.Rect {
	return r.Polygon.Bounds()
}

// CircleRegion is a disc.
type CircleRegion struct {
	Circle geom.Circle
}

// Contains implements Region.
func (r CircleRegion) Contains(p geom.Point) bool {
	return r.Circle.Contains(p)
}

// Crossings implements Region.
func (r CircleRegion) Crossings(s geom.Segment) []float64 {
	return s.IntersectCircle(r.Circle)
}

// Outline implements Region. The circle is returned as four quarter arcs.
func (r CircleRegion) Outline() []geom.Segment {
	c := r.Circle
	out := make([]geom.Segment, 4)
	for i := range 4 {
		a0 := float64(i) * math.Pi / 2
		out[i] = geom.ArcSeg(
			c.Center.Add(geom.Polar(c.Radius, a0)),
			c.Center.Add(geom.Polar(c.Radius, a0+math.Pi/2)),
			c.Center, true)
	}
	return out
}

// Bounds implements Region.
func (r CircleRegion) Bounds() geom.Rect {
	c := r.Circle
	d := geom.Pt(c.Radius, c.Radius)
	return geom.NewRect(c.Center.Sub(d), c.Center.Add(d))
}

func polygonCrossings(p geom.Polygon, s geom.Segment) []float64 {
	var ts []float64
	n := len(p)
	for i := range n {
		ts = append(ts, s.IntersectLine(p[i], p[(i+1)%n])...)
	}
	return ts
}

// Crop removes all geometry outside region. Edges crossing the boundary
// are split at the crossing and only their inside pieces are kept.
func (m *Map) Crop(region Region) {
	old := append([]*Edge(nil), m.edges...)
	for _, e := range old {
		seg := e.Segment()
		ts := region.Crossings(seg)
		pieces := seg.Split(ts)
		if len(pieces) == 1 {
			if !region.Contains(seg.Midpoint()) || !region.Contains(seg.P0) || !region.Contains(seg.P1) {
				m.RemoveEdge(e)
			}
			continue
		}
		m.RemoveEdge(e)
		for _, piece := range pieces {
			if region.Contains(piece.Midpoint()) {
				m.InsertSegment(piece)
			}
		}
	}
	for _, v := range append([]*Vertex(nil), m.vertices...) {
		if !region.Contains(v.Pt) {
			m.RemoveVertex(v)
		}
	}
}

// EmbedCrop crops to region and then adds the region outline as edges,
// split wherever a map vertex lies on it.
func (m *Map) EmbedCrop(region Region) {
	m.Crop(region)
	if cr, ok := region.(CircleRegion); ok {
		m.embedCircle(cr.Circle)
		return
	}
	for _, s := range region.Outline() {
		m.embedSegment(s)
	}
}

func (m *Map) embedSegment(s geom.Segment) {
	onLine := []*Vertex{m.InsertVertex(s.P0), m.InsertVertex(s.P1)}
	for _, v := range m.vertices {
		if v != onLine[0] && v != onLine[1] && s.Contains(v.Pt, m.tol*10) {
			onLine = append(onLine, v)
		}
	}
	sort.Slice(onLine, func(i, j int) bool {
		return s.ParamOf(onLine[i].Pt) < s.ParamOf(onLine[j].Pt)
	})
	for i := 0; i+1 < len(onLine); i++ {
		m.InsertEdge(onLine[i], onLine[i+1])
	}
}

func (m *Map) embedCircle(c geom.Circle) {
	var on []*Vertex
	for _, v := range m.vertices {
		if math.Abs(v.Pt.Distance(c.Center)-c.Radius) <= m.tol*10 {
			on = append(on, v)
		}
	}
	if len(on) < 2 {
		for i := range 4 {
			on = append(on, m.InsertVertex(c.Center.Add(geom.Polar(c.Radius, float64(i)*math.Pi/2))))
		}
	}
	sort.Slice(on, func(i, j int) bool {
		return geom.NormalizeAngle(on[i].Pt.Sub(c.Center).Angle()) <
			geom.NormalizeAngle(on[j].Pt.Sub(c.Center).Angle())
	})
	for i := range on {
		m.InsertArc(on[i], on[(i+1)%len(on)], c.Center, true, false)
	}
}

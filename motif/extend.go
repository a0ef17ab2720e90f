package motif

import (
	"math"
	"slices"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/planar"
)

// boundaryTolerance decides whether a unit-space vertex lies on the tile
// outline.
const boundaryTolerance = 1e-6

// extend applies the boundary extensions selected by f to a unit-space
// radial map.
func (f Flags) extend(m *planar.Map, n int, outline geom.Polygon) error {
	if f&ExtendPeripheral != 0 {
		for j := range n {
			tip := arc(float64(j) / float64(n))
			if outline.OnBoundary(tip, boundaryTolerance) || !outline.Contains(tip) {
				continue
			}
			var target geom.Point
			var ok bool
			if f&PeripheralDirect != 0 {
				target, ok = hitBoundary(outline, tip, tip)
			} else {
				target, ok = nearestFoot(outline, tip), true
			}
			if ok {
				m.InsertLine(tip, target)
			}
		}
	}
	if f&ExtendFree != 0 {
		for _, v := range slices.Clone(m.Vertices()) {
			if v.Degree() != 1 || outline.OnBoundary(v.Pt, boundaryTolerance) {
				continue
			}
			from := v.Edges()[0].Other(v).Pt
			if target, ok := hitBoundary(outline, v.Pt, v.Pt.Sub(from)); ok {
				m.InsertLine(v.Pt, target)
			}
		}
	}
	if f&ConnectBoundary != 0 {
		connectBoundary(m, outline, f&ConnectAlongBoundary != 0)
	}
	return nil
}

// hitBoundary returns the first point where the ray from p along dir
// leaves the outline.
func hitBoundary(outline geom.Polygon, p, dir geom.Point) (geom.Point, bool) {
	const reach = 1e3
	if dir.IsZero() {
		return geom.Point{}, false
	}
	far := p.Add(dir.Normalize().Mul(reach))
	best := math.Inf(1)
	var hit geom.Point
	for _, e := range outline.Edges() {
		pt, t, _, ok := geom.SegmentIntersection(p, far, e.P0, e.P1)
		if ok && t*reach > geom.Tolerance && t < best {
			best, hit = t, pt
		}
	}
	return hit, !math.IsInf(best, 1)
}

// nearestFoot returns the closest point on the outline to p.
func nearestFoot(outline geom.Polygon, p geom.Point) geom.Point {
	best := math.Inf(1)
	var foot geom.Point
	for _, e := range outline.Edges() {
		q := e.P0.Lerp(e.P1, geom.ProjectOnSegment(p, e.P0, e.P1))
		if d := q.Distance(p); d < best {
			best, foot = d, q
		}
	}
	return foot
}

// connectBoundary joins consecutive vertices lying on the outline, in
// angular order about the outline's centroid.
func connectBoundary(m *planar.Map, outline geom.Polygon, along bool) {
	c := outline.Centroid()
	var on []*planar.Vertex
	for _, v := range m.Vertices() {
		if outline.OnBoundary(v.Pt, boundaryTolerance) {
			on = append(on, v)
		}
	}
	if len(on) < 2 {
		return
	}
	slices.SortFunc(on, func(a, b *planar.Vertex) int {
		aa := geom.NormalizeAngle(a.Pt.Sub(c).Angle())
		ba := geom.NormalizeAngle(b.Pt.Sub(c).Angle())
		switch {
		case aa < ba:
			return -1
		case aa > ba:
			return 1
		}
		return 0
	})
	for i, v := range on {
		w := on[(i+1)%len(on)]
		if len(on) == 2 && i == 1 {
			break
		}
		if !along {
			m.InsertEdge(v, w)
			continue
		}
		path := outlinePath(outline, v.Pt, w.Pt)
		prev := v
		for _, p := range path {
			next := m.InsertVertex(p)
			m.InsertEdge(prev, next)
			prev = next
		}
		m.InsertEdge(prev, w)
	}
}

// outlinePath returns the outline corners met walking counter-clockwise
// from a to b, both on the outline.
func outlinePath(outline geom.Polygon, a, b geom.Point) []geom.Point {
	n := len(outline)
	ia, ib := edgeOf(outline, a), edgeOf(outline, b)
	if ia < 0 || ib < 0 {
		return nil
	}
	if ia == ib {
		e0 := outline[ia]
		if a.Distance(e0) <= b.Distance(e0) {
			return nil
		}
	}
	var path []geom.Point
	for i := ia; ; i = (i + 1) % n {
		corner := outline[(i+1)%n]
		if corner.Near(b, boundaryTolerance) {
			break
		}
		if !corner.Near(a, boundaryTolerance) {
			path = append(path, corner)
		}
		if (i+1)%n == ib || len(path) > n {
			break
		}
	}
	return path
}

// edgeOf returns the index of the outline edge containing p, or -1.
// Corners belong to the edge they start.
func edgeOf(outline geom.Polygon, p geom.Point) int {
	n := len(outline)
	for i := range n {
		if p.Near(outline[i], boundaryTolerance) {
			return i
		}
	}
	for i := range n {
		if geom.PointOnSegment(p, outline[i], outline[(i+1)%n], boundaryTolerance) {
			return i
		}
	}
	return -1
}

package geom

import (
	"math"
	"sort"
)

// SegmentKind identifies the geometry of an edge.
type SegmentKind uint8

const (
	// KindLine is a straight segment.
	KindLine SegmentKind = iota

	// KindArc is a circular arc about a center.
	KindArc

	// KindChord keeps the arc data of a curved edge but is drawn and
	// intersected as the straight chord between its endpoints.
	KindChord
)

// String returns the persisted name of the kind.
func (k SegmentKind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindArc:
		return "arc"
	case KindChord:
		return "chord"
	default:
		return "unknown"
	}
}

// ParseSegmentKind is the inverse of SegmentKind.String.
func ParseSegmentKind(s string) (SegmentKind, bool) {
	switch s {
	case "line":
		return KindLine, true
	case "arc":
		return KindArc, true
	case "chord":
		return KindChord, true
	}
	return KindLine, false
}

// Segment is the geometry of one edge: a line, an arc or a chord.
//
// An arc runs from P0 to P1 on the circle about Center. It sweeps
// counter-clockwise when Convex is set and clockwise otherwise.
type Segment struct {
	Kind   SegmentKind
	P0, P1 Point
	Center Point
	Convex bool
}

// LineSeg returns a straight segment.
func LineSeg(p0, p1 Point) Segment {
	return Segment{Kind: KindLine, P0: p0, P1: p1}
}

// ArcSeg returns an arc segment.
func ArcSeg(p0, p1, center Point, convex bool) Segment {
	return Segment{Kind: KindArc, P0: p0, P1: p1, Center: center, Convex: convex}
}

// IsArc reports whether the segment is traversed along its circle.
func (s Segment) IsArc() bool {
	return s.Kind == KindArc
}

// Radius returns the arc radius (zero for lines).
func (s Segment) Radius() float64 {
	if s.Kind == KindLine {
		return 0
	}
	return s.P0.Distance(s.Center)
}

// SweepAngle returns the signed angle swept from P0 to P1. Positive is
// counter-clockwise. Lines and chords report zero.
func (s Segment) SweepAngle() float64 {
	if !s.IsArc() {
		return 0
	}
	a0 := s.P0.Sub(s.Center).Angle()
	a1 := s.P1.Sub(s.Center).Angle()
	if s.Convex {
		return NormalizeAngle(a1 - a0)
	}
	return -NormalizeAngle(a0 - a1)
}

// PointAt returns the point at parameter t in [0,1].
func (s Segment) PointAt(t float64) Point {
	if !s.IsArc() {
		return s.P0.Lerp(s.P1, t)
	}
	a0 := s.P0.Sub(s.Center).Angle()
	return s.Center.Add(Polar(s.Radius(), a0+t*s.SweepAngle()))
}

// Midpoint returns the point halfway along the segment.
func (s Segment) Midpoint() Point {
	return s.PointAt(0.5)
}

// Length returns the arc length of the segment.
func (s Segment) Length() float64 {
	if !s.IsArc() {
		return s.P0.Distance(s.P1)
	}
	return s.Radius() * math.Abs(s.SweepAngle())
}

// Points samples the segment with n subdivisions (n+1 points).
// Straight segments always return their two endpoints.
func (s Segment) Points(n int) []Point {
	if !s.IsArc() || n < 1 {
		return []Point{s.P0, s.P1}
	}
	pts := make([]Point, 0, n+1)
	pts = append(pts, s.P0)
	for i := 1; i < n; i++ {
		pts = append(pts, s.PointAt(float64(i)/float64(n)))
	}
	return append(pts, s.P1)
}

// Bounds returns the bounding rectangle of the segment.
func (s Segment) Bounds() Rect {
	r := NewRect(s.P0, s.P1)
	if !s.IsArc() {
		return r
	}
	// Add every axis extreme the arc passes through.
	a0 := s.P0.Sub(s.Center).Angle()
	sweep := s.SweepAngle()
	rad := s.Radius()
	for k := 0; k < 4; k++ {
		a := float64(k) * math.Pi / 2
		if s.angleWithin(a, a0, sweep) {
			r = r.Expand(s.Center.Add(Polar(rad, a)))
		}
	}
	return r
}

func (s Segment) angleWithin(a, a0, sweep float64) bool {
	if sweep >= 0 {
		return NormalizeAngle(a-a0) <= sweep+angleTolerance
	}
	return NormalizeAngle(a0-a) <= -sweep+angleTolerance
}

// Transform applies m to the segment, recomputing the arc center.
// Reflections reverse the sweep direction, so convexity is flipped.
func (s Segment) Transform(m Matrix) Segment {
	out := s
	out.P0 = m.TransformPoint(s.P0)
	out.P1 = m.TransformPoint(s.P1)
	if s.Kind != KindLine {
		out.Center = m.TransformPoint(s.Center)
		if m.IsReflection() {
			out.Convex = !s.Convex
		}
	}
	return out
}

// Reversed returns the same curve traversed from P1 to P0.
func (s Segment) Reversed() Segment {
	out := s
	out.P0, out.P1 = s.P1, s.P0
	if s.Kind != KindLine {
		out.Convex = !s.Convex
	}
	return out
}

// TangentAt returns the unit direction leaving the endpoint at p along the
// segment. p must be P0 or P1.
func (s Segment) TangentAt(p Point) Point {
	atStart := p.Near(s.P0, Tolerance) || !p.Near(s.P1, Tolerance)
	if !s.IsArc() {
		if atStart {
			return s.P1.Sub(s.P0).Normalize()
		}
		return s.P0.Sub(s.P1).Normalize()
	}
	sign := 1.0
	if s.SweepAngle() < 0 {
		sign = -1
	}
	if atStart {
		return s.P0.Sub(s.Center).Perp().Normalize().Mul(sign)
	}
	return s.P1.Sub(s.Center).Perp().Normalize().Mul(-sign)
}

// ParamOf returns the parameter of a point known to lie on the segment.
func (s Segment) ParamOf(p Point) float64 {
	if !s.IsArc() {
		return ProjectOnSegment(p, s.P0, s.P1)
	}
	sweep := s.SweepAngle()
	if sweep == 0 {
		return 0
	}
	a0 := s.P0.Sub(s.Center).Angle()
	a := p.Sub(s.Center).Angle()
	var d float64
	if sweep > 0 {
		d = NormalizeAngle(a - a0)
	} else {
		d = -NormalizeAngle(a0 - a)
	}
	return clamp01(d / sweep)
}

// Contains reports whether p lies on the segment within tol.
func (s Segment) Contains(p Point, tol float64) bool {
	if !s.IsArc() {
		return PointOnSegment(p, s.P0, s.P1, tol)
	}
	if math.Abs(p.Distance(s.Center)-s.Radius()) > tol {
		return false
	}
	if p.Near(s.P0, tol) || p.Near(s.P1, tol) {
		return true
	}
	return s.angleWithin(p.Sub(s.Center).Angle(), s.P0.Sub(s.Center).Angle(), s.SweepAngle())
}

// Split cuts the segment at the given parameters. Parameters outside
// (0,1) or closer than Tolerance to each other are ignored.
func (s Segment) Split(ts []float64) []Segment {
	sorted := append([]float64(nil), ts...)
	sort.Float64s(sorted)
	cuts := []float64{0}
	for _, t := range sorted {
		if t <= Tolerance || t >= 1-Tolerance {
			continue
		}
		if t-cuts[len(cuts)-1] > Tolerance {
			cuts = append(cuts, t)
		}
	}
	cuts = append(cuts, 1)

	out := make([]Segment, 0, len(cuts)-1)
	for i := 0; i+1 < len(cuts); i++ {
		piece := s
		piece.P0 = s.PointAt(cuts[i])
		piece.P1 = s.PointAt(cuts[i+1])
		if i == 0 {
			piece.P0 = s.P0
		}
		if i+2 == len(cuts) {
			piece.P1 = s.P1
		}
		out = append(out, piece)
	}
	return out
}

// IntersectLine returns the parameters along s where it meets segment ab.
func (s Segment) IntersectLine(a, b Point) []float64 {
	if !s.IsArc() {
		_, t, _, ok := SegmentIntersection(s.P0, s.P1, a, b)
		if !ok {
			return nil
		}
		return []float64{t}
	}
	c := Circle{Center: s.Center, Radius: s.Radius()}
	var ts []float64
	for _, u := range c.IntersectSegment(a, b) {
		p := a.Lerp(b, u)
		if s.Contains(p, Tolerance*10) {
			ts = append(ts, s.ParamOf(p))
		}
	}
	return ts
}

// IntersectCircle returns the parameters along s where it crosses c.
func (s Segment) IntersectCircle(c Circle) []float64 {
	if !s.IsArc() {
		return c.IntersectSegment(s.P0, s.P1)
	}
	own := Circle{Center: s.Center, Radius: s.Radius()}
	var ts []float64
	for _, p := range own.IntersectCircle(c) {
		if s.Contains(p, Tolerance*10) {
			ts = append(ts, s.ParamOf(p))
		}
	}
	return ts
}

package geom

import "math"

// LineIntersection returns the intersection of the infinite lines through
// p0,p1 and q0,q1. Parallel lines report false.
func LineIntersection(p0, p1, q0, q1 Point) (Point, bool) {
	r := p1.Sub(p0)
	s := q1.Sub(q0)
	denom := r.Cross(s)
	if math.Abs(denom) < 1e-12 {
		return Point{}, false
	}
	t := q0.Sub(p0).Cross(s) / denom
	return p0.Add(r.Mul(t)), true
}

// SegmentIntersection intersects segments p0p1 and q0q1. It returns the
// intersection point and its parameters t along p and u along q. Touching
// at an endpoint counts as an intersection; collinear overlaps do not.
func SegmentIntersection(p0, p1, q0, q1 Point) (pt Point, t, u float64, ok bool) {
	r := p1.Sub(p0)
	s := q1.Sub(q0)
	denom := r.Cross(s)
	if math.Abs(denom) < 1e-12 {
		return Point{}, 0, 0, false
	}
	qp := q0.Sub(p0)
	t = qp.Cross(s) / denom
	u = qp.Cross(r) / denom

	// Parametric slack scaled so the slack is Tolerance in distance.
	et := Tolerance / math.Max(r.Length(), Tolerance)
	eu := Tolerance / math.Max(s.Length(), Tolerance)
	if t < -et || t > 1+et || u < -eu || u > 1+eu {
		return Point{}, 0, 0, false
	}
	t = clamp01(t)
	u = clamp01(u)
	return p0.Add(r.Mul(t)), t, u, true
}

// SegmentsCross reports whether two segments cross at a point interior to
// both, further than tol from every endpoint.
func SegmentsCross(p0, p1, q0, q1 Point, tol float64) bool {
	pt, _, _, ok := SegmentIntersection(p0, p1, q0, q1)
	if !ok {
		return false
	}
	return !pt.Near(p0, tol) && !pt.Near(p1, tol) && !pt.Near(q0, tol) && !pt.Near(q1, tol)
}

// ProjectOnSegment returns the parameter of the point on segment ab closest
// to p, clamped to [0,1].
func ProjectOnSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSquared()
	if l2 == 0 {
		return 0
	}
	return clamp01(p.Sub(a).Dot(ab) / l2)
}

// DistanceToSegment returns the distance from p to segment ab.
func DistanceToSegment(p, a, b Point) float64 {
	t := ProjectOnSegment(p, a, b)
	return p.Distance(a.Lerp(b, t))
}

// PointOnSegment reports whether p lies on segment ab within tol.
func PointOnSegment(p, a, b Point, tol float64) bool {
	return DistanceToSegment(p, a, b) <= tol
}

// Collinear reports whether the three points lie on one line within tol.
func Collinear(a, b, c Point, tol float64) bool {
	ab := b.Sub(a)
	l := ab.Length()
	if l < tol {
		return true
	}
	return math.Abs(ab.Cross(c.Sub(a)))/l <= tol
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

package geom

import "math"

// Polygon is a closed polygon given by its vertices. The closing edge from
// the last vertex back to the first is implicit.
type Polygon []Point

// Regular returns the regular n-gon with unit side length, centred on the
// origin, with the midpoint of its first edge on the positive X axis.
// Vertices are counter-clockwise.
func Regular(n int) Polygon {
	if n < 3 {
		return nil
	}
	r := 1 / (2 * math.Sin(math.Pi/float64(n)))
	poly := make(Polygon, n)
	for i := range n {
		a := (float64(i) - 0.5) * 2 * math.Pi / float64(n)
		poly[i] = Polar(r, a)
	}
	return poly
}

// RegularApothem is the distance from the center to an edge midpoint of
// the unit-side regular n-gon.
func RegularApothem(n int) float64 {
	return 1 / (2 * math.Tan(math.Pi/float64(n)))
}

// RegularCircumradius is the distance from the center to a vertex of the
// unit-side regular n-gon.
func RegularCircumradius(n int) float64 {
	return 1 / (2 * math.Sin(math.Pi/float64(n)))
}

// Edges returns the polygon edges as line segments.
func (p Polygon) Edges() []Segment {
	n := len(p)
	out := make([]Segment, 0, n)
	for i := range n {
		out = append(out, LineSeg(p[i], p[(i+1)%n]))
	}
	return out
}

// EdgeMidpoints returns the midpoint of every edge.
func (p Polygon) EdgeMidpoints() []Point {
	n := len(p)
	out := make([]Point, n)
	for i := range n {
		out[i] = p[i].Lerp(p[(i+1)%n], 0.5)
	}
	return out
}

// SignedArea returns the shoelace area; positive for counter-clockwise.
func (p Polygon) SignedArea() float64 {
	var a float64
	n := len(p)
	for i := range n {
		a += p[i].Cross(p[(i+1)%n])
	}
	return a / 2
}

// Area returns the absolute area.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// IsCCW reports whether the vertices run counter-clockwise.
func (p Polygon) IsCCW() bool {
	return p.SignedArea() > 0
}

// Perimeter returns the total edge length.
func (p Polygon) Perimeter() float64 {
	var l float64
	n := len(p)
	for i := range n {
		l += p[i].Distance(p[(i+1)%n])
	}
	return l
}

// Centroid returns the area centroid, falling back to the vertex mean for
// degenerate polygons.
func (p Polygon) Centroid() Point {
	a := p.SignedArea()
	if math.Abs(a) < Tolerance {
		var c Point
		for _, v := range p {
			c = c.Add(v)
		}
		if len(p) > 0 {
			c = c.Div(float64(len(p)))
		}
		return c
	}
	var cx, cy float64
	n := len(p)
	for i := range n {
		q, r := p[i], p[(i+1)%n]
		f := q.Cross(r)
		cx += (q.X + r.X) * f
		cy += (q.Y + r.Y) * f
	}
	return Point{X: cx / (6 * a), Y: cy / (6 * a)}
}

// Bounds returns the bounding rectangle.
func (p Polygon) Bounds() Rect {
	r := EmptyRect()
	for _, v := range p {
		r = r.Expand(v)
	}
	return r
}

// Transform returns the polygon with m applied to every vertex.
func (p Polygon) Transform(m Matrix) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = m.TransformPoint(v)
	}
	return out
}

// Reversed returns the polygon with its vertex order reversed.
func (p Polygon) Reversed() Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// IsConvex reports whether every turn has the same sign.
func (p Polygon) IsConvex() bool {
	n := len(p)
	if n < 3 {
		return false
	}
	sign := 0
	for i := range n {
		c := p[(i+1)%n].Sub(p[i]).Cross(p[(i+2)%n].Sub(p[(i+1)%n]))
		if math.Abs(c) < Tolerance {
			continue
		}
		s := 1
		if c < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}

// OnBoundary reports whether pt lies within tol of an edge.
func (p Polygon) OnBoundary(pt Point, tol float64) bool {
	return p.BoundaryDistance(pt) <= tol
}

// BoundaryDistance returns the distance from pt to the nearest edge.
func (p Polygon) BoundaryDistance(pt Point) float64 {
	best := math.Inf(1)
	n := len(p)
	for i := range n {
		best = math.Min(best, DistanceToSegment(pt, p[i], p[(i+1)%n]))
	}
	return best
}

// Contains reports whether pt is inside the polygon or on its boundary,
// using the non-zero winding rule.
func (p Polygon) Contains(pt Point) bool {
	if p.OnBoundary(pt, Tolerance) {
		return true
	}
	return p.winding(pt) != 0
}

// ContainsStrict reports whether pt is inside and further than tol from
// the boundary.
func (p Polygon) ContainsStrict(pt Point, tol float64) bool {
	return p.winding(pt) != 0 && p.BoundaryDistance(pt) > tol
}

func (p Polygon) winding(pt Point) int {
	w := 0
	n := len(p)
	for i := range n {
		a, b := p[i], p[(i+1)%n]
		if a.Y <= pt.Y {
			if b.Y > pt.Y && b.Sub(a).Cross(pt.Sub(a)) > 0 {
				w++
			}
		} else if b.Y <= pt.Y && b.Sub(a).Cross(pt.Sub(a)) < 0 {
			w--
		}
	}
	return w
}

// ClipConvex clips subject against a convex clip polygon
// (Sutherland-Hodgman). The result may be empty.
func ClipConvex(subject, clip Polygon) Polygon {
	if len(clip) < 3 {
		return nil
	}
	if !clip.IsCCW() {
		clip = clip.Reversed()
	}
	out := append(Polygon(nil), subject...)
	n := len(clip)
	for i := 0; i < n && len(out) > 0; i++ {
		a, b := clip[i], clip[(i+1)%n]
		inside := func(q Point) bool { return b.Sub(a).Cross(q.Sub(a)) >= 0 }
		in := out
		out = nil
		for j := range in {
			cur, prev := in[j], in[(j+len(in)-1)%len(in)]
			if inside(cur) {
				if !inside(prev) {
					if x, ok := LineIntersection(prev, cur, a, b); ok {
						out = append(out, x)
					}
				}
				out = append(out, cur)
			} else if inside(prev) {
				if x, ok := LineIntersection(prev, cur, a, b); ok {
					out = append(out, x)
				}
			}
		}
	}
	return out
}

// Overlaps reports whether the interiors of a and b intersect by more
// than tol. Shared edges and shared vertices are not overlaps.
func Overlaps(a, b Polygon, tol float64) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	if !a.Bounds().Inset(tol).Intersects(b.Bounds().Inset(tol)) {
		return false
	}
	switch {
	case b.IsConvex():
		return ClipConvex(a, b).Area() > tol*math.Max(a.Perimeter(), 1)
	case a.IsConvex():
		return ClipConvex(b, a).Area() > tol*math.Max(b.Perimeter(), 1)
	}

	// Neither is convex: look for crossing edges or interior samples.
	for _, ea := range a.Edges() {
		for _, eb := range b.Edges() {
			if SegmentsCross(ea.P0, ea.P1, eb.P0, eb.P1, tol) {
				return true
			}
		}
	}
	for _, probe := range [][2]Polygon{{a, b}, {b, a}} {
		src, dst := probe[0], probe[1]
		for _, v := range src {
			if dst.ContainsStrict(v, tol) {
				return true
			}
		}
		for _, m := range src.EdgeMidpoints() {
			if dst.ContainsStrict(m, tol) {
				return true
			}
		}
		if dst.ContainsStrict(src.Centroid(), tol) {
			return true
		}
	}
	return false
}

// Touches reports whether a and b meet along their boundaries without
// overlapping.
func Touches(a, b Polygon, tol float64) bool {
	if Overlaps(a, b, tol) {
		return false
	}
	for _, v := range a {
		if b.OnBoundary(v, tol) {
			return true
		}
	}
	for _, v := range b {
		if a.OnBoundary(v, tol) {
			return true
		}
	}
	return false
}

// SharesEdge reports whether a and b have a common boundary stretch longer
// than tol, as neighbouring tiles do.
func SharesEdge(a, b Polygon, tol float64) bool {
	for _, ea := range a.Edges() {
		for _, eb := range b.Edges() {
			if sharedLength(ea, eb, tol) > tol {
				return true
			}
		}
	}
	return false
}

func sharedLength(a, b Segment, tol float64) float64 {
	if !PointOnSegment(b.P0, a.P0, a.P1, tol) && !PointOnSegment(b.P1, a.P0, a.P1, tol) &&
		!PointOnSegment(a.P0, b.P0, b.P1, tol) && !PointOnSegment(a.P1, b.P0, b.P1, tol) {
		return 0
	}
	if !Collinear(a.P0, a.P1, b.P0, tol) || !Collinear(a.P0, a.P1, b.P1, tol) {
		return 0
	}
	t0 := ProjectOnSegment(b.P0, a.P0, a.P1)
	t1 := ProjectOnSegment(b.P1, a.P0, a.P1)
	return math.Abs(t1-t0) * a.Length()
}

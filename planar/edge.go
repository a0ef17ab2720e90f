package planar

import (
	"github.com/gogpu/girih/geom"
)

// Edge connects two vertices of the same map. Kind selects straight,
// arc or chord geometry; ArcCenter and Convex describe the circle for the
// curved kinds (see geom.Segment).
type Edge struct {
	V1, V2    *Vertex
	Kind      geom.SegmentKind
	ArcCenter geom.Point
	Convex    bool
}

// Segment returns the edge geometry.
func (e *Edge) Segment() geom.Segment {
	return geom.Segment{
		Kind:   e.Kind,
		P0:     e.V1.Pt,
		P1:     e.V2.Pt,
		Center: e.ArcCenter,
		Convex: e.Convex,
	}
}

// Other returns the endpoint that is not v.
func (e *Edge) Other(v *Vertex) *Vertex {
	if e.V1 == v {
		return e.V2
	}
	return e.V1
}

// Has reports whether v is an endpoint.
func (e *Edge) Has(v *Vertex) bool {
	return e.V1 == v || e.V2 == v
}

// Connects reports whether the edge joins a and b in either direction.
func (e *Edge) Connects(a, b *Vertex) bool {
	return (e.V1 == a && e.V2 == b) || (e.V1 == b && e.V2 == a)
}

// IsCurve reports whether the edge carries arc data.
func (e *Edge) IsCurve() bool {
	return e.Kind != geom.KindLine
}

// Angle returns the direction in [0, 2π) in which the edge leaves v.
func (e *Edge) Angle(v *Vertex) float64 {
	return geom.NormalizeAngle(e.Segment().TangentAt(v.Pt).Angle())
}

// Length returns the edge length along its geometry.
func (e *Edge) Length() float64 {
	return e.Segment().Length()
}

// Midpoint returns the point halfway along the edge.
func (e *Edge) Midpoint() geom.Point {
	return e.Segment().Midpoint()
}

// Bounds returns the bounding rectangle including arc bulge.
func (e *Edge) Bounds() geom.Rect {
	return e.Segment().Bounds()
}

// Points samples the edge with n subdivisions for arcs.
func (e *Edge) Points(n int) []geom.Point {
	return e.Segment().Points(n)
}

// sameGeometry reports whether e and f describe the same curve between
// the same endpoints.
func (e *Edge) sameGeometry(f *Edge, tol float64) bool {
	if !e.Connects(f.V1, f.V2) {
		return false
	}
	if !e.IsCurve() && !f.IsCurve() {
		return true
	}
	if e.Kind != f.Kind || !e.ArcCenter.Near(f.ArcCenter, tol) {
		return false
	}
	if e.V1 == f.V1 {
		return e.Convex == f.Convex
	}
	return e.Convex != f.Convex
}

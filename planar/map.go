package planar

import (
	"errors"
	"fmt"

	"github.com/gogpu/girih/geom"
)

// Map is a planar graph of vertices and edges with tolerance-based
// vertex identity.
type Map struct {
	vertices []*Vertex
	edges    []*Edge
	index    *grid
	tol      float64
}

// New creates an empty map using geom.Tolerance for vertex identity.
func New() *Map {
	return NewWithTolerance(geom.Tolerance)
}

// NewWithTolerance creates an empty map with a custom vertex tolerance.
// Tolerances above the spatial hash cell size are clamped to it.
func NewWithTolerance(tol float64) *Map {
	if tol <= 0 {
		tol = geom.Tolerance
	}
	if tol > gridCell {
		tol = gridCell
	}
	return &Map{index: newGrid(), tol: tol}
}

// Tolerance returns the vertex identity tolerance.
func (m *Map) Tolerance() float64 {
	return m.tol
}

// Vertices returns the vertices in insertion order.
// The returned slice must not be modified.
func (m *Map) Vertices() []*Vertex {
	return m.vertices
}

// Edges returns the edges in insertion order.
// The returned slice must not be modified.
func (m *Map) Edges() []*Edge {
	return m.edges
}

// NumVertices returns the vertex count.
func (m *Map) NumVertices() int {
	return len(m.vertices)
}

// NumEdges returns the edge count.
func (m *Map) NumEdges() int {
	return len(m.edges)
}

// IsEmpty reports whether the map has no vertices.
func (m *Map) IsEmpty() bool {
	return len(m.vertices) == 0
}

// Bounds returns the bounding rectangle of all geometry. An empty map
// returns geom.EmptyRect.
func (m *Map) Bounds() geom.Rect {
	r := geom.EmptyRect()
	for _, v := range m.vertices {
		r = r.Expand(v.Pt)
	}
	for _, e := range m.edges {
		if e.Kind == geom.KindArc {
			r = r.Union(e.Bounds())
		}
	}
	return r
}

// FindVertex returns the vertex within tolerance of p.
func (m *Map) FindVertex(p geom.Point) (*Vertex, bool) {
	v := m.index.nearest(p, m.tol)
	return v, v != nil
}

// FindEdge returns an edge joining a and b.
func (m *Map) FindEdge(a, b *Vertex) (*Edge, bool) {
	if a == nil || b == nil {
		return nil, false
	}
	e := a.edgeTo(b)
	return e, e != nil
}

// InsertVertex returns the vertex at p, creating it unless an existing
// vertex lies within tolerance.
func (m *Map) InsertVertex(p geom.Point) *Vertex {
	if v := m.index.nearest(p, m.tol); v != nil {
		return v
	}
	v := &Vertex{Pt: p}
	m.vertices = append(m.vertices, v)
	m.index.add(v)
	return v
}

// InsertEdge joins v1 and v2 with a straight edge. If a straight edge
// already joins them it is returned unchanged. Edges are keyed by
// geometry, so a curved edge between the same vertices does not satisfy
// the request and the two edges coexist. A degenerate request (v1 == v2)
// is absorbed and returns nil.
func (m *Map) InsertEdge(v1, v2 *Vertex) *Edge {
	return m.insert(&Edge{V1: v1, V2: v2, Kind: geom.KindLine})
}

// InsertArc joins v1 and v2 with a curved edge about center. When chord
// is set the edge keeps its arc data but is treated as a straight chord.
// An edge with identical geometry is returned if present.
func (m *Map) InsertArc(v1, v2 *Vertex, center geom.Point, convex, chord bool) *Edge {
	kind := geom.KindArc
	if chord {
		kind = geom.KindChord
	}
	return m.insert(&Edge{V1: v1, V2: v2, Kind: kind, ArcCenter: center, Convex: convex})
}

// InsertLine inserts both endpoints and the straight edge between them.
func (m *Map) InsertLine(p, q geom.Point) *Edge {
	return m.InsertEdge(m.InsertVertex(p), m.InsertVertex(q))
}

// InsertSegment inserts arbitrary edge geometry.
func (m *Map) InsertSegment(s geom.Segment) *Edge {
	v1 := m.InsertVertex(s.P0)
	v2 := m.InsertVertex(s.P1)
	if s.Kind == geom.KindLine {
		return m.InsertEdge(v1, v2)
	}
	return m.InsertArc(v1, v2, s.Center, s.Convex, s.Kind == geom.KindChord)
}

func (m *Map) insert(e *Edge) *Edge {
	if e.V1 == nil || e.V2 == nil || e.V1 == e.V2 {
		return nil
	}
	for _, f := range e.V1.edges {
		if f.sameGeometry(e, m.tol) {
			return f
		}
	}
	m.edges = append(m.edges, e)
	e.V1.attach(e)
	e.V2.attach(e)
	return e
}

// RemoveEdge deletes e. Its endpoints stay in the map.
func (m *Map) RemoveEdge(e *Edge) {
	for i, f := range m.edges {
		if f == e {
			m.edges = append(m.edges[:i], m.edges[i+1:]...)
			e.V1.detach(e)
			e.V2.detach(e)
			return
		}
	}
}

// RemoveVertex deletes v and every edge incident to it.
func (m *Map) RemoveVertex(v *Vertex) {
	for len(v.edges) > 0 {
		m.RemoveEdge(v.edges[0])
	}
	for i, w := range m.vertices {
		if w == v {
			m.vertices = append(m.vertices[:i], m.vertices[i+1:]...)
			m.index.remove(v)
			return
		}
	}
}

// Merge adds every vertex and edge of other to m. Vertex identity is
// re-resolved by tolerance, so coincident vertices of the two maps become
// one and shared edges are not duplicated. other is not modified.
func (m *Map) Merge(other *Map) {
	if other == nil {
		return
	}
	m.mergeWith(other, geom.Identity())
}

// MergeTransformed merges a copy of other with t applied, without
// materialising the transformed copy.
func (m *Map) MergeTransformed(other *Map, t geom.Matrix) {
	if other == nil {
		return
	}
	m.mergeWith(other, t)
}

func (m *Map) mergeWith(other *Map, t geom.Matrix) {
	ident := t.IsIdentity()
	remap := make(map[*Vertex]*Vertex, len(other.vertices))
	for _, ov := range other.vertices {
		p := ov.Pt
		if !ident {
			p = t.TransformPoint(p)
		}
		remap[ov] = m.InsertVertex(p)
	}
	for _, oe := range other.edges {
		ne := &Edge{
			V1:        remap[oe.V1],
			V2:        remap[oe.V2],
			Kind:      oe.Kind,
			ArcCenter: oe.ArcCenter,
			Convex:    oe.Convex,
		}
		if !ident && oe.IsCurve() {
			ne.ArcCenter = t.TransformPoint(oe.ArcCenter)
			if t.IsReflection() {
				ne.Convex = !oe.Convex
			}
		}
		m.insert(ne)
	}
}

// Transform applies t to every vertex and arc center in place.
func (m *Map) Transform(t geom.Matrix) {
	for _, v := range m.vertices {
		v.Pt = t.TransformPoint(v.Pt)
	}
	for _, e := range m.edges {
		if e.IsCurve() {
			e.ArcCenter = t.TransformPoint(e.ArcCenter)
			if t.IsReflection() {
				e.Convex = !e.Convex
			}
		}
	}
	m.index.rebuild(m.vertices)
	for _, v := range m.vertices {
		v.resort()
	}
}

// Transformed returns a transformed copy.
func (m *Map) Transformed(t geom.Matrix) *Map {
	out := NewWithTolerance(m.tol)
	out.mergeWith(m, t)
	return out
}

// Clone returns a deep copy.
func (m *Map) Clone() *Map {
	return m.Transformed(geom.Identity())
}

// Segments returns the geometry of every edge.
func (m *Map) Segments() []geom.Segment {
	out := make([]geom.Segment, len(m.edges))
	for i, e := range m.edges {
		out[i] = e.Segment()
	}
	return out
}

// String summarises the map for logs.
func (m *Map) String() string {
	return fmt.Sprintf("map{vertices=%d edges=%d}", len(m.vertices), len(m.edges))
}

// Errors reported by Verify.
var (
	ErrForeignVertex  = errors.New("planar: edge endpoint not in map")
	ErrDegenerateEdge = errors.New("planar: edge joins a vertex to itself")
	ErrDuplicateEdge  = errors.New("planar: duplicate edge")
	ErrNearVertices   = errors.New("planar: vertices within tolerance")
	ErrNeighbourOrder = errors.New("planar: neighbour list out of order")
)

// Verify checks the map invariants and returns every violation joined
// into one error, or nil.
func (m *Map) Verify() error {
	var errs []error
	member := make(map[*Vertex]bool, len(m.vertices))
	for _, v := range m.vertices {
		member[v] = true
	}
	for i, e := range m.edges {
		if !member[e.V1] || !member[e.V2] {
			errs = append(errs, fmt.Errorf("edge %d: %w", i, ErrForeignVertex))
			continue
		}
		if e.V1 == e.V2 || e.V1.Pt.Near(e.V2.Pt, m.tol) {
			errs = append(errs, fmt.Errorf("edge %d: %w", i, ErrDegenerateEdge))
		}
	}
	for _, v := range m.vertices {
		for _, w := range m.index.within(v.Pt, m.tol) {
			if w != v {
				errs = append(errs, fmt.Errorf("vertex %v: %w", v.Pt, ErrNearVertices))
			}
		}
		for i := 1; i < len(v.edges); i++ {
			if v.edges[i-1].Angle(v) > v.edges[i].Angle(v)+1e-9 {
				errs = append(errs, fmt.Errorf("vertex %v: %w", v.Pt, ErrNeighbourOrder))
				break
			}
		}
		for i, e := range v.edges {
			for _, f := range v.edges[i+1:] {
				if e.sameGeometry(f, m.tol) {
					errs = append(errs, fmt.Errorf("vertex %v: %w", v.Pt, ErrDuplicateEdge))
				}
			}
		}
	}
	return errors.Join(errs...)
}

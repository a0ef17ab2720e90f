package planar

import (
	"github.com/gogpu/girih/geom"
)

// CleanseLevel is a bit mask selecting the defect classes Cleanse removes.
type CleanseLevel uint

const (
	// CleanseBadEdges removes zero-length edges.
	CleanseBadEdges CleanseLevel = 1 << iota

	// CleanseNearVertices merges vertices closer than geom.NearTolerance.
	CleanseNearVertices

	// CleanseDuplicateEdges removes edges repeating another edge's
	// geometry.
	CleanseDuplicateEdges

	// CleanseDivideIntersecting splits straight edges where they cross.
	CleanseDivideIntersecting

	// CleanseJoinColinear replaces two collinear straight edges meeting at
	// a degree-2 vertex with one edge.
	CleanseJoinColinear

	// CleanseIsolatedVertices removes vertices without edges.
	CleanseIsolatedVertices
)

// CleanseDefault is the mask applied after motif construction.
const CleanseDefault = CleanseBadEdges | CleanseNearVertices | CleanseDuplicateEdges | CleanseIsolatedVertices

// CleanseReport counts what Cleanse changed.
type CleanseReport struct {
	BadEdges       int
	MergedVertices int
	DuplicateEdges int
	DividedEdges   int
	JoinedEdges    int
	Isolated       int
}

// Changed reports whether anything was removed or rewritten.
func (r CleanseReport) Changed() bool {
	return r != CleanseReport{}
}

// Cleanse removes the defect classes selected by level. It does not make
// self-intersecting input planar unless CleanseDivideIntersecting is set.
func (m *Map) Cleanse(level CleanseLevel) CleanseReport {
	var r CleanseReport
	if level&CleanseBadEdges != 0 {
		r.BadEdges = m.removeBadEdges()
	}
	if level&CleanseNearVertices != 0 {
		r.MergedVertices = m.mergeNearVertices(geom.NearTolerance)
	}
	if level&CleanseDuplicateEdges != 0 {
		r.DuplicateEdges = m.removeDuplicateEdges()
	}
	if level&CleanseDivideIntersecting != 0 {
		r.DividedEdges = m.divideIntersecting()
	}
	if level&CleanseJoinColinear != 0 {
		r.JoinedEdges = m.joinColinear()
	}
	if level&CleanseIsolatedVertices != 0 {
		r.Isolated = m.removeIsolated()
	}
	return r
}

func (m *Map) removeBadEdges() int {
	n := 0
	for _, e := range append([]*Edge(nil), m.edges...) {
		if e.V1 == e.V2 || e.V1.Pt.Near(e.V2.Pt, m.tol) {
			m.RemoveEdge(e)
			n++
		}
	}
	return n
}

// mergeNearVertices folds every vertex within tol of an earlier vertex
// into it, reconnecting its edges.
func (m *Map) mergeNearVertices(tol float64) int {
	if tol > gridCell {
		tol = gridCell
	}
	merged := 0
	removed := make(map[*Vertex]bool)
	for _, keep := range append([]*Vertex(nil), m.vertices...) {
		if removed[keep] {
			continue
		}
		for _, w := range m.index.within(keep.Pt, tol) {
			if w == keep {
				continue
			}
			m.absorb(keep, w)
			removed[w] = true
			merged++
		}
	}
	return merged
}

// absorb moves every edge of w onto keep and deletes w.
func (m *Map) absorb(keep, w *Vertex) {
	for _, e := range append([]*Edge(nil), w.edges...) {
		other := e.Other(w)
		m.RemoveEdge(e)
		if other == keep {
			continue
		}
		ne := &Edge{V1: keep, V2: other, Kind: e.Kind, ArcCenter: e.ArcCenter, Convex: e.Convex}
		if e.V2 == w {
			ne.V1, ne.V2 = other, keep
		}
		m.insert(ne)
	}
	m.RemoveVertex(w)
}

func (m *Map) removeDuplicateEdges() int {
	n := 0
	for _, v := range m.vertices {
		for i := 0; i < len(v.edges); i++ {
			for j := i + 1; j < len(v.edges); j++ {
				if v.edges[i].sameGeometry(v.edges[j], m.tol) {
					m.RemoveEdge(v.edges[j])
					n++
					j--
				}
			}
		}
	}
	return n
}

// divideIntersecting splits crossing straight edges at their crossing
// points until no two straight edges cross.
func (m *Map) divideIntersecting() int {
	divided := 0
	for changed := true; changed; {
		changed = false
	scan:
		for i := 0; i < len(m.edges); i++ {
			e := m.edges[i]
			if e.IsCurve() {
				continue
			}
			eb := e.Bounds()
			for j := i + 1; j < len(m.edges); j++ {
				f := m.edges[j]
				if f.IsCurve() || !eb.Intersects(f.Bounds()) {
					continue
				}
				p, _, _, ok := geom.SegmentIntersection(e.V1.Pt, e.V2.Pt, f.V1.Pt, f.V2.Pt)
				if !ok {
					continue
				}
				splitE := !p.Near(e.V1.Pt, m.tol) && !p.Near(e.V2.Pt, m.tol)
				splitF := !p.Near(f.V1.Pt, m.tol) && !p.Near(f.V2.Pt, m.tol)
				if !splitE && !splitF {
					continue
				}
				x := m.InsertVertex(p)
				if splitE {
					m.splitEdge(e, x)
					divided++
				}
				if splitF {
					m.splitEdge(f, x)
					divided++
				}
				changed = true
				break scan
			}
		}
	}
	return divided
}

func (m *Map) splitEdge(e *Edge, x *Vertex) {
	if e.Has(x) {
		return
	}
	m.RemoveEdge(e)
	m.InsertEdge(e.V1, x)
	m.InsertEdge(x, e.V2)
}

func (m *Map) joinColinear() int {
	joined := 0
	for _, v := range append([]*Vertex(nil), m.vertices...) {
		if len(v.edges) != 2 {
			continue
		}
		e, f := v.edges[0], v.edges[1]
		if e.IsCurve() || f.IsCurve() {
			continue
		}
		a, b := e.Other(v), f.Other(v)
		if a == b || !geom.Collinear(a.Pt, b.Pt, v.Pt, m.tol) {
			continue
		}
		// v must lie between a and b, not beyond them.
		if v.Pt.Sub(a.Pt).Dot(b.Pt.Sub(v.Pt)) <= 0 {
			continue
		}
		m.RemoveVertex(v)
		m.InsertEdge(a, b)
		joined++
	}
	return joined
}

func (m *Map) removeIsolated() int {
	n := 0
	for _, v := range append([]*Vertex(nil), m.vertices...) {
		if len(v.edges) == 0 {
			m.RemoveVertex(v)
			n++
		}
	}
	return n
}

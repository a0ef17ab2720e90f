package planar

import (
	"sort"

	"github.com/gogpu/girih/geom"
)

// Vertex is a map vertex. Its edges are ordered by the angle at which
// they leave the vertex, counter-clockwise from the positive X axis.
type Vertex struct {
	Pt    geom.Point
	edges []*Edge
}

// Edges returns the incident edges in angular order.
// The returned slice must not be modified.
func (v *Vertex) Edges() []*Edge {
	return v.edges
}

// Degree returns the number of incident edges.
func (v *Vertex) Degree() int {
	return len(v.edges)
}

// Neighbours returns the adjacent vertices in angular order.
func (v *Vertex) Neighbours() []*Vertex {
	out := make([]*Vertex, len(v.edges))
	for i, e := range v.edges {
		out[i] = e.Other(v)
	}
	return out
}

// Next returns the edge following e counter-clockwise around v.
// It returns nil if e is not incident to v.
func (v *Vertex) Next(e *Edge) *Edge {
	for i, f := range v.edges {
		if f == e {
			return v.edges[(i+1)%len(v.edges)]
		}
	}
	return nil
}

// Prev returns the edge preceding e counter-clockwise around v.
func (v *Vertex) Prev(e *Edge) *Edge {
	for i, f := range v.edges {
		if f == e {
			return v.edges[(i+len(v.edges)-1)%len(v.edges)]
		}
	}
	return nil
}

func (v *Vertex) attach(e *Edge) {
	a := e.Angle(v)
	i := sort.Search(len(v.edges), func(i int) bool {
		return v.edges[i].Angle(v) > a
	})
	v.edges = append(v.edges, nil)
	copy(v.edges[i+1:], v.edges[i:])
	v.edges[i] = e
}

func (v *Vertex) detach(e *Edge) {
	for i, f := range v.edges {
		if f == e {
			v.edges = append(v.edges[:i], v.edges[i+1:]...)
			return
		}
	}
}

func (v *Vertex) resort() {
	sort.SliceStable(v.edges, func(i, j int) bool {
		return v.edges[i].Angle(v) < v.edges[j].Angle(v)
	})
}

func (v *Vertex) edgeTo(w *Vertex) *Edge {
	for _, e := range v.edges {
		if e.Other(v) == w {
			return e
		}
	}
	return nil
}

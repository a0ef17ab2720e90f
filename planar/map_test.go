package planar

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/girih/geom"
)

func squareMap(x, y float64) *Map {
	m := New()
	a := m.InsertVertex(geom.Pt(x, y))
	b := m.InsertVertex(geom.Pt(x+1, y))
	c := m.InsertVertex(geom.Pt(x+1, y+1))
	d := m.InsertVertex(geom.Pt(x, y+1))
	m.InsertEdge(a, b)
	m.InsertEdge(b, c)
	m.InsertEdge(c, d)
	m.InsertEdge(d, a)
	return m
}

func TestInsertVertexTolerance(t *testing.T) {
	tests := []struct {
		name   string
		offset geom.Point
		same   bool
	}{
		{"exact", geom.Pt(0, 0), true},
		{"half tolerance", geom.Pt(geom.Tolerance/2, 0), true},
		{"diagonal within", geom.Pt(geom.Tolerance/3, geom.Tolerance/3), true},
		{"outside tolerance", geom.Pt(geom.Tolerance*10, 0), false},
		{"far", geom.Pt(1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			p := geom.Pt(0.25, -3.5)
			v1 := m.InsertVertex(p)
			v2 := m.InsertVertex(p.Add(tt.offset))
			if (v1 == v2) != tt.same {
				t.Errorf("same handle = %v, want %v", v1 == v2, tt.same)
			}
			want := 2
			if tt.same {
				want = 1
			}
			if m.NumVertices() != want {
				t.Errorf("NumVertices() = %d, want %d", m.NumVertices(), want)
			}
		})
	}
}

func TestInsertVertexAcrossGridCells(t *testing.T) {
	m := New()
	// Straddle a spatial hash cell boundary.
	v1 := m.InsertVertex(geom.Pt(gridCell-geom.Tolerance/4, 0))
	v2 := m.InsertVertex(geom.Pt(gridCell+geom.Tolerance/4, 0))
	if v1 != v2 {
		t.Error("vertices straddling a cell boundary were not merged")
	}
}

func TestInsertEdgeIdempotent(t *testing.T) {
	m := New()
	a := m.InsertVertex(geom.Pt(0, 0))
	b := m.InsertVertex(geom.Pt(1, 0))
	e1 := m.InsertEdge(a, b)
	e2 := m.InsertEdge(a, b)
	e3 := m.InsertEdge(b, a)
	if e1 == nil || e1 != e2 || e1 != e3 {
		t.Fatalf("InsertEdge returned %p, %p, %p; want one edge", e1, e2, e3)
	}
	if m.NumEdges() != 1 {
		t.Errorf("NumEdges() = %d, want 1", m.NumEdges())
	}
	if got := m.InsertEdge(a, a); got != nil {
		t.Error("degenerate edge was inserted")
	}
	if m.NumEdges() != 1 {
		t.Errorf("degenerate insert changed edge count to %d", m.NumEdges())
	}
}

func TestInsertArcKeepsDistinctCurves(t *testing.T) {
	m := New()
	a := m.InsertVertex(geom.Pt(1, 0))
	b := m.InsertVertex(geom.Pt(-1, 0))
	upper := m.InsertArc(a, b, geom.Pt(0, 0), true, false)
	lower := m.InsertArc(a, b, geom.Pt(0, 0), false, false)
	again := m.InsertArc(b, a, geom.Pt(0, 0), false, false)
	if upper == lower {
		t.Fatal("opposite arcs collapsed into one edge")
	}
	if again != upper {
		t.Error("reversed arc with same curve was not recognised")
	}
	if m.NumEdges() != 2 {
		t.Errorf("NumEdges() = %d, want 2", m.NumEdges())
	}
}

func TestInsertEdgeBesideArc(t *testing.T) {
	m := New()
	a := m.InsertVertex(geom.Pt(1, 0))
	b := m.InsertVertex(geom.Pt(-1, 0))
	arc := m.InsertArc(a, b, geom.Pt(0, 0), true, false)
	line := m.InsertEdge(b, a)
	if line == nil || line == arc {
		t.Fatalf("InsertEdge returned %p beside arc %p; want a new straight edge", line, arc)
	}
	if line.IsCurve() {
		t.Error("straight edge reported as curved")
	}
	if again := m.InsertEdge(a, b); again != line {
		t.Error("second straight insert did not return the existing line")
	}
	if _, ok := m.FindEdge(a, b); !ok {
		t.Error("FindEdge found nothing between joined vertices")
	}
	if m.NumEdges() != 2 {
		t.Errorf("NumEdges() = %d, want 2", m.NumEdges())
	}
	if err := m.Verify(); err != nil {
		t.Errorf("Verify() = %v", err)
	}
}

func TestMergeDisjointAndShared(t *testing.T) {
	tests := []struct {
		name         string
		bx, by       float64
		wantVertices int
		wantEdges    int
	}{
		{"disjoint", 5, 5, 8, 8},
		{"shared edge", 1, 0, 6, 7},
		{"shared corner", 1, 1, 7, 8},
		{"identical", 0, 0, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := squareMap(0, 0)
			b := squareMap(tt.bx, tt.by)
			a.Merge(b)
			if a.NumVertices() != tt.wantVertices {
				t.Errorf("NumVertices() = %d, want %d", a.NumVertices(), tt.wantVertices)
			}
			if a.NumEdges() != tt.wantEdges {
				t.Errorf("NumEdges() = %d, want %d", a.NumEdges(), tt.wantEdges)
			}
			if err := a.Verify(); err != nil {
				t.Errorf("Verify() = %v", err)
			}
			if b.NumVertices() != 4 || b.NumEdges() != 4 {
				t.Error("Merge modified its argument")
			}
		})
	}
}

func TestMergeWithinTolerance(t *testing.T) {
	a := squareMap(0, 0)
	b := squareMap(1+geom.Tolerance/4, geom.Tolerance/4)
	a.Merge(b)
	if a.NumVertices() != 6 || a.NumEdges() != 7 {
		t.Errorf("got %v, want 6 vertices and 7 edges", a)
	}
}

func TestNeighbourOrder(t *testing.T) {
	m := New()
	c := m.InsertVertex(geom.Pt(0, 0))
	// Insert out of angular order.
	for _, p := range []geom.Point{geom.Pt(0, -1), geom.Pt(-1, 0), geom.Pt(1, 0), geom.Pt(0, 1)} {
		m.InsertEdge(c, m.InsertVertex(p))
	}
	want := []geom.Point{geom.Pt(1, 0), geom.Pt(0, 1), geom.Pt(-1, 0), geom.Pt(0, -1)}
	got := c.Neighbours()
	for i := range want {
		if !got[i].Pt.Near(want[i], 1e-12) {
			t.Errorf("neighbour %d = %v, want %v", i, got[i].Pt, want[i])
		}
	}
	east := c.Edges()[0]
	if next := c.Next(east); next.Other(c).Pt != geom.Pt(0, 1) {
		t.Errorf("Next(east) leads to %v, want (0,1)", next.Other(c).Pt)
	}
	if prev := c.Prev(east); prev.Other(c).Pt != geom.Pt(0, -1) {
		t.Errorf("Prev(east) leads to %v, want (0,-1)", prev.Other(c).Pt)
	}
}

func TestTransformArcs(t *testing.T) {
	m := New()
	m.InsertSegment(geom.ArcSeg(geom.Pt(1, 0), geom.Pt(0, 1), geom.Pt(0, 0), true))
	m.Transform(geom.Translate(3, 4).Multiply(geom.Scale(2, 2)))
	e := m.Edges()[0]
	if !e.ArcCenter.Near(geom.Pt(3, 4), 1e-12) {
		t.Errorf("ArcCenter = %v, want (3,4)", e.ArcCenter)
	}
	if r := e.Segment().Radius(); math.Abs(r-2) > 1e-12 {
		t.Errorf("radius = %v, want 2", r)
	}
	if _, ok := m.FindVertex(geom.Pt(5, 4)); !ok {
		t.Error("transformed vertex not found through the index")
	}
	b := m.Bounds()
	if math.Abs(b.Max.X-5) > 1e-12 || math.Abs(b.Max.Y-6) > 1e-12 {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := squareMap(0, 0)
	c := m.Clone()
	c.Transform(geom.Translate(10, 0))
	if _, ok := m.FindVertex(geom.Pt(10, 0)); ok {
		t.Error("transforming the clone moved the original")
	}
	if c.NumEdges() != m.NumEdges() {
		t.Errorf("clone has %d edges, want %d", c.NumEdges(), m.NumEdges())
	}
}

func TestRemoveVertex(t *testing.T) {
	m := squareMap(0, 0)
	v, _ := m.FindVertex(geom.Pt(0, 0))
	m.RemoveVertex(v)
	if m.NumVertices() != 3 || m.NumEdges() != 2 {
		t.Errorf("after RemoveVertex: %v", m)
	}
	if err := m.Verify(); err != nil {
		t.Errorf("Verify() = %v", err)
	}
}

func TestVerifyDetectsForeignVertex(t *testing.T) {
	m := squareMap(0, 0)
	stray := &Vertex{Pt: geom.Pt(9, 9)}
	m.edges = append(m.edges, &Edge{V1: m.vertices[0], V2: stray})
	if err := m.Verify(); !errors.Is(err, ErrForeignVertex) {
		t.Errorf("Verify() = %v, want ErrForeignVertex", err)
	}
}

func TestEmptyMap(t *testing.T) {
	m := New()
	if !m.IsEmpty() {
		t.Error("new map is not empty")
	}
	if !m.Bounds().IsEmpty() {
		t.Error("empty map has non-empty bounds")
	}
}

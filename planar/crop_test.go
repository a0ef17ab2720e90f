package planar

import (
	"testing"

	"github.com/gogpu/girih/geom"
)

func TestCropRect(t *testing.T) {
	m := New()
	// One line crossing both sides, one inside, one outside.
	m.InsertLine(geom.Pt(-1, 0.5), geom.Pt(2, 0.5))
	m.InsertLine(geom.Pt(0.2, 0.2), geom.Pt(0.8, 0.8))
	m.InsertLine(geom.Pt(3, 3), geom.Pt(4, 4))
	m.Crop(RectRegion{Rect: geom.NewRect(geom.Pt(0, 0), geom.Pt(1, 1))})

	if m.NumEdges() != 2 {
		t.Fatalf("NumEdges() = %d, want 2", m.NumEdges())
	}
	if m.NumVertices() != 4 {
		t.Errorf("NumVertices() = %d, want 4", m.NumVertices())
	}
	for _, p := range []geom.Point{geom.Pt(0, 0.5), geom.Pt(1, 0.5)} {
		if _, ok := m.FindVertex(p); !ok {
			t.Errorf("split vertex %v missing", p)
		}
	}
	if err := m.Verify(); err != nil {
		t.Errorf("Verify() = %v", err)
	}
}

func TestCropCircleSplitsArcsAndLines(t *testing.T) {
	m := New()
	m.InsertLine(geom.Pt(-2, 0), geom.Pt(2, 0))
	m.InsertSegment(geom.ArcSeg(geom.Pt(2, 0), geom.Pt(-2, 0), geom.Pt(0, 0), true))
	m.Crop(CircleRegion{Circle: geom.Circle{Center: geom.Pt(0, 0), Radius: 1}})

	if m.NumEdges() != 1 {
		t.Fatalf("NumEdges() = %d, want 1 (the arc lies outside)", m.NumEdges())
	}
	e := m.Edges()[0]
	if e.Length() < 2-1e-9 || e.Length() > 2+1e-9 {
		t.Errorf("cropped chord length = %v, want 2", e.Length())
	}
}

func TestCropPolygonKeepsArcPiece(t *testing.T) {
	m := New()
	m.InsertSegment(geom.ArcSeg(geom.Pt(1, 0), geom.Pt(-1, 0), geom.Pt(0, 0), true))
	tri := geom.Polygon{geom.Pt(0, -1), geom.Pt(3, -1), geom.Pt(0, 2)}
	m.Crop(PolygonRegion{Polygon: tri})
	if m.NumEdges() != 1 {
		t.Fatalf("NumEdges() = %d, want 1", m.NumEdges())
	}
	e := m.Edges()[0]
	if e.Kind != geom.KindArc {
		t.Errorf("cropped piece kind = %v, want arc", e.Kind)
	}
	for _, v := range []*Vertex{e.V1, e.V2} {
		if !tri.Contains(v.Pt) {
			t.Errorf("vertex %v outside crop polygon", v.Pt)
		}
	}
}

func TestEmbedCropAddsOutline(t *testing.T) {
	m := New()
	m.InsertLine(geom.Pt(-1, 0.5), geom.Pt(2, 0.5))
	m.EmbedCrop(RectRegion{Rect: geom.NewRect(geom.Pt(0, 0), geom.Pt(1, 1))})
	// The inner line plus the outline split at (0,0.5) and (1,0.5).
	if m.NumEdges() != 7 {
		t.Errorf("NumEdges() = %d, want 7", m.NumEdges())
	}
	if m.NumVertices() != 6 {
		t.Errorf("NumVertices() = %d, want 6", m.NumVertices())
	}
	if err := m.Verify(); err != nil {
		t.Errorf("Verify() = %v", err)
	}
}

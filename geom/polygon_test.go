package geom

import (
	"math"
	"testing"
)

func square(x, y, side float64) Polygon {
	return Polygon{Pt(x, y), Pt(x+side, y), Pt(x+side, y+side), Pt(x, y+side)}
}

func TestRegular(t *testing.T) {
	for n := 3; n <= 12; n++ {
		p := Regular(n)
		if len(p) != n {
			t.Fatalf("Regular(%d) has %d vertices", n, len(p))
		}
		for i := range n {
			side := p[i].Distance(p[(i+1)%n])
			if math.Abs(side-1) > 1e-12 {
				t.Errorf("Regular(%d) side %d = %v, want 1", n, i, side)
			}
		}
		if !p.IsCCW() {
			t.Errorf("Regular(%d) is not counter-clockwise", n)
		}
		mid := p[0].Lerp(p[1], 0.5)
		if math.Abs(mid.Y) > 1e-12 || math.Abs(mid.X-RegularApothem(n)) > 1e-12 {
			t.Errorf("Regular(%d) first edge midpoint = %v, want (apothem,0)", n, mid)
		}
	}
}

func TestRegularSquareCorners(t *testing.T) {
	sq := Regular(4)
	want := Polygon{Pt(0.5, -0.5), Pt(0.5, 0.5), Pt(-0.5, 0.5), Pt(-0.5, -0.5)}
	for i := range want {
		if !sq[i].Near(want[i], 1e-12) {
			t.Errorf("Regular(4)[%d] = %v, want %v", i, sq[i], want[i])
		}
	}
}

func TestPolygonAreaCentroid(t *testing.T) {
	p := square(1, 1, 2)
	if got := p.Area(); math.Abs(got-4) > 1e-12 {
		t.Errorf("Area() = %v, want 4", got)
	}
	if got := p.Centroid(); !got.Near(Pt(2, 2), 1e-12) {
		t.Errorf("Centroid() = %v, want (2,2)", got)
	}
	if got := p.Reversed().SignedArea(); got >= 0 {
		t.Errorf("reversed SignedArea() = %v, want negative", got)
	}
}

func TestPolygonContains(t *testing.T) {
	p := square(0, 0, 1)
	tests := []struct {
		pt   Point
		want bool
	}{
		{Pt(0.5, 0.5), true},
		{Pt(0, 0.5), true},
		{Pt(1, 1), true},
		{Pt(1.5, 0.5), false},
		{Pt(-0.01, -0.01), false},
	}
	for _, tt := range tests {
		if got := p.Contains(tt.pt); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
		}
	}
}

func TestOverlapsTouches(t *testing.T) {
	tests := []struct {
		name        string
		a, b        Polygon
		overlaps    bool
		touchesWant bool
	}{
		{"identical", square(0, 0, 1), square(0, 0, 1), true, false},
		{"shared edge", square(0, 0, 1), square(1, 0, 1), false, true},
		{"shared corner", square(0, 0, 1), square(1, 1, 1), false, true},
		{"half overlap", square(0, 0, 1), square(0.5, 0, 1), true, false},
		{"disjoint", square(0, 0, 1), square(3, 3, 1), false, false},
		{"contained", square(0, 0, 4), square(1, 1, 1), true, false},
		{"hexagon neighbours",
			Regular(6),
			Regular(6).Transform(Translate(2*RegularApothem(6), 0)),
			false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b, Tolerance); got != tt.overlaps {
				t.Errorf("Overlaps() = %v, want %v", got, tt.overlaps)
			}
			if got := Touches(tt.a, tt.b, Tolerance); got != tt.touchesWant {
				t.Errorf("Touches() = %v, want %v", got, tt.touchesWant)
			}
		})
	}
}

func TestSharesEdge(t *testing.T) {
	if !SharesEdge(square(0, 0, 1), square(1, 0, 1), Tolerance) {
		t.Error("adjacent squares should share an edge")
	}
	if SharesEdge(square(0, 0, 1), square(1, 1, 1), Tolerance) {
		t.Error("corner-touching squares should not share an edge")
	}
}

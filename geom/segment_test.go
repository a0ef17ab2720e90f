package geom

import (
	"math"
	"testing"
)

func TestSegmentIntersection(t *testing.T) {
	tests := []struct {
		name           string
		p0, p1, q0, q1 Point
		want           Point
		ok             bool
	}{
		{"cross", Pt(0, 0), Pt(2, 2), Pt(0, 2), Pt(2, 0), Pt(1, 1), true},
		{"touch at endpoint", Pt(0, 0), Pt(1, 0), Pt(1, 0), Pt(1, 1), Pt(1, 0), true},
		{"parallel", Pt(0, 0), Pt(1, 0), Pt(0, 1), Pt(1, 1), Point{}, false},
		{"miss", Pt(0, 0), Pt(1, 0), Pt(2, -1), Pt(2, 1), Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, _, ok := SegmentIntersection(tt.p0, tt.p1, tt.q0, tt.q1)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Near(tt.want, 1e-12) {
				t.Errorf("point = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArcSweepAndMidpoint(t *testing.T) {
	ccw := ArcSeg(Pt(1, 0), Pt(0, 1), Pt(0, 0), true)
	if got := ccw.SweepAngle(); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("convex sweep = %v, want π/2", got)
	}
	want := Polar(1, math.Pi/4)
	if got := ccw.Midpoint(); !got.Near(want, 1e-12) {
		t.Errorf("convex midpoint = %v, want %v", got, want)
	}

	cw := ArcSeg(Pt(1, 0), Pt(0, 1), Pt(0, 0), false)
	if got := cw.SweepAngle(); math.Abs(got+3*math.Pi/2) > 1e-12 {
		t.Errorf("concave sweep = %v, want -3π/2", got)
	}
	if got := cw.Length(); math.Abs(got-3*math.Pi/2) > 1e-12 {
		t.Errorf("concave length = %v, want 3π/2", got)
	}
}

func TestArcTransformRecomputesCenter(t *testing.T) {
	arc := ArcSeg(Pt(1, 0), Pt(0, 1), Pt(0, 0), true)
	m := Translate(5, 5).Multiply(Scale(2, 2))
	got := arc.Transform(m)
	if !got.Center.Near(Pt(5, 5), 1e-12) {
		t.Errorf("center = %v, want (5,5)", got.Center)
	}
	if math.Abs(got.Radius()-2) > 1e-12 {
		t.Errorf("radius = %v, want 2", got.Radius())
	}
	if !got.Convex {
		t.Error("similarity flipped convexity")
	}
	mirrored := arc.Transform(Scale(-1, 1))
	if mirrored.Convex {
		t.Error("reflection kept convexity")
	}
	if !mirrored.Midpoint().Near(Polar(1, 3*math.Pi/4), 1e-12) {
		t.Errorf("mirrored midpoint = %v", mirrored.Midpoint())
	}
}

func TestArcBounds(t *testing.T) {
	arc := ArcSeg(Pt(1, 0), Pt(-1, 0), Pt(0, 0), true)
	b := arc.Bounds()
	if math.Abs(b.Max.Y-1) > 1e-12 || math.Abs(b.Min.Y) > 1e-12 {
		t.Errorf("upper half-circle bounds = %+v", b)
	}
}

func TestSegmentSplit(t *testing.T) {
	s := LineSeg(Pt(0, 0), Pt(4, 0))
	parts := s.Split([]float64{0.75, 0.25, 0.25 + 1e-12, 1})
	if len(parts) != 3 {
		t.Fatalf("Split produced %d parts, want 3", len(parts))
	}
	if !parts[1].P0.Near(Pt(1, 0), 1e-12) || !parts[1].P1.Near(Pt(3, 0), 1e-12) {
		t.Errorf("middle part = %v..%v", parts[1].P0, parts[1].P1)
	}

	arc := ArcSeg(Pt(1, 0), Pt(-1, 0), Pt(0, 0), true)
	halves := arc.Split([]float64{0.5})
	if len(halves) != 2 || !halves[0].P1.Near(Pt(0, 1), 1e-12) {
		t.Errorf("arc split = %+v", halves)
	}
}

func TestSegmentIntersectCircle(t *testing.T) {
	c := Circle{Center: Pt(0, 0), Radius: 1}
	ts := LineSeg(Pt(-2, 0), Pt(2, 0)).IntersectCircle(c)
	if len(ts) != 2 || math.Abs(ts[0]-0.25) > 1e-12 || math.Abs(ts[1]-0.75) > 1e-12 {
		t.Errorf("line/circle params = %v, want [0.25 0.75]", ts)
	}
	arc := ArcSeg(Pt(2, 0), Pt(0, 2), Pt(0, 0), true)
	if got := arc.IntersectCircle(Circle{Center: Pt(2, 2), Radius: 2}); len(got) != 2 {
		t.Errorf("arc/circle params = %v, want two", got)
	}
}

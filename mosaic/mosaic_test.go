package mosaic

import (
	"math"
	"testing"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/prototype"
	"github.com/gogpu/girih/tile"
	"github.com/gogpu/girih/tiling"
)

func squarePrototype(t *testing.T) *prototype.Prototype {
	t.Helper()
	tl := tiling.New("squares")
	id := tl.Arena().Add(tile.NewRegular(4))
	tl.Add(tl.NewPlacement(id, geom.Identity()))
	tl.SetTranslations(geom.Pt(1, 0), geom.Pt(0, 1))
	tl.SetFillWindow(tiling.FillWindow{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1})
	p, err := prototype.New(tl)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestState(t *testing.T) {
	a := squarePrototype(t)
	b := squarePrototype(t)

	m := New("test")
	if m.State() != StateEmpty {
		t.Fatalf("new mosaic state = %v", m.State())
	}
	m.AddStyle(NewStyle(StylePlain, a))
	m.AddStyle(NewStyle(StyleThick, a))
	if m.State() != StateSingle {
		t.Errorf("state = %v, want SINGLE", m.State())
	}
	m.AddStyle(NewStyle(StyleOutline, b))
	if m.State() != StateMulti {
		t.Errorf("state = %v, want MULTI", m.State())
	}
	if got := len(m.Prototypes()); got != 2 {
		t.Errorf("prototypes = %d, want 2", got)
	}
	if got := m.RemovePrototype(b); got != 1 {
		t.Errorf("removed %d styles, want 1", got)
	}
	if m.State() != StateSingle {
		t.Errorf("state after remove = %v, want SINGLE", m.State())
	}
}

func TestReplacePrototype(t *testing.T) {
	a := squarePrototype(t)
	b := squarePrototype(t)
	m := New("test")
	m.AddStyle(NewStyle(StylePlain, a))
	m.AddStyle(NewStyle(StyleThick, a))

	if got := m.ReplacePrototype(a, b); got != 2 {
		t.Fatalf("replaced %d, want 2", got)
	}
	for _, s := range m.Styles() {
		if s.Prototype != b {
			t.Error("style still references the old prototype")
		}
	}
	if got := m.ReplacePrototype(a, b); got != 0 {
		t.Errorf("second replace changed %d styles", got)
	}
}

func TestViewTransform(t *testing.T) {
	tests := []struct {
		name   string
		bounds geom.Rect
		w, h   int
	}{
		{"square", geom.NewRect(geom.Pt(-1, -1), geom.Pt(1, 1)), 100, 100},
		{"wide", geom.NewRect(geom.Pt(0, 0), geom.Pt(4, 1)), 200, 100},
		{"tall", geom.NewRect(geom.Pt(2, -3), geom.Pt(3, 3)), 64, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := geom.FromAff3(ViewTransform(tt.bounds, tt.w, tt.h, 2))
			c := m.TransformPoint(tt.bounds.Center())
			if !c.Near(geom.Pt(float64(tt.w)/2, float64(tt.h)/2), 1e-9) {
				t.Errorf("center maps to %v", c)
			}
			for _, p := range tt.bounds.Corners() {
				q := m.TransformPoint(p)
				if q.X < 2-1e-9 || q.X > float64(tt.w)-2+1e-9 || q.Y < 2-1e-9 || q.Y > float64(tt.h)-2+1e-9 {
					t.Errorf("corner %v maps outside the margin: %v", p, q)
				}
			}
			top := m.TransformPoint(geom.Pt(0, tt.bounds.Max.Y))
			bottom := m.TransformPoint(geom.Pt(0, tt.bounds.Min.Y))
			if top.Y >= bottom.Y {
				t.Error("y axis not flipped")
			}
		})
	}
}

func TestThumbnail(t *testing.T) {
	m := New("test")
	m.AddStyle(NewStyle(StyleOutline, squarePrototype(t)))
	img := m.Thumbnail(64, 48)
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("bounds = %v", b)
	}
	inked := 0
	for y := range 48 {
		for x := range 64 {
			r, g, b, _ := img.At(x, y).RGBA()
			if r < 0xc000 || g < 0xc000 || b < 0xc000 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("thumbnail has no ink")
	}
	if inked == 64*48 {
		t.Error("thumbnail is solid")
	}
}

func TestThumbnailEmpty(t *testing.T) {
	img := New("empty").Thumbnail(8, 8)
	for y := range 8 {
		for x := range 8 {
			r, g, b, a := img.At(x, y).RGBA()
			if math.Min(float64(r), math.Min(float64(g), float64(b))) < 0xfe00 || a < 0xfe00 {
				t.Fatalf("pixel (%d,%d) not white", x, y)
			}
		}
	}
}

func TestCrop(t *testing.T) {
	p := squarePrototype(t)
	m := New("cropped")
	s := NewStyle(StylePlain, p)
	m.AddStyle(s)
	full := m.StyleMap(s)
	if full != p.ProtoMap() {
		t.Fatal("uncropped style map is not the prototype map")
	}

	border := geom.NewRect(geom.Pt(-0.75, -0.75), geom.Pt(0.75, 0.75))
	m.SetCrop(planar.RectRegion{Rect: border})
	got := m.StyleMap(s)
	if got == p.ProtoMap() {
		t.Fatal("cropped style map shares the prototype map")
	}
	b := got.Bounds()
	if b.Min.X < border.Min.X-1e-9 || b.Max.X > border.Max.X+1e-9 ||
		b.Min.Y < border.Min.Y-1e-9 || b.Max.Y > border.Max.Y+1e-9 {
		t.Errorf("cropped bounds %v exceed %v", b, border)
	}
	for _, c := range border.Corners() {
		if _, ok := got.FindVertex(c); !ok {
			t.Errorf("border corner %v not embedded", c)
		}
	}
	if m.Bounds() != border {
		t.Errorf("mosaic bounds = %v, want the border", m.Bounds())
	}
}

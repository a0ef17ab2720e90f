package tiling

import (
	"testing"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/tile"
)

func squareTiling() *Tiling {
	t := New("squares")
	id := t.Arena().Add(tile.NewRegular(4))
	t.Add(t.NewPlacement(id, geom.Identity()))
	t.SetTranslations(geom.Pt(1, 0), geom.Pt(0, 1))
	return t
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Tiling)
		want  bool
	}{
		{"valid", func(*Tiling) {}, true},
		{"no vectors", func(tl *Tiling) { tl.SetTranslations(geom.Point{}, geom.Point{}) }, false},
		{"parallel", func(tl *Tiling) { tl.SetTranslations(geom.Pt(1, 0), geom.Pt(2, 0)) }, false},
		{"singleton without vectors", func(tl *Tiling) {
			tl.SetTranslations(geom.Point{}, geom.Point{})
			tl.SetFillWindow(FillWindow{Singleton: true})
		}, true},
		{"empty window", func(tl *Tiling) { tl.SetFillWindow(FillWindow{MinX: 1, MaxX: 0}) }, false},
		{"no tiles", func(tl *Tiling) {
			for _, p := range tl.InTiling() {
				tl.Remove(p)
			}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := squareTiling()
			tt.setup(tl)
			ok, reason := tl.Validate()
			if ok != tt.want {
				t.Errorf("Validate() = %v (%q), want %v", ok, reason, tt.want)
			}
			if !ok && reason == "" {
				t.Error("invalid tiling without reason")
			}
		})
	}
}

func TestTranslations(t *testing.T) {
	tl := squareTiling()
	tl.SetFillWindow(FillWindow{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1})
	tr := tl.Translations()
	if len(tr) != 9 {
		t.Fatalf("len = %d, want 9", len(tr))
	}
	if got := tr[0].Translation(); !got.Near(geom.Pt(-1, -1), 1e-12) {
		t.Errorf("first = %v, want (-1,-1)", got)
	}
	tl.SetFillWindow(FillWindow{Singleton: true})
	if tr := tl.Translations(); len(tr) != 1 || !tr[0].IsIdentity() {
		t.Errorf("singleton translations = %v", tr)
	}
}

func TestUniqueTiles(t *testing.T) {
	tl := New("mixed")
	a := tl.Arena()
	sq := a.Add(tile.NewRegular(4))
	sq2 := a.Add(tile.NewRegular(4))
	tri := a.Add(tile.NewRegular(3))
	tl.Add(tl.NewPlacement(tri, geom.Identity()))
	tl.Add(tl.NewPlacement(sq, geom.Translate(2, 0)))
	tl.Add(tl.NewPlacement(sq2, geom.Translate(4, 0)))

	u := tl.UniqueTiles()
	if len(u) != 2 {
		t.Fatalf("unique = %d, want 2", len(u))
	}
	if u[0].Tile != tri || u[1].Tile != sq {
		t.Errorf("order = %d,%d want %d,%d", u[0].Tile, u[1].Tile, tri, sq)
	}
	if len(u[1].Placements) != 2 {
		t.Errorf("square placements = %d, want 2", len(u[1].Placements))
	}
}

func TestOutlineMap(t *testing.T) {
	tl := squareTiling()
	tl.SetFillWindow(FillWindow{MinX: 0, MaxX: 1, MinY: 0, MaxY: 0})
	m := tl.OutlineMap()
	if m.NumVertices() != 6 || m.NumEdges() != 7 {
		t.Errorf("outline = %dv %de, want 6v 7e", m.NumVertices(), m.NumEdges())
	}
}

func TestCloneIndependent(t *testing.T) {
	tl := squareTiling()
	c := tl.Clone()
	c.InTiling()[0].Transform = geom.Translate(5, 5)
	c.Arena().Get(0).SetScale(3)
	if !tl.InTiling()[0].Transform.IsIdentity() {
		t.Error("clone shares placements")
	}
	if tl.Arena().Get(0).Scale() != 1 {
		t.Error("clone shares tiles")
	}
	if c.ID != tl.ID {
		t.Error("clone changed identity")
	}
}

func TestNames(t *testing.T) {
	// "e" + combining acute composes to U+00E9.
	tl := New("  Cafe\u0301 ")
	if tl.Name() != "Caf\u00e9" {
		t.Errorf("Name = %q", tl.Name())
	}
	if FoldName("STRASSE") != FoldName("strasse") {
		t.Error("fold differs by case")
	}
	if tl.State() != StateEmpty {
		t.Errorf("state = %v, want empty", tl.State())
	}
	tl.Add(tl.NewPlacement(tl.Arena().Add(tile.NewRegular(3)), geom.Identity()))
	if tl.State() != StateModified {
		t.Errorf("state = %v, want modified", tl.State())
	}
}

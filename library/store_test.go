package library

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/prototype"
	"github.com/gogpu/girih/tile"
	"github.com/gogpu/girih/tiling"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "lib", "designs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func regularPrototype(t *testing.T, name string, n int) *prototype.Prototype {
	t.Helper()
	tl := tiling.New(name)
	id := tl.Arena().Add(tile.NewRegular(n))
	tl.Add(tl.NewPlacement(id, geom.Identity()))
	tl.SetTranslations(geom.Pt(1, 0), geom.Pt(0, 1))
	tl.SetFillWindow(tiling.FillWindow{Singleton: true})
	p, err := prototype.New(tl)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	p := regularPrototype(t, "Squares", 4)

	e, err := s.Save(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	if e.ID != p.Tiling().ID {
		t.Errorf("entry id = %v, want tiling id", e.ID)
	}
	q, err := s.Load(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if q.Tiling().Name() != "Squares" {
		t.Errorf("name = %q", q.Tiling().Name())
	}
	if got, want := q.ProtoMap().NumEdges(), p.ProtoMap().NumEdges(); got != want {
		t.Errorf("edges = %d, want %d", got, want)
	}
}

func TestSaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	p := regularPrototype(t, "first", 6)
	if _, err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	p.Tiling().SetName("second")
	if _, err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "second" {
		t.Errorf("list = %+v, want one entry named second", list)
	}
}

func TestListOrderAndFind(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	names := []string{"Café", "Hexagons", "CAFÉ"}
	for i, name := range names {
		s.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		if _, err := s.Save(ctx, regularPrototype(t, name, 4+i)); err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("list has %d entries, want 3", len(list))
	}
	if !list[0].Updated.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("newest entry updated at %v", list[0].Updated)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"café", 2},
		{"  CAFÉ ", 2},
		{"hexagons", 1},
		{"octagons", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := s.Find(ctx, tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("found %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	e, err := s.Save(ctx, regularPrototype(t, "gone", 3))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, e.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("load after delete: err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete unknown: err = %v, want ErrNotFound", err)
	}
}

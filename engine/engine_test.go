package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gogpu/girih/event"
	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/mosaic"
	"github.com/gogpu/girih/prototype"
	"github.com/gogpu/girih/tile"
	"github.com/gogpu/girih/tiling"
	"github.com/gogpu/girih/tilingmaker"
)

// shapesTiling places one regular polygon for each side count.
func shapesTiling(name string, sides ...int) *tiling.Tiling {
	t := tiling.New(name)
	for i, n := range sides {
		id := t.Arena().Add(tile.NewRegular(n))
		t.Add(t.NewPlacement(id, geom.Translate(float64(3*i), 0)))
	}
	t.SetTranslations(geom.Pt(float64(3*len(sides)), 0), geom.Pt(0, 3))
	t.SetFillWindow(tiling.FillWindow{Singleton: true})
	return t
}

func TestLoadEmpty(t *testing.T) {
	c := New()
	if err := c.Dispatch(event.Event{Type: event.LoadEmpty, Tiling: tiling.New("empty")}); err != nil {
		t.Fatal(err)
	}
	if got := c.PrototypeMaker().State(); got != StateEmpty {
		t.Errorf("prototype state = %v, want EMPTY", got)
	}
	if got := c.MosaicMaker().State(); got != StateEmpty {
		t.Errorf("mosaic state = %v, want EMPTY", got)
	}
}

func TestLoadSingle(t *testing.T) {
	c := New()
	tm := c.TilingMaker()
	tl := tiling.New("squares")
	tm.Load(tl)
	if _, err := tm.AddRegular(4, geom.Identity()); err != nil {
		t.Fatal(err)
	}
	tm.SetTranslations(geom.Pt(1, 0), geom.Pt(0, 1))

	if err := c.Dispatch(event.Event{Type: event.LoadSingle, Tiling: tl}); err != nil {
		t.Fatal(err)
	}
	pm := c.PrototypeMaker()
	if got := pm.State(); got != StateSingle {
		t.Fatalf("prototype state = %v, want SINGLE", got)
	}
	if got := len(pm.Selected().Elements()); got != 1 {
		t.Errorf("elements = %d, want 1", got)
	}
	if pm.Selected().ProtoMap().IsEmpty() {
		t.Error("proto map is empty")
	}
	// Mosaic creation waits for RENDER.
	if c.MosaicMaker().Mosaic() != nil {
		t.Error("mosaic created before RENDER")
	}
	if err := c.Dispatch(event.Event{Type: event.Render}); err != nil {
		t.Fatal(err)
	}
	if got := c.MosaicMaker().State(); got != StateSingle {
		t.Errorf("mosaic state = %v, want SINGLE", got)
	}
}

func TestLoadSingleOneElementPerShape(t *testing.T) {
	c := New()
	tl := shapesTiling("mixed", 4, 3, 4, 6)
	if err := c.Dispatch(event.Event{Type: event.LoadSingle, Tiling: tl}); err != nil {
		t.Fatal(err)
	}
	if got := len(c.PrototypeMaker().Selected().Elements()); got != 3 {
		t.Errorf("elements = %d, want 3", got)
	}
}

func TestEditsPropagate(t *testing.T) {
	c := New()
	tm := c.TilingMaker()
	tl := tiling.New("grow")
	tm.Load(tl)
	if _, err := tm.AddRegular(4, geom.Identity()); err != nil {
		t.Fatal(err)
	}
	if err := c.Dispatch(event.Event{Type: event.LoadSingle, Tiling: tl}); err != nil {
		t.Fatal(err)
	}
	p := c.PrototypeMaker().Selected()
	p.ProtoMap()
	if _, err := tm.AddRegular(3, geom.Translate(4, 0)); err != nil {
		t.Fatal(err)
	}
	if got := len(p.Elements()); got != 2 {
		t.Errorf("elements after edit = %d, want 2", got)
	}
	if !p.IsStale() {
		t.Error("proto map not invalidated by the edit")
	}
	if c.PrototypeMaker().Selected() != p {
		t.Error("edit replaced the prototype")
	}
}

func TestRejectedEditIsUndone(t *testing.T) {
	c := New(WithMaxUniqueTiles(1))
	tm := c.TilingMaker()
	tl := tiling.New("squares")
	tm.Load(tl)
	sq, err := tm.AddRegular(4, geom.Identity())
	if err != nil {
		t.Fatal(err)
	}
	tm.SetFillWindow(tiling.FillWindow{Singleton: true})
	if err := c.Dispatch(event.Event{Type: event.LoadSingle, Tiling: tl}); err != nil {
		t.Fatal(err)
	}
	p := c.PrototypeMaker().Selected()
	before := p.ProtoMap().Bounds()

	_, err = tm.AddRegular(3, geom.Translate(3, 0))
	if !errors.Is(err, prototype.ErrTooManyUniqueTiles) || !errors.Is(err, tilingmaker.ErrRejected) {
		t.Fatalf("err = %v, want a rejected edit over the unique tile limit", err)
	}
	if tl.NumPlaced() != 1 || len(tm.All()) != 1 || tl.Arena().Len() != 1 {
		t.Errorf("rejected tile kept: placed=%d held=%d arena=%d", tl.NumPlaced(), len(tm.All()), tl.Arena().Len())
	}
	if got := len(p.Elements()); got != 1 {
		t.Errorf("elements = %d, want 1", got)
	}

	if err := tm.Transform(sq, geom.Translate(5, 0)); err != nil {
		t.Fatalf("edit after a rejected one: %v", err)
	}
	if !p.IsStale() {
		t.Fatal("proto map not invalidated by the move")
	}
	after := p.ProtoMap().Bounds()
	if math.Abs(after.Min.X-before.Min.X-5) > 1e-9 || math.Abs(after.Min.Y-before.Min.Y) > 1e-9 {
		t.Errorf("bounds after move = %v, want %v shifted by (5,0)", after, before)
	}
}

func TestEditWhileBusyIsUndone(t *testing.T) {
	c := New()
	tm := c.TilingMaker()
	tl := shapesTiling("squares", 4)
	if err := c.Dispatch(event.Event{Type: event.LoadSingle, Tiling: tl}); err != nil {
		t.Fatal(err)
	}
	sq := tl.InTiling()[0]
	want := sq.Transform

	c.busy.Store(true)
	err := tm.Transform(sq, geom.Translate(1, 1))
	c.busy.Store(false)
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
	if sq.Transform != want {
		t.Errorf("transform = %v after a rejected edit, want %v", sq.Transform, want)
	}
}

func TestMultiRequiresChoice(t *testing.T) {
	c := New()
	a := shapesTiling("a", 4)
	b := shapesTiling("b", 6)
	if err := c.Dispatch(event.Event{Type: event.LoadSingle, Tiling: a}); err != nil {
		t.Fatal(err)
	}
	if err := c.Dispatch(event.Event{Type: event.LoadMulti, Tiling: b}); err != nil {
		t.Fatal(err)
	}
	pm := c.PrototypeMaker()
	if got := pm.State(); got != StateMulti {
		t.Fatalf("state = %v, want MULTI", got)
	}
	before := pm.Prototypes()

	err := c.Dispatch(event.Event{Type: event.ReloadMulti, Tiling: a})
	if !errors.Is(err, ErrChoiceRequired) {
		t.Fatalf("err = %v, want ErrChoiceRequired", err)
	}
	if got := len(pm.Prototypes()); got != len(before) {
		t.Errorf("prototypes = %d after refused reload, want %d", got, len(before))
	}

	if err := c.Dispatch(event.Event{Type: event.ReloadMulti, Tiling: a, Choice: event.ChoiceReplaceTiling}); err != nil {
		t.Fatal(err)
	}
	if got := pm.Prototypes(); len(got) != 2 || got[0] != before[0] {
		t.Error("replace-tiling did not reuse the prototype decorating the tiling")
	}

	if err := c.Dispatch(event.Event{Type: event.ReloadMulti, Tiling: a, Choice: event.ChoiceCreatePrototype}); err != nil {
		t.Fatal(err)
	}
	if got := len(pm.Prototypes()); got != 3 {
		t.Errorf("prototypes = %d after create-prototype, want 3", got)
	}
}

func TestSelectScopesMotifEdits(t *testing.T) {
	c := New()
	if err := c.Dispatch(event.Event{Type: event.LoadSingle, Tiling: shapesTiling("a", 4)}); err != nil {
		t.Fatal(err)
	}
	if err := c.Dispatch(event.Event{Type: event.LoadMulti, Tiling: shapesTiling("b", 6)}); err != nil {
		t.Fatal(err)
	}
	pm := c.PrototypeMaker()
	protos := pm.Prototypes()
	if len(protos) != 2 {
		t.Fatalf("prototypes = %d, want 2", len(protos))
	}
	first, second := protos[0], protos[1]

	foreign, err := prototype.New(shapesTiling("c", 3))
	if err != nil {
		t.Fatal(err)
	}
	if !pm.Select(first) {
		t.Fatal("Select refused a held prototype")
	}
	if pm.Select(foreign) {
		t.Error("Select accepted a prototype the maker does not hold")
	}
	if pm.Selected() != first {
		t.Fatal("refused Select changed the selection")
	}

	first.ProtoMap()
	second.ProtoMap()
	if err := c.Dispatch(event.Event{Type: event.MotifChanged}); err != nil {
		t.Fatal(err)
	}
	if !first.IsStale() {
		t.Error("selected prototype kept its map after a motif edit")
	}
	if second.IsStale() {
		t.Error("unselected prototype was reset by a motif edit")
	}
}

func TestTooManyUniqueTiles(t *testing.T) {
	c := New(WithMaxUniqueTiles(2))
	small := shapesTiling("small", 4)
	if err := c.Dispatch(event.Event{Type: event.LoadSingle, Tiling: small}); err != nil {
		t.Fatal(err)
	}
	p := c.PrototypeMaker().Selected()

	tests := []struct {
		name string
		typ  event.Type
	}{
		{"load", event.LoadSingle},
		{"reload", event.ReloadSingle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			big := shapesTiling("big", 3, 4, 6)
			err := c.Dispatch(event.Event{Type: tt.typ, Tiling: big})
			if !errors.Is(err, prototype.ErrTooManyUniqueTiles) {
				t.Fatalf("err = %v, want ErrTooManyUniqueTiles", err)
			}
			pm := c.PrototypeMaker()
			if pm.Selected() != p || p.Tiling() != small {
				t.Error("prototype changed after a rejected load")
			}
			if got := c.TilingMaker().Tiling(); got != small {
				t.Errorf("tiling maker edits %q after a rejected load, want %q", got.Name(), small.Name())
			}
			if got := len(p.Elements()); got != 1 {
				t.Errorf("elements = %d, want 1", got)
			}
		})
	}
}

func TestMosaicFollowsLoads(t *testing.T) {
	c := New()
	a := shapesTiling("a", 4)
	b := shapesTiling("b", 6)
	mm := c.MosaicMaker()

	steps := []struct {
		ev   event.Event
		want State
	}{
		{event.Event{Type: event.LoadSingle, Tiling: a}, StateEmpty},
		{event.Event{Type: event.Render}, StateSingle},
		{event.Event{Type: event.LoadMulti, Tiling: b}, StateMulti},
		{event.Event{Type: event.LoadSingle, Tiling: b}, StateSingle},
		{event.Event{Type: event.LoadEmpty}, StateEmpty},
	}
	for i, s := range steps {
		if err := c.Dispatch(s.ev); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got := mm.State(); got != s.want {
			t.Errorf("step %d (%v): mosaic state = %v, want %v", i, s.ev.Type, got, s.want)
		}
	}
}

func TestMosaicStylesFollowLoadSingle(t *testing.T) {
	c := New()
	if err := c.Dispatch(event.Event{Type: event.LoadSingle, Tiling: shapesTiling("a", 4)}); err != nil {
		t.Fatal(err)
	}
	if err := c.Dispatch(event.Event{Type: event.Render}); err != nil {
		t.Fatal(err)
	}
	if err := c.Dispatch(event.Event{Type: event.LoadSingle, Tiling: shapesTiling("b", 6)}); err != nil {
		t.Fatal(err)
	}
	want := c.PrototypeMaker().Selected()
	for _, s := range c.MosaicMaker().Mosaic().Styles() {
		if s.Prototype != want {
			t.Error("style still draws the previous prototype")
		}
	}
	if !c.MosaicMaker().IsStale() {
		t.Error("mosaic not marked stale")
	}
}

func TestSetMosaic(t *testing.T) {
	c := New()
	a := shapesTiling("a", 4)
	if err := c.Dispatch(event.Event{Type: event.LoadSingle, Tiling: a}); err != nil {
		t.Fatal(err)
	}
	mm := c.MosaicMaker()
	if mm.Mosaic() != nil {
		t.Fatal("mosaic exists before the first render")
	}

	saved := mosaic.New("saved")
	saved.AddStyle(mosaic.NewStyle(mosaic.StylePlain, c.PrototypeMaker().Selected()))
	mm.SetMosaic(saved)
	if mm.Mosaic() != saved {
		t.Fatal("SetMosaic did not install the mosaic")
	}
	if got := mm.State(); got != StateSingle {
		t.Errorf("state = %v, want SINGLE", got)
	}
	if !mm.IsStale() {
		t.Error("installed mosaic not marked stale")
	}

	if err := c.Dispatch(event.Event{Type: event.LoadSingle, Tiling: shapesTiling("b", 6)}); err != nil {
		t.Fatal(err)
	}
	want := c.PrototypeMaker().Selected()
	for _, s := range saved.Styles() {
		if s.Prototype != want {
			t.Error("installed mosaic does not follow later loads")
		}
	}
}

func TestBusy(t *testing.T) {
	c := New()
	c.busy.Store(true)
	if err := c.Dispatch(event.Event{Type: event.Render}); !errors.Is(err, ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}
	c.busy.Store(false)
	if err := c.Dispatch(event.Event{Type: event.Render}); err != nil {
		t.Errorf("err = %v after clearing busy", err)
	}
}

func TestUnknownEvent(t *testing.T) {
	c := New()
	if err := c.Dispatch(event.Event{Type: event.Type(99)}); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("err = %v, want ErrUnknownEvent", err)
	}
}

func TestCycler(t *testing.T) {
	c := New()
	seq := Sequence(
		event.Event{Type: event.LoadSingle, Tiling: shapesTiling("a", 4)},
		event.Event{Type: event.LoadMulti, Tiling: shapesTiling("b", 6)},
		event.Event{Type: event.Render},
	)
	cy := NewCycler(c, time.Millisecond, seq)
	var errs []error
	cy.OnDone(func(_ event.Event, err error) { errs = append(errs, err) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	n, err := cy.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 || len(errs) != 3 {
		t.Fatalf("dispatched %d (%d callbacks), want 3", n, len(errs))
	}
	for i, err := range errs {
		if err != nil {
			t.Errorf("event %d: %v", i, err)
		}
	}
	if got := c.MosaicMaker().State(); got != StateMulti {
		t.Errorf("mosaic state = %v, want MULTI", got)
	}
}

func TestCyclerCancel(t *testing.T) {
	c := New()
	c.busy.Store(true)
	cy := NewCycler(c, time.Millisecond, Sequence(event.Event{Type: event.Render}))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	t.Cleanup(cancel)
	n, err := cy.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	if n != 0 {
		t.Errorf("dispatched %d while busy", n)
	}
}

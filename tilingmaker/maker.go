// Package tilingmaker is the editing engine for tilings. It keeps the
// full set of placed tiles, of which the tiling's own placements are a
// subset, generates translated copies on demand, classifies overlaps, and
// reports every edit that changes derived geometry to an event sink.
package tilingmaker

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/girih/event"
	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/tile"
	"github.com/gogpu/girih/tiling"
)

var (
	// ErrNoTiling is returned by edits made before Load.
	ErrNoTiling = errors.New("tilingmaker: no tiling loaded")

	// ErrNotPlaced is returned for a placement the maker does not hold.
	ErrNotPlaced = errors.New("tilingmaker: placement not held")

	// ErrGenerated is returned when editing a copy made by a fill.
	ErrGenerated = errors.New("tilingmaker: placement generated by fill")

	// ErrRejected wraps the sink's error when an edit is refused
	// downstream. The edit has been undone.
	ErrRejected = errors.New("tilingmaker: edit rejected")
)

// Maker edits one tiling at a time.
type Maker struct {
	tiling *tiling.Tiling
	all    []*tile.PlacedTile
	filled []*tile.PlacedTile

	vectors [2]geom.Point
	next    int // slot SetVector writes next

	status map[*tile.PlacedTile]Status
	sink   event.Sink
}

// New returns a maker with no tiling loaded.
func New() *Maker {
	return &Maker{sink: event.Discard, status: make(map[*tile.PlacedTile]Status)}
}

// SetSink installs the receiver of edit events. nil discards them. An
// error from the sink undoes the edit, which then fails with ErrRejected.
func (m *Maker) SetSink(s event.Sink) {
	if s == nil {
		s = event.Discard
	}
	m.sink = s
}

// Load makes t the edited tiling. No event is emitted; loading is
// announced by the caller.
func (m *Maker) Load(t *tiling.Tiling) {
	m.tiling = t
	m.all = t.InTiling()
	m.filled = nil
	m.vectors[0], m.vectors[1] = t.Vectors()
	m.next = 0
	m.recomputeStatus()
}

// Tiling returns the edited tiling, or nil.
func (m *Maker) Tiling() *tiling.Tiling {
	return m.tiling
}

// All returns every placement held, tiling and scratch placements and
// fill copies alike.
func (m *Maker) All() []*tile.PlacedTile {
	return slices.Clone(m.all)
}

// InTiling returns the placements that belong to the tiling.
func (m *Maker) InTiling() []*tile.PlacedTile {
	if m.tiling == nil {
		return nil
	}
	return m.tiling.InTiling()
}

// Add places t with transform xf and includes it in the tiling. The tile
// is stored in a new arena slot.
func (m *Maker) Add(t *tile.Tile, xf geom.Matrix) (*tile.PlacedTile, error) {
	if m.tiling == nil {
		return nil, ErrNoTiling
	}
	before := m.save()
	return m.place(before, m.tiling.Arena().Add(t), xf)
}

// AddRegular places a regular n-gon, sharing the arena tile with earlier
// regular n-gons of the same orientation.
func (m *Maker) AddRegular(n int, xf geom.Matrix) (*tile.PlacedTile, error) {
	if m.tiling == nil {
		return nil, ErrNoTiling
	}
	if n < 3 {
		return nil, fmt.Errorf("tilingmaker: regular polygon with %d sides", n)
	}
	before := m.save()
	t := tile.NewRegular(n)
	fp := t.Fingerprint()
	arena := m.tiling.Arena()
	for _, id := range arena.IDs() {
		if have := arena.Get(id); have.IsRegular() && have.Fingerprint() == fp {
			return m.place(before, id, xf)
		}
	}
	return m.place(before, arena.Add(t), xf)
}

func (m *Maker) place(before saved, id tile.ID, xf geom.Matrix) (*tile.PlacedTile, error) {
	p := m.tiling.NewPlacement(id, xf)
	m.tiling.Add(p)
	m.insertHeld(p)
	if err := m.changed(before, event.TilingChanged, id); err != nil {
		return nil, err
	}
	return p, nil
}

// insertHeld adds p before the fill copies so that clearing a fill
// leaves the held list exactly as before.
func (m *Maker) insertHeld(p *tile.PlacedTile) {
	i := len(m.all) - len(m.filled)
	m.all = slices.Insert(m.all, i, p)
}

// Delete removes p from the maker and the tiling.
func (m *Maker) Delete(p *tile.PlacedTile) error {
	if err := m.check(p); err != nil {
		return err
	}
	before := m.save()
	m.all = slices.DeleteFunc(m.all, func(q *tile.PlacedTile) bool { return q == p })
	m.tiling.Remove(p)
	return m.changed(before, event.TilingChanged, p.Tile)
}

// Duplicate copies p beside itself, sharing its tile. The copy is in the
// tiling if p is.
func (m *Maker) Duplicate(p *tile.PlacedTile) (*tile.PlacedTile, error) {
	if err := m.check(p); err != nil {
		return nil, err
	}
	before := m.save()
	b := p.WorldPolygon(m.tiling.Arena()).Bounds()
	c := m.tiling.NewPlacement(p.Tile, geom.Translate(b.Width(), 0).Multiply(p.Transform))
	if m.tiling.Contains(p) {
		m.tiling.Add(c)
	}
	m.insertHeld(c)
	if err := m.changed(before, event.TilingChanged, c.Tile); err != nil {
		return nil, err
	}
	return c, nil
}

// ToggleInclusion moves p into or out of the tiling. It stays held
// either way.
func (m *Maker) ToggleInclusion(p *tile.PlacedTile) error {
	if err := m.check(p); err != nil {
		return err
	}
	before := m.save()
	if !m.tiling.Remove(p) {
		m.tiling.Add(p)
	}
	return m.changed(before, event.TilingChanged, p.Tile)
}

// Transform applies xf after p's current transform.
func (m *Maker) Transform(p *tile.PlacedTile, xf geom.Matrix) error {
	if err := m.check(p); err != nil {
		return err
	}
	before := m.save()
	p.Transform = xf.Multiply(p.Transform)
	m.tiling.SetModified()
	return m.changed(before, event.TilingChanged, p.Tile)
}

// Uniquify gives p its own copy of its tile so that later shape edits
// leave other placements alone. The shape is unchanged, so no event is
// emitted.
func (m *Maker) Uniquify(p *tile.PlacedTile) (tile.ID, error) {
	if err := m.check(p); err != nil {
		return tile.NoID, err
	}
	id := m.tiling.Arena().Clone(p.Tile)
	p.Tile = id
	return id, nil
}

// SetTileShape replaces the tile p refers to. Every placement sharing
// that tile changes; call Uniquify first to restrict the edit to p.
func (m *Maker) SetTileShape(p *tile.PlacedTile, t *tile.Tile) error {
	if err := m.check(p); err != nil {
		return err
	}
	before := m.save()
	m.tiling.Arena().Replace(p.Tile, t)
	m.tiling.SetModified()
	return m.changed(before, event.TileEdgesChanged, p.Tile)
}

// EditTile mutates the tile p refers to in place, with the same sharing
// rule as SetTileShape. If edit fails the tile is restored.
func (m *Maker) EditTile(p *tile.PlacedTile, edit func(*tile.Tile) error) error {
	if err := m.check(p); err != nil {
		return err
	}
	before := m.save()
	if err := edit(m.tiling.Arena().Get(p.Tile)); err != nil {
		m.restore(before)
		return err
	}
	m.tiling.SetModified()
	return m.changed(before, event.TileEdgesChanged, p.Tile)
}

// check verifies that p is an editable placement.
func (m *Maker) check(p *tile.PlacedTile) error {
	if m.tiling == nil {
		return ErrNoTiling
	}
	if slices.Contains(m.filled, p) {
		return ErrGenerated
	}
	if !slices.Contains(m.all, p) {
		return ErrNotPlaced
	}
	return nil
}

// Validate reports whether the tiling can be filled or exported.
func (m *Maker) Validate() (bool, string) {
	if m.tiling == nil {
		return false, "no tiling loaded"
	}
	return m.tiling.Validate()
}

// Export returns a copy of the tiling ready to be persisted, or false
// and the reason it is not valid.
func (m *Maker) Export() (*tiling.Tiling, bool, string) {
	if ok, reason := m.Validate(); !ok {
		return nil, false, reason
	}
	return m.tiling.Clone(), true, ""
}

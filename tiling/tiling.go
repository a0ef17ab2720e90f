// Package tiling holds the tiling model: a set of placed tiles repeated
// along two translation vectors over a fill window.
package tiling

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/tile"
)

// State tracks whether a tiling has unsaved edits.
type State int

const (
	// StateEmpty is a tiling with no content.
	StateEmpty State = iota
	// StateLoaded is a tiling as loaded or last saved.
	StateLoaded
	// StateModified is a tiling edited since it was loaded.
	StateModified
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateModified:
		return "modified"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// FillWindow is the inclusive range of translation multiples over which
// the tiling is repeated. A singleton tiling is never repeated.
type FillWindow struct {
	MinX, MaxX int
	MinY, MaxY int
	Singleton  bool
}

// DefaultFillWindow is the window a new tiling starts with.
var DefaultFillWindow = FillWindow{MinX: -2, MaxX: 2, MinY: -2, MaxY: 2}

// Count returns the number of translations in the window.
func (w FillWindow) Count() int {
	if w.Singleton {
		return 1
	}
	nx, ny := w.MaxX-w.MinX+1, w.MaxY-w.MinY+1
	if nx <= 0 || ny <= 0 {
		return 0
	}
	return nx * ny
}

// Tiling is a repeat unit of placed tiles plus the translations that
// repeat it. The zero value is not usable; call New.
type Tiling struct {
	ID          uuid.UUID
	Description string
	Author      string

	name   string
	arena  *tile.Arena
	placed []*tile.PlacedTile
	t1, t2 geom.Point
	window FillWindow
	state  State
	nextID uint64
}

// New returns an empty tiling with a fresh identity.
func New(name string) *Tiling {
	return &Tiling{
		ID:     uuid.New(),
		name:   NormalizeName(name),
		arena:  tile.NewArena(),
		window: DefaultFillWindow,
	}
}

// NormalizeName trims and NFC-normalises a tiling name.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// FoldName returns the case-folded form used to compare names.
func FoldName(name string) string {
	return cases.Fold().String(NormalizeName(name))
}

// Name returns the tiling name.
func (t *Tiling) Name() string {
	return t.name
}

// SetName renames the tiling.
func (t *Tiling) SetName(name string) {
	t.name = NormalizeName(name)
}

// Arena returns the tile arena.
func (t *Tiling) Arena() *tile.Arena {
	return t.arena
}

// Tile returns the arena tile a placement refers to.
func (t *Tiling) Tile(p *tile.PlacedTile) *tile.Tile {
	return t.arena.Get(p.Tile)
}

// NewPlacement returns a placement with a fresh ID. It is not added to
// the tiling.
func (t *Tiling) NewPlacement(id tile.ID, m geom.Matrix) *tile.PlacedTile {
	t.nextID++
	return &tile.PlacedTile{ID: t.nextID, Tile: id, Transform: m}
}

// Add puts p in the tiling. Adding a placement twice is a no-op.
func (t *Tiling) Add(p *tile.PlacedTile) {
	if t.Contains(p) {
		return
	}
	if p.ID > t.nextID {
		t.nextID = p.ID
	}
	t.placed = append(t.placed, p)
	t.SetModified()
}

// Remove takes p out of the tiling and reports whether it was present.
func (t *Tiling) Remove(p *tile.PlacedTile) bool {
	i := slices.Index(t.placed, p)
	if i < 0 {
		return false
	}
	t.placed = slices.Delete(t.placed, i, i+1)
	t.SetModified()
	return true
}

// Contains reports whether p is in the tiling.
func (t *Tiling) Contains(p *tile.PlacedTile) bool {
	return slices.Contains(t.placed, p)
}

// InTiling returns the placed tiles in insertion order.
func (t *Tiling) InTiling() []*tile.PlacedTile {
	return slices.Clone(t.placed)
}

// NumPlaced returns the number of placed tiles.
func (t *Tiling) NumPlaced() int {
	return len(t.placed)
}

// Vectors returns the translation vectors.
func (t *Tiling) Vectors() (t1, t2 geom.Point) {
	return t.t1, t.t2
}

// SetTranslations sets both translation vectors.
func (t *Tiling) SetTranslations(t1, t2 geom.Point) {
	t.t1, t.t2 = t1, t2
	t.SetModified()
}

// FillWindow returns the fill window.
func (t *Tiling) FillWindow() FillWindow {
	return t.window
}

// SetFillWindow sets the fill window.
func (t *Tiling) SetFillWindow(w FillWindow) {
	t.window = w
	t.SetModified()
}

// Translations returns one matrix per cell of the fill window, or only
// the identity for a singleton tiling.
func (t *Tiling) Translations() []geom.Matrix {
	if t.window.Singleton {
		return []geom.Matrix{geom.Identity()}
	}
	out := make([]geom.Matrix, 0, t.window.Count())
	for y := t.window.MinY; y <= t.window.MaxY; y++ {
		for x := t.window.MinX; x <= t.window.MaxX; x++ {
			v := t.t1.Mul(float64(x)).Add(t.t2.Mul(float64(y)))
			out = append(out, geom.TranslateBy(v))
		}
	}
	return out
}

// Validate reports whether the tiling can be filled or exported, with a
// reason when it cannot.
func (t *Tiling) Validate() (bool, string) {
	if len(t.placed) == 0 {
		return false, "tiling has no tiles"
	}
	for _, p := range t.placed {
		if t.arena.Get(p.Tile) == nil {
			return false, fmt.Sprintf("placement %d refers to missing tile %d", p.ID, p.Tile)
		}
	}
	if t.window.Singleton {
		return true, ""
	}
	if t.t1.Length() < geom.Tolerance || t.t2.Length() < geom.Tolerance {
		return false, "translation vectors not set"
	}
	if math.Abs(t.t1.Normalize().Cross(t.t2.Normalize())) < geom.NearTolerance {
		return false, "translation vectors are parallel"
	}
	if t.window.Count() == 0 {
		return false, "fill window is empty"
	}
	return true, ""
}

// UniqueTile is one congruence class of in-tiling tiles.
type UniqueTile struct {
	// Tile is the first-seen arena tile of the class.
	Tile       tile.ID
	Key        string
	Placements []*tile.PlacedTile
}

// UniqueTiles groups the in-tiling placements by tile congruence, in
// first-seen order.
func (t *Tiling) UniqueTiles() []UniqueTile {
	var out []UniqueTile
	index := make(map[string]int)
	for _, p := range t.placed {
		tl := t.arena.Get(p.Tile)
		if tl == nil {
			continue
		}
		key := tl.Key()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, UniqueTile{Tile: p.Tile, Key: key})
		}
		out[i].Placements = append(out[i].Placements, p)
	}
	return out
}

// OutlineMap returns the outlines of every placed tile over the fill
// window as a planar map.
func (t *Tiling) OutlineMap() *planar.Map {
	m := planar.New()
	for _, tr := range t.Translations() {
		for _, p := range t.placed {
			for _, s := range p.WorldEdges(t.arena) {
				m.InsertSegment(s.Transform(tr))
			}
		}
	}
	return m
}

// State returns the edit state.
func (t *Tiling) State() State {
	return t.state
}

// SetModified marks the tiling edited.
func (t *Tiling) SetModified() {
	t.state = StateModified
}

// SetLoaded marks the tiling as matching its stored form.
func (t *Tiling) SetLoaded() {
	t.state = StateLoaded
}

// Clone returns a deep copy with the same identity. Placements are
// copied and keep their IDs.
func (t *Tiling) Clone() *Tiling {
	c := *t
	c.arena = t.arena.Copy()
	c.placed = make([]*tile.PlacedTile, len(t.placed))
	for i, p := range t.placed {
		c.placed[i] = p.Clone()
	}
	return &c
}

// Snapshot is the editable state of a tiling, saved before an edit so
// that a rejected edit can be undone in place.
type Snapshot struct {
	arena  tile.ArenaState
	placed []*tile.PlacedTile
	t1, t2 geom.Point
	window FillWindow
	state  State
	nextID uint64
}

// Snapshot saves the tiling's placements, vectors, window and tiles.
// Placement transforms are not saved; callers editing them keep their
// own copy.
func (t *Tiling) Snapshot() Snapshot {
	return Snapshot{
		arena:  t.arena.Save(),
		placed: slices.Clone(t.placed),
		t1:     t.t1,
		t2:     t.t2,
		window: t.window,
		state:  t.state,
		nextID: t.nextID,
	}
}

// Restore returns the tiling to s. The tiling keeps its identity and
// arena, so holders of either see the restored state.
func (t *Tiling) Restore(s Snapshot) {
	t.arena.Restore(s.arena)
	t.placed = slices.Clone(s.placed)
	t.t1, t.t2 = s.t1, s.t2
	t.window = s.window
	t.state = s.state
	t.nextID = s.nextID
}

// String describes the tiling for logs.
func (t *Tiling) String() string {
	return fmt.Sprintf("tiling %q{tiles=%d t1=%v t2=%v %s}", t.name, len(t.placed), t.t1, t.t2, t.state)
}

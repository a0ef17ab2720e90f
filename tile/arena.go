package tile

import (
	"slices"

	"github.com/gogpu/girih/geom"
)

// ID indexes a tile in an Arena.
type ID int

// NoID is the zero-value sentinel for an absent tile.
const NoID ID = -1

// Arena owns tiles. Placements refer to tiles by ID, so any number of
// placements share one shape until one of them is uniquified.
type Arena struct {
	tiles []*Tile
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Add stores t in a new slot.
func (a *Arena) Add(t *Tile) ID {
	a.tiles = append(a.tiles, t)
	return ID(len(a.tiles) - 1)
}

// Intern returns the ID of a congruent tile already in the arena, or
// adds t.
func (a *Arena) Intern(t *Tile) ID {
	key := t.Key()
	for i, have := range a.tiles {
		if have != nil && have.Sides() == t.Sides() && have.Key() == key {
			return ID(i)
		}
	}
	return a.Add(t)
}

// Get returns the tile for id, or nil.
func (a *Arena) Get(id ID) *Tile {
	if id < 0 || int(id) >= len(a.tiles) {
		return nil
	}
	return a.tiles[id]
}

// Replace swaps the tile stored at id. It reports false for an unknown id.
func (a *Arena) Replace(id ID, t *Tile) bool {
	if a.Get(id) == nil {
		return false
	}
	a.tiles[id] = t
	return true
}

// Clone copies the tile at id into a new slot and returns the new ID.
// The original slot is untouched.
func (a *Arena) Clone(id ID) ID {
	t := a.Get(id)
	if t == nil {
		return NoID
	}
	return a.Add(t.Clone())
}

// Len returns the number of slots.
func (a *Arena) Len() int {
	return len(a.tiles)
}

// IDs returns every occupied slot in order.
func (a *Arena) IDs() []ID {
	ids := make([]ID, 0, len(a.tiles))
	for i, t := range a.tiles {
		if t != nil {
			ids = append(ids, ID(i))
		}
	}
	return ids
}

// Copy returns a deep copy with the same IDs.
func (a *Arena) Copy() *Arena {
	c := &Arena{tiles: make([]*Tile, len(a.tiles))}
	for i, t := range a.tiles {
		if t != nil {
			c.tiles[i] = t.Clone()
		}
	}
	return c
}

// ArenaState is the content of an arena saved by Save.
type ArenaState struct {
	tiles  []*Tile
	copies []Tile
}

// Save records the slots and the geometry of every tile.
func (a *Arena) Save() ArenaState {
	s := ArenaState{tiles: slices.Clone(a.tiles), copies: make([]Tile, len(a.tiles))}
	for i, t := range a.tiles {
		if t != nil {
			s.copies[i] = *t.Clone()
		}
	}
	return s
}

// Restore puts back the slots and geometry recorded by s. Tiles edited in
// place since keep their identity, so references to them stay valid.
func (a *Arena) Restore(s ArenaState) {
	a.tiles = slices.Clone(s.tiles)
	for i, t := range a.tiles {
		if t != nil {
			*t = s.copies[i]
			t.base = slices.Clone(s.copies[i].base)
		}
	}
}

// PlacedTile positions an arena tile in tiling space. The tile is
// referenced by index; PlacedTile never owns it.
type PlacedTile struct {
	// ID distinguishes placements; it is assigned by the owner.
	ID        uint64
	Tile      ID
	Transform geom.Matrix
}

// Clone returns a copy of the placement sharing the same tile.
func (p *PlacedTile) Clone() *PlacedTile {
	c := *p
	return &c
}

// Placement returns the full transform from base tile space to tiling
// space, including the tile's own rotation and scale.
func (p *PlacedTile) Placement(a *Arena) geom.Matrix {
	t := a.Get(p.Tile)
	if t == nil {
		return p.Transform
	}
	return p.Transform.Multiply(t.Transform())
}

// WorldPolygon returns the corners in tiling space.
func (p *PlacedTile) WorldPolygon(a *Arena) geom.Polygon {
	t := a.Get(p.Tile)
	if t == nil {
		return nil
	}
	return t.Polygon().Transform(p.Transform)
}

// WorldEdges returns the edges in tiling space.
func (p *PlacedTile) WorldEdges(a *Arena) geom.EdgePoly {
	t := a.Get(p.Tile)
	if t == nil {
		return nil
	}
	return t.EdgePoly().Transform(p.Transform)
}

// WorldOutline returns the sampled outline in tiling space.
func (p *PlacedTile) WorldOutline(a *Arena) geom.Polygon {
	t := a.Get(p.Tile)
	if t == nil {
		return nil
	}
	return t.Outline().Transform(p.Transform)
}

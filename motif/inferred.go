package motif

import (
	"fmt"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/tile"
)

// Contact is a point on a tile edge where a neighbour's motif meets the
// tile, with the direction the line continues into the tile. Both are in
// the tile's own space.
type Contact struct {
	Position  geom.Point
	Direction geom.Point
}

// ContactSource supplies contacts for a tile from its neighbours in a
// tiling.
type ContactSource interface {
	Contacts(t *tile.Tile) ([]Contact, error)
}

// Inferred continues the lines of neighbouring motifs into a tile until
// they meet. It needs a ContactSource, which a prototype installs; without
// one, or without adjacency, the build yields an empty map.
type Inferred struct {
	Scale  float64
	Source ContactSource
}

// Kind implements Motif.
func (in *Inferred) Kind() Kind { return KindInferred }

// BuildMap implements Motif.
func (in *Inferred) BuildMap(t *tile.Tile) *planar.Map {
	return buildSafely(KindInferred, t, func() (*planar.Map, error) {
		if in.Source == nil {
			return nil, fmt.Errorf("%w: no contact source", ErrNoContacts)
		}
		contacts, err := in.Source.Contacts(t)
		if err != nil {
			return nil, fmt.Errorf("motif: infer contacts: %w", err)
		}
		if len(contacts) == 0 {
			return nil, ErrNoContacts
		}
		xf := aboutCenter(t.Center(), in.Scale, 0)
		for i := range contacts {
			contacts[i].Position = xf.TransformPoint(contacts[i].Position)
		}
		return rayMap(contacts, t.Outline(), 1, true), nil
	})
}

// Record implements Motif.
func (in *Inferred) Record() Record {
	return Record{Kind: KindInferred, Scale: in.Scale}
}

// Clone implements Motif. The clone shares the contact source.
func (in *Inferred) Clone() Motif {
	c := *in
	return &c
}

package motif

import (
	"fmt"
	"math"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/tile"
)

// Connected turns a radial child a half step so its tips meet the tile
// corners instead of the edge midpoints, then crops it to the tile.
type Connected struct {
	// Child is a *Star or *Rosette.
	Child Motif
}

// Kind implements Motif.
func (c *Connected) Kind() Kind { return KindConnected }

// BuildMap implements Motif.
func (c *Connected) BuildMap(t *tile.Tile) *planar.Map {
	return buildSafely(KindConnected, t, func() (*planar.Map, error) {
		var rad Radial
		var unit func(int) ([][]geom.Point, error)
		switch ch := c.Child.(type) {
		case *Star:
			rad, unit = ch.Radial, ch.unit
		case *Rosette:
			rad, unit = ch.Radial, ch.unit
		default:
			return nil, fmt.Errorf("%w: connected child %T", ErrBadParameters, c.Child)
		}
		n := rad.order(t)
		if n < 3 {
			return nil, fmt.Errorf("%w: order %d", ErrBadParameters, n)
		}
		lines, err := unit(n)
		if err != nil {
			return nil, err
		}
		m, err := replicate(polylineMap(lines), n)
		if err != nil {
			return nil, err
		}
		half := math.Pi / float64(n)
		k := 1 / math.Cos(half)
		m.Transform(geom.Rotate(half).Multiply(geom.Scale(k, k)))
		m.Crop(planar.PolygonRegion{Polygon: rad.unitTile(t)})
		m.Transform(rad.toTile(t))
		return m, nil
	})
}

// Record implements Motif.
func (c *Connected) Record() Record {
	var r Record
	if c.Child != nil {
		r = c.Child.Record()
		r.Child = r.Kind
	}
	r.Kind = KindConnected
	return r
}

// Clone implements Motif.
func (c *Connected) Clone() Motif {
	out := &Connected{}
	if c.Child != nil {
		out.Child = c.Child.Clone()
	}
	return out
}

// Package prototype binds a motif to every distinct tile shape of a tiling
// and assembles the motif maps of all placements into one map.
//
// Each distinct shape, up to rotation and translation, has exactly one
// DesignElement that owns its motif. The assembled map is rebuilt lazily:
// edits call ResetProtoMap and the next ProtoMap call rebuilds.
package prototype

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/girih"
	"github.com/gogpu/girih/internal/cache"
	"github.com/gogpu/girih/motif"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/tile"
	"github.com/gogpu/girih/tiling"
)

var (
	// ErrTooManyUniqueTiles is returned when a tiling has more distinct
	// tile shapes than the prototype accepts. The prototype is unchanged.
	ErrTooManyUniqueTiles = errors.New("prototype: too many unique tiles")

	// ErrNoTiling is returned when a prototype is given a nil tiling.
	ErrNoTiling = errors.New("prototype: nil tiling")

	// ErrUnknownTile is returned for a tile that has no design element.
	ErrUnknownTile = errors.New("prototype: unknown tile")
)

// DesignElement binds a motif to one tile shape.
type DesignElement struct {
	// TileID is the arena slot of the first placement with this shape.
	TileID tile.ID
	Tile   *tile.Tile
	Motif  motif.Motif

	key string
}

// Key returns the congruence key of the element's shape.
func (e *DesignElement) Key() string {
	return e.key
}

// Prototype is a tiling with a motif bound to every distinct tile shape.
type Prototype struct {
	tiling   *tiling.Tiling
	elements []*DesignElement
	protoMap *planar.Map
	stale    bool
	maps     *cache.Cache[string, *planar.Map]
	opts     options
}

// New builds a prototype binding default motifs to every distinct shape
// of t.
func New(t *tiling.Tiling, opts ...Option) (*Prototype, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	maps := o.cache
	if maps == nil {
		maps = cache.New[string, *planar.Map](o.cacheSize)
	}
	p := &Prototype{maps: maps, opts: o, stale: true}
	if err := p.SetTiling(t); err != nil {
		return nil, err
	}
	return p, nil
}

// Tiling returns the tiling the prototype decorates.
func (p *Prototype) Tiling() *tiling.Tiling {
	return p.tiling
}

// SetTiling replaces the tiling. Elements whose shape still occurs keep
// their motif; new shapes get the default motif. On error nothing
// changes.
func (p *Prototype) SetTiling(t *tiling.Tiling) error {
	if t == nil {
		return ErrNoTiling
	}
	unique := t.UniqueTiles()
	if len(unique) > p.opts.maxUnique {
		return fmt.Errorf("%w: %d shapes, limit %d", ErrTooManyUniqueTiles, len(unique), p.opts.maxUnique)
	}
	old := make(map[string]*DesignElement, len(p.elements))
	for _, e := range p.elements {
		old[e.key] = e
	}
	elements := make([]*DesignElement, 0, len(unique))
	for _, u := range unique {
		tl := t.Arena().Get(u.Tile)
		e := &DesignElement{TileID: u.Tile, Tile: tl, key: u.Key}
		if prev, ok := old[u.Key]; ok {
			e.Motif = prev.Motif
		} else {
			e.Motif = motif.Default(tl)
		}
		p.bind(e.Motif)
		elements = append(elements, e)
	}
	p.tiling = t
	p.elements = elements
	p.ResetProtoMap()
	girih.Logger().Debug("prototype: tiling set", "tiling", t.Name(), "elements", len(elements))
	return nil
}

// Resync regroups the elements after the tiling was edited in place.
func (p *Prototype) Resync() error {
	return p.SetTiling(p.tiling)
}

// bind installs the prototype as the contact source of inferred motifs.
func (p *Prototype) bind(m motif.Motif) {
	if in, ok := m.(*motif.Inferred); ok && in.Source == nil {
		in.Source = p
	}
}

// Elements returns the design elements in first-seen order.
func (p *Prototype) Elements() []*DesignElement {
	return append([]*DesignElement(nil), p.elements...)
}

// Element returns the element for an arena tile, matching by slot first
// and then by shape.
func (p *Prototype) Element(id tile.ID) *DesignElement {
	for _, e := range p.elements {
		if e.TileID == id {
			return e
		}
	}
	if tl := p.tiling.Arena().Get(id); tl != nil {
		return p.ElementFor(tl)
	}
	return nil
}

// ElementFor returns the element whose shape is congruent to t.
func (p *Prototype) ElementFor(t *tile.Tile) *DesignElement {
	key := t.Key()
	for _, e := range p.elements {
		if e.key == key {
			return e
		}
	}
	return nil
}

// SetMotif binds m to the shape of tile id and marks the map stale.
func (p *Prototype) SetMotif(id tile.ID, m motif.Motif) error {
	e := p.Element(id)
	if e == nil {
		return fmt.Errorf("%w: %d", ErrUnknownTile, id)
	}
	e.Motif = m
	p.bind(m)
	p.ResetProtoMap()
	return nil
}

// ResetProtoMap marks the assembled map stale.
func (p *Prototype) ResetProtoMap() {
	p.stale = true
	p.protoMap = nil
}

// IsStale reports whether the next ProtoMap call rebuilds.
func (p *Prototype) IsStale() bool {
	return p.stale
}

// ProtoMap returns the motif maps of every placement over the fill
// window, merged into one map. The result is shared; treat it as
// read-only.
func (p *Prototype) ProtoMap() *planar.Map {
	if !p.stale && p.protoMap != nil {
		return p.protoMap
	}
	start := time.Now()
	m := planar.New()
	placed := p.tiling.InTiling()
	for _, tr := range p.tiling.Translations() {
		for _, pt := range placed {
			m.MergeTransformed(p.motifMap(pt), tr.Multiply(pt.Transform))
		}
	}
	if p.opts.cleanse != 0 {
		m.Cleanse(p.opts.cleanse)
	}
	p.protoMap = m
	p.stale = false
	girih.Logger().Debug("prototype: map rebuilt",
		"tiling", p.tiling.Name(),
		"vertices", m.NumVertices(),
		"edges", m.NumEdges(),
		"elapsed", time.Since(start))
	return m
}

// MotifMap returns a copy of the motif map of one placement, in the
// placement's tile space.
func (p *Prototype) MotifMap(pt *tile.PlacedTile) *planar.Map {
	return p.motifMap(pt).Clone()
}

// motifMap returns the memoised motif map for a placement. The result
// must not be modified.
func (p *Prototype) motifMap(pt *tile.PlacedTile) *planar.Map {
	tl := p.tiling.Tile(pt)
	if tl == nil {
		return planar.New()
	}
	e := p.ElementFor(tl)
	if e == nil || e.Motif == nil {
		return planar.New()
	}
	if e.Motif.Kind() == motif.KindInferred {
		return e.Motif.BuildMap(tl)
	}
	key := tl.Fingerprint() + "|" + e.Motif.Record().String()
	return p.maps.GetOrCreate(key, func() *planar.Map {
		return e.Motif.BuildMap(tl)
	})
}

// CacheStats returns the motif map cache counters.
func (p *Prototype) CacheStats() cache.Stats {
	return p.maps.Stats()
}

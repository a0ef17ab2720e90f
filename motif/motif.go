// Package motif builds the decorative geometry placed inside a tile.
//
// Every motif variant exposes one capability, BuildMap, which returns the
// motif as a planar map in the tile's own coordinate space. Radial motifs
// (Star, Rosette and their extended and connected forms) build one unit
// wedge and replicate it around the tile center. Irregular and Inferred
// motifs work from contact points on the edges of an arbitrary polygon.
//
// BuildMap never fails loudly: a construction that cannot complete is
// logged and yields an empty map.
package motif

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/girih"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/tile"
)

var (
	// ErrUnknownKind is returned by FromRecord for an unrecognised kind.
	ErrUnknownKind = errors.New("motif: unknown kind")

	// ErrNotClosed reports a radial replication whose last copy does not
	// return to the first.
	ErrNotClosed = errors.New("motif: radial replication does not close")

	// ErrNoContacts reports an inference with no usable adjacency.
	ErrNoContacts = errors.New("motif: no contacts for inference")

	// ErrBadParameters reports parameters no construction can use.
	ErrBadParameters = errors.New("motif: bad parameters")
)

// Kind tags a motif variant.
type Kind int

const (
	KindIrregular Kind = iota
	KindStar
	KindRosette
	KindExtendedStar
	KindExtendedRosette
	KindConnected
	KindInferred
)

var kindNames = [...]string{
	KindIrregular:       "irregular",
	KindStar:            "star",
	KindRosette:         "rosette",
	KindExtendedStar:    "extended-star",
	KindExtendedRosette: "extended-rosette",
	KindConnected:       "connected",
	KindInferred:        "inferred",
}

// String returns the persisted name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), true
		}
	}
	return 0, false
}

// Motif is a pattern generator that fits any tile.
type Motif interface {
	Kind() Kind
	// BuildMap returns the motif in t's tile space. The result is owned
	// by the caller. Failures yield an empty map.
	BuildMap(t *tile.Tile) *planar.Map
	// Record returns the persisted parameters.
	Record() Record
	Clone() Motif
}

// Flags are the boolean options of extended motifs.
type Flags uint8

const (
	// ExtendPeripheral joins ray tips lying inside the tile to the
	// tile boundary.
	ExtendPeripheral Flags = 1 << iota
	// PeripheralDirect extends peripheral tips radially instead of
	// perpendicular to the nearest edge.
	PeripheralDirect
	// ExtendFree extends dangling ends along their edge to the tile edge.
	ExtendFree
	// ConnectBoundary joins consecutive boundary vertices.
	ConnectBoundary
	// ConnectAlongBoundary connects along the tile outline instead of
	// with straight lines.
	ConnectAlongBoundary
)

// Construction selects how an Irregular motif shoots rays from its
// contact points.
type Construction int

const (
	ConstructStar Construction = iota
	ConstructRosette
	ConstructGirih
	ConstructIntersect
)

var constructionNames = [...]string{"star", "rosette", "girih", "intersect"}

// String returns the persisted name.
func (c Construction) String() string {
	if c >= 0 && int(c) < len(constructionNames) {
		return constructionNames[c]
	}
	return fmt.Sprintf("Construction(%d)", int(c))
}

// ParseConstruction is the inverse of Construction.String.
func ParseConstruction(s string) (Construction, bool) {
	for c, name := range constructionNames {
		if strings.EqualFold(s, name) {
			return Construction(c), true
		}
	}
	return 0, false
}

// Record is the persisted form of a motif: a kind tag plus numeric
// parameters and flags. Fields a kind does not use stay zero.
type Record struct {
	Kind         Kind
	N            int
	D            float64
	S            int
	Q            float64
	Scale        float64
	Rotation     float64
	Flags        Flags
	Construction Construction
	// Child is the radial kind wrapped by a Connected motif.
	Child Kind
}

// String formats every field; equal records format identically.
func (r Record) String() string {
	return fmt.Sprintf("%s n=%d d=%g s=%d q=%g scale=%g rot=%g flags=%d c=%s child=%s",
		r.Kind, r.N, r.D, r.S, r.Q, r.Scale, r.Rotation, r.Flags, r.Construction, r.Child)
}

// FromRecord rebuilds a motif from its persisted form.
func FromRecord(r Record) (Motif, error) {
	rad := Radial{N: r.N, Scale: r.Scale, Rotation: r.Rotation}
	switch r.Kind {
	case KindStar:
		return &Star{Radial: rad, D: r.D, S: r.S}, nil
	case KindRosette:
		return &Rosette{Radial: rad, Q: r.Q, S: r.S}, nil
	case KindExtendedStar:
		return &ExtendedStar{Star: Star{Radial: rad, D: r.D, S: r.S}, Flags: r.Flags}, nil
	case KindExtendedRosette:
		return &ExtendedRosette{Rosette: Rosette{Radial: rad, Q: r.Q, S: r.S}, Flags: r.Flags}, nil
	case KindConnected:
		switch r.Child {
		case KindStar:
			return &Connected{Child: &Star{Radial: rad, D: r.D, S: r.S}}, nil
		case KindRosette:
			return &Connected{Child: &Rosette{Radial: rad, Q: r.Q, S: r.S}}, nil
		}
		return nil, fmt.Errorf("%w: connected child %s", ErrUnknownKind, r.Child)
	case KindIrregular:
		return &Irregular{
			Construction: r.Construction,
			D:            r.D,
			Q:            r.Q,
			S:            r.S,
			Scale:        r.Scale,
			Rotation:     r.Rotation,
		}, nil
	case KindInferred:
		return &Inferred{Scale: r.Scale}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, r.Kind)
}

// Default returns the motif bound to a tile that has none yet: a full
// star for regular tiles and a girih construction otherwise.
func Default(t *tile.Tile) Motif {
	if !t.IsRegular() {
		return &Irregular{Construction: ConstructGirih, S: 2, Scale: 1}
	}
	n := t.Sides()
	d := math.Max(1, float64(n)/3)
	return &Star{Radial: Radial{N: n, Scale: 1}, D: d, S: int(math.Ceil(d))}
}

// buildSafely runs a construction, converting errors and panics into an
// empty map and a warning. Successful results are cleansed.
func buildSafely(kind Kind, t *tile.Tile, build func() (*planar.Map, error)) (m *planar.Map) {
	defer func() {
		if r := recover(); r != nil {
			girih.Logger().Warn("motif: construction panicked", "kind", kind, "tile", t, "panic", r)
			m = planar.New()
		}
	}()
	if t == nil || t.Sides() < 3 {
		girih.Logger().Warn("motif: no tile", "kind", kind)
		return planar.New()
	}
	m, err := build()
	if err != nil {
		girih.Logger().Warn("motif: construction failed", "kind", kind, "tile", t, "err", err)
		return planar.New()
	}
	if r := m.Cleanse(planar.CleanseDefault); r.Changed() {
		girih.Logger().Debug("motif: cleansed", "kind", kind, "report", r)
	}
	girih.Logger().Debug("motif: built", "kind", kind, "vertices", m.NumVertices(), "edges", m.NumEdges())
	return m
}

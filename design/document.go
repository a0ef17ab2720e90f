// Package design converts prototypes to and from their persisted XML
// document.
//
// A document lists the tile shapes, the placements of the tiling, the
// translation vectors, the fill window and one motif record per tile
// shape. Numbers are written in the shortest form that parses back to
// the same float64, so a decoded document rebuilds the same maps.
package design

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/motif"
	"github.com/gogpu/girih/prototype"
	"github.com/gogpu/girih/tile"
	"github.com/gogpu/girih/tiling"
)

// Version is the document version written by Encode.
const Version = 1

var (
	// ErrVersion is returned for documents newer than Version.
	ErrVersion = errors.New("design: unsupported version")

	// ErrTileRef is returned for a placement or motif naming a tile the
	// document does not define.
	ErrTileRef = errors.New("design: unknown tile reference")

	// ErrEdgeKind is returned for an unrecognised edge kind.
	ErrEdgeKind = errors.New("design: unknown edge kind")
)

// Document is the persisted form of a prototype.
type Document struct {
	XMLName     xml.Name    `xml:"design"`
	Version     int         `xml:"version,attr"`
	ID          string      `xml:"id,attr,omitempty"`
	Name        string      `xml:"name,attr"`
	Author      string      `xml:"author,omitempty"`
	Description string      `xml:"description,omitempty"`
	T1          Vector      `xml:"translations>t1"`
	T2          Vector      `xml:"translations>t2"`
	Fill        Fill        `xml:"fill"`
	Tiles       []TileDef   `xml:"tiles>tile"`
	Placements  []Placement `xml:"placements>placement"`
	Motifs      []MotifDef  `xml:"motifs>motif"`
}

// Vector is a translation vector.
type Vector struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
}

// Fill is the fill window.
type Fill struct {
	MinX      int  `xml:"minX,attr"`
	MaxX      int  `xml:"maxX,attr"`
	MinY      int  `xml:"minY,attr"`
	MaxY      int  `xml:"maxY,attr"`
	Singleton bool `xml:"singleton,attr,omitempty"`
}

// TileDef defines one tile shape. Regular tiles without curved edges are
// stored by side count alone.
type TileDef struct {
	ID       int       `xml:"id,attr"`
	Regular  int       `xml:"regular,attr,omitempty"`
	Rotation float64   `xml:"rotation,attr,omitempty"`
	Scale    float64   `xml:"scale,attr"`
	Edges    []EdgeDef `xml:"edge"`
}

// EdgeDef is one edge of an explicit tile.
type EdgeDef struct {
	Kind   string  `xml:"kind,attr"`
	X0     float64 `xml:"x0,attr"`
	Y0     float64 `xml:"y0,attr"`
	X1     float64 `xml:"x1,attr"`
	Y1     float64 `xml:"y1,attr"`
	CX     float64 `xml:"cx,attr,omitempty"`
	CY     float64 `xml:"cy,attr,omitempty"`
	Convex bool    `xml:"convex,attr,omitempty"`
}

// Placement is an affine placement of a tile, with the matrix rows
// (A B C) and (D E F).
type Placement struct {
	Tile int     `xml:"tile,attr"`
	A    float64 `xml:"a,attr"`
	B    float64 `xml:"b,attr"`
	C    float64 `xml:"c,attr"`
	D    float64 `xml:"d,attr"`
	E    float64 `xml:"e,attr"`
	F    float64 `xml:"f,attr"`
}

// MotifDef is the motif bound to one tile shape.
type MotifDef struct {
	Tile         int     `xml:"tile,attr"`
	Kind         string  `xml:"kind,attr"`
	N            int     `xml:"n,attr,omitempty"`
	D            float64 `xml:"d,attr,omitempty"`
	S            int     `xml:"s,attr,omitempty"`
	Q            float64 `xml:"q,attr,omitempty"`
	Scale        float64 `xml:"scale,attr,omitempty"`
	Rotation     float64 `xml:"rotation,attr,omitempty"`
	Construction string  `xml:"construction,attr,omitempty"`
	Child        string  `xml:"child,attr,omitempty"`

	ExtendPeripheral     bool `xml:"extendPeripheral,attr,omitempty"`
	PeripheralDirect     bool `xml:"peripheralDirect,attr,omitempty"`
	ExtendFree           bool `xml:"extendFree,attr,omitempty"`
	ConnectBoundary      bool `xml:"connectBoundary,attr,omitempty"`
	ConnectAlongBoundary bool `xml:"connectAlongBoundary,attr,omitempty"`
}

// Encode writes d as indented XML with a header.
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("design: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Decode reads a document.
func Decode(r io.Reader) (*Document, error) {
	var d Document
	if err := xml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("design: decode: %w", err)
	}
	if d.Version > Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, d.Version)
	}
	return &d, nil
}

// FromTiling captures t with default motifs omitted.
func FromTiling(t *tiling.Tiling) *Document {
	t1, t2 := t.Vectors()
	w := t.FillWindow()
	d := &Document{
		Version:     Version,
		ID:          t.ID.String(),
		Name:        t.Name(),
		Author:      t.Author,
		Description: t.Description,
		T1:          Vector{X: t1.X, Y: t1.Y},
		T2:          Vector{X: t2.X, Y: t2.Y},
		Fill:        Fill{MinX: w.MinX, MaxX: w.MaxX, MinY: w.MinY, MaxY: w.MaxY, Singleton: w.Singleton},
	}
	arena := t.Arena()
	for _, id := range arena.IDs() {
		d.Tiles = append(d.Tiles, tileDef(int(id), arena.Get(id)))
	}
	for _, p := range t.InTiling() {
		m := p.Transform
		d.Placements = append(d.Placements, Placement{
			Tile: int(p.Tile),
			A:    m.A,
			B:    m.B,
			C:    m.C,
			D:    m.D,
			E:    m.E,
			F:    m.F,
		})
	}
	return d
}

// FromPrototype captures p's tiling and the motif of every element.
func FromPrototype(p *prototype.Prototype) *Document {
	d := FromTiling(p.Tiling())
	for _, e := range p.Elements() {
		d.Motifs = append(d.Motifs, motifDef(int(e.TileID), e.Motif.Record()))
	}
	return d
}

func tileDef(id int, t *tile.Tile) TileDef {
	def := TileDef{ID: id, Rotation: t.Rotation(), Scale: t.Scale()}
	edges := t.BaseEdges()
	if t.IsRegular() && !edges.HasCurves() {
		def.Regular = t.Sides()
		return def
	}
	for _, e := range edges {
		def.Edges = append(def.Edges, EdgeDef{
			Kind:   e.Kind.String(),
			X0:     e.P0.X,
			Y0:     e.P0.Y,
			X1:     e.P1.X,
			Y1:     e.P1.Y,
			CX:     e.Center.X,
			CY:     e.Center.Y,
			Convex: e.Convex,
		})
	}
	return def
}

func parseEdgeKind(s string) (geom.SegmentKind, error) {
	k, ok := geom.ParseSegmentKind(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrEdgeKind, s)
	}
	return k, nil
}

func motifDef(id int, r motif.Record) MotifDef {
	def := MotifDef{
		Tile:     id,
		Kind:     r.Kind.String(),
		N:        r.N,
		D:        r.D,
		S:        r.S,
		Q:        r.Q,
		Scale:    r.Scale,
		Rotation: r.Rotation,

		ExtendPeripheral:     r.Flags&motif.ExtendPeripheral != 0,
		PeripheralDirect:     r.Flags&motif.PeripheralDirect != 0,
		ExtendFree:           r.Flags&motif.ExtendFree != 0,
		ConnectBoundary:      r.Flags&motif.ConnectBoundary != 0,
		ConnectAlongBoundary: r.Flags&motif.ConnectAlongBoundary != 0,
	}
	switch r.Kind {
	case motif.KindIrregular:
		def.Construction = r.Construction.String()
	case motif.KindConnected:
		def.Child = r.Child.String()
	}
	return def
}

// Record returns the motif record described by def.
func (def MotifDef) Record() (motif.Record, error) {
	kind, ok := motif.ParseKind(def.Kind)
	if !ok {
		return motif.Record{}, fmt.Errorf("%w: %q", motif.ErrUnknownKind, def.Kind)
	}
	r := motif.Record{
		Kind:     kind,
		N:        def.N,
		D:        def.D,
		S:        def.S,
		Q:        def.Q,
		Scale:    def.Scale,
		Rotation: def.Rotation,
	}
	if def.Construction != "" {
		c, ok := motif.ParseConstruction(def.Construction)
		if !ok {
			return motif.Record{}, fmt.Errorf("design: unknown construction %q", def.Construction)
		}
		r.Construction = c
	}
	if def.Child != "" {
		c, ok := motif.ParseKind(def.Child)
		if !ok {
			return motif.Record{}, fmt.Errorf("%w: child %q", motif.ErrUnknownKind, def.Child)
		}
		r.Child = c
	}
	for _, f := range []struct {
		set  bool
		flag motif.Flags
	}{
		{def.ExtendPeripheral, motif.ExtendPeripheral},
		{def.PeripheralDirect, motif.PeripheralDirect},
		{def.ExtendFree, motif.ExtendFree},
		{def.ConnectBoundary, motif.ConnectBoundary},
		{def.ConnectAlongBoundary, motif.ConnectAlongBoundary},
	} {
		if f.set {
			r.Flags |= f.flag
		}
	}
	return r, nil
}

// Tiling rebuilds the tiling. It also returns the arena ID assigned to
// every document tile ID.
func (d *Document) Tiling() (*tiling.Tiling, map[int]tile.ID, error) {
	t := tiling.New(d.Name)
	if d.ID != "" {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("design: tiling id: %w", err)
		}
		t.ID = id
	}
	t.Author = d.Author
	t.Description = d.Description

	ids := make(map[int]tile.ID, len(d.Tiles))
	for _, def := range d.Tiles {
		tl, err := def.build()
		if err != nil {
			return nil, nil, fmt.Errorf("design: tile %d: %w", def.ID, err)
		}
		ids[def.ID] = t.Arena().Add(tl)
	}
	for i, p := range d.Placements {
		id, ok := ids[p.Tile]
		if !ok {
			return nil, nil, fmt.Errorf("%w: placement %d names tile %d", ErrTileRef, i, p.Tile)
		}
		m := geom.Matrix{A: p.A, B: p.B, C: p.C, D: p.D, E: p.E, F: p.F}
		t.Add(t.NewPlacement(id, m))
	}
	t.SetTranslations(geom.Pt(d.T1.X, d.T1.Y), geom.Pt(d.T2.X, d.T2.Y))
	t.SetFillWindow(tiling.FillWindow{
		MinX:      d.Fill.MinX,
		MaxX:      d.Fill.MaxX,
		MinY:      d.Fill.MinY,
		MaxY:      d.Fill.MaxY,
		Singleton: d.Fill.Singleton,
	})
	t.SetLoaded()
	return t, ids, nil
}

func (def TileDef) build() (*tile.Tile, error) {
	var t *tile.Tile
	if def.Regular > 0 {
		if def.Regular < 3 {
			return nil, fmt.Errorf("regular polygon with %d sides", def.Regular)
		}
		t = tile.NewRegular(def.Regular)
	} else {
		if len(def.Edges) < 3 {
			return nil, fmt.Errorf("%d edges", len(def.Edges))
		}
		ep := make(geom.EdgePoly, len(def.Edges))
		for i, e := range def.Edges {
			kind, err := parseEdgeKind(e.Kind)
			if err != nil {
				return nil, err
			}
			ep[i] = geom.Segment{
				Kind:   kind,
				P0:     geom.Pt(e.X0, e.Y0),
				P1:     geom.Pt(e.X1, e.Y1),
				Center: geom.Pt(e.CX, e.CY),
				Convex: e.Convex,
			}
		}
		t = tile.NewFromEdges(ep)
	}
	t.SetRotation(def.Rotation)
	t.SetScale(def.Scale)
	return t, nil
}

// Prototype rebuilds the tiling and binds the recorded motifs. Shapes
// without a record keep their default motif.
func (d *Document) Prototype(opts ...prototype.Option) (*prototype.Prototype, error) {
	t, ids, err := d.Tiling()
	if err != nil {
		return nil, err
	}
	p, err := prototype.New(t, opts...)
	if err != nil {
		return nil, err
	}
	if err := d.ApplyMotifs(p, ids); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyMotifs binds the recorded motifs to p, whose tiling was built by
// Tiling with the returned ids. On error the motifs bound so far remain.
func (d *Document) ApplyMotifs(p *prototype.Prototype, ids map[int]tile.ID) error {
	for _, def := range d.Motifs {
		id, ok := ids[def.Tile]
		if !ok {
			return fmt.Errorf("%w: motif names tile %d", ErrTileRef, def.Tile)
		}
		r, err := def.Record()
		if err != nil {
			return err
		}
		m, err := motif.FromRecord(r)
		if err != nil {
			return err
		}
		if err := p.SetMotif(id, m); err != nil {
			return fmt.Errorf("design: motif for tile %d: %w", def.Tile, err)
		}
	}
	return nil
}

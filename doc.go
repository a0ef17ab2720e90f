// Package girih is a construction engine for Islamic geometric patterns.
//
// # Overview
//
// A pattern is derived in stages. A tiling places polygonal tiles in the
// plane and repeats them along two translation vectors. A prototype binds
// a motif (star, rosette, and their extended, connected, irregular and
// inferred variants) to every distinct tile shape and merges the motif
// geometry of every placement into one planar map. A mosaic styles one or
// more prototypes for display.
//
// # Packages
//
//   - geom: points, affine matrices, segments with arcs, polygons
//   - planar: the planar map kernel (insert, merge, crop, cleanse)
//   - tile, tiling, tilingmaker: tiles, tilings and the editor engine
//   - motif, prototype: motif construction and prototype maps
//   - mosaic: styles and thumbnails
//   - event, engine: events and the cross-component state machine
//   - design, library: the persisted document and a SQLite design store
//
// # Quick Start
//
//	ctx := engine.New()
//	t := tiling.New("squares")
//	tm := ctx.TilingMaker()
//	tm.Load(t)
//	tm.AddRegular(4, geom.Identity())
//	tm.SetTranslations(geom.Pt(1, 0), geom.Pt(0, 1))
//	ctx.Dispatch(event.Event{Type: event.LoadSingle, Tiling: t})
//	m := ctx.PrototypeMaker().Selected().ProtoMap()
//
// # Logging
//
// girih is silent by default. See [SetLogger].
package girih

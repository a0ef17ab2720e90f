// Command girih builds a pattern from a preset tiling or a saved design
// and writes a PNG thumbnail.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/girih/design"
	"github.com/gogpu/girih/engine"
	"github.com/gogpu/girih/event"
	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/library"
	"github.com/gogpu/girih/motif"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/prototype"
	"github.com/gogpu/girih/tiling"
	"github.com/gogpu/girih/tilingmaker"
)

func main() {
	var (
		preset  = flag.String("tiling", "square", "preset tiling: square, hexagon, triangle or 4.8.8")
		input   = flag.String("in", "", "design document to load instead of a preset")
		kind    = flag.String("motif", "star", "motif for regular tiles: star, rosette or default")
		d       = flag.Float64("d", 2, "star chord skip")
		s       = flag.Int("s", 2, "star or rosette intersections kept")
		q       = flag.Float64("q", 0.3, "rosette sharpness")
		fill    = flag.Int("fill", 2, "fill window half width")
		border  = flag.Float64("crop", 0, "crop the mosaic to a square of this half width")
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 800, "image height")
		output  = flag.String("output", "girih.png", "output file")
		xmlOut  = flag.String("xml", "", "also write the design document here")
		dbPath  = flag.String("db", "", "also save the design in this library")
		list    = flag.Bool("list", false, "list the designs in -db and exit")
		verbose = flag.Bool("v", false, "log engine activity to stderr")
		join    = flag.Bool("join", false, "merge collinear edges of the assembled map")
	)
	flag.Parse()

	var opts []engine.Option
	if *verbose {
		opts = append(opts, engine.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}
	if *join {
		opts = append(opts, engine.WithCleanse(planar.CleanseDefault|planar.CleanseJoinColinear))
	}
	ctx := engine.New(opts...)

	if *list {
		if err := listDesigns(*dbPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *input != "" {
		if err := loadDesign(ctx, *input); err != nil {
			log.Fatalf("Failed to load %s: %v", *input, err)
		}
	} else {
		t := tiling.New(*preset)
		tm := ctx.TilingMaker()
		tm.Load(t)
		if err := buildPreset(tm, *preset); err != nil {
			log.Fatal(err)
		}
		if err := tm.SetFillWindow(tiling.FillWindow{MinX: -*fill, MaxX: *fill, MinY: -*fill, MaxY: *fill}); err != nil {
			log.Fatal(err)
		}
		if err := ctx.Dispatch(event.Event{Type: event.LoadSingle, Tiling: t}); err != nil {
			log.Fatal(err)
		}
		if err := applyMotif(ctx, *kind, *d, *s, *q); err != nil {
			log.Fatal(err)
		}
	}

	if err := ctx.Dispatch(event.Event{Type: event.Render}); err != nil {
		log.Fatal(err)
	}
	p := ctx.PrototypeMaker().Selected()
	if p == nil {
		log.Fatal("nothing to draw")
	}
	m := p.ProtoMap()
	log.Printf("%s: %d tile shapes, map %d vertices, %d edges", p.Tiling().Name(), len(p.Elements()), m.NumVertices(), m.NumEdges())
	if err := m.Verify(); err != nil {
		log.Printf("map check: %v", err)
	}

	if *border > 0 {
		b := geom.NewRect(geom.Pt(-*border, -*border), geom.Pt(*border, *border))
		ctx.MosaicMaker().Mosaic().SetCrop(planar.RectRegion{Rect: b})
	}
	if err := savePNG(ctx, *output, *width, *height); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Thumbnail saved to %s (%dx%d)", *output, *width, *height)

	if *xmlOut != "" {
		if err := saveXML(p, *xmlOut); err != nil {
			log.Fatalf("Failed to write %s: %v", *xmlOut, err)
		}
	}
	if *dbPath != "" {
		if err := saveLibrary(p, *dbPath); err != nil {
			log.Fatalf("Failed to save to %s: %v", *dbPath, err)
		}
	}
}

// buildPreset places one period of a tiling with unit edges.
func buildPreset(tm *tilingmaker.Maker, name string) error {
	r3 := math.Sqrt(3)
	var (
		placements []geom.Matrix
		sides      []int
		t1, t2     geom.Point
	)
	switch name {
	case "square":
		sides, placements = []int{4}, []geom.Matrix{geom.Identity()}
		t1, t2 = geom.Pt(1, 0), geom.Pt(0, 1)
	case "hexagon":
		sides, placements = []int{6}, []geom.Matrix{geom.Identity()}
		t1, t2 = geom.Pt(r3, 0), geom.Pt(r3/2, 1.5)
	case "triangle":
		sides = []int{3, 3}
		placements = []geom.Matrix{geom.Identity(), geom.Translate(1/r3, 0).Multiply(geom.Rotate(math.Pi))}
		t1, t2 = geom.Pt(r3/2, 0.5), geom.Pt(r3/2, -0.5)
	case "4.8.8":
		a := 1 + math.Sqrt2
		sides = []int{8, 4}
		placements = []geom.Matrix{geom.Identity(), geom.Translate(a/2, a/2).Multiply(geom.Rotate(math.Pi / 4))}
		t1, t2 = geom.Pt(a, 0), geom.Pt(0, a)
	default:
		return fmt.Errorf("unknown tiling %q", name)
	}
	for i, n := range sides {
		if _, err := tm.AddRegular(n, placements[i]); err != nil {
			return err
		}
	}
	return tm.SetTranslations(t1, t2)
}

// applyMotif binds the chosen motif to every regular tile shape.
func applyMotif(ctx *engine.Context, kind string, d float64, s int, q float64) error {
	if kind == "default" {
		return nil
	}
	p := ctx.PrototypeMaker().Selected()
	for _, e := range p.Elements() {
		if !e.Tile.IsRegular() {
			continue
		}
		rad := motif.Radial{N: e.Tile.Sides(), Scale: 1}
		var m motif.Motif
		switch kind {
		case "star":
			m = &motif.Star{Radial: rad, D: d, S: s}
		case "rosette":
			m = &motif.Rosette{Radial: rad, Q: q, S: s}
		default:
			return fmt.Errorf("unknown motif %q", kind)
		}
		if err := p.SetMotif(e.TileID, m); err != nil {
			return err
		}
	}
	return ctx.Dispatch(event.Event{Type: event.MotifChanged, Tiling: p.Tiling()})
}

func loadDesign(ctx *engine.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := design.Decode(f)
	if err != nil {
		return err
	}
	t, ids, err := doc.Tiling()
	if err != nil {
		return err
	}
	if err := ctx.Dispatch(event.Event{Type: event.LoadSingle, Tiling: t}); err != nil {
		return err
	}
	p := ctx.PrototypeMaker().Selected()
	if p == nil {
		return fmt.Errorf("design %q has no tiles", t.Name())
	}
	if err := doc.ApplyMotifs(p, ids); err != nil {
		return err
	}
	return ctx.Dispatch(event.Event{Type: event.MotifChanged, Tiling: t})
}

func savePNG(ctx *engine.Context, path string, w, h int) error {
	img := ctx.MosaicMaker().Mosaic().Thumbnail(w, h)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func saveXML(p *prototype.Prototype, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := design.FromPrototype(p).Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func saveLibrary(p *prototype.Prototype, path string) error {
	ctx := context.Background()
	lib, err := library.Open(ctx, path)
	if err != nil {
		return err
	}
	defer lib.Close()
	e, err := lib.Save(ctx, p)
	if err != nil {
		return err
	}
	log.Printf("Saved %q as %s", e.Name, e.ID)
	return nil
}

func listDesigns(path string) error {
	if path == "" {
		return fmt.Errorf("-list needs -db")
	}
	ctx := context.Background()
	lib, err := library.Open(ctx, path)
	if err != nil {
		return err
	}
	defer lib.Close()
	entries, err := lib.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s  %-24s  %s\n", e.ID, e.Name, e.Updated.Format("2006-01-02 15:04"))
	}
	return nil
}

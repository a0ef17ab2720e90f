package mosaic

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/planar"
)

// supersample is the factor thumbnails are rendered at before
// downsampling.
const supersample = 4

// arcSteps is the number of pieces each arc is flattened into.
const arcSteps = 16

// ViewTransform maps bounds into a w×h image with a margin, preserving
// aspect ratio and flipping Y so that +Y points up.
func ViewTransform(bounds geom.Rect, w, h int, margin float64) f64.Aff3 {
	if bounds.IsEmpty() || bounds.Width() == 0 && bounds.Height() == 0 {
		return f64.Aff3{1, 0, float64(w) / 2, 0, -1, float64(h) / 2}
	}
	aw := math.Max(float64(w)-2*margin, 1)
	ah := math.Max(float64(h)-2*margin, 1)
	s := math.Min(aw/math.Max(bounds.Width(), 1e-9), ah/math.Max(bounds.Height(), 1e-9))
	c := bounds.Center()
	return f64.Aff3{
		s, 0, float64(w)/2 - s*c.X,
		0, -s, float64(h)/2 + s*c.Y,
	}
}

// Thumbnail draws the visible styles into a w×h image on white.
func (m *Mosaic) Thumbnail(w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return dst
	}
	W, H := w*supersample, h*supersample
	big := image.NewRGBA(image.Rect(0, 0, W, H))
	draw.Draw(big, big.Bounds(), image.White, image.Point{}, draw.Src)

	view := geom.FromAff3(ViewTransform(m.Bounds(), W, H, float64(4*supersample)))
	z := vector.NewRasterizer(W, H)
	for _, s := range m.styles {
		if !s.Visible || s.Prototype == nil {
			continue
		}
		pm := m.StyleMap(s)
		switch s.Kind {
		case StylePlain:
			strokeMap(z, big, pm, view, supersample, s.Color)
		case StyleThick:
			strokeMap(z, big, pm, view, s.Width*supersample, s.Color)
		case StyleOutline:
			strokeMap(z, big, pm, view, s.Width*supersample, s.Color)
			strokeMap(z, big, pm, view, s.Width*supersample/3, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		}
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), big, big.Bounds(), xdraw.Src, nil)
	return dst
}

// strokeMap rasterises every edge of pm as a quad strip width pixels wide.
func strokeMap(z *vector.Rasterizer, dst draw.Image, pm *planar.Map, view geom.Matrix, width float64, c color.RGBA) {
	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	half := math.Max(width, 1) / 2
	for _, e := range pm.Edges() {
		pts := e.Points(arcSteps)
		for i := 1; i < len(pts); i++ {
			a := view.TransformPoint(pts[i-1])
			q := view.TransformPoint(pts[i])
			n := q.Sub(a).Perp().Normalize().Mul(half)
			if n.IsZero() {
				continue
			}
			z.MoveTo(float32(a.X+n.X), float32(a.Y+n.Y))
			z.LineTo(float32(q.X+n.X), float32(q.Y+n.Y))
			z.LineTo(float32(q.X-n.X), float32(q.Y-n.Y))
			z.LineTo(float32(a.X-n.X), float32(a.Y-n.Y))
			z.ClosePath()
		}
	}
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

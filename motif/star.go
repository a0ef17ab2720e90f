package motif

import (
	"math"

	"github.com/gogpu/girih/geom"
	"github.com/gogpu/girih/planar"
	"github.com/gogpu/girih/tile"
)

// Star is the classic {n/d} star polygon. Each tip shoots a chord toward
// the tip d steps round the circle; S limits how many chord crossings are
// kept, so small S gives isolated star points and S >= D the full star.
// D may be fractional.
type Star struct {
	Radial
	D float64
	S int
}

// Kind implements Motif.
func (s *Star) Kind() Kind { return KindStar }

// BuildMap implements Motif.
func (s *Star) BuildMap(t *tile.Tile) *planar.Map {
	return buildSafely(KindStar, t, func() (*planar.Map, error) {
		return s.buildRadial(t, s.unit, nil)
	})
}

// Record implements Motif.
func (s *Star) Record() Record {
	return Record{Kind: KindStar, N: s.N, D: s.D, S: s.S, Scale: s.Scale, Rotation: s.Rotation}
}

// Clone implements Motif.
func (s *Star) Clone() Motif {
	c := *s
	return &c
}

func (s *Star) unit(n int) ([][]geom.Point, error) {
	d := math.Min(math.Max(s.D, 1), math.Max(1, float64(n)/2-0.01))
	a := geom.Pt(1, 0)
	b := arc(d / float64(n))

	chords := make([][2]geom.Point, 0, 2*n)
	for j := range n {
		p := arc(float64(j) / float64(n))
		chords = append(chords,
			[2]geom.Point{p, arc((float64(j) + d) / float64(n))},
			[2]geom.Point{p, arc((float64(j) - d) / float64(n))})
	}
	ts := rayHits(a, b, chords, 1e-9, 0.5-1e-9)

	keep := s.S
	if keep <= 0 {
		keep = len(ts) + 1
	}
	pts := []geom.Point{a}
	for i := 0; i < keep && i < len(ts); i++ {
		pts = append(pts, a.Lerp(b, ts[i]))
	}
	if keep > len(ts) {
		pts = append(pts, a.Lerp(b, 0.5))
	}
	return [][]geom.Point{pts}, nil
}

// ExtendedStar is a Star whose tips and free ends may be extended to the
// tile boundary and joined along it.
type ExtendedStar struct {
	Star
	Flags Flags
}

// Kind implements Motif.
func (s *ExtendedStar) Kind() Kind { return KindExtendedStar }

// BuildMap implements Motif.
func (s *ExtendedStar) BuildMap(t *tile.Tile) *planar.Map {
	return buildSafely(KindExtendedStar, t, func() (*planar.Map, error) {
		return s.buildRadial(t, s.unit, s.Flags.extend)
	})
}

// Record implements Motif.
func (s *ExtendedStar) Record() Record {
	r := s.Star.Record()
	r.Kind = KindExtendedStar
	r.Flags = s.Flags
	return r
}

// Clone implements Motif.
func (s *ExtendedStar) Clone() Motif {
	c := *s
	return &c
}

package planar

import (
	"math"

	"github.com/gogpu/girih/geom"
)

// gridCell is the side of one spatial hash cell. Lookups inspect the
// 3x3 block around a point, so any tolerance up to gridCell is exact.
const gridCell = 1e-3

type cellKey struct {
	x, y int64
}

// grid is a spatial hash of vertices used for tolerance lookups.
type grid struct {
	cells map[cellKey][]*Vertex
}

func newGrid() *grid {
	return &grid{cells: make(map[cellKey][]*Vertex)}
}

func keyOf(p geom.Point) cellKey {
	return cellKey{
		x: int64(math.Floor(p.X / gridCell)),
		y: int64(math.Floor(p.Y / gridCell)),
	}
}

func (g *grid) add(v *Vertex) {
	k := keyOf(v.Pt)
	g.cells[k] = append(g.cells[k], v)
}

func (g *grid) remove(v *Vertex) {
	k := keyOf(v.Pt)
	bucket := g.cells[k]
	for i, w := range bucket {
		if w == v {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(g.cells, k)
		return
	}
	g.cells[k] = bucket
}

// nearest returns the closest vertex within tol of p.
func (g *grid) nearest(p geom.Point, tol float64) *Vertex {
	var best *Vertex
	bestD := math.Inf(1)
	g.each(p, func(v *Vertex) {
		if d := v.Pt.Distance(p); d <= tol && d < bestD {
			best, bestD = v, d
		}
	})
	return best
}

// within returns every vertex within tol of p.
func (g *grid) within(p geom.Point, tol float64) []*Vertex {
	var out []*Vertex
	g.each(p, func(v *Vertex) {
		if v.Pt.Near(p, tol) {
			out = append(out, v)
		}
	})
	return out
}

func (g *grid) each(p geom.Point, fn func(*Vertex)) {
	k := keyOf(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, v := range g.cells[cellKey{x: k.x + dx, y: k.y + dy}] {
				fn(v)
			}
		}
	}
}

func (g *grid) rebuild(vs []*Vertex) {
	g.cells = make(map[cellKey][]*Vertex, len(vs))
	for _, v := range vs {
		g.add(v)
	}
}

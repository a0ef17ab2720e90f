package geom

import "math"

// Circle is a circle by center and radius.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether p lies inside or on the circle.
func (c Circle) Contains(p Point) bool {
	return p.Distance(c.Center) <= c.Radius+Tolerance
}

// IntersectSegment returns the parameters in [0,1] at which segment ab
// crosses the circle, in increasing order.
func (c Circle) IntersectSegment(a, b Point) []float64 {
	d := b.Sub(a)
	f := a.Sub(c.Center)
	qa := d.Dot(d)
	if qa == 0 {
		return nil
	}
	qb := 2 * f.Dot(d)
	qc := f.Dot(f) - c.Radius*c.Radius
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	var ts []float64
	for _, t := range []float64{(-qb - sq) / (2 * qa), (-qb + sq) / (2 * qa)} {
		if t >= -Tolerance && t <= 1+Tolerance {
			t = clamp01(t)
			if len(ts) == 0 || math.Abs(ts[len(ts)-1]-t) > Tolerance {
				ts = append(ts, t)
			}
		}
	}
	return ts
}

// IntersectCircle returns the points where the two circles cross.
// Coincident circles report no points.
func (c Circle) IntersectCircle(o Circle) []Point {
	d := c.Center.Distance(o.Center)
	if d < Tolerance || d > c.Radius+o.Radius+Tolerance || d < math.Abs(c.Radius-o.Radius)-Tolerance {
		return nil
	}
	a := (c.Radius*c.Radius - o.Radius*o.Radius + d*d) / (2 * d)
	h2 := c.Radius*c.Radius - a*a
	if h2 < 0 {
		h2 = 0
	}
	h := math.Sqrt(h2)
	dir := o.Center.Sub(c.Center).Div(d)
	mid := c.Center.Add(dir.Mul(a))
	if h < Tolerance {
		return []Point{mid}
	}
	off := dir.Perp().Mul(h)
	return []Point{mid.Add(off), mid.Sub(off)}
}

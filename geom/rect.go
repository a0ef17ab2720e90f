package geom

import "math"

// Rect represents an axis-aligned rectangle.
// Min is the lower-left corner (minimum coordinates).
// Max is the upper-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// EmptyRect returns a rectangle that contains nothing. Expanding it by a
// point yields the degenerate rectangle at that point.
func EmptyRect() Rect {
	inf := math.Inf(1)
	return Rect{
		Min: Point{X: inf, Y: inf},
		Max: Point{X: -inf, Y: -inf},
	}
}

// IsEmpty reports whether the rectangle contains no points.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return r.Min.Lerp(r.Max, 0.5)
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Expand returns the smallest rectangle containing r and p.
func (r Rect) Expand(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// Inset shrinks the rectangle by d on every side (grows it when d < 0).
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X + d, Y: r.Min.Y + d},
		Max: Point{X: r.Max.X - d, Y: r.Max.Y - d},
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether two rectangles overlap or touch.
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X <= other.Max.X && other.Min.X <= r.Max.X &&
		r.Min.Y <= other.Max.Y && other.Min.Y <= r.Max.Y
}

// Corners returns the corners counter-clockwise from Min.
func (r Rect) Corners() Polygon {
	return Polygon{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
}

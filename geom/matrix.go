package geom

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// TranslateBy creates a translation matrix from a vector.
func TranslateBy(v Point) Matrix {
	return Translate(v.X, v.Y)
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// RotateAbout creates a rotation by angle radians around center.
func RotateAbout(center Point, angle float64) Matrix {
	return Translate(center.X, center.Y).
		Multiply(Rotate(angle)).
		Multiply(Translate(-center.X, -center.Y))
}

// Multiply multiplies two matrices (m * other).
// The result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Matrix) Invert() Matrix {
	det := m.Determinant()
	if math.Abs(det) < 1e-10 {
		return Identity()
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// IsTranslation returns true if the matrix is only a translation.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// Translation returns the translation component.
func (m Matrix) Translation() Point {
	return Point{X: m.C, Y: m.F}
}

// ScaleFactor returns the uniform scale of a similarity transform.
// For non-uniform transforms it returns the geometric mean of the axis
// scales, which is what arc radii are scaled by.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

// Rotation returns the rotation angle (radians) of the linear part.
func (m Matrix) Rotation() float64 {
	return math.Atan2(m.D, m.A)
}

// IsReflection reports whether the transform flips orientation.
func (m Matrix) IsReflection() bool {
	return m.Determinant() < 0
}

// Near reports whether every coefficient of m is within tol of other.
func (m Matrix) Near(other Matrix, tol float64) bool {
	return math.Abs(m.A-other.A) <= tol && math.Abs(m.B-other.B) <= tol &&
		math.Abs(m.C-other.C) <= tol && math.Abs(m.D-other.D) <= tol &&
		math.Abs(m.E-other.E) <= tol && math.Abs(m.F-other.F) <= tol
}

// Aff3 returns the matrix in x/image row-major form.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

// FromAff3 converts an x/image affine matrix.
func FromAff3(a f64.Aff3) Matrix {
	return Matrix{A: a[0], B: a[1], C: a[2], D: a[3], E: a[4], F: a[5]}
}

// String formats the matrix for logs and test failures.
func (m Matrix) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g]", m.A, m.B, m.C, m.D, m.E, m.F)
}

package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D represents the affine transform
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// using the same layout as SVG "matrix(a b c d e f)".
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a * b: b is applied first.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate composes a translation after a.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale composes a scaling after a.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate composes a rotation of theta radians after a.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	s, c := math.Sincos(theta)
	return a.Mult(Matrix2D{c, s, -s, c, 0, 0})
}

// RotateAround composes a rotation of theta radians about (x, y).
func (a Matrix2D) RotateAround(theta, x, y float64) Matrix2D {
	return a.Translate(x, y).Rotate(theta).Translate(-x, -y)
}

// SkewX composes a horizontal skew of theta radians after a.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// Transform applies the matrix to (x, y).
func (a Matrix2D) Transform(x, y float64) (float64, float64) {
	return x*a.A + y*a.C + a.E, x*a.B + y*a.D + a.F
}

// TFixed applies the matrix to a fixed point.
func (a Matrix2D) TFixed(p fixed.Point26_6) fixed.Point26_6 {
	x, y := a.Transform(float64(p.X)/64, float64(p.Y)/64)
	return toFixedP(x, y)
}

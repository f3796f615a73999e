package dxficon

import "math"

const deg2rad = math.Pi / 180

// Bounds defines a bounding box, such as a viewport or a scene
// extent.
type Bounds struct{ X, Y, W, H float64 }

// Matrix2D is an affine transform:
//
//	[A C E]
//	[B D F]
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity matrix.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a|b, a applied after b.
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

// Translate returns a translated matrix.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale returns a scaled matrix.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate returns a matrix rotated by `radians`.
func (a Matrix2D) Rotate(radians float64) Matrix2D {
	sin, cos := math.Sin(radians), math.Cos(radians)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX returns a matrix skewed along X by `radians`.
func (a Matrix2D) SkewX(radians float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(radians), 1, 0, 0})
}

// Apply transforms the point (x, y).
func (a Matrix2D) Apply(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// extents is the running bounding box accumulator of one
// invocation. It only retains finite coordinates; a scene with no
// successfully rendered entity collapses to a zero-sized box at the
// origin (the degenerate min>max state is never exposed).
type extents struct {
	minX, minY float64
	maxX, maxY float64
	seen       bool
}

func newExtents() extents {
	return extents{
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
}

func (e *extents) addX(xs ...float64) {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		e.minX = math.Min(e.minX, x)
		e.maxX = math.Max(e.maxX, x)
		e.seen = true
	}
}

func (e *extents) addY(ys ...float64) {
	for _, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		e.minY = math.Min(e.minY, y)
		e.maxY = math.Max(e.maxY, y)
		e.seen = true
	}
}

func (e extents) bounds() Bounds {
	if !e.seen || e.minX > e.maxX || e.minY > e.maxY {
		return Bounds{}
	}
	return Bounds{X: e.minX, Y: e.minY, W: e.maxX - e.minX, H: e.maxY - e.minY}
}

package geom

import "github.com/gogpu/gg"

// Matrix is a 2D affine transform, shared with the raster backend.
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Matrix = gg.Matrix

// Identity returns the identity transform.
func Identity() Matrix { return gg.Identity() }

// Translate returns a translation by (x, y).
func Translate(x, y float64) Matrix { return gg.Translate(x, y) }

// Scale returns a scaling by (x, y).
func Scale(x, y float64) Matrix { return gg.Scale(x, y) }

// Rotate returns a counter-clockwise rotation by angle radians.
func Rotate(angle float64) Matrix { return gg.Rotate(angle) }

// Scaled returns m * Scale(f.X, f.Y): subsequent drawing is scaled
// before m applies.
func Scaled(m Matrix, f Vec2) Matrix {
	return m.Multiply(gg.Scale(f.X, f.Y))
}

// Translated returns m * Translate(offset).
func Translated(m Matrix, offset Vec2) Matrix {
	return m.Multiply(gg.Translate(offset.X, offset.Y))
}

// Rotated returns m * Rotate(angle).
func Rotated(m Matrix, angle float64) Matrix {
	return m.Multiply(gg.Rotate(angle))
}

// TransformByPoints composes m with the similarity (scale, rotate,
// translate) that maps old1 to new1 and old2 to new2. Drawing at the old
// locations afterwards lands on the new ones.
func TransformByPoints(m Matrix, old1, old2, new1, new2 Vec2) Matrix {
	oldMid := old1.Add(old2).Mul(0.5)
	newMid := new1.Add(new2).Mul(0.5)
	oldDelta := old2.Sub(old1)
	newDelta := new2.Sub(new1)

	factor := newDelta.Length() / oldDelta.Length()
	angle := AngleFrom(oldDelta, newDelta)

	m = Translated(m, newMid)
	m = Rotated(m, angle)
	m = Scaled(m, V2(factor, factor))
	return Translated(m, oldMid.Neg())
}

// TransformPos applies m to a position.
func TransformPos(m Matrix, p Vec2) Vec2 {
	return fromPoint(m.TransformPoint(p.point()))
}

// TransformVec applies the linear part of m to a displacement.
func TransformVec(m Matrix, v Vec2) Vec2 {
	return fromPoint(m.TransformVector(v.point()))
}

// Determinant returns the determinant of the linear part of m.
func Determinant(m Matrix) float64 {
	return m.A*m.E - m.B*m.D
}

// IsReflection reports whether m flips orientation.
func IsReflection(m Matrix) bool {
	return Determinant(m) < 0
}

// CanvasOrder returns m in Canvas2D setTransform order [a b c d e f],
// i.e. [m.A m.D m.B m.E m.C m.F].
func CanvasOrder(m Matrix) []float64 {
	return []float64{m.A, m.D, m.B, m.E, m.C, m.F}
}

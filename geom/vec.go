package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Vector is a position or displacement in either two or three dimensions.
// It is implemented only by Vec2 and Vec3, which lets drawing routines
// accept 3D input wherever they accept 2D input.
type Vector interface {
	// Dim returns 2 or 3.
	Dim() int
	isVector()
}

// Vec2 is a 2D position or displacement. It shares its representation
// and arithmetic with gg.Vec2.
type Vec2 gg.Vec2

// V2 is a convenience function to create a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Dim implements Vector.
func (Vec2) Dim() int { return 2 }

func (Vec2) isVector() {}

func (v Vec2) toGG() gg.Vec2 { return gg.Vec2(v) }

func (v Vec2) point() gg.Point { return gg.Pt(v.X, v.Y) }

func fromPoint(p gg.Point) Vec2 { return Vec2{X: p.X, Y: p.Y} }

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2(v.toGG().Add(w.toGG())) }

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2(v.toGG().Sub(w.toGG())) }

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float64) Vec2 { return Vec2(v.toGG().Mul(s)) }

// Div returns the vector divided by a scalar.
func (v Vec2) Div(s float64) Vec2 { return Vec2(v.toGG().Div(s)) }

// Neg returns the negation of the vector.
func (v Vec2) Neg() Vec2 { return Vec2(v.toGG().Neg()) }

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float64 { return v.toGG().Dot(w.toGG()) }

// Cross returns the out-of-plane component of the cross product v x w.
func (v Vec2) Cross(w Vec2) float64 { return v.toGG().Cross(w.toGG()) }

// Length returns the length of the vector.
func (v Vec2) Length() float64 { return v.toGG().Length() }

// LengthSq returns the squared length of the vector.
func (v Vec2) LengthSq() float64 { return v.toGG().LengthSq() }

// Normalize returns a unit vector in the same direction, or the zero
// vector.
func (v Vec2) Normalize() Vec2 { return Vec2(v.toGG().Normalize()) }

// Lerp interpolates linearly: t=0 returns v, t=1 returns w.
func (v Vec2) Lerp(w Vec2, t float64) Vec2 { return Vec2(v.toGG().Lerp(w.toGG(), t)) }

// Rotate returns the vector rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 { return Vec2(v.toGG().Rotate(angle)) }

// Perp returns the vector rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2(v.toGG().Perp()) }

// IsZero reports whether v is the zero vector.
func (v Vec2) IsZero() bool { return v.toGG().IsZero() }

// Approx reports whether v and w agree within epsilon in each component.
func (v Vec2) Approx(w Vec2, epsilon float64) bool { return v.toGG().Approx(w.toGG(), epsilon) }

// Max returns the component with the largest magnitude, keeping its sign.
func (v Vec2) Max() float64 {
	if math.Abs(v.Y) > math.Abs(v.X) {
		return v.Y
	}
	return v.X
}

// SupNorm returns the largest component magnitude.
func (v Vec2) SupNorm() float64 {
	return math.Abs(v.Max())
}

// Vec3 represents a 3D position or displacement.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Unit vectors along the coordinate axes.
var (
	I = V3(1, 0, 0)
	J = V3(0, 1, 0)
	K = V3(0, 0, 1)
)

// Dim implements Vector.
func (Vec3) Dim() int { return 3 }

func (Vec3) isVector() {}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Mul returns the vector scaled by a scalar.
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Neg returns the negation of the vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the length (magnitude) of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector in the same direction.
// Returns zero vector if the original vector has zero length.
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return v.Mul(1 / length)
}

// Approx returns true if two vectors are approximately equal within epsilon.
func (v Vec3) Approx(w Vec3, epsilon float64) bool {
	return math.Abs(v.X-w.X) < epsilon && math.Abs(v.Y-w.Y) < epsilon && math.Abs(v.Z-w.Z) < epsilon
}

// Max returns the component with the largest magnitude, keeping its sign.
func (v Vec3) Max() float64 {
	m := v.X
	if math.Abs(v.Y) > math.Abs(m) {
		m = v.Y
	}
	if math.Abs(v.Z) > math.Abs(m) {
		m = v.Z
	}
	return m
}

// XY drops the Z component.
func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// To3 extends a 2D vector with z = 0 and returns 3D vectors unchanged.
func To3(v Vector) Vec3 {
	switch v := v.(type) {
	case Vec2:
		return Vec3{X: v.X, Y: v.Y}
	case Vec3:
		return v
	}
	return Vec3{}
}

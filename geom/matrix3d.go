package geom

import "math"

// Matrix3D is a 4x4 homogeneous transformation for 3D positions, stored
// row-major.
type Matrix3D [4][4]float64

// Identity3D returns the 4x4 identity.
func Identity3D() Matrix3D {
	return Matrix3D{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Multiply returns m * other.
func (m Matrix3D) Multiply(other Matrix3D) Matrix3D {
	var r Matrix3D
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += m[i][k] * other[k][j]
			}
			r[i][j] = s
		}
	}
	return r
}

// Scaled returns m composed with a uniform scale.
func (m Matrix3D) Scaled(factor float64) Matrix3D {
	return m.Multiply(Matrix3D{
		{factor, 0, 0, 0},
		{0, factor, 0, 0},
		{0, 0, factor, 0},
		{0, 0, 0, 1},
	})
}

// Translated returns m composed with a translation.
func (m Matrix3D) Translated(offset Vec3) Matrix3D {
	return m.Multiply(Matrix3D{
		{1, 0, 0, offset.X},
		{0, 1, 0, offset.Y},
		{0, 0, 1, offset.Z},
		{0, 0, 0, 1},
	})
}

// RotatedX returns m composed with a rotation about the X axis.
func (m Matrix3D) RotatedX(angle float64) Matrix3D {
	c, s := math.Cos(angle), math.Sin(angle)
	return m.Multiply(Matrix3D{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	})
}

// RotatedY returns m composed with a rotation about the Y axis.
func (m Matrix3D) RotatedY(angle float64) Matrix3D {
	c, s := math.Cos(angle), math.Sin(angle)
	return m.Multiply(Matrix3D{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	})
}

// RotatedZ returns m composed with a rotation about the Z axis.
func (m Matrix3D) RotatedZ(angle float64) Matrix3D {
	c, s := math.Cos(angle), math.Sin(angle)
	return m.Multiply(Matrix3D{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})
}

// Rotated applies the X, then Y, then Z rotations.
func (m Matrix3D) Rotated(angleX, angleY, angleZ float64) Matrix3D {
	return m.RotatedX(angleX).RotatedY(angleY).RotatedZ(angleZ)
}

// TransformPos applies the transformation to a position.
func (m Matrix3D) TransformPos(p Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// TransformVec applies the transformation to a vector (no translation).
func (m Matrix3D) TransformVec(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Invert returns the inverse matrix using Gauss-Jordan elimination with
// partial pivoting. Returns the identity if the matrix is singular.
func (m Matrix3D) Invert() Matrix3D {
	a := m
	inv := Identity3D()
	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-300 {
			return Identity3D()
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		p := a[col][col]
		for j := 0; j < 4; j++ {
			a[col][j] /= p
			inv[col][j] /= p
		}
		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			f := a[row][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 4; j++ {
				a[row][j] -= f * a[col][j]
				inv[row][j] -= f * inv[col][j]
			}
		}
	}
	return inv
}

// OrthProj projects a 3D position onto the XY plane.
func OrthProj(p Vec3) Vec2 {
	return Vec2{X: p.X, Y: p.Y}
}

// Package geom provides the vector and matrix algebra used by pdraw.
//
// Matrix is gg.Matrix, the 2D affine transform of the raster backend;
// Vec2 shares its arithmetic with gg.Vec2. Matrix3D is a 4x4 homogeneous
// transform used for the 3D view rotation. Builders compose on the
// right, so
//
//	m = geom.Rotated(geom.Translated(m, offset), angle)
//
// means "draw rotated, then translate, then apply the old m".
//
// The angle helpers work modulo 2*pi and return angles in [0, 2*pi)
// where that matters (AngleOf, IntersectAngleRanges).
package geom

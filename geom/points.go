package geom

import "math"

// CubicBezierPos evaluates a cubic Bezier curve at t in [0, 1].
func CubicBezierPos(t float64, p0, p1, p2, p3 Vec2) Vec2 {
	u := 1 - t
	return p0.Mul(u * u * u).
		Add(p1.Mul(3 * t * u * u)).
		Add(p2.Mul(3 * u * t * t)).
		Add(p3.Mul(t * t * t))
}

// TranslatePoints offsets every point.
func TranslatePoints(points []Vec2, offset Vec2) []Vec2 {
	out := make([]Vec2, len(points))
	for i, p := range points {
		out[i] = p.Add(offset)
	}
	return out
}

// ScalePoints scales each coordinate independently.
func ScalePoints(points []Vec2, scale Vec2) []Vec2 {
	out := make([]Vec2, len(points))
	for i, p := range points {
		out[i] = Vec2{X: p.X * scale.X, Y: p.Y * scale.Y}
	}
	return out
}

// RotatePoints rotates every point about the origin.
func RotatePoints(points []Vec2, angle float64) []Vec2 {
	out := make([]Vec2, len(points))
	for i, p := range points {
		out[i] = p.Rotate(angle)
	}
	return out
}

// Bounds returns the component-wise minimum and maximum of the points.
func Bounds(points []Vec2) (lo, hi Vec2) {
	if len(points) == 0 {
		return
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo = Vec2{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y)}
		hi = Vec2{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y)}
	}
	return lo, hi
}

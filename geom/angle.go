package geom

import "math"

// Clip restricts x to the interval [a, b].
func Clip(x, a, b float64) float64 {
	return math.Max(a, math.Min(b, x))
}

// FixedMod returns value modulo modulus, always in [0, modulus) for a
// positive modulus.
func FixedMod(value, modulus float64) float64 {
	return math.Mod(math.Mod(value, modulus)+modulus, modulus)
}

// Sign returns -1, 0 or +1.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Interval is a closed range [Start, End].
type Interval struct {
	Start, End float64
}

// IntersectIntervals intersects two intervals. The second return value is
// false when they do not overlap.
func IntersectIntervals(a, b Interval) (Interval, bool) {
	r := Interval{math.Max(a.Start, b.Start), math.Min(a.End, b.End)}
	if r.End < r.Start {
		return Interval{}, false
	}
	return r, true
}

// IntersectAngleRanges intersects two angle ranges modulo 2*pi. Ranges
// given backwards are swapped first. The result has zero, one or two
// pieces because the first range may wrap around zero.
func IntersectAngleRanges(r1, r2 Interval) []Interval {
	if r1.Start > r1.End {
		r1 = Interval{r1.End, r1.Start}
	}
	if r2.Start > r2.End {
		r2 = Interval{r2.End, r2.Start}
	}
	const twoPi = 2 * math.Pi
	start1 := FixedMod(r1.Start, twoPi)
	end1 := FixedMod(r1.End, twoPi)
	start2 := FixedMod(r2.Start, twoPi)
	end2 := FixedMod(r2.End, twoPi)

	var r1List []Interval
	if end1 > start1 {
		r1List = []Interval{{start1, end1}}
	} else {
		r1List = []Interval{{start1 - twoPi, end1}, {start1, end1 + twoPi}}
	}
	r2Use := Interval{start2, end2}
	if end2 <= start2 {
		r2Use.End += twoPi
	}

	var result []Interval
	for _, r1Use := range r1List {
		if r12, ok := IntersectIntervals(r1Use, r2Use); ok {
			result = append(result, r12)
		}
	}
	return result
}

// AngleOf returns the counter-clockwise angle of v from the positive x
// axis, in [0, 2*pi).
func AngleOf(v Vec2) float64 {
	a := math.Atan2(v.Y, v.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// AngleFrom returns the counter-clockwise angle from vFrom to vTo.
func AngleFrom(vFrom, vTo Vec2) float64 {
	return AngleOf(vTo) - AngleOf(vFrom)
}

// Vector2DAtAngle returns the unit vector at the given angle.
func Vector2DAtAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// PolarToRect converts (r, theta) to rectangular coordinates.
func PolarToRect(r, theta float64) Vec2 {
	return Vector2DAtAngle(theta).Mul(r)
}

// Cross2D returns k x v for an out-of-plane vector with component k.
func Cross2D(k float64, v Vec2) Vec2 {
	return Vec2{X: -k * v.Y, Y: k * v.X}
}

// OrthProj3 returns the orthogonal projection of u onto v.
func OrthProj3(u, v Vec3) Vec3 {
	l := v.Length()
	if l < 1e-30 {
		return Vec3{}
	}
	return v.Mul(u.Dot(v) / (l * l))
}

// OrthComp3 returns the component of u orthogonal to v.
func OrthComp3(u, v Vec3) Vec3 {
	return u.Sub(OrthProj3(u, v))
}

// ChooseNormVec returns a unit vector orthogonal to v, built from the
// coordinate axis that v is least aligned with.
func ChooseNormVec(v Vec3) Vec3 {
	e1, e2, e3 := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	var n Vec3
	if e1 <= math.Min(e2, e3) {
		n = I
	}
	if e2 <= math.Min(e3, e1) {
		n = J
	}
	if e3 <= math.Min(e1, e2) {
		n = K
	}
	return OrthComp3(n, v).Normalize()
}

// CosLawAngle returns the angle opposite side c of a triangle with sides
// a, b, c. Degenerate triangles give 0.
func CosLawAngle(a, b, c float64) float64 {
	if a > 0 && b > 0 {
		return math.Acos((a*a + b*b - c*c) / (2 * a * b))
	}
	return 0
}

// CosLawLength returns the side opposite the angle C between sides a and b.
func CosLawLength(a, b, C float64) float64 {
	return math.Sqrt(a*a + b*b - 2*a*b*math.Cos(C))
}

var dirDescriptions = [8]string{
	"rightwards",
	"up and right",
	"upwards",
	"up and left",
	"leftwards",
	"down and left",
	"downwards",
	"down and right",
}

// DirDescription describes a direction angle to within 45 degrees.
func DirDescription(angle float64) string {
	dir := FixedMod(math.Round(angle/(2*math.Pi)*8), 8)
	return dirDescriptions[int(dir)]
}

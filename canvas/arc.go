package canvas

import (
	"math"

	"github.com/gogpu/pdraw/geom"
)

// ArcSweep returns the signed angle swept by a Canvas2D arc from start to
// end. Clockwise sweeps are positive in [0, 2*pi] and anticlockwise
// sweeps negative in [-2*pi, 0], in the y-down pixel convention.
func ArcSweep(start, end float64, anticlockwise bool) float64 {
	const tau = 2 * math.Pi
	if !anticlockwise {
		if end-start >= tau {
			return tau
		}
		return geom.FixedMod(end-start, tau)
	}
	if start-end >= tau {
		return -tau
	}
	return -geom.FixedMod(start-end, tau)
}

// CubicSegment is one cubic Bezier piece: start, two controls, end.
type CubicSegment [4]geom.Vec2

// ArcCubics approximates a circular arc by cubic Bezier segments of at
// most a quarter turn each.
func ArcCubics(center geom.Vec2, radius, start, sweep float64) []CubicSegment {
	if radius <= 0 || sweep == 0 {
		return nil
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	segs := make([]CubicSegment, 0, n)
	a0 := start
	for range n {
		a1 := a0 + step
		c0, s0 := math.Cos(a0), math.Sin(a0)
		c1, s1 := math.Cos(a1), math.Sin(a1)
		p0 := center.Add(geom.V2(c0, s0).Mul(radius))
		p3 := center.Add(geom.V2(c1, s1).Mul(radius))
		p1 := p0.Add(geom.V2(-s0, c0).Mul(k * radius))
		p2 := p3.Sub(geom.V2(-s1, c1).Mul(k * radius))
		segs = append(segs, CubicSegment{p0, p1, p2, p3})
		a0 = a1
	}
	return segs
}

// ArcToGeometry describes how a Canvas2D arcTo call rounds the corner at
// p1 between the lines p0-p1 and p1-p2.
type ArcToGeometry struct {
	// Line is true when the corner is degenerate and arcTo reduces to a
	// straight line to p1.
	Line bool
	// T1 and T2 are the tangent points on p0-p1 and p1-p2.
	T1, T2 geom.Vec2
	Center geom.Vec2
	// Start and End are the arc angles at T1 and T2.
	Start, End    float64
	Anticlockwise bool
}

// ArcToPoints computes the tangent arc of radius r for an arcTo from the
// current point p0 through the corner p1 towards p2.
func ArcToPoints(p0, p1, p2 geom.Vec2, r float64) ArcToGeometry {
	d0 := p0.Sub(p1)
	d2 := p2.Sub(p1)
	if r == 0 || p0.Approx(p1, 1e-12) || p1.Approx(p2, 1e-12) {
		return ArcToGeometry{Line: true, T1: p1, T2: p1}
	}
	cross := d0.Cross(d2)
	if math.Abs(cross) < 1e-12*d0.Length()*d2.Length() {
		return ArcToGeometry{Line: true, T1: p1, T2: p1}
	}
	u0 := d0.Normalize()
	u2 := d2.Normalize()
	cosTheta := geom.Clip(u0.Dot(u2), -1, 1)
	theta := math.Acos(cosTheta)
	dist := r / math.Tan(theta/2)
	t1 := p1.Add(u0.Mul(dist))
	t2 := p1.Add(u2.Mul(dist))
	bis := u0.Add(u2).Normalize()
	center := p1.Add(bis.Mul(r / math.Sin(theta/2)))
	start := math.Atan2(t1.Y-center.Y, t1.X-center.X)
	end := math.Atan2(t2.Y-center.Y, t2.X-center.X)
	return ArcToGeometry{
		T1:            t1,
		T2:            t2,
		Center:        center,
		Start:         start,
		End:           end,
		Anticlockwise: cross > 0,
	}
}

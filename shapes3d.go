package pdraw

import (
	"math"

	"github.com/gogpu/pdraw/geom"
)

// defaultArcSegment is the angular step used to approximate 3D arcs.
const defaultArcSegment = 2 * math.Pi / 40

// Arc3DOptions describes a circle or arc lying in a 3D plane.
type Arc3DOptions struct {
	// Norm is the plane normal. Zero means the z axis.
	Norm geom.Vec3
	// Ref is the direction of angle zero, projected into the plane. Zero
	// means a vector orthogonal to Norm (Arc3D) or the x axis
	// (CircleArrow3D, LabelCircleLine3D).
	Ref geom.Vec3
	// Range holds the start and end angles, counter-clockwise about Norm.
	// Nil means a full turn; Arc3D then draws a closed loop.
	Range *geom.Interval
	// Type selects the arrow color and is used by CircleArrow3D only.
	Type string
	// IdealSegmentSize is the angular step in radians. Zero means 2*pi/40.
	IdealSegmentSize float64
}

// frame returns the in-plane unit vectors u (angle zero) and v (angle
// pi/2) together with the angle range and segment count.
func (o Arc3DOptions) frame(defaultRef func(norm geom.Vec3) geom.Vec3) (u, v geom.Vec3, rng geom.Interval, n int) {
	norm := o.Norm
	if norm == (geom.Vec3{}) {
		norm = geom.K
	}
	ref := o.Ref
	if ref == (geom.Vec3{}) {
		ref = defaultRef(norm)
	}
	u = geom.OrthComp3(ref, norm).Normalize()
	v = norm.Normalize().Cross(u)

	rng = geom.Interval{Start: 0, End: 2 * math.Pi}
	if o.Range != nil {
		rng = *o.Range
	}
	seg := o.IdealSegmentSize
	if seg <= 0 {
		seg = defaultArcSegment
	}
	n = int(math.Ceil(math.Abs(rng.End-rng.Start) / seg))
	return u, v, rng, n
}

func xAxis(geom.Vec3) geom.Vec3 { return geom.I }

// arcPoints samples the circle of radius rad around center in the plane
// spanned by u and v, projected to 2D.
func (r *Renderer) arcPoints(center, u, v geom.Vec3, rad float64, rng geom.Interval, n int) []geom.Vector {
	points := make([]geom.Vector, 0, n+1)
	for i := 0; i <= n; i++ {
		theta := rng.Start
		if n > 0 {
			theta = geom.LinearInterp(rng.Start, rng.End, float64(i)/float64(n))
		}
		p := center.Add(u.Mul(rad * math.Cos(theta))).Add(v.Mul(rad * math.Sin(theta)))
		points = append(points, r.Pos3To2(p))
	}
	return points
}

// Arc3D draws a circular arc in 3D around pos as a polyline of projected
// samples. A full circle is drawn closed but not filled.
func (r *Renderer) Arc3D(pos geom.Vector, rad float64, o Arc3DOptions) {
	if r.failed() {
		return
	}
	u, v, rng, n := o.frame(geom.ChooseNormVec)
	points := r.arcPoints(geom.To3(pos), u, v, rad, rng, n)
	if o.Range == nil {
		r.PolyLine(points[:len(points)-1], true, false)
		return
	}
	r.PolyLine(points, false, false)
}

// CircleArrow3D draws an arrow along a 3D arc, with the head at the end
// angle.
func (r *Renderer) CircleArrow3D(pos geom.Vector, rad float64, o Arc3DOptions) {
	if r.failed() {
		return
	}
	u, v, rng, n := o.frame(xAxis)
	r.PolyLineArrow(r.arcPoints(geom.To3(pos), u, v, rad, rng, n), o.Type)
}

// LabelCircleLine3D labels an arc drawn by Arc3D or CircleArrow3D with
// the same options. anchor.X runs from -1 at the start angle to 1 at the
// end angle and anchor.Y is the side of the arc, outward positive.
func (r *Renderer) LabelCircleLine3D(text string, anchor geom.Vec2, pos geom.Vector, rad float64, o Arc3DOptions) {
	if text == "" || r.failed() {
		return
	}
	u, v, rng, _ := o.frame(xAxis)
	theta := geom.LinearInterp(rng.Start, rng.End, (anchor.X+1)/2)
	c, s := math.Cos(theta), math.Sin(theta)
	p := geom.To3(pos).Add(u.Mul(rad * c)).Add(v.Mul(rad * s))

	t3 := u.Mul(-s).Add(v.Mul(c))
	n3 := u.Mul(c).Add(v.Mul(s))
	t2 := r.Vec2Px(r.Vec3To2(t3, p))
	n2 := r.Vec2Px(r.Vec3To2(n3, p))
	n2 = geom.OrthComp3(geom.To3(n2), geom.To3(t2)).XY().Normalize()
	t2 = t2.Normalize()

	off := r.Vec2Dw(t2.Mul(anchor.X).Add(n2.Mul(anchor.Y)))
	a := scaleAnchor(off.Neg().Normalize(), anchor)
	r.Text(r.Pos3To2(p), a, text)
}

// Sphere draws the outline of a sphere, which under orthographic
// projection is a circle around the projected center.
func (r *Renderer) Sphere(pos geom.Vec3, rad float64, filled bool) {
	posVw := r.PosDwToVw(pos)
	edgeVw := r.PosDwToVw(pos.Add(geom.V3(rad, 0, 0)))
	r.Circle(geom.OrthProj(posVw), edgeVw.Sub(posVw).Length(), filled)
}

// SphereSliceOptions selects which parts of a sphere slice are drawn.
type SphereSliceOptions struct {
	HideBack  bool
	HideFront bool
	// Ref is the direction of angle zero in the slice plane. Zero means
	// the in-plane direction closest to the viewer.
	Ref geom.Vec3
	// Range restricts the slice to an angle range about the normal.
	Range *geom.Interval
}

// sliceVisibility is the outcome of classifying a sphere slice against
// the view direction.
type sliceVisibility uint8

const (
	sliceNone      sliceVisibility = iota // no circle: |dist| >= rad
	sliceFacing                           // normal parallel to the view axis
	sliceFrontOnly                        // whole circle in front
	sliceBackOnly                         // whole circle behind
	sliceSplit                            // front and back parts
)

// sphereSlice holds the geometry of one slice in view coordinates.
type sphereSlice struct {
	vis    sliceVisibility
	center geom.Vec3 // drawing coordinates
	radius float64
	ref    geom.Vec3
	// theta1..theta2 is the hidden part of a split slice.
	theta1, theta2 float64
}

// classifySphereSlice finds which part of the circle where the plane at
// distance dist along norm cuts the sphere faces the viewer. The circle
// point at angle theta has view depth A + B cos(theta) + C sin(theta)
// relative to the sphere center; it is hidden where that is negative.
func (r *Renderer) classifySphereSlice(pos geom.Vec3, rad float64, norm geom.Vec3, dist float64, ref geom.Vec3) sphereSlice {
	cRSq := rad*rad - dist*dist
	if cRSq <= 0 {
		return sphereSlice{vis: sliceNone}
	}
	s := sphereSlice{
		radius: math.Sqrt(cRSq),
		center: pos.Add(norm.Normalize().Mul(dist)),
		ref:    ref,
	}
	normVw := r.VecDwToVw(norm)
	if geom.OrthComp3(geom.K, normVw).Length() < 1e-10 {
		s.vis = sliceFacing
		return s
	}
	if s.ref == (geom.Vec3{}) {
		s.ref = r.VecVwToDw(geom.OrthComp3(geom.K, normVw))
	}
	uVw := r.VecDwToVw(s.ref).Normalize()
	vVw := normVw.Normalize().Cross(uVw)
	dVw := r.VecDwToVw(norm.Normalize().Mul(dist))
	cRVw := r.VecDwToVw(s.ref.Normalize().Mul(s.radius)).Length()

	a := -dVw.Z
	b := uVw.Z * cRVw
	c := vVw.Z * cRVw
	an := a / math.Hypot(b, c)
	phi := math.Atan2(c, b)
	switch {
	case an <= -1:
		s.vis = sliceFrontOnly
	case an >= 1:
		s.vis = sliceBackOnly
	default:
		s.vis = sliceSplit
		acosAN := math.Acos(an)
		s.theta1 = phi + acosAN
		s.theta2 = phi + 2*math.Pi - acosAN
	}
	return s
}

// SphereSlice draws the circle where a plane cuts the sphere at pos. The
// plane has normal norm and lies dist from the center. Parts of the
// circle behind the sphere use the hidden line style and are skipped
// when the hiddenLineDraw property is false. A great circle whose normal
// points at the viewer coincides with the outline and is not drawn.
func (r *Renderer) SphereSlice(pos geom.Vec3, rad float64, norm geom.Vec3, dist float64, o SphereSliceOptions) {
	if r.failed() {
		return
	}
	s := r.classifySphereSlice(pos, rad, norm, dist, o.Ref)
	arc := func(rng *geom.Interval) {
		r.Arc3D(s.center, s.radius, Arc3DOptions{Norm: norm, Ref: s.ref, Range: rng})
	}
	hidden := func(fn func()) {
		r.Save()
		r.SetShapeDrawHidden()
		fn()
		_ = r.Restore()
	}
	clipped := func(from, to float64) {
		if o.Range == nil {
			arc(&geom.Interval{Start: from, End: to})
			return
		}
		for _, rng := range geom.IntersectAngleRanges(geom.Interval{Start: from, End: to}, *o.Range) {
			arc(&rng)
		}
	}
	drawBack := !o.HideBack && r.flag("hiddenLineDraw")

	switch s.vis {
	case sliceFacing:
		switch {
		case dist > 0 && !o.HideFront:
			arc(o.Range)
		case dist < 0 && drawBack:
			hidden(func() { arc(o.Range) })
		}
	case sliceFrontOnly:
		if !o.HideFront {
			arc(o.Range)
		}
	case sliceBackOnly:
		if drawBack {
			hidden(func() { arc(o.Range) })
		}
	case sliceSplit:
		if drawBack && s.theta2 > s.theta1 {
			hidden(func() { clipped(s.theta1, s.theta2) })
		}
		if !o.HideFront {
			clipped(s.theta2, s.theta1+2*math.Pi)
		}
	}
}

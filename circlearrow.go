package pdraw

import (
	"math"

	"github.com/gogpu/pdraw/geom"
)

// ArrowOption configures CircleArrow and LabelCircleLine.
type ArrowOption func(*arrowOptions)

type arrowOptions struct {
	fixedRadius bool
	segment     float64
}

// FixedRadius draws a circle arrow as a true arc instead of a spiral.
func FixedRadius() ArrowOption {
	return func(o *arrowOptions) {
		o.fixedRadius = true
	}
}

// SegmentSize sets the angle in radians of the line segments that
// approximate a circle arrow. The default is 0.2.
func SegmentSize(rad float64) ArrowOption {
	return func(o *arrowOptions) {
		if rad > 0 {
			o.segment = rad
		}
	}
}

func arrowOpts(opts []ArrowOption) arrowOptions {
	o := arrowOptions{segment: 0.2}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CircleArrowCentered draws a circle arrow spanning extent radians
// centered on the angle center.
func (r *Renderer) CircleArrowCentered(pos geom.Vec2, rad, center, extent float64, typ string, opts ...ArrowOption) {
	r.CircleArrow(pos, rad, center-extent/2, center+extent/2, typ, opts...)
}

// CircleArrow draws a curved arrow around pos from angle start to angle
// end (counter-clockwise, radians). rad is the radius at the mid-angle.
// Unless FixedRadius is given, the radius grows towards the head and
// shrinks towards the tail, so arrows of more than one turn do not
// overlap.
func (r *Renderer) CircleArrow(pos geom.Vec2, rad, start, end float64, typ string, opts ...ArrowOption) {
	s, ok := r.arrowStyle(typ)
	if !ok {
		return
	}
	o := arrowOpts(opts)

	r.Save()
	defer func() { _ = r.Restore() }()
	r.apply(s)

	posPx := r.Pos2Px(pos)
	startOffsetPx := r.Vec2Px(geom.Vector2DAtAngle(start).Mul(rad))
	radiusPx := startOffsetPx.Length()
	startPx := geom.AngleOf(startOffsetPx)
	delta := end - start
	if r.IsReflection() {
		delta = -delta
	}
	endPx := startPx + delta
	radiusAt := func(angle float64) float64 {
		return r.circleArrowRadius(radiusPx, angle, startPx, endPx, o.fixedRadius)
	}

	startRadius := radiusAt(startPx)
	endRadius := radiusAt(endPx)
	headLen := r.arrowheadLength(radiusPx * math.Abs(endPx-startPx))
	offsetRatio := r.num("arrowheadOffsetRatio")
	headAngle := (1 - offsetRatio) * headLen / endRadius
	extraAngle := (1 - offsetRatio/3) * headLen / endRadius
	sign := geom.Sign(endPx - startPx)
	preEnd := endPx - sign*headAngle
	baseAngle := endPx - sign*extraAngle

	r.ctx.Save()
	r.ctx.Translate(posPx.X, posPx.Y)
	n := int(math.Ceil(math.Abs(preEnd-startPx) / o.segment))
	p := geom.Vector2DAtAngle(startPx).Mul(startRadius)
	r.ctx.BeginPath()
	r.ctx.MoveTo(p.X, p.Y)
	for i := 1; i <= n; i++ {
		a := geom.LinearInterp(startPx, preEnd, float64(i)/float64(n))
		p = geom.Vector2DAtAngle(a).Mul(radiusAt(a))
		r.ctx.LineTo(p.X, p.Y)
	}
	r.ctx.Stroke()
	r.ctx.Restore()

	tipPx := posPx.Add(geom.Vector2DAtAngle(endPx).Mul(endRadius))
	basePx := posPx.Add(geom.Vector2DAtAngle(baseAngle).Mul(radiusAt(baseAngle)))
	r.arrowhead(r.Pos2Dw(tipPx), r.Vec2Dw(tipPx.Sub(basePx)), headLen)
}

// circleArrowRadius returns the pixel radius of a circle arrow at angle.
func (r *Renderer) circleArrowRadius(midRad, angle, start, end float64, fixed bool) float64 {
	if fixed || math.Abs(end-start) < 1e-4 {
		return midRad
	}
	maxHead := r.num("arrowheadLengthRatio") * r.num("arrowLineWidthPx")
	spacing := maxHead * r.num("arrowheadWidthRatio") * r.num("circleArrowWrapOffsetRatio")
	density := midRad * 2 * math.Pi / spacing
	mid := (start + end) / 2
	offset := (angle - mid) * geom.Sign(end-start)
	if offset > 0 {
		return midRad * (1 + offset/density)
	}
	return midRad * math.Exp(offset/density)
}

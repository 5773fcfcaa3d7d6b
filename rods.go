package pdraw

import (
	"math"

	"github.com/gogpu/pdraw/geom"
)

// rodFrame moves the canvas origin to start and aligns the x axis with
// dir, both in drawing space. It returns the pixel half-width of a rod of
// the given width.
func (r *Renderer) rodFrame(start, dir geom.Vec2, width float64) float64 {
	w := dir.Perp().Normalize().Mul(width)
	p := r.Pos2Px(start)
	r.ctx.Translate(p.X, p.Y)
	r.ctx.Rotate(geom.AngleOf(r.Vec2Px(dir)))
	return r.Vec2Px(w).Length() / 2
}

// finishRod fills the current path unless shapeInsideColor is "none" and
// strokes it in the shape style.
func (r *Renderer) finishRod(s lineStyle) {
	if inside := r.str("shapeInsideColor"); inside != "none" {
		r.ctx.SetFillStyle(inside)
		r.ctx.Fill()
	}
	r.ctx.SetLineWidth(s.width)
	r.ctx.SetLineDash(s.dash)
	r.ctx.SetStrokeStyle(r.str("shapeOutlineColor"))
	r.ctx.Stroke()
}

// Rod draws a bar of the given width with rounded ends centered on the
// hinge points start and end.
func (r *Renderer) Rod(start, end geom.Vec2, width float64) {
	s, ok := r.shapeStyle("")
	if !ok {
		return
	}
	offset := end.Sub(start)
	length := r.Vec2Px(offset).Length()

	r.ctx.Save()
	rp := r.rodFrame(start, offset, width)
	r.ctx.BeginPath()
	r.ctx.MoveTo(0, rp)
	r.ctx.ArcTo(length+rp, rp, length+rp, -rp, rp)
	r.ctx.ArcTo(length+rp, -rp, 0, -rp, rp)
	r.ctx.ArcTo(-rp, -rp, -rp, rp, rp)
	r.ctx.ArcTo(-rp, rp, 0, rp, rp)
	r.finishRod(s)
	r.ctx.Restore()
}

// LShapeRod draws an L-shaped bar with hinge points at start, center and
// end. The inner and outer corners at center are filleted with the bar's
// half-width.
func (r *Renderer) LShapeRod(start, center, end geom.Vec2, width float64) {
	s, ok := r.shapeStyle("")
	if !ok {
		return
	}
	o1 := center.Sub(start)
	o2 := end.Sub(center)
	o1Px, o2Px := r.Vec2Px(o1), r.Vec2Px(o2)
	l1, l2 := o1Px.Length(), o2Px.Length()

	r.ctx.Save()
	rp := r.rodFrame(start, o1, width)
	r.ctx.BeginPath()
	r.ctx.MoveTo(0, rp)

	beta := -geom.AngleFrom(o1Px, o2Px)
	sb, cb, tb := math.Sin(beta), math.Cos(beta), math.Tan(beta)
	x1, y1 := l1+rp/sb-rp/tb, rp
	x2, y2 := l1+l2*cb, -l2*sb
	x3, y3 := x2+rp*sb, y2+rp*cb
	x4, y4 := x3+rp*cb, y3-rp*sb
	x5, y5 := x2+rp*cb, y2-rp*sb
	x6, y6 := x5-rp*sb, y5-rp*cb
	x7, y7 := l1-rp/sb+rp/tb, -rp

	r.ctx.ArcTo(x1, y1, x3, y3, rp)
	r.ctx.ArcTo(x4, y4, x5, y5, rp)
	r.ctx.ArcTo(x6, y6, x7, y7, rp)
	r.ctx.ArcTo(x7, y7, 0, -rp, rp)
	r.ctx.ArcTo(-rp, -rp, -rp, rp, rp)
	r.ctx.ArcTo(-rp, rp, 0, rp, rp)
	r.finishRod(s)
	r.ctx.Restore()
}

// TShapeRod draws a T-shaped bar: a bar from start to center branching
// to end and centerEnd.
func (r *Renderer) TShapeRod(start, center, end, centerEnd geom.Vec2, width float64) {
	s, ok := r.shapeStyle("")
	if !ok {
		return
	}
	oStart := center.Sub(start)
	oStartPx := r.Vec2Px(oStart)
	oEndPx := r.Vec2Px(end.Sub(center))
	oCenterPx := r.Vec2Px(centerEnd.Sub(center))

	r.ctx.Save()
	rp := r.rodFrame(start, oStart, width)
	r.ctx.BeginPath()
	r.ctx.MoveTo(0, rp)

	startToEnd := geom.AngleFrom(oStartPx, oEndPx)
	endToCenter := geom.AngleFrom(oEndPx, oCenterPx)

	l1 := oStartPx.Length()
	var l2, l3, beta, alpha float64
	if math.Abs(endToCenter) < math.Pi {
		l2, l3 = oEndPx.Length(), oCenterPx.Length()
		beta, alpha = -startToEnd, -endToCenter
	} else {
		l2, l3 = oCenterPx.Length(), oEndPx.Length()
		beta, alpha = -geom.AngleFrom(oStartPx, oCenterPx), endToCenter
	}

	sb, cb, tb := math.Sin(beta), math.Cos(beta), math.Tan(beta)
	ba := beta + alpha
	sba, cba, tba := math.Sin(ba), math.Cos(ba), math.Tan(ba)
	k := 1/math.Sin(alpha) + 1/math.Tan(alpha) - tb

	x1, y1 := l1+rp/sb-rp/tb, rp
	x2, y2 := l1+l2*cb, -l2*sb
	x3, y3 := x2+rp*sb, y2+rp*cb
	x4, y4 := x3+rp*cb, y3-rp*sb
	x5, y5 := x2+rp*cb, y2-rp*sb
	x6, y6 := x5-rp*sb, y5-rp*cb
	x7, y7 := l1+rp*cb*k, -rp/cb-rp*sb*k
	x8, y8 := l1+l3*cba, -l3*sba
	x9, y9 := x8+rp*sba, y8+rp*cba
	x10, y10 := x9+rp*cba, y9-rp*sba
	x11, y11 := x8+rp*cba, y8-rp*sba
	x12, y12 := x11-rp*sba, y11-rp*cba
	x13, y13 := l1-rp/sba+rp/tba, -rp

	r.ctx.ArcTo(x1, y1, x3, y3, rp)
	r.ctx.ArcTo(x4, y4, x5, y5, rp)
	r.ctx.ArcTo(x6, y6, x7, y7, rp)
	r.ctx.ArcTo(x7, y7, x9, y9, rp)
	r.ctx.ArcTo(x10, y10, x11, y11, rp)
	r.ctx.ArcTo(x12, y12, x13, y13, rp)
	r.ctx.ArcTo(x13, y13, 0, -rp, rp)
	r.ctx.ArcTo(-rp, -rp, -rp, rp, rp)
	r.ctx.ArcTo(-rp, rp, 0, rp, rp)
	r.finishRod(s)
	r.ctx.Restore()
}

// Pivot draws a support that is flat at base and rounded around hinge.
func (r *Renderer) Pivot(base, hinge geom.Vec2, width float64) {
	s, ok := r.shapeStyle("")
	if !ok {
		return
	}
	offset := hinge.Sub(base)
	length := r.Vec2Px(offset).Length()

	r.ctx.Save()
	rp := r.rodFrame(base, offset, width)
	r.ctx.BeginPath()
	r.ctx.MoveTo(0, rp)
	r.ctx.ArcTo(length+rp, rp, length+rp, -rp, rp)
	r.ctx.ArcTo(length+rp, -rp, 0, -rp, rp)
	r.ctx.LineTo(0, -rp)
	r.ctx.ClosePath()
	r.applyShape(s)
	r.ctx.Fill()
	r.ctx.Stroke()
	r.ctx.Restore()
}

// Square draws a square whose base edge is centered on base and whose
// center is center.
func (r *Renderer) Square(base, center geom.Vec2) {
	s, ok := r.shapeStyle("")
	if !ok {
		return
	}
	b := r.Pos2Px(base)
	offset := r.Pos2Px(center).Sub(b)
	rp := offset.Length()

	r.ctx.Save()
	r.ctx.Translate(b.X, b.Y)
	r.ctx.Rotate(geom.AngleOf(offset))
	r.ctx.BeginPath()
	r.ctx.Rect(0, -rp, 2*rp, 2*rp)
	r.applyShape(s)
	r.ctx.Fill()
	r.ctx.Stroke()
	r.ctx.Restore()
}

// Rectangle draws a width by height rectangle centered on center and
// rotated by angle.
func (r *Renderer) Rectangle(width, height float64, center geom.Vec2, angle float64, filled bool) {
	if r.failed() {
		return
	}
	w, h := width/2, height/2
	points := []geom.Vector{
		geom.V2(-w, -h),
		geom.V2(w, -h),
		geom.V2(w, h),
		geom.V2(-w, h),
	}
	r.Save()
	r.Translate(center)
	r.Rotate(angle)
	r.PolyLine(points, true, filled)
	_ = r.Restore()
}

// RectangleGeneric draws the filled rectangle with one edge from p1 to p2
// extending height to its left.
func (r *Renderer) RectangleGeneric(p1, p2 geom.Vec2, height float64) {
	d := p2.Sub(p1).Perp().Normalize().Mul(height)
	r.PolyLine([]geom.Vector{p1, p2, p2.Add(d), p1.Add(d)}, true, true)
}

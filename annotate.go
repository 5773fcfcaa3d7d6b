package pdraw

import (
	"math"

	"github.com/gogpu/pdraw/geom"
)

// CenterOfMass draws the crossed-circle center of mass symbol.
func (r *Renderer) CenterOfMass(pos geom.Vector) {
	if r.failed() {
		return
	}
	p := r.Pos2Px(r.Pos3To2(pos))
	rad := r.num("centerOfMassRadiusPx")

	r.ctx.Save()
	r.ctx.SetLineWidth(r.num("centerOfMassStrokeWidthPx"))
	r.ctx.SetStrokeStyle(r.str("centerOfMassColor"))
	r.ctx.Translate(p.X, p.Y)

	r.ctx.BeginPath()
	r.ctx.MoveTo(-rad, 0)
	r.ctx.LineTo(rad, 0)
	r.ctx.Stroke()

	r.ctx.BeginPath()
	r.ctx.MoveTo(0, -rad)
	r.ctx.LineTo(0, rad)
	r.ctx.Stroke()

	r.ctx.BeginPath()
	r.ctx.Arc(0, 0, rad, 0, 2*math.Pi, false)
	r.ctx.Stroke()
	r.ctx.Restore()
}

// Measurement draws a dimension line between start and end, offset to
// the right of the start-end direction, labelled with text.
func (r *Renderer) Measurement(start, end geom.Vec2, text string) {
	s, ok := r.resolveStyle("measurementStrokeWidthPx", "measurementStrokePattern", "")
	if !ok {
		return
	}
	p0 := r.Pos2Px(start)
	p1 := r.Pos2Px(end)
	offset := p1.Sub(p0)
	d := offset.Length()
	h := r.num("measurementEndLengthPx")
	o := r.num("measurementOffsetPx")

	r.ctx.Save()
	r.ctx.SetLineWidth(s.width)
	r.ctx.SetLineDash(s.dash)
	r.ctx.SetStrokeStyle(r.str("measurementColor"))
	r.ctx.Translate(p0.X, p0.Y)
	r.ctx.Rotate(geom.AngleOf(offset))

	r.ctx.BeginPath()
	r.ctx.MoveTo(0, o)
	r.ctx.LineTo(0, o+h)
	r.ctx.Stroke()

	r.ctx.BeginPath()
	r.ctx.MoveTo(d, o)
	r.ctx.LineTo(d, o+h)
	r.ctx.Stroke()

	r.ctx.BeginPath()
	r.ctx.MoveTo(0, o+h/2)
	r.ctx.LineTo(d, o+h/2)
	r.ctx.Stroke()
	r.ctx.Restore()

	orth := offset.Rotate(-math.Pi / 2).Normalize().Mul(-o - h/2)
	r.LabelLine(r.Pos2Dw(p0.Add(orth)), r.Pos2Dw(p1.Add(orth)), geom.V2(0, -1), text)
}

// RightAngle draws a right angle marker at pos between dir and norm. In
// 2D norm may be nil, and the marker turns counter-clockwise from dir.
// 3D positions require norm.
func (r *Renderer) RightAngle(pos, dir, norm geom.Vector) {
	if r.failed() {
		return
	}
	size := r.num("rightAngleSizePx")
	var p, dirPx, normPx geom.Vec2
	if pos.Dim() == 3 {
		dir3 := geom.To3(dir)
		if dir3.Length() < 1e-20 || norm == nil {
			return
		}
		p = r.Pos2Px(r.Pos3To2(pos))
		d := geom.To3(r.Vec2Dw(geom.V2(size, 0))).Length()
		dirPx = r.Vec2Px(r.Vec3To2(dir3.Normalize().Mul(d), pos))
		normPx = r.Vec2Px(r.Vec3To2(geom.To3(norm).Normalize().Mul(d), pos))
	} else {
		dir2 := geom.To3(dir).XY()
		if dir2.Length() < 1e-20 {
			return
		}
		p = r.Pos2Px(r.Pos3To2(pos))
		dirPx = r.Vec2Px(dir2).Normalize().Mul(size)
		if norm != nil {
			normPx = r.Vec2Px(geom.To3(norm).XY()).Normalize().Mul(size)
		} else {
			normPx = dirPx.Rotate(-math.Pi / 2)
		}
	}

	r.ctx.Save()
	r.ctx.Translate(p.X, p.Y)
	r.ctx.SetLineWidth(r.num("rightAngleStrokeWidthPx"))
	r.ctx.SetStrokeStyle(r.str("rightAngleColor"))
	r.ctx.BeginPath()
	r.ctx.MoveTo(dirPx.X, dirPx.Y)
	r.ctx.LineTo(dirPx.X+normPx.X, dirPx.Y+normPx.Y)
	r.ctx.LineTo(normPx.X, normPx.Y)
	r.ctx.Stroke()
	r.ctx.Restore()
}

// RightAngleImproved draws a right angle marker at p0 between the
// directions to p1 and p2, shrunk to fit short legs.
func (r *Renderer) RightAngleImproved(p0, p1, p2 geom.Vector) {
	if r.failed() {
		return
	}
	a := r.Pos2Px(r.Pos3To2(p0))
	d1 := r.Pos2Px(r.Pos3To2(p1)).Sub(a)
	d2 := r.Pos2Px(r.Pos3To2(p2)).Sub(a)
	minLen := math.Min(d1.Length(), d2.Length())
	if minLen < 1e-10 {
		return
	}
	size := math.Min(minLen/2, r.num("rightAngleSizePx"))
	d1 = d1.Normalize().Mul(size)
	d2 = d2.Normalize().Mul(size)
	b := a.Add(d1)
	c := a.Add(d2)
	corner := b.Add(d2)

	r.ctx.Save()
	r.ctx.SetLineWidth(r.num("rightAngleStrokeWidthPx"))
	r.ctx.SetStrokeStyle(r.str("rightAngleColor"))
	r.ctx.BeginPath()
	r.ctx.MoveTo(b.X, b.Y)
	r.ctx.LineTo(corner.X, corner.Y)
	r.ctx.LineTo(c.X, c.Y)
	r.ctx.Stroke()
	r.ctx.Restore()
}

package pdraw

import (
	"math"

	"github.com/gogpu/pdraw/geom"
)

// Point draws a filled dot of pointRadiusPx pixels.
func (r *Renderer) Point(pos geom.Vector) {
	if r.failed() {
		return
	}
	p := r.Pos2Px(r.Pos3To2(pos))
	r.ctx.BeginPath()
	r.ctx.Arc(p.X, p.Y, r.num("pointRadiusPx"), 0, 2*math.Pi, false)
	r.ctx.SetFillStyle(r.str("shapeOutlineColor"))
	r.ctx.Fill()
}

// Line draws a straight line in the shape style. typ selects the color,
// see ColorFor.
func (r *Renderer) Line(start, end geom.Vector, typ string) {
	s, ok := r.shapeStyle(typ)
	if !ok {
		return
	}
	p0 := r.Pos2Px(r.Pos3To2(start))
	p1 := r.Pos2Px(r.Pos3To2(end))
	r.ctx.Save()
	r.apply(s)
	r.ctx.BeginPath()
	r.ctx.MoveTo(p0.X, p0.Y)
	r.ctx.LineTo(p1.X, p1.Y)
	r.ctx.Stroke()
	r.ctx.Restore()
}

// CubicBezier draws a cubic Bezier segment in the shape style.
func (r *Renderer) CubicBezier(p0, p1, p2, p3 geom.Vector, typ string) {
	s, ok := r.shapeStyle(typ)
	if !ok {
		return
	}
	a := r.Pos2Px(r.Pos3To2(p0))
	b := r.Pos2Px(r.Pos3To2(p1))
	c := r.Pos2Px(r.Pos3To2(p2))
	d := r.Pos2Px(r.Pos3To2(p3))
	r.ctx.Save()
	r.apply(s)
	r.ctx.BeginPath()
	r.ctx.MoveTo(a.X, a.Y)
	r.ctx.BezierCurveTo(b.X, b.Y, c.X, c.Y, d.X, d.Y)
	r.ctx.Stroke()
	r.ctx.Restore()
}

// arrowheadLength returns the arrowhead length for an arrow of the given
// pixel length: the ratio-derived maximum, but at most half the arrow.
func (r *Renderer) arrowheadLength(arrowLengthPx float64) float64 {
	maxLen := r.num("arrowheadLengthRatio") * r.num("arrowLineWidthPx")
	return math.Min(maxLen, arrowLengthPx/2)
}

// arrowheadPx fills an arrowhead with its tip at pos pointing along dir,
// all in pixels. The fill style must already be set.
func (r *Renderer) arrowheadPx(pos, dir geom.Vec2, length float64) {
	dx := -(1 - r.num("arrowheadOffsetRatio")) * length
	dy := r.num("arrowheadWidthRatio") * length

	r.ctx.Save()
	r.ctx.Translate(pos.X, pos.Y)
	r.ctx.Rotate(geom.AngleOf(dir))
	r.ctx.BeginPath()
	r.ctx.MoveTo(0, 0)
	r.ctx.LineTo(-length, dy)
	r.ctx.LineTo(dx, 0)
	r.ctx.LineTo(-length, -dy)
	r.ctx.ClosePath()
	r.ctx.Fill()
	r.ctx.Restore()
}

func (r *Renderer) arrowhead(pos, dir geom.Vec2, lengthPx float64) {
	r.arrowheadPx(r.Pos2Px(pos), r.Vec2Px(dir), lengthPx)
}

// Arrow draws an arrow from start to end. The line stops short of the
// end so that the tip of the head lands exactly on end. Arrows shorter
// than one pixel are drawn as plain lines.
func (r *Renderer) Arrow(start, end geom.Vector, typ string) {
	s, ok := r.arrowStyle(typ)
	if !ok {
		return
	}
	startDw := r.Pos3To2(start)
	endDw := r.Pos3To2(end)
	offset := endDw.Sub(startDw)
	length := r.Vec2Px(offset).Length()

	lineEnd := endDw
	var headLen float64
	drawHead := length >= 1
	if drawHead {
		headLen = r.arrowheadLength(length)
		centerLen := (1 - r.num("arrowheadOffsetRatio")) * headLen
		lineEnd = startDw.Add(offset.Mul((length - centerLen) / length))
	}

	p0 := r.Pos2Px(startDw)
	p1 := r.Pos2Px(lineEnd)
	r.Save()
	r.apply(s)
	r.ctx.BeginPath()
	r.ctx.MoveTo(p0.X, p0.Y)
	r.ctx.LineTo(p1.X, p1.Y)
	r.ctx.Stroke()
	if drawHead {
		r.arrowhead(endDw, offset, headLen)
	}
	_ = r.Restore()
}

// ArrowFrom draws an arrow from start along offset.
func (r *Renderer) ArrowFrom(start, offset geom.Vector, typ string) {
	if start.Dim() == 3 || offset.Dim() == 3 {
		r.Arrow(geom.To3(start), geom.To3(start).Add(geom.To3(offset)), typ)
		return
	}
	s := start.(geom.Vec2)
	r.Arrow(s, s.Add(offset.(geom.Vec2)), typ)
}

// ArrowTo draws an arrow ending at end with the given offset.
func (r *Renderer) ArrowTo(end, offset geom.Vector, typ string) {
	if end.Dim() == 3 || offset.Dim() == 3 {
		r.Arrow(geom.To3(end).Sub(geom.To3(offset)), geom.To3(end), typ)
		return
	}
	e := end.(geom.Vec2)
	r.Arrow(e.Sub(offset.(geom.Vec2)), e, typ)
}

// ArrowOutOfPage draws a circle with a centered dot.
func (r *Renderer) ArrowOutOfPage(pos geom.Vector, typ string) {
	if r.failed() {
		return
	}
	p := r.Pos2Px(r.Pos3To2(pos))
	rad := r.num("arrowOutOfPageRadiusPx")
	lw := r.num("arrowLineWidthPx")
	col := r.ColorFor(typ)

	r.ctx.Save()
	r.ctx.Translate(p.X, p.Y)
	r.ctx.BeginPath()
	r.ctx.Arc(0, 0, rad, 0, 2*math.Pi, false)
	r.ctx.SetFillStyle("rgb(255, 255, 255)")
	r.ctx.Fill()

	r.ctx.SetLineWidth(lw)
	r.ctx.SetStrokeStyle(col)
	r.ctx.SetFillStyle(col)
	r.ctx.Stroke()

	r.ctx.BeginPath()
	r.ctx.Arc(0, 0, lw*0.7, 0, 2*math.Pi, false)
	r.ctx.Fill()
	r.ctx.Restore()
}

// ArrowIntoPage draws a circle with a cross.
func (r *Renderer) ArrowIntoPage(pos geom.Vector, typ string) {
	if r.failed() {
		return
	}
	p := r.Pos2Px(r.Pos3To2(pos))
	rad := r.num("arrowOutOfPageRadiusPx")
	rs := rad / math.Sqrt2
	col := r.ColorFor(typ)

	r.ctx.Save()
	r.ctx.SetLineWidth(r.num("arrowLineWidthPx"))
	r.ctx.SetStrokeStyle(col)
	r.ctx.SetFillStyle(col)
	r.ctx.Translate(p.X, p.Y)

	r.ctx.BeginPath()
	r.ctx.Arc(0, 0, rad, 0, 2*math.Pi, false)
	r.ctx.SetFillStyle("rgb(255, 255, 255)")
	r.ctx.Fill()
	r.ctx.Stroke()

	r.ctx.BeginPath()
	r.ctx.MoveTo(-rs, -rs)
	r.ctx.LineTo(rs, rs)
	r.ctx.Stroke()

	r.ctx.BeginPath()
	r.ctx.MoveTo(rs, -rs)
	r.ctx.LineTo(-rs, rs)
	r.ctx.Stroke()
	r.ctx.Restore()
}

package pdraw

import (
	"math"

	"github.com/gogpu/pdraw/geom"
)

// applyShape strokes in the shape outline color and fills in the shape
// inside color.
func (r *Renderer) applyShape(s lineStyle) {
	r.ctx.SetLineWidth(s.width)
	r.ctx.SetLineDash(s.dash)
	r.ctx.SetStrokeStyle(r.str("shapeOutlineColor"))
	r.ctx.SetFillStyle(r.str("shapeInsideColor"))
}

// radiusPx returns the pixel length of a drawing-space radius measured
// along the x axis.
func (r *Renderer) radiusPx(rad float64) float64 {
	return r.Vec2Px(geom.V2(rad, 0)).Length()
}

// Arc draws a circular arc, or an elliptical one when aspect (major over
// minor axis) is not 1. Angles are counter-clockwise in drawing space.
func (r *Renderer) Arc(center geom.Vec2, rad, start, end float64, filled bool, aspect float64) {
	s, ok := r.shapeStyle("")
	if !ok {
		return
	}
	if aspect == 0 {
		aspect = 1
	}
	c := r.Pos2Px(center)
	offset := r.Vec2Px(geom.V2(rad, 0))

	r.ctx.Save()
	r.applyShape(s)
	r.ctx.Save()
	r.ctx.Translate(c.X, c.Y)
	r.ctx.Rotate(geom.AngleOf(offset))
	r.ctx.Scale(1, 1/aspect)
	r.ctx.BeginPath()
	r.ctx.Arc(0, 0, offset.Length(), -end, -start, false)
	r.ctx.Restore()
	if filled {
		r.ctx.Fill()
	}
	r.ctx.Stroke()
	r.ctx.Restore()
}

// PolyLine draws a line through points. A closed polyline is also filled
// unless filled is false.
func (r *Renderer) PolyLine(points []geom.Vector, closed, filled bool) {
	if len(points) < 2 {
		return
	}
	s, ok := r.shapeStyle("")
	if !ok {
		return
	}
	r.ctx.Save()
	r.applyShape(s)
	r.ctx.BeginPath()
	for i, pt := range points {
		p := r.Pos2Px(r.Pos3To2(pt))
		if i == 0 {
			r.ctx.MoveTo(p.X, p.Y)
		} else {
			r.ctx.LineTo(p.X, p.Y)
		}
	}
	if closed {
		r.ctx.ClosePath()
		if filled {
			r.ctx.Fill()
		}
	}
	r.ctx.Stroke()
	r.ctx.Restore()
}

// PolyLineArrow draws an arrow along a polyline. The line is shortened
// by dropping or moving end points so the head tip lands on the last
// point.
func (r *Renderer) PolyLineArrow(points []geom.Vector, typ string) {
	if len(points) < 2 {
		return
	}
	s, ok := r.arrowStyle(typ)
	if !ok {
		return
	}

	px := make([]geom.Vec2, len(points))
	var total float64
	for i, pt := range points {
		px[i] = r.Pos2Px(r.Pos3To2(pt))
		if i > 0 {
			total += px[i].Sub(px[i-1]).Length()
		}
	}

	var tip, dir geom.Vec2
	var headLen float64
	drawHead := total >= 1
	if drawHead {
		headLen = r.arrowheadLength(total)
		remove := (1 - r.num("arrowheadOffsetRatio")) * headLen
		i := len(px) - 1
		tip = px[i]
		for i > 0 {
			seg := px[i].Sub(px[i-1]).Length()
			if remove > seg {
				remove -= seg
				px = px[:i]
				i--
				continue
			}
			px[i] = geom.LinearInterpVector(px[i], px[i-1], remove/seg)
			break
		}
		dir = tip.Sub(px[i])
	}

	r.ctx.Save()
	r.apply(s)
	r.ctx.BeginPath()
	r.ctx.MoveTo(px[0].X, px[0].Y)
	for _, p := range px[1:] {
		r.ctx.LineTo(p.X, p.Y)
	}
	r.ctx.Stroke()
	if drawHead {
		r.arrowheadPx(tip, dir, headLen)
	}
	r.ctx.Restore()
}

// Circle draws a circle, filled with the shape inside color if filled.
func (r *Renderer) Circle(center geom.Vec2, rad float64, filled bool) {
	s, ok := r.shapeStyle("")
	if !ok {
		return
	}
	c := r.Pos2Px(center)
	r.ctx.Save()
	r.applyShape(s)
	r.ctx.BeginPath()
	r.ctx.Arc(c.X, c.Y, r.radiusPx(rad), 0, 2*math.Pi, false)
	if filled {
		r.ctx.Fill()
	}
	r.ctx.Stroke()
	r.ctx.Restore()
}

// FilledCircle draws a disc in the shape outline color.
func (r *Renderer) FilledCircle(center geom.Vec2, rad float64) {
	s, ok := r.shapeStyle("")
	if !ok {
		return
	}
	c := r.Pos2Px(center)
	r.ctx.Save()
	r.ctx.SetLineWidth(s.width)
	r.ctx.SetLineDash(s.dash)
	r.ctx.SetFillStyle(r.str("shapeOutlineColor"))
	r.ctx.BeginPath()
	r.ctx.Arc(c.X, c.Y, r.radiusPx(rad), 0, 2*math.Pi, false)
	r.ctx.Fill()
	r.ctx.Restore()
}

// TriangularDistributedLoad draws a linearly varying load between start
// and end as a row of red arrows whose lengths go from sizeStart to
// sizeEnd. With arrowToLine the heads touch the start-end line, otherwise
// the tails do. arrowDown flips the arrows to point down.
func (r *Renderer) TriangularDistributedLoad(start, end geom.Vec2, sizeStart, sizeEnd float64, labelStart, labelEnd string, arrowToLine, arrowDown bool) {
	if r.failed() {
		return
	}
	l := end.Sub(start).Length()
	s0, s1 := -sizeStart, -sizeEnd
	if arrowDown {
		s0, s1 = sizeStart, sizeEnd
	}
	size := sizeStart
	if size == 0 {
		size = sizeEnd
	}
	if l == 0 || size == 0 {
		return
	}
	n := int(math.Ceil(2 * l / size))
	spacing := l / float64(n)
	slope := (s1 - s0) / l

	r.Save()
	defer func() { _ = r.Restore() }()
	r.set("shapeOutlineColor", "rgb(255,0,0)")
	r.set("arrowLineWidthPx", 1.0)
	r.set("arrowheadLengthRatio", 11.0)

	var inc float64
	if arrowToLine {
		r.Line(start.Add(geom.V2(0, s0)), end.Add(geom.V2(0, s1)), "")
		from := start.Add(geom.V2(0, s0))
		for i := 0; i <= n; i++ {
			r.Arrow(from.Add(geom.V2(inc, inc*slope)), start.Add(geom.V2(inc, 0)), "")
			inc += spacing
		}
		last := inc - spacing
		r.Text(from, geom.V2(2, 0), labelStart)
		r.Text(from.Add(geom.V2(last, last*slope)), geom.V2(-2, 0), labelEnd)
		return
	}
	r.Line(start, end, "")
	to := start.Sub(geom.V2(0, s0))
	for i := 0; i <= n; i++ {
		r.Arrow(start.Add(geom.V2(inc, 0)), to.Add(geom.V2(inc, -inc*slope)), "")
		inc += spacing
	}
	last := inc - spacing
	r.Text(to, geom.V2(2, 0), labelStart)
	r.Text(to.Add(geom.V2(last, -last*slope)), geom.V2(-2, 0), labelEnd)
}

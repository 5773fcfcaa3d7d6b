package pdraw

import (
	"math"

	"github.com/gogpu/pdraw/geom"
)

// Ground draws a flat ground segment centered on pos with outward normal
// norm: a shaded band below a surface line.
func (r *Renderer) Ground(pos, norm geom.Vec2, length float64) {
	s, ok := r.shapeStyle("")
	if !ok {
		return
	}
	tangent := norm.Perp().Normalize().Mul(length)
	p := r.Pos2Px(pos)
	lengthPx := r.Vec2Px(tangent).Length()
	depth := math.Min(lengthPx, r.num("groundDepthPx"))

	r.ctx.Save()
	r.ctx.Translate(p.X, p.Y)
	r.ctx.Rotate(geom.AngleOf(r.Vec2Px(norm)) - math.Pi/2)
	r.ctx.BeginPath()
	r.ctx.Rect(-lengthPx/2, -depth, lengthPx, depth)
	r.ctx.SetFillStyle(r.str("groundInsideColor"))
	r.ctx.Fill()

	r.ctx.BeginPath()
	r.ctx.MoveTo(-lengthPx/2, 0)
	r.ctx.LineTo(lengthPx/2, 0)
	r.ctx.SetLineWidth(s.width)
	r.ctx.SetLineDash(s.dash)
	r.ctx.SetStrokeStyle(r.str("groundOutlineColor"))
	r.ctx.Stroke()
	r.ctx.Restore()
}

// GroundHashed draws a ground segment as a surface line with diagonal
// hatching. offset shifts the hatching along the surface, so moving
// ground can be animated.
func (r *Renderer) GroundHashed(pos, norm geom.Vec2, length, offset float64) {
	s, ok := r.shapeStyle("")
	if !ok {
		return
	}
	tangent := norm.Perp().Normalize().Mul(length)
	p := r.Pos2Px(pos)
	lengthPx := r.Vec2Px(tangent).Length()
	offsetPx := r.Vec2Px(tangent.Normalize().Mul(offset)).Length() * geom.Sign(offset)
	spacing := r.num("groundSpacingPx")
	hatchW := r.num("groundWidthPx")
	hatchD := r.num("groundDepthPx")

	r.ctx.Save()
	r.ctx.Translate(p.X, p.Y)
	r.ctx.Rotate(geom.AngleOf(r.Vec2Px(norm)) + math.Pi/2)
	r.ctx.SetLineWidth(s.width)
	r.ctx.SetLineDash(s.dash)
	r.ctx.SetStrokeStyle(r.str("groundOutlineColor"))

	r.ctx.BeginPath()
	r.ctx.MoveTo(-lengthPx/2, 0)
	r.ctx.LineTo(lengthPx/2, 0)
	r.ctx.Stroke()

	if spacing > 0 {
		hatch := func(x float64) {
			r.ctx.BeginPath()
			r.ctx.MoveTo(x, 0)
			r.ctx.LineTo(x-hatchW, hatchD)
			r.ctx.Stroke()
		}
		startX := math.Mod(offsetPx, spacing)
		for x := startX; x < lengthPx/2; x += spacing {
			hatch(x)
		}
		for x := startX - spacing; x > -lengthPx/2; x -= spacing {
			hatch(x)
		}
	}
	r.ctx.Restore()
}

// ArcGround draws curved ground along a circular arc, shaded outside the
// circle or, with outside false, inside it.
func (r *Renderer) ArcGround(center geom.Vec2, rad, start, end float64, outside bool) {
	s, ok := r.shapeStyle("")
	if !ok {
		return
	}
	c := r.Pos2Px(center)
	radPx := r.radiusPx(rad)
	depth := math.Min(radPx, r.num("groundDepthPx"))
	if !outside {
		depth = -depth
	}

	r.ctx.Save()
	r.ctx.BeginPath()
	r.ctx.Arc(c.X, c.Y, radPx, -end, -start, false)
	r.ctx.Arc(c.X, c.Y, radPx+depth, -start, -end, true)
	r.ctx.SetFillStyle(r.str("groundInsideColor"))
	r.ctx.Fill()

	r.ctx.BeginPath()
	r.ctx.Arc(c.X, c.Y, radPx, -end, -start, false)
	r.ctx.SetLineWidth(s.width)
	r.ctx.SetLineDash(s.dash)
	r.ctx.SetStrokeStyle(r.str("groundOutlineColor"))
	r.ctx.Stroke()
	r.ctx.Restore()
}

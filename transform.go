package pdraw

import "github.com/gogpu/pdraw/geom"

// Scale scales the drawing coordinates.
func (r *Renderer) Scale(factor geom.Vec2) {
	r.trans = geom.Scaled(r.trans, factor)
}

// Translate moves the drawing origin by offset (drawing coordinates).
func (r *Renderer) Translate(offset geom.Vec2) {
	r.trans = geom.Translated(r.trans, offset)
}

// Rotate rotates the drawing coordinates counter-clockwise.
func (r *Renderer) Rotate(angle float64) {
	r.trans = geom.Rotated(r.trans, angle)
}

// TransformByPoints scales, rotates and translates so that drawing at
// old1 and old2 lands on new1 and new2.
func (r *Renderer) TransformByPoints(old1, old2, new1, new2 geom.Vec2) {
	r.trans = geom.TransformByPoints(r.trans, old1, old2, new1, new2)
}

// Transform returns the current drawing-to-pixel transform.
func (r *Renderer) Transform() geom.Matrix {
	return r.trans
}

// Vec2Px converts a vector from drawing to pixel coordinates.
func (r *Renderer) Vec2Px(v geom.Vec2) geom.Vec2 {
	return geom.TransformVec(r.trans, v)
}

// Pos2Px converts a position from drawing to pixel coordinates.
func (r *Renderer) Pos2Px(p geom.Vec2) geom.Vec2 {
	return geom.TransformPos(r.trans, p)
}

// Vec2Dw converts a vector from pixel to drawing coordinates.
func (r *Renderer) Vec2Dw(v geom.Vec2) geom.Vec2 {
	return geom.TransformVec(r.trans.Invert(), v)
}

// Pos2Dw converts a position from pixel to drawing coordinates.
func (r *Renderer) Pos2Dw(p geom.Vec2) geom.Vec2 {
	return geom.TransformPos(r.trans.Invert(), p)
}

// IsReflection reports whether the current transform flips orientation.
func (r *Renderer) IsReflection() bool {
	return geom.IsReflection(r.trans)
}

// PosNm2Px converts a position in normalized viewport coordinates, [0,1]
// on both axes with y up, to pixels.
func (r *Renderer) PosNm2Px(p geom.Vec2) geom.Vec2 {
	return geom.V2(p.X*r.width, (1-p.Y)*r.height)
}

// PosNm2Dw converts a position in normalized viewport coordinates to
// drawing coordinates.
func (r *Renderer) PosNm2Dw(p geom.Vec2) geom.Vec2 {
	return r.Pos2Dw(r.PosNm2Px(p))
}

package pdraw

import "github.com/gogpu/pdraw/geom"

// SetView3D sets the camera rotation angles about the X, Y and Z axes.
// With clip set, each angle is limited to the viewAngle{X,Y,Z}{Min,Max}
// properties.
func (r *Renderer) SetView3D(angleX, angleY, angleZ float64, clip, redraw bool) {
	v := geom.V3(angleX, angleY, angleZ)
	if clip {
		v.X = geom.Clip(v.X, r.num("viewAngleXMin"), r.num("viewAngleXMax"))
		v.Y = geom.Clip(v.Y, r.num("viewAngleYMin"), r.num("viewAngleYMax"))
		v.Z = geom.Clip(v.Z, r.num("viewAngleZMin"), r.num("viewAngleZMax"))
	}
	r.view = v
	r.trans3D = geom.Identity3D().Rotated(v.X, v.Y, v.Z)
	if redraw {
		r.requestRedraw()
	}
}

// ResetView3D returns the camera to its initial angles.
func (r *Renderer) ResetView3D(redraw bool) {
	r.SetView3D(r.initView.X, r.initView.Y, r.initView.Z, true, redraw)
}

// IncrementView3D rotates the camera by the given angles and redraws.
func (r *Renderer) IncrementView3D(dx, dy, dz float64, clip bool) {
	r.SetView3D(r.view.X+dx, r.view.Y+dy, r.view.Z+dz, clip, true)
}

// ViewAngles returns the camera rotation angles.
func (r *Renderer) ViewAngles() geom.Vec3 {
	return r.view
}

// Transform3D returns the current drawing-to-view transform.
func (r *Renderer) Transform3D() geom.Matrix3D {
	return r.trans3D
}

// Scale3D scales the 3D coordinates uniformly.
func (r *Renderer) Scale3D(factor float64) {
	r.trans3D = r.trans3D.Scaled(factor)
}

// Translate3D moves the 3D origin by offset.
func (r *Renderer) Translate3D(offset geom.Vec3) {
	r.trans3D = r.trans3D.Translated(offset)
}

// Rotate3D rotates the 3D coordinates about the X, Y and Z axes in turn.
func (r *Renderer) Rotate3D(angleX, angleY, angleZ float64) {
	r.trans3D = r.trans3D.Rotated(angleX, angleY, angleZ)
}

// PosDwToVw converts a 3D position from drawing to view coordinates.
func (r *Renderer) PosDwToVw(p geom.Vec3) geom.Vec3 {
	return r.trans3D.TransformPos(p)
}

// PosVwToDw converts a 3D position from view to drawing coordinates.
func (r *Renderer) PosVwToDw(p geom.Vec3) geom.Vec3 {
	return r.trans3D.Invert().TransformPos(p)
}

// VecDwToVw converts a 3D vector from drawing to view coordinates.
func (r *Renderer) VecDwToVw(v geom.Vec3) geom.Vec3 {
	return r.trans3D.TransformVec(v)
}

// VecVwToDw converts a 3D vector from view to drawing coordinates.
func (r *Renderer) VecVwToDw(v geom.Vec3) geom.Vec3 {
	return r.trans3D.Invert().TransformVec(v)
}

// Pos3To2 projects a 3D position to 2D drawing coordinates. 2D positions
// are returned unchanged.
func (r *Renderer) Pos3To2(p geom.Vector) geom.Vec2 {
	switch p := p.(type) {
	case geom.Vec3:
		return geom.OrthProj(r.PosDwToVw(p))
	case geom.Vec2:
		return p
	}
	return geom.Vec2{}
}

// Vec3To2 projects a 3D vector based at p to 2D drawing coordinates. 2D
// vectors are returned unchanged.
func (r *Renderer) Vec3To2(v, p geom.Vector) geom.Vec2 {
	switch v := v.(type) {
	case geom.Vec3:
		base := geom.To3(p)
		return r.Pos3To2(base.Add(v)).Sub(r.Pos3To2(base))
	case geom.Vec2:
		return v
	}
	return geom.Vec2{}
}

// Pos2To3 extends a position to 3D with z = 0.
func (r *Renderer) Pos2To3(p geom.Vector) geom.Vec3 {
	return geom.To3(p)
}

// Vec2To3 extends a vector to 3D with z = 0.
func (r *Renderer) Vec2To3(v geom.Vector) geom.Vec3 {
	return geom.To3(v)
}

// Package pdraw draws parametric engineering figures and animates them.
//
// # Overview
//
// A Renderer binds a canvas.Canvas to a draw callback. The callback issues
// primitive calls (arrows, rods, ground hatching, measurements, 3D arcs,
// sphere slices, labels, plots) in drawing coordinates; the renderer maps
// them to pixels through its current transform and paints them with the
// current style properties.
//
// # Quick Start
//
//	rec := record.NewRecorder(400, 300)
//	r, err := pdraw.New(rec, func(r *pdraw.Renderer) error {
//	    r.SetUnits(8, 6, false)
//	    r.Arrow(geom.V2(0, 0), geom.V2(2, 1), "velocity")
//	    r.Text(geom.V2(2, 1), geom.V2(-1, 0), "TEX:$v$")
//	    return nil
//	})
//
// # Coordinate Systems
//
//   - Dw: drawing coordinates used by the draw callback. After SetUnits the
//     origin is the canvas center and y increases upwards.
//   - Px: canvas pixels, origin top-left, y down.
//   - Vw: 3D view coordinates after the camera rotation. Positions given as
//     geom.Vec3 are rotated into view space and projected orthographically
//     by dropping the depth axis.
//
// # State
//
// Save pushes the style properties together with the 2D and 3D transforms
// and Restore pops them. A draw cycle is always Save, draw, RestoreAll, so
// a callback cannot leak state into the next cycle.
//
// Configuration mistakes (unknown property, unknown dash pattern, restore
// without save) are recorded as the renderer's error. The first one aborts
// the rest of the draw cycle and is returned by Redraw.
//
// # Animation
//
// Animator adds a frame clock and state-machine sequences on top of a
// Renderer. Frame is the per-frame callback; Run drives it from a ticker.
package pdraw

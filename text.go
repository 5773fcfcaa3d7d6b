package pdraw

import (
	"math"
	"slices"
	"strconv"

	"github.com/gogpu/pdraw/canvas"
	"github.com/gogpu/pdraw/geom"
	"github.com/gogpu/pdraw/imagecache"
)

// textBorderPx pads the box behind boxed TeX labels.
const textBorderPx = 5

// TextOption configures Text.
type TextOption func(*textOptions)

type textOptions struct {
	boxed bool
	angle float64
}

// Boxed draws a white box behind the text.
func Boxed() TextOption {
	return func(o *textOptions) {
		o.boxed = true
	}
}

// Angle rotates the text counter-clockwise on screen by angle radians.
func Angle(angle float64) TextOption {
	return func(o *textOptions) {
		o.angle = angle
	}
}

// Text draws a label at pos. anchor picks the point of the label's box
// that sits at pos, from (-1,-1) bottom-left to (1,1) top-right; the
// label is pushed textOffsetPx pixels away from pos in the anchor
// direction.
//
// Text starting with "TEX:" is TeX source. Its pre-rendered image is
// looked up in the image cache under text/<hash>.png; until the image has
// loaded nothing is drawn. Empty text is skipped.
func (r *Renderer) Text(pos geom.Vector, anchor geom.Vec2, text string, opts ...TextOption) {
	if text == "" || r.failed() {
		return
	}
	var o textOptions
	for _, opt := range opts {
		opt(&o)
	}
	p := r.Pos2Px(r.Pos3To2(pos))
	if tex, ok := imagecache.IsTex(text); ok {
		r.texText(p, anchor, tex, o)
		return
	}
	r.plainText(p, anchor, text, o)
}

func (r *Renderer) texText(p, anchor geom.Vec2, tex string, o textOptions) {
	key := imagecache.TexKeyWith(r.hasher, tex)
	img, ok := r.lookupImage(key)
	if !ok {
		return
	}
	w, h := img.Width(), img.Height()
	x := -(anchor.X + 1) / 2 * w
	y := (anchor.Y - 1) / 2 * h
	off := anchor.Mul(r.num("textOffsetPx"))

	r.ctx.Save()
	r.ctx.Translate(p.X, p.Y)
	r.ctx.Rotate(o.angle)
	if o.boxed {
		r.ctx.Save()
		r.ctx.SetFillStyle("white")
		r.ctx.FillRect(x-off.X-textBorderPx, y+off.Y-textBorderPx, w+2*textBorderPx, h+2*textBorderPx)
		r.ctx.Restore()
	}
	r.ctx.DrawImage(img, x-off.X, y+off.Y, w, h)
	r.ctx.Restore()
}

func (r *Renderer) plainText(p, anchor geom.Vec2, text string, o textOptions) {
	var align canvas.TextAlign
	var rel float64
	switch geom.Sign(anchor.X) {
	case -1:
		align = canvas.AlignLeft
	case 0:
		align, rel = canvas.AlignCenter, 0.5
	default:
		align, rel = canvas.AlignRight, 1
	}
	var baseline canvas.TextBaseline
	switch geom.Sign(anchor.Y) {
	case -1:
		baseline = canvas.BaselineBottom
	case 0:
		baseline = canvas.BaselineMiddle
	default:
		baseline = canvas.BaselineTop
	}

	size := r.num("textFontSize")
	d := r.num("textOffsetPx")
	off := anchor.Normalize().Mul(math.Abs(anchor.Max()) * d)
	draw := geom.V2(-off.X, off.Y)

	r.Save()
	r.ctx.SetTextAlign(align)
	r.ctx.SetTextBaseline(baseline)
	r.ctx.Translate(p.X, p.Y)
	r.ctx.Rotate(o.angle)
	font := strconv.FormatFloat(size, 'f', -1, 64) + "px serif"
	if o.boxed {
		r.ctx.SetFont(font)
		width := r.ctx.MeasureText(text).Width
		bb0 := draw.Add(geom.V2(-rel*width-d, -d))
		bb1 := draw.Add(geom.V2((1-rel)*width+d, size+d))
		r.ctx.Save()
		r.ctx.SetFillStyle("white")
		r.ctx.FillRect(bb0.X, bb0.Y, bb1.X-bb0.X, bb1.Y-bb0.Y)
		r.ctx.Restore()
	}
	r.ctx.SetFont(font)
	r.ctx.FillText(text, draw.X, draw.Y)
	_ = r.Restore()
}

// LabelLine labels the line from start to end. pos places the label:
// x runs from -1 at start to 1 at end, y is the side of the line. With no
// anchor the label is anchored away from the line.
func (r *Renderer) LabelLine(start, end geom.Vector, pos geom.Vec2, text string, anchor ...geom.Vec2) {
	if text == "" {
		return
	}
	s := r.Pos3To2(start)
	e := r.Pos3To2(end)
	mid := s.Add(e).Mul(0.5)
	half := e.Sub(s).Mul(0.5)
	p := mid.Add(half.Mul(pos.X))
	u1 := half.Normalize()
	u2 := u1.Perp()
	o := u1.Mul(pos.X).Add(u2.Mul(pos.Y))
	a := o.Neg().Normalize().Mul(math.Abs(pos.Max()))
	if len(anchor) > 0 {
		a = anchor[0]
	}
	r.Text(p, a, text)
}

// LabelCircleLine labels a circle arrow drawn with the same arguments.
// pos.X runs from -1 at the start angle to 1 at the end angle, pos.Y is
// the radial side.
func (r *Renderer) LabelCircleLine(center geom.Vec2, rad, start, end float64, pos geom.Vec2, text string, opts ...ArrowOption) {
	if text == "" {
		return
	}
	o := arrowOpts(opts)
	centerPx := r.Pos2Px(center)
	startOffset := r.Vec2Px(geom.Vector2DAtAngle(start).Mul(rad))
	radiusPx := startOffset.Length()
	startPx := geom.AngleOf(startOffset)
	delta := end - start
	if r.IsReflection() {
		delta = -delta
	}
	endPx := startPx + delta

	textAngle := (1-pos.X)/2*startPx + (1+pos.X)/2*endPx
	u1 := geom.Vector2DAtAngle(textAngle)
	u2 := u1.Rotate(-math.Pi / 2)
	u1Dw := r.Vec2Dw(u1).Normalize()
	u2Dw := r.Vec2Dw(u2).Normalize()
	a := u1Dw.Mul(pos.Y).Add(u2Dw.Mul(pos.X)).Neg().Normalize()
	a = scaleAnchor(a, pos)

	rp := r.circleArrowRadius(radiusPx, textAngle, startPx, endPx, o.fixedRadius)
	r.Text(r.Pos2Dw(u1.Mul(rp).Add(centerPx)), a, text)
}

// scaleAnchor stretches the direction a onto the unit square and scales
// it by the size of pos.
func scaleAnchor(a, pos geom.Vec2) geom.Vec2 {
	m := math.Abs(a.Max())
	if m == 0 {
		return geom.Vec2{}
	}
	return a.Mul(1 / m).Mul(math.Abs(pos.Max()))
}

// LabelAngle labels the angle at pos between the directions to p1 and p2,
// placing the label inside the angle.
func (r *Renderer) LabelAngle(pos, p1, p2 geom.Vector, label string) {
	c := r.Pos3To2(pos)
	v1 := r.Pos3To2(p1).Sub(c)
	v2 := r.Pos3To2(p2).Sub(c)
	mid := v1.Add(v2).Mul(0.5)
	n := mid.SupNorm()
	if n == 0 {
		return
	}
	r.Text(c, mid.Mul(-1.8/n), label)
}

// FindAnchorForIntersection returns the anchor for a label at point that
// places it in the widest gap between the lines from point to points.
func (r *Renderer) FindAnchorForIntersection(point geom.Vector, points []geom.Vector) geom.Vec2 {
	p := r.Pos2Px(r.Pos3To2(point))
	var angles []float64
	for _, q := range points {
		v := r.Pos2Px(r.Pos3To2(q)).Sub(p)
		v.Y = -v.Y
		if v.Length() > 1e-6 {
			angles = append(angles, geom.AngleOf(v))
		}
	}
	if len(angles) == 0 {
		return geom.V2(1, 0)
	}
	tieBreak := angles[0]

	slices.Sort(angles)
	maxDiff := angles[0] - angles[len(angles)-1] + 2*math.Pi
	maxIs := []int{0}
	for i := 1; i < len(angles); i++ {
		diff := angles[i] - angles[i-1]
		if diff > maxDiff-1e-6 {
			if diff > maxDiff+1e-6 {
				maxDiff = diff
				maxIs = []int{i}
			} else {
				maxIs = append(maxIs, i)
			}
		}
	}

	minCCW := 2 * math.Pi
	var best float64
	for _, i := range maxIs {
		angle := angles[i] - maxDiff/2
		diff := angle - tieBreak
		if diff < 0 {
			diff += 2 * math.Pi
		}
		if diff < minCCW {
			minCCW = diff
			best = angle
		}
	}
	dir := geom.Vector2DAtAngle(best)
	return dir.Mul(-1 / dir.SupNorm())
}

// LabelIntersection labels point, where the lines to points meet, in the
// widest free direction. scale multiplies the anchor offset; 0 means 1.
func (r *Renderer) LabelIntersection(point geom.Vector, points []geom.Vector, label string, scale float64) {
	if scale == 0 {
		scale = 1
	}
	r.Text(point, r.FindAnchorForIntersection(point, points).Mul(scale), label)
}

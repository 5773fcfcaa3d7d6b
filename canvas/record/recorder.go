package record

import (
	"math"
	"slices"
	"unicode/utf8"

	"github.com/gogpu/pdraw/canvas"
	"github.com/gogpu/pdraw/geom"
)

// Recorder is a canvas.Canvas that captures drawing operations as
// commands instead of painting pixels.
//
// Example:
//
//	rec := record.NewRecorder(400, 300)
//	r, _ := pdraw.New(rec, drawFigure)
//	for _, cmd := range rec.Commands() {
//	    fmt.Println(cmd.Op, cmd.Points())
//	}
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command

	// Current path in pixel space
	path      []Segment
	current   geom.Vec2
	hasPoint  bool
	subpathAt geom.Vec2

	state      recorderState
	stateStack []recorderState

	// MeasureFunc returns the advance width of text in a CSS font. The
	// default estimates half an em per rune.
	MeasureFunc func(font, text string) float64
}

// recorderState is the part of the canvas state covered by Save/Restore.
type recorderState struct {
	transform geom.Matrix
	fill      string
	stroke    string
	lineWidth float64
	dash      []float64
	font      string
	align     canvas.TextAlign
	baseline  canvas.TextBaseline
}

// NewRecorder creates a Recorder of the given pixel size with Canvas2D
// defaults: black fill and stroke, 1px lines and a 10px sans-serif font.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:      width,
		height:     height,
		commands:   make([]Command, 0, 256),
		state:      defaultState(),
		stateStack: make([]recorderState, 0, 8),
	}
}

func defaultState() recorderState {
	return recorderState{
		transform: geom.Identity(),
		fill:      "rgb(0, 0, 0)",
		stroke:    "rgb(0, 0, 0)",
		lineWidth: 1,
		font:      "10px sans-serif",
		align:     "start",
		baseline:  canvas.BaselineAlphabetic,
	}
}

// Commands returns the commands recorded since the last Reset.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Filter returns the recorded commands with the given op.
func (r *Recorder) Filter(op Op) []Command {
	var out []Command
	for _, c := range r.commands {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops the recorded commands but keeps the canvas state.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// Frame returns a snapshot of the recorded commands with the canvas size.
func (r *Recorder) Frame() Frame {
	return Frame{
		Width:    r.width,
		Height:   r.height,
		Commands: slices.Clone(r.commands),
	}
}

// Depth returns the number of unmatched Save calls.
func (r *Recorder) Depth() int {
	return len(r.stateStack)
}

// CurrentTransform returns the transform in effect.
func (r *Recorder) CurrentTransform() geom.Matrix {
	return r.state.transform
}

// --------------------------------------------------------------------------
// Dimensions
// --------------------------------------------------------------------------

// Width returns the width of the recording canvas.
func (r *Recorder) Width() int {
	return r.width
}

// Height returns the height of the recording canvas.
func (r *Recorder) Height() int {
	return r.height
}

// Resize sets a new size. Like a Canvas2D element, this resets the state.
func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
	r.state = defaultState()
	r.stateStack = r.stateStack[:0]
	r.BeginPath()
	r.commands = append(r.commands, Command{Op: OpResize, W: float64(width), H: float64(height)})
}

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

// Save pushes the current state.
func (r *Recorder) Save() {
	s := r.state
	s.dash = slices.Clone(s.dash)
	r.stateStack = append(r.stateStack, s)
	r.commands = append(r.commands, Command{Op: OpSave})
}

// Restore pops the state saved by the matching Save. Unmatched calls are
// ignored, as on a Canvas2D context.
func (r *Recorder) Restore() {
	if len(r.stateStack) == 0 {
		return
	}
	r.state = r.stateStack[len(r.stateStack)-1]
	r.stateStack = r.stateStack[:len(r.stateStack)-1]
	r.commands = append(r.commands, Command{Op: OpRestore})
}

// --------------------------------------------------------------------------
// Transform
// --------------------------------------------------------------------------

// Translate moves the origin.
func (r *Recorder) Translate(x, y float64) {
	r.state.transform = r.state.transform.Multiply(geom.Translate(x, y))
}

// Rotate rotates the user space by angle radians.
func (r *Recorder) Rotate(angle float64) {
	r.state.transform = r.state.transform.Multiply(geom.Rotate(angle))
}

// Scale scales the user space.
func (r *Recorder) Scale(sx, sy float64) {
	r.state.transform = r.state.transform.Multiply(geom.Scale(sx, sy))
}

// Transform multiplies the current transform by m.
func (r *Recorder) Transform(m geom.Matrix) {
	r.state.transform = r.state.transform.Multiply(m)
}

// --------------------------------------------------------------------------
// Path
// --------------------------------------------------------------------------

func (r *Recorder) px(x, y float64) geom.Vec2 {
	return geom.TransformPos(r.state.transform, geom.V2(x, y))
}

// BeginPath discards the current path.
func (r *Recorder) BeginPath() {
	r.path = nil
	r.hasPoint = false
}

// MoveTo starts a new subpath.
func (r *Recorder) MoveTo(x, y float64) {
	p := r.px(x, y)
	r.path = append(r.path, Segment{Verb: VerbMove, Pts: []geom.Vec2{p}})
	r.current, r.subpathAt, r.hasPoint = p, p, true
}

// LineTo adds a straight line. Without a current point it acts as MoveTo.
func (r *Recorder) LineTo(x, y float64) {
	if !r.hasPoint {
		r.MoveTo(x, y)
		return
	}
	p := r.px(x, y)
	r.path = append(r.path, Segment{Verb: VerbLine, Pts: []geom.Vec2{p}})
	r.current = p
}

// BezierCurveTo adds a cubic Bezier curve.
func (r *Recorder) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !r.hasPoint {
		r.MoveTo(c1x, c1y)
	}
	p := r.px(x, y)
	r.path = append(r.path, Segment{
		Verb: VerbCubic,
		Pts:  []geom.Vec2{r.px(c1x, c1y), r.px(c2x, c2y), p},
	})
	r.current = p
}

// Arc adds a circular arc. Under a rotation, uniform scale or reflection
// the arc is kept as an arc in pixel space; other transforms turn it into
// cubic segments.
func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool) {
	sweep := canvas.ArcSweep(startAngle, endAngle, anticlockwise)
	m := r.state.transform
	if scale, rot, reflect, ok := similarity(m); ok {
		center := r.px(x, y)
		start, end, ccw := startAngle+rot, startAngle+sweep+rot, anticlockwise
		if reflect {
			start, end, ccw = rot-startAngle, rot-startAngle-sweep, !anticlockwise
		}
		r.path = append(r.path, Segment{
			Verb:          VerbArc,
			Pts:           []geom.Vec2{center},
			Radius:        radius * scale,
			Start:         start,
			End:           end,
			Anticlockwise: ccw,
		})
		endPt := center.Add(geom.Vector2DAtAngle(end).Mul(radius * scale))
		if !r.hasPoint {
			r.subpathAt = center.Add(geom.Vector2DAtAngle(start).Mul(radius * scale))
		}
		r.current, r.hasPoint = endPt, true
		return
	}
	segs := canvas.ArcCubics(geom.V2(x, y), radius, startAngle, sweep)
	if len(segs) == 0 {
		return
	}
	first := segs[0][0]
	if r.hasPoint {
		r.LineTo(first.X, first.Y)
	} else {
		r.MoveTo(first.X, first.Y)
	}
	for _, s := range segs {
		r.BezierCurveTo(s[1].X, s[1].Y, s[2].X, s[2].Y, s[3].X, s[3].Y)
	}
}

// ArcTo adds a line to the tangent point and a rounded corner of the
// given radius at (x1, y1), heading towards (x2, y2).
func (r *Recorder) ArcTo(x1, y1, x2, y2, radius float64) {
	if !r.hasPoint {
		r.MoveTo(x1, y1)
	}
	p0 := geom.TransformPos(r.state.transform.Invert(), r.current)
	g := canvas.ArcToPoints(p0, geom.V2(x1, y1), geom.V2(x2, y2), radius)
	if g.Line {
		r.LineTo(x1, y1)
		return
	}
	r.LineTo(g.T1.X, g.T1.Y)
	r.Arc(g.Center.X, g.Center.Y, radius, g.Start, g.End, g.Anticlockwise)
}

// Rect adds a closed rectangle subpath.
func (r *Recorder) Rect(x, y, w, h float64) {
	r.MoveTo(x, y)
	r.LineTo(x+w, y)
	r.LineTo(x+w, y+h)
	r.LineTo(x, y+h)
	r.ClosePath()
}

// ClosePath closes the current subpath.
func (r *Recorder) ClosePath() {
	if !r.hasPoint {
		return
	}
	r.path = append(r.path, Segment{Verb: VerbClose})
	r.current = r.subpathAt
}

// --------------------------------------------------------------------------
// Painting
// --------------------------------------------------------------------------

// lineScale is the factor that maps user space lengths to pixels.
func (r *Recorder) lineScale() float64 {
	return math.Sqrt(math.Abs(geom.Determinant(r.state.transform)))
}

// Fill records a fill of the current path.
func (r *Recorder) Fill() {
	r.commands = append(r.commands, Command{
		Op:   OpFill,
		Path: slices.Clone(r.path),
		Fill: r.state.fill,
	})
}

// Stroke records a stroke of the current path.
func (r *Recorder) Stroke() {
	k := r.lineScale()
	var dash []float64
	for _, d := range r.state.dash {
		dash = append(dash, d*k)
	}
	r.commands = append(r.commands, Command{
		Op:        OpStroke,
		Path:      slices.Clone(r.path),
		Stroke:    r.state.stroke,
		LineWidth: r.state.lineWidth * k,
		Dash:      dash,
	})
}

// Clip records a clip to the current path.
func (r *Recorder) Clip() {
	r.commands = append(r.commands, Command{
		Op:   OpClip,
		Path: slices.Clone(r.path),
	})
}

func (r *Recorder) local(op Op, x, y, w, h float64) Command {
	return Command{
		Op:        op,
		Transform: geom.CanvasOrder(r.state.transform),
		X:         x,
		Y:         y,
		W:         w,
		H:         h,
		matrix:    r.state.transform,
	}
}

// FillRect fills a rectangle without touching the current path.
func (r *Recorder) FillRect(x, y, w, h float64) {
	c := r.local(OpFillRect, x, y, w, h)
	c.Fill = r.state.fill
	r.commands = append(r.commands, c)
}

// ClearRect clears a rectangle to transparent.
func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.commands = append(r.commands, r.local(OpClearRect, x, y, w, h))
}

// --------------------------------------------------------------------------
// Style
// --------------------------------------------------------------------------

// SetStrokeStyle sets the stroke color.
func (r *Recorder) SetStrokeStyle(style string) { r.state.stroke = style }

// SetFillStyle sets the fill color.
func (r *Recorder) SetFillStyle(style string) { r.state.fill = style }

// SetLineWidth sets the stroke width in user space.
func (r *Recorder) SetLineWidth(width float64) {
	if width > 0 && !math.IsInf(width, 0) && !math.IsNaN(width) {
		r.state.lineWidth = width
	}
}

// SetLineDash sets the dash pattern in user space.
func (r *Recorder) SetLineDash(segments []float64) {
	r.state.dash = slices.Clone(segments)
}

// --------------------------------------------------------------------------
// Text and images
// --------------------------------------------------------------------------

// SetFont sets the CSS font.
func (r *Recorder) SetFont(font string) { r.state.font = font }

// SetTextAlign sets the horizontal text anchor.
func (r *Recorder) SetTextAlign(align canvas.TextAlign) { r.state.align = align }

// SetTextBaseline sets the vertical text anchor.
func (r *Recorder) SetTextBaseline(baseline canvas.TextBaseline) { r.state.baseline = baseline }

// FillText records text drawn at (x, y) in user space.
func (r *Recorder) FillText(text string, x, y float64) {
	c := r.local(OpText, x, y, 0, 0)
	c.Text = text
	c.Font = r.state.font
	c.Align = string(r.state.align)
	c.Baseline = string(r.state.baseline)
	c.Fill = r.state.fill
	r.commands = append(r.commands, c)
}

// MeasureText returns the width of text in the current font.
func (r *Recorder) MeasureText(text string) canvas.TextMetrics {
	if r.MeasureFunc != nil {
		return canvas.TextMetrics{Width: r.MeasureFunc(r.state.font, text)}
	}
	return canvas.TextMetrics{Width: 0.5 * canvas.FontSize(r.state.font) * float64(utf8.RuneCountInString(text))}
}

// DrawImage records an image drawn into the rectangle (x, y, w, h).
func (r *Recorder) DrawImage(img canvas.Image, x, y, w, h float64) {
	c := r.local(OpImage, x, y, w, h)
	c.Src = img.Src
	c.image = img
	r.commands = append(r.commands, c)
}

// similarity decomposes the linear part of m into a uniform scale and a
// rotation, possibly after a reflection in the x axis.
func similarity(m geom.Matrix) (scale, rot float64, reflect, ok bool) {
	const eps = 1e-9
	scale = math.Hypot(m.A, m.D)
	if scale < eps {
		return 0, 0, false, false
	}
	tol := eps * scale
	switch {
	case math.Abs(m.A-m.E) < tol && math.Abs(m.B+m.D) < tol:
		reflect = false
	case math.Abs(m.A+m.E) < tol && math.Abs(m.B-m.D) < tol:
		reflect = true
	default:
		return 0, 0, false, false
	}
	return scale, math.Atan2(m.D, m.A), reflect, true
}

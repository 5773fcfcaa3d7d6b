// Package raster implements canvas.Canvas on top of a gg.Context.
//
// The canvas keeps its own transform and state stack and hands gg paths
// that are already in device space, with the gg transform left at
// identity. Text is the exception: it is drawn with the canvas transform
// loaded into gg, so glyphs rotate with user space. Arcs are flattened to cubic curves before the transform is
// applied, so non-uniform scales produce true ellipses.
//
// Example:
//
//	c := raster.New(400, 300)
//	r, _ := pdraw.New(c, drawFigure)
//	_ = c.SavePNG("figure.png")
package raster

import (
	"image"
	"image/color"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/gogpu/gg"

	"github.com/gogpu/pdraw/canvas"
	"github.com/gogpu/pdraw/geom"
	"github.com/gogpu/pdraw/internal/logging"
)

// Canvas paints Canvas2D style calls into a gg.Context.
//
// The Canvas is not safe for concurrent use.
type Canvas struct {
	dc    *gg.Context
	fonts *fontCache

	state state
	stack []state

	// Current path, current point and subpath start, in device space
	path     []pathElem
	current  geom.Vec2
	start    geom.Vec2
	hasPoint bool

	err error
}

// state is the part of the canvas state covered by Save/Restore.
type state struct {
	transform geom.Matrix
	fill      color.NRGBA
	stroke    color.NRGBA
	lineWidth float64
	dash      []float64
	font      string
	align     canvas.TextAlign
	baseline  canvas.TextBaseline
}

func defaultState() state {
	black := color.NRGBA{A: 255}
	return state{
		transform: geom.Identity(),
		fill:      black,
		stroke:    black,
		lineWidth: 1,
		font:      "10px sans-serif",
		align:     canvas.AlignLeft,
		baseline:  canvas.BaselineAlphabetic,
	}
}

// pathElem mirrors one element of the gg path so that the path can be
// rebuilt after FillRect.
type pathElem struct {
	verb byte
	pts  [3]geom.Vec2
}

// New creates a transparent canvas of the given pixel size.
func New(width, height int) *Canvas {
	return NewForContext(gg.NewContext(width, height))
}

// NewForContext creates a canvas drawing into an existing gg context.
// The context's transform is reset to identity.
func NewForContext(dc *gg.Context) *Canvas {
	dc.Identity()
	dc.SetLineCap(gg.LineCapButt)
	dc.SetLineJoin(gg.LineJoinMiter)
	return &Canvas{
		dc:    dc,
		fonts: defaultFonts(),
		state: defaultState(),
		stack: make([]state, 0, 8),
	}
}

// Context returns the underlying gg context.
func (c *Canvas) Context() *gg.Context {
	return c.dc
}

// Err returns the first painting error, if any.
func (c *Canvas) Err() error {
	return c.err
}

func (c *Canvas) setErr(op string, err error) {
	if err == nil {
		return
	}
	logging.Get().Warn("raster: paint failed", "op", op, "err", err)
	if c.err == nil {
		c.err = err
	}
}

// Image returns the painted pixels.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// EncodePNG writes the canvas as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.dc.Width()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.dc.Height()
}

// Resize changes the pixel size, clears the surface and resets the state,
// like assigning a Canvas2D element's width.
func (c *Canvas) Resize(width, height int) {
	if width != c.dc.Width() || height != c.dc.Height() {
		c.setErr("resize", c.dc.Resize(width, height))
	}
	for range c.stack {
		c.dc.Pop()
	}
	c.dc.ResetClip()
	c.dc.Identity()
	c.dc.ClearPath()
	c.dc.Clear()
	c.path = c.path[:0]
	c.state = defaultState()
	c.stack = c.stack[:0]
	c.hasPoint = false
}

// Save pushes the current state.
func (c *Canvas) Save() {
	s := c.state
	s.dash = slices.Clone(s.dash)
	c.stack = append(c.stack, s)
	c.dc.Push()
}

// Restore pops the last saved state. An unmatched Restore is ignored.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.dc.Pop()
}

// Translate moves the origin of user space.
func (c *Canvas) Translate(x, y float64) {
	c.state.transform = c.state.transform.Multiply(geom.Translate(x, y))
}

// Rotate rotates user space by angle radians.
func (c *Canvas) Rotate(angle float64) {
	c.state.transform = c.state.transform.Multiply(geom.Rotate(angle))
}

// Scale scales user space.
func (c *Canvas) Scale(sx, sy float64) {
	c.state.transform = c.state.transform.Multiply(geom.Scale(sx, sy))
}

// Transform multiplies the current transform by m on the right.
func (c *Canvas) Transform(m geom.Matrix) {
	c.state.transform = c.state.transform.Multiply(m)
}

func (c *Canvas) device(x, y float64) geom.Vec2 {
	return geom.TransformPos(c.state.transform, geom.V2(x, y))
}

// BeginPath discards the current path.
func (c *Canvas) BeginPath() {
	c.dc.ClearPath()
	c.path = c.path[:0]
	c.hasPoint = false
}

// MoveTo starts a new subpath at (x, y).
func (c *Canvas) MoveTo(x, y float64) {
	p := c.device(x, y)
	c.dc.MoveTo(p.X, p.Y)
	c.path = append(c.path, pathElem{verb: 'M', pts: [3]geom.Vec2{p}})
	c.current, c.start, c.hasPoint = p, p, true
}

// LineTo adds a straight segment to (x, y).
func (c *Canvas) LineTo(x, y float64) {
	if !c.hasPoint {
		c.MoveTo(x, y)
		return
	}
	p := c.device(x, y)
	c.dc.LineTo(p.X, p.Y)
	c.path = append(c.path, pathElem{verb: 'L', pts: [3]geom.Vec2{p}})
	c.current = p
}

// BezierCurveTo adds a cubic Bezier segment.
func (c *Canvas) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !c.hasPoint {
		c.MoveTo(c1x, c1y)
	}
	p1 := c.device(c1x, c1y)
	p2 := c.device(c2x, c2y)
	p := c.device(x, y)
	c.dc.CubicTo(p1.X, p1.Y, p2.X, p2.Y, p.X, p.Y)
	c.path = append(c.path, pathElem{verb: 'C', pts: [3]geom.Vec2{p1, p2, p}})
	c.current = p
}

// Arc adds a circular arc in user space, preceded by a line from the
// current point to the start of the arc.
func (c *Canvas) Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool) {
	sweep := canvas.ArcSweep(startAngle, endAngle, anticlockwise)
	segs := canvas.ArcCubics(geom.V2(x, y), radius, startAngle, sweep)
	if len(segs) == 0 {
		return
	}
	first := segs[0][0]
	if c.hasPoint {
		c.LineTo(first.X, first.Y)
	} else {
		c.MoveTo(first.X, first.Y)
	}
	for _, s := range segs {
		c.BezierCurveTo(s[1].X, s[1].Y, s[2].X, s[2].Y, s[3].X, s[3].Y)
	}
}

// ArcTo adds a rounded corner of the given radius at (x1, y1), heading
// towards (x2, y2).
func (c *Canvas) ArcTo(x1, y1, x2, y2, radius float64) {
	if !c.hasPoint {
		c.MoveTo(x1, y1)
	}
	p0 := geom.TransformPos(c.state.transform.Invert(), c.current)
	g := canvas.ArcToPoints(p0, geom.V2(x1, y1), geom.V2(x2, y2), radius)
	if g.Line {
		c.LineTo(x1, y1)
		return
	}
	c.LineTo(g.T1.X, g.T1.Y)
	c.Arc(g.Center.X, g.Center.Y, radius, g.Start, g.End, g.Anticlockwise)
}

// Rect adds a closed rectangle subpath.
func (c *Canvas) Rect(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

// ClosePath closes the current subpath.
func (c *Canvas) ClosePath() {
	if !c.hasPoint {
		return
	}
	c.dc.ClosePath()
	c.path = append(c.path, pathElem{verb: 'Z'})
	c.current = c.start
}

// lineScale is the factor by which user-space lengths grow in pixels.
func (c *Canvas) lineScale() float64 {
	return math.Sqrt(math.Abs(geom.Determinant(c.state.transform)))
}

// Fill fills the current path with the fill style. The path is kept.
func (c *Canvas) Fill() {
	c.dc.SetFillRule(gg.FillRuleNonZero)
	c.dc.SetColor(c.state.fill)
	c.setErr("fill", c.dc.FillPreserve())
}

// Stroke strokes the current path with the stroke style. The path is kept.
func (c *Canvas) Stroke() {
	scale := c.lineScale()
	c.dc.SetColor(c.state.stroke)
	c.dc.SetLineWidth(c.state.lineWidth * scale)
	if len(c.state.dash) > 0 {
		dash := make([]float64, len(c.state.dash))
		for i, d := range c.state.dash {
			dash[i] = d * scale
		}
		c.dc.SetDash(dash...)
	} else {
		c.dc.ClearDash()
	}
	c.setErr("stroke", c.dc.StrokePreserve())
}

// Clip intersects the clip region with the current path.
func (c *Canvas) Clip() {
	c.dc.ClipPreserve()
}

// FillRect fills a rectangle without touching the current path.
func (c *Canvas) FillRect(x, y, w, h float64) {
	m := c.state.transform
	c.dc.ClearPath()
	for i, p := range []geom.Vec2{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}} {
		p = geom.TransformPos(m, p)
		if i == 0 {
			c.dc.MoveTo(p.X, p.Y)
		} else {
			c.dc.LineTo(p.X, p.Y)
		}
	}
	c.dc.ClosePath()
	c.dc.SetFillRule(gg.FillRuleNonZero)
	c.dc.SetColor(c.state.fill)
	c.setErr("fillRect", c.dc.Fill())
	c.replayPath()
}

// replayPath rebuilds the gg path from c.path.
func (c *Canvas) replayPath() {
	c.dc.ClearPath()
	for _, e := range c.path {
		switch e.verb {
		case 'M':
			c.dc.MoveTo(e.pts[0].X, e.pts[0].Y)
		case 'L':
			c.dc.LineTo(e.pts[0].X, e.pts[0].Y)
		case 'C':
			c.dc.CubicTo(e.pts[0].X, e.pts[0].Y, e.pts[1].X, e.pts[1].Y, e.pts[2].X, e.pts[2].Y)
		case 'Z':
			c.dc.ClosePath()
		}
	}
}

// ClearRect makes the pixels of a rectangle transparent. Only the
// device-space bounding box of the transformed rectangle is cleared.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	m := c.state.transform
	lo, hi := geom.Bounds([]geom.Vec2{
		geom.TransformPos(m, geom.V2(x, y)),
		geom.TransformPos(m, geom.V2(x+w, y)),
		geom.TransformPos(m, geom.V2(x+w, y+h)),
		geom.TransformPos(m, geom.V2(x, y+h)),
	})
	pm := c.dc.ResizeTarget()
	x0 := max(0, int(math.Floor(lo.X)))
	y0 := max(0, int(math.Floor(lo.Y)))
	x1 := min(pm.Width(), int(math.Ceil(hi.X)))
	y1 := min(pm.Height(), int(math.Ceil(hi.Y)))
	if x0 == 0 && y0 == 0 && x1 == pm.Width() && y1 == pm.Height() {
		c.dc.Clear()
		return
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			pm.SetPixel(px, py, gg.Transparent)
		}
	}
}

func (c *Canvas) parse(style string) (color.NRGBA, bool) {
	col, err := canvas.ParseColor(style)
	if err != nil {
		logging.Get().Debug("raster: ignoring style", "style", style, "err", err)
		return color.NRGBA{}, false
	}
	return col, true
}

// SetStrokeStyle sets the stroke color. Invalid colors are ignored.
func (c *Canvas) SetStrokeStyle(style string) {
	if col, ok := c.parse(style); ok {
		c.state.stroke = col
	}
}

// SetFillStyle sets the fill color. Invalid colors are ignored.
func (c *Canvas) SetFillStyle(style string) {
	if col, ok := c.parse(style); ok {
		c.state.fill = col
	}
}

// SetLineWidth sets the stroke width in user units. Non-positive widths
// are ignored.
func (c *Canvas) SetLineWidth(width float64) {
	if width > 0 && !math.IsInf(width, 0) {
		c.state.lineWidth = width
	}
}

// SetLineDash sets the dash pattern in user units. An odd number of
// entries is repeated, as in Canvas2D.
func (c *Canvas) SetLineDash(segments []float64) {
	for _, s := range segments {
		if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return
		}
	}
	dash := slices.Clone(segments)
	if len(dash)%2 == 1 {
		dash = append(dash, segments...)
	}
	c.state.dash = dash
}

// SetFont sets the CSS font shorthand used by FillText.
func (c *Canvas) SetFont(font string) {
	c.state.font = font
}

// SetTextAlign sets the horizontal text anchor.
func (c *Canvas) SetTextAlign(align canvas.TextAlign) {
	c.state.align = align
}

// SetTextBaseline sets the vertical text anchor.
func (c *Canvas) SetTextBaseline(baseline canvas.TextBaseline) {
	c.state.baseline = baseline
}

// FillText draws text with its anchor at (x, y). Glyphs follow the full
// transform, so rotated and scaled user space gives rotated and scaled
// text.
func (c *Canvas) FillText(text string, x, y float64) {
	if text == "" {
		return
	}
	face := c.fonts.face(fontStyle(c.state.font), canvas.FontSize(c.state.font))
	if face == nil {
		return
	}
	c.dc.SetFont(face)
	w, _ := c.dc.MeasureString(text)
	m := face.Metrics()

	switch c.state.align {
	case canvas.AlignCenter:
		x -= w / 2
	case canvas.AlignRight, "end":
		x -= w
	}
	switch c.state.baseline {
	case canvas.BaselineTop:
		y += m.Ascent
	case canvas.BaselineMiddle:
		y += (m.Ascent - m.Descent) / 2
	case canvas.BaselineBottom:
		y -= m.Descent
	}
	c.dc.SetColor(c.state.fill)
	c.dc.Push()
	c.dc.SetTransform(c.state.transform)
	c.dc.DrawString(text, x, y)
	c.dc.Pop()
}

// MeasureText returns the advance width of text in user units.
func (c *Canvas) MeasureText(text string) canvas.TextMetrics {
	face := c.fonts.face(fontStyle(c.state.font), canvas.FontSize(c.state.font))
	if face == nil {
		return canvas.TextMetrics{}
	}
	c.dc.SetFont(face)
	w, _ := c.dc.MeasureString(text)
	return canvas.TextMetrics{Width: w}
}

// DrawImage draws img into the rectangle (x, y, w, h) of user space.
// Under a transform that only scales and translates the image is blitted;
// otherwise the transformed rectangle is filled with the image sampled
// through the inverse transform.
func (c *Canvas) DrawImage(img canvas.Image, x, y, w, h float64) {
	if img.Data == nil || w == 0 || h == 0 {
		return
	}
	m := c.state.transform
	if m.B == 0 && m.D == 0 && m.A*w > 0 && m.E*h > 0 {
		p := geom.TransformPos(m, geom.V2(x, y))
		c.dc.DrawImageEx(gg.ImageBufFromImage(img.Data), gg.DrawImageOptions{
			X:             p.X,
			Y:             p.Y,
			DstWidth:      m.A * w,
			DstHeight:     m.E * h,
			Interpolation: gg.InterpBilinear,
			Opacity:       1,
			BlendMode:     gg.BlendNormal,
		})
		return
	}

	bounds := img.Data.Bounds()
	sx := float64(bounds.Dx()) / w
	sy := float64(bounds.Dy()) / h
	inv := m.Invert()
	brush := gg.NewCustomBrush(func(px, py float64) gg.RGBA {
		u := geom.TransformPos(inv, geom.V2(px, py))
		ix := int(math.Floor((u.X - x) * sx))
		iy := int(math.Floor((u.Y - y) * sy))
		if ix < 0 || iy < 0 || ix >= bounds.Dx() || iy >= bounds.Dy() {
			return gg.Transparent
		}
		n := color.NRGBAModel.Convert(img.Data.At(bounds.Min.X+ix, bounds.Min.Y+iy)).(color.NRGBA)
		return gg.RGBA2(float64(n.R)/255, float64(n.G)/255, float64(n.B)/255, float64(n.A)/255)
	})

	c.dc.ClearPath()
	for i, p := range []geom.Vec2{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}} {
		p = geom.TransformPos(m, p)
		if i == 0 {
			c.dc.MoveTo(p.X, p.Y)
		} else {
			c.dc.LineTo(p.X, p.Y)
		}
	}
	c.dc.ClosePath()
	c.dc.SetFillRule(gg.FillRuleNonZero)
	c.dc.SetFillBrush(brush)
	c.setErr("drawImage", c.dc.Fill())
	c.replayPath()
}

// fontStyle picks the face variant named in a CSS font shorthand.
func fontStyle(font string) string {
	f := strings.ToLower(font)
	switch {
	case strings.Contains(f, "bold"):
		return "bold"
	case strings.Contains(f, "italic"):
		return "italic"
	case strings.Contains(f, "monospace"):
		return "mono"
	}
	return "regular"
}

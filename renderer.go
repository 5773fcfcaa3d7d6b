package pdraw

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/pdraw/canvas"
	"github.com/gogpu/pdraw/geom"
	"github.com/gogpu/pdraw/imagecache"
)

// Physical and conversion constants used by figure code.
const (
	GoldenRatio       = 1.618033988749895 // (1 + sqrt(5)) / 2
	MilesPerKilometer = 0.621371
)

// DrawFunc issues the primitive calls of one frame.
type DrawFunc func(r *Renderer) error

// snapshot is one entry of the save stack.
type snapshot struct {
	props   props
	trans   geom.Matrix
	trans3D geom.Matrix3D
}

// Renderer draws figures onto a canvas.
//
// A Renderer is not safe for concurrent use. All calls, including the
// redraws triggered by option changes and image loads, must happen on the
// goroutine that owns it; see WithDispatch.
type Renderer struct {
	ctx    canvas.Canvas
	draw   DrawFunc
	width  float64
	height float64

	trans     geom.Matrix
	saveTrans *geom.Matrix
	trans3D   geom.Matrix3D
	initView  geom.Vec3
	view      geom.Vec3

	props props
	stack []snapshot

	options map[string]*option
	history map[string][]Sample

	images   *imagecache.Cache
	hasher   imagecache.Hasher
	dispatch func(func())
	logger   *slog.Logger
	opts     rendererOptions
	unhook   func()

	redrawCallbacks []func()
	// redrawHook replaces the plain redraw when an Animator owns the
	// renderer, so internal redraws respect the animation clock.
	redrawHook func() error

	mouse mouseState

	err error
}

// New creates a renderer on c and runs one draw cycle.
//
// draw may be nil; figures can then be drawn directly between Save and
// RestoreAll calls. A nil canvas returns ErrNoCanvas.
func New(c canvas.Canvas, draw DrawFunc, opts ...RendererOption) (*Renderer, error) {
	r, err := newRenderer(c, draw, opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Redraw(); err != nil {
		r.Close()
		return nil, fmt.Errorf("pdraw: initial draw: %w", err)
	}
	return r, nil
}

func newRenderer(c canvas.Canvas, draw DrawFunc, opts ...RendererOption) (*Renderer, error) {
	if c == nil {
		return nil, ErrNoCanvas
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.images == nil {
		o.images = imagecache.New(imagecache.DirSource{Root: "."})
	}

	r := &Renderer{
		ctx:      c,
		draw:     draw,
		width:    float64(c.Width()),
		height:   float64(c.Height()),
		trans:    geom.Identity(),
		initView: geom.V3(-math.Pi/2*0.75, 0, -math.Pi/2*1.25),
		props:    defaultProps(),
		options:  make(map[string]*option),
		history:  make(map[string][]Sample),
		images:   o.images,
		hasher:   o.hasher,
		dispatch: o.dispatch,
		logger:   o.logger,
		opts:     o,
	}
	r.view = r.initView
	r.trans3D = geom.Identity3D().Rotated(r.view.X, r.view.Y, r.view.Z)

	r.unhook = r.images.OnLoad(r.imageLoaded)
	return r, nil
}

// Close detaches the renderer from its image cache. A renderer sharing a
// cache with others must be closed when it is no longer used; drawing
// after Close still works but images loaded later no longer redraw.
func (r *Renderer) Close() {
	if r.unhook != nil {
		r.unhook()
		r.unhook = nil
	}
}

func (r *Renderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

// Canvas returns the canvas the renderer draws on.
func (r *Renderer) Canvas() canvas.Canvas {
	return r.ctx
}

// Width returns the drawing area width in pixels.
func (r *Renderer) Width() float64 { return r.width }

// Height returns the drawing area height in pixels.
func (r *Renderer) Height() float64 { return r.height }

// Images returns the cache used for images and TeX labels.
func (r *Renderer) Images() *imagecache.Cache {
	return r.images
}

// Err returns the error recorded during the current or last draw cycle.
func (r *Renderer) Err() error {
	return r.err
}

// fail records err unless an earlier error is already recorded. Drawing
// primitives do nothing while an error is recorded.
func (r *Renderer) fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
		r.log().Debug("pdraw: draw cycle aborted", "err", err)
	}
}

// failed reports whether the current draw cycle has been aborted.
func (r *Renderer) failed() bool {
	return r.err != nil
}

// cycle runs fn between Save and RestoreAll and returns the first error
// recorded while it ran.
func (r *Renderer) cycle(fn func() error) error {
	r.err = nil
	r.Save()
	if fn != nil {
		r.fail(fn())
	}
	r.RestoreAll()
	return r.err
}

// Redraw runs the draw function and then the redraw callbacks.
func (r *Renderer) Redraw() error {
	if r.redrawHook != nil {
		return r.redrawHook()
	}
	return r.redraw()
}

func (r *Renderer) redraw() error {
	var fn func() error
	if r.draw != nil {
		fn = func() error { return r.draw(r) }
	}
	err := r.cycle(fn)
	r.fireRedrawCallbacks()
	return err
}

// requestRedraw is used by state changes that redraw as a side effect.
// Their errors are kept in Err but not returned.
func (r *Renderer) requestRedraw() {
	if err := r.Redraw(); err != nil {
		r.log().Warn("pdraw: redraw failed", "err", err)
	}
}

// RegisterRedrawCallback adds fn to the functions called after every redraw.
func (r *Renderer) RegisterRedrawCallback(fn func()) {
	r.redrawCallbacks = append(r.redrawCallbacks, fn)
}

func (r *Renderer) fireRedrawCallbacks() {
	for _, fn := range r.redrawCallbacks {
		fn()
	}
}

// Save pushes the style properties and both transforms, and saves the
// canvas state.
func (r *Renderer) Save() {
	r.ctx.Save()
	r.stack = append(r.stack, snapshot{
		props:   r.props.clone(),
		trans:   r.trans,
		trans3D: r.trans3D,
	})
}

// Restore pops the state pushed by the matching Save.
func (r *Renderer) Restore() error {
	if len(r.stack) == 0 {
		r.fail(ErrRestoreWithoutSave)
		return ErrRestoreWithoutSave
	}
	r.ctx.Restore()
	s := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.props = s.props
	r.trans = s.trans
	r.trans3D = s.trans3D
	return nil
}

// RestoreAll restores every outstanding Save and then reinstates the
// base transform set by SetUnits.
func (r *Renderer) RestoreAll() {
	for len(r.stack) > 0 {
		_ = r.Restore()
	}
	if r.saveTrans != nil {
		r.trans = *r.saveTrans
	}
}

// Depth returns the number of outstanding Save calls.
func (r *Renderer) Depth() int {
	return len(r.stack)
}

// ClearDrawing clears the whole canvas.
func (r *Renderer) ClearDrawing() {
	r.ctx.ClearRect(0, 0, r.width, r.height)
}

// Reset restores every option to its reset value and the 3D view to its
// initial angles, then redraws.
func (r *Renderer) Reset() error {
	for _, name := range r.OptionNames() {
		if err := r.ResetOptionValue(name); err != nil {
			return err
		}
	}
	r.ResetView3D(false)
	return r.Redraw()
}

// Stop halts all ongoing activity. A static renderer has none.
func (r *Renderer) Stop() {}

// SetUnits sets the visible drawing area to xSize by ySize units, centered
// on the origin with y pointing up. Unless preserveCanvasSize is set, the
// canvas shrinks along one axis to match the aspect ratio.
func (r *Renderer) SetUnits(xSize, ySize float64, preserveCanvasSize bool) {
	r.setUnits(xSize, ySize, preserveCanvasSize)
}

// SetUnitsWidth is SetUnits after resizing the canvas to canvasWidth
// pixels wide, with the height following the aspect ratio.
func (r *Renderer) SetUnitsWidth(xSize, ySize float64, canvasWidth int) {
	w := float64(canvasWidth)
	h := math.Floor(ySize / xSize * w)
	if r.width != w || r.height != h {
		r.ctx.Resize(canvasWidth, int(h))
		r.width, r.height = w, h
	}
	r.setUnits(xSize, ySize, true)
}

func (r *Renderer) setUnits(xSize, ySize float64, preserveCanvasSize bool) {
	r.ClearDrawing()
	r.trans = geom.Identity()
	xScale := r.width / xSize
	yScale := r.height / ySize
	scale := yScale
	if xScale < yScale {
		scale = xScale
		if !preserveCanvasSize {
			r.height = xScale * ySize
			r.ctx.Resize(int(r.width), int(r.height))
		}
	} else if !preserveCanvasSize && xScale != yScale {
		r.width = yScale * xSize
		r.ctx.Resize(int(r.width), int(r.height))
	}
	r.Translate(geom.V2(r.width/2, r.height/2))
	r.Scale(geom.V2(1, -1))
	r.Scale(geom.V2(scale, scale))
	base := r.trans
	r.saveTrans = &base
}

package pdraw

import (
	"strconv"

	"github.com/gogpu/pdraw/geom"
)

// viewRadPerPx is the view rotation per pixel of mouse drag.
const viewRadPerPx = 0.01

// EventType identifies a mouse event.
type EventType uint8

// Mouse event types.
const (
	MouseDown EventType = iota
	MouseUp
	MouseMove
	MouseOut
	Click
)

var eventNames = [...]string{"mousedown", "mouseup", "mousemove", "mouseout", "click"}

// String returns the DOM name of the event type.
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// ParseEventType returns the event type with the given DOM name.
func ParseEventType(name string) (EventType, bool) {
	for i, n := range eventNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// MouseEvent is a mouse event in page pixel coordinates.
type MouseEvent struct {
	X, Y   float64
	Button int
}

// Viewport describes where the canvas is shown on the page. Left and Top
// are the offset of the canvas from the page origin. DisplayWidth and
// DisplayHeight are the size it is shown at; zero means the canvas's own
// pixel size.
type Viewport struct {
	Left, Top                   float64
	DisplayWidth, DisplayHeight float64
}

// EventSource delivers mouse events to registered handlers. Handlers are
// called on the goroutine that owns the renderer.
type EventSource interface {
	On(typ EventType, fn func(MouseEvent))
}

// Dispatcher is an EventSource driven by explicit Dispatch calls. It is
// not safe for concurrent use.
type Dispatcher struct {
	handlers map[EventType][]func(MouseEvent)
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventType][]func(MouseEvent))}
}

// On registers fn for events of type typ.
func (d *Dispatcher) On(typ EventType, fn func(MouseEvent)) {
	d.handlers[typ] = append(d.handlers[typ], fn)
}

// Dispatch calls the handlers registered for typ in registration order.
// It reports whether any handler ran.
func (d *Dispatcher) Dispatch(typ EventType, ev MouseEvent) bool {
	hs := d.handlers[typ]
	for _, fn := range hs {
		fn(ev)
	}
	return len(hs) > 0
}

type mouseState struct {
	viewport Viewport

	down3D bool
	last3D geom.Vec2

	tracking     bool
	lastTracking geom.Vec2

	lineActive      bool
	lineListening   bool
	lineDraw        bool
	lineDrawing     bool
	lineStart       geom.Vec2
	lineEnd         geom.Vec2
	lineDrawHandler []func()
}

// SetViewport sets where the canvas is shown, for converting mouse events
// to canvas pixels.
func (r *Renderer) SetViewport(v Viewport) {
	r.mouse.viewport = v
}

// MouseEventPx converts a page position to canvas pixels, accounting for
// the canvas offset and display scaling.
func (r *Renderer) MouseEventPx(ev MouseEvent) geom.Vec2 {
	v := r.mouse.viewport
	x := ev.X - v.Left
	y := ev.Y - v.Top
	if v.DisplayWidth > 0 {
		x *= r.width / v.DisplayWidth
	}
	if v.DisplayHeight > 0 {
		y *= r.height / v.DisplayHeight
	}
	return geom.V2(x, y)
}

// MouseEventDw converts a page position to drawing coordinates.
func (r *Renderer) MouseEventDw(ev MouseEvent) geom.Vec2 {
	return r.Pos2Dw(r.MouseEventPx(ev))
}

// MouseEventOnCanvas reports whether ev lies on the canvas.
func (r *Renderer) MouseEventOnCanvas(ev MouseEvent) bool {
	p := r.MouseEventPx(ev)
	return p.X >= 0 && p.X <= r.width && p.Y >= 0 && p.Y <= r.height
}

// MouseDown3D starts a view rotation drag.
func (r *Renderer) MouseDown3D(ev MouseEvent) {
	r.mouse.down3D = true
	r.mouse.last3D = geom.V2(ev.X, ev.Y)
}

// MouseUp3D ends a view rotation drag.
func (r *Renderer) MouseUp3D(MouseEvent) {
	r.mouse.down3D = false
}

// MouseMove3D rotates the view while dragging: horizontal motion turns
// about the z axis, vertical motion about the x axis.
func (r *Renderer) MouseMove3D(ev MouseEvent) {
	if !r.mouse.down3D {
		return
	}
	p := geom.V2(ev.X, ev.Y)
	d := p.Sub(r.mouse.last3D)
	r.mouse.last3D = p
	r.IncrementView3D(d.Y*viewRadPerPx, 0, d.X*viewRadPerPx, true)
}

// Activate3DControl lets mouse drags on src rotate the 3D view.
func (r *Renderer) Activate3DControl(src EventSource) {
	src.On(MouseDown, r.MouseDown3D)
	src.On(MouseUp, r.MouseUp3D)
	src.On(MouseMove, r.MouseMove3D)
}

// MouseDownTracking starts tracking the mouse position.
func (r *Renderer) MouseDownTracking(ev MouseEvent) {
	r.mouse.tracking = true
	r.mouse.lastTracking = geom.V2(ev.X, ev.Y)
}

// MouseUpTracking stops tracking the mouse position.
func (r *Renderer) MouseUpTracking(MouseEvent) {
	r.mouse.tracking = false
}

// MouseMoveTracking records the mouse position while the button is down.
func (r *Renderer) MouseMoveTracking(ev MouseEvent) {
	if !r.mouse.tracking {
		return
	}
	r.mouse.lastTracking = geom.V2(ev.X, ev.Y)
}

// ActivateMouseTracking records drags on src for MouseDown and
// MousePositionDw.
func (r *Renderer) ActivateMouseTracking(src EventSource) {
	src.On(MouseDown, r.MouseDownTracking)
	src.On(MouseUp, r.MouseUpTracking)
	src.On(MouseMove, r.MouseMoveTracking)
}

// MouseDown reports whether the tracked mouse button is down.
func (r *Renderer) MouseDown() bool {
	return r.mouse.tracking
}

// MousePositionDw returns the last tracked mouse position in drawing
// coordinates.
func (r *Renderer) MousePositionDw() geom.Vec2 {
	p := r.mouse.lastTracking
	return r.MouseEventDw(MouseEvent{X: p.X, Y: p.Y})
}

// ReportMouseSample logs the drawing position of ev and returns it
// formatted as a vector literal, for picking figure coordinates by hand.
func (r *Renderer) ReportMouseSample(ev MouseEvent) string {
	p := r.MouseEventDw(ev)
	s := "geom.V2(" + strconv.FormatFloat(p.X, 'f', 2, 64) + ", " + strconv.FormatFloat(p.Y, 'f', 2, 64) + "),"
	r.log().Info("pdraw: mouse sample", "pos", s)
	return s
}

// ActivateMouseSampling reports every click on src.
func (r *Renderer) ActivateMouseSampling(src EventSource) {
	src.On(Click, func(ev MouseEvent) { r.ReportMouseSample(ev) })
}

// ActivateMouseLineDraw lets the user draw a line on the canvas by
// dragging. Handlers are registered on src only once.
func (r *Renderer) ActivateMouseLineDraw(src EventSource) {
	m := &r.mouse
	if m.lineActive {
		return
	}
	m.lineActive = true
	m.lineDraw = false
	m.lineDrawing = false
	if m.lineListening {
		return
	}
	m.lineListening = true
	src.On(MouseDown, r.MouseLineDrawMousedown)
	src.On(MouseUp, r.MouseLineDrawMouseup)
	src.On(MouseMove, r.MouseLineDrawMousemove)
	src.On(MouseOut, r.MouseLineDrawMouseout)
}

// DeactivateMouseLineDraw stops line drawing, discards the line and
// redraws.
func (r *Renderer) DeactivateMouseLineDraw() {
	r.mouse.lineActive = false
	r.mouse.lineDraw = false
	r.mouse.lineDrawing = false
	r.requestRedraw()
}

// MouseLineDrawMousedown starts a new line at the event position.
func (r *Renderer) MouseLineDrawMousedown(ev MouseEvent) {
	if !r.mouse.lineActive {
		return
	}
	p := r.MouseEventDw(ev)
	r.mouse.lineStart, r.mouse.lineEnd = p, p
	r.mouse.lineDrawing = true
	r.mouse.lineDraw = true
	r.lineDrawChanged()
}

// MouseLineDrawMousemove moves the end of the line being drawn.
func (r *Renderer) MouseLineDrawMousemove(ev MouseEvent) {
	if !r.mouse.lineActive || !r.mouse.lineDrawing {
		return
	}
	r.mouse.lineEnd = r.MouseEventDw(ev)
	r.lineDrawChanged()
}

// MouseLineDrawMouseup finishes the line being drawn.
func (r *Renderer) MouseLineDrawMouseup(MouseEvent) {
	if !r.mouse.lineActive || !r.mouse.lineDrawing {
		return
	}
	r.mouse.lineDrawing = false
	r.lineDrawChanged()
}

// MouseLineDrawMouseout finishes the line where the mouse left the canvas.
func (r *Renderer) MouseLineDrawMouseout(ev MouseEvent) {
	if !r.mouse.lineActive || !r.mouse.lineDrawing {
		return
	}
	r.mouse.lineEnd = r.MouseEventDw(ev)
	r.mouse.lineDrawing = false
	r.lineDrawChanged()
}

// RegisterMouseLineDrawCallback adds fn to the functions called whenever
// the drawn line changes.
func (r *Renderer) RegisterMouseLineDrawCallback(fn func()) {
	r.mouse.lineDrawHandler = append(r.mouse.lineDrawHandler, fn)
}

func (r *Renderer) lineDrawChanged() {
	for _, fn := range r.mouse.lineDrawHandler {
		fn()
	}
	r.requestRedraw()
}

// MouseLine reports the user-drawn line. ok is false when no line has
// been started since line drawing was activated.
func (r *Renderer) MouseLine() (start, end geom.Vec2, ok bool) {
	return r.mouse.lineStart, r.mouse.lineEnd, r.mouse.lineDraw
}

// MouseLineDrawing reports whether a line is being dragged.
func (r *Renderer) MouseLineDrawing() bool {
	return r.mouse.lineDrawing
}

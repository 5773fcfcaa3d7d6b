package pdraw

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/pdraw/canvas"
)

// AnimFunc draws one frame at animation time t in seconds.
type AnimFunc func(a *Animator, t float64) error

// Animator is a Renderer driven by an animation clock.
//
// While stopped, redraws use the time of the last frame. While running,
// every Frame call advances the clock and draws; Run calls Frame from a
// ticker.
type Animator struct {
	*Renderer

	draw AnimFunc

	drawTime   float64 // ms of animation time at the last frame
	deltaTime  float64 // s, only non-zero while a frame is drawn
	timeOffset float64
	running    bool
	startFrame bool

	sequences      map[string]*sequence
	stateCallbacks []func(running bool)
	stepCallbacks  []func(t float64)
}

// NewAnimator creates an animator on c and draws the frame at t = 0.
func NewAnimator(c canvas.Canvas, draw AnimFunc, opts ...RendererOption) (*Animator, error) {
	r, err := newRenderer(c, nil, opts...)
	if err != nil {
		return nil, err
	}
	a := &Animator{
		Renderer:  r,
		draw:      draw,
		sequences: make(map[string]*sequence),
	}
	r.redrawHook = a.Redraw
	if err := a.drawAt(0); err != nil {
		r.Close()
		return nil, fmt.Errorf("pdraw: initial draw: %w", err)
	}
	return a, nil
}

func (a *Animator) drawAt(t float64) error {
	var fn func() error
	if a.draw != nil {
		fn = func() error { return a.draw(a, t) }
	}
	err := a.cycle(fn)
	a.fireRedrawCallbacks()
	return err
}

// StartAnim starts the animation clock. The first frame continues from
// the time the animation was stopped at.
func (a *Animator) StartAnim() {
	if a.running {
		return
	}
	a.running = true
	a.startFrame = true
	a.log().Info("pdraw: animation started", "t", a.LastDrawTime())
	a.fireStateCallbacks()
}

// StopAnim stops the animation clock.
func (a *Animator) StopAnim() {
	a.running = false
	a.log().Info("pdraw: animation stopped", "t", a.LastDrawTime())
	a.fireStateCallbacks()
}

// ToggleAnim starts a stopped animation and stops a running one.
func (a *Animator) ToggleAnim() {
	if a.running {
		a.StopAnim()
	} else {
		a.StartAnim()
	}
}

// Running reports whether the animation clock runs.
func (a *Animator) Running() bool {
	return a.running
}

// RegisterAnimCallback adds fn to the functions called when the animation
// starts or stops, and calls it once with the current state.
func (a *Animator) RegisterAnimCallback(fn func(running bool)) {
	a.stateCallbacks = append(a.stateCallbacks, fn)
	fn(a.running)
}

// RegisterAnimStepCallback adds fn to the functions called with the
// animation time before every frame is drawn.
func (a *Animator) RegisterAnimStepCallback(fn func(t float64)) {
	a.stepCallbacks = append(a.stepCallbacks, fn)
}

func (a *Animator) fireStateCallbacks() {
	for _, fn := range a.stateCallbacks {
		fn(a.running)
	}
}

func (a *Animator) fireStepCallbacks(t float64) {
	for _, fn := range a.stepCallbacks {
		fn(t)
	}
}

// Frame advances the animation to the host clock time nowMS (in
// milliseconds, any origin) and draws. On the first frame after
// StartAnim or ResetTime the clock is re-based so animation time
// continues without a jump.
func (a *Animator) Frame(nowMS float64) error {
	if a.startFrame {
		a.startFrame = false
		a.timeOffset = nowMS - a.drawTime
	}
	animTime := nowMS - a.timeOffset
	a.deltaTime = (animTime - a.drawTime) / 1000
	a.drawTime = animTime
	t := animTime / 1000
	a.fireStepCallbacks(t)
	err := a.drawAt(t)
	a.deltaTime = 0
	return err
}

// DeltaTime returns the seconds of animation time since the previous
// frame, while a frame is being drawn, and 0 otherwise.
func (a *Animator) DeltaTime() float64 {
	return a.deltaTime
}

// LastDrawTime returns the animation time of the last frame in seconds.
func (a *Animator) LastDrawTime() float64 {
	return a.drawTime / 1000
}

// Redraw draws the frame at the last animation time. While the animation
// runs the next frame draws anyway, so Redraw does nothing.
func (a *Animator) Redraw() error {
	if a.running {
		return nil
	}
	return a.drawAt(a.drawTime / 1000)
}

// ResetTime sets the animation time back to zero.
func (a *Animator) ResetTime(redraw bool) {
	a.drawTime = 0
	a.fireStepCallbacks(0)
	a.startFrame = true
	if redraw {
		a.requestRedraw()
	}
}

// Reset restores options, sequences, history, the 3D view and the
// animation clock to their initial state, then redraws.
func (a *Animator) Reset() error {
	for _, name := range a.OptionNames() {
		if err := a.ResetOptionValue(name); err != nil {
			return err
		}
	}
	a.ResetAllSequences()
	a.ClearAllHistory()
	a.StopAnim()
	a.ResetView3D(false)
	a.ResetTime(false)
	return a.Redraw()
}

// Stop stops the animation.
func (a *Animator) Stop() {
	a.StopAnim()
}

// ActivateAnimOnClick starts the animation on a mouse press on src.
func (a *Animator) ActivateAnimOnClick(src EventSource) {
	src.On(MouseDown, func(MouseEvent) { a.StartAnim() })
}

// Run drives the animation at fps frames per second until ctx is done.
// Frames are only drawn while the animation runs. Functions received on
// tasks run between frames on the calling goroutine; image loads and
// input handlers use it to reach the renderer safely.
//
// Run returns ctx.Err() when ctx is done, or the first draw error.
func (a *Animator) Run(ctx context.Context, fps float64, tasks <-chan func()) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()

	now := a.opts.clock
	origin := now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-tasks:
			fn()
		case <-ticker.C:
			if !a.running {
				continue
			}
			ms := float64(now().Sub(origin)) / float64(time.Millisecond)
			start := time.Now()
			if err := a.Frame(ms); err != nil {
				return fmt.Errorf("pdraw: frame at t=%g: %w", a.LastDrawTime(), err)
			}
			a.log().Debug("pdraw: frame", "t", a.LastDrawTime(), "took", time.Since(start))
		}
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/pdraw"
	"github.com/gogpu/pdraw/canvas/record"
	"github.com/gogpu/pdraw/config"
	"github.com/gogpu/pdraw/imagecache"
	"github.com/gogpu/pdraw/internal/figures"
)

const (
	writeWait  = 10 * time.Second
	maxMsgSize = 16 * 1024
	queueSize  = 64
)

// Client message types.
const (
	msgMouse  = "mouse"  // Event, X, Y, Button
	msgOption = "option" // Name, Value
	msgToggle = "toggle" // Name
	msgStep   = "step"   // Name, optional State
	msgStart  = "start"
	msgStop   = "stop"
	msgReset  = "reset"
)

// Server message types.
const (
	msgHello = "hello"
	msgFrame = "frame"
	msgError = "error"
)

type clientMessage struct {
	Type   string  `json:"type"`
	Event  string  `json:"event,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Button int     `json:"button,omitempty"`
	Name   string  `json:"name,omitempty"`
	Value  any     `json:"value,omitempty"`
	State  string  `json:"state,omitempty"`
}

type serverMessage struct {
	Type    string        `json:"type"`
	Session string        `json:"session,omitempty"`
	Figure  string        `json:"figure,omitempty"`
	T       float64       `json:"t"`
	Running bool          `json:"running"`
	Frame   *record.Frame `json:"frame,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// session drives one figure for one websocket client. The animator, the
// recorder and the event dispatcher are only touched by the goroutine in
// Animator.Run; the reader and image loads reach them through tasks.
type session struct {
	id     uuid.UUID
	fig    figures.Figure
	fps    float64
	anim   *pdraw.Animator
	rec    *record.Recorder
	events *pdraw.Dispatcher
	tasks  chan func()
	out    chan serverMessage
	log    *slog.Logger
}

func newSession(fig figures.Figure, cfg *config.Config, images *imagecache.Cache, logger *slog.Logger) (*session, error) {
	s := &session{
		id:     uuid.New(),
		fig:    fig,
		fps:    cfg.FPS,
		rec:    record.NewRecorder(cfg.Width, cfg.Height),
		events: pdraw.NewDispatcher(),
		tasks:  make(chan func(), queueSize),
		out:    make(chan serverMessage, queueSize),
	}
	s.log = logger.With("session", s.id, "figure", fig.Name)

	a, err := fig.New(s.rec,
		pdraw.WithImageCache(images),
		pdraw.WithLogger(s.log),
		pdraw.WithDispatch(s.dispatch),
	)
	if err != nil {
		return nil, err
	}
	s.anim = a
	// Start the stream from a single clean frame.
	s.rec.Reset()
	if err := a.Redraw(); err != nil {
		a.Close()
		return nil, err
	}
	if fig.Interactive {
		a.Activate3DControl(s.events)
	}
	a.RegisterRedrawCallback(s.sendFrame)
	return s, nil
}

// dispatch queues fn for the run loop. It is called from image loader
// goroutines; a full queue drops the redraw, the next one catches up.
func (s *session) dispatch(fn func()) {
	select {
	case s.tasks <- fn:
	default:
		s.log.Debug("task queue full, dropping redraw")
	}
}

// frame takes the commands recorded since the last frame.
func (s *session) frame(typ string) serverMessage {
	f := s.rec.Frame()
	s.rec.Reset()
	return serverMessage{
		Type:    typ,
		T:       s.anim.LastDrawTime(),
		Running: s.anim.Running(),
		Frame:   &f,
	}
}

func (s *session) send(msg serverMessage) {
	select {
	case s.out <- msg:
	default:
		s.log.Warn("client too slow, dropping message", "type", msg.Type)
	}
}

func (s *session) sendFrame() {
	s.send(s.frame(msgFrame))
}

// serve runs the session until the client disconnects or ctx is done.
func (s *session) serve(ctx context.Context, conn *websocket.Conn) error {
	conn.SetReadLimit(maxMsgSize)

	hello := s.frame(msgHello)
	hello.Session = s.id.String()
	hello.Figure = s.fig.Name
	s.send(hello)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.anim.Run(ctx, s.fps, s.tasks)
	})
	g.Go(func() error {
		return s.readLoop(ctx, conn)
	})
	g.Go(func() error {
		return s.writeLoop(ctx, conn)
	})
	return g.Wait()
}

func (s *session) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		var msg clientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return err
		}
		select {
		case s.tasks <- func() { s.apply(msg) }:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *session) writeLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-s.out:
			wctx, cancel := context.WithTimeout(ctx, writeWait)
			err := wsjson.Write(wctx, conn, msg)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}

// apply handles one client message on the run loop goroutine.
func (s *session) apply(msg clientMessage) {
	if err := s.handle(msg); err != nil {
		s.log.Debug("client message failed", "type", msg.Type, "error", err)
		s.send(errorf("%s: %v", msg.Type, err))
	}
}

var errUnknownEvent = errors.New("unknown mouse event")

func (s *session) handle(msg clientMessage) error {
	a := s.anim
	switch msg.Type {
	case msgMouse:
		typ, ok := pdraw.ParseEventType(msg.Event)
		if !ok {
			return fmt.Errorf("%w %q", errUnknownEvent, msg.Event)
		}
		s.events.Dispatch(typ, pdraw.MouseEvent{X: msg.X, Y: msg.Y, Button: msg.Button})
		return a.Err()
	case msgOption:
		return a.SetOption(msg.Name, msg.Value)
	case msgToggle:
		return a.ToggleOption(msg.Name)
	case msgStep:
		if msg.State != "" {
			return a.StepSequence(msg.Name, msg.State)
		}
		return a.StepSequence(msg.Name)
	case msgStart:
		a.StartAnim()
	case msgStop:
		a.StopAnim()
		return a.Redraw()
	case msgReset:
		return a.Reset()
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

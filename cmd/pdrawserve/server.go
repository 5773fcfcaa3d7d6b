package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/gogpu/pdraw"
	"github.com/gogpu/pdraw/canvas/raster"
	"github.com/gogpu/pdraw/config"
	"github.com/gogpu/pdraw/imagecache"
	"github.com/gogpu/pdraw/internal/figures"
)

const maxCanvasSide = 4096

type server struct {
	base   context.Context
	cfg    *config.Config
	images *imagecache.Cache
	log    *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// newServer returns a server whose websocket sessions end when base is
// done.
func newServer(base context.Context, cfg *config.Config, logger *slog.Logger) *server {
	var src imagecache.Source = imagecache.DirSource{Root: cfg.ImageDir}
	if cfg.TexBaseURL != "" {
		src = imagecache.HTTPSource{BaseURL: cfg.TexBaseURL}
	}
	return &server{
		base:     base,
		cfg:      cfg,
		images:   imagecache.New(src, imagecache.WithLogger(logger)),
		log:      logger,
		sessions: make(map[uuid.UUID]*session),
	}
}

func (s *server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/figures", s.handleFigures).Methods(http.MethodGet)
	r.HandleFunc("/figures/{name:[a-z0-9_-]+}.png", s.handlePNG).Methods(http.MethodGet)
	r.HandleFunc("/ws/figures/{name:[a-z0-9_-]+}", s.handleWebSocket).Methods(http.MethodGet)
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type figureInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Animated    bool   `json:"animated"`
	Interactive bool   `json:"interactive"`
}

func (s *server) handleFigures(w http.ResponseWriter, _ *http.Request) {
	all := figures.All()
	list := make([]figureInfo, len(all))
	for i, f := range all {
		list[i] = figureInfo{
			Name:        f.Name,
			Description: f.Description,
			Animated:    f.Animated,
			Interactive: f.Interactive,
		}
	}
	writeJSON(w, http.StatusOK, list)
}

// handlePNG renders one frame of a figure. t selects the animation time
// in seconds; width and height override the configured canvas size.
func (s *server) handlePNG(w http.ResponseWriter, r *http.Request) {
	fig, ok := figures.Lookup(mux.Vars(r)["name"])
	if !ok {
		http.Error(w, "figure not found", http.StatusNotFound)
		return
	}
	q := r.URL.Query()
	t, err := queryFloat(q.Get("t"), 0)
	if err != nil || t < 0 {
		http.Error(w, "invalid t", http.StatusBadRequest)
		return
	}
	width, err1 := queryInt(q.Get("width"), s.cfg.Width)
	height, err2 := queryInt(q.Get("height"), s.cfg.Height)
	if err1 != nil || err2 != nil || width <= 0 || height <= 0 || width > maxCanvasSide || height > maxCanvasSide {
		http.Error(w, "invalid canvas size", http.StatusBadRequest)
		return
	}

	c := raster.New(width, height)
	a, err := fig.New(c, pdraw.WithImageCache(s.images))
	if err != nil {
		s.log.Error("render figure", "figure", fig.Name, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	defer a.Close()
	s.images.Wait()
	if fig.Animated && t > 0 {
		a.StartAnim()
		if err = a.Frame(0); err == nil {
			err = a.Frame(t * 1000)
		}
	} else {
		err = a.Redraw()
	}
	if err == nil {
		err = c.Err()
	}
	if err != nil {
		s.log.Error("render figure", "figure", fig.Name, "t", t, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func queryFloat(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

func queryInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func (s *server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	fig, ok := figures.Lookup(mux.Vars(r)["name"])
	if !ok {
		http.Error(w, "figure not found", http.StatusNotFound)
		return
	}
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.AllowedOrigins,
	})
	if err != nil {
		s.log.Error("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	sess, err := newSession(fig, s.cfg, s.images, s.log)
	if err != nil {
		s.log.Error("start session", "figure", fig.Name, "error", err)
		conn.Close(websocket.StatusInternalError, "figure failed to draw")
		return
	}
	s.addSession(sess)
	defer s.removeSession(sess)
	defer sess.anim.Close()

	// Closing from here lets a blocked read see the close handshake.
	stop := context.AfterFunc(s.base, func() {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
	})
	defer stop()

	err = sess.serve(r.Context(), conn)
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		sess.log.Debug("session closed", "error", err)
	default:
		sess.log.Warn("session ended", "error", err)
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func (s *server) addSession(sess *session) {
	s.mu.Lock()
	s.sessions[sess.id] = sess
	n := len(s.sessions)
	s.mu.Unlock()
	sess.log.Info("session started", "sessions", n)
}

func (s *server) removeSession(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
}

func (s *server) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// errorf builds the error message sent to a websocket client.
func errorf(format string, args ...any) serverMessage {
	return serverMessage{Type: msgError, Error: fmt.Sprintf(format, args...)}
}

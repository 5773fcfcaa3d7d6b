package main

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/pdraw/config"
)

func newTestServer(t *testing.T) (*server, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Width, cfg.Height = 200, 160
	cfg.ImageDir = t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	s := newServer(ctx, &cfg, logger)
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestListFigures(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/figures")
	require.NoError(t, err)
	defer resp.Body.Close()

	var list []figureInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	names := make(map[string]figureInfo)
	for _, f := range list {
		names[f.Name] = f
	}
	require.Contains(t, names, "pendulum")
	assert.True(t, names["pendulum"].Animated)
	assert.True(t, names["sphere"].Interactive)
}

func TestFigurePNG(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/figures/beam.png?width=160&height=90")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestFigurePNGAnimated(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/figures/pendulum.png?t=0.5")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, err = png.Decode(resp.Body)
	require.NoError(t, err)
}

func TestFigurePNGErrors(t *testing.T) {
	_, ts := newTestServer(t)
	tests := []struct {
		path string
		want int
	}{
		{"/figures/missing.png", http.StatusNotFound},
		{"/figures/beam.png?t=soon", http.StatusBadRequest},
		{"/figures/beam.png?t=-1", http.StatusBadRequest},
		{"/figures/beam.png?width=0", http.StatusBadRequest},
		{"/figures/beam.png?height=100000", http.StatusBadRequest},
		{"/ws/figures/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

// wireMessage is serverMessage with the frame left undecoded.
type wireMessage struct {
	Type    string  `json:"type"`
	Session string  `json:"session"`
	Figure  string  `json:"figure"`
	T       float64 `json:"t"`
	Running bool    `json:"running"`
	Frame   *struct {
		Width    int               `json:"width"`
		Height   int               `json:"height"`
		Commands []json.RawMessage `json:"commands"`
	} `json:"frame"`
	Error string `json:"error"`
}

func dial(t *testing.T, ts *httptest.Server, figure string) (context.Context, *websocket.Conn) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/figures/" + figure
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })
	return ctx, conn
}

func read(t *testing.T, ctx context.Context, conn *websocket.Conn) wireMessage {
	t.Helper()
	var msg wireMessage
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	return msg
}

func TestWebSocketSession(t *testing.T) {
	s, ts := newTestServer(t)
	ctx, conn := dial(t, ts, "sphere")

	hello := read(t, ctx, conn)
	require.Equal(t, msgHello, hello.Type)
	assert.Equal(t, "sphere", hello.Figure)
	_, err := uuid.Parse(hello.Session)
	require.NoError(t, err)
	require.NotNil(t, hello.Frame)
	assert.Equal(t, 200, hello.Frame.Width)
	assert.NotEmpty(t, hello.Frame.Commands)
	assert.Equal(t, 1, s.sessionCount())

	// Dragging rotates the 3D view and redraws.
	require.NoError(t, wsjson.Write(ctx, conn, clientMessage{Type: msgMouse, Event: "mousedown", X: 100, Y: 100}))
	require.NoError(t, wsjson.Write(ctx, conn, clientMessage{Type: msgMouse, Event: "mousemove", X: 130, Y: 100}))
	frame := read(t, ctx, conn)
	require.Equal(t, msgFrame, frame.Type)
	assert.NotEmpty(t, frame.Frame.Commands)

	require.NoError(t, wsjson.Write(ctx, conn, clientMessage{Type: msgOption, Name: "nope", Value: 1}))
	errMsg := read(t, ctx, conn)
	assert.Equal(t, msgError, errMsg.Type)
	assert.Contains(t, errMsg.Error, "unknown option")

	require.NoError(t, wsjson.Write(ctx, conn, clientMessage{Type: "dance"}))
	errMsg = read(t, ctx, conn)
	assert.Equal(t, msgError, errMsg.Type)
	assert.Contains(t, errMsg.Error, "dance")

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
	assert.Eventually(t, func() bool { return s.sessionCount() == 0 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, s.images.Listeners())
}

func TestFigurePNGReleasesRenderer(t *testing.T) {
	s, ts := newTestServer(t)
	for range 5 {
		resp, err := http.Get(ts.URL + "/figures/beam.png?width=40&height=30")
		require.NoError(t, err)
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Eventually(t, func() bool { return s.images.Listeners() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestWebSocketStepStartsAnimation(t *testing.T) {
	_, ts := newTestServer(t)
	ctx, conn := dial(t, ts, "blocks")

	hello := read(t, ctx, conn)
	require.Equal(t, msgHello, hello.Type)
	assert.False(t, hello.Running)

	require.NoError(t, wsjson.Write(ctx, conn, clientMessage{Type: msgStep, Name: "block"}))
	for {
		msg := read(t, ctx, conn)
		require.Equal(t, msgFrame, msg.Type, "error: %s", msg.Error)
		if msg.Running {
			break
		}
	}

	require.NoError(t, wsjson.Write(ctx, conn, clientMessage{Type: msgStep, Name: "nope"}))
	for {
		msg := read(t, ctx, conn)
		if msg.Type == msgError {
			assert.Contains(t, msg.Error, "unknown sequence")
			break
		}
	}
}

func TestWebSocketServerShutdown(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height = 100, 100
	ctx, cancel := context.WithCancel(context.Background())
	s := newServer(ctx, &cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(s.routes())
	defer ts.Close()

	dctx, conn := dial(t, ts, "beam")
	read(t, dctx, conn)
	cancel()

	_, _, err := conn.Read(dctx)
	assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))
}

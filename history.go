package pdraw

import (
	"image/color"

	"github.com/gogpu/pdraw/canvas"
	"github.com/gogpu/pdraw/geom"
)

// Sample is one time-stamped history value. Value is a float64 for
// scalar series and a geom.Vector for position series.
type Sample struct {
	T     float64
	Value any
}

// Float returns the value of a scalar sample, or 0.
func (s Sample) Float() float64 {
	f, _ := s.Value.(float64)
	return f
}

// Pos returns the value of a position sample, or nil.
func (s Sample) Pos() geom.Vector {
	v, _ := s.Value.(geom.Vector)
	return v
}

// History records value at time t in the series name and returns the
// series, oldest first. A sample less than dt after the one before the
// last replaces the last sample. Samples older than maxTime are dropped,
// except that the newest is always kept.
//
// The returned slice shares storage with the series and is only valid
// until the next call for the same name.
func (r *Renderer) History(name string, dt, maxTime, t float64, value any) []Sample {
	if n, ok := normalizeValue(value); ok {
		value = n
	}
	s := Sample{T: t, Value: value}
	h, ok := r.history[name]
	if !ok {
		r.history[name] = []Sample{s}
		return r.history[name]
	}
	switch {
	case len(h) < 2:
		h = append(h, s)
	case t-h[len(h)-2].T < dt:
		h[len(h)-1] = s
	default:
		h = append(h, s)
	}
	i := 0
	for i < len(h)-1 && t-h[i].T > maxTime {
		i++
	}
	h = h[i:]
	r.history[name] = h
	return h
}

// ClearHistory deletes the series name.
func (r *Renderer) ClearHistory(name string) {
	if _, ok := r.history[name]; !ok {
		r.log().Warn("pdraw: history not found", "name", name)
		return
	}
	delete(r.history, name)
}

// ClearAllHistory deletes every series.
func (r *Renderer) ClearAllHistory() {
	clear(r.history)
}

// PairsToVectors converts a scalar series to (t, value) points.
func PairsToVectors(data []Sample) []geom.Vec2 {
	points := make([]geom.Vec2, len(data))
	for i, s := range data {
		points[i] = geom.V2(s.T, s.Float())
	}
	return points
}

// HistoryToTrace returns the positions of a position series.
func HistoryToTrace(data []Sample) []geom.Vector {
	trace := make([]geom.Vector, len(data))
	for i, s := range data {
		trace[i] = s.Pos()
	}
	return trace
}

// FadeHistoryLine draws a position series as a line whose color fades
// from current at time t to old at maxT seconds earlier. Older segments
// are drawn first, so newer ones paint over them. Segments touching a
// sample that holds no position are skipped.
func (r *Renderer) FadeHistoryLine(history []Sample, t, maxT float64, current, old color.Color) {
	if len(history) < 2 || maxT == 0 {
		return
	}
	skipped := 0
	for i := 0; i < len(history)-1; i++ {
		p0, p1 := history[i].Pos(), history[i+1].Pos()
		if p0 == nil || p1 == nil {
			skipped++
			continue
		}
		alpha := (t - history[i].T) / maxT
		r.Line(p0, p1, canvas.BlendRGB(current, old, alpha))
	}
	if skipped > 0 {
		r.log().Warn("pdraw: history samples without a position", "segments", skipped)
	}
}

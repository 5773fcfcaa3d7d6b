package pdraw

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/pdraw/canvas/record"
	"github.com/gogpu/pdraw/geom"
)

const eps = 1e-9

var approx = cmpopts.EquateApprox(0, 1e-9)

// newTestRenderer returns a renderer without a draw function on a
// recording canvas of the given size.
func newTestRenderer(t *testing.T, w, h int, opts ...RendererOption) (*Renderer, *record.Recorder) {
	t.Helper()
	rec := record.NewRecorder(w, h)
	r, err := New(rec, nil, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	rec.Reset()
	return r, rec
}

func TestNewNilCanvas(t *testing.T) {
	r, err := New(nil, nil)
	if !errors.Is(err, ErrNoCanvas) {
		t.Errorf("New(nil) error = %v, want ErrNoCanvas", err)
	}
	if r != nil {
		t.Error("New(nil) returned a renderer")
	}
}

func TestSetUnitsWidthCircle(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.SetUnitsWidth(20, 20, 200)
	if r.Width() != 200 || r.Height() != 200 {
		t.Fatalf("size = %vx%v, want 200x200", r.Width(), r.Height())
	}
	if rec.Width() != 200 || rec.Height() != 200 {
		t.Fatalf("canvas size = %dx%d, want 200x200", rec.Width(), rec.Height())
	}
	rec.Reset()
	r.Circle(geom.V2(0, 0), 10, true)

	strokes := rec.Filter(record.OpStroke)
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	want := []record.Segment{{
		Verb:   record.VerbArc,
		Pts:    []geom.Vec2{geom.V2(100, 100)},
		Radius: 100,
		Start:  0,
		End:    2 * math.Pi,
	}}
	if diff := cmp.Diff(want, strokes[0].Path, approx); diff != "" {
		t.Errorf("circle path mismatch (-want +got):\n%s", diff)
	}
	if fills := rec.Filter(record.OpFill); len(fills) != 1 || fills[0].Fill != "rgb(255, 255, 255)" {
		t.Errorf("fills = %+v, want one white fill", fills)
	}
}

func TestSetUnitsShrinksCanvas(t *testing.T) {
	r, rec := newTestRenderer(t, 400, 400)
	r.SetUnits(4, 2, false)
	if r.Width() != 400 || r.Height() != 200 {
		t.Errorf("size = %vx%v, want 400x200", r.Width(), r.Height())
	}
	if rec.Height() != 200 {
		t.Errorf("canvas height = %d, want 200", rec.Height())
	}
	if got := r.Pos2Px(geom.V2(2, 1)); !got.Approx(geom.V2(400, 0), eps) {
		t.Errorf("Pos2Px(2, 1) = %v, want (400, 0)", got)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	r, _ := newTestRenderer(t, 300, 200)
	r.SetUnits(6, 4, true)
	r.Translate(geom.V2(1, -0.5))
	r.Rotate(0.7)
	r.Scale(geom.V2(2, 3))

	for _, p := range []geom.Vec2{geom.V2(0, 0), geom.V2(1, 2), geom.V2(-3.5, 0.25)} {
		if got := r.Pos2Dw(r.Pos2Px(p)); !got.Approx(p, 1e-9) {
			t.Errorf("Pos2Dw(Pos2Px(%v)) = %v", p, got)
		}
		if got := r.Vec2Dw(r.Vec2Px(p)); !got.Approx(p, 1e-9) {
			t.Errorf("Vec2Dw(Vec2Px(%v)) = %v", p, got)
		}
	}
	if !r.IsReflection() {
		t.Error("IsReflection() = false for a y-up drawing")
	}
}

func TestNormalizedCoordinates(t *testing.T) {
	r, _ := newTestRenderer(t, 200, 100)
	if got := r.PosNm2Px(geom.V2(0.5, 0.5)); !got.Approx(geom.V2(100, 50), eps) {
		t.Errorf("PosNm2Px(0.5, 0.5) = %v, want (100, 50)", got)
	}
	if got := r.PosNm2Px(geom.V2(0, 0)); !got.Approx(geom.V2(0, 100), eps) {
		t.Errorf("PosNm2Px(0, 0) = %v, want bottom-left (0, 100)", got)
	}
}

func TestSaveRestoreIdempotent(t *testing.T) {
	r, _ := newTestRenderer(t, 100, 100)
	r.SetUnits(10, 10, true)
	before := r.Transform()
	beforeProps := r.props.clone()

	r.Save()
	r.Translate(geom.V2(3, 4))
	r.Rotate(1)
	if err := r.SetProp("shapeOutlineColor", "red"); err != nil {
		t.Fatalf("SetProp() error = %v", err)
	}
	r.Rotate3D(0.1, 0.2, 0.3)
	if err := r.Restore(); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	if diff := cmp.Diff(before, r.Transform(), approx); diff != "" {
		t.Errorf("transform not restored (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(beforeProps, r.props); diff != "" {
		t.Errorf("props not restored (-want +got):\n%s", diff)
	}
	if r.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", r.Depth())
	}
}

func TestRestoreWithoutSave(t *testing.T) {
	r, _ := newTestRenderer(t, 100, 100)
	if err := r.Restore(); !errors.Is(err, ErrRestoreWithoutSave) {
		t.Errorf("Restore() error = %v, want ErrRestoreWithoutSave", err)
	}
	if !errors.Is(r.Err(), ErrRestoreWithoutSave) {
		t.Errorf("Err() = %v, want ErrRestoreWithoutSave", r.Err())
	}
}

func TestDrawCycleBalancesStack(t *testing.T) {
	rec := record.NewRecorder(100, 100)
	var depth int
	r, err := New(rec, func(r *Renderer) error {
		r.Save()
		r.Save()
		r.Translate(geom.V2(5, 5))
		depth = r.Depth()
		return nil
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if depth != 3 {
		t.Errorf("depth inside draw = %d, want 3", depth)
	}
	if r.Depth() != 0 {
		t.Errorf("Depth() after draw = %d, want 0", r.Depth())
	}
	if rec.Depth() != 0 {
		t.Errorf("canvas depth after draw = %d, want 0", rec.Depth())
	}
	if !r.Transform().IsIdentity() {
		t.Errorf("Transform() after draw = %v, want identity", r.Transform())
	}
}

func TestRedrawRestoresBaseTransform(t *testing.T) {
	rec := record.NewRecorder(100, 100)
	r, err := New(rec, func(r *Renderer) error {
		r.Translate(geom.V2(1, 1))
		r.Point(geom.V2(0, 0))
		return nil
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	r.SetUnits(10, 10, true)
	base := r.Transform()
	rec.Reset()
	if err := r.Redraw(); err != nil {
		t.Fatalf("Redraw() error = %v", err)
	}
	if diff := cmp.Diff(base, r.Transform(), approx); diff != "" {
		t.Errorf("base transform changed by redraw (-want +got):\n%s", diff)
	}
	fills := rec.Filter(record.OpFill)
	if len(fills) != 1 {
		t.Fatalf("got %d fills, want 1", len(fills))
	}
	if got := fills[0].Path[0].Pts[0]; !got.Approx(geom.V2(60, 40), eps) {
		t.Errorf("point drawn at %v, want (60, 40)", got)
	}
}

func TestStickyError(t *testing.T) {
	rec := record.NewRecorder(100, 100)
	var drawn int
	_, err := New(rec, func(r *Renderer) error {
		_ = r.SetProp("shapeStrokePattern", "wavy")
		r.Line(geom.V2(0, 0), geom.V2(1, 1), "")
		r.Circle(geom.V2(0, 0), 1, false)
		drawn++
		return nil
	})
	if !errors.Is(err, ErrUnknownDashPattern) {
		t.Fatalf("New() error = %v, want ErrUnknownDashPattern", err)
	}
	if drawn != 1 {
		t.Errorf("draw function ran %d times, want 1", drawn)
	}
	if n := len(rec.Filter(record.OpStroke)); n != 0 {
		t.Errorf("got %d strokes after a failed style, want 0", n)
	}
}

func TestErrorClearedOnNextCycle(t *testing.T) {
	fail := true
	r, _ := newTestRenderer(t, 100, 100)
	r.draw = func(r *Renderer) error {
		if fail {
			return r.SetProp("noSuchProp", 1.0)
		}
		return nil
	}
	if err := r.Redraw(); !errors.Is(err, ErrUnknownProperty) {
		t.Fatalf("Redraw() error = %v, want ErrUnknownProperty", err)
	}
	fail = false
	if err := r.Redraw(); err != nil {
		t.Errorf("Redraw() error = %v, want nil", err)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestRedrawCallbacks(t *testing.T) {
	r, _ := newTestRenderer(t, 10, 10)
	var calls int
	r.RegisterRedrawCallback(func() { calls++ })
	_ = r.Redraw()
	_ = r.Redraw()
	if calls != 2 {
		t.Errorf("redraw callbacks called %d times, want 2", calls)
	}
}

func TestSetPropTypeChecks(t *testing.T) {
	r, _ := newTestRenderer(t, 10, 10)
	tests := []struct {
		name    string
		value   any
		wantErr error
	}{
		{"arrowLineWidthPx", 3, nil},
		{"arrowLineWidthPx", float32(1.5), nil},
		{"arrowLineWidthPx", "wide", ErrWrongPropertyType},
		{"hiddenLineDraw", false, nil},
		{"hiddenLineDraw", 1.0, ErrWrongPropertyType},
		{"noSuchProp", 1.0, ErrUnknownProperty},
		{"shapeOutlineColor", []int{1}, ErrWrongPropertyType},
	}
	for _, tt := range tests {
		r.err = nil
		err := r.SetProp(tt.name, tt.value)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("SetProp(%s, %v) error = %v, want %v", tt.name, tt.value, err, tt.wantErr)
		}
	}
	if got, _ := r.PropFloat("arrowLineWidthPx"); got != 1.5 {
		t.Errorf("arrowLineWidthPx = %v, want 1.5", got)
	}
}

func TestSetShapeDrawHidden(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.SetShapeDrawHidden()
	r.Line(geom.V2(0, 0), geom.V2(10, 0), "")
	strokes := rec.Filter(record.OpStroke)
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	if diff := cmp.Diff([]float64{6, 6}, strokes[0].Dash); diff != "" {
		t.Errorf("hidden line dash mismatch (-want +got):\n%s", diff)
	}
}

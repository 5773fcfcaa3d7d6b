package pdraw

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/pdraw/canvas/record"
	"github.com/gogpu/pdraw/geom"
)

func TestPolyLine(t *testing.T) {
	tests := []struct {
		name       string
		closed     bool
		filled     bool
		wantFills  int
		wantClosed bool
	}{
		{"open", false, false, 0, false},
		{"closed", true, false, 0, true},
		{"filled", true, true, 1, true},
		{"open ignores filled", false, true, 0, false},
	}
	pts := []geom.Vector{geom.V2(0, 0), geom.V2(10, 0), geom.V2(10, 10)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rec := newTestRenderer(t, 100, 100)
			r.PolyLine(pts, tt.closed, tt.filled)
			strokes := rec.Filter(record.OpStroke)
			if len(strokes) != 1 {
				t.Fatalf("got %d strokes, want 1", len(strokes))
			}
			path := strokes[0].Path
			if closed := path[len(path)-1].Verb == record.VerbClose; closed != tt.wantClosed {
				t.Errorf("closed = %v, want %v", closed, tt.wantClosed)
			}
			if n := len(rec.Filter(record.OpFill)); n != tt.wantFills {
				t.Errorf("got %d fills, want %d", n, tt.wantFills)
			}
		})
	}
}

func TestPolyLineTooShort(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.PolyLine([]geom.Vector{geom.V2(1, 1)}, true, true)
	if n := len(rec.Commands()); n != 0 {
		t.Errorf("got %d commands for one point, want 0", n)
	}
}

func TestPolyLineArrowTip(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.PolyLineArrow([]geom.Vector{geom.V2(0, 0), geom.V2(50, 0), geom.V2(50, 50)}, "")
	stroke := rec.Filter(record.OpStroke)[0].Points()
	// 9.8px are removed from the last segment
	if got := stroke[len(stroke)-1]; !got.Approx(geom.V2(50, 40.2), 1e-9) {
		t.Errorf("line end = %v, want (50, 40.2)", got)
	}
	if tip := rec.Filter(record.OpFill)[0].Points()[0]; !tip.Approx(geom.V2(50, 50), 1e-9) {
		t.Errorf("tip = %v, want (50, 50)", tip)
	}
}

func TestArcElliptical(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.Arc(geom.V2(50, 50), 20, 0, math.Pi, false, 2)
	strokes := rec.Filter(record.OpStroke)
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	// a squashed arc cannot stay an arc in pixel space
	for _, s := range strokes[0].Path {
		if s.Verb == record.VerbArc {
			t.Fatal("elliptical arc recorded as a circular arc")
		}
	}
	for _, p := range strokes[0].Points() {
		if p.X < 30-1e-9 || p.X > 70+1e-9 || p.Y < 40-1e-9 || p.Y > 60+1e-9 {
			t.Errorf("point %v outside the 40x20 ellipse box", p)
		}
	}
}

func TestFilledCircle(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.FilledCircle(geom.V2(10, 10), 3)
	fills := rec.Filter(record.OpFill)
	if len(fills) != 1 || len(rec.Filter(record.OpStroke)) != 0 {
		t.Fatalf("got %d fills and %d strokes, want one fill", len(fills), len(rec.Filter(record.OpStroke)))
	}
	if fills[0].Fill != "rgb(0, 0, 0)" {
		t.Errorf("fill = %s, want the outline color", fills[0].Fill)
	}
}

func TestRod(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.Rod(geom.V2(10, 50), geom.V2(90, 50), 10)
	if f, s := len(rec.Filter(record.OpFill)), len(rec.Filter(record.OpStroke)); f != 1 || s != 1 {
		t.Errorf("got %d fills and %d strokes, want 1 and 1", f, s)
	}
	for _, p := range rec.Filter(record.OpStroke)[0].Points() {
		if p.Y < 45-1e-9 || p.Y > 55+1e-9 || p.X < 5-1e-9 || p.X > 95+1e-9 {
			t.Errorf("rod point %v outside the rod outline", p)
		}
	}

	rec.Reset()
	_ = r.SetProp("shapeInsideColor", "none")
	r.Rod(geom.V2(10, 50), geom.V2(90, 50), 10)
	if n := len(rec.Filter(record.OpFill)); n != 0 {
		t.Errorf("got %d fills with inside color none, want 0", n)
	}
}

func TestRectangle(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.Rectangle(20, 10, geom.V2(50, 50), 0, true)
	want := []geom.Vec2{geom.V2(40, 45), geom.V2(60, 45), geom.V2(60, 55), geom.V2(40, 55)}
	if diff := cmp.Diff(want, rec.Filter(record.OpStroke)[0].Points(), approx); diff != "" {
		t.Errorf("rectangle mismatch (-want +got):\n%s", diff)
	}
	if r.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", r.Depth())
	}
}

func TestGround(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.Ground(geom.V2(50, 50), geom.V2(0, -1), 40)
	fills := rec.Filter(record.OpFill)
	strokes := rec.Filter(record.OpStroke)
	if len(fills) != 1 || len(strokes) != 1 {
		t.Fatalf("got %d fills and %d strokes, want 1 and 1", len(fills), len(strokes))
	}
	if fills[0].Fill != "rgb(220, 220, 220)" {
		t.Errorf("ground fill = %s", fills[0].Fill)
	}
	line := strokes[0].Points()
	if d := line[1].Sub(line[0]).Length(); math.Abs(d-40) > 1e-9 {
		t.Errorf("surface length = %v, want 40", d)
	}
}

func TestCenterOfMass(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.CenterOfMass(geom.V2(20, 20))
	strokes := rec.Filter(record.OpStroke)
	if len(strokes) != 3 {
		t.Fatalf("got %d strokes, want 3", len(strokes))
	}
	for _, s := range strokes {
		if s.Stroke != "rgb(180, 49, 4)" {
			t.Errorf("stroke = %s, want the center of mass color", s.Stroke)
		}
	}
}

func TestCircleArrowFixedRadius(t *testing.T) {
	r, rec := newTestRenderer(t, 200, 200)
	r.CircleArrow(geom.V2(100, 100), 50, 0, math.Pi/2, "", FixedRadius())
	strokes := rec.Filter(record.OpStroke)
	fills := rec.Filter(record.OpFill)
	if len(strokes) != 1 || len(fills) != 1 {
		t.Fatalf("got %d strokes and %d fills, want 1 and 1", len(strokes), len(fills))
	}
	for _, p := range strokes[0].Points() {
		if d := p.Sub(geom.V2(100, 100)).Length(); math.Abs(d-50) > 1e-9 {
			t.Errorf("point %v off the fixed radius: %v", p, d)
		}
	}
	if tip := fills[0].Points()[0]; !tip.Approx(geom.V2(100, 150), 1e-9) {
		t.Errorf("tip = %v, want (100, 150)", tip)
	}
	if r.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", r.Depth())
	}
}

func TestCircleArrowSpiralGrows(t *testing.T) {
	r, rec := newTestRenderer(t, 200, 200)
	r.CircleArrow(geom.V2(100, 100), 30, 0, 3*math.Pi, "")
	pts := rec.Filter(record.OpStroke)[0].Points()
	first := pts[0].Sub(geom.V2(100, 100)).Length()
	last := pts[len(pts)-1].Sub(geom.V2(100, 100)).Length()
	if last <= first {
		t.Errorf("spiral radius went from %v to %v, want it to grow", first, last)
	}
}

package pdraw

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/pdraw/canvas/record"
	"github.com/gogpu/pdraw/geom"
)

func TestArrowShortenedToHead(t *testing.T) {
	r, rec := newTestRenderer(t, 200, 200)
	r.Arrow(geom.V2(0, 0), geom.V2(100, 0), "")

	strokes := rec.Filter(record.OpStroke)
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	// head length 7 * 2px = 14, line stops (1 - 0.3) * 14 short of the tip
	want := []geom.Vec2{geom.V2(0, 0), geom.V2(90.2, 0)}
	if diff := cmp.Diff(want, strokes[0].Points(), approx); diff != "" {
		t.Errorf("arrow line mismatch (-want +got):\n%s", diff)
	}
	if strokes[0].LineWidth != 2 {
		t.Errorf("LineWidth = %v, want 2", strokes[0].LineWidth)
	}

	fills := rec.Filter(record.OpFill)
	if len(fills) != 1 {
		t.Fatalf("got %d fills, want 1", len(fills))
	}
	head := fills[0].Points()
	wantHead := []geom.Vec2{
		geom.V2(100, 0),
		geom.V2(86, 4.2),
		geom.V2(90.2, 0),
		geom.V2(86, -4.2),
	}
	if diff := cmp.Diff(wantHead, head, approx); diff != "" {
		t.Errorf("arrowhead mismatch (-want +got):\n%s", diff)
	}
}

func TestShortArrowHeadIsHalfLength(t *testing.T) {
	r, rec := newTestRenderer(t, 200, 200)
	r.Arrow(geom.V2(0, 0), geom.V2(10, 0), "")
	pts := rec.Filter(record.OpStroke)[0].Points()
	// head limited to 5px, line ends 3.5px before the tip
	if got := pts[len(pts)-1]; !got.Approx(geom.V2(6.5, 0), eps) {
		t.Errorf("line end = %v, want (6.5, 0)", got)
	}
}

func TestSubPixelArrowHasNoHead(t *testing.T) {
	r, rec := newTestRenderer(t, 200, 200)
	r.Arrow(geom.V2(0, 0), geom.V2(0.5, 0), "")
	if n := len(rec.Filter(record.OpFill)); n != 0 {
		t.Errorf("got %d fills for a sub-pixel arrow, want 0", n)
	}
	pts := rec.Filter(record.OpStroke)[0].Points()
	if got := pts[len(pts)-1]; !got.Approx(geom.V2(0.5, 0), eps) {
		t.Errorf("line end = %v, want (0.5, 0)", got)
	}
}

func TestArrowFromAndTo(t *testing.T) {
	r, rec := newTestRenderer(t, 200, 200)
	r.ArrowFrom(geom.V2(10, 10), geom.V2(50, 0), "force")
	r.ArrowTo(geom.V2(60, 10), geom.V2(50, 0), "force")
	strokes := rec.Filter(record.OpStroke)
	if len(strokes) != 2 {
		t.Fatalf("got %d strokes, want 2", len(strokes))
	}
	if diff := cmp.Diff(strokes[0].Points(), strokes[1].Points(), approx); diff != "" {
		t.Errorf("ArrowFrom and ArrowTo differ (-from +to):\n%s", diff)
	}
	if strokes[0].Stroke != "rgb(210, 105, 30)" {
		t.Errorf("force arrow color = %q, want rgb(210, 105, 30)", strokes[0].Stroke)
	}
}

func TestArrowPattern(t *testing.T) {
	r, rec := newTestRenderer(t, 200, 200)
	if err := r.SetProp("arrowLinePattern", "dotted"); err != nil {
		t.Fatal(err)
	}
	r.Arrow(geom.V2(0, 0), geom.V2(100, 0), "")
	if diff := cmp.Diff([]float64{2, 2}, rec.Filter(record.OpStroke)[0].Dash); diff != "" {
		t.Errorf("dash mismatch (-want +got):\n%s", diff)
	}
}

func TestColorFor(t *testing.T) {
	r, _ := newTestRenderer(t, 10, 10)
	tests := []struct {
		typ  string
		want string
	}{
		{"", "rgb(0, 0, 0)"},
		{"velocity", "rgb(0, 200, 0)"},
		{"angMom", "rgb(255, 0, 0)"},
		{"red", "rgb(255, 0, 0)"},
		{"rgb(1, 2, 3)", "rgb(1, 2, 3)"},
	}
	for _, tt := range tests {
		if got := r.ColorFor(tt.typ); got != tt.want {
			t.Errorf("ColorFor(%q) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestDashPattern(t *testing.T) {
	if d, err := DashPattern("solid"); err != nil || len(d) != 0 {
		t.Errorf("DashPattern(solid) = %v, %v", d, err)
	}
	d, err := DashPattern("dashed")
	if err != nil {
		t.Fatalf("DashPattern(dashed) error = %v", err)
	}
	d[0] = 100
	if again, _ := DashPattern("dashed"); again[0] != 6 {
		t.Error("DashPattern returned shared storage")
	}
	if _, err := DashPattern("wavy"); !errors.Is(err, ErrUnknownDashPattern) {
		t.Errorf("DashPattern(wavy) error = %v, want ErrUnknownDashPattern", err)
	}
}

func TestArrowOutOfAndIntoPage(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.ArrowOutOfPage(geom.V2(20, 30), "")
	fills := rec.Filter(record.OpFill)
	if len(fills) != 2 {
		t.Fatalf("out of page: got %d fills, want 2", len(fills))
	}
	dot := fills[1].Path[0]
	if !dot.Pts[0].Approx(geom.V2(20, 30), eps) || dot.Radius != 2*0.7 {
		t.Errorf("out of page dot = %+v, want center (20, 30) radius 1.4", dot)
	}

	rec.Reset()
	r.ArrowIntoPage(geom.V2(20, 30), "")
	if n := len(rec.Filter(record.OpStroke)); n != 3 {
		t.Errorf("into page: got %d strokes, want 3", n)
	}
}

func TestCubicBezier(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.CubicBezier(geom.V2(0, 0), geom.V2(1, 2), geom.V2(3, 4), geom.V2(5, 0), "")
	strokes := rec.Filter(record.OpStroke)
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	path := strokes[0].Path
	if len(path) != 2 || path[1].Verb != record.VerbCubic {
		t.Fatalf("path = %+v, want move and cubic", path)
	}
	if diff := cmp.Diff([]geom.Vec2{geom.V2(1, 2), geom.V2(3, 4), geom.V2(5, 0)}, path[1].Pts, approx); diff != "" {
		t.Errorf("cubic points mismatch (-want +got):\n%s", diff)
	}
}

func TestPointIn3D(t *testing.T) {
	r, rec := newTestRenderer(t, 100, 100)
	r.SetView3D(0, 0, 0, false, false)
	r.Point(geom.V3(10, 20, 5))
	fills := rec.Filter(record.OpFill)
	if len(fills) != 1 {
		t.Fatalf("got %d fills, want 1", len(fills))
	}
	if got := fills[0].Path[0].Pts[0]; !got.Approx(geom.V2(10, 20), eps) {
		t.Errorf("3D point drawn at %v, want (10, 20)", got)
	}
}

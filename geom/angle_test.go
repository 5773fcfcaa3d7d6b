package geom

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAngleOf(t *testing.T) {
	tests := []struct {
		v    Vec2
		want float64
	}{
		{V2(1, 0), 0},
		{V2(0, 1), math.Pi / 2},
		{V2(-1, 0), math.Pi},
		{V2(0, -1), 3 * math.Pi / 2},
		{V2(1, -1), 7 * math.Pi / 4},
	}
	for _, tt := range tests {
		if got := AngleOf(tt.v); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("AngleOf(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestFixedMod(t *testing.T) {
	tests := []struct {
		v, m, want float64
	}{
		{5, 3, 2},
		{-1, 3, 2},
		{-7, 8, 1},
		{0, 8, 0},
	}
	for _, tt := range tests {
		if got := FixedMod(tt.v, tt.m); got != tt.want {
			t.Errorf("FixedMod(%v, %v) = %v, want %v", tt.v, tt.m, got, tt.want)
		}
	}
}

func TestIntersectAngleRanges(t *testing.T) {
	tests := []struct {
		name   string
		r1, r2 Interval
		want   []Interval
	}{
		{
			name: "overlap",
			r1:   Interval{0, 1},
			r2:   Interval{0.5, 2},
			want: []Interval{{0.5, 1}},
		},
		{
			name: "disjoint",
			r1:   Interval{0, 1},
			r2:   Interval{2, 3},
			want: nil,
		},
		{
			name: "reversed input",
			r1:   Interval{1, 0},
			r2:   Interval{0.5, 2},
			want: []Interval{{0.5, 1}},
		},
		{
			name: "first wraps zero",
			r1:   Interval{-0.5, 0.5},
			r2:   Interval{0.25, 2*math.Pi - 0.25},
			want: []Interval{{0.25, 0.5}, {2*math.Pi - 0.5, 2*math.Pi - 0.25}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntersectAngleRanges(tt.r1, tt.r2)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("IntersectAngleRanges() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChooseNormVec(t *testing.T) {
	for _, v := range []Vec3{V3(1, 0, 0), V3(0, 0, 2), V3(1, 2, 3), V3(-4, 0.1, 0.2)} {
		n := ChooseNormVec(v)
		if math.Abs(n.Dot(v)) > 1e-12 {
			t.Errorf("ChooseNormVec(%v) = %v, not orthogonal", v, n)
		}
		if math.Abs(n.Length()-1) > 1e-12 {
			t.Errorf("ChooseNormVec(%v) = %v, not unit length", v, n)
		}
	}
}

func TestDirDescription(t *testing.T) {
	tests := []struct {
		angle float64
		want  string
	}{
		{0, "rightwards"},
		{math.Pi / 2, "upwards"},
		{-math.Pi / 2, "downwards"},
		{3 * math.Pi / 4, "up and left"},
	}
	for _, tt := range tests {
		if got := DirDescription(tt.angle); got != tt.want {
			t.Errorf("DirDescription(%v) = %q, want %q", tt.angle, got, tt.want)
		}
	}
}

func TestLinearInterpState(t *testing.T) {
	s0 := State{"x": 0, "y": 10}
	s1 := State{"x": 4, "y": 20}
	got := LinearInterpState(s0, s1, 0.25)
	want := State{"x": 1, "y": 12.5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LinearInterpState() mismatch (-want +got):\n%s", diff)
	}
	dup := s0.Dup()
	dup["x"] = 99
	if s0["x"] != 0 {
		t.Error("Dup() shares storage with the original")
	}
}

func TestCubicBezierPos(t *testing.T) {
	p0, p1, p2, p3 := V2(0, 0), V2(0, 1), V2(1, 1), V2(1, 0)
	if got := CubicBezierPos(0, p0, p1, p2, p3); got != p0 {
		t.Errorf("CubicBezierPos(0) = %v, want %v", got, p0)
	}
	if got := CubicBezierPos(1, p0, p1, p2, p3); got != p3 {
		t.Errorf("CubicBezierPos(1) = %v, want %v", got, p3)
	}
	if diff := cmp.Diff(V2(0.5, 0.75), CubicBezierPos(0.5, p0, p1, p2, p3), approx); diff != "" {
		t.Errorf("CubicBezierPos(0.5) mismatch (-want +got):\n%s", diff)
	}
}

package pdraw

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/pdraw/canvas/record"
	"github.com/gogpu/pdraw/geom"
)

func newTestAnimator(t *testing.T, draw AnimFunc, opts ...RendererOption) (*Animator, *record.Recorder) {
	t.Helper()
	rec := record.NewRecorder(100, 100)
	a, err := NewAnimator(rec, draw, opts...)
	if err != nil {
		t.Fatalf("NewAnimator() error = %v", err)
	}
	return a, rec
}

func TestSequence(t *testing.T) {
	states := []geom.State{{"x": 0}, {"x": 10}}
	trans := []float64{1, 1}
	hold := []float64{1, 1}
	tests := []struct {
		t           float64
		wantX       float64
		wantIndex   int
		wantInTrans bool
	}{
		{0.5, 5, 0, true},
		{1.5, 10, 1, false},
		{2.5, 5, 1, true},
		{3.5, 0, 0, false},
		{4.5, 5, 0, true},
		{-3.5, 5, 0, true},
	}
	for _, tt := range tests {
		s, err := Sequence(states, trans, hold, tt.t)
		if err != nil {
			t.Fatalf("Sequence(t=%v) error = %v", tt.t, err)
		}
		if s.Get("x") != tt.wantX || s.Index != tt.wantIndex || s.InTransition != tt.wantInTrans {
			t.Errorf("Sequence(t=%v) = x %v index %d trans %v, want x %v index %d trans %v",
				tt.t, s.Get("x"), s.Index, s.InTransition, tt.wantX, tt.wantIndex, tt.wantInTrans)
		}
	}
}

func TestSequenceErrors(t *testing.T) {
	states := []geom.State{{"x": 0}, {"x": 1}}
	if _, err := Sequence(states, []float64{1}, []float64{1, 1}, 0); !errors.Is(err, ErrBadSequence) {
		t.Errorf("length mismatch error = %v, want ErrBadSequence", err)
	}
	if _, err := Sequence(states, []float64{0, 0}, []float64{0, 0}, 0); !errors.Is(err, ErrBadSequence) {
		t.Errorf("zero cycle error = %v, want ErrBadSequence", err)
	}
	if _, err := Sequence(nil, nil, nil, 0); !errors.Is(err, ErrBadSequence) {
		t.Errorf("empty sequence error = %v, want ErrBadSequence", err)
	}
}

func gatedSpec() SeqSpec {
	return SeqSpec{
		States: []map[string]SeqValue{
			{"x": Num(0)},
			{"x": Num(10)},
		},
		TransTimes: []float64{1, 1},
		HoldTimes:  []float64{-1, -1},
		Names:      []string{"left", "right"},
	}
}

type seqEvent struct {
	Event SeqEvent
	Index int
	Name  string
}

func TestNewSequenceGatedByStep(t *testing.T) {
	a, _ := newTestAnimator(t, nil)
	def := gatedSpec()

	for _, tm := range []float64{0, 5, 10} {
		s, err := a.NewSequence("s", def, tm)
		if err != nil {
			t.Fatalf("NewSequence() error = %v", err)
		}
		if s.Index != 0 || !s.IndefiniteHold || s.Get("x") != 0 {
			t.Fatalf("t=%v: state = %+v, want an indefinite hold in state 0", tm, s)
		}
	}

	var events []seqEvent
	if err := a.RegisterSeqCallback("s", func(e SeqEvent, i int, name string) {
		events = append(events, seqEvent{e, i, name})
	}); err != nil {
		t.Fatalf("RegisterSeqCallback() error = %v", err)
	}

	if err := a.StepSequence("s", "right"); err != nil {
		t.Fatalf("StepSequence(right) error = %v", err)
	}
	if a.Running() {
		t.Error("StepSequence with a non-matching state name started the animation")
	}
	if err := a.StepSequence("s", "left"); err != nil {
		t.Fatalf("StepSequence(left) error = %v", err)
	}
	if !a.Running() {
		t.Error("StepSequence did not start the animation")
	}

	steps := []struct {
		t         float64
		wantX     float64
		wantIndex int
		wantHold  bool
	}{
		{10, 0, 0, false},
		{10.5, 5, 0, false},
		{11.5, 10, 1, true},
		{20, 10, 1, true},
	}
	for _, st := range steps {
		s, err := a.NewSequence("s", def, st.t)
		if err != nil {
			t.Fatalf("NewSequence() error = %v", err)
		}
		if s.Get("x") != st.wantX || s.Index != st.wantIndex || s.IndefiniteHold != st.wantHold {
			t.Errorf("t=%v: x %v index %d hold %v, want x %v index %d hold %v",
				st.t, s.Get("x"), s.Index, s.IndefiniteHold, st.wantX, st.wantIndex, st.wantHold)
		}
	}

	want := []seqEvent{
		{SeqEnter, 0, "left"},
		{SeqExit, 0, "left"},
		{SeqEnter, 1, "right"},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("sequence events mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSequencePassesSeveralStates(t *testing.T) {
	a, _ := newTestAnimator(t, nil)
	def := SeqSpec{
		States:     []map[string]SeqValue{{"x": Num(0)}, {"x": Num(10)}},
		TransTimes: []float64{1, 1},
		HoldTimes:  []float64{1, 1},
	}
	if _, err := a.NewSequence("s", def, 0); err != nil {
		t.Fatal(err)
	}
	var events []SeqEvent
	_ = a.RegisterSeqCallback("s", func(e SeqEvent, _ int, _ string) { events = append(events, e) })
	events = nil

	s, err := a.NewSequence("s", def, 3.5)
	if err != nil {
		t.Fatal(err)
	}
	if s.Index != 1 || !s.InTransition {
		t.Errorf("state = %+v, want transition out of state 1", s)
	}
	if got := s.Get("x"); got != 5 {
		t.Errorf("x = %v, want 5", got)
	}
	if diff := cmp.Diff([]SeqEvent{SeqExit, SeqEnter, SeqExit}, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSequenceLargeTimeJump(t *testing.T) {
	a, _ := newTestAnimator(t, nil)
	def := SeqSpec{
		States:     []map[string]SeqValue{{"x": Num(0)}, {"x": Num(10)}},
		TransTimes: []float64{0.01, 0.01},
		HoldTimes:  []float64{0.01, 0.01},
	}
	if _, err := a.NewSequence("s", def, 0); err != nil {
		t.Fatal(err)
	}
	boundaries := 0
	_ = a.RegisterSeqCallback("s", func(SeqEvent, int, string) { boundaries++ })
	boundaries = 0

	s, err := a.NewSequence("s", def, 100.005)
	if err != nil {
		t.Fatal(err)
	}
	if s.Index != 0 || s.InTransition {
		t.Errorf("state = index %d transition %v, want hold in state 0", s.Index, s.InTransition)
	}
	if math.Abs(s.T-0.005) > 1e-6 {
		t.Errorf("T = %v, want 0.005", s.T)
	}
	if boundaries != 10000 {
		t.Errorf("callbacks fired %d times, want 10000", boundaries)
	}
}

func TestNewSequenceZeroTimesTerminates(t *testing.T) {
	a, _ := newTestAnimator(t, nil)
	def := SeqSpec{
		States:     []map[string]SeqValue{{"x": Num(0)}, {"x": Num(1)}},
		TransTimes: []float64{0, 0},
		HoldTimes:  []float64{0, 0},
	}
	for _, tm := range []float64{0, 1, 1e6} {
		if _, err := a.NewSequence("z", def, tm); err != nil {
			t.Fatalf("NewSequence(t=%v) error = %v", tm, err)
		}
	}
}

func TestStepSequenceDuringTransitionIsIgnored(t *testing.T) {
	a, _ := newTestAnimator(t, nil)
	def := gatedSpec()
	eval := func(tm float64) SeqState {
		t.Helper()
		s, err := a.NewSequence("s", def, tm)
		if err != nil {
			t.Fatalf("NewSequence(t=%v) error = %v", tm, err)
		}
		return s
	}
	eval(0)
	var events []seqEvent
	_ = a.RegisterSeqCallback("s", func(e SeqEvent, i int, name string) {
		events = append(events, seqEvent{e, i, name})
	})

	if err := a.StepSequence("s"); err != nil {
		t.Fatal(err)
	}
	eval(0)
	if s := eval(0.5); !s.InTransition || s.Index != 0 {
		t.Fatalf("t=0.5: state = %+v, want transition out of state 0", s)
	}
	if err := a.StepSequence("s"); err != nil {
		t.Fatal(err)
	}

	for _, tm := range []float64{1.5, 5} {
		s := eval(tm)
		if s.Index != 1 || s.InTransition || !s.IndefiniteHold || s.Get("x") != 10 {
			t.Errorf("t=%v: state = %+v, want indefinite hold in state 1", tm, s)
		}
	}

	// Stepping out of the last state wraps around to the first.
	if err := a.StepSequence("s"); err != nil {
		t.Fatal(err)
	}
	eval(5)
	s := eval(6.5)
	if s.Index != 0 || s.InTransition || s.Get("x") != 0 {
		t.Errorf("after wrap: state = %+v, want hold in state 0", s)
	}

	want := []seqEvent{
		{SeqEnter, 0, "left"},
		{SeqExit, 0, "left"},
		{SeqEnter, 1, "right"},
		{SeqExit, 1, "right"},
		{SeqEnter, 0, "left"},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("sequence events mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSequenceExtrapolatesHold(t *testing.T) {
	a, _ := newTestAnimator(t, nil)
	def := SeqSpec{
		States: []map[string]SeqValue{
			{"x": Extrap(func(last SeqState, dt float64) float64 { return last.Get("x") + 3*dt })},
		},
		TransTimes: []float64{1},
		HoldTimes:  []float64{-1},
	}
	if _, err := a.NewSequence("e", def, 0); err != nil {
		t.Fatal(err)
	}
	s, err := a.NewSequence("e", def, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Get("x"); got != 6 {
		t.Errorf("x = %v, want 6", got)
	}
	if s.T != 2 {
		t.Errorf("T = %v, want 2", s.T)
	}
}

func TestNewSequenceCustomInterp(t *testing.T) {
	a, _ := newTestAnimator(t, nil)
	def := gatedSpec()
	def.Interps = map[string]SeqInterp{
		"x": func(last, next SeqState, dt float64) float64 { return next.Get("x") * dt * dt },
	}
	_, _ = a.NewSequence("q", def, 0)
	_ = a.StepSequence("q")
	_, _ = a.NewSequence("q", def, 0)
	s, _ := a.NewSequence("q", def, 0.5)
	if got := s.Get("x"); got != 2.5 {
		t.Errorf("x = %v, want 2.5", got)
	}
}

func TestNewSequenceInvalidSpec(t *testing.T) {
	a, _ := newTestAnimator(t, nil)
	def := gatedSpec()
	def.Names = []string{"only"}
	if _, err := a.NewSequence("bad", def, 0); !errors.Is(err, ErrBadSequence) {
		t.Errorf("NewSequence() error = %v, want ErrBadSequence", err)
	}
}

func TestStepSequenceUnknown(t *testing.T) {
	a, _ := newTestAnimator(t, nil)
	if err := a.StepSequence("nope"); !errors.Is(err, ErrUnknownSequence) {
		t.Errorf("StepSequence() error = %v, want ErrUnknownSequence", err)
	}
	if _, err := a.SequenceState("nope"); !errors.Is(err, ErrUnknownSequence) {
		t.Errorf("SequenceState() error = %v, want ErrUnknownSequence", err)
	}
	if err := a.RegisterSeqCallback("nope", func(SeqEvent, int, string) {}); !errors.Is(err, ErrUnknownSequence) {
		t.Errorf("RegisterSeqCallback() error = %v, want ErrUnknownSequence", err)
	}
}

func TestControlSequence(t *testing.T) {
	a, _ := newTestAnimator(t, nil)
	states := []geom.State{{"x": 0}, {"x": 10}}
	trans := []float64{2, 2}

	s, err := a.ControlSequence("c", states, trans, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !s.IndefiniteHold || s.Get("x") != 0 {
		t.Fatalf("initial state = %+v, want a hold at x = 0", s)
	}
	if err := a.StepSequence("c"); err != nil {
		t.Fatal(err)
	}
	for _, st := range []struct {
		t, wantX  float64
		wantIndex int
	}{
		{1, 0, 0},
		{2, 5, 0},
		{3.5, 10, 1},
	} {
		s, err := a.ControlSequence("c", states, trans, st.t)
		if err != nil {
			t.Fatal(err)
		}
		if s.Get("x") != st.wantX || s.Index != st.wantIndex {
			t.Errorf("t=%v: x %v index %d, want x %v index %d", st.t, s.Get("x"), s.Index, st.wantX, st.wantIndex)
		}
	}
	if _, err := a.ControlSequence("c", states, []float64{1}, 4); !errors.Is(err, ErrBadSequence) {
		t.Errorf("ControlSequence() error = %v, want ErrBadSequence", err)
	}
}

func TestActivationSequence(t *testing.T) {
	a, _ := newTestAnimator(t, nil)
	if got := a.ActivationSequence("act", 1, 0); got != 0 {
		t.Fatalf("initial value = %v, want 0", got)
	}
	if err := a.StepSequence("act", "one"); err != nil {
		t.Fatal(err)
	}
	if a.Running() {
		t.Fatal("stepping from the wrong state started the animation")
	}
	_ = a.StepSequence("act", "zero")
	for _, st := range []struct{ t, want float64 }{{5, 0}, {5.25, 0.25}, {7, 1}} {
		if got := a.ActivationSequence("act", 1, st.t); got != st.want {
			t.Errorf("t=%v: value %v, want %v", st.t, got, st.want)
		}
	}
	s, _ := a.SequenceState("act")
	if s.Name != "one" {
		t.Errorf("state name = %q, want one", s.Name)
	}
}

func TestResetSequence(t *testing.T) {
	a, _ := newTestAnimator(t, nil)
	def := gatedSpec()
	_, _ = a.NewSequence("s", def, 0)
	_ = a.StepSequence("s")
	_, _ = a.NewSequence("s", def, 0)
	_, _ = a.NewSequence("s", def, 2)

	a.ResetAllSequences()
	s, err := a.NewSequence("s", def, 3)
	if err != nil {
		t.Fatal(err)
	}
	if s.Index != 0 || s.Get("x") != 0 || !s.IndefiniteHold {
		t.Errorf("state after reset = %+v, want a hold in state 0", s)
	}
}

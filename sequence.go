package pdraw

import (
	"fmt"
	"maps"
	"math"

	"github.com/gogpu/pdraw/geom"
)

// SeqState is the evaluated state of a sequence at some time.
type SeqState struct {
	// Fields holds the current field values.
	Fields geom.State
	// Index is the current state, or the state being left during a
	// transition.
	Index int
	// Name is the name of state Index, if the sequence names its states.
	Name string
	// T is the time since the current hold or transition began.
	T float64
	// Alpha is the fraction of the current transition that has passed.
	Alpha float64
	// RealT is the animation time the state was evaluated at.
	RealT float64

	InTransition   bool
	IndefiniteHold bool
}

// Get returns the field name, or 0.
func (s SeqState) Get(name string) float64 {
	return s.Fields[name]
}

// Sequence cycles through states. Transition i runs from states[i] to
// states[i+1] (the last wraps to the first) for transTimes[i] seconds and
// is followed by a hold of holdTimes[i] seconds at the next state. The
// result depends only on t.
func Sequence(states []geom.State, transTimes, holdTimes []float64, t float64) (SeqState, error) {
	n := len(states)
	if n == 0 || len(transTimes) != n || len(holdTimes) != n {
		return SeqState{}, fmt.Errorf("%w: %d states, %d transition and %d hold times",
			ErrBadSequence, n, len(transTimes), len(holdTimes))
	}
	var total float64
	for i := range n {
		total += transTimes[i] + holdTimes[i]
	}
	if total <= 0 {
		return SeqState{}, fmt.Errorf("%w: cycle time %g", ErrBadSequence, total)
	}
	ts := geom.FixedMod(t, total)

	var end, lastEnd float64
	for i := range n {
		next := (i + 1) % n
		end += transTimes[i]
		if end > ts {
			s := SeqState{T: ts - lastEnd, Index: i, RealT: t, InTransition: true}
			s.Alpha = s.T / (end - lastEnd)
			s.Fields = geom.LinearInterpState(states[i], states[next], s.Alpha)
			return s, nil
		}
		lastEnd = end
		end += holdTimes[i]
		if end > ts {
			return SeqState{Fields: states[next].Dup(), Index: next, RealT: t}, nil
		}
		lastEnd = end
	}
	// Only reached through rounding at the end of the cycle.
	return SeqState{Fields: states[0].Dup(), RealT: t}, nil
}

// SeqValue is a field value of a state in NewSequence: either a constant
// or a function of the state the hold began with and the time since.
type SeqValue struct {
	Value float64
	Func  func(last SeqState, dt float64) float64
}

// Num returns a constant field value.
func Num(v float64) SeqValue {
	return SeqValue{Value: v}
}

// Extrap returns a field value computed from the state at the start of
// the hold and the time since, e.g. to keep an object moving.
func Extrap(fn func(last SeqState, dt float64) float64) SeqValue {
	return SeqValue{Func: fn}
}

func (v SeqValue) eval(last SeqState, dt float64) float64 {
	if v.Func != nil {
		return v.Func(last, dt)
	}
	return v.Value
}

// SeqInterp computes a field during a transition from last to next, dt
// seconds after the transition began. next.T is the transition length.
type SeqInterp func(last, next SeqState, dt float64) float64

// SeqSpec defines a controlled sequence for NewSequence.
type SeqSpec struct {
	States []map[string]SeqValue
	// TransTimes[i] is the length of the transition out of state i.
	TransTimes []float64
	// HoldTimes[i] is how long state i holds. A negative time holds until
	// StepSequence is called.
	HoldTimes []float64
	// Interps replaces linear interpolation for some fields.
	Interps map[string]SeqInterp
	// Names optionally names the states.
	Names []string
}

func (s SeqSpec) validate() error {
	n := len(s.States)
	if n == 0 || len(s.TransTimes) != n || len(s.HoldTimes) != n {
		return fmt.Errorf("%w: %d states, %d transition and %d hold times",
			ErrBadSequence, n, len(s.TransTimes), len(s.HoldTimes))
	}
	if len(s.Names) != 0 && len(s.Names) != n {
		return fmt.Errorf("%w: %d states but %d names", ErrBadSequence, n, len(s.Names))
	}
	return nil
}

func (s SeqSpec) name(i int) string {
	if i < len(s.Names) {
		return s.Names[i]
	}
	return ""
}

// SeqEvent is the kind of a sequence callback.
type SeqEvent string

// Sequence events.
const (
	SeqEnter SeqEvent = "enter"
	SeqExit  SeqEvent = "exit"
)

// SeqCallback is called when a sequence enters or leaves a state.
type SeqCallback func(event SeqEvent, index int, name string)

type sequence struct {
	initialized     bool
	startTransition bool
	last            SeqState
	callbacks       []SeqCallback

	// ControlSequence bookkeeping.
	startTime float64
}

func (s *sequence) fire(event SeqEvent) {
	for _, fn := range s.callbacks {
		fn(event, s.last.Index, s.last.Name)
	}
}

func (a *Animator) sequence(name string) *sequence {
	s, ok := a.sequences[name]
	if !ok {
		s = &sequence{}
		a.sequences[name] = s
	}
	return s
}

// NewSequence evaluates the controlled sequence name at time t. The
// sequence starts in state 0 and moves on after each hold; holds with a
// negative time wait for StepSequence. Constant fields are interpolated
// linearly during transitions unless def.Interps says otherwise.
//
// Any number of holds and transitions that ended before t are passed in
// one call, each firing its exit and enter callbacks once.
func (a *Animator) NewSequence(name string, def SeqSpec, t float64) (SeqState, error) {
	if err := def.validate(); err != nil {
		return SeqState{}, fmt.Errorf("sequence %s: %w", name, err)
	}
	seq := a.sequence(name)
	n := len(def.States)

	if !seq.initialized {
		seq.initialized = true
		fields := make(geom.State, len(def.States[0]))
		for k, v := range def.States[0] {
			fields[k] = v.eval(SeqState{}, 0)
		}
		seq.last = SeqState{
			Fields:         fields,
			Name:           def.name(0),
			RealT:          t,
			IndefiniteHold: def.HoldTimes[0] < 0,
		}
		seq.fire(SeqEnter)
	}
	if seq.startTransition {
		seq.startTransition = false
		seq.last.InTransition = true
		seq.last.IndefiniteHold = false
		seq.last.T = 0
		seq.last.RealT = t
		seq.fire(SeqExit)
	}

	// Boundaries that do not move the clock are counted; a whole cycle of
	// them means every time is zero and the loop would never end.
	stalled := 0
	for {
		before := seq.last.RealT
		i := seq.last.Index
		next := (i + 1) % n
		if seq.last.InTransition {
			end := seq.last.RealT + def.TransTimes[i]
			if t < end {
				return interpState(seq.last, def.States[next], def.Interps, t, end), nil
			}
			seq.last = interpState(seq.last, def.States[next], def.Interps, end, end)
			seq.last.InTransition = false
			seq.last.Index = next
			seq.last.Name = def.name(next)
			seq.last.IndefiniteHold = def.HoldTimes[next] < 0
			seq.fire(SeqEnter)
		} else {
			hold := def.HoldTimes[i]
			end := seq.last.RealT + hold
			if hold < 0 || t <= end {
				return extrapState(seq.last, def.States[i], t), nil
			}
			seq.last = extrapState(seq.last, def.States[i], end)
			seq.last.InTransition = true
			seq.last.IndefiniteHold = false
			seq.fire(SeqExit)
		}
		if seq.last.RealT > before {
			stalled = 0
			continue
		}
		stalled++
		if stalled > 2*n {
			a.log().Warn("pdraw: sequence has no positive hold or transition time", "name", name, "t", t)
			return extrapState(seq.last, def.States[seq.last.Index], t), nil
		}
	}
}

// interpState evaluates a transition from last towards next at time t;
// the transition ends at tFinal.
func interpState(last SeqState, next map[string]SeqValue, interps map[string]SeqInterp, t, tFinal float64) SeqState {
	target := SeqState{
		Fields: make(geom.State, len(next)),
		RealT:  tFinal,
		T:      tFinal - last.RealT,
	}
	for k, v := range next {
		target.Fields[k] = v.eval(last, 0)
	}
	dt := t - last.RealT
	alpha := 1.0
	if target.T > 0 {
		alpha = dt / target.T
	}

	s := SeqState{
		Fields:         make(geom.State, len(next)),
		Index:          last.Index,
		Name:           last.Name,
		T:              math.Min(dt, target.T),
		Alpha:          alpha,
		RealT:          t,
		InTransition:   last.InTransition,
		IndefiniteHold: last.IndefiniteHold,
	}
	for k := range next {
		if fn, ok := interps[k]; ok {
			s.Fields[k] = fn(last, target, dt)
			continue
		}
		s.Fields[k] = geom.LinearInterp(last.Fields[k], target.Fields[k], alpha)
	}
	return s
}

// extrapState evaluates a hold in state data at time t.
func extrapState(last SeqState, data map[string]SeqValue, t float64) SeqState {
	dt := t - last.RealT
	s := SeqState{
		Fields:         make(geom.State, len(data)),
		Index:          last.Index,
		Name:           last.Name,
		T:              dt,
		RealT:          t,
		InTransition:   last.InTransition,
		IndefiniteHold: last.IndefiniteHold,
	}
	for k, v := range data {
		s.Fields[k] = v.eval(last, dt)
	}
	return s
}

// ControlSequence evaluates the sequence name, which holds each state
// until StepSequence and then moves to the next over transTimes[i]
// seconds.
func (a *Animator) ControlSequence(name string, states []geom.State, transTimes []float64, t float64) (SeqState, error) {
	n := len(states)
	if n == 0 || len(transTimes) != n {
		return SeqState{}, fmt.Errorf("sequence %s: %w: %d states, %d transition times",
			name, ErrBadSequence, n, len(transTimes))
	}
	seq := a.sequence(name)
	if !seq.initialized {
		seq.initialized = true
		seq.last = SeqState{Fields: states[0].Dup(), IndefiniteHold: true, RealT: t}
	}
	if seq.startTransition {
		seq.startTransition = false
		seq.last.InTransition = true
		seq.last.IndefiniteHold = false
		seq.startTime = t
		seq.fire(SeqExit)
	}
	var dt float64
	if seq.last.InTransition {
		dt = t - seq.startTime
		if dt >= transTimes[seq.last.Index] {
			seq.last.InTransition = false
			seq.last.IndefiniteHold = true
			seq.last.Index = (seq.last.Index + 1) % n
			seq.fire(SeqEnter)
		}
	}
	i := seq.last.Index
	if !seq.last.InTransition {
		seq.last.Fields = states[i].Dup()
		seq.last.T, seq.last.Alpha, seq.last.RealT = 0, 0, t
		return seq.last, nil
	}
	alpha := 1.0
	if transTimes[i] > 0 {
		alpha = dt / transTimes[i]
	}
	s := seq.last
	s.Fields = geom.LinearInterpState(states[i], states[(i+1)%n], alpha)
	s.T, s.Alpha, s.RealT = dt, alpha, t
	return s, nil
}

// StepSequence starts the next transition of the sequence name and
// starts the animation. It does nothing unless the sequence is in a hold
// that waits for a step, or, when stateName is given, unless the current
// state has that name.
func (a *Animator) StepSequence(name string, stateName ...string) error {
	seq, ok := a.sequences[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSequence, name)
	}
	if !seq.last.IndefiniteHold {
		return nil
	}
	if len(stateName) > 0 && seq.last.Name != stateName[0] {
		return nil
	}
	seq.startTransition = true
	a.log().Info("pdraw: sequence step", "name", name, "from", seq.last.Index)
	a.StartAnim()
	return nil
}

// SequenceState returns the last evaluated state of the sequence name.
func (a *Animator) SequenceState(name string) (SeqState, error) {
	seq, ok := a.sequences[name]
	if !ok {
		return SeqState{}, fmt.Errorf("%w: %s", ErrUnknownSequence, name)
	}
	s := seq.last
	s.Fields = maps.Clone(s.Fields)
	return s, nil
}

// RegisterSeqCallback adds fn to the callbacks of the sequence name and
// calls it once for the current state.
func (a *Animator) RegisterSeqCallback(name string, fn SeqCallback) error {
	seq, ok := a.sequences[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSequence, name)
	}
	seq.callbacks = append(seq.callbacks, fn)
	event := SeqEnter
	if seq.last.InTransition {
		event = SeqExit
	}
	fn(event, seq.last.Index, seq.last.Name)
	return nil
}

// ActivationSequence is a two state sequence named "zero" and "one" that
// moves between 0 and 1 over transTime seconds on each StepSequence. It
// returns the current value.
func (a *Animator) ActivationSequence(name string, transTime, t float64) float64 {
	s, err := a.NewSequence(name, SeqSpec{
		States: []map[string]SeqValue{
			{"trans": Num(0)},
			{"trans": Num(1)},
		},
		TransTimes: []float64{transTime, transTime},
		HoldTimes:  []float64{-1, -1},
		Names:      []string{"zero", "one"},
	}, t)
	if err != nil {
		a.fail(err)
		return 0
	}
	return s.Get("trans")
}

// ResetSequence returns the sequence name to its first state the next
// time it is evaluated.
func (a *Animator) ResetSequence(name string) {
	if seq, ok := a.sequences[name]; ok {
		seq.initialized = false
		seq.startTransition = false
		seq.last = SeqState{}
	}
}

// ResetAllSequences resets every sequence.
func (a *Animator) ResetAllSequences() {
	for name := range a.sequences {
		a.ResetSequence(name)
	}
}

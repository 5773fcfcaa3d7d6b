package geom

import "maps"

// LinearInterp returns (1-alpha)*x0 + alpha*x1.
func LinearInterp(x0, x1, alpha float64) float64 {
	return (1-alpha)*x0 + alpha*x1
}

// LinearDeinterp returns alpha such that LinearInterp(x0, x1, alpha) == x.
func LinearDeinterp(x0, x1, x float64) float64 {
	return (x - x0) / (x1 - x0)
}

// LinearMap maps x linearly so that x0 goes to y0 and x1 goes to y1.
func LinearMap(x0, x1, y0, y1, x float64) float64 {
	return LinearInterp(y0, y1, LinearDeinterp(x0, x1, x))
}

// LinearInterpVector interpolates between two 2D vectors.
func LinearInterpVector(x0, x1 Vec2, alpha float64) Vec2 {
	return x0.Mul(1 - alpha).Add(x1.Mul(alpha))
}

// LinearInterpArray interpolates element-wise up to the shorter length.
func LinearInterpArray(a0, a1 []float64, alpha float64) []float64 {
	n := min(len(a0), len(a1))
	out := make([]float64, n)
	for i := range n {
		out[i] = LinearInterp(a0[i], a1[i], alpha)
	}
	return out
}

// State is a set of named scalar fields, e.g. the positions of the
// bodies in an animated figure.
type State map[string]float64

// Dup returns a copy of the state.
func (s State) Dup() State {
	return maps.Clone(s)
}

// LinearInterpState interpolates every field of s0 towards the same field
// in s1. Fields missing from s1 interpolate towards zero.
func LinearInterpState(s0, s1 State, alpha float64) State {
	out := make(State, len(s0))
	for k, v := range s0 {
		out[k] = LinearInterp(v, s1[k], alpha)
	}
	return out
}

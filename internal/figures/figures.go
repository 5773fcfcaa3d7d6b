// Package figures holds the sample figures rendered by the pdraw tools.
package figures

import (
	"fmt"
	"slices"
	"sort"

	"github.com/gogpu/pdraw"
	"github.com/gogpu/pdraw/canvas"
)

// Figure is a named drawing that the tools can render.
type Figure struct {
	Name        string
	Description string
	// Animated figures change with time; the others are drawn once.
	Animated bool
	// Interactive figures expect mouse events for 3D rotation.
	Interactive bool
	// Setup sets units, options and props before the first draw.
	Setup func(a *pdraw.Animator) error
	Draw  pdraw.AnimFunc
}

var registry = map[string]Figure{}

func register(f Figure) {
	if _, dup := registry[f.Name]; dup {
		panic("figures: duplicate figure " + f.Name)
	}
	registry[f.Name] = f
}

// Lookup returns the figure called name.
func Lookup(name string) (Figure, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names returns the registered figure names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered figures sorted by name.
func All() []Figure {
	all := make([]Figure, 0, len(registry))
	for _, name := range Names() {
		all = append(all, registry[name])
	}
	return slices.Clip(all)
}

// New creates an animator for f on c, runs Setup and draws the frame at
// t = 0. Every frame starts from a cleared canvas.
func (f Figure) New(c canvas.Canvas, opts ...pdraw.RendererOption) (*pdraw.Animator, error) {
	ready := false
	a, err := pdraw.NewAnimator(c, func(a *pdraw.Animator, t float64) error {
		if !ready {
			return nil
		}
		a.ClearDrawing()
		return f.Draw(a, t)
	}, opts...)
	if err != nil {
		return nil, err
	}
	if f.Setup != nil {
		if err := f.Setup(a); err != nil {
			a.Close()
			return nil, fmt.Errorf("figures: %s setup: %w", f.Name, err)
		}
	}
	ready = true
	if err := a.Redraw(); err != nil {
		a.Close()
		return nil, fmt.Errorf("figures: %s: %w", f.Name, err)
	}
	return a, nil
}

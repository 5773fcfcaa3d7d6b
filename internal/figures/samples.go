package figures

import (
	"image/color"
	"math"

	"github.com/gogpu/pdraw"
	"github.com/gogpu/pdraw/geom"
)

const gravity = 9.81

func init() {
	register(Figure{
		Name:        "pendulum",
		Description: "Simple pendulum with a fading trace and velocity arrow",
		Animated:    true,
		Setup:       setupPendulum,
		Draw:        drawPendulum,
	})
	register(Figure{
		Name:        "blocks",
		Description: "Block pushed between two rest positions, one step at a time",
		Animated:    true,
		Setup:       setupBlocks,
		Draw:        drawBlocks,
	})
	register(Figure{
		Name:        "oscillator",
		Description: "Harmonic oscillator with a live plot of its position",
		Animated:    true,
		Setup:       setupOscillator,
		Draw:        drawOscillator,
	})
	register(Figure{
		Name:        "beam",
		Description: "Simply supported beam with a distributed load",
		Setup:       setupBeam,
		Draw:        drawBeam,
	})
	register(Figure{
		Name:        "sphere",
		Description: "Sphere with slices and an angular velocity arrow",
		Interactive: true,
		Setup:       setupSphere,
		Draw:        drawSphere,
	})
}

const pendulumLength = 2.0

func setupPendulum(a *pdraw.Animator) error {
	a.SetUnits(6, 5, true)
	a.AddOption("showVelocity", true, true)
	a.AddOption("amplitude", 0.6, true)
	return nil
}

func drawPendulum(a *pdraw.Animator, t float64) error {
	amp := a.OptionFloat("amplitude")
	omega := math.Sqrt(gravity / pendulumLength)
	theta := amp * math.Cos(omega*t)
	thetaDot := -amp * omega * math.Sin(omega*t)

	pivot := geom.V2(0, 1.8)
	dir := geom.V2(math.Sin(theta), -math.Cos(theta))
	bob := pivot.Add(dir.Mul(pendulumLength))
	vel := dir.Perp().Mul(-pendulumLength * thetaDot)

	a.GroundHashed(pivot, geom.V2(0, -1), 1.6, 0)
	trace := a.History("bob", 0.05, 1.5, t, bob)
	a.FadeHistoryLine(trace, t, 1.5, color.NRGBA{B: 255, A: 255}, color.White)
	a.Rod(pivot, bob, 0.08)
	a.Point(pivot)
	a.Circle(bob, 0.18, true)
	a.LabelLine(pivot, bob, geom.V2(0, 1), "l")
	if a.OptionBool("showVelocity") && vel.Length() > 1e-6 {
		a.ArrowFrom(bob, vel.Mul(0.3), "velocity")
		a.LabelLine(bob, bob.Add(vel.Mul(0.3)), geom.V2(1, 0), "v")
	}
	return nil
}

func setupBlocks(a *pdraw.Animator) error {
	a.SetUnits(8, 4, true)
	return nil
}

func drawBlocks(a *pdraw.Animator, t float64) error {
	s, err := a.NewSequence("block", pdraw.SeqSpec{
		States: []map[string]pdraw.SeqValue{
			{"x": pdraw.Num(-2.5)},
			{"x": pdraw.Num(2.5)},
		},
		TransTimes: []float64{1.5, 1.5},
		HoldTimes:  []float64{-1, -1},
		Names:      []string{"left", "right"},
	}, t)
	if err != nil {
		return err
	}
	x := s.Get("x")
	center := geom.V2(x, 0)

	a.Ground(geom.V2(0, -0.5), geom.V2(0, 1), 7)
	a.Rectangle(1, 1, center, 0, true)
	a.CenterOfMass(center)
	if s.InTransition {
		push := geom.V2(1, 0)
		if s.Index == 1 {
			push = push.Neg()
		}
		a.ArrowTo(center.Sub(push.Mul(0.5)), push, "force")
	}
	a.Measurement(geom.V2(-3.5, -1.2), geom.V2(x, -1.2), "d")
	a.Text(geom.V2(0, 1.6), geom.V2(0, 0), "step to move the block", pdraw.Boxed())
	return nil
}

func setupOscillator(a *pdraw.Animator) error {
	a.SetUnits(10, 4, true)
	return nil
}

func drawOscillator(a *pdraw.Animator, t float64) error {
	const omega = 2.0
	x := math.Sin(omega * t)

	hist := a.History("x", 0.05, 4, t, x)
	a.PlotHistory(geom.V2(-4.5, 0), geom.V2(4, 1.5), geom.V2(4, 1.2), 4, "x", hist, "position")

	var curve []geom.Vec2
	for tau := 0.0; tau <= math.Mod(t, math.Pi)+1e-9; tau += 0.05 {
		curve = append(curve, geom.V2(tau, math.Cos(omega*tau)))
	}
	a.Plot(curve, geom.V2(0.5, -1.5), geom.V2(4, 3), geom.V2(0, -1.2), geom.V2(math.Pi, 2.4), "t", "v",
		pdraw.PlotAxes(pdraw.AxisAt(0), pdraw.AxisStart()),
		pdraw.PlotXGrid(1),
		pdraw.PlotYGrid(0.5),
		pdraw.PlotType("velocity"),
	)
	return nil
}

func setupBeam(a *pdraw.Animator) error {
	a.SetUnits(8, 4.5, true)
	return a.SetProp("arrowLineWidthPx", 1.5)
}

func drawBeam(a *pdraw.Animator, _ float64) error {
	left, right := geom.V2(-3, 0), geom.V2(3, 0)

	a.Pivot(geom.V2(-3, -0.7), left, 0.3)
	a.Ground(geom.V2(-3, -0.7), geom.V2(0, 1), 1)
	a.Pivot(geom.V2(3, -0.7), right, 0.3)
	a.GroundHashed(geom.V2(3, -0.7), geom.V2(0, 1), 1, 0)
	a.Rod(left, right, 0.3)
	a.TriangularDistributedLoad(geom.V2(-2.5, 0.2), geom.V2(2.5, 0.2), 0.3, 1.1, "w0", "w1", true, true)
	a.Measurement(geom.V2(3, -1.4), geom.V2(-3, -1.4), "L")
	a.RightAngle(right, geom.V2(-1, 0), geom.V2(0, 1))
	a.CircleArrow(right, 0.6, math.Pi/2, -math.Pi/4, "moment", pdraw.FixedRadius())
	a.Text(geom.V2(0, 1.9), geom.V2(0, 0), "simply supported beam", pdraw.Boxed())
	return nil
}

func setupSphere(a *pdraw.Animator) error {
	a.SetUnits(4, 4, true)
	a.SetView3D(-1.2, 0, 0.5, true, false)
	return nil
}

func drawSphere(a *pdraw.Animator, _ float64) error {
	origin := geom.V3(0, 0, 0)
	for _, axis := range []struct {
		dir   geom.Vec3
		label string
	}{
		{geom.I, "x"},
		{geom.J, "y"},
		{geom.K, "z"},
	} {
		tip := axis.dir.Mul(1.6)
		a.Arrow(origin, tip, "position")
		a.Text(tip, geom.V2(-1, -1), axis.label)
	}
	a.Sphere(origin, 1, false)
	a.SphereSlice(origin, 1, geom.K, 0, pdraw.SphereSliceOptions{})
	a.SphereSlice(origin, 1, geom.K, 0.6, pdraw.SphereSliceOptions{})
	a.SphereSlice(origin, 1, geom.I, 0, pdraw.SphereSliceOptions{HideBack: true})
	a.CircleArrow3D(geom.V3(0, 0, 1.2), 0.35, pdraw.Arc3DOptions{
		Range: &geom.Interval{Start: 0, End: 1.5 * math.Pi},
		Type:  "angVel",
	})
	a.LabelCircleLine3D("w", geom.V2(-1, 0), geom.V3(0, 0, 1.2), 0.35, pdraw.Arc3DOptions{
		Range: &geom.Interval{Start: 0, End: 1.5 * math.Pi},
	})
	return nil
}

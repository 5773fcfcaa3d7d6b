package pdraw

import (
	"math"
	"strconv"

	"github.com/gogpu/pdraw/geom"
)

// AxisPos places a plot axis: at the low or high edge of the plot area,
// or at a fixed data value.
type AxisPos struct {
	edge  int8 // -1 low, 1 high, 0 at value
	value float64
}

// AxisStart places the axis on the left or bottom edge.
func AxisStart() AxisPos { return AxisPos{edge: -1} }

// AxisEnd places the axis on the right or top edge.
func AxisEnd() AxisPos { return AxisPos{edge: 1} }

// AxisAt places the axis at the data value v.
func AxisAt(v float64) AxisPos { return AxisPos{value: v} }

// resolve returns the axis position in plot drawing units, where the
// plot spans [0, size] and data [origin, origin+extent].
func (a AxisPos) resolve(origin, extent, size float64) float64 {
	switch a.edge {
	case -1:
		return 0
	case 1:
		return size
	}
	return geom.LinearMap(origin, origin+extent, 0, size, a.value)
}

// PlotOption configures Plot.
type PlotOption func(*plotOptions)

type plotOptions struct {
	horizAxis, vertAxis AxisPos
	typ                 string

	noAxes, noPoint bool
	pointLabel      string
	pointAnchor     geom.Vec2

	xGrid, yGrid             bool
	dxGrid, dyGrid           float64
	xTickLabels, yTickLabels bool

	xLabelPos, yLabelPos       float64
	xLabelAnchor, yLabelAnchor geom.Vec2
	rotateYLabel               bool
}

func defaultPlotOptions() plotOptions {
	return plotOptions{
		horizAxis:    AxisStart(),
		vertAxis:     AxisStart(),
		pointAnchor:  geom.V2(0, -1),
		dxGrid:       1,
		dyGrid:       1,
		xLabelPos:    1,
		yLabelPos:    1,
		xLabelAnchor: geom.V2(1, 1.5),
		yLabelAnchor: geom.V2(1.5, 1),
	}
}

// PlotAxes sets where the horizontal and vertical axes cross the plot.
// The default is the bottom and left edges.
func PlotAxes(horiz, vert AxisPos) PlotOption {
	return func(o *plotOptions) {
		o.horizAxis, o.vertAxis = horiz, vert
	}
}

// PlotType sets the line type, see Renderer.ColorFor.
func PlotType(typ string) PlotOption {
	return func(o *plotOptions) {
		o.typ = typ
	}
}

// PlotNoAxes omits the axes and their labels.
func PlotNoAxes() PlotOption {
	return func(o *plotOptions) {
		o.noAxes = true
	}
}

// PlotNoPoint omits the marker on the last data point.
func PlotNoPoint() PlotOption {
	return func(o *plotOptions) {
		o.noPoint = true
	}
}

// PlotPointLabel labels the last data point.
func PlotPointLabel(label string, anchor geom.Vec2) PlotOption {
	return func(o *plotOptions) {
		o.pointLabel, o.pointAnchor = label, anchor
	}
}

// PlotXGrid draws vertical grid lines every d data units.
func PlotXGrid(d float64) PlotOption {
	return func(o *plotOptions) {
		o.xGrid = true
		if d > 0 {
			o.dxGrid = d
		}
	}
}

// PlotYGrid draws horizontal grid lines every d data units.
func PlotYGrid(d float64) PlotOption {
	return func(o *plotOptions) {
		o.yGrid = true
		if d > 0 {
			o.dyGrid = d
		}
	}
}

// PlotTickLabels labels the grid positions along the x and y edges.
// The spacing is that of PlotXGrid and PlotYGrid, 1 by default.
func PlotTickLabels(x, y bool) PlotOption {
	return func(o *plotOptions) {
		o.xTickLabels, o.yTickLabels = x, y
	}
}

// PlotXLabel places the x axis label at fraction pos along the axis.
func PlotXLabel(pos float64, anchor geom.Vec2) PlotOption {
	return func(o *plotOptions) {
		o.xLabelPos, o.xLabelAnchor = pos, anchor
	}
}

// PlotYLabel places the y axis label at fraction pos along the axis,
// optionally rotated to read upwards.
func PlotYLabel(pos float64, anchor geom.Vec2, rotate bool) PlotOption {
	return func(o *plotOptions) {
		o.yLabelPos, o.yLabelAnchor, o.rotateYLabel = pos, anchor, rotate
	}
}

// Plot draws data as a line graph. The plot area has its lower-left
// corner at originDw and extent sizeDw in drawing units, showing the data
// rectangle from originData with extent sizeData. The line is clipped to
// the horizontal extent of the plot area.
func (r *Renderer) Plot(data []geom.Vec2, originDw, sizeDw, originData, sizeData geom.Vec2, xLabel, yLabel string, opts ...PlotOption) {
	if r.failed() || sizeData.X == 0 || sizeData.Y == 0 {
		return
	}
	o := defaultPlotOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r.Save()
	defer func() { _ = r.Restore() }()
	r.Translate(originDw)

	mapX := func(x float64) float64 {
		return geom.LinearMap(originData.X, originData.X+sizeData.X, 0, sizeDw.X, x)
	}
	mapY := func(y float64) float64 {
		return geom.LinearMap(originData.Y, originData.Y+sizeData.Y, 0, sizeDw.Y, y)
	}
	ix0 := int(math.Ceil(originData.X / o.dxGrid))
	ix1 := int(math.Floor((originData.X + sizeData.X) / o.dxGrid))
	iy0 := int(math.Ceil(originData.Y / o.dyGrid))
	iy1 := int(math.Floor((originData.Y + sizeData.Y) / o.dyGrid))

	if o.xGrid {
		for i := ix0; i <= ix1; i++ {
			x := mapX(float64(i) * o.dxGrid)
			r.Line(geom.V2(x, 0), geom.V2(x, sizeDw.Y), "grid")
		}
	}
	if o.yGrid {
		for i := iy0; i <= iy1; i++ {
			y := mapY(float64(i) * o.dyGrid)
			r.Line(geom.V2(0, y), geom.V2(sizeDw.X, y), "grid")
		}
	}
	if o.xTickLabels {
		for i := ix0; i <= ix1; i++ {
			v := float64(i) * o.dxGrid
			r.Text(geom.V2(mapX(v), 0), geom.V2(0, 1), formatTick(v))
		}
	}
	if o.yTickLabels {
		for i := iy0; i <= iy1; i++ {
			v := float64(i) * o.dyGrid
			r.Text(geom.V2(0, mapY(v)), geom.V2(1, 0), formatTick(v))
		}
	}

	axisX := o.vertAxis.resolve(originData.X, sizeData.X, sizeDw.X)
	axisY := o.horizAxis.resolve(originData.Y, sizeData.Y, sizeDw.Y)
	if !o.noAxes {
		r.axes(geom.V2(0, axisY), geom.V2(sizeDw.X, axisY), geom.V2(axisX, 0), geom.V2(axisX, sizeDw.Y))
		r.Text(geom.V2(o.xLabelPos*sizeDw.X, axisY), o.xLabelAnchor, xLabel)
		var angle float64
		if o.rotateYLabel {
			angle = -math.Pi / 2
		}
		r.Text(geom.V2(axisX, o.yLabelPos*sizeDw.Y), o.yLabelAnchor, yLabel, Angle(angle))
	}

	r.set("shapeOutlineColor", r.ColorFor(o.typ))
	r.set("pointRadiusPx", 4.0)
	bottomLeft := r.Pos2Px(geom.V2(0, 0))
	topRight := r.Pos2Px(sizeDw)

	r.Save()
	defer func() { _ = r.Restore() }()
	r.Scale(sizeDw)
	r.Scale(geom.V2(1/sizeData.X, 1/sizeData.Y))
	r.Translate(originData.Neg())
	points := make([]geom.Vector, len(data))
	for i, p := range data {
		points[i] = p
	}
	r.clipped(bottomLeft.X, topRight.X-bottomLeft.X, func() {
		r.PolyLine(points, false, false)
	})
	if len(data) == 0 || o.noPoint {
		return
	}
	last := data[len(data)-1]
	r.Point(last)
	r.Text(last, o.pointAnchor, o.pointLabel)
}

// PlotHistory plots a scalar series against time with the newest sample
// at horizontal position timeOffset in data units. The time axis is
// labelled t.
func (r *Renderer) PlotHistory(originDw, sizeDw, sizeData geom.Vec2, timeOffset float64, yLabel string, data []Sample, typ string) {
	if r.failed() || len(data) == 0 || sizeData.X == 0 || sizeData.Y == 0 {
		return
	}
	scale := geom.V2(sizeDw.X/sizeData.X, sizeDw.Y/sizeData.Y)
	offset := geom.V2(timeOffset-data[len(data)-1].T, 0)
	pts := geom.ScalePoints(geom.TranslatePoints(PairsToVectors(data), offset), scale)

	r.Save()
	defer func() { _ = r.Restore() }()
	r.Translate(originDw)
	r.axes(geom.V2(0, 0), geom.V2(sizeDw.X, 0), geom.V2(0, 0), geom.V2(0, sizeDw.Y))
	r.Text(geom.V2(sizeDw.X, 0), geom.V2(1, 1.5), "TEX:$t$")
	r.Text(geom.V2(0, sizeDw.Y), geom.V2(1.5, 1), yLabel)

	r.set("shapeOutlineColor", r.ColorFor(typ))
	r.set("pointRadiusPx", 4.0)
	bottomLeft := r.Pos2Px(geom.V2(0, 0))
	topRight := r.Pos2Px(sizeDw)
	points := make([]geom.Vector, len(pts))
	for i, p := range pts {
		points[i] = p
	}
	r.clipped(bottomLeft.X, topRight.X-bottomLeft.X, func() {
		r.PolyLine(points, false, false)
	})
	r.Point(pts[len(pts)-1])
}

// axes draws the two thin axis arrows of a plot.
func (r *Renderer) axes(xFrom, xTo, yFrom, yTo geom.Vec2) {
	r.Save()
	r.set("arrowLineWidthPx", 1.0)
	r.set("arrowheadLengthRatio", 11.0)
	r.Arrow(xFrom, xTo, "")
	r.Arrow(yFrom, yTo, "")
	_ = r.Restore()
}

// clipped runs fn with drawing clipped to the full-height pixel column
// starting at x with width w.
func (r *Renderer) clipped(x, w float64, fn func()) {
	r.Save()
	r.ctx.BeginPath()
	r.ctx.Rect(x, 0, w, r.height)
	r.ctx.Clip()
	fn()
	_ = r.Restore()
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

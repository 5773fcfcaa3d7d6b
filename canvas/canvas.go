// Package canvas defines the drawing surface used by pdraw.
//
// Canvas mirrors the subset of the HTML Canvas2D context that the figure
// primitives need: a save/restore state stack, a current transform, a
// current path, CSS color styles, dashes, text and images. Coordinates
// passed to path methods are in the canvas's current user space.
//
// Two implementations live in sub-packages: record captures the calls as
// inspectable commands, raster paints them with gg.
package canvas

import (
	"image"

	"github.com/gogpu/pdraw/geom"
)

// TextAlign is the horizontal anchor of FillText.
type TextAlign string

// Text alignments.
const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// TextBaseline is the vertical anchor of FillText.
type TextBaseline string

// Text baselines.
const (
	BaselineTop        TextBaseline = "top"
	BaselineMiddle     TextBaseline = "middle"
	BaselineAlphabetic TextBaseline = "alphabetic"
	BaselineBottom     TextBaseline = "bottom"
)

// TextMetrics is the result of MeasureText.
type TextMetrics struct {
	Width float64
}

// Image is a decoded image together with the source it was loaded from.
// Src lets a recording refer to the image without carrying its pixels.
type Image struct {
	Src  string
	Data image.Image
}

// Width returns the image width in pixels, or 0 for an empty image.
func (img Image) Width() float64 {
	if img.Data == nil {
		return 0
	}
	return float64(img.Data.Bounds().Dx())
}

// Height returns the image height in pixels, or 0 for an empty image.
func (img Image) Height() float64 {
	if img.Data == nil {
		return 0
	}
	return float64(img.Data.Bounds().Dy())
}

// Canvas is a Canvas2D style drawing surface.
//
// Save and Restore cover the transform, clip and all style settings, but
// not the current path. Fill, Stroke and Clip keep the current path, so a
// path can be filled and then stroked.
type Canvas interface {
	Width() int
	Height() int
	// Resize changes the pixel size and clears the surface.
	Resize(width, height int)

	Save()
	Restore()

	Translate(x, y float64)
	Rotate(angle float64)
	Scale(sx, sy float64)
	// Transform multiplies the current transform by m on the right.
	Transform(m geom.Matrix)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64)
	// Arc adds a circular arc. If the path has a current point, a line
	// to the start of the arc is added first.
	Arc(x, y, radius, startAngle, endAngle float64, anticlockwise bool)
	ArcTo(x1, y1, x2, y2, radius float64)
	Rect(x, y, w, h float64)
	ClosePath()

	Fill()
	Stroke()
	Clip()
	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)

	// SetStrokeStyle and SetFillStyle take CSS color strings.
	SetStrokeStyle(style string)
	SetFillStyle(style string)
	SetLineWidth(width float64)
	// SetLineDash sets alternating dash and gap lengths. Empty is solid.
	SetLineDash(segments []float64)

	// SetFont takes a CSS font shorthand such as "14px serif".
	SetFont(font string)
	SetTextAlign(align TextAlign)
	SetTextBaseline(baseline TextBaseline)
	FillText(text string, x, y float64)
	MeasureText(text string) TextMetrics

	// DrawImage draws img scaled to w by h with its top-left corner at x, y.
	DrawImage(img Image, x, y, w, h float64)
}

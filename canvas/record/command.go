package record

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/pdraw/canvas"
	"github.com/gogpu/pdraw/geom"
)

// Op identifies the kind of a recorded command.
type Op uint8

const (
	// State commands
	OpSave    Op = iota // Save canvas state
	OpRestore           // Restore canvas state
	OpResize            // Resize and clear the surface

	// Path commands, with the path in pixel space
	OpFill   // Fill the current path
	OpStroke // Stroke the current path
	OpClip   // Intersect the clip with the current path

	// Commands in local space, with the transform attached
	OpFillRect  // Fill a rectangle
	OpClearRect // Clear a rectangle
	OpText      // Draw text
	OpImage     // Draw an image
)

var opNames = [...]string{
	OpSave:      "save",
	OpRestore:   "restore",
	OpResize:    "resize",
	OpFill:      "fill",
	OpStroke:    "stroke",
	OpClip:      "clip",
	OpFillRect:  "fillRect",
	OpClearRect: "clearRect",
	OpText:      "text",
	OpImage:     "image",
}

// String returns the name used in the JSON form.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) {
	if int(o) >= len(opNames) {
		return nil, fmt.Errorf("record: unknown op %d", o)
	}
	return []byte(opNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(b []byte) error {
	for i, name := range opNames {
		if name == string(b) {
			*o = Op(i)
			return nil
		}
	}
	return fmt.Errorf("record: unknown op %q", b)
}

// Verb is a path segment kind.
type Verb byte

// Path verbs. The letters match SVG path data.
const (
	VerbMove  Verb = 'M'
	VerbLine  Verb = 'L'
	VerbCubic Verb = 'C'
	VerbArc   Verb = 'A'
	VerbClose Verb = 'Z'
)

// Segment is one element of a recorded path, in pixel space.
//
// Move and Line carry one point, Cubic carries two controls and the end
// point, Arc carries its center in Pts[0] together with Radius, Start,
// End and Anticlockwise in Canvas2D arc form.
type Segment struct {
	Verb          Verb
	Pts           []geom.Vec2
	Radius        float64
	Start, End    float64
	Anticlockwise bool
}

// MarshalJSON encodes the segment as a flat array, e.g. ["L", x, y] or
// ["A", cx, cy, r, start, end, anticlockwise].
func (s Segment) MarshalJSON() ([]byte, error) {
	out := []any{string(s.Verb)}
	for _, p := range s.Pts {
		out = append(out, p.X, p.Y)
	}
	if s.Verb == VerbArc {
		out = append(out, s.Radius, s.Start, s.End, s.Anticlockwise)
	}
	return json.Marshal(out)
}

// Command is one recorded drawing operation.
//
// Path commands (fill, stroke, clip) store their path already mapped to
// pixels. Rectangle, text and image commands store local coordinates and
// the transform in effect, so rotated text survives a replay.
type Command struct {
	Op        Op        `json:"op"`
	Path      []Segment `json:"path,omitempty"`
	Transform []float64 `json:"transform,omitempty"` // [a b c d e f] Canvas2D order
	Fill      string    `json:"fill,omitempty"`
	Stroke    string    `json:"stroke,omitempty"`
	LineWidth float64   `json:"lineWidth,omitempty"`
	Dash      []float64 `json:"dash,omitempty"`
	X         float64   `json:"x,omitempty"`
	Y         float64   `json:"y,omitempty"`
	W         float64   `json:"w,omitempty"`
	H         float64   `json:"h,omitempty"`
	Text      string    `json:"text,omitempty"`
	Font      string    `json:"font,omitempty"`
	Align     string    `json:"align,omitempty"`
	Baseline  string    `json:"baseline,omitempty"`
	Src       string    `json:"src,omitempty"`

	matrix geom.Matrix
	image  canvas.Image
}

// Matrix returns the transform of a local-space command.
func (c Command) Matrix() geom.Matrix {
	return c.matrix
}

// Origin returns the pixel position of the command's local (X, Y).
func (c Command) Origin() geom.Vec2 {
	return geom.TransformPos(c.matrix, geom.V2(c.X, c.Y))
}

// Points returns every point of the command's path, arc centers included.
func (c Command) Points() []geom.Vec2 {
	var pts []geom.Vec2
	for _, s := range c.Path {
		pts = append(pts, s.Pts...)
	}
	return pts
}

// Frame is the JSON form of one recorded redraw.
type Frame struct {
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Commands []Command `json:"commands"`
}

package pdraw

import (
	"fmt"
	"slices"

	"github.com/gogpu/pdraw/canvas"
)

// dashPatterns maps line pattern names to alternating dash and gap
// lengths in pixels. An empty pattern is solid.
var dashPatterns = map[string][]float64{
	"solid":  nil,
	"dashed": {6, 6},
	"dotted": {2, 2},
}

// DashPattern returns the dash array for a named line pattern.
func DashPattern(name string) ([]float64, error) {
	d, ok := dashPatterns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDashPattern, name)
	}
	return slices.Clone(d), nil
}

// ColorFor returns the CSS color used for a line type. The empty type is
// the shape outline color. Otherwise the <type>Color property is used if
// it exists, then the named color table, then type itself as a literal
// CSS color.
func (r *Renderer) ColorFor(typ string) string {
	if typ == "" {
		return r.str("shapeOutlineColor")
	}
	if c, ok := r.props[typ+"Color"].(string); ok {
		if named, ok := canvas.NamedColor(c); ok {
			return named
		}
		return c
	}
	if named, ok := canvas.NamedColor(typ); ok {
		return named
	}
	return typ
}

// lineStyle is a resolved set of stroke settings.
type lineStyle struct {
	width float64
	dash  []float64
	color string
}

// resolveStyle reads the width and pattern properties and the color for
// typ. An unknown pattern is recorded and reported with ok == false, so
// callers can return before touching the canvas.
func (r *Renderer) resolveStyle(widthProp, patternProp, typ string) (lineStyle, bool) {
	if r.failed() {
		return lineStyle{}, false
	}
	dash, err := DashPattern(r.str(patternProp))
	if err != nil {
		r.fail(fmt.Errorf("%s: %w", patternProp, err))
		return lineStyle{}, false
	}
	return lineStyle{width: r.num(widthProp), dash: dash, color: r.ColorFor(typ)}, true
}

func (r *Renderer) shapeStyle(typ string) (lineStyle, bool) {
	return r.resolveStyle("shapeStrokeWidthPx", "shapeStrokePattern", typ)
}

func (r *Renderer) arrowStyle(typ string) (lineStyle, bool) {
	return r.resolveStyle("arrowLineWidthPx", "arrowLinePattern", typ)
}

// apply sets the canvas line width, dash and both colors.
func (r *Renderer) apply(s lineStyle) {
	r.ctx.SetLineWidth(s.width)
	r.ctx.SetLineDash(s.dash)
	r.ctx.SetStrokeStyle(s.color)
	r.ctx.SetFillStyle(s.color)
}

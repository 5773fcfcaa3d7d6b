package pdraw

import (
	"fmt"
	"maps"
	"math"
	"strconv"
)

// props holds the style properties. Values are float64, string or bool.
type props map[string]any

func (p props) clone() props {
	return maps.Clone(p)
}

func defaultProps() props {
	return props{
		"viewAngleXMin": -math.Pi/2 + 1e-6,
		"viewAngleXMax": -1e-6,
		"viewAngleYMin": math.Inf(-1),
		"viewAngleYMax": math.Inf(1),
		"viewAngleZMin": math.Inf(-1),
		"viewAngleZMax": math.Inf(1),

		"arrowLineWidthPx":           2.0,
		"arrowLinePattern":           "solid",
		"arrowheadLengthRatio":       7.0, // arrowhead length / arrow line width
		"arrowheadWidthRatio":        0.3, // arrowhead width / arrowhead length
		"arrowheadOffsetRatio":       0.3, // arrowhead offset / arrowhead length
		"circleArrowWrapOffsetRatio": 1.5,
		"arrowOutOfPageRadiusPx":     5.0,

		"textOffsetPx":  4.0,
		"textFontSize":  14.0,
		"pointRadiusPx": 2.0,

		"shapeStrokeWidthPx": 2.0,
		"shapeStrokePattern": "solid",
		"shapeOutlineColor":  "rgb(0, 0, 0)",
		"shapeInsideColor":   "rgb(255, 255, 255)",

		"hiddenLineDraw":    true,
		"hiddenLineWidthPx": 2.0,
		"hiddenLinePattern": "dashed",
		"hiddenLineColor":   "rgb(0, 0, 0)",

		"centerOfMassStrokeWidthPx": 2.0,
		"centerOfMassColor":         "rgb(180, 49, 4)",
		"centerOfMassRadiusPx":      5.0,

		"rightAngleSizePx":        10.0,
		"rightAngleStrokeWidthPx": 1.0,
		"rightAngleColor":         "rgb(0, 0, 0)",

		"measurementStrokeWidthPx": 1.0,
		"measurementStrokePattern": "solid",
		"measurementEndLengthPx":   10.0,
		"measurementOffsetPx":      3.0,
		"measurementColor":         "rgb(0, 0, 0)",

		"groundDepthPx":      10.0,
		"groundWidthPx":      10.0,
		"groundSpacingPx":    10.0,
		"groundOutlineColor": "rgb(0, 0, 0)",
		"groundInsideColor":  "rgb(220, 220, 220)",

		"gridColor":         "rgb(200, 200, 200)",
		"positionColor":     "rgb(0, 0, 255)",
		"angleColor":        "rgb(0, 100, 180)",
		"velocityColor":     "rgb(0, 200, 0)",
		"angVelColor":       "rgb(100, 180, 0)",
		"accelerationColor": "rgb(255, 0, 255)",
		"rotationColor":     "rgb(150, 0, 150)",
		"angAccColor":       "rgb(100, 0, 180)",
		"angMomColor":       "rgb(255, 0, 0)",
		"forceColor":        "rgb(210, 105, 30)",
		"momentColor":       "rgb(255, 102, 80)",
	}
}

// normalizeValue converts numeric kinds to float64 and rejects anything
// that is not a number, string or bool.
func normalizeValue(v any) (any, bool) {
	switch v := v.(type) {
	case float64, string, bool:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return nil, false
}

func sameKind(a, b any) bool {
	switch a.(type) {
	case float64:
		_, ok := b.(float64)
		return ok
	case string:
		_, ok := b.(string)
		return ok
	case bool:
		_, ok := b.(bool)
		return ok
	}
	return false
}

// SetProp sets a style property. Only the predefined properties exist,
// and each keeps the kind (number, string or bool) of its default.
func (r *Renderer) SetProp(name string, value any) error {
	old, ok := r.props[name]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownProperty, name)
		r.fail(err)
		return err
	}
	v, ok := normalizeValue(value)
	if !ok || !sameKind(v, old) {
		err := fmt.Errorf("%w: %s = %v (%T)", ErrWrongPropertyType, name, value, value)
		r.fail(err)
		return err
	}
	r.props[name] = v
	return nil
}

// Prop returns the value of a style property.
func (r *Renderer) Prop(name string) (any, error) {
	v, ok := r.props[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	return v, nil
}

// PropFloat returns a numeric style property.
func (r *Renderer) PropFloat(name string) (float64, error) {
	v, err := r.Prop(name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %s is %T", ErrWrongPropertyType, name, v)
	}
	return f, nil
}

// PropString returns a string style property.
func (r *Renderer) PropString(name string) (string, error) {
	v, err := r.Prop(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T", ErrWrongPropertyType, name, v)
	}
	return s, nil
}

// PropBool returns a boolean style property.
func (r *Renderer) PropBool(name string) (bool, error) {
	v, err := r.Prop(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s is %T", ErrWrongPropertyType, name, v)
	}
	return b, nil
}

// num reads a predefined numeric property.
func (r *Renderer) num(name string) float64 {
	switch v := r.props[name].(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

// str reads a predefined string property.
func (r *Renderer) str(name string) string {
	s, _ := r.props[name].(string)
	return s
}

// flag reads a predefined boolean property.
func (r *Renderer) flag(name string) bool {
	b, _ := r.props[name].(bool)
	return b
}

// set changes a predefined property without checks.
func (r *Renderer) set(name string, v any) {
	r.props[name] = v
}

// SetShapeDrawHidden switches shape drawing to the hidden line style.
func (r *Renderer) SetShapeDrawHidden() {
	r.set("shapeStrokeWidthPx", r.num("hiddenLineWidthPx"))
	r.set("shapeStrokePattern", r.str("hiddenLinePattern"))
	r.set("shapeOutlineColor", r.str("hiddenLineColor"))
}

package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrBadColor is returned by ParseColor for strings it cannot read.
var ErrBadColor = errors.New("canvas: bad color")

// Named colors understood by ParseColor and the figure line types.
var namedColors = map[string]string{
	"black":   "rgb(0, 0, 0)",
	"white":   "rgb(255, 255, 255)",
	"red":     "rgb(255, 0, 0)",
	"green":   "rgb(0, 255, 0)",
	"blue":    "rgb(0, 0, 255)",
	"cyan":    "rgb(0, 255, 255)",
	"magenta": "rgb(255, 0, 255)",
	"yellow":  "rgb(255, 255, 0)",
}

// NamedColor returns the rgb() form of a named color.
func NamedColor(name string) (string, bool) {
	c, ok := namedColors[name]
	return c, ok
}

// RGB formats an opaque color as "rgb(r, g, b)" with rounded components.
func RGB(r, g, b float64) string {
	return fmt.Sprintf("rgb(%.0f, %.0f, %.0f)", r, g, b)
}

// ParseColor converts a CSS color string to a color.NRGBA.
//
// Supported forms are rgb(r, g, b), rgba(r, g, b, a), #rgb, #rrggbb,
// the named colors and "none" or "transparent", which give a fully
// transparent color.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if named, ok := namedColors[s]; ok {
		s = named
	}
	switch {
	case s == "none" || s == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], 4, s)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], 3, s)
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}

// MustParseColor is like ParseColor but returns opaque black on error.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return c
}

func parseHexColor(s string) (color.NRGBA, error) {
	if len(s) == 4 {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %v", ErrBadColor, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func parseFunc(body string, n int, orig string) (color.NRGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
	}
	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, orig)
		}
		v[i] = f
	}
	return color.NRGBA{
		R: clampByte(v[0]),
		G: clampByte(v[1]),
		B: clampByte(v[2]),
		A: clampByte(v[3] * 255),
	}, nil
}

func clampByte(x float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, x))))
}

// BlendRGB linearly blends two colors in RGB space and returns the
// rgb() string of the result. t = 0 gives a, t = 1 gives b.
func BlendRGB(a, b color.Color, t float64) string {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	c := ca.BlendRgb(cb, t)
	return RGB(c.R*255, c.G*255, c.B*255)
}

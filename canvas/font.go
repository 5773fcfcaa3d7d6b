package canvas

import (
	"strconv"
	"strings"
)

// FontSize returns the pixel size in a CSS font shorthand such as
// "bold 14px serif", or 10 when there is none.
func FontSize(font string) float64 {
	for _, f := range strings.Fields(font) {
		if v, ok := strings.CutSuffix(f, "px"); ok {
			if size, err := strconv.ParseFloat(v, 64); err == nil && size > 0 {
				return size
			}
		}
	}
	return 10
}

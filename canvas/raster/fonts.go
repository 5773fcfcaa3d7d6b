package raster

import (
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/pdraw/internal/logging"
)

// fontCache hands out faces of the Go fonts by style and pixel size.
// Sizes are rounded to a quarter pixel to bound the cache.
type fontCache struct {
	mu      sync.Mutex
	sources map[string]*text.FontSource
	faces   map[faceKey]text.Face
}

type faceKey struct {
	style string
	size  float64
}

var sharedFonts = sync.OnceValue(func() *fontCache {
	fc := &fontCache{
		sources: make(map[string]*text.FontSource, 4),
		faces:   make(map[faceKey]text.Face),
	}
	for style, data := range map[string][]byte{
		"regular": goregular.TTF,
		"bold":    gobold.TTF,
		"italic":  goitalic.TTF,
		"mono":    gomono.TTF,
	} {
		src, err := text.NewFontSource(data)
		if err != nil {
			logging.Get().Warn("raster: font unavailable", "style", style, "err", err)
			continue
		}
		fc.sources[style] = src
	}
	return fc
})

// defaultFonts returns the process-wide font cache.
func defaultFonts() *fontCache {
	return sharedFonts()
}

// face returns a face for style at size, falling back to the regular
// style. It returns nil when no font could be loaded.
func (fc *fontCache) face(style string, size float64) text.Face {
	size = math.Max(1, math.Round(size*4)/4)
	key := faceKey{style, size}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if f, ok := fc.faces[key]; ok {
		return f
	}
	src, ok := fc.sources[style]
	if !ok {
		src, ok = fc.sources["regular"]
		if !ok {
			return nil
		}
	}
	f := src.Face(size)
	fc.faces[key] = f
	return f
}

// RegisterFont replaces the font used for style ("regular", "bold",
// "italic" or "mono") on every raster canvas. data is TrueType or
// OpenType font data.
func RegisterFont(style string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("raster: font %q: %w", style, err)
	}
	fc := defaultFonts()
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.sources[style] = src
	for k := range fc.faces {
		if k.style == style {
			delete(fc.faces, k)
		}
	}
	return nil
}

package pdraw

import (
	"log/slog"
	"time"

	"github.com/gogpu/pdraw/imagecache"
)

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	cache := imagecache.New(imagecache.HTTPSource{BaseURL: "https://example.org/static"})
//	r, err := pdraw.New(c, draw, pdraw.WithImageCache(cache))
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	images   *imagecache.Cache
	hasher   imagecache.Hasher
	clock    func() time.Time
	logger   *slog.Logger
	dispatch func(func())
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		hasher: imagecache.SHA1Hasher,
		clock:  time.Now,
	}
}

// WithImageCache sets the cache that images and TeX labels are loaded
// through. By default images are read relative to the working directory.
func WithImageCache(c *imagecache.Cache) RendererOption {
	return func(o *rendererOptions) {
		o.images = c
	}
}

// WithHasher sets the function that names the image of a TeX label.
func WithHasher(h imagecache.Hasher) RendererOption {
	return func(o *rendererOptions) {
		if h != nil {
			o.hasher = h
		}
	}
}

// WithClock sets the wall clock used by Animator.Run.
func WithClock(now func() time.Time) RendererOption {
	return func(o *rendererOptions) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithLogger sets a logger for this renderer instead of the package logger.
func WithLogger(l *slog.Logger) RendererOption {
	return func(o *rendererOptions) {
		o.logger = l
	}
}

// WithDispatch sets the function that runs fn on the goroutine owning the
// renderer. Image loads complete on other goroutines and use it to
// schedule a redraw. Without it, loaded images appear on the next redraw.
//
// Example:
//
//	tasks := make(chan func(), 16)
//	r, err := pdraw.New(c, draw, pdraw.WithDispatch(func(fn func()) { tasks <- fn }))
func WithDispatch(dispatch func(fn func())) RendererOption {
	return func(o *rendererOptions) {
		o.dispatch = dispatch
	}
}

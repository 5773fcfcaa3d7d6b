package pdraw

import (
	"github.com/gogpu/pdraw/canvas"
	"github.com/gogpu/pdraw/geom"
	"github.com/gogpu/pdraw/imagecache"
)

// lookupImage returns the cached image for key. A key seen for the first
// time starts a background load and reports false; the figure is redrawn
// once the load completes if a dispatch function is set.
func (r *Renderer) lookupImage(key string) (canvas.Image, bool) {
	img, state := r.images.Get(key)
	switch state {
	case imagecache.Loaded:
		return canvas.Image{Src: key, Data: img}, true
	case imagecache.Missing:
		r.images.Request(key)
	case imagecache.Failed:
		r.log().Debug("pdraw: skipping image that failed to load", "key", key, "err", r.images.Err(key))
	}
	return canvas.Image{}, false
}

// imageLoaded runs on the loader goroutine after every image load.
func (r *Renderer) imageLoaded(key string, err error) {
	if err != nil {
		r.log().Warn("pdraw: image load failed", "key", key, "err", err)
	}
	if r.dispatch != nil {
		r.dispatch(r.requestRedraw)
	}
}

// DrawImage draws the image at src with its anchor point at pos. widthDw
// is the drawn width in drawing units; 0 draws the image at its natural
// pixel size. Nothing is drawn until the image has loaded.
func (r *Renderer) DrawImage(src string, pos geom.Vector, anchor geom.Vec2, widthDw float64) {
	if r.failed() {
		return
	}
	img, ok := r.lookupImage(src)
	if !ok {
		return
	}
	w, h := img.Width(), img.Height()
	if w == 0 || h == 0 {
		return
	}
	scale := 1.0
	if widthDw != 0 {
		scale = r.Vec2Px(geom.V2(widthDw, 0)).Length() / w
	}
	p := r.Pos2Px(r.Pos3To2(pos))
	x := -(anchor.X + 1) / 2 * w
	y := (anchor.Y - 1) / 2 * h

	r.ctx.Save()
	r.ctx.Translate(p.X, p.Y)
	r.ctx.Scale(scale, scale)
	r.ctx.Translate(x, y)
	r.ctx.DrawImage(img, 0, 0, w, h)
	r.ctx.Restore()
}

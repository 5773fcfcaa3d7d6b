package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/gogpu/pdraw/canvas"
)

var _ canvas.Canvas = (*Canvas)(nil)

// rgbaAt returns the 8-bit non-premultiplied color at (x, y).
func rgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func isRed(c color.NRGBA) bool {
	return c.R > 200 && c.G < 50 && c.B < 50 && c.A > 200
}

func TestFillUnderTransform(t *testing.T) {
	c := New(100, 100)
	c.Translate(50, 50)
	c.Scale(10, -10)
	c.SetFillStyle("red")
	c.BeginPath()
	c.Rect(0, 0, 2, 2) // pixels x 50..70, y 30..50
	c.Fill()
	if err := c.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	img := c.Image()
	if got := rgbaAt(img, 60, 40); !isRed(got) {
		t.Errorf("pixel (60, 40) = %v, want red", got)
	}
	if got := rgbaAt(img, 40, 60); got.A != 0 {
		t.Errorf("pixel (40, 60) = %v, want transparent", got)
	}
}

func TestFillCircle(t *testing.T) {
	c := New(100, 100)
	c.SetFillStyle("rgb(255, 0, 0)")
	c.BeginPath()
	c.Arc(50, 50, 20, 0, 2*math.Pi, false)
	c.Fill()

	img := c.Image()
	if got := rgbaAt(img, 50, 50); !isRed(got) {
		t.Errorf("center = %v, want red", got)
	}
	if got := rgbaAt(img, 50, 25); got.A != 0 {
		t.Errorf("pixel outside radius = %v, want transparent", got)
	}
}

func TestStrokeWidthScales(t *testing.T) {
	c := New(100, 100)
	c.Scale(4, 4)
	c.SetStrokeStyle("red")
	c.SetLineWidth(2) // 8 pixels wide
	c.BeginPath()
	c.MoveTo(0, 12.5)
	c.LineTo(25, 12.5)
	c.Stroke()

	img := c.Image()
	if got := rgbaAt(img, 50, 47); !isRed(got) {
		t.Errorf("pixel inside stroke = %v, want red", got)
	}
	if got := rgbaAt(img, 50, 40); got.A != 0 {
		t.Errorf("pixel outside stroke = %v, want transparent", got)
	}
}

func TestSaveRestore(t *testing.T) {
	c := New(10, 10)
	c.Save()
	c.Translate(3, 4)
	c.SetFillStyle("blue")
	c.SetLineDash([]float64{1, 2, 3})
	c.Restore()
	c.Restore() // unmatched, ignored

	if !c.state.transform.IsIdentity() {
		t.Errorf("transform after Restore = %v, want identity", c.state.transform)
	}
	if c.state.fill != (color.NRGBA{A: 255}) {
		t.Errorf("fill after Restore = %v, want black", c.state.fill)
	}
	if len(c.state.dash) != 0 {
		t.Errorf("dash after Restore = %v, want solid", c.state.dash)
	}
}

func TestSetLineDashOddRepeats(t *testing.T) {
	c := New(10, 10)
	c.SetLineDash([]float64{1, 2, 3})
	want := []float64{1, 2, 3, 1, 2, 3}
	if len(c.state.dash) != len(want) {
		t.Fatalf("dash = %v, want %v", c.state.dash, want)
	}
	for i := range want {
		if c.state.dash[i] != want[i] {
			t.Errorf("dash[%d] = %v, want %v", i, c.state.dash[i], want[i])
		}
	}
	c.SetLineDash([]float64{1, -1})
	if len(c.state.dash) != 6 {
		t.Errorf("negative dash entry should be ignored, got %v", c.state.dash)
	}
}

func TestInvalidStyleIgnored(t *testing.T) {
	c := New(10, 10)
	c.SetFillStyle("red")
	c.SetFillStyle("not a color")
	if c.state.fill != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("fill = %v, want red", c.state.fill)
	}
}

func TestFillRectKeepsPath(t *testing.T) {
	c := New(100, 100)
	c.BeginPath()
	c.MoveTo(10, 10)
	c.LineTo(90, 10)
	c.SetFillStyle("white")
	c.FillRect(0, 50, 10, 10)
	if len(c.path) != 2 {
		t.Errorf("len(path) after FillRect = %d, want 2", len(c.path))
	}
	if got := rgbaAt(c.Image(), 5, 55); got.A == 0 {
		t.Errorf("FillRect pixel = %v, want white", got)
	}
}

func TestClearRect(t *testing.T) {
	c := New(40, 40)
	c.SetFillStyle("red")
	c.FillRect(0, 0, 40, 40)
	c.ClearRect(10, 10, 10, 10)

	img := c.Image()
	if got := rgbaAt(img, 15, 15); got.A != 0 {
		t.Errorf("cleared pixel = %v, want transparent", got)
	}
	if got := rgbaAt(img, 30, 30); !isRed(got) {
		t.Errorf("untouched pixel = %v, want red", got)
	}
}

func TestClipLimitsFill(t *testing.T) {
	c := New(100, 100)
	c.Save()
	c.BeginPath()
	c.Rect(0, 0, 50, 100)
	c.Clip()
	c.SetFillStyle("red")
	c.FillRect(0, 0, 100, 100)
	c.Restore()

	img := c.Image()
	if got := rgbaAt(img, 25, 50); !isRed(got) {
		t.Errorf("inside clip = %v, want red", got)
	}
	if got := rgbaAt(img, 75, 50); got.A != 0 {
		t.Errorf("outside clip = %v, want transparent", got)
	}
}

func TestDrawImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	c := New(50, 50)
	c.Translate(10, 10)
	c.DrawImage(canvas.Image{Src: "red.png", Data: src}, 0, 0, 20, 20)

	img := c.Image()
	if got := rgbaAt(img, 20, 20); !isRed(got) {
		t.Errorf("image pixel = %v, want red", got)
	}
	if got := rgbaAt(img, 40, 40); got.A != 0 {
		t.Errorf("pixel outside image = %v, want transparent", got)
	}
}

func TestFillTextPaints(t *testing.T) {
	c := New(120, 60)
	c.SetFont("20px serif")
	c.SetTextAlign(canvas.AlignCenter)
	c.SetTextBaseline(canvas.BaselineMiddle)
	c.FillText("Hello", 60, 30)

	img := c.Image()
	painted := 0
	for y := 10; y < 50; y++ {
		for x := 20; x < 100; x++ {
			if rgbaAt(img, x, y).A > 0 {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("FillText painted no pixels")
	}
	if w := c.MeasureText("Hello").Width; w <= 0 {
		t.Errorf("MeasureText().Width = %v, want > 0", w)
	}
}

func TestResizeClears(t *testing.T) {
	c := New(20, 20)
	c.SetFillStyle("red")
	c.Translate(1, 1)
	c.FillRect(0, 0, 10, 10)
	c.Resize(30, 10)

	if c.Width() != 30 || c.Height() != 10 {
		t.Errorf("size = %dx%d, want 30x10", c.Width(), c.Height())
	}
	if got := rgbaAt(c.Image(), 5, 5); got.A != 0 {
		t.Errorf("pixel after Resize = %v, want transparent", got)
	}
	if !c.state.transform.IsIdentity() {
		t.Error("transform not reset by Resize")
	}
}

func TestEncodePNG(t *testing.T) {
	c := New(8, 8)
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("decoded bounds = %v, want 8x8", b)
	}
}

func TestRegisterFontRejectsGarbage(t *testing.T) {
	if err := RegisterFont("regular", []byte("not a font")); err == nil {
		t.Error("RegisterFont(garbage) = nil, want error")
	}
	if defaultFonts().face("regular", 12) == nil {
		t.Error("regular face lost after failed RegisterFont")
	}
}

// inkBounds returns the bounding box of the painted pixels.
func inkBounds(img image.Image) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if rgbaAt(img, x, y).A == 0 {
				continue
			}
			r = r.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return r
}

func TestFillTextFollowsRotation(t *testing.T) {
	upright := New(300, 300)
	upright.SetFont("20px sans-serif")
	upright.Translate(20, 150)
	upright.FillText("MMMMMMMM", 0, 0)

	rotated := New(300, 300)
	rotated.SetFont("20px sans-serif")
	rotated.Translate(150, 20)
	rotated.Rotate(math.Pi / 2)
	rotated.FillText("MMMMMMMM", 0, 0)

	u := inkBounds(upright.Image())
	r := inkBounds(rotated.Image())
	if u.Empty() || r.Empty() {
		t.Fatalf("no ink: upright %v, rotated %v", u, r)
	}
	if u.Dx() <= 2*u.Dy() {
		t.Errorf("upright ink %v is not a wide line of text", u)
	}
	if r.Dy() <= 2*r.Dx() {
		t.Errorf("rotated ink %v, want a tall column", r)
	}
	if d := r.Dy() - u.Dx(); d < -3 || d > 3 {
		t.Errorf("rotated length %d, upright length %d, want equal", r.Dy(), u.Dx())
	}
}

func TestDrawImageRotated(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 20, 4))
	for y := range 4 {
		for x := range 20 {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	c := New(60, 60)
	c.Translate(30, 5)
	c.Rotate(math.Pi / 2)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.DrawImage(canvas.Image{Src: "bar.png", Data: src}, 0, 0, 20, 4)

	img := c.Image()
	if got := rgbaAt(img, 28, 15); !isRed(got) {
		t.Errorf("pixel inside rotated image = %v, want red", got)
	}
	if got := rgbaAt(img, 40, 7); got.A != 0 {
		t.Errorf("pixel where the upright image would be = %v, want transparent", got)
	}
	if b := inkBounds(img); b.Dy() <= 2*b.Dx() {
		t.Errorf("ink bounds %v, want a tall bar", b)
	}
	if len(c.path) != 1 {
		t.Errorf("path has %d elements after DrawImage, want the 1 drawn before", len(c.path))
	}
}

package crop

import (
	"image"
	"image/color"

	"github.com/nfnt/resize"
)

// Composite attaches alpha to tex as its alpha channel and returns the
// combined RGBA atlas surface.
//
// The mask is read as greyscale; when its dimensions differ from the
// texture's it is bicubic-resampled to match first, since atlases and their
// masks are not guaranteed to share a resolution. The result is built once
// per atlas and shared read-only by every sprite cropped from it.
func Composite(tex, alpha image.Image) *image.NRGBA {
	tb := tex.Bounds()
	w, h := tb.Dx(), tb.Dy()

	ab := alpha.Bounds()
	if ab.Dx() != w || ab.Dy() != h {
		alpha = resize.Resize(uint(w), uint(h), alpha, resize.Bicubic)
		ab = alpha.Bounds()
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := tex.At(tb.Min.X+x, tb.Min.Y+y).RGBA()
			gray := color.GrayModel.Convert(alpha.At(ab.Min.X+x, ab.Min.Y+y)).(color.Gray)
			out.SetNRGBA(x, y, color.NRGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: gray.Y,
			})
		}
	}
	return out
}

// Package ttesting carries small assert helpers shared by the go-portraits
// tests. UNSUPPORTED package with no stability guarantees.
package ttesting

import (
	"image"
	"image/color"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

// AssertSize checks an image's pixel dimensions.
func AssertSize(t *testing.T, name string, got image.Image, w, h int) {
	t.Run(name, func(t *testing.T) {
		b := got.Bounds()
		if b.Dx() != w || b.Dy() != h {
			t.Errorf("got %dx%d; want %dx%d", b.Dx(), b.Dy(), w, h)
		}
	})
}

// AssertPixel checks one pixel of an image against a non-premultiplied
// color value.
func AssertPixel(t *testing.T, name string, img image.Image, x, y int, want color.NRGBA) {
	t.Run(name, func(t *testing.T) {
		got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		if got != want {
			t.Errorf("pixel (%d,%d): got %v; want %v", x, y, got, want)
		}
	})
}

package crop

import (
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
)

// Format selects the output encoding for extracted portraits.
type Format int

const (
	PNG Format = iota
	WEBP
)

// ParseFormat maps a user-supplied format name to a Format. This is the
// only place format strings are examined; everything downstream switches on
// the Format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "webp":
		return WEBP, nil
	}
	return 0, errors.Errorf("unsupported image format %q, want png or webp", s)
}

// Ext returns the format's file extension, without the dot.
func (f Format) Ext() string {
	switch f {
	case WEBP:
		return "webp"
	default:
		return "png"
	}
}

func (f Format) String() string {
	return f.Ext()
}

// pngEncoder pins the compression level so repeated runs over identical
// inputs produce byte-identical files.
var pngEncoder = png.Encoder{CompressionLevel: png.DefaultCompression}

// Encode writes img to w in the selected format. PNG encodes at a fixed
// moderate compression level; WEBP encodes lossless.
func (f Format) Encode(w io.Writer, img image.Image) error {
	switch f {
	case PNG:
		return pngEncoder.Encode(w, img)
	case WEBP:
		return webp.Encode(w, img, &webp.Options{Lossless: true})
	}
	return errors.Errorf("unsupported image format %d", int(f))
}

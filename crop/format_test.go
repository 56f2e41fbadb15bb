package crop

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Format
	}{
		{"png", PNG},
		{"PNG", PNG},
		{"webp", WEBP},
		{"WebP", WEBP},
	} {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "gif", "jpeg", "png "} {
		if _, err := ParseFormat(in); err == nil {
			t.Errorf("ParseFormat(%q) succeeded; want error", in)
		}
	}
}

func TestFormatExt(t *testing.T) {
	if got := PNG.Ext(); got != "png" {
		t.Errorf("PNG ext: got %q", got)
	}
	if got := WEBP.Ext(); got != "webp" {
		t.Errorf("WEBP ext: got %q", got)
	}
}

func TestEncodePNGRoundTrips(t *testing.T) {
	src := patternTex(8, 8)

	var buf bytes.Buffer
	if err := PNG.Encode(&buf, src); err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("failed to decode: %s", err)
	}
	if img.Bounds() != image.Rect(0, 0, 8, 8) {
		t.Errorf("bounds: got %v", img.Bounds())
	}
}

package asset

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func testPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("unable to encode png: %v", err)
	}
	return buf.Bytes()
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("unable to encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// countingHost records uploads and hands out predictable links.
type countingHost struct {
	name    string
	uploads []string
	err     error
}

func (h *countingHost) Name() string { return h.name }

func (h *countingHost) Upload(_ context.Context, hash string, img *Prepared) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	h.uploads = append(h.uploads, hash)
	return "https://img.example/" + hash + img.Ext, nil
}

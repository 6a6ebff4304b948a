// Package images turns vector illustrations into raster pictures suitable for
// image hosts.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// defaultSVGSize is used when viewBox carries no size.
const defaultSVGSize = 1024

// maxRasterDim caps both dimensions of rasterized output so a hostile viewBox
// cannot make us allocate gigabytes for the RGBA buffer.
var maxRasterDim = 8192

// RasterizeSVG rasterizes SVG onto white background.
//
// Rules:
//   - if targetW == 0 && targetH == 0: use SVG viewBox dimensions (fallback to 1024x1024)
//   - if only one of targetW/targetH is > 0: scale by that dimension keeping aspect ratio
//   - if both targetW and targetH are > 0: fit into that box keeping aspect ratio
func RasterizeSVG(svgData []byte, targetW, targetH int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("unable to read svg: %w", err)
	}

	w, h := fitSize(icon.ViewBox.W, icon.ViewBox.H, targetW, targetH)
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}

// RasterizeSVGToPNG is RasterizeSVG followed by PNG encoding.
func RasterizeSVGToPNG(svgData []byte, targetW, targetH int) ([]byte, error) {
	img, err := RasterizeSVG(svgData, targetW, targetH)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("unable to encode png: %w", err)
	}
	if buf.Len() == 0 {
		return nil, errors.New("empty png produced")
	}
	return buf.Bytes(), nil
}

func fitSize(vbW, vbH float64, targetW, targetH int) (int, int) {
	intrW := int(math.Ceil(vbW))
	intrH := int(math.Ceil(vbH))
	if intrW <= 0 {
		intrW = defaultSVGSize
	}
	if intrH <= 0 {
		intrH = defaultSVGSize
	}

	w, h := intrW, intrH
	switch {
	case targetW <= 0 && targetH <= 0:
		// intrinsic
	case targetW > 0 && targetH <= 0:
		w = targetW
		h = int(math.Round(float64(w) * float64(intrH) / float64(intrW)))
	case targetH > 0 && targetW <= 0:
		h = targetH
		w = int(math.Round(float64(h) * float64(intrW) / float64(intrH)))
	default:
		scale := math.Min(float64(targetW)/float64(intrW), float64(targetH)/float64(intrH))
		w = int(math.Round(float64(intrW) * scale))
		h = int(math.Round(float64(intrH) * scale))
	}
	w = max(w, 1)
	h = max(h, 1)

	if w > maxRasterDim || h > maxRasterDim {
		s := min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}
	return w, h
}

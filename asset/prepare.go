package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned for content which cannot be published as picture.
var ErrNotImage = errors.New("content is not an image")

// PrepareOptions controls what happens to the picture before publishing.
type PrepareOptions struct {
	// MaxWidth downscales wider pictures keeping aspect ratio, 0 disables.
	MaxWidth    int
	JPEGQuality int
}

// Prepared is picture ready to be handed to a host.
type Prepared struct {
	Data    []byte
	Ext     string // with leading dot
	MIME    string
	Width   int
	Height  int
	Resized bool
}

// Prepare sniffs picture type and downscales it when requested. Original
// data is returned untouched when no changes are necessary.
func Prepare(data []byte, opts PrepareOptions, log *zap.Logger) (*Prepared, error) {
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, ErrNotImage
	}

	p := &Prepared{Data: data, Ext: "." + kind.Extension, MIME: kind.MIME.Value}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		// Host may still accept it (heic, avif), we just cannot look inside.
		log.Debug("Unable to decode image header, publishing as is", zap.String("type", p.MIME), zap.Error(err))
		return p, nil
	}
	p.Width, p.Height = cfg.Width, cfg.Height

	if opts.MaxWidth <= 0 || cfg.Width <= opts.MaxWidth || format == "gif" {
		// do not break animations
		return p, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s image: %w", format, err)
	}
	img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if format == "jpeg" {
		err = imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(opts.JPEGQuality))
	} else {
		// everything else becomes png, hosts do not like bmp and tiff anyway
		err = imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
		p.Ext, p.MIME = ".png", "image/png"
	}
	if err != nil {
		return nil, fmt.Errorf("unable to encode resized %s image: %w", format, err)
	}

	log.Debug("Image downscaled",
		zap.Int("from", cfg.Width), zap.Int("to", img.Bounds().Dx()), zap.String("type", p.MIME))

	p.Data = buf.Bytes()
	p.Width, p.Height = img.Bounds().Dx(), img.Bounds().Dy()
	p.Resized = true
	return p, nil
}

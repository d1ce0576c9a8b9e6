// Package ximage decodes fetched images and composes them into a collage.
// Format support comes from the standard library plus golang.org/x/image.
package ximage

import (
	"bytes"
	"image"
	"io"

	// Registered formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/fwojciec/webcollage"
)

// DefaultMaxPixels rejects images larger than 50 megapixels before decoding.
const DefaultMaxPixels = 50_000_000

// Ensure Decoder implements webcollage.Decoder at compile time.
var _ webcollage.Decoder = (*Decoder)(nil)

// Decoder decodes GIF, JPEG, PNG, BMP, TIFF and WebP images.
type Decoder struct {
	maxPixels int
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithMaxPixels sets the largest width*height the decoder accepts.
func WithMaxPixels(n int) DecoderOption {
	return func(d *Decoder) {
		d.maxPixels = n
	}
}

// NewDecoder creates a new Decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads an encoded image and returns the bitmap and format name.
// The header is checked against the pixel limit before the full decode.
func (d *Decoder) Decode(r io.Reader) (image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", webcollage.Errorf(webcollage.EDECODE, "read image: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", webcollage.Errorf(webcollage.EDECODE, "%v", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", webcollage.Errorf(webcollage.EDECODE, "%s image has no pixels", format)
	}
	if cfg.Width*cfg.Height > d.maxPixels {
		return nil, "", webcollage.Errorf(webcollage.EDECODE, "%s image of %dx%d exceeds %d pixels",
			format, cfg.Width, cfg.Height, d.maxPixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", webcollage.Errorf(webcollage.EDECODE, "%v", err)
	}
	return img, format, nil
}

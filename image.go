package webcollage

import (
	"context"
	"image"
	"io"
)

// Image is a decoded image ready for display.
type Image struct {
	// URL is where the image was fetched from.
	URL string

	// Format is the decoder's name for the encoding (e.g. "png", "jpeg").
	Format string

	Bitmap image.Image

	// Hash is an xxhash of the encoded bytes, hex formatted.
	Hash string
}

// Bounds returns the bitmap bounds, or an empty rectangle if there is no bitmap.
func (img *Image) Bounds() image.Rectangle {
	if img == nil || img.Bitmap == nil {
		return image.Rectangle{}
	}
	return img.Bitmap.Bounds()
}

// Decoder turns encoded image bytes into a bitmap.
type Decoder interface {
	// Decode reads an encoded image and returns the bitmap and format name.
	// Returns EDECODE if the data is corrupt or the format unsupported.
	Decode(r io.Reader) (image.Image, string, error)
}

// Sink is the display surface that receives delivered images.
// The crawl never acts on a sink's error beyond reporting it.
type Sink interface {
	Show(ctx context.Context, img *Image) error
}

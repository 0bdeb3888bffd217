package storage

import (
	"fmt"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/webp"
)

// Encoder converts an uploaded image into the canonical stored format.
// The store writes whatever the encoder produces, so tests can plug in a
// pass-through implementation.
type Encoder interface {
	Encode(w io.Writer, r io.Reader) error
}

// WebPEncoder decodes any registered image format (JPEG, PNG, GIF, WebP)
// and re-encodes it as lossy WebP.
type WebPEncoder struct {
	Quality float32
}

func NewWebPEncoder(quality int) *WebPEncoder {
	return &WebPEncoder{Quality: float32(quality)}
}

func (e *WebPEncoder) Encode(w io.Writer, r io.Reader) error {
	img, format, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	if err := webp.Encode(w, img, &webp.Options{Quality: e.Quality}); err != nil {
		return fmt.Errorf("failed to encode %s image as webp: %w", format, err)
	}
	return nil
}

// Package clipboard copies selections and card art to the system clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/webp"
)

// MaxImageDimension is the largest width or height copied as an image.
const MaxImageDimension = 8000

// ImageData is an image ready for the clipboard.
type ImageData struct {
	Data   []byte // PNG encoded image data
	Width  int
	Height int
}

// EncodePNG decodes any supported image format and re-encodes it as PNG,
// the one image format every clipboard backend accepts.
func EncodePNG(raw []byte) (*ImageData, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > MaxImageDimension || b.Dy() > MaxImageDimension {
		return nil, fmt.Errorf("image dimensions too large: %dx%d (max %dx%d)",
			b.Dx(), b.Dy(), MaxImageDimension, MaxImageDimension)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %w", err)
	}

	return &ImageData{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// SizeKB returns the image size in kilobytes
func (img *ImageData) SizeKB() int {
	return len(img.Data) / 1024
}

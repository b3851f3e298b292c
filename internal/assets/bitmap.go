// Package assets loads the template bitmaps and the user photo.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
)

var (
	ErrNotImage      = errors.New("not an image")
	ErrImageTooLarge = errors.New("image too large")
)

// DefaultMaxPixels caps the decoded size of any bitmap (about 50 megapixels).
const DefaultMaxPixels = 50 << 20

// Bitmap is a decoded image with its pixel size. It is never mutated after
// construction.
type Bitmap struct {
	Image  image.Image
	Width  int
	Height int
}

func NewBitmap(img image.Image) *Bitmap {
	b := img.Bounds()
	return &Bitmap{Image: img, Width: b.Dx(), Height: b.Dy()}
}

// Size returns the bitmap dimensions as a point.
func (b *Bitmap) Size() image.Point { return image.Pt(b.Width, b.Height) }

// Decode sniffs data and decodes it, honoring EXIF orientation. Images
// above DefaultMaxPixels are rejected.
func Decode(data []byte) (*Bitmap, error) {
	return DecodeLimit(data, DefaultMaxPixels)
}

// DecodeLimit is Decode with an explicit pixel cap. The header is checked
// before any pixels are allocated.
func DecodeLimit(data []byte, maxPixels int) (*Bitmap, error) {
	if err := CheckDimensions(data, maxPixels); err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	bmp := NewBitmap(img)
	if bmp.Width <= 0 || bmp.Height <= 0 {
		return nil, fmt.Errorf("%w: zero-sized image", ErrNotImage)
	}
	return bmp, nil
}

// CheckDimensions sniffs data and reads only the image header, failing with
// ErrImageTooLarge when width*height exceeds maxPixels. A maxPixels of zero
// or less disables the cap.
func CheckDimensions(data []byte, maxPixels int) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty input", ErrNotImage)
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return fmt.Errorf("%w: detected %s", ErrNotImage, describeKind(kind.MIME.Value))
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels)
	}
	return nil
}

func describeKind(mime string) string {
	if mime == "" {
		return "unknown content"
	}
	return mime
}

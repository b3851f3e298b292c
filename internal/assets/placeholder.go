package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// PlaceholderScheme prefixes sources that are generated instead of fetched,
// e.g. "placeholder:mask". They let the editor run without network access.
const PlaceholderScheme = "placeholder:"

const (
	PlaceholderWidth  = 970
	PlaceholderHeight = 600
)

// Placeholder generates a synthetic asset: "mask", "pattern", "stroke" or "photo".
func Placeholder(name string) (*Bitmap, error) {
	switch name {
	case "mask":
		return NewBitmap(placeholderMask(PlaceholderWidth, PlaceholderHeight)), nil
	case "pattern":
		return NewBitmap(placeholderPattern(PlaceholderWidth, PlaceholderHeight)), nil
	case "stroke":
		return NewBitmap(placeholderStroke(PlaceholderWidth, PlaceholderHeight)), nil
	case "photo":
		return NewBitmap(placeholderPhoto(1000, 500)), nil
	default:
		return nil, fmt.Errorf("unknown placeholder %q", name)
	}
}

// placeholderMask is transparent with an opaque white frame.
func placeholderMask(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	const border = 16
	white := &image.Uniform{C: color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}}
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, w, border),
		image.Rect(0, h-border, w, h),
		image.Rect(0, 0, border, h),
		image.Rect(w-border, 0, w, h),
	} {
		draw.Draw(img, r, white, image.Point{}, draw.Src)
	}
	return img
}

// placeholderPattern is a faint diagonal stripe overlay.
func placeholderPattern(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	stripe := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x30}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%48 < 6 {
				img.SetNRGBA(x, y, stripe)
			}
		}
	}
	return img
}

// placeholderStroke outlines the canvas with a thin line.
func placeholderStroke(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	line := color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	for x := 0; x < w; x++ {
		img.SetNRGBA(x, 0, line)
		img.SetNRGBA(x, h-1, line)
	}
	for y := 0; y < h; y++ {
		img.SetNRGBA(0, y, line)
		img.SetNRGBA(w-1, y, line)
	}
	return img
}

// placeholderPhoto is a horizontal gradient.
func placeholderPhoto(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 0x80, A: 0xFF})
		}
	}
	return img
}

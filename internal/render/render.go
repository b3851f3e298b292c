package render

import (
	"image"
	"image/color"
	"strings"
)

// Drawer is the 2D surface the compositor draws onto. Implementations own
// their pixels; callers never touch the backing image directly.
type Drawer interface {
	// Size returns the current surface size in pixels.
	Size() (width int, height int)
	// Resize changes the surface size. Resizing to the current size is a no-op.
	Resize(width, height int)

	FillRect(rect image.Rectangle, c color.Color)

	// DrawImage draws img at its native size with its top-left corner at (x,y).
	DrawImage(img image.Image, x, y int)
	// DrawImageInRect scales img into rect according to mode.
	DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode)

	MeasureText(text string, style TextStyle) TextMetrics
	// DrawText draws a single line anchored at (x,y); Align controls how x is
	// interpreted and Baseline how y is interpreted.
	DrawText(text string, x, y int, style TextStyle) TextMetrics
}

// FrameSource is implemented by drawers backed by a raster image.
type FrameSource interface {
	Frame() *image.RGBA
}

// Sink receives every completed frame.
type Sink interface {
	Present(frame *image.RGBA) error
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// ParseTextAlign maps "left", "center" and "right" to a TextAlign.
// Unknown values fall back to left.
func ParseTextAlign(s string) TextAlign {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centre":
		return TextAlignCenter
	case "right", "end":
		return TextAlignRight
	default:
		return TextAlignLeft
	}
}

func (a TextAlign) String() string {
	switch a {
	case TextAlignCenter:
		return "center"
	case TextAlignRight:
		return "right"
	default:
		return "left"
	}
}

type TextBaseline int

const (
	// BaselineTop treats y as the top of the em box.
	BaselineTop TextBaseline = iota
	// BaselineMiddle treats y as the vertical middle of the em box.
	BaselineMiddle
	// BaselineAlphabetic treats y as the glyph baseline.
	BaselineAlphabetic
)

func (b TextBaseline) String() string {
	switch b {
	case BaselineMiddle:
		return "middle"
	case BaselineAlphabetic:
		return "alphabetic"
	default:
		return "top"
	}
}

// TextStyle describes how to render text.
type TextStyle struct {
	Color    color.Color
	Size     float64 // font size in pixels; 0 means renderer default
	Align    TextAlign
	Baseline TextBaseline
}

type TextMetrics struct {
	Width   int
	Height  int
	Ascent  int
	Descent int
}

type ScaleMode int

const (
	// ScaleModeStretch fills rect exactly, ignoring aspect ratio.
	ScaleModeStretch ScaleMode = iota
	// ScaleModeFit scales to fit inside rect and centers the result.
	ScaleModeFit
	// ScaleModeFill scales to cover rect and crops the overflow.
	ScaleModeFill
)

// ParseScaleMode maps "stretch", "fit" and "fill" to a ScaleMode. Unknown
// values fall back to stretch.
func ParseScaleMode(s string) ScaleMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fit":
		return ScaleModeFit
	case "fill":
		return ScaleModeFill
	default:
		return ScaleModeStretch
	}
}

func (m ScaleMode) String() string {
	switch m {
	case ScaleModeFit:
		return "fit"
	case ScaleModeFill:
		return "fill"
	default:
		return "stretch"
	}
}

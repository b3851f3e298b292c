package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"unicode/utf8"
)

type OpKind int

const (
	OpResize OpKind = iota
	OpFillRect
	OpDrawImage
	OpDrawImageInRect
	OpDrawText
)

func (k OpKind) String() string {
	switch k {
	case OpResize:
		return "resize"
	case OpFillRect:
		return "fill"
	case OpDrawImage:
		return "image"
	case OpDrawImageInRect:
		return "image-rect"
	case OpDrawText:
		return "text"
	default:
		return fmt.Sprintf("op(%d)", int(k))
	}
}

// Op is one recorded draw call.
type Op struct {
	Kind  OpKind
	Rect  image.Rectangle
	Color color.Color
	Image image.Image
	Mode  ScaleMode
	Text  string
	Point image.Point
	Style TextStyle
}

func (op Op) String() string {
	switch op.Kind {
	case OpResize:
		return fmt.Sprintf("resize %dx%d", op.Rect.Dx(), op.Rect.Dy())
	case OpFillRect:
		return fmt.Sprintf("fill %v %s", op.Rect, HexColor(op.Color))
	case OpDrawImage:
		return fmt.Sprintf("image at %v", op.Point)
	case OpDrawImageInRect:
		return fmt.Sprintf("image %s into %v", op.Mode, op.Rect)
	case OpDrawText:
		return fmt.Sprintf("text %q at %v (%s/%s)", op.Text, op.Point, op.Style.Align, op.Style.Baseline)
	default:
		return op.Kind.String()
	}
}

// Recorder is a Drawer that records calls instead of producing pixels.
// Text is measured with a fixed advance of half the font size per rune.
type Recorder struct {
	Ops []Op

	width, height int
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Size() (int, int) { return r.width, r.height }

func (r *Recorder) Resize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.Ops = append(r.Ops, Op{Kind: OpResize, Rect: image.Rect(0, 0, width, height)})
}

func (r *Recorder) FillRect(rect image.Rectangle, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: rect, Color: c})
}

func (r *Recorder) DrawImage(img image.Image, x, y int) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawImage, Image: img, Point: image.Pt(x, y)})
}

func (r *Recorder) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawImageInRect, Image: img, Rect: rect, Mode: mode})
}

func (r *Recorder) MeasureText(text string, style TextStyle) TextMetrics {
	size := style.Size
	if size <= 0 {
		size = DefaultTextSize
	}
	return TextMetrics{
		Width:   int(float64(utf8.RuneCountInString(text)) * size / 2),
		Height:  int(size),
		Ascent:  int(size * 0.8),
		Descent: int(size * 0.2),
	}
}

func (r *Recorder) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	r.Ops = append(r.Ops, Op{Kind: OpDrawText, Text: text, Point: image.Pt(x, y), Style: style})
	return r.MeasureText(text, style)
}

// Kinds returns the kind of every recorded op in order.
func (r *Recorder) Kinds() []OpKind {
	out := make([]OpKind, len(r.Ops))
	for i, op := range r.Ops {
		out[i] = op.Kind
	}
	return out
}

// Reset drops recorded ops but keeps the size.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func (r *Recorder) String() string {
	var sb strings.Builder
	for _, op := range r.Ops {
		sb.WriteString(op.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// Canvas is a raster Drawer backed by an offscreen RGBA image.
type Canvas struct {
	img   *image.RGBA
	fonts *Fonts
}

// NewCanvas returns an empty canvas. A nil fonts uses DefaultFonts.
func NewCanvas(fonts *Fonts) *Canvas {
	if fonts == nil {
		fonts = DefaultFonts()
	}
	return &Canvas{img: image.NewRGBA(image.Rectangle{}), fonts: fonts}
}

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if w, h := c.Size(); w == width && h == height {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Frame returns the backing image. It is reused across draws.
func (c *Canvas) Frame() *image.RGBA { return c.img }

// Snapshot returns a copy of the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}

func (c *Canvas) FillRect(rect image.Rectangle, col color.Color) {
	rect = rect.Intersect(c.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(c.img, rect, &image.Uniform{C: col}, image.Point{}, draw.Over)
}

func (c *Canvas) DrawImage(img image.Image, x, y int) {
	if img == nil {
		return
	}
	src := img.Bounds()
	dst := image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+src.Dx(), y+src.Dy())}
	draw.Draw(c.img, dst, img, src.Min, draw.Over)
}

func (c *Canvas) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil || rect.Empty() || img.Bounds().Empty() {
		return
	}
	switch mode {
	case ScaleModeFit:
		fitted := imaging.Fit(img, rect.Dx(), rect.Dy(), imaging.Lanczos)
		fb := fitted.Bounds()
		offset := image.Pt(rect.Min.X+(rect.Dx()-fb.Dx())/2, rect.Min.Y+(rect.Dy()-fb.Dy())/2)
		draw.Draw(c.img, fb.Add(offset), fitted, fb.Min, draw.Over)
	case ScaleModeFill:
		filled := imaging.Fill(img, rect.Dx(), rect.Dy(), imaging.Center, imaging.Lanczos)
		draw.Draw(c.img, rect, filled, filled.Bounds().Min, draw.Over)
	default:
		// Scale clips against the destination bounds, so rects hanging off
		// the canvas are fine.
		xdraw.CatmullRom.Scale(c.img, rect, img, img.Bounds(), xdraw.Over, nil)
	}
}

func (c *Canvas) MeasureText(text string, style TextStyle) TextMetrics {
	return measure(c.fonts.Face(style.Size), text)
}

func (c *Canvas) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	size := style.Size
	if size <= 0 {
		size = DefaultTextSize
	}
	m := measure(c.fonts.Face(size), text)
	if text == "" {
		return m
	}

	switch style.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	baseline := y
	switch style.Baseline {
	case BaselineTop:
		baseline = y + m.Ascent
	case BaselineMiddle:
		baseline = y + (m.Ascent-m.Descent)/2
	}

	col := style.Color
	if col == nil {
		col = color.Black
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(DPI)
	ctx.SetFont(c.fonts.ttf)
	ctx.SetFontSize(size)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(c.img.Bounds())
	ctx.SetDst(c.img)
	ctx.SetSrc(image.NewUniform(col))
	_, _ = ctx.DrawString(text, freetype.Pt(x, baseline))
	return m
}

func measure(face font.Face, text string) TextMetrics {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	return TextMetrics{
		Width:   font.MeasureString(face, text).Ceil(),
		Height:  ascent + descent,
		Ascent:  ascent,
		Descent: descent,
	}
}

// Package compose turns the template, its loaded assets and the current
// render parameters into a finished frame.
package compose

import (
	"errors"
	"image"

	"github.com/rook-computer/adcanvas/internal/assets"
	"github.com/rook-computer/adcanvas/internal/render"
	"github.com/rook-computer/adcanvas/internal/render/layout"
	"github.com/rook-computer/adcanvas/internal/state"
	"github.com/rook-computer/adcanvas/internal/template"
)

var ErrMaskNotLoaded = errors.New("mask not loaded")

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(component, format string, args ...interface{})  {}
func (noopLogger) Errorf(component, format string, args ...interface{}) {}

// Report describes what the last Compose drew.
type Report struct {
	CaptionLines []string          `json:"captionLines"`
	Photo        *layout.Placement `json:"photo,omitempty"`
	PhotoSkipped bool              `json:"photoSkipped"`
	// CTAOverflow is set when the CTA label is wider than its button.
	CTAOverflow bool `json:"ctaOverflow"`
}

// Compose redraws the whole frame onto d. The order is fixed: background,
// mask, pattern, photo, caption, CTA. It returns ErrMaskNotLoaded and draws
// nothing until the mask is available.
func Compose(d render.Drawer, tpl template.Spec, set assets.Snapshot, p state.RenderParameters, log Logger) (Report, error) {
	if log == nil {
		log = noopLogger{}
	}
	var report Report
	if set.Mask == nil {
		return report, ErrMaskNotLoaded
	}

	mask := set.Mask
	d.Resize(mask.Width, mask.Height)
	full := layout.Canvas(mask.Width, mask.Height)

	d.FillRect(full, render.ParseHexColorOr(p.BackgroundColor, render.DefaultBackground))
	d.DrawImage(mask.Image, 0, 0)

	if set.Pattern != nil {
		d.DrawImageInRect(set.Pattern.Image, full, render.ScaleModeStretch)
	}

	if p.HasPhoto() {
		placement := layout.FitImage(p.Photo.Width, p.Photo.Height, mask.Size(), p.Corrections.Layout())
		report.Photo = &placement
		if placement.Degenerate() {
			report.PhotoSkipped = true
			log.Infof("compose", "photo skipped: corrections %+v leave no area (%.1fx%.1f)",
				p.Corrections, placement.Width, placement.Height)
		} else {
			d.DrawImageInRect(p.Photo.Image, placement.Rect(), render.ParseScaleMode(tpl.PhotoScale))
		}
	}

	report.CaptionLines = drawCaption(d, tpl.Caption, p.CaptionText)
	report.CTAOverflow = drawCTA(d, tpl.CTA, p.CTAText)
	if report.CTAOverflow {
		log.Infof("compose", "cta label %q is wider than the %dpx button", p.CTAText, tpl.CTA.Width)
	}
	return report, nil
}

func drawCaption(d render.Drawer, c template.Caption, text string) []string {
	style := render.TextStyle{
		Color:    render.ParseHexColorOr(c.TextColor, render.DefaultForeground),
		Size:     c.FontSize,
		Align:    render.ParseTextAlign(c.Alignment),
		Baseline: render.BaselineTop,
	}
	lines := layout.WrapText(text, c.MaxCharsPerLine)
	for i, y := range layout.LinePositions(len(lines), c.Position.Y, c.LineHeight) {
		d.DrawText(lines[i], c.Position.X, y, style)
	}
	return lines
}

// drawCTA reports whether the label overflows the button.
func drawCTA(d render.Drawer, c template.CTA, text string) bool {
	button := layout.CenteredAt(c.Position.ImagePoint(), c.Width, c.Height)
	d.FillRect(button, render.ParseHexColorOr(c.BackgroundColor, render.DefaultBackground))

	style := render.TextStyle{
		Color:    render.ParseHexColorOr(c.TextColor, render.DefaultForeground),
		Size:     c.FontSize,
		Align:    render.TextAlignCenter,
		Baseline: render.BaselineMiddle,
	}
	center := layout.Center(button)
	d.DrawText(text, center.X, center.Y, style)
	return d.MeasureText(text, style).Width > button.Dx()
}

// frameOf copies the pixels out of drawers that have them.
func frameOf(d render.Drawer) *image.RGBA {
	switch src := d.(type) {
	case *render.Canvas:
		return src.Snapshot()
	case render.FrameSource:
		frame := src.Frame()
		if frame == nil {
			return nil
		}
		out := image.NewRGBA(frame.Bounds())
		copy(out.Pix, frame.Pix)
		return out
	default:
		return nil
	}
}

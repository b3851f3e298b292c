package compose

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/adcanvas/internal/assets"
	"github.com/rook-computer/adcanvas/internal/render"
	"github.com/rook-computer/adcanvas/internal/state"
	"github.com/rook-computer/adcanvas/internal/template"
)

func blank(w, h int) *assets.Bitmap {
	return assets.NewBitmap(image.NewNRGBA(image.Rect(0, 0, w, h)))
}

func params() state.RenderParameters {
	return state.RenderParameters{
		CaptionText:     "Hello World this is a fairly long caption text",
		CTAText:         "Buy",
		BackgroundColor: "#112233",
		Corrections:     state.DefaultCorrections(),
	}
}

func TestComposeDrawOrder(t *testing.T) {
	rec := render.NewRecorder()
	mask := blank(970, 600)

	report, err := Compose(rec, template.Default(), assets.Snapshot{Mask: mask}, params(), nil)
	require.NoError(t, err)

	require.Equal(t, []render.OpKind{
		render.OpResize,
		render.OpFillRect,
		render.OpDrawImage,
		render.OpDrawText,
		render.OpDrawText,
		render.OpFillRect,
		render.OpDrawText,
	}, rec.Kinds(), rec.String())

	ops := rec.Ops
	assert.Equal(t, image.Rect(0, 0, 970, 600), ops[0].Rect)

	assert.Equal(t, image.Rect(0, 0, 970, 600), ops[1].Rect)
	assert.Equal(t, "#112233", render.HexColor(ops[1].Color))

	assert.Equal(t, image.Pt(0, 0), ops[2].Point)
	assert.Same(t, mask.Image.(*image.NRGBA), ops[2].Image.(*image.NRGBA))

	assert.Equal(t, "Hello World this is a fairly", ops[3].Text)
	assert.Equal(t, image.Pt(50, 50), ops[3].Point)
	assert.Equal(t, "long caption text", ops[4].Text)
	assert.Equal(t, image.Pt(50, 110), ops[4].Point)
	for _, op := range ops[3:5] {
		assert.Equal(t, render.TextAlignLeft, op.Style.Align)
		assert.Equal(t, render.BaselineTop, op.Style.Baseline)
		assert.InDelta(t, 44, op.Style.Size, 0)
		assert.Equal(t, "#ffffff", render.HexColor(op.Style.Color))
	}

	assert.Equal(t, image.Rect(55, 270, 325, 370), ops[5].Rect)
	assert.Equal(t, "#000000", render.HexColor(ops[5].Color))

	assert.Equal(t, "Buy", ops[6].Text)
	assert.Equal(t, image.Pt(190, 320), ops[6].Point)
	assert.Equal(t, render.TextAlignCenter, ops[6].Style.Align)
	assert.Equal(t, render.BaselineMiddle, ops[6].Style.Baseline)
	assert.InDelta(t, 35, ops[6].Style.Size, 0)

	assert.Equal(t, []string{"Hello World this is a fairly", "long caption text"}, report.CaptionLines)
	assert.Nil(t, report.Photo)
	assert.False(t, report.PhotoSkipped)
}

func TestComposeWithoutMaskDrawsNothing(t *testing.T) {
	rec := render.NewRecorder()
	_, err := Compose(rec, template.Default(), assets.Snapshot{Pattern: blank(10, 10)}, params(), nil)
	assert.ErrorIs(t, err, ErrMaskNotLoaded)
	assert.Empty(t, rec.Ops)
}

func TestComposePatternAndPhoto(t *testing.T) {
	rec := render.NewRecorder()
	p := params()
	p.Photo = blank(1000, 500)

	report, err := Compose(rec, template.Default(), assets.Snapshot{
		Mask:    blank(970, 600),
		Pattern: blank(100, 100),
		Stroke:  blank(970, 600),
	}, p, nil)
	require.NoError(t, err)

	kinds := rec.Kinds()
	require.GreaterOrEqual(t, len(kinds), 5)
	assert.Equal(t, render.OpDrawImageInRect, kinds[3])
	assert.Equal(t, render.OpDrawImageInRect, kinds[4])

	pattern := rec.Ops[3]
	assert.Equal(t, image.Rect(0, 0, 970, 600), pattern.Rect)
	assert.Equal(t, render.ScaleModeStretch, pattern.Mode)

	photo := rec.Ops[4]
	assert.Equal(t, image.Rect(58, 250, 913, 720), photo.Rect)

	require.NotNil(t, report.Photo)
	assert.InDelta(t, 0.97, report.Photo.Scale, 1e-9)
	assert.False(t, report.PhotoSkipped)

	// the stroke is loaded but never drawn
	drawn := 0
	for _, kind := range kinds {
		if kind == render.OpDrawImageInRect {
			drawn++
		}
	}
	assert.Equal(t, 2, drawn)
}

func TestComposeSkipsDegeneratePhoto(t *testing.T) {
	rec := render.NewRecorder()
	p := params()
	p.Photo = blank(1000, 500)
	p.Corrections = state.CorrectionFactors{Width: 1000, Height: 0, Y: 0}

	report, err := Compose(rec, template.Default(), assets.Snapshot{Mask: blank(970, 600)}, p, nil)
	require.NoError(t, err)

	assert.True(t, report.PhotoSkipped)
	require.NotNil(t, report.Photo)
	assert.Less(t, report.Photo.Width, 0.0)
	assert.NotContains(t, rec.Kinds(), render.OpDrawImageInRect)
}

func TestComposeRepeatedRenderDoesNotResizeAgain(t *testing.T) {
	rec := render.NewRecorder()
	set := assets.Snapshot{Mask: blank(970, 600)}

	_, err := Compose(rec, template.Default(), set, params(), nil)
	require.NoError(t, err)
	rec.Reset()

	_, err = Compose(rec, template.Default(), set, params(), nil)
	require.NoError(t, err)
	assert.Equal(t, render.OpFillRect, rec.Kinds()[0])
}

func TestComposeOnCanvas(t *testing.T) {
	canvas := render.NewCanvas(nil)
	mask, err := assets.Placeholder("mask")
	require.NoError(t, err)

	_, err = Compose(canvas, template.Default(), assets.Snapshot{Mask: mask}, params(), nil)
	require.NoError(t, err)

	frame := canvas.Frame()
	assert.Equal(t, image.Rect(0, 0, 970, 600), frame.Bounds())
	assert.Equal(t, "#112233", render.HexColor(frame.At(600, 300)))
	assert.Equal(t, "#ffffff", render.HexColor(frame.At(2, 2)))
	assert.Equal(t, "#000000", render.HexColor(frame.At(60, 365)))
}

func TestComposePhotoScaleFollowsTemplate(t *testing.T) {
	for name, want := range map[string]render.ScaleMode{
		"":        render.ScaleModeStretch,
		"stretch": render.ScaleModeStretch,
		"fit":     render.ScaleModeFit,
		"fill":    render.ScaleModeFill,
	} {
		rec := render.NewRecorder()
		tpl := template.Default()
		tpl.PhotoScale = name
		p := params()
		p.Photo = blank(400, 300)

		_, err := Compose(rec, tpl, assets.Snapshot{Mask: blank(970, 600)}, p, nil)
		require.NoError(t, err)

		var modes []render.ScaleMode
		for _, op := range rec.Ops {
			if op.Kind == render.OpDrawImageInRect {
				modes = append(modes, op.Mode)
			}
		}
		assert.Equal(t, []render.ScaleMode{want}, modes, "photo_scale %q", name)
	}
}

func TestComposeReportsCTAOverflow(t *testing.T) {
	rec := render.NewRecorder()
	set := assets.Snapshot{Mask: blank(970, 600)}

	report, err := Compose(rec, template.Default(), set, params(), nil)
	require.NoError(t, err)
	assert.False(t, report.CTAOverflow)

	p := params()
	p.CTAText = "Book a site visit this weekend"
	rec.Reset()
	report, err = Compose(rec, template.Default(), set, p, nil)
	require.NoError(t, err)
	assert.True(t, report.CTAOverflow)

	last := rec.Ops[len(rec.Ops)-1]
	assert.Equal(t, render.OpDrawText, last.Kind)
	assert.Equal(t, image.Pt(190, 320), last.Point)
}

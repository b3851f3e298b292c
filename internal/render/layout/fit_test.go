package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitImagePreservesAspect(t *testing.T) {
	p := FitImage(1000, 500, image.Pt(970, 600), Corrections{})
	assert.InDelta(t, 0.97, p.Scale, 1e-9)
	assert.InDelta(t, 970, p.Width, 1e-9)
	assert.InDelta(t, 485, p.Height, 1e-9)
}

func TestFitImageCentersWithoutCorrections(t *testing.T) {
	p := FitImage(1000, 500, image.Pt(970, 600), Corrections{})
	assert.InDelta(t, (970-p.Width)/2, p.X, 1e-9)
	assert.InDelta(t, (600-p.Height)/2, p.Y, 1e-9)
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 57.5, p.Y, 1e-9)
}

func TestFitImageTallPhotoFitsHeight(t *testing.T) {
	p := FitImage(300, 1200, image.Pt(970, 600), Corrections{})
	assert.InDelta(t, 0.5, p.Scale, 1e-9)
	assert.InDelta(t, 150, p.Width, 1e-9)
	assert.InDelta(t, 600, p.Height, 1e-9)
	assert.InDelta(t, 410, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
}

func TestFitImageAppliesCorrections(t *testing.T) {
	p := FitImage(1000, 500, image.Pt(970, 600), Corrections{Width: 115, Height: 15, Y: 185})
	assert.InDelta(t, 855, p.Width, 1e-9)
	assert.InDelta(t, 470, p.Height, 1e-9)
	assert.InDelta(t, 57.5, p.X, 1e-9)
	assert.InDelta(t, 65+185, p.Y, 1e-9)
	assert.False(t, p.Degenerate())
	assert.Equal(t, image.Rect(58, 250, 913, 720), p.Rect())
}

func TestFitImageNegativeCorrectionsGrow(t *testing.T) {
	p := FitImage(1000, 500, image.Pt(970, 600), Corrections{Width: -30, Height: -15})
	assert.InDelta(t, 1000, p.Width, 1e-9)
	assert.InDelta(t, 500, p.Height, 1e-9)
	assert.InDelta(t, -15, p.X, 1e-9)
}

func TestFitImageDegenerate(t *testing.T) {
	p := FitImage(1000, 500, image.Pt(970, 600), Corrections{Width: 1000})
	assert.Less(t, p.Width, 0.0)
	assert.True(t, p.Degenerate())

	p = FitImage(1000, 500, image.Pt(970, 600), Corrections{Height: 485})
	assert.True(t, p.Degenerate())

	assert.True(t, FitImage(0, 500, image.Pt(970, 600), Corrections{}).Degenerate())
}

package state

import (
	"github.com/rook-computer/adcanvas/internal/assets"
	"github.com/rook-computer/adcanvas/internal/render/layout"
)

const (
	CorrectionMin = -1000
	CorrectionMax = 1000
)

// CorrectionFactors nudge the fitted photo: Width and Height are subtracted
// from the scaled size, Y shifts it down.
type CorrectionFactors struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Y      int `json:"y"`
}

// DefaultCorrections are the values restored by a reset.
func DefaultCorrections() CorrectionFactors {
	return CorrectionFactors{Width: 115, Height: 15, Y: 185}
}

// Clamp limits every factor to [CorrectionMin, CorrectionMax].
func (c CorrectionFactors) Clamp() CorrectionFactors {
	return CorrectionFactors{Width: clamp(c.Width), Height: clamp(c.Height), Y: clamp(c.Y)}
}

func (c CorrectionFactors) Layout() layout.Corrections {
	return layout.Corrections{Width: c.Width, Height: c.Height, Y: c.Y}
}

// CorrectionsPatch updates only the non-nil factors.
type CorrectionsPatch struct {
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`
	Y      *int `json:"y,omitempty"`
}

func (p CorrectionsPatch) Apply(c CorrectionFactors) CorrectionFactors {
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Height != nil {
		c.Height = *p.Height
	}
	if p.Y != nil {
		c.Y = *p.Y
	}
	return c.Clamp()
}

func clamp(v int) int {
	return min(max(v, CorrectionMin), CorrectionMax)
}

// RenderParameters is an immutable snapshot of everything the compositor
// reads besides the template assets.
type RenderParameters struct {
	CaptionText     string
	CTAText         string
	BackgroundColor string
	Corrections     CorrectionFactors
	Photo           *assets.Bitmap
	PhotoToken      uint64
}

// HasPhoto reports whether a user photo should be drawn.
func (p RenderParameters) HasPhoto() bool { return p.Photo != nil }

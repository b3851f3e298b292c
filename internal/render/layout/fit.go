package layout

import (
	"image"
	"math"
)

// Corrections are signed pixel adjustments applied after aspect fitting.
// Width and Height are subtracted from the scaled size; Y shifts the result down.
type Corrections struct {
	Width  int
	Height int
	Y      int
}

// Placement is the destination of a fitted image in target coordinates.
type Placement struct {
	Scale  float64
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// FitImage scales a srcW x srcH image uniformly so it fits inside target,
// applies the corrections and centers the result. The Y correction is added
// after vertical centering. No clamping is done; use Degenerate to detect a
// placement that must not be drawn.
func FitImage(srcW, srcH int, target image.Point, c Corrections) Placement {
	if srcW <= 0 || srcH <= 0 {
		return Placement{}
	}

	scale := math.Min(float64(target.X)/float64(srcW), float64(target.Y)/float64(srcH))
	width := float64(srcW)*scale - float64(c.Width)
	height := float64(srcH)*scale - float64(c.Height)

	return Placement{
		Scale:  scale,
		X:      (float64(target.X) - width) / 2,
		Y:      (float64(target.Y)-height)/2 + float64(c.Y),
		Width:  width,
		Height: height,
	}
}

// Degenerate reports whether the placement has no drawable area.
func (p Placement) Degenerate() bool {
	return p.Width <= 0 || p.Height <= 0 || p.Rect().Empty()
}

// Rect rounds the placement to whole pixels.
func (p Placement) Rect() image.Rectangle {
	x0 := int(math.Round(p.X))
	y0 := int(math.Round(p.Y))
	x1 := int(math.Round(p.X + p.Width))
	y1 := int(math.Round(p.Y + p.Height))
	return image.Rect(x0, y0, x1, y1)
}

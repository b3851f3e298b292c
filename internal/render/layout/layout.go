package layout

import "image"

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Canvas returns the full canvas rectangle anchored at the origin.
// Negative sizes are clamped to zero.
func Canvas(widthPx, heightPx int) image.Rectangle {
	if widthPx < 0 {
		widthPx = 0
	}
	if heightPx < 0 {
		heightPx = 0
	}
	return image.Rect(0, 0, widthPx, heightPx)
}

// CenteredAt returns a rectangle of size (widthPx,heightPx) whose center is anchor.
// Odd sizes put the extra pixel on the right/bottom edge.
func CenteredAt(anchor image.Point, widthPx, heightPx int) image.Rectangle {
	if widthPx < 0 {
		widthPx = 0
	}
	if heightPx < 0 {
		heightPx = 0
	}
	minX := anchor.X - widthPx/2
	minY := anchor.Y - heightPx/2
	return image.Rect(minX, minY, minX+widthPx, minY+heightPx)
}

// Center returns the midpoint of rect.
func Center(rect image.Rectangle) image.Point {
	rect = Normalize(rect)
	return image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
}

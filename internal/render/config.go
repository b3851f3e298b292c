package render

import "image/color"

// Fallback colors used when a template value does not parse.
var (
	DefaultForeground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	DefaultBackground = color.RGBA{A: 0xFF}
)

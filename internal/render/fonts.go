package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DPI at which points and pixels coincide.
const DPI = 72

// DefaultTextSize is used when a TextStyle leaves Size unset.
const DefaultTextSize = 16

// Fonts holds a parsed TrueType font and caches faces per size.
type Fonts struct {
	ttf *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFonts parses TrueType font data.
func NewFonts(ttf []byte) (*Fonts, error) {
	parsed, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Fonts{ttf: parsed, faces: make(map[float64]font.Face)}, nil
}

// DefaultFonts returns the embedded Go Regular font.
func DefaultFonts() *Fonts {
	f, err := NewFonts(goregular.TTF)
	if err != nil {
		// goregular.TTF is a compile-time constant that always parses.
		panic(err)
	}
	return f
}

// Face returns a face for size, creating it on first use.
func (f *Fonts) Face(size float64) font.Face {
	if size <= 0 {
		size = DefaultTextSize
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f.ttf, &truetype.Options{Size: size, DPI: DPI, Hinting: font.HintingFull})
	f.faces[size] = face
	return face
}

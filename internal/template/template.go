// Package template holds the static layout constants of the ad design.
package template

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Point struct {
	X int `toml:"x" json:"x"`
	Y int `toml:"y" json:"y"`
}

func (p Point) ImagePoint() image.Point { return image.Pt(p.X, p.Y) }

type Caption struct {
	Text            string  `toml:"text" json:"text"`
	Position        Point   `toml:"position" json:"position"`
	MaxCharsPerLine int     `toml:"max_characters_per_line" json:"maxCharactersPerLine"`
	FontSize        float64 `toml:"font_size" json:"fontSize"`
	LineHeight      int     `toml:"line_height" json:"lineHeight"`
	Alignment       string  `toml:"alignment" json:"alignment"`
	TextColor       string  `toml:"text_color" json:"textColor"`
}

type CTA struct {
	Text            string  `toml:"text" json:"text"`
	Position        Point   `toml:"position" json:"position"`
	Width           int     `toml:"width" json:"width"`
	Height          int     `toml:"height" json:"height"`
	FontSize        float64 `toml:"font_size" json:"fontSize"`
	TextColor       string  `toml:"text_color" json:"textColor"`
	BackgroundColor string  `toml:"background_color" json:"backgroundColor"`
}

// Region is the photo slot of the design, in mask coordinates.
type Region struct {
	X      int `toml:"x" json:"x"`
	Y      int `toml:"y" json:"y"`
	Width  int `toml:"width" json:"width"`
	Height int `toml:"height" json:"height"`
}

type URLs struct {
	Mask          string `toml:"mask" json:"mask"`
	Stroke        string `toml:"stroke" json:"stroke"`
	DesignPattern string `toml:"design_pattern" json:"designPattern"`
}

// Spec is one ad design. It is loaded once and never mutated.
type Spec struct {
	Caption   Caption `toml:"caption" json:"caption"`
	CTA       CTA     `toml:"cta" json:"cta"`
	ImageMask Region  `toml:"image_mask" json:"imageMask"`
	URLs      URLs    `toml:"urls" json:"urls"`

	// PhotoScale is how the photo fills its fitted rect: "stretch", "fit"
	// or "fill".
	PhotoScale string `toml:"photo_scale" json:"photoScale"`
}

// Default returns the built-in landscape design.
func Default() Spec {
	return Spec{
		Caption: Caption{
			Text:            "1 & 2 BHK Luxury Apartments at just Rs.34.97 Lakhs",
			Position:        Point{X: 50, Y: 50},
			MaxCharsPerLine: 31,
			FontSize:        44,
			LineHeight:      60,
			Alignment:       "left",
			TextColor:       "#FFFFFF",
		},
		CTA: CTA{
			Text:            "Shop Now",
			Position:        Point{X: 190, Y: 320},
			Width:           270,
			Height:          100,
			FontSize:        35,
			TextColor:       "#FFFFFF",
			BackgroundColor: "#000000",
		},
		ImageMask:  Region{X: 56, Y: 442, Width: 970, Height: 600},
		PhotoScale: "stretch",
		URLs: URLs{
			Mask:          "https://d273i1jagfl543.cloudfront.net/templates/global_temp_landscape_temp_10_mask.png",
			Stroke:        "https://d273i1jagfl543.cloudfront.net/templates/global_temp_landscape_temp_10_Mask_stroke.png",
			DesignPattern: "https://d273i1jagfl543.cloudfront.net/templates/global_temp_landscape_temp_10_Design_Pattern.png",
		},
	}
}

// Parse decodes a TOML design. Keys that are absent keep their Default value.
func Parse(data []byte) (Spec, error) {
	spec := Default()
	if err := toml.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("parse template: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// Load reads a TOML design from path. An empty path returns Default.
func Load(path string) (Spec, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("read template %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks the constraints the compositor relies on.
func (s Spec) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Caption.Text) == "" {
		errs = append(errs, errors.New("caption.text must not be blank"))
	}
	if strings.TrimSpace(s.CTA.Text) == "" {
		errs = append(errs, errors.New("cta.text must not be blank"))
	}
	if s.Caption.FontSize <= 0 {
		errs = append(errs, errors.New("caption.font_size must be positive"))
	}
	if s.CTA.FontSize <= 0 {
		errs = append(errs, errors.New("cta.font_size must be positive"))
	}
	if s.CTA.Width <= 0 || s.CTA.Height <= 0 {
		errs = append(errs, errors.New("cta.width and cta.height must be positive"))
	}
	switch strings.ToLower(strings.TrimSpace(s.PhotoScale)) {
	case "", "stretch", "fit", "fill":
	default:
		errs = append(errs, fmt.Errorf("photo_scale must be stretch, fit or fill (got %q)", s.PhotoScale))
	}
	if s.URLs.Mask == "" {
		errs = append(errs, errors.New("urls.mask is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid template: %w", errors.Join(errs...))
	}
	return nil
}

// CaptionText returns text, or the default caption when text is blank.
func (s Spec) CaptionText(text string) string {
	return orDefault(text, s.Caption.Text)
}

// CTAText returns text, or the default CTA label when text is blank.
func (s Spec) CTAText(text string) string {
	return orDefault(text, s.CTA.Text)
}

func orDefault(text, fallback string) string {
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		return trimmed
	}
	return fallback
}

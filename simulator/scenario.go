package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/rook-computer/adcanvas/internal/app"
	"github.com/rook-computer/adcanvas/internal/assets"
	"github.com/rook-computer/adcanvas/internal/render"
)

// applyScenario selects where the template assets come from:
//   - offline:     generated placeholders (default)
//   - online:      the URLs of the loaded template
//   - broken-mask: a mask that never loads, so the canvas stays blank
func applyScenario(cfg *app.Config, scenario string) error {
	switch strings.TrimSpace(scenario) {
	case "offline", "":
		cfg.AssetURLs = app.PlaceholderURLs()
	case "online":
		cfg.AssetURLs.Mask = ""
	case "broken-mask":
		urls := app.PlaceholderURLs()
		urls.Mask = assets.PlaceholderScheme + "missing"
		cfg.AssetURLs = urls
	default:
		return fmt.Errorf("unknown scenario %q", scenario)
	}
	return nil
}

// snapshotSink writes every presented frame to a PNG file, replacing it
// atomically.
type snapshotSink struct {
	path string
}

func (s snapshotSink) Present(frame *image.RGBA) error {
	data, err := render.EncodePNG(frame)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".frame-*.png")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/adcanvas/internal/app"
	"github.com/rook-computer/adcanvas/internal/assets"
)

func TestApplyScenario(t *testing.T) {
	var cfg app.Config

	require.NoError(t, applyScenario(&cfg, ""))
	assert.Equal(t, app.PlaceholderURLs(), cfg.AssetURLs)

	require.NoError(t, applyScenario(&cfg, "broken-mask"))
	assert.Equal(t, assets.PlaceholderScheme+"missing", cfg.AssetURLs.Mask)

	require.NoError(t, applyScenario(&cfg, "online"))
	assert.Empty(t, cfg.AssetURLs.Mask)

	assert.Error(t, applyScenario(&cfg, "bogus"))
}

func TestSnapshotSinkWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	sink := snapshotSink{path: path}

	require.NoError(t, sink.Present(image.NewRGBA(image.Rect(0, 0, 8, 8))))
	require.NoError(t, sink.Present(image.NewRGBA(image.Rect(0, 0, 16, 16))))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(data[:4]))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8080", displayAddr(":8080"))
	assert.Equal(t, "127.0.0.1:8080", displayAddr(""))
	assert.Equal(t, "10.0.0.1:9000", displayAddr("10.0.0.1:9000"))
}

package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCenteredAt(t *testing.T) {
	r := CenteredAt(image.Pt(190, 320), 270, 100)
	assert.Equal(t, image.Rect(55, 270, 325, 370), r)
	assert.Equal(t, image.Pt(190, 320), Center(r))
}

func TestCanvasClampsNegative(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 970, 600), Canvas(970, 600))
	assert.True(t, Canvas(-1, 10).Empty())
}

func TestNormalize(t *testing.T) {
	r := image.Rectangle{Min: image.Pt(10, 20), Max: image.Pt(0, 5)}
	assert.Equal(t, image.Rectangle{Min: image.Pt(0, 5), Max: image.Pt(10, 20)}, Normalize(r))
}

package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderRecordsInOrder(t *testing.T) {
	r := NewRecorder()
	r.Resize(10, 10)
	r.Resize(10, 10)
	r.FillRect(image.Rect(0, 0, 10, 10), red)
	r.DrawImage(solid(1, 1, blue), 0, 0)
	r.DrawImageInRect(solid(1, 1, blue), image.Rect(0, 0, 10, 10), ScaleModeStretch)
	r.DrawText("hi", 1, 2, TextStyle{Size: 10})

	assert.Equal(t, []OpKind{OpResize, OpFillRect, OpDrawImage, OpDrawImageInRect, OpDrawText}, r.Kinds())
	assert.Contains(t, r.String(), `text "hi" at (1,2)`)
	assert.Contains(t, r.String(), "fill (0,0)-(10,10) #ff0000")

	r.Reset()
	assert.Empty(t, r.Ops)
	w, h := r.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 10, h)
}

func TestRecorderMeasureText(t *testing.T) {
	r := NewRecorder()
	m := r.MeasureText("Buy", TextStyle{Size: 20})
	assert.Equal(t, 30, m.Width)
	assert.Equal(t, 20, m.Height)
}

func TestGenerateQRCodePNG(t *testing.T) {
	data, err := GenerateQRCodePNG("http://127.0.0.1:8080/", 128)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	_, err = GenerateQRCodePNG("", 128)
	assert.Error(t, err)
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(solid(3, 2, red))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
}

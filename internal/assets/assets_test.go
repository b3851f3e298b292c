package assets

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/adcanvas/internal/template"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	bmp, err := Decode(pngBytes(t, 12, 7))
	require.NoError(t, err)
	assert.Equal(t, 12, bmp.Width)
	assert.Equal(t, 7, bmp.Height)
	assert.Equal(t, image.Pt(12, 7), bmp.Size())
}

func TestDecodeRejectsNonImages(t *testing.T) {
	_, err := Decode(nil)
	assert.True(t, errors.Is(err, ErrNotImage))

	_, err = Decode([]byte("%PDF-1.4 definitely not a picture"))
	assert.True(t, errors.Is(err, ErrNotImage))
	assert.ErrorContains(t, err, "application/pdf")

	_, err = Decode([]byte("plain text"))
	assert.True(t, errors.Is(err, ErrNotImage))
}

// pngHeader returns a PNG made of only the signature and an IHDR chunk
// declaring w x h RGBA pixels.
func pngHeader(w, h uint32) []byte {
	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // truecolor with alpha

	chunk := append([]byte("IHDR"), ihdr[:]...)
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecodeRejectsHugeDimensions(t *testing.T) {
	_, err := Decode(pngHeader(50000, 50000))
	assert.True(t, errors.Is(err, ErrImageTooLarge), "%v", err)
	assert.ErrorContains(t, err, "50000x50000")
}

func TestDecodeLimit(t *testing.T) {
	data := pngBytes(t, 12, 7)

	_, err := DecodeLimit(data, 50)
	assert.True(t, errors.Is(err, ErrImageTooLarge))

	bmp, err := DecodeLimit(data, 84)
	require.NoError(t, err)
	assert.Equal(t, 12, bmp.Width)

	_, err = DecodeLimit(data, 0)
	assert.NoError(t, err)
}

func TestLoaderFetchSources(t *testing.T) {
	data := pngBytes(t, 5, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "local.png")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	l := NewLoader()
	ctx := context.Background()
	for _, src := range []string{srv.URL + "/mask.png", path, "file://" + path} {
		bmp, err := l.Fetch(ctx, src)
		require.NoError(t, err, src)
		assert.Equal(t, 5, bmp.Width, src)
	}

	_, err := l.Fetch(ctx, srv.URL+"/missing.png")
	assert.ErrorContains(t, err, "404")

	_, err = l.Fetch(ctx, "")
	assert.Error(t, err)

	bmp, err := l.Fetch(ctx, "placeholder:mask")
	require.NoError(t, err)
	assert.Equal(t, PlaceholderWidth, bmp.Width)

	_, err = l.Fetch(ctx, "placeholder:nope")
	assert.Error(t, err)
}

func TestLoaderRespectsMaxBytes(t *testing.T) {
	data := pngBytes(t, 64, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	l := NewLoader()
	l.MaxBytes = 10
	_, err := l.Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "larger than")
}

func TestLoadTemplateDeliversAllThree(t *testing.T) {
	l := NewLoader()
	urls := template.URLs{Mask: "placeholder:mask", DesignPattern: "placeholder:pattern", Stroke: "placeholder:missing"}

	got := map[Kind]Result{}
	for res := range l.LoadTemplate(context.Background(), urls) {
		got[res.Kind] = res
	}
	require.Len(t, got, 3)
	assert.NoError(t, got[KindMask].Err)
	assert.NoError(t, got[KindPattern].Err)
	assert.Error(t, got[KindStroke].Err, "failure is reported, not hidden")
	assert.Nil(t, got[KindStroke].Bitmap)
}

func TestSet(t *testing.T) {
	s := NewSet()
	assert.False(t, s.Ready())

	mask, err := Placeholder("mask")
	require.NoError(t, err)
	require.NoError(t, s.Put(KindMask, mask))
	assert.True(t, s.Ready())
	assert.Same(t, mask, s.Snapshot().Mask)
	assert.Nil(t, s.Snapshot().Pattern)

	assert.Error(t, s.Put(KindPhoto, mask))
}

func TestPhotoLoaderSuppressesOutOfOrderCompletion(t *testing.T) {
	release := map[string]chan struct{}{"first": make(chan struct{}), "second": make(chan struct{})}
	l := NewPhotoLoader()
	l.Decode = func(data []byte) (*Bitmap, error) {
		<-release[string(data)]
		return NewBitmap(image.NewRGBA(image.Rect(0, 0, len(data), 1))), nil
	}

	ctx := context.Background()
	firstToken, first := l.Request(ctx, []byte("first"))
	secondToken, second := l.Request(ctx, []byte("second"))
	assert.Greater(t, secondToken, firstToken)
	assert.Equal(t, secondToken, l.Current())

	var applied atomic.Int64
	apply := func(token uint64, bmp *Bitmap) { applied.Store(int64(bmp.Width)) }

	// The newer request finishes first, the older one afterwards.
	close(release["second"])
	require.NoError(t, l.Deliver(<-second, apply))
	close(release["first"])
	err := l.Deliver(<-first, apply)
	assert.True(t, errors.Is(err, ErrStalePhoto))

	assert.Equal(t, int64(len("second")), applied.Load())
}

func TestPhotoLoaderClearInvalidatesInFlight(t *testing.T) {
	release := make(chan struct{})
	l := NewPhotoLoader()
	l.Decode = func([]byte) (*Bitmap, error) {
		<-release
		return NewBitmap(image.NewRGBA(image.Rect(0, 0, 1, 1))), nil
	}
	_, results := l.Request(context.Background(), []byte("x"))
	l.Clear()
	assert.Zero(t, l.Current())
	close(release)

	select {
	case res := <-results:
		err := l.Deliver(res, func(uint64, *Bitmap) { t.Fatal("stale photo applied") })
		assert.True(t, errors.Is(err, ErrStalePhoto))
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
}

func TestPhotoLoaderDecodeError(t *testing.T) {
	l := NewPhotoLoader()
	_, results := l.Request(context.Background(), []byte("not an image"))
	err := l.Deliver(<-results, func(uint64, *Bitmap) { t.Fatal("failed decode applied") })
	assert.True(t, errors.Is(err, ErrNotImage))
}

func TestPhotoResultIsTaggedAsPhoto(t *testing.T) {
	l := NewPhotoLoader()
	l.Decode = func([]byte) (*Bitmap, error) {
		return NewBitmap(image.NewRGBA(image.Rect(0, 0, 2, 1))), nil
	}
	token, results := l.Request(context.Background(), []byte("x"))
	res := <-results

	assert.Equal(t, token, res.Token)
	assert.Equal(t, KindPhoto, res.Kind)
	assert.Equal(t, "upload", res.Source)
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.Bitmap.Width)
}

package render

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	fb "github.com/gonutz/framebuffer"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// FBSink shows frames on a Linux framebuffer device, letterboxed to keep the
// frame's aspect ratio.
type FBSink struct {
	Path   string
	Logger Logger

	mu  sync.Mutex
	dev *fb.Device
}

func NewFBSink(path string) *FBSink {
	if path == "" {
		path = "/dev/fb0"
	}
	return &FBSink{Path: path}
}

func (s *FBSink) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev != nil {
		return nil
	}
	dev, err := fb.Open(s.Path)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", s.Path, err)
	}
	s.dev = dev
	if s.Logger != nil {
		b := dev.Bounds()
		s.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", b.Dx(), b.Dy())
	}
	return nil
}

func (s *FBSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	s.dev.Close()
	s.dev = nil
	return nil
}

func (s *FBSink) Present(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return fmt.Errorf("framebuffer %s not open", s.Path)
	}
	blit(s.dev, frame)
	return nil
}

// letterbox returns the largest rect inside dst with the aspect ratio of a
// srcW x srcH image, centered.
func letterbox(dst image.Rectangle, srcW, srcH int) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || dst.Empty() {
		return image.Rectangle{}
	}
	w := dst.Dx()
	h := w * srcH / srcW
	if h > dst.Dy() {
		h = dst.Dy()
		w = h * srcW / srcH
	}
	x := dst.Min.X + (dst.Dx()-w)/2
	y := dst.Min.Y + (dst.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// blit copies frame onto dev with nearest-neighbor sampling, clearing the
// letterbox bars to black.
func blit(dev interface {
	Bounds() image.Rectangle
	Set(x, y int, c color.Color)
}, frame *image.RGBA) {
	bounds := dev.Bounds()
	src := frame.Bounds()
	target := letterbox(bounds, src.Dx(), src.Dy())
	black := color.RGBA{A: 0xFF}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !(image.Point{X: x, Y: y}).In(target) {
				dev.Set(x, y, black)
				continue
			}
			sx := src.Min.X + (x-target.Min.X)*src.Dx()/target.Dx()
			sy := src.Min.Y + (y-target.Min.Y)*src.Dy()/target.Dy()
			p := frame.RGBAAt(sx, sy)
			dev.Set(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xFF})
		}
	}
}

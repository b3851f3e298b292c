package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rook-computer/adcanvas/internal/template"
)

const defaultMaxBytes = 32 << 20

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Loader fetches bitmaps from http(s) URLs, file:// URLs, plain paths or the
// built-in "placeholder:" scheme.
type Loader struct {
	Client   *http.Client
	MaxBytes int64
	Logger   Logger
}

func NewLoader() *Loader {
	return &Loader{Client: &http.Client{Timeout: 15 * time.Second}, MaxBytes: defaultMaxBytes}
}

// Fetch loads and decodes src synchronously.
func (l *Loader) Fetch(ctx context.Context, src string) (*Bitmap, error) {
	if name, ok := strings.CutPrefix(src, PlaceholderScheme); ok {
		return Placeholder(name)
	}

	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		data, err = l.download(ctx, src)
	case strings.HasPrefix(src, "file://"):
		u, perr := url.Parse(src)
		if perr != nil {
			return nil, fmt.Errorf("parse %s: %w", src, perr)
		}
		data, err = os.ReadFile(u.Path)
	case src == "":
		return nil, fmt.Errorf("empty asset source")
	default:
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}

	bmp, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}
	return bmp, nil
}

// LoadAsync starts loading src and delivers exactly one Result on the
// returned channel, which is then closed.
func (l *Loader) LoadAsync(ctx context.Context, kind Kind, src string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		bmp, err := l.Fetch(ctx, src)
		if l.Logger != nil {
			if err != nil {
				l.Logger.Errorf("assets", "%s load failed: %v", kind, err)
			} else {
				l.Logger.Infof("assets", "%s loaded %dx%d", kind, bmp.Width, bmp.Height)
			}
		}
		out <- Result{Kind: kind, Source: src, Bitmap: bmp, Err: err}
	}()
	return out
}

// LoadTemplate loads mask, pattern and stroke concurrently. Results arrive in
// completion order; the channel is closed after all three.
func (l *Loader) LoadTemplate(ctx context.Context, urls template.URLs) <-chan Result {
	sources := []struct {
		kind Kind
		src  string
	}{
		{KindMask, urls.Mask},
		{KindPattern, urls.DesignPattern},
		{KindStroke, urls.Stroke},
	}

	out := make(chan Result, len(sources))
	var wg sync.WaitGroup
	for _, s := range sources {
		wg.Add(1)
		go func(kind Kind, src string) {
			defer wg.Done()
			out <- <-l.LoadAsync(ctx, kind, src)
		}(s.kind, s.src)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func (l *Loader) download(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	limit := l.MaxBytes
	if limit <= 0 {
		limit = defaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("asset larger than %d bytes", limit)
	}
	return data, nil
}

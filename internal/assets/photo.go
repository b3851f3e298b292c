package assets

import (
	"context"
	"errors"
	"sync"
)

var ErrStalePhoto = errors.New("photo request superseded")

// PhotoResult is the outcome of one photo decode. Kind is always KindPhoto.
type PhotoResult struct {
	Result
	Token uint64
}

// PhotoLoader decodes user photos asynchronously. Each request gets a new
// token; only the result carrying the latest token may be applied.
type PhotoLoader struct {
	// Decode defaults to the package Decode.
	Decode func(data []byte) (*Bitmap, error)

	mu     sync.Mutex
	seq    uint64
	active uint64
	cancel context.CancelFunc
}

func NewPhotoLoader() *PhotoLoader { return &PhotoLoader{} }

// Request supersedes any in-flight request and starts decoding data. The
// returned channel yields one result and is then closed.
func (l *PhotoLoader) Request(ctx context.Context, data []byte) (uint64, <-chan PhotoResult) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	token := l.seq
	l.active = token
	reqCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	decode := l.Decode
	l.mu.Unlock()

	if decode == nil {
		decode = Decode
	}

	out := make(chan PhotoResult, 1)
	go func() {
		defer close(out)
		defer cancel()
		bmp, err := decode(data)
		if err == nil && reqCtx.Err() != nil {
			err = reqCtx.Err()
		}
		out <- PhotoResult{
			Result: Result{Kind: KindPhoto, Source: "upload", Bitmap: bmp, Err: err},
			Token:  token,
		}
	}()
	return token, out
}

// Clear invalidates every outstanding request.
func (l *PhotoLoader) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.active = 0
}

// Current returns the token of the active request, or 0 when none is active.
func (l *PhotoLoader) Current() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Deliver calls apply with the decoded photo if res still belongs to the
// active request. The check and apply happen under the loader lock, so a
// concurrent Request cannot slip in between. Stale results return
// ErrStalePhoto; failed decodes return their error.
func (l *PhotoLoader) Deliver(res PhotoResult, apply func(token uint64, bmp *Bitmap)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if res.Token == 0 || res.Token != l.active {
		return ErrStalePhoto
	}
	if res.Err != nil {
		return res.Err
	}
	apply(res.Token, res.Bitmap)
	return nil
}

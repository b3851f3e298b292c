package compose

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/rook-computer/adcanvas/internal/assets"
	"github.com/rook-computer/adcanvas/internal/render"
	"github.com/rook-computer/adcanvas/internal/state"
	"github.com/rook-computer/adcanvas/internal/template"
)

type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseMaskLoading
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseMaskLoading:
		return "mask-loading"
	case PhaseReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Status is a point-in-time view of the pipeline for the editor.
type Status struct {
	Phase         Phase  `json:"phase"`
	Renders       uint64 `json:"renders"`
	MaskLoaded    bool   `json:"maskLoaded"`
	PatternLoaded bool   `json:"patternLoaded"`
	StrokeLoaded  bool   `json:"strokeLoaded"`
	PhotoToken    uint64 `json:"photoToken"`
	Report        Report `json:"report"`
}

// Pipeline owns the drawing surface. Run is its only writer: every event
// (parameter change or template asset completion) triggers one full redraw
// before the next event is read.
type Pipeline struct {
	Template template.Spec
	Store    *state.Store
	Loader   *assets.Loader
	Photos   *assets.PhotoLoader
	Drawer   render.Drawer
	Sinks    []render.Sink
	Logger   Logger

	assets *assets.Set

	mu      sync.RWMutex
	phase   Phase
	renders uint64
	report  Report
	frame   *image.RGBA
}

func NewPipeline(tpl template.Spec, store *state.Store, loader *assets.Loader) *Pipeline {
	return &Pipeline{
		Template: tpl,
		Store:    store,
		Loader:   loader,
		Photos:   assets.NewPhotoLoader(),
		Drawer:   render.NewCanvas(nil),
		Logger:   noopLogger{},
		assets:   assets.NewSet(),
	}
}

// Run loads the template assets and redraws on every event until ctx is done.
func (p *Pipeline) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.phase != PhaseUninitialized {
		p.mu.Unlock()
		return errors.New("pipeline already started")
	}
	p.phase = PhaseMaskLoading
	p.mu.Unlock()

	if p.Logger == nil {
		p.Logger = noopLogger{}
	}
	if p.assets == nil {
		p.assets = assets.NewSet()
	}
	if p.Loader == nil {
		p.Loader = assets.NewLoader()
	}

	changes, unsubscribe := p.Store.Subscribe(16)
	defer unsubscribe()

	results := p.Loader.LoadTemplate(ctx, p.Template.URLs)
	p.Logger.Infof("compose", "loading template assets")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			p.handleAsset(res)
		case change := <-changes:
			if p.Phase() != PhaseReady {
				continue
			}
			p.redraw(change.Field.String(), change.Params)
		}
	}
}

func (p *Pipeline) handleAsset(res assets.Result) {
	if res.Err != nil {
		p.Logger.Errorf("assets", "%s load failed (%s): %v", res.Kind, res.Source, res.Err)
		return
	}
	if err := p.assets.Put(res.Kind, res.Bitmap); err != nil {
		p.Logger.Errorf("assets", "%v", err)
		return
	}
	p.Logger.Infof("assets", "%s loaded %dx%d", res.Kind, res.Bitmap.Width, res.Bitmap.Height)

	if res.Kind == assets.KindMask {
		p.mu.Lock()
		p.phase = PhaseReady
		p.mu.Unlock()
	}
	if p.Phase() == PhaseReady {
		p.redraw(res.Kind.String(), p.Store.Snapshot())
	}
}

// redraw composes params, the values the triggering event observed.
func (p *Pipeline) redraw(reason string, params state.RenderParameters) {
	report, err := Compose(p.Drawer, p.Template, p.assets.Snapshot(), params, p.Logger)
	if err != nil {
		p.Logger.Errorf("compose", "redraw (%s): %v", reason, err)
		return
	}
	frame := frameOf(p.Drawer)

	p.mu.Lock()
	p.renders++
	p.report = report
	if frame != nil {
		p.frame = frame
	}
	p.mu.Unlock()

	if frame == nil {
		return
	}
	for _, sink := range p.Sinks {
		if err := sink.Present(frame); err != nil {
			p.Logger.Errorf("compose", "present frame: %v", err)
		}
	}
}

func (p *Pipeline) Phase() Phase {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.phase
}

func (p *Pipeline) Status() Status {
	p.mu.RLock()
	st := Status{Phase: p.phase, Renders: p.renders, Report: p.report}
	p.mu.RUnlock()

	if p.assets != nil {
		snap := p.assets.Snapshot()
		st.MaskLoaded = p.assets.Ready()
		st.PatternLoaded = snap.Pattern != nil
		st.StrokeLoaded = snap.Stroke != nil
	}
	if p.Photos != nil {
		st.PhotoToken = p.Photos.Current()
	}
	return st
}

// Frame returns the last composited frame, or nil before the first render.
// The image is shared with every caller and every sink; treat it as
// read-only.
func (p *Pipeline) Frame() *image.RGBA {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.frame
}

// PNG encodes the last composited frame.
func (p *Pipeline) PNG() ([]byte, error) {
	frame := p.Frame()
	if frame == nil {
		return nil, ErrMaskNotLoaded
	}
	return render.EncodePNG(frame)
}

// RequestPhoto decodes data in the background. Only the most recent request
// is applied to the store; older completions are dropped.
func (p *Pipeline) RequestPhoto(ctx context.Context, data []byte) uint64 {
	token, results := p.Photos.Request(ctx, data)
	go func() {
		res := <-results
		err := p.Photos.Deliver(res, func(token uint64, bmp *assets.Bitmap) {
			p.Store.SetPhoto(token, bmp)
		})
		switch {
		case errors.Is(err, assets.ErrStalePhoto):
			p.Logger.Infof(res.Kind.String(), "dropped result for request %d", res.Token)
		case err != nil:
			p.Logger.Errorf(res.Kind.String(), "request %d: %v", res.Token, err)
		default:
			p.Logger.Infof(res.Kind.String(), "request %d applied (%dx%d)", res.Token, res.Bitmap.Width, res.Bitmap.Height)
		}
	}()
	return token
}

// ClearPhoto cancels any pending photo and removes the current one.
func (p *Pipeline) ClearPhoto() {
	p.Photos.Clear()
	p.Store.ClearPhoto()
}

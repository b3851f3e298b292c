package web

import (
	"context"

	"github.com/rook-computer/adcanvas/internal/compose"
	"github.com/rook-computer/adcanvas/internal/state"
	"github.com/rook-computer/adcanvas/internal/template"
)

// ParameterStore is the part of state.Store the API writes through.
type ParameterStore interface {
	Snapshot() state.RenderParameters
	SetCaption(text string) state.RenderParameters
	SetCTA(text string) state.RenderParameters
	SetBackgroundColor(hex string) (state.RenderParameters, error)
	PatchCorrections(patch state.CorrectionsPatch) state.RenderParameters
	ResetCorrections() state.RenderParameters
}

// Compositor is the part of compose.Pipeline the API reads from.
type Compositor interface {
	Status() compose.Status
	PNG() ([]byte, error)
	RequestPhoto(ctx context.Context, data []byte) uint64
	ClearPhoto()
}

// ColorRecorder keeps the recent background colors.
type ColorRecorder interface {
	Push(hex string) ([]string, error)
	Colors() []string
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type APIV1Deps struct {
	Store      ParameterStore
	Compositor Compositor
	Colors     ColorRecorder
	Logger     Logger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Store == nil {
		out.Store = state.NewStore(template.Default())
	}
	if out.Compositor == nil {
		out.Compositor = NoopCompositor{}
	}
	if out.Colors == nil {
		history, _ := state.LoadColorHistory(state.NewMemoryKVStore())
		out.Colors = history
	}
	if out.Logger == nil {
		out.Logger = noopLogger{}
	}
	return out
}

// NoopCompositor never becomes ready. Photo requests are accepted and
// discarded.
type NoopCompositor struct{}

func (NoopCompositor) Status() compose.Status                     { return compose.Status{} }
func (NoopCompositor) PNG() ([]byte, error)                       { return nil, compose.ErrMaskNotLoaded }
func (NoopCompositor) RequestPhoto(context.Context, []byte) uint64 { return 0 }
func (NoopCompositor) ClearPhoto()                                {}

type noopLogger struct{}

func (noopLogger) Infof(component, format string, args ...interface{})  {}
func (noopLogger) Errorf(component, format string, args ...interface{}) {}

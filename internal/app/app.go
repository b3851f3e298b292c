package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/adcanvas/internal/compose"
	"github.com/rook-computer/adcanvas/internal/state"
	"github.com/rook-computer/adcanvas/internal/system"
	"github.com/rook-computer/adcanvas/internal/web"
)

type App struct {
	Store    *state.Store
	Pipeline *compose.Pipeline
	Colors   *state.ColorHistory
	Web      web.Server
	Logger   Logger

	// Console takes over the virtual terminal while running (kiosk only).
	Console bool
	// Keys enables the evdev bindings: F4 exits, F5 resets the photo
	// corrections, F6 removes the photo.
	Keys bool

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, pipeline *compose.Pipeline, colors *state.ColorHistory, webServer web.Server) *App {
	return &App{Store: store, Pipeline: pipeline, Colors: colors, Web: webServer, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start runs the pipeline and the editor until ctx is done, Exit is called or
// the pipeline fails.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Store == nil || app.Pipeline == nil {
		return errors.New("app needs a store and a pipeline")
	}

	app.seedColor()

	if app.Console {
		release := system.Console{Logger: app.Logger}.Acquire()
		defer release()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.Keys {
		system.WatchKeys(runCtx, app.Logger, system.KeyBindings{
			system.KeyF4: func() { app.Exit(nil) },
			system.KeyF5: func() { app.Store.ResetCorrections() },
			system.KeyF6: app.Pipeline.ClearPhoto,
		})
	}

	if app.Web != nil {
		if err := app.Web.Start(runCtx); err != nil {
			app.Logger.Errorf("web", "start failed: %v", err)
			return err
		}
		defer func() { _ = app.Web.Stop() }()
	}

	pipelineErr := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		pipelineErr <- app.Pipeline.Run(runCtx)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	case err = <-pipelineErr:
		app.Logger.Errorf("compose", "pipeline stopped: %v", err)
	}
	cancel()
	wg.Wait()
	return err
}

// seedColor starts from the most recently used background color.
func (app *App) seedColor() {
	if app.Colors == nil {
		return
	}
	latest, ok := app.Colors.Latest()
	if !ok {
		return
	}
	if _, err := app.Store.SetBackgroundColor(latest); err != nil {
		app.Logger.Errorf("app", "restore color %s: %v", latest, err)
		return
	}
	app.Logger.Infof("app", "restored background color %s", latest)
}

func (app *App) Stop() error {
	app.Exit(nil)
	return nil
}

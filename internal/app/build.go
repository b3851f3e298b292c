package app

import (
	"github.com/rook-computer/adcanvas/internal/assets"
	"github.com/rook-computer/adcanvas/internal/compose"
	"github.com/rook-computer/adcanvas/internal/render"
	"github.com/rook-computer/adcanvas/internal/state"
	"github.com/rook-computer/adcanvas/internal/template"
	"github.com/rook-computer/adcanvas/internal/web"
)

// Config is everything the binaries decide before wiring the app.
type Config struct {
	// TemplatePath is a TOML design; empty uses template.Default.
	TemplatePath string
	// AssetURLs, when it names a mask, replaces the template asset URLs.
	AssetURLs template.URLs
	// KVStore persists the color history; nil keeps it in memory.
	KVStore state.KVStore

	Server    web.ServerConfig
	StaticDir string

	Sinks  []render.Sink
	Logger Logger
}

// PlaceholderURLs points every template asset at a generated placeholder so
// the editor runs without network access.
func PlaceholderURLs() template.URLs {
	return template.URLs{
		Mask:          assets.PlaceholderScheme + "mask",
		DesignPattern: assets.PlaceholderScheme + "pattern",
		Stroke:        assets.PlaceholderScheme + "stroke",
	}
}

// Build assembles the store, pipeline, color history and editor server.
func Build(cfg Config) (*App, error) {
	log := cfg.Logger
	if log == nil {
		log = NoopLogger{}
	}

	tpl, err := template.Load(cfg.TemplatePath)
	if err != nil {
		return nil, err
	}
	if cfg.AssetURLs.Mask != "" {
		tpl.URLs = cfg.AssetURLs
	}

	kv := cfg.KVStore
	if kv == nil {
		kv = state.NewMemoryKVStore()
	}
	colors, err := state.LoadColorHistory(kv)
	if err != nil {
		// a corrupt history only loses the recent colors
		log.Errorf("app", "%v", err)
	}

	store := state.NewStore(tpl)
	loader := assets.NewLoader()
	pipeline := compose.NewPipeline(tpl, store, loader)
	pipeline.Logger = log
	pipeline.Sinks = cfg.Sinks

	router := web.NewRouter(web.RouterConfig{
		Deps: web.APIV1Deps{
			Store:      store,
			Compositor: pipeline,
			Colors:     colors,
			Logger:     log,
		},
		DevMode:   cfg.Server.DevMode,
		PublicURL: cfg.Server.PublicURL,
		StaticDir: cfg.StaticDir,
	})
	server := web.NewHTTPServer(cfg.Server.ListenAddr, router)
	server.Logger = log

	a := New(store, pipeline, colors, server)
	a.Logger = log
	return a, nil
}

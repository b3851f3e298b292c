package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/adcanvas/internal/app"
	"github.com/rook-computer/adcanvas/internal/render"
	"github.com/rook-computer/adcanvas/internal/state"
	"github.com/rook-computer/adcanvas/internal/web"
)

const envTemplate = "ADCANVAS_TEMPLATE"

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode (permissive CORS); also configurable via "+web.EnvDevMode)
	publicURL := flag.String("public-url", defaults.PublicURL, "editor URL encoded in the QR code; also configurable via "+web.EnvPublicURL)
	staticDir := flag.String("static-dir", "", "serve a static editor page from this directory at /ui (optional)")
	templatePath := flag.String("template", os.Getenv(envTemplate), "TOML design file; also configurable via "+envTemplate)
	scenario := flag.String("scenario", "offline", "asset source: offline | online | broken-mask")
	out := flag.String("out", "", "write every composited frame to this PNG file (optional)")
	storePath := flag.String("store", "", "persist the color history to this file; empty keeps it in memory")
	flag.Parse()

	logger := app.NewFileLogger(os.Stdout)

	cfg := app.Config{
		TemplatePath: *templatePath,
		Server:       web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode, PublicURL: *publicURL},
		StaticDir:    *staticDir,
		Logger:       logger,
	}
	if err := applyScenario(&cfg, *scenario); err != nil {
		fmt.Println("scenario error:", err)
		os.Exit(2)
	}
	if *out != "" {
		cfg.Sinks = []render.Sink{snapshotSink{path: *out}}
	}
	if *storePath != "" {
		kv, err := state.NewFileKVStore(*storePath)
		if err != nil {
			fmt.Println("store error:", err)
			os.Exit(2)
		}
		cfg.KVStore = kv
	}

	a, err := app.Build(cfg)
	if err != nil {
		fmt.Println("build error:", err)
		os.Exit(1)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("adcanvas simulator listening on", *listenAddr)
	fmt.Println("Scenario:", *scenario)
	fmt.Println("API: http://" + displayAddr(*listenAddr) + "/api/v1/")

	if err := a.Start(processCtx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if addr == "" {
		return "127.0.0.1:8080"
	}
	return addr
}

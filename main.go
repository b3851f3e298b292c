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
	"github.com/rook-computer/adcanvas/internal/system"
	"github.com/rook-computer/adcanvas/internal/web"
)

const (
	envStdioLog = "ADCANVAS_STDIO_LOG"
	envTemplate = "ADCANVAS_TEMPLATE"
)

func main() {
	fmt.Println("adcanvas starting")

	defaults, err := web.DefaultServerConfigFromEnv(":80")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	// Flags
	debug := flag.Bool("debug", false, "enable debug logging to ./adcanvas-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	fbPath := flag.String("fb", "/dev/fb0", "framebuffer device")
	templatePath := flag.String("template", os.Getenv(envTemplate), "TOML design file; also configurable via "+envTemplate)
	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode (permissive CORS); also configurable via "+web.EnvDevMode)
	publicURL := flag.String("public-url", defaults.PublicURL, "editor URL encoded in the QR code; derived from the local IP when empty")
	storePath := flag.String("store", state.DefaultKVStorePath, "color history file")
	noConsole := flag.Bool("no-console", false, "leave the virtual terminal in text mode")
	noKeys := flag.Bool("no-keys", false, "disable the F4/F5/F6 keyboard bindings")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./adcanvas-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	if *publicURL == "" {
		if u, err := system.EditorURL(*listenAddr); err == nil {
			*publicURL = u
		} else {
			logger.Errorf("main", "editor url: %v", err)
		}
	}

	kv, err := state.NewFileKVStore(*storePath)
	if err != nil {
		fmt.Println("store error:", err)
		os.Exit(2)
	}

	sink := render.NewFBSink(*fbPath)
	sink.Logger = logger
	if err := sink.Open(); err != nil {
		fmt.Println("framebuffer error:", err)
		os.Exit(1)
	}
	defer sink.Close()

	a, err := app.Build(app.Config{
		TemplatePath: *templatePath,
		KVStore:      kv,
		Server:       web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode, PublicURL: *publicURL},
		Sinks:        []render.Sink{sink},
		Logger:       logger,
	})
	if err != nil {
		fmt.Println("build error:", err)
		os.Exit(1)
	}
	a.Console = !*noConsole
	a.Keys = !*noKeys

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *publicURL != "" {
		fmt.Println("editor:", *publicURL)
	}
	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
	}
}

package web

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvListenAddr = "ADCANVAS_LISTEN"
	EnvDevMode    = "ADCANVAS_DEV"
	EnvPublicURL  = "ADCANVAS_PUBLIC_URL"
)

// ServerConfig contains settings for running the HTTP server.
//
// The intended defaults differ per binary:
// - kiosk:     :80
// - simulator: :8080
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
	// PublicURL is encoded in the editor QR code. Empty means derive it from
	// the request host.
	PublicURL string
}

func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	listenAddr := os.Getenv(EnvListenAddr)
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	devMode := false
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		devMode = parsed
	}

	return ServerConfig{ListenAddr: listenAddr, DevMode: devMode, PublicURL: os.Getenv(EnvPublicURL)}, nil
}

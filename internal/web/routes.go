package web

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Deps      APIV1Deps
	DevMode   bool
	PublicURL string

	// StaticDir, when set to an existing directory, is served at "/ui".
	StaticDir string
}

// NewRouter builds the engine used by both the kiosk and the simulator:
// - /api/v1/* for the editor API
// - /ui for an optional static editor page
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.DevMode && gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(cfg.Deps.Logger))
	if cfg.DevMode {
		r.Use(DevCORS())
	}

	registerAPIV1(r.Group("/api/v1"), cfg.Deps, cfg.PublicURL)

	if cfg.StaticDir != "" {
		if st, err := os.Stat(cfg.StaticDir); err == nil && st.IsDir() {
			r.Static("/ui", cfg.StaticDir)
		}
	}
	return r
}

func requestLogger(log Logger) gin.HandlerFunc {
	if log == nil {
		log = noopLogger{}
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		if status >= 500 {
			log.Errorf("web", "%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
			return
		}
		log.Infof("web", "%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
	}
}

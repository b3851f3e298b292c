package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfigFromEnv(t *testing.T) {
	t.Setenv(EnvListenAddr, "")
	t.Setenv(EnvDevMode, "")
	t.Setenv(EnvPublicURL, "")

	cfg, err := DefaultServerConfigFromEnv(":8080")
	require.NoError(t, err)
	assert.Equal(t, ServerConfig{ListenAddr: ":8080"}, cfg)

	t.Setenv(EnvListenAddr, "127.0.0.1:9000")
	t.Setenv(EnvDevMode, "true")
	t.Setenv(EnvPublicURL, "http://10.0.0.2/")
	cfg, err = DefaultServerConfigFromEnv(":8080")
	require.NoError(t, err)
	assert.Equal(t, ServerConfig{ListenAddr: "127.0.0.1:9000", DevMode: true, PublicURL: "http://10.0.0.2/"}, cfg)

	t.Setenv(EnvDevMode, "sometimes")
	_, err = DefaultServerConfigFromEnv(":8080")
	assert.ErrorContains(t, err, EnvDevMode)
}

func TestDevCORS(t *testing.T) {
	router := NewRouter(RouterConfig{DevMode: true})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/params", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/params", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTPServerLifecycle(t *testing.T) {
	srv := NewHTTPServer("127.0.0.1:0", NewRouter(RouterConfig{}))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, srv.Start(ctx))
	addr := srv.ListenAddr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/api/v1/params")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"cta":"Shop Now"`)

	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop())
	assert.Error(t, srv.Start(ctx))
}

package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/flowreport/component"
	"github.com/kbukum/flowreport/logger"
	"github.com/kbukum/flowreport/server/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logger.Logger {
	return logger.NewWithWriter(&logger.Config{Level: "error"}, "test", io.Discard)
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30, cfg.ReadTimeout)
	assert.Equal(t, 60, cfg.WriteTimeout)
	assert.Equal(t, 120, cfg.IdleTimeout)
	assert.Equal(t, "10MB", cfg.MaxBodySize)
	assert.Equal(t, 8, cfg.MaxConcurrentReports)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.CORS.AllowedHeaders, middleware.HeaderRequestID)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port too large", func(c *Config) { c.Port = 70000 }, "port"},
		{"negative timeout", func(c *Config) { c.ReadTimeout = -1 }, "read_timeout"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func newTestServer() *Server {
	cfg := Config{Host: "127.0.0.1"}
	cfg.ApplyDefaults()
	cfg.Port = 0
	return New(cfg, quietLogger())
}

func TestHandlerAppliesMiddleware(t *testing.T) {
	srv := newTestServer()
	srv.GinEngine().GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	srv.GinEngine().GET("/boom", func(*gin.Context) { panic("boom") })
	srv.ApplyMiddleware()

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(middleware.HeaderRequestID))

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestBodySizeLimitApplied(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.MaxBodySize = "1KB"
	srv := New(cfg, quietLogger())
	srv.GinEngine().POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.Status(http.StatusRequestEntityTooLarge)
				return
			}
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})
	srv.ApplyMiddleware()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 4096)))
	srv.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer()
	srv.RegisterDefaultEndpoints("flowreport", nil)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/health", http.NoBody))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestStartStop(t *testing.T) {
	srv := newTestServer()
	srv.RegisterDefaultEndpoints("flowreport", nil)

	sc := NewComponent(srv)
	assert.Equal(t, component.StatusUnhealthy, sc.Health(context.Background()).Status)

	require.NoError(t, sc.Start(context.Background()))
	addr := srv.Addr()
	assert.NotEqual(t, "127.0.0.1:0", addr)
	assert.Equal(t, component.StatusHealthy, sc.Health(context.Background()).Status)
	assert.Equal(t, addr+" (h2c)", sc.Describe().Details)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sc.Stop(ctx))
	assert.Equal(t, component.StatusUnhealthy, sc.Health(context.Background()).Status)
}

func TestStartBindFailure(t *testing.T) {
	first := newTestServer()
	require.NoError(t, first.Start(context.Background()))
	t.Cleanup(func() { _ = first.Stop(context.Background()) })

	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.Host, cfg.Port = "127.0.0.1", portOf(t, first.Addr())
	second := New(cfg, quietLogger())
	err := second.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to bind")
}

func portOf(t *testing.T, addr string) int {
	t.Helper()
	_, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	n, err := strconv.Atoi(port)
	require.NoError(t, err)
	return n
}

type createHandler struct{}

func (createHandler) Create(c *gin.Context) { c.Status(http.StatusCreated) }

func TestRoutesOrder(t *testing.T) {
	srv := newTestServer()
	srv.RegisterDefaultEndpoints("flowreport", nil)
	srv.GinEngine().POST("/v1/reports", createHandler{}.Create)

	routes := NewComponent(srv).Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, "/v1/reports", routes[0].Path)
	assert.Equal(t, http.MethodPost, routes[0].Method)
	assert.Equal(t, "/health", routes[1].Path)
	assert.Equal(t, "health", routes[1].Handler)
	assert.Equal(t, "/version", routes[2].Path)
}

func TestFormatHandlerName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"github.com/kbukum/flowreport/server/endpoint.(*Reports).Create-fm", "Reports.Create"},
		{"github.com/kbukum/flowreport/server/endpoint.Health.func1", "health"},
		{"github.com/kbukum/flowreport/server/endpoint.Version.func1", "version"},
		{"main.handler", "handler"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, formatHandlerName(tc.in))
		})
	}
}

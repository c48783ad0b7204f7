package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ico-admin.backend/internal/interfaces/http/middleware"
	"ico-admin.backend/pkg/metrics"
	"ico-admin.backend/pkg/ratelimit"
)

func TestApplyCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	applyCORSMiddleware(r, nil)
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	// with origin
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "ipaddress")

	// options preflight
	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestApplyCORSMiddleware_AllowList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	applyCORSMiddleware(r, []string{"https://admin.example.com"})
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "https://admin.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRegisterHealthRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ico-admin-backend", body["service"])
	assert.Equal(t, serviceVersion, body["version"])
}

func TestRegisterMetricsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registry := prometheus.NewRegistry()
	metrics.Register(registry)
	metrics.RateLimited.WithLabelValues("/auth/adminlogin").Inc()
	registerMetricsRoute(r, registry)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "rate_limited_total"))
}

func loginPasses(t *testing.T, trustedProxies []string, remoteAddr string, requests int) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r, err := newEngine(trustedProxies)
	require.NoError(t, err)
	r.POST("/auth/adminlogin", middleware.RateLimitMiddleware(ratelimit.NewMemory(1, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	passed := 0
	for i := 0; i < requests; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/adminlogin", nil)
		req.RemoteAddr = remoteAddr
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			passed++
		}
	}
	return passed
}

func TestNewEngine_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	assert.Equal(t, 1, loginPasses(t, nil, "198.51.100.7:4000", 20))
}

func TestNewEngine_HonoursForwardedForFromTrustedProxy(t *testing.T) {
	assert.Equal(t, 20, loginPasses(t, []string{"10.0.0.0/8"}, "10.1.2.3:4000", 20))
}

func TestNewEngine_RejectsInvalidProxy(t *testing.T) {
	_, err := newEngine([]string{"not-an-ip"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid trusted proxies")
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	up := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name      string
		db, cache Pinger
		wantDB    string
		wantCache string
	}{
		{name: "all up", db: up, cache: up, wantDB: "up", wantCache: "up"},
		{name: "cache down", db: up, cache: down, wantDB: "up", wantCache: "down"},
		{name: "cache disabled", db: up, cache: nil, wantDB: "up", wantCache: "disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler("projects-api", "1.2.3", tt.db, tt.cache).RegisterRoutes(r)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, http.StatusOK, w.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "healthy", resp.Status)
			assert.Equal(t, "projects-api", resp.Service)
			assert.Equal(t, "1.2.3", resp.Version)
			assert.Equal(t, tt.wantDB, resp.DB)
			assert.Equal(t, tt.wantCache, resp.Cache)
		})
	}
}

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	m.RegisterRoutes(r)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `projects_api_http_requests_total{method="GET",route="/ping",status="200"} 1`)
	assert.Contains(t, body, "projects_api_http_request_duration_seconds")
}

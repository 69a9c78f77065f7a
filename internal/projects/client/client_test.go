package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/logging"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
)

func TestHTTPClient_FetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/projects", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("_page"))
		assert.Equal(t, "3", r.URL.Query().Get("_limit"))
		assert.Equal(t, "name", r.URL.Query().Get("_sort"))
		assert.Equal(t, "rid-7", r.Header.Get("X-Request-Id"))
		assert.Equal(t, "query_id=1", r.Header.Get("X-Telegram-Init-Data"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"projects":[{"id":4,"name":"Delta","description":"d","budget":12.5,"imageUrl":"/d.png","isActive":true}]}`))
	}))
	defer server.Close()

	c := New(Options{BaseURL: server.URL + "/api/v1/", PageSize: 3, InitData: "query_id=1"})
	ctx := logging.WithRequestID(context.Background(), "rid-7")

	got, err := c.FetchPage(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Project{ID: 4, Name: "Delta", Description: "d", Budget: 12.5, ImageURL: "/d.png", IsActive: true}, got[0])
}

func TestHTTPClient_FetchPage_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"projects":[]}`))
	}))
	defer server.Close()

	got, err := New(Options{BaseURL: server.URL}).FetchPage(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestHTTPClient_FetchPage_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"ok":false,"error":"database unavailable"}`))
	}))
	defer server.Close()

	_, err := New(Options{BaseURL: server.URL}).FetchPage(context.Background(), 1)
	require.Error(t, err)

	var nerr *NetworkError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, http.StatusInternalServerError, nerr.Status)
	assert.Equal(t, "database unavailable", nerr.Error())
	assert.Contains(t, nerr.Detail(), "fetch_page")
}

func TestHTTPClient_FetchPage_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(Options{BaseURL: url}).FetchPage(context.Background(), 1)
	require.Error(t, err)

	var nerr *NetworkError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, msgFetchFailed, err.Error())
	assert.NotNil(t, nerr.Unwrap())
}

func TestHTTPClient_FetchPage_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := New(Options{BaseURL: server.URL}).FetchPage(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, msgFetchFailed, err.Error())
}

func TestHTTPClient_Save(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/projects/4", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var p domain.Project
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, "Delta v2", p.Name)

		p.Description = "confirmed"
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "project": p})
	}))
	defer server.Close()

	saved, err := New(Options{BaseURL: server.URL}).Save(context.Background(),
		domain.Project{ID: 4, Name: "Delta v2", Description: "d", Budget: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(4), saved.ID)
	assert.Equal(t, "confirmed", saved.Description)
}

func TestHTTPClient_Save_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"ok":false,"error":"project not found"}`))
	}))
	defer server.Close()

	_, err := New(Options{BaseURL: server.URL}).Save(context.Background(), domain.Project{ID: 99})
	require.Error(t, err)
	assert.Equal(t, "project not found", err.Error())
}

func TestHTTPClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var p domain.Project
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		p.ID = 11
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "project": p})
	}))
	defer server.Close()

	created, err := New(Options{BaseURL: server.URL}).Create(context.Background(), domain.Project{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
}

func TestHTTPClient_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{BaseURL: "http://127.0.0.1:1"}).FetchPage(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

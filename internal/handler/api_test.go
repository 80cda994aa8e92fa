package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"darkroom/internal/auth"
	"darkroom/internal/library"
	"darkroom/internal/middleware"
	"darkroom/internal/service"
	"darkroom/internal/sidecar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	server *httptest.Server
	base   string
	token  string
}

// newTestAPI wires the real services and middleware chain over a temp
// asset tree, the same way cmd/server does.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	base := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := sidecar.NewStore()
	lib := library.New(base, store, logger)
	imageService := service.NewImageService(lib, store, logger)
	tokens, err := auth.NewTokenService("test-secret", "hunter2", 30*time.Minute, 24*time.Hour, logger)
	require.NoError(t, err)

	authHandler := NewAuthHandler(tokens, logger)
	imagesHandler := NewImagesHandler(imageService, logger)
	movesHandler := NewMovesHandler(imageService, logger)
	annotationsHandler := NewAnnotationsHandler(imageService, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", imagesHandler.HealthCheck)
	mux.HandleFunc("POST /api/auth/token/get", authHandler.Login)
	mux.HandleFunc("POST /api/auth/token/refresh", authHandler.Refresh)
	mux.HandleFunc("GET /api/images", imagesHandler.ListImages)
	mux.HandleFunc("GET /api/images/trash", imagesHandler.ListTrash)
	mux.HandleFunc("GET /api/images/picks", imagesHandler.ListPicks)
	mux.HandleFunc("PUT /api/image/update-metadata", annotationsHandler.UpdateMetadata)
	mux.HandleFunc("POST /api/move-images/to-trash", movesHandler.ToTrash)
	mux.HandleFunc("POST /api/move-images/delete-all-trash", movesHandler.PurgeTrash)

	var root http.Handler = mux
	root = middleware.Auth(tokens, logger)(root)
	root = middleware.Recovery(logger)(root)

	server := httptest.NewServer(root)
	t.Cleanup(server.Close)

	pair, err := tokens.IssueTokenPair("hunter2")
	require.NoError(t, err)

	return &testAPI{server: server, base: base, token: pair.AccessToken}
}

func (a *testAPI) do(t *testing.T, method, path, body, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestHealthIsPublic(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		rawHeader  string
		wantStatus int
	}{
		{"missing token", "", "", http.StatusUnauthorized},
		{"garbage token", "garbage", "", http.StatusUnauthorized},
		{"valid token", "VALID", "", http.StatusOK},
		{"wrong scheme", "", "Basic abc", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			token := tt.token
			if token == "VALID" {
				token = api.token
			}

			req, err := http.NewRequest(http.MethodGet, api.server.URL+"/api/images", nil)
			require.NoError(t, err)
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			} else if tt.rawHeader != "" {
				req.Header.Set("Authorization", tt.rawHeader)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
			}
		})
	}
}

func TestLoginAndRefresh(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/auth/token/get", `{"password":"hunter2"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pair))
	assert.Equal(t, "bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)

	resp = api.do(t, http.MethodPost, "/api/auth/token/refresh", `{"refresh_token":"`+pair.RefreshToken+`"}`, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/auth/token/get", `{"password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListImagesEndpoint(t *testing.T) {
	api := newTestAPI(t)
	writeTestFile(t, filepath.Join(api.base, "a.png"), "img")

	resp := api.do(t, http.MethodGet, "/api/images", "", api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var metas []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&metas))
	require.Len(t, metas, 1)
	assert.Equal(t, "a.png", metas[0]["filename"])
}

func TestUpdateMetadataEndpoint(t *testing.T) {
	api := newTestAPI(t)
	writeTestFile(t, filepath.Join(api.base, "a.json"),
		`{"filename":"a.png","trash":false,"pick":false,"rating":null,"notes":"old","prompt":"old prompt"}`)

	resp := api.do(t, http.MethodPut, "/api/image/update-metadata",
		`{"filename":"a.png","notes":"new"}`, api.token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := os.ReadFile(filepath.Join(api.base, "a.json"))
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, "new", meta["notes"])
	assert.Equal(t, "old prompt", meta["prompt"], "absent field must stay untouched")
}

func TestUpdateMetadataEndpointErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"missing sidecar", `{"filename":"ghost.png","notes":"x"}`, http.StatusNotFound},
		{"unknown directory", `{"filename":"a.png","directory":"attic","notes":"x"}`, http.StatusBadRequest},
		{"empty filename", `{"notes":"x"}`, http.StatusBadRequest},
		{"malformed body", `{"filename":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			resp := api.do(t, http.MethodPut, "/api/image/update-metadata", tt.body, api.token)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestMoveEndpoints(t *testing.T) {
	api := newTestAPI(t)
	writeTestFile(t, filepath.Join(api.base, "a.png"), "img")
	writeTestFile(t, filepath.Join(api.base, "a.json"),
		`{"filename":"a.png","trash":false,"pick":false,"rating":null,"notes":"","prompt":""}`)

	resp := api.do(t, http.MethodPost, "/api/move-images/to-trash", `{"image_name":"a.png"}`, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.FileExists(t, filepath.Join(api.base, "trash", "a.png"))
	assert.NoFileExists(t, filepath.Join(api.base, "a.png"))

	// Moving an image that is no longer in the pool fails with 404
	resp = api.do(t, http.MethodPost, "/api/move-images/to-trash", `{"image_name":"a.png"}`, api.token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/move-images/delete-all-trash", "", api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries, err := os.ReadDir(filepath.Join(api.base, "trash"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/ollamagen/internal/config"
	"github.com/davidbz/ollamagen/internal/generation"
	apphttp "github.com/davidbz/ollamagen/internal/http"
	"github.com/davidbz/ollamagen/internal/http/middleware"
	"github.com/davidbz/ollamagen/internal/mocks"
)

type stubBatcher struct {
	size       int
	categories []generation.Category
	err        error
}

func (s *stubBatcher) GenerateBatch(_ context.Context, size int) ([]generation.Category, error) {
	s.size = size
	return s.categories, s.err
}

type stubHealth struct {
	err error
}

func (s stubHealth) HealthCheck(context.Context) error {
	return s.err
}

func newRoutes(t *testing.T, completer *mocks.MockCompleter, batcher *stubBatcher, health stubHealth) http.Handler {
	t.Helper()

	handler := apphttp.NewHandler(completer, batcher, health)
	cfg := &config.Config{}
	server := apphttp.NewServer(cfg, handler, middleware.BuildMiddlewareChain(&cfg.CORS, &cfg.Model))
	return server.Routes()
}

func TestHandleCompletion(t *testing.T) {
	t.Run("should return the completion content", func(t *testing.T) {
		completer := mocks.NewMockCompleter(t)
		completer.EXPECT().
			GetChatCompletion(mock.Anything, "Name a color").
			Return("Blue", nil).
			Once()

		routes := newRoutes(t, completer, &stubBatcher{}, stubHealth{})

		req := httptest.NewRequest(http.MethodPost, "/v1/completions", strings.NewReader(`{"prompt":"Name a color"}`))
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.NotEmpty(t, rec.Header().Get("X-Request-Id"))

		var resp apphttp.CompletionResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Equal(t, "Blue", resp.Content)
	})

	t.Run("should map completion failures to bad gateway", func(t *testing.T) {
		completer := mocks.NewMockCompleter(t)
		completer.EXPECT().
			GetChatCompletion(mock.Anything, "hi").
			Return("", errors.New("chat completion failed")).
			Once()

		routes := newRoutes(t, completer, &stubBatcher{}, stubHealth{})

		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/completions", strings.NewReader(`{"prompt":"hi"}`)))

		require.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("should validate the request", func(t *testing.T) {
		routes := newRoutes(t, mocks.NewMockCompleter(t), &stubBatcher{}, stubHealth{})

		tests := []struct {
			name   string
			method string
			body   string
			status int
		}{
			{name: "wrong method", method: http.MethodGet, body: "", status: http.StatusMethodNotAllowed},
			{name: "malformed body", method: http.MethodPost, body: "{", status: http.StatusBadRequest},
			{name: "empty prompt", method: http.MethodPost, body: `{"prompt":""}`, status: http.StatusBadRequest},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rec := httptest.NewRecorder()
				routes.ServeHTTP(rec, httptest.NewRequest(tt.method, "/v1/completions", strings.NewReader(tt.body)))

				require.Equal(t, tt.status, rec.Code)
			})
		}
	})
}

func TestHandleCategories(t *testing.T) {
	t.Run("should generate the requested count", func(t *testing.T) {
		batcher := &stubBatcher{categories: []generation.Category{
			{CategoryID: 1, Name: "Mountain Unicycles", Brands: []string{"Orange Gear"}},
		}}
		routes := newRoutes(t, mocks.NewMockCompleter(t), batcher, stubHealth{})

		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/categories?count=3", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 3, batcher.size)
		require.JSONEq(t,
			`{"categories":[{"categoryId":1,"name":"Mountain Unicycles","brands":["Orange Gear"]}]}`,
			rec.Body.String())
	})

	t.Run("should default the count", func(t *testing.T) {
		batcher := &stubBatcher{}
		routes := newRoutes(t, mocks.NewMockCompleter(t), batcher, stubHealth{})

		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/categories", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 5, batcher.size)
	})

	t.Run("should reject invalid counts", func(t *testing.T) {
		routes := newRoutes(t, mocks.NewMockCompleter(t), &stubBatcher{}, stubHealth{})

		for _, count := range []string{"0", "51", "abc", "-2"} {
			rec := httptest.NewRecorder()
			routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/categories?count="+count, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code, "count=%s", count)
		}
	})

	t.Run("should surface generation failures", func(t *testing.T) {
		routes := newRoutes(t, mocks.NewMockCompleter(t), &stubBatcher{err: errors.New("json completion failed")}, stubHealth{})

		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/categories", nil))

		require.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		routes := newRoutes(t, mocks.NewMockCompleter(t), &stubBatcher{}, stubHealth{})

		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})

	t.Run("inference server down", func(t *testing.T) {
		routes := newRoutes(t, mocks.NewMockCompleter(t), &stubBatcher{}, stubHealth{err: errors.New("connection refused")})

		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Contains(t, rec.Body.String(), "unhealthy")
	})
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	server := apphttp.NewServer(&config.Config{}, apphttp.NewHandler(mocks.NewMockCompleter(t), &stubBatcher{}, stubHealth{}), middleware.Chain())

	require.NoError(t, server.Shutdown(context.Background()))
}

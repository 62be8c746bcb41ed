package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chotalink/chotalink/internal/middleware"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testOutput struct {
	Body string `json:"body"`
}

func setupTestAPI(t *testing.T) (*chi.Mux, huma.API, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestLog(zap.New(core)))

	return router, api, logs
}

func TestRequestLog(t *testing.T) {
	t.Run("logs method and path for each request", func(t *testing.T) {
		router, api, logs := setupTestAPI(t)

		huma.Get(api, "/test", func(_ context.Context, _ *struct{}) (*testOutput, error) {
			return &testOutput{Body: "ok"}, nil
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		require.Equal(t, 1, logs.Len())

		entry := logs.All()[0]
		fields := entry.ContextMap()

		assert.Equal(t, "request", entry.Message)
		assert.Equal(t, http.MethodGet, fields["method"])
		assert.Equal(t, "/test", fields["path"])
	})

	t.Run("does not alter the response", func(t *testing.T) {
		router, api, _ := setupTestAPI(t)

		huma.Get(api, "/test", func(_ context.Context, _ *struct{}) (*testOutput, error) {
			return &testOutput{Body: "ok"}, nil
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

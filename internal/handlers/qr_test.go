package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/chotalink/chotalink/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetQRCode(t *testing.T) {
	t.Run("renders a png named after the alias", func(t *testing.T) {
		registry := newTestRegistry(t)
		linkHandler := newTestHandler(registry)
		handler := handlers.NewQRHandler(registry, testBaseURL)

		view := createLink(t, linkHandler, handlers.DraftBody{OriginalURL: "a.com", Alias: strPtr("promo")})

		resp, err := handler.GetQRCode(context.Background(), &handlers.QRCodeRequest{
			ID:     view.ID,
			Format: "png",
			Size:   256,
		})

		require.NoError(t, err)
		assert.Equal(t, "image/png", resp.ContentType)
		assert.Equal(t, "attachment; filename=promo.png", resp.Disposition)
		assert.NotEmpty(t, resp.Body)
	})

	t.Run("renders an svg", func(t *testing.T) {
		registry := newTestRegistry(t)
		linkHandler := newTestHandler(registry)
		handler := handlers.NewQRHandler(registry, testBaseURL)

		view := createLink(t, linkHandler, handlers.DraftBody{OriginalURL: "a.com", Alias: strPtr("promo")})

		resp, err := handler.GetQRCode(context.Background(), &handlers.QRCodeRequest{
			ID:     view.ID,
			Format: "svg",
		})

		require.NoError(t, err)
		assert.Equal(t, "image/svg+xml", resp.ContentType)
		assert.Equal(t, "attachment; filename=promo.svg", resp.Disposition)
		assert.Contains(t, string(resp.Body), "<svg")
	})

	t.Run("missing id maps to 404", func(t *testing.T) {
		handler := handlers.NewQRHandler(newTestRegistry(t), testBaseURL)

		_, err := handler.GetQRCode(context.Background(), &handlers.QRCodeRequest{ID: "missing"})

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})
}

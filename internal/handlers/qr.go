package handlers

import (
	"context"
	"fmt"

	"github.com/chotalink/chotalink/internal/link"
	"github.com/chotalink/chotalink/internal/qr"
	"github.com/danielgtaylor/huma/v2"
)

// QRHandler renders downloadable QR images for short links.
type QRHandler struct {
	registry *link.Registry
	baseURL  string
}

// NewQRHandler creates a QR handler.
func NewQRHandler(registry *link.Registry, baseURL string) *QRHandler {
	return &QRHandler{registry: registry, baseURL: baseURL}
}

// GetQRCode encodes the link's short URL as a QR image, named after the
// alias so the download saves as <alias>.png or <alias>.svg.
func (h *QRHandler) GetQRCode(_ context.Context, req *QRCodeRequest) (*QRCodeResponse, error) {
	rec, err := h.registry.Get(req.ID)
	if err != nil {
		return nil, huma.Error404NotFound("link not found")
	}

	shortURL := fmt.Sprintf("%s/%s", h.baseURL, rec.Alias)

	var (
		image       []byte
		contentType string
	)

	switch req.Format {
	case "svg":
		image, err = qr.SVG(shortURL)
		contentType = "image/svg+xml"
	default:
		image, err = qr.PNG(shortURL, req.Size)
		contentType = "image/png"
	}

	if err != nil {
		return nil, huma.Error500InternalServerError("failed to render qr code")
	}

	ext := req.Format
	if ext == "" {
		ext = "png"
	}

	return &QRCodeResponse{
		ContentType: contentType,
		Disposition: fmt.Sprintf("attachment; filename=%s.%s", rec.Alias, ext),
		Body:        image,
	}, nil
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chotalink/chotalink/internal/analytics"
	"github.com/chotalink/chotalink/internal/expiry"
	"github.com/chotalink/chotalink/internal/link"
	"github.com/chotalink/chotalink/internal/messaging"
	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// LinkHandler exposes the registry's operations over the API.
type LinkHandler struct {
	registry       *link.Registry
	baseURL        string
	publishCreated messaging.Publish[analytics.LinkCreatedEvent]
	publishClicked messaging.Publish[analytics.LinkClickedEvent]
	publishDeleted messaging.Publish[analytics.LinkDeletedEvent]
	logger         *zap.Logger
}

// NewLinkHandler creates a link handler.
func NewLinkHandler(
	registry *link.Registry,
	baseURL string,
	publishCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishClicked messaging.Publish[analytics.LinkClickedEvent],
	publishDeleted messaging.Publish[analytics.LinkDeletedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		registry:       registry,
		baseURL:        baseURL,
		publishCreated: publishCreated,
		publishClicked: publishClicked,
		publishDeleted: publishDeleted,
		logger:         logger,
	}
}

func (h *LinkHandler) view(rec link.ShortLink) LinkView {
	return LinkView{
		ID:           rec.ID,
		OriginalURL:  rec.OriginalURL,
		Alias:        rec.Alias,
		ShortURL:     fmt.Sprintf("%s/%s", h.baseURL, rec.Alias),
		CreatedAt:    rec.CreatedAt,
		ExpiresAt:    rec.ExpiresAt,
		Expired:      expiry.IsExpired(rec.ExpiresAt),
		DaysLeft:     expiry.DaysLeft(rec.ExpiresAt),
		Clicks:       rec.Clicks,
		ClickHistory: rec.ClickHistory,
	}
}

// draftError translates registry validation failures into API errors.
func draftError(err error) error {
	var taken *link.AliasTakenError

	switch {
	case errors.As(err, &taken):
		return huma.Error409Conflict(taken.Error())
	case errors.Is(err, link.ErrInvalidAlias):
		return huma.Error400BadRequest(link.ErrInvalidAlias.Error())
	case errors.Is(err, link.ErrInvalidDestination):
		return huma.Error400BadRequest(link.ErrInvalidDestination.Error())
	case errors.Is(err, link.ErrNotFound):
		return huma.Error404NotFound("link not found")
	default:
		return huma.Error500InternalServerError("failed to save link")
	}
}

// ListLinks returns the whole collection, newest first.
func (h *LinkHandler) ListLinks(_ context.Context, _ *struct{}) (*ListLinksResponse, error) {
	links := h.registry.Links()

	resp := &ListLinksResponse{}
	resp.Body.Links = make([]LinkView, 0, len(links))

	for _, rec := range links {
		resp.Body.Links = append(resp.Body.Links, h.view(rec))
	}

	return resp, nil
}

// CreateLink creates a short link from a draft.
func (h *LinkHandler) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	rec, err := h.registry.Create(ctx, link.Draft{
		OriginalURL: req.Body.OriginalURL,
		Alias:       req.Body.Alias,
		ExpiryDays:  req.Body.ExpiryDays,
	})
	if err != nil {
		return nil, draftError(err)
	}

	event := &analytics.LinkCreatedEvent{
		LinkID:      rec.ID,
		Alias:       rec.Alias,
		OriginalURL: rec.OriginalURL,
		ExpiresAt:   rec.ExpiresAt,
		CreatedAt:   rec.CreatedAt,
	}

	if err := h.publishCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("alias", rec.Alias),
			zap.Error(err),
		)
	}

	return &CreateLinkResponse{Body: h.view(*rec)}, nil
}

// EditLink updates alias, destination, or expiry of an existing link.
func (h *LinkHandler) EditLink(ctx context.Context, req *EditLinkRequest) (*EditLinkResponse, error) {
	rec, err := h.registry.Edit(ctx, req.ID, link.Draft{
		OriginalURL: req.Body.OriginalURL,
		Alias:       req.Body.Alias,
		ExpiryDays:  req.Body.ExpiryDays,
	})
	if err != nil {
		return nil, draftError(err)
	}

	return &EditLinkResponse{Body: h.view(*rec)}, nil
}

// DeleteLink removes a link. Deleting an absent id succeeds.
func (h *LinkHandler) DeleteLink(ctx context.Context, req *DeleteLinkRequest) (*struct{}, error) {
	rec, err := h.registry.Get(req.ID)
	if err != nil {
		// Already gone.
		return &struct{}{}, nil
	}

	h.registry.Delete(ctx, req.ID)

	event := &analytics.LinkDeletedEvent{
		LinkID:    rec.ID,
		Alias:     rec.Alias,
		DeletedAt: time.Now(),
	}

	if err := h.publishDeleted(event); err != nil {
		h.logger.Error("failed to publish link deleted event",
			zap.String("alias", rec.Alias),
			zap.Error(err),
		)
	}

	return &struct{}{}, nil
}

// FollowLink records a click and returns the destination for the caller to
// open. Expired links are refused before any click is recorded; resolution
// itself stays with the caller.
func (h *LinkHandler) FollowLink(ctx context.Context, req *FollowLinkRequest) (*FollowLinkResponse, error) {
	rec, err := h.registry.Get(req.ID)
	if err != nil {
		return nil, huma.Error404NotFound("link not found")
	}

	if expiry.IsExpired(rec.ExpiresAt) {
		return nil, huma.NewError(http.StatusGone, "link has expired and can no longer be opened")
	}

	updated := h.registry.RecordClick(ctx, req.ID)
	if updated == nil {
		return nil, huma.Error404NotFound("link not found")
	}

	last := updated.ClickHistory[len(updated.ClickHistory)-1]
	event := &analytics.LinkClickedEvent{
		LinkID:    updated.ID,
		Alias:     updated.Alias,
		Clicks:    updated.Clicks,
		ClickedAt: last,
	}

	if err := h.publishClicked(event); err != nil {
		h.logger.Error("failed to publish link clicked event",
			zap.String("alias", updated.Alias),
			zap.Error(err),
		)
	}

	resp := &FollowLinkResponse{}
	resp.Body.Destination = updated.OriginalURL
	resp.Body.Link = h.view(*updated)

	return resp, nil
}

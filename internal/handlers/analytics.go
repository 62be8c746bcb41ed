package handlers

import (
	"context"
	"time"

	"github.com/chotalink/chotalink/internal/analytics"
	"github.com/chotalink/chotalink/internal/link"
)

// AnalyticsHandler serves aggregated click metrics and the activity feed.
type AnalyticsHandler struct {
	registry *link.Registry
	feed     *analytics.Feed
	nowFunc  func() time.Time
}

// NewAnalyticsHandler creates an analytics handler.
func NewAnalyticsHandler(registry *link.Registry, feed *analytics.Feed) *AnalyticsHandler {
	return &AnalyticsHandler{
		registry: registry,
		feed:     feed,
		nowFunc:  time.Now,
	}
}

// GetAnalytics aggregates the current collection into the weekly series,
// summary metrics, and chart coordinates.
func (h *AnalyticsHandler) GetAnalytics(_ context.Context, _ *struct{}) (*AnalyticsResponse, error) {
	links := h.registry.Links()
	now := h.nowFunc()

	summary := analytics.Summarize(links, now)
	series := analytics.WeeklySeries(links, now)

	resp := &AnalyticsResponse{}
	resp.Body.TotalClicks = summary.TotalClicks
	resp.Body.ActiveLinks = summary.ActiveLinks
	resp.Body.Series = series
	resp.Body.Points = analytics.ChartPoints(series)

	return resp, nil
}

// GetActivity returns the recent-activity feed, newest first.
func (h *AnalyticsHandler) GetActivity(_ context.Context, _ *struct{}) (*ActivityResponse, error) {
	resp := &ActivityResponse{}
	resp.Body.Entries = h.feed.Entries()

	if resp.Body.Entries == nil {
		resp.Body.Entries = []analytics.Entry{}
	}

	return resp, nil
}

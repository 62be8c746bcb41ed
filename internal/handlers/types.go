package handlers

import (
	"time"

	"github.com/chotalink/chotalink/internal/analytics"
)

// LinkView is the API representation of a short link, with the derived
// short URL and expiry status alongside the stored fields.
type LinkView struct {
	ID           string      `doc:"Record identifier"                    json:"id"`
	OriginalURL  string      `doc:"Destination URL"                      json:"originalUrl"`
	Alias        string      `doc:"Short token following the base URL"   json:"alias"`
	ShortURL     string      `doc:"Full short URL"                       json:"shortUrl"`
	CreatedAt    time.Time   `doc:"Creation timestamp"                   json:"createdAt"`
	ExpiresAt    *time.Time  `doc:"Expiry timestamp, absent means never" json:"expiresAt,omitempty"`
	Expired      bool        `doc:"Whether the link is past its expiry"  json:"expired"`
	DaysLeft     *int        `doc:"Whole days until expiry"              json:"daysLeft,omitempty"`
	Clicks       int         `doc:"Total recorded clicks"                json:"clicks"`
	ClickHistory []time.Time `doc:"Timestamps of recorded clicks"        json:"clickHistory"`
}

// DraftBody is the request body shared by create and edit.
type DraftBody struct {
	OriginalURL string  `doc:"Destination URL; a missing scheme defaults to https" example:"example.com/campaign" json:"originalUrl,omitempty"`
	Alias       *string `doc:"Requested alias; omit to generate a random code"     example:"promo-sale"           json:"alias,omitempty"`
	ExpiryDays  *int    `doc:"Days until expiry; zero or negative clears expiry"   example:"7"                    json:"expiryDays,omitempty"`
}

// ListLinksResponse is the response for listing the collection.
type ListLinksResponse struct {
	Body struct {
		Links []LinkView `json:"links"`
	}
}

// CreateLinkRequest is the request for creating a short link.
type CreateLinkRequest struct {
	Body DraftBody
}

// CreateLinkResponse is the response for a successfully created link.
type CreateLinkResponse struct {
	Body LinkView
}

// EditLinkRequest is the request for editing an existing link.
type EditLinkRequest struct {
	ID   string `doc:"Record identifier" path:"id"`
	Body DraftBody
}

// EditLinkResponse is the response for a successful edit.
type EditLinkResponse struct {
	Body LinkView
}

// DeleteLinkRequest is the request for deleting a link.
type DeleteLinkRequest struct {
	ID string `doc:"Record identifier" path:"id"`
}

// FollowLinkRequest is the request for following a link.
type FollowLinkRequest struct {
	ID string `doc:"Record identifier" path:"id"`
}

// FollowLinkResponse carries the destination to open plus the post-click
// record, so the caller can navigate without re-reading anything.
type FollowLinkResponse struct {
	Body struct {
		Destination string   `doc:"URL the caller should open" json:"destination"`
		Link        LinkView `doc:"The record after the click" json:"link"`
	}
}

// AnalyticsResponse is the response for the analytics dashboard data.
type AnalyticsResponse struct {
	Body struct {
		TotalClicks int                   `doc:"Sum of clicks over all links"   json:"totalClicks"`
		ActiveLinks int                   `doc:"Links not yet expired"          json:"activeLinks"`
		Series      []analytics.DayBucket `doc:"Clicks per day, current week"   json:"series"`
		Points      []analytics.Point     `doc:"Series mapped to chart coords"  json:"points"`
	}
}

// ActivityResponse is the response for the recent-activity feed.
type ActivityResponse struct {
	Body struct {
		Entries []analytics.Entry `json:"entries"`
	}
}

// QRCodeRequest is the request for downloading a link's QR image.
type QRCodeRequest struct {
	ID     string `doc:"Record identifier"             path:"id"`
	Format string `doc:"Image format"                  enum:"png,svg" query:"format" default:"png"`
	Size   int    `doc:"Edge length in pixels for PNG" query:"size"   default:"256"`
}

// QRCodeResponse carries the rendered image, named after the alias for saving.
type QRCodeResponse struct {
	ContentType string `header:"Content-Type"`
	Disposition string `header:"Content-Disposition"`
	Body        []byte
}

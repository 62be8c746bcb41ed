package analytics

import "time"

// Topics for the in-process event stream.
const (
	TopicLinkCreated = "link.created"
	TopicLinkClicked = "link.clicked"
	TopicLinkDeleted = "link.deleted"
)

// LinkCreatedEvent is emitted when a short link is created.
type LinkCreatedEvent struct {
	LinkID      string     `json:"linkId"`
	Alias       string     `json:"alias"`
	OriginalURL string     `json:"originalUrl"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// LinkClickedEvent is emitted when a short link is followed.
type LinkClickedEvent struct {
	LinkID    string    `json:"linkId"`
	Alias     string    `json:"alias"`
	Clicks    int       `json:"clicks"`
	ClickedAt time.Time `json:"clickedAt"`
}

// LinkDeletedEvent is emitted when a short link is removed.
type LinkDeletedEvent struct {
	LinkID    string    `json:"linkId"`
	Alias     string    `json:"alias"`
	DeletedAt time.Time `json:"deletedAt"`
}

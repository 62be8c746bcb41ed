package link

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when an operation targets an id absent from the collection.
var ErrNotFound = errors.New("link not found")

// ErrInvalidAlias is returned when a requested alias normalizes to the empty string.
var ErrInvalidAlias = errors.New("alias must contain letters, numbers, or dashes")

// ErrInvalidDestination is returned when a destination URL fails validation.
var ErrInvalidDestination = errors.New("destination must be a valid http or https URL")

// AliasTakenError is returned when a normalized alias collides with another record.
type AliasTakenError struct {
	Alias string
}

func (e *AliasTakenError) Error() string {
	return fmt.Sprintf("alias %q is already in use", e.Alias)
}

// ShortLink is one shortened-link record.
type ShortLink struct {
	ID           string      `json:"id"`
	OriginalURL  string      `json:"originalUrl"`
	Alias        string      `json:"alias"`
	CreatedAt    time.Time   `json:"createdAt"`
	ExpiresAt    *time.Time  `json:"expiresAt,omitempty"`
	Clicks       int         `json:"clicks"`
	ClickHistory []time.Time `json:"clickHistory"`
}

// Draft is user-supplied input destined to become or update a ShortLink.
//
// Alias and ExpiryDays are pointers so an edit can distinguish "not provided"
// (leave the field unchanged) from an explicit empty alias or zero-day expiry.
type Draft struct {
	ID          string  `json:"id,omitempty"`
	OriginalURL string  `json:"originalUrl"`
	Alias       *string `json:"alias,omitempty"`
	ExpiryDays  *int    `json:"expiryDays,omitempty"`
}

package analytics

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/chotalink/chotalink/internal/messaging"
	"go.uber.org/zap"
)

// NewCreatedConsumer consumes link-created events into the activity feed.
func NewCreatedConsumer(subscriber message.Subscriber, feed *Feed, logger *zap.Logger) *messaging.Consumer[LinkCreatedEvent] {
	handler := func(_ context.Context, event *LinkCreatedEvent) error {
		feed.Add(Entry{
			Kind:   KindCreated,
			LinkID: event.LinkID,
			Alias:  event.Alias,
			At:     event.CreatedAt,
		})

		return nil
	}

	return messaging.NewConsumer(subscriber, TopicLinkCreated, handler, logger)
}

// NewClickedConsumer consumes link-clicked events into the activity feed.
func NewClickedConsumer(subscriber message.Subscriber, feed *Feed, logger *zap.Logger) *messaging.Consumer[LinkClickedEvent] {
	handler := func(_ context.Context, event *LinkClickedEvent) error {
		feed.Add(Entry{
			Kind:   KindClicked,
			LinkID: event.LinkID,
			Alias:  event.Alias,
			At:     event.ClickedAt,
		})

		return nil
	}

	return messaging.NewConsumer(subscriber, TopicLinkClicked, handler, logger)
}

// NewDeletedConsumer consumes link-deleted events into the activity feed.
func NewDeletedConsumer(subscriber message.Subscriber, feed *Feed, logger *zap.Logger) *messaging.Consumer[LinkDeletedEvent] {
	handler := func(_ context.Context, event *LinkDeletedEvent) error {
		feed.Add(Entry{
			Kind:   KindDeleted,
			LinkID: event.LinkID,
			Alias:  event.Alias,
			At:     event.DeletedAt,
		})

		return nil
	}

	return messaging.NewConsumer(subscriber, TopicLinkDeleted, handler, logger)
}

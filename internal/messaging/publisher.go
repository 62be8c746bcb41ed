// Package messaging wraps watermill with typed publish functions and a
// unified consumer lifecycle.
package messaging

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish sends a typed event to a fixed topic.
type Publish[T any] func(event *T) error

// NewPublishFunc binds a publisher and topic into a typed publish function.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		return publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
	}
}

// PublisherGroup owns the underlying publisher's lifecycle so typed publish
// functions can be handed out without each holding a Close.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup wraps a publisher.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher exposes the wrapped publisher for creating typed publish functions.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the wrapped publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}

// Package ports define the EventBus interface for event-driven communication.
// The event bus replaces media-element callbacks and keeps the core unaware of its publishers.
package ports

import (
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
//
// The playback monitor publishes lifecycle events, the visualization controller
// reacts to them, and the UI reports surface resizes the same way.
//
// Thread-safety: Implementations must be thread-safe as events may be published and
// subscribed from multiple goroutines simultaneously.
//
// Example usage:
//
//	subID := bus.Subscribe(domain.EventPlaybackStarted, func(event domain.Event) {
//	    e := event.(domain.PlaybackStartedEvent)
//	    controller.RequestLive(e.ElementID)
//	})
//
//	bus.Unsubscribe(subID)
type EventBus interface {
	// Publish publishes an event to all subscribers of that event type.
	// Handlers run synchronously in subscription order and must return quickly.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// Each subscription gets a unique SubscriptionID.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered event handler.
	// If the subscription ID is invalid or already unsubscribed, this is a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives all events regardless of type.
	// This is useful for logging and debugging.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers returns true if there are any active subscriptions for the given event type.
	HasSubscribers(eventType domain.EventType) bool

	// Close shuts down the event bus and cleans up resources.
	Close() error
}

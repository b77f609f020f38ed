// Package domain defines events for the event-driven architecture.
// Events let the playback glue, the controller and the UI stay decoupled.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Playback events (the only two the visualization core listens to)
	EventPlaybackStarted EventType = "playback.started"
	EventPlaybackStopped EventType = "playback.stopped"

	// Status display events
	EventPlaybackStatusChanged EventType = "playback.status_changed"

	// Visualization lifecycle events
	EventVisualizationStarted EventType = "visualization.started"
	EventVisualizationStopped EventType = "visualization.stopped"
	EventModeChanged          EventType = "visualization.mode_changed"

	// Render target events
	EventSurfaceResized EventType = "surface.resized"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// PlaybackStartedEvent is published when the audio element starts playing.
type PlaybackStartedEvent struct {
	baseEvent
	ElementID string
}

// Type returns the event type.
func (e PlaybackStartedEvent) Type() EventType {
	return EventPlaybackStarted
}

// NewPlaybackStartedEvent creates a new PlaybackStartedEvent.
func NewPlaybackStartedEvent(elementID string) PlaybackStartedEvent {
	return PlaybackStartedEvent{
		baseEvent: newBaseEvent(),
		ElementID: elementID,
	}
}

// PlaybackStoppedEvent is published when playback pauses, ends or fails.
type PlaybackStoppedEvent struct {
	baseEvent
	ElementID string
	Status    PlaybackStatus
}

// Type returns the event type.
func (e PlaybackStoppedEvent) Type() EventType {
	return EventPlaybackStopped
}

// NewPlaybackStoppedEvent creates a new PlaybackStoppedEvent.
func NewPlaybackStoppedEvent(elementID string, status PlaybackStatus) PlaybackStoppedEvent {
	return PlaybackStoppedEvent{
		baseEvent: newBaseEvent(),
		ElementID: elementID,
		Status:    status,
	}
}

// PlaybackStatusChangedEvent is published on every playback status change.
type PlaybackStatusChangedEvent struct {
	baseEvent
	ElementID string
	From      PlaybackStatus
	To        PlaybackStatus
}

// Type returns the event type.
func (e PlaybackStatusChangedEvent) Type() EventType {
	return EventPlaybackStatusChanged
}

// NewPlaybackStatusChangedEvent creates a new PlaybackStatusChangedEvent.
func NewPlaybackStatusChangedEvent(elementID string, from, to PlaybackStatus) PlaybackStatusChangedEvent {
	return PlaybackStatusChangedEvent{
		baseEvent: newBaseEvent(),
		ElementID: elementID,
		From:      from,
		To:        to,
	}
}

// VisualizationStartedEvent is published when the controller starts ticking.
type VisualizationStartedEvent struct {
	baseEvent
	Mode VisualizationMode
}

// Type returns the event type.
func (e VisualizationStartedEvent) Type() EventType {
	return EventVisualizationStarted
}

// NewVisualizationStartedEvent creates a new VisualizationStartedEvent.
func NewVisualizationStartedEvent(mode VisualizationMode) VisualizationStartedEvent {
	return VisualizationStartedEvent{
		baseEvent: newBaseEvent(),
		Mode:      mode,
	}
}

// VisualizationStoppedEvent is published when the tick chain ends.
type VisualizationStoppedEvent struct {
	baseEvent
	Reason error // nil on a requested stop
}

// Type returns the event type.
func (e VisualizationStoppedEvent) Type() EventType {
	return EventVisualizationStopped
}

// NewVisualizationStoppedEvent creates a new VisualizationStoppedEvent.
func NewVisualizationStoppedEvent(reason error) VisualizationStoppedEvent {
	return VisualizationStoppedEvent{
		baseEvent: newBaseEvent(),
		Reason:    reason,
	}
}

// ModeChangedEvent is published when the data source switches mode.
type ModeChangedEvent struct {
	baseEvent
	From   VisualizationMode
	To     VisualizationMode
	Reason error // why the switch happened when degrading
}

// Type returns the event type.
func (e ModeChangedEvent) Type() EventType {
	return EventModeChanged
}

// NewModeChangedEvent creates a new ModeChangedEvent.
func NewModeChangedEvent(from, to VisualizationMode, reason error) ModeChangedEvent {
	return ModeChangedEvent{
		baseEvent: newBaseEvent(),
		From:      from,
		To:        to,
		Reason:    reason,
	}
}

// SurfaceResizedEvent is published when the canvas container changes size.
type SurfaceResizedEvent struct {
	baseEvent
	Size Size
}

// Type returns the event type.
func (e SurfaceResizedEvent) Type() EventType {
	return EventSurfaceResized
}

// NewSurfaceResizedEvent creates a new SurfaceResizedEvent.
func NewSurfaceResizedEvent(size Size) SurfaceResizedEvent {
	return SurfaceResizedEvent{
		baseEvent: newBaseEvent(),
		Size:      size,
	}
}

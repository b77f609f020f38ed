// Package fyne provides Fyne UI adapter implementations.
// This package implements the UI layer using the Fyne toolkit.
package fyne

import (
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

// UIView defines the interface for UI updates.
// The actual UI implementation (MainWindow) must implement this interface.
type UIView interface {
	// SetPlayState updates the play/pause button.
	SetPlayState(playing bool)

	// SetStatus shows the stream status.
	SetStatus(status domain.PlaybackStatus)

	// SetMode shows whether the spectrum is live or simulated.
	SetMode(mode domain.VisualizationMode)
}

// PlayerControls is the part of the audio element the UI drives.
type PlayerControls interface {
	Play()
	Pause()
	Paused() bool
}

// StatusSource reports the playback status.
type StatusSource interface {
	Status() domain.PlaybackStatus
}

// Presenter coordinates the event bus, the player and the view (MVP).
//
// It only reflects state: visualization decisions stay with the controller.
//
// Thread-safety: event handlers may run on any goroutine; the view is
// expected to marshal updates onto the UI thread itself.
type Presenter struct {
	// Dependencies
	logger *slog.Logger
	bus    ports.EventBus
	player PlayerControls
	status StatusSource
	view   UIView

	subs         []domain.SubscriptionID
	mu           sync.Mutex
	shutdownOnce sync.Once
}

// NewPresenter creates a presenter and subscribes it to the bus.
func NewPresenter(
	logger *slog.Logger,
	bus ports.EventBus,
	player PlayerControls,
	status StatusSource,
	view UIView,
) *Presenter {
	p := &Presenter{
		logger: logger.With(slog.String("component", "presenter")),
		bus:    bus,
		player: player,
		status: status,
		view:   view,
	}

	p.subscribeToEvents()
	p.syncInitialState()

	return p
}

// subscribeToEvents subscribes to all relevant events from the event bus.
func (p *Presenter) subscribeToEvents() {
	subscriptions := map[domain.EventType]domain.EventHandler{
		domain.EventPlaybackStarted:       p.onPlaybackChanged,
		domain.EventPlaybackStopped:       p.onPlaybackChanged,
		domain.EventPlaybackStatusChanged: p.onStatusChanged,
		domain.EventModeChanged:           p.onModeChanged,
		domain.EventVisualizationStarted:  p.onVisualizationStarted,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for eventType, handler := range subscriptions {
		p.subs = append(p.subs, p.bus.Subscribe(eventType, handler))
	}
}

// syncInitialState synchronizes the view with the current player state.
func (p *Presenter) syncInitialState() {
	p.view.SetPlayState(!p.player.Paused())
	p.view.SetStatus(p.status.Status())
	p.view.SetMode(domain.ModeSimulated)
}

func (p *Presenter) onPlaybackChanged(domain.Event) {
	p.view.SetPlayState(!p.player.Paused())
	p.view.SetStatus(p.status.Status())
}

func (p *Presenter) onStatusChanged(event domain.Event) {
	e, ok := event.(domain.PlaybackStatusChangedEvent)
	if !ok {
		return
	}
	p.view.SetStatus(e.To)
}

func (p *Presenter) onModeChanged(event domain.Event) {
	e, ok := event.(domain.ModeChangedEvent)
	if !ok {
		return
	}
	if e.Reason != nil {
		p.logger.Info("spectrum fell back to simulated", slog.Any("reason", e.Reason))
	}
	p.view.SetMode(e.To)
}

func (p *Presenter) onVisualizationStarted(event domain.Event) {
	e, ok := event.(domain.VisualizationStartedEvent)
	if !ok {
		return
	}
	p.view.SetMode(e.Mode)
}

// OnPlayClicked toggles playback.
func (p *Presenter) OnPlayClicked() {
	if p.player.Paused() {
		p.logger.Debug("play requested")
		p.player.Play()
		return
	}
	p.logger.Debug("pause requested")
	p.player.Pause()
}

// Shutdown unsubscribes from the bus. Safe to call multiple times.
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for _, id := range p.subs {
			p.bus.Unsubscribe(id)
		}
		p.subs = nil
	})
}

package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

// PlaybackMonitor tracks the lifecycle of an audio element.
//
// It consumes every media signal the element raises, keeps the resulting
// PlaybackStatus for status displays, and publishes only two events to the
// visualization core: playback.started on entering Playing and
// playback.stopped on leaving it. Status displays follow
// playback.status_changed, published on every transition.
//
// With EnableRetry, entering Error reloads the element after a delay.
type PlaybackMonitor struct {
	logger    *slog.Logger
	bus       ports.EventBus
	elementID string

	status domain.PlaybackStatus

	retryDelay time.Duration
	reload     func()
	retryTimer *time.Timer
	closed     bool

	mu sync.RWMutex
}

// NewPlaybackMonitor creates a monitor for the element with the given ID.
func NewPlaybackMonitor(logger *slog.Logger, bus ports.EventBus, elementID string) *PlaybackMonitor {
	return &PlaybackMonitor{
		logger:    logger.With(slog.String("component", "playback"), slog.String("element", elementID)),
		bus:       bus,
		elementID: elementID,
		status:    domain.StatusIdle,
	}
}

// EnableRetry makes the monitor call reload delay after every error.
func (m *PlaybackMonitor) EnableRetry(delay time.Duration, reload func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retryDelay = delay
	m.reload = reload
}

// Close cancels a pending retry. Later errors are not retried.
func (m *PlaybackMonitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.stopRetryLocked()
}

// Handle applies a media signal. Unknown signals are ignored.
func (m *PlaybackMonitor) Handle(signal domain.MediaSignal) {
	m.mu.Lock()
	prev := m.status
	next := transition(prev, signal)
	m.status = next
	if next != prev && next == domain.StatusError {
		m.scheduleRetryLocked()
	}
	m.mu.Unlock()

	if next == prev {
		return
	}

	m.logger.Debug("playback status changed",
		slog.String("signal", string(signal)),
		slog.String("from", prev.String()),
		slog.String("to", next.String()))

	switch {
	case next == domain.StatusPlaying:
		m.bus.Publish(domain.NewPlaybackStartedEvent(m.elementID))
	case prev == domain.StatusPlaying:
		m.bus.Publish(domain.NewPlaybackStoppedEvent(m.elementID, next))
	}
	m.bus.Publish(domain.NewPlaybackStatusChangedEvent(m.elementID, prev, next))
}

func (m *PlaybackMonitor) scheduleRetryLocked() {
	if m.reload == nil || m.closed {
		return
	}
	m.stopRetryLocked()

	reload := m.reload
	m.retryTimer = time.AfterFunc(m.retryDelay, func() {
		m.mu.Lock()
		cancelled := m.closed
		m.mu.Unlock()
		if cancelled {
			return
		}
		m.logger.Info("reloading after playback error")
		reload()
	})
	m.logger.Debug("playback retry scheduled", slog.Duration("delay", m.retryDelay))
}

func (m *PlaybackMonitor) stopRetryLocked() {
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
}

// Status returns the current playback status.
func (m *PlaybackMonitor) Status() domain.PlaybackStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// transition returns the status after signal.
// Buffering while playing stays Playing: the element resumes on its own.
func transition(current domain.PlaybackStatus, signal domain.MediaSignal) domain.PlaybackStatus {
	switch signal {
	case domain.SignalLoadStart:
		return domain.StatusConnecting
	case domain.SignalLoadedData, domain.SignalCanPlay:
		if current == domain.StatusPlaying || current == domain.StatusPaused {
			return current
		}
		return domain.StatusReady
	case domain.SignalPlay:
		return domain.StatusPlaying
	case domain.SignalPause:
		if current == domain.StatusEnded || current == domain.StatusError {
			return current
		}
		return domain.StatusPaused
	case domain.SignalEnded:
		return domain.StatusEnded
	case domain.SignalError:
		return domain.StatusError
	case domain.SignalStalled, domain.SignalWaiting:
		if current == domain.StatusPlaying {
			return current
		}
		return domain.StatusConnecting
	default:
		return current
	}
}

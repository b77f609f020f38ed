package fyne

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tejashwikalptaru/livespectrum/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/logger"
)

type fakeView struct {
	mu      sync.Mutex
	playing bool
	status  domain.PlaybackStatus
	mode    domain.VisualizationMode
}

func (v *fakeView) SetPlayState(playing bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = playing
}

func (v *fakeView) SetStatus(status domain.PlaybackStatus) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = status
}

func (v *fakeView) SetMode(mode domain.VisualizationMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = mode
}

type fakePlayer struct {
	paused bool
}

func (p *fakePlayer) Play()        { p.paused = false }
func (p *fakePlayer) Pause()       { p.paused = true }
func (p *fakePlayer) Paused() bool { return p.paused }

type fakeStatus struct {
	status domain.PlaybackStatus
}

func (s *fakeStatus) Status() domain.PlaybackStatus { return s.status }

func newTestPresenter() (*Presenter, *fakeView, *fakePlayer, *fakeStatus, *eventbus.SyncEventBus) {
	bus := eventbus.NewSyncEventBus()
	view := &fakeView{}
	player := &fakePlayer{paused: true}
	status := &fakeStatus{status: domain.StatusReady}
	p := NewPresenter(logger.NewTestLogger(), bus, player, status, view)
	return p, view, player, status, bus
}

func TestPresenter_InitialState(t *testing.T) {
	p, view, _, _, _ := newTestPresenter()
	defer p.Shutdown()

	assert.False(t, view.playing)
	assert.Equal(t, domain.StatusReady, view.status)
	assert.Equal(t, domain.ModeSimulated, view.mode)
}

func TestPresenter_PlayToggle(t *testing.T) {
	p, _, player, _, _ := newTestPresenter()
	defer p.Shutdown()

	p.OnPlayClicked()
	assert.False(t, player.paused)

	p.OnPlayClicked()
	assert.True(t, player.paused)
}

func TestPresenter_PlaybackEvents(t *testing.T) {
	p, view, player, status, bus := newTestPresenter()
	defer p.Shutdown()

	player.paused = false
	status.status = domain.StatusPlaying
	bus.Publish(domain.NewPlaybackStartedEvent("radio"))
	assert.True(t, view.playing)
	assert.Equal(t, domain.StatusPlaying, view.status)

	player.paused = true
	status.status = domain.StatusPaused
	bus.Publish(domain.NewPlaybackStoppedEvent("radio", domain.StatusPaused))
	assert.False(t, view.playing)
	assert.Equal(t, domain.StatusPaused, view.status)
}

func TestPresenter_StatusBeforePlayback(t *testing.T) {
	p, view, _, status, bus := newTestPresenter()
	defer p.Shutdown()

	status.status = domain.StatusIdle
	bus.Publish(domain.NewPlaybackStatusChangedEvent("radio", domain.StatusIdle, domain.StatusConnecting))
	assert.Equal(t, domain.StatusConnecting, view.status)

	bus.Publish(domain.NewPlaybackStatusChangedEvent("radio", domain.StatusConnecting, domain.StatusReady))
	assert.Equal(t, domain.StatusReady, view.status)
	assert.False(t, view.playing)
}

func TestPresenter_ModeEvents(t *testing.T) {
	p, view, _, _, bus := newTestPresenter()
	defer p.Shutdown()

	bus.Publish(domain.NewModeChangedEvent(domain.ModeSimulated, domain.ModeLive, nil))
	assert.Equal(t, domain.ModeLive, view.mode)

	bus.Publish(domain.NewModeChangedEvent(domain.ModeLive, domain.ModeSimulated, errors.New("tap closed")))
	assert.Equal(t, domain.ModeSimulated, view.mode)
}

func TestPresenter_Shutdown(t *testing.T) {
	p, view, _, _, bus := newTestPresenter()

	p.Shutdown()
	p.Shutdown()

	bus.Publish(domain.NewModeChangedEvent(domain.ModeSimulated, domain.ModeLive, nil))
	assert.Equal(t, domain.ModeSimulated, view.mode)
	assert.Equal(t, 0, bus.SubscriberCount())
}

package fyne

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tejashwikalptaru/livespectrum/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/livespectrum/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/logger"
)

func TestMainWindow_ReflectsPresenter(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	bus := eventbus.NewSyncEventBus()
	w := NewMainWindow(app, widgets.NewBarStrip(8, BarColor), widgets.NewSpectrumCanvas(bus, CanvasBackdrop))
	defer w.Close()

	player := &fakePlayer{paused: true}
	status := &fakeStatus{status: domain.StatusReady}
	p := NewPresenter(logger.NewTestLogger(), bus, player, status, w)
	defer p.Shutdown()
	w.SetPresenter(p)

	assert.Equal(t, "ready", w.StatusText())
	assert.Equal(t, "simulated", w.ModeText())

	test.Tap(w.playButton)
	assert.False(t, player.paused)

	bus.Publish(domain.NewModeChangedEvent(domain.ModeSimulated, domain.ModeLive, nil))
	assert.Equal(t, "live", w.ModeText())
}

func TestMainWindow_Menu(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	bus := eventbus.NewSyncEventBus()
	w := NewMainWindow(app, widgets.NewBarStrip(4, BarColor), widgets.NewSpectrumCanvas(bus, CanvasBackdrop))
	defer w.Close()

	menu := w.GetWindow().MainMenu()
	if assert.NotNil(t, menu) && assert.Len(t, menu.Items, 2) {
		assert.Equal(t, "Stream", menu.Items[0].Label)
		assert.Equal(t, "Help", menu.Items[1].Label)
	}

	// Opening the About dialog must not panic without a presenter
	assert.NotPanics(t, w.showAbout)
}

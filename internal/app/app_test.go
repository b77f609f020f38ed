package app

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	config := DefaultConfig()
	config.UseMockAudio = true // no speaker in tests
	config.TestFyneApp = test.NewApp()

	app, err := NewApplication(config)
	require.NoError(t, err)
	require.NotNil(t, app)
	return app
}

func TestNewApplication(t *testing.T) {
	app := newTestApplication(t)

	assert.NotNil(t, app.GetController())
	assert.NotNil(t, app.GetEventBus())
	assert.NotNil(t, app.GetFyneApp())
	assert.NotNil(t, app.GetPresenter())

	assert.Equal(t, domain.StateIdle, app.GetController().State())
	assert.Equal(t, domain.ModeSimulated, app.GetController().Mode())

	assert.NoError(t, app.Shutdown())
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "com.livespectrum.app", config.AppID)
	assert.Equal(t, "Live Spectrum", config.AppName)
	assert.NotEmpty(t, config.ToneFrequencies)
	assert.Positive(t, config.OutputBuffer)
	assert.Equal(t, 2*time.Second, config.RetryDelay)
	assert.False(t, config.UseMockAudio)
}

func TestApplicationLifecycle(t *testing.T) {
	app := newTestApplication(t)

	// Run would normally block, but we're not calling it in test

	assert.NoError(t, app.Shutdown())

	// Shutdown again should not panic
	assert.NoError(t, app.Shutdown())
}

func TestApplicationUsesStoredSettings(t *testing.T) {
	fyneApp := test.NewApp()
	prefs := fyneApp.Preferences()
	prefs.SetInt("visualizer.bar_count", 24)
	prefs.SetInt("visualizer.window_size", 1024)

	config := DefaultConfig()
	config.UseMockAudio = true
	config.TestFyneApp = fyneApp

	app, err := NewApplication(config)
	require.NoError(t, err)
	defer app.Shutdown()

	assert.Equal(t, 24, app.Settings().BarCount)
	assert.Equal(t, 1024, app.Settings().WindowSize)
}

func TestApplicationInvalidStoredSettingsFallBack(t *testing.T) {
	fyneApp := test.NewApp()
	fyneApp.Preferences().SetInt("visualizer.window_size", 1000)

	config := DefaultConfig()
	config.UseMockAudio = true
	config.TestFyneApp = fyneApp

	app, err := NewApplication(config)
	require.NoError(t, err)
	defer app.Shutdown()

	assert.Equal(t, domain.DefaultVisualizerSettings(), app.Settings())
}

func TestApplicationPlayToggleReachesMonitor(t *testing.T) {
	app := newTestApplication(t)
	defer app.Shutdown()

	app.element.Load()
	assert.Equal(t, domain.StatusReady, app.monitor.Status())
	assert.Equal(t, domain.StatusReady.String(), app.mainWindow.StatusText())

	app.GetPresenter().OnPlayClicked()
	assert.Equal(t, domain.StatusPlaying, app.monitor.Status())

	app.GetPresenter().OnPlayClicked()
	assert.Equal(t, domain.StatusPaused, app.monitor.Status())
}

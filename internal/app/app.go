// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/tejashwikalptaru/livespectrum/internal/adapter/audio/beep"
	"github.com/tejashwikalptaru/livespectrum/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/livespectrum/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/livespectrum/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/livespectrum/internal/adapter/scheduler"
	fyneui "github.com/tejashwikalptaru/livespectrum/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/livespectrum/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/logger"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
	"github.com/tejashwikalptaru/livespectrum/internal/render"
	"github.com/tejashwikalptaru/livespectrum/internal/service"
)

// elementID names the single audio element of the player.
const elementID = "radio"

// player is the audio element as the application drives it.
type player interface {
	ports.AudioElement
	fyneui.PlayerControls
	Load()
}

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App

	// Infrastructure
	eventBus  *eventbus.SyncEventBus
	scheduler *scheduler.TimerScheduler
	host      ports.AnalysisHost
	element   player
	output    *beep.Output

	// Repositories
	settingsRepo ports.SettingsRepository
	settings     domain.VisualizerSettings

	// Services
	monitor    *service.PlaybackMonitor
	controller *service.VisualizationController

	// UI
	bars       *widgets.BarStrip
	spectrum   *widgets.SpectrumCanvas
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow

	shutdownOnce sync.Once
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// AppName is the display name
	AppName string

	// UseMockAudio replaces the speaker pipeline with the in-memory host (for testing)
	UseMockAudio bool

	// ToneFrequencies are the partials (Hz) of the built-in test signal
	ToneFrequencies []float64

	// OutputBuffer is the speaker latency
	OutputBuffer time.Duration

	// RetryDelay is how long after a playback error the stream is reloaded
	RetryDelay time.Duration

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// LogFormat is "text" or "json"
	LogFormat string

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:           "com.livespectrum.app",
		AppName:         fyneui.APPNAME,
		UseMockAudio:    false,
		ToneFrequencies: []float64{55, 220, 440, 880},
		OutputBuffer:    100 * time.Millisecond,
		RetryDelay:      2 * time.Second,
		LogLevel:        loggerCfg.Level,
		LogFormat:       loggerCfg.Format,
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	app := &Application{}

	// Step 1: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 2: Create logger
	app.logger = logger.NewLogger(logger.Config{
		Level:  config.LogLevel,
		Format: config.LogFormat,
	})
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("app_name", config.AppName),
		slog.String("version", GetVersionInfo().FullString()))

	// Step 3: Create an event bus
	app.eventBus = eventbus.NewSyncEventBus()
	app.eventBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))

	// Step 4: Load settings
	app.settingsRepo = memory.NewSettingsRepository(app.fyneApp.Preferences())
	settings, err := app.settingsRepo.LoadSettings()
	if err != nil {
		// Non-fatal - LoadSettings falls back to defaults
		app.logger.Warn("stored settings rejected, using defaults", slog.Any("error", err))
	}
	app.settings = settings

	// Step 5: Create the audio pipeline
	if err := app.createAudio(config); err != nil {
		return nil, err
	}

	// Step 6: Playback glue
	app.monitor = service.NewPlaybackMonitor(
		app.logger.With(slog.String("service", "playback")),
		app.eventBus,
		app.element.ID(),
	)
	app.monitor.EnableRetry(config.RetryDelay, app.element.Load)
	switch el := app.element.(type) {
	case *beep.Element:
		el.OnSignal(app.monitor.Handle)
	case *mock.Element:
		el.OnSignal(app.monitor.Handle)
	}

	// Step 7: Create UI targets
	app.bars = widgets.NewBarStrip(settings.BarCount, fyneui.BarColor)
	app.spectrum = widgets.NewSpectrumCanvas(app.eventBus, fyneui.CanvasBackdrop)
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp, app.bars, app.spectrum)

	// Step 8: Frame scheduler and controller
	app.scheduler = scheduler.NewTimerScheduler(
		app.logger.With(slog.String("component", "scheduler")),
		settings.FrameInterval,
		fyne.Do,
	)

	app.controller, err = service.NewVisualizationController(
		app.logger,
		app.eventBus,
		app.scheduler,
		app.host,
		app.element,
		service.RenderTargets{
			Bars:      app.bars,
			Surface:   app.spectrum.Surface(),
			Container: app.spectrum.Container(),
		},
		settings,
		render.DefaultTuning(),
	)
	if err != nil {
		app.scheduler.Close()
		app.closeAudio()
		return nil, fmt.Errorf("failed to create visualization controller: %w", err)
	}

	// Step 9: Create Presenter and wire with UI
	app.presenter = fyneui.NewPresenter(
		app.logger,
		app.eventBus,
		app.element,
		app.monitor,
		app.mainWindow,
	)
	app.mainWindow.SetPresenter(app.presenter)
	app.mainWindow.SetOnClosed(app.spectrum.Unmount)

	return app, nil
}

// createAudio builds either the speaker pipeline or the in-memory one.
func (a *Application) createAudio(config Config) error {
	if config.UseMockAudio {
		host := mock.NewHost()
		host.SetLogger(a.logger.With(slog.String("host", "mock")))
		host.SetTone(config.ToneFrequencies...)
		a.host = host
		a.element = mock.NewElement(elementID)
		return nil
	}

	format := beep.DefaultFormat
	source, err := beep.NewTestSignal(format, config.ToneFrequencies...)
	if err != nil {
		return fmt.Errorf("failed to create test signal: %w", err)
	}

	element := beep.NewElement(elementID, source, format)
	element.SetLogger(a.logger.With(slog.String("element", elementID)))

	output, err := beep.NewOutput(a.logger.With(slog.String("component", "speaker")), format, config.OutputBuffer)
	if err != nil {
		return fmt.Errorf("failed to initialize audio output: %w", err)
	}
	output.Play(element)

	a.host = beep.NewAnalysisHost(a.logger.With(slog.String("host", "beep")), a.settings.WindowSize*2)
	a.element = element
	a.output = output
	return nil
}

func (a *Application) closeAudio() {
	if a.output != nil {
		a.output.Close()
	}
}

// Run starts the visualization and shows the window.
// This is called from main.go after the application is created.
func (a *Application) Run() {
	a.logger.Info("Live Spectrum started",
		slog.String("mode", a.controller.Mode().String()))

	a.controller.Start()
	a.element.Load()

	// Show and run UI (blocks until the window is closed)
	a.mainWindow.ShowAndRun()
}

// Shutdown gracefully shuts down the application.
// Calling it more than once is safe.
func (a *Application) Shutdown() error {
	var errs []error

	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		if err := a.settingsRepo.SaveSettings(a.settings); err != nil {
			errs = append(errs, fmt.Errorf("save settings: %w", err))
		}

		// Reverse order of creation
		a.controller.Stop()
		a.scheduler.Close()
		a.presenter.Shutdown()
		a.monitor.Close()
		a.closeAudio()

		if err := a.eventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}

		a.logger.Info("application shutdown complete")
	})

	return errors.Join(errs...)
}

// GetController returns the visualization controller.
func (a *Application) GetController() *service.VisualizationController {
	return a.controller
}

// GetEventBus returns the event bus.
func (a *Application) GetEventBus() ports.EventBus {
	return a.eventBus
}

// GetFyneApp returns the Fyne application.
func (a *Application) GetFyneApp() fyne.App {
	return a.fyneApp
}

// GetPresenter returns the presenter.
func (a *Application) GetPresenter() *fyneui.Presenter {
	return a.presenter
}

// Settings returns the settings the application was built with.
func (a *Application) Settings() domain.VisualizerSettings {
	return a.settings
}

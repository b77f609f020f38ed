// Package service provides the orchestration logic of the live spectrum player.
package service

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/livespectrum/internal/analysis"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
	"github.com/tejashwikalptaru/livespectrum/internal/render"
)

// RenderTargets are the page-owned outputs the controller draws into.
// Container is optional; without it the surface keeps the size it was given.
type RenderTargets struct {
	Bars      ports.BarTarget
	Surface   ports.DrawingSurface
	Container ports.Container
}

// VisualizationController owns the data source and the animation loop.
//
// Every tick pulls exactly one snapshot and hands that same snapshot to the
// bar renderer and then the ring renderer before the next tick is requested.
// Only one tick is ever pending, whichever mode is active.
//
// Thread-safety: all methods are safe for concurrent use. Scheduler callbacks
// and bus handlers serialize on the controller's lock.
type VisualizationController struct {
	// Dependencies (injected)
	logger    *slog.Logger
	bus       ports.EventBus
	scheduler ports.FrameScheduler
	host      ports.AnalysisHost
	element   ports.AudioElement
	targets   RenderTargets
	settings  domain.VisualizerSettings
	tuning    render.Tuning

	bars  *render.BarRenderer
	rings *render.RingRenderer

	// State
	state     domain.ControllerState
	mode      domain.VisualizationMode
	source    ports.FrequencySource
	simulated *analysis.SimulatedSource
	live      *analysis.LiveSource
	liveErr   error // set once live analysis failed; no retry afterwards

	livePending bool
	liveDueAt   time.Time

	pending    ports.FrameRequest
	generation uint64
	ticks      uint64
	subs       []domain.SubscriptionID

	mu sync.Mutex
}

// NewVisualizationController creates an idle controller in simulated mode.
// element may be nil when no audio element exists yet; see SetElement.
func NewVisualizationController(
	logger *slog.Logger,
	bus ports.EventBus,
	scheduler ports.FrameScheduler,
	host ports.AnalysisHost,
	element ports.AudioElement,
	targets RenderTargets,
	settings domain.VisualizerSettings,
	tuning render.Tuning,
) (*VisualizationController, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if scheduler == nil || targets.Bars == nil || targets.Surface == nil {
		return nil, domain.ErrNotInitialized
	}

	simulated := analysis.NewSimulatedSource(settings.Bins(), time.Now())

	c := &VisualizationController{
		logger:    logger.With(slog.String("component", "visualization")),
		bus:       bus,
		scheduler: scheduler,
		host:      host,
		element:   element,
		targets:   targets,
		settings:  settings,
		tuning:    tuning,
		bars:      render.NewBarRenderer(tuning),
		rings:     render.NewRingRenderer(tuning),
		state:     domain.StateIdle,
		mode:      domain.ModeSimulated,
		source:    simulated,
		simulated: simulated,
	}

	if settings.ForceSimulated {
		c.liveErr = domain.NewAnalysisError("connect", "", "live analysis disabled by settings", domain.ErrUnsupported)
	}

	c.logger.Debug("visualization controller initialized",
		slog.Int("bins", settings.Bins()),
		slog.Int("bars", targets.Bars.Len()))

	return c, nil
}

// SetElement sets the audio element live analysis attaches to.
func (c *VisualizationController) SetElement(element ports.AudioElement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.element = element
}

// Start begins the tick chain in the current mode.
// Starting an active or paused controller does nothing.
func (c *VisualizationController) Start() {
	c.mu.Lock()
	if c.state != domain.StateIdle {
		c.mu.Unlock()
		c.logger.Debug("start ignored, already running")
		return
	}

	c.state = domain.StateActive
	c.subscribe()
	c.requestTick()
	mode := c.mode
	c.mu.Unlock()

	c.logger.Info("visualization started", slog.String("mode", mode.String()))
	c.publish(domain.NewVisualizationStartedEvent(mode))
}

// Stop cancels the tick chain. No tick fires after Stop returns.
func (c *VisualizationController) Stop() {
	c.mu.Lock()
	if c.state == domain.StateIdle {
		c.mu.Unlock()
		return
	}
	c.stopLocked()
	c.mu.Unlock()

	c.logger.Info("visualization stopped")
	c.publish(domain.NewVisualizationStoppedEvent(nil))
}

func (c *VisualizationController) stopLocked() {
	c.state = domain.StateIdle
	c.cancelTick()
	c.livePending = false
	c.unsubscribe()
}

// RequestLive switches to live analysis immediately.
//
// Calling it again once live is a no-op apart from resuming a suspended tap,
// so the element is never connected twice. After a failed attempt the
// controller stays simulated and every later call returns that failure.
func (c *VisualizationController) RequestLive() error {
	c.mu.Lock()
	events, err := c.initLiveLocked()
	c.mu.Unlock()

	c.publish(events...)
	return err
}

func (c *VisualizationController) initLiveLocked() ([]domain.Event, error) {
	c.livePending = false

	if c.mode == domain.ModeLive {
		c.resumeTap()
		return nil, nil
	}
	if c.liveErr != nil {
		return nil, c.liveErr
	}
	if c.element == nil {
		return nil, domain.NewAnalysisError("connect", "", "no audio element", domain.ErrNoElement)
	}

	live, err := analysis.NewLiveSource(c.logger, c.host, c.element, c.settings)
	if errors.Is(err, domain.ErrAlreadyBound) {
		// Adopt the element's existing tap instead of creating a second one
		if tap, ok := c.host.Tap(c.element); ok {
			live, err = analysis.NewLiveSourceFromTap(c.logger, tap, c.element.ID(), c.settings)
		}
	}
	if err != nil {
		c.liveErr = err
		c.logger.Warn("live analysis unavailable, staying simulated", slog.Any("error", err))
		return nil, err
	}

	c.live = live
	c.source = live
	c.mode = domain.ModeLive
	c.resumeTap()

	c.logger.Info("visualization mode changed",
		slog.String("from", domain.ModeSimulated.String()),
		slog.String("to", domain.ModeLive.String()))

	return []domain.Event{domain.NewModeChangedEvent(domain.ModeSimulated, domain.ModeLive, nil)}, nil
}

// degradeLocked falls back to simulated data for the rest of the session.
func (c *VisualizationController) degradeLocked(reason error) domain.Event {
	c.liveErr = reason
	c.live = nil
	c.source = c.simulated
	c.mode = domain.ModeSimulated

	c.logger.Warn("live analysis failed, falling back to simulated", slog.Any("error", reason))

	return domain.NewModeChangedEvent(domain.ModeLive, domain.ModeSimulated, reason)
}

func (c *VisualizationController) resumeTap() {
	if c.live == nil {
		return
	}
	if tap := c.live.Tap(); tap.Suspended() {
		tap.Resume()
		c.logger.Debug("analysis tap resumed")
	}
}

// HandleResize applies a new container size to the drawing surface.
func (c *VisualizationController) HandleResize(size domain.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.targets.Surface.SetSize(size)
}

// Mode returns the active visualization mode.
func (c *VisualizationController) Mode() domain.VisualizationMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// State returns the lifecycle state.
func (c *VisualizationController) State() domain.ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Ticks returns how many ticks have rendered since creation.
func (c *VisualizationController) Ticks() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// requestTick schedules the next tick of the current generation.
func (c *VisualizationController) requestTick() {
	gen := c.generation
	c.pending = c.scheduler.RequestFrame(func(now time.Time) {
		c.tick(gen, now)
	})
}

// cancelTick invalidates the pending tick, including one already dispatched.
func (c *VisualizationController) cancelTick() {
	c.generation++
	if c.pending != 0 {
		c.scheduler.CancelFrame(c.pending)
		c.pending = 0
	}
}

func (c *VisualizationController) tick(gen uint64, now time.Time) {
	c.mu.Lock()
	if gen != c.generation || c.state != domain.StateActive {
		c.mu.Unlock()
		return
	}
	c.pending = 0
	c.ticks++

	var events []domain.Event

	c.syncSize()

	if c.livePending {
		if c.liveDueAt.IsZero() {
			c.liveDueAt = now.Add(c.settings.LiveInitDelay)
		}
		if !now.Before(c.liveDueAt) {
			initEvents, _ := c.initLiveLocked()
			events = append(events, initEvents...)
		}
	}

	snap, err := c.source.NextFrame(now)
	if err != nil {
		events = append(events, c.degradeLocked(err))
		snap, _ = c.source.NextFrame(now)
	}

	bass := render.ComputeBassEnvelope(snap.Frame, c.tuning)
	c.bars.Render(snap.Frame, bass, c.targets.Bars)

	if err := c.rings.Render(snap, c.targets.Surface); err != nil {
		c.stopLocked()
		c.mu.Unlock()

		c.logger.Warn("drawing surface unavailable, stopping visualization", slog.Any("error", err))
		events = append(events, domain.NewVisualizationStoppedEvent(err))
		c.publish(events...)
		return
	}

	c.requestTick()
	c.mu.Unlock()

	c.publish(events...)
}

// syncSize makes the surface follow its container before drawing.
func (c *VisualizationController) syncSize() {
	if c.targets.Container == nil {
		return
	}
	size := c.targets.Container.Size()
	if size != c.targets.Surface.Size() {
		c.targets.Surface.SetSize(size)
		c.logger.Debug("surface resized", slog.Int("width", size.Width), slog.Int("height", size.Height))
	}
}

func (c *VisualizationController) subscribe() {
	if c.bus == nil || len(c.subs) > 0 {
		return
	}
	c.subs = append(c.subs,
		c.bus.Subscribe(domain.EventPlaybackStarted, c.onPlaybackStarted),
		c.bus.Subscribe(domain.EventPlaybackStopped, c.onPlaybackStopped),
		c.bus.Subscribe(domain.EventSurfaceResized, c.onSurfaceResized),
	)
}

func (c *VisualizationController) unsubscribe() {
	for _, id := range c.subs {
		c.bus.Unsubscribe(id)
	}
	c.subs = nil
}

// onPlaybackStarted resumes a paused chain and arms the delayed live attempt.
func (c *VisualizationController) onPlaybackStarted(domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == domain.StatePaused {
		c.state = domain.StateActive
		c.requestTick()
		c.logger.Debug("visualization resumed")
	}

	switch {
	case c.mode == domain.ModeLive:
		c.resumeTap()
	case c.liveErr == nil && !c.livePending:
		c.livePending = true
		c.liveDueAt = time.Time{}
	}
}

// onPlaybackStopped pauses the live chain. Simulated mode keeps animating.
func (c *VisualizationController) onPlaybackStopped(domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.livePending = false

	if !c.settings.PauseOnStop || c.mode != domain.ModeLive || c.state != domain.StateActive {
		return
	}

	c.state = domain.StatePaused
	c.cancelTick()
	c.logger.Debug("visualization paused")
}

func (c *VisualizationController) onSurfaceResized(event domain.Event) {
	e, ok := event.(domain.SurfaceResizedEvent)
	if !ok {
		return
	}
	c.HandleResize(e.Size)
}

func (c *VisualizationController) publish(events ...domain.Event) {
	if c.bus == nil {
		return
	}
	for _, e := range events {
		c.bus.Publish(e)
	}
}

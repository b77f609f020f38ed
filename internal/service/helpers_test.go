package service

import (
	"image/color"
	"sync"
	"time"

	"github.com/tejashwikalptaru/livespectrum/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/livespectrum/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/logger"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
	"github.com/tejashwikalptaru/livespectrum/internal/render"
)

// manualScheduler fires frame callbacks only when the test says so.
type manualScheduler struct {
	mu           sync.Mutex
	next         ports.FrameRequest
	pending      map[ports.FrameRequest]ports.FrameCallback
	ignoreCancel bool
	requests     int
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{pending: make(map[ports.FrameRequest]ports.FrameCallback)}
}

func (s *manualScheduler) RequestFrame(cb ports.FrameCallback) ports.FrameRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.requests++
	s.pending[s.next] = cb
	return s.next
}

func (s *manualScheduler) CancelFrame(id ports.FrameRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ignoreCancel {
		delete(s.pending, id)
	}
}

// Fire runs every callback pending at call time and returns how many ran.
func (s *manualScheduler) Fire(now time.Time) int {
	s.mu.Lock()
	cbs := make([]ports.FrameCallback, 0, len(s.pending))
	for id, cb := range s.pending {
		cbs = append(cbs, cb)
		delete(s.pending, id)
	}
	s.mu.Unlock()

	for _, cb := range cbs {
		cb(now)
	}
	return len(cbs)
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

type countingBars struct {
	mu   sync.Mutex
	bars []domain.BarState
	sets int
}

func (b *countingBars) Len() int { return len(b.bars) }

func (b *countingBars) SetBar(i int, state domain.BarState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bars[i] = state
	b.sets++
}

func (b *countingBars) Sets() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sets
}

type fakeContainer struct {
	mu   sync.Mutex
	size domain.Size
}

func (c *fakeContainer) Size() domain.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *fakeContainer) Resize(size domain.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.size = size
}

type controllerFixture struct {
	controller *VisualizationController
	scheduler  *manualScheduler
	host       *mock.Host
	element    *mock.Element
	bus        *eventbus.SyncEventBus
	bars       *countingBars
	surface    *render.RasterSurface
	container  *fakeContainer
	events     []domain.Event
}

func newControllerFixture(settings domain.VisualizerSettings) *controllerFixture {
	f := &controllerFixture{
		scheduler: newManualScheduler(),
		host:      mock.NewHost(),
		element:   mock.NewElement("radio"),
		bus:       eventbus.NewSyncEventBus(),
		bars:      &countingBars{bars: make([]domain.BarState, settings.BarCount)},
		surface:   render.NewRasterSurface(domain.Size{Width: 120, Height: 90}, color.Black),
		container: &fakeContainer{size: domain.Size{Width: 120, Height: 90}},
	}
	f.host.SetTone(1000)

	f.bus.SubscribeAll(func(e domain.Event) {
		f.events = append(f.events, e)
	})

	controller, err := NewVisualizationController(
		logger.NewTestLogger(),
		f.bus,
		f.scheduler,
		f.host,
		f.element,
		RenderTargets{Bars: f.bars, Surface: f.surface, Container: f.container},
		settings,
		render.DefaultTuning(),
	)
	if err != nil {
		panic(err)
	}
	f.controller = controller
	return f
}

func (f *controllerFixture) eventsOf(eventType domain.EventType) []domain.Event {
	var out []domain.Event
	for _, e := range f.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Package mock provides in-memory implementations of the audio ports.
// This is used for testing the visualization core without a real audio pipeline.
package mock

import (
	"log/slog"
	"math"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

// Element is a mock audio element identified by name.
// Play and Pause only raise media signals; no audio flows.
type Element struct {
	id      string
	paused  bool
	handler func(domain.MediaSignal)
	mu      sync.Mutex
}

// NewElement creates a paused mock element.
func NewElement(id string) *Element {
	return &Element{id: id, paused: true}
}

// ID returns the element identifier.
func (e *Element) ID() string {
	return e.id
}

// OnSignal registers the handler receiving media signals.
func (e *Element) OnSignal(handler func(domain.MediaSignal)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = handler
}

// Load raises the signals of a source becoming playable.
func (e *Element) Load() {
	e.emit(domain.SignalLoadStart)
	e.emit(domain.SignalLoadedData)
	e.emit(domain.SignalCanPlay)
}

// Play un-pauses the element.
func (e *Element) Play() {
	e.mu.Lock()
	wasPaused := e.paused
	e.paused = false
	e.mu.Unlock()
	if wasPaused {
		e.emit(domain.SignalPlay)
	}
}

// Pause pauses the element.
func (e *Element) Pause() {
	e.mu.Lock()
	wasPaused := e.paused
	e.paused = true
	e.mu.Unlock()
	if !wasPaused {
		e.emit(domain.SignalPause)
	}
}

// Paused reports whether the element is paused.
func (e *Element) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Emit raises an arbitrary signal (for testing).
func (e *Element) Emit(signal domain.MediaSignal) {
	e.emit(signal)
}

func (e *Element) emit(signal domain.MediaSignal) {
	e.mu.Lock()
	handler := e.handler
	e.mu.Unlock()
	if handler != nil {
		handler(signal)
	}
}

// Host is a mock analysis host.
// It binds at most one tap per element and counts every connection attempt.
//
// Thread-safety: This implementation is thread-safe.
type Host struct {
	// Dependencies
	logger *slog.Logger

	taps         map[string]*Tap
	connectCalls int
	sampleRate   int
	tone         []float64 // frequencies (Hz) mixed into every tap
	mu           sync.RWMutex

	// Behavior configuration (for testing error scenarios)
	unsupported bool
	failConnect error
}

// NewHost creates a supported mock host producing silence at 44.1 kHz.
func NewHost() *Host {
	return &Host{
		taps:       make(map[string]*Tap),
		sampleRate: 44100,
	}
}

// SetLogger sets the logger for this host.
func (h *Host) SetLogger(logger *slog.Logger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logger = logger
}

// SetUnsupported makes the host report no real-time analysis (for testing).
func (h *Host) SetUnsupported(unsupported bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.unsupported = unsupported
}

// SetFailConnect makes Connect return err (for testing). nil restores normal behavior.
func (h *Host) SetFailConnect(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failConnect = err
}

// SetTone makes new taps produce a sum of sines at the given frequencies.
func (h *Host) SetTone(freqs ...float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tone = append([]float64(nil), freqs...)
}

// Supported reports whether analysis is available.
func (h *Host) Supported() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return !h.unsupported
}

// Connect binds a tap to element.
func (h *Host) Connect(element ports.AudioElement) (ports.SampleTap, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connectCalls++

	if h.unsupported {
		return nil, domain.ErrUnsupported
	}
	if h.failConnect != nil {
		return nil, h.failConnect
	}
	if _, bound := h.taps[element.ID()]; bound {
		return nil, domain.ErrAlreadyBound
	}

	tap := NewTap(h.sampleRate, h.tone...)
	h.taps[element.ID()] = tap

	if h.logger != nil {
		h.logger.Debug("mock tap connected", slog.String("element", element.ID()))
	}

	return tap, nil
}

// Tap returns the tap bound to element.
func (h *Host) Tap(element ports.AudioElement) (ports.SampleTap, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	tap, ok := h.taps[element.ID()]
	if !ok {
		return nil, false
	}
	return tap, true
}

// MockTap returns the concrete tap bound to element (for testing).
func (h *Host) MockTap(id string) *Tap {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.taps[id]
}

// ConnectCalls returns how many times Connect was called (for testing).
func (h *Host) ConnectCalls() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.connectCalls
}

// ActiveTaps returns the number of bound taps (for testing).
func (h *Host) ActiveTaps() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.taps)
}

// Tap is a mock sample tap producing a deterministic signal.
type Tap struct {
	sampleRate int
	tone       []float64
	offset     int
	reads      int
	closed     bool
	suspended  bool
	mu         sync.Mutex
}

// NewTap creates a tap producing a sum of sines at freqs (silence if none).
func NewTap(sampleRate int, freqs ...float64) *Tap {
	return &Tap{
		sampleRate: sampleRate,
		tone:       append([]float64(nil), freqs...),
	}
}

// SampleRate returns the tap sample rate.
func (t *Tap) SampleRate() int {
	return t.sampleRate
}

// Samples returns n samples and advances the signal by n.
func (t *Tap) Samples(n int) (*goaudio.FloatBuffer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, domain.ErrTapClosed
	}
	t.reads++

	data := make([]float64, n)
	if len(t.tone) > 0 {
		amp := 1 / float64(len(t.tone))
		for i := range data {
			x := float64(t.offset+i) / float64(t.sampleRate)
			for _, f := range t.tone {
				data[i] += amp * math.Sin(2*math.Pi*f*x)
			}
		}
	}
	if !t.suspended {
		t.offset += n
	}

	return &goaudio.FloatBuffer{
		Format: &goaudio.Format{NumChannels: 1, SampleRate: t.sampleRate},
		Data:   data,
	}, nil
}

// Suspended reports whether capture is suspended.
func (t *Tap) Suspended() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.suspended
}

// Resume restarts capture.
func (t *Tap) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.suspended = false
}

// Suspend pauses capture (for testing).
func (t *Tap) Suspend() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.suspended = true
}

// Close makes every later read fail with domain.ErrTapClosed (for testing).
func (t *Tap) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

// Reads returns how many times Samples succeeded (for testing).
func (t *Tap) Reads() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reads
}

// Verify interface implementations at compile time.
var (
	_ ports.AudioElement = (*Element)(nil)
	_ ports.AnalysisHost = (*Host)(nil)
	_ ports.SampleTap    = (*Tap)(nil)
)

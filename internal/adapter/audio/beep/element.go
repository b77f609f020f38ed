package beep

import (
	"log/slog"
	"sync"

	gobeep "github.com/gopxl/beep/v2"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

// SignalHandler receives the media signals raised by an Element.
type SignalHandler func(signal domain.MediaSignal)

// Element is a playable audio output: a source streamer behind a pause
// control, optionally followed by an analysis tap.
//
// Element is itself the streamer handed to the speaker. Its output stage can
// be swapped while playing, which is how a tap is attached after playback
// started.
//
// Thread-safety: all methods are safe for concurrent use.
type Element struct {
	id     string
	format gobeep.Format
	ctrl   *gobeep.Ctrl

	mu      sync.Mutex
	out     gobeep.Streamer
	tap     *Tap
	ended   bool
	handler SignalHandler
	logger  *slog.Logger
}

// NewElement creates a paused element playing source.
func NewElement(id string, source gobeep.Streamer, format gobeep.Format) *Element {
	ctrl := &gobeep.Ctrl{Streamer: source, Paused: true}
	return &Element{
		id:     id,
		format: format,
		ctrl:   ctrl,
		out:    ctrl,
	}
}

// SetLogger sets the logger for this element.
func (e *Element) SetLogger(logger *slog.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logger = logger
}

// OnSignal registers the handler receiving media signals.
func (e *Element) OnSignal(handler SignalHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = handler
}

// ID returns the element identifier.
func (e *Element) ID() string {
	return e.id
}

// Format returns the element's sample format.
func (e *Element) Format() gobeep.Format {
	return e.format
}

// Load announces the source as ready to play.
func (e *Element) Load() {
	e.emit(domain.SignalLoadStart)
	e.emit(domain.SignalLoadedData)
	e.emit(domain.SignalCanPlay)
}

// Play starts or resumes playback.
func (e *Element) Play() {
	e.mu.Lock()
	if e.ended || !e.ctrl.Paused {
		e.mu.Unlock()
		return
	}
	e.ctrl.Paused = false
	e.mu.Unlock()

	e.emit(domain.SignalPlay)
}

// Pause pauses playback. The element outputs silence while paused.
func (e *Element) Pause() {
	e.mu.Lock()
	if e.ctrl.Paused {
		e.mu.Unlock()
		return
	}
	e.ctrl.Paused = true
	e.mu.Unlock()

	e.emit(domain.SignalPause)
}

// Paused reports whether playback is paused.
func (e *Element) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.Paused
}

// Stream pulls from the current output stage.
// The lock is held so Play and Pause never race the speaker.
func (e *Element) Stream(samples [][2]float64) (int, bool) {
	e.mu.Lock()
	n, ok := e.out.Stream(samples)
	err := e.out.Err()
	e.mu.Unlock()

	if !ok {
		e.finish(err)
	}
	return n, ok
}

// Err returns the error of the current output stage.
func (e *Element) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.out.Err()
}

// finish raises ended or error once the source is drained.
func (e *Element) finish(err error) {
	e.mu.Lock()
	if e.ended {
		e.mu.Unlock()
		return
	}
	e.ended = true
	e.mu.Unlock()

	if err != nil {
		e.emit(domain.SignalError)
		return
	}
	e.emit(domain.SignalEnded)
}

// attach splices tap in after the pause control.
func (e *Element) attach(tap *Tap) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tap = tap
	e.out = tap
}

// boundTap returns the attached tap, or nil.
func (e *Element) boundTap() *Tap {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tap
}

func (e *Element) emit(signal domain.MediaSignal) {
	e.mu.Lock()
	handler := e.handler
	logger := e.logger
	e.mu.Unlock()

	if logger != nil {
		logger.Debug("media signal", slog.String("element", e.id), slog.String("signal", string(signal)))
	}
	if handler != nil {
		handler(signal)
	}
}

// Verify interface implementations at compile time.
var (
	_ gobeep.Streamer    = (*Element)(nil)
	_ ports.AudioElement = (*Element)(nil)
)

package beep

import (
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

// AnalysisHost attaches analysis taps to beep elements.
// Each element is tapped at most once.
type AnalysisHost struct {
	logger     *slog.Logger
	bufferSize int

	mu    sync.Mutex
	bound map[string]*Element
}

// NewAnalysisHost creates a host whose taps keep bufferSize samples.
func NewAnalysisHost(logger *slog.Logger, bufferSize int) *AnalysisHost {
	if bufferSize < domain.MinWindowSize {
		bufferSize = domain.MinWindowSize
	}
	return &AnalysisHost{
		logger:     logger,
		bufferSize: bufferSize,
		bound:      make(map[string]*Element),
	}
}

// Supported always returns true: every beep pipeline can be tapped.
func (h *AnalysisHost) Supported() bool {
	return true
}

// Connect splices a new tap into element's pipeline.
//
// Only elements created by this package can be tapped; others yield
// domain.ErrUnsupported. A second call for the same element yields
// domain.ErrAlreadyBound and leaves the existing tap in place. A paused
// element gets a suspended tap.
func (h *AnalysisHost) Connect(element ports.AudioElement) (ports.SampleTap, error) {
	e, ok := element.(*Element)
	if !ok || e == nil {
		return nil, domain.ErrUnsupported
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, bound := h.bound[e.ID()]; bound || e.boundTap() != nil {
		return nil, domain.ErrAlreadyBound
	}

	e.mu.Lock()
	tap := NewTap(e.out, e.format.SampleRate, h.bufferSize)
	tap.suspended = e.ctrl.Paused
	e.mu.Unlock()

	e.attach(tap)
	h.bound[e.ID()] = e

	h.logger.Info("analysis tap attached",
		slog.String("element", e.ID()),
		slog.Int("buffer_size", h.bufferSize),
		slog.Bool("suspended", tap.suspended))

	return tap, nil
}

// Tap returns the tap already bound to element.
func (h *AnalysisHost) Tap(element ports.AudioElement) (ports.SampleTap, bool) {
	e, ok := element.(*Element)
	if !ok || e == nil {
		return nil, false
	}
	tap := e.boundTap()
	if tap == nil {
		return nil, false
	}
	return tap, true
}

// Verify interface implementation at compile time.
var _ ports.AnalysisHost = (*AnalysisHost)(nil)

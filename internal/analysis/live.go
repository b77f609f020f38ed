// Package analysis provides the frequency data sources feeding the visualization.
//
// Two interchangeable sources implement ports.FrequencySource: LiveSource reads
// the samples flowing out of a playing audio element and analyzes them, and
// SimulatedSource synthesizes smooth pseudo-periodic motion from elapsed time.
package analysis

import (
	"errors"
	"log/slog"
	"math"
	"math/cmplx"
	"time"

	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// LiveSource is a real-time analyzer attached to an audio element's output.
//
// Each frame windows the latest samples (Blackman), transforms them, blends
// every bin magnitude with the previous reading and maps decibels linearly
// onto [0, 255].
//
// Thread-safety: not safe for concurrent use; the controller calls NextFrame
// from a single tick chain.
type LiveSource struct {
	logger  *slog.Logger
	tap     ports.SampleTap
	element string

	windowSize  int
	smoothing   float64
	minDecibels float64
	maxDecibels float64

	fft      *fourier.FFT
	scratch  []float64
	coeffs   []complex128
	smoothed []float64
	bins     []uint8
}

// NewLiveSource attaches a new analysis tap to element through host.
//
// Returns an error wrapping domain.ErrUnsupported when the host lacks
// real-time analysis, or domain.ErrAlreadyBound when the element already has
// a tap. In the latter case no new tap is created; use NewLiveSourceFromTap
// with host.Tap to reuse the existing one.
func NewLiveSource(
	logger *slog.Logger,
	host ports.AnalysisHost,
	element ports.AudioElement,
	settings domain.VisualizerSettings,
) (*LiveSource, error) {
	if element == nil {
		return nil, domain.NewAnalysisError("connect", "", "no audio element given", domain.ErrNoElement)
	}
	if err := validate(settings); err != nil {
		return nil, err
	}
	if host == nil || !host.Supported() {
		return nil, domain.NewAnalysisError("connect", element.ID(), "host lacks real-time analysis", domain.ErrUnsupported)
	}

	tap, err := host.Connect(element)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyBound) {
			return nil, domain.NewAnalysisError("connect", element.ID(), "element already has a tap", err)
		}
		return nil, domain.NewAnalysisError("connect", element.ID(), err.Error(), err)
	}

	logger.Info("analysis tap connected",
		slog.String("element", element.ID()),
		slog.Int("window_size", settings.WindowSize),
		slog.Float64("smoothing", settings.Smoothing))

	return newLiveSource(logger, tap, element.ID(), settings), nil
}

// NewLiveSourceFromTap builds a source on an already connected tap.
// No connection is made, so this never creates a second tap.
func NewLiveSourceFromTap(
	logger *slog.Logger,
	tap ports.SampleTap,
	elementID string,
	settings domain.VisualizerSettings,
) (*LiveSource, error) {
	if tap == nil {
		return nil, domain.NewAnalysisError("attach", elementID, "no tap given", domain.ErrNotInitialized)
	}
	if err := validate(settings); err != nil {
		return nil, err
	}
	return newLiveSource(logger, tap, elementID, settings), nil
}

func newLiveSource(logger *slog.Logger, tap ports.SampleTap, elementID string, settings domain.VisualizerSettings) *LiveSource {
	n := settings.WindowSize
	return &LiveSource{
		logger:      logger,
		tap:         tap,
		element:     elementID,
		windowSize:  n,
		smoothing:   settings.Smoothing,
		minDecibels: settings.MinDecibels,
		maxDecibels: settings.MaxDecibels,
		fft:         fourier.NewFFT(n),
		scratch:     make([]float64, n),
		coeffs:      make([]complex128, n/2+1),
		smoothed:    make([]float64, n/2),
		bins:        make([]uint8, n/2),
	}
}

// Mode returns domain.ModeLive.
func (s *LiveSource) Mode() domain.VisualizationMode {
	return domain.ModeLive
}

// Bins returns half the analysis window.
func (s *LiveSource) Bins() int {
	return s.windowSize / 2
}

// Tap returns the tap this source reads from.
func (s *LiveSource) Tap() ports.SampleTap {
	return s.tap
}

// NextFrame analyzes the most recent window of samples.
func (s *LiveSource) NextFrame(now time.Time) (domain.Snapshot, error) {
	buf, err := s.tap.Samples(s.windowSize)
	if err != nil {
		return domain.Snapshot{}, domain.NewAnalysisError("read", s.element, err.Error(), err)
	}

	n := copy(s.scratch, buf.Data)
	for i := n; i < len(s.scratch); i++ {
		s.scratch[i] = 0
	}

	window.Blackman(s.scratch)
	s.coeffs = s.fft.Coefficients(s.coeffs, s.scratch)

	dbRange := s.maxDecibels - s.minDecibels
	scale := 1 / float64(s.windowSize)
	for k := range s.smoothed {
		magnitude := cmplx.Abs(s.coeffs[k]) * scale
		s.smoothed[k] = s.smoothing*s.smoothed[k] + (1-s.smoothing)*magnitude

		if s.smoothed[k] <= 0 {
			s.bins[k] = 0
			continue
		}

		db := 20 * math.Log10(s.smoothed[k])
		scaled := domain.MaxMagnitude * (db - s.minDecibels) / dbRange
		s.bins[k] = clampByte(scaled)
	}

	return domain.Snapshot{
		Mode:  domain.ModeLive,
		Frame: domain.NewMagnitudeFrame(s.bins),
		Taken: now,
	}, nil
}

func clampByte(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= domain.MaxMagnitude:
		return domain.MaxMagnitude
	default:
		return uint8(v)
	}
}

// Verify interface implementation at compile time.
var _ ports.FrequencySource = (*LiveSource)(nil)

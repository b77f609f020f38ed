package domain

import (
	"time"
)

// Analyzer window limits, matching the range accepted by real-time analyzers.
const (
	MinWindowSize = 32
	MaxWindowSize = 32768
)

// VisualizerSettings holds the user-tunable parameters of the visualization.
type VisualizerSettings struct {
	// WindowSize is the analysis window in samples (power of two)
	WindowSize int

	// Smoothing is the weight of the previous reading, in [0, 1)
	Smoothing float64

	// MinDecibels maps to magnitude 0
	MinDecibels float64

	// MaxDecibels maps to magnitude 255
	MaxDecibels float64

	// BarCount is the number of bar elements rendered
	BarCount int

	// FrameInterval is the nominal display refresh period
	FrameInterval time.Duration

	// LiveInitDelay is how long after playback starts live analysis is attempted
	LiveInitDelay time.Duration

	// PauseOnStop suspends the live tick chain while playback is stopped
	PauseOnStop bool

	// ForceSimulated disables live analysis entirely
	ForceSimulated bool
}

// DefaultVisualizerSettings returns the default visualization settings.
func DefaultVisualizerSettings() VisualizerSettings {
	return VisualizerSettings{
		WindowSize:     512,
		Smoothing:      0.8,
		MinDecibels:    -100,
		MaxDecibels:    -30,
		BarCount:       16,
		FrameInterval:  time.Second / 60,
		LiveInitDelay:  100 * time.Millisecond,
		PauseOnStop:    true,
		ForceSimulated: false,
	}
}

// Bins returns the number of frequency bins produced per frame.
func (s VisualizerSettings) Bins() int {
	return s.WindowSize / 2
}

// Validate checks every field and returns the first problem found.
func (s VisualizerSettings) Validate() error {
	if !IsPowerOfTwo(s.WindowSize) || s.WindowSize < MinWindowSize || s.WindowSize > MaxWindowSize {
		return NewFieldError("WindowSize", s.WindowSize, ErrInvalidWindowSize)
	}
	if s.Smoothing < 0 || s.Smoothing >= 1 {
		return NewFieldError("Smoothing", s.Smoothing, ErrInvalidSmoothing)
	}
	if s.MinDecibels >= s.MaxDecibels {
		return NewValidationError("MinDecibels", s.MinDecibels, "must be lower than MaxDecibels")
	}
	if s.BarCount <= 0 {
		return NewFieldError("BarCount", s.BarCount, ErrInvalidBarCount)
	}
	if s.FrameInterval <= 0 {
		return NewValidationError("FrameInterval", s.FrameInterval, "must be positive")
	}
	if s.LiveInitDelay < 0 {
		return NewValidationError("LiveInitDelay", s.LiveInitDelay, "must not be negative")
	}
	return nil
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

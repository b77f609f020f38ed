// Package domain contains the core visualization models with no external dependencies.
// This package defines the fundamental entities of the live spectrum player.
package domain

import (
	"image/color"
	"time"
)

// MaxMagnitude is the upper bound of a normalized frequency magnitude.
const MaxMagnitude = 255

// MagnitudeFrame is one sampled instant of the frequency domain.
// Values are normalized to [0, 255] and indexed from low to high frequency.
//
// A frame is immutable once produced: the constructor copies its input and
// accessors never expose the backing slice.
type MagnitudeFrame struct {
	bins []uint8
}

// NewMagnitudeFrame creates a frame from a copy of values.
func NewMagnitudeFrame(values []uint8) MagnitudeFrame {
	bins := make([]uint8, len(values))
	copy(bins, values)
	return MagnitudeFrame{bins: bins}
}

// Len returns the number of frequency bins in the frame.
func (f MagnitudeFrame) Len() int {
	return len(f.bins)
}

// At returns the magnitude at index i, or 0 if i is out of range.
func (f MagnitudeFrame) At(i int) uint8 {
	if i < 0 || i >= len(f.bins) {
		return 0
	}
	return f.bins[i]
}

// Values returns a copy of the magnitudes.
func (f MagnitudeFrame) Values() []uint8 {
	out := make([]uint8, len(f.bins))
	copy(out, f.bins)
	return out
}

// IsEmpty returns true if the frame carries no bins.
func (f MagnitudeFrame) IsEmpty() bool {
	return len(f.bins) == 0
}

// VisualizationMode selects where magnitude data comes from.
type VisualizationMode int

const (
	// ModeSimulated renders data synthesized from elapsed time
	ModeSimulated VisualizationMode = iota

	// ModeLive renders data read from a real-time analyzer
	ModeLive
)

// String returns a human-readable representation of the mode.
func (m VisualizationMode) String() string {
	switch m {
	case ModeSimulated:
		return "simulated"
	case ModeLive:
		return "live"
	default:
		return "unknown"
	}
}

// ControllerState is the lifecycle state of the visualization controller.
type ControllerState int

const (
	// StateIdle means no tick is scheduled
	StateIdle ControllerState = iota

	// StateActive means a tick chain is running
	StateActive

	// StatePaused means the chain is suspended until playback resumes
	StatePaused
)

// String returns a human-readable representation of the state.
func (s ControllerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// SyntheticPhase is the time marker used by simulated rendering, in radians.
type SyntheticPhase float64

// Snapshot is the single piece of data shared by every renderer in one tick.
// Mode tags which of the fields drive the ring geometry: Live rings follow
// Frame, Simulated rings follow Phase. Both modes always carry a Frame.
type Snapshot struct {
	Mode  VisualizationMode
	Frame MagnitudeFrame
	Phase SyntheticPhase
	Taken time.Time
}

// BassEnvelope is the per-frame low-frequency intensity.
type BassEnvelope struct {
	// Intensity is the mean magnitude of the bass bins, in [0, 1]
	Intensity float64

	// Kick is Intensity after amplification; may exceed 1
	Kick float64
}

// Glow describes the halo drawn around a bar. The zero value means no glow.
type Glow struct {
	Radius float64
	Color  color.NRGBA
}

// IsZero returns true if the glow draws nothing.
func (g Glow) IsZero() bool {
	return g.Radius == 0 && g.Color.A == 0
}

// BarState is the derived visual state of a single bar.
type BarState struct {
	Height float64
	Glow   Glow
}

// Point is a position on a drawing surface.
type Point struct {
	X, Y float64
}

// ColorStop is one stop of a gradient. Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  color.NRGBA
}

// RadialGradient is a gradient between two concentric circles.
type RadialGradient struct {
	Center      Point
	InnerRadius float64
	OuterRadius float64
	Stops       []ColorStop
}

// At returns the gradient color at distance d from the center.
func (g RadialGradient) At(d float64) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}

	span := g.OuterRadius - g.InnerRadius
	t := 0.0
	if span > 0 {
		t = (d - g.InnerRadius) / span
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}

	for i := 1; i < len(g.Stops); i++ {
		prev, next := g.Stops[i-1], g.Stops[i]
		if t <= next.Offset {
			local := 0.0
			if next.Offset > prev.Offset {
				local = (t - prev.Offset) / (next.Offset - prev.Offset)
			}
			return lerpColor(prev.Color, next.Color, local)
		}
	}

	return g.Stops[len(g.Stops)-1].Color
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// StrokeStyle describes how a path outline is painted.
type StrokeStyle struct {
	Gradient  RadialGradient
	LineWidth float64
}

// Size is a surface size in pixels.
type Size struct {
	Width  int
	Height int
}

// IsZero returns true if either dimension is not positive.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// PlaybackStatus represents the state of the external audio element.
type PlaybackStatus int

const (
	// StatusIdle indicates nothing has been loaded yet
	StatusIdle PlaybackStatus = iota

	// StatusConnecting indicates the stream is loading or buffering
	StatusConnecting

	// StatusReady indicates the stream can be played
	StatusReady

	// StatusPlaying indicates playback is active
	StatusPlaying

	// StatusPaused indicates playback is paused
	StatusPaused

	// StatusEnded indicates the stream finished
	StatusEnded

	// StatusError indicates the element reported an error
	StatusError
)

// String returns a human-readable representation of the playback status.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConnecting:
		return "connecting"
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusEnded:
		return "ended"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// MediaSignal is a lifecycle notification raised by an audio element.
type MediaSignal string

// Media signals understood by the playback monitor.
const (
	SignalLoadStart  MediaSignal = "loadstart"
	SignalLoadedData MediaSignal = "loadeddata"
	SignalCanPlay    MediaSignal = "canplay"
	SignalPlay       MediaSignal = "play"
	SignalPause      MediaSignal = "pause"
	SignalEnded      MediaSignal = "ended"
	SignalError      MediaSignal = "error"
	SignalStalled    MediaSignal = "stalled"
	SignalWaiting    MediaSignal = "waiting"
)

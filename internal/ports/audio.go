// Package ports define interfaces for dependency inversion.
// These interfaces keep the visualization core independent of audio and UI frameworks.
package ports

import (
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
)

// AudioElement is the playing audio output the core may tap.
// The element is owned by the surrounding player; the core only reads from it.
type AudioElement interface {
	// ID returns a stable identifier for the element.
	ID() string
}

// AnalysisHost is the environment that can attach an analysis tap to an element.
//
// Connect must be made at most once per element. A second call for the same
// element returns domain.ErrAlreadyBound and must not create another tap.
// Hosts without real-time analysis return domain.ErrUnsupported.
//
// Implementations must be thread-safe.
type AnalysisHost interface {
	// Supported reports whether real-time analysis is available at all.
	Supported() bool

	// Connect routes the element's output through a new tap and returns it.
	Connect(element AudioElement) (SampleTap, error)

	// Tap returns the tap already bound to the element, if any.
	Tap(element AudioElement) (SampleTap, bool)
}

// SampleTap exposes the most recent output samples of an element.
type SampleTap interface {
	// SampleRate returns the tap's sample rate in Hz.
	SampleRate() int

	// Samples returns the last n mono samples in chronological order.
	// Returns domain.ErrTapClosed once the pipeline is gone.
	Samples(n int) (*goaudio.FloatBuffer, error)

	// Suspended reports whether capture is suspended.
	Suspended() bool

	// Resume restarts capture on a suspended tap.
	Resume()
}

// FrequencySource produces one magnitude snapshot per call.
// Every snapshot from a given source has the same frame length.
type FrequencySource interface {
	// Mode returns which variant this source is.
	Mode() domain.VisualizationMode

	// Bins returns the frame length produced by NextFrame.
	Bins() int

	// NextFrame produces the snapshot for the display tick at now.
	NextFrame(now time.Time) (domain.Snapshot, error)
}

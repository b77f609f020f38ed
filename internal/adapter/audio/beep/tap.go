// Package beep implements the audio element and analysis host on top of the
// gopxl/beep streaming pipeline.
//
// An Element is a beep.Streamer the speaker pulls from. Connecting it to the
// AnalysisHost splices a Tap into that pipeline: the tap passes audio through
// unchanged while copying a mono mix into a ring buffer the analyzer reads.
package beep

import (
	"sync"

	goaudio "github.com/go-audio/audio"
	gobeep "github.com/gopxl/beep/v2"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

// Tap is a streamer wrapper that copies samples into a ring buffer
// for real-time analysis.
//
// A suspended tap still passes audio through but captures nothing.
type Tap struct {
	s          gobeep.Streamer
	sampleRate int

	mu        sync.Mutex
	buf       []float64
	pos       int
	suspended bool
	closed    bool
}

// NewTap wraps a streamer with a ring buffer of size samples.
func NewTap(s gobeep.Streamer, sampleRate gobeep.SampleRate, size int) *Tap {
	if size < 1 {
		size = 1
	}
	return &Tap{
		s:          s,
		sampleRate: int(sampleRate),
		buf:        make([]float64, size),
	}
}

// Stream passes audio through while capturing a mono mix into the ring buffer.
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.s.Stream(samples)

	t.mu.Lock()
	if !t.suspended && !t.closed {
		for i := range n {
			t.buf[t.pos] = (samples[i][0] + samples[i][1]) / 2
			t.pos = (t.pos + 1) % len(t.buf)
		}
	}
	t.mu.Unlock()

	return n, ok
}

// Err returns the underlying streamer's error.
func (t *Tap) Err() error {
	return t.s.Err()
}

// SampleRate returns the sample rate of the captured signal.
func (t *Tap) SampleRate() int {
	return t.sampleRate
}

// Samples returns the last n samples in chronological order.
// n is capped at the ring size.
func (t *Tap) Samples(n int) (*goaudio.FloatBuffer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, domain.ErrTapClosed
	}

	size := len(t.buf)
	if n > size {
		n = size
	}
	if n < 0 {
		n = 0
	}

	out := make([]float64, n)
	start := (t.pos - n + size) % size
	for i := range n {
		out[i] = t.buf[(start+i)%size]
	}

	return &goaudio.FloatBuffer{
		Format: &goaudio.Format{NumChannels: 1, SampleRate: t.sampleRate},
		Data:   out,
	}, nil
}

// Suspended reports whether capture is suspended.
func (t *Tap) Suspended() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.suspended
}

// Suspend stops capturing until Resume.
func (t *Tap) Suspend() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.suspended = true
}

// Resume restarts capture.
func (t *Tap) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.suspended = false
}

// Close tears the capture down. Audio keeps flowing; reads fail with
// domain.ErrTapClosed.
func (t *Tap) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

// Verify interface implementations at compile time.
var (
	_ gobeep.Streamer = (*Tap)(nil)
	_ ports.SampleTap = (*Tap)(nil)
)

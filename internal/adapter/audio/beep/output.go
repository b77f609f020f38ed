package beep

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	gobeep "github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Output plays elements through the system speaker.
// The speaker is process-wide, so only one Output should be open at a time.
type Output struct {
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewOutput initializes the speaker for format with the given buffer latency.
func NewOutput(logger *slog.Logger, format gobeep.Format, buffer time.Duration) (*Output, error) {
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(buffer)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}

	logger.Info("speaker initialized",
		slog.Int("sample_rate", int(format.SampleRate)),
		slog.Duration("buffer", buffer))

	return &Output{logger: logger}, nil
}

// Play starts pulling audio from element.
func (o *Output) Play(element *Element) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	speaker.Play(element)
	o.logger.Debug("element routed to speaker", slog.String("element", element.ID()))
}

// Close stops all playback and releases the speaker.
func (o *Output) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	speaker.Clear()
	speaker.Close()
	o.logger.Debug("speaker closed")
}

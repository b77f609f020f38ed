package beep

import (
	"fmt"

	gobeep "github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
)

// DefaultFormat is the format used for generated signals and the speaker.
var DefaultFormat = gobeep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}

// NewTestSignal returns an endless mix of sine tones at freqs, scaled so the
// mix stays within [-1, 1].
func NewTestSignal(format gobeep.Format, freqs ...float64) (gobeep.Streamer, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("test signal needs at least one frequency")
	}

	tones := make([]gobeep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		tone, err := generators.SineTone(format.SampleRate, f)
		if err != nil {
			return nil, fmt.Errorf("sine tone %.1f Hz: %w", f, err)
		}
		tones = append(tones, tone)
	}

	return &effects.Gain{
		Streamer: gobeep.Mix(tones...),
		Gain:     1/float64(len(tones)) - 1,
	}, nil
}

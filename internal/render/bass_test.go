package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
)

func frameWithBass(n int, bass, rest uint8) domain.MagnitudeFrame {
	values := make([]uint8, n)
	for i := range values {
		if i < n/10 {
			values[i] = bass
		} else {
			values[i] = rest
		}
	}
	return domain.NewMagnitudeFrame(values)
}

func TestComputeBassEnvelope(t *testing.T) {
	tuning := DefaultTuning()

	tests := []struct {
		name      string
		frame     domain.MagnitudeFrame
		intensity float64
		kick      float64
	}{
		{name: "empty frame", frame: domain.NewMagnitudeFrame(nil)},
		{name: "too short for a bass range", frame: domain.NewMagnitudeFrame([]uint8{255, 255, 255})},
		{name: "silence", frame: frameWithBass(256, 0, 0)},
		{name: "full bass is amplified", frame: frameWithBass(256, 255, 0), intensity: 1, kick: 2},
		{name: "below threshold is not amplified", frame: frameWithBass(256, 102, 255), intensity: 0.4, kick: 0.4},
		{name: "just above threshold", frame: frameWithBass(256, 178, 0), intensity: 178.0 / 255, kick: 2 * 178.0 / 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := ComputeBassEnvelope(tt.frame, tuning)
			assert.InDelta(t, tt.intensity, env.Intensity, 1e-9)
			assert.InDelta(t, tt.kick, env.Kick, 1e-9)
		})
	}
}

func TestComputeBassEnvelope_UsesLowestTenPercent(t *testing.T) {
	values := make([]uint8, 100)
	values[9] = 255  // last bass bin
	values[10] = 255 // first non-bass bin

	env := ComputeBassEnvelope(domain.NewMagnitudeFrame(values), DefaultTuning())
	assert.InDelta(t, 0.1, env.Intensity, 1e-9)
}

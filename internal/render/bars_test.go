package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
)

type recordingBars struct {
	states []domain.BarState
	sets   int
}

func newRecordingBars(n int) *recordingBars {
	return &recordingBars{states: make([]domain.BarState, n)}
}

func (b *recordingBars) Len() int { return len(b.states) }

func (b *recordingBars) SetBar(i int, state domain.BarState) {
	b.states[i] = state
	b.sets++
}

func TestBarRenderer_Deterministic(t *testing.T) {
	r := NewBarRenderer(DefaultTuning())
	values := make([]uint8, 256)
	for i := range values {
		values[i] = uint8(i * 7)
	}
	frame := domain.NewMagnitudeFrame(values)
	bass := ComputeBassEnvelope(frame, DefaultTuning())

	first := r.Layout(frame, bass, 16)
	second := r.Layout(frame, bass, 16)
	assert.Equal(t, first, second)
}

func TestBarRenderer_BassEmphasis(t *testing.T) {
	tuning := DefaultTuning()
	r := NewBarRenderer(tuning)
	frame := frameWithBass(256, 255, 0)
	bass := ComputeBassEnvelope(frame, tuning)

	states := r.Layout(frame, bass, 16)
	require.Len(t, states, 16)

	bassBars := int(16 * tuning.BassBarRatio) // bars 0..4
	for i := 0; i <= bassBars; i++ {
		for j := bassBars + 1; j < len(states); j++ {
			assert.Greater(t, states[i].Height, states[j].Height, "bass bar %d vs bar %d", i, j)
		}
	}

	// Non-bass bars on zero data sit at the base height with the baseline glow
	last := states[len(states)-1]
	assert.Equal(t, tuning.BaseHeight, last.Height)
	assert.Equal(t, 10.0, last.Glow.Radius)
	assert.Equal(t, uint8(128), last.Glow.Color.A)
}

func TestBarRenderer_TallTierAndGlow(t *testing.T) {
	tuning := DefaultTuning()
	r := NewBarRenderer(tuning)
	frame := frameWithBass(256, 255, 0)

	states := r.Layout(frame, domain.BassEnvelope{Intensity: 1, Kick: 2}, 16)

	// value = 2*255*0.8 = 408, height = 408/255*80 + 8
	assert.InDelta(t, 136.0, states[0].Height, 1e-9)
	assert.InDelta(t, 55.0, states[0].Glow.Radius, 1e-9)
	assert.Equal(t, uint8(255), states[0].Glow.Color.A)
	assert.Equal(t, tuning.GlowColor.R, states[0].Glow.Color.R)
	assert.Equal(t, tuning.GlowColor.B, states[0].Glow.Color.B)

	quiet := r.Layout(frame, domain.BassEnvelope{Intensity: 0.5, Kick: 0.5}, 16)
	// value = 0.5*255*0.8 = 102 vs raw 255 at index 0; normal tier
	assert.InDelta(t, 68.0, quiet[0].Height, 1e-9)
	assert.Equal(t, 10.0, quiet[0].Glow.Radius)
}

func TestBarRenderer_Stride(t *testing.T) {
	r := NewBarRenderer(DefaultTuning())

	values := make([]uint8, 64)
	values[48] = 255 // sampled by bar 12 with stride 4
	states := r.Layout(domain.NewMagnitudeFrame(values), domain.BassEnvelope{}, 16)
	assert.InDelta(t, 68.0, states[12].Height, 1e-9)
	assert.Equal(t, 8.0, states[11].Height)

	// Frames shorter than the bar count use a stride of 1
	short := r.Layout(domain.NewMagnitudeFrame([]uint8{0, 0, 0, 0, 0, 0, 0, 255}), domain.BassEnvelope{}, 16)
	require.Len(t, short, 16)
	assert.InDelta(t, 68.0, short[7].Height, 1e-9)
	assert.Equal(t, 8.0, short[8].Height)
}

func TestBarRenderer_RenderAppliesEveryBar(t *testing.T) {
	r := NewBarRenderer(DefaultTuning())
	target := newRecordingBars(12)

	frame := domain.NewMagnitudeFrame(make([]uint8, 256))
	r.Render(frame, ComputeBassEnvelope(frame, DefaultTuning()), target)

	assert.Equal(t, 12, target.sets)
	for _, s := range target.states {
		assert.Equal(t, 8.0, s.Height)
	}

	assert.NotPanics(t, func() { r.Render(frame, domain.BassEnvelope{}, nil) })
	assert.Nil(t, r.Layout(frame, domain.BassEnvelope{}, 0))
}

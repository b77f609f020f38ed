package render

import (
	"math"

	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

// BarRenderer maps a frame onto a fixed number of bars.
type BarRenderer struct {
	tuning Tuning
}

// NewBarRenderer creates a bar renderer with the given tuning.
func NewBarRenderer(tuning Tuning) *BarRenderer {
	return &BarRenderer{tuning: tuning}
}

// Layout computes the state of count bars for frame.
//
// The frame is downsampled with a fixed stride of len/count (at least 1).
// Bars in the leftmost BassBarRatio take the larger of their sample and the
// scaled kick. When the kick crosses TallThreshold the height range grows and
// those bass bars get a glow that scales with the kick; every other bar keeps
// the baseline glow.
func (r *BarRenderer) Layout(frame domain.MagnitudeFrame, bass domain.BassEnvelope, count int) []domain.BarState {
	if count <= 0 {
		return nil
	}

	t := r.tuning
	step := frame.Len() / count
	if step < 1 {
		step = 1
	}

	tall := bass.Kick > t.TallThreshold
	maxHeight := t.MaxHeight
	if tall {
		maxHeight = t.TallMaxHeight
	}

	bassBars := float64(count) * t.BassBarRatio
	kickValue := bass.Kick * domain.MaxMagnitude * t.BassBarScale

	states := make([]domain.BarState, count)
	for i := range states {
		value := float64(frame.At(i * step))
		isBass := float64(i) < bassBars
		if isBass {
			value = math.Max(value, kickValue)
		}

		states[i] = domain.BarState{
			Height: math.Max(t.BaseHeight, value/domain.MaxMagnitude*maxHeight+t.BaseHeight),
			Glow:   r.baselineGlow(),
		}
		if isBass && tall {
			states[i].Glow = r.kickGlow(bass.Kick)
		}
	}

	return states
}

// Render lays out the bars for target and applies them.
func (r *BarRenderer) Render(frame domain.MagnitudeFrame, bass domain.BassEnvelope, target ports.BarTarget) {
	if target == nil {
		return
	}
	for i, state := range r.Layout(frame, bass, target.Len()) {
		target.SetBar(i, state)
	}
}

func (r *BarRenderer) baselineGlow() domain.Glow {
	c := r.tuning.GlowColor
	c.A = alpha(baselineGlowAlpha)
	return domain.Glow{Radius: baselineGlowRadius, Color: c}
}

func (r *BarRenderer) kickGlow(kick float64) domain.Glow {
	c := r.tuning.GlowColor
	c.A = alpha(math.Min(1, kickGlowAlpha+kick*kickGlowAlphaGain))
	return domain.Glow{Radius: kickGlowRadius + kick*kickGlowSpread, Color: c}
}

// alpha converts an opacity in [0, 1] to an 8-bit channel.
func alpha(a float64) uint8 {
	switch {
	case a <= 0:
		return 0
	case a >= 1:
		return 255
	default:
		return uint8(math.Round(a * 255))
	}
}

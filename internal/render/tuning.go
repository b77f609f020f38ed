// Package render turns one magnitude snapshot into the two visual
// representations of the spectrum: a row of bars and three deformed rings.
//
// Renderers are pure functions of their inputs plus mutation of the render
// target; they keep no state between calls.
package render

import "image/color"

// Tuning holds the named constants shaping both renderers.
//
// The kick threshold and the tall-tier threshold are independent knobs: the
// first decides when bass gets amplified, the second when bars get more
// headroom and a strong glow.
type Tuning struct {
	// BassRatio is the share of frequency bins averaged into the bass envelope
	BassRatio float64

	// BassBarRatio is the share of bars (from the left) that follow the bass envelope
	BassBarRatio float64

	// KickThreshold is the intensity above which the bass gets amplified
	KickThreshold float64

	// KickGain multiplies intensity above KickThreshold
	KickGain float64

	// BassBarScale scales the kick into a bar value (of full scale)
	BassBarScale float64

	// TallThreshold is the kick above which bars use TallMaxHeight and bass bars glow
	TallThreshold float64

	// BaseHeight is the minimum bar height in pixels
	BaseHeight float64

	// MaxHeight is the bar range above BaseHeight in the normal tier
	MaxHeight float64

	// TallMaxHeight is the bar range above BaseHeight in the tall tier
	TallMaxHeight float64

	// RingAmplitude is the radius perturbation of a full-scale live bin
	RingAmplitude float64

	// SimulatedRingSteps is the number of vertices per simulated ring
	SimulatedRingSteps int

	// SimulatedRingAmplitude is the half swing of a simulated ring vertex
	SimulatedRingAmplitude float64

	// GlowColor is the halo color of every bar
	GlowColor color.NRGBA
}

// Ring geometry.
const (
	RingCount        = 3
	ringBaseRatio    = 0.3 // innermost ring radius, of the max radius
	ringSpacingRatio = 0.3 // radius increment per ring, of the max radius
	ringLiveStride   = 4   // live bins per ring vertex
	ringMinSteps     = 3   // fewest vertices that still close a polygon
	ringGradientPad  = 30  // gradient reach beyond the ring radius
	ringBaseWidth    = 2
)

// Bar glow shapes.
const (
	baselineGlowRadius = 10
	baselineGlowAlpha  = 0.5
	kickGlowRadius     = 15
	kickGlowSpread     = 20
	kickGlowAlpha      = 0.8
	kickGlowAlphaGain  = 0.2
)

// DefaultTuning returns the stock visual tuning.
func DefaultTuning() Tuning {
	return Tuning{
		BassRatio:              0.1,
		BassBarRatio:           0.3,
		KickThreshold:          0.6,
		KickGain:               2.0,
		BassBarScale:           0.8,
		TallThreshold:          0.7,
		BaseHeight:             8,
		MaxHeight:              60,
		TallMaxHeight:          80,
		RingAmplitude:          30,
		SimulatedRingSteps:     32,
		SimulatedRingAmplitude: 15,
		GlowColor:              color.NRGBA{R: 0, G: 123, B: 255, A: 255},
	}
}

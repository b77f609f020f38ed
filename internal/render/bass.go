package render

import (
	"math"

	"github.com/tejashwikalptaru/livespectrum/internal/domain"
)

// ComputeBassEnvelope averages the lowest BassRatio of the frame.
//
// Intensity is normalized to [0, 1]. Kick equals Intensity, multiplied by
// KickGain once Intensity exceeds KickThreshold. A frame too short to have a
// bass range yields the zero envelope.
func ComputeBassEnvelope(frame domain.MagnitudeFrame, tuning Tuning) domain.BassEnvelope {
	bassRange := int(math.Floor(float64(frame.Len()) * tuning.BassRatio))
	if bassRange <= 0 {
		return domain.BassEnvelope{}
	}

	var sum float64
	for i := 0; i < bassRange; i++ {
		sum += float64(frame.At(i))
	}
	intensity := sum / float64(bassRange) / domain.MaxMagnitude

	kick := intensity
	if intensity > tuning.KickThreshold {
		kick = intensity * tuning.KickGain
	}

	return domain.BassEnvelope{Intensity: intensity, Kick: kick}
}

package analysis

import (
	"math"
	"time"

	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

// Simulated motion constants, per millisecond of elapsed time.
const (
	simulatedBinRate   = 0.001 // per-bin wave speed
	simulatedBassRate  = 0.003 // bass pulse speed
	simulatedRingRate  = 0.002 // ring phase speed
	simulatedSpread    = 8.0   // phase offset spread across the whole frame (radians)
	simulatedBassRatio = 0.1   // share of bins driven by the bass pulse
	simulatedBodyGain  = 0.6   // ceiling of non-bass bins, relative to full scale
)

// SimulatedSource synthesizes frames from elapsed time.
// It never fails and has no audio dependency.
type SimulatedSource struct {
	bins  int
	epoch time.Time
}

// NewSimulatedSource creates a source producing frames of bins values.
// Elapsed time is measured from epoch.
func NewSimulatedSource(bins int, epoch time.Time) *SimulatedSource {
	if bins < 1 {
		bins = 1
	}
	return &SimulatedSource{bins: bins, epoch: epoch}
}

// Mode returns domain.ModeSimulated.
func (s *SimulatedSource) Mode() domain.VisualizationMode {
	return domain.ModeSimulated
}

// Bins returns the frame length.
func (s *SimulatedSource) Bins() int {
	return s.bins
}

// NextFrame synthesizes the frame for now. The error is always nil.
func (s *SimulatedSource) NextFrame(now time.Time) (domain.Snapshot, error) {
	ms := float64(now.Sub(s.epoch)) / float64(time.Millisecond)

	bass := math.Sin(ms*simulatedBassRate)*0.5 + 0.5
	bassBins := int(math.Floor(float64(s.bins) * simulatedBassRatio))
	step := simulatedSpread / float64(s.bins)

	values := make([]uint8, s.bins)
	for i := range values {
		v := (math.Sin(ms*simulatedBinRate+float64(i)*step)*0.5 + 0.5) * simulatedBodyGain
		if i < bassBins {
			v = math.Max(v, bass)
		}
		values[i] = clampByte(v * domain.MaxMagnitude)
	}

	return domain.Snapshot{
		Mode:  domain.ModeSimulated,
		Frame: domain.NewMagnitudeFrame(values),
		Phase: domain.SyntheticPhase(ms * simulatedRingRate),
		Taken: now,
	}, nil
}

// Verify interface implementation at compile time.
var _ ports.FrequencySource = (*SimulatedSource)(nil)

package render

import (
	"image/color"
	"math"

	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

// RingRenderer draws three concentric deformed rings on a drawing surface.
type RingRenderer struct {
	tuning Tuning
}

// NewRingRenderer creates a ring renderer with the given tuning.
func NewRingRenderer(tuning Tuning) *RingRenderer {
	return &RingRenderer{tuning: tuning}
}

// Render clears surface and strokes RingCount closed rings.
//
// Live snapshots perturb every vertex by the magnitude of every fourth bin.
// Simulated snapshots use a sinusoid of the phase, ring and vertex index.
// Returns the error from Clear (domain.ErrSurfaceUnavailable once unmounted);
// nothing is drawn in that case.
func (r *RingRenderer) Render(snap domain.Snapshot, surface ports.DrawingSurface) error {
	if err := surface.Clear(); err != nil {
		return err
	}

	size := surface.Size()
	if size.IsZero() {
		return nil
	}

	center := domain.Point{X: float64(size.Width) / 2, Y: float64(size.Height) / 2}
	maxRadius := math.Min(float64(size.Width), float64(size.Height)) / 3

	for ring := 0; ring < RingCount; ring++ {
		ringRadius := maxRadius * (ringBaseRatio + float64(ring)*ringSpacingRatio)
		steps := r.steps(snap)
		angleStep := 2 * math.Pi / float64(steps)

		surface.BeginPath()
		for i := 0; i < steps; i++ {
			radius := ringRadius + r.amplitude(snap, ring, i)
			angle := float64(i) * angleStep
			p := domain.Point{
				X: center.X + math.Cos(angle)*radius,
				Y: center.Y + math.Sin(angle)*radius,
			}
			if i == 0 {
				surface.MoveTo(p)
			} else {
				surface.LineTo(p)
			}
		}
		surface.ClosePath()

		surface.Stroke(domain.StrokeStyle{
			Gradient:  RingGradient(center, ringRadius, ring),
			LineWidth: float64(ringBaseWidth + ring),
		})
	}

	return nil
}

func (r *RingRenderer) steps(snap domain.Snapshot) int {
	steps := r.tuning.SimulatedRingSteps
	if snap.Mode == domain.ModeLive {
		steps = snap.Frame.Len() / ringLiveStride
	}
	if steps < ringMinSteps {
		steps = ringMinSteps
	}
	return steps
}

func (r *RingRenderer) amplitude(snap domain.Snapshot, ring, i int) float64 {
	switch snap.Mode {
	case domain.ModeLive:
		return float64(snap.Frame.At(i*ringLiveStride)) / domain.MaxMagnitude * r.tuning.RingAmplitude
	default:
		a := r.tuning.SimulatedRingAmplitude
		return math.Sin(float64(snap.Phase)+float64(ring)*0.5+float64(i)*0.2)*a + a
	}
}

// RingGradient returns the stroke gradient of ring index ring.
// Opacity fades outward and with every further ring.
func RingGradient(center domain.Point, ringRadius float64, ring int) domain.RadialGradient {
	r := float64(ring)
	return domain.RadialGradient{
		Center:      center,
		InnerRadius: 0,
		OuterRadius: ringRadius + ringGradientPad,
		Stops: []domain.ColorStop{
			{Offset: 0, Color: color.NRGBA{R: 102, G: 204, B: 255, A: alpha(0.8 - 0.2*r)}},
			{Offset: 0.5, Color: color.NRGBA{R: 51, G: 153, B: 255, A: alpha(0.6 - 0.15*r)}},
			{Offset: 1, Color: color.NRGBA{R: 0, G: 102, B: 204, A: alpha(0.4 - 0.1*r)}},
		},
	}
}

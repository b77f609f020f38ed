package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
)

type recordedRing struct {
	points []domain.Point
	closed bool
	style  domain.StrokeStyle
}

// recordingSurface records the drawing operations made on it.
type recordingSurface struct {
	size     domain.Size
	ops      []string
	rings    []recordedRing
	pending  recordedRing
	clearErr error
}

func (s *recordingSurface) Size() domain.Size       { return s.size }
func (s *recordingSurface) SetSize(size domain.Size) { s.size = size; s.ops = append(s.ops, "size") }

func (s *recordingSurface) Clear() error {
	s.ops = append(s.ops, "clear")
	if s.clearErr != nil {
		return s.clearErr
	}
	s.rings = nil
	return nil
}

func (s *recordingSurface) BeginPath() {
	s.ops = append(s.ops, "begin")
	s.pending = recordedRing{}
}

func (s *recordingSurface) MoveTo(p domain.Point) {
	s.ops = append(s.ops, "move")
	s.pending.points = append(s.pending.points, p)
}

func (s *recordingSurface) LineTo(p domain.Point) {
	s.ops = append(s.ops, "line")
	s.pending.points = append(s.pending.points, p)
}

func (s *recordingSurface) ClosePath() {
	s.ops = append(s.ops, "close")
	s.pending.closed = true
}

func (s *recordingSurface) Stroke(style domain.StrokeStyle) {
	s.ops = append(s.ops, "stroke")
	s.pending.style = style
	s.rings = append(s.rings, s.pending)
}

func liveSnapshot(values []uint8) domain.Snapshot {
	return domain.Snapshot{Mode: domain.ModeLive, Frame: domain.NewMagnitudeFrame(values)}
}

func TestRingRenderer_ThreeClosedRingsInBothModes(t *testing.T) {
	r := NewRingRenderer(DefaultTuning())

	live := make([]uint8, 256)
	for i := range live {
		live[i] = uint8(i)
	}

	snapshots := map[string]struct {
		snap  domain.Snapshot
		steps int
	}{
		"live":      {snap: liveSnapshot(live), steps: 64},
		"simulated": {snap: domain.Snapshot{Mode: domain.ModeSimulated, Phase: 1.5, Frame: domain.NewMagnitudeFrame(live)}, steps: 32},
		"live tiny": {snap: liveSnapshot([]uint8{1, 2}), steps: 3},
	}

	for name, tc := range snapshots {
		t.Run(name, func(t *testing.T) {
			surface := &recordingSurface{size: domain.Size{Width: 300, Height: 200}}
			require.NoError(t, r.Render(tc.snap, surface))

			assert.Equal(t, "clear", surface.ops[0], "surface must be cleared before drawing")
			require.Len(t, surface.rings, RingCount)
			for _, ring := range surface.rings {
				assert.True(t, ring.closed)
				assert.Len(t, ring.points, tc.steps)
			}
		})
	}
}

func TestRingRenderer_Geometry(t *testing.T) {
	r := NewRingRenderer(DefaultTuning())
	surface := &recordingSurface{size: domain.Size{Width: 300, Height: 300}}

	require.NoError(t, r.Render(liveSnapshot(make([]uint8, 128)), surface))

	// maxRadius = 100, silent live rings sit exactly at 30, 60, 90
	for ring, want := range []float64{30, 60, 90} {
		first := surface.rings[ring].points[0]
		assert.InDelta(t, 150+want, first.X, 1e-9)
		assert.InDelta(t, 150, first.Y, 1e-9)

		style := surface.rings[ring].style
		assert.Equal(t, float64(2+ring), style.LineWidth)
		assert.InDelta(t, want+30, style.Gradient.OuterRadius, 1e-9)
		assert.Equal(t, domain.Point{X: 150, Y: 150}, style.Gradient.Center)
	}
}

func TestRingRenderer_LiveAmplitude(t *testing.T) {
	r := NewRingRenderer(DefaultTuning())
	surface := &recordingSurface{size: domain.Size{Width: 300, Height: 300}}

	values := make([]uint8, 128)
	values[0] = 255
	require.NoError(t, r.Render(liveSnapshot(values), surface))

	assert.InDelta(t, 150+30+30, surface.rings[0].points[0].X, 1e-9)
	assert.Equal(t, 2.0, surface.rings[0].style.LineWidth)
}

func TestRingRenderer_Deterministic(t *testing.T) {
	r := NewRingRenderer(DefaultTuning())
	snap := domain.Snapshot{Mode: domain.ModeSimulated, Phase: 0.75}

	a := &recordingSurface{size: domain.Size{Width: 120, Height: 80}}
	b := &recordingSurface{size: domain.Size{Width: 120, Height: 80}}
	require.NoError(t, r.Render(snap, a))
	require.NoError(t, r.Render(snap, b))

	assert.Equal(t, a.rings, b.rings)
}

func TestRingRenderer_SurfaceUnavailable(t *testing.T) {
	r := NewRingRenderer(DefaultTuning())
	surface := &recordingSurface{size: domain.Size{Width: 100, Height: 100}, clearErr: domain.ErrSurfaceUnavailable}

	err := r.Render(domain.Snapshot{}, surface)
	assert.True(t, errors.Is(err, domain.ErrSurfaceUnavailable))
	assert.Equal(t, []string{"clear"}, surface.ops)
}

func TestRingRenderer_ZeroSizeDrawsNothing(t *testing.T) {
	r := NewRingRenderer(DefaultTuning())
	surface := &recordingSurface{}

	require.NoError(t, r.Render(domain.Snapshot{}, surface))
	assert.Equal(t, []string{"clear"}, surface.ops)
}

func TestRingGradient(t *testing.T) {
	g := RingGradient(domain.Point{X: 10, Y: 10}, 50, 0)
	require.Len(t, g.Stops, 3)
	assert.Equal(t, color.NRGBA{R: 102, G: 204, B: 255, A: 204}, g.Stops[0].Color)
	assert.Equal(t, color.NRGBA{R: 51, G: 153, B: 255, A: 153}, g.Stops[1].Color)
	assert.Equal(t, color.NRGBA{R: 0, G: 102, B: 204, A: 102}, g.Stops[2].Color)

	outer := RingGradient(domain.Point{}, 50, 2)
	assert.Equal(t, uint8(102), outer.Stops[0].Color.A) // 0.4
	assert.InDelta(t, 77, float64(outer.Stops[1].Color.A), 1) // 0.3
	assert.InDelta(t, 51, float64(outer.Stops[2].Color.A), 1) // 0.2
}

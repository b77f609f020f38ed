// Package widgets provides the custom Fyne widgets of the spectrum window.
package widgets

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

const (
	barGap       = 4
	barMinWidth  = 4
	barMinHeight = 140 // tallest bar plus glow headroom
	haloOpacity  = 0.35
)

// BarStrip is a row of bottom-aligned bars, each with an optional glow halo.
// It implements ports.BarTarget; heights are in pixels.
type BarStrip struct {
	widget.BaseWidget

	fill   color.Color
	bars   []*canvas.Rectangle
	halos  []*canvas.Rectangle
	states []domain.BarState
	mu     sync.Mutex
}

// NewBarStrip creates a strip of count bars painted with fill.
func NewBarStrip(count int, fill color.Color) *BarStrip {
	if count < 1 {
		count = 1
	}

	s := &BarStrip{
		fill:   fill,
		bars:   make([]*canvas.Rectangle, count),
		halos:  make([]*canvas.Rectangle, count),
		states: make([]domain.BarState, count),
	}
	for i := range s.bars {
		s.halos[i] = canvas.NewRectangle(color.Transparent)
		s.bars[i] = canvas.NewRectangle(fill)
		s.bars[i].CornerRadius = 2
	}

	s.ExtendBaseWidget(s)
	return s
}

// Len returns the number of bars.
func (s *BarStrip) Len() int {
	return len(s.bars)
}

// SetBar applies state to bar i. Out of range indexes are ignored.
func (s *BarStrip) SetBar(i int, state domain.BarState) {
	if i < 0 || i >= len(s.bars) {
		return
	}

	s.mu.Lock()
	s.states[i] = state
	s.mu.Unlock()

	s.layoutBar(i, s.Size())
	canvas.Refresh(s.halos[i])
	canvas.Refresh(s.bars[i])
}

// Bar returns the current state of bar i (for testing).
func (s *BarStrip) Bar(i int) domain.BarState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[i]
}

// BarObject returns the rectangle drawing bar i (for testing).
func (s *BarStrip) BarObject(i int) *canvas.Rectangle {
	return s.bars[i]
}

// HaloObject returns the rectangle drawing the glow of bar i (for testing).
func (s *BarStrip) HaloObject(i int) *canvas.Rectangle {
	return s.halos[i]
}

// layoutBar positions bar i and its halo inside size.
func (s *BarStrip) layoutBar(i int, size fyne.Size) {
	s.mu.Lock()
	state := s.states[i]
	s.mu.Unlock()

	n := float32(len(s.bars))
	width := (size.Width - barGap*(n-1)) / n
	if width < barMinWidth {
		width = barMinWidth
	}
	height := float32(state.Height)
	if height > size.Height {
		height = size.Height
	}
	x := float32(i) * (width + barGap)
	y := size.Height - height

	bar := s.bars[i]
	bar.Move(fyne.NewPos(x, y))
	bar.Resize(fyne.NewSize(width, height))

	halo := s.halos[i]
	if state.Glow.IsZero() {
		halo.FillColor = color.Transparent
		halo.Resize(fyne.NewSize(0, 0))
		return
	}

	r := float32(state.Glow.Radius) / 2
	c := state.Glow.Color
	c.A = uint8(float64(c.A) * haloOpacity)
	halo.FillColor = c
	halo.CornerRadius = r
	halo.Move(fyne.NewPos(x-r, y-r))
	halo.Resize(fyne.NewSize(width+2*r, height+2*r))
}

// CreateRenderer implements fyne.Widget.
func (s *BarStrip) CreateRenderer() fyne.WidgetRenderer {
	objects := make([]fyne.CanvasObject, 0, 2*len(s.bars))
	for _, halo := range s.halos {
		objects = append(objects, halo)
	}
	for _, bar := range s.bars {
		objects = append(objects, bar)
	}
	return &barStripRenderer{strip: s, objects: objects}
}

type barStripRenderer struct {
	strip   *BarStrip
	objects []fyne.CanvasObject
}

func (r *barStripRenderer) Layout(size fyne.Size) {
	for i := range r.strip.bars {
		r.strip.layoutBar(i, size)
	}
}

func (r *barStripRenderer) MinSize() fyne.Size {
	n := float32(len(r.strip.bars))
	return fyne.NewSize(n*barMinWidth+(n-1)*barGap, barMinHeight)
}

func (r *barStripRenderer) Refresh() {
	r.Layout(r.strip.Size())
	for _, o := range r.objects {
		o.Refresh()
	}
}

func (r *barStripRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *barStripRenderer) Destroy() {}

// Verify interface implementation at compile time.
var _ ports.BarTarget = (*BarStrip)(nil)

package render

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
)

// RasterSurface is a DrawingSurface backed by an in-memory RGBA image.
// The UI shows its Image; tests inspect its pixels.
//
// Thread-safety: all methods are safe for concurrent use.
type RasterSurface struct {
	mu         sync.Mutex
	img        *image.RGBA
	background color.RGBA
	unmounted  bool

	paths   []subPath
	current *subPath
}

type subPath struct {
	points []domain.Point
	closed bool
}

// NewRasterSurface creates a surface of size filled with background.
// A nil background means transparent.
func NewRasterSurface(size domain.Size, background color.Color) *RasterSurface {
	if background == nil {
		background = color.Transparent
	}
	s := &RasterSurface{background: color.RGBAModel.Convert(background).(color.RGBA)}
	s.img = s.newImage(size)
	return s
}

func (s *RasterSurface) newImage(size domain.Size) *image.RGBA {
	w, h := max(size.Width, 0), max(size.Height, 0)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, s.background)
	return img
}

// Size returns the current drawable size.
func (s *RasterSurface) Size() domain.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.img.Bounds()
	return domain.Size{Width: b.Dx(), Height: b.Dy()}
}

// SetSize reallocates the image, discarding content.
func (s *RasterSurface) SetSize(size domain.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted {
		return
	}
	b := s.img.Bounds()
	if b.Dx() == size.Width && b.Dy() == size.Height {
		return
	}
	s.img = s.newImage(size)
}

// Clear fills the surface with the background and drops the current path.
func (s *RasterSurface) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted {
		return domain.ErrSurfaceUnavailable
	}
	fill(s.img, s.background)
	s.paths = nil
	s.current = nil
	return nil
}

// BeginPath starts a new, empty path.
func (s *RasterSurface) BeginPath() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = nil
	s.current = nil
}

// MoveTo starts a new sub-path at p.
func (s *RasterSurface) MoveTo(p domain.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, subPath{points: []domain.Point{p}})
	s.current = &s.paths[len(s.paths)-1]
}

// LineTo adds a segment to p, starting a sub-path if none is open.
func (s *RasterSurface) LineTo(p domain.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		s.paths = append(s.paths, subPath{})
		s.current = &s.paths[len(s.paths)-1]
	}
	s.current.points = append(s.current.points, p)
}

// ClosePath marks the current sub-path closed.
func (s *RasterSurface) ClosePath() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.closed = true
	}
}

// Stroke draws every sub-path of the current path with style.
func (s *RasterSurface) Stroke(style domain.StrokeStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted {
		return
	}

	thickness := max(int(math.Round(style.LineWidth)), 1)
	for _, sp := range s.paths {
		pts := sp.points
		for i := 1; i < len(pts); i++ {
			s.strokeSegment(pts[i-1], pts[i], thickness, style.Gradient)
		}
		if sp.closed && len(pts) > 1 {
			s.strokeSegment(pts[len(pts)-1], pts[0], thickness, style.Gradient)
		}
	}
}

// strokeSegment draws a thick line, coloring every pixel by its distance to
// the gradient center.
func (s *RasterSurface) strokeSegment(a, b domain.Point, thickness int, g domain.RadialGradient) {
	bounds := s.img.Bounds()

	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return
	}

	// Perpendicular unit vector for thickness
	perpX := -dy / length
	perpY := dx / length

	// Exactly thickness rows, centered on the segment
	steps := int(length) + 1
	for k := 0; k < thickness; k++ {
		offset := float64(k) - float64(thickness-1)/2
		offsetX := offset * perpX
		offsetY := offset * perpY

		for i := 0; i <= steps; i++ {
			progress := float64(i) / float64(steps)
			x := a.X + dx*progress + offsetX
			y := a.Y + dy*progress + offsetY
			px, py := int(math.Floor(x)), int(math.Floor(y))
			if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
				continue
			}
			c := g.At(math.Hypot(x-g.Center.X, y-g.Center.Y))
			s.img.SetRGBA(px, py, blend(s.img.RGBAAt(px, py), c))
		}
	}
}

// Image returns a copy of the current pixels.
func (s *RasterSurface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// CountNonBackground returns how many pixels differ from the background.
func (s *RasterSurface) CountNonBackground() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	b := s.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if s.img.RGBAAt(x, y) != s.background {
				count++
			}
		}
	}
	return count
}

// Unmount detaches the surface. Clear reports domain.ErrSurfaceUnavailable
// from then on and drawing calls are ignored.
func (s *RasterSurface) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unmounted = true
}

func fill(img *image.RGBA, c color.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// blend composes src over dst.
func blend(dst color.RGBA, src color.NRGBA) color.RGBA {
	a := uint32(src.A)
	if a == 0 {
		return dst
	}
	inv := 255 - a
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*inv + 127) / 255)
	}
	return color.RGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: uint8((a*255 + uint32(dst.A)*inv + 127) / 255),
	}
}

// Verify interface implementation at compile time.
var _ ports.DrawingSurface = (*RasterSurface)(nil)

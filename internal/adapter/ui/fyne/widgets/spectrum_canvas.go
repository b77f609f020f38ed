package widgets

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/livespectrum/internal/domain"
	"github.com/tejashwikalptaru/livespectrum/internal/ports"
	"github.com/tejashwikalptaru/livespectrum/internal/render"
)

// SpectrumCanvas shows a drawing surface in a raster and reports its size.
//
// Use Surface as the ring renderer's target and Container as the size source.
// Every resize is also published as a surface.resized event.
type SpectrumCanvas struct {
	widget.BaseWidget

	bus     ports.EventBus
	surface *render.RasterSurface
	raster  *canvas.Raster

	mu       sync.Mutex
	lastSize domain.Size
}

// NewSpectrumCanvas creates a canvas with the given background.
// bus may be nil.
func NewSpectrumCanvas(bus ports.EventBus, background color.Color) *SpectrumCanvas {
	c := &SpectrumCanvas{
		bus:     bus,
		surface: render.NewRasterSurface(domain.Size{}, background),
	}
	c.raster = canvas.NewRaster(func(w, h int) image.Image {
		return c.surface.Image()
	})
	c.raster.ScaleMode = canvas.ImageScaleFastest

	c.ExtendBaseWidget(c)
	return c
}

// Resize resizes the widget and publishes the new size when it changed.
func (c *SpectrumCanvas) Resize(size fyne.Size) {
	c.BaseWidget.Resize(size)

	ds := toDomainSize(size)
	c.mu.Lock()
	changed := ds != c.lastSize
	c.lastSize = ds
	c.mu.Unlock()

	if changed && c.bus != nil {
		c.bus.Publish(domain.NewSurfaceResizedEvent(ds))
	}
}

// Surface returns the drawing surface shown by this canvas.
func (c *SpectrumCanvas) Surface() ports.DrawingSurface {
	return &canvasSurface{RasterSurface: c.surface, raster: c.raster}
}

// Container returns the size source the surface should follow.
func (c *SpectrumCanvas) Container() ports.Container {
	return canvasContainer{c}
}

// Unmount detaches the surface; the controller stops on its next frame.
func (c *SpectrumCanvas) Unmount() {
	c.surface.Unmount()
}

// CreateRenderer implements fyne.Widget.
func (c *SpectrumCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

// MinSize returns a minimal size so the canvas expands to fill available space.
func (c *SpectrumCanvas) MinSize() fyne.Size {
	return fyne.NewSize(120, 120)
}

func toDomainSize(size fyne.Size) domain.Size {
	return domain.Size{Width: int(size.Width), Height: int(size.Height)}
}

// canvasSurface repaints the raster after every stroke.
type canvasSurface struct {
	*render.RasterSurface
	raster *canvas.Raster
}

func (s *canvasSurface) Stroke(style domain.StrokeStyle) {
	s.RasterSurface.Stroke(style)
	s.raster.Refresh()
}

type canvasContainer struct {
	c *SpectrumCanvas
}

func (cc canvasContainer) Size() domain.Size {
	return toDomainSize(cc.c.BaseWidget.Size())
}

package ports

import (
	"time"

	"github.com/tejashwikalptaru/livespectrum/internal/domain"
)

// BarTarget is the fixed collection of bar elements owned by the page.
type BarTarget interface {
	// Len returns the number of bars.
	Len() int

	// SetBar applies a height (in pixels) and glow to bar i.
	SetBar(i int, state domain.BarState)
}

// DrawingSurface is a 2-D surface accepting path, stroke and gradient operations.
//
// Only Clear reports unavailability; once a surface is unmounted Clear returns
// domain.ErrSurfaceUnavailable and every other call is ignored.
type DrawingSurface interface {
	// Size returns the current drawable size.
	Size() domain.Size

	// SetSize changes the drawable size, discarding content.
	SetSize(size domain.Size)

	// Clear erases the whole surface to the background.
	Clear() error

	// BeginPath starts a new, empty path.
	BeginPath()

	// MoveTo starts a new sub-path at p.
	MoveTo(p domain.Point)

	// LineTo adds a straight segment to p.
	LineTo(p domain.Point)

	// ClosePath joins the current point back to the sub-path start.
	ClosePath()

	// Stroke outlines the current path with style.
	Stroke(style domain.StrokeStyle)
}

// Container is the element whose size the drawing surface follows.
type Container interface {
	// Size returns the container's current client size.
	Size() domain.Size
}

// FrameCallback is invoked once per display refresh.
type FrameCallback func(now time.Time)

// FrameRequest identifies a scheduled frame callback.
type FrameRequest uint64

// FrameScheduler is the host's display-refresh scheduler.
// Each request fires at most once; callers reschedule from inside the callback.
type FrameScheduler interface {
	// RequestFrame schedules cb for the next display refresh.
	RequestFrame(cb FrameCallback) FrameRequest

	// CancelFrame cancels a pending request. Cancelling a fired or unknown request is a no-op.
	CancelFrame(id FrameRequest)
}

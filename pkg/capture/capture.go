// Package capture produces still images of renderable UI surfaces on demand.
//
// A Surface is whatever the embedding UI framework renders (a widget
// subtree, a native view, an offscreen canvas). The adapter forces a layout
// pass before snapshotting so the image reflects the latest state rather
// than a stale cached frame. Capture failures are transient and non-fatal;
// the frame pump simply skips the tick.
package capture

import (
	"errors"
	"image"
	"image/draw"

	"github.com/go-drift/pipify/pkg/rendering"
)

// ErrSurfaceNotReady indicates the surface cannot be snapshotted right now:
// it is nil, detached from the render tree, or has zero size.
var ErrSurfaceNotReady = errors.New("capture: surface not ready")

// Surface is a handle to a renderable UI surface supplied by the embedding
// framework.
type Surface interface {
	// RenderSize returns the surface dimensions in pixels.
	RenderSize() rendering.Size

	// Attached reports whether the surface is part of an active render tree.
	Attached() bool

	// ForceLayout runs any pending layout and paint work so that the next
	// Snapshot reflects the latest state.
	ForceLayout()

	// Snapshot returns a still image of the surface's current visual state,
	// or nil if one cannot be produced.
	Snapshot() image.Image
}

// Capture takes a still image of the surface's current state.
//
// It forces a layout pass first, then snapshots. Returns ErrSurfaceNotReady
// when the surface is nil, detached, or zero-sized, and when the snapshot
// comes back nil or empty. Callers treat any error as "skip this frame".
func Capture(s Surface) (*image.RGBA, error) {
	if s == nil || !s.Attached() || s.RenderSize().IsEmpty() {
		return nil, ErrSurfaceNotReady
	}

	s.ForceLayout()

	img := s.Snapshot()
	if img == nil {
		return nil, ErrSurfaceNotReady
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, ErrSurfaceNotReady
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, nil
	}

	// Normalize to a zero-origin RGBA image.
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out, nil
}

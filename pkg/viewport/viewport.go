// Package viewport maps the pixel grid onto a rectangular region of the
// complex plane and implements the zoom navigation transforms.
package viewport

import (
	"errors"
	"fmt"
	"image"
)

// ErrOutOfBounds indicates a pixel coordinate outside the addressed grid.
var ErrOutOfBounds = errors.New("pixel coordinate out of bounds")

// ErrDegenerateSelection indicates a zoom rectangle with zero width or
// height. The viewport is left unchanged when it is returned.
var ErrDegenerateSelection = errors.New("degenerate zoom selection")

// Default framing: the classic Mandelbrot view centered on (-0.5, 0),
// spanning -2.25..1.25 on the real axis. The imaginary extent is derived
// from the pixel aspect ratio.
const (
	defaultCenterRe  = -0.5
	defaultCenterIm  = 0.0
	defaultHalfWidth = 1.75
)

// Viewport describes the visible rectangle of the complex plane and the
// pixel grid it is mapped onto. The half-extent aspect ratio always matches
// the pixel aspect ratio; the zoom transforms maintain that invariant, so
// callers never need to correct it themselves.
//
// Viewport is a value type. Every transform returns a new value and leaves
// the receiver untouched, so a render can safely keep its own snapshot
// while the UI navigates.
type Viewport struct {
	Center      complex128
	HalfWidth   float64
	HalfHeight  float64
	PixelWidth  int
	PixelHeight int
}

// Default returns the documented default view for the given pixel grid.
func Default(pixelWidth, pixelHeight int) Viewport {
	return Viewport{
		Center:      complex(defaultCenterRe, defaultCenterIm),
		HalfWidth:   defaultHalfWidth,
		HalfHeight:  defaultHalfWidth * float64(pixelHeight) / float64(pixelWidth),
		PixelWidth:  pixelWidth,
		PixelHeight: pixelHeight,
	}
}

// PixelToComplex maps a pixel coordinate to its complex-plane point.
// Screen y grows downward while the imaginary axis grows upward, so the
// vertical axis is flipped. Coordinates outside the grid fail with
// ErrOutOfBounds.
func (v Viewport) PixelToComplex(px, py int) (complex128, error) {
	if px < 0 || px >= v.PixelWidth || py < 0 || py >= v.PixelHeight {
		return 0, fmt.Errorf("pixel (%d, %d) outside %dx%d grid: %w",
			px, py, v.PixelWidth, v.PixelHeight, ErrOutOfBounds)
	}

	re := real(v.Center) + (float64(px)/float64(v.PixelWidth)-0.5)*2*v.HalfWidth
	im := imag(v.Center) - (float64(py)/float64(v.PixelHeight)-0.5)*2*v.HalfHeight
	return complex(re, im), nil
}

// ZoomToRect zooms into the region selected by a drag rectangle given as
// two opposite pixel corners. The new view is centered on the selection's
// midpoint, and its half-extents are expanded as needed so the aspect ratio
// matches the pixel grid. Expansion only ever grows the shorter dimension;
// the selected region is never cropped.
//
// A selection with zero pixel width or height fails with
// ErrDegenerateSelection and returns the viewport unchanged.
func (v Viewport) ZoomToRect(p0, p1 image.Point) (Viewport, error) {
	if p0.X == p1.X || p0.Y == p1.Y {
		return v, fmt.Errorf("selection %v-%v: %w", p0, p1, ErrDegenerateSelection)
	}

	c0, err := v.PixelToComplex(p0.X, p0.Y)
	if err != nil {
		return v, err
	}
	c1, err := v.PixelToComplex(p1.X, p1.Y)
	if err != nil {
		return v, err
	}

	halfWidth := absHalf(real(c1) - real(c0))
	halfHeight := absHalf(imag(c1) - imag(c0))

	// Expand the shorter complex-plane dimension to restore the pixel
	// aspect ratio without shrinking the selection.
	aspect := float64(v.PixelWidth) / float64(v.PixelHeight)
	if halfWidth/halfHeight > aspect {
		halfHeight = halfWidth / aspect
	} else {
		halfWidth = halfHeight * aspect
	}

	return Viewport{
		Center:      (c0 + c1) / 2,
		HalfWidth:   halfWidth,
		HalfHeight:  halfHeight,
		PixelWidth:  v.PixelWidth,
		PixelHeight: v.PixelHeight,
	}, nil
}

// ZoomOut doubles both half-extents around the unchanged center.
func (v Viewport) ZoomOut() Viewport {
	v.HalfWidth *= 2
	v.HalfHeight *= 2
	return v
}

// Reset returns the default view at the current pixel resolution,
// discarding all navigation history.
func (v Viewport) Reset() Viewport {
	return Default(v.PixelWidth, v.PixelHeight)
}

// WithResolution returns a viewport covering the same complex-plane bounds
// on a different pixel grid. This is how high-resolution export reuses the
// interactive view: only the pixel density changes.
func (v Viewport) WithResolution(pixelWidth, pixelHeight int) Viewport {
	v.PixelWidth = pixelWidth
	v.PixelHeight = pixelHeight
	return v
}

func absHalf(d float64) float64 {
	if d < 0 {
		d = -d
	}
	return d / 2
}

package renderer

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/velten/go-fractal-explorer/pkg/fractal"
	"github.com/velten/go-fractal-explorer/pkg/palette"
	"github.com/velten/go-fractal-explorer/pkg/viewport"
)

// ErrInvalidRequest indicates a render request with zero iterations or a
// zero-sized resolution. It is reported before any computation begins.
var ErrInvalidRequest = errors.New("invalid render request")

// Request is an immutable snapshot of everything one render needs: the
// viewport, the fractal kind, the palette, the iteration budget, and the
// target resolution. Width and Height may differ from the viewport's pixel
// grid for high-resolution export; the complex-plane bounds are reused and
// only the pixel density changes.
//
// A render never mutates its request, so the UI can keep navigating while
// a render of an earlier snapshot is still in flight.
type Request struct {
	Viewport      viewport.Viewport
	Kind          fractal.Kind
	Palette       palette.Palette
	MaxIterations int
	Width, Height int
}

// NewRequest builds a request rendering the viewport at its own pixel
// resolution.
func NewRequest(v viewport.Viewport, kind fractal.Kind, pal palette.Palette, maxIterations int) Request {
	return Request{
		Viewport:      v,
		Kind:          kind,
		Palette:       pal,
		MaxIterations: maxIterations,
		Width:         v.PixelWidth,
		Height:        v.PixelHeight,
	}
}

// WithResolution returns a copy of the request targeting a different
// resolution over the same complex-plane bounds.
func (r Request) WithResolution(width, height int) Request {
	r.Width = width
	r.Height = height
	return r
}

// Validate checks the request before any partitioning happens.
func (r Request) Validate() error {
	if r.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d: %w", r.MaxIterations, ErrInvalidRequest)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("resolution must be positive, got %dx%d: %w", r.Width, r.Height, ErrInvalidRequest)
	}
	return nil
}

// grid returns the viewport adjusted to the request's target resolution.
func (r Request) grid() viewport.Viewport {
	return r.Viewport.WithResolution(r.Width, r.Height)
}

// ComputePixel computes the color of a single pixel: map the coordinate
// into the complex plane, run the escape-time iteration, and color the
// result through the palette. Non-escaping points always get the fixed
// interior color.
//
// ComputePixel is a pure function of the request and the coordinate, which
// is what makes partition-parallel rendering safe with no locking.
func (r Request) ComputePixel(px, py int) (color.RGBA, error) {
	point, err := r.grid().PixelToComplex(px, py)
	if err != nil {
		return color.RGBA{}, err
	}
	c, _ := shade(r, point)
	return c, nil
}

// shade runs the iteration for an already-mapped point and applies the
// palette, reporting whether the point escaped. Split out so the band loop
// can also count interior pixels for the render statistics.
func shade(r Request, point complex128) (color.RGBA, bool) {
	result := fractal.Iterate(r.Kind, point, r.MaxIterations)
	if !result.Escaped {
		return palette.Interior(), false
	}
	return r.Palette.At(result.Smoothed / float64(r.MaxIterations)), true
}

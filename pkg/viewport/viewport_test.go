package viewport

import (
	"errors"
	"image"
	"math"
	"testing"
)

const epsilon = 1e-12

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestDefaultAspectRatio(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"800x600", 800, 600},
		{"1920x1080", 1920, 1080},
		{"square", 512, 512},
		{"portrait", 600, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Default(tt.width, tt.height)

			if v.HalfWidth <= 0 || v.HalfHeight <= 0 {
				t.Fatalf("Half-extents must be positive, got %f x %f", v.HalfWidth, v.HalfHeight)
			}

			extentAspect := v.HalfWidth / v.HalfHeight
			pixelAspect := float64(tt.width) / float64(tt.height)
			if !almostEqual(extentAspect, pixelAspect) {
				t.Errorf("Extent aspect %f does not match pixel aspect %f", extentAspect, pixelAspect)
			}

			if real(v.Center) != -0.5 || imag(v.Center) != 0 {
				t.Errorf("Expected center (-0.5, 0), got %v", v.Center)
			}
		})
	}
}

func TestPixelToComplexCorners(t *testing.T) {
	v := Default(800, 600)

	// Top-left pixel maps near the left edge and the top of the imaginary range
	topLeft, err := v.PixelToComplex(0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !almostEqual(real(topLeft), real(v.Center)-v.HalfWidth) {
		t.Errorf("Top-left real = %f, expected left edge %f", real(topLeft), real(v.Center)-v.HalfWidth)
	}
	if !almostEqual(imag(topLeft), imag(v.Center)+v.HalfHeight) {
		t.Errorf("Top-left imag = %f, expected top edge %f (screen y is flipped)",
			imag(topLeft), imag(v.Center)+v.HalfHeight)
	}

	// Moving down in screen space must move down the imaginary axis
	lower, err := v.PixelToComplex(0, 599)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if imag(lower) >= imag(topLeft) {
		t.Errorf("Pixel y=599 maps to imag %f, not below y=0's %f", imag(lower), imag(topLeft))
	}
}

func TestPixelToComplexOutOfBounds(t *testing.T) {
	v := Default(800, 600)

	tests := []struct {
		name   string
		px, py int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x at width", 800, 0},
		{"y at height", 0, 600},
		{"far outside", 10000, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.PixelToComplex(tt.px, tt.py)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Expected ErrOutOfBounds for (%d, %d), got %v", tt.px, tt.py, err)
			}
		})
	}
}

func TestZoomToRect(t *testing.T) {
	v := Default(800, 600)

	zoomed, err := v.ZoomToRect(image.Pt(200, 150), image.Pt(600, 450))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Selection is centered on the screen center, so the complex center is unchanged
	if !almostEqual(real(zoomed.Center), real(v.Center)) || !almostEqual(imag(zoomed.Center), imag(v.Center)) {
		t.Errorf("Centered selection moved the center: %v -> %v", v.Center, zoomed.Center)
	}

	// A half-size selection halves both extents
	if !almostEqual(zoomed.HalfWidth, v.HalfWidth/2) {
		t.Errorf("Expected half width %f, got %f", v.HalfWidth/2, zoomed.HalfWidth)
	}
	if !almostEqual(zoomed.HalfHeight, v.HalfHeight/2) {
		t.Errorf("Expected half height %f, got %f", v.HalfHeight/2, zoomed.HalfHeight)
	}
}

func TestZoomToRectCornerOrderIndependent(t *testing.T) {
	v := Default(800, 600)

	a, err := v.ZoomToRect(image.Pt(100, 100), image.Pt(500, 400))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, err := v.ZoomToRect(image.Pt(500, 400), image.Pt(100, 100))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if a != b {
		t.Errorf("Swapped corners produced different viewports: %+v vs %+v", a, b)
	}
}

func TestZoomToRectExpandsNeverCrops(t *testing.T) {
	v := Default(800, 600)

	// A tall, skinny selection: the real dimension must be expanded to
	// restore the aspect ratio, and both selected spans stay visible
	p0, p1 := image.Pt(390, 100), image.Pt(410, 500)
	c0, _ := v.PixelToComplex(p0.X, p0.Y)
	c1, _ := v.PixelToComplex(p1.X, p1.Y)

	zoomed, err := v.ZoomToRect(p0, p1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	selectedHalfWidth := math.Abs(real(c1)-real(c0)) / 2
	selectedHalfHeight := math.Abs(imag(c1)-imag(c0)) / 2

	if zoomed.HalfWidth < selectedHalfWidth-epsilon {
		t.Errorf("Zoom cropped the real span: %f < %f", zoomed.HalfWidth, selectedHalfWidth)
	}
	if zoomed.HalfHeight < selectedHalfHeight-epsilon {
		t.Errorf("Zoom cropped the imaginary span: %f < %f", zoomed.HalfHeight, selectedHalfHeight)
	}

	extentAspect := zoomed.HalfWidth / zoomed.HalfHeight
	pixelAspect := float64(v.PixelWidth) / float64(v.PixelHeight)
	if !almostEqual(extentAspect, pixelAspect) {
		t.Errorf("Aspect ratio not restored: extent %f vs pixel %f", extentAspect, pixelAspect)
	}
}

func TestZoomToRectDegenerate(t *testing.T) {
	v := Default(800, 600)

	tests := []struct {
		name   string
		p0, p1 image.Point
	}{
		{"zero area", image.Pt(100, 100), image.Pt(100, 100)},
		{"zero width", image.Pt(100, 100), image.Pt(100, 300)},
		{"zero height", image.Pt(100, 100), image.Pt(300, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ZoomToRect(tt.p0, tt.p1)
			if !errors.Is(err, ErrDegenerateSelection) {
				t.Errorf("Expected ErrDegenerateSelection, got %v", err)
			}
			if got != v {
				t.Errorf("Degenerate selection changed the viewport: %+v -> %+v", v, got)
			}
		})
	}
}

func TestZoomOutDoublesAroundCenter(t *testing.T) {
	v := Default(800, 600)
	zoomed, err := v.ZoomToRect(image.Pt(100, 200), image.Pt(300, 350))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	out := zoomed.ZoomOut()

	if out.Center != zoomed.Center {
		t.Errorf("ZoomOut moved the center: %v -> %v", zoomed.Center, out.Center)
	}
	if !almostEqual(out.HalfWidth, zoomed.HalfWidth*2) || !almostEqual(out.HalfHeight, zoomed.HalfHeight*2) {
		t.Errorf("ZoomOut did not double extents: %f x %f -> %f x %f",
			zoomed.HalfWidth, zoomed.HalfHeight, out.HalfWidth, out.HalfHeight)
	}
}

func TestResetDiscardsHistory(t *testing.T) {
	v := Default(800, 600)

	// Wander around, then reset: the result must be exactly the default view
	wandered, err := v.ZoomToRect(image.Pt(10, 20), image.Pt(700, 500))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	wandered = wandered.ZoomOut().ZoomOut()
	wandered, err = wandered.ZoomToRect(image.Pt(300, 300), image.Pt(400, 380))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := wandered.Reset(); got != v {
		t.Errorf("Reset after navigation returned %+v, expected default %+v", got, v)
	}
}

func TestWithResolutionKeepsBounds(t *testing.T) {
	v := Default(800, 600)
	hi := v.WithResolution(3200, 2400)

	if hi.Center != v.Center || hi.HalfWidth != v.HalfWidth || hi.HalfHeight != v.HalfHeight {
		t.Errorf("WithResolution changed the complex bounds: %+v -> %+v", v, hi)
	}
	if hi.PixelWidth != 3200 || hi.PixelHeight != 2400 {
		t.Errorf("Expected 3200x2400 grid, got %dx%d", hi.PixelWidth, hi.PixelHeight)
	}
}

func TestFromRegionCoversRegion(t *testing.T) {
	for name, region := range Landmarks {
		t.Run(name, func(t *testing.T) {
			v := FromRegion(region, 800, 600)

			if real(v.Center)-v.HalfWidth > region.XMin+epsilon ||
				real(v.Center)+v.HalfWidth < region.XMax-epsilon {
				t.Errorf("Region real span %f..%f not covered by view", region.XMin, region.XMax)
			}
			if imag(v.Center)-v.HalfHeight > region.YMin+epsilon ||
				imag(v.Center)+v.HalfHeight < region.YMax-epsilon {
				t.Errorf("Region imag span %f..%f not covered by view", region.YMin, region.YMax)
			}

			extentAspect := v.HalfWidth / v.HalfHeight
			if !almostEqual(extentAspect, 800.0/600.0) {
				t.Errorf("Aspect not matched: %f", extentAspect)
			}
		})
	}
}

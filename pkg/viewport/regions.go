package viewport

// Region is an axis-aligned rectangle in the complex plane, used to name
// interesting places to jump to without navigating by hand.
type Region struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Classic regions / landmarks in the Mandelbrot set
var Landmarks = map[string]Region{
	// Seahorse Valley – dense filaments and repeating "seahorse" curls
	"seahorse-valley": {XMin: -0.8, XMax: -0.7, YMin: 0.05, YMax: 0.15},

	// Elephant Valley – large bulb with trunk-like tendrils
	"elephant-valley": {XMin: -1.85, XMax: -1.75, YMin: -0.10, YMax: -0.02},

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	"spiral-minibrot": {XMin: -0.7435, XMax: -0.7420, YMin: 0.1310, YMax: 0.1325},

	// Triple Spiral – threefold symmetric spiral structure
	"triple-spiral": {XMin: -0.7480, XMax: -0.7450, YMin: 0.0950, YMax: 0.0980},

	// Valley of the Dragon – deep, highly detailed spiral filaments
	"valley-of-the-dragon": {XMin: -0.7400, XMax: -0.7350, YMin: 0.1800, YMax: 0.1850},
}

// FromRegion builds a viewport framing the region on the given pixel grid.
// The shorter complex-plane dimension is expanded to match the pixel aspect
// ratio, so the whole region is always visible.
func FromRegion(r Region, pixelWidth, pixelHeight int) Viewport {
	halfWidth := (r.XMax - r.XMin) / 2
	halfHeight := (r.YMax - r.YMin) / 2

	aspect := float64(pixelWidth) / float64(pixelHeight)
	if halfWidth/halfHeight > aspect {
		halfHeight = halfWidth / aspect
	} else {
		halfWidth = halfHeight * aspect
	}

	return Viewport{
		Center:      complex((r.XMin+r.XMax)/2, (r.YMin+r.YMax)/2),
		HalfWidth:   halfWidth,
		HalfHeight:  halfHeight,
		PixelWidth:  pixelWidth,
		PixelHeight: pixelHeight,
	}
}

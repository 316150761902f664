// Package favorites persists fractal views as small JSON records, so a
// good find can be exported, shared, and reopened later. A favorite holds
// everything needed to rebuild a render request except the resolution,
// which stays a per-export choice.
package favorites

import (
	"fmt"
	"image/color"

	"github.com/velten/go-fractal-explorer/pkg/fractal"
	"github.com/velten/go-fractal-explorer/pkg/palette"
	"github.com/velten/go-fractal-explorer/pkg/renderer"
	"github.com/velten/go-fractal-explorer/pkg/viewport"
)

// View is the serialized form of a viewport.
type View struct {
	CenterRe    float64 `json:"center_re"`
	CenterIm    float64 `json:"center_im"`
	HalfWidth   float64 `json:"half_width"`
	HalfHeight  float64 `json:"half_height"`
	PixelWidth  int     `json:"pixel_width"`
	PixelHeight int     `json:"pixel_height"`
}

// RGB is a serialized 8-bit color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Favorite captures a view, the fractal kind, and the palette selection.
type Favorite struct {
	View       View       `json:"view"`
	Fractal    string     `json:"fractal"`
	JuliaParam [2]float64 `json:"julia_param"`
	Palette    string     `json:"palette"`
	UserColors [2]RGB     `json:"user_colors"`
}

// FromRequest extracts a favorite from a render request, dropping the
// resolution fields.
func FromRequest(req renderer.Request) Favorite {
	fav := Favorite{
		View: View{
			CenterRe:    real(req.Viewport.Center),
			CenterIm:    imag(req.Viewport.Center),
			HalfWidth:   req.Viewport.HalfWidth,
			HalfHeight:  req.Viewport.HalfHeight,
			PixelWidth:  req.Viewport.PixelWidth,
			PixelHeight: req.Viewport.PixelHeight,
		},
		Fractal: req.Kind.String(),
		Palette: req.Palette.Name(),
	}

	if req.Kind.IsJulia() {
		c := req.Kind.JuliaParam()
		fav.JuliaParam = [2]float64{real(c), imag(c)}
	}

	userColors := palette.DefaultUserColors
	if req.Palette.IsUserGradient() {
		a, b := req.Palette.UserColors()
		userColors = [2]color.RGBA{a, b}
	}
	fav.UserColors = [2]RGB{
		{R: userColors[0].R, G: userColors[0].G, B: userColors[0].B},
		{R: userColors[1].R, G: userColors[1].G, B: userColors[1].B},
	}

	return fav
}

// ToRequest reconstructs a render request from the favorite, at the
// favorite's own pixel resolution and the given iteration budget.
func (f Favorite) ToRequest(maxIterations int) (renderer.Request, error) {
	v := viewport.Viewport{
		Center:      complex(f.View.CenterRe, f.View.CenterIm),
		HalfWidth:   f.View.HalfWidth,
		HalfHeight:  f.View.HalfHeight,
		PixelWidth:  f.View.PixelWidth,
		PixelHeight: f.View.PixelHeight,
	}

	var kind fractal.Kind
	switch f.Fractal {
	case "mandelbrot":
		kind = fractal.Mandelbrot()
	case "julia":
		kind = fractal.Julia(complex(f.JuliaParam[0], f.JuliaParam[1]))
	default:
		return renderer.Request{}, fmt.Errorf("unknown fractal kind %q", f.Fractal)
	}

	userColors := [2]color.RGBA{
		{R: f.UserColors[0].R, G: f.UserColors[0].G, B: f.UserColors[0].B, A: 255},
		{R: f.UserColors[1].R, G: f.UserColors[1].G, B: f.UserColors[1].B, A: 255},
	}
	pal, ok := palette.ByName(f.Palette, userColors)
	if !ok {
		return renderer.Request{}, fmt.Errorf("unknown palette %q", f.Palette)
	}

	return renderer.NewRequest(v, kind, pal, maxIterations), nil
}

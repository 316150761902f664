// Package palette maps normalized escape values to colors. Built-in
// palettes and the user-defined gradient all reduce to a single function
// [0,1] -> RGB, dispatched on a variant tag. Points that never escape
// always render as the fixed interior color so the set's silhouette stays
// visible regardless of palette choice.
package palette

import "image/color"

// BuiltinID identifies one of the fixed built-in gradient curves.
type BuiltinID int

const (
	Classic BuiltinID = iota // blue-to-magenta classic ramp
	Fire                     // red/yellow/black
	Ocean                    // blue/teal
	Forest                   // greens
	Rainbow                  // polynomial rainbow ramp
	Pastel                   // soft desaturated tones
	Sunset                   // orange/purple
	Ice                      // blue/white
	Neon                     // green/pink
	Grayscale
)

// DefaultUserColors is the initial user gradient, cyan to magenta.
var DefaultUserColors = [2]color.RGBA{
	{R: 0, G: 255, B: 255, A: 255},
	{R: 255, G: 0, B: 255, A: 255},
}

// Palette is a variant over the built-in curves and the user-defined
// two-color gradient. The zero value is the Classic built-in.
type Palette struct {
	builtin BuiltinID
	user    bool
	a, b    color.RGBA
}

// BuiltIn returns the palette for a built-in curve.
func BuiltIn(id BuiltinID) Palette {
	return Palette{builtin: id}
}

// UserGradient returns a palette interpolating linearly from a to b.
func UserGradient(a, b color.RGBA) Palette {
	return Palette{user: true, a: a, b: b}
}

// Interior returns the fixed color for points that never escape.
func Interior() color.RGBA {
	return color.RGBA{R: 0, G: 0, B: 0, A: 255}
}

// At evaluates the palette at a normalized escape value. Values outside
// [0,1] are clamped. Every curve is continuous and deterministic.
func (p Palette) At(t float64) color.RGBA {
	t = clamp01(t)

	if p.user {
		return lerpRGB(p.a, p.b, t)
	}

	switch p.builtin {
	case Fire:
		return rgb(255, 178.5*t, 25.5*t)
	case Ocean:
		return rgb(0, 127.5*t, 229.5*t)
	case Forest:
		return rgb(51*t, 204*t, 76.5*t)
	case Rainbow:
		return rgb(
			9*(1-t)*t*t*t*255,
			15*(1-t)*(1-t)*t*t*255,
			8.5*(1-t)*(1-t)*(1-t)*t*255,
		)
	case Pastel:
		return rgb(200, 200-255*t, 255-127.5*t)
	case Sunset:
		return rgb(255*t, 100*(1-t)+50*t, 50*(1-t))
	case Ice:
		return rgb(180*(1-t)+200*t, 220*t, 255*t)
	case Neon:
		return rgb(255*(1-t), 255*t, 255*(1-t)*t)
	case Grayscale:
		return rgb(255*t, 255*t, 255*t)
	default: // Classic
		return rgb(255*t, 0, 255*(1-t))
	}
}

// IsUserGradient reports whether the palette is the user-defined gradient.
func (p Palette) IsUserGradient() bool {
	return p.user
}

// UserColors returns the gradient endpoints. Only meaningful when
// IsUserGradient is true.
func (p Palette) UserColors() (a, b color.RGBA) {
	return p.a, p.b
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// rgb builds an opaque color from float channel values, clamping each
// channel to the valid 8-bit range.
func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{R: clamp255(r), G: clamp255(g), B: clamp255(b), A: 255}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func lerpRGB(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: clamp255(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: clamp255(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: clamp255(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: 255,
	}
}

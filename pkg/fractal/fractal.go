package fractal

import "math"

// DefaultJuliaParam is the Julia set parameter used when none is specified.
var DefaultJuliaParam = complex(-0.8, 0.156)

// escapeRadiusSq is the squared escape threshold. |z| > 2 guarantees
// divergence, so testing |z|^2 > 4 avoids a square root per iteration.
const escapeRadiusSq = 4.0

type family int

const (
	familyMandelbrot family = iota
	familyJulia
)

// Kind selects which fractal family is iterated. Mandelbrot varies c per
// pixel with z0 = 0; Julia fixes c and varies z0 per pixel. The variant is
// a plain tag so the per-pixel loop stays free of interface dispatch.
type Kind struct {
	family family
	c      complex128
}

// Mandelbrot returns the Mandelbrot set kind.
func Mandelbrot() Kind {
	return Kind{family: familyMandelbrot}
}

// Julia returns the Julia set kind for the fixed parameter c.
func Julia(c complex128) Kind {
	return Kind{family: familyJulia, c: c}
}

// IsJulia reports whether the kind is a Julia set.
func (k Kind) IsJulia() bool {
	return k.family == familyJulia
}

// JuliaParam returns the fixed Julia parameter. It is only meaningful
// when IsJulia is true.
func (k Kind) JuliaParam() complex128 {
	return k.c
}

// String returns the kind's name as used by the CLI and favorites.
func (k Kind) String() string {
	if k.family == familyJulia {
		return "julia"
	}
	return "mandelbrot"
}

// Result describes the outcome of iterating a single point.
type Result struct {
	Escaped    bool    // Whether the orbit left the escape radius
	Iterations int     // Iteration index at which escape was detected
	Smoothed   float64 // Continuous escape value; only valid when Escaped
}

// Iterate runs the escape-time iteration z = z^2 + c for the given kind at
// the given complex-plane point. It stops as soon as |z|^2 exceeds the
// escape radius or after maxIterations steps.
//
// On escape the Smoothed field holds n + 1 - log2(log2(|z|)), a continuous
// refinement of the discrete count that avoids banding between adjacent
// iteration levels. Iterate is a pure function of its arguments, so it is
// safe to call concurrently from any number of goroutines.
func Iterate(kind Kind, point complex128, maxIterations int) Result {
	var zre, zim, cre, cim float64
	if kind.family == familyJulia {
		zre, zim = real(point), imag(point)
		cre, cim = real(kind.c), imag(kind.c)
	} else {
		cre, cim = real(point), imag(point)
	}

	for n := 0; n < maxIterations; n++ {
		zre2 := zre * zre
		zim2 := zim * zim
		if zre2+zim2 > escapeRadiusSq {
			magnitude := math.Sqrt(zre2 + zim2)
			return Result{
				Escaped:    true,
				Iterations: n,
				Smoothed:   float64(n) + 1 - math.Log2(math.Log2(magnitude)),
			}
		}
		zre, zim = zre2-zim2+cre, 2*zre*zim+cim
	}

	return Result{Escaped: false, Iterations: maxIterations}
}

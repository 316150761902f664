package renderer

import (
	"image"
	"image/color"
)

// PixelBuffer holds a rendered frame as packed row-major RGB bytes, three
// bytes per pixel. Once a render returns the buffer, the caller owns it
// exclusively; the renderer keeps no reference.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer allocates an all-black buffer for the given resolution.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 3*width*height),
	}
}

// SetRGB stores a pixel. The alpha channel is discarded; the buffer is
// opaque by definition.
func (b *PixelBuffer) SetRGB(x, y int, c color.RGBA) {
	i := 3 * (y*b.Width + x)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
}

// RGBAt returns the stored color of a pixel.
func (b *PixelBuffer) RGBAt(x, y int) color.RGBA {
	i := 3 * (y*b.Width + x)
	return color.RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: 255}
}

// Row returns the packed bytes of one pixel row.
func (b *PixelBuffer) Row(y int) []uint8 {
	return b.Pix[3*y*b.Width : 3*(y+1)*b.Width]
}

// Image converts the buffer to an image.RGBA for encoding or display.
func (b *PixelBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		src := b.Row(y)
		dst := img.Pix[y*img.Stride : y*img.Stride+4*b.Width]
		for x := 0; x < b.Width; x++ {
			dst[4*x] = src[3*x]
			dst[4*x+1] = src[3*x+1]
			dst[4*x+2] = src[3*x+2]
			dst[4*x+3] = 255
		}
	}
	return img
}

package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/velten/go-fractal-explorer/pkg/favorites"
	"github.com/velten/go-fractal-explorer/pkg/fractal"
	"github.com/velten/go-fractal-explorer/pkg/palette"
	"github.com/velten/go-fractal-explorer/pkg/renderer"
	"github.com/velten/go-fractal-explorer/pkg/viewport"
)

// High-resolution export target, matching the interactive 4:3 view.
const (
	highResWidth  = 3200
	highResHeight = 2400
)

func main() {
	// Parse command line flags
	fractalName := flag.String("fractal", "mandelbrot", "Fractal kind: 'mandelbrot' or 'julia'")
	juliaC := flag.String("julia-c", "-0.8,0.156", "Julia parameter as 're,im'")
	paletteName := flag.String("palette", "classic", "Palette name (see -help for the list)")
	gradient := flag.String("gradient", "00ffff,ff00ff", "User gradient colors as two hex values, used with -palette user-defined")
	width := flag.Int("width", 800, "Image width in pixels")
	height := flag.Int("height", 600, "Image height in pixels")
	iterations := flag.Int("iterations", 256, "Maximum iterations per pixel")
	region := flag.String("region", "", "Named Mandelbrot landmark to frame instead of the default view")
	favoritePath := flag.String("favorite", "", "Render a saved favorite JSON file instead of building a view from flags")
	saveFavorite := flag.Bool("save-favorite", false, "Also save the rendered view as a favorite")
	highRes := flag.Bool("highres", false, fmt.Sprintf("Render at %dx%d for export", highResWidth, highResHeight))
	format := flag.String("format", "png", "Output format: 'png', 'bmp' or 'tiff'")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Fractal Explorer")
		fmt.Println("Usage: fractal-explorer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available palettes:")
		fmt.Println("  " + strings.Join(palette.Names(), ", "))
		fmt.Println()
		fmt.Println("Available regions:")
		for name := range viewport.Landmarks {
			fmt.Println("  " + name)
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<fractal>/render_<timestamp>.<format>")
		return
	}

	req, err := buildRequest(*fractalName, *juliaC, *paletteName, *gradient,
		*width, *height, *iterations, *region, *favoritePath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *highRes {
		req = req.WithResolution(highResWidth, highResHeight)
	}

	// Create output directory for this fractal kind
	outputDir := filepath.Join("output", req.Kind.String())
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	r := renderer.New(renderer.Config{
		BandRows:   renderer.DefaultConfig().BandRows,
		NumWorkers: *workers,
	}, renderer.NewDefaultLogger())

	buf, stats, err := r.Render(context.Background(), req)
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %d pixels in %v (%.1f%% inside the set)\n",
		stats.TotalPixels, stats.Elapsed, 100*stats.InteriorFraction())

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, *format))

	if err := writeImage(filename, *format, buf); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)

	if *saveFavorite {
		store := favorites.NewStore(filepath.Join("output", "favorites"))
		path, err := store.Save(favorites.FromRequest(req))
		if err != nil {
			fmt.Printf("Error saving favorite: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Favorite saved as %s\n", path)
	}
}

// buildRequest assembles the render request from the flag values, or loads
// it from a favorite file when one is given.
func buildRequest(fractalName, juliaC, paletteName, gradient string,
	width, height, iterations int, region, favoritePath string) (renderer.Request, error) {

	if favoritePath != "" {
		fav, err := favorites.NewStore(filepath.Dir(favoritePath)).Load(favoritePath)
		if err != nil {
			return renderer.Request{}, err
		}
		return fav.ToRequest(iterations)
	}

	var kind fractal.Kind
	switch fractalName {
	case "mandelbrot":
		kind = fractal.Mandelbrot()
	case "julia":
		c, err := parseComplex(juliaC)
		if err != nil {
			return renderer.Request{}, fmt.Errorf("invalid -julia-c: %w", err)
		}
		kind = fractal.Julia(c)
	default:
		return renderer.Request{}, fmt.Errorf("unknown fractal kind %q", fractalName)
	}

	userColors, err := parseGradient(gradient)
	if err != nil {
		return renderer.Request{}, fmt.Errorf("invalid -gradient: %w", err)
	}
	pal, ok := palette.ByName(paletteName, userColors)
	if !ok {
		return renderer.Request{}, fmt.Errorf("unknown palette %q (available: %s)",
			paletteName, strings.Join(palette.Names(), ", "))
	}

	view := viewport.Default(width, height)
	if region != "" {
		landmark, ok := viewport.Landmarks[region]
		if !ok {
			return renderer.Request{}, fmt.Errorf("unknown region %q", region)
		}
		view = viewport.FromRegion(landmark, width, height)
	}

	return renderer.NewRequest(view, kind, pal, iterations), nil
}

// parseComplex parses "re,im" into a complex number.
func parseComplex(s string) (complex128, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected 're,im', got %q", s)
	}
	re, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, err
	}
	im, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, err
	}
	return complex(re, im), nil
}

// parseGradient parses two comma-separated hex colors like "00ffff,ff00ff".
func parseGradient(s string) ([2]color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return [2]color.RGBA{}, fmt.Errorf("expected two hex colors, got %q", s)
	}

	var colors [2]color.RGBA
	for i, part := range parts {
		c, err := parseHexColor(strings.TrimSpace(part))
		if err != nil {
			return [2]color.RGBA{}, err
		}
		colors[i] = c
	}
	return colors, nil
}

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("expected 6 hex digits, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// writeImage encodes the buffer in the requested format.
func writeImage(filename, format string, buf *renderer.PixelBuffer) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return encodeImage(file, format, buf)
}

func encodeImage(w io.Writer, format string, buf *renderer.PixelBuffer) error {
	img := buf.Image()
	switch format {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, nil)
	default:
		return fmt.Errorf("unknown format %q (available: png, bmp, tiff)", format)
	}
}

// Interactive fractal explorer. Renders the current view in a background
// goroutine and lets the user zoom with a drag rectangle, cycle palettes,
// switch between Mandelbrot and Julia, and save the current view as a
// favorite.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/velten/go-fractal-explorer/pkg/favorites"
	"github.com/velten/go-fractal-explorer/pkg/fractal"
	"github.com/velten/go-fractal-explorer/pkg/palette"
	"github.com/velten/go-fractal-explorer/pkg/renderer"
	"github.com/velten/go-fractal-explorer/pkg/viewport"
)

const (
	screenWidth  = 800
	screenHeight = 600

	// Drag selections smaller than this are treated as accidental clicks
	minDragPixels = 5
)

// renderJob tracks one in-flight background render
type renderJob struct {
	cancel     context.CancelFunc
	updateChan <-chan renderer.Update
	resultChan <-chan renderer.Result
	errChan    <-chan error
	progress   float64
	done       bool
}

type Game struct {
	view       viewport.Viewport
	kind       fractal.Kind
	paletteIdx int
	maxIter    int

	renderer *renderer.Renderer
	job      *renderJob

	// Last completed frame; stays on screen while the next render runs
	frame *ebiten.Image

	dragging  bool
	dragStart image.Point

	store  *favorites.Store
	status string
}

func newGame(maxIter int, favDir string) *Game {
	g := &Game{
		view:    viewport.Default(screenWidth, screenHeight),
		kind:    fractal.Mandelbrot(),
		maxIter: maxIter,
		store:   favorites.NewStore(favDir),
	}
	g.renderer = renderer.New(renderer.DefaultConfig(), renderer.NewDefaultLogger())
	g.startRender()
	return g
}

func (g *Game) currentPalette() palette.Palette {
	names := palette.Names()
	pal, _ := palette.ByName(names[g.paletteIdx], palette.DefaultUserColors)
	return pal
}

// startRender cancels any in-flight render and starts one for the current
// view. The previous frame keeps displaying until the new one lands.
func (g *Game) startRender() {
	if g.job != nil && !g.job.done {
		g.job.cancel()
	}

	req := renderer.NewRequest(g.view, g.kind, g.currentPalette(), g.maxIter)
	ctx, cancel := context.WithCancel(context.Background())
	updateChan, resultChan, errChan := g.renderer.RenderProgressive(ctx, req)
	g.job = &renderJob{
		cancel:     cancel,
		updateChan: updateChan,
		resultChan: resultChan,
		errChan:    errChan,
	}
}

// pollRender drains whatever the background render has produced so far
// without blocking the game loop.
func (g *Game) pollRender() {
	if g.job == nil || g.job.done {
		return
	}
	for {
		select {
		case update, ok := <-g.job.updateChan:
			if !ok {
				g.job.updateChan = nil
				continue
			}
			g.job.progress = update.Fraction
		case result, ok := <-g.job.resultChan:
			if !ok {
				g.job.resultChan = nil
				continue
			}
			if g.frame == nil {
				g.frame = ebiten.NewImage(result.Buffer.Width, result.Buffer.Height)
			}
			g.frame.WritePixels(result.Buffer.Image().Pix)
			g.job.done = true
			return
		case err, ok := <-g.job.errChan:
			if !ok {
				g.job.errChan = nil
				continue
			}
			if !errors.Is(err, context.Canceled) {
				g.status = fmt.Sprintf("render failed: %v", err)
			}
			g.job.done = true
			return
		default:
			// Exactly one of result and error carries a value; once all
			// three channels are drained and closed the job is over.
			if g.job.updateChan == nil && g.job.resultChan == nil && g.job.errChan == nil {
				g.job.done = true
			}
			return
		}
	}
}

func (g *Game) Update() error {
	g.pollRender()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	viewChanged := false

	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		g.view = g.view.ZoomOut()
		viewChanged = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.view = g.view.Reset()
		viewChanged = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paletteIdx = (g.paletteIdx + 1) % len(palette.Names())
		g.status = "palette: " + palette.Names()[g.paletteIdx]
		viewChanged = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		if g.kind.IsJulia() {
			g.kind = fractal.Mandelbrot()
		} else {
			g.kind = fractal.Julia(fractal.DefaultJuliaParam)
		}
		g.status = "fractal: " + g.kind.String()
		viewChanged = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.saveFavorite()
	}

	// Drag-rectangle zoom
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.dragStart = image.Pt(x, y)
		g.dragging = true
	}
	if g.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
		x, y := ebiten.CursorPosition()
		if absInt(x-g.dragStart.X) >= minDragPixels && absInt(y-g.dragStart.Y) >= minDragPixels {
			zoomed, err := g.view.ZoomToRect(g.dragStart, image.Pt(x, y))
			if err == nil {
				g.view = zoomed
				viewChanged = true
			}
		}
	}

	if viewChanged {
		g.startRender()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame != nil {
		screen.DrawImage(g.frame, nil)
	}

	if g.dragging {
		x, y := ebiten.CursorPosition()
		drawSelectionRect(screen, g.dragStart, image.Pt(x, y))
	}

	info := fmt.Sprintf("%s | %s | center (%.6g, %.6g) | half-width %.3g",
		g.kind, palette.Names()[g.paletteIdx],
		real(g.view.Center), imag(g.view.Center), g.view.HalfWidth)
	if g.job != nil && !g.job.done {
		info += fmt.Sprintf("\nrendering... %3.0f%%", g.job.progress*100)
	}
	if g.status != "" {
		info += "\n" + g.status
	}
	info += "\ndrag: zoom  Z: zoom out  R: reset  P: palette  J: julia  F: favorite  Esc: quit"
	ebitenutil.DebugPrint(screen, info)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func (g *Game) saveFavorite() {
	req := renderer.NewRequest(g.view, g.kind, g.currentPalette(), g.maxIter)
	path, err := g.store.Save(favorites.FromRequest(req))
	if err != nil {
		g.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	g.status = "saved " + path
}

func drawSelectionRect(screen *ebiten.Image, p0, p1 image.Point) {
	x0, x1 := float32(minInt(p0.X, p1.X)), float32(maxInt(p0.X, p1.X))
	y0, y1 := float32(minInt(p0.Y, p1.Y)), float32(maxInt(p0.Y, p1.Y))
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, color.White, false)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func main() {
	maxIter := flag.Int("iterations", 256, "Maximum iterations per pixel")
	favDir := flag.String("favorites", "output/favorites", "Directory for saved favorites")
	favorite := flag.String("favorite", "", "Start from a saved favorite file")
	flag.Parse()

	game := newGame(*maxIter, *favDir)

	if *favorite != "" {
		fav, err := game.store.Load(*favorite)
		if err != nil {
			log.Printf("Error loading favorite: %v", err)
			os.Exit(1)
		}
		req, err := fav.ToRequest(*maxIter)
		if err != nil {
			log.Printf("Error applying favorite: %v", err)
			os.Exit(1)
		}
		game.view = req.Viewport.WithResolution(screenWidth, screenHeight)
		game.kind = req.Kind
		for i, name := range palette.Names() {
			if name == req.Palette.Name() {
				game.paletteIdx = i
			}
		}
		game.startRender()
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Fractal Explorer")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

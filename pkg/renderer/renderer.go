// Package renderer drives the fractal engine across the pixel grid. It
// partitions the image into row bands, renders them on a fork-join worker
// pool, and assembles the row-major pixel buffer. Partitioning is purely a
// concurrency optimization: any worker count produces byte-identical
// output for the same request.
package renderer

import (
	"context"
	"sync/atomic"
	"time"
)

// Config contains configuration for a Renderer
type Config struct {
	BandRows   int // Pixel rows per partition
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		BandRows:   16,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// jobProgress holds one render's band counters. Each render call gets its
// own instance, so overlapping renders on a shared Renderer never mix
// their counts.
type jobProgress struct {
	completed atomic.Int64
	total     int64
}

// Renderer orchestrates parallel renders. A Renderer may be reused across
// renders, even concurrently; each render creates and retires its own
// worker pool and progress counters, and the only state carried between
// calls is configuration.
type Renderer struct {
	config Config
	logger Logger

	// Progress of the most recently started render, for polling UIs.
	current atomic.Pointer[jobProgress]
}

// New creates a renderer. A nil logger falls back to stdout.
func New(config Config, logger Logger) *Renderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{config: config, logger: logger}
}

// Progress returns the fraction of the most recently started render's
// partitions that have completed, in [0, 1]. It is monotonically
// non-decreasing within a render and reaches 1.0 exactly at completion.
// Safe to call from any goroutine, so a UI can poll it while a
// high-resolution render runs.
func (r *Renderer) Progress() float64 {
	p := r.current.Load()
	if p == nil || p.total == 0 {
		return 0
	}
	return float64(p.completed.Load()) / float64(p.total)
}

// Render renders the request into a freshly allocated pixel buffer. The
// request is validated before any partitioning; on failure no partial
// buffer is returned. Cancelling the context abandons the render between
// band completions and returns the context's error.
func (r *Renderer) Render(ctx context.Context, req Request) (*PixelBuffer, RenderStats, error) {
	return r.render(ctx, req, nil)
}

// render is the shared orchestration core. onBand, when non-nil, is
// invoked from the orchestrating goroutine after each band completes;
// callbacks are therefore serialized and in completion order.
func (r *Renderer) render(ctx context.Context, req Request, onBand func(Update)) (*PixelBuffer, RenderStats, error) {
	if err := req.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	bands := SplitRows(req.Height, r.config.BandRows)
	prog := &jobProgress{total: int64(len(bands))}
	r.current.Store(prog)

	buf := NewPixelBuffer(req.Width, req.Height)
	stats := RenderStats{
		TotalPixels:   req.Width * req.Height,
		Bands:         len(bands),
		MaxIterations: req.MaxIterations,
	}

	pool := NewWorkerPool(r.config.NumWorkers, len(bands))
	pool.Start()
	defer pool.Stop()

	startTime := time.Now()
	r.logger.Printf("Rendering %s %dx%d, %d iterations, %d bands on %d workers\n",
		req.Kind, req.Width, req.Height, req.MaxIterations, len(bands), pool.GetNumWorkers())

	for _, band := range bands {
		pool.SubmitTask(BandTask{Band: band, Request: req, Buffer: buf})
	}

	for range bands {
		select {
		case <-ctx.Done():
			// Dispatched bands keep writing into buf, but buf is never
			// returned and each band owns its own rows, so abandoning the
			// render cannot corrupt anything the caller can see.
			return nil, RenderStats{}, ctx.Err()
		case result := <-pool.resultQueue:
			stats.InteriorPixels += result.InteriorPixels
			completed := prog.completed.Add(1)
			if onBand != nil {
				onBand(Update{
					BandID:    result.BandID,
					Completed: int(completed),
					Total:     len(bands),
					Fraction:  float64(completed) / float64(len(bands)),
				})
			}
		}
	}

	stats.EscapedPixels = stats.TotalPixels - stats.InteriorPixels
	stats.Elapsed = time.Since(startTime)
	r.logger.Printf("Render completed in %v (%.1f%% interior)\n",
		stats.Elapsed, 100*stats.InteriorFraction())

	return buf, stats, nil
}

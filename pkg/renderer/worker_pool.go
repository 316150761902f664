package renderer

import (
	"runtime"
	"sync"
)

// BandTask represents one band rendering task for the worker pool
type BandTask struct {
	Band    Band
	Request Request
	Buffer  *PixelBuffer // Shared destination; the task writes only its own rows
}

// BandResult reports a completed band
type BandResult struct {
	BandID         int
	InteriorPixels int // Pixels in the band that never escaped
}

// WorkerPool manages parallel band rendering. Each render creates its own
// pool and retires it when done; no pool state survives between renders.
type WorkerPool struct {
	taskQueue   chan BandTask
	resultQueue chan BandResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool sized for the given number of bands.
// numWorkers <= 0 selects one worker per CPU core.
func NewWorkerPool(numWorkers, numBands int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan BandTask, numBands),
		resultQueue: make(chan BandResult, numBands),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a band task to the worker pool
func (wp *WorkerPool) SubmitTask(task BandTask) {
	wp.taskQueue <- task
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		// Bands have non-overlapping rows, so writing to the shared
		// buffer needs no locking
		interior := renderBand(task.Request, task.Band, task.Buffer)
		wp.resultQueue <- BandResult{BandID: task.Band.ID, InteriorPixels: interior}
	}
}

// renderBand renders every pixel of one band into the shared buffer and
// returns how many pixels never escaped. Per-pixel computation has no
// failure path once the request has passed validation: every coordinate
// the band loop produces is in range.
func renderBand(req Request, band Band, buf *PixelBuffer) int {
	grid := req.grid()
	interior := 0

	for y := band.Y0; y < band.Y1; y++ {
		for x := 0; x < req.Width; x++ {
			point, err := grid.PixelToComplex(x, y)
			if err != nil {
				// Unreachable: the loop stays inside the validated grid
				continue
			}
			c, escaped := shade(req, point)
			if !escaped {
				interior++
			}
			buf.SetRGB(x, y, c)
		}
	}

	return interior
}

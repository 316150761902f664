package renderer

import "time"

// RenderStats contains statistics about one completed render
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	InteriorPixels int           // Pixels that never escaped (the set itself)
	EscapedPixels  int           // Pixels that escaped within the budget
	Bands          int           // Number of partitions the image was split into
	MaxIterations  int           // Iteration budget of the request
	Elapsed        time.Duration // Wall-clock render time
}

// InteriorFraction returns the share of pixels inside the set.
func (s RenderStats) InteriorFraction() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.InteriorPixels) / float64(s.TotalPixels)
}

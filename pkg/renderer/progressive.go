package renderer

import "context"

// Update reports one completed partition during a render. Updates arrive
// in completion order, not band order; Fraction is monotonically
// non-decreasing and reaches 1.0 with the final update.
type Update struct {
	BandID    int     // Which band completed
	Completed int     // Bands completed so far
	Total     int     // Total bands in this render
	Fraction  float64 // Completed / Total
}

// Result bundles a finished render for channel delivery.
type Result struct {
	Buffer *PixelBuffer
	Stats  RenderStats
}

// RenderProgressive renders with channel-based communication. The caller
// reads band-completion updates from the first channel while the render
// runs, then receives the finished buffer on the second, or an error on
// the third. Exactly one of the result and error channels produces a
// value; all three are closed when the render goroutine exits.
//
// A slow consumer never stalls the render: updates are dropped when the
// update channel's buffer is full. The final state is always carried by
// the result itself.
func (r *Renderer) RenderProgressive(ctx context.Context, req Request) (<-chan Update, <-chan Result, <-chan error) {
	updateChan := make(chan Update, 64)
	resultChan := make(chan Result, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(updateChan)
		defer close(resultChan)
		defer close(errChan)

		onBand := func(u Update) {
			select {
			case updateChan <- u:
			case <-ctx.Done():
			default:
				// Consumer is behind; skip this update
			}
		}

		buf, stats, err := r.render(ctx, req, onBand)
		if err != nil {
			errChan <- err
			return
		}
		resultChan <- Result{Buffer: buf, Stats: stats}
	}()

	return updateChan, resultChan, errChan
}

package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/velten/go-fractal-explorer/pkg/fractal"
	"github.com/velten/go-fractal-explorer/pkg/palette"
	"github.com/velten/go-fractal-explorer/pkg/renderer"
	"github.com/velten/go-fractal-explorer/pkg/viewport"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Fractal       string  `json:"fractal"`       // "mandelbrot" or "julia"
	JuliaRe       float64 `json:"juliaRe"`       // Julia parameter, real part
	JuliaIm       float64 `json:"juliaIm"`       // Julia parameter, imaginary part
	Palette       string  `json:"palette"`       // Palette name
	ColorA        string  `json:"colorA"`        // User gradient start, hex
	ColorB        string  `json:"colorB"`        // User gradient end, hex
	CenterRe      float64 `json:"centerRe"`      // View center, real part
	CenterIm      float64 `json:"centerIm"`      // View center, imaginary part
	HalfWidth     float64 `json:"halfWidth"`     // View half width; 0 selects the default framing
	Width         int     `json:"width"`         // Image width
	Height        int     `json:"height"`        // Image height
	MaxIterations int     `json:"maxIterations"` // Iteration budget per pixel
}

// ProgressUpdate is streamed to the client as bands complete
type ProgressUpdate struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
}

// CompleteUpdate carries the finished render
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int `json:"totalPixels"`
	InteriorPixels int `json:"interiorPixels"`
	EscapedPixels  int `json:"escapedPixels"`
	MaxIterations  int `json:"maxIterations"`
}

// Event is the unified envelope for everything sent over the websocket
type Event struct {
	Type string          `json:"type"` // "console", "progress", "complete", "error"
	Data json.RawMessage `json:"data"`
}

// handlePalettes lists the selectable palettes for the client dropdown
func (s *Server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(palette.Names())
}

// runRenderSession reads one request from the websocket and streams the
// render back until completion or disconnect.
func (s *Server) runRenderSession(ctx context.Context, c *websocket.Conn) {
	var req RenderRequest
	if err := wsjson.Read(ctx, c, &req); err != nil {
		log.Printf("Error reading render request: %v", err)
		return
	}

	// Single writer goroutine keeps websocket writes serialized
	eventChan := make(chan Event, 64)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for event := range eventChan {
			if err := wsjson.Write(ctx, c, event); err != nil {
				// Client disconnected during write; keep draining so the
				// render goroutines never block on eventChan
				continue
			}
		}
	}()

	s.streamRender(ctx, req, eventChan)
	close(eventChan)
	<-writerDone
}

// streamRender runs the render and forwards its events to the client
func (s *Server) streamRender(ctx context.Context, req RenderRequest, eventChan chan<- Event) {
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())

	request, err := buildRenderRequest(req)
	if err != nil {
		sendError(eventChan, renderID, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Stream renderer log output as console events. The forwarder must be
	// fully drained before the caller closes eventChan.
	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	webLogger := NewWebLogger(renderID, consoleChan)
	go func() {
		defer close(consoleDone)
		for msg := range consoleChan {
			sendEvent(eventChan, "console", msg)
		}
	}()
	defer func() {
		close(consoleChan)
		<-consoleDone
	}()

	r := renderer.New(renderer.DefaultConfig(), webLogger)

	startTime := time.Now()
	updateChan, resultChan, errChan := r.RenderProgressive(ctx, request)

	for update := range updateChan {
		sendEvent(eventChan, "progress", ProgressUpdate{
			Completed: update.Completed,
			Total:     update.Total,
			Fraction:  update.Fraction,
		})
	}

	if err := <-errChan; err != nil {
		sendError(eventChan, renderID, err.Error())
		return
	}

	result, ok := <-resultChan
	if !ok {
		sendError(eventChan, renderID, "render finished without a result")
		return
	}

	imageData, err := encodePNGBase64(result.Buffer)
	if err != nil {
		sendError(eventChan, renderID, fmt.Sprintf("Error encoding image: %v", err))
		return
	}

	sendEvent(eventChan, "complete", CompleteUpdate{
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:    result.Stats.TotalPixels,
			InteriorPixels: result.Stats.InteriorPixels,
			EscapedPixels:  result.Stats.EscapedPixels,
			MaxIterations:  result.Stats.MaxIterations,
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
}

// buildRenderRequest validates and converts the wire request
func buildRenderRequest(req RenderRequest) (renderer.Request, error) {
	var kind fractal.Kind
	switch req.Fractal {
	case "mandelbrot", "":
		kind = fractal.Mandelbrot()
	case "julia":
		kind = fractal.Julia(complex(req.JuliaRe, req.JuliaIm))
	default:
		return renderer.Request{}, fmt.Errorf("unknown fractal kind %q", req.Fractal)
	}

	userColors := palette.DefaultUserColors
	if req.ColorA != "" && req.ColorB != "" {
		a, errA := parseHexColor(req.ColorA)
		b, errB := parseHexColor(req.ColorB)
		if errA != nil || errB != nil {
			return renderer.Request{}, fmt.Errorf("invalid gradient colors %q, %q", req.ColorA, req.ColorB)
		}
		userColors = [2]color.RGBA{a, b}
	}

	paletteName := req.Palette
	if paletteName == "" {
		paletteName = "classic"
	}
	pal, ok := palette.ByName(paletteName, userColors)
	if !ok {
		return renderer.Request{}, fmt.Errorf("unknown palette %q", req.Palette)
	}

	view := viewport.Default(req.Width, req.Height)
	if req.HalfWidth > 0 {
		view = viewport.Viewport{
			Center:      complex(req.CenterRe, req.CenterIm),
			HalfWidth:   req.HalfWidth,
			HalfHeight:  req.HalfWidth * float64(req.Height) / float64(req.Width),
			PixelWidth:  req.Width,
			PixelHeight: req.Height,
		}
	}

	request := renderer.NewRequest(view, kind, pal, req.MaxIterations)
	return request, request.Validate()
}

// sendError reports a failure as both an error event and an error-level
// console message, so it shows up in the client's log alongside the
// render output.
func sendError(eventChan chan<- Event, renderID, message string) {
	sendEvent(eventChan, "console", ConsoleMessage{
		RenderID:  renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     "error",
	})
	sendEvent(eventChan, "error", message)
}

// sendEvent marshals and queues one event. The writer goroutine drains
// the channel until the session ends, even after a client disconnect, so
// queuing never blocks the render for long.
func sendEvent(eventChan chan<- Event, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}
	eventChan <- Event{Type: eventType, Data: payload}
}

// encodePNGBase64 encodes the buffer as a base64 PNG for JSON transport
func encodePNGBase64(buf *renderer.PixelBuffer) (string, error) {
	var out bytes.Buffer
	if err := png.Encode(&out, buf.Image()); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(out.Bytes()), nil
}

// parseHexColor parses an "rrggbb" or "#rrggbb" color
func parseHexColor(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("expected 6 hex digits, got %q", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

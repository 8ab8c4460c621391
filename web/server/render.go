package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/df07/go-2d-pathtracer/pkg/integrator"
	"github.com/df07/go-2d-pathtracer/pkg/log"
	"github.com/df07/go-2d-pathtracer/pkg/renderer"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene          string  `json:"scene"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Passes         int     `json:"passes"`
	Iterations     int     `json:"iterations"` // Camera sweeps per pass
	PathLength     int     `json:"pathLength"`
	Exposure       float64 `json:"exposure"`
	PureImportance bool    `json:"pureImportance"`
	DirectLightRay bool    `json:"directLightRay"`
	Overlay        bool    `json:"overlay"`
	Seed           int64   `json:"seed"`
}

// PassUpdate is sent via SSE after every pass
type PassUpdate struct {
	PassNumber  int     `json:"passNumber"`
	TotalPasses int     `json:"totalPasses"`
	ImageData   string  `json:"imageData"` // Base64 encoded PNG
	TotalPaths  int     `json:"totalPaths"`
	HitRate     float64 `json:"hitRate"`
	LinesDrawn  int     `json:"linesDrawn"`
	Coverage    float64 `json:"coverage"`
	IsComplete  bool    `json:"isComplete"`
	ElapsedMs   int64   `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "passComplete", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender handles progressive rendering requests with SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sc, err := s.loadScene(req.Scene, req.Seed)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(renderID, consoleChan, log.NewPrinter(s.logger, log.Debug))

	settings := integrator.DefaultSettings()
	settings.PathLength = req.PathLength
	settings.Exposure = req.Exposure
	settings.PureImportance = req.PureImportance
	settings.DirectLightRay = req.DirectLightRay

	config := renderer.ProgressiveConfig{
		Width:             req.Width,
		Height:            req.Height,
		Passes:            req.Passes,
		IterationsPerPass: req.Iterations,
		Overlay:           req.Overlay,
	}
	pr, err := renderer.NewProgressiveRenderer(sc, settings, config, webLogger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	setSSEHeaders(w)
	ctx := r.Context()

	// Only the writer goroutine touches w until it returns
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writeSSEEvents(ctx, w, sseEventChan)
	}()

	consoleCtx, stopConsole := context.WithCancel(ctx)
	var consoleWG sync.WaitGroup
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(consoleCtx, consoleChan, sseEventChan)
	}()

	s.logger.Infof("%s: rendering %s at %dx%d, %d passes", renderID, req.Scene, req.Width, req.Height, req.Passes)
	passChan, errChan := pr.RenderProgressive(ctx)
	final, ok := s.handleRenderingEvents(ctx, sseEventChan, passChan, errChan, req)

	// Console messages must not trail the final event
	stopConsole()
	consoleWG.Wait()
	if ok {
		sendEvent(ctx, sseEventChan, final)
	}
	close(sseEventChan)
	<-writerDone
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes every event until the channel closes or the client goes away
func writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages as SSE events
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				s.logger.Warningf("marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleRenderingEvents forwards passes until rendering ends and returns
// the error or completion event to finish the stream with. It returns false
// when the client went away.
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan<- SSEEvent,
	passChan <-chan renderer.PassResult, errChan <-chan error, req *RenderRequest) (SSEEvent, bool) {

	startTime := time.Now()
	for result := range passChan {
		imageData, err := imageToBase64PNG(result.Image)
		if err != nil {
			s.logger.Errorf("encoding pass %d: %v", result.PassNumber, err)
			continue
		}

		update := PassUpdate{
			PassNumber:  result.PassNumber,
			TotalPasses: req.Passes,
			ImageData:   imageData,
			TotalPaths:  result.Stats.TotalPaths,
			HitRate:     result.Stats.HitRate(),
			LinesDrawn:  result.Stats.LinesDrawn,
			Coverage:    result.Stats.Coverage,
			IsComplete:  result.IsLast,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		}
		data, err := json.Marshal(update)
		if err != nil {
			s.logger.Errorf("marshaling pass update: %v", err)
			continue
		}
		sendEvent(ctx, sseEventChan, SSEEvent{Type: "passComplete", Data: string(data)})
	}

	if err := <-errChan; err != nil {
		if ctx.Err() != nil {
			s.logger.Infof("client disconnected: %v", err)
			return SSEEvent{}, false
		}
		return SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)}, true
	}
	return SSEEvent{Type: "complete", Data: "Rendering completed"}, true
}

func sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	defaults := integrator.DefaultSettings()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = DefaultScene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.Passes, err = parseIntParam(query, "passes", 10, 1, 1000); err != nil {
		return nil, err
	}
	if req.Iterations, err = parseIntParam(query, "iterations", 10, 1, 1000); err != nil {
		return nil, err
	}
	if req.PathLength, err = parseIntParam(query, "pathLength", defaults.PathLength, 0, 64); err != nil {
		return nil, err
	}
	if req.Exposure, err = parseFloatParam(query, "exposure", defaults.Exposure, 0, 1000); err != nil {
		return nil, err
	}
	if req.PureImportance, err = parseBoolParam(query, "pureImportance", false); err != nil {
		return nil, err
	}
	if req.DirectLightRay, err = parseBoolParam(query, "directLightRay", false); err != nil {
		return nil, err
	}
	if req.Overlay, err = parseBoolParam(query, "overlay", false); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", 0, 0, 1<<30)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	return req, nil
}

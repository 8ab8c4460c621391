package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/integrator"
	"github.com/df07/go-2d-pathtracer/pkg/scene"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	Width             int           // Image width
	Height            int           // Image height
	Passes            int           // Number of passes to render
	IterationsPerPass int           // Camera sweeps per pass
	TimelapseDelay    time.Duration // Pause after each pass when timelapse is on
	Overlay           bool          // Draw scene outlines over each pass image
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		Width:             512,
		Height:            512,
		Passes:            20,
		IterationsPerPass: 10,
		TimelapseDelay:    time.Second,
	}
}

// ProgressiveRenderer drives the path tracer in passes. Each pass exposes
// the camera IterationsPerPass times, flushes the remaining lines and
// composes the accumulated image.
type ProgressiveRenderer struct {
	scene       *scene.Scene
	tracer      *integrator.PathTracer
	accumulator *Accumulator
	config      ProgressiveConfig
	logger      core.Logger
	currentPass int
	started     time.Time
}

// NewProgressiveRenderer creates a renderer for s
func NewProgressiveRenderer(s *scene.Scene, settings integrator.Settings, config ProgressiveConfig, logger core.Logger) (*ProgressiveRenderer, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", config.Width, config.Height)
	}
	if s.Camera() == nil {
		return nil, errors.New("scene has no camera")
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	accumulator := NewAccumulator(config.Width, config.Height, s.Size())
	return &ProgressiveRenderer{
		scene:       s,
		tracer:      integrator.NewPathTracer(s, accumulator, settings),
		accumulator: accumulator,
		config:      config,
		logger:      logger,
	}, nil
}

// Tracer returns the path tracer, giving access to its settings
func (pr *ProgressiveRenderer) Tracer() *integrator.PathTracer {
	return pr.tracer
}

// Accumulator returns the line buffer
func (pr *ProgressiveRenderer) Accumulator() *Accumulator {
	return pr.accumulator
}

// Reset discards the accumulated image. Call it after editing the scene.
func (pr *ProgressiveRenderer) Reset() {
	pr.tracer.Reset()
	pr.currentPass = 0
}

// RenderPass runs one pass and returns the composed image
func (pr *ProgressiveRenderer) RenderPass() (*image.RGBA, RenderStats) {
	if pr.currentPass == 0 {
		pr.started = time.Now()
	}
	pr.currentPass++
	start := time.Now()

	iterationsBefore := pr.tracer.Iterations()
	cam := pr.scene.Camera()
	cam.Expose(pr.tracer, pr.config.IterationsPerPass)
	pr.tracer.Flush()

	img := pr.accumulator.Compose(pr.tracer.Iterations(), pr.tracer.Settings.Exposure)
	if pr.config.Overlay {
		DrawOverlay(img, pr.scene)
	}

	stats := RenderStats{
		PassNumber:     pr.currentPass,
		CameraRays:     pr.config.IterationsPerPass * cam.Resolution(),
		PathsAdded:     pr.tracer.Iterations() - iterationsBefore,
		TotalPaths:     pr.tracer.Iterations(),
		LinesDrawn:     pr.accumulator.LinesDrawn(),
		Coverage:       pr.accumulator.Coverage(),
		Peak:           pr.accumulator.Peak(),
		PassDuration:   time.Since(start),
		ElapsedTime:    time.Since(pr.started),
		PathLength:     pr.tracer.Settings.PathLength,
		Exposure:       pr.tracer.Settings.Exposure,
		PureImportance: pr.tracer.Settings.PureImportance,
	}
	return img, stats
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// RenderProgressive renders config.Passes passes on a separate goroutine and
// delivers each result on the returned channel. The renderer must not be
// used by the caller until the channels are closed. Cancelling ctx stops
// rendering before the next pass and reports ctx.Err().
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		pr.logger.Printf("Starting progressive rendering with %d passes...\n", pr.config.Passes)

		for pass := 1; pass <= pr.config.Passes; pass++ {
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			img, stats := pr.RenderPass()
			pr.logger.Printf("Pass %d completed in %v (%d paths, %d lines)\n",
				stats.PassNumber, stats.PassDuration, stats.TotalPaths, stats.LinesDrawn)

			result := PassResult{
				PassNumber: stats.PassNumber,
				Image:      img,
				Stats:      stats,
				IsLast:     pass == pr.config.Passes,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if pr.tracer.Settings.Timelapse && !result.IsLast {
				select {
				case <-time.After(pr.config.TimelapseDelay):
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				}
			}
		}
	}()

	return passChan, errChan
}

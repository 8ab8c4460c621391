package renderer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/geometry"
	"github.com/df07/go-2d-pathtracer/pkg/integrator"
	"github.com/df07/go-2d-pathtracer/pkg/material"
	"github.com/df07/go-2d-pathtracer/pkg/scene"
)

// createTestScene builds a diffuse box room with one light and a camera
// looking down at the floor
func createTestScene() *scene.Scene {
	seeds := core.NewSeedSource(1)
	s := scene.NewScene(100, 100)
	corners := []core.Vec2{
		core.NewVec2(5, 5), core.NewVec2(95, 5), core.NewVec2(95, 95), core.NewVec2(5, 95),
	}
	for i := range corners {
		wall := geometry.NewSegment(corners[i], corners[(i+1)%len(corners)])
		s.AddPrimitive(geometry.NewPrimitive(wall, core.Gray(1), material.NewDiffuse(core.Gray(0.8), seeds.NextSampler())))
	}
	s.AddLight(scene.NewPointLight(core.NewVec2(50, 80), core.Gray(20)))
	s.SetCamera(scene.NewCamera(core.NewVec2(50, 50), core.NewVec2(0, -1), 2, 32, seeds.NextSampler()))
	return s
}

func testConfig() ProgressiveConfig {
	config := DefaultProgressiveConfig()
	config.Width = 32
	config.Height = 32
	config.Passes = 3
	config.IterationsPerPass = 2
	config.TimelapseDelay = 20 * time.Millisecond
	return config
}

func TestNewProgressiveRenderer_Validation(t *testing.T) {
	if _, err := NewProgressiveRenderer(createTestScene(), integrator.DefaultSettings(), ProgressiveConfig{}, nil); err == nil {
		t.Error("Expected error for zero image size")
	}
	if _, err := NewProgressiveRenderer(scene.NewScene(10, 10), integrator.DefaultSettings(), testConfig(), nil); err == nil {
		t.Error("Expected error for scene without camera")
	}
}

func TestRenderPass(t *testing.T) {
	pr, err := NewProgressiveRenderer(createTestScene(), integrator.DefaultSettings(), testConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	img, stats := pr.RenderPass()
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Errorf("Expected 32x32 image, got %v", img.Bounds())
	}
	if stats.PassNumber != 1 {
		t.Errorf("Expected pass 1, got %d", stats.PassNumber)
	}
	if stats.CameraRays != 64 {
		t.Errorf("Expected 64 camera rays, got %d", stats.CameraRays)
	}
	// Every ray leaves from inside a closed room
	if stats.PathsAdded != 64 || stats.HitRate() != 1 {
		t.Errorf("Expected all 64 rays to hit, got %d (%f)", stats.PathsAdded, stats.HitRate())
	}
	if stats.LinesDrawn == 0 || stats.Coverage == 0 {
		t.Errorf("Expected lines in the accumulator, got %d lines and coverage %f", stats.LinesDrawn, stats.Coverage)
	}

	_, stats = pr.RenderPass()
	if stats.PassNumber != 2 || stats.TotalPaths != 128 {
		t.Errorf("Expected pass 2 with 128 paths, got pass %d with %d", stats.PassNumber, stats.TotalPaths)
	}

	pr.Reset()
	if pr.Tracer().Iterations() != 0 || pr.Accumulator().LinesDrawn() != 0 {
		t.Error("Expected reset to clear iterations and the accumulator")
	}
	_, stats = pr.RenderPass()
	if stats.PassNumber != 1 {
		t.Errorf("Expected pass numbering to restart, got %d", stats.PassNumber)
	}
}

func TestRenderProgressive(t *testing.T) {
	pr, err := NewProgressiveRenderer(createTestScene(), integrator.DefaultSettings(), testConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	passChan, errChan := pr.RenderProgressive(context.Background())

	var results []PassResult
	for result := range passChan {
		results = append(results, result)
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 passes, got %d", len(results))
	}
	for i, result := range results {
		if result.PassNumber != i+1 {
			t.Errorf("Expected pass %d, got %d", i+1, result.PassNumber)
		}
		if result.IsLast != (i == 2) {
			t.Errorf("Pass %d: expected IsLast=%v", result.PassNumber, i == 2)
		}
		if i > 0 && result.Stats.TotalPaths < results[i-1].Stats.TotalPaths {
			t.Errorf("Expected path count to grow, got %d after %d", result.Stats.TotalPaths, results[i-1].Stats.TotalPaths)
		}
	}
}

func TestRenderProgressive_Cancelled(t *testing.T) {
	pr, err := NewProgressiveRenderer(createTestScene(), integrator.DefaultSettings(), testConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, errChan := pr.RenderProgressive(ctx)
	for range passChan {
		t.Error("Expected no passes after cancellation")
	}
	if err := <-errChan; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRenderProgressive_Timelapse(t *testing.T) {
	settings := integrator.DefaultSettings()
	settings.Timelapse = true
	config := testConfig()
	config.Passes = 2
	pr, err := NewProgressiveRenderer(createTestScene(), settings, config, nil)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	start := time.Now()
	passChan, errChan := pr.RenderProgressive(context.Background())
	for range passChan {
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// One pause between the two passes, none after the last
	if elapsed := time.Since(start); elapsed < config.TimelapseDelay {
		t.Errorf("Expected at least %v with timelapse, took %v", config.TimelapseDelay, elapsed)
	}
}

func TestFormatStatsTable(t *testing.T) {
	stats := []RenderStats{
		{PassNumber: 1, CameraRays: 100, PathsAdded: 50, TotalPaths: 50, LinesDrawn: 120, Coverage: 0.25, PassDuration: time.Millisecond},
		{PassNumber: 2, CameraRays: 100, PathsAdded: 80, TotalPaths: 130, LinesDrawn: 300, Coverage: 0.5, PassDuration: time.Millisecond, ElapsedTime: 2 * time.Millisecond},
	}

	table := FormatStatsTable(stats)
	for _, want := range []string{"Pass", "Hit rate", "50.0 %", "80.0 %", "TOTAL", "2ms"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, table)
		}
	}
}

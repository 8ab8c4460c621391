package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/integrator"
	"github.com/df07/go-2d-pathtracer/pkg/loaders"
	"github.com/df07/go-2d-pathtracer/pkg/log"
	"github.com/df07/go-2d-pathtracer/pkg/material"
	"github.com/df07/go-2d-pathtracer/pkg/renderer"
	"github.com/df07/go-2d-pathtracer/pkg/scene"
	"github.com/df07/go-2d-pathtracer/web/server"
)

var logger = log.New("pathtracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// createScene loads a built-in scene by id, or a scene file when name ends in .json
func createScene(name string, seeds *core.SeedSource) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("missing scene name")
	}
	if strings.HasSuffix(name, ".json") {
		return loaders.LoadScene(name, seeds)
	}
	return loaders.LoadBuiltinScene(name, seeds)
}

// sceneArg returns the scene named by the first argument, falling back to the --scene flag
func sceneArg(ctx *cli.Context) string {
	if ctx.NArg() > 0 {
		return ctx.Args().First()
	}
	return ctx.String("scene")
}

// createOutputDir returns output/<scene base name>
func createOutputDir(sceneName string) string {
	base := filepath.Base(sceneName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "scene"
	}
	return filepath.Join("output", base)
}

// savePNG writes img to filename, creating parent directories
func savePNG(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return file.Close()
}

// Render a scene progressively.
func renderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneName := sceneArg(ctx)
	sc, err := createScene(sceneName, core.NewSeedSource(ctx.Int64("seed")))
	if err != nil {
		return err
	}

	settings := integrator.DefaultSettings()
	settings.PathLength = ctx.Int("path-length")
	settings.Exposure = ctx.Float64("exposure")
	settings.PureImportance = ctx.Bool("pure-importance")
	settings.DirectLightRay = ctx.Bool("direct-light-ray")
	settings.Timelapse = ctx.Bool("timelapse")
	if settings.PathLength < 0 {
		return fmt.Errorf("path length must not be negative, got %d", settings.PathLength)
	}

	config := renderer.ProgressiveConfig{
		Width:             ctx.Int("width"),
		Height:            ctx.Int("height"),
		Passes:            ctx.Int("passes"),
		IterationsPerPass: ctx.Int("iterations"),
		TimelapseDelay:    ctx.Duration("timelapse-delay"),
		Overlay:           ctx.Bool("overlay"),
	}
	if config.Passes <= 0 || config.IterationsPerPass <= 0 {
		return fmt.Errorf("passes and iterations must be positive, got %d and %d", config.Passes, config.IterationsPerPass)
	}

	pr, err := renderer.NewProgressiveRenderer(sc, settings, config, log.NewPrinter(logger, log.Debug))
	if err != nil {
		return err
	}

	filename := ctx.String("out")
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(createOutputDir(sceneName), fmt.Sprintf("render_%s.png", timestamp))
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering %s at %dx%d with %d passes", sceneName, config.Width, config.Height, config.Passes)
	passChan, errChan := pr.RenderProgressive(runCtx)

	var (
		last  *image.RGBA
		stats []renderer.RenderStats
	)
	for result := range passChan {
		last = result.Image
		stats = append(stats, result.Stats)
		logger.Infof("pass %d/%d: %d paths, %.1f%% coverage", result.PassNumber, config.Passes,
			result.Stats.TotalPaths, result.Stats.Coverage*100)

		if settings.Timelapse && !result.IsLast {
			frame := strings.TrimSuffix(filename, ".png") + fmt.Sprintf("_pass%03d.png", result.PassNumber)
			if err := savePNG(frame, result.Image); err != nil {
				return err
			}
		}
	}

	if err := <-errChan; err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warning("rendering interrupted, saving the last completed pass")
	}
	if last == nil {
		return errors.New("no pass completed")
	}

	if err := savePNG(filename, last); err != nil {
		return err
	}

	logger.Noticef("render statistics\n%s", renderer.FormatStatsTable(stats))
	logger.Noticef("render saved as %s", filename)
	return nil
}

// Display the contents of a scene.
func inspectScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneName := sceneArg(ctx)
	sc, err := createScene(sceneName, core.NewSeedSource(0))
	if err != nil {
		return err
	}

	logger.Noticef("scene %s (%gx%g)\n%s", sceneName, sc.Size().X, sc.Size().Y, formatSceneTable(sc))
	return nil
}

func formatSceneTable(sc *scene.Scene) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Kind", "Shape", "Material", "Albedo", "Color"})

	for i, p := range sc.Primitives() {
		materialName, albedo := "none", "-"
		if p.Material != nil {
			materialName = p.Material.Kind().String()
			albedo = formatVec3(p.Material.Albedo())
			if p.Material.Kind() == material.Dielectric {
				materialName = fmt.Sprintf("%s (ior %g)", materialName, p.Material.IOR())
			}
		}
		table.Append([]string{
			fmt.Sprintf("%d", i),
			"primitive",
			p.Shape.String(),
			materialName,
			albedo,
			formatVec3(p.Color),
		})
	}

	for i, l := range sc.Lights() {
		table.Append([]string{
			fmt.Sprintf("%d", i),
			"light",
			fmt.Sprintf("point (%g, %g)", l.Position.X, l.Position.Y),
			"-",
			"-",
			formatVec3(l.Intensity),
		})
	}

	if cam := sc.Camera(); cam != nil {
		table.SetFooter([]string{
			"",
			"camera",
			fmt.Sprintf("(%g, %g) dir (%.3g, %.3g)", cam.Position().X, cam.Position().Y, cam.Direction().X, cam.Direction().Y),
			fmt.Sprintf("fov %.3g rad", cam.FOV()),
			fmt.Sprintf("%d rays", cam.Resolution()),
			"",
		})
	}

	table.Render()
	return buf.String()
}

func formatVec3(v core.Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// List the built-in scenes.
func listScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes, err := loaders.ListBuiltinScenes()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Id", "Name", "Primitives", "Lights", "Description"})
	for _, info := range scenes {
		table.Append([]string{
			info.ID,
			info.Name,
			fmt.Sprintf("%d", info.Primitives),
			fmt.Sprintf("%d", info.Lights),
			info.Description,
		})
	}
	table.Render()

	logger.Noticef("built-in scenes\n%s", buf.String())
	return nil
}

// Serve renders over http.
func serveWeb(ctx *cli.Context) error {
	setupLogging(ctx)

	port := ctx.Int("port")
	logger.Noticef("visit http://localhost:%d/api/scenes to list scenes", port)
	return server.NewServer(port).Start()
}

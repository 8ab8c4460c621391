package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-2d-pathtracer/pkg/integrator"
	"github.com/df07/go-2d-pathtracer/pkg/renderer"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	defaults := integrator.DefaultSettings()
	config := renderer.DefaultProgressiveConfig()
	sceneFlag := cli.StringFlag{
		Name:  "scene, s",
		Value: "color_bleeding",
		Usage: "built-in scene id or path to a .json scene file",
	}

	app := cli.NewApp()
	app.Name = "go-2d-pathtracer"
	app.Usage = "render 2D scenes by tracing paths as lines"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene progressively and save it as png",
			Description: `
Fire the camera's rays into the scene in passes. Every traced path is drawn as
a chain of lines whose brightness follows the flux carried back from the light
sources. The image gets less noisy with every pass.

Output is saved to output/<scene>/render_<timestamp>.png unless --out is set.
With --timelapse every pass is written next to the final image.`,
			Flags: []cli.Flag{
				sceneFlag,
				cli.IntFlag{
					Name:  "width",
					Value: config.Width,
					Usage: "image width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: config.Height,
					Usage: "image height",
				},
				cli.IntFlag{
					Name:  "passes",
					Value: config.Passes,
					Usage: "number of progressive passes",
				},
				cli.IntFlag{
					Name:  "iterations",
					Value: config.IterationsPerPass,
					Usage: "camera sweeps per pass",
				},
				cli.IntFlag{
					Name:  "path-length",
					Value: defaults.PathLength,
					Usage: "maximum number of bounces per path",
				},
				cli.Float64Flag{
					Name:  "exposure",
					Value: defaults.Exposure,
					Usage: "exposure scale for composing the image",
				},
				cli.BoolFlag{
					Name:  "pure-importance",
					Usage: "replace direct lighting with a constant to visualize importance",
				},
				cli.BoolFlag{
					Name:  "direct-light-ray",
					Usage: "draw the light connections of escaping paths",
				},
				cli.BoolFlag{
					Name:  "timelapse",
					Usage: "pause between passes and save every pass",
				},
				cli.DurationFlag{
					Name:  "timelapse-delay",
					Value: config.TimelapseDelay,
					Usage: "pause between passes when timelapse is on",
				},
				cli.BoolFlag{
					Name:  "overlay",
					Usage: "draw scene outlines, camera frustum and lights over the image",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 0,
					Usage: "base seed for the random samplers",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the final pass",
				},
			},
			Action: renderScene,
		},
		{
			Name:      "inspect",
			Usage:     "list the primitives, lights and camera of a scene",
			ArgsUsage: "[scene id or file.json]",
			Flags:     []cli.Flag{sceneFlag},
			Action:    inspectScene,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: listScenes,
		},
		{
			Name:  "serve",
			Usage: "serve progressive renders over http",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to serve on",
				},
			},
			Action: serveWeb,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

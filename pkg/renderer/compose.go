package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-2d-pathtracer/pkg/core"
)

// Compose averages the buffer over iterations, scales it by exposure and
// converts it to an 8-bit image. No iterations yield a black image.
func (a *Accumulator) Compose(iterations int, exposure float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, a.width, a.height))

	scale := 0.0
	if iterations > 0 {
		scale = exposure / float64(iterations)
	}

	for y := 0; y < a.height; y++ {
		for x := 0; x < a.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(a.pixels[y*a.width+x].Multiply(scale)))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Clamp before gamma, negative values have no square root
	colorVec = colorVec.Clamp(0.0, 1.0)
	colorVec = colorVec.GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

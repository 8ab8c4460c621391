package renderer

import (
	"math"

	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/integrator"
)

// Accumulator is a floating point RGB image that lines are added into.
// It maps scene space (y up) onto pixels (row 0 at the top).
//
// Lines are rasterized with a DDA that writes one sample per step along the
// major axis, so a diagonal line gets fewer samples per unit length than an
// axis-aligned one. The path tracer's rasterization bias factor compensates.
type Accumulator struct {
	width, height int
	scale         core.Vec2 // Pixels per scene unit
	pixels        []core.Vec3
	lines         int
}

// NewAccumulator creates a black buffer of width x height pixels covering a
// scene of the given extent
func NewAccumulator(width, height int, sceneSize core.Vec2) *Accumulator {
	return &Accumulator{
		width:  width,
		height: height,
		scale:  core.NewVec2(float64(width)/sceneSize.X, float64(height)/sceneSize.Y),
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the image width in pixels
func (a *Accumulator) Width() int { return a.width }

// Height returns the image height in pixels
func (a *Accumulator) Height() int { return a.height }

// LinesDrawn returns the number of lines added since the last Clear
func (a *Accumulator) LinesDrawn() int { return a.lines }

// At returns the accumulated value of a pixel
func (a *Accumulator) At(x, y int) core.Vec3 {
	return a.pixels[y*a.width+x]
}

// ToPixel maps a scene position to continuous pixel coordinates
func (a *Accumulator) ToPixel(p core.Vec2) core.Vec2 {
	return core.NewVec2(p.X*a.scale.X, float64(a.height)-p.Y*a.scale.Y)
}

// DrawLines adds every line with its constant color
func (a *Accumulator) DrawLines(lines []integrator.DrawLine) {
	for _, line := range lines {
		a.drawLine(a.ToPixel(line.Start), a.ToPixel(line.End), line.Color)
	}
	a.lines += len(lines)
}

func (a *Accumulator) drawLine(start, end core.Vec2, color core.Vec3) {
	d := end.Subtract(start)
	steps := int(math.Ceil(max(math.Abs(d.X), math.Abs(d.Y))))
	if steps == 0 {
		a.add(start, color)
		return
	}

	step := d.Multiply(1 / float64(steps))
	p := start.Add(step.Multiply(0.5))
	for i := 0; i < steps; i++ {
		a.add(p, color)
		p = p.Add(step)
	}
}

func (a *Accumulator) add(p core.Vec2, color core.Vec3) {
	// Positive form rejects NaN coordinates
	if !(p.X >= 0 && p.X < float64(a.width) && p.Y >= 0 && p.Y < float64(a.height)) {
		return
	}
	i := int(p.Y)*a.width + int(p.X)
	a.pixels[i] = a.pixels[i].Add(color)
}

// Clear zeroes every pixel
func (a *Accumulator) Clear() {
	clear(a.pixels)
	a.lines = 0
}

// Peak returns the largest channel value in the buffer
func (a *Accumulator) Peak() float64 {
	peak := 0.0
	for _, p := range a.pixels {
		peak = max(peak, p.MaxComponent())
	}
	return peak
}

// Coverage returns the fraction of pixels that received any light
func (a *Accumulator) Coverage() float64 {
	if len(a.pixels) == 0 {
		return 0
	}
	lit := 0
	for _, p := range a.pixels {
		if !p.IsZero() {
			lit++
		}
	}
	return float64(lit) / float64(len(a.pixels))
}

package scene

import (
	"github.com/df07/go-2d-pathtracer/pkg/core"
)

// RaySampler consumes camera rays. The path tracer is the production
// implementation.
type RaySampler interface {
	Sample(ray core.Ray)
}

// Camera is a point emitter that fans rays across its field of view
type Camera struct {
	position   core.Vec2
	direction  core.Vec2
	fov        float64 // Opening angle in radians
	resolution int     // Rays per exposure iteration
	sampler    core.Sampler
}

// NewCamera creates a camera. The direction is normalized and the field of
// view is given in radians.
func NewCamera(position, direction core.Vec2, fov float64, resolution int, sampler core.Sampler) *Camera {
	return &Camera{
		position:   position,
		direction:  direction.Normalize(),
		fov:        fov,
		resolution: resolution,
		sampler:    sampler,
	}
}

// Position returns the camera origin
func (c *Camera) Position() core.Vec2 { return c.position }

// Direction returns the unit view direction
func (c *Camera) Direction() core.Vec2 { return c.direction }

// FOV returns the opening angle in radians
func (c *Camera) FOV() float64 { return c.fov }

// Resolution returns the number of angular bins per iteration
func (c *Camera) Resolution() int { return c.resolution }

// Expose fires resolution rays per iteration into sampler. The field of view
// is split into resolution equal bins from +fov/2 down to -fov/2 and each ray
// is jittered uniformly within its bin.
func (c *Camera) Expose(sampler RaySampler, iterations int) {
	if c.resolution <= 0 {
		return
	}
	step := c.fov / float64(c.resolution)

	for i := 0; i < iterations; i++ {
		upper := c.fov / 2
		lower := upper - step
		for j := 0; j < c.resolution; j++ {
			xi := c.sampler.Get1D()
			angle := upper + xi*(lower-upper)

			sampler.Sample(core.NewRay(c.position, c.direction.Rotate(angle).Normalize()))

			upper = lower
			lower -= step
		}
	}
}

// Move translates the camera by (dx, dy)
func (c *Camera) Move(dx, dy float64) {
	c.position = c.position.Add(core.NewVec2(dx, dy))
}

// SetPosition places the camera at position
func (c *Camera) SetPosition(position core.Vec2) {
	c.position = position
}

// SetDirection changes the view direction, normalizing it
func (c *Camera) SetDirection(direction core.Vec2) {
	c.direction = direction.Normalize()
}

// Rotate turns the view direction counter-clockwise by angle radians
func (c *Camera) Rotate(angle float64) {
	c.SetDirection(c.direction.Rotate(angle))
}

// SetFOV changes the opening angle in radians
func (c *Camera) SetFOV(fov float64) {
	c.fov = fov
}

// ContainsPoint reports whether point lies within the pick radius
func (c *Camera) ContainsPoint(point core.Vec2) bool {
	return withinRadius(c.position, point, pickRadius)
}

// FrustumEdges returns the unit directions of the two field-of-view limits,
// upper (+fov/2) first
func (c *Camera) FrustumEdges() (upper, lower core.Vec2) {
	return c.direction.Rotate(c.fov / 2), c.direction.Rotate(-c.fov / 2)
}

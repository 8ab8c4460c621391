package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-2d-pathtracer/pkg/core"
)

// circleOutlineSegments is the vertex count of a circle outline
const circleOutlineSegments = 360

// Circle is a filled disc. Scene files call it "sphere".
type Circle struct {
	Center core.Vec2
	Radius float64
}

// NewCircle creates a new circle
func NewCircle(center core.Vec2, radius float64) *Circle {
	return &Circle{Center: center, Radius: radius}
}

func (c *Circle) String() string {
	return fmt.Sprintf("circle (%.2f, %.2f) r=%.2f", c.Center.X, c.Center.Y, c.Radius)
}

// intersect solves |o + t*d - c|^2 = r^2 for a unit direction d, preferring
// the near root and falling back to the far root
func (c *Circle) intersect(ray core.Ray, tMin, tMax float64) (float64, core.Vec2, bool) {
	p := ray.Origin.Subtract(c.Center)
	b := p.Dot(ray.Direction)
	cc := p.Dot(p) - c.Radius*c.Radius

	discriminant := b*b - cc
	if !(discriminant >= 0) {
		return 0, core.Vec2{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	t := -b - sqrtD
	if !inRange(t, tMin, tMax) {
		t = -b + sqrtD
		if !inRange(t, tMin, tMax) {
			return 0, core.Vec2{}, false
		}
	}

	normal := p.Add(ray.Direction.Multiply(t)).Normalize()
	return t, normal, true
}

func (c *Circle) containsPoint(point core.Vec2) bool {
	return point.Subtract(c.Center).LengthSquared() <= c.Radius*c.Radius
}

func (c *Circle) outline() []core.Vec2 {
	vertices := make([]core.Vec2, 0, circleOutlineSegments)
	for i := 0; i < circleOutlineSegments; i++ {
		theta := 2.0 * math.Pi * float64(i) / float64(circleOutlineSegments)
		sin, cos := math.Sincos(theta)
		vertices = append(vertices, c.Center.Add(core.NewVec2(c.Radius*cos, c.Radius*sin)))
	}
	return vertices
}

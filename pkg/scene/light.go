package scene

import "github.com/df07/go-2d-pathtracer/pkg/core"

// pickRadius is the radius of the disc around lights and the camera that
// counts as a hit when picking
const pickRadius = 1.0

// PointLight is an isotropic light at a single position
type PointLight struct {
	Position  core.Vec2
	Intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec2, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Move translates the light by (dx, dy)
func (l *PointLight) Move(dx, dy float64) {
	l.Position = l.Position.Add(core.NewVec2(dx, dy))
}

// ContainsPoint reports whether point lies within the pick radius
func (l *PointLight) ContainsPoint(point core.Vec2) bool {
	return withinRadius(l.Position, point, pickRadius)
}

func withinRadius(center, point core.Vec2, radius float64) bool {
	return center.Subtract(point).LengthSquared() <= radius*radius
}

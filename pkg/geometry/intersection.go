package geometry

import (
	"math"

	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/material"
)

// DefaultTMin is the smallest accepted hit distance, keeping rays from
// re-hitting the surface they start on
const DefaultTMin = 1e-4

// Intersection records the closest hit found so far. A hit at distance t is
// accepted only when TMin < t < TMax; every accepted hit lowers TMax, so a
// sweep over all primitives leaves the globally closest hit in the record.
type Intersection struct {
	TMin      float64
	TMax      float64
	Normal    core.Vec2          // Unit normal, orientation not guaranteed
	Material  *material.Material // Material of the closest primitive
	Primitive *Primitive         // Closest primitive, nil while nothing was hit
}

// NewIntersection creates an empty record spanning (DefaultTMin, +Inf)
func NewIntersection() Intersection {
	return Intersection{TMin: DefaultTMin, TMax: math.Inf(1)}
}

// Hit reports whether any primitive has been recorded
func (i *Intersection) Hit() bool {
	return i.Primitive != nil
}

// Point returns the hit position along ray
func (i *Intersection) Point(ray core.Ray) core.Vec2 {
	return ray.At(i.TMax)
}

// inRange reports whether t lies strictly inside (tMin, tMax). NaN never does.
func inRange(t, tMin, tMax float64) bool {
	return t > tMin && t < tMax
}

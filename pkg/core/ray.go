package core

// Ray represents a ray with an origin and a normalized direction.
// A new Ray value is created for every bounce; rays are never mutated.
type Ray struct {
	Origin    Vec2
	Direction Vec2
}

// NewRay creates a new ray
func NewRay(origin, direction Vec2) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec2 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

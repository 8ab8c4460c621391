package material

import "github.com/df07/go-2d-pathtracer/pkg/core"

// NewAreaLight creates an emitting surface. It scatters like a mirror with
// the given albedo and adds emission at every hit.
func NewAreaLight(albedo, emission core.Vec3) *Material {
	return &Material{kind: AreaLight, albedo: albedo, emission: emission}
}

// Emission returns the constant emitted intensity
func (m *Material) Emission() core.Vec3 {
	return m.emission
}

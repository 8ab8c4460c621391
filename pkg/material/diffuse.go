package material

import "github.com/df07/go-2d-pathtracer/pkg/core"

// NewDiffuse creates a diffuse material drawing directions from sampler
func NewDiffuse(albedo core.Vec3, sampler core.Sampler) *Material {
	return &Material{kind: Diffuse, albedo: albedo, sampler: sampler}
}

// sampleDiffuse picks a direction on the half circle facing the observer,
// uniform in the sine of the angle to the normal
func (m *Material) sampleDiffuse(incident core.Vec2) core.Vec2 {
	sinTheta := 2.0*m.sampler.Get1D() - 1.0
	cosTheta := sqrtClamped(1.0 - sinTheta*sinTheta)
	return core.Vec2{X: sinTheta, Y: cosTheta * sign(incident.Y)}
}

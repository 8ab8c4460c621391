package material

import (
	"math"

	"github.com/df07/go-2d-pathtracer/pkg/core"
)

// Kind identifies the scattering model of a Material
type Kind int

const (
	Diffuse Kind = iota + 1
	Mirror
	Dielectric
	AreaLight
)

func (k Kind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Mirror:
		return "mirror"
	case Dielectric:
		return "dielectric"
	case AreaLight:
		return "area-light"
	}
	return "unknown"
}

// Material is a closed set of surface models. All operations work in a local
// frame where Y is the surface normal and X its perpendicular; surfaces are
// two-sided, so the sign of the normal carries no meaning.
//
// A Material owns its random generator. It is not safe for concurrent use.
type Material struct {
	kind     Kind
	albedo   core.Vec3    // Reflection color
	ior      float64      // Index of refraction (Dielectric only)
	emission core.Vec3    // Emitted intensity (AreaLight only)
	sampler  core.Sampler // Private generator for stochastic sampling
}

// Kind returns the material variant
func (m *Material) Kind() Kind {
	return m.kind
}

// Albedo returns the reflection color
func (m *Material) Albedo() core.Vec3 {
	return m.albedo
}

// IOR returns the index of refraction, 0 for non-dielectrics
func (m *Material) IOR() float64 {
	return m.ior
}

// Evaluate returns the reflectance factor for light arriving from excident
// and leaving towards incident. Both directions point away from the surface.
func (m *Material) Evaluate(incident, excident, normal core.Vec2) core.Vec3 {
	switch m.kind {
	case Diffuse:
		return m.albedo.Multiply(0.5)
	case Mirror, Dielectric, AreaLight:
		// Placeholder for delta lobes: direct light sampling has zero measure
		return m.albedo
	}
	return core.Vec3{}
}

// SampleDirection draws an outgoing local direction for the local incident
// direction (pointing towards the observer). The returned pdf is the Monte
// Carlo weight divisor; it stays 1 for every variant.
func (m *Material) SampleDirection(incident, normal core.Vec2) (core.Vec2, float64) {
	pdf := 1.0
	switch m.kind {
	case Diffuse:
		return m.sampleDiffuse(incident), pdf
	case Mirror, AreaLight:
		return reflectLocal(incident), pdf
	case Dielectric:
		return m.sampleDielectric(incident), pdf
	}
	return reflectLocal(incident), pdf
}

// SelfEmission returns the emitted intensity, zero unless the material is an area light
func (m *Material) SelfEmission(normal core.Vec2) core.Vec3 {
	if m.kind == AreaLight {
		return m.emission
	}
	return core.Vec3{}
}

// reflectLocal mirrors a local direction about the normal axis
func reflectLocal(incident core.Vec2) core.Vec2 {
	return core.Vec2{X: -incident.X, Y: incident.Y}
}

// sign returns -1, 0 or 1
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func sqrtClamped(x float64) float64 {
	return math.Sqrt(math.Max(0, x))
}

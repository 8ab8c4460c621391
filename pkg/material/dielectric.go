package material

import (
	"math"

	"github.com/df07/go-2d-pathtracer/pkg/core"
)

// DefaultIOR is the refractive index used for scene-file dielectrics
const DefaultIOR = 1.5

// NewDielectric creates a transparent material that reflects or refracts
// according to the Fresnel term
func NewDielectric(albedo core.Vec3, ior float64, sampler core.Sampler) *Material {
	return &Material{kind: Dielectric, albedo: albedo, ior: ior, sampler: sampler}
}

// sampleDielectric chooses reflection with probability equal to the Fresnel
// reflectance, refraction otherwise
func (m *Material) sampleDielectric(incident core.Vec2) core.Vec2 {
	eta := 1.0 / m.ior
	if incident.Y < 0 {
		eta = m.ior
	}

	reflectance, _ := DielectricReflectance(eta, math.Abs(incident.Y))
	if reflectance >= 1 || m.sampler.Get1D() < reflectance {
		return reflectLocal(incident)
	}

	return core.Vec2{
		X: -incident.X * eta,
		Y: sqrtClamped(1.0-eta*eta*incident.X*incident.X) * -sign(incident.Y),
	}
}

// DielectricReflectance evaluates the unpolarized Fresnel equations for a
// relative index eta and incident cosine. Total internal reflection returns
// exactly 1 with a transmitted cosine of 0.
func DielectricReflectance(eta, cosThetaI float64) (reflectance, cosThetaT float64) {
	sinThetaTSq := eta * eta * (1.0 - cosThetaI*cosThetaI)
	if sinThetaTSq > 1.0 {
		return 1.0, 0.0
	}
	cosThetaT = math.Sqrt(1.0 - sinThetaTSq)

	rs := (eta*cosThetaI - cosThetaT) / (eta*cosThetaI + cosThetaT)
	rp := (eta*cosThetaT - cosThetaI) / (eta*cosThetaT + cosThetaI)

	return (rs*rs + rp*rp) * 0.5, cosThetaT
}

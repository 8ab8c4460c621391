package material

import "github.com/df07/go-2d-pathtracer/pkg/core"

// NewMirror creates a perfect specular reflector
func NewMirror(albedo core.Vec3) *Material {
	return &Material{kind: Mirror, albedo: albedo}
}

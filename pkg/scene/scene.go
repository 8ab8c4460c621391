package scene

import (
	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/geometry"
)

// Scene holds every primitive, point light and the single camera of a 2D
// scene, together with its extent in scene units.
//
// A Scene is not safe for concurrent mutation. Callers must not move,
// add or remove objects while a sampling batch is running, and must reset
// the integrator after any edit.
type Scene struct {
	primitives []*geometry.Primitive
	lights     []*PointLight
	camera     *Camera
	width      float64
	height     float64
}

// NewScene creates an empty scene of the given extent
func NewScene(width, height float64) *Scene {
	return &Scene{width: width, height: height}
}

// AddPrimitive appends a primitive to the scene
func (s *Scene) AddPrimitive(p *geometry.Primitive) {
	s.primitives = append(s.primitives, p)
}

// AddLight appends a point light to the scene
func (s *Scene) AddLight(light *PointLight) {
	s.lights = append(s.lights, light)
}

// SetCamera replaces the scene camera
func (s *Scene) SetCamera(camera *Camera) {
	s.camera = camera
}

// Camera returns the scene camera, nil if none was set
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Primitives returns the primitives in insertion order
func (s *Scene) Primitives() []*geometry.Primitive {
	return s.primitives
}

// Lights returns the point lights in insertion order
func (s *Scene) Lights() []*PointLight {
	return s.lights
}

// ClosestHit tests every primitive and returns the nearest intersection.
// Each hit narrows the search interval so later primitives only replace it
// when they are strictly closer.
func (s *Scene) ClosestHit(ray core.Ray) (geometry.Intersection, bool) {
	isect := geometry.NewIntersection()
	hitAny := false
	for _, p := range s.primitives {
		if p.ClosestHit(ray, &isect) {
			hitAny = true
		}
	}
	return isect, hitAny
}

// AnyHit reports whether any primitive blocks the ray closer than maxDistance
func (s *Scene) AnyHit(ray core.Ray, maxDistance float64) bool {
	for _, p := range s.primitives {
		if p.AnyHit(ray, maxDistance) {
			return true
		}
	}
	return false
}

// Size returns the scene extent
func (s *Scene) Size() core.Vec2 {
	return core.NewVec2(s.width, s.height)
}

// SetSize changes the scene extent
func (s *Scene) SetSize(width, height float64) {
	s.width = width
	s.height = height
}

// ToScreenSpace maps a scene position to the normalized [-1, 1] display square
func (s *Scene) ToScreenSpace(p core.Vec2) core.Vec2 {
	return core.NewVec2(p.X*2/s.width-1, p.Y*2/s.height-1)
}

// ToSceneSpace is the inverse of ToScreenSpace
func (s *Scene) ToSceneSpace(p core.Vec2) core.Vec2 {
	return core.NewVec2((p.X+1)/2*s.width, (p.Y+1)/2*s.height)
}

// Reset removes every object and zeroes the extent
func (s *Scene) Reset() {
	s.primitives = nil
	s.lights = nil
	s.camera = nil
	s.width = 0
	s.height = 0
}

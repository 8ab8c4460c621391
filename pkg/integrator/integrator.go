package integrator

import (
	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/geometry"
	"github.com/df07/go-2d-pathtracer/pkg/scene"
)

// Scene is the query surface the path tracer needs. *scene.Scene implements it.
type Scene interface {
	ClosestHit(ray core.Ray) (geometry.Intersection, bool)
	AnyHit(ray core.Ray, maxDistance float64) bool
	Lights() []*scene.PointLight
}

// PathSegment is one bounce of a traced path, in camera-to-light order
type PathSegment struct {
	Origin       core.Vec2
	Destination  core.Vec2
	Reflectance  core.Vec3 // Material weight at Destination
	Illumination core.Vec3 // Direct light and emission gathered at Destination
}

// DrawLine is a flux-carrying line in light transport direction. Color is
// the flux leaving Start.
type DrawLine struct {
	Start core.Vec2
	End   core.Vec2
	Color core.Vec3
}

// LineSink receives batches of lines and blends them additively into a
// persistent image. DrawLines must not retain the slice.
type LineSink interface {
	DrawLines(lines []DrawLine)
	Clear()
}

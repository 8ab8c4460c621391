package integrator

import (
	"math"

	"github.com/df07/go-2d-pathtracer/pkg/core"
)

const (
	// RayEpsilon offsets new rays from the surface they leave
	RayEpsilon = 1e-2

	// pureImportanceLevel replaces all gathered light in pure importance mode
	pureImportanceLevel = 100.0

	// directLightReflectance weights the debug connection to a visible light
	directLightReflectance = 0.1
)

// PathTracer traces camera paths through a 2D scene and turns each one into
// flux-carrying lines. It implements scene.RaySampler.
//
// A PathTracer is single-threaded. The scene must not change while Sample
// runs; after any edit call Reset.
type PathTracer struct {
	Settings Settings

	scene      Scene
	sink       LineSink
	batch      []DrawLine
	iterations int
}

// NewPathTracer creates a path tracer drawing into sink
func NewPathTracer(scene Scene, sink LineSink, settings Settings) *PathTracer {
	if settings.BatchSize <= 0 {
		settings.BatchSize = DefaultSettings().BatchSize
	}
	return &PathTracer{
		Settings: settings,
		scene:    scene,
		sink:     sink,
		batch:    make([]DrawLine, 0, settings.BatchSize),
	}
}

// SetScene replaces the traced scene and resets the accumulated result
func (pt *PathTracer) SetScene(scene Scene) {
	pt.scene = scene
	pt.Reset()
}

// Iterations returns the number of paths that contributed to the image
func (pt *PathTracer) Iterations() int {
	return pt.iterations
}

// Sample traces one camera ray. Paths that hit nothing contribute nothing
// and are not counted.
func (pt *PathTracer) Sample(ray core.Ray) {
	segments := pt.Trace(ray)
	if len(segments) == 0 {
		return
	}

	pt.batch = AccumulateFlux(segments, pt.batch)
	if len(pt.batch) >= pt.Settings.BatchSize {
		pt.Flush()
	}

	pt.iterations++
}

// Trace follows ray for at most PathLength bounces and returns the recorded segments
func (pt *PathTracer) Trace(ray core.Ray) []PathSegment {
	var segments []PathSegment
	anyHit := false

	for i := 0; i < pt.Settings.PathLength; i++ {
		isect, ok := pt.scene.ClosestHit(ray)
		if !ok {
			if pt.Settings.DirectLightRay && anyHit {
				segments = pt.appendDirectLightRays(segments, ray.Origin)
			}
			break
		}
		anyHit = true

		hitPos := ray.At(isect.TMax)
		illumination := pt.directIllumination(hitPos, ray.Direction, isect.Normal)

		// Local frame: Y along the normal, X along its perpendicular
		normal := isect.Normal
		tangent := core.NewVec2(-normal.Y, normal.X)
		wiLocal := core.NewVec2(tangent.Dot(ray.Direction), normal.Dot(ray.Direction)).Negate()

		woLocal, pdf := isect.Material.SampleDirection(wiLocal, normal)
		newDir := normal.Multiply(woLocal.Y).Add(tangent.Multiply(woLocal.X))

		reflectance := isect.Material.Evaluate(ray.Direction.Negate(), newDir, normal).Multiply(1 / pdf)

		illumination = illumination.Add(isect.Material.SelfEmission(normal))
		if pt.Settings.PureImportance {
			illumination = core.Gray(pureImportanceLevel)
		}

		segments = append(segments, PathSegment{
			Origin:       ray.Origin,
			Destination:  hitPos,
			Reflectance:  reflectance,
			Illumination: illumination,
		})

		ray = core.NewRay(hitPos.Add(newDir.Multiply(RayEpsilon)), newDir)
	}

	return segments
}

// directIllumination gathers light from every visible point light. Falloff
// is linear in distance and shading is two-sided.
func (pt *PathTracer) directIllumination(hitPos, direction, normal core.Vec2) core.Vec3 {
	var illumination core.Vec3
	origin := hitPos.Subtract(direction.Multiply(RayEpsilon))

	for _, light := range pt.scene.Lights() {
		toLight := light.Position.Subtract(hitPos)
		distance := toLight.Length()
		if distance == 0 {
			continue
		}
		lightDir := toLight.Multiply(1 / distance)

		if pt.scene.AnyHit(core.NewRay(origin, lightDir), distance-RayEpsilon) {
			continue
		}

		cosE := math.Abs(lightDir.Dot(normal))
		illumination = illumination.Add(light.Intensity.Multiply(cosE / max(1.0, distance)))
	}

	return illumination
}

// appendDirectLightRays adds a debug segment from origin to every light it can see
func (pt *PathTracer) appendDirectLightRays(segments []PathSegment, origin core.Vec2) []PathSegment {
	for _, light := range pt.scene.Lights() {
		toLight := light.Position.Subtract(origin)
		distance := toLight.Length()
		if distance == 0 {
			continue
		}

		if pt.scene.AnyHit(core.NewRay(origin, toLight.Multiply(1/distance)), distance-RayEpsilon) {
			continue
		}

		segments = append(segments, PathSegment{
			Origin:       origin,
			Destination:  light.Position,
			Reflectance:  core.Gray(directLightReflectance),
			Illumination: light.Intensity,
		})
	}
	return segments
}

// AccumulateFlux walks segments from the deepest bounce back to the camera,
// carrying flux towards the camera, and appends one line per segment to
// lines. Lines run from Destination to Origin, the direction light travels.
func AccumulateFlux(segments []PathSegment, lines []DrawLine) []DrawLine {
	var incoming core.Vec3
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		incoming = incoming.Add(seg.Illumination)
		startFlux := incoming.MultiplyVec(seg.Reflectance)

		start, end := seg.Destination, seg.Origin
		lines = append(lines, DrawLine{
			Start: start,
			End:   end,
			Color: startFlux.Multiply(RasterizationBias(end.Subtract(start))),
		})

		incoming = incoming.Multiply(1 / max(start.Distance(end), 1.0))
	}
	return lines
}

// RasterizationBias compensates a rasterizer that writes one sample per
// major-axis step, so diagonal lines would carry less energy per unit
// length than axis-aligned ones. Degenerate lines get a factor of 1.
func RasterizationBias(dir core.Vec2) float64 {
	major := max(math.Abs(dir.X), math.Abs(dir.Y))
	if major == 0 {
		return 1
	}
	return min(max(dir.Length()/major, 1.0), math.Sqrt2)
}

// Flush hands the buffered lines to the sink
func (pt *PathTracer) Flush() {
	if len(pt.batch) == 0 {
		return
	}
	pt.sink.DrawLines(pt.batch)
	pt.batch = pt.batch[:0]
}

// Reset zeroes the iteration count, drops buffered lines and clears the sink
func (pt *PathTracer) Reset() {
	pt.iterations = 0
	pt.batch = pt.batch[:0]
	pt.sink.Clear()
}

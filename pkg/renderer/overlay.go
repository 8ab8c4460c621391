package renderer

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/scene"
)

// Overlay styling
const (
	overlayLineWidth    = 1.0
	lightMarkerRadius   = 3.0
	frustumLengthFactor = 0.1 // Frustum edge length relative to the larger scene dimension
)

// DrawOverlay strokes primitive outlines in their display colors, the
// camera frustum in white and each light as a dot colored by its normalized
// intensity. The overlay is painted onto img in place.
func DrawOverlay(img *image.RGBA, s *scene.Scene) {
	size := s.Size()
	if size.X <= 0 || size.Y <= 0 {
		return
	}

	bounds := img.Bounds()
	dc := gg.NewContextForRGBA(img)
	toPixel := func(p core.Vec2) (float64, float64) {
		return p.X / size.X * float64(bounds.Dx()), float64(bounds.Dy()) - p.Y/size.Y*float64(bounds.Dy())
	}

	dc.SetLineWidth(overlayLineWidth)

	for _, p := range s.Primitives() {
		outline := p.Outline()
		if len(outline) == 0 {
			continue
		}
		c := p.Color.Clamp(0, 1)
		dc.SetRGB(c.X, c.Y, c.Z)
		dc.MoveTo(toPixel(outline[0]))
		for _, v := range outline[1:] {
			dc.LineTo(toPixel(v))
		}
		dc.ClosePath()
		dc.Stroke()
	}

	if cam := s.Camera(); cam != nil {
		length := frustumLengthFactor * max(size.X, size.Y)
		upper, lower := cam.FrustumEdges()
		ox, oy := toPixel(cam.Position())

		dc.SetRGB(1, 1, 1)
		for _, edge := range []core.Vec2{upper, lower} {
			ex, ey := toPixel(cam.Position().Add(edge.Multiply(length)))
			dc.DrawLine(ox, oy, ex, ey)
			dc.Stroke()
		}
	}

	for _, light := range s.Lights() {
		c := LightMarkerColor(light.Intensity)
		x, y := toPixel(light.Position)
		dc.SetRGB(c.X, c.Y, c.Z)
		dc.DrawCircle(x, y, lightMarkerRadius)
		dc.Fill()
	}
}

// LightMarkerColor scales intensity so its largest channel is 1
func LightMarkerColor(intensity core.Vec3) core.Vec3 {
	peak := intensity.MaxComponent()
	if !(peak > 0) {
		return core.Vec3{}
	}
	return intensity.Multiply(1 / peak)
}

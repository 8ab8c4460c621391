package scene

import (
	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/geometry"
)

// CameraRotationStep is the angle RotateCamera turns the camera by, in radians (-10 degrees)
const CameraRotationStep = -0.174533

// PickKind identifies what an Editor is currently holding
type PickKind int

const (
	PickNone PickKind = iota
	PickPrimitive
	PickLight
	PickCamera
)

func (k PickKind) String() string {
	switch k {
	case PickPrimitive:
		return "primitive"
	case PickLight:
		return "light"
	case PickCamera:
		return "camera"
	}
	return "none"
}

// Editor implements interactive picking and dragging of scene objects.
// Positions and deltas are given in normalized [-1, 1] display space.
type Editor struct {
	scene     *Scene
	kind      PickKind
	primitive *geometry.Primitive
	light     *PointLight
}

// NewEditor creates an editor over scene
func NewEditor(scene *Scene) *Editor {
	return &Editor{scene: scene}
}

// Picked returns what the editor is holding
func (e *Editor) Picked() PickKind {
	return e.kind
}

// PickedPrimitive returns the held primitive, or nil
func (e *Editor) PickedPrimitive() *geometry.Primitive {
	return e.primitive
}

// PickedLight returns the held light, or nil
func (e *Editor) PickedLight() *PointLight {
	return e.light
}

// Pick selects the object under the normalized position. Primitives are
// tested first, then lights, then the camera.
func (e *Editor) Pick(position core.Vec2) bool {
	e.Release()
	p := e.scene.ToSceneSpace(position)

	for _, prim := range e.scene.Primitives() {
		if prim.ContainsPoint(p) {
			e.kind = PickPrimitive
			e.primitive = prim
			return true
		}
	}

	for _, light := range e.scene.Lights() {
		if light.ContainsPoint(p) {
			e.kind = PickLight
			e.light = light
			return true
		}
	}

	if cam := e.scene.Camera(); cam != nil && cam.ContainsPoint(p) {
		e.kind = PickCamera
		return true
	}

	return false
}

// Drag moves the held object by a normalized delta. A delta of 2 spans the
// whole scene extent. It reports whether anything moved.
func (e *Editor) Drag(dx, dy float64) bool {
	size := e.scene.Size()
	sdx := dx * size.X * 0.5
	sdy := dy * size.Y * 0.5

	switch e.kind {
	case PickPrimitive:
		e.primitive.Translate(sdx, sdy)
	case PickLight:
		e.light.Move(sdx, sdy)
	case PickCamera:
		e.scene.Camera().Move(sdx, sdy)
	default:
		return false
	}
	return true
}

// Release drops the held object
func (e *Editor) Release() {
	e.kind = PickNone
	e.primitive = nil
	e.light = nil
}

// RotateCamera turns the scene camera by CameraRotationStep
func (e *Editor) RotateCamera() {
	if cam := e.scene.Camera(); cam != nil {
		cam.Rotate(CameraRotationStep)
	}
}

package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/geometry"
	"github.com/df07/go-2d-pathtracer/pkg/material"
	"github.com/df07/go-2d-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Picked       string                 `json:"picked"` // "primitive", "light", "camera" or "none"
	Point        [2]float64             `json:"point"`  // Inspected position in scene space
	GeometryType string                 `json:"geometryType,omitempty"`
	MaterialType string                 `json:"materialType,omitempty"`
	Properties   map[string]interface{} `json:"properties"`
	CameraRay    *CameraRayInfo         `json:"cameraRay,omitempty"`
}

// CameraRayInfo describes the first surface hit by a ray from the camera
// towards the inspected point
type CameraRayInfo struct {
	Hit      bool       `json:"hit"`
	Distance float64    `json:"distance,omitempty"`
	Normal   [2]float64 `json:"normal,omitempty"`
	Material string     `json:"material,omitempty"`
}

func vec2Array(v core.Vec2) [2]float64 { return [2]float64{v.X, v.Y} }

func vec3Array(v core.Vec3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func hexColor(v core.Vec3) string {
	c := v.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes a material
func extractMaterialInfo(mat *material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	if mat == nil {
		return "none", properties
	}

	properties["albedo"] = vec3Array(mat.Albedo())
	properties["color"] = hexColor(mat.Albedo())
	switch mat.Kind() {
	case material.Dielectric:
		properties["refractiveIndex"] = mat.IOR()
	case material.AreaLight:
		emission := mat.SelfEmission(core.NewVec2(0, 1))
		properties["emission"] = vec3Array(emission)
	}
	return mat.Kind().String(), properties
}

// extractGeometryInfo describes a shape
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Segment:
		properties["a"] = vec2Array(geom.A)
		properties["b"] = vec2Array(geom.B)
		properties["length"] = geom.A.Distance(geom.B)
		return "segment", properties

	case *geometry.Circle:
		properties["center"] = vec2Array(geom.Center)
		properties["radius"] = geom.Radius
		return "circle", properties

	case *geometry.Box:
		properties["center"] = vec2Array(geom.Center)
		properties["halfSize"] = vec2Array(geom.HalfSize)
		return "box", properties
	}
	return "unknown", properties
}

// inspectPoint picks the object under a normalized [-1, 1] position the same
// way the editor does and describes it
func inspectPoint(sc *scene.Scene, position core.Vec2) InspectResponse {
	editor := scene.NewEditor(sc)
	editor.Pick(position)
	point := sc.ToSceneSpace(position)

	response := InspectResponse{
		Picked:     editor.Picked().String(),
		Point:      vec2Array(point),
		Properties: make(map[string]interface{}),
	}

	switch editor.Picked() {
	case scene.PickPrimitive:
		prim := editor.PickedPrimitive()
		geometryType, geometryProps := extractGeometryInfo(prim.Shape)
		materialType, materialProps := extractMaterialInfo(prim.Material)
		response.GeometryType = geometryType
		response.MaterialType = materialType
		response.Properties["geometry"] = geometryProps
		response.Properties["material"] = materialProps
		response.Properties["displayColor"] = hexColor(prim.Color)

	case scene.PickLight:
		light := editor.PickedLight()
		response.Properties["position"] = vec2Array(light.Position)
		response.Properties["intensity"] = vec3Array(light.Intensity)

	case scene.PickCamera:
		cam := sc.Camera()
		response.Properties["position"] = vec2Array(cam.Position())
		response.Properties["direction"] = vec2Array(cam.Direction())
		response.Properties["fov"] = cam.FOV()
		response.Properties["resolution"] = cam.Resolution()
	}

	if cam := sc.Camera(); cam != nil && editor.Picked() != scene.PickCamera {
		response.CameraRay = castCameraRay(sc, cam.Position(), point)
	}
	return response
}

func castCameraRay(sc *scene.Scene, origin, target core.Vec2) *CameraRayInfo {
	dir := target.Subtract(origin)
	if dir.LengthSquared() == 0 {
		return nil
	}

	isect, ok := sc.ClosestHit(core.NewRay(origin, dir.Normalize()))
	if !ok {
		return &CameraRayInfo{Hit: false}
	}
	materialType, _ := extractMaterialInfo(isect.Material)
	return &CameraRayInfo{
		Hit:      true,
		Distance: isect.TMax,
		Normal:   vec2Array(isect.Normal),
		Material: materialType,
	}
}

// handleInspect reports what lies under a pixel of a width x height render
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	width, err := parseIntParam(query, "width", 400, 16, 2000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := parseIntParam(query, "height", 400, 16, 2000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if query.Get("x") == "" || query.Get("y") == "" {
		writeError(w, http.StatusBadRequest, "Missing pixel coordinates")
		return
	}
	pixelX, err := parseIntParam(query, "x", 0, 0, width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pixelY, err := parseIntParam(query, "y", 0, 0, height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sc, err := s.loadScene(query.Get("scene"), 0)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	// Pixel centers to normalized display space, row 0 at the top
	position := core.NewVec2(
		2*(float64(pixelX)+0.5)/float64(width)-1,
		1-2*(float64(pixelY)+0.5)/float64(height),
	)
	writeJSON(w, http.StatusOK, inspectPoint(sc, position))
}

package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/geometry"
	"github.com/df07/go-2d-pathtracer/pkg/material"
	"github.com/df07/go-2d-pathtracer/pkg/scene"
)

// Scene file validation errors. Returned errors wrap one of these, so callers
// can test them with errors.Is.
var (
	ErrUnknownGeometry = errors.New("unknown geometry type")
	ErrUnknownMaterial = errors.New("unknown material id")
	ErrUnknownLight    = errors.New("unknown light type")
	ErrMissingField    = errors.New("missing field")
	ErrInvalidValue    = errors.New("invalid value")
)

// Material ids used by scene files
const (
	MaterialDiffuse    = 1
	MaterialMirror     = 2
	MaterialDielectric = 3
)

// SceneFile is the JSON scene description
type SceneFile struct {
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Geometry    []GeometryEntry `json:"geometry"`
	Lights      []LightEntry    `json:"lights"`
	Camera      *CameraEntry    `json:"camera"`
	SceneSize   *SizeEntry      `json:"scene_size"`
}

// GeometryEntry describes one primitive. Segments use A and B, boxes use
// Center and Size (half extents), spheres use Center and Radius.
type GeometryEntry struct {
	Type       string    `json:"type"`
	A          []float64 `json:"a,omitempty"`
	B          []float64 `json:"b,omitempty"`
	Center     []float64 `json:"center,omitempty"`
	Size       []float64 `json:"size,omitempty"`
	Radius     *float64  `json:"radius,omitempty"`
	MaterialID *int      `json:"materialId"`
	Color      []float64 `json:"color,omitempty"`
}

// LightEntry describes a point light (Pos) or an area light segment (A, B)
type LightEntry struct {
	Type      string    `json:"type"`
	Pos       []float64 `json:"pos,omitempty"`
	A         []float64 `json:"a,omitempty"`
	B         []float64 `json:"b,omitempty"`
	Intensity []float64 `json:"intensity"`
}

// CameraEntry describes the camera. Angle is the field of view in degrees.
type CameraEntry struct {
	Pos        []float64 `json:"pos"`
	Direction  []float64 `json:"direction"`
	Angle      *float64  `json:"angle"`
	Resolution *int      `json:"resolution"`
}

// SizeEntry holds the scene extent as [width, height]
type SizeEntry struct {
	Size []float64 `json:"size"`
}

// ParseScene decodes a JSON scene description and builds the scene. Each
// stochastic material and the camera get their own sampler from seeds.
func ParseScene(reader io.Reader, seeds *core.SeedSource) (*scene.Scene, error) {
	var file SceneFile
	if err := json.NewDecoder(reader).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return BuildScene(&file, seeds)
}

// LoadScene loads and parses a JSON scene file
func LoadScene(filename string, seeds *core.SeedSource) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file, seeds)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// BuildScene turns a decoded scene description into a scene
func BuildScene(file *SceneFile, seeds *core.SeedSource) (*scene.Scene, error) {
	if file.SceneSize == nil {
		return nil, fmt.Errorf("scene_size: %w", ErrMissingField)
	}
	size, err := vec2Field("scene_size.size", file.SceneSize.Size)
	if err != nil {
		return nil, err
	}
	if !(size.X > 0 && size.Y > 0) {
		return nil, fmt.Errorf("scene_size.size %v: %w", file.SceneSize.Size, ErrInvalidValue)
	}

	s := scene.NewScene(size.X, size.Y)

	for i, entry := range file.Geometry {
		p, err := buildPrimitive(entry, seeds)
		if err != nil {
			return nil, fmt.Errorf("geometry[%d]: %w", i, err)
		}
		s.AddPrimitive(p)
	}

	for i, entry := range file.Lights {
		if err := addLight(s, entry); err != nil {
			return nil, fmt.Errorf("lights[%d]: %w", i, err)
		}
	}

	if file.Camera == nil {
		return nil, fmt.Errorf("camera: %w", ErrMissingField)
	}
	camera, err := buildCamera(file.Camera, seeds)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	s.SetCamera(camera)

	return s, nil
}

func buildPrimitive(entry GeometryEntry, seeds *core.SeedSource) (*geometry.Primitive, error) {
	color := core.Gray(1)
	if entry.Color != nil {
		c, err := vec3Field("color", entry.Color)
		if err != nil {
			return nil, err
		}
		color = c
	}

	var shape geometry.Shape
	switch entry.Type {
	case "segment":
		a, err := vec2Field("a", entry.A)
		if err != nil {
			return nil, err
		}
		b, err := vec2Field("b", entry.B)
		if err != nil {
			return nil, err
		}
		shape = geometry.NewSegment(a, b)
	case "bbox":
		center, err := vec2Field("center", entry.Center)
		if err != nil {
			return nil, err
		}
		halfSize, err := vec2Field("size", entry.Size)
		if err != nil {
			return nil, err
		}
		if halfSize.X < 0 || halfSize.Y < 0 {
			return nil, fmt.Errorf("size %v: %w", entry.Size, ErrInvalidValue)
		}
		shape = geometry.NewBox(center, halfSize)
	case "sphere":
		center, err := vec2Field("center", entry.Center)
		if err != nil {
			return nil, err
		}
		if entry.Radius == nil {
			return nil, fmt.Errorf("radius: %w", ErrMissingField)
		}
		if !(*entry.Radius > 0) {
			return nil, fmt.Errorf("radius %v: %w", *entry.Radius, ErrInvalidValue)
		}
		shape = geometry.NewCircle(center, *entry.Radius)
	default:
		return nil, fmt.Errorf("%q: %w", entry.Type, ErrUnknownGeometry)
	}

	if entry.MaterialID == nil {
		return nil, fmt.Errorf("materialId: %w", ErrMissingField)
	}

	var mat *material.Material
	switch *entry.MaterialID {
	case MaterialDiffuse:
		mat = material.NewDiffuse(color, seeds.NextSampler())
	case MaterialMirror:
		mat = material.NewMirror(color)
	case MaterialDielectric:
		mat = material.NewDielectric(color, material.DefaultIOR, seeds.NextSampler())
	default:
		return nil, fmt.Errorf("%d: %w", *entry.MaterialID, ErrUnknownMaterial)
	}

	return geometry.NewPrimitive(shape, color, mat), nil
}

// addLight adds a point light, or an area light as an emitting segment primitive
func addLight(s *scene.Scene, entry LightEntry) error {
	intensity, err := vec3Field("intensity", entry.Intensity)
	if err != nil {
		return err
	}

	switch entry.Type {
	case "point":
		pos, err := vec2Field("pos", entry.Pos)
		if err != nil {
			return err
		}
		s.AddLight(scene.NewPointLight(pos, intensity))
	case "area":
		a, err := vec2Field("a", entry.A)
		if err != nil {
			return err
		}
		b, err := vec2Field("b", entry.B)
		if err != nil {
			return err
		}
		white := core.Gray(1)
		s.AddPrimitive(geometry.NewPrimitive(geometry.NewSegment(a, b), white, material.NewAreaLight(white, intensity)))
	default:
		return fmt.Errorf("%q: %w", entry.Type, ErrUnknownLight)
	}
	return nil
}

func buildCamera(entry *CameraEntry, seeds *core.SeedSource) (*scene.Camera, error) {
	pos, err := vec2Field("pos", entry.Pos)
	if err != nil {
		return nil, err
	}
	dir, err := vec2Field("direction", entry.Direction)
	if err != nil {
		return nil, err
	}
	if dir.LengthSquared() == 0 {
		return nil, fmt.Errorf("direction %v: %w", entry.Direction, ErrInvalidValue)
	}
	if entry.Angle == nil {
		return nil, fmt.Errorf("angle: %w", ErrMissingField)
	}
	if entry.Resolution == nil {
		return nil, fmt.Errorf("resolution: %w", ErrMissingField)
	}
	if *entry.Resolution <= 0 {
		return nil, fmt.Errorf("resolution %d: %w", *entry.Resolution, ErrInvalidValue)
	}

	fov := *entry.Angle * math.Pi / 180
	return scene.NewCamera(pos, dir, fov, *entry.Resolution, seeds.NextSampler()), nil
}

func vec2Field(name string, values []float64) (core.Vec2, error) {
	if values == nil {
		return core.Vec2{}, fmt.Errorf("%s: %w", name, ErrMissingField)
	}
	if len(values) != 2 {
		return core.Vec2{}, fmt.Errorf("%s: expected 2 values, got %d: %w", name, len(values), ErrInvalidValue)
	}
	return core.NewVec2(values[0], values[1]), nil
}

func vec3Field(name string, values []float64) (core.Vec3, error) {
	if values == nil {
		return core.Vec3{}, fmt.Errorf("%s: %w", name, ErrMissingField)
	}
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%s: expected 3 values, got %d: %w", name, len(values), ErrInvalidValue)
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// validateFilePath rejects paths that are empty, contain null bytes or are
// not JSON files
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	cleanPath := filepath.Clean(filename)
	if !strings.HasSuffix(strings.ToLower(cleanPath), ".json") {
		return fmt.Errorf("invalid file type: only .json scene files are allowed")
	}
	if len(cleanPath) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}
	return nil
}

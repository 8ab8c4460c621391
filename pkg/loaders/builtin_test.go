package loaders

import (
	"testing"

	"github.com/df07/go-2d-pathtracer/pkg/core"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"color_bleeding", "Color Bleeding"},
		{"specular-diffuse-specular", "Specular Diffuse Specular"},
		{"veach", "Veach"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestListBuiltinScenes(t *testing.T) {
	scenes, err := ListBuiltinScenes()
	if err != nil {
		t.Fatalf("Failed to list scenes: %v", err)
	}

	expected := []string{"area_light", "color_bleeding", "refraction", "specular_diffuse_specular", "veach"}
	if len(scenes) != len(expected) {
		t.Fatalf("Expected %d scenes, got %d", len(expected), len(scenes))
	}
	for i, id := range expected {
		if scenes[i].ID != id {
			t.Errorf("Expected scene %d to be %s, got %s", i, id, scenes[i].ID)
		}
		if scenes[i].Name == "" {
			t.Errorf("Expected %s to have a name", id)
		}
	}
}

func TestLoadBuiltinScenes(t *testing.T) {
	scenes, err := ListBuiltinScenes()
	if err != nil {
		t.Fatalf("Failed to list scenes: %v", err)
	}

	for _, info := range scenes {
		t.Run(info.ID, func(t *testing.T) {
			s, err := LoadBuiltinScene(info.ID, core.NewSeedSource(1))
			if err != nil {
				t.Fatalf("Failed to load %s: %v", info.ID, err)
			}
			if s.Camera() == nil {
				t.Error("Expected a camera")
			}
			if len(s.Primitives()) < info.Primitives {
				t.Errorf("Expected at least %d primitives, got %d", info.Primitives, len(s.Primitives()))
			}
			size := s.Size()
			if size.X <= 0 || size.Y <= 0 {
				t.Errorf("Expected positive size, got %v", size)
			}
		})
	}
}

func TestLoadBuiltinScene_Unknown(t *testing.T) {
	if _, err := LoadBuiltinScene("does-not-exist", core.NewSeedSource(1)); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

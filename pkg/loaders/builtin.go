package loaders

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/scene"
)

//go:embed scenes/*.json
var builtinScenes embed.FS

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // File name without extension, used to load the scene
	Name        string // Display name
	Description string
	Primitives  int
	Lights      int
}

// ListBuiltinScenes returns the embedded scenes sorted by ID
func ListBuiltinScenes() ([]SceneInfo, error) {
	entries, err := builtinScenes.ReadDir("scenes")
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in scenes: %w", err)
	}

	var scenes []SceneInfo
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		file, err := readBuiltin(id)
		if err != nil {
			return nil, err
		}

		info := SceneInfo{
			ID:          id,
			Name:        file.Name,
			Description: file.Description,
			Primitives:  len(file.Geometry),
			Lights:      len(file.Lights),
		}
		if info.Name == "" {
			info.Name = titleCase(id)
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes, nil
}

// LoadBuiltinScene builds the embedded scene with the given ID
func LoadBuiltinScene(id string, seeds *core.SeedSource) (*scene.Scene, error) {
	file, err := readBuiltin(id)
	if err != nil {
		return nil, err
	}
	s, err := BuildScene(file, seeds)
	if err != nil {
		return nil, fmt.Errorf("built-in scene %s: %w", id, err)
	}
	return s, nil
}

func readBuiltin(id string) (*SceneFile, error) {
	data, err := builtinScenes.ReadFile(path.Join("scenes", id+".json"))
	if err != nil {
		return nil, fmt.Errorf("unknown built-in scene %q", id)
	}
	var file SceneFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("built-in scene %s: %w", id, err)
	}
	return &file, nil
}

// titleCase converts a filename-style string to title case
// e.g., "color_bleeding" -> "Color Bleeding"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}

package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, passed to Create
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to JSON file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtinGroup = "Built-in Scenes"

type builtinScene struct {
	info   SceneInfo
	create func(...geometry.CameraConfig) *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "tatooine",
			Name:        "Tatooine",
			Description: "Desert dome under two suns with day/night cycle",
			Group:       builtinGroup,
			Type:        "builtin",
		},
		create: NewTatooineScene,
	},
	{
		info: SceneInfo{
			ID:          "showcase",
			Name:        "Showcase",
			Description: "Glass, mirror and metal over a checkered floor",
			Group:       builtinGroup,
			Type:        "builtin",
		},
		create: NewShowcaseScene,
	},
}

// ScenesDir is where scene files are discovered; empty searches "scenes" then "../scenes"
var ScenesDir = ""

// Create builds the named scene: a built-in ID, a path to a .json file,
// or the name of a .json file in the scenes directory
func Create(name string) (*Scene, error) {
	for _, builtin := range builtinScenes {
		if builtin.info.ID == name {
			return builtin.create(), nil
		}
	}

	if strings.HasSuffix(name, ".json") {
		return LoadFile(name)
	}

	if dir := findScenesDir(); dir != "" {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(List(), ", "))
}

// CreateByID builds a scene from an ID returned by List. Unlike Create it never
// opens arbitrary paths, so it is safe for untrusted input.
func CreateByID(id string) (*Scene, error) {
	for _, builtin := range builtinScenes {
		if builtin.info.ID == id {
			return builtin.create(), nil
		}
	}

	if isPlainID(id) {
		if dir := findScenesDir(); dir != "" {
			fileScenes, _ := ListJSONScenes(dir)
			for _, info := range fileScenes {
				if info.ID == id {
					return LoadFile(filepath.Join(dir, id+".json"))
				}
			}
		}
	}

	return nil, fmt.Errorf("unknown scene %q", id)
}

// isPlainID reports whether id is a bare file stem with no path components
func isPlainID(id string) bool {
	return id != "" && id != "." && id != ".." &&
		!strings.ContainsAny(id, `/\`) && filepath.Base(id) == id
}

// List returns the IDs of every scene Create accepts by name
func List() []string {
	var ids []string
	for _, builtin := range builtinScenes {
		ids = append(ids, builtin.info.ID)
	}
	if dir := findScenesDir(); dir != "" {
		fileScenes, _ := ListJSONScenes(dir)
		for _, info := range fileScenes {
			ids = append(ids, info.ID)
		}
	}
	return ids
}

func findScenesDir() string {
	if ScenesDir != "" {
		return ScenesDir
	}
	// Try different possible paths for scenes directory
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListJSONScenes scans dir for .json scene files
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	id := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       id,
		Name:     titleCase(id),
		Group:    "Scene Files",
		Type:     "file",
		FilePath: filePath,
	}

	cfg, err := LoadConfig(filePath)
	if err != nil {
		return sceneInfo, err
	}
	if cfg.Name != "" && cfg.Name != id {
		sceneInfo.Name = cfg.Name
	}
	sceneInfo.Description = cfg.Description
	if cfg.Group != "" {
		sceneInfo.Group = cfg.Group
	}

	return sceneInfo, nil
}

// ListAllScenes returns both built-in and file scenes, grouped by category
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	allScenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, builtin := range builtinScenes {
		allScenes = append(allScenes, builtin.info)
	}

	if dir := findScenesDir(); dir != "" {
		fileScenes, err := ListJSONScenes(dir)
		if err != nil {
			return response, fmt.Errorf("failed to list scene files: %w", err)
		}
		allScenes = append(allScenes, fileScenes...)
	}

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Create ordered groups (Built-in first, then alphabetical)
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: group})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "desert-oasis" -> "Desert Oasis"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}

package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level places prefab instances around an origin. Coordinates are pixels,
// Y down, relative to Origin.
type Level struct {
	Name     string   `json:"name"`
	Origin   Point    `json:"origin"`
	Entities []Entity `json:"entities"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Entity struct {
	Prefab   string  `json:"prefab"`
	Name     string  `json:"name,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation,omitempty"`
}

// Normalize turns a level name into its file name; the extension is
// optional.
func Normalize(name string) string {
	s := filepath.ToSlash(strings.TrimSpace(name))
	s = strings.TrimPrefix(s, "levels/")
	if s != "" && filepath.Ext(s) == "" {
		s += ".json"
	}
	return s
}

// Load reads a level, preferring levels/<name> on disk over the embedded
// copy.
func Load(name string) (*Level, error) {
	clean := Normalize(name)
	if clean == "" {
		return nil, fmt.Errorf("read level: empty name")
	}
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
		if err != nil {
			return nil, fmt.Errorf("read level: %w", err)
		}
	}
	return Parse(data)
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, Normalize(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	for i, ent := range lvl.Entities {
		if ent.Prefab == "" {
			return nil, fmt.Errorf("level %q: entity %d has no prefab", lvl.Name, i)
		}
	}
	return &lvl, nil
}

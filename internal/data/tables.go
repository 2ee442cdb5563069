package data

import (
	"embed"
	"fmt"
	"path/filepath"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

// Tables bundles every data table the simulation reads.
type Tables struct {
	Kinds   *KindTable
	Terrain *TerrainTable
}

// LoadTables loads kinds.yaml and terrain.yaml from dir. An empty dir loads
// the built-in tables.
func LoadTables(dir string) (*Tables, error) {
	if dir == "" {
		return Defaults()
	}
	kinds, err := LoadKindTable(filepath.Join(dir, "kinds.yaml"))
	if err != nil {
		return nil, err
	}
	terrain, err := LoadTerrainTable(filepath.Join(dir, "terrain.yaml"))
	if err != nil {
		return nil, err
	}
	return &Tables{Kinds: kinds, Terrain: terrain}, nil
}

// Defaults parses the embedded tables.
func Defaults() (*Tables, error) {
	raw, err := defaultFS.ReadFile("defaults/kinds.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded kinds: %w", err)
	}
	kinds, err := ParseKindTable(raw)
	if err != nil {
		return nil, err
	}
	raw, err = defaultFS.ReadFile("defaults/terrain.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded terrain: %w", err)
	}
	terrain, err := ParseTerrainTable(raw)
	if err != nil {
		return nil, err
	}
	return &Tables{Kinds: kinds, Terrain: terrain}, nil
}

// MustDefaults is Defaults for tests and tools; the embedded tables are
// validated by the package tests.
func MustDefaults() *Tables {
	t, err := Defaults()
	if err != nil {
		panic(err)
	}
	return t
}

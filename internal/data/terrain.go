package data

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

// TerrainTable holds the sprite palettes tiles are drawn from.
type TerrainTable struct {
	Water             []string `yaml:"water"`
	Border            []string `yaml:"border"`
	Land              []string `yaml:"land"`
	LandColumns       int      `yaml:"land_columns"`        // land tiles per side per row
	LandContactDamage int      `yaml:"land_contact_damage"` // damage dealt on touch
}

// LoadTerrainTable loads terrain.yaml.
func LoadTerrainTable(path string) (*TerrainTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read terrain: %w", err)
	}
	return ParseTerrainTable(raw)
}

func ParseTerrainTable(raw []byte) (*TerrainTable, error) {
	var t TerrainTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse terrain: %w", err)
	}
	if len(t.Water) == 0 || len(t.Border) == 0 || len(t.Land) == 0 {
		return nil, fmt.Errorf("parse terrain: every palette needs a sprite: %w", ErrInvalidKind)
	}
	if t.LandColumns < 1 {
		t.LandColumns = 1
	}
	return &t, nil
}

// PickWater, PickBorder and PickLand choose a palette variant uniformly.
func (t *TerrainTable) PickWater(rng *rand.Rand) string  { return pick(t.Water, rng) }
func (t *TerrainTable) PickBorder(rng *rand.Rand) string { return pick(t.Border, rng) }
func (t *TerrainTable) PickLand(rng *rand.Rand) string   { return pick(t.Land, rng) }

func pick(list []string, rng *rand.Rand) string {
	if len(list) == 1 {
		return list[0]
	}
	return list[rng.Intn(len(list))]
}

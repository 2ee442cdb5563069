package data

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/broadside/sim/internal/component"
)

func TestDefaults_ObstaclePalette(t *testing.T) {
	tables := MustDefaults()
	tests := []struct {
		name    string
		w, h    float64
		health  int
		contact int
		immune  bool
		mass    component.Mass
	}{
		{"rock1", 55, 57, 100, 2, true, component.Rock},
		{"rock2", 48, 50, 100, 2, true, component.Rock},
		{"rock3", 55, 37, 100, 2, true, component.Rock},
		{"wood1", 32, 11, 1, 1, false, component.Wood},
		{"wood2", 32, 9, 1, 1, false, component.Wood},
		{"wood3", 32, 9, 1, 1, false, component.Wood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tables.Kinds.Get(tt.name)
			if e == nil {
				t.Fatalf("kind %s missing", tt.name)
			}
			if e.Category != component.CategoryObstacle {
				t.Errorf("Category = %s, want obstacle", e.Category)
			}
			if e.Hitbox.W != tt.w || e.Hitbox.H != tt.h {
				t.Errorf("Hitbox = %vx%v, want %vx%v", e.Hitbox.W, e.Hitbox.H, tt.w, tt.h)
			}
			if e.Health != tt.health || e.ContactDamage != tt.contact {
				t.Errorf("health/contact = %d/%d, want %d/%d", e.Health, e.ContactDamage, tt.health, tt.contact)
			}
			if e.Immune != tt.immune || e.Mass != tt.mass {
				t.Errorf("immune/mass = %v/%v, want %v/%v", e.Immune, e.Mass, tt.immune, tt.mass)
			}
		})
	}
}

func TestDefaults_OtherCategories(t *testing.T) {
	k := MustDefaults().Kinds
	if got := len(k.Category(component.CategoryPowerUp)); got != 2 {
		t.Errorf("power-up kinds = %d, want 2", got)
	}
	barrel := k.Get("barrel")
	if barrel == nil || barrel.LootChance != 1 {
		t.Fatalf("barrel = %+v, want loot chance 1", barrel)
	}
	for _, c := range []component.Category{component.CategorySideCannon, component.CategoryPirate} {
		for _, e := range k.Category(c) {
			if e.Cannon == nil {
				t.Errorf("%s has no cannon", e.Name)
			}
			if e.Score <= 0 {
				t.Errorf("%s grants no score", e.Name)
			}
		}
	}
	if k.Get("pirate").Cannon.Cooldown.Milliseconds() != 2500 {
		t.Errorf("pirate cooldown = %s", k.Get("pirate").Cannon.Cooldown)
	}
}

func TestPick_Uniform(t *testing.T) {
	k := MustDefaults().Kinds
	rng := rand.New(rand.NewSource(3))
	seen := map[string]int{}
	for i := 0; i < 600; i++ {
		e, err := k.Pick(component.CategoryObstacle, rng)
		if err != nil {
			t.Fatal(err)
		}
		seen[e.Name]++
	}
	if len(seen) != 6 {
		t.Errorf("picked %d distinct obstacles, want 6: %v", len(seen), seen)
	}
	if _, err := k.Pick("dragon", rng); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Pick(unknown) err = %v, want ErrUnknownKind", err)
	}
}

func TestParseKindTable_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no hitbox", "kinds:\n  - {name: a, category: obstacle, health: 1}\n"},
		{"zero health", "kinds:\n  - {name: a, category: obstacle, health: 0, hitbox: {w: 1, h: 1}}\n"},
		{"duplicate", "kinds:\n  - {name: a, category: obstacle, health: 1, hitbox: {w: 1, h: 1}}\n  - {name: a, category: obstacle, health: 1, hitbox: {w: 1, h: 1}}\n"},
		{"power-up without effect", "kinds:\n  - {name: a, category: power_up, health: 1, hitbox: {w: 1, h: 1}}\n"},
		{"loot chance", "kinds:\n  - {name: a, category: barrel, health: 1, hitbox: {w: 1, h: 1}, loot_chance: 2}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseKindTable([]byte(tt.yaml)); !errors.Is(err, ErrInvalidKind) {
				t.Errorf("err = %v, want ErrInvalidKind", err)
			}
		})
	}
	if _, err := ParseKindTable([]byte("kinds:\n  - {name: a, category: obstacle, health: 1, hitbox: {w: 1, h: 1}, mass: steel}\n")); err == nil {
		t.Error("unknown mass accepted")
	}
}

func TestLoadTables_Dir(t *testing.T) {
	dir := t.TempDir()
	kinds := "kinds:\n  - {name: log, category: obstacle, health: 2, contact_damage: 1, hitbox: {w: 40, h: 10}, mass: wood}\n"
	terrain := "water: [w]\nborder: [b]\nland: [l]\nland_contact_damage: 50\n"
	if err := os.WriteFile(filepath.Join(dir, "kinds.yaml"), []byte(kinds), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "terrain.yaml"), []byte(terrain), 0o644); err != nil {
		t.Fatal(err)
	}
	tables, err := LoadTables(dir)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if tables.Kinds.Count() != 1 || tables.Kinds.Get("log") == nil {
		t.Errorf("kinds not loaded from dir")
	}
	if tables.Terrain.LandColumns != 1 || tables.Terrain.LandContactDamage != 50 {
		t.Errorf("terrain = %+v", tables.Terrain)
	}
	if _, err := LoadTables(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing dir accepted")
	}
}

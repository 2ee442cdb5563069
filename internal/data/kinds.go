package data

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/broadside/sim/internal/component"
	"github.com/broadside/sim/internal/vmath"
)

var (
	// ErrUnknownKind is returned when a lookup or pick finds nothing.
	ErrUnknownKind = errors.New("unknown kind")
	// ErrInvalidKind is returned when a table entry fails validation.
	ErrInvalidKind = errors.New("invalid kind")
)

// CannonSpec describes the cannon an enemy kind carries.
type CannonSpec struct {
	Cooldown    time.Duration `yaml:"cooldown"`
	TurnRate    float64       `yaml:"turn_rate"`
	Range       float64       `yaml:"range"`
	Tolerance   float64       `yaml:"tolerance"`
	BulletSpeed float64       `yaml:"bullet_speed"`
	Damage      int           `yaml:"damage"`
	Offset      vmath.Vec2    `yaml:"offset"` // mount offset; zero = the ship itself rotates
}

// KindEntry is one spawnable kind.
type KindEntry struct {
	Name           string                `yaml:"name"`
	Category       component.Category    `yaml:"category"`
	Hitbox         vmath.Size            `yaml:"hitbox"`
	Health         int                   `yaml:"health"`
	ContactDamage  int                   `yaml:"contact_damage"`
	Immune         bool                  `yaml:"immune"`
	Mass           component.Mass        `yaml:"mass"`
	Score          int                   `yaml:"score"`
	Speed          float64               `yaml:"speed"`
	SteerRate      float64               `yaml:"steer_rate"` // heading nudge per second toward the player
	RandomRotation bool                  `yaml:"random_rotation"`
	LootChance     float64               `yaml:"loot_chance"`
	WreckTTL       float64               `yaml:"wreck_ttl"` // seconds
	PowerUp        component.PowerUpKind `yaml:"power_up"`
	Cannon         *CannonSpec           `yaml:"cannon"`
}

func (e *KindEntry) validate() error {
	switch {
	case e.Name == "":
		return fmt.Errorf("entry without name: %w", ErrInvalidKind)
	case e.Category == "":
		return fmt.Errorf("%s: no category: %w", e.Name, ErrInvalidKind)
	case e.Hitbox.W <= 0 || e.Hitbox.H <= 0:
		return fmt.Errorf("%s: hitbox %vx%v: %w", e.Name, e.Hitbox.W, e.Hitbox.H, ErrInvalidKind)
	case e.Health <= 0:
		return fmt.Errorf("%s: health %d: %w", e.Name, e.Health, ErrInvalidKind)
	case e.ContactDamage < 0:
		return fmt.Errorf("%s: contact damage %d: %w", e.Name, e.ContactDamage, ErrInvalidKind)
	case e.LootChance < 0 || e.LootChance > 1:
		return fmt.Errorf("%s: loot chance %v: %w", e.Name, e.LootChance, ErrInvalidKind)
	}
	if e.Category == component.CategoryPowerUp && e.PowerUp == "" {
		return fmt.Errorf("%s: power-up without effect: %w", e.Name, ErrInvalidKind)
	}
	if c := e.Cannon; c != nil && (c.Cooldown <= 0 || c.TurnRate <= 0 || c.BulletSpeed <= 0) {
		return fmt.Errorf("%s: cannon needs positive cooldown, turn_rate and bullet_speed: %w", e.Name, ErrInvalidKind)
	}
	return nil
}

type kindFile struct {
	Kinds []KindEntry `yaml:"kinds"`
}

// KindTable indexes kinds by name and by category. Category lists keep file
// order so a seeded pick is reproducible.
type KindTable struct {
	kinds      map[string]*KindEntry
	byCategory map[component.Category][]*KindEntry
}

// LoadKindTable loads kinds.yaml.
func LoadKindTable(path string) (*KindTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kinds: %w", err)
	}
	return ParseKindTable(raw)
}

func ParseKindTable(raw []byte) (*KindTable, error) {
	var f kindFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse kinds: %w", err)
	}
	t := &KindTable{
		kinds:      make(map[string]*KindEntry, len(f.Kinds)),
		byCategory: make(map[component.Category][]*KindEntry),
	}
	for i := range f.Kinds {
		e := &f.Kinds[i]
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("parse kinds: %w", err)
		}
		if _, dup := t.kinds[e.Name]; dup {
			return nil, fmt.Errorf("parse kinds: duplicate %s: %w", e.Name, ErrInvalidKind)
		}
		t.kinds[e.Name] = e
		t.byCategory[e.Category] = append(t.byCategory[e.Category], e)
	}
	return t, nil
}

// Get returns the kind with the given name, or nil.
func (t *KindTable) Get(name string) *KindEntry {
	return t.kinds[name]
}

// Category returns the kinds of one category in file order.
func (t *KindTable) Category(c component.Category) []*KindEntry {
	return t.byCategory[c]
}

// Pick chooses a kind of the category by uniform random index.
func (t *KindTable) Pick(c component.Category, rng *rand.Rand) (*KindEntry, error) {
	list := t.byCategory[c]
	if len(list) == 0 {
		return nil, fmt.Errorf("pick %s: %w", c, ErrUnknownKind)
	}
	return list[rng.Intn(len(list))], nil
}

// Count returns the total number of kinds loaded.
func (t *KindTable) Count() int {
	return len(t.kinds)
}

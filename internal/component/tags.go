package component

// Category groups kinds for spawning, scoring and cleanup.
type Category string

const (
	CategoryPlayer     Category = "player"
	CategorySideCannon Category = "side_cannon"
	CategoryPirate     Category = "pirate"
	CategoryObstacle   Category = "obstacle"
	CategoryBarrel     Category = "barrel"
	CategoryPowerUp    Category = "power_up"
	CategoryBullet     Category = "bullet"
	CategoryTerrain    Category = "terrain"
)

// Enemy reports whether the category is a hostile ship.
func (c Category) Enemy() bool {
	return c == CategorySideCannon || c == CategoryPirate
}

// Kind names the data-table entry an entity was spawned from.
type Kind struct {
	Name     string
	Category Category
}

// Player marks the player boat. Moving tracks whether the last input carried
// a movement intent.
type Player struct {
	Moving bool
}

// PlayerCannon marks the cannon mounted on the player boat.
type PlayerCannon struct{}

// Enemy marks hostile ships. Score is credited once when it is wrecked.
type Enemy struct {
	Score int
}

// TileLayer is the terrain category a tile belongs to.
type TileLayer int

const (
	LayerWater TileLayer = iota
	LayerBorder
	LayerLand
)

type Tile struct {
	Layer TileLayer
}

// PowerUpKind is what a power-up grants on pickup.
type PowerUpKind string

const (
	PowerUpRepair PowerUpKind = "repair"
	PowerUpWeapon PowerUpKind = "weapon"
)

type PowerUp struct {
	Kind PowerUpKind
}

// Loot makes a wreck drop a power-up with the given probability.
type Loot struct {
	Chance float64
}

// Wreck is a dead entity kept for display. A zero TTL keeps it until the
// out-of-view sweep.
type Wreck struct {
	TTL float64 // seconds left, 0 = until swept
}

// Permanent entities survive the restart wipe.
type Permanent struct{}

package entity

// EntityID is a unique identifier for an entity
type EntityID uint32

// DefaultPlayerStart is used when a level names no start position
var DefaultPlayerStart = Vec{X: 100, Y: 100}

// EnemySpawn is an enemy placement record
type EnemySpawn struct {
	Kind EnemyKind
	X, Y float64
}

// CollectibleKind identifies a pickup
type CollectibleKind int

const (
	CollectibleCoin CollectibleKind = iota
	CollectibleGem
	CollectibleLeaf
)

// String returns the collectible name used in level files
func (k CollectibleKind) String() string {
	switch k {
	case CollectibleGem:
		return "gem"
	case CollectibleLeaf:
		return "leaf"
	default:
		return "coin"
	}
}

// ParseCollectibleKind converts a level-file collectible name. Unknown names return false.
func ParseCollectibleKind(s string) (CollectibleKind, bool) {
	switch s {
	case "coin", "":
		return CollectibleCoin, true
	case "gem", "diamond":
		return CollectibleGem, true
	case "leaf", "powerup":
		return CollectibleLeaf, true
	}
	return CollectibleCoin, false
}

// CollectibleSpawn is a pickup placement record.
// Powerup is only meaningful for leaves and is fixed when the level is built.
type CollectibleSpawn struct {
	Kind    CollectibleKind
	X, Y    float64
	Value   int
	Powerup PowerupType
}

// Collectible is a live pickup placed from a spawn record
type Collectible struct {
	Spawn CollectibleSpawn
	Rect
	Collected bool
	Bob       float64 // animation phase, radians
}

// NewCollectible creates a pickup of the given size centered on the spawn position
func NewCollectible(spawn CollectibleSpawn, size float64) *Collectible {
	return &Collectible{
		Spawn: spawn,
		Rect:  Rect{spawn.X - size/2, spawn.Y - size/2, size, size},
	}
}

// HazardKind identifies a damaging area
type HazardKind int

const (
	HazardSpike HazardKind = iota
	HazardPit
)

// String returns the hazard name used in level files
func (k HazardKind) String() string {
	if k == HazardPit {
		return "bottomless-pit"
	}
	return "spike"
}

// ParseHazardKind converts a level-file hazard name. Unknown names return false.
func ParseHazardKind(s string) (HazardKind, bool) {
	switch s {
	case "spike", "spikes", "":
		return HazardSpike, true
	case "bottomless-pit", "pit":
		return HazardPit, true
	}
	return HazardSpike, false
}

// Hazard is a damaging area. Lethal hazards kill regardless of health.
type Hazard struct {
	Rect
	Kind   HazardKind
	Damage int
	Lethal bool
}

// NewHazard creates a hazard with the fixed damage semantics of its kind
func NewHazard(kind HazardKind, r Rect) Hazard {
	if kind == HazardPit {
		return Hazard{Rect: r, Kind: kind, Lethal: true}
	}
	return Hazard{Rect: r, Kind: kind, Damage: 1}
}

// Bouncer is a bounce pad. Cooldown is owned by the pad, in milliseconds.
type Bouncer struct {
	Rect
	Force    float64
	Cooldown float64
	Squash   float64 // 0..1, rendering compression after a trigger
}

// Level is the parsed, immutable description of a level.
// Only the moving subset of Platforms changes after creation.
type Level struct {
	Name        string
	Theme       string
	Width       float64 // pixels
	Height      float64
	TileSize    float64
	PlayerStart Vec

	Platforms    []*Platform
	Enemies      []EnemySpawn
	Collectibles []CollectibleSpawn
	Hazards      []Hazard
	Bouncers     []Bouncer
	Exit         *Vec
}

// Bounds returns the level's play-field rectangle
func (l *Level) Bounds() Rect {
	return Rect{0, 0, l.Width, l.Height}
}

// Clone returns a copy whose platforms and bouncers may be mutated independently
func (l *Level) Clone() *Level {
	c := *l
	c.Platforms = make([]*Platform, len(l.Platforms))
	for i, p := range l.Platforms {
		c.Platforms[i] = p.Clone()
	}
	c.Enemies = append([]EnemySpawn(nil), l.Enemies...)
	c.Collectibles = append([]CollectibleSpawn(nil), l.Collectibles...)
	c.Hazards = append([]Hazard(nil), l.Hazards...)
	c.Bouncers = append([]Bouncer(nil), l.Bouncers...)
	if l.Exit != nil {
		e := *l.Exit
		c.Exit = &e
	}
	return &c
}

// ReindexPlatforms assigns each platform its position in the list as ID
func (l *Level) ReindexPlatforms() {
	for i, p := range l.Platforms {
		p.ID = i
	}
}

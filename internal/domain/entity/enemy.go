package entity

import "strings"

// EnemyKind is the behavior tag of an enemy
type EnemyKind int

const (
	EnemyWalker EnemyKind = iota
	EnemyBigWalker
	EnemyJumper
	EnemyFlyer
	EnemyShooter
	EnemyWalkingShooter
	EnemyBoss
)

var enemyKindNames = map[EnemyKind]string{
	EnemyWalker:         "walker",
	EnemyBigWalker:      "bigwalker",
	EnemyJumper:         "jumper",
	EnemyFlyer:          "flyer",
	EnemyShooter:        "shooter",
	EnemyWalkingShooter: "walkshooter",
	EnemyBoss:           "boss",
}

// String returns the enemy type name used in level files
func (k EnemyKind) String() string {
	if s, ok := enemyKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseEnemyKind converts an enemy type name (case-insensitive). Unknown names return false.
func ParseEnemyKind(s string) (EnemyKind, bool) {
	s = strings.ToLower(strings.ReplaceAll(s, "-", ""))
	if s == "walkingshooter" {
		return EnemyWalkingShooter, true
	}
	for k, name := range enemyKindNames {
		if name == s {
			return k, true
		}
	}
	return EnemyWalker, false
}

// FlightPattern selects a flyer's idle path
type FlightPattern int

const (
	FlightSine FlightPattern = iota
	FlightCircle
)

// PatrolState drives horizontal patrol with direction reversal
type PatrolState struct {
	Dir        Direction
	EdgeDetect bool
}

// HopState drives periodic jumps with a squash telegraph
type HopState struct {
	Interval int // frames between jumps
	Timer    int
	Force    float64
	Squash   float64 // 0..1, rendering telegraph before a jump
}

// FlightState drives flyer paths, dives and blended recovery
type FlightState struct {
	Origin  Vec
	Pattern FlightPattern
	T       float64 // path parameter, radians
	Speed   float64 // radians per frame
	RadiusX float64
	RadiusY float64

	DiveChance float64 // per frame
	DiveSpeed  float64

	Diving       bool
	DiveVel      Vec
	DiveFrames   int
	DiveCooldown int
	Recovering   int // frames left of blend back onto the path
	RecoverFrom  Vec
}

// ShotState drives charge-up ranged attacks
type ShotState struct {
	Interval int // frames per charge cycle
	Timer    int
	Charge   float64 // 0 -> 1 across the interval
	Speed    float64
	Damage   int
	Life     int // projectile lifetime, frames
}

// BossState tracks health-threshold phases
type BossState struct {
	Phase      int // 1-based
	Thresholds []float64
}

// Enemy is a single tagged-variant record; behavior-specific state lives in the
// sub-structs and is selected by Kind.
type Enemy struct {
	ID   EntityID
	Kind EnemyKind
	Body

	Health        int
	MaxHealth     int
	Active        bool
	ContactDamage int
	Speed         float64
	Invulnerable  int // frames
	ScoreValue    int

	Patrol PatrolState
	Hop    HopState
	Flight FlightState
	Shot   ShotState
	Boss   BossState
}

// NewEnemy creates an active enemy of the given kind at (x, y)
func NewEnemy(id EntityID, kind EnemyKind, x, y, w, h float64, health int) *Enemy {
	e := &Enemy{
		ID:        id,
		Kind:      kind,
		Body:      NewBody(x, y, w, h),
		Health:    health,
		MaxHealth: health,
		Active:    true,
	}
	e.Facing = DirLeft
	e.Patrol.Dir = DirLeft
	return e
}

// Hurt applies damage unless invulnerable. Returns true if the enemy died.
func (e *Enemy) Hurt(damage, invulnFrames int) bool {
	if !e.Active || e.Invulnerable > 0 {
		return false
	}
	e.Health -= damage
	e.Invulnerable = invulnFrames
	if e.Health <= 0 {
		e.Health = 0
		e.Active = false
		return true
	}
	return false
}

// IsActive returns true while the enemy is alive and in the world
func (e *Enemy) IsActive() bool {
	return e.Active && e.Health > 0
}

// HealthFraction returns Health/MaxHealth
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return float64(e.Health) / float64(e.MaxHealth)
}

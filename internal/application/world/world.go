// Package world holds the complete simulation state of one level.
//
// A World is created per level and discarded wholesale on a level switch. It owns
// the platform index, the player and every manager, and advances them in a fixed
// order so that the same level, seed and intent stream always produce the same state.
package world

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/younwookim/skyrunner/internal/application/system"
	"github.com/younwookim/skyrunner/internal/domain/entity"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

// Options configures a new World
type Options struct {
	// Rand drives enemy decisions and particles. nil uses a time-seeded source.
	Rand   *rand.Rand
	Logger *log.Logger
}

// World is the per-level simulation context
type World struct {
	level   *entity.Level
	player  *entity.Player
	index   *system.PlatformIndex
	physCfg *config.PhysicsConfig
	logger  *log.Logger

	physics      *system.PhysicsSystem
	input        *system.InputSystem
	combat       *system.CombatSystem
	bouncers     *system.BouncerSystem
	enemies      *system.EnemySystem
	projectiles  *system.ProjectileSystem
	collectibles *system.CollectibleSystem
	hazards      *system.HazardSystem
	effects      *system.EffectSystem

	events   *system.EventBuffer
	exit     *entity.Rect
	frame    int
	score    int
	complete bool
}

// scoreSink tallies score events before buffering them for the caller
type scoreSink struct {
	w *World
}

func (s scoreSink) Emit(e system.Event) {
	if e.Kind == system.EventScore {
		s.w.score += e.Score
	}
	s.w.events.Emit(e)
}

// New builds a world for a level. The level is cloned so moving platforms and pad
// cooldowns never leak between worlds built from the same level.
func New(lv *entity.Level, physics *config.PhysicsConfig, entities *config.EntitiesConfig, opts Options) *World {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	lv = lv.Clone()
	bounds := lv.Bounds()
	w := &World{
		level:   lv,
		physCfg: physics,
		logger:  opts.Logger,
		events:  &system.EventBuffer{},
	}
	sink := scoreSink{w: w}

	w.index = system.NewPlatformIndex(lv.Platforms, bounds, physics.Collision.BroadPhaseCell)
	w.effects = system.NewEffectSystem(rand.New(rand.NewSource(opts.Rand.Int63())))
	w.combat = system.NewCombatSystem(physics, sink, w.effects)
	w.physics = system.NewPhysicsSystem(physics, w.index, bounds)
	w.input = system.NewInputSystem(physics)
	w.bouncers = system.NewBouncerSystem(physics, lv.Bouncers, sink)
	w.projectiles = system.NewProjectileSystem(w.index, bounds, w.combat, w.effects, opts.Logger)
	w.enemies = system.NewEnemySystem(physics, entities, w.index, bounds, w.combat, w.projectiles, sink, opts.Rand, opts.Logger)
	w.collectibles = system.NewCollectibleSystem(lv.Collectibles, physics, entities, sink, w.effects, opts.Logger)
	w.hazards = system.NewHazardSystem(lv.Hazards, w.combat)

	pc := entities.Player
	w.player = entity.NewPlayer(lv.PlayerStart.X, lv.PlayerStart.Y, pc.Width, pc.Height,
		physics.Combat.MaxHealth, physics.Jump.MaxJumps)

	for _, sp := range lv.Enemies {
		w.enemies.Spawn(sp)
	}
	if lv.Exit != nil {
		w.exit = &entity.Rect{X: lv.Exit.X, Y: lv.Exit.Y, W: lv.TileSize, H: lv.TileSize}
	}

	w.logger.Printf("[world] %s ready: %d platforms, %d enemies, %d collectibles",
		lv.Name, len(lv.Platforms), len(w.enemies.Enemies()), len(w.collectibles.Items()))
	return w
}

// ClampDT bounds a frame delta to [0, limit]. NaN becomes 0; limit <= 0 disables the cap.
func ClampDT(dt, limit float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if limit > 0 && dt > limit {
		return limit
	}
	return dt
}

// Tick advances the world by dt seconds and returns the events raised during the tick.
// Order: platforms, player, bouncers, enemies, projectiles, collectibles and hazards,
// exit, effects.
func (w *World) Tick(dt float64, in system.Intent) []system.Event {
	dt = ClampDT(dt, w.physCfg.Physics.MaxDT)
	k := dt * 60
	w.frame++

	for _, p := range w.level.Platforms {
		p.Advance(dt, w.physCfg.Physics.MoveEpsilon)
	}
	w.index.Sync()

	prev := w.player.Bounds()
	w.input.UpdatePlayer(w.player, in, k)
	w.physics.Update(w.player, in, dt)
	w.bouncers.Update(w.player, prev, dt)

	w.enemies.Update(w.player, dt)
	w.projectiles.Update(w.player, k)

	w.collectibles.Update(w.player, k)
	w.hazards.Update(w.player)
	w.checkExit()

	w.effects.Update(w.player, k)
	return w.events.Drain()
}

func (w *World) checkExit() {
	if w.complete || w.exit == nil || !w.player.Bounds().Overlaps(*w.exit) {
		return
	}
	w.complete = true
	w.events.Emit(system.Event{
		Kind: system.EventLevelComplete,
		Pos:  entity.Vec{X: w.exit.CenterX(), Y: w.exit.CenterY()},
	})
	w.logger.Printf("[world] %s complete at frame %d, score %d", w.level.Name, w.frame, w.score)
}

// Level returns the world's own copy of the level
func (w *World) Level() *entity.Level { return w.level }

// Player returns the player
func (w *World) Player() *entity.Player { return w.player }

// Platforms returns the current platforms, moving ones at their present position
func (w *World) Platforms() []*entity.Platform { return w.index.Platforms() }

// Enemies returns the live enemies
func (w *World) Enemies() []*entity.Enemy { return w.enemies.Enemies() }

// Projectiles returns the live projectiles
func (w *World) Projectiles() []*entity.Projectile { return w.projectiles.Projectiles() }

// Collectibles returns every pickup, collected or not
func (w *World) Collectibles() []*entity.Collectible { return w.collectibles.Items() }

// Hazards returns the level's hazards
func (w *World) Hazards() []entity.Hazard { return w.hazards.Hazards() }

// Bouncers returns the pads with their current cooldown and squash
func (w *World) Bouncers() []entity.Bouncer { return w.bouncers.Bouncers() }

// Particles returns the world particles
func (w *World) Particles() []entity.Particle { return w.effects.Particles() }

// Exit returns the exit area, or nil if the level has none
func (w *World) Exit() *entity.Rect { return w.exit }

// Frame returns the number of ticks run
func (w *World) Frame() int { return w.frame }

// Score returns the score accumulated from score events
func (w *World) Score() int { return w.score }

// Complete reports whether the player has reached the exit
func (w *World) Complete() bool { return w.complete }

package system

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/younwookim/skyrunner/internal/domain/entity"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

const (
	jumperTelegraphFrames = 20
	diveFrames            = 45
	recoverFrames         = 40
	diveCooldownFrames    = 120
	diveRange             = 260.0
	shootRange            = 400.0
	bossPhaseInvulnFrames = 90
	bossPhaseSpeedStep    = 0.5
	edgeProbe             = 2.0
)

// enemyBehavior advances one enemy by one tick
type enemyBehavior func(s *EnemySystem, e *entity.Enemy, player *entity.Player, k float64) error

var enemyBehaviors = map[entity.EnemyKind]enemyBehavior{
	entity.EnemyWalker:         updateWalker,
	entity.EnemyBigWalker:      updateWalker,
	entity.EnemyJumper:         updateJumper,
	entity.EnemyFlyer:          updateFlyer,
	entity.EnemyShooter:        updateShooter,
	entity.EnemyWalkingShooter: updateWalkingShooter,
	entity.EnemyBoss:           updateBoss,
}

// EnemySystem spawns enemies, runs their behaviors and resolves player contact
type EnemySystem struct {
	physics     *config.PhysicsConfig
	entities    *config.EntitiesConfig
	index       *PlatformIndex
	bounds      entity.Rect
	combat      *CombatSystem
	projectiles *ProjectileSystem
	events      EventSink
	rng         *rand.Rand
	logger      *log.Logger

	enemies []*entity.Enemy
	nextID  entity.EntityID
}

// NewEnemySystem creates a new enemy system
func NewEnemySystem(
	physics *config.PhysicsConfig,
	entities *config.EntitiesConfig,
	index *PlatformIndex,
	bounds entity.Rect,
	combat *CombatSystem,
	projectiles *ProjectileSystem,
	events EventSink,
	rng *rand.Rand,
	logger *log.Logger,
) *EnemySystem {
	return &EnemySystem{
		physics:     physics,
		entities:    entities,
		index:       index,
		bounds:      bounds,
		combat:      combat,
		projectiles: projectiles,
		events:      sinkOrDiscard(events),
		rng:         rng,
		logger:      loggerOrDefault(logger),
		enemies:     make([]*entity.Enemy, 0, 32),
		nextID:      1,
	}
}

// Spawn creates an enemy from its placement record and the kind's tuning
func (s *EnemySystem) Spawn(sp entity.EnemySpawn) *entity.Enemy {
	cfg := s.entities.Enemy(sp.Kind.String())

	e := entity.NewEnemy(s.nextID, sp.Kind, sp.X, sp.Y, cfg.Width, cfg.Height, cfg.MaxHealth)
	s.nextID++
	e.ContactDamage = cfg.ContactDamage
	e.Speed = cfg.MoveSpeed
	e.ScoreValue = cfg.Score

	ai := cfg.AI
	e.Patrol.EdgeDetect = ai.EdgeDetect
	e.Hop = entity.HopState{Interval: ai.JumpInterval, Force: ai.JumpForce}
	e.Shot = entity.ShotState{
		Interval: ai.ShootInterval,
		Speed:    ai.ProjectileSpeed,
		Damage:   ai.ProjectileDamage,
		Life:     ai.ProjectileLife,
	}

	pattern := entity.FlightSine
	if ai.FlightPattern == "circle" {
		pattern = entity.FlightCircle
	}
	e.Flight = entity.FlightState{
		Origin:     entity.Vec{X: sp.X, Y: sp.Y},
		Pattern:    pattern,
		Speed:      ai.FlightSpeed,
		RadiusX:    ai.FlightRadiusX,
		RadiusY:    ai.FlightRadiusY,
		DiveChance: ai.DiveChance,
		DiveSpeed:  ai.DiveSpeed,
	}
	e.Boss = entity.BossState{Phase: 1, Thresholds: ai.PhaseThresholds}
	if sp.Kind != entity.EnemyFlyer {
		s.settle(e)
	}

	s.enemies = append(s.enemies, e)
	return e
}

// settle lifts a walker spawned inside solid ground onto the highest surface under its center.
func (s *EnemySystem) settle(e *entity.Enemy) {
	r := e.Bounds()
	top := math.Inf(1)
	for _, i := range s.index.Query(r) {
		p := s.index.Platform(i)
		if !p.IsSolid() || !r.Overlaps(p.Rect) || p.Y <= r.Y {
			continue
		}
		if cx := r.CenterX(); cx < p.X || cx > p.Right() {
			continue
		}
		top = math.Min(top, p.Y)
	}
	if !math.IsInf(top, 1) {
		e.SetFeet(top)
	}
}

// Update runs every active enemy's behavior, then resolves contact with the player.
// An enemy whose update fails is skipped for the frame and the rest continue.
func (s *EnemySystem) Update(player *entity.Player, dt float64) {
	k := dt * 60
	cull := s.bounds.Bottom() + s.physics.Physics.BelowWorld

	for _, e := range s.enemies {
		if !e.IsActive() {
			continue
		}
		guard(s.logger, "enemy", e.ID, func() error {
			if err := checkEnemy(e); err != nil {
				return err
			}
			behave, ok := enemyBehaviors[e.Kind]
			if !ok {
				return invalidf(ErrInvalidEnemy, "no behavior for kind %d", int(e.Kind))
			}
			if e.Invulnerable > 0 {
				e.Invulnerable--
			}
			if err := behave(s, e, player, k); err != nil {
				return err
			}
			if e.Y > cull {
				e.Active = false
			}
			return nil
		})
	}

	if player != nil {
		for _, e := range s.enemies {
			s.CheckPlayerCollision(player, e)
		}
	}
	s.compact()
}

// CheckPlayerCollision resolves one enemy's contact with the player
func (s *EnemySystem) CheckPlayerCollision(player *entity.Player, e *entity.Enemy) ContactResult {
	return s.combat.ResolveContact(player, e)
}

// Enemies returns the live enemies
func (s *EnemySystem) Enemies() []*entity.Enemy {
	return s.enemies
}

func (s *EnemySystem) compact() {
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if e.IsActive() {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.enemies); i++ {
		s.enemies[i] = nil
	}
	s.enemies = kept
}

func checkEnemy(e *entity.Enemy) error {
	for _, v := range []float64{e.X, e.Y, e.VX, e.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidf(ErrInvalidEnemy, "%s state (%v, %v) velocity (%v, %v)", e.Kind, e.X, e.Y, e.VX, e.VY)
		}
	}
	if e.W <= 0 || e.H <= 0 {
		return invalidf(ErrInvalidEnemy, "%s size %vx%v", e.Kind, e.W, e.H)
	}
	return nil
}

func updateWalker(s *EnemySystem, e *entity.Enemy, _ *entity.Player, k float64) error {
	s.patrol(e, e.Speed, k)
	return nil
}

func updateJumper(s *EnemySystem, e *entity.Enemy, player *entity.Player, k float64) error {
	h := &e.Hop
	if e.Grounded && h.Interval > 0 {
		e.VX = 0
		h.Timer++
		if lead := h.Interval - jumperTelegraphFrames; h.Timer > lead {
			h.Squash = math.Min(1, float64(h.Timer-lead)/jumperTelegraphFrames)
		}
		if h.Timer >= h.Interval {
			h.Timer = 0
			h.Squash = 0
			dir := e.Facing
			if player != nil {
				dir = directionTo(e.CenterX(), player.CenterX())
			}
			e.Facing = dir
			e.VX = float64(dir) * math.Max(e.Speed, 1.5)
			e.VY = -h.Force
			e.Grounded = false
		}
	}
	s.moveBody(&e.Body, k, true)
	return nil
}

func updateFlyer(s *EnemySystem, e *entity.Enemy, player *entity.Player, k float64) error {
	f := &e.Flight
	if f.DiveCooldown > 0 {
		f.DiveCooldown--
	}

	if f.Diving {
		e.X += f.DiveVel.X * k
		e.Y += f.DiveVel.Y * k
		f.DiveFrames--
		if f.DiveFrames <= 0 || s.touchesSolid(e.Bounds()) {
			f.Diving = false
			f.DiveVel = entity.Vec{}
			f.Recovering = recoverFrames
			f.RecoverFrom = entity.Vec{X: e.X, Y: e.Y}
			f.DiveCooldown = diveCooldownFrames
		}
		return nil
	}

	prevX := e.X
	f.T += f.Speed * k
	target := flightPoint(f)
	if f.Recovering > 0 {
		w := 1 - float64(f.Recovering)/recoverFrames
		target = f.RecoverFrom.Scale(1 - w).Add(target.Scale(w))
		f.Recovering--
	}
	e.X, e.Y = target.X, target.Y
	if e.X > prevX {
		e.Facing = entity.DirRight
	} else if e.X < prevX {
		e.Facing = entity.DirLeft
	}

	if player == nil || f.Recovering > 0 || f.DiveCooldown > 0 || f.DiveChance <= 0 {
		return nil
	}
	dx := player.CenterX() - e.CenterX()
	dy := player.CenterY() - e.CenterY()
	if math.Abs(dx) > diveRange || dy <= 0 {
		return nil
	}
	if s.rng.Float64() < f.DiveChance*k {
		dist := math.Hypot(dx, dy)
		f.Diving = true
		f.DiveFrames = diveFrames
		f.DiveVel = entity.Vec{X: dx / dist * f.DiveSpeed, Y: dy / dist * f.DiveSpeed}
		e.Facing = directionTo(e.CenterX(), player.CenterX())
	}
	return nil
}

// flightPoint returns the position on the idle path; T=0 maps to the origin
func flightPoint(f *entity.FlightState) entity.Vec {
	switch f.Pattern {
	case entity.FlightCircle:
		return entity.Vec{
			X: f.Origin.X + f.RadiusX*math.Sin(f.T),
			Y: f.Origin.Y + f.RadiusY*(math.Cos(f.T)-1),
		}
	default:
		return entity.Vec{
			X: f.Origin.X + f.RadiusX*math.Sin(f.T),
			Y: f.Origin.Y + f.RadiusY*math.Sin(2*f.T),
		}
	}
}

func updateShooter(s *EnemySystem, e *entity.Enemy, player *entity.Player, k float64) error {
	e.VX = 0
	s.moveBody(&e.Body, k, true)
	if player != nil {
		e.Facing = directionTo(e.CenterX(), player.CenterX())
	}
	return s.chargeShot(e, player)
}

func updateWalkingShooter(s *EnemySystem, e *entity.Enemy, player *entity.Player, k float64) error {
	speed := e.Speed
	// plants its feet while the shot is about to fire
	if e.Shot.Charge > 0.75 {
		speed = 0
	}
	s.patrol(e, speed, k)
	return s.chargeShot(e, player)
}

func updateBoss(s *EnemySystem, e *entity.Enemy, player *entity.Player, k float64) error {
	s.updateBossPhase(e)
	phase := e.Boss.Phase

	if phase >= 2 && e.Grounded && e.Hop.Interval > 0 {
		e.Hop.Timer++
		if e.Hop.Timer >= e.Hop.Interval {
			e.Hop.Timer = 0
			e.VY = -e.Hop.Force
			e.Grounded = false
		}
	}

	speed := e.Speed * (1 + bossPhaseSpeedStep*float64(phase-1))
	s.patrol(e, speed, k)

	if phase >= 3 {
		return s.chargeShot(e, player)
	}
	return nil
}

// updateBossPhase moves the boss to the phase its health fraction has reached.
// Phases only advance; each transition grants a short invulnerability.
func (s *EnemySystem) updateBossPhase(e *entity.Enemy) {
	frac := e.HealthFraction()
	phase := 1
	for _, t := range e.Boss.Thresholds {
		if frac <= t {
			phase++
		}
	}
	if phase <= e.Boss.Phase {
		return
	}
	e.Boss.Phase = phase
	e.Invulnerable = bossPhaseInvulnFrames
	s.events.Emit(Event{
		Kind: EventPopup,
		Text: fmt.Sprintf("phase %d", phase),
		Pos:  entity.Vec{X: e.CenterX(), Y: e.Y},
	})
}

// chargeShot fills the charge meter and fires an aimed projectile when it is full
func (s *EnemySystem) chargeShot(e *entity.Enemy, player *entity.Player) error {
	sh := &e.Shot
	if sh.Interval <= 0 {
		return nil
	}
	sh.Timer++
	sh.Charge = math.Min(1, float64(sh.Timer)/float64(sh.Interval))
	if sh.Timer < sh.Interval {
		return nil
	}
	sh.Timer = 0
	sh.Charge = 0

	if player == nil || s.projectiles == nil {
		return nil
	}
	cx, cy := e.CenterX(), e.Y+e.H/2
	if math.Hypot(player.CenterX()-cx, player.CenterY()-cy) > shootRange {
		return nil
	}
	p := entity.NewAimedProjectile(e.ID, cx, cy, player.CenterX(), player.CenterY(), sh.Speed, sh.Damage, sh.Life)
	if err := s.projectiles.Spawn(p); err != nil {
		return fmt.Errorf("failed to fire from %s: %w", e.Kind, err)
	}
	return nil
}

// patrol walks the enemy along its direction, turning at walls, ledges and level edges
func (s *EnemySystem) patrol(e *entity.Enemy, speed float64, k float64) {
	e.VX = float64(e.Patrol.Dir) * speed
	e.Facing = e.Patrol.Dir
	hitWall := s.moveBody(&e.Body, k, true)

	turn := hitWall
	if !turn && e.Patrol.EdgeDetect && e.Grounded && speed > 0 {
		turn = !s.groundAhead(e)
	}
	if turn {
		e.Patrol.Dir = -e.Patrol.Dir
		e.Facing = e.Patrol.Dir
	}
}

func (s *EnemySystem) groundAhead(e *entity.Enemy) bool {
	x := e.X - edgeProbe
	if e.Patrol.Dir == entity.DirRight {
		x = e.X + e.W + edgeProbe
	}
	return s.index.PointSupported(x, e.Bottom()+edgeProbe)
}

// moveBody integrates gravity and velocity for a ground enemy and resolves it
// against platforms. Returns true when horizontal movement was blocked.
func (s *EnemySystem) moveBody(b *entity.Body, k float64, gravity bool) bool {
	tol := s.physics.Collision.LandTolerance
	if gravity {
		b.VY = math.Min(b.VY+s.physics.Physics.Gravity*k, s.physics.Physics.MaxFallSpeed)
	}
	b.WasGrounded = b.Grounded
	prev := b.Bounds()
	hitWall := false

	b.X += b.VX * k
	r := b.Bounds()
	for _, i := range s.index.Query(prev.Union(r)) {
		pl := s.index.Platform(i)
		if !pl.IsSolid() || pl.IsSlope() || !r.Overlaps(pl.Rect) {
			continue
		}
		// shallow vertical overlap is the floor, not a wall
		if r.OverlapY(pl.Rect) <= tol {
			continue
		}
		switch {
		case b.VX > 0:
			b.X = pl.Left() - b.W
		case b.VX < 0:
			b.X = pl.Right()
		default:
			continue
		}
		hitWall = true
		r = b.Bounds()
	}

	b.Y += b.VY * k
	b.Grounded = false
	b.ActivePlatform = entity.NoPlatform
	r = b.Bounds()
	for _, i := range s.index.Query(prev.Union(r).Inset(-tol, -tol)) {
		pl := s.index.Platform(i)
		if pl.IsSlope() {
			cx := r.CenterX()
			if cx < pl.Left() || cx > pl.Right() {
				continue
			}
			surf := pl.SurfaceY(cx)
			if b.VY >= 0 && r.Bottom() >= surf-tol && prev.Bottom() <= surf+tol {
				b.Land(i, surf)
				r = b.Bounds()
			}
			continue
		}

		pr := pl.PrevRect()
		if r.OverlapX(pr) <= 0 {
			continue
		}
		if b.VY >= 0 && r.Bottom() >= pr.Top()-tol && prev.Bottom() <= pr.Top()+tol {
			if !b.Grounded || pr.Top() < b.Bottom() {
				b.Land(i, pr.Top())
				r = b.Bounds()
			}
			continue
		}
		if pl.IsSolid() && b.VY < 0 && r.Overlaps(pr) && prev.Top() >= pr.Bottom()-tol {
			b.Y = pr.Bottom()
			b.VY = 0
			r = b.Bounds()
		}
	}

	if b.ActivePlatform != entity.NoPlatform {
		pl := s.index.Platform(b.ActivePlatform)
		if pl.IsMoving() {
			d := pl.Delta()
			b.X += d.X
			b.Y += d.Y
		}
	}

	if s.bounds.W > 0 {
		if b.X < s.bounds.Left() {
			b.X = s.bounds.Left()
			hitWall = true
		} else if b.X+b.W > s.bounds.Right() {
			b.X = s.bounds.Right() - b.W
			hitWall = true
		}
	}
	return hitWall
}

func (s *EnemySystem) touchesSolid(r entity.Rect) bool {
	for _, i := range s.index.Query(r) {
		pl := s.index.Platform(i)
		if pl.IsOneWay() || !r.Overlaps(pl.Rect) {
			continue
		}
		if pl.IsSlope() && r.Bottom() < pl.SurfaceY(r.CenterX()) {
			continue
		}
		return true
	}
	return false
}

func directionTo(from, to float64) entity.Direction {
	if to < from {
		return entity.DirLeft
	}
	return entity.DirRight
}

package system

import (
	"math"

	"github.com/younwookim/skyrunner/internal/domain/entity"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

// BouncerSystem resolves bounce pads after the player's collision pass.
// Each pad owns its cooldown so touching it on consecutive frames triggers once.
type BouncerSystem struct {
	config   *config.PhysicsConfig
	bouncers []entity.Bouncer
	events   EventSink
}

// NewBouncerSystem creates a new bouncer system
func NewBouncerSystem(cfg *config.PhysicsConfig, bouncers []entity.Bouncer, events EventSink) *BouncerSystem {
	for i := range bouncers {
		if bouncers[i].Force <= 0 {
			bouncers[i].Force = cfg.Bouncer.Force
		}
	}
	return &BouncerSystem{
		config:   cfg,
		bouncers: bouncers,
		events:   sinkOrDiscard(events),
	}
}

// Update counts pad cooldowns down by dt and bounces the player off the first pad it
// lands on. prev is the player's rect before this tick's movement.
func (s *BouncerSystem) Update(player *entity.Player, prev entity.Rect, dt float64) bool {
	ms := dt * 1000
	for i := range s.bouncers {
		b := &s.bouncers[i]
		if b.Cooldown > 0 {
			b.Cooldown = math.Max(0, b.Cooldown-ms)
		}
		if b.Squash > 0 {
			b.Squash = math.Max(0, b.Squash-dt*4)
		}
	}

	for i := range s.bouncers {
		if s.tryBounce(player, prev, i) {
			return true
		}
	}
	return false
}

// Trigger applies a bounce from pad i if its cooldown allows. Returns true if applied.
func (s *BouncerSystem) Trigger(player *entity.Player, i int) bool {
	b := &s.bouncers[i]
	if b.Cooldown > 0 {
		return false
	}
	player.SetFeet(b.Top())
	player.VY = -b.Force * player.JumpMult
	player.Grounded = false
	player.ActivePlatform = entity.NoPlatform
	player.JumpsRemaining = player.MaxJumps - 1
	player.Coyote = 0
	b.Cooldown = s.config.Bouncer.CooldownMs
	b.Squash = 1
	s.events.Emit(Event{Kind: EventBounce, Pos: entity.Vec{X: b.CenterX(), Y: b.Top()}})
	return true
}

func (s *BouncerSystem) tryBounce(player *entity.Player, prev entity.Rect, i int) bool {
	b := &s.bouncers[i]
	tol := s.config.Bouncer.Tolerance
	feet := player.Bottom()

	falling := player.VY > 0 || feet > prev.Bottom()
	if !falling {
		return false
	}
	// within the band now, or crossed it this tick
	near := math.Abs(feet-b.Top()) <= tol || (prev.Bottom() <= b.Top()+tol && feet >= b.Top())
	if !near {
		return false
	}
	band := b.Rect.Inset(s.config.Bouncer.EdgeInset, 0)
	if player.Bounds().OverlapX(band) <= 0 {
		return false
	}
	return s.Trigger(player, i)
}

// Bouncers returns the pads
func (s *BouncerSystem) Bouncers() []entity.Bouncer {
	return s.bouncers
}

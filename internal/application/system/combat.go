package system

import (
	"github.com/younwookim/skyrunner/internal/domain/entity"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

// ContactResult is the outcome of a player/enemy overlap
type ContactResult int

const (
	ContactNone ContactResult = iota
	ContactStomp
	ContactHurt
)

// CombatSystem applies damage, death and player/enemy contact
type CombatSystem struct {
	config  *config.PhysicsConfig
	events  EventSink
	effects *EffectSystem
}

// NewCombatSystem creates a new combat system. effects may be nil.
func NewCombatSystem(cfg *config.PhysicsConfig, events EventSink, effects *EffectSystem) *CombatSystem {
	return &CombatSystem{
		config:  cfg,
		events:  sinkOrDiscard(events),
		effects: effects,
	}
}

// Hurt damages the player. It is a no-op while invulnerable; a shield absorbs
// the hit instead of health. Returns true if the hit landed.
func (s *CombatSystem) Hurt(player *entity.Player, damage int) bool {
	if player.IsInvulnerable() {
		return false
	}

	if player.HasShield() {
		player.Shield.Charges--
		if player.Shield.Charges <= 0 {
			player.Shield = nil
		}
		player.Invulnerable = s.config.Combat.ShieldInvulnFrames
		s.events.Emit(Event{Kind: EventPopup, Text: "blocked", Pos: entity.Vec{X: player.CenterX(), Y: player.Y}})
		return true
	}

	player.Health -= damage
	player.VX = -float64(player.Facing) * s.config.Combat.KnockbackX
	player.VY = -s.config.Combat.KnockbackY
	player.Grounded = false
	player.ActivePlatform = entity.NoPlatform
	player.Invulnerable = s.config.Combat.InvulnFrames
	s.events.Emit(Event{Kind: EventPlayerHurt, Pos: entity.Vec{X: player.CenterX(), Y: player.Y}})

	if player.Health <= 0 {
		s.Die(player)
	}
	return true
}

// Kill applies lethal damage regardless of health, shield or invulnerability
func (s *CombatSystem) Kill(player *entity.Player) {
	s.Die(player)
}

// Die resets the player to the respawn point with full health
func (s *CombatSystem) Die(player *entity.Player) {
	pos := entity.Vec{X: player.CenterX(), Y: player.CenterY()}
	if s.effects != nil {
		s.effects.Burst(pos, EffectDeath, 16)
	}

	player.ClearPowerups()
	player.X, player.Y = player.Respawn.X, player.Respawn.Y
	player.VX, player.VY = 0, 0
	player.Health = player.MaxHealth
	player.Grounded = false
	player.ActivePlatform = entity.NoPlatform
	player.JumpsRemaining = player.MaxJumps
	player.Coyote = 0
	player.DropThrough = 0
	player.Invulnerable = 0
	player.TouchingWall = false
	player.WallDirection = entity.DirNone
	player.FlipRotation = 0
	s.events.Emit(Event{Kind: EventPlayerDied, Pos: pos})
}

// ResolveContact handles a player/enemy overlap: landing on top stomps the enemy
// and bounces the player, any other contact hurts the player.
func (s *CombatSystem) ResolveContact(player *entity.Player, enemy *entity.Enemy) ContactResult {
	if !enemy.IsActive() || !player.Bounds().Overlaps(enemy.Bounds()) {
		return ContactNone
	}

	if player.VY > 0 && player.Bottom()-enemy.Y <= s.config.Combat.StompTolerance+player.VY {
		player.SetFeet(enemy.Y)
		player.VY = -s.config.Combat.StompBounce
		player.JumpsRemaining = player.MaxJumps - 1
		player.Grounded = false

		pos := entity.Vec{X: enemy.CenterX(), Y: enemy.Y}
		if enemy.Hurt(1, s.config.Combat.EnemyInvulnFrames) {
			emitScore(s.events, enemy.ScoreValue, scoreText(enemy.ScoreValue), pos)
			s.events.Emit(Event{Kind: EventEnemyDefeated, Pos: pos})
			if s.effects != nil {
				s.effects.Burst(pos, EffectStomp, 10)
			}
		}
		return ContactStomp
	}

	if s.Hurt(player, enemy.ContactDamage) {
		return ContactHurt
	}
	return ContactNone
}

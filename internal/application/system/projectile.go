package system

import (
	"log"

	"github.com/younwookim/skyrunner/internal/domain/entity"
)

// ProjectileSystem moves enemy shots, stops them on solid platforms and applies hits
type ProjectileSystem struct {
	projectiles []*entity.Projectile
	index       *PlatformIndex
	bounds      entity.Rect
	combat      *CombatSystem
	effects     *EffectSystem
	logger      *log.Logger
}

// NewProjectileSystem creates a new projectile system
func NewProjectileSystem(index *PlatformIndex, bounds entity.Rect, combat *CombatSystem, effects *EffectSystem, logger *log.Logger) *ProjectileSystem {
	return &ProjectileSystem{
		projectiles: make([]*entity.Projectile, 0, 32),
		index:       index,
		bounds:      bounds,
		combat:      combat,
		effects:     effects,
		logger:      loggerOrDefault(logger),
	}
}

// Spawn adds a projectile. Malformed projectiles are rejected.
func (s *ProjectileSystem) Spawn(p *entity.Projectile) error {
	if p == nil || !p.Valid() {
		return invalidf(ErrInvalidProjectile, "rejected at spawn")
	}
	s.projectiles = append(s.projectiles, p)
	return nil
}

// Update steps every projectile. A projectile whose update fails is skipped for the
// frame; its lifetime still runs out.
func (s *ProjectileSystem) Update(player *entity.Player, k float64) {
	for i, p := range s.projectiles {
		if !p.Active {
			continue
		}
		p.Life--
		if p.Life <= 0 {
			p.Active = false
			continue
		}
		guard(s.logger, "projectile", i, func() error {
			return s.step(p, player, k)
		})
	}
	s.compact()
}

func (s *ProjectileSystem) step(p *entity.Projectile, player *entity.Player, k float64) error {
	if !p.Valid() {
		return invalidf(ErrInvalidProjectile, "position (%v, %v) velocity (%v, %v)", p.X, p.Y, p.VX, p.VY)
	}

	p.X += p.VX * k
	p.Y += p.VY * k
	r := p.Bounds()

	if s.bounds.W > 0 && !r.Overlaps(s.bounds) {
		p.Active = false
		return nil
	}

	for _, i := range s.index.Query(r) {
		pl := s.index.Platform(i)
		if pl.IsOneWay() || !r.Overlaps(pl.Rect) {
			continue
		}
		if pl.IsSlope() && r.Bottom() < pl.SurfaceY(r.CenterX()) {
			continue
		}
		p.Active = false
		if s.effects != nil {
			s.effects.Burst(entity.Vec{X: p.X, Y: p.Y}, EffectSpark, 4)
		}
		return nil
	}

	if player != nil && r.Overlaps(player.Bounds()) {
		p.Active = false
		s.combat.Hurt(player, p.Damage)
	}
	return nil
}

func (s *ProjectileSystem) compact() {
	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.Active {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(s.projectiles); i++ {
		s.projectiles[i] = nil
	}
	s.projectiles = kept
}

// Projectiles returns the live projectiles
func (s *ProjectileSystem) Projectiles() []*entity.Projectile {
	return s.projectiles
}

// Clear removes every projectile
func (s *ProjectileSystem) Clear() {
	s.projectiles = s.projectiles[:0]
}

package system

import (
	"math"
	"math/rand"

	"github.com/younwookim/skyrunner/internal/domain/entity"
)

// Particle kinds
const (
	EffectCollect = "collect"
	EffectStomp   = "stomp"
	EffectLand    = "land"
	EffectDeath   = "death"
	EffectSpark   = "spark"
	EffectDust    = "dust"
)

const (
	particleGravity  = 0.15
	burstLife        = 30
	dustLife         = 14
	dustEveryNFrames = 4
)

// EffectSystem owns decorative world particles and ticks the player's own trail
type EffectSystem struct {
	rng       *rand.Rand
	particles []entity.Particle
	frame     int
}

// NewEffectSystem creates a new effect system. rng drives particle spread.
func NewEffectSystem(rng *rand.Rand) *EffectSystem {
	return &EffectSystem{
		rng:       rng,
		particles: make([]entity.Particle, 0, 128),
	}
}

// Burst spawns n particles radiating from pos
func (s *EffectSystem) Burst(pos entity.Vec, kind string, n int) {
	for i := 0; i < n; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := 1 + s.rng.Float64()*2
		s.particles = append(s.particles, entity.Particle{
			Pos:  pos,
			Vel:  entity.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle)*speed - 1},
			Life: burstLife,
			Max:  burstLife,
			Size: 2 + s.rng.Float64()*2,
			Kind: kind,
		})
	}
}

// Update advances world particles and the player's trail; expired particles are dropped
func (s *EffectSystem) Update(player *entity.Player, k float64) {
	s.frame++
	s.particles = stepParticles(s.particles, k)

	if player == nil {
		return
	}
	if player.Grounded && math.Abs(player.VX) > 3 && s.frame%dustEveryNFrames == 0 {
		player.Particles = append(player.Particles, entity.Particle{
			Pos:  entity.Vec{X: player.CenterX(), Y: player.Bottom()},
			Vel:  entity.Vec{X: -player.VX * 0.1, Y: -0.5},
			Life: dustLife,
			Max:  dustLife,
			Size: 2,
			Kind: EffectDust,
		})
	}
	if player.Grounded && !player.WasGrounded {
		s.Burst(entity.Vec{X: player.CenterX(), Y: player.Bottom()}, EffectLand, 4)
	}
	player.Particles = stepParticles(player.Particles, k)
}

// Particles returns the live world particles
func (s *EffectSystem) Particles() []entity.Particle {
	return s.particles
}

// Clear drops every world particle
func (s *EffectSystem) Clear() {
	s.particles = s.particles[:0]
}

func stepParticles(ps []entity.Particle, k float64) []entity.Particle {
	kept := ps[:0]
	for _, p := range ps {
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.Vel.Y += particleGravity * k
		p.Pos = p.Pos.Add(p.Vel.Scale(k))
		kept = append(kept, p)
	}
	return kept
}

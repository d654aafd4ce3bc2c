package system

import "github.com/younwookim/skyrunner/internal/domain/entity"

// HazardSystem applies damage from spikes and kills on bottomless pits
type HazardSystem struct {
	hazards []entity.Hazard
	combat  *CombatSystem
}

// NewHazardSystem creates a new hazard system
func NewHazardSystem(hazards []entity.Hazard, combat *CombatSystem) *HazardSystem {
	return &HazardSystem{
		hazards: hazards,
		combat:  combat,
	}
}

// Update checks the player against every hazard. A lethal hazard ends the check.
func (s *HazardSystem) Update(player *entity.Player) {
	for _, h := range s.hazards {
		if !player.Bounds().Overlaps(h.Rect) {
			continue
		}
		if h.Lethal {
			s.combat.Kill(player)
			return
		}
		s.combat.Hurt(player, h.Damage)
	}
}

// Hazards returns the hazard records
func (s *HazardSystem) Hazards() []entity.Hazard {
	return s.hazards
}

package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/skyrunner/internal/domain/entity"
)

func TestHazardSystem_Update(t *testing.T) {
	spikeRect := entity.Rect{X: 90, Y: 120, W: 40, H: 16}
	pitRect := entity.Rect{X: 90, Y: 110, W: 40, H: 500}

	tests := []struct {
		name       string
		hazards    []entity.Hazard
		shield     bool
		wantHealth int
		wantDied   int
		wantAtHome bool
	}{
		{"spike hurts", []entity.Hazard{entity.NewHazard(entity.HazardSpike, spikeRect)}, false, 2, 0, false},
		{"shield blocks spike", []entity.Hazard{entity.NewHazard(entity.HazardSpike, spikeRect)}, true, 3, 0, false},
		{"pit is lethal", []entity.Hazard{entity.NewHazard(entity.HazardPit, pitRect)}, false, 3, 1, true},
		{"pit ignores shield", []entity.Hazard{entity.NewHazard(entity.HazardPit, pitRect)}, true, 3, 1, true},
		{"out of reach", []entity.Hazard{entity.NewHazard(entity.HazardSpike, entity.Rect{X: 500, Y: 500, W: 10, H: 10})}, false, 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combat, events := createTestCombat()
			sys := NewHazardSystem(tt.hazards, combat)
			player := createTestPlayer()
			player.Respawn = entity.Vec{X: 10, Y: 10}
			if tt.shield {
				player.AddPowerup(entity.PowerupShield, 600, 1)
			}

			sys.Update(player)

			assert.Equal(t, tt.wantHealth, player.Health)
			assert.Equal(t, tt.wantDied, events.Count(EventPlayerDied))
			if tt.wantAtHome {
				assert.Equal(t, 10.0, player.X)
				assert.Equal(t, 10.0, player.Y)
			}
		})
	}
}

func TestHazardSystem_SpikeRespectsInvulnerability(t *testing.T) {
	combat, _ := createTestCombat()
	sys := NewHazardSystem([]entity.Hazard{
		entity.NewHazard(entity.HazardSpike, entity.Rect{X: 90, Y: 120, W: 40, H: 16}),
	}, combat)
	player := createTestPlayer()

	for i := 0; i < 10; i++ {
		sys.Update(player)
	}

	assert.Equal(t, 2, player.Health)
}

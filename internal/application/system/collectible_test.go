package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/skyrunner/internal/domain/entity"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

func createTestCollectibles(spawns ...entity.CollectibleSpawn) (*CollectibleSystem, *EventBuffer) {
	events := &EventBuffer{}
	sys := NewCollectibleSystem(spawns, createTestPhysicsConfig(), config.DefaultEntitiesConfig(), events, nil, nil)
	return sys, events
}

func TestNewCollectibleSystem(t *testing.T) {
	sys, _ := createTestCollectibles(
		entity.CollectibleSpawn{Kind: entity.CollectibleCoin, X: 10, Y: 10},
		entity.CollectibleSpawn{Kind: entity.CollectibleGem, X: 50, Y: 10, Value: 75},
	)

	require.Len(t, sys.Items(), 2)
	assert.Equal(t, 10, sys.Items()[0].Spawn.Value, "value from entity tuning")
	assert.Equal(t, 75, sys.Items()[1].Spawn.Value, "explicit value kept")
	assert.Equal(t, 16.0, sys.Items()[0].W)
	assert.Equal(t, 2, sys.Remaining())
}

func TestCollectibleSystem_Collect(t *testing.T) {
	tests := []struct {
		name      string
		spawn     entity.CollectibleSpawn
		wantScore int
	}{
		{"coin", entity.CollectibleSpawn{Kind: entity.CollectibleCoin, X: 110, Y: 115}, 10},
		{"gem", entity.CollectibleSpawn{Kind: entity.CollectibleGem, X: 110, Y: 115}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, events := createTestCollectibles(tt.spawn)
			player := createTestPlayer()

			sys.Update(player, 1)

			assert.True(t, sys.Items()[0].Collected)
			assert.Equal(t, 0, sys.Remaining())
			assert.Equal(t, 1, events.Count(EventCollected))

			score := 0
			for _, e := range events.Drain() {
				if e.Kind == EventScore {
					score += e.Score
				}
			}
			assert.Equal(t, tt.wantScore, score)

			// collected items never fire twice
			sys.Update(player, 1)
			assert.Equal(t, 0, events.Len())
		})
	}
}

func TestCollectibleSystem_LeafGrantsPowerup(t *testing.T) {
	sys, events := createTestCollectibles(entity.CollectibleSpawn{
		Kind: entity.CollectibleLeaf, X: 110, Y: 115, Powerup: entity.PowerupExtraJump,
	})
	player := createTestPlayer()

	sys.Update(player, 1)

	assert.True(t, player.HasPowerup(entity.PowerupExtraJump))
	assert.Equal(t, 3, player.MaxJumps)
	assert.Equal(t, 1, events.Count(EventPowerup))
	assert.Equal(t, 0, events.Count(EventScore))
}

func TestCollectibleSystem_OutOfReach(t *testing.T) {
	sys, events := createTestCollectibles(entity.CollectibleSpawn{Kind: entity.CollectibleCoin, X: 400, Y: 400})
	player := createTestPlayer()

	sys.Update(player, 1)

	assert.False(t, sys.Items()[0].Collected)
	assert.InDelta(t, 0.1, sys.Items()[0].Bob, 1e-9)
	assert.Equal(t, 0, events.Len())
}

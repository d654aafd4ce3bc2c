package system

import (
	"fmt"
	"log"

	"github.com/younwookim/skyrunner/internal/domain/entity"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

// CollectibleSystem manages pickups: bobbing, overlap with the player, scoring and powerups
type CollectibleSystem struct {
	physics *config.PhysicsConfig
	items   []*entity.Collectible
	events  EventSink
	effects *EffectSystem
	logger  *log.Logger
}

// NewCollectibleSystem creates live pickups from the level's spawn records
func NewCollectibleSystem(spawns []entity.CollectibleSpawn, physics *config.PhysicsConfig, entities *config.EntitiesConfig, events EventSink, effects *EffectSystem, logger *log.Logger) *CollectibleSystem {
	s := &CollectibleSystem{
		physics: physics,
		items:   make([]*entity.Collectible, 0, len(spawns)),
		events:  sinkOrDiscard(events),
		effects: effects,
		logger:  loggerOrDefault(logger),
	}
	for _, sp := range spawns {
		cc := entities.Collectibles[sp.Kind.String()]
		size := cc.Size
		if size <= 0 {
			size = 16
		}
		if sp.Value == 0 {
			sp.Value = cc.Value
		}
		s.items = append(s.items, entity.NewCollectible(sp, size))
	}
	return s
}

// Update animates pickups and collects those overlapping the player
func (s *CollectibleSystem) Update(player *entity.Player, k float64) {
	r := player.Bounds()
	for i, c := range s.items {
		if c.Collected {
			continue
		}
		guard(s.logger, "collectible", i, func() error {
			c.Bob += 0.1 * k
			if r.Overlaps(c.Rect) {
				s.collect(player, c)
			}
			return nil
		})
	}
}

func (s *CollectibleSystem) collect(player *entity.Player, c *entity.Collectible) {
	c.Collected = true
	pos := entity.Vec{X: c.CenterX(), Y: c.CenterY()}
	s.events.Emit(Event{Kind: EventCollected, Pos: pos, Text: c.Spawn.Kind.String()})

	switch c.Spawn.Kind {
	case entity.CollectibleLeaf:
		pu := c.Spawn.Powerup
		player.AddPowerup(pu, s.physics.Powerup.DurationFrames, s.physics.Powerup.ShieldCharges)
		s.events.Emit(Event{Kind: EventPowerup, Text: pu.String(), Pos: pos})
		s.events.Emit(Event{Kind: EventPopup, Text: pu.String() + "!", Pos: pos})
		if c.Spawn.Value > 0 {
			s.events.Emit(Event{Kind: EventScore, Score: c.Spawn.Value, Pos: pos})
		}
	default:
		emitScore(s.events, c.Spawn.Value, scoreText(c.Spawn.Value), pos)
	}

	if s.effects != nil {
		s.effects.Burst(pos, EffectCollect, 6)
	}
}

// Items returns every pickup, collected or not
func (s *CollectibleSystem) Items() []*entity.Collectible {
	return s.items
}

// Remaining returns how many pickups are left
func (s *CollectibleSystem) Remaining() int {
	n := 0
	for _, c := range s.items {
		if !c.Collected {
			n++
		}
	}
	return n
}

func scoreText(score int) string {
	if score <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d", score)
}

package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/skyrunner/internal/domain/entity"
)

func TestPlatformIndex_Query(t *testing.T) {
	ix := createTestIndex(
		ground(0, 300, 200),
		ground(400, 300, 200),
		entity.NewPlatform(entity.KindOneWay, entity.Rect{X: 150, Y: 200, W: 100, H: 16}),
	)

	tests := []struct {
		name string
		rect entity.Rect
		want []int
	}{
		{"left ground", entity.Rect{X: 10, Y: 290, W: 20, H: 20}, []int{0}},
		{"both grounds", entity.Rect{X: 0, Y: 290, W: 600, H: 20}, []int{0, 1}},
		{"everything ascending", entity.Rect{X: 0, Y: 190, W: 600, H: 130}, []int{0, 1, 2}},
		{"empty sky", entity.Rect{X: 300, Y: 20, W: 20, H: 20}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ix.Query(tt.rect))
		})
	}
}

func TestPlatformIndex_OffLevelCoordinates(t *testing.T) {
	// platforms may sit outside the level rectangle
	ix := createTestIndex(ground(-300, -50, 100), ground(900, 700, 100))

	assert.Equal(t, []int{0}, ix.Query(entity.Rect{X: -290, Y: -60, W: 10, H: 20}))
	assert.Equal(t, []int{1}, ix.Query(entity.Rect{X: 950, Y: 710, W: 10, H: 10}))
}

func TestPlatformIndex_SyncFollowsMovingPlatform(t *testing.T) {
	pl := entity.NewMovingPlatform(
		entity.Rect{X: 0, Y: 100, W: 64, H: 16},
		entity.MovingData{Offset: entity.Vec{X: 400}, SpeedFactor: 0.5, Timing: entity.TimingLinear},
		nil,
	)
	ix := createTestIndex(pl)
	far := entity.Rect{X: 380, Y: 100, W: 10, H: 10}
	assert.Empty(t, ix.Query(far))

	// half a cycle reaches the far end
	for i := 0; i < 60; i++ {
		pl.Advance(testDT, 0.01)
		ix.Sync()
	}

	assert.InDelta(t, 400, pl.X, 1e-6)
	assert.Equal(t, []int{0}, ix.Query(far))
	assert.Empty(t, ix.Query(entity.Rect{X: 0, Y: 100, W: 10, H: 10}))
}

func TestPlatformIndex_PointSupported(t *testing.T) {
	slope := entity.NewSlope(entity.Rect{X: 300, Y: 200, W: 100, H: 100}, 45, entity.DirRight)
	ix := createTestIndex(ground(0, 300, 200), slope)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"on ground", 50, 302, true},
		{"past ground edge", 210, 302, false},
		{"above ground", 50, 290, false},
		{"inside slope under surface", 390, 250, true},
		{"above slope surface", 310, 250, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ix.PointSupported(tt.x, tt.y))
		})
	}
}

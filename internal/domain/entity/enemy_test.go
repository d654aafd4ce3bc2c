package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnemy(t *testing.T) {
	enemy := NewEnemy(1, EnemyWalker, 100, 200, 24, 24, 1)

	require.NotNil(t, enemy)
	assert.Equal(t, EntityID(1), enemy.ID)
	assert.Equal(t, EnemyWalker, enemy.Kind)
	assert.InDelta(t, 100.0, enemy.X, 1e-9)
	assert.InDelta(t, 200.0, enemy.Y, 1e-9)
	assert.True(t, enemy.IsActive())
	assert.Equal(t, DirLeft, enemy.Patrol.Dir)
	assert.Equal(t, NoPlatform, enemy.ActivePlatform)
}

func TestEnemy_Hurt(t *testing.T) {
	enemy := NewEnemy(1, EnemyBigWalker, 0, 0, 32, 32, 2)

	killed := enemy.Hurt(1, 10)
	assert.False(t, killed)
	assert.Equal(t, 1, enemy.Health)
	assert.Equal(t, 10, enemy.Invulnerable)

	// invulnerable: no effect
	killed = enemy.Hurt(1, 10)
	assert.False(t, killed)
	assert.Equal(t, 1, enemy.Health)

	enemy.Invulnerable = 0
	killed = enemy.Hurt(5, 10)
	assert.True(t, killed)
	assert.Equal(t, 0, enemy.Health)
	assert.False(t, enemy.IsActive())

	// dead enemies ignore further damage
	enemy.Invulnerable = 0
	assert.False(t, enemy.Hurt(1, 10))
}

func TestEnemy_HealthFraction(t *testing.T) {
	enemy := NewEnemy(1, EnemyBoss, 0, 0, 64, 64, 10)
	enemy.Health = 4
	assert.InDelta(t, 0.4, enemy.HealthFraction(), 1e-9)

	enemy.MaxHealth = 0
	assert.Zero(t, enemy.HealthFraction())
}

func TestParseEnemyKind(t *testing.T) {
	tests := []struct {
		in     string
		want   EnemyKind
		wantOK bool
	}{
		{"walker", EnemyWalker, true},
		{"WALKER", EnemyWalker, true},
		{"bigwalker", EnemyBigWalker, true},
		{"jumper", EnemyJumper, true},
		{"flyer", EnemyFlyer, true},
		{"shooter", EnemyShooter, true},
		{"walkshooter", EnemyWalkingShooter, true},
		{"walking-shooter", EnemyWalkingShooter, true},
		{"boss", EnemyBoss, true},
		{"dragon", EnemyWalker, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseEnemyKind(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewAimedProjectile(t *testing.T) {
	p := NewAimedProjectile(7, 0, 0, 30, 40, 5, 1, 120)

	assert.Equal(t, EntityID(7), p.Owner)
	assert.True(t, p.Active)
	assert.InDelta(t, 3.0, p.VX, 1e-9)
	assert.InDelta(t, 4.0, p.VY, 1e-9)
	assert.True(t, p.Valid())

	assert.Equal(t, Rect{-4, -4, 8, 8}, p.Bounds())
}

func TestProjectile_Valid(t *testing.T) {
	p := NewAimedProjectile(1, 0, 0, 10, 0, 5, 1, 60)
	var zero float64
	p.VX = zero / zero // NaN

	assert.False(t, p.Valid())
}

package entity

import "math"

// Projectile represents an enemy shot
type Projectile struct {
	X, Y   float64
	VX, VY float64
	W, H   float64
	Active bool
	Owner  EntityID
	Damage int
	Life   int // frames left
}

// NewAimedProjectile creates a projectile at (x, y) flying toward (targetX, targetY)
func NewAimedProjectile(owner EntityID, x, y, targetX, targetY, speed float64, damage, life int) *Projectile {
	dx := targetX - x
	dy := targetY - y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		dist = 1
	}
	return &Projectile{
		X:      x,
		Y:      y,
		VX:     dx / dist * speed,
		VY:     dy / dist * speed,
		W:      8,
		H:      8,
		Active: true,
		Owner:  owner,
		Damage: damage,
		Life:   life,
	}
}

// Bounds returns the projectile's AABB (centered on X, Y)
func (p *Projectile) Bounds() Rect {
	return Rect{p.X - p.W/2, p.Y - p.H/2, p.W, p.H}
}

// Valid reports whether the projectile's state is finite
func (p *Projectile) Valid() bool {
	for _, v := range []float64{p.X, p.Y, p.VX, p.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return p.W > 0 && p.H > 0
}

// Rotation returns the flight angle for rendering
func (p *Projectile) Rotation() float64 {
	return math.Atan2(p.VY, p.VX)
}

package entity

// PowerupType identifies a powerup granted by a leaf collectible
type PowerupType int

const (
	PowerupSpeed PowerupType = iota
	PowerupJump
	PowerupGiant
	PowerupShield
	PowerupExtraJump
)

// AllPowerups lists every powerup a leaf may carry, in a stable order
var AllPowerups = []PowerupType{PowerupSpeed, PowerupJump, PowerupGiant, PowerupShield, PowerupExtraJump}

// String returns the powerup name
func (t PowerupType) String() string {
	switch t {
	case PowerupSpeed:
		return "speed"
	case PowerupJump:
		return "jump"
	case PowerupGiant:
		return "giant"
	case PowerupShield:
		return "shield"
	case PowerupExtraJump:
		return "extra-jump"
	default:
		return "unknown"
	}
}

// ParsePowerupType converts a powerup name. Unknown names return false.
func ParsePowerupType(s string) (PowerupType, bool) {
	for _, t := range AllPowerups {
		if t.String() == s {
			return t, true
		}
	}
	return PowerupSpeed, false
}

// ActivePowerup is a timed powerup; Remaining counts down in frames
type ActivePowerup struct {
	Type      PowerupType
	Remaining int
}

// Shield absorbs hits while Charges > 0
type Shield struct {
	Charges int
}

// Player represents the player entity
type Player struct {
	Body

	Health    int
	MaxHealth int

	// Timers (frames)
	Invulnerable     int
	WallJumpCooldown int
	Coyote           int
	DropThrough      int

	// Jump budget
	JumpsRemaining int
	MaxJumps       int
	baseMaxJumps   int
	JumpArmed      bool // jump input released since the last jump

	// Wall contact
	TouchingWall  bool
	WallDirection Direction // side the wall is on

	// Slope contact
	OnSlope    bool
	SlopeAngle float64 // radians, positive when rising to the right
	EdgeHang   float64 // fraction of width past the slope's span

	// Powerups
	Powerups  []ActivePowerup
	Shield    *Shield
	SpeedMult float64
	JumpMult  float64
	SizeMult  float64

	// Rendering state
	FlipRotation float64 // radians left in an air-jump flip
	Particles    []Particle

	Respawn Vec
	baseW   float64
	baseH   float64
}

// NewPlayer creates a player standing at (x, y) with full health and jump budget.
// (x, y) is also the respawn point.
func NewPlayer(x, y, w, h float64, maxHealth, maxJumps int) *Player {
	return &Player{
		Body:           NewBody(x, y, w, h),
		Health:         maxHealth,
		MaxHealth:      maxHealth,
		JumpsRemaining: maxJumps,
		MaxJumps:       maxJumps,
		baseMaxJumps:   maxJumps,
		JumpArmed:      true,
		SpeedMult:      1,
		JumpMult:       1,
		SizeMult:       1,
		Respawn:        Vec{x, y},
		baseW:          w,
		baseH:          h,
	}
}

// IsInvulnerable returns true while the invulnerability countdown runs
func (p *Player) IsInvulnerable() bool {
	return p.Invulnerable > 0
}

// HasShield returns true if a shield with charges is active
func (p *Player) HasShield() bool {
	return p.Shield != nil && p.Shield.Charges > 0
}

// AddPowerup activates a powerup, refreshing the duration if it is already active
func (p *Player) AddPowerup(t PowerupType, frames, shieldCharges int) {
	if t == PowerupShield {
		p.Shield = &Shield{Charges: shieldCharges}
		return
	}
	for i := range p.Powerups {
		if p.Powerups[i].Type == t {
			p.Powerups[i].Remaining = frames
			p.recompute()
			return
		}
	}
	p.Powerups = append(p.Powerups, ActivePowerup{Type: t, Remaining: frames})
	p.recompute()
}

// TickPowerups counts down powerup durations and drops expired ones
func (p *Player) TickPowerups() {
	kept := p.Powerups[:0]
	changed := false
	for _, pu := range p.Powerups {
		pu.Remaining--
		if pu.Remaining <= 0 {
			changed = true
			continue
		}
		kept = append(kept, pu)
	}
	p.Powerups = kept
	if changed {
		p.recompute()
	}
}

// HasPowerup reports whether a timed powerup is active
func (p *Player) HasPowerup(t PowerupType) bool {
	for _, pu := range p.Powerups {
		if pu.Type == t {
			return true
		}
	}
	return false
}

// ClearPowerups removes all powerups and the shield
func (p *Player) ClearPowerups() {
	p.Powerups = p.Powerups[:0]
	p.Shield = nil
	p.recompute()
}

func (p *Player) recompute() {
	p.SpeedMult, p.JumpMult, p.SizeMult = 1, 1, 1
	maxJumps := p.baseMaxJumps
	for _, pu := range p.Powerups {
		switch pu.Type {
		case PowerupSpeed:
			p.SpeedMult = 1.5
		case PowerupJump:
			p.JumpMult = 1.3
		case PowerupGiant:
			p.SizeMult = 1.5
		case PowerupExtraJump:
			maxJumps = p.baseMaxJumps + 1
		}
	}
	if maxJumps != p.MaxJumps {
		gained := maxJumps - p.MaxJumps
		p.MaxJumps = maxJumps
		p.JumpsRemaining += gained
		if p.JumpsRemaining < 0 {
			p.JumpsRemaining = 0
		}
		if p.JumpsRemaining > p.MaxJumps {
			p.JumpsRemaining = p.MaxJumps
		}
	}
	w, h := p.baseW*p.SizeMult, p.baseH*p.SizeMult
	if w != p.W || h != p.H {
		p.Resize(w, h)
	}
}

// Particle is a short-lived decorative particle
type Particle struct {
	Pos  Vec
	Vel  Vec
	Life int // frames left
	Max  int
	Size float64
	Kind string
}

// Alpha returns the remaining-life fraction for fading
func (p *Particle) Alpha() float64 {
	if p.Max <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.Max)
}

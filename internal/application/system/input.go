package system

import (
	"math"

	"github.com/younwookim/skyrunner/internal/domain/entity"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

// InputSystem applies logical intents to the player: horizontal control and jumps
type InputSystem struct {
	config *config.PhysicsConfig
}

// NewInputSystem creates a new input system
func NewInputSystem(cfg *config.PhysicsConfig) *InputSystem {
	return &InputSystem{config: cfg}
}

// UpdatePlayer updates the player based on the intent. k is the frame scale (dt*60).
func (s *InputSystem) UpdatePlayer(player *entity.Player, in Intent, k float64) {
	// a release edge re-arms the jump before a press in the same frame is handled
	if in.JumpReleased {
		player.JumpArmed = true
	}

	s.handleMovement(player, in, k)

	if in.JumpPressed {
		s.Jump(player)
	}
}

// handleMovement accelerates toward the target speed while a direction is held
func (s *InputSystem) handleMovement(player *entity.Player, in Intent, k float64) {
	dir := in.Horizontal()
	if dir == entity.DirNone {
		return
	}
	player.Facing = dir

	accel := s.config.Movement.Acceleration
	if !player.Grounded {
		accel *= s.config.Movement.AirControl
	}
	target := float64(dir) * s.config.Movement.MaxSpeed * player.SpeedMult

	if player.VX < target {
		player.VX = math.Min(player.VX+accel*k, target)
	} else if player.VX > target {
		player.VX = math.Max(player.VX-accel*k, target)
	}
}

// Jump performs the highest-priority jump available: wall jump, then ground or
// coyote jump, then an air jump. It is a no-op until the jump input has been
// released since the last successful jump. Returns true if a jump happened.
func (s *InputSystem) Jump(player *entity.Player) bool {
	if !player.JumpArmed {
		return false
	}

	force := s.config.Jump.Force * player.JumpMult
	switch {
	case player.TouchingWall && !player.Grounded && player.WallJumpCooldown == 0 && player.WallDirection != entity.DirNone:
		away := -player.WallDirection
		player.VX = float64(away) * s.config.Wall.JumpForceX
		player.VY = -s.config.Wall.JumpForceY * player.JumpMult
		player.Facing = away
		player.WallJumpCooldown = s.config.Wall.JumpCooldown
		player.JumpsRemaining = player.MaxJumps - 1
		player.TouchingWall = false
		player.WallDirection = entity.DirNone

	case player.Grounded || player.Coyote > 0:
		player.VY = -force
		player.JumpsRemaining = player.MaxJumps - 1
		player.Coyote = 0

	case player.JumpsRemaining > 0:
		used := player.MaxJumps - player.JumpsRemaining
		scale := math.Max(0.1, 1-s.config.Jump.AirJumpDecay*float64(used))
		player.VY = -force * scale
		player.JumpsRemaining--
		player.FlipRotation = 2 * math.Pi

	default:
		return false
	}

	player.Grounded = false
	player.ActivePlatform = entity.NoPlatform
	player.JumpArmed = false
	return true
}

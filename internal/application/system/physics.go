package system

import (
	"math"

	"github.com/younwookim/skyrunner/internal/domain/entity"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

// edgePushSpeed is how far per frame an entity perched on a slope corner is pushed off it
const edgePushSpeed = 1.0

// PhysicsSystem runs the player's per-tick integration and collision resolution
type PhysicsSystem struct {
	config *config.PhysicsConfig
	index  *PlatformIndex
	bounds entity.Rect
}

// NewPhysicsSystem creates a new physics system over a platform index and play field
func NewPhysicsSystem(cfg *config.PhysicsConfig, index *PlatformIndex, bounds entity.Rect) *PhysicsSystem {
	return &PhysicsSystem{
		config: cfg,
		index:  index,
		bounds: bounds,
	}
}

// Update steps the player one tick. dt is in seconds and already clamped.
func (s *PhysicsSystem) Update(player *entity.Player, in Intent, dt float64) {
	k := dt * 60
	player.WasGrounded = player.Grounded
	prev := player.Bounds()

	// 1. gravity and friction
	s.applyGravity(player, k)
	s.applyFriction(player, in, k)
	s.applyWallSlide(player, in)

	// 2. timers
	if player.Invulnerable > 0 {
		player.Invulnerable--
	}
	if player.WallJumpCooldown > 0 {
		player.WallJumpCooldown--
	}
	player.TickPowerups()

	// 3. drop-through
	if in.DropThroughPressed && player.Grounded && s.standingOnOneWay(player) {
		player.DropThrough = s.config.Jump.DropThroughFrames
		player.Grounded = false
		player.ActivePlatform = entity.NoPlatform
	} else if player.DropThrough > 0 {
		player.DropThrough--
	}

	// 4. explicit Euler
	player.X += player.VX * k
	player.Y += player.VY * k

	// 5. collisions
	player.Grounded = false
	player.OnSlope = false
	player.SlopeAngle = 0
	player.EdgeHang = 0
	player.TouchingWall = false
	player.WallDirection = entity.DirNone
	player.ActivePlatform = entity.NoPlatform

	tol := s.config.Collision.LandTolerance
	candidates := s.index.Query(prev.Union(player.Bounds()).Inset(-tol, -tol))

	perched := s.resolveSlopes(player, prev, candidates)
	s.resolveFlat(player, prev, candidates)
	s.probeWalls(player, candidates)
	if perched != entity.DirNone && !player.Grounded {
		player.X += float64(perched) * edgePushSpeed * k
	}
	s.applySlopeSlide(player, k)
	s.applyCoMotion(player)

	// 6. play field
	s.clampToBounds(player)

	// 7. coyote time
	s.updateCoyote(player)

	if player.VX > 0 {
		player.Facing = entity.DirRight
	} else if player.VX < 0 {
		player.Facing = entity.DirLeft
	}
	if player.FlipRotation > 0 {
		player.FlipRotation = math.Max(0, player.FlipRotation-0.35*k)
	}
}

func (s *PhysicsSystem) applyGravity(player *entity.Player, k float64) {
	player.VY += s.config.Physics.Gravity * k
	if player.VY > s.config.Physics.MaxFallSpeed {
		player.VY = s.config.Physics.MaxFallSpeed
	}
}

// applyFriction decays horizontal speed while no direction is held
func (s *PhysicsSystem) applyFriction(player *entity.Player, in Intent, k float64) {
	if in.Horizontal() != entity.DirNone {
		return
	}
	friction := s.config.Physics.AirFriction
	if player.Grounded {
		friction = s.config.Physics.GroundFriction
	}
	player.VX *= math.Pow(friction, k)
	if math.Abs(player.VX) < 0.01 {
		player.VX = 0
	}
}

// applyWallSlide caps fall speed while pressing into a wall in the air
func (s *PhysicsSystem) applyWallSlide(player *entity.Player, in Intent) {
	if !player.TouchingWall || player.Grounded || in.Horizontal() != player.WallDirection {
		return
	}
	if player.VY > s.config.Wall.SlideMaxSpeed {
		player.VY = s.config.Wall.SlideMaxSpeed
	}
}

func (s *PhysicsSystem) standingOnOneWay(player *entity.Player) bool {
	if player.ActivePlatform < 0 || player.ActivePlatform >= s.index.Len() {
		return false
	}
	return s.index.Platform(player.ActivePlatform).IsOneWay()
}

// resolveSlopes snaps the feet onto the highest slope surface under the player.
// It returns the direction to push the player when it is perched on a slope corner.
func (s *PhysicsSystem) resolveSlopes(player *entity.Player, prev entity.Rect, candidates []int) entity.Direction {
	if player.VY < 0 {
		return entity.DirNone
	}
	tol := s.config.Collision.SlopeTolerance
	r := player.Bounds()

	best := -1
	bestY := math.Inf(1)
	bestHang := 0.0
	perched := entity.DirNone
	for _, i := range candidates {
		pl := s.index.Platform(i)
		if !pl.IsSlope() {
			continue
		}
		if r.Right() <= pl.Left() || r.Left() >= pl.Right() {
			continue
		}

		surf := governingSurface(pl, r.Left(), r.Right())
		prevSurf := governingSurface(pl, prev.Left(), prev.Right())
		within := math.Abs(r.Bottom()-surf) <= tol
		fellThrough := prev.Bottom() <= prevSurf+tol && r.Bottom() >= surf
		if !within && !fellThrough {
			continue
		}

		hang := edgeHang(r, pl.Rect)
		if hang > s.config.Collision.EdgeHangLimit {
			if r.CenterX() < pl.CenterX() {
				perched = entity.DirLeft
			} else {
				perched = entity.DirRight
			}
			continue
		}
		if surf < bestY {
			best, bestY, bestHang = i, surf, hang
		}
	}

	if best < 0 {
		return perched
	}
	pl := s.index.Platform(best)
	player.Land(best, bestY)
	player.OnSlope = true
	player.SlopeAngle = pl.SignedAngle()
	player.EdgeHang = bestHang
	return entity.DirNone
}

// governingSurface returns the higher (smaller y) slope surface under either edge
func governingSurface(pl *entity.Platform, left, right float64) float64 {
	return math.Min(pl.SurfaceY(left), pl.SurfaceY(right))
}

// edgeHang returns the fraction of r's width outside span horizontally
func edgeHang(r, span entity.Rect) float64 {
	if r.W <= 0 {
		return 0
	}
	outside := math.Max(0, span.Left()-r.Left()) + math.Max(0, r.Right()-span.Right())
	return outside / r.W
}

// resolveFlat resolves ground, solid platforms, one-way tops and moving platforms.
// Moving platforms are tested at their previous position; co-motion then carries riders.
func (s *PhysicsSystem) resolveFlat(player *entity.Player, prev entity.Rect, candidates []int) {
	tol := s.config.Collision.LandTolerance
	for _, i := range candidates {
		pl := s.index.Platform(i)
		if pl.IsSlope() {
			continue
		}
		pr := pl.PrevRect()
		r := player.Bounds()

		if pl.IsOneWay() && player.DropThrough > 0 {
			continue
		}

		landing := player.VY >= 0 &&
			r.OverlapX(pr) > 0 &&
			r.Bottom() >= pr.Top()-tol &&
			prev.Bottom() <= pr.Top()+tol
		if landing {
			// a slope snap only yields to a higher flat surface
			if player.OnSlope && pr.Top() > player.Bottom() {
				continue
			}
			if player.OnSlope {
				player.OnSlope = false
				player.SlopeAngle = 0
				player.EdgeHang = 0
			}
			player.Land(i, pr.Top())
			continue
		}

		if pl.IsOneWay() || !r.Overlaps(pr) {
			continue
		}

		ox, oy := r.OverlapX(pr), r.OverlapY(pr)
		if oy < ox {
			if r.CenterY() < pr.CenterY() {
				if player.VY >= 0 {
					player.Land(i, pr.Top())
				} else {
					player.SetFeet(pr.Top())
				}
			} else {
				player.Y = pr.Bottom()
				if player.VY < 0 {
					player.VY = 0
				}
			}
			continue
		}

		if r.CenterX() < pr.CenterX() {
			player.X = pr.Left() - player.W
			player.WallDirection = entity.DirRight
			if player.VX > 0 {
				player.VX = 0
			}
		} else {
			player.X = pr.Right()
			player.WallDirection = entity.DirLeft
			if player.VX < 0 {
				player.VX = 0
			}
		}
		player.TouchingWall = true
	}
}

// probeWalls marks wall contact when a solid is within the probe distance of either side
func (s *PhysicsSystem) probeWalls(player *entity.Player, candidates []int) {
	if player.TouchingWall {
		return
	}
	probe := s.config.Wall.ContactProbePx
	r := player.Bounds()
	for _, i := range candidates {
		pl := s.index.Platform(i)
		if !pl.IsSolid() {
			continue
		}
		if r.OverlapY(pl.Rect) <= s.config.Collision.LandTolerance {
			continue
		}
		switch {
		case r.Translate(probe, 0).Overlaps(pl.Rect):
			player.TouchingWall = true
			player.WallDirection = entity.DirRight
			return
		case r.Translate(-probe, 0).Overlaps(pl.Rect):
			player.TouchingWall = true
			player.WallDirection = entity.DirLeft
			return
		}
	}
}

// applySlopeSlide accelerates the player down the slope it stands on
func (s *PhysicsSystem) applySlopeSlide(player *entity.Player, k float64) {
	if !player.OnSlope {
		return
	}
	accel := -math.Sin(player.SlopeAngle) * s.config.Slope.SlideAccel
	if math.Abs(player.SlopeAngle)*180/math.Pi > s.config.Slope.SteepDegrees {
		accel *= s.config.Slope.SteepMultiplier
	}
	player.VX += accel * k
}

// applyCoMotion carries the player with the moving platform it stands on
func (s *PhysicsSystem) applyCoMotion(player *entity.Player) {
	if player.ActivePlatform < 0 || player.ActivePlatform >= s.index.Len() {
		return
	}
	pl := s.index.Platform(player.ActivePlatform)
	if !pl.IsMoving() {
		return
	}
	d := pl.Delta()
	player.X += d.X
	if pl.IsSlope() {
		// slope snapping used the current rect; follow the surface after the shift
		if player.Grounded {
			player.SetFeet(governingSurface(pl, player.X, player.X+player.W))
		}
		return
	}
	if d.Y > 0 || player.Grounded {
		player.Y += d.Y
	}
}

func (s *PhysicsSystem) clampToBounds(player *entity.Player) {
	b := s.bounds
	if b.W <= 0 || b.H <= 0 {
		return
	}
	if player.X < b.Left() {
		player.X = b.Left()
		if player.VX < 0 {
			player.VX = 0
		}
	}
	if player.X+player.W > b.Right() {
		player.X = b.Right() - player.W
		if player.VX > 0 {
			player.VX = 0
		}
	}
	if player.Bottom() >= b.Bottom() {
		player.SetFeet(b.Bottom())
		if player.VY > 0 {
			player.VY = 0
		}
		player.Grounded = true
	}
}

func (s *PhysicsSystem) updateCoyote(player *entity.Player) {
	if player.Grounded {
		player.Coyote = s.config.Jump.CoyoteFrames
		player.JumpsRemaining = player.MaxJumps
		return
	}
	if player.Coyote > 0 {
		player.Coyote--
		if player.Coyote == 0 && player.JumpsRemaining == player.MaxJumps {
			// walked off a ledge: the ground jump is gone
			player.JumpsRemaining--
		}
	}
}

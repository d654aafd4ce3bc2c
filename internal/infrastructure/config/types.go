package config

// PhysicsConfig is the root config for physics.json / physics.yaml.
// Velocities are pixels per frame at 60 fps; timers are frames unless named Ms.
type PhysicsConfig struct {
	Display   DisplayConfig   `json:"display" yaml:"display"`
	Physics   PhysicsSettings `json:"physics" yaml:"physics"`
	Movement  MovementConfig  `json:"movement" yaml:"movement"`
	Jump      JumpConfig      `json:"jump" yaml:"jump"`
	Wall      WallConfig      `json:"wall" yaml:"wall"`
	Collision CollisionConfig `json:"collision" yaml:"collision"`
	Slope     SlopeConfig     `json:"slope" yaml:"slope"`
	Combat    CombatConfig    `json:"combat" yaml:"combat"`
	Bouncer   BouncerConfig   `json:"bouncer" yaml:"bouncer"`
	Powerup   PowerupConfig   `json:"powerup" yaml:"powerup"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight int `json:"screenHeight" yaml:"screenHeight"`
	Scale        int `json:"scale" yaml:"scale"`
	Framerate    int `json:"framerate" yaml:"framerate"`
}

type PhysicsSettings struct {
	Gravity        float64 `json:"gravity" yaml:"gravity"`
	MaxFallSpeed   float64 `json:"maxFallSpeed" yaml:"maxFallSpeed"`
	GroundFriction float64 `json:"groundFriction" yaml:"groundFriction"`
	AirFriction    float64 `json:"airFriction" yaml:"airFriction"`
	MaxDT          float64 `json:"maxDT" yaml:"maxDT"`                       // seconds
	MoveEpsilon    float64 `json:"moveEpsilon" yaml:"moveEpsilon"`           // moving-platform delta snap, px
	BelowWorld     float64 `json:"belowWorldMargin" yaml:"belowWorldMargin"` // px below the level before an enemy is culled
}

type MovementConfig struct {
	Acceleration float64 `json:"acceleration" yaml:"acceleration"`
	MaxSpeed     float64 `json:"maxSpeed" yaml:"maxSpeed"`
	AirControl   float64 `json:"airControl" yaml:"airControl"`
}

type JumpConfig struct {
	Force             float64 `json:"force" yaml:"force"`
	MaxJumps          int     `json:"maxJumps" yaml:"maxJumps"`
	AirJumpDecay      float64 `json:"airJumpDecay" yaml:"airJumpDecay"` // force reduction per air jump used
	CoyoteFrames      int     `json:"coyoteFrames" yaml:"coyoteFrames"`
	DropThroughFrames int     `json:"dropThroughFrames" yaml:"dropThroughFrames"`
}

type WallConfig struct {
	JumpForceX     float64 `json:"jumpForceX" yaml:"jumpForceX"`
	JumpForceY     float64 `json:"jumpForceY" yaml:"jumpForceY"`
	JumpCooldown   int     `json:"jumpCooldown" yaml:"jumpCooldown"`
	SlideMaxSpeed  float64 `json:"slideMaxSpeed" yaml:"slideMaxSpeed"`
	ContactProbePx float64 `json:"contactProbe" yaml:"contactProbe"`
}

type CollisionConfig struct {
	LandTolerance  float64 `json:"landTolerance" yaml:"landTolerance"`
	SlopeTolerance float64 `json:"slopeTolerance" yaml:"slopeTolerance"`
	EdgeHangLimit  float64 `json:"edgeHangLimit" yaml:"edgeHangLimit"`
	BroadPhaseCell int     `json:"broadPhaseCell" yaml:"broadPhaseCell"`
}

type SlopeConfig struct {
	SlideAccel      float64 `json:"slideAccel" yaml:"slideAccel"`
	SteepDegrees    float64 `json:"steepDegrees" yaml:"steepDegrees"`
	SteepMultiplier float64 `json:"steepMultiplier" yaml:"steepMultiplier"`
}

type CombatConfig struct {
	MaxHealth          int     `json:"maxHealth" yaml:"maxHealth"`
	InvulnFrames       int     `json:"invulnFrames" yaml:"invulnFrames"`
	ShieldInvulnFrames int     `json:"shieldInvulnFrames" yaml:"shieldInvulnFrames"`
	EnemyInvulnFrames  int     `json:"enemyInvulnFrames" yaml:"enemyInvulnFrames"`
	KnockbackX         float64 `json:"knockbackX" yaml:"knockbackX"`
	KnockbackY         float64 `json:"knockbackY" yaml:"knockbackY"`
	StompBounce        float64 `json:"stompBounce" yaml:"stompBounce"`
	StompTolerance     float64 `json:"stompTolerance" yaml:"stompTolerance"`
}

type BouncerConfig struct {
	Force      float64 `json:"force" yaml:"force"`
	CooldownMs float64 `json:"cooldownMs" yaml:"cooldownMs"`
	EdgeInset  float64 `json:"edgeInset" yaml:"edgeInset"`
	Tolerance  float64 `json:"tolerance" yaml:"tolerance"`
}

type PowerupConfig struct {
	DurationFrames int `json:"durationFrames" yaml:"durationFrames"`
	ShieldCharges  int `json:"shieldCharges" yaml:"shieldCharges"`
}

// DefaultPhysicsConfig returns the built-in tuning used when no physics file is present
func DefaultPhysicsConfig() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:  640,
			ScreenHeight: 360,
			Scale:        2,
			Framerate:    60,
		},
		Physics: PhysicsSettings{
			Gravity:        0.5,
			MaxFallSpeed:   12,
			GroundFriction: 0.8,
			AirFriction:    0.95,
			MaxDT:          1.0 / 60,
			MoveEpsilon:    0.01,
			BelowWorld:     200,
		},
		Movement: MovementConfig{
			Acceleration: 0.8,
			MaxSpeed:     5,
			AirControl:   0.7,
		},
		Jump: JumpConfig{
			Force:             11,
			MaxJumps:          2,
			AirJumpDecay:      0.1,
			CoyoteFrames:      7,
			DropThroughFrames: 15,
		},
		Wall: WallConfig{
			JumpForceX:     7,
			JumpForceY:     10,
			JumpCooldown:   12,
			SlideMaxSpeed:  2,
			ContactProbePx: 1,
		},
		Collision: CollisionConfig{
			LandTolerance:  5,
			SlopeTolerance: 5,
			EdgeHangLimit:  0.5,
			BroadPhaseCell: 32,
		},
		Slope: SlopeConfig{
			SlideAccel:      0.3,
			SteepDegrees:    25,
			SteepMultiplier: 1.05,
		},
		Combat: CombatConfig{
			MaxHealth:          3,
			InvulnFrames:       90,
			ShieldInvulnFrames: 30,
			EnemyInvulnFrames:  20,
			KnockbackX:         6,
			KnockbackY:         6,
			StompBounce:        8,
			StompTolerance:     10,
		},
		Bouncer: BouncerConfig{
			Force:      16,
			CooldownMs: 300,
			EdgeInset:  5,
			Tolerance:  5,
		},
		Powerup: PowerupConfig{
			DurationFrames: 600,
			ShieldCharges:  1,
		},
	}
}

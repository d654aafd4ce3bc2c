package config

// EntitiesConfig is the root config for entities.json
type EntitiesConfig struct {
	Player       PlayerConfig                 `json:"player" yaml:"player"`
	Enemies      map[string]EnemyConfig       `json:"enemies" yaml:"enemies"`
	Collectibles map[string]CollectibleConfig `json:"collectibles" yaml:"collectibles"`
}

type PlayerConfig struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

type EnemyConfig struct {
	Width         float64  `json:"width" yaml:"width"`
	Height        float64  `json:"height" yaml:"height"`
	MaxHealth     int      `json:"maxHealth" yaml:"maxHealth"`
	ContactDamage int      `json:"contactDamage" yaml:"contactDamage"`
	MoveSpeed     float64  `json:"moveSpeed,omitempty" yaml:"moveSpeed,omitempty"`
	Score         int      `json:"score" yaml:"score"`
	AI            AIConfig `json:"ai" yaml:"ai"`
}

type AIConfig struct {
	EdgeDetect       bool      `json:"edgeDetect,omitempty" yaml:"edgeDetect,omitempty"`
	JumpInterval     int       `json:"jumpInterval,omitempty" yaml:"jumpInterval,omitempty"`
	JumpForce        float64   `json:"jumpForce,omitempty" yaml:"jumpForce,omitempty"`
	ShootInterval    int       `json:"shootInterval,omitempty" yaml:"shootInterval,omitempty"`
	ProjectileSpeed  float64   `json:"projectileSpeed,omitempty" yaml:"projectileSpeed,omitempty"`
	ProjectileDamage int       `json:"projectileDamage,omitempty" yaml:"projectileDamage,omitempty"`
	ProjectileLife   int       `json:"projectileLife,omitempty" yaml:"projectileLife,omitempty"`
	FlightPattern    string    `json:"flightPattern,omitempty" yaml:"flightPattern,omitempty"`
	FlightSpeed      float64   `json:"flightSpeed,omitempty" yaml:"flightSpeed,omitempty"`
	FlightRadiusX    float64   `json:"flightRadiusX,omitempty" yaml:"flightRadiusX,omitempty"`
	FlightRadiusY    float64   `json:"flightRadiusY,omitempty" yaml:"flightRadiusY,omitempty"`
	DiveChance       float64   `json:"diveChance,omitempty" yaml:"diveChance,omitempty"` // per frame
	DiveSpeed        float64   `json:"diveSpeed,omitempty" yaml:"diveSpeed,omitempty"`
	PhaseThresholds  []float64 `json:"phaseThresholds,omitempty" yaml:"phaseThresholds,omitempty"`
}

type CollectibleConfig struct {
	Value int     `json:"value" yaml:"value"`
	Size  float64 `json:"size" yaml:"size"`
}

// DefaultEntitiesConfig returns the built-in enemy and pickup tuning
func DefaultEntitiesConfig() *EntitiesConfig {
	return &EntitiesConfig{
		Player: PlayerConfig{Width: 24, Height: 32},
		Enemies: map[string]EnemyConfig{
			"walker": {
				Width: 28, Height: 28, MaxHealth: 1, ContactDamage: 1, MoveSpeed: 1.2, Score: 100,
				AI: AIConfig{EdgeDetect: true},
			},
			"bigwalker": {
				Width: 40, Height: 40, MaxHealth: 2, ContactDamage: 1, MoveSpeed: 0.8, Score: 200,
				AI: AIConfig{EdgeDetect: true},
			},
			"jumper": {
				Width: 28, Height: 28, MaxHealth: 1, ContactDamage: 1, Score: 150,
				AI: AIConfig{JumpInterval: 90, JumpForce: 10},
			},
			"flyer": {
				Width: 28, Height: 20, MaxHealth: 1, ContactDamage: 1, Score: 150,
				AI: AIConfig{
					FlightPattern: "sine", FlightSpeed: 0.04, FlightRadiusX: 60, FlightRadiusY: 20,
					DiveChance: 0.005, DiveSpeed: 6,
				},
			},
			"shooter": {
				Width: 28, Height: 32, MaxHealth: 1, ContactDamage: 1, Score: 200,
				AI: AIConfig{ShootInterval: 120, ProjectileSpeed: 4, ProjectileDamage: 1, ProjectileLife: 180},
			},
			"walkshooter": {
				Width: 28, Height: 32, MaxHealth: 2, ContactDamage: 1, MoveSpeed: 0.8, Score: 250,
				AI: AIConfig{EdgeDetect: true, ShootInterval: 150, ProjectileSpeed: 4, ProjectileDamage: 1, ProjectileLife: 180},
			},
			"boss": {
				Width: 64, Height: 64, MaxHealth: 10, ContactDamage: 2, MoveSpeed: 1.5, Score: 1000,
				AI: AIConfig{
					JumpInterval: 120, JumpForce: 12,
					ShootInterval: 90, ProjectileSpeed: 5, ProjectileDamage: 1, ProjectileLife: 180,
					PhaseThresholds: []float64{0.66, 0.33},
				},
			},
		},
		Collectibles: map[string]CollectibleConfig{
			"coin": {Value: 10, Size: 16},
			"gem":  {Value: 50, Size: 16},
			"leaf": {Value: 0, Size: 20},
		},
	}
}

// Enemy returns the tuning for an enemy type name, falling back to the walker
func (c *EntitiesConfig) Enemy(name string) EnemyConfig {
	if e, ok := c.Enemies[name]; ok {
		return e
	}
	return DefaultEntitiesConfig().Enemies["walker"]
}

package config

// LevelConfig is the root config for level files.
// A level is either structured (pixel-coordinate records) or a character grid in Rows;
// when Rows is set the grid takes precedence and the records are appended after it.
type LevelConfig struct {
	Name        string          `json:"name" yaml:"name"`
	Width       float64         `json:"width" yaml:"width"`
	Height      float64         `json:"height" yaml:"height"`
	TileSize    float64         `json:"tileSize,omitempty" yaml:"tileSize,omitempty"`
	Theme       string          `json:"theme,omitempty" yaml:"theme,omitempty"`
	PlayerStart *PositionConfig `json:"playerStart,omitempty" yaml:"playerStart,omitempty"`
	Exit        *PositionConfig `json:"exit,omitempty" yaml:"exit,omitempty"`

	Rows []string `json:"rows,omitempty" yaml:"rows,omitempty"`

	Platforms    []PlatformConfig    `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	Enemies      []EnemySpawnConfig  `json:"enemies,omitempty" yaml:"enemies,omitempty"`
	Bouncers     []BouncerSpawn      `json:"bouncers,omitempty" yaml:"bouncers,omitempty"`
	Collectibles []CollectibleSpawn  `json:"collectibles,omitempty" yaml:"collectibles,omitempty"`
	Coins        []PositionConfig    `json:"coins,omitempty" yaml:"coins,omitempty"`
	Hazards      []HazardSpawnConfig `json:"hazards,omitempty" yaml:"hazards,omitempty"`
}

// IsGrid reports whether the level is described by character rows
func (c *LevelConfig) IsGrid() bool {
	return len(c.Rows) > 0
}

type PositionConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type RectConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"width" yaml:"width"`
	H float64 `json:"height" yaml:"height"`
}

// PlatformConfig describes one platform. Slope and Moving are optional and may be combined.
type PlatformConfig struct {
	RectConfig `yaml:",inline"`
	Type       string          `json:"type" yaml:"type"`
	Slope      *PlatformSlope  `json:"slope,omitempty" yaml:"slope,omitempty"`
	Moving     *PlatformMotion `json:"moving,omitempty" yaml:"moving,omitempty"`
}

// PlatformSlope is the incline of a slope platform record
type PlatformSlope struct {
	Angle     float64 `json:"angle" yaml:"angle"`
	Direction string  `json:"direction" yaml:"direction"`
}

type PlatformMotion struct {
	OffsetX     float64 `json:"offsetX" yaml:"offsetX"`
	OffsetY     float64 `json:"offsetY" yaml:"offsetY"`
	SpeedFactor float64 `json:"speedFactor" yaml:"speedFactor"`
	Timing      string  `json:"timing" yaml:"timing"`
	Phase       float64 `json:"phase,omitempty" yaml:"phase,omitempty"`
}

type EnemySpawnConfig struct {
	Type string  `json:"type" yaml:"type"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
}

type BouncerSpawn struct {
	RectConfig `yaml:",inline"`
	Force      float64 `json:"force,omitempty" yaml:"force,omitempty"`
}

type CollectibleSpawn struct {
	Type    string  `json:"type" yaml:"type"`
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	Value   int     `json:"value,omitempty" yaml:"value,omitempty"`
	Powerup string  `json:"powerup,omitempty" yaml:"powerup,omitempty"`
}

type HazardSpawnConfig struct {
	RectConfig `yaml:",inline"`
	Type       string `json:"type" yaml:"type"`
	Damage     int    `json:"damage,omitempty" yaml:"damage,omitempty"`
}

package level

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/skyrunner/internal/domain/entity"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

func createTestLevelConfig() *config.LevelConfig {
	return &config.LevelConfig{
		Name:        "test",
		Width:       640,
		Height:      480,
		PlayerStart: &config.PositionConfig{X: 32, Y: 400},
		Exit:        &config.PositionConfig{X: 600, Y: 416},
		Platforms: []config.PlatformConfig{
			{RectConfig: config.RectConfig{X: 0, Y: 448, W: 320, H: 32}, Type: "ground"},
			{RectConfig: config.RectConfig{X: 320, Y: 448, W: 320, H: 32}, Type: "ground"},
			{RectConfig: config.RectConfig{X: 100, Y: 300, W: 96, H: 64}, Type: "slope",
				Slope: &config.PlatformSlope{Angle: 20, Direction: "left"}},
			{RectConfig: config.RectConfig{X: 300, Y: 200, W: 64, H: 16}, Type: "moving",
				Moving: &config.PlatformMotion{OffsetX: 100, SpeedFactor: 0.5, Timing: "sine"}},
		},
		Enemies: []config.EnemySpawnConfig{
			{Type: "walker", X: 200, Y: 420},
			{Type: "Walking-Shooter", X: 250, Y: 420},
		},
		Bouncers: []config.BouncerSpawn{
			{RectConfig: config.RectConfig{X: 400, Y: 440, W: 32, H: 8}, Force: 18},
		},
		Collectibles: []config.CollectibleSpawn{
			{Type: "gem", X: 10, Y: 10, Value: 500},
			{Type: "leaf", X: 20, Y: 20, Powerup: "shield"},
		},
		Coins: []config.PositionConfig{{X: 50, Y: 50}},
		Hazards: []config.HazardSpawnConfig{
			{RectConfig: config.RectConfig{X: 500, Y: 432, W: 32, H: 16}, Type: "spike", Damage: 2},
		},
	}
}

func TestBuild_Structured(t *testing.T) {
	opts, logs := createTestOptions()
	lv := Build(createTestLevelConfig(), opts)

	assert.Equal(t, "test", lv.Name)
	assert.Equal(t, 640.0, lv.Width)
	assert.Equal(t, 480.0, lv.Height)
	assert.Equal(t, entity.Vec{X: 32, Y: 400}, lv.PlayerStart)
	require.NotNil(t, lv.Exit)
	assert.Equal(t, entity.Vec{X: 600, Y: 416}, *lv.Exit)
	assert.NotContains(t, logs.String(), "no playerStart")

	// moving (y 200), slope (y 300), merged ground (y 448)
	require.Len(t, lv.Platforms, 3)
	for i, p := range lv.Platforms {
		assert.Equal(t, i, p.ID)
	}

	moving := lv.Platforms[0]
	require.True(t, moving.IsMoving())
	assert.Equal(t, entity.TimingSine, moving.Moving.Timing)
	assert.Equal(t, entity.Vec{X: 100}, moving.Moving.Offset)
	assert.Equal(t, 0.5, moving.Moving.SpeedFactor)

	slope := lv.Platforms[1]
	require.True(t, slope.IsSlope())
	assert.Equal(t, 20.0, slope.Slope.AngleDegrees)
	assert.Equal(t, entity.DirLeft, slope.Slope.Direction)

	ground := lv.Platforms[2]
	assert.Equal(t, entity.Rect{X: 0, Y: 448, W: 640, H: 32}, ground.Rect)

	assert.Equal(t, []entity.EnemySpawn{
		{Kind: entity.EnemyWalker, X: 200, Y: 420},
		{Kind: entity.EnemyWalkingShooter, X: 250, Y: 420},
	}, lv.Enemies)

	require.Len(t, lv.Bouncers, 1)
	assert.Equal(t, 18.0, lv.Bouncers[0].Force)

	require.Len(t, lv.Collectibles, 3)
	assert.Equal(t, entity.CollectibleGem, lv.Collectibles[0].Kind)
	assert.Equal(t, 500, lv.Collectibles[0].Value)
	assert.Equal(t, entity.PowerupShield, lv.Collectibles[1].Powerup)
	assert.Equal(t, entity.CollectibleCoin, lv.Collectibles[2].Kind)

	require.Len(t, lv.Hazards, 1)
	assert.Equal(t, 2, lv.Hazards[0].Damage)
}

func TestBuild_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LevelConfig
		wantLog string
		check   func(t *testing.T, lv *entity.Level)
	}{
		{
			name: "missing player start",
			cfg: &config.LevelConfig{Name: "bare", Platforms: []config.PlatformConfig{
				{RectConfig: config.RectConfig{X: 0, Y: 400, W: 300, H: 40}},
			}},
			wantLog: "no playerStart",
			check: func(t *testing.T, lv *entity.Level) {
				assert.Equal(t, entity.DefaultPlayerStart, lv.PlayerStart)
			},
		},
		{
			name: "extent from platforms",
			cfg: &config.LevelConfig{Name: "fit", PlayerStart: &config.PositionConfig{}, Platforms: []config.PlatformConfig{
				{RectConfig: config.RectConfig{X: 0, Y: 400, W: 300, H: 40}},
				{RectConfig: config.RectConfig{X: 500, Y: 100, W: 60, H: 10}, Type: "one-way"},
			}},
			check: func(t *testing.T, lv *entity.Level) {
				assert.Equal(t, 560.0, lv.Width)
				assert.Equal(t, 440.0, lv.Height)
			},
		},
		{
			name:    "no platforms",
			cfg:     &config.LevelConfig{Name: "void", PlayerStart: &config.PositionConfig{}},
			wantLog: "void: no platforms",
			check: func(t *testing.T, lv *entity.Level) {
				assert.Empty(t, lv.Platforms)
			},
		},
		{
			name: "unknown platform type becomes ground",
			cfg: &config.LevelConfig{Name: "lava", PlayerStart: &config.PositionConfig{}, Platforms: []config.PlatformConfig{
				{RectConfig: config.RectConfig{X: 0, Y: 0, W: 32, H: 32}, Type: "lava"},
			}},
			wantLog: `unknown type "lava"`,
			check: func(t *testing.T, lv *entity.Level) {
				require.Len(t, lv.Platforms, 1)
				assert.Equal(t, entity.KindGround, lv.Platforms[0].Kind())
			},
		},
		{
			name: "empty platform skipped",
			cfg: &config.LevelConfig{Name: "flat", PlayerStart: &config.PositionConfig{}, Platforms: []config.PlatformConfig{
				{RectConfig: config.RectConfig{X: 0, Y: 0, W: 0, H: 32}},
			}},
			wantLog: "empty size",
			check: func(t *testing.T, lv *entity.Level) {
				assert.Empty(t, lv.Platforms)
			},
		},
		{
			name: "moving without motion gets the preset",
			cfg: &config.LevelConfig{Name: "lift", PlayerStart: &config.PositionConfig{}, Platforms: []config.PlatformConfig{
				{RectConfig: config.RectConfig{X: 0, Y: 0, W: 64, H: 16}, Type: "moving"},
			}},
			wantLog: "moving without motion",
			check: func(t *testing.T, lv *entity.Level) {
				require.Len(t, lv.Platforms, 1)
				require.True(t, lv.Platforms[0].IsMoving())
				assert.Equal(t, 96.0, lv.Platforms[0].Moving.Offset.Y)
			},
		},
		{
			name: "unknown enemy skipped",
			cfg: &config.LevelConfig{Name: "zoo", PlayerStart: &config.PositionConfig{}, Enemies: []config.EnemySpawnConfig{
				{Type: "dragon", X: 1, Y: 2},
				{Type: "flyer", X: 3, Y: 4},
			}},
			wantLog: `unknown enemy type "dragon"`,
			check: func(t *testing.T, lv *entity.Level) {
				assert.Equal(t, []entity.EnemySpawn{{Kind: entity.EnemyFlyer, X: 3, Y: 4}}, lv.Enemies)
			},
		},
		{
			name: "leaf without powerup picks one",
			cfg: &config.LevelConfig{Name: "leaf", PlayerStart: &config.PositionConfig{}, Collectibles: []config.CollectibleSpawn{
				{Type: "leaf", Powerup: "wings"},
			}},
			check: func(t *testing.T, lv *entity.Level) {
				require.Len(t, lv.Collectibles, 1)
				assert.Contains(t, entity.AllPowerups, lv.Collectibles[0].Powerup)
			},
		},
		{
			name: "pit ignores damage override",
			cfg: &config.LevelConfig{Name: "pit", PlayerStart: &config.PositionConfig{}, Hazards: []config.HazardSpawnConfig{
				{RectConfig: config.RectConfig{X: 0, Y: 0, W: 32, H: 32}, Type: "pit", Damage: 5},
			}},
			check: func(t *testing.T, lv *entity.Level) {
				require.Len(t, lv.Hazards, 1)
				assert.True(t, lv.Hazards[0].Lethal)
				assert.Equal(t, 0, lv.Hazards[0].Damage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, logs := createTestOptions()
			lv := Build(tt.cfg, opts)
			if tt.wantLog != "" {
				assert.Contains(t, logs.String(), tt.wantLog)
			}
			tt.check(t, lv)
		})
	}
}

func TestBuild_GridWithRecords(t *testing.T) {
	opts, _ := createTestOptions()
	cfg := &config.LevelConfig{
		Name:     "mixed",
		TileSize: 16,
		Rows: []string{
			"X   ",
			"GGGG",
		},
		Enemies: []config.EnemySpawnConfig{{Type: "jumper", X: 40, Y: 0}},
	}
	lv := Build(cfg, opts)

	assert.Equal(t, 16.0, lv.TileSize)
	assert.Equal(t, 64.0, lv.Width)
	assert.Equal(t, 32.0, lv.Height)
	assert.Equal(t, entity.Vec{X: 0, Y: 0}, lv.PlayerStart)
	require.Len(t, lv.Platforms, 1)
	assert.Equal(t, entity.Rect{X: 0, Y: 16, W: 64, H: 16}, lv.Platforms[0].Rect)
	assert.Equal(t, []entity.EnemySpawn{{Kind: entity.EnemyJumper, X: 40}}, lv.Enemies)
}

func TestBuild_GridPitsReachFloor(t *testing.T) {
	tests := []struct {
		name       string
		height     float64
		wantHeight float64
	}{
		{"grid height", 0, 64},
		{"taller declared height", 200, 200},
		{"shorter declared height", 48, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _ := createTestOptions()
			cfg := &config.LevelConfig{
				Name:     "pits",
				TileSize: 32,
				Height:   tt.height,
				Rows: []string{
					"X   ",
					"GGBG",
				},
				Hazards: []config.HazardSpawnConfig{
					{RectConfig: config.RectConfig{X: 0, Y: 10, W: 32, H: 5}, Type: "pit"},
				},
			}
			lv := Build(cfg, opts)

			assert.Equal(t, tt.wantHeight, lv.Height)
			require.Len(t, lv.Hazards, 2)
			pit := lv.Hazards[0]
			assert.Equal(t, entity.HazardPit, pit.Kind)
			assert.Equal(t, 32.0, pit.Y)
			assert.Equal(t, lv.Height, pit.Bottom())
			assert.Equal(t, entity.Rect{X: 0, Y: 10, W: 32, H: 5}, lv.Hazards[1].Rect, "declared pits keep their size")
		})
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/grid.yaml": &fstest.MapFile{Data: []byte(`
name: grid
rows:
  - "X  C E"
  - "GGGGGG"
`)},
		"levels/plain.txt": &fstest.MapFile{Data: []byte("X WALKER\nGGGGGGGG\n")},
	}
	loader := config.NewFSLoader(fsys, "")

	t.Run("yaml grid", func(t *testing.T) {
		opts, _ := createTestOptions()
		lv, err := Load(loader, "levels/grid.yaml", opts)
		require.NoError(t, err)

		assert.Equal(t, "grid", lv.Name)
		require.Len(t, lv.Platforms, 1)
		assert.Equal(t, 192.0, lv.Platforms[0].W)
		require.Len(t, lv.Collectibles, 1)
		require.NotNil(t, lv.Exit)
	})

	t.Run("text grid", func(t *testing.T) {
		opts, _ := createTestOptions()
		lv, err := Load(loader, "levels/plain.txt", opts)
		require.NoError(t, err)

		assert.Equal(t, "plain", lv.Name)
		assert.Equal(t, []entity.EnemySpawn{{Kind: entity.EnemyWalker, X: 64}}, lv.Enemies)
	})

	t.Run("missing file", func(t *testing.T) {
		opts, _ := createTestOptions()
		_, err := Load(loader, "levels/nope.json", opts)
		assert.Error(t, err)
	})
}

package config

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="32" tileheight="32" infinite="0" nextlayerid="4" nextobjectid="4">
 <tileset firstgid="1" name="terrain" tilewidth="32" tileheight="32" tilecount="2" columns="2">
  <image source="terrain.png" width="64" height="32"/>
  <tile id="0">
   <properties>
    <property name="kind" value="ground"/>
   </properties>
  </tile>
  <tile id="1">
   <properties>
    <property name="kind" value="one-way"/>
   </properties>
  </tile>
 </tileset>
 <layer id="1" name="terrain" width="4" height="3">
  <data encoding="csv">
0,0,0,0,
0,2,2,0,
1,1,1,1
</data>
 </layer>
 <objectgroup id="2" name="enemies">
  <object id="1" name="walker" x="64" y="10" width="28" height="28"/>
 </objectgroup>
 <objectgroup id="3" name="player">
  <object id="2" name="start" x="10" y="20"/>
 </objectgroup>
</map>
`

func createTestFS() fstest.MapFS {
	return fstest.MapFS{
		"physics.json": &fstest.MapFile{Data: []byte(`{
			"physics": {"gravity": 0.75},
			"jump": {"maxJumps": 3}
		}`)},
		"entities.yaml": &fstest.MapFile{Data: []byte(`
enemies:
  walker:
    width: 30
    height: 30
    maxHealth: 4
`)},
		"levels/one.json": &fstest.MapFile{Data: []byte(`{
			"name": "one",
			"width": 640,
			"height": 480,
			"playerStart": {"x": 32, "y": 400},
			"platforms": [
				{"x": 0, "y": 448, "width": 640, "height": 32, "type": "ground"},
				{"x": 100, "y": 300, "width": 96, "height": 64, "type": "slope", "slope": {"angle": 30, "direction": "left"}},
				{"x": 300, "y": 300, "width": 64, "height": 16, "type": "moving", "moving": {"offsetX": 100, "speedFactor": 0.5, "timing": "sine"}}
			],
			"enemies": [{"type": "walker", "x": 200, "y": 420}],
			"coins": [{"x": 50, "y": 50}],
			"theme": "forest"
		}`)},
		"levels/two.yaml": &fstest.MapFile{Data: []byte(`
name: two
tileSize: 32
rows:
  - "X   E"
  - "GGGGG"
`)},
		"levels/three.txt": &fstest.MapFile{Data: []byte("C  C\r\nGGGG\r\n")},
		"levels/four.tmx":  &fstest.MapFile{Data: []byte(testTMX)},
		"levels/five.xml":  &fstest.MapFile{Data: []byte(`<level/>`)},
	}
}

func TestLoader_LoadPhysics(t *testing.T) {
	loader := NewFSLoader(createTestFS(), "")

	cfg, err := loader.LoadPhysics()
	require.NoError(t, err)

	assert.Equal(t, 0.75, cfg.Physics.Gravity)
	assert.Equal(t, 3, cfg.Jump.MaxJumps)
	// untouched fields keep their defaults
	assert.Equal(t, 7, cfg.Jump.CoyoteFrames)
	assert.Equal(t, 15, cfg.Jump.DropThroughFrames)
	assert.Equal(t, 300.0, cfg.Bouncer.CooldownMs)
}

func TestLoader_LoadPhysicsMissing(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{}, "")

	_, err := loader.LoadPhysics()
	require.Error(t, err)
}

func TestLoader_LoadEntitiesYAML(t *testing.T) {
	loader := NewFSLoader(createTestFS(), "")

	cfg, err := loader.LoadEntities()
	require.NoError(t, err)

	walker := cfg.Enemy("walker")
	assert.Equal(t, 30.0, walker.Width)
	assert.Equal(t, 4, walker.MaxHealth)

	_, ok := cfg.Enemies["boss"]
	assert.True(t, ok, "defaults are kept for unlisted enemies")
}

func TestLoader_LoadLevel(t *testing.T) {
	loader := NewFSLoader(createTestFS(), "")

	t.Run("structured json", func(t *testing.T) {
		cfg, err := loader.LoadLevel("levels/one.json")
		require.NoError(t, err)

		assert.Equal(t, "one", cfg.Name)
		assert.False(t, cfg.IsGrid())
		require.NotNil(t, cfg.PlayerStart)
		assert.Equal(t, 32.0, cfg.PlayerStart.X)
		require.Len(t, cfg.Platforms, 3)
		assert.Equal(t, 640.0, cfg.Platforms[0].W)
		require.NotNil(t, cfg.Platforms[1].Slope)
		assert.Equal(t, "left", cfg.Platforms[1].Slope.Direction)
		require.NotNil(t, cfg.Platforms[2].Moving)
		assert.Equal(t, "sine", cfg.Platforms[2].Moving.Timing)
		assert.Len(t, cfg.Coins, 1)
		assert.Equal(t, "forest", cfg.Theme)
	})

	t.Run("grid yaml", func(t *testing.T) {
		cfg, err := loader.LoadLevel("levels/two.yaml")
		require.NoError(t, err)

		assert.True(t, cfg.IsGrid())
		assert.Equal(t, 32.0, cfg.TileSize)
		assert.Equal(t, []string{"X   E", "GGGGG"}, cfg.Rows)
	})

	t.Run("grid text", func(t *testing.T) {
		cfg, err := loader.LoadLevel("levels/three.txt")
		require.NoError(t, err)

		assert.Equal(t, "three", cfg.Name)
		assert.Equal(t, []string{"C  C", "GGGG"}, cfg.Rows)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := loader.LoadLevel("levels/five.xml")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.LoadLevel("levels/missing.json")
		require.Error(t, err)
	})
}

func TestLoadTMXLevel(t *testing.T) {
	cfg, err := LoadTMXLevel(createTestFS(), "levels/four.tmx")
	require.NoError(t, err)

	assert.Equal(t, "four", cfg.Name)
	assert.Equal(t, 128.0, cfg.Width)
	assert.Equal(t, 96.0, cfg.Height)
	assert.Equal(t, 32.0, cfg.TileSize)

	var ground, oneWay int
	for _, p := range cfg.Platforms {
		switch p.Type {
		case "ground":
			ground++
			assert.Equal(t, 64.0, p.Y)
			assert.Equal(t, 32.0, p.H)
		case "one-way":
			oneWay++
			assert.Equal(t, 32.0, p.Y)
			assert.Equal(t, 8.0, p.H)
		}
	}
	assert.Equal(t, 4, ground)
	assert.Equal(t, 2, oneWay)

	require.Len(t, cfg.Enemies, 1)
	assert.Equal(t, "walker", cfg.Enemies[0].Type)
	require.NotNil(t, cfg.PlayerStart)
	assert.Equal(t, 10.0, cfg.PlayerStart.X)
}

func TestLoader_LoadAll(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	assert.NotNil(t, cfg.Physics)
	assert.NotNil(t, cfg.Entities)
	assert.Equal(t, 60, cfg.Physics.Display.Framerate)
}

func TestIsWatchedFile(t *testing.T) {
	assert.True(t, IsWatchedFile("levels/one.json"))
	assert.True(t, IsWatchedFile("levels/ONE.TMX"))
	assert.False(t, IsWatchedFile("levels/one.png"))
	assert.False(t, IsWatchedFile("levels/.one.json.swp"))
}

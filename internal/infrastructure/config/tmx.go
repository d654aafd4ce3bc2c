package config

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/lafriks/go-tiled"
)

// TMX layer and object group names understood by LoadTMXLevel
const (
	TMXTerrainLayer      = "terrain"
	TMXPlayerGroup       = "player"
	TMXEnemyGroup        = "enemies"
	TMXCollectibleGroup  = "collectibles"
	TMXHazardGroup       = "hazards"
	TMXBouncerGroup      = "bouncers"
	TMXMovingGroup       = "moving"
	TMXExitGroup         = "exit"
	tmxDefaultOneWayPart = 4
)

// LoadTMXLevel parses a Tiled map into a level record.
// Terrain tiles carry a "kind" property (ground, platform, one-way, slope) and,
// for slopes, "angle" and "direction". Objects use a "type" property, falling back to the object name.
func LoadTMXLevel(fsys fs.FS, tmxPath string) (*LevelConfig, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	cfg := &LevelConfig{
		Name:     strings.TrimSuffix(path.Base(tmxPath), path.Ext(tmxPath)),
		Width:    float64(levelMap.Width) * tileW,
		Height:   float64(levelMap.Height) * tileH,
		TileSize: tileW,
	}

	for _, layer := range levelMap.Layers {
		if !strings.EqualFold(layer.Name, TMXTerrainLayer) {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				cfg.Platforms = append(cfg.Platforms, terrainPlatform(tile, float64(x)*tileW, float64(y)*tileH, tileW, tileH))
			}
		}
	}

	for _, og := range levelMap.ObjectGroups {
		switch strings.ToLower(og.Name) {
		case TMXPlayerGroup:
			if len(og.Objects) > 0 {
				o := og.Objects[0]
				cfg.PlayerStart = &PositionConfig{X: o.X, Y: o.Y}
			}
		case TMXExitGroup:
			if len(og.Objects) > 0 {
				o := og.Objects[0]
				cfg.Exit = &PositionConfig{X: o.X, Y: o.Y}
			}
		case TMXEnemyGroup:
			for _, o := range og.Objects {
				cfg.Enemies = append(cfg.Enemies, EnemySpawnConfig{Type: objectType(o), X: o.X, Y: o.Y})
			}
		case TMXCollectibleGroup:
			for _, o := range og.Objects {
				cfg.Collectibles = append(cfg.Collectibles, CollectibleSpawn{
					Type:    objectType(o),
					X:       o.X,
					Y:       o.Y,
					Value:   o.Properties.GetInt("value"),
					Powerup: o.Properties.GetString("powerup"),
				})
			}
		case TMXHazardGroup:
			for _, o := range og.Objects {
				cfg.Hazards = append(cfg.Hazards, HazardSpawnConfig{
					RectConfig: objectRect(o),
					Type:       objectType(o),
					Damage:     o.Properties.GetInt("damage"),
				})
			}
		case TMXBouncerGroup:
			for _, o := range og.Objects {
				cfg.Bouncers = append(cfg.Bouncers, BouncerSpawn{
					RectConfig: objectRect(o),
					Force:      o.Properties.GetFloat("force"),
				})
			}
		case TMXMovingGroup:
			for _, o := range og.Objects {
				cfg.Platforms = append(cfg.Platforms, PlatformConfig{
					RectConfig: objectRect(o),
					Type:       "moving",
					Moving: &PlatformMotion{
						OffsetX:     o.Properties.GetFloat("offsetX"),
						OffsetY:     o.Properties.GetFloat("offsetY"),
						SpeedFactor: o.Properties.GetFloat("speedFactor"),
						Timing:      o.Properties.GetString("timing"),
						Phase:       o.Properties.GetFloat("phase"),
					},
				})
			}
		}
	}

	return cfg, nil
}

func terrainPlatform(tile *tiled.LayerTile, x, y, w, h float64) PlatformConfig {
	kind := "ground"
	var slope *PlatformSlope
	if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
		if k := tilesetTile.Properties.GetString("kind"); k != "" {
			kind = k
		}
		if kind == "slope" {
			slope = &PlatformSlope{
				Angle:     tilesetTile.Properties.GetFloat("angle"),
				Direction: tilesetTile.Properties.GetString("direction"),
			}
		}
	}

	switch kind {
	case "platform":
		h /= 2
	case "one-way":
		h /= tmxDefaultOneWayPart
	}
	return PlatformConfig{RectConfig: RectConfig{X: x, Y: y, W: w, H: h}, Type: kind, Slope: slope}
}

func objectType(o *tiled.Object) string {
	if t := o.Properties.GetString("type"); t != "" {
		return t
	}
	return strings.ToLower(o.Name)
}

func objectRect(o *tiled.Object) RectConfig {
	return RectConfig{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

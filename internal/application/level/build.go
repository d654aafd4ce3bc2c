package level

import (
	"fmt"
	"math"

	"github.com/younwookim/skyrunner/internal/domain/entity"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

// Load reads a level file through the loader and builds it
func Load(loader *config.Loader, name string, opts Options) (*entity.Level, error) {
	cfg, err := loader.LoadLevel(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", name, err)
	}
	return Build(cfg, opts), nil
}

// Build converts a level record into a Level. Grid rows are parsed first and the
// explicit records are added on top, so both forms resolve to the same representation.
// Missing fields fall back to safe defaults with a warning.
func Build(cfg *config.LevelConfig, opts Options) *entity.Level {
	opts = opts.withDefaults()
	if cfg.TileSize > 0 {
		opts.TileSize = cfg.TileSize
	}
	logger := opts.Logger

	var lv *entity.Level
	gridHazards := 0
	if cfg.IsGrid() {
		lv = ParseGrid(cfg.Rows, opts)
		gridHazards = len(lv.Hazards)
	} else {
		lv = &entity.Level{TileSize: opts.TileSize, PlayerStart: entity.DefaultPlayerStart}
	}
	lv.Name = cfg.Name
	lv.Theme = cfg.Theme

	b := &builder{opts: opts, level: lv}
	for i, pc := range cfg.Platforms {
		b.platform(i, pc)
	}
	for _, ec := range cfg.Enemies {
		b.enemy(ec)
	}
	for _, bc := range cfg.Bouncers {
		lv.Bouncers = append(lv.Bouncers, entity.Bouncer{Rect: rect(bc.RectConfig), Force: bc.Force})
	}
	for _, cc := range cfg.Collectibles {
		b.collectible(cc)
	}
	for _, pos := range cfg.Coins {
		lv.Collectibles = append(lv.Collectibles, entity.CollectibleSpawn{Kind: entity.CollectibleCoin, X: pos.X, Y: pos.Y})
	}
	for _, hc := range cfg.Hazards {
		b.hazard(hc)
	}

	switch {
	case cfg.PlayerStart != nil:
		lv.PlayerStart = entity.Vec{X: cfg.PlayerStart.X, Y: cfg.PlayerStart.Y}
	case !cfg.IsGrid():
		logger.Printf("[level] %s: no playerStart, using (%v, %v)", cfg.Name, lv.PlayerStart.X, lv.PlayerStart.Y)
	}
	if cfg.Exit != nil {
		lv.Exit = &entity.Vec{X: cfg.Exit.X, Y: cfg.Exit.Y}
	}
	if len(lv.Platforms) == 0 {
		logger.Printf("[level] %s: no platforms", cfg.Name)
	}

	if cfg.Width > 0 {
		lv.Width = cfg.Width
	}
	if cfg.Height > 0 {
		lv.Height = cfg.Height
	}
	b.fitExtent()
	b.extendPits(gridHazards)

	lv.Platforms = MergePlatforms(lv.Platforms)
	lv.ReindexPlatforms()
	logger.Printf("[level] %s: %.0fx%.0f, %d platforms, %d enemies, %d collectibles, %d hazards",
		cfg.Name, lv.Width, lv.Height, len(lv.Platforms), len(lv.Enemies), len(lv.Collectibles), len(lv.Hazards))
	return lv
}

type builder struct {
	opts  Options
	level *entity.Level
}

func rect(rc config.RectConfig) entity.Rect {
	return entity.Rect{X: rc.X, Y: rc.Y, W: rc.W, H: rc.H}
}

func (b *builder) platform(i int, pc config.PlatformConfig) {
	r := rect(pc.RectConfig)
	if r.W <= 0 || r.H <= 0 {
		b.opts.Logger.Printf("[level] platform %d: empty size %vx%v, skipped", i, r.W, r.H)
		return
	}

	kind, ok := entity.ParsePlatformKind(pc.Type)
	if !ok {
		b.opts.Logger.Printf("[level] platform %d: unknown type %q, using ground", i, pc.Type)
	}

	var slope *entity.SlopeData
	if pc.Slope != nil || kind == entity.KindSlope {
		slope = &entity.SlopeData{AngleDegrees: b.opts.SlopeAngle, Direction: b.opts.SlopeDirection}
		if pc.Slope != nil {
			if pc.Slope.Angle > 0 {
				slope.AngleDegrees = pc.Slope.Angle
			}
			if pc.Slope.Direction != "" {
				slope.Direction = entity.ParseDirection(pc.Slope.Direction)
			}
		}
	}

	var p *entity.Platform
	switch {
	case pc.Moving != nil || kind == entity.KindMoving:
		p = entity.NewMovingPlatform(r, b.motion(i, pc.Moving), slope)
	case slope != nil:
		p = entity.NewSlope(r, slope.AngleDegrees, slope.Direction)
	default:
		p = entity.NewPlatform(kind, r)
	}
	b.level.Platforms = append(b.level.Platforms, p)
}

// motion converts a moving record; a moving platform without one gets the grid preset
func (b *builder) motion(i int, mc *config.PlatformMotion) entity.MovingData {
	if mc == nil {
		b.opts.Logger.Printf("[level] platform %d: moving without motion, using preset", i)
		return entity.MovingData{
			Offset:      entity.Vec{Y: movingTravelTiles * b.opts.TileSize},
			SpeedFactor: movingSpeed,
			Timing:      entity.TimingLinear,
		}
	}
	timing, ok := entity.ParseTimingFunction(mc.Timing)
	if !ok {
		b.opts.Logger.Printf("[level] platform %d: unknown timing %q, using linear", i, mc.Timing)
	}
	speed := mc.SpeedFactor
	if speed <= 0 {
		speed = movingSpeed
	}
	return entity.MovingData{
		Offset:      entity.Vec{X: mc.OffsetX, Y: mc.OffsetY},
		SpeedFactor: speed,
		Timing:      timing,
		Phase:       mc.Phase,
	}
}

func (b *builder) enemy(ec config.EnemySpawnConfig) {
	kind, ok := entity.ParseEnemyKind(ec.Type)
	if !ok {
		b.opts.Logger.Printf("[level] unknown enemy type %q at (%v, %v), skipped", ec.Type, ec.X, ec.Y)
		return
	}
	b.level.Enemies = append(b.level.Enemies, entity.EnemySpawn{Kind: kind, X: ec.X, Y: ec.Y})
}

func (b *builder) collectible(cc config.CollectibleSpawn) {
	kind, ok := entity.ParseCollectibleKind(cc.Type)
	if !ok {
		b.opts.Logger.Printf("[level] unknown collectible type %q at (%v, %v), skipped", cc.Type, cc.X, cc.Y)
		return
	}
	spawn := entity.CollectibleSpawn{Kind: kind, X: cc.X, Y: cc.Y, Value: cc.Value}
	if kind == entity.CollectibleLeaf {
		pu, ok := entity.ParsePowerupType(cc.Powerup)
		if !ok {
			pu = entity.AllPowerups[b.opts.Rand.Intn(len(entity.AllPowerups))]
		}
		spawn.Powerup = pu
	}
	b.level.Collectibles = append(b.level.Collectibles, spawn)
}

func (b *builder) hazard(hc config.HazardSpawnConfig) {
	kind, ok := entity.ParseHazardKind(hc.Type)
	if !ok {
		b.opts.Logger.Printf("[level] unknown hazard type %q, skipped", hc.Type)
		return
	}
	h := entity.NewHazard(kind, rect(hc.RectConfig))
	if hc.Damage > 0 && !h.Lethal {
		h.Damage = hc.Damage
	}
	b.level.Hazards = append(b.level.Hazards, h)
}

// extendPits reaches the first n hazards' pits down to the final level floor.
// Grid pits are sized from the row count before a declared height applies.
func (b *builder) extendPits(n int) {
	lv := b.level
	for i := range lv.Hazards[:n] {
		h := &lv.Hazards[i]
		if h.Kind == entity.HazardPit && lv.Height > h.Y {
			h.H = lv.Height - h.Y
		}
	}
}

// fitExtent sizes a level that declares no dimensions to the union of its platforms
func (b *builder) fitExtent() {
	lv := b.level
	if lv.Width > 0 && lv.Height > 0 {
		return
	}
	var w, h float64
	for _, p := range lv.Platforms {
		w = math.Max(w, p.Right())
		h = math.Max(h, p.Bottom())
	}
	if lv.Width <= 0 {
		lv.Width = w
	}
	if lv.Height <= 0 {
		lv.Height = h
	}
}

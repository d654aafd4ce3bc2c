package level

import (
	"log"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/younwookim/skyrunner/internal/domain/entity"
)

const (
	DefaultTileSize   = 32.0
	DefaultSlopeAngle = 30.0

	movingTravelTiles = 3
	movingSpeed       = 0.25 // cycles per second
)

// Options controls grid parsing and level building
type Options struct {
	TileSize float64
	// Rand picks leaf powerups. Pass a seeded source for reproducible levels;
	// nil uses a time-seeded one.
	Rand   *rand.Rand
	Logger *log.Logger

	SlopeAngle     float64
	SlopeDirection entity.Direction
}

func (o Options) withDefaults() Options {
	if o.TileSize <= 0 {
		o.TileSize = DefaultTileSize
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.SlopeAngle <= 0 {
		o.SlopeAngle = DefaultSlopeAngle
	}
	if o.SlopeDirection == entity.DirNone {
		o.SlopeDirection = entity.DirRight
	}
	return o
}

// enemyTokens are matched before single characters, longest first.
// BIGWALKER must win over B and SHOOTER over S.
var enemyTokens = []struct {
	token string
	kind  entity.EnemyKind
}{
	{"WALKSHOOTER", entity.EnemyWalkingShooter},
	{"BIGWALKER", entity.EnemyBigWalker},
	{"SHOOTER", entity.EnemyShooter},
	{"JUMPER", entity.EnemyJumper},
	{"WALKER", entity.EnemyWalker},
	{"FLYER", entity.EnemyFlyer},
	{"BOSS", entity.EnemyBoss},
}

// isTerrain reports whether c produces a platform
func isTerrain(c byte) bool {
	switch c {
	case 'G', 'P', 'T', 'S', 'M', 'U':
		return true
	}
	return false
}

// gridParser holds the state of one ParseGrid call
type gridParser struct {
	opts  Options
	rows  []string
	level *entity.Level
	hasX  bool
}

// ParseGrid converts a row-major character grid into a level. Unknown characters are
// logged and skipped; parsing never fails.
func ParseGrid(rows []string, opts Options) *entity.Level {
	opts = opts.withDefaults()
	ts := opts.TileSize

	p := &gridParser{
		opts: opts,
		rows: make([]string, len(rows)),
	}
	width := 0
	for r, row := range rows {
		p.rows[r] = p.asciiRow(r, row)
		width = max(width, len(p.rows[r]))
	}
	p.level = &entity.Level{
		Width:       float64(width) * ts,
		Height:      float64(len(rows)) * ts,
		TileSize:    ts,
		PlayerStart: entity.DefaultPlayerStart,
	}

	for r, row := range p.rows {
		for c := 0; c < len(row); {
			c += p.cell(r, c)
		}
	}

	if !p.hasX {
		opts.Logger.Printf("[level] no player start in grid, using (%v, %v)", entity.DefaultPlayerStart.X, entity.DefaultPlayerStart.Y)
	}
	p.level.Platforms = MergePlatforms(p.level.Platforms)
	p.level.ReindexPlatforms()
	return p.level
}

// cell handles the token starting at (r, c) and returns how many columns it consumed
func (p *gridParser) cell(r, c int) int {
	row := p.rows[r]
	ts := p.opts.TileSize
	x, y := float64(c)*ts, float64(r)*ts
	lv := p.level

	for _, et := range enemyTokens {
		if strings.HasPrefix(row[c:], et.token) {
			lv.Enemies = append(lv.Enemies, entity.EnemySpawn{Kind: et.kind, X: x, Y: y})
			return len(et.token)
		}
	}

	tile := entity.Rect{X: x, Y: y, W: ts, H: ts}
	center := entity.Vec{X: x + ts/2, Y: y + ts/2}

	switch ch := row[c]; ch {
	case ' ':
	case 'G':
		lv.Platforms = append(lv.Platforms, entity.NewPlatform(entity.KindGround, tile))
	case 'P':
		lv.Platforms = append(lv.Platforms, entity.NewPlatform(entity.KindPlatform, entity.Rect{X: x, Y: y, W: ts, H: ts / 2}))
	case 'T':
		lv.Platforms = append(lv.Platforms, entity.NewPlatform(entity.KindOneWay, entity.Rect{X: x, Y: y, W: ts, H: ts / 4}))
	case 'S':
		lv.Platforms = append(lv.Platforms, entity.NewSlope(tile, p.opts.SlopeAngle, p.opts.SlopeDirection))
	case 'M', 'U':
		dy := movingTravelTiles * ts
		if ch == 'U' {
			dy = -dy
		}
		lv.Platforms = append(lv.Platforms, entity.NewMovingPlatform(
			entity.Rect{X: x, Y: y, W: ts, H: ts / 2},
			entity.MovingData{Offset: entity.Vec{Y: dy}, SpeedFactor: movingSpeed, Timing: entity.TimingLinear},
			nil,
		))
	case 'K':
		lv.Hazards = append(lv.Hazards, entity.NewHazard(entity.HazardSpike, entity.Rect{X: x, Y: y + ts/2, W: ts, H: ts / 2}))
	case 'B':
		lv.Hazards = append(lv.Hazards, entity.NewHazard(entity.HazardPit, entity.Rect{X: x, Y: y, W: ts, H: lv.Height - y}))
	case 'C':
		lv.Collectibles = append(lv.Collectibles, entity.CollectibleSpawn{Kind: entity.CollectibleCoin, X: center.X, Y: center.Y})
	case 'D':
		lv.Collectibles = append(lv.Collectibles, entity.CollectibleSpawn{Kind: entity.CollectibleGem, X: center.X, Y: center.Y})
	case 'L':
		pu := entity.AllPowerups[p.opts.Rand.Intn(len(entity.AllPowerups))]
		lv.Collectibles = append(lv.Collectibles, entity.CollectibleSpawn{
			Kind: entity.CollectibleLeaf, X: center.X, Y: center.Y, Powerup: pu,
		})
	case 'J':
		lv.Bouncers = append(lv.Bouncers, entity.Bouncer{Rect: entity.Rect{X: x, Y: y + ts*3/4, W: ts, H: ts / 4}})
	case 'X':
		if !p.hasX {
			p.hasX = true
			lv.PlayerStart = entity.Vec{X: x, Y: y}
		}
		if !p.terrainAt(r+1, c) {
			lv.Platforms = append(lv.Platforms, entity.NewPlatform(entity.KindGround, tile.Translate(0, ts)))
		}
	case 'E':
		lv.Exit = &entity.Vec{X: x, Y: y}
	default:
		p.unknown(rune(ch), r, c)
	}
	return 1
}

// asciiRow blanks every non-ASCII rune so one column is always one byte.
// Each blanked rune is reported once at its column.
func (p *gridParser) asciiRow(r int, row string) string {
	if !hasNonASCII(row) {
		return row
	}
	var sb strings.Builder
	col := 0
	for len(row) > 0 {
		ch, size := utf8.DecodeRuneInString(row)
		if ch >= utf8.RuneSelf {
			p.unknown(ch, r, col)
			ch = ' '
		}
		sb.WriteRune(ch)
		row = row[size:]
		col++
	}
	return sb.String()
}

func hasNonASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return true
		}
	}
	return false
}

func (p *gridParser) unknown(ch rune, r, c int) {
	p.opts.Logger.Printf("[level] unknown tile %q at row %d col %d, skipped", ch, r, c)
}

func (p *gridParser) terrainAt(r, c int) bool {
	if r < 0 || r >= len(p.rows) || c >= len(p.rows[r]) {
		return false
	}
	return isTerrain(p.rows[r][c])
}

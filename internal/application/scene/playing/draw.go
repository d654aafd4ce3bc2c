package playing

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/skyrunner/internal/application/state"
	"github.com/younwookim/skyrunner/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorGround     = color.RGBA{80, 80, 100, 255}
	colorPlatform   = color.RGBA{110, 110, 140, 255}
	colorOneWay     = color.RGBA{140, 120, 90, 255}
	colorSlope      = color.RGBA{90, 130, 90, 255}
	colorMoving     = color.RGBA{90, 140, 200, 255}
	colorSpike      = color.RGBA{200, 50, 50, 255}
	colorPit        = color.RGBA{40, 0, 0, 200}
	colorBouncer    = color.RGBA{240, 140, 40, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorShield     = color.RGBA{120, 200, 255, 200}
	colorEnemy      = color.RGBA{200, 100, 100, 255}
	colorBoss       = color.RGBA{170, 60, 160, 255}
	colorCharge     = color.RGBA{255, 230, 80, 255}
	colorProjectile = color.RGBA{255, 100, 100, 255}
	colorCoin       = color.RGBA{255, 215, 0, 255}
	colorGem        = color.RGBA{120, 240, 255, 255}
	colorLeaf       = color.RGBA{80, 220, 80, 255}
	colorExit       = color.RGBA{255, 255, 255, 120}
	colorDebug      = color.RGBA{255, 0, 255, 160}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
)

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	p.drawHazards(screen)
	p.drawPlatforms(screen)
	p.drawBouncers(screen)
	p.drawExit(screen)
	p.drawCollectibles(screen)
	p.drawEnemies(screen)
	p.drawProjectiles(screen)
	p.drawParticles(screen)
	p.drawPlayer(screen)
	p.drawPopups(screen)
	if p.debug {
		p.drawDebug(screen)
	}
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nPress ESC to resume")
	case state.StateLevelComplete:
		p.drawOverlay(screen, fmt.Sprintf("LEVEL COMPLETE\n\nScore: %d\n\nPress R to play again", p.world.Score()))
	case state.StateReplayFinished:
		p.drawOverlay(screen, "REPLAY FINISHED")
	}
}

// rect draws a world-space rectangle
func (p *Playing) rect(screen *ebiten.Image, r entity.Rect, c color.Color) {
	vector.FillRect(screen, float32(r.X-p.camX), float32(r.Y-p.camY), float32(r.W), float32(r.H), c, false)
}

func (p *Playing) visible(r entity.Rect) bool {
	view := entity.Rect{X: p.camX, Y: p.camY, W: float64(p.screenW), H: float64(p.screenH)}
	return r.Overlaps(view)
}

func (p *Playing) drawPlatforms(screen *ebiten.Image) {
	for _, pl := range p.world.Platforms() {
		if !p.visible(pl.Rect) {
			continue
		}
		if pl.IsSlope() {
			p.drawSlope(screen, pl)
			continue
		}

		c := colorGround
		switch {
		case pl.IsMoving():
			c = colorMoving
		case pl.IsOneWay():
			c = colorOneWay
		case pl.Kind() == entity.KindPlatform:
			c = colorPlatform
		}
		p.rect(screen, pl.Rect, c)
	}
}

// drawSlope fills the solid part under the surface column by column
func (p *Playing) drawSlope(screen *ebiten.Image, pl *entity.Platform) {
	c := colorSlope
	if pl.IsMoving() {
		c = colorMoving
	}
	for x := pl.Left(); x < pl.Right(); x += 2 {
		top := pl.SurfaceY(x + 1)
		p.rect(screen, entity.Rect{X: x, Y: top, W: 2, H: pl.Bottom() - top}, c)
	}
	x0, x1 := pl.Left(), pl.Right()
	vector.StrokeLine(screen,
		float32(x0-p.camX), float32(pl.SurfaceY(x0)-p.camY),
		float32(x1-p.camX), float32(pl.SurfaceY(x1)-p.camY),
		1, color.White, true)
}

func (p *Playing) drawHazards(screen *ebiten.Image) {
	for _, h := range p.world.Hazards() {
		if !p.visible(h.Rect) {
			continue
		}
		if h.Lethal {
			p.rect(screen, h.Rect, colorPit)
			continue
		}
		// spikes as a row of teeth
		for x := h.Left(); x < h.Right(); x += 8 {
			w := math.Min(8, h.Right()-x)
			vector.StrokeLine(screen,
				float32(x-p.camX), float32(h.Bottom()-p.camY),
				float32(x+w/2-p.camX), float32(h.Top()-p.camY), 2, colorSpike, true)
			vector.StrokeLine(screen,
				float32(x+w/2-p.camX), float32(h.Top()-p.camY),
				float32(x+w-p.camX), float32(h.Bottom()-p.camY), 2, colorSpike, true)
		}
	}
}

func (p *Playing) drawBouncers(screen *ebiten.Image) {
	for _, b := range p.world.Bouncers() {
		r := b.Rect
		squash := b.Squash * r.H * 0.5
		r.Y += squash
		r.H -= squash
		p.rect(screen, r, colorBouncer)
	}
}

func (p *Playing) drawExit(screen *ebiten.Image) {
	if exit := p.world.Exit(); exit != nil {
		p.rect(screen, *exit, colorExit)
	}
}

func (p *Playing) drawCollectibles(screen *ebiten.Image) {
	for _, c := range p.world.Collectibles() {
		if c.Collected || !p.visible(c.Rect) {
			continue
		}
		clr := colorCoin
		switch c.Spawn.Kind {
		case entity.CollectibleGem:
			clr = colorGem
		case entity.CollectibleLeaf:
			clr = colorLeaf
		}
		bob := math.Sin(c.Bob) * 2
		vector.DrawFilledCircle(screen,
			float32(c.CenterX()-p.camX), float32(c.CenterY()+bob-p.camY),
			float32(c.W/2), clr, true)
	}
}

func (p *Playing) drawEnemies(screen *ebiten.Image) {
	for _, e := range p.world.Enemies() {
		r := e.Bounds()
		if !e.Active || !p.visible(r) {
			continue
		}

		c := colorEnemy
		if e.Kind == entity.EnemyBoss {
			c = colorBoss
		}
		if e.Invulnerable > 0 && e.Invulnerable%4 < 2 {
			c = color.RGBA{255, 255, 255, 255}
		}

		// jumper telegraph compresses the body
		squash := e.Hop.Squash * r.H * 0.3
		r.Y += squash
		r.H -= squash
		p.rect(screen, r, c)

		if e.Shot.Charge > 0 {
			p.rect(screen, entity.Rect{X: r.X, Y: r.Y - 6, W: r.W * e.Shot.Charge, H: 3}, colorCharge)
		}
		if e.Kind == entity.EnemyBoss {
			p.rect(screen, entity.Rect{X: r.X, Y: r.Y - 12, W: r.W * e.HealthFraction(), H: 4}, colorHealthFG)
		}
	}
}

func (p *Playing) drawProjectiles(screen *ebiten.Image) {
	for _, pr := range p.world.Projectiles() {
		if !pr.Active {
			continue
		}
		vector.DrawFilledCircle(screen, float32(pr.X-p.camX), float32(pr.Y-p.camY), float32(pr.W/2), colorProjectile, true)
	}
}

func (p *Playing) drawParticles(screen *ebiten.Image) {
	draw := func(pt entity.Particle) {
		a := pt.Alpha()
		c := color.RGBA{uint8(255 * a), uint8(255 * a), uint8(200 * a), uint8(255 * a)}
		vector.FillRect(screen, float32(pt.Pos.X-p.camX), float32(pt.Pos.Y-p.camY), float32(pt.Size), float32(pt.Size), c, false)
	}
	for _, pt := range p.world.Particles() {
		draw(pt)
	}
	for _, pt := range p.world.Player().Particles {
		draw(pt)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image) {
	pl := p.world.Player()

	c := colorPlayer
	if pl.IsInvulnerable() && pl.Invulnerable%6 < 3 {
		c = color.RGBA{255, 255, 255, 200}
	}
	p.rect(screen, pl.Bounds(), c)

	// facing marker
	eyeX := pl.CenterX() + float64(pl.Facing)*pl.W/4
	p.rect(screen, entity.Rect{X: eyeX - 2, Y: pl.Y + 6, W: 4, H: 4}, colorBG)

	if pl.HasShield() {
		r := math.Max(pl.W, pl.H)*0.75 + 2
		vector.StrokeCircle(screen, float32(pl.CenterX()-p.camX), float32(pl.CenterY()-p.camY), float32(r), 2, colorShield, true)
	}
}

func (p *Playing) drawPopups(screen *ebiten.Image) {
	for _, pp := range p.popups {
		ebitenutil.DebugPrintAt(screen, pp.text, int(pp.pos.X-p.camX), int(pp.pos.Y-p.camY))
	}
}

// drawDebug outlines every collision box and prints the player's contact state
func (p *Playing) drawDebug(screen *ebiten.Image) {
	outline := func(r entity.Rect) {
		vector.StrokeRect(screen, float32(r.X-p.camX), float32(r.Y-p.camY), float32(r.W), float32(r.H), 1, colorDebug, false)
	}
	for _, pl := range p.world.Platforms() {
		outline(pl.Rect)
	}
	for _, e := range p.world.Enemies() {
		outline(e.Bounds())
	}
	pl := p.world.Player()
	outline(pl.Bounds())

	text := fmt.Sprintf("frame %d  tps %.0f\npos (%.2f, %.2f) vel (%.2f, %.2f)\ngrounded %v platform %d slope %v wall %v\ncoyote %d drop %d jumps %d/%d",
		p.world.Frame(), ebiten.ActualTPS(),
		pl.X, pl.Y, pl.VX, pl.VY,
		pl.Grounded, pl.ActivePlatform, pl.OnSlope, pl.TouchingWall,
		pl.Coyote, pl.DropThrough, pl.JumpsRemaining, pl.MaxJumps)
	ebitenutil.DebugPrintAt(screen, text, 4, 40)
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	pl := p.world.Player()

	barX, barY := float32(10), float32(p.screenH-20)
	barW, barH := float32(100), float32(10)
	vector.FillRect(screen, barX, barY, barW, barH, colorHealthBG, false)
	ratio := float32(pl.Health) / float32(max(pl.MaxHealth, 1))
	vector.FillRect(screen, barX, barY, barW*max(ratio, 0), barH, colorHealthFG, false)

	var powerups []string
	for _, pu := range pl.Powerups {
		powerups = append(powerups, fmt.Sprintf("%s %ds", pu.Type, pu.Remaining/60))
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d  %s", p.world.Score(), strings.Join(powerups, " ")), 10, p.screenH-35)
	ebitenutil.DebugPrint(screen, "A/D: Move | W/Space: Jump | S: Drop | R: Restart | F3: Debug | ESC: Pause")
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	vector.FillRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}

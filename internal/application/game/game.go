// Package game drives scenes from the ebiten loop.
package game

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/skyrunner/internal/application/scene"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

// Game implements ebiten.Game and manages Scene transitions
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	frames  int
	logger  *log.Logger
}

// New creates a game showing initial. The tick length follows the display framerate.
func New(initial scene.Scene, display config.DisplayConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	fps := display.Framerate
	if fps <= 0 {
		fps = 60
	}
	g := &Game{
		current: initial,
		screenW: display.ScreenWidth,
		screenH: display.ScreenHeight,
		dt:      1.0 / float64(fps),
		logger:  logger,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// scene.ErrQuit ends the loop cleanly.
func (g *Game) Update() error {
	g.frames++
	next, err := g.current.Update(g.dt)
	if errors.Is(err, scene.ErrQuit) {
		g.current.OnExit()
		g.logger.Printf("[game] quit after %d frames", g.frames)
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	if next != nil {
		g.logger.Printf("[game] scene %T -> %T", g.current, next)
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

// Draw renders the current scene
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the fixed logical screen size
func (g *Game) Layout(_, _ int) (int, int) {
	return g.screenW, g.screenH
}

// Frames returns the number of Update calls so far
func (g *Game) Frames() int {
	return g.frames
}

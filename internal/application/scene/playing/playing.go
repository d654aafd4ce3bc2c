// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"log"
	"math/rand"
	"path"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/skyrunner/internal/application/level"
	"github.com/younwookim/skyrunner/internal/application/replay"
	"github.com/younwookim/skyrunner/internal/application/scene"
	"github.com/younwookim/skyrunner/internal/application/state"
	"github.com/younwookim/skyrunner/internal/application/system"
	"github.com/younwookim/skyrunner/internal/application/world"
	"github.com/younwookim/skyrunner/internal/domain/entity"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
	"github.com/younwookim/skyrunner/internal/infrastructure/input"
)

const popupFrames = 45

// IntentSource supplies one intent per tick
type IntentSource interface {
	Intent() system.Intent
}

// replaySource plays a recording back as an IntentSource
type replaySource struct {
	r    *replay.Replayer
	done bool
}

func (s *replaySource) Intent() system.Intent {
	in, ok := s.r.Next()
	if !ok {
		s.done = true
	}
	return in
}

// Options configures the playing scene
type Options struct {
	Config *config.GameConfig
	Loader *config.Loader
	Level  string // level file relative to the loader root
	Seed   int64

	// RecordPath enables input recording when set
	RecordPath string
	// Replay plays a recording instead of reading the keyboard.
	// Its seed and level override Seed and an empty Level.
	Replay          *replay.ReplayData
	QuitOnReplayEnd bool

	// Input overrides the keyboard; used by tests and tools
	Input IntentSource
	// Reload delivers changed file paths; nil disables hot reload
	Reload <-chan string
	Logger *log.Logger
}

type popup struct {
	text string
	pos  entity.Vec
	life int
}

// Playing is the main gameplay scene
type Playing struct {
	opts   Options
	cfg    *config.GameConfig
	logger *log.Logger

	levelName string
	seed      int64
	base      *entity.Level
	world     *world.World
	state     state.GameState

	input    IntentSource
	replay   *replaySource
	recorder *replay.Recorder

	popups  []popup
	debug   bool
	screenW int
	screenH int
	camX    float64
	camY    float64
}

// New loads the level and builds its world
func New(opts Options) (*Playing, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	p := &Playing{
		opts:      opts,
		cfg:       opts.Config,
		logger:    opts.Logger,
		levelName: opts.Level,
		seed:      opts.Seed,
		input:     opts.Input,
		screenW:   opts.Config.Physics.Display.ScreenWidth,
		screenH:   opts.Config.Physics.Display.ScreenHeight,
	}

	if opts.Replay != nil {
		p.seed = opts.Replay.Seed
		if p.levelName == "" {
			p.levelName = opts.Replay.Level
		}
		p.replay = &replaySource{r: replay.NewReplayer(*opts.Replay)}
		p.input = p.replay
		p.logger.Printf("[playing] replaying %d frames of %s (seed %d)", len(opts.Replay.Frames), p.levelName, p.seed)
	}
	if p.input == nil {
		p.input = input.NewKeyboard(input.DefaultBindings())
	}

	if err := p.loadLevel(); err != nil {
		return nil, err
	}
	p.restart()
	return p, nil
}

// loadLevel parses the level file into the base level every restart is built from
func (p *Playing) loadLevel() error {
	lv, err := level.Load(p.opts.Loader, p.levelName, level.Options{
		Rand:   rand.New(rand.NewSource(p.seed)),
		Logger: p.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to load level: %w", err)
	}
	p.base = lv
	return nil
}

// restart replaces the world wholesale. The same seed gives the same world.
func (p *Playing) restart() {
	p.world = world.New(p.base, p.cfg.Physics, p.cfg.Entities, world.Options{
		Rand:   rand.New(rand.NewSource(p.seed)),
		Logger: p.logger,
	})
	p.state = state.StatePlaying
	p.popups = p.popups[:0]

	if p.opts.RecordPath != "" && p.replay == nil {
		p.recorder = replay.NewRecorder(p.seed, p.levelName)
		p.logger.Printf("[playing] recording to %s (seed %d)", p.opts.RecordPath, p.seed)
	}
	p.updateCamera()
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.pollReload()
	p.handleKeys()

	if !p.state.Simulating() {
		p.tickPopups()
		return nil, nil
	}

	in := p.input.Intent()
	if p.replay != nil && p.replay.done {
		p.state = state.StateReplayFinished
		pl := p.world.Player()
		p.logger.Printf("[playing] replay finished at frame %d: player (%.2f, %.2f) score %d",
			p.world.Frame(), pl.X, pl.Y, p.world.Score())
		if p.opts.QuitOnReplayEnd {
			return nil, scene.ErrQuit
		}
		return nil, nil
	}

	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}
	for _, e := range p.world.Tick(dt, in) {
		p.handleEvent(e)
	}

	p.tickPopups()
	p.updateCamera()
	return nil, nil
}

// Step runs one simulation tick with an explicit intent, bypassing device input
func (p *Playing) Step(dt float64, in system.Intent) []system.Event {
	events := p.world.Tick(dt, in)
	for _, e := range events {
		p.handleEvent(e)
	}
	p.updateCamera()
	return events
}

func (p *Playing) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		switch p.state {
		case state.StatePlaying:
			p.state = state.StatePaused
		case state.StatePaused:
			p.state = state.StatePlaying
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		p.debug = !p.debug
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		p.saveRecording()
	case inpututil.IsKeyJustPressed(ebiten.KeyR) && p.replay == nil:
		p.restart()
	}
}

func (p *Playing) handleEvent(e system.Event) {
	switch e.Kind {
	case system.EventPopup:
		p.popups = append(p.popups, popup{text: e.Text, pos: e.Pos, life: popupFrames})
	case system.EventPlayerDied:
		p.logger.Printf("[playing] player died at (%.0f, %.0f)", e.Pos.X, e.Pos.Y)
	case system.EventLevelComplete:
		p.state = state.StateLevelComplete
		p.saveRecording()
	}
}

func (p *Playing) tickPopups() {
	kept := p.popups[:0]
	for _, pp := range p.popups {
		pp.life--
		pp.pos.Y -= 0.5
		if pp.life > 0 {
			kept = append(kept, pp)
		}
	}
	p.popups = kept
}

// pollReload drains pending file changes and rebuilds the level once if any
// concerns it. A failed reload keeps the current world.
func (p *Playing) pollReload() {
	if p.opts.Reload == nil || p.replay != nil {
		return
	}

	changed := false
drain:
	for {
		select {
		case name, ok := <-p.opts.Reload:
			if !ok {
				p.opts.Reload = nil
				break drain
			}
			changed = p.concerns(name) || changed
		default:
			break drain
		}
	}
	if changed {
		p.reload()
	}
}

// concerns reports whether a changed file affects the running level
func (p *Playing) concerns(name string) bool {
	base := filepath.Base(name)
	switch base {
	case "physics.json", "physics.yaml", "physics.yml", "entities.json", "entities.yaml", "entities.yml":
		return true
	}
	return base == path.Base(p.levelName)
}

func (p *Playing) reload() {
	cfg, err := p.opts.Loader.LoadAll()
	if err != nil {
		p.logger.Printf("[playing] reload failed, keeping current level: %v", err)
		return
	}
	prev := p.base
	p.cfg = cfg
	if err := p.loadLevel(); err != nil {
		p.base = prev
		p.logger.Printf("[playing] reload failed, keeping current level: %v", err)
		return
	}
	p.restart()
	p.logger.Printf("[playing] reloaded %s", p.levelName)
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.opts.RecordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.logger.Printf("[playing] failed to save recording: %v", err)
		return
	}
	p.logger.Printf("[playing] recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
}

// updateCamera centers the view on the player, clamped to the level
func (p *Playing) updateCamera() {
	pl := p.world.Player()
	lv := p.world.Level()
	p.camX = clampCam(pl.CenterX()-float64(p.screenW)/2, lv.Width-float64(p.screenW))
	p.camY = clampCam(pl.CenterY()-float64(p.screenH)/2, lv.Height-float64(p.screenH))
}

func clampCam(v, limit float64) float64 {
	if v > limit {
		v = limit
	}
	if v < 0 {
		v = 0
	}
	return v
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.logger.Printf("[playing] entered %s", p.levelName)
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// World returns the running world
func (p *Playing) World() *world.World { return p.world }

// State returns the session state
func (p *Playing) State() state.GameState { return p.state }

// Recorder returns the active recorder, or nil
func (p *Playing) Recorder() *replay.Recorder { return p.recorder }

package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/younwookim/skyrunner/internal/application/level"
	"github.com/younwookim/skyrunner/internal/application/replay"
	"github.com/younwookim/skyrunner/internal/application/system"
	"github.com/younwookim/skyrunner/internal/application/world"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

// ReplayResult is the final state of a headless replay
type ReplayResult struct {
	Frames   int
	X, Y     float64
	VX, VY   float64
	Health   int
	Score    int
	Deaths   int
	Complete bool
}

func (r ReplayResult) String() string {
	return fmt.Sprintf("frames=%d pos=(%.4f, %.4f) vel=(%.4f, %.4f) health=%d score=%d deaths=%d complete=%v",
		r.Frames, r.X, r.Y, r.VX, r.VY, r.Health, r.Score, r.Deaths, r.Complete)
}

// runHeadless rebuilds the recorded world from its level and seed and feeds it every
// recorded intent at the configured framerate. No window or device is touched.
func runHeadless(loader *config.Loader, cfg *config.GameConfig, data replay.ReplayData, logger *log.Logger) (ReplayResult, error) {
	lv, err := level.Load(loader, data.Level, level.Options{
		Rand:   rand.New(rand.NewSource(data.Seed)),
		Logger: logger,
	})
	if err != nil {
		return ReplayResult{}, err
	}
	w := world.New(lv, cfg.Physics, cfg.Entities, world.Options{
		Rand:   rand.New(rand.NewSource(data.Seed)),
		Logger: logger,
	})

	fps := cfg.Physics.Display.Framerate
	if fps <= 0 {
		fps = 60
	}
	dt := 1.0 / float64(fps)

	var res ReplayResult
	r := replay.NewReplayer(data)
	for {
		in, ok := r.Next()
		if !ok {
			break
		}
		for _, e := range w.Tick(dt, in) {
			if e.Kind == system.EventPlayerDied {
				res.Deaths++
			}
		}
	}

	p := w.Player()
	res.Frames = w.Frame()
	res.X, res.Y = p.X, p.Y
	res.VX, res.VY = p.VX, p.VY
	res.Health = p.Health
	res.Score = w.Score()
	res.Complete = w.Complete()
	logger.Printf("[replay] %s: %s", data.Level, res)
	return res, nil
}

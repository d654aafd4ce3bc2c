package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/skyrunner/internal/application/game"
	"github.com/younwookim/skyrunner/internal/application/replay"
	"github.com/younwookim/skyrunner/internal/application/scene/playing"
	"github.com/younwookim/skyrunner/internal/infrastructure/config"
)

const defaultLevel = "levels/demo.json"

func main() {
	// Parse command line flags
	levelFlag := flag.String("level", defaultLevel, "Level file relative to the config directory (.json, .yaml, .txt, .tmx)")
	configFlag := flag.String("config", "", "Config directory; the embedded configs are used when empty")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded replay file")
	headlessFlag := flag.Bool("headless", false, "With -replay: simulate without a window and print the final state")
	seedFlag := flag.Int64("seed", 0, "World seed; 0 picks one from the clock")
	watchFlag := flag.Bool("watch", false, "Reload the level when files under -config change")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	loader, err := newLoader(*configFlag)
	if err != nil {
		logger.Fatalf("Failed to open configs: %v", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	var data *replay.ReplayData
	if *replayFlag != "" {
		data, err = replay.LoadReplay(*replayFlag)
		if err != nil {
			logger.Fatalf("Failed to load replay: %v", err)
		}
	}

	if *headlessFlag {
		if data == nil {
			logger.Fatal("-headless requires -replay")
		}
		res, err := runHeadless(loader, cfg, *data, logger)
		if err != nil {
			logger.Fatalf("Replay failed: %v", err)
		}
		fmt.Println(res)
		return
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := playing.Options{
		Config:          cfg,
		Loader:          loader,
		Level:           *levelFlag,
		Seed:            seed,
		RecordPath:      *recordFlag,
		Replay:          data,
		QuitOnReplayEnd: data != nil,
		Logger:          logger,
	}
	if data != nil && !isFlagSet("level") {
		opts.Level = ""
	}

	if *watchFlag {
		if *configFlag == "" {
			logger.Fatal("-watch requires -config")
		}
		watcher, err := config.NewWatcher(*configFlag, filepath.Join(*configFlag, filepath.Dir(filepath.FromSlash(*levelFlag))))
		if err != nil {
			logger.Fatalf("Failed to watch %s: %v", *configFlag, err)
		}
		defer func() { _ = watcher.Close() }()
		go func() {
			for err := range watcher.Errors {
				logger.Printf("[watch] %v", err)
			}
		}()
		opts.Reload = watcher.Events
		logger.Printf("[watch] watching %s", *configFlag)
	}

	scn, err := playing.New(opts)
	if err != nil {
		logger.Fatalf("Failed to start: %v", err)
	}
	g := game.New(scn, cfg.Physics.Display, logger)

	// Set up ebiten
	display := cfg.Physics.Display
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Skyrunner")
	ebiten.SetTPS(display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal(err)
	}
}

// newLoader reads configs from dir, or from the embedded copy when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files whose extension has no decoder
var ErrUnsupportedFormat = errors.New("unsupported config format")

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics  *PhysicsConfig
	Entities *EntitiesConfig
}

// Loader loads game configuration from JSON/YAML/TMX files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// Path returns the OS path of a file relative to the loader root
func (l *Loader) Path(name string) string {
	return filepath.Join(l.basePath, filepath.FromSlash(name))
}

// LoadPhysics loads physics.json or physics.yaml on top of the defaults
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	cfg := DefaultPhysicsConfig()
	if err := l.loadFirst(cfg, "physics.json", "physics.yaml", "physics.yml"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEntities loads entities.json or entities.yaml on top of the defaults
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	cfg := DefaultEntitiesConfig()
	if err := l.loadFirst(cfg, "entities.json", "entities.yaml", "entities.yml"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadLevel loads a level file. The format is chosen by extension:
// .json/.yaml/.yml records, .txt character grids, .tmx Tiled maps.
func (l *Loader) LoadLevel(name string) (*LevelConfig, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".tmx":
		return LoadTMXLevel(l.fsys, name)
	case ".txt":
		return l.loadGrid(name)
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("level %s: %w", name, ErrUnsupportedFormat)
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}

	var cfg LevelConfig
	if err := decode(name, data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}

	return &cfg, nil
}

// LoadAll loads all base configurations (physics, entities)
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics:  physics,
		Entities: entities,
	}, nil
}

func (l *Loader) loadGrid(name string) (*LevelConfig, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	rows := strings.Split(strings.TrimRight(text, "\n"), "\n")
	return &LevelConfig{
		Name: strings.TrimSuffix(path.Base(name), path.Ext(name)),
		Rows: rows,
	}, nil
}

// loadFirst decodes the first candidate file that exists into v
func (l *Loader) loadFirst(v any, candidates ...string) error {
	for _, name := range candidates {
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := decode(name, data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return nil
	}
	return fmt.Errorf("failed to read %s: %w", candidates[0], fs.ErrNotExist)
}

func decode(name string, data []byte, v any) error {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return json.Unmarshal(data, v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
}
